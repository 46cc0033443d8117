package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/goliatone/go-wishlist-console/pkg/apispec"
	"github.com/goliatone/go-wishlist-console/pkg/wishlist"
)

const (
	maxResponseBytes = 4 << 20
	// RequestIDHeader carries the per-request identifier.
	RequestIDHeader = "X-Request-ID"
)

type requestIDKey struct{}

// ContextWithRequestID makes every request issued with ctx carry id instead
// of a freshly generated one.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id set by ContextWithRequestID, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Client talks to one wishlist service.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	limiter   *rate.Limiter
	validator BodyValidator
	metrics   *Metrics
	userAgent string
}

// New builds a client for the service rooted at baseURL.
func New(baseURL string, fns ...Option) (*Client, error) {
	raw := strings.TrimSpace(baseURL)
	if raw == "" {
		return nil, ErrMissingBaseURL
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("client: base url %q must be absolute", raw)
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")

	opts := NewOptions(fns...)

	var httpClient http.Client
	if opts.HTTPClient != nil {
		httpClient = *opts.HTTPClient
	}
	if httpClient.Timeout == 0 {
		httpClient.Timeout = opts.Timeout
	}

	c := &Client{
		baseURL:   parsed,
		http:      &httpClient,
		validator: opts.Validator,
		userAgent: opts.UserAgent,
	}
	if opts.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), opts.Burst)
	}
	if opts.Registerer != nil {
		metrics, err := NewMetrics(opts.Registerer)
		if err != nil {
			return nil, fmt.Errorf("client: register metrics: %w", err)
		}
		c.metrics = metrics
	}
	return c, nil
}

// CreateWishlist posts a new wishlist and returns the stored record.
func (c *Client) CreateWishlist(ctx context.Context, w wishlist.Wishlist) (wishlist.Wishlist, error) {
	var out wishlist.Wishlist
	err := c.do(ctx, request{
		op:     apispec.OpCreateWishlist,
		method: http.MethodPost,
		path:   "/wishlists",
		body:   w,
	}, &out)
	return out, err
}

// UpdateWishlist replaces the wishlist identified by id.
func (c *Client) UpdateWishlist(ctx context.Context, id int64, w wishlist.Wishlist) (wishlist.Wishlist, error) {
	if id <= 0 {
		return wishlist.Wishlist{}, fmt.Errorf("client: update wishlist %d: %w", id, ErrInvalidID)
	}
	var out wishlist.Wishlist
	err := c.do(ctx, request{
		op:     apispec.OpUpdateWishlist,
		method: http.MethodPut,
		path:   wishlistPath(id),
		body:   w,
	}, &out)
	return out, err
}

// GetWishlist reads a wishlist and its items.
func (c *Client) GetWishlist(ctx context.Context, id int64) (wishlist.Wishlist, error) {
	if id <= 0 {
		return wishlist.Wishlist{}, fmt.Errorf("client: get wishlist %d: %w", id, ErrInvalidID)
	}
	var out wishlist.Wishlist
	err := c.do(ctx, request{
		op:     apispec.OpGetWishlist,
		method: http.MethodGet,
		path:   wishlistPath(id),
	}, &out)
	return out, err
}

// DeleteWishlist removes a wishlist. The service answers 204 whether or not
// the wishlist existed.
func (c *Client) DeleteWishlist(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("client: delete wishlist %d: %w", id, ErrInvalidID)
	}
	return c.do(ctx, request{
		op:     apispec.OpDeleteWishlist,
		method: http.MethodDelete,
		path:   wishlistPath(id),
	}, nil)
}

// SearchWishlists lists wishlists matching q. An empty query lists all.
func (c *Client) SearchWishlists(ctx context.Context, q wishlist.SearchQuery) ([]wishlist.Wishlist, error) {
	var out []wishlist.Wishlist
	err := c.do(ctx, request{
		op:     apispec.OpListWishlists,
		method: http.MethodGet,
		path:   "/wishlists",
		query:  q.Encode(),
	}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []wishlist.Wishlist{}
	}
	return out, nil
}

// CreateItem adds item to the wishlist wishlistID.
func (c *Client) CreateItem(ctx context.Context, wishlistID int64, item wishlist.Item) (wishlist.Item, error) {
	if wishlistID <= 0 {
		return wishlist.Item{}, fmt.Errorf("client: create item in wishlist %d: %w", wishlistID, ErrInvalidID)
	}
	if item.WishlistID == 0 {
		item.WishlistID = wishlistID
	}
	var out wishlist.Item
	err := c.do(ctx, request{
		op:     apispec.OpCreateItem,
		method: http.MethodPost,
		path:   wishlistPath(wishlistID) + "/items",
		body:   item,
	}, &out)
	return out, err
}

// GetItem reads a single item.
func (c *Client) GetItem(ctx context.Context, wishlistID, itemID int64) (wishlist.Item, error) {
	if wishlistID <= 0 || itemID <= 0 {
		return wishlist.Item{}, fmt.Errorf("client: get item %d/%d: %w", wishlistID, itemID, ErrInvalidID)
	}
	var out wishlist.Item
	err := c.do(ctx, request{
		op:     apispec.OpGetItem,
		method: http.MethodGet,
		path:   itemPath(wishlistID, itemID),
	}, &out)
	return out, err
}

// UpdateItem replaces an item.
func (c *Client) UpdateItem(ctx context.Context, wishlistID, itemID int64, item wishlist.Item) (wishlist.Item, error) {
	if wishlistID <= 0 || itemID <= 0 {
		return wishlist.Item{}, fmt.Errorf("client: update item %d/%d: %w", wishlistID, itemID, ErrInvalidID)
	}
	if item.WishlistID == 0 {
		item.WishlistID = wishlistID
	}
	item.ID = itemID
	var out wishlist.Item
	err := c.do(ctx, request{
		op:     apispec.OpUpdateItem,
		method: http.MethodPut,
		path:   itemPath(wishlistID, itemID),
		body:   item,
	}, &out)
	return out, err
}

// DeleteItem removes an item from its wishlist.
func (c *Client) DeleteItem(ctx context.Context, wishlistID, itemID int64) error {
	if wishlistID <= 0 || itemID <= 0 {
		return fmt.Errorf("client: delete item %d/%d: %w", wishlistID, itemID, ErrInvalidID)
	}
	return c.do(ctx, request{
		op:     apispec.OpDeleteItem,
		method: http.MethodDelete,
		path:   itemPath(wishlistID, itemID),
	}, nil)
}

type request struct {
	op     string
	method string
	path   string
	query  string
	body   any
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var payload io.Reader
	if r.body != nil {
		if c.validator != nil {
			if err := c.validator.ValidateBody(r.op, r.body); err != nil {
				return err
			}
		}
		raw, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("client: %s: encode body: %w", r.op, err)
		}
		payload = bytes.NewReader(raw)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("client: %s: rate limit: %w", r.op, err)
		}
	}

	target := *c.baseURL
	target.Path = c.baseURL.Path + r.path
	target.RawQuery = r.query

	req, err := http.NewRequestWithContext(ctx, r.method, target.String(), payload)
	if err != nil {
		return fmt.Errorf("client: %s: build request: %w", r.op, err)
	}
	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(r.op, r.method, 0, started)
		return fmt.Errorf("client: %s: %w", r.op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	c.metrics.observe(r.op, r.method, resp.StatusCode, started)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("client: %s: read response: %w", r.op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(r.op, resp, body, requestID)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("client: %s: decode response: %w", r.op, err)
	}
	return nil
}

func wishlistPath(id int64) string {
	return "/wishlists/" + strconv.FormatInt(id, 10)
}

func itemPath(wishlistID, itemID int64) string {
	return wishlistPath(wishlistID) + "/items/" + strconv.FormatInt(itemID, 10)
}
