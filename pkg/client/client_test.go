package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-wishlist-console/pkg/apispec"
	"github.com/goliatone/go-wishlist-console/pkg/client"
	"github.com/goliatone/go-wishlist-console/pkg/testsupport"
	"github.com/goliatone/go-wishlist-console/pkg/wishlist"
)

var ignoreStamps = cmpopts.IgnoreFields(wishlist.Wishlist{}, "CreatedAt", "LastUpdated")

func newClient(t *testing.T, baseURL string, opts ...client.Option) *client.Client {
	t.Helper()
	c, err := client.New(baseURL, opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestNew_RejectsMissingOrRelativeBaseURL(t *testing.T) {
	if _, err := client.New("  "); !errors.Is(err, client.ErrMissingBaseURL) {
		t.Fatalf("expected ErrMissingBaseURL, got %v", err)
	}
	if _, err := client.New("/wishlists"); err == nil {
		t.Fatalf("expected relative url to be rejected")
	}
}

func TestClient_WishlistLifecycle(t *testing.T) {
	api, srv := testsupport.StartFakeAPI(t)
	c := newClient(t, srv.URL+"/", client.WithValidator(apispec.MustDefault()))
	ctx := context.Background()

	created, err := c.CreateWishlist(ctx, wishlist.Wishlist{Name: "birthday", UserID: 42, Enabled: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.CreatedAt == "" {
		t.Fatalf("expected stored wishlist, got %+v", created)
	}

	got, err := c.GetWishlist(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(created, got); diff != "" {
		t.Fatalf("get mismatch (-want +got):\n%s", diff)
	}

	updated, err := c.UpdateWishlist(ctx, created.ID, wishlist.Wishlist{Name: "holiday", UserID: 42})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := wishlist.Wishlist{ID: created.ID, Name: "holiday", UserID: 42, Items: []wishlist.Item{}}
	if diff := cmp.Diff(want, updated, ignoreStamps); diff != "" {
		t.Fatalf("update mismatch (-want +got):\n%s", diff)
	}

	if err := c.DeleteWishlist(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := api.Wishlist(created.ID); ok {
		t.Fatalf("expected wishlist %d to be removed", created.ID)
	}

	_, err = c.GetWishlist(ctx, created.ID)
	if !client.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	wantMsg := "Wishlist with id '1' could not be found."
	if msg := client.MessageOf(err); msg != wantMsg {
		t.Fatalf("message: want %q, got %q", wantMsg, msg)
	}
}

func TestClient_SendsHeadersAndItemsArray(t *testing.T) {
	api, srv := testsupport.StartFakeAPI(t)
	c := newClient(t, srv.URL)

	if _, err := c.CreateWishlist(context.Background(), wishlist.Wishlist{Name: "gifts"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	reqs := api.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected one request, got %d", len(reqs))
	}
	req := reqs[0]
	if req.ContentType != "application/json" {
		t.Fatalf("content type: %q", req.ContentType)
	}
	if req.RequestID == "" {
		t.Fatalf("expected X-Request-ID header")
	}
	if !strings.Contains(req.Body, `"items":[]`) {
		t.Fatalf("expected empty items array in body, got %s", req.Body)
	}
	if strings.Contains(req.Body, `"created_at"`) {
		t.Fatalf("expected timestamps omitted, got %s", req.Body)
	}
}

func TestClient_SearchEncodesQueryInOrder(t *testing.T) {
	api, srv := testsupport.StartFakeAPI(t)
	api.Seed(wishlist.Wishlist{Name: "a", UserID: 7, Enabled: true})
	api.Seed(wishlist.Wishlist{Name: "b", UserID: 7})
	api.Seed(wishlist.Wishlist{Name: "a", UserID: 8, Enabled: true})
	c := newClient(t, srv.URL)
	ctx := context.Background()

	got, err := c.SearchWishlists(ctx, wishlist.SearchQuery{UserID: "7", Available: true})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Name != "a" || got[0].UserID != 7 {
		t.Fatalf("unexpected results: %+v", got)
	}

	all, err := c.SearchWishlists(ctx, wishlist.SearchQuery{})
	if err != nil {
		t.Fatalf("search all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 wishlists, got %d", len(all))
	}

	reqs := api.Requests()
	if reqs[0].Query != "user_id=7&available=true" {
		t.Fatalf("query: %q", reqs[0].Query)
	}
	if reqs[1].Query != "" {
		t.Fatalf("expected empty query, got %q", reqs[1].Query)
	}
}

func TestClient_ItemLifecycle(t *testing.T) {
	api, srv := testsupport.StartFakeAPI(t)
	stored := api.Seed(wishlist.Wishlist{Name: "books", UserID: 1})
	c := newClient(t, srv.URL, client.WithValidator(apispec.MustDefault()))
	ctx := context.Background()

	item, err := c.CreateItem(ctx, stored.ID, wishlist.Item{Name: "dune", Category: "scifi", Price: 12, Description: "paperback"})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.ID == 0 || item.WishlistID != stored.ID {
		t.Fatalf("unexpected item: %+v", item)
	}

	got, err := c.GetItem(ctx, stored.ID, item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if diff := cmp.Diff(item, got); diff != "" {
		t.Fatalf("get item mismatch (-want +got):\n%s", diff)
	}

	updated, err := c.UpdateItem(ctx, stored.ID, item.ID, wishlist.Item{Name: "dune", Category: "scifi", Price: 20, Description: "hardcover"})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if updated.Price != 20 || updated.ID != item.ID {
		t.Fatalf("unexpected update: %+v", updated)
	}

	if err := c.DeleteItem(ctx, stored.ID, item.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	w, _ := api.Wishlist(stored.ID)
	if len(w.Items) != 0 {
		t.Fatalf("expected items removed, got %+v", w.Items)
	}

	_, err = c.GetItem(ctx, stored.ID, item.ID)
	if msg := client.MessageOf(err); msg != "Item with id '1' could not be found." {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestClient_ValidatorStopsInvalidBody(t *testing.T) {
	api, srv := testsupport.StartFakeAPI(t)
	c := newClient(t, srv.URL, client.WithValidator(apispec.MustDefault()))

	_, err := c.CreateWishlist(context.Background(), wishlist.Wishlist{Name: ""})
	var verr *apispec.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(api.Requests()) != 0 {
		t.Fatalf("expected no request to be sent")
	}
}

func TestClient_ErrorFallsBackToStatusText(t *testing.T) {
	api, srv := testsupport.StartFakeAPI(t)
	api.FailWith(http.MethodGet, "/wishlists/9", http.StatusServiceUnavailable)
	c := newClient(t, srv.URL)

	_, err := c.GetWishlist(context.Background(), 9)
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status: %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Service Unavailable" {
		t.Fatalf("message: %q", apiErr.Message)
	}
	if apiErr.RequestID == "" {
		t.Fatalf("expected request id on error")
	}
}

func TestClient_RejectsNonPositiveIDs(t *testing.T) {
	c := newClient(t, "http://example.invalid")
	if _, err := c.GetWishlist(context.Background(), 0); !errors.Is(err, client.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if err := c.DeleteItem(context.Background(), 1, -1); !errors.Is(err, client.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestClient_TransportErrorIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newClient(t, url, client.WithTimeout(time.Second))
	_, err := c.GetWishlist(context.Background(), 1)
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if client.StatusCodeOf(err) != 0 {
		t.Fatalf("transport error should carry no status")
	}
	if !strings.HasPrefix(err.Error(), "client: getWishlist:") {
		t.Fatalf("unexpected error text %q", err.Error())
	}
}

func TestClient_RateLimitHonoursContext(t *testing.T) {
	_, srv := testsupport.StartFakeAPI(t)
	c := newClient(t, srv.URL, client.WithRateLimit(0.001, 1))

	if _, err := c.SearchWishlists(context.Background(), wishlist.SearchQuery{}); err != nil {
		t.Fatalf("first search: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := c.SearchWishlists(ctx, wishlist.SearchQuery{}); err == nil {
		t.Fatalf("expected rate limiter to refuse the second request")
	}
}

func TestClient_RecordsMetrics(t *testing.T) {
	_, srv := testsupport.StartFakeAPI(t)
	reg := prometheus.NewRegistry()
	c := newClient(t, srv.URL, client.WithMetrics(reg))
	ctx := context.Background()

	_, _ = c.GetWishlist(ctx, 5)
	_, _ = c.SearchWishlists(ctx, wishlist.SearchQuery{})

	if n := testutil.CollectAndCount(reg, "wishlist_client_requests_total"); n != 2 {
		t.Fatalf("expected 2 counter series, got %d", n)
	}

	// A second client on the same registry reuses the collectors.
	if _, err := client.New(srv.URL, client.WithMetrics(reg)); err != nil {
		t.Fatalf("second client: %v", err)
	}
}
