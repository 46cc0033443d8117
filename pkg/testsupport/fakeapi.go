package testsupport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/goliatone/go-wishlist-console/pkg/wishlist"
)

const timestampLayout = "2006-01-02T15:04:05.000000"

// RecordedRequest is one call received by FakeAPI.
type RecordedRequest struct {
	Method      string
	Path        string
	Query       string
	ContentType string
	RequestID   string
	Body        string
}

// FakeAPI is an in-memory wishlist service. It answers like the production
// service: 201 with Location on create, JSON 404 messages, 204 on delete and
// 415 when a body is not sent as application/json.
type FakeAPI struct {
	mu             sync.Mutex
	router         *mux.Router
	wishlists      map[int64]*wishlist.Wishlist
	nextWishlistID int64
	nextItemID     int64
	requests       []RecordedRequest
	failures       map[string]int

	// Now stamps created_at and last_updated. Defaults to time.Now.
	Now func() time.Time
}

// NewFakeAPI returns an empty service.
func NewFakeAPI() *FakeAPI {
	f := &FakeAPI{
		wishlists:      make(map[int64]*wishlist.Wishlist),
		nextWishlistID: 1,
		nextItemID:     1,
		failures:       make(map[string]int),
		Now:            time.Now,
	}

	r := mux.NewRouter()
	r.HandleFunc("/wishlists", f.createWishlist).Methods(http.MethodPost)
	r.HandleFunc("/wishlists", f.listWishlists).Methods(http.MethodGet)
	r.HandleFunc("/wishlists/{id:[0-9]+}", f.getWishlist).Methods(http.MethodGet)
	r.HandleFunc("/wishlists/{id:[0-9]+}", f.updateWishlist).Methods(http.MethodPut)
	r.HandleFunc("/wishlists/{id:[0-9]+}", f.deleteWishlist).Methods(http.MethodDelete)
	r.HandleFunc("/wishlists/{id:[0-9]+}/items", f.createItem).Methods(http.MethodPost)
	r.HandleFunc("/wishlists/{id:[0-9]+}/items/{item:[0-9]+}", f.getItem).Methods(http.MethodGet)
	r.HandleFunc("/wishlists/{id:[0-9]+}/items/{item:[0-9]+}", f.updateItem).Methods(http.MethodPut)
	r.HandleFunc("/wishlists/{id:[0-9]+}/items/{item:[0-9]+}", f.deleteItem).Methods(http.MethodDelete)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusNotFound, "The requested URL was not found on the server.")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "The method is not allowed for the requested URL.")
	})
	f.router = r
	return f
}

// StartFakeAPI serves a new FakeAPI until the test ends.
func StartFakeAPI(t *testing.T) (*FakeAPI, *httptest.Server) {
	t.Helper()
	api := NewFakeAPI()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return api, srv
}

func (f *FakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(r.Body)
	}

	f.mu.Lock()
	f.requests = append(f.requests, RecordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		Query:       r.URL.RawQuery,
		ContentType: r.Header.Get("Content-Type"),
		RequestID:   r.Header.Get("X-Request-ID"),
		Body:        string(body),
	})
	status, failing := f.failures[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if failing {
		w.WriteHeader(status)
		return
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	f.router.ServeHTTP(w, r)
}

// FailWith makes every request for method and path answer status with an
// empty body, so clients fall back to the status text.
func (f *FakeAPI) FailWith(method, path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method+" "+path] = status
}

// Requests returns the calls received so far.
func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// Reset forgets recorded requests.
func (f *FakeAPI) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = nil
}

// Seed stores w with fresh identifiers and returns the stored copy.
func (f *FakeAPI) Seed(w wishlist.Wishlist) wishlist.Wishlist {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := f.insertLocked(w)
	return cloneWishlist(stored)
}

// Wishlist returns the stored wishlist with id.
func (f *FakeAPI) Wishlist(id int64) (wishlist.Wishlist, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wishlists[id]
	if !ok {
		return wishlist.Wishlist{}, false
	}
	return cloneWishlist(w), true
}

func (f *FakeAPI) insertLocked(w wishlist.Wishlist) *wishlist.Wishlist {
	stamp := f.Now().UTC().Format(timestampLayout)
	stored := w
	stored.ID = f.nextWishlistID
	f.nextWishlistID++
	stored.CreatedAt = stamp
	stored.LastUpdated = stamp
	stored.Items = make([]wishlist.Item, 0, len(w.Items))
	for _, item := range w.Items {
		item.ID = f.nextItemID
		f.nextItemID++
		item.WishlistID = stored.ID
		stored.Items = append(stored.Items, item)
	}
	f.wishlists[stored.ID] = &stored
	return &stored
}

func (f *FakeAPI) createWishlist(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	var in wishlist.Wishlist
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" {
		writeMessage(w, http.StatusBadRequest, "Invalid Wishlist: body of request contained bad or no data")
		return
	}

	f.mu.Lock()
	stored := cloneWishlist(f.insertLocked(in))
	f.mu.Unlock()

	w.Header().Set("Location", fmt.Sprintf("http://%s/wishlists/%d", r.Host, stored.ID))
	writeJSON(w, http.StatusCreated, stored)
}

func (f *FakeAPI) listWishlists(w http.ResponseWriter, r *http.Request) {
	q := wishlist.ParseSearchQuery(r.URL.Query())

	f.mu.Lock()
	ids := make([]int64, 0, len(f.wishlists))
	for id := range f.wishlists {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]wishlist.Wishlist, 0, len(ids))
	for _, id := range ids {
		if stored := f.wishlists[id]; q.Matches(*stored) {
			out = append(out, cloneWishlist(stored))
		}
	}
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (f *FakeAPI) getWishlist(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")

	f.mu.Lock()
	stored, ok := f.wishlists[id]
	var out wishlist.Wishlist
	if ok {
		out = cloneWishlist(stored)
	}
	f.mu.Unlock()

	if !ok {
		writeMessage(w, http.StatusNotFound, wishlistNotFound(id))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeAPI) updateWishlist(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	id := pathID(r, "id")
	var in wishlist.Wishlist
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" {
		writeMessage(w, http.StatusBadRequest, "Invalid Wishlist: body of request contained bad or no data")
		return
	}

	f.mu.Lock()
	stored, ok := f.wishlists[id]
	var out wishlist.Wishlist
	if ok {
		stored.Name = in.Name
		stored.UserID = in.UserID
		stored.Enabled = in.Enabled
		stored.LastUpdated = f.Now().UTC().Format(timestampLayout)
		out = cloneWishlist(stored)
	}
	f.mu.Unlock()

	if !ok {
		writeMessage(w, http.StatusNotFound, wishlistNotFound(id))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeAPI) deleteWishlist(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	f.mu.Lock()
	delete(f.wishlists, id)
	f.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeAPI) createItem(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	id := pathID(r, "id")

	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.wishlists[id]
	if !ok {
		writeMessage(w, http.StatusNotFound, wishlistNotFound(id))
		return
	}
	var in wishlist.Item
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" {
		writeMessage(w, http.StatusBadRequest, "Invalid Item: body of request contained bad or no data")
		return
	}
	in.ID = f.nextItemID
	f.nextItemID++
	in.WishlistID = id
	stored.Items = append(stored.Items, in)
	stored.LastUpdated = f.Now().UTC().Format(timestampLayout)

	writeJSON(w, http.StatusCreated, in)
}

func (f *FakeAPI) getItem(w http.ResponseWriter, r *http.Request) {
	id, itemID := pathID(r, "id"), pathID(r, "item")

	f.mu.Lock()
	item, ok := f.findItemLocked(id, itemID)
	f.mu.Unlock()

	if !ok {
		writeMessage(w, http.StatusNotFound, itemNotFound(itemID))
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (f *FakeAPI) updateItem(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	id, itemID := pathID(r, "id"), pathID(r, "item")
	var in wishlist.Item
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" {
		writeMessage(w, http.StatusBadRequest, "Invalid Item: body of request contained bad or no data")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.wishlists[id]
	if !ok {
		writeMessage(w, http.StatusNotFound, itemNotFound(itemID))
		return
	}
	for i := range stored.Items {
		if stored.Items[i].ID != itemID {
			continue
		}
		in.ID = itemID
		in.WishlistID = id
		stored.Items[i] = in
		stored.LastUpdated = f.Now().UTC().Format(timestampLayout)
		writeJSON(w, http.StatusOK, in)
		return
	}
	writeMessage(w, http.StatusNotFound, itemNotFound(itemID))
}

func (f *FakeAPI) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, itemID := pathID(r, "id"), pathID(r, "item")

	f.mu.Lock()
	if stored, ok := f.wishlists[id]; ok {
		kept := stored.Items[:0]
		for _, item := range stored.Items {
			if item.ID != itemID {
				kept = append(kept, item)
			}
		}
		stored.Items = kept
	}
	f.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeAPI) findItemLocked(id, itemID int64) (wishlist.Item, bool) {
	stored, ok := f.wishlists[id]
	if !ok {
		return wishlist.Item{}, false
	}
	for _, item := range stored.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return wishlist.Item{}, false
}

func requireJSON(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Content-Type") == "application/json" {
		return true
	}
	writeMessage(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
	return false
}

func wishlistNotFound(id int64) string {
	return fmt.Sprintf("Wishlist with id '%d' could not be found.", id)
}

func itemNotFound(id int64) string {
	return fmt.Sprintf("Item with id '%d' could not be found.", id)
}

func pathID(r *http.Request, key string) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)[key], 10, 64)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"status":  status,
		"error":   http.StatusText(status),
		"message": message,
	})
}

func cloneWishlist(w *wishlist.Wishlist) wishlist.Wishlist {
	out := *w
	out.Items = append([]wishlist.Item{}, w.Items...)
	return out
}
