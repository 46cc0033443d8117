package surface

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-wishlist-console/pkg/apispec"
	"github.com/goliatone/go-wishlist-console/pkg/client"
	"github.com/goliatone/go-wishlist-console/pkg/wishlist"
)

// Flash texts shown after successful actions.
const (
	FlashSuccess      = "Success"
	FlashDeleted      = "Wishlist has been Deleted!"
	FlashServerError  = "Server error!"
	flashUnknownError = "Unknown error"
)

// API is the remote wishlist service. *client.Client satisfies it.
type API interface {
	CreateWishlist(ctx context.Context, w wishlist.Wishlist) (wishlist.Wishlist, error)
	UpdateWishlist(ctx context.Context, id int64, w wishlist.Wishlist) (wishlist.Wishlist, error)
	GetWishlist(ctx context.Context, id int64) (wishlist.Wishlist, error)
	DeleteWishlist(ctx context.Context, id int64) error
	SearchWishlists(ctx context.Context, q wishlist.SearchQuery) ([]wishlist.Wishlist, error)
	CreateItem(ctx context.Context, wishlistID int64, item wishlist.Item) (wishlist.Item, error)
	GetItem(ctx context.Context, wishlistID, itemID int64) (wishlist.Item, error)
	UpdateItem(ctx context.Context, wishlistID, itemID int64, item wishlist.Item) (wishlist.Item, error)
	DeleteItem(ctx context.Context, wishlistID, itemID int64) error
}

var _ API = (*client.Client)(nil)

// Surface runs button actions against a Page.
type Surface struct {
	api API
}

// New binds a surface to api.
func New(api API) *Surface {
	return &Surface{api: api}
}

// Do runs action against page. Failures are written to page.Flash; the
// returned error is non-nil only for unknown actions and when ctx is done.
func (s *Surface) Do(ctx context.Context, action Action, page *Page) error {
	if page == nil {
		return fmt.Errorf("surface: %s: page is nil", action)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if page.Fields == nil {
		page.Fields = NewPage().Fields
	}
	page.Flash = ""

	var err error
	switch action {
	case ActionCreate:
		err = s.create(ctx, page)
	case ActionUpdate:
		err = s.update(ctx, page)
	case ActionRetrieve:
		err = s.retrieve(ctx, page)
	case ActionDelete:
		err = s.delete(ctx, page)
	case ActionClear:
		page.clearWishlist()
	case ActionSearch:
		err = s.search(ctx, page)
	case ActionCreateItem:
		err = s.createItem(ctx, page)
	case ActionRetrieveItem:
		err = s.retrieveItem(ctx, page)
	case ActionUpdateItem:
		err = s.updateItem(ctx, page)
	case ActionDeleteItem:
		err = s.deleteItem(ctx, page)
	case ActionClearItem:
		page.clearItem()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	page.Flash = flashFor(action, err)
	return nil
}

func (s *Surface) create(ctx context.Context, page *Page) error {
	in, err := wishlistFromPage(page, false)
	if err != nil {
		return err
	}
	out, err := s.api.CreateWishlist(ctx, in)
	if err != nil {
		return err
	}
	page.fillWishlist(out)
	page.Flash = FlashSuccess
	return nil
}

func (s *Surface) update(ctx context.Context, page *Page) error {
	in, err := wishlistFromPage(page, true)
	if err != nil {
		return err
	}
	out, err := s.api.UpdateWishlist(ctx, in.ID, in)
	if err != nil {
		return err
	}
	page.fillWishlist(out)
	page.Flash = FlashSuccess
	return nil
}

func (s *Surface) retrieve(ctx context.Context, page *Page) error {
	id, err := requiredID(page, FieldWishlistID)
	if err != nil {
		return err
	}
	out, err := s.api.GetWishlist(ctx, id)
	if err != nil {
		page.clearWishlist()
		return err
	}
	page.fillWishlist(out)
	page.showItems(out)
	page.Flash = FlashSuccess
	return nil
}

func (s *Surface) delete(ctx context.Context, page *Page) error {
	id, err := requiredID(page, FieldWishlistID)
	if err != nil {
		return err
	}
	if err := s.api.DeleteWishlist(ctx, id); err != nil {
		if ctx.Err() == nil {
			page.Flash = FlashServerError
			return nil
		}
		return err
	}
	page.clearWishlist()
	page.Flash = FlashDeleted
	return nil
}

func (s *Surface) search(ctx context.Context, page *Page) error {
	q := wishlist.SearchQuery{
		Name:      page.trimmed(FieldWishlistName),
		UserID:    page.trimmed(FieldWishlistUID),
		Available: page.Enabled(),
	}
	if q.UserID != "" {
		if _, err := parseID(FieldWishlistUID, q.UserID); err != nil {
			return err
		}
	}
	results, err := s.api.SearchWishlists(ctx, q)
	if err != nil {
		return err
	}
	page.showResults(results)
	if len(results) > 0 {
		page.fillWishlist(results[0])
	}
	page.Flash = FlashSuccess
	return nil
}

func (s *Surface) createItem(ctx context.Context, page *Page) error {
	wid, err := requiredID(page, FieldWishlistID)
	if err != nil {
		return err
	}
	item, err := itemFromPage(page, wid, false)
	if err != nil {
		return err
	}
	if _, err := s.api.CreateItem(ctx, wid, item); err != nil {
		return err
	}
	page.clearItem()
	return s.retrieve(ctx, page)
}

func (s *Surface) retrieveItem(ctx context.Context, page *Page) error {
	wid, err := requiredID(page, FieldWishlistID)
	if err != nil {
		return err
	}
	itemID, err := requiredID(page, FieldItemID)
	if err != nil {
		return err
	}
	item, err := s.api.GetItem(ctx, wid, itemID)
	if err != nil {
		page.clearItem()
		return err
	}
	page.fillItem(item)
	page.Flash = FlashSuccess
	return nil
}

func (s *Surface) updateItem(ctx context.Context, page *Page) error {
	wid, err := requiredID(page, FieldWishlistID)
	if err != nil {
		return err
	}
	item, err := itemFromPage(page, wid, true)
	if err != nil {
		return err
	}
	out, err := s.api.UpdateItem(ctx, wid, item.ID, item)
	if err != nil {
		return err
	}
	page.fillItem(out)
	return s.retrieve(ctx, page)
}

func (s *Surface) deleteItem(ctx context.Context, page *Page) error {
	wid, err := requiredID(page, FieldWishlistID)
	if err != nil {
		return err
	}
	itemID, err := requiredID(page, FieldItemID)
	if err != nil {
		return err
	}
	if err := s.api.DeleteItem(ctx, wid, itemID); err != nil {
		return err
	}
	page.clearItem()
	return s.retrieve(ctx, page)
}

func wishlistFromPage(page *Page, withID bool) (wishlist.Wishlist, error) {
	var out wishlist.Wishlist
	if withID {
		id, err := requiredID(page, FieldWishlistID)
		if err != nil {
			return out, err
		}
		out.ID = id
	}
	uid, err := parseID(FieldWishlistUID, page.trimmed(FieldWishlistUID))
	if err != nil {
		return out, err
	}
	out.Name = page.Get(FieldWishlistName)
	out.UserID = uid
	out.Enabled = page.Enabled()
	out.Items = []wishlist.Item{}
	return out, nil
}

func itemFromPage(page *Page, wishlistID int64, withID bool) (wishlist.Item, error) {
	out := wishlist.Item{
		WishlistID:  wishlistID,
		Name:        page.Get(FieldItemName),
		Category:    page.Get(FieldItemCategory),
		Description: page.Get(FieldItemDescription),
	}
	if withID {
		id, err := requiredID(page, FieldItemID)
		if err != nil {
			return out, err
		}
		out.ID = id
	} else if raw := page.trimmed(FieldItemID); raw != "" {
		id, err := parseID(FieldItemID, raw)
		if err != nil {
			return out, err
		}
		out.ID = id
	}
	price, err := parseID(FieldItemPrice, page.trimmed(FieldItemPrice))
	if err != nil {
		return out, err
	}
	out.Price = price
	return out, nil
}

func requiredID(page *Page, element string) (int64, error) {
	id, err := parseID(element, page.trimmed(element))
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, &FieldError{Element: element, Value: page.Get(element), Reason: "must be a positive number"}
	}
	return id, nil
}

func parseID(element, raw string) (int64, error) {
	if raw == "" {
		return 0, &FieldError{Element: element, Value: raw, Reason: "is required"}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &FieldError{Element: element, Value: raw, Reason: "must be a whole number"}
	}
	if n < 0 {
		return 0, &FieldError{Element: element, Value: raw, Reason: "must not be negative"}
	}
	return n, nil
}

func flashFor(action Action, err error) string {
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return fieldErr.Message()
	}
	var bodyErr *apispec.ValidationError
	if errors.As(err, &bodyErr) {
		return validationMessage(action, bodyErr)
	}
	msg := PlainText(client.MessageOf(err))
	if msg == "" {
		return flashUnknownError
	}
	return msg
}

// validationMessage names each rejected property by the label of the page
// input bound to it, e.g. "Name: maximum string length is 64".
func validationMessage(action Action, err *apispec.ValidationError) string {
	labels := make(map[string]string)
	for _, binding := range action.Bindings() {
		labels[binding.Property] = binding.Label
	}
	paths := make([]string, 0, len(err.Fields))
	for path := range err.Fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var parts []string
	for _, path := range paths {
		label, ok := labels[path]
		if !ok {
			label = path
		}
		for _, reason := range err.Fields[path] {
			if label == "" {
				parts = append(parts, reason)
				continue
			}
			parts = append(parts, label+": "+reason)
		}
	}
	if len(parts) == 0 {
		return flashUnknownError
	}
	return PlainText(strings.Join(parts, "; "))
}
