package surface

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-wishlist-console/pkg/wishlist"
)

// Element ids of the page inputs.
const (
	FieldWishlistID      = "wishlist_id"
	FieldWishlistName    = "wishlist_name"
	FieldWishlistEnabled = "wishlist_enabled"
	FieldWishlistUID     = "wishlist_uid"
	FieldItemID          = "item_id"
	FieldItemName        = "item_name"
	FieldItemCategory    = "item_category"
	FieldItemPrice       = "item_price"
	FieldItemDescription = "item_description"
)

// Element ids of the page containers.
const (
	ElementFlash        = "flash_message"
	ElementResults      = "wishlist_results"
	ElementResultsTitle = "wishlists_title"
	ElementItems        = "wishlist_items"
	ElementItemsTitle   = "items_title"
)

// WishlistFields lists the wishlist inputs in page order.
var WishlistFields = []string{FieldWishlistID, FieldWishlistName, FieldWishlistEnabled, FieldWishlistUID}

// ItemFields lists the item inputs in page order.
var ItemFields = []string{FieldItemID, FieldItemName, FieldItemCategory, FieldItemPrice, FieldItemDescription}

var fieldLabels = map[string]string{
	FieldWishlistID:      "Wishlist ID",
	FieldWishlistName:    "Name",
	FieldWishlistEnabled: "Enabled",
	FieldWishlistUID:     "User ID",
	FieldItemID:          "Item ID",
	FieldItemName:        "Item Name",
	FieldItemCategory:    "Category",
	FieldItemPrice:       "Price",
	FieldItemDescription: "Description",
}

// Label returns the display label of a page input.
func Label(element string) string {
	if label, ok := fieldLabels[element]; ok {
		return label
	}
	return element
}

// AllFields returns every input element id in page order.
func AllFields() []string {
	out := make([]string, 0, len(WishlistFields)+len(ItemFields))
	out = append(out, WishlistFields...)
	return append(out, ItemFields...)
}

// Page is the state one user sees: input values keyed by element id, the
// flash message, the search results table and the items table.
type Page struct {
	Fields      map[string]string   `json:"fields"`
	Flash       string              `json:"flash"`
	Results     []wishlist.Wishlist `json:"results,omitempty"`
	ShowResults bool                `json:"show_results"`
	Items       []wishlist.Item     `json:"items,omitempty"`
	ItemsTitle  string              `json:"items_title,omitempty"`
	ShowItems   bool                `json:"show_items"`
}

// NewPage returns a page with every input present and empty.
func NewPage() *Page {
	p := &Page{Fields: make(map[string]string, len(fieldLabels))}
	for _, element := range AllFields() {
		p.Fields[element] = ""
	}
	return p
}

// PageFromValues seeds a page from submitted form values. Unknown keys are
// ignored.
func PageFromValues(values url.Values) *Page {
	p := NewPage()
	for _, element := range AllFields() {
		p.Fields[element] = values.Get(element)
	}
	return p
}

// Get returns the value of an input.
func (p *Page) Get(element string) string {
	if p == nil {
		return ""
	}
	return p.Fields[element]
}

// Set writes the value of an input.
func (p *Page) Set(element, value string) {
	if p.Fields == nil {
		p.Fields = make(map[string]string, len(fieldLabels))
	}
	p.Fields[element] = value
}

// Enabled reports whether the enabled input holds exactly "true".
func (p *Page) Enabled() bool {
	return p.Get(FieldWishlistEnabled) == "true"
}

// Clone returns a deep copy.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	out := *p
	out.Fields = make(map[string]string, len(p.Fields))
	for k, v := range p.Fields {
		out.Fields[k] = v
	}
	out.Results = append([]wishlist.Wishlist(nil), p.Results...)
	out.Items = append([]wishlist.Item(nil), p.Items...)
	return &out
}

func (p *Page) fillWishlist(w wishlist.Wishlist) {
	p.Set(FieldWishlistID, strconv.FormatInt(w.ID, 10))
	p.Set(FieldWishlistName, w.Name)
	p.Set(FieldWishlistEnabled, strconv.FormatBool(w.Enabled))
	p.Set(FieldWishlistUID, strconv.FormatInt(w.UserID, 10))
}

// clearWishlist empties the wishlist inputs and hides both tables.
func (p *Page) clearWishlist() {
	for _, element := range WishlistFields {
		p.Set(element, "")
	}
	p.ShowItems = false
	p.ShowResults = false
}

func (p *Page) fillItem(item wishlist.Item) {
	p.Set(FieldItemID, strconv.FormatInt(item.ID, 10))
	p.Set(FieldItemName, item.Name)
	p.Set(FieldItemCategory, item.Category)
	p.Set(FieldItemPrice, strconv.FormatInt(item.Price, 10))
	p.Set(FieldItemDescription, item.Description)
}

func (p *Page) clearItem() {
	for _, element := range ItemFields {
		p.Set(element, "")
	}
}

func (p *Page) showItems(w wishlist.Wishlist) {
	p.Items = append([]wishlist.Item{}, w.Items...)
	p.ItemsTitle = "Items in Wishlist " + strconv.FormatInt(w.ID, 10)
	p.ShowItems = true
}

func (p *Page) showResults(results []wishlist.Wishlist) {
	p.Results = append([]wishlist.Wishlist{}, results...)
	p.ShowResults = true
}

func (p *Page) trimmed(element string) string {
	return strings.TrimSpace(p.Get(element))
}
