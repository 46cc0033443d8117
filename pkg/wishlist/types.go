package wishlist

import "encoding/json"

// Wishlist is a named collection of items owned by a user.
type Wishlist struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	UserID      int64  `json:"user_id"`
	Enabled     bool   `json:"is_enabled"`
	CreatedAt   string `json:"created_at,omitempty"`
	LastUpdated string `json:"last_updated,omitempty"`
	Items       []Item `json:"items"`
}

// Item is a priced, categorized entry belonging to exactly one wishlist.
type Item struct {
	ID          int64  `json:"id"`
	WishlistID  int64  `json:"wishlist_id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

// MarshalJSON always emits items as an array so the service never sees null.
func (w Wishlist) MarshalJSON() ([]byte, error) {
	type alias Wishlist
	out := alias(w)
	if out.Items == nil {
		out.Items = []Item{}
	}
	return json.Marshal(out)
}
