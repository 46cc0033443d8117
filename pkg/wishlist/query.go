package wishlist

import (
	"net/url"
	"strconv"
	"strings"
)

// SearchQuery filters the wishlist listing. Zero values are omitted.
type SearchQuery struct {
	Name      string
	UserID    string
	Available bool
}

// Empty reports whether the query carries no filters.
func (q SearchQuery) Empty() bool {
	return strings.TrimSpace(q.Name) == "" && strings.TrimSpace(q.UserID) == "" && !q.Available
}

// Matches reports whether w passes the filters. A user id takes precedence
// over a name; available keeps enabled wishlists only.
func (q SearchQuery) Matches(w Wishlist) bool {
	if q.Empty() {
		return true
	}
	switch uid, name := strings.TrimSpace(q.UserID), strings.TrimSpace(q.Name); {
	case uid != "":
		if strconv.FormatInt(w.UserID, 10) != uid {
			return false
		}
	case name != "":
		if w.Name != name {
			return false
		}
	}
	return !q.Available || w.Enabled
}

// Encode renders the query string in a stable order: name, user_id, available.
// available is only sent when true; the service treats its absence as "any".
func (q SearchQuery) Encode() string {
	var parts []string
	if name := strings.TrimSpace(q.Name); name != "" {
		parts = append(parts, "name="+url.QueryEscape(name))
	}
	if uid := strings.TrimSpace(q.UserID); uid != "" {
		parts = append(parts, "user_id="+url.QueryEscape(uid))
	}
	if q.Available {
		parts = append(parts, "available="+strconv.FormatBool(true))
	}
	return strings.Join(parts, "&")
}

// ParseSearchQuery is the inverse of Encode and tolerates unknown keys.
func ParseSearchQuery(values url.Values) SearchQuery {
	available, _ := strconv.ParseBool(values.Get("available"))
	return SearchQuery{
		Name:      values.Get("name"),
		UserID:    values.Get("user_id"),
		Available: available,
	}
}
