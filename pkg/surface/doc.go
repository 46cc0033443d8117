// Package surface implements the wishlist control surface: a Page of form
// fields, a flash message and two tables, and the button actions that turn
// field values into API calls and API responses back into the Page.
//
// A Surface is stateless; callers own the Page and may run actions against as
// many pages as they like. Each action issues at most one request before it
// updates the page, except the item actions which re-read the wishlist.
package surface
