// Package wishlist defines the records exchanged with the remote wishlist
// service and the query encoding used to search them.
//
// The JSON tags are the wire contract. The service owns persistence, so the
// types carry no behaviour beyond encoding helpers.
package wishlist
