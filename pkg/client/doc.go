// Package client is a typed JSON-over-HTTP client for the wishlist service.
//
// Each method maps to one endpoint and issues exactly one request: there are no
// retries and no caching. Non-2xx responses are returned as *APIError carrying
// the message the service supplied, or the HTTP status text when it did not.
package client
