// Package apispec loads the OpenAPI description of the remote wishlist service
// and exposes the pieces the console needs: operation routes, request schemas
// for building form fields, and request body validation.
//
// The embedded wishlist.yaml document is used by default; callers can load an
// alternate description with Load when the service publishes its own.
package apispec
