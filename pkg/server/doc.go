// Package server serves the wishlist web console: the page is rendered on
// GET and every button press is a form POST that runs one surface action and
// renders the resulting page.
package server
