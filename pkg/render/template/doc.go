// Package template holds the engine seam used by the HTML page renderer.
// gotemplate implements it with pongo2.
package template
