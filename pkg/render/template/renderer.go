package template

import "io"

// FilterFunc transforms a template value. param is nil when the filter is
// used without an argument.
type FilterFunc func(input any, param any) (any, error)

// Renderer executes named templates. Page renderers depend on this seam, not
// on a concrete engine.
type Renderer interface {
	// Render executes name with data and writes the output to w.
	Render(w io.Writer, name string, data any) error
	// Filter makes fn available to templates under name.
	Filter(name string, fn FilterFunc) error
}
