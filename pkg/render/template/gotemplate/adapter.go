package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-wishlist-console/pkg/render/template"
)

// templateExt is appended to template names given without an extension.
const templateExt = ".tmpl"

// Option configures an Engine.
type Option func(*Engine)

// WithFS reads templates from files.
func WithFS(files fs.FS) Option {
	return func(e *Engine) {
		e.files = files
	}
}

// WithDir reads templates from a directory on disk.
func WithDir(dir string) Option {
	return func(e *Engine) {
		if dir = strings.TrimSpace(dir); dir != "" {
			e.files = os.DirFS(dir)
		}
	}
}

// WithGlobals exposes values to every template. Per-render data wins on
// conflicting keys.
func WithGlobals(values map[string]any) Option {
	return func(e *Engine) {
		for key, value := range values {
			e.globals[strings.TrimSpace(key)] = value
		}
	}
}

// Engine renders pongo2 templates and caches them after first use.
type Engine struct {
	files   fs.FS
	globals map[string]any

	set *pongo2.TemplateSet

	mu    sync.Mutex
	cache map[string]*pongo2.Template
}

var _ template.Renderer = (*Engine)(nil)

// New builds an Engine. A template source (WithFS or WithDir) is required.
func New(options ...Option) (*Engine, error) {
	e := &Engine{
		globals: map[string]any{},
		cache:   map[string]*pongo2.Template{},
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.files == nil {
		return nil, errors.New("gotemplate: a template source is required")
	}

	e.set = pongo2.NewSet("wishlist", pongo2.NewFSLoader(e.files))
	globals, err := toContext(e.globals)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: globals: %w", err)
	}
	e.set.Globals = globals

	if !pongo2.FilterExists("trim") {
		if err := pongo2.RegisterFilter("trim", trimFilter); err != nil {
			return nil, fmt.Errorf("gotemplate: register trim: %w", err)
		}
	}
	return e, nil
}

// Render executes name with data and writes the result to w. Nothing is
// written when execution fails.
func (e *Engine) Render(w io.Writer, name string, data any) error {
	tpl, err := e.lookup(name)
	if err != nil {
		return err
	}
	ctx, err := toContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: %s: context: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteWriter(ctx, &buf); err != nil {
		return fmt.Errorf("gotemplate: %s: %w", name, err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// RenderString is Render into a string.
func (e *Engine) RenderString(name string, data any) (string, error) {
	var sb strings.Builder
	if err := e.Render(&sb, name, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Filter registers fn under name. pongo2 filters are process wide, so a name
// that is already taken is an error.
func (e *Engine) Filter(name string, fn template.FilterFunc) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter needs a name and a function")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already registered", name)
	}
	return pongo2.RegisterFilter(name, adaptFilter(name, fn))
}

// EnsureFilter is Filter that tolerates an existing registration.
func (e *Engine) EnsureFilter(name string, fn template.FilterFunc) error {
	if pongo2.FilterExists(name) {
		return nil
	}
	return e.Filter(name, fn)
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	if path.Ext(name) == "" {
		name += templateExt
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tpl, ok := e.cache[name]; ok {
		return tpl, nil
	}
	tpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %s: %w", name, err)
	}
	e.cache[name] = tpl
	return tpl, nil
}

func adaptFilter(name string, fn template.FilterFunc) pongo2.FilterFunction {
	return func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		out, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(out), nil
	}
}

// toContext flattens data to maps and scalars through JSON so struct fields
// appear under their json names. json.Number keeps ids printing as integers.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	ctx := pongo2.Context{}
	if err := dec.Decode(&ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}

func trimFilter(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
