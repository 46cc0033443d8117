package render

import (
	"errors"
	"fmt"
	"mime"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownRenderer is returned by Get for names nobody registered.
var ErrUnknownRenderer = errors.New("render: unknown renderer")

// Registry keeps page renderers by name and can pick one for an Accept
// header.
type Registry struct {
	mu    sync.RWMutex
	byKey map[string]Renderer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: map[string]Renderer{}}
}

// Register adds renderer under its Name. Names are unique.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: nil renderer")
	}
	name := strings.TrimSpace(renderer.Name())
	if name == "" {
		return errors.New("render: renderer has no name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byKey[name]; taken {
		return fmt.Errorf("render: %q registered twice", name)
	}
	r.byKey[name] = renderer
	return nil
}

// MustRegister is Register for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer called name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	renderer, ok := r.byKey[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownRenderer, name)
	}
	return renderer, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byKey[name]
	return ok
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.byKey))
	for name := range r.byKey {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Negotiate walks the media ranges of an Accept header in the order given
// and returns the first renderer producing that exact media type. Wildcards
// never match so callers keep their own default.
func (r *Registry) Negotiate(accept string) (Renderer, bool) {
	if strings.TrimSpace(accept) == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	byType := make(map[string]Renderer, len(r.byKey))
	for _, name := range sortedKeys(r.byKey) {
		renderer := r.byKey[name]
		mediaType, _, err := mime.ParseMediaType(renderer.ContentType())
		if err != nil {
			continue
		}
		if _, seen := byType[mediaType]; !seen {
			byType[mediaType] = renderer
		}
	}

	for _, part := range strings.Split(accept, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil || strings.Contains(mediaType, "*") {
			continue
		}
		if renderer, ok := byType[mediaType]; ok {
			return renderer, true
		}
	}
	return nil, false
}

func sortedKeys(m map[string]Renderer) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
