package theme

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Factory builds one variant.  It runs at most once per Registry, on the
// first request that selects the variant, so unused variants never parse
// their templates.
type Factory func() Renderer

// DefaultFactories is the production dispatch table.
func DefaultFactories() map[Key]Factory {
	return map[Key]Factory{
		Style1: newStyle1,
		Style2: newStyle2,
		Style3: newStyle3,
		TV9:    newTV9,
		TOI:    newTOI,
	}
}

type slot struct {
	once    sync.Once
	built   atomic.Bool
	factory Factory
	r       Renderer
}

// Registry is safe for concurrent use.
type Registry struct {
	slots map[Key]*slot
}

// NewRegistry requires a factory for every key in Keys and no others.
func NewRegistry(factories map[Key]Factory) (*Registry, error) {
	if len(factories) != len(Keys) {
		return nil, fmt.Errorf("theme: registry needs %d factories, got %d", len(Keys), len(factories))
	}
	g := &Registry{slots: make(map[Key]*slot, len(Keys))}
	for _, k := range Keys {
		f, ok := factories[k]
		if !ok || f == nil {
			return nil, fmt.Errorf("theme: no factory for %q", k)
		}
		g.slots[k] = &slot{factory: f}
	}
	return g, nil
}

// Select coerces raw, then materialises and returns that variant.
func (g *Registry) Select(raw string) Renderer {
	key := Coerce(raw)
	s := g.slots[key]
	s.once.Do(func() {
		s.r = s.factory()
		s.built.Store(true)
	})
	return s.r
}

// Loaded reports whether k's factory has run.
func (g *Registry) Loaded(k Key) bool {
	s, ok := g.slots[k]
	return ok && s.built.Load()
}
