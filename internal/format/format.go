// Package format describes packed quad layouts and keeps a registry of them.
package format

import (
	"fmt"
	"sort"
	"sync"

	"blockbake/internal/quad"
)

// VanillaQuadStride is the word count of an engine block quad without
// layers or header (4 vertices x 7 words). Larger formats are "extended".
const VanillaQuadStride = 28

// Standard format identifiers, one per texture depth.
const (
	Single = "blockbake:single"
	Double = "blockbake:double"
	Triple = "blockbake:triple"
)

// VertexFormat is an immutable description of a packed quad layout.
type VertexFormat struct {
	id         string
	stride     int
	layers     int
	blockReady bool
	itemReady  bool
}

// New describes the quad layout for the given texture depth.
func New(id string, layers int, blockCompatible, itemCompatible bool) VertexFormat {
	return VertexFormat{
		id:         id,
		stride:     quad.Size(layers),
		layers:     layers,
		blockReady: blockCompatible,
		itemReady:  itemCompatible,
	}
}

func (f VertexFormat) ID() string { return f.id }

// Stride is the number of words per quad.
func (f VertexFormat) Stride() int { return f.stride }

// Layers is the texture depth.
func (f VertexFormat) Layers() int { return f.layers }

func (f VertexFormat) BlockCompatible() bool { return f.blockReady }
func (f VertexFormat) ItemCompatible() bool  { return f.itemReady }

// Extended reports whether the format is larger than an engine block quad.
func (f VertexFormat) Extended() bool { return f.stride > VanillaQuadStride }

func (f VertexFormat) String() string {
	return fmt.Sprintf("%s(layers=%d, stride=%d)", f.id, f.layers, f.stride)
}

// Registry holds formats by identifier. Entries are never replaced or removed,
// so a lookup result stays valid for the registry's lifetime.
type Registry struct {
	mu      sync.RWMutex
	formats map[string]VertexFormat
}

// NewRegistry returns a registry preloaded with the three standard formats.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	r.Register(New(Single, 1, true, true))
	r.Register(New(Double, 2, true, true))
	r.Register(New(Triple, 3, true, true))
	return r
}

// NewEmptyRegistry returns a registry without any formats.
func NewEmptyRegistry() *Registry {
	return &Registry{formats: make(map[string]VertexFormat)}
}

// Register adds f. It returns false, leaving the existing entry untouched,
// when the identifier is already taken.
func (r *Registry) Register(f VertexFormat) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.formats[f.id]; exists {
		return false
	}
	r.formats[f.id] = f
	return true
}

// Get looks up a format by identifier.
func (r *Registry) Get(id string) (VertexFormat, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formats[id]
	return f, ok
}

// MustGet is Get for identifiers that are known to be registered.
func (r *Registry) MustGet(id string) VertexFormat {
	f, ok := r.Get(id)
	if !ok {
		panic(fmt.Sprintf("format: %q is not registered", id))
	}
	return f
}

// ForLayers returns the standard format for a texture depth.
func (r *Registry) ForLayers(layers int) (VertexFormat, bool) {
	switch layers {
	case 1:
		return r.Get(Single)
	case 2:
		return r.Get(Double)
	case 3:
		return r.Get(Triple)
	}
	return VertexFormat{}, false
}

// IDs returns all registered identifiers, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.formats))
	for id := range r.formats {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
