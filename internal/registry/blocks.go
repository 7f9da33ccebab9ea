// Package registry maps block states to their definitions and models.
package registry

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"blockbake/internal/meshing"
	"blockbake/internal/model"
	"blockbake/internal/quad"
	"blockbake/internal/world"
	"blockbake/pkg/blockmodel"
)

// ErrUnknownBlock is returned by lookups for unregistered blocks.
var ErrUnknownBlock = errors.New("registry: unknown block")

// DefaultTint is the colour tinted faces take when a block sets none.
const DefaultTint = 0xFFFFFF

// BlockDefinition defines the properties of a block type.
type BlockDefinition struct {
	ID   world.BlockState
	Name string
	// Transparent keeps a full cube from occluding its neighbours (glass,
	// leaves).
	Transparent bool
	FullCube    bool
	Emission    int
	TintColor   uint32
	Pass        quad.RenderPass

	Model   *blockmodel.Model
	Variant blockmodel.Variant
}

// Opaque reports whether the block is an opaque full cube.
func (d *BlockDefinition) Opaque() bool {
	return d.FullCube && !d.Transparent && d.Pass == quad.PassSolid
}

// Registry holds block definitions and the texture names their models use.
// It is safe for concurrent reads once populated.
type Registry struct {
	mu       sync.RWMutex
	byID     map[world.BlockState]*BlockDefinition
	byName   map[string]*BlockDefinition
	order    []world.BlockState
	textures []string
	seenTex  map[string]struct{}
}

func New() *Registry {
	return &Registry{
		byID:    make(map[world.BlockState]*BlockDefinition),
		byName:  make(map[string]*BlockDefinition),
		seenTex: make(map[string]struct{}),
	}
}

// Register adds def. The first registration of an ID or name wins; later
// ones return false.
func (r *Registry) Register(def *BlockDefinition) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[def.ID]; ok {
		return false
	}
	if _, ok := r.byName[def.Name]; ok {
		return false
	}
	r.byID[def.ID] = def
	r.byName[def.Name] = def
	r.order = append(r.order, def.ID)
	if def.Model != nil {
		r.registerModelTextures(def.Model)
	}
	return true
}

// Get returns the definition for id.
func (r *Registry) Get(id world.BlockState) (*BlockDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if def, ok := r.byID[id]; ok {
		return def, nil
	}
	return nil, fmt.Errorf("%w: id %d", ErrUnknownBlock, id)
}

// ByName returns the definition registered under name.
func (r *Registry) ByName(name string) (*BlockDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if def, ok := r.byName[name]; ok {
		return def, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBlock, name)
}

// Definitions returns every definition in registration order.
func (r *Registry) Definitions() []*BlockDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*BlockDefinition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of registered blocks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Textures returns the texture file names referenced by registered models,
// in first-seen order.
func (r *Registry) Textures() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.textures...)
}

func (r *Registry) registerModelTextures(m *blockmodel.Model) {
	for _, e := range m.Elements {
		// Face maps have no order; sort for a stable atlas layout.
		keys := make([]string, 0, len(e.Faces))
		for k := range e.Faces {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			r.registerTexture(blockmodel.TextureFile(e.Faces[k].Texture))
		}
	}
}

func (r *Registry) registerTexture(name string) {
	if name == "" {
		return
	}
	if _, ok := r.seenTex[name]; ok {
		return
	}
	r.seenTex[name] = struct{}{}
	r.textures = append(r.textures, name)
}

// LoadModels resolves a blockstate and model for every definition without
// one. Failures are logged and leave the block without a model. It returns
// the number of models attached.
func (r *Registry) LoadModels(loader *blockmodel.Loader) int {
	loaded := 0
	for _, def := range r.Definitions() {
		if def.Model != nil || def.ID == world.BlockStateAir {
			continue
		}
		bs, err := loader.LoadBlockState(def.Name)
		if err != nil {
			log.Printf("Warning: Failed to load blockstate for %s: %v", def.Name, err)
			continue
		}
		variant, ok := bs.DefaultVariant()
		if !ok || variant.Model == "" {
			log.Printf("Warning: Blockstate for %s has no variants", def.Name)
			continue
		}
		m, err := loader.LoadModel(variant.Model)
		if err != nil {
			log.Printf("Warning: Failed to load model %s for block %s: %v", variant.Model, def.Name, err)
			continue
		}

		r.mu.Lock()
		def.Model = m
		def.Variant = variant
		if len(m.Elements) > 0 {
			def.FullCube = hasFullElement(m)
		}
		r.registerModelTextures(m)
		r.mu.Unlock()
		loaded++
	}
	log.Printf("Registry: %d blocks, %d models, %d textures", r.Len(), loaded, len(r.Textures()))
	return loaded
}

// hasFullElement reports whether any element spans the whole block. A grass
// block's overlay element does not change that.
func hasFullElement(m *blockmodel.Model) bool {
	const epsilon = 0.001
	near := func(v [3]float32, want float32) bool {
		for _, c := range v {
			if c < want-epsilon || c > want+epsilon {
				return false
			}
		}
		return true
	}
	for _, e := range m.Elements {
		if e.Rotation == nil && near(e.From, 0) && near(e.To, 16) {
			return true
		}
	}
	return false
}

// BakeAll bakes the model of every block that has one. Failed bakes are
// reported together and leave the block out of the result.
func (r *Registry) BakeAll(b *model.Baker) (map[world.BlockState]*meshing.BakedModel, error) {
	out := make(map[world.BlockState]*meshing.BakedModel)
	var errs []error
	for _, def := range r.Definitions() {
		if def.Model == nil {
			continue
		}
		opts := model.OptionsFor(def.Variant)
		opts.Pass = def.Pass
		baked, err := b.Bake(def.Model, opts)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", def.Name, err))
			continue
		}
		out[def.ID] = baked
	}
	return out, errors.Join(errs...)
}

func (r *Registry) lookup(state world.BlockState) *BlockDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[state]
}

// IsOpaqueFullCube implements world.BlockProperties.
func (r *Registry) IsOpaqueFullCube(state world.BlockState) bool {
	def := r.lookup(state)
	return def != nil && def.Opaque()
}

func (r *Registry) IsFullCube(state world.BlockState) bool {
	def := r.lookup(state)
	return def != nil && def.FullCube
}

func (r *Registry) LightEmission(state world.BlockState) int {
	if def := r.lookup(state); def != nil {
		return def.Emission
	}
	return 0
}

// TintColor implements meshing.TintSource. Positions do not vary the colour.
func (r *Registry) TintColor(state world.BlockState, _ world.BlockPos) uint32 {
	if def := r.lookup(state); def != nil && def.TintColor != 0 {
		return def.TintColor
	}
	return DefaultTint
}
