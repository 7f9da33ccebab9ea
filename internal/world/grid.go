package world

import (
	"sync"
)

const (
	// AO light level of full cubes and of everything else.
	fullCubeAOLevel = 0.2
	defaultAOLevel  = 1.0
	defaultSkyLevel = MaxLightLevel
)

// Grid is an in-memory BlockView made of sparse 16^3 sections.
// Reads and writes are safe for concurrent use, but a rebuild should only
// read a Grid that is not being modified.
type Grid struct {
	props    BlockProperties
	chunks   map[ChunkCoord]*Chunk
	mu       sync.RWMutex
	modCount uint64
	skyLevel int
}

// NewGrid creates an empty grid using props to answer per-state questions.
func NewGrid(props BlockProperties) *Grid {
	return &Grid{
		props:    props,
		chunks:   make(map[ChunkCoord]*Chunk),
		skyLevel: defaultSkyLevel,
	}
}

// SetSkyLevel sets the sky light used for positions without explicit light.
func (g *Grid) SetSkyLevel(level int) {
	g.mu.Lock()
	g.skyLevel = clampLevel(level)
	g.modCount++
	g.mu.Unlock()
}

// GetChunk returns the section at the given coordinates.
// If it doesn't exist and create is true, an empty one is created.
func (g *Grid) GetChunk(coord ChunkCoord, create bool) *Chunk {
	g.mu.RLock()
	chunk, exists := g.chunks[coord]
	g.mu.RUnlock()
	if exists || !create {
		return chunk
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	// another goroutine might have created it while we were waiting for the lock
	if existing, ok := g.chunks[coord]; ok {
		return existing
	}
	chunk = NewChunk(coord.X, coord.Y, coord.Z)
	g.chunks[coord] = chunk
	g.modCount++
	return chunk
}

func local(p BlockPos) (int, int, int) {
	return mod(p.X, ChunkSize), mod(p.Y, ChunkSize), mod(p.Z, ChunkSize)
}

// SetBlock places state at pos.
func (g *Grid) SetBlock(pos BlockPos, state BlockState) {
	chunk := g.GetChunk(ChunkCoordOf(pos), state != BlockStateAir)
	if chunk == nil {
		return
	}
	x, y, z := local(pos)
	g.mu.Lock()
	chunk.SetBlock(x, y, z, state)
	g.modCount++
	g.mu.Unlock()
}

// SetLight overrides the packed light at pos.
func (g *Grid) SetLight(pos BlockPos, packed uint32) {
	chunk := g.GetChunk(ChunkCoordOf(pos), true)
	x, y, z := local(pos)
	g.mu.Lock()
	chunk.SetLight(x, y, z, packed)
	g.modCount++
	g.mu.Unlock()
}

// GetModCount returns a counter that changes on every modification.
// Callers use it to decide when cached lighting became stale.
func (g *Grid) GetModCount() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.modCount
}

// BlockState implements BlockView.
func (g *Grid) BlockState(pos BlockPos) BlockState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	chunk := g.chunks[ChunkCoordOf(pos)]
	if chunk == nil {
		return BlockStateAir
	}
	x, y, z := local(pos)
	return chunk.GetBlock(x, y, z)
}

// Brightness implements BlockView. Explicit light wins; otherwise opaque
// cubes get only their own emission and everything else sees the sky.
func (g *Grid) Brightness(pos BlockPos) uint32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	state := BlockStateAir
	if chunk := g.chunks[ChunkCoordOf(pos)]; chunk != nil {
		x, y, z := local(pos)
		if v, ok := chunk.GetLight(x, y, z); ok {
			return v
		}
		state = chunk.GetBlock(x, y, z)
	}
	emission := g.props.LightEmission(state)
	if g.props.IsOpaqueFullCube(state) {
		return PackLight(emission, 0)
	}
	return PackLight(emission, g.skyLevel)
}

// AmbientOcclusionLightLevel implements BlockView.
func (g *Grid) AmbientOcclusionLightLevel(state BlockState, _ BlockPos) float32 {
	if g.props.IsFullCube(state) {
		return fullCubeAOLevel
	}
	return defaultAOLevel
}

// IsOpaqueFullCube implements BlockView.
func (g *Grid) IsOpaqueFullCube(state BlockState, _ BlockPos) bool {
	return g.props.IsOpaqueFullCube(state)
}
