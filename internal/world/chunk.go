package world

const (
	// ChunkSize is the edge length of a cubic grid section.
	ChunkSize    = 16
	chunkVolume  = ChunkSize * ChunkSize * ChunkSize
	noLightValue = ^uint32(0)
)

// Chunk is a 16x16x16 section of block states with optional explicit light.
// Light entries equal to noLightValue fall back to the grid's computed light.
type Chunk struct {
	X, Y, Z int
	blocks  []BlockState
	light   []uint32
	dirty   bool
}

// NewChunk creates an empty section at the given section coordinates
func NewChunk(x, y, z int) *Chunk {
	return &Chunk{
		X:     x,
		Y:     y,
		Z:     z,
		dirty: true,
	}
}

func indexInChunk(x, y, z int) int {
	return x*ChunkSize*ChunkSize + y*ChunkSize + z
}

func inChunk(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && y >= 0 && y < ChunkSize && z >= 0 && z < ChunkSize
}

// GetBlock returns the block state at the specified local coordinates
func (c *Chunk) GetBlock(x, y, z int) BlockState {
	if !inChunk(x, y, z) || c.blocks == nil {
		return BlockStateAir
	}
	return c.blocks[indexInChunk(x, y, z)]
}

// SetBlock sets the block state at the specified local coordinates
func (c *Chunk) SetBlock(x, y, z int, state BlockState) {
	if !inChunk(x, y, z) {
		return
	}
	if c.blocks == nil {
		if state == BlockStateAir {
			return
		}
		c.blocks = make([]BlockState, chunkVolume)
	}
	idx := indexInChunk(x, y, z)
	if c.blocks[idx] != state {
		c.blocks[idx] = state
		c.dirty = true
	}
}

// GetLight returns the explicit light at the local coordinates, if any.
func (c *Chunk) GetLight(x, y, z int) (uint32, bool) {
	if !inChunk(x, y, z) || c.light == nil {
		return 0, false
	}
	v := c.light[indexInChunk(x, y, z)]
	return v, v != noLightValue
}

// SetLight stores explicit packed light at the local coordinates.
func (c *Chunk) SetLight(x, y, z int, packed uint32) {
	if !inChunk(x, y, z) {
		return
	}
	if c.light == nil {
		c.light = make([]uint32, chunkVolume)
		for i := range c.light {
			c.light[i] = noLightValue
		}
	}
	c.light[indexInChunk(x, y, z)] = packed & LightMask
	c.dirty = true
}

// IsAir checks if the block at the specified local coordinates is air
func (c *Chunk) IsAir(x, y, z int) bool {
	return c.GetBlock(x, y, z) == BlockStateAir
}

// IsDirty returns whether the chunk has been modified since last rebuild
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// SetClean marks the chunk as clean (not modified)
func (c *Chunk) SetClean() {
	c.dirty = false
}
