package meshing

import (
	"blockbake/internal/format"
	"blockbake/internal/world"
)

// BakedModel is a run of packed quads sharing one vertex format.
type BakedModel struct {
	Format format.VertexFormat
	Quads  []uint32
}

// QuadCount returns how many packed quads the model holds.
func (m *BakedModel) QuadCount() int {
	if m == nil || m.Format.Stride() == 0 {
		return 0
	}
	return len(m.Quads) / m.Format.Stride()
}

// Quad returns the base offset of quad i within Quads.
func (m *BakedModel) Quad(i int) int {
	return i * m.Format.Stride()
}

// PlacedBlock is a model instance at a world position.
type PlacedBlock struct {
	Pos   world.BlockPos
	State world.BlockState
	Model *BakedModel
}

// TintSource resolves the RGB block colour applied to tinted layers.
type TintSource interface {
	TintColor(state world.BlockState, pos world.BlockPos) uint32
}
