// Package demo builds small block sections for exercising the lighter.
package demo

import (
	"math"

	"blockbake/internal/meshing"
	"blockbake/internal/world"

	"github.com/aquilax/go-perlin"
)

// Section is a populated grid plus the blocks to rebuild.
type Section struct {
	Grid   *world.Grid
	Blocks []meshing.PlacedBlock
}

func newSection(props world.BlockProperties) *Section {
	return &Section{Grid: world.NewGrid(props)}
}

func (s *Section) place(pos world.BlockPos, state world.BlockState, m *meshing.BakedModel) {
	s.Grid.SetBlock(pos, state)
	s.Blocks = append(s.Blocks, meshing.PlacedBlock{Pos: pos, State: state, Model: m})
}

// Checkerboard fills a size^3 cube with every other block, cycling through
// states.
func Checkerboard(props world.BlockProperties, size int, states []world.BlockState, models map[world.BlockState]*meshing.BakedModel) *Section {
	s := newSection(props)
	if len(states) == 0 {
		return s
	}
	for y := 0; y < size; y++ {
		for z := 0; z < size; z++ {
			for x := 0; x < size; x++ {
				if (x+y+z)%2 != 0 {
					continue
				}
				state := states[len(s.Blocks)%len(states)]
				s.place(world.BlockPos{X: x, Y: y, Z: z}, state, models[state])
			}
		}
	}
	return s
}

// Terrain is a size x size heightmap of at most height blocks. Columns are
// filled with fill and capped with top.
type Terrain struct {
	Seed      int64
	Size      int
	Height    int
	Top, Fill world.BlockState
}

// Build samples 2D perlin noise per column.
func (t Terrain) Build(props world.BlockProperties, models map[world.BlockState]*meshing.BakedModel) *Section {
	s := newSection(props)
	noise := perlin.NewPerlin(2, 2, 3, t.Seed)
	for z := 0; z < t.Size; z++ {
		for x := 0; x < t.Size; x++ {
			n := (noise.Noise2D(float64(x)/8, float64(z)/8) + 1) / 2
			h := int(math.Round(n * float64(t.Height)))
			h = min(max(h, 1), t.Height)
			for y := 0; y < h; y++ {
				state := t.Fill
				if y == h-1 {
					state = t.Top
				}
				s.place(world.BlockPos{X: x, Y: y, Z: z}, state, models[state])
			}
		}
	}
	return s
}
