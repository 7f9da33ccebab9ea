package ao

import (
	"blockbake/internal/quad"
	"blockbake/internal/world"
)

const (
	edgeMin = 1e-4
	edgeMax = 0.9999
)

// FillQuadBounds writes the quad's extents into bounds and reports whether
// the face should be sampled around the neighbour block (the quad is flat on
// the face plane and either touches the block boundary or the block is a full
// cube) and whether it needs non-cubic weighting (it leaves part of the face
// uncovered).
func FillQuadBounds(data []uint32, base int, face world.Direction, fullCube bool, bounds *ShapeBounds) (useNeighbor, nonCubic bool) {
	minX, minY, minZ := float32(32), float32(32), float32(32)
	maxX, maxY, maxZ := float32(-32), float32(-32), float32(-32)
	for v := 0; v < quad.VertexCount; v++ {
		x, y, z := quad.X(data, base, v), quad.Y(data, base, v), quad.Z(data, base, v)
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
		minZ, maxZ = min(minZ, z), max(maxZ, z)
	}

	bounds[boundWest] = minX
	bounds[boundEast] = maxX
	bounds[boundDown] = minY
	bounds[boundUp] = maxY
	bounds[boundNorth] = minZ
	bounds[boundSouth] = maxZ
	for d := 0; d < world.DirectionCount; d++ {
		bounds[d+flipDown] = 1 - bounds[d]
	}

	partial := func(aMin, bMin, aMax, bMax float32) bool {
		return aMin >= edgeMin || bMin >= edgeMin || aMax <= edgeMax || bMax <= edgeMax
	}
	switch face {
	case world.Down:
		nonCubic = partial(minX, minZ, maxX, maxZ)
		useNeighbor = minY == maxY && (minY < edgeMin || fullCube)
	case world.Up:
		nonCubic = partial(minX, minZ, maxX, maxZ)
		useNeighbor = minY == maxY && (maxY > edgeMax || fullCube)
	case world.North:
		nonCubic = partial(minX, minY, maxX, maxY)
		useNeighbor = minZ == maxZ && (minZ < edgeMin || fullCube)
	case world.South:
		nonCubic = partial(minX, minY, maxX, maxY)
		useNeighbor = minZ == maxZ && (maxZ > edgeMax || fullCube)
	case world.West:
		nonCubic = partial(minY, minZ, maxY, maxZ)
		useNeighbor = minX == maxX && (minX < edgeMin || fullCube)
	case world.East:
		nonCubic = partial(minY, minZ, maxY, maxZ)
		useNeighbor = minX == maxX && (maxX > edgeMax || fullCube)
	}
	return useNeighbor, nonCubic
}
