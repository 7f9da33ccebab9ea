package world

// BlockPos is an integer block position.
type BlockPos struct {
	X, Y, Z int
}

// Add returns p + o.
func (p BlockPos) Add(o BlockPos) BlockPos {
	return BlockPos{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
}

// Offset returns the neighbour of p across d.
func (p BlockPos) Offset(d Direction) BlockPos {
	return p.Add(d.Offset())
}

// ChunkCoord represents the coordinates of a chunk section
type ChunkCoord struct {
	X, Y, Z int
}

// ChunkCoordOf returns the section containing p.
func ChunkCoordOf(p BlockPos) ChunkCoord {
	return ChunkCoord{
		X: floorDiv(p.X, ChunkSize),
		Y: floorDiv(p.Y, ChunkSize),
		Z: floorDiv(p.Z, ChunkSize),
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
