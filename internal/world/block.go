package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BlockState identifies a block state. The zero value is air.
type BlockState uint16

const (
	BlockStateAir BlockState = 0
)

// Direction identifies one of the six axis-aligned block faces.
// The index order matches the quad header and the AO lookup tables.
type Direction int8

const (
	Down Direction = iota
	Up
	North
	South
	West
	East

	// NoDirection marks a quad that does not lie on any block face.
	NoDirection Direction = -1
)

// DirectionCount is the number of real directions.
const DirectionCount = 6

// Axis of a direction.
type Axis int8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Directions lists all real directions in index order.
var Directions = [DirectionCount]Direction{Down, Up, North, South, West, East}

var (
	directionNames = [DirectionCount]string{"down", "up", "north", "south", "west", "east"}

	directionOffsets = [DirectionCount]BlockPos{
		{0, -1, 0},
		{0, 1, 0},
		{0, 0, -1},
		{0, 0, 1},
		{-1, 0, 0},
		{1, 0, 0},
	}
)

// Valid reports whether d is one of the six real directions.
func (d Direction) Valid() bool {
	return d >= Down && d <= East
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	if !d.Valid() {
		return NoDirection
	}
	return d ^ 1
}

// Axis returns the axis a direction runs along.
func (d Direction) Axis() Axis {
	switch d {
	case West, East:
		return AxisX
	case Down, Up:
		return AxisY
	default:
		return AxisZ
	}
}

// Positive reports whether d points along the positive half of its axis.
func (d Direction) Positive() bool {
	return d == Up || d == South || d == East
}

// Offset returns the unit block offset for d.
func (d Direction) Offset() BlockPos {
	if !d.Valid() {
		return BlockPos{}
	}
	return directionOffsets[d]
}

// Vector returns the unit normal for d.
func (d Direction) Vector() mgl32.Vec3 {
	o := d.Offset()
	return mgl32.Vec3{float32(o.X), float32(o.Y), float32(o.Z)}
}

func (d Direction) String() string {
	if !d.Valid() {
		return "none"
	}
	return directionNames[d]
}

// DirectionByName parses the lower-case face names used by block model JSON.
func DirectionByName(name string) (Direction, bool) {
	switch name {
	case "bottom":
		return Down, true
	case "top":
		return Up, true
	}
	for i, n := range directionNames {
		if n == name {
			return Direction(i), true
		}
	}
	return NoDirection, false
}

// DirectionFromAxis returns the direction along axis a with the given sign.
func DirectionFromAxis(a Axis, positive bool) Direction {
	var d Direction
	switch a {
	case AxisX:
		d = West
	case AxisY:
		d = Down
	default:
		d = North
	}
	if positive {
		d++
	}
	return d
}
