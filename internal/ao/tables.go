package ao

import "blockbake/internal/world"

// Indexes into ShapeBounds. The first six mirror world.Direction; the
// flipped entries hold 1 - extent.
const (
	boundDown = iota
	boundUp
	boundNorth
	boundSouth
	boundWest
	boundEast
	flipDown
	flipUp
	flipNorth
	flipSouth
	flipWest
	flipEast

	ShapeBoundsLen
)

// ShapeBounds holds the extents of a quad inside its block: per direction the
// min or max coordinate along that axis, then the same six values flipped.
type ShapeBounds [ShapeBoundsLen]float32

// neighborData lists, per light face, the four sampled neighbour directions
// and, per output corner, four pairs of bound indexes whose products weight
// the raw corners in the non-cubic blend.
type neighborData struct {
	faces          [4]world.Direction
	nonCubicWeight bool
	weights        [4][8]int
}

var neighbors = [world.DirectionCount]neighborData{
	world.Down: {
		faces:          [4]world.Direction{world.West, world.East, world.North, world.South},
		nonCubicWeight: true,
		weights: [4][8]int{
			{flipWest, boundSouth, flipWest, flipSouth, boundWest, flipSouth, boundWest, boundSouth},
			{flipWest, boundNorth, flipWest, flipNorth, boundWest, flipNorth, boundWest, boundNorth},
			{flipEast, boundNorth, flipEast, flipNorth, boundEast, flipNorth, boundEast, boundNorth},
			{flipEast, boundSouth, flipEast, flipSouth, boundEast, flipSouth, boundEast, boundSouth},
		},
	},
	world.Up: {
		faces:          [4]world.Direction{world.East, world.West, world.North, world.South},
		nonCubicWeight: true,
		weights: [4][8]int{
			{boundEast, boundSouth, boundEast, flipSouth, flipEast, flipSouth, flipEast, boundSouth},
			{boundEast, boundNorth, boundEast, flipNorth, flipEast, flipNorth, flipEast, boundNorth},
			{boundWest, boundNorth, boundWest, flipNorth, flipWest, flipNorth, flipWest, boundNorth},
			{boundWest, boundSouth, boundWest, flipSouth, flipWest, flipSouth, flipWest, boundSouth},
		},
	},
	world.North: {
		faces:          [4]world.Direction{world.Up, world.Down, world.East, world.West},
		nonCubicWeight: true,
		weights: [4][8]int{
			{boundUp, flipWest, boundUp, boundWest, flipUp, boundWest, flipUp, flipWest},
			{boundUp, flipEast, boundUp, boundEast, flipUp, boundEast, flipUp, flipEast},
			{boundDown, flipEast, boundDown, boundEast, flipDown, boundEast, flipDown, flipEast},
			{boundDown, flipWest, boundDown, boundWest, flipDown, boundWest, flipDown, flipWest},
		},
	},
	world.South: {
		faces:          [4]world.Direction{world.West, world.East, world.Down, world.Up},
		nonCubicWeight: true,
		weights: [4][8]int{
			{boundUp, flipWest, flipUp, flipWest, flipUp, boundWest, boundUp, boundWest},
			{boundDown, flipWest, flipDown, flipWest, flipDown, boundWest, boundDown, boundWest},
			{boundDown, flipEast, flipDown, flipEast, flipDown, boundEast, boundDown, boundEast},
			{boundUp, flipEast, flipUp, flipEast, flipUp, boundEast, boundUp, boundEast},
		},
	},
	world.West: {
		faces:          [4]world.Direction{world.Up, world.Down, world.North, world.South},
		nonCubicWeight: true,
		weights: [4][8]int{
			{boundUp, boundSouth, boundUp, flipSouth, flipUp, flipSouth, flipUp, boundSouth},
			{boundUp, boundNorth, boundUp, flipNorth, flipUp, flipNorth, flipUp, boundNorth},
			{boundDown, boundNorth, boundDown, flipNorth, flipDown, flipNorth, flipDown, boundNorth},
			{boundDown, boundSouth, boundDown, flipSouth, flipDown, flipSouth, flipDown, boundSouth},
		},
	},
	world.East: {
		faces:          [4]world.Direction{world.Down, world.Up, world.North, world.South},
		nonCubicWeight: true,
		weights: [4][8]int{
			{flipDown, boundSouth, flipDown, flipSouth, boundDown, flipSouth, boundDown, boundSouth},
			{flipDown, boundNorth, flipDown, flipNorth, boundDown, flipNorth, boundDown, boundNorth},
			{flipUp, boundNorth, flipUp, flipNorth, boundUp, flipNorth, boundUp, boundNorth},
			{flipUp, boundSouth, flipUp, flipSouth, boundUp, flipSouth, boundUp, boundSouth},
		},
	},
}

// translations maps sampling corner n to the quad vertex it lights.
var translations = [world.DirectionCount][4]int{
	world.Down:  {0, 1, 2, 3},
	world.Up:    {2, 3, 0, 1},
	world.North: {3, 0, 1, 2},
	world.South: {0, 1, 2, 3},
	world.West:  {3, 0, 1, 2},
	world.East:  {1, 2, 3, 0},
}
