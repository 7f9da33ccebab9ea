package bakery

import (
	"blockbake/internal/atlas"
	"blockbake/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// uvLocker projects a model-local position onto face-aligned texture space.
type uvLocker func(p mgl32.Vec3) (u, v float32)

var uvLockers = [world.DirectionCount]uvLocker{
	world.Down:  func(p mgl32.Vec3) (float32, float32) { return p[0], 1 - p[2] },
	world.Up:    func(p mgl32.Vec3) (float32, float32) { return p[0], p[2] },
	world.North: func(p mgl32.Vec3) (float32, float32) { return 1 - p[0], 1 - p[1] },
	world.South: func(p mgl32.Vec3) (float32, float32) { return p[0], 1 - p[1] },
	world.West:  func(p mgl32.Vec3) (float32, float32) { return p[2], 1 - p[1] },
	world.East:  func(p mgl32.Vec3) (float32, float32) { return 1 - p[2], 1 - p[1] },
}

// LockUV returns the position-derived texture coordinates for face.
func LockUV(face world.Direction, p mgl32.Vec3) (float32, float32) {
	return uvLockers[face](p)
}

// Rotate turns normalized coordinates clockwise by quarterTurns x 90 degrees.
func Rotate(quarterTurns int, u, v float32) (float32, float32) {
	switch quarterTurns & 3 {
	case 1:
		return v, 1 - u
	case 2:
		return 1 - u, 1 - v
	case 3:
		return 1 - v, u
	}
	return u, v
}

// Interpolate maps normalized coordinates into a sprite's atlas rectangle.
func Interpolate(s atlas.Sprite, u, v float32) (float32, float32) {
	return s.MinU() + u*(s.MaxU()-s.MinU()), s.MinV() + v*(s.MaxV()-s.MinV())
}
