package bakery

import (
	"math"

	"blockbake/internal/quad"
	"blockbake/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// EpsilonMin and EpsilonMax bound how close a coordinate must be to the
	// block's 0 or 1 plane to count as lying on it.
	EpsilonMin = 1e-4
	EpsilonMax = 0.9999
)

// FaceNormal returns the unit normal of the plane through vertices 0, 1 and
// 2, (v1-v0) x (v2-v0). Degenerate quads yield the zero vector.
func FaceNormal(data []uint32, base int) mgl32.Vec3 {
	p0 := quad.Position(data, base, 0)
	e1 := quad.Position(data, base, 1).Sub(p0)
	e2 := quad.Position(data, base, 2).Sub(p0)
	n := e1.Cross(e2)
	l := n.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return n.Mul(1 / l)
}

// LightFace returns the direction of the dominant normal component. Ties go
// to X, then Y, then Z. The zero vector has no direction.
func LightFace(n mgl32.Vec3) world.Direction {
	ax := math.Abs(float64(n[0]))
	ay := math.Abs(float64(n[1]))
	az := math.Abs(float64(n[2]))
	switch {
	case ax == 0 && ay == 0 && az == 0:
		return world.NoDirection
	case ax >= ay && ax >= az:
		return world.DirectionFromAxis(world.AxisX, n[0] > 0)
	case ay >= az:
		return world.DirectionFromAxis(world.AxisY, n[1] > 0)
	default:
		return world.DirectionFromAxis(world.AxisZ, n[2] > 0)
	}
}

// IsOnBlockFace reports whether every vertex lies on the plane of face: the
// block's 1 plane for positive faces and its 0 plane for negative ones.
func IsOnBlockFace(data []uint32, base int, face world.Direction) bool {
	if !face.Valid() {
		return false
	}
	axis := int(face.Axis())
	positive := face.Positive()
	for v := 0; v < quad.VertexCount; v++ {
		c := quad.PosComponent(data, base, v, axis)
		if positive && c < EpsilonMax || !positive && c > EpsilonMin {
			return false
		}
	}
	return true
}

// GeometricFace returns face when the quad lies on a block face along that
// axis and NoDirection otherwise.
func GeometricFace(data []uint32, base int, face world.Direction) world.Direction {
	if IsOnBlockFace(data, base, face) {
		return face
	}
	return world.NoDirection
}
