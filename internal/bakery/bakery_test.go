package bakery

import (
	"testing"

	"blockbake/internal/atlas"
	"blockbake/internal/quad"
	"blockbake/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuad(layers int, pos ...[3]float32) []uint32 {
	data := make([]uint32, quad.MaxSize)
	quad.Reset(data, 0)
	quad.SetDepth(data, 0, layers)
	for v, p := range pos {
		quad.SetPosition(data, 0, v, p[0], p[1], p[2])
	}
	return data
}

func unitSquareZ1() []uint32 {
	return newQuad(1, [3]float32{0, 0, 1}, [3]float32{1, 0, 1}, [3]float32{1, 1, 1}, [3]float32{0, 1, 1})
}

func bake(t *testing.T, src []uint32, sprites []atlas.Sprite, tr quad.Transform) []uint32 {
	t.Helper()
	out := make([]uint32, quad.Size(quad.LayerCount(src, 0)))
	require.Equal(t, len(out), Bake(src, sprites, out, 0, tr))
	return out
}

func TestBakeComputesNormalAndFace(t *testing.T) {
	out := bake(t, unitSquareZ1(), nil, quad.DefaultTransform)
	for v := 0; v < quad.VertexCount; v++ {
		assert.Equal(t, mgl32.Vec3{0, 0, 1}, quad.Normal(out, 0, v))
	}
	assert.Equal(t, world.South, quad.ActualFace(out, 0))
	assert.Equal(t, world.South, quad.NominalFace(out, 0))

	reversed := newQuad(1, [3]float32{0, 1, 0}, [3]float32{1, 1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, 0})
	out = bake(t, reversed, nil, quad.DefaultTransform)
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, quad.Normal(out, 0, 0))
	assert.Equal(t, world.North, quad.ActualFace(out, 0))
}

func TestBakeKeepsExplicitNormals(t *testing.T) {
	src := unitSquareZ1()
	quad.SetNormal(src, 0, 2, 0, 1, 0)
	out := bake(t, src, nil, quad.DefaultTransform)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, quad.Normal(out, 0, 2))
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, quad.Normal(out, 0, 1))
}

func TestBakeFaceDetection(t *testing.T) {
	top := newQuad(1, [3]float32{0, 1, 0}, [3]float32{0, 1, 1}, [3]float32{1, 1, 1}, [3]float32{1, 1, 0})
	out := bake(t, top, nil, quad.DefaultTransform)
	assert.Equal(t, world.Up, quad.ActualFace(out, 0))
	assert.True(t, IsOnBlockFace(out, 0, world.Up))

	mid := newQuad(1, [3]float32{0, 0.5, 0}, [3]float32{0, 0.5, 1}, [3]float32{1, 0.5, 1}, [3]float32{1, 0.5, 0})
	out = bake(t, mid, nil, quad.DefaultTransform)
	assert.Equal(t, world.NoDirection, quad.ActualFace(out, 0))
	assert.False(t, IsOnBlockFace(out, 0, world.Up))
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, quad.Normal(out, 0, 0))
}

func TestBakeFaceNeedsMatchingSide(t *testing.T) {
	// Faces up but lies on the bottom plane.
	floor := newQuad(1, [3]float32{0, 0, 0}, [3]float32{0, 0, 1}, [3]float32{1, 0, 1}, [3]float32{1, 0, 0})
	out := bake(t, floor, nil, quad.DefaultTransform)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, quad.Normal(out, 0, 0))
	assert.Equal(t, world.NoDirection, quad.ActualFace(out, 0))
	assert.False(t, IsOnBlockFace(out, 0, world.Up))
	assert.True(t, IsOnBlockFace(out, 0, world.Down))

	// Faces west but lies on the x=1 plane.
	wall := newQuad(1, [3]float32{1, 1, 1}, [3]float32{1, 0, 1}, [3]float32{1, 0, 0}, [3]float32{1, 1, 0})
	assert.False(t, IsOnBlockFace(wall, 0, world.West))
	assert.True(t, IsOnBlockFace(wall, 0, world.East))
}

func TestBakeNominalFaceWins(t *testing.T) {
	src := unitSquareZ1()
	quad.SetNominalFace(src, 0, world.Up)
	out := bake(t, src, nil, quad.DefaultTransform)
	assert.Equal(t, world.Up, quad.NominalFace(out, 0))
	assert.Equal(t, world.South, quad.ActualFace(out, 0))
	// Locked against the top face: u = x, v = z.
	for v := 0; v < quad.VertexCount; v++ {
		assert.Equal(t, quad.X(out, 0, v), quad.U(out, 0, 0, v))
		assert.Equal(t, float32(0), quad.V(out, 0, 0, v))
	}
}

func TestBakeIsDeterministic(t *testing.T) {
	src := unitSquareZ1()
	sprites := []atlas.Sprite{&atlas.Region{U0: 0.25, V0: 0, U1: 0.5, V1: 0.25}}
	tr := quad.DefaultTransform.WithRotation(0, 1).WithFlipU(0, true)
	a := bake(t, src, sprites, tr)
	b := bake(t, src, sprites, tr)
	assert.Equal(t, a, b)
}

func TestBakeDoesNotMutateSource(t *testing.T) {
	src := unitSquareZ1()
	before := append([]uint32(nil), src...)
	bake(t, src, []atlas.Sprite{&atlas.Region{U1: 1, V1: 1}}, quad.DefaultTransform.WithRotation(0, 2))
	assert.Equal(t, before, src)
}

func TestLockUVUsesPositionOnly(t *testing.T) {
	top := newQuad(1, [3]float32{0, 1, 0}, [3]float32{0, 1, 1}, [3]float32{1, 1, 1}, [3]float32{1, 1, 0})
	for v := 0; v < quad.VertexCount; v++ {
		quad.SetUV(top, 0, 0, v, 0.3, 0.9)
	}
	out := bake(t, top, nil, quad.DefaultTransform)
	want := [][2]float32{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	for v, uv := range want {
		assert.Equal(t, uv[0], quad.U(out, 0, 0, v), "vertex %d", v)
		assert.Equal(t, uv[1], quad.V(out, 0, 0, v), "vertex %d", v)
	}
}

func TestRotationTurnsUVs(t *testing.T) {
	uvs := [][2]float32{{0, 0}, {0.25, 0.75}, {1, 0.5}, {0.5, 1}}
	src := unitSquareZ1()
	for v, uv := range uvs {
		quad.SetUV(src, 0, 0, v, uv[0], uv[1])
	}
	unlocked := quad.DefaultTransform.WithLockUV(0, false)

	// 90: (v, 1-u), 180: (1-u, 1-v), 270: (1-v, u).
	want := [4][4][2]float32{
		{{0, 0}, {0.25, 0.75}, {1, 0.5}, {0.5, 1}},
		{{0, 1}, {0.75, 0.75}, {0.5, 0}, {1, 0.5}},
		{{1, 1}, {0.75, 0.25}, {0, 0.5}, {0.5, 0}},
		{{1, 0}, {0.25, 0.25}, {0.5, 1}, {0, 0.5}},
	}
	for turns, row := range want {
		out := bake(t, src, nil, unlocked.WithRotation(0, turns))
		for v, uv := range row {
			assert.Equal(t, uv[0], quad.U(out, 0, 0, v), "turns %d vertex %d", turns, v)
			assert.Equal(t, uv[1], quad.V(out, 0, 0, v), "turns %d vertex %d", turns, v)
		}
	}

	u, v := Rotate(5, 0.25, 0.75)
	assert.Equal(t, [2]float32{0.75, 0.75}, [2]float32{u, v}, "turns wrap modulo 4")
}

func TestFlipAndScale(t *testing.T) {
	src := unitSquareZ1()
	for v := 0; v < quad.VertexCount; v++ {
		quad.SetUV(src, 0, 0, v, 4, 12)
	}
	tr := quad.DefaultTransform.WithLockUV(0, false).WithUVScale(0, true)

	out := bake(t, src, nil, tr)
	assert.Equal(t, float32(0.25), quad.U(out, 0, 0, 0))
	assert.Equal(t, float32(0.75), quad.V(out, 0, 0, 0))

	out = bake(t, src, nil, tr.WithFlipU(0, true).WithFlipV(0, true))
	assert.Equal(t, float32(0.75), quad.U(out, 0, 0, 0))
	assert.Equal(t, float32(0.25), quad.V(out, 0, 0, 0))
}

func TestRawUVPassesThrough(t *testing.T) {
	src := unitSquareZ1()
	quad.SetUV(src, 0, 0, 0, 0.123, 0.456)
	sprite := &atlas.Region{U0: 0.5, U1: 1, V0: 0.5, V1: 1}
	out := bake(t, src, []atlas.Sprite{sprite}, quad.DefaultTransform.WithRawUV(0, true).WithRotation(0, 1))
	assert.Equal(t, float32(0.123), quad.U(out, 0, 0, 0))
	assert.Equal(t, float32(0.456), quad.V(out, 0, 0, 0))
	assert.True(t, quad.IsPresent(out, 0, 0))
}

func TestSpritesPerLayer(t *testing.T) {
	src := newQuad(2, [3]float32{0, 1, 0}, [3]float32{0, 1, 1}, [3]float32{1, 1, 1}, [3]float32{1, 1, 0})
	sprite := &atlas.Region{U0: 0.5, V0: 0.25, U1: 0.75, V1: 0.5}

	out := bake(t, src, []atlas.Sprite{sprite, nil}, quad.DefaultTransform)
	assert.True(t, quad.IsPresent(out, 0, 0))
	assert.False(t, quad.IsPresent(out, 0, 1))
	assert.Equal(t, [2]float32{0.75, 0.5}, [2]float32{quad.U(out, 0, 0, 2), quad.V(out, 0, 0, 2)})
	assert.Equal(t, [2]float32{1, 1}, [2]float32{quad.U(out, 0, 1, 2), quad.V(out, 0, 1, 2)}, "nil sprite stays normalized")

	// Short sprite slices behave as nil entries.
	out = bake(t, src, []atlas.Sprite{sprite}, quad.DefaultTransform)
	assert.False(t, quad.IsPresent(out, 0, 1))
}

func TestBakeAtOffset(t *testing.T) {
	src := unitSquareZ1()
	target := make([]uint32, 3+quad.Size(1))
	n := Bake(src, nil, target, 3, quad.DefaultTransform)
	assert.Equal(t, quad.Size(1), n)
	assert.Equal(t, []uint32{0, 0, 0}, target[:3])
	assert.Equal(t, world.South, quad.ActualFace(target, 3))

	assert.Panics(t, func() { Bake(src, nil, target, 4, quad.DefaultTransform) })
	assert.Panics(t, func() { Bake(make([]uint32, quad.MaxSize), nil, target, 0, quad.DefaultTransform) }, "unset depth")
}

func TestDegenerateQuad(t *testing.T) {
	src := newQuad(1, [3]float32{0, 0, 0}, [3]float32{1, 0, 0}, [3]float32{2, 0, 0}, [3]float32{3, 0, 0})
	out := bake(t, src, nil, quad.DefaultTransform)
	assert.Equal(t, mgl32.Vec3{}, quad.Normal(out, 0, 0))
	assert.Equal(t, world.NoDirection, quad.ActualFace(out, 0))
	assert.Equal(t, world.NoDirection, quad.NominalFace(out, 0))
}

func TestLightFaceTies(t *testing.T) {
	assert.Equal(t, world.East, LightFace(mgl32.Vec3{1, 1, 1}))
	assert.Equal(t, world.Down, LightFace(mgl32.Vec3{0, -1, 1}))
	assert.Equal(t, world.North, LightFace(mgl32.Vec3{0.1, 0.2, -0.9}))
	assert.Equal(t, world.NoDirection, LightFace(mgl32.Vec3{}))
}

func BenchmarkBake(b *testing.B) {
	src := unitSquareZ1()
	sprites := []atlas.Sprite{&atlas.Region{U0: 0.25, V0: 0, U1: 0.5, V1: 0.25}}
	out := make([]uint32, quad.Size(1))
	tr := quad.DefaultTransform.WithRotation(0, 1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Bake(src, sprites, out, 0, tr)
	}
}
