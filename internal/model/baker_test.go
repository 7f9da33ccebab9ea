package model

import (
	"testing"

	"blockbake/internal/atlas"
	"blockbake/internal/meshing"
	"blockbake/internal/quad"
	"blockbake/internal/world"
	"blockbake/pkg/blockmodel"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func ptr[T any](v T) *T { return &v }

func box(from, to [3]float32, faces map[string]blockmodel.Face) blockmodel.Element {
	return blockmodel.Element{From: from, To: to, Faces: faces}
}

func allFaces(tex string) map[string]blockmodel.Face {
	faces := make(map[string]blockmodel.Face, world.DirectionCount)
	for _, d := range world.Directions {
		faces[d.String()] = blockmodel.Face{Texture: tex, CullFace: d.String()}
	}
	return faces
}

func cube() *blockmodel.Model {
	return &blockmodel.Model{Elements: []blockmodel.Element{
		box([3]float32{0, 0, 0}, [3]float32{16, 16, 16}, allFaces("block/stone")),
	}}
}

func bake(t *testing.T, b *Baker, m *blockmodel.Model, opts Options) *meshing.BakedModel {
	t.Helper()
	baked, err := b.Bake(m, opts)
	require.NoError(t, err)
	return baked
}

func assertPos(t *testing.T, want mgl32.Vec3, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], eps, "component %d of %v", i, got)
	}
}

func TestBakeCube(t *testing.T) {
	baked := bake(t, &Baker{}, cube(), Options{})
	require.Equal(t, world.DirectionCount, baked.QuadCount())
	assert.Equal(t, 1, baked.Format.Layers())

	for i, d := range world.Directions {
		base := baked.Quad(i)
		assert.Equal(t, d, quad.ActualFace(baked.Quads, base))
		assert.Equal(t, d, quad.NominalFace(baked.Quads, base))
		assert.True(t, quad.WorldDiffuseEnabled(baked.Quads, base))
		assert.True(t, quad.WorldAOEnabled(baked.Quads, base))
		assertPos(t, d.Vector(), quad.Normal(baked.Quads, base, 0))
	}
	// Up face in the engine's winding.
	up := baked.Quad(int(world.Up))
	assertPos(t, mgl32.Vec3{0, 1, 0}, quad.Position(baked.Quads, up, 0))
	assertPos(t, mgl32.Vec3{0, 1, 1}, quad.Position(baked.Quads, up, 1))
	assertPos(t, mgl32.Vec3{1, 1, 1}, quad.Position(baked.Quads, up, 2))
	assertPos(t, mgl32.Vec3{1, 1, 0}, quad.Position(baked.Quads, up, 3))
}

func TestDefaultUVFollowsElementBounds(t *testing.T) {
	m := &blockmodel.Model{Elements: []blockmodel.Element{
		box([3]float32{0, 0, 0}, [3]float32{16, 8, 16}, map[string]blockmodel.Face{
			"north": {Texture: "block/stone"},
		}),
	}}
	baked := bake(t, &Baker{}, m, Options{})
	require.Equal(t, 1, baked.QuadCount())

	want := [4][2]float32{{0, 0.5}, {0, 1}, {1, 1}, {1, 0.5}}
	for v, uv := range want {
		assert.InDelta(t, uv[0], quad.U(baked.Quads, 0, 0, v), eps)
		assert.InDelta(t, uv[1], quad.V(baked.Quads, 0, 0, v), eps)
	}
	assert.Equal(t, world.North, quad.ActualFace(baked.Quads, 0))
}

func TestFaceRotationShiftsCorners(t *testing.T) {
	uv := [4]float32{0, 0, 16, 16}
	m := &blockmodel.Model{Elements: []blockmodel.Element{
		box([3]float32{0, 0, 0}, [3]float32{16, 16, 16}, map[string]blockmodel.Face{
			"up": {Texture: "block/stone", UV: &uv, Rotation: 90},
		}),
	}}
	baked := bake(t, &Baker{}, m, Options{})

	want := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	for v, c := range want {
		assert.InDelta(t, c[0], quad.U(baked.Quads, 0, 0, v), eps, "vertex %d", v)
		assert.InDelta(t, c[1], quad.V(baked.Quads, 0, 0, v), eps, "vertex %d", v)
	}
}

func TestVariantRotation(t *testing.T) {
	north := &blockmodel.Model{Elements: []blockmodel.Element{
		box([3]float32{0, 0, 0}, [3]float32{16, 16, 16}, map[string]blockmodel.Face{
			"north": {Texture: "block/stone", CullFace: "north"},
		}),
	}}
	baked := bake(t, &Baker{}, north, Options{Y: 90})
	assert.Equal(t, world.East, quad.ActualFace(baked.Quads, 0))
	assert.Equal(t, world.East, quad.NominalFace(baked.Quads, 0))
	for v := 0; v < quad.VertexCount; v++ {
		assert.InDelta(t, 1, quad.X(baked.Quads, 0, v), eps)
	}

	up := &blockmodel.Model{Elements: []blockmodel.Element{
		box([3]float32{0, 0, 0}, [3]float32{16, 16, 16}, map[string]blockmodel.Face{
			"up": {Texture: "block/stone", CullFace: "up"},
		}),
	}}
	baked = bake(t, &Baker{}, up, Options{X: 90})
	assert.Equal(t, world.North, quad.ActualFace(baked.Quads, 0))
	assert.Equal(t, world.North, quad.NominalFace(baked.Quads, 0))

	baked = bake(t, &Baker{}, up, Options{X: 360, Y: -360})
	assert.Equal(t, world.Up, quad.ActualFace(baked.Quads, 0))
}

func TestVariantRotationRejectsOddAngles(t *testing.T) {
	_, err := (&Baker{}).Bake(cube(), Options{Y: 45})
	assert.Error(t, err)
}

func TestUVLockUsesRotatedPosition(t *testing.T) {
	m := &blockmodel.Model{Elements: []blockmodel.Element{
		box([3]float32{0, 0, 0}, [3]float32{16, 16, 8}, map[string]blockmodel.Face{
			"up": {Texture: "block/stone"},
		}),
	}}
	baked := bake(t, &Baker{}, m, OptionsFor(blockmodel.Variant{Y: 90, UVLock: true}))
	require.Equal(t, world.Up, quad.ActualFace(baked.Quads, 0))
	for v := 0; v < quad.VertexCount; v++ {
		p := quad.Position(baked.Quads, 0, v)
		assert.InDelta(t, p[0], quad.U(baked.Quads, 0, 0, v), eps)
		assert.InDelta(t, p[2], quad.V(baked.Quads, 0, 0, v), eps)
	}
}

func TestElementRotation(t *testing.T) {
	rot := &blockmodel.Rotation{Origin: [3]float32{8, 8, 8}, Angle: 45, Axis: "y"}
	m := &blockmodel.Model{Elements: []blockmodel.Element{{
		From:     [3]float32{0, 0, 0},
		To:       [3]float32{16, 16, 16},
		Rotation: rot,
		Faces:    map[string]blockmodel.Face{"up": {Texture: "block/stone"}},
	}}}
	baked := bake(t, &Baker{}, m, Options{})
	for v := 0; v < quad.VertexCount; v++ {
		p := quad.Position(baked.Quads, 0, v)
		assert.InDelta(t, 1, p[1], eps)
		d := mgl32.Vec2{p[0] - 0.5, p[2] - 0.5}
		assert.InDelta(t, 0.70710677, d.Len(), eps)
	}

	rot.Rescale = true
	baked = bake(t, &Baker{}, m, Options{})
	for v := 0; v < quad.VertexCount; v++ {
		p := quad.Position(baked.Quads, 0, v)
		d := mgl32.Vec2{p[0] - 0.5, p[2] - 0.5}
		assert.InDelta(t, 1, d.Len(), eps)
	}

	rot.Axis = "w"
	_, err := (&Baker{}).Bake(m, Options{})
	assert.ErrorContains(t, err, "element 0")
}

func TestFaceFlags(t *testing.T) {
	m := &blockmodel.Model{
		AmbientOcclusion: ptr(false),
		Elements: []blockmodel.Element{{
			From:  [3]float32{0, 0, 0},
			To:    [3]float32{16, 16, 16},
			Shade: ptr(false),
			Faces: map[string]blockmodel.Face{
				"up":   {Texture: "block/grass_top", TintIndex: ptr(0)},
				"down": {Texture: "block/dirt", TintIndex: ptr(-1)},
			},
		}},
	}
	baked := bake(t, &Baker{}, m, Options{Pass: quad.PassCutout})
	require.Equal(t, 2, baked.QuadCount())

	down, up := baked.Quad(0), baked.Quad(1)
	assert.False(t, quad.BlockColorEnabled(baked.Quads, down, 0))
	assert.True(t, quad.BlockColorEnabled(baked.Quads, up, 0))
	for _, base := range []int{down, up} {
		assert.False(t, quad.WorldDiffuseEnabled(baked.Quads, base))
		assert.False(t, quad.WorldAOEnabled(baked.Quads, base))
		assert.Equal(t, quad.PassCutout, quad.Pass(baked.Quads, base, 0))
	}
}

func TestSpritesFromAtlas(t *testing.T) {
	a := atlas.Stitch([]string{"stone.png"}, 16, 2)
	m := &blockmodel.Model{Elements: []blockmodel.Element{
		box([3]float32{0, 0, 0}, [3]float32{16, 16, 16}, map[string]blockmodel.Face{
			"up":   {Texture: "block/stone"},
			"down": {Texture: "block/unknown"},
		}),
	}}
	baked := bake(t, &Baker{Atlas: a}, m, Options{})
	down, up := baked.Quad(0), baked.Quad(1)

	assert.True(t, quad.IsPresent(baked.Quads, up, 0))
	assert.True(t, quad.IsPresent(baked.Quads, down, 0))
	for v := 0; v < quad.VertexCount; v++ {
		u := quad.U(baked.Quads, up, 0, v)
		assert.GreaterOrEqual(t, u, float32(0.5))
		assert.LessOrEqual(t, u, float32(1))
		assert.LessOrEqual(t, quad.U(baked.Quads, down, 0, v), float32(0.5))
	}

	baked = bake(t, &Baker{}, m, Options{})
	assert.False(t, quad.IsPresent(baked.Quads, baked.Quad(0), 0))
}

func TestBakeOrder(t *testing.T) {
	m := &blockmodel.Model{Elements: []blockmodel.Element{
		box([3]float32{0, 0, 0}, [3]float32{16, 16, 16}, map[string]blockmodel.Face{"east": {}, "up": {}}),
		box([3]float32{0, 0, 0}, [3]float32{8, 16, 8}, map[string]blockmodel.Face{"down": {}}),
	}}
	baked := bake(t, &Baker{}, m, Options{})
	require.Equal(t, 3, baked.QuadCount())
	assert.Equal(t, world.Up, quad.ActualFace(baked.Quads, baked.Quad(0)))
	assert.Equal(t, world.East, quad.ActualFace(baked.Quads, baked.Quad(1)))
	assert.Equal(t, world.Down, quad.ActualFace(baked.Quads, baked.Quad(2)))
}

func BenchmarkBakeCube(b *testing.B) {
	baker := &Baker{Atlas: atlas.Stitch([]string{"stone.png"}, 16, 4)}
	m := cube()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := baker.Bake(m, Options{}); err != nil {
			b.Fatal(err)
		}
	}
}
