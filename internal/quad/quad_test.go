package quad

import (
	"math"
	"testing"

	"blockbake/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizes(t *testing.T) {
	assert.Equal(t, 41, Size(1))
	assert.Equal(t, 53, Size(2))
	assert.Equal(t, 65, Size(3))
	assert.Equal(t, Size(MaxLayers), MaxSize)
	assert.Panics(t, func() { Size(0) })
	assert.Panics(t, func() { Size(4) })
}

func TestHeaderFitsOneWord(t *testing.T) {
	assert.LessOrEqual(t, headerBits, 32)
	assert.LessOrEqual(t, transformLayerWidth*MaxLayers, 32)
}

func TestVertexRoundTrip(t *testing.T) {
	data := make([]uint32, MaxSize+5)
	base := 5
	Reset(data, base)

	values := []float32{0, 1, 0.5, -0.25, 1e-7, 15.9375}
	for v := 0; v < VertexCount; v++ {
		x, y, z := values[v], values[v+1], values[v+2]
		SetPosition(data, base, v, x, y, z)
		assert.Equal(t, math.Float32bits(x), math.Float32bits(X(data, base, v)))
		assert.Equal(t, math.Float32bits(y), math.Float32bits(Y(data, base, v)))
		assert.Equal(t, math.Float32bits(z), math.Float32bits(Z(data, base, v)))
		assert.Equal(t, mgl32.Vec3{x, y, z}, Position(data, base, v))
		assert.Equal(t, y, PosComponent(data, base, v, 1))

		assert.False(t, HasNormal(data, base, v))
		SetNormal(data, base, v, 0, -1, 0)
		assert.True(t, HasNormal(data, base, v))
		assert.Equal(t, mgl32.Vec3{0, -1, 0}, Normal(data, base, v))
		ClearNormal(data, base, v)
		assert.False(t, HasNormal(data, base, v))

		assert.Equal(t, DefaultLightmap, Lightmap(data, base, v))
		SetLightmap(data, base, v, 0xFF123456)
		assert.Equal(t, uint32(0x123456), Lightmap(data, base, v))

		for l := 0; l < MaxLayers; l++ {
			assert.Equal(t, DefaultColor, Color(data, base, l, v))
			SetUV(data, base, l, v, float32(l)+0.125, float32(v)+0.75)
			SetColor(data, base, l, v, uint32(0x80000000|l<<8|v))
		}
	}
	for v := 0; v < VertexCount; v++ {
		for l := 0; l < MaxLayers; l++ {
			assert.Equal(t, float32(l)+0.125, U(data, base, l, v))
			assert.Equal(t, float32(v)+0.75, V(data, base, l, v))
			assert.Equal(t, uint32(0x80000000|l<<8|v), Color(data, base, l, v))
		}
	}
	assert.Equal(t, []uint32{0, 0, 0, 0, 0}, data[:base], "writes stay inside the record")
}

func TestHeaderFieldsAreIndependent(t *testing.T) {
	data := make([]uint32, MaxSize)
	Reset(data, 0)

	SetDepth(data, 0, 3)
	for l := 0; l < MaxLayers; l++ {
		SetPass(data, 0, l, RenderPass(l+1))
		SetPresent(data, 0, l, l != 1)
		SetBlockColorEnabled(data, 0, l, l == 0)
		SetEmissiveEnabled(data, 0, l, l == 2)
		SetLightmapDiffuseEnabled(data, 0, l, l == 1)
		SetLightmapAOEnabled(data, 0, l, l != 0)
	}
	SetWorldDiffuseEnabled(data, 0, false)
	SetWorldAOEnabled(data, 0, true)
	SetNominalFace(data, 0, world.East)
	SetActualFace(data, 0, world.Down)

	assert.Equal(t, 3, Depth(data, 0))
	assert.Equal(t, 3, LayerCount(data, 0))
	for l := 0; l < MaxLayers; l++ {
		assert.Equal(t, RenderPass(l+1), Pass(data, 0, l))
		assert.Equal(t, l != 1, IsPresent(data, 0, l))
		assert.Equal(t, l == 0, BlockColorEnabled(data, 0, l))
		assert.Equal(t, l == 2, EmissiveEnabled(data, 0, l))
		assert.Equal(t, l == 1, LightmapDiffuseEnabled(data, 0, l))
		assert.Equal(t, l != 0, LightmapAOEnabled(data, 0, l))
	}
	assert.False(t, WorldDiffuseEnabled(data, 0))
	assert.True(t, WorldAOEnabled(data, 0))
	assert.Equal(t, world.East, NominalFace(data, 0))
	assert.Equal(t, world.Down, ActualFace(data, 0))

	SetActualFace(data, 0, world.NoDirection)
	assert.Equal(t, world.NoDirection, ActualFace(data, 0))
	assert.Equal(t, world.East, NominalFace(data, 0))
}

func TestFacesRoundTrip(t *testing.T) {
	data := make([]uint32, MaxSize)
	for _, d := range world.Directions {
		SetNominalFace(data, 0, d)
		SetActualFace(data, 0, d.Opposite())
		assert.Equal(t, d, NominalFace(data, 0))
		assert.Equal(t, d.Opposite(), ActualFace(data, 0))
	}
}

func TestResetDefaults(t *testing.T) {
	data := make([]uint32, MaxSize)
	for i := range data {
		data[i] = 0xDEADBEEF
	}
	Reset(data, 0)
	assert.Equal(t, 1, Depth(data, 0))
	assert.True(t, WorldDiffuseEnabled(data, 0))
	assert.True(t, WorldAOEnabled(data, 0))
	assert.Equal(t, world.NoDirection, NominalFace(data, 0))
	assert.Equal(t, world.NoDirection, ActualFace(data, 0))
	for l := 0; l < MaxLayers; l++ {
		assert.Equal(t, PassSolid, Pass(data, 0, l))
		assert.False(t, IsPresent(data, 0, l))
		assert.False(t, EmissiveEnabled(data, 0, l))
	}
}

func TestContractViolationsPanic(t *testing.T) {
	data := make([]uint32, Size(1))
	assert.Panics(t, func() { Reset(data, 0) }, "Reset needs a MaxLayers record")
	assert.Panics(t, func() { SetPass(data, 0, 3, PassSolid) })
	assert.Panics(t, func() { X(data, 0, 4) })
	assert.Panics(t, func() { LayerCount(data, 0) }, "depth never configured")
	assert.Panics(t, func() { CheckCapacity(data, 1, 1) })
	assert.NotPanics(t, func() { CheckCapacity(data, 0, 1) })
}

func TestTransform(t *testing.T) {
	tr := DefaultTransform
	for l := 0; l < MaxLayers; l++ {
		assert.True(t, tr.LockUV(l))
		assert.Equal(t, 0, tr.Rotation(l))
	}

	tr = tr.WithRotation(1, 5).WithFlipU(0, true).WithFlipV(2, true).
		WithRawUV(1, true).WithUVScale(2, true).WithLockUV(0, false)
	assert.Equal(t, 1, tr.Rotation(1), "rotation wraps modulo 4")
	assert.Equal(t, 0, tr.Rotation(0))
	assert.True(t, tr.FlipU(0))
	assert.False(t, tr.FlipU(1))
	assert.True(t, tr.FlipV(2))
	assert.True(t, tr.RawUV(1))
	assert.True(t, tr.UVScale(2))
	assert.False(t, tr.LockUV(0))
	assert.True(t, tr.LockUV(1))
	require.Panics(t, func() { tr.Rotation(3) })
}

func TestRenderPassString(t *testing.T) {
	assert.Equal(t, "translucent", PassTranslucent.String())
	assert.Equal(t, "unknown", RenderPass(9).String())
}
