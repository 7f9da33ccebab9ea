package quad

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// NormalMissing marks a normal component that was never assigned.
	// It is a NaN pattern Float32bits never produces for a finite normal.
	NormalMissing uint32 = 0xFFFFFFFF

	// DefaultLightmap is full white emissive light.
	DefaultLightmap uint32 = 0x00FFFFFF
	// DefaultColor is opaque white (ARGB).
	DefaultColor uint32 = 0xFFFFFFFF
)

func getFloat(data []uint32, i int) float32 {
	return math.Float32frombits(data[i])
}

func setFloat(data []uint32, i int, v float32) {
	data[i] = math.Float32bits(v)
}

// PosComponent returns one position coordinate; axis is 0 (x), 1 (y) or 2 (z).
func PosComponent(data []uint32, base, vertex, axis int) float32 {
	return getFloat(data, vertexOffset(base, vertex)+XIndex+axis)
}

func X(data []uint32, base, vertex int) float32 {
	return getFloat(data, vertexOffset(base, vertex)+XIndex)
}

func Y(data []uint32, base, vertex int) float32 {
	return getFloat(data, vertexOffset(base, vertex)+YIndex)
}

func Z(data []uint32, base, vertex int) float32 {
	return getFloat(data, vertexOffset(base, vertex)+ZIndex)
}

// Position returns the model-local position of a vertex.
func Position(data []uint32, base, vertex int) mgl32.Vec3 {
	o := vertexOffset(base, vertex)
	return mgl32.Vec3{getFloat(data, o+XIndex), getFloat(data, o+YIndex), getFloat(data, o+ZIndex)}
}

func SetPosition(data []uint32, base, vertex int, x, y, z float32) {
	o := vertexOffset(base, vertex)
	setFloat(data, o+XIndex, x)
	setFloat(data, o+YIndex, y)
	setFloat(data, o+ZIndex, z)
}

// HasNormal reports whether the vertex normal was assigned.
func HasNormal(data []uint32, base, vertex int) bool {
	return data[vertexOffset(base, vertex)+NormalXIndex] != NormalMissing
}

// Normal returns the vertex normal; the result is meaningless unless HasNormal.
func Normal(data []uint32, base, vertex int) mgl32.Vec3 {
	o := vertexOffset(base, vertex)
	return mgl32.Vec3{getFloat(data, o+NormalXIndex), getFloat(data, o+NormalYIndex), getFloat(data, o+NormalZIndex)}
}

func SetNormal(data []uint32, base, vertex int, x, y, z float32) {
	o := vertexOffset(base, vertex)
	setFloat(data, o+NormalXIndex, x)
	setFloat(data, o+NormalYIndex, y)
	setFloat(data, o+NormalZIndex, z)
}

// ClearNormal marks the vertex normal as missing.
func ClearNormal(data []uint32, base, vertex int) {
	o := vertexOffset(base, vertex)
	data[o+NormalXIndex] = NormalMissing
	data[o+NormalYIndex] = NormalMissing
	data[o+NormalZIndex] = NormalMissing
}

// Lightmap returns the packed RGB emissive lightmap of a vertex.
func Lightmap(data []uint32, base, vertex int) uint32 {
	return data[vertexOffset(base, vertex)+LightmapIndex]
}

func SetLightmap(data []uint32, base, vertex int, rgb uint32) {
	data[vertexOffset(base, vertex)+LightmapIndex] = rgb & 0x00FFFFFF
}

func U(data []uint32, base, layer, vertex int) float32 {
	return getFloat(data, layerOffset(base, layer, vertex)+UIndex)
}

func V(data []uint32, base, layer, vertex int) float32 {
	return getFloat(data, layerOffset(base, layer, vertex)+VIndex)
}

func SetUV(data []uint32, base, layer, vertex int, u, v float32) {
	o := layerOffset(base, layer, vertex)
	setFloat(data, o+UIndex, u)
	setFloat(data, o+VIndex, v)
}

// Color returns the packed ARGB color of a layer vertex.
func Color(data []uint32, base, layer, vertex int) uint32 {
	return data[layerOffset(base, layer, vertex)+ColorIndex]
}

func SetColor(data []uint32, base, layer, vertex int, argb uint32) {
	data[layerOffset(base, layer, vertex)+ColorIndex] = argb
}

// Reset writes the documented defaults for every field of a MaxLayers quad:
// depth 1, world diffuse and AO on, lightmap diffuse and AO on, no faces,
// zero positions, missing normals, white lightmap and colors.
func Reset(data []uint32, base int) {
	CheckCapacity(data, base, MaxLayers)
	clear(data[base : base+MaxSize])
	SetDepth(data, base, 1)
	SetWorldDiffuseEnabled(data, base, true)
	SetWorldAOEnabled(data, base, true)
	for l := 0; l < MaxLayers; l++ {
		SetLightmapDiffuseEnabled(data, base, l, true)
		SetLightmapAOEnabled(data, base, l, true)
	}
	for v := 0; v < VertexCount; v++ {
		ClearNormal(data, base, v)
		SetLightmap(data, base, v, DefaultLightmap)
		for l := 0; l < MaxLayers; l++ {
			SetColor(data, base, l, v, DefaultColor)
		}
	}
}
