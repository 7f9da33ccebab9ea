// Package quad holds the packed quad wire layout and the accessors that read
// and write it. A quad is a flat run of uint32 words:
//
//	[0]                      header
//	[1 + v*7 .. 1 + v*7 + 6] vertex v: x y z nx ny nz lightmap
//	[29 + l*12 + v*3 ..]     layer l, vertex v: u v color
//
// The layout is not self-describing; readers learn the layer count from the
// header or from the VertexFormat the quad was baked for.
package quad

import (
	"fmt"
)

const (
	// MaxLayers is the maximum number of texture layers per quad.
	MaxLayers = 3
	// VertexCount is the number of vertices in a quad.
	VertexCount = 4

	HeaderIndex = 0

	VertexStart  = 1
	VertexStride = 7

	// Field offsets inside one vertex record.
	XIndex        = 0
	YIndex        = 1
	ZIndex        = 2
	NormalXIndex  = 3
	NormalYIndex  = 4
	NormalZIndex  = 5
	LightmapIndex = 6

	LayerStart        = VertexStart + VertexCount*VertexStride
	LayerVertexStride = 3
	LayerStride       = VertexCount * LayerVertexStride

	// Field offsets inside one layer vertex record.
	UIndex     = 0
	VIndex     = 1
	ColorIndex = 2

	// MaxSize is the length of a quad carrying MaxLayers layers.
	MaxSize = LayerStart + MaxLayers*LayerStride
)

// Size returns the number of words in a quad with the given layer count.
func Size(layers int) int {
	checkDepth(layers)
	return LayerStart + layers*LayerStride
}

func vertexOffset(base, vertex int) int {
	checkVertex(vertex)
	return base + VertexStart + vertex*VertexStride
}

func layerOffset(base, layer, vertex int) int {
	checkLayer(layer)
	checkVertex(vertex)
	return base + LayerStart + layer*LayerStride + vertex*LayerVertexStride
}

func checkVertex(vertex int) {
	if vertex < 0 || vertex >= VertexCount {
		panic(fmt.Sprintf("quad: vertex %d out of range", vertex))
	}
}

func checkLayer(layer int) {
	if layer < 0 || layer >= MaxLayers {
		panic(fmt.Sprintf("quad: layer %d out of range", layer))
	}
}

func checkDepth(layers int) {
	if layers < 1 || layers > MaxLayers {
		panic(fmt.Sprintf("quad: texture depth %d out of range 1..%d", layers, MaxLayers))
	}
}

// CheckCapacity panics unless data can hold a quad of the given layer count
// starting at base.
func CheckCapacity(data []uint32, base, layers int) {
	if need := base + Size(layers); base < 0 || need > len(data) {
		panic(fmt.Sprintf("quad: buffer of %d words too small for %d-layer quad at offset %d", len(data), layers, base))
	}
}
