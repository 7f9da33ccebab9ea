package meshing

import (
	"math"

	"blockbake/internal/quad"

	"github.com/go-gl/mathgl/mgl32"
)

// Renderer-facing vertex layout, one uint32 word per attribute:
// x y z argb u v light nx ny nz. Floats are stored as IEEE bits.
const (
	attrX = iota
	attrY
	attrZ
	attrColor
	attrU
	attrV
	attrLight
	attrNormalX
	attrNormalY
	attrNormalZ

	WordsPerVertex
)

// WordsPerQuad is the buffer footprint of one lit quad.
const WordsPerQuad = WordsPerVertex * quad.VertexCount

// Buffer accumulates lit vertices for one render pass.
type Buffer struct {
	words []uint32
}

// Vertex is one decoded entry of a Buffer.
type Vertex struct {
	Pos    mgl32.Vec3
	Color  uint32
	U, V   float32
	Light  uint32
	Normal mgl32.Vec3
}

func (b *Buffer) Append(v Vertex) {
	b.words = append(b.words,
		math.Float32bits(v.Pos[0]), math.Float32bits(v.Pos[1]), math.Float32bits(v.Pos[2]),
		v.Color,
		math.Float32bits(v.U), math.Float32bits(v.V),
		v.Light,
		math.Float32bits(v.Normal[0]), math.Float32bits(v.Normal[1]), math.Float32bits(v.Normal[2]),
	)
}

// Vertex decodes the i-th vertex.
func (b *Buffer) Vertex(i int) Vertex {
	w := b.words[i*WordsPerVertex : (i+1)*WordsPerVertex]
	f := func(k int) float32 { return math.Float32frombits(w[k]) }
	return Vertex{
		Pos:    mgl32.Vec3{f(attrX), f(attrY), f(attrZ)},
		Color:  w[attrColor],
		U:      f(attrU),
		V:      f(attrV),
		Light:  w[attrLight],
		Normal: mgl32.Vec3{f(attrNormalX), f(attrNormalY), f(attrNormalZ)},
	}
}

// Words exposes the raw buffer for upload.
func (b *Buffer) Words() []uint32 { return b.words }

func (b *Buffer) VertexCount() int { return len(b.words) / WordsPerVertex }

func (b *Buffer) QuadCount() int { return len(b.words) / WordsPerQuad }

// Reset empties the buffer and keeps its capacity.
func (b *Buffer) Reset() { b.words = b.words[:0] }

// OutputSet holds one Buffer per render pass.
type OutputSet struct {
	passes [quad.RenderPassCount]Buffer
}

func NewOutputSet() *OutputSet {
	return &OutputSet{}
}

func (o *OutputSet) Buffer(pass quad.RenderPass) *Buffer {
	return &o.passes[pass]
}

// QuadCount sums the quads of every pass.
func (o *OutputSet) QuadCount() int {
	n := 0
	for i := range o.passes {
		n += o.passes[i].QuadCount()
	}
	return n
}

func (o *OutputSet) Reset() {
	for i := range o.passes {
		o.passes[i].Reset()
	}
}
