// Package tailor provides a reusable builder for packed quads.
//
// A Tailor is not safe for concurrent use. Settings persist from one Bake to
// the next until Clear is called; reusing an instance across unrelated quads
// without clearing carries the previous per-layer settings over.
package tailor

import (
	"fmt"

	"blockbake/internal/atlas"
	"blockbake/internal/bakery"
	"blockbake/internal/quad"
	"blockbake/internal/world"
)

// Tailor assembles one quad in a private scratch buffer.
type Tailor struct {
	data      [quad.MaxSize]uint32
	sprites   [quad.MaxLayers]atlas.Sprite
	transform quad.Transform
}

// New returns a cleared Tailor.
func New() *Tailor {
	t := &Tailor{}
	t.Clear()
	return t
}

// Clear restores every field to its default: texture depth 1, solid pass,
// no tint or emission, world and lightmap shading on, lock-UV on for all
// layers, no rotation or flips, white colors and lightmap, missing normals,
// no sprites and no nominal face.
func (t *Tailor) Clear() {
	quad.Reset(t.data[:], 0)
	t.sprites = [quad.MaxLayers]atlas.Sprite{}
	t.transform = quad.DefaultTransform
}

func (t *Tailor) checkLayer(layer int) {
	if depth := quad.Depth(t.data[:], 0); layer < 0 || layer >= depth {
		panic(fmt.Sprintf("tailor: layer %d outside texture depth %d", layer, depth))
	}
}

// Depth returns the configured texture depth.
func (t *Tailor) Depth() int {
	return quad.Depth(t.data[:], 0)
}

// SetTextureDepth sets how many layers the quad carries (1..3). Layer-indexed
// setters reject layers at or beyond the depth, so call this first.
func (t *Tailor) SetTextureDepth(layers int) {
	quad.SetDepth(t.data[:], 0, layers)
}

// SetRenderLayer chooses the render pass for a layer.
func (t *Tailor) SetRenderLayer(layer int, pass quad.RenderPass) {
	t.checkLayer(layer)
	quad.SetPass(t.data[:], 0, layer, pass)
}

// SetNominalFace assigns the face used for UV locking and culling. Leaving
// it unset lets the bakery use the detected geometric face.
func (t *Tailor) SetNominalFace(face world.Direction) {
	quad.SetNominalFace(t.data[:], 0, face)
}

func (t *Tailor) Position(vertex int, x, y, z float32) {
	quad.SetPosition(t.data[:], 0, vertex, x, y, z)
}

// Normal sets an explicit vertex normal; vertices without one receive the
// computed face normal at bake time.
func (t *Tailor) Normal(vertex int, x, y, z float32) {
	quad.SetNormal(t.data[:], 0, vertex, x, y, z)
}

// Lightmap sets the packed RGB emissive lightmap of a vertex.
func (t *Tailor) Lightmap(vertex int, rgb uint32) {
	quad.SetLightmap(t.data[:], 0, vertex, rgb)
}

// UV sets explicit texture coordinates and turns lock-UV off for the layer.
// Re-enabling lock-UV afterwards makes the bakery derive coordinates again.
func (t *Tailor) UV(layer, vertex int, u, v float32) {
	t.checkLayer(layer)
	quad.SetUV(t.data[:], 0, layer, vertex, u, v)
	t.transform = t.transform.WithLockUV(layer, false)
}

// Color sets the ARGB color of one layer vertex.
func (t *Tailor) Color(layer, vertex int, argb uint32) {
	t.checkLayer(layer)
	quad.SetColor(t.data[:], 0, layer, vertex, argb)
}

// ColorAll sets the same ARGB color on every vertex of a layer.
func (t *Tailor) ColorAll(layer int, argb uint32) {
	for v := 0; v < quad.VertexCount; v++ {
		t.Color(layer, v, argb)
	}
}

func (t *Tailor) EnableBlockColor(layer int, enabled bool) {
	t.checkLayer(layer)
	quad.SetBlockColorEnabled(t.data[:], 0, layer, enabled)
}

func (t *Tailor) EnableEmissiveLightmap(layer int, enabled bool) {
	t.checkLayer(layer)
	quad.SetEmissiveEnabled(t.data[:], 0, layer, enabled)
}

func (t *Tailor) EnableWorldLightDiffuse(enabled bool) {
	quad.SetWorldDiffuseEnabled(t.data[:], 0, enabled)
}

func (t *Tailor) EnableWorldLightAO(enabled bool) {
	quad.SetWorldAOEnabled(t.data[:], 0, enabled)
}

func (t *Tailor) EnableLightmapDiffuse(layer int, enabled bool) {
	t.checkLayer(layer)
	quad.SetLightmapDiffuseEnabled(t.data[:], 0, layer, enabled)
}

func (t *Tailor) EnableLightmapAO(layer int, enabled bool) {
	t.checkLayer(layer)
	quad.SetLightmapAOEnabled(t.data[:], 0, layer, enabled)
}

// SetRotation sets the texture rotation in quarter turns (taken mod 4).
func (t *Tailor) SetRotation(layer, quarterTurns int) {
	t.checkLayer(layer)
	t.transform = t.transform.WithRotation(layer, quarterTurns)
}

func (t *Tailor) EnableFlipU(layer int, enabled bool) {
	t.checkLayer(layer)
	t.transform = t.transform.WithFlipU(layer, enabled)
}

func (t *Tailor) EnableFlipV(layer int, enabled bool) {
	t.checkLayer(layer)
	t.transform = t.transform.WithFlipV(layer, enabled)
}

func (t *Tailor) EnableLockUV(layer int, enabled bool) {
	t.checkLayer(layer)
	t.transform = t.transform.WithLockUV(layer, enabled)
}

// EnableRawUV makes the bakery keep this layer's coordinates as given,
// already in atlas space.
func (t *Tailor) EnableRawUV(layer int, enabled bool) {
	t.checkLayer(layer)
	t.transform = t.transform.WithRawUV(layer, enabled)
}

// EnableUVScale marks this layer's coordinates as 0..16 model units.
func (t *Tailor) EnableUVScale(layer int, enabled bool) {
	t.checkLayer(layer)
	t.transform = t.transform.WithUVScale(layer, enabled)
}

func (t *Tailor) SetSprite(layer int, sprite atlas.Sprite) {
	t.checkLayer(layer)
	t.sprites[layer] = sprite
}

// Buffer exposes the scratch quad. It is overwritten by later setter calls.
func (t *Tailor) Buffer() []uint32 {
	return t.data[:]
}

// Sprites returns the sprites of the active layers.
func (t *Tailor) Sprites() []atlas.Sprite {
	return t.sprites[:t.Depth()]
}

// Transform returns the texture transform word passed to the bakery.
func (t *Tailor) Transform() quad.Transform {
	return t.transform
}

// Size is the number of words Bake writes for the current depth.
func (t *Tailor) Size() int {
	return quad.Size(t.Depth())
}

// Bake finishes the current quad into target at offset and returns the
// number of words written. The Tailor keeps its state.
func (t *Tailor) Bake(target []uint32, offset int) int {
	return bakery.Bake(t.data[:], t.Sprites(), target, offset, t.transform)
}

// AppendBaked bakes the current quad onto the end of dst.
func (t *Tailor) AppendBaked(dst []uint32) []uint32 {
	n := len(dst)
	dst = append(dst, make([]uint32, t.Size())...)
	t.Bake(dst, n)
	return dst
}
