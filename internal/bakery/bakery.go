// Package bakery turns a configured quad into its final packed form:
// normals filled in, faces classified and texture coordinates mapped into
// the atlas. All functions are stateless and safe for concurrent use as long
// as callers do not share target buffers.
package bakery

import (
	"blockbake/internal/atlas"
	"blockbake/internal/quad"
	"blockbake/internal/world"
)

const uvScale = 1.0 / 16.0

// Bake copies the quad at src[0:] into target at offset and finishes it.
// sprites holds one entry per texture layer; a nil entry leaves that layer's
// coordinates normalized and its present bit clear. transform supplies the
// per-layer texture flags. The source is never modified.
//
// Panics if target cannot hold the quad.
func Bake(src []uint32, sprites []atlas.Sprite, target []uint32, offset int, transform quad.Transform) int {
	layers := quad.LayerCount(src, 0)
	size := quad.Size(layers)
	quad.CheckCapacity(src, 0, layers)
	quad.CheckCapacity(target, offset, layers)

	copy(target[offset:offset+size], src[:size])

	normal := FaceNormal(target, offset)
	for v := 0; v < quad.VertexCount; v++ {
		if !quad.HasNormal(target, offset, v) {
			quad.SetNormal(target, offset, v, normal[0], normal[1], normal[2])
		}
	}

	lightFace := LightFace(normal)
	actual := GeometricFace(target, offset, lightFace)
	quad.SetActualFace(target, offset, actual)

	nominal := quad.NominalFace(target, offset)
	if !nominal.Valid() {
		nominal = actual
		quad.SetNominalFace(target, offset, nominal)
	}

	uvFace := nominal
	if !uvFace.Valid() {
		uvFace = lightFace
	}

	for l := 0; l < layers; l++ {
		var sprite atlas.Sprite
		if l < len(sprites) {
			sprite = sprites[l]
		}
		quad.SetPresent(target, offset, l, sprite != nil)
		if transform.RawUV(l) {
			continue
		}
		bakeLayer(target, offset, l, sprite, transform, uvFace)
	}
	return size
}

func bakeLayer(data []uint32, base, layer int, sprite atlas.Sprite, t quad.Transform, face world.Direction) {
	lock := t.LockUV(layer) && face.Valid()
	scale := t.UVScale(layer)
	rotation := t.Rotation(layer)
	flipU, flipV := t.FlipU(layer), t.FlipV(layer)

	for v := 0; v < quad.VertexCount; v++ {
		u, w := quad.U(data, base, layer, v), quad.V(data, base, layer, v)
		if scale {
			u, w = u*uvScale, w*uvScale
		}
		if lock {
			u, w = LockUV(face, quad.Position(data, base, v))
		}
		u, w = Rotate(rotation, u, w)
		if flipU {
			u = 1 - u
		}
		if flipV {
			w = 1 - w
		}
		if sprite != nil {
			u, w = Interpolate(sprite, u, w)
		}
		quad.SetUV(data, base, layer, v, u, w)
	}
}
