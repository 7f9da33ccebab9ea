// Package model bakes JSON block models into packed quads.
package model

import (
	"errors"
	"fmt"
	"math"

	"blockbake/internal/atlas"
	"blockbake/internal/bakery"
	"blockbake/internal/format"
	"blockbake/internal/meshing"
	"blockbake/internal/profiling"
	"blockbake/internal/quad"
	"blockbake/internal/tailor"
	"blockbake/internal/world"
	"blockbake/pkg/blockmodel"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNoFormat is returned when the registry lacks the single-layer format.
var ErrNoFormat = errors.New("model: no single-layer vertex format registered")

var blockCenter = mgl32.Vec3{0.5, 0.5, 0.5}

// Options carry the blockstate variant settings and the render pass.
type Options struct {
	// X and Y rotate the whole model in degrees; multiples of 90.
	X, Y   int
	UVLock bool
	Pass   quad.RenderPass
}

// OptionsFor copies the rotation and uvlock settings of a variant.
func OptionsFor(v blockmodel.Variant) Options {
	return Options{X: v.X, Y: v.Y, UVLock: v.UVLock}
}

// Baker turns model elements into a BakedModel. Bake may be called from
// several goroutines; every call uses its own Tailor.
type Baker struct {
	Atlas   *atlas.Atlas
	Formats *format.Registry
}

// Bake emits one quad per element face, elements in file order and faces in
// direction order.
func (b *Baker) Bake(m *blockmodel.Model, opts Options) (*meshing.BakedModel, error) {
	defer profiling.Track("model.Bake")()

	formats := b.Formats
	if formats == nil {
		formats = format.NewRegistry()
	}
	f, ok := formats.ForLayers(1)
	if !ok {
		return nil, ErrNoFormat
	}
	if opts.X%90 != 0 || opts.Y%90 != 0 {
		return nil, fmt.Errorf("model: variant rotation x=%d y=%d is not a multiple of 90", opts.X, opts.Y)
	}
	variant := variantRotation(opts.X, opts.Y)

	tl := tailor.New()
	out := &meshing.BakedModel{Format: f}
	for i := range m.Elements {
		e := &m.Elements[i]
		elem, err := elementRotation(e.Rotation)
		if err != nil {
			return nil, fmt.Errorf("model: element %d: %w", i, err)
		}
		for _, dir := range world.Directions {
			face, ok := e.Faces[dir.String()]
			if !ok {
				continue
			}
			tl.Clear()
			b.emitFace(tl, e, dir, &face, elem, variant, m.UsesAmbientOcclusion(), opts)
			out.Quads = tl.AppendBaked(out.Quads)
		}
	}
	return out, nil
}

func (b *Baker) emitFace(tl *tailor.Tailor, e *blockmodel.Element, dir world.Direction, face *blockmodel.Face, elem *rotation, variant *mgl32.Mat3, ao bool, opts Options) {
	from := mgl32.Vec3{e.From[0], e.From[1], e.From[2]}.Mul(1.0 / 16)
	to := mgl32.Vec3{e.To[0], e.To[1], e.To[2]}.Mul(1.0 / 16)
	corners := faceCorners(dir, from, to)
	for v, p := range corners {
		if elem != nil {
			p = elem.apply(p)
		}
		if variant != nil {
			p = variant.Mul3x1(p.Sub(blockCenter)).Add(blockCenter)
		}
		tl.Position(v, p[0], p[1], p[2])
	}

	uv := defaultUV(dir, e.From, e.To)
	if face.UV != nil {
		uv = *face.UV
	}
	shift := ((face.Rotation/90)%4 + 4) % 4
	for v := 0; v < quad.VertexCount; v++ {
		u, w := uvCorner(uv, (v+shift)%4)
		tl.UV(0, v, u, w)
	}
	tl.EnableUVScale(0, true)
	if opts.UVLock {
		tl.EnableLockUV(0, true)
	}

	if cull, ok := world.DirectionByName(face.CullFace); ok {
		if variant != nil {
			cull = rotateDirection(variant, cull)
		}
		tl.SetNominalFace(cull)
	}
	if face.Tinted() {
		tl.EnableBlockColor(0, true)
	}
	tl.EnableWorldLightDiffuse(e.Shaded())
	tl.EnableWorldLightAO(ao)
	tl.SetRenderLayer(0, opts.Pass)
	tl.SetSprite(0, b.sprite(face.Texture))
}

func (b *Baker) sprite(ref string) atlas.Sprite {
	if b.Atlas == nil {
		return nil
	}
	return b.Atlas.SpriteOrMissing(blockmodel.TextureFile(ref))
}

// faceCorners lists a box face's vertices in the engine's winding, which the
// AO corner tables and default UV corners assume.
func faceCorners(dir world.Direction, lo, hi mgl32.Vec3) [4]mgl32.Vec3 {
	x0, y0, z0 := lo[0], lo[1], lo[2]
	x1, y1, z1 := hi[0], hi[1], hi[2]
	switch dir {
	case world.Down:
		return [4]mgl32.Vec3{{x0, y0, z1}, {x0, y0, z0}, {x1, y0, z0}, {x1, y0, z1}}
	case world.Up:
		return [4]mgl32.Vec3{{x0, y1, z0}, {x0, y1, z1}, {x1, y1, z1}, {x1, y1, z0}}
	case world.North:
		return [4]mgl32.Vec3{{x1, y1, z0}, {x1, y0, z0}, {x0, y0, z0}, {x0, y1, z0}}
	case world.South:
		return [4]mgl32.Vec3{{x0, y1, z1}, {x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}}
	case world.West:
		return [4]mgl32.Vec3{{x0, y1, z0}, {x0, y0, z0}, {x0, y0, z1}, {x0, y1, z1}}
	default:
		return [4]mgl32.Vec3{{x1, y1, z1}, {x1, y0, z1}, {x1, y0, z0}, {x1, y1, z0}}
	}
}

// defaultUV is the 0..16 texture rectangle a face without "uv" samples: the
// element's extent projected onto the face.
func defaultUV(dir world.Direction, from, to [3]float32) [4]float32 {
	switch dir {
	case world.Down:
		return [4]float32{from[0], 16 - to[2], to[0], 16 - from[2]}
	case world.Up:
		return [4]float32{from[0], from[2], to[0], to[2]}
	case world.North:
		return [4]float32{16 - to[0], 16 - to[1], 16 - from[0], 16 - from[1]}
	case world.South:
		return [4]float32{from[0], 16 - to[1], to[0], 16 - from[1]}
	case world.West:
		return [4]float32{from[2], 16 - to[1], to[2], 16 - from[1]}
	default:
		return [4]float32{16 - to[2], 16 - to[1], 16 - from[2], 16 - from[1]}
	}
}

// uvCorner returns corner i of a uv rectangle: 0 (u0,v0), 1 (u0,v1),
// 2 (u1,v1), 3 (u1,v0).
func uvCorner(uv [4]float32, i int) (float32, float32) {
	u, v := uv[0], uv[1]
	if i == 2 || i == 3 {
		u = uv[2]
	}
	if i == 1 || i == 2 {
		v = uv[3]
	}
	return u, v
}

// rotation is an element rotation about an origin with optional rescale of
// the two axes perpendicular to the rotation axis.
type rotation struct {
	m      mgl32.Mat3
	origin mgl32.Vec3
	scale  mgl32.Vec3
}

func (r *rotation) apply(p mgl32.Vec3) mgl32.Vec3 {
	d := r.m.Mul3x1(p.Sub(r.origin))
	return mgl32.Vec3{d[0] * r.scale[0], d[1] * r.scale[1], d[2] * r.scale[2]}.Add(r.origin)
}

func elementRotation(r *blockmodel.Rotation) (*rotation, error) {
	if r == nil || r.Angle == 0 {
		return nil, nil
	}
	rad := mgl32.DegToRad(r.Angle)
	out := &rotation{
		origin: mgl32.Vec3{r.Origin[0], r.Origin[1], r.Origin[2]}.Mul(1.0 / 16),
		scale:  mgl32.Vec3{1, 1, 1},
	}
	var axis int
	switch r.Axis {
	case "x":
		out.m, axis = mgl32.Rotate3DX(rad), 0
	case "y":
		out.m, axis = mgl32.Rotate3DY(rad), 1
	case "z":
		out.m, axis = mgl32.Rotate3DZ(rad), 2
	default:
		return nil, fmt.Errorf("unknown rotation axis %q", r.Axis)
	}
	if r.Rescale {
		s := float32(1 / math.Cos(float64(rad)))
		for i := range out.scale {
			if i != axis {
				out.scale[i] = s
			}
		}
	}
	return out, nil
}

// variantRotation applies x first, then y; both turn clockwise when viewed
// from the positive axis, so y=90 maps north to east.
func variantRotation(x, y int) *mgl32.Mat3 {
	if x%360 == 0 && y%360 == 0 {
		return nil
	}
	m := mgl32.Rotate3DY(mgl32.DegToRad(float32(-y))).Mul3(mgl32.Rotate3DX(mgl32.DegToRad(float32(-x))))
	// Snap to exact quarter turns.
	for i := range m {
		m[i] = float32(math.Round(float64(m[i])))
	}
	return &m
}

func rotateDirection(m *mgl32.Mat3, d world.Direction) world.Direction {
	return bakery.LightFace(m.Mul3x1(d.Vector()))
}
