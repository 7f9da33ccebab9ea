package meshing

import (
	"blockbake/internal/ao"
	"blockbake/internal/bakery"
	"blockbake/internal/quad"
	"blockbake/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// faceShade is the fixed diffuse term of quads lying on a block face.
var faceShade = [world.DirectionCount]float32{
	world.Down:  0.5,
	world.Up:    1.0,
	world.North: 0.8,
	world.South: 0.8,
	world.West:  0.6,
	world.East:  0.6,
}

// normalShade blends the axis shades by the squared normal components.
func normalShade(n mgl32.Vec3) float32 {
	s := n[0]*n[0]*0.6 + n[1]*n[1]*((3+n[1])/4) + n[2]*n[2]*0.8
	return min(s, 1)
}

// LighterOptions configure a Lighter.
type LighterOptions struct {
	// Smooth enables ambient occlusion; flat lighting is used otherwise.
	Smooth        bool
	CacheCapacity int
	Props         world.BlockProperties
	Tint          TintSource
}

// Lighter turns baked quads into lit vertices. It owns an AO calculator and
// is not safe for concurrent use.
type Lighter struct {
	opts   LighterOptions
	calc   *ao.Calculator
	bounds ao.ShapeBounds

	aoMul  [quad.VertexCount]float32
	light  [quad.VertexCount]uint32
	shades [quad.VertexCount]float32
}

func NewLighter(opts LighterOptions) *Lighter {
	return &Lighter{opts: opts, calc: ao.NewCalculator(opts.CacheCapacity)}
}

// SetSmooth switches between AO and flat lighting.
func (l *Lighter) SetSmooth(on bool) { l.opts.Smooth = on }

// Reset drops cached samples; call it whenever the view changes.
func (l *Lighter) Reset() {
	l.calc.Clear()
}

// CacheStats reports the AO cache counters since the last ResetStats.
func (l *Lighter) CacheStats() (hits, misses uint64) {
	return l.calc.Cache().Stats()
}

func (l *Lighter) ResetStats() {
	l.calc.Cache().ResetStats()
}

// ShouldCull reports whether the quad lies on a face of its block that is
// covered by an opaque full cube.
func ShouldCull(view world.BlockView, pos world.BlockPos, data []uint32, base int) bool {
	face := quad.ActualFace(data, base)
	if !face.Valid() {
		return false
	}
	n := pos.Offset(face)
	return view.IsOpaqueFullCube(view.BlockState(n), n)
}

// LightBlock lights every visible quad of a placed block.
func (l *Lighter) LightBlock(view world.BlockView, b PlacedBlock, out *OutputSet) (lit, culled int) {
	m := b.Model
	for i := 0; i < m.QuadCount(); i++ {
		base := m.Quad(i)
		if ShouldCull(view, b.Pos, m.Quads, base) {
			culled++
			continue
		}
		l.Light(view, b.State, b.Pos, m.Quads, base, out)
		lit++
	}
	return lit, culled
}

// Light writes one quad to the buffers of its layers' render passes.
// Layers without a sprite are skipped.
func (l *Lighter) Light(view world.BlockView, state world.BlockState, pos world.BlockPos, data []uint32, base int, out *OutputSet) {
	actual := quad.ActualFace(data, base)
	smooth := l.opts.Smooth && quad.WorldAOEnabled(data, base)
	if smooth {
		l.computeAO(view, state, pos, data, base, actual)
	} else {
		l.computeFlat(view, pos, actual)
	}
	l.computeShade(data, base, actual)

	origin := mgl32.Vec3{float32(pos.X), float32(pos.Y), float32(pos.Z)}
	worldDiffuse := quad.WorldDiffuseEnabled(data, base)
	for layer := 0; layer < quad.LayerCount(data, base); layer++ {
		if !quad.IsPresent(data, base, layer) {
			continue
		}
		emissive := quad.EmissiveEnabled(data, base, layer)
		diffuse, occlude := worldDiffuse, smooth
		if emissive {
			diffuse = quad.LightmapDiffuseEnabled(data, base, layer)
			occlude = quad.LightmapAOEnabled(data, base, layer)
		}
		tint := uint32(0xFFFFFF)
		if quad.BlockColorEnabled(data, base, layer) && l.opts.Tint != nil {
			tint = l.opts.Tint.TintColor(state, pos)
		}

		buf := out.Buffer(quad.Pass(data, base, layer))
		for v := 0; v < quad.VertexCount; v++ {
			color := multiplyRGB(quad.Color(data, base, layer, v), tint)
			light := l.light[v]
			if emissive {
				color = multiplyRGB(color, quad.Lightmap(data, base, v))
				light = world.FullBright
			}
			shade := float32(1)
			if diffuse {
				shade *= l.shades[v]
			}
			if occlude {
				shade *= l.aoMul[v]
			}
			buf.Append(Vertex{
				Pos:    origin.Add(quad.Position(data, base, v)),
				Color:  scaleRGB(color, shade),
				U:      quad.U(data, base, layer, v),
				V:      quad.V(data, base, layer, v),
				Light:  light,
				Normal: quad.Normal(data, base, v),
			})
		}
	}
}

func (l *Lighter) computeAO(view world.BlockView, state world.BlockState, pos world.BlockPos, data []uint32, base int, actual world.Direction) {
	face := actual
	if !face.Valid() {
		face = bakery.LightFace(bakery.FaceNormal(data, base))
	}
	if !face.Valid() {
		l.computeFlat(view, pos, actual)
		return
	}
	fullCube := l.opts.Props != nil && l.opts.Props.IsFullCube(state)
	useNeighbor, nonCubic := ao.FillQuadBounds(data, base, face, fullCube, &l.bounds)
	l.calc.Compute(view, state, pos, face, &l.bounds, useNeighbor, nonCubic)
	l.aoMul = l.calc.ColorMultiplier
	l.light = l.calc.Brightness
}

// computeFlat samples one brightness for the whole quad: across its face
// when it lies on one, otherwise at the block itself.
func (l *Lighter) computeFlat(view world.BlockView, pos world.BlockPos, actual world.Direction) {
	p := pos
	if actual.Valid() {
		p = pos.Offset(actual)
	}
	b := view.Brightness(p)
	for v := range l.light {
		l.light[v] = b
		l.aoMul[v] = 1
	}
}

func (l *Lighter) computeShade(data []uint32, base int, actual world.Direction) {
	for v := range l.shades {
		if actual.Valid() {
			l.shades[v] = faceShade[actual]
		} else {
			l.shades[v] = normalShade(quad.Normal(data, base, v))
		}
	}
}

// multiplyRGB multiplies the colour channels of argb by rgb, keeping alpha.
func multiplyRGB(argb, rgb uint32) uint32 {
	if rgb&0xFFFFFF == 0xFFFFFF {
		return argb
	}
	ch := func(shift uint32) uint32 {
		return ((argb >> shift & 0xFF) * (rgb >> shift & 0xFF) / 0xFF) << shift
	}
	return argb&0xFF000000 | ch(16) | ch(8) | ch(0)
}

// scaleRGB multiplies the colour channels of argb by s in [0,1].
func scaleRGB(argb uint32, s float32) uint32 {
	if s >= 1 {
		return argb
	}
	s = max(s, 0)
	ch := func(shift uint32) uint32 {
		return uint32(float32(argb>>shift&0xFF)*s+0.5) & 0xFF << shift
	}
	return argb&0xFF000000 | ch(16) | ch(8) | ch(0)
}
