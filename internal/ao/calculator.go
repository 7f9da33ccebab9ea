// Package ao computes smooth ambient occlusion and corner brightness for
// block faces.
package ao

import "blockbake/internal/world"

// Calculator samples a block's neighbourhood and leaves per-vertex results in
// ColorMultiplier and Brightness, indexed by quad vertex. One Calculator
// belongs to one rebuild at a time; call Clear whenever the view it samples
// changes.
type Calculator struct {
	ColorMultiplier [4]float32
	Brightness      [4]uint32

	cache *Cache
}

// NewCalculator returns a Calculator with a brightness cache of the given
// capacity (DefaultCacheCapacity when non-positive).
func NewCalculator(cacheCapacity int) *Calculator {
	return &Calculator{cache: NewCache(cacheCapacity)}
}

// Clear invalidates cached samples.
func (c *Calculator) Clear() {
	c.cache.Clear()
}

// Cache exposes the brightness cache for inspection and stats.
func (c *Calculator) Cache() *Cache {
	return c.cache
}

func (c *Calculator) brightness(view world.BlockView, pos world.BlockPos) uint32 {
	if v, ok := c.cache.Get(pos); ok {
		return v
	}
	v := view.Brightness(pos)
	c.cache.Put(pos, v)
	return v
}

func aoLevel(view world.BlockView, pos world.BlockPos) float32 {
	return view.AmbientOcclusionLightLevel(view.BlockState(pos), pos)
}

func transparent(view world.BlockView, pos world.BlockPos) bool {
	return !view.IsOpaqueFullCube(view.BlockState(pos), pos)
}

// Compute fills ColorMultiplier and Brightness for the face of the block at
// pos that points toward side. bounds is only read when nonCubic is set.
// With useNeighbor the samples are taken around the block across side
// instead of around pos itself.
func (c *Calculator) Compute(view world.BlockView, _ world.BlockState, pos world.BlockPos, side world.Direction, bounds *ShapeBounds, useNeighbor, nonCubic bool) {
	light := pos
	if useNeighbor {
		light = pos.Offset(side)
	}
	nd := &neighbors[side]

	var (
		bright [4]uint32
		level  [4]float32
		open   [4]bool
	)
	for n, face := range nd.faces {
		p := light.Offset(face)
		bright[n] = c.brightness(view, p)
		level[n] = aoLevel(view, p)
		open[n] = transparent(view, p.Offset(side))
	}

	// A diagonal is only sampled when at least one of its two orthogonal
	// neighbours lets light through; otherwise the first one is reused.
	corner := func(a, b int) (float32, uint32) {
		if !open[b] && !open[a] {
			return level[a], bright[a]
		}
		p := light.Offset(nd.faces[a]).Offset(nd.faces[b])
		return aoLevel(view, p), c.brightness(view, p)
	}
	ao02, br02 := corner(0, 2)
	ao03, br03 := corner(0, 3)
	ao12, br12 := corner(1, 2)
	ao13, br13 := corner(1, 3)

	center := c.brightness(view, pos)
	if across := pos.Offset(side); useNeighbor || !view.IsOpaqueFullCube(view.BlockState(across), across) {
		center = c.brightness(view, across)
	}
	centerAO := aoLevel(view, pos)
	if useNeighbor {
		centerAO = aoLevel(view, light)
	}

	cornerAO := [4]float32{
		(level[3] + level[0] + ao03 + centerAO) * 0.25,
		(level[2] + level[0] + ao02 + centerAO) * 0.25,
		(level[2] + level[1] + ao12 + centerAO) * 0.25,
		(level[3] + level[1] + ao13 + centerAO) * 0.25,
	}
	cornerLight := [4]uint32{
		blendBrightness(bright[3], bright[0], br03, center),
		blendBrightness(bright[2], bright[0], br02, center),
		blendBrightness(bright[2], bright[1], br12, center),
		blendBrightness(bright[3], bright[1], br13, center),
	}

	t := &translations[side]
	if !nonCubic || !nd.nonCubicWeight || bounds == nil {
		for n := 0; n < 4; n++ {
			c.ColorMultiplier[t[n]] = cornerAO[n]
			c.Brightness[t[n]] = cornerLight[n]
		}
		return
	}

	for n := 0; n < 4; n++ {
		var w [4]float32
		tbl := &nd.weights[n]
		for m := 0; m < 4; m++ {
			w[m] = bounds[tbl[2*m]] * bounds[tbl[2*m+1]]
		}
		c.ColorMultiplier[t[n]] = cornerAO[0]*w[0] + cornerAO[1]*w[1] + cornerAO[2]*w[2] + cornerAO[3]*w[3]
		c.Brightness[t[n]] = weightBrightness(cornerLight, w)
	}
}

// blendBrightness averages four packed light values. Zero means "no sample"
// and is replaced by the center value first.
func blendBrightness(a, b, c, center uint32) uint32 {
	if a == 0 {
		a = center
	}
	if b == 0 {
		b = center
	}
	if c == 0 {
		c = center
	}
	return (a + b + c + center) >> 2 & world.LightMask
}

// weightBrightness blends the sky and block halves of four packed values
// separately.
func weightBrightness(v [4]uint32, w [4]float32) uint32 {
	var sky, block float32
	for i := range v {
		sky += float32(v[i]>>16&0xFF) * w[i]
		block += float32(v[i]&0xFF) * w[i]
	}
	return (uint32(int32(sky))&0xFF)<<16 | uint32(int32(block))&0xFF
}
