package quad

// Texture transform word. It travels next to a quad into the bakery and is
// not stored in the baked result. Seven bits per layer, same ordering rule
// as the header.
const (
	rotationShift = 0
	rotationWidth = 2 // 0, 90, 180, 270 degrees

	flipUShift   = rotationShift + rotationWidth
	flipVShift   = flipUShift + 1
	lockUVShift  = flipVShift + 1
	rawUVShift   = lockUVShift + 1
	uvScaleShift = rawUVShift + 1

	transformLayerWidth = uvScaleShift + 1
)

const _ uint = 32 - transformLayerWidth*MaxLayers

var (
	rotationField = bitField{rotationShift, rotationWidth}
	flipUField    = bitField{flipUShift, 1}
	flipVField    = bitField{flipVShift, 1}
	lockUVField   = bitField{lockUVShift, 1}
	rawUVField    = bitField{rawUVShift, 1}
	uvScaleField  = bitField{uvScaleShift, 1}
)

// Transform holds per-layer rotation, flip, lock-UV, raw-UV and
// UV-scale-from-16 flags.
type Transform uint32

// DefaultTransform has lock-UV on for every layer and nothing else.
var DefaultTransform = func() Transform {
	var t Transform
	for l := 0; l < MaxLayers; l++ {
		t = t.WithLockUV(l, true)
	}
	return t
}()

func layerField(f bitField, layer int) bitField {
	checkLayer(layer)
	return bitField{shift: f.shift + uint32(layer)*transformLayerWidth, width: f.width}
}

func (t Transform) flag(f bitField, layer int) bool {
	return layerField(f, layer).get(uint32(t)) != 0
}

func (t Transform) withFlag(f bitField, layer int, on bool) Transform {
	return Transform(layerField(f, layer).set(uint32(t), boolBit(on)))
}

// Rotation returns the quarter-turn count (0..3) for a layer.
func (t Transform) Rotation(layer int) int {
	return int(layerField(rotationField, layer).get(uint32(t)))
}

// WithRotation sets the quarter-turn count; values wrap modulo 4.
func (t Transform) WithRotation(layer, quarterTurns int) Transform {
	return Transform(layerField(rotationField, layer).set(uint32(t), uint32(quarterTurns&3)))
}

func (t Transform) FlipU(layer int) bool   { return t.flag(flipUField, layer) }
func (t Transform) FlipV(layer int) bool   { return t.flag(flipVField, layer) }
func (t Transform) LockUV(layer int) bool  { return t.flag(lockUVField, layer) }
func (t Transform) RawUV(layer int) bool   { return t.flag(rawUVField, layer) }
func (t Transform) UVScale(layer int) bool { return t.flag(uvScaleField, layer) }

func (t Transform) WithFlipU(layer int, on bool) Transform   { return t.withFlag(flipUField, layer, on) }
func (t Transform) WithFlipV(layer int, on bool) Transform   { return t.withFlag(flipVField, layer, on) }
func (t Transform) WithLockUV(layer int, on bool) Transform  { return t.withFlag(lockUVField, layer, on) }
func (t Transform) WithRawUV(layer int, on bool) Transform   { return t.withFlag(rawUVField, layer, on) }
func (t Transform) WithUVScale(layer int, on bool) Transform { return t.withFlag(uvScaleField, layer, on) }
