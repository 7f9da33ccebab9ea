package quad

import (
	"blockbake/internal/world"
)

// RenderPass selects the output buffer a layer is drawn into.
type RenderPass uint8

const (
	PassSolid RenderPass = iota
	PassCutout
	PassCutoutMipped
	PassTranslucent

	RenderPassCount = 4
)

var renderPassNames = [RenderPassCount]string{"solid", "cutout", "cutout_mipped", "translucent"}

func (p RenderPass) String() string {
	if int(p) < RenderPassCount {
		return renderPassNames[p]
	}
	return "unknown"
}

// Header bit layout. Each field starts where the previous one ends, so the
// declaration order below is the wire layout; do not reorder.
const (
	depthShift = 0
	depthWidth = 2 // 4 values: 0 (unset) and 1..3

	presentShift = depthShift + depthWidth
	presentWidth = 1 // per layer

	passShift = presentShift + presentWidth*MaxLayers
	passWidth = 2 // per layer, RenderPassCount values

	blockColorShift = passShift + passWidth*MaxLayers
	emissiveShift   = blockColorShift + MaxLayers

	worldDiffuseShift = emissiveShift + MaxLayers
	worldAOShift      = worldDiffuseShift + 1

	lightmapDiffuseShift = worldAOShift + 1
	lightmapAOShift      = lightmapDiffuseShift + MaxLayers

	nominalFaceShift = lightmapAOShift + MaxLayers
	faceWidth        = 3 // 7 values: none and six directions

	actualFaceShift = nominalFaceShift + faceWidth

	headerBits = actualFaceShift + faceWidth
)

// fails to compile if the header outgrows one word
const _ uint = 32 - headerBits

var (
	depthField           = bitField{depthShift, depthWidth}
	presentField         = bitField{presentShift, presentWidth}
	passField            = bitField{passShift, passWidth}
	blockColorField      = bitField{blockColorShift, 1}
	emissiveField        = bitField{emissiveShift, 1}
	worldDiffuseField    = bitField{worldDiffuseShift, 1}
	worldAOField         = bitField{worldAOShift, 1}
	lightmapDiffuseField = bitField{lightmapDiffuseShift, 1}
	lightmapAOField      = bitField{lightmapAOShift, 1}
	nominalFaceField     = bitField{nominalFaceShift, faceWidth}
	actualFaceField      = bitField{actualFaceShift, faceWidth}
)

func header(data []uint32, base int) uint32 {
	return data[base+HeaderIndex]
}

func setHeaderField(data []uint32, base int, f bitField, v uint32) {
	data[base+HeaderIndex] = f.set(data[base+HeaderIndex], v)
}

// Depth returns the texture layer count. Zero means not configured.
func Depth(data []uint32, base int) int {
	return int(depthField.get(header(data, base)))
}

// SetDepth stores the texture layer count (1..MaxLayers).
func SetDepth(data []uint32, base, layers int) {
	checkDepth(layers)
	setHeaderField(data, base, depthField, uint32(layers))
}

// LayerCount returns the configured depth and panics if it was never set.
func LayerCount(data []uint32, base int) int {
	n := Depth(data, base)
	checkDepth(n)
	return n
}

func IsPresent(data []uint32, base, layer int) bool {
	checkLayer(layer)
	return presentField.at(layer).get(header(data, base)) != 0
}

func SetPresent(data []uint32, base, layer int, present bool) {
	checkLayer(layer)
	setHeaderField(data, base, presentField.at(layer), boolBit(present))
}

func Pass(data []uint32, base, layer int) RenderPass {
	checkLayer(layer)
	return RenderPass(passField.at(layer).get(header(data, base)))
}

func SetPass(data []uint32, base, layer int, pass RenderPass) {
	checkLayer(layer)
	setHeaderField(data, base, passField.at(layer), uint32(pass))
}

func BlockColorEnabled(data []uint32, base, layer int) bool {
	checkLayer(layer)
	return blockColorField.at(layer).get(header(data, base)) != 0
}

func SetBlockColorEnabled(data []uint32, base, layer int, enabled bool) {
	checkLayer(layer)
	setHeaderField(data, base, blockColorField.at(layer), boolBit(enabled))
}

func EmissiveEnabled(data []uint32, base, layer int) bool {
	checkLayer(layer)
	return emissiveField.at(layer).get(header(data, base)) != 0
}

func SetEmissiveEnabled(data []uint32, base, layer int, enabled bool) {
	checkLayer(layer)
	setHeaderField(data, base, emissiveField.at(layer), boolBit(enabled))
}

func WorldDiffuseEnabled(data []uint32, base int) bool {
	return worldDiffuseField.get(header(data, base)) != 0
}

func SetWorldDiffuseEnabled(data []uint32, base int, enabled bool) {
	setHeaderField(data, base, worldDiffuseField, boolBit(enabled))
}

func WorldAOEnabled(data []uint32, base int) bool {
	return worldAOField.get(header(data, base)) != 0
}

func SetWorldAOEnabled(data []uint32, base int, enabled bool) {
	setHeaderField(data, base, worldAOField, boolBit(enabled))
}

func LightmapDiffuseEnabled(data []uint32, base, layer int) bool {
	checkLayer(layer)
	return lightmapDiffuseField.at(layer).get(header(data, base)) != 0
}

func SetLightmapDiffuseEnabled(data []uint32, base, layer int, enabled bool) {
	checkLayer(layer)
	setHeaderField(data, base, lightmapDiffuseField.at(layer), boolBit(enabled))
}

func LightmapAOEnabled(data []uint32, base, layer int) bool {
	checkLayer(layer)
	return lightmapAOField.at(layer).get(header(data, base)) != 0
}

func SetLightmapAOEnabled(data []uint32, base, layer int, enabled bool) {
	checkLayer(layer)
	setHeaderField(data, base, lightmapAOField.at(layer), boolBit(enabled))
}

func encodeFace(d world.Direction) uint32 {
	if !d.Valid() {
		return 0
	}
	return uint32(d) + 1
}

func decodeFace(v uint32) world.Direction {
	if v == 0 || v > world.DirectionCount {
		return world.NoDirection
	}
	return world.Direction(v - 1)
}

// NominalFace is the face used for UV locking and culling hints.
func NominalFace(data []uint32, base int) world.Direction {
	return decodeFace(nominalFaceField.get(header(data, base)))
}

func SetNominalFace(data []uint32, base int, d world.Direction) {
	setHeaderField(data, base, nominalFaceField, encodeFace(d))
}

// ActualFace is the block face the geometry coincides with, or NoDirection.
func ActualFace(data []uint32, base int) world.Direction {
	return decodeFace(actualFaceField.get(header(data, base)))
}

func SetActualFace(data []uint32, base int, d world.Direction) {
	setHeaderField(data, base, actualFaceField, encodeFace(d))
}
