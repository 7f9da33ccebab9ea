package world

// Packed brightness layout: block light in bits 4-7, sky light in bits 20-23.
// The AO math averages the two halves independently, so only LightMask bits
// may ever be set.
const (
	LightMask     uint32 = 0x00FF00FF
	MaxLightLevel        = 15

	// FullBright is the packed value for block and sky light at level 15.
	FullBright uint32 = 0x00F000F0
)

// PackLight packs block and sky light levels (0..15).
func PackLight(block, sky int) uint32 {
	return uint32(clampLevel(sky))<<20 | uint32(clampLevel(block))<<4
}

// BlockLight extracts the block light level.
func BlockLight(packed uint32) int {
	return int(packed>>4) & 0xF
}

// SkyLight extracts the sky light level.
func SkyLight(packed uint32) int {
	return int(packed>>20) & 0xF
}

// MaxLight combines two packed values component-wise.
func MaxLight(a, b uint32) uint32 {
	return PackLight(max(BlockLight(a), BlockLight(b)), max(SkyLight(a), SkyLight(b)))
}

func clampLevel(v int) int {
	return min(max(v, 0), MaxLightLevel)
}
