package world

// BlockView is the read-only world query surface consumed by the lighting
// code. Answers must not change for the duration of one bake or AO compute.
type BlockView interface {
	BlockState(pos BlockPos) BlockState
	// Brightness returns packed block/sky light at pos (see PackLight).
	Brightness(pos BlockPos) uint32
	// AmbientOcclusionLightLevel returns a value in [0,1]; 1 means the block
	// does not darken its neighbours.
	AmbientOcclusionLightLevel(state BlockState, pos BlockPos) float32
	IsOpaqueFullCube(state BlockState, pos BlockPos) bool
}

// BlockProperties describes per-state block behaviour used by Grid.
type BlockProperties interface {
	IsOpaqueFullCube(state BlockState) bool
	IsFullCube(state BlockState) bool
	LightEmission(state BlockState) int
}
