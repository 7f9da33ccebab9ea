package registry

import (
	"blockbake/internal/quad"
	"blockbake/internal/world"
)

// Block states of the built-in set.
const (
	Air world.BlockState = iota
	Stone
	Grass
	Dirt
	Cobblestone
	Bedrock
	StoneBrick
	OakPlanks
	BirchPlanks
	SprucePlanks
	Glowstone
	Glass
	OakLeaves
)

// grassTint is the plains biome grass colour.
const grassTint = 0x7DFF5C

// Defaults returns a registry holding the built-in blocks. Models are
// attached later by LoadModels.
func Defaults() *Registry {
	r := New()
	for _, def := range []*BlockDefinition{
		{ID: Air, Name: "air", Transparent: true},
		{ID: Stone, Name: "stone", FullCube: true},
		{ID: Grass, Name: "grass", FullCube: true, TintColor: grassTint},
		{ID: Dirt, Name: "dirt", FullCube: true},
		{ID: Cobblestone, Name: "cobblestone", FullCube: true},
		{ID: Bedrock, Name: "bedrock", FullCube: true},
		{ID: StoneBrick, Name: "stonebrick", FullCube: true},
		{ID: OakPlanks, Name: "oak_planks", FullCube: true},
		{ID: BirchPlanks, Name: "birch_planks", FullCube: true},
		{ID: SprucePlanks, Name: "spruce_planks", FullCube: true},
		{ID: Glowstone, Name: "glowstone", FullCube: true, Emission: 15},
		{ID: Glass, Name: "glass", FullCube: true, Transparent: true, Pass: quad.PassCutout},
		{ID: OakLeaves, Name: "oak_leaves", FullCube: true, Transparent: true, TintColor: 0x48B518, Pass: quad.PassCutoutMipped},
	} {
		r.Register(def)
	}
	return r
}
