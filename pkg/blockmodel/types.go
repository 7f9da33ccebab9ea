package blockmodel

import "encoding/json"

type Model struct {
	Parent           string            `json:"parent"`
	AmbientOcclusion *bool             `json:"ambientocclusion"`
	Textures         map[string]string `json:"textures"`
	Elements         []Element         `json:"elements"`
}

// UsesAmbientOcclusion reports the model's AO switch, which defaults to on.
func (m *Model) UsesAmbientOcclusion() bool {
	return m.AmbientOcclusion == nil || *m.AmbientOcclusion
}

type Element struct {
	From     [3]float32      `json:"from"`
	To       [3]float32      `json:"to"`
	Rotation *Rotation       `json:"rotation"`
	Shade    *bool           `json:"shade"`
	Faces    map[string]Face `json:"faces"`
}

// Shaded reports whether the element receives directional shading.
func (e *Element) Shaded() bool {
	return e.Shade == nil || *e.Shade
}

// clone copies the element deeply enough that resolving textures on the copy
// leaves the original untouched.
func (e Element) clone() Element {
	if e.Rotation != nil {
		r := *e.Rotation
		e.Rotation = &r
	}
	faces := make(map[string]Face, len(e.Faces))
	for k, f := range e.Faces {
		faces[k] = f
	}
	e.Faces = faces
	return e
}

type Rotation struct {
	Origin  [3]float32 `json:"origin"`
	Angle   float32    `json:"angle"`
	Axis    string     `json:"axis"`
	Rescale bool       `json:"rescale"`
}

type Face struct {
	// UV is nil when the file leaves it out; coordinates then follow the
	// element's position on the face.
	UV        *[4]float32 `json:"uv"`
	Texture   string      `json:"texture"`
	CullFace  string      `json:"cullface"`
	Rotation  int         `json:"rotation"`
	TintIndex *int        `json:"tintindex"`
}

// Tinted reports whether the face takes the block colour.
func (f *Face) Tinted() bool {
	return f.TintIndex != nil && *f.TintIndex >= 0
}

// BlockState defines the blockstate JSON structure. It maps variants of a block to their corresponding models.
type BlockState struct {
	// Variants is a map of variant names to a list of models.
	Variants map[string]BlockStateVariants `json:"variants"`
}

// BlockStateVariants is a custom type to handle the fact that the "variants" field can contain either a single object or an array of objects.
type BlockStateVariants []Variant

func (v *BlockStateVariants) UnmarshalJSON(data []byte) error {
	// First, try to unmarshal as an array
	var variants []Variant
	if err := json.Unmarshal(data, &variants); err == nil {
		*v = variants
		return nil
	}

	// If that fails, try to unmarshal as a single object
	var singleVariant Variant
	if err := json.Unmarshal(data, &singleVariant); err != nil {
		return err
	}

	*v = []Variant{singleVariant}
	return nil
}

type Variant struct {
	Model  string `json:"model"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	UVLock bool   `json:"uvlock"`
	Weight int    `json:"weight"`
}
