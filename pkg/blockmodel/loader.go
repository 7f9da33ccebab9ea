package blockmodel

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// maxTextureHops bounds "#ref" chains so cyclic texture maps terminate.
const maxTextureHops = 10

// Loader reads models and blockstates below an assets directory and caches
// resolved models. Safe for concurrent use.
type Loader struct {
	assetsPath string
	mu         sync.Mutex
	modelCache map[string]*Model
}

func NewLoader(assetsPath string) *Loader {
	return &Loader{
		assetsPath: assetsPath,
		modelCache: make(map[string]*Model),
	}
}

// AssetsPath returns the directory the loader reads from.
func (l *Loader) AssetsPath() string { return l.assetsPath }

// LoadModel loads a model by name ("block/stone" or bare "stone"), merging
// in its parents. The returned model is shared; callers must not modify it.
func (l *Loader) LoadModel(name string) (*Model, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadModel(name, 0)
}

func (l *Loader) loadModel(name string, depth int) (*Model, error) {
	if !strings.Contains(name, "/") {
		name = "block/" + name
	}
	if model, ok := l.modelCache[name]; ok {
		return model, nil
	}
	if depth > 32 {
		return nil, fmt.Errorf("model %s: parent chain too deep", name)
	}

	path := filepath.Join(l.assetsPath, "models", name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read model file: %w", err)
	}

	var model Model
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("could not unmarshal model json %s: %w", name, err)
	}
	if model.Textures == nil {
		model.Textures = make(map[string]string)
	}

	if model.Parent != "" && !strings.HasPrefix(model.Parent, "builtin/") {
		parent, err := l.loadModel(model.Parent, depth+1)
		if err != nil {
			return nil, fmt.Errorf("could not load parent model '%s': %w", model.Parent, err)
		}
		if model.AmbientOcclusion == nil {
			model.AmbientOcclusion = parent.AmbientOcclusion
		}
		if len(model.Elements) == 0 {
			model.Elements = make([]Element, len(parent.Elements))
			for i, e := range parent.Elements {
				model.Elements[i] = e.clone()
			}
		}
		for key, val := range parent.Textures {
			if _, ok := model.Textures[key]; !ok {
				model.Textures[key] = val
			}
		}
	}

	l.resolveTextures(&model)
	l.modelCache[name] = &model
	return &model, nil
}

func (l *Loader) resolveTextures(m *Model) {
	for i := range m.Elements {
		for faceName, face := range m.Elements[i].Faces {
			resolved := l.ResolveTexture(face.Texture, m)
			if resolved != face.Texture {
				face.Texture = resolved
				m.Elements[i].Faces[faceName] = face
			}
		}
	}
}

// ResolveTexture follows "#key" references through the model's texture map.
// Unresolvable references are returned as they stand.
func (l *Loader) ResolveTexture(textureName string, m *Model) string {
	for i := 0; i < maxTextureHops && strings.HasPrefix(textureName, "#"); i++ {
		resolved, ok := m.Textures[strings.TrimPrefix(textureName, "#")]
		if !ok {
			break
		}
		textureName = resolved
	}
	return textureName
}

func (l *Loader) LoadBlockState(name string) (*BlockState, error) {
	path := filepath.Join(l.assetsPath, "blockstates", name+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read blockstate file: %w", err)
	}

	var blockState BlockState
	if err := json.Unmarshal(data, &blockState); err != nil {
		return nil, fmt.Errorf("could not unmarshal blockstate json %s: %w", name, err)
	}

	return &blockState, nil
}

// BlockStateNames lists the blockstate files available, sorted, without
// their extension.
func (l *Loader) BlockStateNames() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(l.assetsPath, "blockstates", "*.json"))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(m), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// DefaultVariant picks the variant used for a block: "normal", then "",
// then the alphabetically first key so the choice is deterministic.
func (bs *BlockState) DefaultVariant() (Variant, bool) {
	for _, key := range []string{"normal", ""} {
		if v, ok := bs.Variants[key]; ok && len(v) > 0 {
			return v[0], true
		}
	}
	keys := make([]string, 0, len(bs.Variants))
	for k := range bs.Variants {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := bs.Variants[k]; len(v) > 0 {
			return v[0], true
		}
	}
	return Variant{}, false
}

// TextureFile maps a resolved texture reference such as "block/stone" to the
// image file name used as its atlas key ("stone.png"). Unresolved "#refs"
// and empty references map to "".
func TextureFile(ref string) string {
	if ref == "" || strings.HasPrefix(ref, "#") {
		return ""
	}
	base := filepath.Base(ref)
	if base == "." || base == "/" {
		return ""
	}
	return base + ".png"
}
