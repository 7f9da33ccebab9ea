// Package atlas places named sprites on a square-tile texture atlas and
// answers their atlas-space rectangles.
package atlas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// MissingSprite is always placed in tile 0.
const MissingSprite = "missingno"

var ErrUnknownSprite = errors.New("atlas: unknown sprite")

// Sprite is a rectangle of the atlas in normalized [0,1] coordinates.
type Sprite interface {
	MinU() float32
	MaxU() float32
	MinV() float32
	MaxV() float32
}

// Region is a sprite placed on an Atlas.
type Region struct {
	Name       string
	X, Y, W, H int // pixels
	U0, V0     float32
	U1, V1     float32
}

func (r *Region) MinU() float32 { return r.U0 }
func (r *Region) MaxU() float32 { return r.U1 }
func (r *Region) MinV() float32 { return r.V0 }
func (r *Region) MaxV() float32 { return r.V1 }

// Atlas is immutable once stitched and safe for concurrent reads.
type Atlas struct {
	tileSize int
	columns  int
	rows     int
	order    []string
	regions  map[string]*Region
}

// Stitch lays out names row-major on a grid with the given column count.
// Duplicates keep their first slot; MissingSprite is prepended.
func Stitch(names []string, tileSize, columns int) *Atlas {
	if tileSize <= 0 || columns <= 0 {
		panic(fmt.Sprintf("atlas: invalid tile size %d or column count %d", tileSize, columns))
	}
	a := &Atlas{
		tileSize: tileSize,
		columns:  columns,
		regions:  make(map[string]*Region, len(names)+1),
	}
	a.add(MissingSprite)
	for _, n := range names {
		if n != "" {
			a.add(n)
		}
	}
	a.rows = (len(a.order) + columns - 1) / columns

	w := float32(a.Width())
	h := float32(a.Height())
	for i, n := range a.order {
		r := a.regions[n]
		r.X = (i % columns) * tileSize
		r.Y = (i / columns) * tileSize
		r.W, r.H = tileSize, tileSize
		r.U0 = float32(r.X) / w
		r.V0 = float32(r.Y) / h
		r.U1 = float32(r.X+tileSize) / w
		r.V1 = float32(r.Y+tileSize) / h
	}
	return a
}

func (a *Atlas) add(name string) {
	if _, exists := a.regions[name]; exists {
		return
	}
	a.regions[name] = &Region{Name: name}
	a.order = append(a.order, name)
}

// Width of the atlas in pixels.
func (a *Atlas) Width() int { return a.columns * a.tileSize }

// Height of the atlas in pixels.
func (a *Atlas) Height() int { return a.rows * a.tileSize }

// Len returns the number of sprites, MissingSprite included.
func (a *Atlas) Len() int { return len(a.order) }

// Names returns sprite names in slot order.
func (a *Atlas) Names() []string {
	return append([]string(nil), a.order...)
}

// Sprite returns the region for name.
func (a *Atlas) Sprite(name string) (*Region, error) {
	r, ok := a.regions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSprite, name)
	}
	return r, nil
}

// SpriteOrMissing returns the region for name, falling back to MissingSprite.
func (a *Atlas) SpriteOrMissing(name string) *Region {
	if r, ok := a.regions[name]; ok {
		return r
	}
	return a.regions[MissingSprite]
}

// Compose draws every sprite into a single RGBA image, scaling each source
// image to the tile size. Sprites without an image get a checkerboard.
func (a *Atlas) Compose(images map[string]image.Image) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, a.Width(), a.Height()))
	for _, n := range a.order {
		r := a.regions[n]
		rect := image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
		src, ok := images[n]
		if !ok {
			src = missingTexture(a.tileSize)
		}
		draw.NearestNeighbor.Scale(dst, rect, src, src.Bounds(), draw.Src, nil)
	}
	return dst
}

func missingTexture(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	half := max(size/2, 1)
	magenta := color.RGBA{R: 0xF8, B: 0xF8, A: 0xFF}
	black := color.RGBA{A: 0xFF}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/half+y/half)%2 == 0 {
				img.SetRGBA(x, y, magenta)
			} else {
				img.SetRGBA(x, y, black)
			}
		}
	}
	return img
}

// LoadImages decodes <dir>/<name> for every name, adding ".png" to names
// without an extension. Names that fail to load are skipped and reported in
// the returned error list.
func LoadImages(dir string, names []string) (map[string]image.Image, []error) {
	out := make(map[string]image.Image, len(names))
	var errs []error
	for _, n := range names {
		if n == MissingSprite {
			continue
		}
		file := filepath.FromSlash(n)
		if filepath.Ext(file) == "" {
			file += ".png"
		}
		img, err := loadImage(filepath.Join(dir, file))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[n] = img
	}
	return out, errs
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	return img, nil
}
