// Package render draws the simulation with ebiten.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/gustfall/assets"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

// frameShade darkens each successive placeholder frame so animations read.
const frameShade = 0.08

// Textures turns asset directory entries into ebiten images on first use.
type Textures struct {
	dir    *assets.Directory
	images map[string]*ebiten.Image
	faces  map[string]text.Face
}

func NewTextures(dir *assets.Directory) *Textures {
	return &Textures{
		dir:    dir,
		images: make(map[string]*ebiten.Image),
		faces:  make(map[string]text.Face),
	}
}

// Image returns the whole filmstrip for key and the size of one frame.
func (t *Textures) Image(key string) (*ebiten.Image, assets.Texture, error) {
	tex, err := t.dir.Texture(key)
	if err != nil {
		return nil, assets.Texture{}, err
	}
	if img, ok := t.images[key]; ok {
		return img, tex, nil
	}
	img, err := t.build(tex)
	if err != nil {
		return nil, assets.Texture{}, err
	}
	t.images[key] = img
	return img, tex, nil
}

func (t *Textures) build(tex assets.Texture) (*ebiten.Image, error) {
	if tex.Path != "" {
		data, err := t.dir.ReadFile(tex.Path)
		if err != nil {
			return nil, fmt.Errorf("render: texture %s: %w", tex.Key, err)
		}
		src, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("render: texture %s: %w", tex.Key, err)
		}
		return ebiten.NewImageFromImage(src), nil
	}

	base, ok := colornames.Map[tex.Color]
	if !ok {
		return nil, fmt.Errorf("render: texture %s: unknown colour %q", tex.Key, tex.Color)
	}
	img := ebiten.NewImage(tex.Width*tex.Frames, tex.Height)
	for i := 0; i < tex.Frames; i++ {
		frame := img.SubImage(image.Rect(i*tex.Width, 0, (i+1)*tex.Width, tex.Height)).(*ebiten.Image)
		frame.Fill(shade(base, 1-frameShade*float64(i)))
	}
	return img, nil
}

func shade(c color.RGBA, f float64) color.RGBA {
	if f < 0 {
		f = 0
	}
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

// Face returns the font face for key, falling back to the built-in face
// while fonts are still loading.
func (t *Textures) Face(key string) text.Face {
	if f, ok := t.faces[key]; ok {
		return f
	}
	face := text.Face(text.NewGoXFace(basicfont.Face7x13))
	if _, err := t.dir.Font(key); err != nil {
		return face
	}
	t.faces[key] = face
	return face
}
