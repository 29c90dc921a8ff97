// Command filmstrip previews the animated textures of the asset manifest.
// Left and right step through the texture keys.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/gustfall/assets"
	"github.com/milk9111/gustfall/canvas"
	"github.com/milk9111/gustfall/render"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"
)

const size = 512

type previewGame struct {
	dir    *assets.Directory
	canvas *render.Canvas
	keys   []string
	index  int

	tick        int
	frame       int
	ticksPerFrm int
}

func (g *previewGame) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.index = (g.index + 1) % len(g.keys)
		g.frame = 0
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.index = (g.index + len(g.keys) - 1) % len(g.keys)
		g.frame = 0
	}
	g.tick++
	if g.tick >= g.ticksPerFrm {
		g.tick = 0
		g.frame++
	}
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})
	g.canvas.Begin(screen)

	key := g.keys[g.index]
	tex, err := g.dir.Texture(key)
	if err != nil {
		return
	}
	frame := g.frame % max(tex.Frames, 1)
	scale := float64(size/2) / float64(max(tex.Width, tex.Height))
	g.canvas.DrawHUD(canvas.Region{
		Texture:  key,
		Frame:    frame,
		Tint:     canvas.White,
		Pivot:    r2.Vec{X: float64(tex.Width) / 2, Y: float64(tex.Height) / 2},
		Position: r2.Vec{X: size / 2, Y: size / 2},
		Scale:    r2.Vec{X: scale, Y: scale},
	})
	g.canvas.DrawText(canvas.Text{
		Font:     assets.RetroFont,
		Text:     fmt.Sprintf("%s  frame %d/%d", key, frame+1, tex.Frames),
		Position: r2.Vec{X: 10, Y: 20},
	})
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return size, size
}

func main() {
	start := flag.String("texture", assets.PlayerWalkAnimation, "texture key shown first")
	fps := flag.Int("fps", 8, "frames per second")
	flag.Parse()

	dir, err := assets.Default()
	if err != nil {
		log.Fatal(err)
	}
	if err := dir.LoadAll(); err != nil {
		log.Fatal(err)
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	keys := dir.TextureKeys()
	ticks := 1
	if *fps > 0 {
		ticks = max(60 / *fps, 1)
	}
	g := &previewGame{
		dir:         dir,
		canvas:      render.NewCanvas(logger, render.NewTextures(dir), 1),
		keys:        keys,
		index:       max(slices.Index(keys, *start), 0),
		ticksPerFrm: ticks,
	}
	ebiten.SetWindowSize(size, size)
	ebiten.SetWindowTitle("filmstrip")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
