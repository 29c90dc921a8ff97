package render

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/gustfall/canvas"
	"github.com/milk9111/gustfall/common"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"
)

// Canvas implements canvas.Canvas on an ebiten screen image. Call Begin once
// per frame before drawing.
type Canvas struct {
	logger   *zap.Logger
	textures *Textures

	screen   *ebiten.Image
	camera   r2.Vec
	baseZoom float64
	zoom     float64

	// missing remembers keys already reported so a broken texture logs once.
	missing map[string]bool
}

var _ canvas.Canvas = (*Canvas)(nil)

func NewCanvas(logger *zap.Logger, textures *Textures, baseZoom float64) *Canvas {
	if logger == nil {
		logger = zap.NewNop()
	}
	if baseZoom <= 0 {
		baseZoom = common.StandardZoom
	}
	return &Canvas{
		logger:   logger,
		textures: textures,
		baseZoom: baseZoom,
		zoom:     common.StandardZoom,
		missing:  make(map[string]bool),
	}
}

func (c *Canvas) Begin(screen *ebiten.Image) {
	c.screen = screen
}

func (c *Canvas) SetCamera(pos r2.Vec) {
	c.camera = pos
}

func (c *Canvas) SetDynamicCameraZoom(zoom float64) {
	c.zoom = zoom
}

func (c *Canvas) Zoom() float64 {
	return c.baseZoom * c.zoom
}

// toScreen maps world pixels (y up) to screen pixels (y down).
func (c *Canvas) toScreen(p r2.Vec) (float64, float64) {
	b := c.screen.Bounds()
	zoom := c.Zoom()
	return (p.X-c.camera.X)*zoom + float64(b.Dx())/2,
		float64(b.Dy())/2 - (p.Y-c.camera.Y)*zoom
}

func (c *Canvas) image(key string) (*ebiten.Image, int, int, bool) {
	img, tex, err := c.textures.Image(key)
	if err != nil {
		if !c.missing[key] {
			c.missing[key] = true
			c.logger.Warn("texture unavailable", zap.String("texture", key), zap.Error(err))
		}
		return nil, 0, 0, false
	}
	return img, tex.Width, tex.Height, true
}

func (c *Canvas) frame(key string, n int) (*ebiten.Image, bool) {
	img, w, h, ok := c.image(key)
	if !ok {
		return nil, false
	}
	frames := img.Bounds().Dx() / max(w, 1)
	if frames > 0 {
		n %= frames
	}
	return img.SubImage(image.Rect(n*w, 0, (n+1)*w, h)).(*ebiten.Image), true
}

func (c *Canvas) DrawRegion(r canvas.Region) {
	if c.screen == nil {
		return
	}
	src, ok := c.frame(r.Texture, r.Frame)
	if !ok {
		return
	}
	var geo ebiten.GeoM
	geo.Translate(-r.Pivot.X, -r.Pivot.Y)
	geo.Scale(r.Scale.X, r.Scale.Y)
	geo.Rotate(-r.Rotation)
	geo.Scale(c.Zoom(), c.Zoom())
	x, y := c.toScreen(r.Position)
	geo.Translate(x, y)
	c.blit(src, geo, r.Tint, r.Flash)
}

func (c *Canvas) DrawHUD(r canvas.Region) {
	if c.screen == nil {
		return
	}
	src, ok := c.frame(r.Texture, r.Frame)
	if !ok {
		return
	}
	var geo ebiten.GeoM
	geo.Translate(-r.Pivot.X, -r.Pivot.Y)
	geo.Scale(r.Scale.X, r.Scale.Y)
	geo.Rotate(r.Rotation)
	geo.Translate(r.Position.X, r.Position.Y)
	c.blit(src, geo, r.Tint, r.Flash)
}

func (c *Canvas) blit(src *ebiten.Image, geo ebiten.GeoM, tint canvas.Color, flash bool) {
	if flash {
		var cm colorm.ColorM
		cm.Scale(0, 0, 0, tint.A)
		cm.Translate(1, 1, 1, 0)
		colorm.DrawImage(c.screen, src, cm, &colorm.DrawImageOptions{GeoM: geo, Filter: ebiten.FilterNearest})
		return
	}
	op := &ebiten.DrawImageOptions{GeoM: geo, Filter: ebiten.FilterNearest}
	op.ColorScale.Scale(float32(tint.R), float32(tint.G), float32(tint.B), float32(tint.A))
	c.screen.DrawImage(src, op)
}

func (c *Canvas) DrawPolygon(p canvas.Polygon) {
	if c.screen == nil || len(p.Points) == 0 || len(p.Triangles) == 0 {
		return
	}
	src, _, _, ok := c.image(p.Texture)
	if !ok {
		return
	}
	if p.TextureScale.X == 0 || p.TextureScale.Y == 0 {
		p.TextureScale = r2.Vec{X: 1, Y: 1}
	}

	minX, maxY := math.Inf(1), math.Inf(-1)
	for _, pt := range p.Points {
		minX = math.Min(minX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}

	sin, cos := math.Sincos(p.Rotation)
	verts := make([]ebiten.Vertex, len(p.Points))
	for i, pt := range p.Points {
		world := r2.Add(p.Position, r2.Vec{X: pt.X*cos - pt.Y*sin, Y: pt.X*sin + pt.Y*cos})
		x, y := c.toScreen(world)
		verts[i] = ebiten.Vertex{
			DstX:   float32(x),
			DstY:   float32(y),
			SrcX:   float32((pt.X - minX) / p.TextureScale.X),
			SrcY:   float32((maxY - pt.Y) / p.TextureScale.Y),
			ColorR: float32(p.Tint.R),
			ColorG: float32(p.Tint.G),
			ColorB: float32(p.Tint.B),
			ColorA: float32(p.Tint.A),
		}
	}
	indices := make([]uint16, 0, len(p.Triangles)*3)
	for _, tri := range p.Triangles {
		indices = append(indices, uint16(tri[0]), uint16(tri[1]), uint16(tri[2]))
	}

	if p.Flash {
		var cm colorm.ColorM
		cm.Scale(0, 0, 0, 1)
		cm.Translate(1, 1, 1, 0)
		colorm.DrawTriangles(c.screen, verts, indices, src, cm, &colorm.DrawTrianglesOptions{Address: ebiten.AddressRepeat})
		return
	}
	c.screen.DrawTriangles(verts, indices, src, &ebiten.DrawTrianglesOptions{Address: ebiten.AddressRepeat})
}

func (c *Canvas) DrawText(t canvas.Text) {
	if c.screen == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(t.Position.X, t.Position.Y)
	tint := t.Tint
	if tint == canvas.Transparent {
		tint = canvas.White
	}
	op.ColorScale.Scale(float32(tint.R), float32(tint.G), float32(tint.B), float32(tint.A))
	text.Draw(c.screen, t.Text, c.textures.Face(t.Font), op)
}
