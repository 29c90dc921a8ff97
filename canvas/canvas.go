// Package canvas is the drawing contract between the simulation and a
// renderer. Positions are world pixels (world units times draw scale) with y
// pointing up; the canvas applies the camera.
package canvas

import "gonum.org/v1/gonum/spatial/r2"

type Color struct {
	R, G, B, A float64
}

var (
	White       = Color{1, 1, 1, 1}
	Transparent = Color{}
)

// Scale multiplies each channel of c by f, alpha included.
func (c Color) Scale(f float64) Color {
	return Color{c.R * f, c.G * f, c.B * f, c.A * f}
}

// Polygon is a texture repeated across a triangulated outline. Points are
// local pixels around Position; TextureScale stretches one texture repeat.
type Polygon struct {
	Texture      string
	TextureSize  r2.Vec
	TextureScale r2.Vec
	Points       []r2.Vec
	Triangles    [][3]int
	Tint         Color
	Position     r2.Vec
	Rotation     float64
	// Flash draws the shape solid white on top of its texture.
	Flash bool
}

// Region is one frame of a horizontal filmstrip. Pivot is in texture pixels
// from the frame's top-left corner; Scale maps texture pixels to world
// pixels and may be negative to flip.
type Region struct {
	Texture  string
	Frame    int
	Tint     Color
	Pivot    r2.Vec
	Position r2.Vec
	Rotation float64
	Scale    r2.Vec
	Flash    bool
}

// Text is drawn in screen pixels from the top-left corner.
type Text struct {
	Font     string
	Text     string
	Position r2.Vec
	Tint     Color
}

type Canvas interface {
	DrawPolygon(p Polygon)
	DrawRegion(r Region)
	// DrawHUD draws a region in screen pixels, ignoring the camera.
	DrawHUD(r Region)
	DrawText(t Text)
	SetCamera(pos r2.Vec)
	SetDynamicCameraZoom(zoom float64)
}
