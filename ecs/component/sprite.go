package component

import "gonum.org/v1/gonum/spatial/r2"

// Sprite references a texture by asset key. Size is the world-space area the
// texture must cover; TextureSize is its natural size in pixels.
type Sprite struct {
	Texture     string
	TextureSize r2.Vec
	Size        r2.Vec
	// Polygon sprites fill the obstacle outline; others draw a region.
	Polygon bool
	// Origin is the world-local point the region is anchored at.
	Origin r2.Vec
	// Rotation turns a region sprite on top of the body angle.
	Rotation float64
	FlipX    bool
	Hidden   bool
}

var SpriteComponent = NewComponent[Sprite]()
