package component

import (
	"github.com/milk9111/gustfall/common"
	"gonum.org/v1/gonum/spatial/r2"
)

// LevelBounds stores the world rectangle and the world-to-pixel draw scale.
type LevelBounds struct {
	Bounds    common.Rect
	DrawScale r2.Vec
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
