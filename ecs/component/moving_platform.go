package component

import "gonum.org/v1/gonum/spatial/r2"

// MovingPlatform follows Path as a closed loop at Speed.
type MovingPlatform struct {
	Path      []r2.Vec
	Speed     float64
	Target    int
	TileIndex int
}

var MovingPlatformComponent = NewComponent[MovingPlatform]()
