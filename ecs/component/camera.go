package component

import "gonum.org/v1/gonum/spatial/r2"

type Camera struct {
	Target     uint64
	Position   r2.Vec
	Zoom       float64
	Smoothness float64
	// ZoomSpeed is the target speed at which the zoom reaches its minimum.
	ZoomSpeed float64
}

var CameraComponent = NewComponent[Camera]()
