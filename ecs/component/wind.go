package component

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Wind is a sensor zone pushing along Direction with Magnitude > 0.
type Wind struct {
	Direction float64
	Magnitude float64
}

// Unit is the wind direction as a unit vector.
func (w Wind) Unit() r2.Vec {
	return r2.Vec{X: math.Cos(w.Direction), Y: math.Sin(w.Direction)}
}

var WindComponent = NewComponent[Wind]()
