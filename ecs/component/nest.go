package component

import "gonum.org/v1/gonum/spatial/r2"

// Nest spawns birds of Color every Interval seconds while fewer than
// MaxBirds of its own are alive.
type Nest struct {
	Interval float64
	Timer    float64
	MaxBirds int
	Color    string
	Path     []r2.Vec
	Birds    []uint64
	// Spawned counts every bird ever hatched, for naming.
	Spawned int
}

var NestComponent = NewComponent[Nest]()
