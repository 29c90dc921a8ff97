package component

import "gonum.org/v1/gonum/spatial/r2"

type UmbrellaAnim int

const (
	UmbrellaClosed UmbrellaAnim = iota
	UmbrellaOpening
	UmbrellaOpen
	UmbrellaBoost
)

// Umbrella is pinned to its owner each step. Angle is the facing direction
// in radians, π/2 pointing straight up.
type Umbrella struct {
	Owner uint64

	Open           bool
	Angle          float64
	RotateSpeed    float64
	ClosedMomentum float64
	MaxFallSpeed   float64
	BoostImpulse   float64

	OpenTexture   string
	ClosedTexture string
	Anim          UmbrellaAnim

	// Winds is the membership set of wind zones overlapping the canopy.
	Winds ContactSet
	// WindForce is the aggregate force applied on the last tick.
	WindForce r2.Vec
}

var UmbrellaComponent = NewComponent[Umbrella]()
