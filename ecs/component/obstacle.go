package component

import (
	"github.com/jakecoffman/cp"
	"gonum.org/v1/gonum/spatial/r2"
)

// BodyKind selects how the physics engine moves an obstacle.
type BodyKind int

const (
	BodyStatic BodyKind = iota
	BodyKinematic
	BodyDynamic
)

func (k BodyKind) String() string {
	switch k {
	case BodyStatic:
		return "static"
	case BodyKinematic:
		return "kinematic"
	case BodyDynamic:
		return "dynamic"
	}
	return "unknown"
}

type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapePolygon
	ShapeCircle
)

// CollisionKind tags a shape for contact routing.
type CollisionKind int

const (
	CollisionNone CollisionKind = iota
	CollisionSolid
	CollisionMovingPlatform
	CollisionPlayer
	CollisionPlayerFoot
	CollisionUmbrella
	CollisionWind
	CollisionHazard
	CollisionBird
	CollisionGoal
)

var collisionKindNames = [...]string{
	CollisionNone:           "none",
	CollisionSolid:          "solid",
	CollisionMovingPlatform: "moving_platform",
	CollisionPlayer:         "player",
	CollisionPlayerFoot:     "player_foot",
	CollisionUmbrella:       "umbrella",
	CollisionWind:           "wind",
	CollisionHazard:         "hazard",
	CollisionBird:           "bird",
	CollisionGoal:           "goal",
}

func (k CollisionKind) String() string {
	if k < 0 || int(k) >= len(collisionKindNames) {
		return "unknown"
	}
	return collisionKindNames[k]
}

// LocalBounds is the tight axis-aligned box around an obstacle's shape in
// object-local world units.
type LocalBounds struct {
	Min r2.Vec
	Max r2.Vec
}

// TopLeft is the draw origin used by textures anchored at the box corner.
func (b LocalBounds) TopLeft() r2.Vec {
	return r2.Vec{X: b.Min.X, Y: b.Max.Y}
}

func (b LocalBounds) Size() r2.Vec {
	return r2.Sub(b.Max, b.Min)
}

// Obstacle is the physics record shared by every entity that lives in the
// physics world. Geometry is in world units, relative to Position.
type Obstacle struct {
	Name string

	Body      BodyKind
	Shape     ShapeKind
	Width     float64
	Height    float64
	Radius    float64
	Points    []r2.Vec
	Triangles [][3]int
	Bounds    LocalBounds

	Position r2.Vec
	Rotation float64

	Density       float64
	Friction      float64
	Restitution   float64
	GravityScale  float64
	FixedRotation bool
	// MaxSpeed caps each velocity axis after integration; 0 means uncapped.
	MaxSpeed  float64
	Sensor    bool
	Collision CollisionKind

	DrawScale r2.Vec
	Depth     int

	// Populated when the level container activates the obstacle.
	RigidBody *cp.Body
	Shapes    []*cp.Shape
}

// Active reports whether the obstacle has been inserted into a physics world.
func (o *Obstacle) Active() bool {
	return o != nil && o.RigidBody != nil
}

// Center returns the live body position once active, else the authored one.
func (o *Obstacle) Center() r2.Vec {
	if o.Active() {
		p := o.RigidBody.Position()
		return r2.Vec{X: p.X, Y: p.Y}
	}
	return o.Position
}

func (o *Obstacle) Velocity() r2.Vec {
	if !o.Active() {
		return r2.Vec{}
	}
	v := o.RigidBody.Velocity()
	return r2.Vec{X: v.X, Y: v.Y}
}

func (o *Obstacle) Angle() float64 {
	if o.Active() {
		return o.RigidBody.Angle()
	}
	return o.Rotation
}

func (o *Obstacle) Mass() float64 {
	if !o.Active() {
		return 0
	}
	return o.RigidBody.Mass()
}

var ObstacleComponent = NewComponent[Obstacle]()
