package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gustfall/common"
	"github.com/milk9111/gustfall/ecs/component"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	solverIterations = 20

	// Shape filter categories. Solids block sight lines; sensors and actors
	// never do.
	categorySolid  = 1 << 0
	categorySensor = 1 << 1
	categoryActor  = 1 << 2
	allCategories  = 1<<32 - 1

	// maxSpeed is the hard velocity limit before a body counts as broken.
	maxSpeed = 1e3

	footSensorDepth = 0.1
)

var (
	ErrDisposed        = errors.New("physics: world disposed")
	ErrAlreadyActive   = errors.New("physics: obstacle already active")
	ErrInvalidGeometry = errors.New("physics: invalid geometry")
)

var solidOnly = cp.ShapeFilter{Categories: allCategories, Mask: categorySolid}

// World owns the Chipmunk space and maps its shapes back to entities.
type World struct {
	logger  *zap.Logger
	limiter *rate.Limiter
	space   *cp.Space
	bounds  common.Rect

	shapes   map[*cp.Shape]Endpoint
	bodies   []*cp.Body
	lastGood map[*cp.Body]cp.Vector
	contacts []Contact

	anomalies int
	disposed  bool
}

// NewWorld creates a physics world with the given gravity and bounds. A nil
// limiter logs every anomaly.
func NewWorld(logger *zap.Logger, gravity r2.Vec, bounds common.Rect, limiter *rate.Limiter) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	space := cp.NewSpace()
	space.Iterations = solverIterations
	space.SetGravity(toCP(gravity))

	w := &World{
		logger:   logger,
		limiter:  limiter,
		space:    space,
		bounds:   bounds,
		shapes:   make(map[*cp.Shape]Endpoint),
		lastGood: make(map[*cp.Body]cp.Vector),
	}
	w.setupHandlers()
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

func (w *World) Bounds() common.Rect {
	return w.bounds
}

func (w *World) Gravity() r2.Vec {
	if w == nil || w.space == nil {
		return r2.Vec{}
	}
	return fromCP(w.space.Gravity())
}

func (w *World) SetGravity(g r2.Vec) {
	if w == nil || w.space == nil {
		return
	}
	w.space.SetGravity(toCP(g))
}

// Anomalies counts invariant breaches repaired by Sanitize.
func (w *World) Anomalies() int {
	return w.anomalies
}

// Activate creates the body and shapes for o and registers them under entity.
func (w *World) Activate(entity uint64, o *component.Obstacle) error {
	if w == nil || w.disposed {
		return ErrDisposed
	}
	if o == nil {
		return component.ErrNilComponent
	}
	if o.Active() {
		return fmt.Errorf("physics: activate %s: %w", o.Name, ErrAlreadyActive)
	}

	body, err := w.newBody(o)
	if err != nil {
		return fmt.Errorf("physics: activate %s: %w", o.Name, err)
	}
	body.SetPosition(toCP(o.Position))
	body.SetAngle(o.Rotation)
	w.space.AddBody(body)

	shapes, err := w.newShapes(body, o)
	if err != nil {
		w.space.RemoveBody(body)
		return fmt.Errorf("physics: activate %s: %w", o.Name, err)
	}
	for _, shape := range shapes {
		w.configureShape(shape, o.Collision, o)
		w.space.AddShape(shape)
		w.shapes[shape] = Endpoint{Entity: entity, Kind: o.Collision}
	}

	o.RigidBody = body
	o.Shapes = shapes
	if body.GetType() != cp.BODY_STATIC {
		w.bodies = append(w.bodies, body)
		w.lastGood[body] = body.Position()
	}
	return nil
}

// AttachFootSensor adds a thin sensor strip under the bottom edge of an
// active box obstacle.
func (w *World) AttachFootSensor(entity uint64, o *component.Obstacle) error {
	if w == nil || w.disposed {
		return ErrDisposed
	}
	if !o.Active() {
		return fmt.Errorf("physics: foot sensor for %s: obstacle not active", o.Name)
	}
	hw := o.Width * 0.45
	bottom := -o.Height / 2
	bb := cp.BB{L: -hw, B: bottom - footSensorDepth, R: hw, T: bottom + footSensorDepth/2}
	shape := cp.NewBox2(o.RigidBody, bb, 0)
	shape.SetSensor(true)
	shape.SetCollisionType(collisionType(component.CollisionPlayerFoot))
	shape.SetFilter(cp.ShapeFilter{Categories: categorySensor, Mask: allCategories})
	w.space.AddShape(shape)
	w.shapes[shape] = Endpoint{Entity: entity, Kind: component.CollisionPlayerFoot}
	o.Shapes = append(o.Shapes, shape)
	return nil
}

// Deactivate removes o's body and shapes. Separate callbacks fired by the
// removal are queued as end contacts.
func (w *World) Deactivate(o *component.Obstacle) {
	if w == nil || w.disposed || !o.Active() {
		return
	}
	for _, shape := range o.Shapes {
		w.space.RemoveShape(shape)
	}
	for _, shape := range o.Shapes {
		delete(w.shapes, shape)
	}
	body := o.RigidBody
	w.space.RemoveBody(body)
	delete(w.lastGood, body)
	for i, b := range w.bodies {
		if b == body {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	o.RigidBody = nil
	o.Shapes = nil
}

// Step integrates one fixed step and repairs broken bodies.
func (w *World) Step(dt float64) {
	if w == nil || w.disposed {
		return
	}
	w.space.Step(dt)
	w.Sanitize()
}

// Sanitize clamps non-finite positions and runaway velocities back to sane
// values so a single bad body cannot take down the frame loop.
func (w *World) Sanitize() {
	for _, body := range w.bodies {
		pos := body.Position()
		vel := body.Velocity()
		switch {
		case !common.Finite(pos.X) || !common.Finite(pos.Y):
			body.SetPosition(w.lastGood[body])
			body.SetVelocity(0, 0)
			w.anomaly("non-finite position", pos, vel)
		case !common.Finite(vel.X) || !common.Finite(vel.Y):
			body.SetVelocity(0, 0)
			w.anomaly("non-finite velocity", pos, vel)
		case vel.Length() > maxSpeed:
			body.SetVelocityVector(vel.Normalize().Mult(maxSpeed))
			w.anomaly("runaway velocity", pos, vel)
		}
		w.lastGood[body] = body.Position()
	}
}

func (w *World) anomaly(msg string, pos, vel cp.Vector) {
	w.anomalies++
	if w.limiter != nil && !w.limiter.Allow() {
		return
	}
	w.logger.Warn("physics: "+msg,
		zap.Float64("x", pos.X), zap.Float64("y", pos.Y),
		zap.Float64("vx", vel.X), zap.Float64("vy", vel.Y),
		zap.Int("total", w.anomalies),
	)
}

// LineOfSight reports whether the segment a→b misses every solid shape.
func (w *World) LineOfSight(a, b r2.Vec) bool {
	if w == nil || w.disposed {
		return false
	}
	info := w.space.SegmentQueryFirst(toCP(a), toCP(b), 0, solidOnly)
	return info.Shape == nil
}

// Dispose drops the space. It is safe to call more than once.
func (w *World) Dispose() {
	if w == nil || w.disposed {
		return
	}
	w.disposed = true
	w.space = nil
	w.shapes = nil
	w.bodies = nil
	w.lastGood = nil
	w.contacts = nil
}

func (w *World) Disposed() bool {
	return w == nil || w.disposed
}

func (w *World) newBody(o *component.Obstacle) (*cp.Body, error) {
	switch o.Body {
	case component.BodyStatic:
		return cp.NewStaticBody(), nil
	case component.BodyKinematic:
		return cp.NewKinematicBody(), nil
	}

	area := shapeArea(o)
	if area <= 0 {
		return nil, ErrInvalidGeometry
	}
	mass := o.Density * area
	if mass <= 0 {
		mass = 1
	}
	moment := math.Inf(1)
	if !o.FixedRotation {
		switch o.Shape {
		case component.ShapeCircle:
			moment = cp.MomentForCircle(mass, 0, o.Radius, cp.Vector{})
		case component.ShapePolygon:
			size := o.Bounds.Size()
			moment = cp.MomentForBox(mass, size.X, size.Y)
		default:
			moment = cp.MomentForBox(mass, o.Width, o.Height)
		}
	}
	body := cp.NewBody(mass, moment)

	scale := o.GravityScale
	limit := o.MaxSpeed
	if scale != 1 || limit > 0 {
		body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(body, gravity.Mult(scale), damping, dt)
			if limit <= 0 {
				return
			}
			v := body.Velocity()
			body.SetVelocity(common.Clamp(v.X, -limit, limit), common.Clamp(v.Y, -limit, limit))
		})
	}
	return body, nil
}

func (w *World) newShapes(body *cp.Body, o *component.Obstacle) ([]*cp.Shape, error) {
	switch o.Shape {
	case component.ShapeBox:
		if o.Width <= 0 || o.Height <= 0 {
			return nil, ErrInvalidGeometry
		}
		return []*cp.Shape{cp.NewBox(body, o.Width, o.Height, 0)}, nil
	case component.ShapeCircle:
		if o.Radius <= 0 {
			return nil, ErrInvalidGeometry
		}
		return []*cp.Shape{cp.NewCircle(body, o.Radius, cp.Vector{})}, nil
	case component.ShapePolygon:
		if len(o.Triangles) == 0 {
			return nil, ErrInvalidGeometry
		}
		shapes := make([]*cp.Shape, 0, len(o.Triangles))
		for _, tri := range o.Triangles {
			verts := make([]cp.Vector, 0, 3)
			for _, i := range tri {
				if i < 0 || i >= len(o.Points) {
					return nil, ErrInvalidGeometry
				}
				verts = append(verts, toCP(o.Points[i]))
			}
			shapes = append(shapes, cp.NewPolyShapeRaw(body, 3, verts, 0))
		}
		return shapes, nil
	}
	return nil, ErrInvalidGeometry
}

func (w *World) configureShape(shape *cp.Shape, kind component.CollisionKind, o *component.Obstacle) {
	shape.SetSensor(o.Sensor)
	shape.SetFriction(o.Friction)
	shape.SetElasticity(o.Restitution)
	shape.SetCollisionType(collisionType(kind))

	category := uint(categoryActor)
	switch {
	case o.Sensor:
		category = categorySensor
	case kind == component.CollisionSolid || kind == component.CollisionMovingPlatform:
		category = categorySolid
	}
	shape.SetFilter(cp.ShapeFilter{Categories: category, Mask: allCategories})
}

func shapeArea(o *component.Obstacle) float64 {
	switch o.Shape {
	case component.ShapeBox:
		return o.Width * o.Height
	case component.ShapeCircle:
		return math.Pi * o.Radius * o.Radius
	case component.ShapePolygon:
		area := 0.0
		for _, tri := range o.Triangles {
			area += math.Abs(SignedArea([]r2.Vec{o.Points[tri[0]], o.Points[tri[1]], o.Points[tri[2]]}))
		}
		return area
	}
	return 0
}

func toCP(v r2.Vec) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromCP(v cp.Vector) r2.Vec {
	return r2.Vec{X: v.X, Y: v.Y}
}
