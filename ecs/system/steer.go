package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gustfall/common"
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"gonum.org/v1/gonum/spatial/r2"
)

const dt = common.FixedDelta

// steer returns the velocity that moves from pos toward target at speed for
// one step. When the target is within one step the velocity lands on it
// exactly and arrived is true.
func steer(pos, target r2.Vec, speed float64) (vel r2.Vec, arrived bool) {
	delta := r2.Sub(target, pos)
	dist := r2.Norm(delta)
	if dist <= speed*dt || speed <= 0 {
		if speed <= 0 {
			return r2.Vec{}, dist == 0
		}
		return r2.Scale(1/dt, delta), true
	}
	return r2.Scale(speed/dist, delta), false
}

// unit returns v normalised, or fallback when v has no length.
func unit(v, fallback r2.Vec) r2.Vec {
	if r2.Norm(v) == 0 {
		return fallback
	}
	return r2.Unit(v)
}

func setVelocity(o *component.Obstacle, v r2.Vec) {
	if !o.Active() {
		return
	}
	o.RigidBody.SetVelocity(v.X, v.Y)
}

func applyImpulse(o *component.Obstacle, impulse r2.Vec) {
	if !o.Active() {
		return
	}
	o.RigidBody.ApplyImpulseAtLocalPoint(cp.Vector{X: impulse.X, Y: impulse.Y}, cp.Vector{})
}

func applyForce(o *component.Obstacle, force r2.Vec) {
	if !o.Active() {
		return
	}
	o.RigidBody.ApplyForceAtLocalPoint(cp.Vector{X: force.X, Y: force.Y}, cp.Vector{})
}

// player returns the first player entity with its physics record.
func player(w *ecs.World) (ecs.Entity, *component.Player, *component.Obstacle, bool) {
	e, p, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return 0, nil, nil, false
	}
	o, ok := ecs.Get(w, e, component.ObstacleComponent.Kind())
	if !ok {
		return 0, nil, nil, false
	}
	return e, p, o, true
}

func clock(w *ecs.World) *component.Clock {
	_, c, ok := ecs.First(w, component.ClockComponent.Kind())
	if !ok {
		return &component.Clock{}
	}
	return c
}
