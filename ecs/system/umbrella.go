package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"github.com/milk9111/gustfall/ecs/entity"
	"gonum.org/v1/gonum/spatial/r2"
)

// UmbrellaSystem pins every umbrella to its owner: position on the circle
// of half the owner's height at the umbrella angle, same velocity.
type UmbrellaSystem struct{}

func NewUmbrellaSystem() *UmbrellaSystem {
	return &UmbrellaSystem{}
}

func (s *UmbrellaSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.UmbrellaComponent.Kind(), component.ObstacleComponent.Kind(), func(e ecs.Entity, u *component.Umbrella, o *component.Obstacle) {
		owner, ok := ecs.Get(w, ecs.Entity(u.Owner), component.ObstacleComponent.Kind())
		if !ok || !owner.Active() || !o.Active() {
			return
		}
		pos := r2.Add(owner.Center(), entity.UmbrellaOffset(u.Angle, owner.Height))
		vel := owner.Velocity()
		o.RigidBody.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
		o.RigidBody.SetAngle(u.Angle - math.Pi/2)
		o.RigidBody.SetVelocity(vel.X, vel.Y)
	})
}
