package system

import (
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"github.com/milk9111/gustfall/physics"
)

// BirdSystem runs each bird's patrol/telegraph/attack/return machine and
// sets its kinematic velocity for the coming step.
type BirdSystem struct {
	physics *physics.World
}

func NewBirdSystem(pw *physics.World) *BirdSystem {
	return &BirdSystem{physics: pw}
}

func (s *BirdSystem) Update(w *ecs.World) {
	if w == nil || s.physics == nil {
		return
	}
	ctx := birdContext{physics: s.physics}
	if _, _, body, ok := player(w); ok && body.Active() {
		ctx.target = body.Center()
		ctx.targetVel = body.Velocity()
		ctx.hasTarget = true
	}

	ecs.ForEach3(w, component.BirdComponent.Kind(), component.HazardComponent.Kind(), component.ObstacleComponent.Kind(), func(e ecs.Entity, b *component.Bird, h *component.Hazard, o *component.Obstacle) {
		if !o.Active() {
			return
		}
		ctx.bird, ctx.hazard = b, h
		ctx.pos = o.Center()
		ctx.halfW = o.Width / 2
		ctx.vel = o.Velocity()

		birdStateFor(b.Phase).Update(&ctx)

		switch {
		case ctx.vel.X > 0:
			b.FacingRight = true
		case ctx.vel.X < 0:
			b.FacingRight = false
		}
		setVelocity(o, ctx.vel)
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sprite.FlipX = !b.FacingRight
		}
	})
}

// birdStruck ends a dive once it has hit the player.
func birdStruck(w *ecs.World, e ecs.Entity, pw *physics.World) {
	b, ok := ecs.Get(w, e, component.BirdComponent.Kind())
	if !ok || b.Phase != component.BirdAttack {
		return
	}
	h, _ := ecs.Get(w, e, component.HazardComponent.Kind())
	o, _ := ecs.Get(w, e, component.ObstacleComponent.Kind())
	if h == nil || o == nil {
		return
	}
	ctx := birdContext{bird: b, hazard: h, pos: o.Center(), physics: pw}
	ctx.change(birdStateReturn)
	setVelocity(o, ctx.vel)
}
