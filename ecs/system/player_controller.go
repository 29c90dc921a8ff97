package system

import (
	"math"

	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"github.com/milk9111/gustfall/ecs/entity"
	"gonum.org/v1/gonum/spatial/r2"
)

// PlayerControllerSystem turns the player's input into body velocity and
// drives the umbrella's open state, angle and boost.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (s *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	e, p, body, ok := player(w)
	if !ok || !body.Active() {
		return
	}
	input, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		input = &component.Input{}
	}

	_, u, hasUmbrella := ecs.First(w, component.UmbrellaComponent.Kind())
	if hasUmbrella {
		s.driveUmbrella(w, e, u, input, body)
	}

	vel := body.Velocity()
	target := input.MoveX * p.WalkSpeed
	switch {
	case p.Grounded():
		// Knockback keeps its horizontal push for the length of the i-frames.
		if !ecs.Has(w, e, component.InvulnerableComponent.Kind()) {
			vel.X = target + platformVelocity(w, p).X
		}
		if input.JumpPressed {
			vel.Y += p.JumpImpulse
		}
	default:
		if input.MoveX != 0 {
			step := p.AirAccel * dt
			vel.X += math.Max(-step, math.Min(step, target-vel.X))
		}
		if hasUmbrella && !u.Open {
			vel.X *= u.ClosedMomentum
		}
	}
	if hasUmbrella && u.Open && u.MaxFallSpeed > 0 && vel.Y < -u.MaxFallSpeed {
		vel.Y = -u.MaxFallSpeed
	}
	setVelocity(body, vel)

	switch {
	case input.MoveX > 0:
		p.Facing = component.FacingRight
	case input.MoveX < 0:
		p.Facing = component.FacingLeft
	case p.Grounded():
		p.Facing = component.FacingFront
	}
}

func (s *PlayerControllerSystem) driveUmbrella(w *ecs.World, owner ecs.Entity, u *component.Umbrella, input *component.Input, body *component.Obstacle) {
	if u.Owner != uint64(owner) {
		return
	}
	ue, _, _ := ecs.First(w, component.UmbrellaComponent.Kind())

	if input.ToggleUmbrella {
		u.Open = !u.Open
		sprite, _ := ecs.Get(w, ue, component.SpriteComponent.Kind())
		anim, _ := ecs.Get(w, ue, component.AnimationComponent.Kind())
		if u.Open {
			u.Anim = component.UmbrellaOpening
			if sprite != nil {
				sprite.Texture = u.OpenTexture
			}
			if anim != nil && !anim.Play(entity.ClipOpen) {
				u.Anim = component.UmbrellaOpen
			}
		} else {
			u.Anim = component.UmbrellaClosed
			if sprite != nil {
				sprite.Texture = u.ClosedTexture
			}
			if anim != nil {
				anim.Playing = false
			}
		}
	}

	if input.Rotate != 0 {
		u.Angle -= input.Rotate * u.RotateSpeed * dt
		u.Angle = math.Max(0, math.Min(math.Pi, u.Angle))
	}

	cd, _ := ecs.Get(w, owner, component.CooldownComponent.Kind())
	if input.Boost && u.Open && cd.Ready() {
		facing := r2.Vec{X: math.Cos(u.Angle), Y: math.Sin(u.Angle)}
		applyImpulse(body, r2.Scale(u.BoostImpulse*body.Mass(), facing))
		if cd != nil {
			cd.Remaining = cd.Duration
		}
		u.Anim = component.UmbrellaBoost
		if anim, ok := ecs.Get(w, ue, component.AnimationComponent.Kind()); ok {
			anim.Play(entity.ClipBoost)
		}
	}
}

// platformVelocity is the velocity of the first moving platform under the
// player's feet.
func platformVelocity(w *ecs.World, p *component.Player) r2.Vec {
	for _, id := range p.Platforms.IDs() {
		o, ok := ecs.Get(w, ecs.Entity(id), component.ObstacleComponent.Kind())
		if ok && o.Active() {
			return o.Velocity()
		}
	}
	return r2.Vec{}
}
