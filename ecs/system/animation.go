package system

import (
	"math"

	"github.com/milk9111/gustfall/assets"
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"github.com/milk9111/gustfall/ecs/entity"
)

// walkThreshold is the horizontal speed above which a grounded player walks.
const walkThreshold = 0.1

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	a.selectPlayerClip(w)
	a.settleUmbrella(w)

	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, anim *component.Animation) {
		if !anim.Playing {
			return
		}
		clip, ok := anim.Clip()
		if !ok || clip.Frames <= 0 || clip.FrameTime <= 0 {
			return
		}

		anim.Elapsed += dt
		for anim.Elapsed >= clip.FrameTime-timerEpsilon {
			anim.Elapsed -= clip.FrameTime
			anim.Frame++
			if anim.Frame < clip.Frames {
				continue
			}
			if clip.Loop {
				anim.Frame = 0
				continue
			}
			anim.Frame = clip.Frames - 1
			anim.Playing = false
			break
		}
	})
}

func (a *AnimationSystem) selectPlayerClip(w *ecs.World) {
	ecs.ForEach4(w,
		component.PlayerComponent.Kind(),
		component.ObstacleComponent.Kind(),
		component.AnimationComponent.Kind(),
		component.SpriteComponent.Kind(),
		func(e ecs.Entity, p *component.Player, o *component.Obstacle, anim *component.Animation, sprite *component.Sprite) {
			switch {
			case !p.Grounded():
				p.Anim = component.PlayerFalling
			case math.Abs(o.Velocity().X) > walkThreshold:
				p.Anim = component.PlayerWalk
			default:
				p.Anim = component.PlayerIdle
			}

			sprite.FlipX = p.Facing == component.FacingLeft
			if p.Facing == component.FacingFront && p.Anim == component.PlayerIdle {
				anim.Playing = false
				sprite.Texture = assets.PlayerFrontTexture
				return
			}
			sprite.Texture = assets.PlayerTexture

			clip := entity.ClipIdle
			switch p.Anim {
			case component.PlayerWalk:
				clip = entity.ClipWalk
			case component.PlayerFalling:
				clip = entity.ClipFalling
			}
			anim.Play(clip)
		})
}

// settleUmbrella returns the canopy to its resting open pose once the
// opening or boost clip has run out.
func (a *AnimationSystem) settleUmbrella(w *ecs.World) {
	ecs.ForEach3(w,
		component.UmbrellaComponent.Kind(),
		component.AnimationComponent.Kind(),
		component.SpriteComponent.Kind(),
		func(e ecs.Entity, u *component.Umbrella, anim *component.Animation, sprite *component.Sprite) {
			if u.Anim != component.UmbrellaOpening && u.Anim != component.UmbrellaBoost {
				return
			}
			if anim.Playing {
				return
			}
			u.Anim = component.UmbrellaOpen
			sprite.Texture = u.OpenTexture
		})
}
