package entity

import (
	"github.com/milk9111/gustfall/assets"
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"gonum.org/v1/gonum/spatial/r2"
)

const goalFrameTime = 0.15

func NewGoal(env *Env, pos r2.Vec) (ecs.Entity, error) {
	k := env.Constants.Goal
	b := newBuilder(env, "goal")
	o := box(env, b.name, component.BodyStatic, pos, k.Width, k.Height)
	o.Sensor = true
	o.Collision = component.CollisionGoal
	o.Depth = depthGoal

	sprite, err := regionSprite(env, assets.GoalTexture, o)
	b.fail(err)
	clip, err := filmstrip(env, assets.GoalAnimation, goalFrameTime, true)
	b.fail(err)
	anim := &component.Animation{Clips: map[string]component.AnimationClip{"idle": clip}}
	anim.Play("idle")

	with(b, component.ObstacleComponent.Kind(), o)
	with(b, component.SpriteComponent.Kind(), sprite)
	with(b, component.AnimationComponent.Kind(), anim)
	with(b, component.GoalTagComponent.Kind(), &component.GoalTag{})
	return b.done()
}
