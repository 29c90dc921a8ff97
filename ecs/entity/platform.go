package entity

import (
	"fmt"

	"github.com/milk9111/gustfall/assets"
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"github.com/milk9111/gustfall/levels"
)

func NewPlatform(env *Env, index int, p levels.Platform) (ecs.Entity, error) {
	b := newBuilder(env, fmt.Sprintf("platform%d", index))
	o, err := polygon(env, b.name, component.BodyStatic, p.Position, p.Points)
	b.fail(err)
	if b.err != nil {
		return b.done()
	}
	applyDefaults(o, env.Constants.Defaults)
	o.Collision = component.CollisionSolid
	o.Depth = depthPlatform

	sprite, err := polygonSprite(env, assets.PlatformTexture, o)
	b.fail(err)
	with(b, component.ObstacleComponent.Kind(), o)
	with(b, component.SpriteComponent.Kind(), sprite)
	with(b, component.PlatformTagComponent.Kind(), &component.PlatformTag{})
	return b.done()
}

func NewMovingPlatform(env *Env, index int, p levels.MovingPlatform) (ecs.Entity, error) {
	b := newBuilder(env, fmt.Sprintf("moving_platform%d", index))
	o, err := polygon(env, b.name, component.BodyKinematic, p.Position, p.Points)
	b.fail(err)
	if b.err != nil {
		return b.done()
	}
	applyDefaults(o, env.Constants.Defaults)
	o.Collision = component.CollisionMovingPlatform
	o.Depth = depthPlatform

	sprite, err := polygonSprite(env, assets.CloudTexture(p.TileIndex), o)
	b.fail(err)

	path := p.Path
	if len(path) == 0 {
		path = append(path, p.Position)
	}
	with(b, component.ObstacleComponent.Kind(), o)
	with(b, component.SpriteComponent.Kind(), sprite)
	with(b, component.PlatformTagComponent.Kind(), &component.PlatformTag{})
	with(b, component.MovingPlatformComponent.Kind(), &component.MovingPlatform{
		Path:      path,
		Speed:     p.Speed,
		TileIndex: p.TileIndex,
	})
	return b.done()
}

// NewBarriers builds the invisible left, right and bottom walls. The top of
// the level stays open.
func NewBarriers(env *Env) ([]ecs.Entity, error) {
	r := env.Level.Bounds()
	w, h := r.Width, r.Height
	walls := []struct{ x, y, w, h float64 }{
		{r.X, r.Y + h/2, 1, 2 * h},
		{r.X + w, r.Y + h/2, 1, 2 * h},
		{r.X + w/2, r.Y, w, 1},
	}
	out := make([]ecs.Entity, 0, len(walls))
	for _, wall := range walls {
		b := newBuilder(env, "barrier")
		o := box(env, b.name, component.BodyStatic, vec(wall.x, wall.y), wall.w, wall.h)
		o.Collision = component.CollisionSolid
		with(b, component.ObstacleComponent.Kind(), o)
		with(b, component.BarrierTagComponent.Kind(), &component.BarrierTag{})
		e, err := b.done()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
