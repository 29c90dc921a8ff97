package entity

import (
	"fmt"

	"github.com/milk9111/gustfall/assets"
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"github.com/milk9111/gustfall/levels"
)

func NewStaticHazard(env *Env, index int, h levels.StaticHazard) (ecs.Entity, error) {
	b := newBuilder(env, fmt.Sprintf("static_hazard%d", index))
	o, err := polygon(env, b.name, component.BodyStatic, h.Position, h.Points)
	b.fail(err)
	if b.err != nil {
		return b.done()
	}
	o.Sensor = true
	o.Collision = component.CollisionHazard
	o.Depth = depthHazard

	key := h.Texture
	if key == "" {
		key = assets.LightningTexture
	}
	sprite, err := polygonSprite(env, key, o)
	b.fail(err)

	k := env.Constants.Hazards
	with(b, component.ObstacleComponent.Kind(), o)
	with(b, component.SpriteComponent.Kind(), sprite)
	with(b, component.HazardComponent.Kind(), &component.Hazard{
		Kind:      component.HazardStatic,
		Damage:    k.StaticDamage,
		Knockback: k.StaticKnockback,
		Active:    true,
	})
	return b.done()
}

// NewLightning builds a hazard that is always present physically. The
// lightning system toggles Hazard.Active and the sprite with the clock.
func NewLightning(env *Env, index int, l levels.Lightning) (ecs.Entity, error) {
	b := newBuilder(env, fmt.Sprintf("lightning%d", index))
	o, err := polygon(env, b.name, component.BodyStatic, l.Position, l.Points)
	b.fail(err)
	if b.err != nil {
		return b.done()
	}
	o.Sensor = true
	o.Collision = component.CollisionHazard
	o.Depth = depthHazard

	sprite, err := polygonSprite(env, assets.LightningTexture, o)
	b.fail(err)

	k := env.Constants.Hazards
	with(b, component.ObstacleComponent.Kind(), o)
	with(b, component.SpriteComponent.Kind(), sprite)
	with(b, component.HazardComponent.Kind(), &component.Hazard{
		Kind:      component.HazardLightning,
		Damage:    k.LightningDamage,
		Knockback: k.LightningKnockback,
	})
	with(b, component.LightningComponent.Kind(), &component.Lightning{
		OnTime:  l.OnTime,
		OffTime: l.OffTime,
		Phase:   l.Phase,
	})
	return b.done()
}

// NewNest builds a static sensor that spawns birds along its path.
func NewNest(env *Env, index int, n levels.Nest) (ecs.Entity, error) {
	k := env.Constants.Hazards
	b := newBuilder(env, fmt.Sprintf("nest%d", index))
	o := box(env, b.name, component.BodyStatic, n.Position, k.NestSize, k.NestSize)
	o.Sensor = true
	o.Collision = component.CollisionHazard
	o.Depth = depthHazard

	sprite, err := regionSprite(env, assets.NestTexture, o)
	b.fail(err)

	nest := &component.Nest{
		Interval: n.Interval,
		MaxBirds: n.MaxBirds,
		Color:    n.Color,
		Path:     n.Path,
	}
	if nest.Interval <= 0 {
		nest.Interval = k.NestInterval
	}
	if nest.MaxBirds <= 0 {
		nest.MaxBirds = k.NestMaxBirds
	}
	if len(nest.Path) == 0 {
		nest.Path = append(nest.Path, n.Position)
	}
	nest.Timer = nest.Interval

	with(b, component.ObstacleComponent.Kind(), o)
	with(b, component.SpriteComponent.Kind(), sprite)
	with(b, component.HazardComponent.Kind(), &component.Hazard{
		Kind:      component.HazardNest,
		Damage:    k.StaticDamage,
		Knockback: k.StaticKnockback,
		Active:    true,
	})
	with(b, component.NestComponent.Kind(), nest)
	return b.done()
}
