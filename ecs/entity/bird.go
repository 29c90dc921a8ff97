package entity

import (
	"github.com/milk9111/gustfall/assets"
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"github.com/milk9111/gustfall/levels"
	"go.uber.org/zap"
)

const birdFlapFrameTime = 0.1

// NewBird builds a kinematic sensor bird. Zero tuning fields fall back to the
// global hazard constants. A colour without a flapping strip still yields a
// bird, just without its animation.
func NewBird(env *Env, name string, d levels.Bird) (ecs.Entity, error) {
	k := env.Constants.Hazards
	b := newBuilder(env, name)

	path := d.Path
	if len(path) == 0 {
		path = append(path, d.Position)
	}
	o := box(env, name, component.BodyKinematic, d.Position, k.BirdSize, k.BirdSize)
	o.Sensor = true
	o.Collision = component.CollisionBird
	o.Depth = depthBird

	color := d.Color
	if color == "" {
		color = assets.DefaultBird
	}
	bird := &component.Bird{
		Color:          color,
		Path:           path,
		Speed:          orFloat(d.Speed, k.BirdSpeed),
		AttackSpeed:    orFloat(d.AttackSpeed, k.BirdAttackSpeed),
		SensorRadius:   orFloat(d.SensorRadius, k.BirdSensorRadius),
		TelegraphTime:  orFloat(d.Telegraph, k.BirdTelegraph),
		FacingRight:    true,
		WarningTexture: assets.BirdWarningTexture,
	}
	hazard := &component.Hazard{
		Kind:      component.HazardBird,
		Damage:    k.BirdDamage,
		Knockback: orFloat(d.Knockback, k.BirdKnockback),
	}
	if d.Damage > 0 {
		hazard.Damage = d.Damage
	}
	if _, err := env.Textures.Texture(bird.WarningTexture); err != nil {
		b.fail(err)
	}

	sprite := &component.Sprite{Size: o.Bounds.Size(), Origin: o.Bounds.TopLeft()}
	strip := assets.BirdFlapping(color)
	if clip, err := filmstrip(env, strip, birdFlapFrameTime, true); err == nil {
		t, _ := env.Textures.Texture(strip)
		sprite.Texture = strip
		sprite.TextureSize = textureSize(t)
		anim := &component.Animation{Clips: map[string]component.AnimationClip{"flap": clip}}
		anim.Play("flap")
		with(b, component.AnimationComponent.Kind(), anim)
	} else {
		env.Level.Logger().Warn("entity: bird has no flap animation",
			zap.String("name", name), zap.String("color", color), zap.Error(err))
	}

	with(b, component.ObstacleComponent.Kind(), o)
	with(b, component.SpriteComponent.Kind(), sprite)
	with(b, component.BirdComponent.Kind(), bird)
	with(b, component.HazardComponent.Kind(), hazard)
	return b.done()
}

func orFloat(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
