package entity

import (
	"github.com/milk9111/gustfall/assets"
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	playerFrameTime = 0.1

	ClipIdle    = "idle"
	ClipWalk    = "walk"
	ClipFalling = "falling"
	ClipOpen    = "open"
	ClipBoost   = "boost"
)

// NewPlayer builds the avatar box. Rotation is fixed and each velocity axis
// is capped at the configured max speed.
func NewPlayer(env *Env, pos r2.Vec) (ecs.Entity, error) {
	k := env.Constants.Player
	b := newBuilder(env, "player")
	o := box(env, b.name, component.BodyDynamic, pos, k.Size[0], k.Size[1])
	o.Density = k.Density
	o.Friction = k.Friction
	o.FixedRotation = true
	o.MaxSpeed = k.MaxSpeed
	o.Collision = component.CollisionPlayer
	o.Depth = depthPlayer

	sprite, err := regionSprite(env, assets.PlayerTexture, o)
	b.fail(err)
	if _, err := env.Textures.Texture(assets.PlayerFrontTexture); err != nil {
		b.fail(err)
	}

	clips := map[string]component.AnimationClip{}
	for name, key := range map[string]string{
		ClipIdle:    assets.PlayerIdleAnimation,
		ClipWalk:    assets.PlayerWalkAnimation,
		ClipFalling: assets.PlayerFallingAnimation,
	} {
		clip, err := filmstrip(env, key, playerFrameTime, true)
		b.fail(err)
		clips[name] = clip
	}
	anim := &component.Animation{Clips: clips}
	anim.Play(ClipIdle)

	with(b, component.ObstacleComponent.Kind(), o)
	with(b, component.SpriteComponent.Kind(), sprite)
	with(b, component.AnimationComponent.Kind(), anim)
	with(b, component.InputComponent.Kind(), &component.Input{})
	with(b, component.CooldownComponent.Kind(), &component.Cooldown{Duration: k.BoostCooldown})
	with(b, component.PlayerComponent.Kind(), &component.Player{
		MaxHealth:    k.MaxHealth,
		Health:       k.MaxHealth,
		WalkSpeed:    k.Speed,
		AirAccel:     k.AirAccel,
		MaxSpeed:     k.MaxSpeed,
		JumpImpulse:  k.JumpImpulse,
		Facing:       component.FacingRight,
		Anim:         component.PlayerIdle,
		HPTexture:    assets.HPIndicatorTexture,
		BoostTexture: assets.BoostTexture,
		IFrameTime:   k.IFrameTime,
	})
	return b.done()
}
