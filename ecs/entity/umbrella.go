package entity

import (
	"math"

	"github.com/milk9111/gustfall/assets"
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"gonum.org/v1/gonum/spatial/r2"
)

const umbrellaFrameTime = 0.08

// UmbrellaOffset is where the canopy sits relative to the player centre for
// a given angle and player height.
func UmbrellaOffset(angle, playerHeight float64) r2.Vec {
	return r2.Scale(playerHeight/2, r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)})
}

// NewUmbrella builds the canopy sensor for owner. It starts closed and
// pointing straight up.
func NewUmbrella(env *Env, owner ecs.Entity, playerPos r2.Vec) (ecs.Entity, error) {
	k := env.Constants.Umbrella
	angle := math.Pi / 2
	pos := r2.Add(playerPos, UmbrellaOffset(angle, env.Constants.Player.Size[1]))

	b := newBuilder(env, "umbrella")
	o := box(env, b.name, component.BodyDynamic, pos, k.Size[0], k.Size[1])
	o.Sensor = true
	o.GravityScale = 0
	o.FixedRotation = true
	o.Rotation = angle - math.Pi/2
	o.Collision = component.CollisionUmbrella
	o.Depth = depthUmbrella

	sprite, err := regionSprite(env, assets.UmbrellaClosedTexture, o)
	b.fail(err)
	if _, err := env.Textures.Texture(assets.UmbrellaTexture); err != nil {
		b.fail(err)
	}
	open, err := filmstrip(env, assets.UmbrellaOpenAnimation, umbrellaFrameTime, false)
	b.fail(err)
	boost, err := filmstrip(env, assets.UmbrellaDodgeAnimation, umbrellaFrameTime, false)
	b.fail(err)

	with(b, component.ObstacleComponent.Kind(), o)
	with(b, component.SpriteComponent.Kind(), sprite)
	with(b, component.AnimationComponent.Kind(), &component.Animation{
		Clips: map[string]component.AnimationClip{ClipOpen: open, ClipBoost: boost},
	})
	with(b, component.UmbrellaComponent.Kind(), &component.Umbrella{
		Owner:          uint64(owner),
		Angle:          angle,
		RotateSpeed:    k.RotateSpeed,
		ClosedMomentum: k.ClosedMomentum,
		MaxFallSpeed:   k.MaxFallSpeed,
		BoostImpulse:   k.BoostImpulse,
		OpenTexture:    assets.UmbrellaTexture,
		ClosedTexture:  assets.UmbrellaClosedTexture,
		Anim:           component.UmbrellaClosed,
	})
	return b.done()
}
