package entity

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/gustfall/assets"
	"github.com/milk9111/gustfall/common"
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"github.com/milk9111/gustfall/levels"
)

const windFrameTime = 1.0 / 8

var ErrWindMagnitude = errors.New("wind magnitude must be positive")

// NewWind builds a sensor zone. Its animated frames are drawn from the
// top-left corner of the polygon's bounding box, turned to blow along the
// zone's direction.
func NewWind(env *Env, index int, w levels.Wind) (ecs.Entity, error) {
	b := newBuilder(env, fmt.Sprintf("wind%d", index))
	if w.Magnitude <= 0 || !common.Finite(w.Magnitude) {
		b.fail(ErrWindMagnitude)
		return b.done()
	}
	o, err := polygon(env, b.name, component.BodyStatic, w.Position, w.Points)
	b.fail(err)
	if b.err != nil {
		return b.done()
	}
	o.Sensor = true
	o.Collision = component.CollisionWind
	o.Depth = depthWind + w.Depth

	sprite, err := regionSprite(env, assets.WindTexture, o)
	b.fail(err)
	if sprite != nil {
		// The texture blows upward.
		sprite.Rotation = common.NormalizeAngle(w.Direction) - math.Pi/2
	}

	frames := make([]string, assets.WindFrames)
	for i := range frames {
		frames[i] = assets.WindFrame(i)
		if _, err := env.Textures.Texture(frames[i]); err != nil {
			b.fail(err)
		}
	}
	anim := &component.Animation{
		Clips: map[string]component.AnimationClip{
			"blow": {FrameKeys: frames, Frames: len(frames), FrameTime: windFrameTime, Loop: true},
		},
	}
	anim.Play("blow")

	with(b, component.ObstacleComponent.Kind(), o)
	with(b, component.SpriteComponent.Kind(), sprite)
	with(b, component.AnimationComponent.Kind(), anim)
	with(b, component.WindComponent.Kind(), &component.Wind{
		Direction: common.NormalizeAngle(w.Direction),
		Magnitude: w.Magnitude,
	})
	return b.done()
}
