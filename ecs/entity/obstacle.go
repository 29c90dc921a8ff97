package entity

import (
	"fmt"

	"github.com/milk9111/gustfall/assets"
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"github.com/milk9111/gustfall/level"
	"github.com/milk9111/gustfall/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Draw depths, lowest first.
const (
	depthWind     = -10
	depthGoal     = 0
	depthPlatform = 10
	depthHazard   = 20
	depthBird     = 30
	depthPlayer   = 40
	depthUmbrella = 50
)

// Textures resolves asset keys to texture handles.
type Textures interface {
	Texture(key string) (assets.Texture, error)
}

// Env is what entity constructors need from the running level.
type Env struct {
	Level     *level.Container
	Textures  Textures
	Constants *assets.Constants
}

func (env *Env) world() *ecs.World {
	return env.Level.World()
}

// builder accumulates the first error while adding components.
type builder struct {
	w    *ecs.World
	e    ecs.Entity
	name string
	err  error
}

func newBuilder(env *Env, name string) *builder {
	w := env.world()
	return &builder{w: w, e: ecs.CreateEntity(w), name: name}
}

func with[T any](b *builder, kind component.ComponentKind[T], value *T) {
	if b.err != nil {
		return
	}
	if err := ecs.Add(b.w, b.e, kind, value); err != nil {
		b.err = fmt.Errorf("%s: add %T: %w", b.name, value, err)
	}
}

func (b *builder) fail(err error) {
	if b.err == nil && err != nil {
		b.err = fmt.Errorf("%s: %w", b.name, err)
	}
}

// done returns the entity, destroying it if any step failed.
func (b *builder) done() (ecs.Entity, error) {
	if b.err != nil {
		ecs.DestroyEntity(b.w, b.e)
		return 0, b.err
	}
	return b.e, nil
}

func box(env *Env, name string, body component.BodyKind, pos r2.Vec, w, h float64) *component.Obstacle {
	return &component.Obstacle{
		Name:         name,
		Body:         body,
		Shape:        component.ShapeBox,
		Width:        w,
		Height:       h,
		Bounds:       component.LocalBounds{Min: r2.Vec{X: -w / 2, Y: -h / 2}, Max: r2.Vec{X: w / 2, Y: h / 2}},
		Position:     pos,
		GravityScale: 1,
		DrawScale:    env.Level.DrawScale(),
	}
}

func polygon(env *Env, name string, body component.BodyKind, pos r2.Vec, points []r2.Vec) (*component.Obstacle, error) {
	tris, err := physics.Triangulate(points)
	if err != nil {
		return nil, err
	}
	return &component.Obstacle{
		Name:         name,
		Body:         body,
		Shape:        component.ShapePolygon,
		Points:       append([]r2.Vec(nil), points...),
		Triangles:    tris,
		Bounds:       physics.Bounds(points),
		Position:     pos,
		GravityScale: 1,
		DrawScale:    env.Level.DrawScale(),
	}, nil
}

func applyDefaults(o *component.Obstacle, d assets.Defaults) {
	o.Density = d.Density
	o.Friction = d.Friction
	o.Restitution = d.Restitution
}

func textureSize(t assets.Texture) r2.Vec {
	return r2.Vec{X: float64(t.Width), Y: float64(t.Height)}
}

// regionSprite stretches key over the obstacle's bounding box.
func regionSprite(env *Env, key string, o *component.Obstacle) (*component.Sprite, error) {
	t, err := env.Textures.Texture(key)
	if err != nil {
		return nil, err
	}
	return &component.Sprite{
		Texture:     key,
		TextureSize: textureSize(t),
		Size:        o.Bounds.Size(),
		Origin:      o.Bounds.TopLeft(),
	}, nil
}

// polygonSprite tiles key across the obstacle outline at its natural size
// scaled to the bounding box.
func polygonSprite(env *Env, key string, o *component.Obstacle) (*component.Sprite, error) {
	s, err := regionSprite(env, key, o)
	if err != nil {
		return nil, err
	}
	s.Polygon = true
	return s, nil
}

func filmstrip(env *Env, key string, frameTime float64, loop bool) (component.AnimationClip, error) {
	t, err := env.Textures.Texture(key)
	if err != nil {
		return component.AnimationClip{}, err
	}
	return component.AnimationClip{Strip: key, Frames: t.Frames, FrameTime: frameTime, Loop: loop}, nil
}

func vec(x, y float64) r2.Vec {
	return r2.Vec{X: x, Y: y}
}
