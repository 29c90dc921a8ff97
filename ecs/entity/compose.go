package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/level"
	"github.com/milk9111/gustfall/levels"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"
)

// Level holds the entities the play loop looks up directly.
type Level struct {
	Player   ecs.Entity
	Umbrella ecs.Entity
	Goal     ecs.Entity
	Camera   ecs.Entity
}

// Populate builds every entity described by d and inserts it into the
// container. The goal goes in first and the player and umbrella last.
// An object outside the level bounds is logged and skipped; only the player
// is required to fit.
func Populate(env *Env, d *levels.Descriptor) (Level, error) {
	var out Level
	if env == nil || env.Level == nil || d == nil {
		return out, fmt.Errorf("populate: missing level, descriptor or constants")
	}
	if env.Constants == nil {
		return out, fmt.Errorf("populate: missing constants")
	}
	env.Level.Physics().SetGravity(r2.Vec{Y: env.Constants.Defaults.Gravity})

	add := func(e ecs.Entity, err error) (ecs.Entity, error) {
		if err != nil {
			return 0, fmt.Errorf("populate: %w", err)
		}
		err = env.Level.AddObject(e)
		switch {
		case errors.Is(err, level.ErrOutOfBounds):
			env.Level.Logger().Warn("populate: skipping object", zap.Stringer("entity", e), zap.Error(err))
			ecs.DestroyEntity(env.world(), e)
			return 0, nil
		case err != nil:
			return 0, fmt.Errorf("populate: %w", err)
		}
		return e, nil
	}

	var err error
	if out.Goal, err = add(NewGoal(env, d.Goal)); err != nil {
		return out, err
	}
	for i, p := range d.Platforms {
		if _, err := add(NewPlatform(env, i, p)); err != nil {
			return out, err
		}
	}
	for i, p := range d.MovingPlatforms {
		if _, err := add(NewMovingPlatform(env, i, p)); err != nil {
			return out, err
		}
	}
	for i, w := range d.Winds {
		if _, err := add(NewWind(env, i, w)); err != nil {
			return out, err
		}
	}
	for i, h := range d.StaticHazards {
		if _, err := add(NewStaticHazard(env, i, h)); err != nil {
			return out, err
		}
	}
	for i, b := range d.Birds {
		if _, err := add(NewBird(env, fmt.Sprintf("bird%d", i), b)); err != nil {
			return out, err
		}
	}
	for i, n := range d.Nests {
		if _, err := add(NewNest(env, i, n)); err != nil {
			return out, err
		}
	}
	for i, l := range d.Lightning {
		if _, err := add(NewLightning(env, i, l)); err != nil {
			return out, err
		}
	}

	walls, err := NewBarriers(env)
	if err != nil {
		return out, fmt.Errorf("populate: %w", err)
	}
	for _, wall := range walls {
		if _, err := add(wall, nil); err != nil {
			return out, err
		}
	}

	if out.Player, err = add(NewPlayer(env, d.Player)); err != nil {
		return out, err
	}
	if out.Player == 0 {
		return out, fmt.Errorf("populate: player spawn (%.2f, %.2f): %w", d.Player.X, d.Player.Y, level.ErrOutOfBounds)
	}
	if out.Umbrella, err = add(NewUmbrella(env, out.Player, d.Player)); err != nil {
		return out, err
	}
	out.Camera, err = NewCamera(env, out.Player, d.Player)
	if err != nil {
		return out, fmt.Errorf("populate: %w", err)
	}
	return out, nil
}
