package system

import (
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"gonum.org/v1/gonum/spatial/r2"
)

// MovingPlatformSystem sets each kinematic platform's velocity toward its
// current waypoint. The path loops back to the first waypoint.
type MovingPlatformSystem struct{}

func NewMovingPlatformSystem() *MovingPlatformSystem {
	return &MovingPlatformSystem{}
}

func (s *MovingPlatformSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.MovingPlatformComponent.Kind(), component.ObstacleComponent.Kind(), func(e ecs.Entity, mp *component.MovingPlatform, o *component.Obstacle) {
		if len(mp.Path) < 2 || mp.Speed <= 0 {
			setVelocity(o, r2.Vec{})
			return
		}
		mp.Target %= len(mp.Path)
		vel, arrived := steer(o.Center(), mp.Path[mp.Target], mp.Speed)
		if arrived {
			mp.Target = (mp.Target + 1) % len(mp.Path)
		}
		setVelocity(o, vel)
	})
}
