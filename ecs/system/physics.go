package system

import (
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/level"
	"go.uber.org/zap"
)

// PhysicsSystem integrates the container's physics world one fixed step.
type PhysicsSystem struct {
	level *level.Container
}

func NewPhysicsSystem(c *level.Container) *PhysicsSystem {
	return &PhysicsSystem{level: c}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if w == nil || s.level == nil || s.level.Disposed() {
		return
	}
	s.level.Physics().Step(dt)
}

// FlushSystem inserts objects queued during the tick.
type FlushSystem struct {
	level *level.Container
}

func NewFlushSystem(c *level.Container) *FlushSystem {
	return &FlushSystem{level: c}
}

func (s *FlushSystem) Update(w *ecs.World) {
	if w == nil || s.level == nil {
		return
	}
	if err := s.level.Flush(); err != nil {
		s.level.Logger().Warn("flush: queued objects dropped", zap.Error(err))
	}
}
