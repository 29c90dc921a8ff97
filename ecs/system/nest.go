package system

import (
	"fmt"

	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"github.com/milk9111/gustfall/ecs/entity"
	"github.com/milk9111/gustfall/levels"
	"go.uber.org/zap"
)

// NestSystem hatches a bird every nest interval while the nest has room.
// New birds go through the container's insertion queue.
type NestSystem struct {
	env *entity.Env
}

func NewNestSystem(env *entity.Env) *NestSystem {
	return &NestSystem{env: env}
}

func (s *NestSystem) Update(w *ecs.World) {
	if w == nil || s.env == nil || s.env.Level == nil {
		return
	}
	ecs.ForEach2(w, component.NestComponent.Kind(), component.ObstacleComponent.Kind(), func(e ecs.Entity, n *component.Nest, o *component.Obstacle) {
		alive := n.Birds[:0]
		for _, id := range n.Birds {
			if ecs.IsAlive(w, ecs.Entity(id)) {
				alive = append(alive, id)
			}
		}
		n.Birds = alive

		n.Timer -= dt
		if n.Timer > timerEpsilon {
			return
		}
		n.Timer += n.Interval
		if len(n.Birds) >= n.MaxBirds {
			return
		}

		name := fmt.Sprintf("%s_bird%d", o.Name, n.Spawned)
		bird, err := entity.NewBird(s.env, name, levels.Bird{
			Position: o.Position,
			Path:     n.Path,
			Color:    n.Color,
		})
		if err != nil {
			s.env.Level.Logger().Warn("nest: spawn failed", zap.String("nest", o.Name), zap.Error(err))
			return
		}
		if b, ok := ecs.Get(w, bird, component.BirdComponent.Kind()); ok {
			b.Nest = uint64(e)
		}
		n.Spawned++
		n.Birds = append(n.Birds, uint64(bird))
		s.env.Level.AddQueuedObject(bird)
		w.Events().Push(ecs.Event{Type: ecs.EventSpawn, Entity: bird, Data: o.Name})
	})
}
