package screen

import (
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"gonum.org/v1/gonum/spatial/r2"
)

type ObjectState struct {
	Name     string
	Position r2.Vec
	Velocity r2.Vec
	Angle    float64
}

// PlaySnapshot is a comparable view of the simulation state a tick can
// change. Two snapshots are equal exactly when nothing moved.
type PlaySnapshot struct {
	Tick uint64
	Time float64

	Objects []ObjectState

	Health       int
	GroundCount  int
	Invulnerable float64
	Cooldown     float64

	UmbrellaOpen  bool
	UmbrellaAngle float64
	WindForce     r2.Vec

	BirdPhases []component.BirdPhase
	BirdTimers []float64

	Queued int
}

func (p *Play) Snapshot() PlaySnapshot {
	var s PlaySnapshot
	if !p.Started() {
		return s
	}
	w := p.container.World()
	if _, c, ok := ecs.First(w, component.ClockComponent.Kind()); ok {
		s.Tick, s.Time = c.Tick, c.Time
	}

	for _, e := range p.container.Objects() {
		o, ok := ecs.Get(w, e, component.ObstacleComponent.Kind())
		if !ok {
			continue
		}
		s.Objects = append(s.Objects, ObjectState{
			Name:     o.Name,
			Position: o.Center(),
			Velocity: o.Velocity(),
			Angle:    o.Angle(),
		})
		if b, ok := ecs.Get(w, e, component.BirdComponent.Kind()); ok {
			s.BirdPhases = append(s.BirdPhases, b.Phase)
			s.BirdTimers = append(s.BirdTimers, b.Timer)
		}
	}

	if pl, ok := ecs.Get(w, p.lvl.Player, component.PlayerComponent.Kind()); ok {
		s.Health = pl.Health
		s.GroundCount = pl.GroundCount
	}
	if inv, ok := ecs.Get(w, p.lvl.Player, component.InvulnerableComponent.Kind()); ok {
		s.Invulnerable = inv.Remaining
	}
	if cd, ok := ecs.Get(w, p.lvl.Player, component.CooldownComponent.Kind()); ok {
		s.Cooldown = cd.Remaining
	}
	if u, ok := ecs.Get(w, p.lvl.Umbrella, component.UmbrellaComponent.Kind()); ok {
		s.UmbrellaOpen = u.Open
		s.UmbrellaAngle = u.Angle
		s.WindForce = u.WindForce
	}
	s.Queued = p.container.Snapshot().Queued
	return s
}
