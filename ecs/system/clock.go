package system

import (
	"github.com/milk9111/gustfall/ecs"
)

// ClockSystem advances the shared simulation clock by one fixed step. Time
// is derived from the tick count so it never drifts.
type ClockSystem struct{}

func NewClockSystem() *ClockSystem {
	return &ClockSystem{}
}

func (s *ClockSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	c := clock(w)
	c.Tick++
	c.Time = float64(c.Tick) * dt
}
