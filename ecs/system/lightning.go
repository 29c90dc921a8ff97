package system

import (
	"math"

	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
)

// LightningOn reports whether a strike cycle is in its on phase at clock t.
func LightningOn(l component.Lightning, t float64) bool {
	period := l.OnTime + l.OffTime
	if period <= 0 {
		return false
	}
	m := math.Mod(t+l.Phase, period)
	if m < 0 {
		m += period
	}
	return m < l.OnTime
}

// LightningSystem toggles each strike's hazard and sprite on the shared clock.
type LightningSystem struct{}

func NewLightningSystem() *LightningSystem {
	return &LightningSystem{}
}

func (s *LightningSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := clock(w).Time
	ecs.ForEach2(w, component.LightningComponent.Kind(), component.HazardComponent.Kind(), func(e ecs.Entity, l *component.Lightning, h *component.Hazard) {
		h.Active = LightningOn(*l, now)
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sprite.Hidden = !h.Active
		}
	})
}
