package system

import (
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
)

const (
	flashInterval = 4
	// Keeps a timer that lands a rounding error above zero from lasting an
	// extra tick.
	timerEpsilon = 1e-9
)

// TimerSystem counts down invulnerability, cooldowns and white flashes.
type TimerSystem struct{}

func NewTimerSystem() *TimerSystem {
	return &TimerSystem{}
}

func (s *TimerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.InvulnerableComponent.Kind(), func(e ecs.Entity, inv *component.Invulnerable) {
		inv.Remaining -= dt
		if inv.Remaining <= timerEpsilon {
			_ = ecs.Remove(w, e, component.InvulnerableComponent.Kind())
		}
	})

	ecs.ForEach(w, component.CooldownComponent.Kind(), func(e ecs.Entity, cd *component.Cooldown) {
		if cd.Remaining <= 0 {
			return
		}
		cd.Remaining -= dt
		if cd.Remaining <= timerEpsilon {
			cd.Remaining = 0
		}
	})

	ecs.ForEach(w, component.WhiteFlashComponent.Kind(), func(e ecs.Entity, wf *component.WhiteFlash) {
		if wf.Advance() {
			_ = ecs.Remove(w, e, component.WhiteFlashComponent.Kind())
		}
	})
}

// startInvulnerability gates damage for seconds and flashes the sprite for
// the same span.
func startInvulnerability(w *ecs.World, e ecs.Entity, seconds float64) {
	if seconds <= 0 {
		return
	}
	_ = ecs.Add(w, e, component.InvulnerableComponent.Kind(), &component.Invulnerable{Remaining: seconds})
	_ = ecs.Add(w, e, component.WhiteFlashComponent.Kind(), &component.WhiteFlash{
		Ticks:    int(seconds / dt),
		Interval: flashInterval,
		On:       true,
	})
}
