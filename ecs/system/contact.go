package system

import (
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"github.com/milk9111/gustfall/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// ContactSystem drains the engine's begin/end queue in order and applies
// grounded counts, wind membership, victory and hazard damage.
type ContactSystem struct {
	physics *physics.World
}

func NewContactSystem(pw *physics.World) *ContactSystem {
	return &ContactSystem{physics: pw}
}

func (s *ContactSystem) Update(w *ecs.World) {
	if w == nil || s.physics == nil {
		return
	}
	contacts := s.physics.DrainContacts()
	pe, p, body, hasPlayer := player(w)

	for _, c := range contacts {
		begin := c.Phase == physics.ContactBegin
		switch c.A.Kind {
		case component.CollisionPlayerFoot:
			if !hasPlayer || c.A.Entity != uint64(pe) {
				continue
			}
			if begin {
				p.GroundCount++
			} else if p.GroundCount > 0 {
				p.GroundCount--
			}
			if c.B.Kind == component.CollisionMovingPlatform {
				if begin {
					p.Platforms.Add(c.B.Entity)
				} else {
					p.Platforms.Remove(c.B.Entity)
				}
			}
		case component.CollisionPlayer:
			if !hasPlayer || c.A.Entity != uint64(pe) {
				continue
			}
			switch c.B.Kind {
			case component.CollisionGoal:
				if begin {
					w.Events().Push(ecs.Event{Type: ecs.EventVictory, Entity: pe})
				}
			case component.CollisionHazard, component.CollisionBird:
				if begin {
					p.Hazards.Add(c.B.Entity)
				} else {
					p.Hazards.Remove(c.B.Entity)
				}
			}
		case component.CollisionUmbrella:
			u, ok := ecs.Get(w, ecs.Entity(c.A.Entity), component.UmbrellaComponent.Kind())
			if !ok || c.B.Kind != component.CollisionWind {
				continue
			}
			if begin {
				u.Winds.Add(c.B.Entity)
			} else {
				u.Winds.Remove(c.B.Entity)
			}
		}
	}

	if hasPlayer {
		s.applyDamage(w, pe, p, body)
	}
}

// applyDamage hits the player once with every active hazard it overlaps,
// summing the damage, then starts invulnerability. Nothing lands while
// invulnerable.
func (s *ContactSystem) applyDamage(w *ecs.World, pe ecs.Entity, p *component.Player, body *component.Obstacle) {
	if p.Health <= 0 || p.Hazards.Len() == 0 {
		return
	}
	if ecs.Has(w, pe, component.InvulnerableComponent.Kind()) {
		return
	}

	total := 0
	var struck []ecs.Entity
	for _, id := range p.Hazards.IDs() {
		he := ecs.Entity(id)
		h, ok := ecs.Get(w, he, component.HazardComponent.Kind())
		if !ok || !h.Active {
			continue
		}
		total += h.Damage

		var dir r2.Vec
		if h.Kind == component.HazardBird {
			if b, ok := ecs.Get(w, he, component.BirdComponent.Kind()); ok {
				dir = b.AttackDir
				struck = append(struck, he)
			}
		}
		if r2.Norm(dir) == 0 {
			if ho, ok := ecs.Get(w, he, component.ObstacleComponent.Kind()); ok {
				dir = r2.Sub(body.Center(), ho.Center())
			}
		}
		applyImpulse(body, r2.Scale(h.Knockback, unit(dir, r2.Vec{Y: 1})))
	}
	if total <= 0 {
		return
	}

	p.Health -= total
	if p.Health < 0 {
		p.Health = 0
	}
	startInvulnerability(w, pe, p.IFrameTime)
	w.Events().Push(ecs.Event{Type: ecs.EventDamage, Entity: pe, Data: total})
	for _, be := range struck {
		birdStruck(w, be, s.physics)
	}
	if p.Health == 0 {
		w.Events().Push(ecs.Event{Type: ecs.EventDefeat, Entity: pe})
	}
}
