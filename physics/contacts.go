package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gustfall/ecs/component"
)

type ContactPhase int

const (
	ContactBegin ContactPhase = iota
	ContactEnd
)

func (p ContactPhase) String() string {
	if p == ContactEnd {
		return "end"
	}
	return "begin"
}

// Endpoint is one side of a contact pair.
type Endpoint struct {
	Entity uint64
	Kind   component.CollisionKind
}

// Contact is a begin or end event between two routed shapes. A is always the
// actor of the pair (player, feet sensor, umbrella).
type Contact struct {
	Phase ContactPhase
	A, B  Endpoint
}

// routedPairs lists every pair the engine reports. Anything else is either
// resolved silently by the solver or ignored.
var routedPairs = [][2]component.CollisionKind{
	{component.CollisionPlayerFoot, component.CollisionSolid},
	{component.CollisionPlayerFoot, component.CollisionMovingPlatform},
	{component.CollisionPlayer, component.CollisionGoal},
	{component.CollisionPlayer, component.CollisionHazard},
	{component.CollisionPlayer, component.CollisionBird},
	{component.CollisionUmbrella, component.CollisionWind},
}

func collisionType(k component.CollisionKind) cp.CollisionType {
	return cp.CollisionType(k)
}

func (w *World) setupHandlers() {
	for _, pair := range routedPairs {
		h := w.space.NewCollisionHandler(collisionType(pair[0]), collisionType(pair[1]))
		h.UserData = w
		h.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			if world, ok := userData.(*World); ok {
				world.record(ContactBegin, arb)
			}
			return true
		}
		h.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
			if world, ok := userData.(*World); ok {
				world.record(ContactEnd, arb)
			}
		}
	}
}

func (w *World) record(phase ContactPhase, arb *cp.Arbiter) {
	shapeA, shapeB := arb.Shapes()
	a, okA := w.shapes[shapeA]
	b, okB := w.shapes[shapeB]
	if !okA || !okB {
		return
	}
	if !isActor(a.Kind) {
		a, b = b, a
	}
	w.contacts = append(w.contacts, Contact{Phase: phase, A: a, B: b})
}

func isActor(k component.CollisionKind) bool {
	switch k {
	case component.CollisionPlayer, component.CollisionPlayerFoot, component.CollisionUmbrella:
		return true
	}
	return false
}

// DrainContacts returns queued contacts in engine order and clears the queue.
func (w *World) DrainContacts() []Contact {
	if w == nil || len(w.contacts) == 0 {
		return nil
	}
	out := w.contacts
	w.contacts = nil
	return out
}
