package system

import (
	"math"

	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"gonum.org/v1/gonum/spatial/r2"
)

// cosEpsilon treats floating noise around a right angle as facing away.
const cosEpsilon = 1e-12

// WindForce is the scalar push a zone of the given direction and magnitude
// gives an umbrella facing umbrellaAngle: m·max(0, cos(θw − θu)).
func WindForce(direction, magnitude, umbrellaAngle float64) float64 {
	c := math.Cos(direction - umbrellaAngle)
	if c <= cosEpsilon {
		return 0
	}
	if c > 1 {
		c = 1
	}
	return magnitude * c
}

// WindSystem sums the push of every zone overlapping an open umbrella and
// applies it to the owner's body, scaled by its mass.
type WindSystem struct{}

func NewWindSystem() *WindSystem {
	return &WindSystem{}
}

func (s *WindSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.UmbrellaComponent.Kind(), func(e ecs.Entity, u *component.Umbrella) {
		u.WindForce = r2.Vec{}
		if !u.Open || u.Winds.Len() == 0 {
			return
		}
		owner, ok := ecs.Get(w, ecs.Entity(u.Owner), component.ObstacleComponent.Kind())
		if !ok || !owner.Active() {
			return
		}
		var total r2.Vec
		for _, id := range u.Winds.IDs() {
			wind, ok := ecs.Get(w, ecs.Entity(id), component.WindComponent.Kind())
			if !ok {
				continue
			}
			f := WindForce(wind.Direction, wind.Magnitude, u.Angle)
			if f == 0 {
				continue
			}
			total = r2.Add(total, r2.Scale(f, wind.Unit()))
		}
		u.WindForce = r2.Scale(owner.Mass(), total)
		applyForce(owner, u.WindForce)
	})
}
