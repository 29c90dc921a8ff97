package system

import (
	"math"

	"github.com/milk9111/gustfall/ecs/component"
	"github.com/milk9111/gustfall/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// minAttackDistance keeps a dive from ending before it starts when the
// player sits on top of the bird.
const minAttackDistance = 1.0

type birdState interface {
	Phase() component.BirdPhase
	Enter(ctx *birdContext)
	Update(ctx *birdContext)
}

// Bird state singletons.
var (
	birdStatePatrol    birdState = &birdPatrolState{}
	birdStateTelegraph birdState = &birdTelegraphState{}
	birdStateAttack    birdState = &birdAttackState{}
	birdStateReturn    birdState = &birdReturnState{}
)

func birdStateFor(phase component.BirdPhase) birdState {
	switch phase {
	case component.BirdTelegraph:
		return birdStateTelegraph
	case component.BirdAttack:
		return birdStateAttack
	case component.BirdReturn:
		return birdStateReturn
	}
	return birdStatePatrol
}

type birdContext struct {
	bird    *component.Bird
	hazard  *component.Hazard
	pos     r2.Vec
	halfW   float64
	physics *physics.World

	target    r2.Vec
	targetVel r2.Vec
	hasTarget bool

	// vel is the velocity the bird will fly with this step.
	vel r2.Vec
}

func (ctx *birdContext) change(next birdState) {
	ctx.bird.Phase = next.Phase()
	ctx.bird.Timer = 0
	next.Enter(ctx)
}

func (ctx *birdContext) seesTarget() bool {
	if !ctx.hasTarget || ctx.bird.SensorRadius <= 0 {
		return false
	}
	if r2.Norm(r2.Sub(ctx.target, ctx.pos)) > ctx.bird.SensorRadius {
		return false
	}
	return ctx.physics.LineOfSight(ctx.pos, ctx.target)
}

// nearestWaypoint returns the index of the path point closest to pos. Ties
// go to the lowest index.
func nearestWaypoint(path []r2.Vec, pos r2.Vec) int {
	best, bestDist := 0, math.Inf(1)
	for i, p := range path {
		if d := r2.Norm(r2.Sub(p, pos)); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

type birdPatrolState struct{}

type birdTelegraphState struct{}

type birdAttackState struct{}

type birdReturnState struct{}

func (birdPatrolState) Phase() component.BirdPhase { return component.BirdPatrol }
func (birdPatrolState) Enter(ctx *birdContext) {
	ctx.hazard.Active = false
}
func (birdPatrolState) Update(ctx *birdContext) {
	if ctx.seesTarget() {
		ctx.change(birdStateTelegraph)
		return
	}
	b := ctx.bird
	if len(b.Path) == 0 {
		return
	}
	b.Target %= len(b.Path)
	vel, arrived := steer(ctx.pos, b.Path[b.Target], b.Speed)
	if arrived {
		b.Target = (b.Target + 1) % len(b.Path)
	}
	ctx.vel = vel
}

func (birdTelegraphState) Phase() component.BirdPhase { return component.BirdTelegraph }
func (birdTelegraphState) Enter(ctx *birdContext) {
	ctx.hazard.Active = false
	ctx.vel = r2.Vec{}
}
func (birdTelegraphState) Update(ctx *birdContext) {
	b := ctx.bird
	b.Timer += dt
	if ctx.hasTarget {
		b.FacingRight = ctx.target.X >= ctx.pos.X
	}
	if b.Timer+timerEpsilon >= b.TelegraphTime {
		ctx.change(birdStateAttack)
	}
}

func (birdAttackState) Phase() component.BirdPhase { return component.BirdAttack }

// Enter commits to a dive toward where the player will be when the bird
// arrives, assuming the player keeps its current velocity.
func (birdAttackState) Enter(ctx *birdContext) {
	b := ctx.bird
	ctx.hazard.Active = true
	b.Traveled = 0

	aim := ctx.target
	if ctx.hasTarget && b.AttackSpeed > 0 {
		eta := r2.Norm(r2.Sub(ctx.target, ctx.pos)) / b.AttackSpeed
		aim = r2.Add(ctx.target, r2.Scale(eta, ctx.targetVel))
	}
	toAim := r2.Sub(aim, ctx.pos)
	b.AttackDir = unit(toAim, unit(r2.Sub(ctx.target, ctx.pos), r2.Vec{Y: -1}))
	b.AttackDistance = math.Max(r2.Norm(toAim), minAttackDistance)
	ctx.vel = r2.Vec{}
}
func (birdAttackState) Update(ctx *birdContext) {
	b := ctx.bird
	remaining := b.AttackDistance - b.Traveled
	if remaining <= 0 || b.AttackSpeed <= 0 {
		ctx.change(birdStateReturn)
		return
	}
	step := math.Min(b.AttackSpeed*dt, remaining)
	ahead := r2.Add(ctx.pos, r2.Scale(step+ctx.halfW, b.AttackDir))
	if !ctx.physics.LineOfSight(ctx.pos, ahead) {
		ctx.change(birdStateReturn)
		return
	}
	b.Traveled += step
	ctx.vel = r2.Scale(step/dt, b.AttackDir)
}

func (birdReturnState) Phase() component.BirdPhase { return component.BirdReturn }
func (birdReturnState) Enter(ctx *birdContext) {
	ctx.hazard.Active = false
	ctx.bird.Target = nearestWaypoint(ctx.bird.Path, ctx.pos)
	ctx.vel = r2.Vec{}
}
func (birdReturnState) Update(ctx *birdContext) {
	b := ctx.bird
	if len(b.Path) == 0 {
		ctx.change(birdStatePatrol)
		return
	}
	vel, arrived := steer(ctx.pos, b.Path[b.Target], b.Speed)
	ctx.vel = vel
	if arrived {
		b.Target = (b.Target + 1) % len(b.Path)
		ctx.change(birdStatePatrol)
		ctx.vel = vel
	}
}
