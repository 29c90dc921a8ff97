package system

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/milk9111/gustfall/assets"
	"github.com/milk9111/gustfall/canvas"
	"github.com/milk9111/gustfall/common"
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"github.com/milk9111/gustfall/ecs/entity"
	"github.com/milk9111/gustfall/level"
	"github.com/milk9111/gustfall/levels"
	"gonum.org/v1/gonum/spatial/r2"
)

type harness struct {
	env   *entity.Env
	lvl   entity.Level
	sim   *Simulation
	input component.Input
	tick  int
}

func newHarness(t *testing.T, bounds common.Rect, d *levels.Descriptor, gravity float64) *harness {
	t.Helper()
	dir, err := assets.Default()
	if err != nil {
		t.Fatalf("assets.Default: %v", err)
	}
	if err := dir.LoadAll(); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	k := assets.DefaultConstants()
	c := level.New(nil, level.Options{Bounds: bounds, DrawScale: r2.Vec{X: 32, Y: 32}})
	t.Cleanup(c.Dispose)

	h := &harness{env: &entity.Env{Level: c, Textures: dir, Constants: &k}}
	h.lvl, err = entity.Populate(h.env, d)
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	c.Physics().SetGravity(r2.Vec{Y: gravity})
	h.sim = NewSimulation(h.env, InputFunc(func() component.Input { return h.input }))
	return h
}

func (h *harness) world() *ecs.World {
	return h.env.Level.World()
}

// step runs one tick and returns the events it raised.
func (h *harness) step() []ecs.Event {
	h.tick++
	h.sim.Step(h.world())
	h.input.ToggleUmbrella = false
	h.input.Boost = false
	return h.world().Events().Drain()
}

func (h *harness) player(t *testing.T) (*component.Player, *component.Obstacle) {
	t.Helper()
	p, ok := ecs.Get(h.world(), h.lvl.Player, component.PlayerComponent.Kind())
	if !ok {
		t.Fatalf("player component missing")
	}
	o, ok := ecs.Get(h.world(), h.lvl.Player, component.ObstacleComponent.Kind())
	if !ok {
		t.Fatalf("player obstacle missing")
	}
	return p, o
}

func (h *harness) umbrella(t *testing.T) *component.Umbrella {
	t.Helper()
	u, ok := ecs.Get(h.world(), h.lvl.Umbrella, component.UmbrellaComponent.Kind())
	if !ok {
		t.Fatalf("umbrella component missing")
	}
	return u
}

func square(half float64) []r2.Vec {
	return []r2.Vec{
		{X: -half, Y: half},
		{X: half, Y: half},
		{X: half, Y: -half},
		{X: -half, Y: -half},
	}
}

func countEvents(events []ecs.Event, typ ecs.EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func TestDropMatchesGravity(t *testing.T) {
	d := &levels.Descriptor{Player: r2.Vec{X: 5, Y: 20}, Goal: r2.Vec{X: 9, Y: 2}}
	h := newHarness(t, common.Rect{Width: 10, Height: 30}, d, common.DefaultGravity)

	for i := 0; i < common.TicksPerSecond; i++ {
		h.step()
	}
	_, o := h.player(t)
	if vy := o.Velocity().Y; math.Abs(vy-common.DefaultGravity) > 0.05 {
		t.Fatalf("vy after 1s = %v, want ≈ %v", vy, common.DefaultGravity)
	}
	if y := o.Center().Y; y >= 20 {
		t.Fatalf("y after 1s = %v, want < 20", y)
	}
	if c := clock(h.world()); c.Tick != common.TicksPerSecond || c.Time != 1 {
		t.Fatalf("clock = %+v, want tick 60 at t=1", *c)
	}
}

func TestWindLift(t *testing.T) {
	d := &levels.Descriptor{
		Player: r2.Vec{X: 10, Y: 15},
		Goal:   r2.Vec{X: 2, Y: 2},
		Winds: []levels.Wind{{
			Position:  r2.Vec{X: 10, Y: 15},
			Points:    square(5),
			Direction: math.Pi / 2,
			Magnitude: 15,
		}},
	}
	h := newHarness(t, common.Rect{Width: 20, Height: 40}, d, common.DefaultGravity)

	h.input.ToggleUmbrella = true
	for i := 0; i < 3; i++ {
		h.step()
	}
	u := h.umbrella(t)
	if !u.Open || u.Angle != math.Pi/2 {
		t.Fatalf("umbrella open=%v angle=%v, want open at π/2", u.Open, u.Angle)
	}
	_, o := h.player(t)
	want := 15 * o.Mass()
	if math.Abs(u.WindForce.X) > 1e-9 || math.Abs(u.WindForce.Y-want) > 1e-9 {
		t.Fatalf("wind force = %v, want (0, %v)", u.WindForce, want)
	}

	for i := 0; i < 30; i++ {
		h.step()
	}
	if vy := o.Velocity().Y; vy <= 0 {
		t.Fatalf("vy under lift = %v, want rising", vy)
	}
}

func TestNoWindMeansZeroForce(t *testing.T) {
	d := &levels.Descriptor{Player: r2.Vec{X: 5, Y: 20}, Goal: r2.Vec{X: 9, Y: 2}}
	h := newHarness(t, common.Rect{Width: 10, Height: 30}, d, common.DefaultGravity)

	h.input.ToggleUmbrella = true
	for i := 0; i < 10; i++ {
		h.step()
		if f := h.umbrella(t).WindForce; f.X != 0 || f.Y != 0 {
			t.Fatalf("tick %d: wind force = %v with no zone", h.tick, f)
		}
	}
}

func TestBirdAttack(t *testing.T) {
	k := assets.DefaultConstants()
	d := &levels.Descriptor{
		Player: r2.Vec{X: 5, Y: 1},
		Goal:   r2.Vec{X: 12, Y: 12},
		Birds: []levels.Bird{{
			Position:     r2.Vec{X: 0, Y: 0},
			Path:         []r2.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}},
			SensorRadius: 6,
		}},
	}
	h := newHarness(t, common.Rect{X: -5, Y: -5, Width: 20, Height: 20}, d, 0)
	_, bird, ok := ecs.First(h.world(), component.BirdComponent.Kind())
	if !ok {
		t.Fatalf("bird missing")
	}

	h.step()
	if bird.Phase != component.BirdTelegraph {
		t.Fatalf("phase after first tick = %v, want telegraph", bird.Phase)
	}

	telegraphTicks := int(math.Round(k.Hazards.BirdTelegraph / dt))
	for i := 0; i < telegraphTicks; i++ {
		h.step()
	}
	if bird.Phase != component.BirdAttack {
		t.Fatalf("phase after telegraph = %v, want attack", bird.Phase)
	}

	p, o := h.player(t)
	damaged := false
	for i := 0; i < 3*common.TicksPerSecond && !damaged; i++ {
		events := h.step()
		damaged = countEvents(events, ecs.EventDamage) > 0
	}
	if !damaged {
		t.Fatalf("bird never struck the player")
	}
	if want := p.MaxHealth - k.Hazards.BirdDamage; p.Health != want {
		t.Fatalf("health = %d, want %d", p.Health, want)
	}
	if bird.Phase != component.BirdReturn {
		t.Fatalf("phase after strike = %v, want return", bird.Phase)
	}
	// Knockback is an impulse of the configured magnitude from rest.
	got := r2.Norm(o.Velocity()) * o.Mass()
	if math.Abs(got-k.Hazards.BirdKnockback) > 1e-6 {
		t.Fatalf("knockback impulse = %v, want %v", got, k.Hazards.BirdKnockback)
	}
}

func TestLightningHitsOncePerStrike(t *testing.T) {
	d := &levels.Descriptor{
		Player: r2.Vec{X: 5, Y: 5},
		Goal:   r2.Vec{X: 1, Y: 1},
		Lightning: []levels.Lightning{{
			Position: r2.Vec{X: 5, Y: 5},
			Points:   square(2),
			OnTime:   1,
			OffTime:  1,
		}},
	}
	h := newHarness(t, common.Rect{Width: 10, Height: 10}, d, 0)

	var hits []int
	for i := 0; i < 3*common.TicksPerSecond; i++ {
		if countEvents(h.step(), ecs.EventDamage) > 0 {
			hits = append(hits, h.tick)
		}
	}
	if len(hits) != 2 || hits[0] != 1 || hits[1] != 120 {
		t.Fatalf("damage ticks = %v, want [1 120]", hits)
	}
}

func TestPlayerInvariantsHoldOnSample(t *testing.T) {
	d, err := levels.Sample().Load()
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	h := newHarness(t, common.Rect{Width: d.Width, Height: d.Height}, d, common.DefaultGravity)

	for i := 0; i < 10*common.TicksPerSecond; i++ {
		switch {
		case i%240 < 120:
			h.input.MoveX = 1
		default:
			h.input.MoveX = -1
		}
		h.input.Jump = i%90 == 0
		h.input.ToggleUmbrella = i%150 == 0
		h.input.Rotate = math.Sin(float64(i) / 40)
		h.input.Boost = i%200 == 0

		var prevInv float64
		inv, hadInv := ecs.Get(h.world(), h.lvl.Player, component.InvulnerableComponent.Kind())
		if hadInv {
			prevInv = inv.Remaining
		}

		h.step()
		p, o := h.player(t)
		if p.GroundCount < 0 {
			t.Fatalf("tick %d: ground count %d", h.tick, p.GroundCount)
		}
		if p.Health < 0 || p.Health > p.MaxHealth {
			t.Fatalf("tick %d: health %d outside [0, %d]", h.tick, p.Health, p.MaxHealth)
		}
		if inv, ok := ecs.Get(h.world(), h.lvl.Player, component.InvulnerableComponent.Kind()); ok && hadInv {
			if inv.Remaining >= prevInv && inv.Remaining < p.IFrameTime {
				t.Fatalf("tick %d: invulnerability %v did not drop from %v", h.tick, inv.Remaining, prevInv)
			}
		}
		v := o.Velocity()
		if !common.Finite(v.X) || !common.Finite(v.Y) {
			t.Fatalf("tick %d: velocity %v", h.tick, v)
		}
	}
}

func TestRenderDrawsByDepth(t *testing.T) {
	d, err := levels.Sample().Load()
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	h := newHarness(t, common.Rect{Width: d.Width, Height: d.Height}, d, common.DefaultGravity)
	h.step()

	w := h.world()
	list := h.sim.Render.DrawList(w)
	if len(list) == 0 {
		t.Fatalf("empty draw list")
	}
	last := math.MinInt
	for _, e := range list {
		o, _ := ecs.Get(w, e, component.ObstacleComponent.Kind())
		if o.Depth < last {
			t.Fatalf("%s depth %d drawn after depth %d", o.Name, o.Depth, last)
		}
		last = o.Depth
	}

	rec := &canvas.Recorder{}
	h.sim.Draw(w, rec)
	if rec.Zoom == 0 {
		t.Fatalf("camera zoom not pushed to canvas")
	}
	var hud, text int
	for _, c := range rec.Calls {
		switch c.Op {
		case canvas.OpHUD:
			hud++
		case canvas.OpText:
			text++
			if c.Text.Font != assets.RetroFont {
				t.Fatalf("HUD text font = %q", c.Text.Font)
			}
		}
	}
	p, _ := h.player(t)
	if hud != p.Health+1 || text != 1 {
		t.Fatalf("HUD calls = %d icons, %d text; want %d icons, 1 text", hud, text, p.Health+1)
	}
}

func TestMovingPlatformLoopsAndCarriesPlayer(t *testing.T) {
	d := &levels.Descriptor{
		Player: r2.Vec{X: 4, Y: 3.1},
		Goal:   r2.Vec{X: 18, Y: 18},
		MovingPlatforms: []levels.MovingPlatform{{
			Position: r2.Vec{X: 4, Y: 2},
			Points:   []r2.Vec{{X: -2, Y: 0.25}, {X: 2, Y: 0.25}, {X: 2, Y: -0.25}, {X: -2, Y: -0.25}},
			Path:     []r2.Vec{{X: 4, Y: 2}, {X: 6, Y: 2}, {X: 8, Y: 2}},
			Speed:    2,
		}},
	}
	h := newHarness(t, common.Rect{Width: 20, Height: 20}, d, common.DefaultGravity)
	pe, mp, ok := ecs.First(h.world(), component.MovingPlatformComponent.Kind())
	if !ok {
		t.Fatalf("moving platform missing")
	}
	po, _ := ecs.Get(h.world(), pe, component.ObstacleComponent.Kind())

	wrapped, carried := false, 0
	for i := 0; i < 5*common.TicksPerSecond; i++ {
		p, o := h.player(t)
		onPlatform := p.Platforms.Has(uint64(pe))
		platformVel := po.Velocity()
		before := mp.Target

		h.step()
		if before == len(mp.Path)-1 && mp.Target == 0 {
			wrapped = true
		}
		if onPlatform && platformVel.X != 0 {
			carried++
			if vx := o.Velocity().X; math.Abs(vx-platformVel.X) > 1e-3 {
				t.Fatalf("tick %d: player vx = %v, platform vx = %v", h.tick, vx, platformVel.X)
			}
		}
	}
	if !wrapped {
		t.Fatalf("platform never looped back to its first waypoint")
	}
	if carried == 0 {
		t.Fatalf("player never rode the platform")
	}
	_, o := h.player(t)
	if dx := o.Center().X - po.Center().X; math.Abs(dx) > 0.1 {
		t.Fatalf("player drifted %v from the platform centre", dx)
	}
}

func TestNestSpawnsUpToCap(t *testing.T) {
	d := &levels.Descriptor{
		Player: r2.Vec{X: 2, Y: 2},
		Goal:   r2.Vec{X: 18, Y: 2},
		Nests: []levels.Nest{{
			Position: r2.Vec{X: 10, Y: 16},
			Interval: 0.5,
			MaxBirds: 2,
		}},
	}
	h := newHarness(t, common.Rect{Width: 20, Height: 20}, d, 0)
	_, nest, ok := ecs.First(h.world(), component.NestComponent.Kind())
	if !ok {
		t.Fatalf("nest missing")
	}

	var spawned []ecs.Entity
	for i := 0; i < 3*common.TicksPerSecond; i++ {
		for _, ev := range h.step() {
			if ev.Type != ecs.EventSpawn {
				continue
			}
			spawned = append(spawned, ev.Entity)
			o, ok := ecs.Get(h.world(), ev.Entity, component.ObstacleComponent.Kind())
			if !ok || !o.Active() {
				t.Fatalf("tick %d: spawned bird not in the physics world", h.tick)
			}
			if !slices.Contains(h.env.Level.Objects(), ev.Entity) {
				t.Fatalf("tick %d: spawned bird not flushed into the level", h.tick)
			}
			if want := fmt.Sprintf("nest0_bird%d", len(spawned)-1); o.Name != want {
				t.Fatalf("bird name = %q, want %q", o.Name, want)
			}
		}
	}
	if len(spawned) != 2 || len(nest.Birds) != 2 {
		t.Fatalf("spawned %d birds, nest tracks %d; want 2", len(spawned), len(nest.Birds))
	}
	if s := h.env.Level.Snapshot(); s.Queued != 0 {
		t.Fatalf("insertion queue not drained: %+v", s)
	}
}

func TestBirdDiveTurnsBackAtGeometry(t *testing.T) {
	d := &levels.Descriptor{
		Player: r2.Vec{X: 18, Y: 2},
		Goal:   r2.Vec{X: 18, Y: 18},
		Platforms: []levels.Platform{{
			Position: r2.Vec{X: 5, Y: 6},
			Points:   square(1),
		}},
		Birds: []levels.Bird{{
			Position: r2.Vec{X: 5, Y: 12},
			Path:     []r2.Vec{{X: 5, Y: 12}, {X: 9, Y: 12}},
		}},
	}
	h := newHarness(t, common.Rect{Width: 20, Height: 20}, d, 0)
	be, bird, ok := ecs.First(h.world(), component.BirdComponent.Kind())
	if !ok {
		t.Fatalf("bird missing")
	}
	hazard, _ := ecs.Get(h.world(), be, component.HazardComponent.Kind())
	bo, _ := ecs.Get(h.world(), be, component.ObstacleComponent.Kind())

	// Commit a straight dive onto the platform top.
	bird.Phase = component.BirdAttack
	bird.AttackDir = r2.Vec{Y: -1}
	bird.AttackDistance = 10
	hazard.Active = true

	for i := 0; i < 2*common.TicksPerSecond && bird.Phase == component.BirdAttack; i++ {
		if n := countEvents(h.step(), ecs.EventDamage); n > 0 {
			t.Fatalf("tick %d: dive damaged the player", h.tick)
		}
	}
	if bird.Phase != component.BirdReturn {
		t.Fatalf("phase = %v, want return", bird.Phase)
	}
	if hazard.Active {
		t.Fatalf("returning bird still harmful")
	}
	if bird.Traveled >= bird.AttackDistance {
		t.Fatalf("dive ran its full distance %v", bird.Traveled)
	}
	if y := bo.Center().Y - bo.Height/2; y < 7-1e-6 {
		t.Fatalf("bird bottom %v sank into the platform top at 7", y)
	}
}

func TestGroundedKnockbackSurvivesIFrames(t *testing.T) {
	cases := []struct {
		name         string
		invulnerable bool
		want         float64
	}{
		{"vulnerable", false, 0},
		{"invulnerable", true, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := &levels.Descriptor{Player: r2.Vec{X: 10, Y: 1.4}, Goal: r2.Vec{X: 18, Y: 18}}
			h := newHarness(t, common.Rect{Width: 20, Height: 20}, d, common.DefaultGravity)
			for i := 0; i < 30; i++ {
				h.step()
			}
			p, o := h.player(t)
			if !p.Grounded() {
				t.Fatalf("player not grounded after settling")
			}

			if tc.invulnerable {
				startInvulnerability(h.world(), h.lvl.Player, p.IFrameTime)
			}
			setVelocity(o, r2.Vec{X: 3})
			h.step()
			if vx := o.Velocity().X; math.Abs(vx-tc.want) > 1e-3 {
				t.Fatalf("vx = %v, want %v", vx, tc.want)
			}
		})
	}
}

func TestWindSpriteFacesDirection(t *testing.T) {
	cases := []struct {
		name      string
		direction float64
		want      float64
	}{
		{"up", math.Pi / 2, 0},
		{"right", 0, -math.Pi / 2},
		{"left", math.Pi, math.Pi / 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := &levels.Descriptor{
				Player: r2.Vec{X: 2, Y: 2},
				Goal:   r2.Vec{X: 18, Y: 2},
				Winds: []levels.Wind{{
					Position:  r2.Vec{X: 10, Y: 10},
					Points:    square(2),
					Direction: tc.direction,
					Magnitude: 5,
				}},
			}
			h := newHarness(t, common.Rect{Width: 20, Height: 20}, d, 0)
			h.step()

			rec := &canvas.Recorder{}
			h.sim.Draw(h.world(), rec)
			found := false
			for _, c := range rec.Calls {
				if c.Op != canvas.OpRegion || !strings.HasPrefix(c.Region.Texture, assets.WindTexture) {
					continue
				}
				found = true
				if math.Abs(c.Region.Rotation-tc.want) > 1e-9 {
					t.Fatalf("wind rotation = %v, want %v", c.Region.Rotation, tc.want)
				}
			}
			if !found {
				t.Fatalf("wind zone not drawn")
			}
		})
	}
}
