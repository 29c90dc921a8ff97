package entity

import (
	"errors"
	"testing"

	"github.com/milk9111/gustfall/assets"
	"github.com/milk9111/gustfall/common"
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"github.com/milk9111/gustfall/level"
	"github.com/milk9111/gustfall/levels"
	"gonum.org/v1/gonum/spatial/r2"
)

func newTestEnv(t *testing.T, width, height float64) *Env {
	t.Helper()
	dir, err := assets.Default()
	if err != nil {
		t.Fatalf("assets.Default: %v", err)
	}
	if err := dir.LoadAll(); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	k := assets.DefaultConstants()
	c := level.New(nil, level.Options{
		Bounds:  common.Rect{Width: width, Height: height},
		Gravity: k.Defaults.Gravity,
	})
	t.Cleanup(c.Dispose)
	return &Env{Level: c, Textures: dir, Constants: &k}
}

func names(t *testing.T, env *Env) []string {
	t.Helper()
	var out []string
	for _, e := range env.Level.Objects() {
		o, ok := ecs.Get(env.Level.World(), e, component.ObstacleComponent.Kind())
		if !ok {
			t.Fatalf("object %v has no obstacle", e)
		}
		out = append(out, o.Name)
	}
	return out
}

func TestPopulateSampleOrder(t *testing.T) {
	d, err := levels.Sample().Load()
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	env := newTestEnv(t, d.Width, d.Height)
	lvl, err := Populate(env, d)
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}

	want := []string{
		"goal", "platform0", "platform1", "platform2", "moving_platform0",
		"wind0", "wind1", "static_hazard0", "bird0", "nest0", "lightning0",
		"barrier", "barrier", "barrier", "player", "umbrella",
	}
	got := names(t, env)
	if len(got) != len(want) {
		t.Fatalf("objects = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("object[%d] = %q, want %q (all: %v)", i, got[i], want[i], got)
		}
	}

	w := env.Level.World()
	for _, e := range env.Level.Objects() {
		o, _ := ecs.Get(w, e, component.ObstacleComponent.Kind())
		if !o.Active() {
			t.Fatalf("%s not active", o.Name)
		}
		if !env.Level.InBounds(o.Center()) {
			t.Fatalf("%s centre %v out of bounds", o.Name, o.Center())
		}
	}

	player, ok := ecs.Get(w, lvl.Player, component.ObstacleComponent.Kind())
	if !ok || len(player.Shapes) != 2 {
		t.Fatalf("player shapes = %d, want body and foot sensor", len(player.Shapes))
	}
	umbrella, ok := ecs.Get(w, lvl.Umbrella, component.UmbrellaComponent.Kind())
	if !ok || umbrella.Open || umbrella.Owner != uint64(lvl.Player) {
		t.Fatalf("umbrella = %+v, want closed and owned by player", umbrella)
	}
	sprite, _ := ecs.Get(w, lvl.Umbrella, component.SpriteComponent.Kind())
	if sprite.Texture != assets.UmbrellaClosedTexture {
		t.Fatalf("umbrella texture = %q, want closed", sprite.Texture)
	}
	if _, ok := ecs.Get(w, lvl.Camera, component.CameraComponent.Kind()); !ok {
		t.Fatalf("camera entity missing")
	}
}

func TestPopulateFitsTextures(t *testing.T) {
	d := &levels.Descriptor{
		Width: 20, Height: 20,
		Player: r2.Vec{X: 10, Y: 15},
		Goal:   r2.Vec{X: 10, Y: 3},
	}
	env := newTestEnv(t, d.Width, d.Height)
	lvl, err := Populate(env, d)
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	sprite, _ := ecs.Get(env.Level.World(), lvl.Goal, component.SpriteComponent.Kind())
	want := r2.Vec{X: env.Constants.Goal.Width, Y: env.Constants.Goal.Height}
	if sprite.Size != want {
		t.Fatalf("goal sprite size = %v, want %v", sprite.Size, want)
	}
	if sprite.TextureSize.X <= 0 || sprite.TextureSize.Y <= 0 {
		t.Fatalf("goal texture size = %v", sprite.TextureSize)
	}
}

func TestPopulateUnknownBirdColour(t *testing.T) {
	d := &levels.Descriptor{
		Width: 20, Height: 20,
		Player: r2.Vec{X: 10, Y: 15},
		Goal:   r2.Vec{X: 10, Y: 3},
		Birds:  []levels.Bird{{Position: r2.Vec{X: 5, Y: 10}, Color: "purple"}},
	}
	env := newTestEnv(t, d.Width, d.Height)
	if _, err := Populate(env, d); err != nil {
		t.Fatalf("Populate: %v", err)
	}
	w := env.Level.World()
	e, bird, ok := ecs.First(w, component.BirdComponent.Kind())
	if !ok {
		t.Fatalf("bird not created")
	}
	if bird.Color != "purple" || len(bird.Path) != 1 {
		t.Fatalf("bird = %+v", bird)
	}
	if ecs.Has(w, e, component.AnimationComponent.Kind()) {
		t.Fatalf("unknown colour should have no flap animation")
	}
	if bird.Speed != env.Constants.Hazards.BirdSpeed || bird.SensorRadius != env.Constants.Hazards.BirdSensorRadius {
		t.Fatalf("bird tuning = %+v, want constants", bird)
	}
}

func TestPopulateSkipsOutOfBounds(t *testing.T) {
	d := &levels.Descriptor{
		Width: 20, Height: 20,
		Player: r2.Vec{X: 10, Y: 15},
		Goal:   r2.Vec{X: 40, Y: 3},
	}
	env := newTestEnv(t, d.Width, d.Height)
	lvl, err := Populate(env, d)
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	if lvl.Goal != 0 {
		t.Fatalf("goal = %v, want skipped", lvl.Goal)
	}
	for _, name := range names(t, env) {
		if name == "goal" {
			t.Fatalf("objects %v still hold the stray goal", names(t, env))
		}
	}
	if lvl.Player == 0 || !ecs.IsAlive(env.Level.World(), lvl.Player) {
		t.Fatalf("player missing after skip")
	}
}

func TestPopulateRequiresPlayerInBounds(t *testing.T) {
	d := &levels.Descriptor{
		Width: 20, Height: 20,
		Player: r2.Vec{X: 10, Y: 35},
		Goal:   r2.Vec{X: 5, Y: 3},
	}
	env := newTestEnv(t, d.Width, d.Height)
	if _, err := Populate(env, d); !errors.Is(err, level.ErrOutOfBounds) {
		t.Fatalf("Populate err = %v, want ErrOutOfBounds", err)
	}
}

func TestNewWindRejectsCalmZone(t *testing.T) {
	env := newTestEnv(t, 20, 20)
	square := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	_, err := NewWind(env, 0, levels.Wind{Position: r2.Vec{X: 5, Y: 5}, Points: square})
	if !errors.Is(err, ErrWindMagnitude) {
		t.Fatalf("NewWind err = %v, want ErrWindMagnitude", err)
	}
}

func TestNewBarriersCentresOnEdges(t *testing.T) {
	env := newTestEnv(t, 30, 60)
	walls, err := NewBarriers(env)
	if err != nil {
		t.Fatalf("NewBarriers: %v", err)
	}
	want := []r2.Vec{{X: 0, Y: 30}, {X: 30, Y: 30}, {X: 15, Y: 0}}
	for i, e := range walls {
		o, _ := ecs.Get(env.Level.World(), e, component.ObstacleComponent.Kind())
		if o.Name != "barrier" || o.Position != want[i] {
			t.Fatalf("wall %d = %s at %v, want barrier at %v", i, o.Name, o.Position, want[i])
		}
		if !env.Level.InBounds(o.Position) {
			t.Fatalf("wall %d out of bounds", i)
		}
	}
}
