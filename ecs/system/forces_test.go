package system

import (
	"math"
	"testing"

	"github.com/milk9111/gustfall/common"
	"github.com/milk9111/gustfall/ecs/component"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestWindForce(t *testing.T) {
	cases := []struct {
		name      string
		direction float64
		angle     float64
		want      float64
	}{
		{"facing", math.Pi / 2, math.Pi / 2, 15},
		{"perpendicular", math.Pi / 2, math.Pi, 0},
		{"perpendicular other side", math.Pi / 2, 0, 0},
		{"away", 3 * math.Pi / 2, math.Pi / 2, 0},
		{"sideways facing", 0, 0, 15},
		{"diagonal", math.Pi / 4, math.Pi / 2, 15 * math.Cos(math.Pi/4)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := WindForce(tc.direction, 15, tc.angle)
			if math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("WindForce(%v, 15, %v) = %v, want %v", tc.direction, tc.angle, got, tc.want)
			}
		})
	}
}

func TestWindForceMirrors(t *testing.T) {
	for _, angle := range []float64{0, 0.3, 1, math.Pi / 2, 2.5, math.Pi} {
		for _, dir := range []float64{0, math.Pi / 3, math.Pi / 2, 4} {
			a := WindForce(dir, 7, angle)
			b := WindForce(math.Pi-dir, 7, math.Pi-angle)
			if math.Abs(a-b) > 1e-9 {
				t.Fatalf("mirror of dir=%v angle=%v: %v vs %v", dir, angle, a, b)
			}
		}
	}
}

func TestLightningOn(t *testing.T) {
	l := component.Lightning{OnTime: 1, OffTime: 1}
	cases := []struct {
		at   float64
		want bool
	}{
		{0, true},
		{0.5, true},
		{1, false},
		{1.99, false},
		{2, true},
		{3, false},
	}
	for _, tc := range cases {
		if got := LightningOn(l, tc.at); got != tc.want {
			t.Fatalf("LightningOn(t=%v) = %v, want %v", tc.at, got, tc.want)
		}
	}

	shifted := component.Lightning{OnTime: 1, OffTime: 1, Phase: 1}
	if LightningOn(shifted, 0) {
		t.Fatalf("phase 1 should start in the off half")
	}
	if LightningOn(component.Lightning{}, 0) {
		t.Fatalf("zero period should never strike")
	}
}

func TestCameraZoom(t *testing.T) {
	cases := []struct {
		speed float64
		want  float64
	}{
		{0, common.StandardZoom},
		{4, (common.StandardZoom + common.MinZoom) / 2},
		{8, common.MinZoom},
		{40, common.MinZoom},
	}
	for _, tc := range cases {
		if got := CameraZoom(tc.speed, 8); math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("CameraZoom(%v) = %v, want %v", tc.speed, got, tc.want)
		}
	}
	if got := CameraZoom(5, 0); got != common.StandardZoom {
		t.Fatalf("CameraZoom with no zoom speed = %v", got)
	}
}

func TestSteer(t *testing.T) {
	vel, arrived := steer(r2.Vec{}, r2.Vec{X: 10}, 2)
	if arrived || vel != (r2.Vec{X: 2}) {
		t.Fatalf("far steer = %v, %v", vel, arrived)
	}

	vel, arrived = steer(r2.Vec{X: 9.99}, r2.Vec{X: 10}, 2)
	if !arrived {
		t.Fatalf("near steer did not arrive")
	}
	if got := 9.99 + vel.X*dt; math.Abs(got-10) > 1e-12 {
		t.Fatalf("near steer lands at %v, want 10", got)
	}

	if vel, _ := steer(r2.Vec{}, r2.Vec{X: 1}, 0); vel != (r2.Vec{}) {
		t.Fatalf("zero speed steer = %v", vel)
	}
}
