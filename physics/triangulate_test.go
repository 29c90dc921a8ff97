package physics

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestTriangulate(t *testing.T) {
	cases := []struct {
		name   string
		points []r2.Vec
		tris   int
	}{
		{"triangle", []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, 1},
		{"square_ccw", []r2.Vec{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}, 2},
		{"square_cw", []r2.Vec{{X: -1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: -1}}, 2},
		{"concave_l", []r2.Vec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2}}, 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tris, err := Triangulate(c.points)
			if err != nil {
				t.Fatalf("Triangulate: %v", err)
			}
			if len(tris) != c.tris {
				t.Fatalf("expected %d triangles, got %d", c.tris, len(tris))
			}
			total := 0.0
			for _, tri := range tris {
				a := SignedArea([]r2.Vec{c.points[tri[0]], c.points[tri[1]], c.points[tri[2]]})
				if a <= 0 {
					t.Fatalf("triangle %v is not counter-clockwise", tri)
				}
				total += a
			}
			if want := math.Abs(SignedArea(c.points)); math.Abs(total-want) > 1e-9 {
				t.Fatalf("triangle area %v, polygon area %v", total, want)
			}
		})
	}
}

func TestTriangulateDegenerate(t *testing.T) {
	cases := [][]r2.Vec{
		nil,
		{{X: 0, Y: 0}, {X: 1, Y: 1}},
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
	}
	for _, pts := range cases {
		if _, err := Triangulate(pts); !errors.Is(err, ErrDegeneratePolygon) {
			t.Fatalf("Triangulate(%v) err = %v, want ErrDegeneratePolygon", pts, err)
		}
	}
}

func TestBounds(t *testing.T) {
	b := Bounds([]r2.Vec{{X: -1, Y: 2}, {X: 3, Y: -4}, {X: 0, Y: 5}})
	if b.Min != (r2.Vec{X: -1, Y: -4}) || b.Max != (r2.Vec{X: 3, Y: 5}) {
		t.Fatalf("unexpected bounds %+v", b)
	}
	if tl := b.TopLeft(); tl != (r2.Vec{X: -1, Y: 5}) {
		t.Fatalf("unexpected top-left %v", tl)
	}
}
