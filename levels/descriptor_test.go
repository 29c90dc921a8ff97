package levels

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func near(a, b r2.Vec) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestParseSample(t *testing.T) {
	d, err := Sample().Load()
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if d.Width != 30 || d.Height != 60 {
		t.Fatalf("size = %vx%v, want 30x60", d.Width, d.Height)
	}
	if !near(d.Player, r2.Vec{X: 15, Y: 55}) {
		t.Fatalf("player = %v, want (15,55)", d.Player)
	}
	if !near(d.Goal, r2.Vec{X: 15, Y: 3}) {
		t.Fatalf("goal = %v, want (15,3)", d.Goal)
	}

	counts := []struct {
		name string
		got  int
		want int
	}{
		{"platforms", len(d.Platforms), 3},
		{"moving platforms", len(d.MovingPlatforms), 1},
		{"winds", len(d.Winds), 2},
		{"birds", len(d.Birds), 1},
		{"lightning", len(d.Lightning), 1},
		{"static hazards", len(d.StaticHazards), 1},
		{"nests", len(d.Nests), 1},
	}
	for _, c := range counts {
		if c.got != c.want {
			t.Fatalf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}

	mp := d.MovingPlatforms[0]
	if mp.TileIndex != 1 || mp.Speed != 2 {
		t.Fatalf("moving platform = %+v", mp)
	}
	wantPath := []r2.Vec{{X: 12, Y: 22.5}, {X: 20, Y: 22.5}}
	if len(mp.Path) != len(wantPath) {
		t.Fatalf("path = %v, want %v", mp.Path, wantPath)
	}
	for i := range wantPath {
		if !near(mp.Path[i], wantPath[i]) {
			t.Fatalf("path[%d] = %v, want %v", i, mp.Path[i], wantPath[i])
		}
	}

	if d.Birds[0].Color != "blue" || len(d.Birds[0].Path) != 4 {
		t.Fatalf("bird = %+v", d.Birds[0])
	}
	if w := d.Winds[0]; w.Depth != 1 || w.Magnitude != 6 {
		t.Fatalf("wind = %+v", w)
	}
}

func TestParseRectangleBecomesPolygon(t *testing.T) {
	doc := `{"width": 10, "height": 10, "tilewidth": 16, "tileheight": 16, "layers": [
		{"name": "player", "type": "objectgroup", "objects": [{"id": 1, "x": 16, "y": 16, "point": true}]},
		{"name": "goal", "type": "objectgroup", "objects": [{"id": 2, "x": 32, "y": 128, "width": 32, "height": 32}]},
		{"name": "platforms", "type": "objectgroup", "objects": [{"id": 3, "x": 32, "y": 64, "width": 48, "height": 16}]}
	]}`
	d, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !near(d.Goal, r2.Vec{X: 3, Y: 1}) {
		t.Fatalf("goal = %v, want centre (3,1)", d.Goal)
	}
	p := d.Platforms[0]
	if !near(p.Position, r2.Vec{X: 2, Y: 6}) {
		t.Fatalf("position = %v, want (2,6)", p.Position)
	}
	want := []r2.Vec{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: -1}, {X: 0, Y: -1}}
	for i := range want {
		if !near(p.Points[i], want[i]) {
			t.Fatalf("points[%d] = %v, want %v", i, p.Points[i], want[i])
		}
	}
}

func TestParseMalformed(t *testing.T) {
	const markers = `{"name": "player", "objects": [{"id": 1, "x": 0, "y": 0}]},
		{"name": "goal", "objects": [{"id": 2, "x": 0, "y": 0}]}`
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: `{`},
		{name: "zero size", doc: `{"width": 0, "height": 10, "tilewidth": 16, "tileheight": 16}`},
		{name: "missing player", doc: `{"width": 10, "height": 10, "tilewidth": 16, "tileheight": 16, "layers": [
			{"name": "goal", "objects": [{"id": 2, "x": 0, "y": 0}]}]}`},
		{name: "two point polygon", doc: `{"width": 10, "height": 10, "tilewidth": 16, "tileheight": 16, "layers": [` + markers + `,
			{"name": "platforms", "objects": [{"id": 3, "polygon": [{"x": 0, "y": 0}, {"x": 1, "y": 0}]}]}]}`},
		{name: "unknown path", doc: `{"width": 10, "height": 10, "tilewidth": 16, "tileheight": 16, "layers": [` + markers + `,
			{"name": "birds", "objects": [{"id": 3, "properties": [{"name": "path", "type": "object", "value": 99}]}]}]}`},
		{name: "tile index", doc: `{"width": 10, "height": 10, "tilewidth": 16, "tileheight": 16, "layers": [` + markers + `,
			{"name": "moving_platforms", "objects": [{"id": 3, "width": 16, "height": 16,
				"properties": [{"name": "tileIndex", "type": "int", "value": 7}]}]}]}`},
		{name: "wrong property type", doc: `{"width": 10, "height": 10, "tilewidth": 16, "tileheight": 16, "layers": [` + markers + `,
			{"name": "wind", "objects": [{"id": 3, "width": 16, "height": 16,
				"properties": [{"name": "magnitude", "type": "string", "value": "strong"}]}]}]}`},
		{name: "lightning never on", doc: `{"width": 10, "height": 10, "tilewidth": 16, "tileheight": 16, "layers": [` + markers + `,
			{"name": "lightning", "objects": [{"id": 3, "width": 16, "height": 16,
				"properties": [{"name": "onTime", "type": "float", "value": 0}, {"name": "offTime", "type": "float", "value": 0}]}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("Parse err = %v, want ErrMalformed", err)
			}
		})
	}
}
