package levels

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrMalformed wraps every descriptor validation failure.
var ErrMalformed = errors.New("levels: malformed level")

// Object layer names.
const (
	LayerPlatforms       = "platforms"
	LayerMovingPlatforms = "moving_platforms"
	LayerWind            = "wind"
	LayerBirds           = "birds"
	LayerLightning       = "lightning"
	LayerStaticHazards   = "static_hazards"
	LayerNests           = "nests"
	LayerPlayer          = "player"
	LayerGoal            = "goal"
	LayerPaths           = "paths"
)

// Descriptor is a level in world units with y pointing up. Polygon points are
// local to Position. Zero-valued tuning fields mean "use the global constant".
type Descriptor struct {
	Width  float64
	Height float64

	Player r2.Vec
	Goal   r2.Vec

	Platforms       []Platform
	MovingPlatforms []MovingPlatform
	Winds           []Wind
	Birds           []Bird
	Lightning       []Lightning
	StaticHazards   []StaticHazard
	Nests           []Nest
}

type Platform struct {
	Position r2.Vec
	Points   []r2.Vec
}

type MovingPlatform struct {
	Position  r2.Vec
	Points    []r2.Vec
	Path      []r2.Vec
	Speed     float64
	TileIndex int
}

type Wind struct {
	Position  r2.Vec
	Points    []r2.Vec
	Direction float64
	Magnitude float64
	Depth     int
}

type Bird struct {
	Position     r2.Vec
	Path         []r2.Vec
	Color        string
	Speed        float64
	AttackSpeed  float64
	SensorRadius float64
	Telegraph    float64
	Damage       int
	Knockback    float64
}

type Lightning struct {
	Position r2.Vec
	Points   []r2.Vec
	OnTime   float64
	OffTime  float64
	Phase    float64
}

type StaticHazard struct {
	Position r2.Vec
	Points   []r2.Vec
	Texture  string
}

type Nest struct {
	Position r2.Vec
	Path     []r2.Vec
	Color    string
	Interval float64
	MaxBirds int
}

// Parse decodes a Tiled JSON map into a Descriptor.
func Parse(data []byte) (*Descriptor, error) {
	var m tiledMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if m.Width <= 0 || m.Height <= 0 || m.TileWidth <= 0 || m.TileHeight <= 0 {
		return nil, fmt.Errorf("%w: map size %dx%d tiles of %dx%d px", ErrMalformed, m.Width, m.Height, m.TileWidth, m.TileHeight)
	}

	p := &parser{
		tw:    float64(m.TileWidth),
		th:    float64(m.TileHeight),
		h:     float64(m.Height),
		paths: make(map[int][]r2.Vec),
	}
	d := &Descriptor{Width: float64(m.Width), Height: float64(m.Height)}

	layers := make(map[string]tiledLayer, len(m.Layers))
	for _, l := range m.Layers {
		if l.Type != "" && l.Type != "objectgroup" {
			continue
		}
		layers[strings.ToLower(l.Name)] = l
	}

	for _, obj := range layers[LayerPaths].Objects {
		pts := obj.Polyline
		if len(pts) == 0 {
			pts = obj.Polygon
		}
		if len(pts) == 0 {
			return nil, fmt.Errorf("%w: path %d has no points", ErrMalformed, obj.ID)
		}
		origin := p.position(obj.X, obj.Y)
		path := make([]r2.Vec, len(pts))
		for i, pt := range pts {
			path[i] = r2.Add(origin, p.local(pt))
		}
		p.paths[obj.ID] = path
	}

	var err error
	if d.Player, err = p.marker(layers, LayerPlayer); err != nil {
		return nil, err
	}
	if d.Goal, err = p.marker(layers, LayerGoal); err != nil {
		return nil, err
	}
	steps := []func(tiledLayer, *Descriptor) error{
		p.platforms, p.movingPlatforms, p.winds, p.birds, p.lightning, p.staticHazards, p.nests,
	}
	names := []string{
		LayerPlatforms, LayerMovingPlatforms, LayerWind, LayerBirds, LayerLightning, LayerStaticHazards, LayerNests,
	}
	for i, step := range steps {
		if err := step(layers[names[i]], d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

type parser struct {
	tw, th float64
	h      float64
	paths  map[int][]r2.Vec
}

func (p *parser) position(x, y float64) r2.Vec {
	return r2.Vec{X: x / p.tw, Y: p.h - y/p.th}
}

func (p *parser) local(pt tiledPoint) r2.Vec {
	return r2.Vec{X: pt.X / p.tw, Y: -pt.Y / p.th}
}

// shape returns the object's origin and local polygon. Rectangles become
// four-point polygons.
func (p *parser) shape(layer string, obj tiledObject) (r2.Vec, []r2.Vec, error) {
	pts := obj.Polygon
	if len(pts) == 0 {
		if obj.Width <= 0 || obj.Height <= 0 {
			return r2.Vec{}, nil, fmt.Errorf("%w: %s object %d has no polygon or size", ErrMalformed, layer, obj.ID)
		}
		pts = []tiledPoint{{0, 0}, {obj.Width, 0}, {obj.Width, obj.Height}, {0, obj.Height}}
	}
	if len(pts) < 3 {
		return r2.Vec{}, nil, fmt.Errorf("%w: %s object %d has %d points", ErrMalformed, layer, obj.ID, len(pts))
	}
	local := make([]r2.Vec, len(pts))
	for i, pt := range pts {
		local[i] = p.local(pt)
	}
	return p.position(obj.X, obj.Y), local, nil
}

func (p *parser) marker(layers map[string]tiledLayer, name string) (r2.Vec, error) {
	l, ok := layers[name]
	if !ok || len(l.Objects) == 0 {
		return r2.Vec{}, fmt.Errorf("%w: missing %s", ErrMalformed, name)
	}
	obj := l.Objects[0]
	return p.position(obj.X+obj.Width/2, obj.Y+obj.Height/2), nil
}

func (p *parser) path(layer string, obj tiledObject, at r2.Vec) ([]r2.Vec, error) {
	id, err := props(obj.Properties).object("path")
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return []r2.Vec{at}, nil
	}
	path, ok := p.paths[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s object %d references unknown path %d", ErrMalformed, layer, obj.ID, id)
	}
	return append([]r2.Vec(nil), path...), nil
}

func (p *parser) platforms(l tiledLayer, d *Descriptor) error {
	for _, obj := range l.Objects {
		pos, pts, err := p.shape(LayerPlatforms, obj)
		if err != nil {
			return err
		}
		d.Platforms = append(d.Platforms, Platform{Position: pos, Points: pts})
	}
	return nil
}

func (p *parser) movingPlatforms(l tiledLayer, d *Descriptor) error {
	for _, obj := range l.Objects {
		pos, pts, err := p.shape(LayerMovingPlatforms, obj)
		if err != nil {
			return err
		}
		pr := props(obj.Properties)
		speed, err := pr.number("speed", 1)
		if err != nil {
			return err
		}
		tile, err := pr.integer("tileIndex", 0)
		if err != nil {
			return err
		}
		if speed < 0 {
			return fmt.Errorf("%w: moving platform %d has negative speed", ErrMalformed, obj.ID)
		}
		if tile < 0 || tile > 3 {
			return fmt.Errorf("%w: moving platform %d tileIndex %d not in 0..3", ErrMalformed, obj.ID, tile)
		}
		path, err := p.path(LayerMovingPlatforms, obj, pos)
		if err != nil {
			return err
		}
		d.MovingPlatforms = append(d.MovingPlatforms, MovingPlatform{
			Position: pos, Points: pts, Path: path, Speed: speed, TileIndex: tile,
		})
	}
	return nil
}

func (p *parser) winds(l tiledLayer, d *Descriptor) error {
	for _, obj := range l.Objects {
		pos, pts, err := p.shape(LayerWind, obj)
		if err != nil {
			return err
		}
		pr := props(obj.Properties)
		dir, err := pr.number("direction", 0)
		if err != nil {
			return err
		}
		mag, err := pr.number("magnitude", 0)
		if err != nil {
			return err
		}
		depth, err := pr.integer("depth", 0)
		if err != nil {
			return err
		}
		if mag < 0 {
			return fmt.Errorf("%w: wind %d has negative magnitude", ErrMalformed, obj.ID)
		}
		d.Winds = append(d.Winds, Wind{Position: pos, Points: pts, Direction: dir, Magnitude: mag, Depth: depth})
	}
	return nil
}

func (p *parser) birds(l tiledLayer, d *Descriptor) error {
	for _, obj := range l.Objects {
		pos := p.position(obj.X+obj.Width/2, obj.Y+obj.Height/2)
		pr := props(obj.Properties)
		b := Bird{Position: pos}
		var err error
		if b.Color, err = pr.text("color", ""); err != nil {
			return err
		}
		if b.Speed, err = pr.number("speed", 0); err != nil {
			return err
		}
		if b.AttackSpeed, err = pr.number("attackSpeed", 0); err != nil {
			return err
		}
		if b.SensorRadius, err = pr.number("sensorRadius", 0); err != nil {
			return err
		}
		if b.Telegraph, err = pr.number("telegraph", 0); err != nil {
			return err
		}
		if b.Damage, err = pr.integer("damage", 0); err != nil {
			return err
		}
		if b.Knockback, err = pr.number("knockback", 0); err != nil {
			return err
		}
		if b.Path, err = p.path(LayerBirds, obj, pos); err != nil {
			return err
		}
		d.Birds = append(d.Birds, b)
	}
	return nil
}

func (p *parser) lightning(l tiledLayer, d *Descriptor) error {
	for _, obj := range l.Objects {
		pos, pts, err := p.shape(LayerLightning, obj)
		if err != nil {
			return err
		}
		pr := props(obj.Properties)
		on, err := pr.number("onTime", 1)
		if err != nil {
			return err
		}
		off, err := pr.number("offTime", 1)
		if err != nil {
			return err
		}
		phase, err := pr.number("phase", 0)
		if err != nil {
			return err
		}
		if on < 0 || off < 0 || on+off <= 0 {
			return fmt.Errorf("%w: lightning %d has on=%v off=%v", ErrMalformed, obj.ID, on, off)
		}
		d.Lightning = append(d.Lightning, Lightning{Position: pos, Points: pts, OnTime: on, OffTime: off, Phase: phase})
	}
	return nil
}

func (p *parser) staticHazards(l tiledLayer, d *Descriptor) error {
	for _, obj := range l.Objects {
		pos, pts, err := p.shape(LayerStaticHazards, obj)
		if err != nil {
			return err
		}
		tex, err := props(obj.Properties).text("texture", "")
		if err != nil {
			return err
		}
		d.StaticHazards = append(d.StaticHazards, StaticHazard{Position: pos, Points: pts, Texture: tex})
	}
	return nil
}

func (p *parser) nests(l tiledLayer, d *Descriptor) error {
	for _, obj := range l.Objects {
		pos := p.position(obj.X+obj.Width/2, obj.Y+obj.Height/2)
		pr := props(obj.Properties)
		n := Nest{Position: pos}
		var err error
		if n.Color, err = pr.text("color", ""); err != nil {
			return err
		}
		if n.Interval, err = pr.number("spawnInterval", 0); err != nil {
			return err
		}
		if n.MaxBirds, err = pr.integer("maxBirds", 0); err != nil {
			return err
		}
		if n.Interval < 0 || n.MaxBirds < 0 {
			return fmt.Errorf("%w: nest %d has interval=%v maxBirds=%d", ErrMalformed, obj.ID, n.Interval, n.MaxBirds)
		}
		if n.Path, err = p.path(LayerNests, obj, pos); err != nil {
			return err
		}
		d.Nests = append(d.Nests, n)
	}
	return nil
}
