package system

import (
	"fmt"
	"sort"

	"github.com/milk9111/gustfall/assets"
	"github.com/milk9111/gustfall/canvas"
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"github.com/milk9111/gustfall/ecs/entity"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	hudMargin  = 16.0
	hudSpacing = 4.0
	// cooling tints the boost icon while it recharges.
	cooling = 0.35
)

// RenderSystem draws every visible sprite in ascending depth, then the HUD.
type RenderSystem struct {
	textures entity.Textures
}

func NewRenderSystem(textures entity.Textures) *RenderSystem {
	return &RenderSystem{textures: textures}
}

type drawItem struct {
	e      ecs.Entity
	o      *component.Obstacle
	sprite *component.Sprite
}

// DrawList returns the entities that will be drawn, in draw order. Equal
// depths keep creation order.
func (r *RenderSystem) DrawList(w *ecs.World) []ecs.Entity {
	items := r.items(w)
	out := make([]ecs.Entity, len(items))
	for i, it := range items {
		out[i] = it.e
	}
	return out
}

func (r *RenderSystem) items(w *ecs.World) []drawItem {
	var items []drawItem
	for _, e := range w.Entities() {
		o, ok := ecs.Get(w, e, component.ObstacleComponent.Kind())
		if !ok || !o.Active() {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok || s.Hidden || s.Texture == "" {
			continue
		}
		items = append(items, drawItem{e: e, o: o, sprite: s})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].o.Depth < items[j].o.Depth
	})
	return items
}

func (r *RenderSystem) Draw(w *ecs.World, c canvas.Canvas) {
	if r == nil || w == nil || c == nil {
		return
	}

	if _, cam, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		scale := drawScale(w)
		c.SetCamera(r2.Vec{X: cam.Position.X * scale.X, Y: cam.Position.Y * scale.Y})
		c.SetDynamicCameraZoom(cam.Zoom)
	}

	for _, it := range r.items(w) {
		flash := false
		if wf, ok := ecs.Get(w, it.e, component.WhiteFlashComponent.Kind()); ok {
			flash = wf.On
		}
		if it.sprite.Polygon {
			c.DrawPolygon(polygonCall(it.o, it.sprite, flash))
		} else {
			anim, _ := ecs.Get(w, it.e, component.AnimationComponent.Kind())
			c.DrawRegion(regionCall(it.o, it.sprite, anim, flash))
		}
		if bird, ok := ecs.Get(w, it.e, component.BirdComponent.Kind()); ok && bird.Phase == component.BirdTelegraph {
			r.drawWarning(c, it.o, bird)
		}
	}

	r.drawHUD(w, c)
}

func polygonCall(o *component.Obstacle, s *component.Sprite, flash bool) canvas.Polygon {
	ds := o.DrawScale
	points := o.Points
	if o.Shape == component.ShapeBox {
		points = []r2.Vec{
			{X: o.Bounds.Min.X, Y: o.Bounds.Max.Y},
			o.Bounds.Max,
			{X: o.Bounds.Max.X, Y: o.Bounds.Min.Y},
			o.Bounds.Min,
		}
	}
	px := make([]r2.Vec, len(points))
	for i, p := range points {
		px[i] = r2.Vec{X: p.X * ds.X, Y: p.Y * ds.Y}
	}
	tris := o.Triangles
	if tris == nil && len(px) == 4 {
		tris = [][3]int{{0, 1, 2}, {0, 2, 3}}
	}
	center := o.Center()
	return canvas.Polygon{
		Texture:      s.Texture,
		TextureSize:  s.TextureSize,
		TextureScale: fitScale(s, ds),
		Points:       px,
		Triangles:    tris,
		Tint:         canvas.White,
		Position:     r2.Vec{X: center.X * ds.X, Y: center.Y * ds.Y},
		Rotation:     o.Angle(),
		Flash:        flash,
	}
}

func regionCall(o *component.Obstacle, s *component.Sprite, anim *component.Animation, flash bool) canvas.Region {
	ds := o.DrawScale
	texture, frame := s.Texture, 0
	if anim != nil && anim.Playing {
		if clip, ok := anim.Clip(); ok {
			texture, frame = clip.Texture(anim.Frame)
		}
	}

	scale := fitScale(s, ds)
	pivot := r2.Vec{}
	if s.Size.X != 0 && s.Size.Y != 0 {
		pivot = r2.Vec{
			X: -s.Origin.X / s.Size.X * s.TextureSize.X,
			Y: s.Origin.Y / s.Size.Y * s.TextureSize.Y,
		}
	}
	if s.FlipX {
		scale.X = -scale.X
	}
	center := o.Center()
	return canvas.Region{
		Texture:  texture,
		Frame:    frame,
		Tint:     canvas.White,
		Pivot:    pivot,
		Position: r2.Vec{X: center.X * ds.X, Y: center.Y * ds.Y},
		Rotation: o.Angle() + s.Rotation,
		Scale:    scale,
		Flash:    flash,
	}
}

// fitScale stretches the natural texture size over the sprite's world size.
func fitScale(s *component.Sprite, ds r2.Vec) r2.Vec {
	if s.TextureSize.X == 0 || s.TextureSize.Y == 0 {
		return r2.Vec{X: 1, Y: 1}
	}
	return r2.Vec{
		X: s.Size.X * ds.X / s.TextureSize.X,
		Y: s.Size.Y * ds.Y / s.TextureSize.Y,
	}
}

func (r *RenderSystem) drawWarning(c canvas.Canvas, o *component.Obstacle, bird *component.Bird) {
	if r.textures == nil || bird.WarningTexture == "" {
		return
	}
	t, err := r.textures.Texture(bird.WarningTexture)
	if err != nil {
		return
	}
	ds := o.DrawScale
	center := o.Center()
	above := center.Y + o.Bounds.Max.Y + o.Bounds.Size().Y/2
	c.DrawRegion(canvas.Region{
		Texture:  bird.WarningTexture,
		Tint:     canvas.White,
		Pivot:    r2.Vec{X: float64(t.Width) / 2, Y: float64(t.Height) / 2},
		Position: r2.Vec{X: center.X * ds.X, Y: above * ds.Y},
		Scale:    r2.Vec{X: 1, Y: 1},
	})
}

func (r *RenderSystem) drawHUD(w *ecs.World, c canvas.Canvas) {
	e, p, _, ok := player(w)
	if !ok {
		return
	}

	x := hudMargin
	row := hudMargin
	if r.textures != nil {
		if t, err := r.textures.Texture(p.HPTexture); err == nil {
			for i := 0; i < p.Health; i++ {
				c.DrawHUD(canvas.Region{
					Texture:  p.HPTexture,
					Tint:     canvas.White,
					Position: r2.Vec{X: x, Y: row},
					Scale:    r2.Vec{X: 1, Y: 1},
				})
				x += float64(t.Width) + hudSpacing
			}
			row += float64(t.Height) + hudSpacing
		}
		if t, err := r.textures.Texture(p.BoostTexture); err == nil {
			tint := canvas.White
			if cd, ok := ecs.Get(w, e, component.CooldownComponent.Kind()); ok && !cd.Ready() {
				tint = tint.Scale(cooling)
			}
			c.DrawHUD(canvas.Region{
				Texture:  p.BoostTexture,
				Tint:     tint,
				Position: r2.Vec{X: hudMargin, Y: row},
				Scale:    r2.Vec{X: 1, Y: 1},
			})
			row += float64(t.Height) + hudSpacing
		}
	}

	c.DrawText(canvas.Text{
		Font:     assets.RetroFont,
		Text:     fmt.Sprintf("HP %d/%d", p.Health, p.MaxHealth),
		Position: r2.Vec{X: hudMargin, Y: row},
		Tint:     canvas.White,
	})
}

func drawScale(w *ecs.World) r2.Vec {
	_, lb, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok || lb.DrawScale.X == 0 || lb.DrawScale.Y == 0 {
		return r2.Vec{X: 1, Y: 1}
	}
	return lb.DrawScale
}
