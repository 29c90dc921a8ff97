package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	debugArcSegments = 16
	debugStroke      = 1
)

var (
	solidOutline  = colornames.Limegreen
	sensorOutline = colornames.Deepskyblue
)

// outline is one physics shape in world pixels.
type outline struct {
	points []r2.Vec
	closed bool
	sensor bool
}

// outlines walks every shape in space. Circles are sampled into a closed
// loop, segments stay open. scale converts space units to world pixels.
func outlines(space *cp.Space, scale r2.Vec) []outline {
	px := func(v cp.Vector) r2.Vec {
		return r2.Vec{X: v.X * scale.X, Y: v.Y * scale.Y}
	}
	var out []outline
	space.EachShape(func(s *cp.Shape) {
		o := outline{sensor: s.Sensor()}
		switch shape := s.Class.(type) {
		case *cp.Circle:
			c, r := shape.TransformC(), shape.Radius()
			for i := 0; i < debugArcSegments; i++ {
				t := 2 * math.Pi * float64(i) / debugArcSegments
				o.points = append(o.points, px(cp.Vector{X: c.X + r*math.Cos(t), Y: c.Y + r*math.Sin(t)}))
			}
			o.closed = true
		case *cp.Segment:
			o.points = []r2.Vec{px(shape.TransformA()), px(shape.TransformB())}
		case *cp.PolyShape:
			for i := 0; i < shape.Count(); i++ {
				o.points = append(o.points, px(shape.TransformVert(i)))
			}
			o.closed = true
		default:
			return
		}
		out = append(out, o)
	})
	return out
}

// DrawPhysics strokes every shape in space over the current frame, solids
// and sensors each in a single batch.
func (c *Canvas) DrawPhysics(space *cp.Space, drawScale r2.Vec) {
	if c.screen == nil || space == nil {
		return
	}
	var solid, sensor vector.Path
	for _, o := range outlines(space, drawScale) {
		path := &solid
		if o.sensor {
			path = &sensor
		}
		for i, p := range o.points {
			x, y := c.toScreen(p)
			if i == 0 {
				path.MoveTo(float32(x), float32(y))
				continue
			}
			path.LineTo(float32(x), float32(y))
		}
		if o.closed {
			path.Close()
		}
	}
	c.stroke(&solid, solidOutline)
	c.stroke(&sensor, sensorOutline)
}

func (c *Canvas) stroke(path *vector.Path, clr color.RGBA) {
	verts, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: debugStroke})
	if len(indices) == 0 {
		return
	}
	for i := range verts {
		verts[i].SrcX, verts[i].SrcY = 1, 1
		verts[i].ColorR = float32(clr.R) / 0xff
		verts[i].ColorG = float32(clr.G) / 0xff
		verts[i].ColorB = float32(clr.B) / 0xff
		verts[i].ColorA = float32(clr.A) / 0xff
	}
	c.screen.DrawTriangles(verts, indices, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

var pixel *ebiten.Image

func whitePixel() *ebiten.Image {
	if pixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		pixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return pixel
}

// DebugText prints lines in the top-left corner with the built-in font.
func (c *Canvas) DebugText(msg string) {
	if c.screen == nil {
		return
	}
	ebitenutil.DebugPrintAt(c.screen, msg, 10, 10)
}
