package canvas

import "gonum.org/v1/gonum/spatial/r2"

// Op names a recorded canvas call.
type Op int

const (
	OpPolygon Op = iota
	OpRegion
	OpHUD
	OpText
)

type Call struct {
	Op      Op
	Polygon Polygon
	Region  Region
	Text    Text
}

// Texture returns the texture or text drawn by the call.
func (c Call) Texture() string {
	switch c.Op {
	case OpPolygon:
		return c.Polygon.Texture
	case OpText:
		return c.Text.Text
	}
	return c.Region.Texture
}

// Recorder is a Canvas that remembers every call, for tests and replays.
type Recorder struct {
	Calls  []Call
	Camera r2.Vec
	Zoom   float64
}

func (r *Recorder) DrawPolygon(p Polygon) {
	r.Calls = append(r.Calls, Call{Op: OpPolygon, Polygon: p})
}

func (r *Recorder) DrawRegion(reg Region) {
	r.Calls = append(r.Calls, Call{Op: OpRegion, Region: reg})
}

func (r *Recorder) DrawHUD(reg Region) {
	r.Calls = append(r.Calls, Call{Op: OpHUD, Region: reg})
}

func (r *Recorder) DrawText(t Text) {
	r.Calls = append(r.Calls, Call{Op: OpText, Text: t})
}

func (r *Recorder) SetCamera(pos r2.Vec) {
	r.Camera = pos
}

func (r *Recorder) SetDynamicCameraZoom(zoom float64) {
	r.Zoom = zoom
}

func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}
