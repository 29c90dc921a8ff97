package screen

import (
	"github.com/milk9111/gustfall/assets"
	"github.com/milk9111/gustfall/canvas"
	"github.com/milk9111/gustfall/common"
	"gonum.org/v1/gonum/spatial/r2"
)

// Panel is a menu-like screen. It only draws; the UI offers Choices and
// routes the pick through Machine.Choose. Pause and Victory draw a frozen
// play session behind their title.
type Panel struct {
	Title   string
	Choices []Exit

	background *Play
}

func NewPanel(title string, choices ...Exit) *Panel {
	return &Panel{Title: title, Choices: choices}
}

func (p *Panel) SetBackground(play *Play) {
	p.background = play
}

func (p *Panel) Background() *Play {
	return p.background
}

func (p *Panel) Draw(c canvas.Canvas) {
	if p.background != nil {
		p.background.Draw(standardZoom{c})
	}
	c.DrawText(canvas.Text{
		Font:     assets.RetroFont,
		Text:     p.Title,
		Position: r2.Vec{X: 32, Y: 32},
		Tint:     canvas.White,
	})
}

// standardZoom pins the camera zoom while a frozen session is drawn behind
// an overlay.
type standardZoom struct {
	canvas.Canvas
}

func (s standardZoom) SetDynamicCameraZoom(float64) {
	s.Canvas.SetDynamicCameraZoom(common.StandardZoom)
}
