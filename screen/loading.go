package screen

import (
	"fmt"

	"github.com/milk9111/gustfall/assets"
	"github.com/milk9111/gustfall/canvas"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultLoadBudget is how many asset entries resolve per frame.
const DefaultLoadBudget = 4

// Loading resolves the asset directory a few entries per frame.
type Loading struct {
	dir    *assets.Directory
	budget int
	err    error
}

func NewLoading(dir *assets.Directory, budget int) *Loading {
	if budget <= 0 {
		budget = DefaultLoadBudget
	}
	return &Loading{dir: dir, budget: budget}
}

func (l *Loading) Update() Exit {
	if l.err != nil {
		return ExitFail
	}
	done, err := l.dir.Update(l.budget)
	if err != nil {
		l.err = fmt.Errorf("screen: loading: %w", err)
		return ExitFail
	}
	if done {
		return ExitAssetsReady
	}
	return ExitNone
}

func (l *Loading) Progress() float64 {
	return l.dir.Progress()
}

func (l *Loading) Err() error {
	return l.err
}

// Draw shows the progress as text; fonts may not be resolved yet, so the
// renderer falls back to its built-in face.
func (l *Loading) Draw(c canvas.Canvas) {
	c.DrawText(canvas.Text{
		Font:     assets.RetroFont,
		Text:     fmt.Sprintf("Loading %3.0f%%", l.Progress()*100),
		Position: r2.Vec{X: 32, Y: 32},
		Tint:     canvas.White,
	})
}
