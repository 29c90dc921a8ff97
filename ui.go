package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/gustfall/screen"
	"golang.org/x/image/font/basicfont"
)

var (
	panelColor  = color.NRGBA{A: 200}
	buttonColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	hoverColor  = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	textColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	reasonColor = color.NRGBA{R: 0xff, G: 0x80, B: 0x80, A: 0xff}
)

var choiceLabels = map[screen.Exit]string{
	screen.ExitPlay:    "Play",
	screen.ExitQuit:    "Quit",
	screen.ExitResume:  "Resume",
	screen.ExitRestart: "Restart",
}

// menuUI is the button overlay for one panel mode. Clicks are queued on the
// machine and take effect on its next Update.
type menuUI struct {
	ui     *ebitenui.UI
	reason *widget.Text
}

func newMenuUI(m *screen.Machine, mode screen.Mode, width, height int) *menuUI {
	panel := m.Panel(mode)

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	btnImg := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(buttonColor),
		Hover:   imageui.NewNineSliceColor(hoverColor),
		Pressed: imageui.NewNineSliceColor(hoverColor),
	}
	btnText := &widget.ButtonTextColor{Idle: textColor}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	box := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width/3, height/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	box.AddChild(widget.NewText(
		widget.TextOpts.Text(panel.Title, &face, textColor),
		widget.TextOpts.WidgetOpts(center),
	))

	for _, exit := range panel.Choices {
		box.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text(choiceLabels[exit], &face, btnText),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				m.Choose(exit)
			}),
		))
	}

	reason := widget.NewText(
		widget.TextOpts.Text("", &face, reasonColor),
		widget.TextOpts.WidgetOpts(center),
	)
	box.AddChild(reason)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(box)
	return &menuUI{ui: &ebitenui.UI{Container: root}, reason: reason}
}

// newMenuUIs builds one overlay per panel mode.
func newMenuUIs(m *screen.Machine, width, height int) map[screen.Mode]*menuUI {
	uis := make(map[screen.Mode]*menuUI)
	for _, mode := range []screen.Mode{screen.ModeMenu, screen.ModePause, screen.ModeVictory, screen.ModeDefeat} {
		uis[mode] = newMenuUI(m, mode, width, height)
	}
	return uis
}

func (u *menuUI) update(reason error) {
	u.reason.Label = ""
	if reason != nil {
		u.reason.Label = reason.Error()
	}
	u.ui.Update()
}
