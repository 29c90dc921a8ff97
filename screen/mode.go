// Package screen drives the top-level modes of the game: asset loading, the
// menu, play and the pause, victory and defeat overlays.
package screen

import "github.com/milk9111/gustfall/canvas"

type Mode int

const (
	ModeLoading Mode = iota
	ModeMenu
	ModePlay
	ModePause
	ModeVictory
	ModeDefeat
	ModeTerminated
)

var modeNames = [...]string{
	ModeLoading:    "loading",
	ModeMenu:       "menu",
	ModePlay:       "play",
	ModePause:      "pause",
	ModeVictory:    "victory",
	ModeDefeat:     "defeat",
	ModeTerminated: "terminated",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// Exit is the code a screen hands back when it wants to leave.
type Exit int

const (
	ExitNone Exit = iota
	ExitAssetsReady
	ExitPlay
	ExitQuit
	ExitPause
	ExitVictory
	ExitFail
	ExitResume
	ExitRestart
)

var exitNames = [...]string{
	ExitNone:        "none",
	ExitAssetsReady: "assets_ready",
	ExitPlay:        "play",
	ExitQuit:        "quit",
	ExitPause:       "pause",
	ExitVictory:     "victory",
	ExitFail:        "fail",
	ExitResume:      "resume",
	ExitRestart:     "restart",
}

func (e Exit) String() string {
	if e < 0 || int(e) >= len(exitNames) {
		return "unknown"
	}
	return exitNames[e]
}

// Screen is one mode's controller. Update runs once per frame and returns
// ExitNone to stay.
type Screen interface {
	Update() Exit
	Draw(c canvas.Canvas)
}
