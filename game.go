package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gustfall/assets"
	"github.com/milk9111/gustfall/config"
	"github.com/milk9111/gustfall/levels"
	"github.com/milk9111/gustfall/render"
	"github.com/milk9111/gustfall/screen"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"
)

// Game adapts the screen machine to ebiten's loop. Ebiten calls Update at
// the configured TPS, one simulation tick each.
type Game struct {
	logger  *zap.Logger
	cfg     config.Config
	machine *screen.Machine
	canvas  *render.Canvas
	menus   map[screen.Mode]*menuUI

	source  levels.Source
	watcher *levels.Watcher
}

func NewGame(logger *zap.Logger, cfg config.Config, dir *assets.Directory, source levels.Source, watcher *levels.Watcher) *Game {
	c := render.NewCanvas(logger, render.NewTextures(dir), cfg.StandardZoom)
	play := screen.NewPlay(logger, screen.PlayOptions{
		Assets:    dir,
		Source:    source,
		Input:     keyboardInput{},
		DrawScale: r2.Vec{X: cfg.DrawScale, Y: cfg.DrawScale},
		Debug:     cfg.Debug,
		Limiter:   cfg.AnomalyLog.Limiter(),
	})
	machine := screen.NewMachine(logger, screen.NewLoading(dir, cfg.LoadBudget), play, c)
	return &Game{
		logger:  logger,
		cfg:     cfg,
		machine: machine,
		canvas:  c,
		menus:   newMenuUIs(machine, cfg.Width, cfg.Height),
		source:  source,
		watcher: watcher,
	}
}

func (g *Game) Update() error {
	g.drainWatcher()

	switch g.machine.Mode() {
	case screen.ModePlay:
		if pausePressed() {
			g.machine.Choose(screen.ExitPause)
		}
	case screen.ModePause:
		if pausePressed() {
			g.machine.Choose(screen.ExitResume)
		}
	}
	if menu := g.menus[g.machine.Mode()]; menu != nil {
		menu.update(g.machine.Reason())
	}

	g.machine.Update()
	if g.machine.Terminated() {
		if err := g.machine.Reason(); err != nil {
			return err
		}
		return ebiten.Termination
	}
	return nil
}

// drainWatcher marks the level source dirty on file changes so the next
// play start reloads it. It never blocks the tick.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	file, ok := g.source.(*levels.FileSource)
	if !ok {
		return
	}
	for {
		select {
		case name := <-g.watcher.Events:
			file.MarkDirty()
			g.logger.Info("level changed, reloading on next start", zap.String("level", name))
		case err := <-g.watcher.Errors:
			g.logger.Warn("level watch", zap.Error(err))
		default:
			return
		}
	}
}

func (g *Game) Draw(screenImg *ebiten.Image) {
	g.canvas.Begin(screenImg)
	g.machine.Draw(g.canvas)

	if g.cfg.Debug {
		g.drawDebug()
	}
	if menu := g.menus[g.machine.Mode()]; menu != nil {
		menu.ui.Draw(screenImg)
	}
}

func (g *Game) drawDebug() {
	play := g.machine.Play()
	if g.machine.Mode() != screen.ModePlay || !play.Started() {
		return
	}
	g.canvas.DrawPhysics(play.Container().Physics().Space(), play.Container().DrawScale())

	s := play.Snapshot()
	g.canvas.DebugText(fmt.Sprintf("FPS: %.1f  tick: %d\nground: %d  wind: %.2f  cooldown: %.2f\nanomalies: %d",
		ebiten.ActualFPS(), s.Tick, s.GroundCount, r2.Norm(s.WindForce), s.Cooldown,
		play.Container().Physics().Anomalies()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

func (g *Game) Dispose() {
	g.machine.Dispose()
}
