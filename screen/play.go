package screen

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/milk9111/gustfall/assets"
	"github.com/milk9111/gustfall/canvas"
	"github.com/milk9111/gustfall/common"
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/entity"
	"github.com/milk9111/gustfall/ecs/system"
	"github.com/milk9111/gustfall/level"
	"github.com/milk9111/gustfall/levels"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gonum.org/v1/gonum/spatial/r2"
)

type PlayOptions struct {
	Assets    *assets.Directory
	Source    levels.Source
	Input     system.InputSource
	DrawScale r2.Vec
	Debug     bool
	// Limiter rate-limits physics anomaly logs across sessions.
	Limiter *rate.Limiter
}

// Play owns one play session: the level container, its entities and the
// per-tick simulation. Reset throws the session away and builds a new one.
type Play struct {
	logger *zap.Logger
	opts   PlayOptions

	session   string
	container *level.Container
	sim       *system.Simulation
	lvl       entity.Level
}

func NewPlay(logger *zap.Logger, opts PlayOptions) *Play {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Source == nil {
		opts.Source = levels.Sample()
	}
	return &Play{logger: logger, opts: opts}
}

// Reset loads the level and constants and populates a fresh container.
// On error the previous session is already gone and Play stays stopped.
func (p *Play) Reset() error {
	p.Dispose()

	if p.opts.Assets == nil {
		return fmt.Errorf("screen: reset: %w", assets.ErrAssetMissing)
	}
	k, err := p.opts.Assets.Constants()
	if err != nil {
		return fmt.Errorf("screen: reset: %w", err)
	}
	d, err := p.opts.Source.Load()
	if err != nil {
		return fmt.Errorf("screen: reset: %w", err)
	}

	session := uuid.NewString()
	logger := p.logger.With(zap.String("session", session), zap.String("level", p.opts.Source.Name()))
	c := level.New(logger, level.Options{
		Bounds:    common.Rect{Width: d.Width, Height: d.Height},
		DrawScale: p.opts.DrawScale,
		Gravity:   k.Defaults.Gravity,
		Debug:     p.opts.Debug,
		Limiter:   p.opts.Limiter,
	})
	env := &entity.Env{Level: c, Textures: p.opts.Assets, Constants: k}
	lvl, err := entity.Populate(env, d)
	if err != nil {
		c.Dispose()
		return fmt.Errorf("screen: reset: %w", err)
	}

	p.session = session
	p.container = c
	p.lvl = lvl
	p.sim = system.NewSimulation(env, p.opts.Input)
	logger.Info("play started", zap.Int("objects", len(c.Objects())))
	return nil
}

func (p *Play) Started() bool {
	return p.container != nil && !p.container.Disposed()
}

func (p *Play) Session() string {
	return p.session
}

func (p *Play) World() *ecs.World {
	if p.container == nil {
		return nil
	}
	return p.container.World()
}

func (p *Play) Container() *level.Container {
	return p.container
}

func (p *Play) Level() entity.Level {
	return p.lvl
}

// Update runs one tick and turns victory or defeat into an exit.
func (p *Play) Update() Exit {
	if !p.Started() {
		return ExitNone
	}
	w := p.container.World()
	p.sim.Step(w)

	exit := ExitNone
	for _, ev := range w.Events().Drain() {
		switch ev.Type {
		case ecs.EventDamage:
			p.container.Logger().Debug("player hit", zap.Any("damage", ev.Data))
		case ecs.EventSpawn:
			p.container.Logger().Debug("bird hatched", zap.Stringer("entity", ev.Entity))
		case ecs.EventVictory:
			if exit == ExitNone {
				p.container.Logger().Info("goal reached")
				exit = ExitVictory
			}
		case ecs.EventDefeat:
			if exit == ExitNone {
				p.container.Logger().Info("player defeated")
				exit = ExitFail
			}
		}
	}
	return exit
}

func (p *Play) Draw(c canvas.Canvas) {
	if !p.Started() {
		return
	}
	p.sim.Draw(p.container.World(), c)
}

// Dispose tears the session down. It is safe to call more than once.
func (p *Play) Dispose() {
	if p.container == nil {
		return
	}
	p.container.Dispose()
	p.container = nil
	p.sim = nil
	p.lvl = entity.Level{}
}
