package level

import (
	"errors"
	"fmt"

	"github.com/milk9111/gustfall/common"
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"github.com/milk9111/gustfall/physics"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	ErrOutOfBounds = errors.New("level: object out of bounds")
	ErrDisposed    = errors.New("level: container disposed")
	ErrNoObstacle  = errors.New("level: entity has no obstacle")
)

// Options configures a new Container.
type Options struct {
	Bounds    common.Rect
	DrawScale r2.Vec
	Gravity   float64
	// Debug panics on out-of-bounds insertions. Otherwise AddObject returns
	// ErrOutOfBounds and callers log and skip the object.
	Debug   bool
	Limiter *rate.Limiter
}

// Container owns the entity world and the physics world for one play
// session. Objects become physical only through AddObject or Flush.
type Container struct {
	logger  *zap.Logger
	world   *ecs.World
	physics *physics.World
	bounds  common.Rect
	scale   r2.Vec
	debug   bool

	objects  []ecs.Entity
	queue    []ecs.Entity
	disposed bool
}

// Snapshot summarises container state for the HUD and tests.
type Snapshot struct {
	Objects   int
	Queued    int
	Anomalies int
	Disposed  bool
}

func New(logger *zap.Logger, opts Options) *Container {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DrawScale == (r2.Vec{}) {
		opts.DrawScale = r2.Vec{X: 1, Y: 1}
	}
	c := &Container{
		logger:  logger,
		world:   ecs.NewWorld(),
		physics: physics.NewWorld(logger, r2.Vec{Y: opts.Gravity}, opts.Bounds, opts.Limiter),
		bounds:  opts.Bounds,
		scale:   opts.DrawScale,
		debug:   opts.Debug,
	}

	e := ecs.CreateEntity(c.world)
	_ = ecs.Add(c.world, e, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Bounds:    opts.Bounds,
		DrawScale: opts.DrawScale,
	})
	_ = ecs.Add(c.world, e, component.ClockComponent.Kind(), &component.Clock{})
	return c
}

func (c *Container) World() *ecs.World {
	return c.world
}

func (c *Container) Physics() *physics.World {
	return c.physics
}

func (c *Container) Bounds() common.Rect {
	return c.bounds
}

func (c *Container) DrawScale() r2.Vec {
	return c.scale
}

func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// InBounds reports whether p lies inside the level rectangle, edges included.
func (c *Container) InBounds(p r2.Vec) bool {
	return c.bounds.Contains(p)
}

// AddObject activates e's obstacle immediately. Player entities also get a
// foot sensor.
func (c *Container) AddObject(e ecs.Entity) error {
	if c.disposed {
		return ErrDisposed
	}
	o, ok := ecs.Get(c.world, e, component.ObstacleComponent.Kind())
	if !ok {
		return fmt.Errorf("%w: %v", ErrNoObstacle, e)
	}
	if !c.InBounds(o.Position) {
		if c.debug {
			panic(fmt.Sprintf("level: %s at (%.2f, %.2f) outside %+v", o.Name, o.Position.X, o.Position.Y, c.bounds))
		}
		return fmt.Errorf("%w: %s at (%.2f, %.2f)", ErrOutOfBounds, o.Name, o.Position.X, o.Position.Y)
	}
	if err := c.physics.Activate(uint64(e), o); err != nil {
		return err
	}
	if ecs.Has(c.world, e, component.PlayerComponent.Kind()) {
		if err := c.physics.AttachFootSensor(uint64(e), o); err != nil {
			c.physics.Deactivate(o)
			return err
		}
	}
	c.objects = append(c.objects, e)
	return nil
}

// AddQueuedObject defers insertion of e until the next Flush.
func (c *Container) AddQueuedObject(e ecs.Entity) {
	if c.disposed {
		return
	}
	c.queue = append(c.queue, e)
}

// Flush inserts queued objects in queue order. Objects that fail to insert
// are destroyed and their errors joined.
func (c *Container) Flush() error {
	if c.disposed || len(c.queue) == 0 {
		return nil
	}
	queue := c.queue
	c.queue = nil

	var errs []error
	for _, e := range queue {
		if !ecs.IsAlive(c.world, e) {
			continue
		}
		if err := c.AddObject(e); err != nil {
			c.logger.Warn("level: dropping queued object", zap.Stringer("entity", e), zap.Error(err))
			ecs.DestroyEntity(c.world, e)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Objects lists active objects in insertion order.
func (c *Container) Objects() []ecs.Entity {
	return c.objects
}

// Dispose tears down the physics world and forgets every object. Later calls
// are no-ops.
func (c *Container) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.physics.Dispose()
	for _, e := range c.objects {
		ecs.DestroyEntity(c.world, e)
	}
	for _, e := range c.queue {
		ecs.DestroyEntity(c.world, e)
	}
	c.objects = nil
	c.queue = nil
	c.logger.Debug("level: disposed")
}

func (c *Container) Disposed() bool {
	return c.disposed
}

func (c *Container) Snapshot() Snapshot {
	return Snapshot{
		Objects:   len(c.objects),
		Queued:    len(c.queue),
		Anomalies: c.physics.Anomalies(),
		Disposed:  c.disposed,
	}
}
