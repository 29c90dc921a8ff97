package level

import (
	"errors"
	"testing"

	"github.com/milk9111/gustfall/common"
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"gonum.org/v1/gonum/spatial/r2"
)

func newContainer(t *testing.T, debug bool) *Container {
	t.Helper()
	c := New(nil, Options{Bounds: common.Rect{Width: 10, Height: 10}, Gravity: common.DefaultGravity, Debug: debug})
	t.Cleanup(c.Dispose)
	return c
}

func addBlock(t *testing.T, c *Container, name string, pos r2.Vec) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(c.World())
	o := &component.Obstacle{
		Name:     name,
		Body:     component.BodyStatic,
		Shape:    component.ShapeBox,
		Width:    1,
		Height:   1,
		Position: pos,
	}
	if err := ecs.Add(c.World(), e, component.ObstacleComponent.Kind(), o); err != nil {
		t.Fatalf("add obstacle: %v", err)
	}
	return e
}

func TestNewRecordsLevelBounds(t *testing.T) {
	c := newContainer(t, false)
	if c.DrawScale() != (r2.Vec{X: 1, Y: 1}) {
		t.Fatalf("draw scale = %v, want (1, 1)", c.DrawScale())
	}
	_, lb, ok := ecs.First(c.World(), component.LevelBoundsComponent.Kind())
	if !ok || lb.Bounds != c.Bounds() {
		t.Fatalf("level bounds entity = %+v, %v", lb, ok)
	}
}

func TestAddObjectBounds(t *testing.T) {
	cases := []struct {
		name string
		pos  r2.Vec
		want error
	}{
		{"inside", r2.Vec{X: 5, Y: 5}, nil},
		{"on edge", r2.Vec{X: 10, Y: 0}, nil},
		{"left of bounds", r2.Vec{X: -0.5, Y: 5}, ErrOutOfBounds},
		{"above bounds", r2.Vec{X: 5, Y: 10.5}, ErrOutOfBounds},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newContainer(t, false)
			e := addBlock(t, c, tc.name, tc.pos)
			err := c.AddObject(e)
			if !errors.Is(err, tc.want) {
				t.Fatalf("AddObject = %v, want %v", err, tc.want)
			}
			o, _ := ecs.Get(c.World(), e, component.ObstacleComponent.Kind())
			if o.Active() != (tc.want == nil) {
				t.Fatalf("active = %v", o.Active())
			}
		})
	}
}

func TestAddObjectOutOfBoundsPanicsInDebug(t *testing.T) {
	c := newContainer(t, true)
	e := addBlock(t, c, "stray", r2.Vec{X: 20, Y: 20})
	defer func() {
		if recover() == nil {
			t.Fatalf("debug container accepted an out-of-bounds object")
		}
	}()
	_ = c.AddObject(e)
}

func TestFlushInsertsInQueueOrder(t *testing.T) {
	c := newContainer(t, false)
	first := addBlock(t, c, "first", r2.Vec{X: 1, Y: 1})
	stray := addBlock(t, c, "stray", r2.Vec{X: 50, Y: 1})
	second := addBlock(t, c, "second", r2.Vec{X: 2, Y: 1})
	c.AddQueuedObject(first)
	c.AddQueuedObject(stray)
	c.AddQueuedObject(second)

	if s := c.Snapshot(); s.Queued != 3 || s.Objects != 0 {
		t.Fatalf("before flush: %+v", s)
	}
	if err := c.Flush(); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("Flush = %v, want out of bounds", err)
	}
	objects := c.Objects()
	if len(objects) != 2 || objects[0] != first || objects[1] != second {
		t.Fatalf("objects = %v, want [%v %v]", objects, first, second)
	}
	if ecs.IsAlive(c.World(), stray) {
		t.Fatalf("rejected object still alive")
	}
	if s := c.Snapshot(); s.Queued != 0 {
		t.Fatalf("queue not drained: %+v", s)
	}
}

func TestDisposeRunsOnce(t *testing.T) {
	c := newContainer(t, false)
	e := addBlock(t, c, "block", r2.Vec{X: 1, Y: 1})
	if err := c.AddObject(e); err != nil {
		t.Fatalf("AddObject: %v", err)
	}
	c.Dispose()
	c.Dispose()
	if !c.Disposed() || !c.Physics().Disposed() {
		t.Fatalf("container not disposed")
	}
	if ecs.IsAlive(c.World(), e) || len(c.Objects()) != 0 {
		t.Fatalf("objects survived dispose")
	}
	if err := c.AddObject(addBlock(t, c, "late", r2.Vec{X: 1, Y: 1})); !errors.Is(err, ErrDisposed) {
		t.Fatalf("AddObject after dispose = %v, want %v", err, ErrDisposed)
	}
}
