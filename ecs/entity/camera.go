package entity

import (
	"github.com/milk9111/gustfall/common"
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	cameraSmoothness = 0.15
	cameraZoomSpeed  = 8
)

// NewCamera builds a camera following target, starting at pos.
func NewCamera(env *Env, target ecs.Entity, pos r2.Vec) (ecs.Entity, error) {
	b := newBuilder(env, "camera")
	with(b, component.CameraComponent.Kind(), &component.Camera{
		Target:     uint64(target),
		Position:   pos,
		Zoom:       common.StandardZoom,
		Smoothness: cameraSmoothness,
		ZoomSpeed:  cameraZoomSpeed,
	})
	return b.done()
}
