package system

import (
	"github.com/milk9111/gustfall/common"
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/component"
	"gonum.org/v1/gonum/spatial/r2"
)

// CameraSystem eases each camera toward its target and pulls the zoom out
// as the target speeds up.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.CameraComponent.Kind(), func(e ecs.Entity, cam *component.Camera) {
		target, ok := ecs.Get(w, ecs.Entity(cam.Target), component.ObstacleComponent.Kind())
		if !ok {
			return
		}
		pos := target.Center()
		cam.Position = r2.Vec{
			X: common.Lerp(cam.Position.X, pos.X, cam.Smoothness),
			Y: common.Lerp(cam.Position.Y, pos.Y, cam.Smoothness),
		}
		cam.Zoom = common.Lerp(cam.Zoom, CameraZoom(r2.Norm(target.Velocity()), cam.ZoomSpeed), cam.Smoothness)
	})
}

// CameraZoom is the resting zoom for a target moving at speed.
func CameraZoom(speed, zoomSpeed float64) float64 {
	if zoomSpeed <= 0 {
		return common.StandardZoom
	}
	t := common.Clamp(speed/zoomSpeed, 0, 1)
	return common.Lerp(common.StandardZoom, common.MinZoom, t)
}
