package system

import (
	"github.com/milk9111/gustfall/canvas"
	"github.com/milk9111/gustfall/ecs"
	"github.com/milk9111/gustfall/ecs/entity"
)

// Simulation runs one level's systems in tick order: input, controllers,
// physics, contacts, queued insertions, then presentation.
type Simulation struct {
	Input  *InputSystem
	Render *RenderSystem

	scheduler *ecs.Scheduler
}

func NewSimulation(env *entity.Env, source InputSource) *Simulation {
	pw := env.Level.Physics()
	s := &Simulation{
		Input:  NewInputSystem(source),
		Render: NewRenderSystem(env.Textures),
	}
	s.scheduler = ecs.NewScheduler(
		s.Input,
		NewClockSystem(),
		NewTimerSystem(),
		NewPlayerControllerSystem(),
		NewUmbrellaSystem(),
		NewWindSystem(),
		NewLightningSystem(),
		NewMovingPlatformSystem(),
		NewBirdSystem(pw),
		NewNestSystem(env),
		NewPhysicsSystem(env.Level),
		NewContactSystem(pw),
		NewFlushSystem(env.Level),
		NewAnimationSystem(),
		NewCameraSystem(),
	)
	return s
}

// Step advances the world by one fixed tick.
func (s *Simulation) Step(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.scheduler.Update(w)
}

func (s *Simulation) Draw(w *ecs.World, c canvas.Canvas) {
	if s == nil {
		return
	}
	s.Render.Draw(w, c)
}
