package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/gustfall/ecs/component"
)

const stickDeadzone = 0.2

// keyboardInput polls the keyboard and the first standard gamepad.
//
//	A/D, left stick      walk
//	Space, bottom face   jump
//	E, left face         open or close the umbrella
//	Left/Right, R stick  tilt the umbrella
//	Shift, right bumper  boost
type keyboardInput struct{}

func (keyboardInput) Poll() component.Input {
	var in component.Input

	if ebiten.IsKeyPressed(ebiten.KeyA) {
		in.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		in.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.Rotate -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.Rotate += 1
	}
	in.Jump = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.ToggleUmbrella = inpututil.IsKeyJustPressed(ebiten.KeyE)
	in.Boost = inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || inpututil.IsKeyJustPressed(ebiten.KeyShiftRight)

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		if x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal); math.Abs(x) > stickDeadzone {
			in.MoveX = x
		}
		if x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal); math.Abs(x) > stickDeadzone {
			in.Rotate = x
		}
		in.Jump = in.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.JumpPressed = in.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.ToggleUmbrella = in.ToggleUmbrella || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		in.Boost = in.Boost || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontTopRight)
	}
	return in
}

// pausePressed reports the pause toggle: Escape or the gamepad start button.
func pausePressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return true
	}
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight) {
			return true
		}
	}
	return false
}
