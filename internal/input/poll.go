package input

import rl "github.com/gen2brain/raylib-go/raylib"

// Bindings maps keys and mouse buttons onto axes and buttons.
type Bindings struct {
	Forward, Back, Left, Right int32
	Run, Merge                 int32
	Pick, Rotate               rl.MouseButton
}

func DefaultBindings() Bindings {
	return Bindings{
		Forward: rl.KeyW,
		Back:    rl.KeyS,
		Left:    rl.KeyA,
		Right:   rl.KeyD,
		Run:     rl.KeyLeftShift,
		Merge:   rl.KeyE,
		Pick:    rl.MouseButtonLeft,
		Rotate:  rl.MouseButtonRight,
	}
}

// Poll reads the window's input state. The view looks along -Z, so forward
// is a negative move_z.
func Poll(b Bindings) Snapshot {
	var mx, mz float32
	if rl.IsKeyDown(b.Right) {
		mx++
	}
	if rl.IsKeyDown(b.Left) {
		mx--
	}
	if rl.IsKeyDown(b.Back) {
		mz++
	}
	if rl.IsKeyDown(b.Forward) {
		mz--
	}

	s := Snapshot{
		Axes:    map[string]float32{AxisMoveX: mx, AxisMoveZ: mz},
		Pointer: rl.GetMouseDelta(),
		Focused: rl.IsWindowFocused() && rl.IsCursorHidden(),
	}
	s.Buttons[ButtonPick] = mouseState(b.Pick)
	s.Buttons[ButtonRotate] = mouseState(b.Rotate)
	s.Buttons[ButtonRun] = keyState(b.Run)
	s.Buttons[ButtonMerge] = keyState(b.Merge)
	return s
}

func mouseState(btn rl.MouseButton) ButtonState {
	return ButtonState{
		Down:     rl.IsMouseButtonDown(btn),
		Pressed:  rl.IsMouseButtonPressed(btn),
		Released: rl.IsMouseButtonReleased(btn),
	}
}

func keyState(key int32) ButtonState {
	return ButtonState{
		Down:     rl.IsKeyDown(key),
		Pressed:  rl.IsKeyPressed(key),
		Released: rl.IsKeyReleased(key),
	}
}
