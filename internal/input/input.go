// Package input captures one frame of user input as a plain value so the
// simulation can be driven without a window.
package input

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Named movement axes.
const (
	AxisMoveX = "move_x"
	AxisMoveZ = "move_z"
)

type Button int

const (
	ButtonPick Button = iota
	ButtonRotate
	ButtonRun
	ButtonMerge
	numButtons
)

func (b Button) String() string {
	switch b {
	case ButtonPick:
		return "pick"
	case ButtonRotate:
		return "rotate"
	case ButtonRun:
		return "run"
	case ButtonMerge:
		return "merge"
	default:
		return "unknown"
	}
}

type ButtonState struct {
	Down     bool
	Pressed  bool // went down this frame
	Released bool // went up this frame
}

// Snapshot is the input for a single frame.
type Snapshot struct {
	Axes    map[string]float32
	Buttons [numButtons]ButtonState
	Pointer rl.Vector2 // pointer motion in pixels since the last frame
	Focused bool
}

// Axis returns the named axis clamped to [-1, 1]; unknown and NaN axes are 0.
func (s Snapshot) Axis(name string) float32 {
	v := s.Axes[name]
	if math.IsNaN(float64(v)) {
		return 0
	}
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func (s Snapshot) Down(b Button) bool     { return s.Buttons[b].Down }
func (s Snapshot) Pressed(b Button) bool  { return s.Buttons[b].Pressed }
func (s Snapshot) Released(b Button) bool { return s.Buttons[b].Released }

// Tracker derives press and release edges from successive down states.
type Tracker struct {
	prev [numButtons]bool
}

// Next builds a snapshot from the buttons currently held.
func (t *Tracker) Next(axes map[string]float32, pointer rl.Vector2, focused bool, down ...Button) Snapshot {
	s := Snapshot{Axes: axes, Pointer: pointer, Focused: focused}
	var cur [numButtons]bool
	for _, b := range down {
		cur[b] = true
	}
	for b := range numButtons {
		s.Buttons[b] = ButtonState{
			Down:     cur[b],
			Pressed:  cur[b] && !t.prev[b],
			Released: !cur[b] && t.prev[b],
		}
	}
	t.prev = cur
	return s
}
