package game

import (
	"fmt"
	"strings"

	"grabsim/internal/engine"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	colorPanel = rl.NewColor(24, 24, 32, 200)
	colorText  = rl.NewColor(220, 220, 230, 255)
	colorTune  = rl.NewColor(99, 102, 241, 255)
)

const (
	hudX     = 10
	hudWidth = 300
)

func setupHUDStyle() {
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTune))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorTune))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// StatusText describes what the player is holding.
func (g *Game) StatusText() string {
	held := g.Grab.Held()
	if held == nil {
		return "Idle"
	}
	d, _ := g.Grab.PickDistance()
	return fmt.Sprintf("Holding %s at %.2f", held.Name, d)
}

// MergeText lists the merge candidates, or "" when the sensor is off.
func (g *Game) MergeText() string {
	if !g.Merge.Active() {
		return ""
	}
	return "Merge: " + joinNames(g.Merge.Candidates())
}

func joinNames(objs []*engine.GameObject) string {
	if len(objs) == 0 {
		return "none"
	}
	names := make([]string, len(objs))
	for i, o := range objs {
		names[i] = o.Name
	}
	return strings.Join(names, ", ")
}

func (g *Game) DrawHUD() {
	rl.DrawRectangle(hudX-5, 5, hudWidth, 150, colorPanel)
	rl.DrawText("WASD move, Shift run, LMB grab, RMB rotate, E merge", hudX, 10, 10, colorText)
	rl.DrawText("Tab frees the cursor, F1 debug", hudX, 24, 10, colorText)
	rl.DrawFPS(hudX, 40)

	gui.Label(rl.Rectangle{X: hudX, Y: 62, Width: hudWidth - 10, Height: 18}, g.StatusText())
	if txt := g.MergeText(); txt != "" {
		gui.Label(rl.Rectangle{X: hudX, Y: 80, Width: hudWidth - 10, Height: 18}, txt)
	}

	gain := g.Grab.Config().AngularGain
	gain = gui.Slider(rl.Rectangle{X: hudX + 90, Y: 100, Width: 150, Height: 14},
		"Angular gain", fmt.Sprintf("%.0f", gain), gain, 1, 100)
	g.Grab.SetAngularGain(gain)

	walk := g.Walk.Config().WalkSpeed
	walk = gui.Slider(rl.Rectangle{X: hudX + 90, Y: 118, Width: 150, Height: 14},
		"Walk speed", fmt.Sprintf("%.1f", walk), walk, 0.5, 10)
	g.Walk.SetWalkSpeed(walk)

	debug := gui.CheckBox(rl.Rectangle{X: hudX, Y: 136, Width: 14, Height: 14}, "Debug", g.DebugMode)
	if debug != g.DebugMode {
		g.DebugMode = debug
		g.Renderer.ShowGrid = debug
	}

	if g.DebugMode {
		g.drawDebug()
	}
}

func (g *Game) drawDebug() {
	y := int32(165)
	line := func(format string, args ...any) {
		rl.DrawText(fmt.Sprintf(format, args...), hudX, y, 16, rl.Green)
		y += 20
	}
	cam := g.Camera.Transform.Position
	line("Camera:  (%.2f, %.2f, %.2f)", cam.X, cam.Y, cam.Z)
	line("Steps:   %d (capped frames %d)", g.Stepper.TotalSteps(), g.Stepper.CappedFrames())
	line("Backlog: %v", g.Stepper.Accumulator())
	line("Forces:  %d", g.World.Physics.ForceGeneratorCount())
	line("Update:  %.2f ms", g.updateMs)
	line("Draw:    %.2f ms", g.drawMs)
}
