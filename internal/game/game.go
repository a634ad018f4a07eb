// Package game wires the simulation together and runs the frame loop.
package game

import (
	"fmt"
	"time"

	"grabsim/internal/camera"
	"grabsim/internal/components"
	"grabsim/internal/config"
	"grabsim/internal/engine"
	"grabsim/internal/fixedstep"
	"grabsim/internal/grab"
	"grabsim/internal/input"
	"grabsim/internal/locomotion"
	"grabsim/internal/merge"
	"grabsim/internal/physworld"
	"grabsim/internal/world"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type Game struct {
	Config   config.Config
	World    *world.World
	Self     *engine.GameObject
	Camera   *engine.GameObject
	Look     *camera.MouseLook
	Grab     *grab.Manipulator
	Merge    *merge.Sensor
	Walk     *locomotion.Driver
	Stepper  *fixedstep.Driver
	Renderer *world.Renderer
	Bindings input.Bindings

	DebugMode bool

	logger *log.Logger
	frames uint64

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

// New builds the physics world with gravity already applied, then populates
// the demo scene. No step runs until the first frame.
func New(cfg config.Config, logger *log.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}

	phys := physworld.New(physworld.Options{
		Timestep: cfg.Physics.Timestep(),
		Gravity:  cfg.Physics.Gravity,
	}, logger.WithPrefix("physics"))
	w := world.New(phys, cfg.Physics.ColliderMargin, logger.WithPrefix("world"))

	g := &Game{
		Config:   cfg,
		World:    w,
		Look:     camera.NewMouseLook(cfg.Player.LookSensitivity, cfg.Player.PitchLimit),
		Grab:     grab.NewManipulator(grabConfig(cfg.Grab), w, logger.WithPrefix("grab")),
		Merge:    merge.NewSensor(w, logger.WithPrefix("merge")),
		Walk:     locomotion.New(locomotion.Config{WalkSpeed: cfg.Player.WalkSpeed, RunSpeed: cfg.Player.RunSpeed}, phys, logger),
		Stepper:  fixedstep.New(phys, w, cfg.Physics.MaxStepsPerFrame, logger),
		Renderer: world.NewRenderer(),
		Bindings: input.DefaultBindings(),
		logger:   logger,
	}
	if err := g.populate(); err != nil {
		return nil, err
	}
	logger.Info("world populated", "objects", len(w.Scene.GameObjects), "gravity", cfg.Physics.Gravity)
	return g, nil
}

func grabConfig(c config.Grab) grab.Config {
	return grab.Config{
		MaxPickDistance:   c.MaxPickDistance,
		AngularGain:       c.AngularGain,
		RotateSensitivity: c.RotateSensitivity,
	}
}

// CameraPose returns the viewpoint's current pose.
func (g *Game) CameraPose() physworld.Pose {
	return physworld.NewPose(g.Camera.Transform.Position, g.Camera.Transform.Rotation)
}

// Frames returns how many frames have run.
func (g *Game) Frames() uint64 { return g.frames }

// Frame runs one frame of simulation from an input snapshot. Commands are
// issued before the physics steps and poses are read back after them. The
// held object's velocity is sized for the time those steps simulate, not the
// frame duration.
func (g *Game) Frame(elapsed time.Duration, in input.Snapshot) {
	rotating := g.Grab.Holding() && in.Down(input.ButtonRotate)
	if in.Focused && !rotating {
		g.Camera.Transform.Rotation = g.Look.Rotate(g.Camera.Transform.Rotation, in.Pointer)
	}

	pose := g.CameraPose()
	steps := g.Stepper.Pending(elapsed)
	simulated := time.Duration(steps) * g.World.Physics.Timestep()
	g.Grab.Update(pose, in, float32(simulated.Seconds()))
	g.Merge.Update(pose, in)
	g.Walk.Command(g.Self, pose.Rotation, in)

	g.Stepper.Advance(elapsed)

	g.Walk.SyncCamera(g.Self, g.Camera)
	g.World.DispatchCollisions()
	g.World.Scene.Update(float32(elapsed.Seconds()))
	g.frames++
}

func (g *Game) Run() {
	win := g.Config.Window
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(win.Width, win.Height, win.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(win.TargetFPS)
	rl.DisableCursor()
	setupHUDStyle()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

// Update polls the window and advances one frame.
func (g *Game) Update() {
	updateStart := time.Now()

	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
		g.Renderer.ShowGrid = g.DebugMode
	}
	// Tab frees the cursor for the HUD. Input is unfocused meanwhile.
	if rl.IsKeyPressed(rl.KeyTab) {
		if rl.IsCursorHidden() {
			rl.EnableCursor()
		} else {
			rl.DisableCursor()
		}
	}

	elapsed := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
	g.Frame(elapsed, input.Poll(g.Bindings))

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (g *Game) Draw() {
	cam := engine.GetComponent[*components.Camera](g.Camera)
	if cam == nil {
		return
	}

	rl.BeginDrawing()
	drawStart := time.Now()
	g.Renderer.Draw(g.World.Scene, cam.GetRaylibCamera())
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawHUD()
	rl.EndDrawing()
}
