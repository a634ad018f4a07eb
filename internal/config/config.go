// Package config loads tunables for the simulation from a JSON file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Physics struct {
	TickRate         int        `json:"tickRate"` // steps per second
	MaxStepsPerFrame int        `json:"maxStepsPerFrame"`
	Gravity          rl.Vector3 `json:"gravity"`
	ColliderMargin   float32    `json:"colliderMargin"`
}

// Timestep is the duration of one physics step.
func (p Physics) Timestep() time.Duration {
	return time.Second / time.Duration(p.TickRate)
}

type Grab struct {
	MaxPickDistance   float32 `json:"maxPickDistance"`
	AngularGain       float32 `json:"angularGain"`
	RotateSensitivity float32 `json:"rotateSensitivity"` // degrees per pixel
}

type Player struct {
	WalkSpeed       float32    `json:"walkSpeed"`
	RunSpeed        float32    `json:"runSpeed"`
	EyeOffset       float32    `json:"eyeOffset"`
	BodyHalfHeight  float32    `json:"bodyHalfHeight"`
	BodyRadius      float32    `json:"bodyRadius"`
	LookSensitivity float32    `json:"lookSensitivity"` // degrees per pixel
	PitchLimit      float32    `json:"pitchLimit"`
	SpawnPosition   rl.Vector3 `json:"spawnPosition"`
}

type Window struct {
	Width     int32  `json:"width"`
	Height    int32  `json:"height"`
	TargetFPS int32  `json:"targetFPS"`
	Title     string `json:"title"`
}

type Config struct {
	Physics Physics `json:"physics"`
	Grab    Grab    `json:"grab"`
	Player  Player  `json:"player"`
	Window  Window  `json:"window"`
}

func Default() Config {
	return Config{
		Physics: Physics{
			TickRate:         60,
			MaxStepsPerFrame: 4,
			Gravity:          rl.Vector3{Y: -9.81},
			ColliderMargin:   0.01,
		},
		Grab: Grab{
			MaxPickDistance:   4.0,
			AngularGain:       50.0,
			RotateSensitivity: 0.2,
		},
		Player: Player{
			WalkSpeed:       3.0,
			RunSpeed:        6.0,
			EyeOffset:       0.9,
			BodyHalfHeight:  0.9,
			BodyRadius:      0.75,
			LookSensitivity: 0.2,
			PitchLimit:      0.8,
			SpawnPosition:   rl.Vector3{X: 8, Y: 0.9, Z: 4},
		},
		Window: Window{
			Width:     1280,
			Height:    720,
			TargetFPS: 144,
			Title:     "grabsim",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as indented JSON.
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c Config) Validate() error {
	switch {
	case c.Physics.TickRate <= 0:
		return fmt.Errorf("%w: physics.tickRate must be positive, got %d", ErrInvalid, c.Physics.TickRate)
	case c.Physics.MaxStepsPerFrame <= 0:
		return fmt.Errorf("%w: physics.maxStepsPerFrame must be positive, got %d", ErrInvalid, c.Physics.MaxStepsPerFrame)
	case c.Physics.ColliderMargin < 0:
		return fmt.Errorf("%w: physics.colliderMargin must not be negative", ErrInvalid)
	case c.Grab.MaxPickDistance <= 0:
		return fmt.Errorf("%w: grab.maxPickDistance must be positive", ErrInvalid)
	case c.Player.WalkSpeed < 0 || c.Player.RunSpeed < 0:
		return fmt.Errorf("%w: player speeds must not be negative", ErrInvalid)
	case c.Player.BodyHalfHeight <= 0 || c.Player.BodyRadius <= 0:
		return fmt.Errorf("%w: player body dimensions must be positive", ErrInvalid)
	case c.Physics.ColliderMargin >= min(c.Player.BodyRadius, c.Player.BodyHalfHeight):
		return fmt.Errorf("%w: physics.colliderMargin must be smaller than the player body", ErrInvalid)
	case c.Player.PitchLimit <= 0 || c.Player.PitchLimit >= 1:
		return fmt.Errorf("%w: player.pitchLimit must be in (0, 1), got %g", ErrInvalid, c.Player.PitchLimit)
	}
	return nil
}
