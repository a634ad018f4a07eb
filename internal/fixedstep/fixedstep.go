// Package fixedstep decouples the frame rate from the physics rate with a
// time accumulator.
package fixedstep

import (
	"time"

	"github.com/charmbracelet/log"
)

// DefaultMaxSteps bounds catch-up work per frame.
const DefaultMaxSteps = 4

// Stepper advances a simulation by one fixed increment.
type Stepper interface {
	Step()
	Timestep() time.Duration
}

// Syncer copies simulation state out after stepping.
type Syncer interface {
	SyncTransforms()
}

type Driver struct {
	stepper     Stepper
	syncer      Syncer
	maxSteps    int
	accumulator time.Duration
	totalSteps  uint64
	capped      uint64 // frames that hit maxSteps with time left over
	logger      *log.Logger
}

// New creates a driver. syncer may be nil; maxSteps <= 0 selects
// DefaultMaxSteps.
func New(stepper Stepper, syncer Syncer, maxSteps int, logger *log.Logger) *Driver {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Driver{
		stepper:  stepper,
		syncer:   syncer,
		maxSteps: maxSteps,
		logger:   logger,
	}
}

// Pending returns how many steps Advance(elapsed) would run, without
// changing any state.
func (d *Driver) Pending(elapsed time.Duration) int {
	dt := d.stepper.Timestep()
	if dt <= 0 {
		return 0
	}
	acc := d.accumulator
	if elapsed > 0 {
		acc += elapsed
	}
	return int(min(acc/dt, time.Duration(d.maxSteps)))
}

// Advance adds elapsed wall time and runs as many whole steps as fit, up to
// the per-frame bound. Leftover time stays in the accumulator. It returns
// the number of steps taken.
func (d *Driver) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		d.accumulator += elapsed
	}
	dt := d.stepper.Timestep()
	if dt <= 0 {
		return 0
	}

	steps := 0
	for d.accumulator >= dt && steps < d.maxSteps {
		d.stepper.Step()
		d.accumulator -= dt
		steps++
	}
	d.totalSteps += uint64(steps)

	if d.accumulator >= dt {
		d.capped++
		d.logger.Debug("physics behind", "backlog", d.accumulator, "steps", steps)
	}
	if d.syncer != nil {
		d.syncer.SyncTransforms()
	}
	return steps
}

// Accumulator returns the time not yet simulated.
func (d *Driver) Accumulator() time.Duration { return d.accumulator }

// Alpha is the fraction of a step left in the accumulator, clamped to 1.
func (d *Driver) Alpha() float32 {
	dt := d.stepper.Timestep()
	if dt <= 0 {
		return 0
	}
	a := float32(d.accumulator) / float32(dt)
	if a > 1 {
		return 1
	}
	return a
}

func (d *Driver) MaxSteps() int { return d.maxSteps }

func (d *Driver) TotalSteps() uint64 { return d.totalSteps }

// CappedFrames counts frames that stopped at the step bound.
func (d *Driver) CappedFrames() uint64 { return d.capped }
