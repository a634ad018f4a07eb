// Stress test timing fixed physics steps with many settling boxes
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"grabsim/internal/config"
	"grabsim/internal/fixedstep"
	"grabsim/internal/physworld"
	"grabsim/internal/world"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	seconds := flag.Int("seconds", 5, "simulated seconds per run")
	flag.Parse()

	cfg := config.Default()
	quiet := log.New(io.Discard)

	// Test various object counts
	for _, count := range []int{10, 50, 100, 250, 500, 1000} {
		if err := run(cfg, count, *seconds, quiet); err != nil {
			fmt.Fprintf(os.Stderr, "%5d boxes: %v\n", count, err)
		}
	}
}

func run(cfg config.Config, count, seconds int, logger *log.Logger) error {
	phys := physworld.New(physworld.Options{
		Timestep: cfg.Physics.Timestep(),
		Gravity:  cfg.Physics.Gravity,
	}, logger)
	w := world.New(phys, cfg.Physics.ColliderMargin, logger)
	if _, err := w.SpawnFloor(world.FloorSpec{HalfExtents: rl.Vector3{X: 200, Y: 0.5, Z: 200}}); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(42)) // Consistent results
	// Spawn in a column, size scales with count to keep density reasonable
	spread := float32(10.0) + float32(count)/25.0
	for i := range count {
		_, err := w.SpawnBox(world.BoxSpec{
			Name: fmt.Sprintf("box%d", i),
			Position: rl.Vector3{
				X: rng.Float32()*spread - spread/2,
				Y: 1 + rng.Float32()*spread,
				Z: rng.Float32()*spread - spread/2,
			},
			Rotation:    rl.QuaternionFromEuler(rng.Float32(), rng.Float32(), rng.Float32()),
			HalfExtents: rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5},
		})
		if err != nil {
			return err
		}
	}

	driver := fixedstep.New(phys, w, cfg.Physics.MaxStepsPerFrame, logger)
	frames := seconds * cfg.Physics.TickRate
	start := time.Now()
	for range frames {
		driver.Advance(phys.Timestep())
	}
	elapsed := time.Since(start)
	perStep := elapsed / time.Duration(max(driver.TotalSteps(), 1))

	fmt.Printf("%5d boxes: %5d steps in %10v | %8v/step | %.1fx realtime\n",
		count, driver.TotalSteps(), elapsed.Round(time.Millisecond),
		perStep.Round(time.Microsecond),
		float64(phys.Timestep())/float64(perStep))
	return nil
}
