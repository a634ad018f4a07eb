package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	"grabsim/internal/config"
	"grabsim/internal/game"

	"github.com/charmbracelet/log"
)

func main() {
	configPath := flag.String("config", "grabsim.json", "path to the JSON config file")
	debug := flag.Bool("debug", false, "enable debug logging and the debug overlay")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "grabsim",
	})
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}

	// Resolve relative config paths next to the executable for deployed
	// builds. "go run" binaries live in a go-build temp directory.
	if execPath, err := os.Executable(); err == nil && !filepath.IsAbs(*configPath) {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			*configPath = filepath.Join(execDir, *configPath)
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load config", "path", *configPath, "err", err)
	}
	logger.Info("config loaded", "path", *configPath, "tickRate", cfg.Physics.TickRate)

	g, err := game.New(cfg, logger)
	if err != nil {
		logger.Fatal("start", "err", err)
	}
	g.DebugMode = *debug
	g.Renderer.ShowGrid = *debug
	g.Run()
}
