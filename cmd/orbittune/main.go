// Package main opens the camera tuning window: the scene wireframe with an
// ImGui panel for live settings edits.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitcam/internal/config"
	"github.com/Faultbox/orbitcam/internal/logger"
	"github.com/Faultbox/orbitcam/internal/sim"
	"github.com/Faultbox/orbitcam/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	for _, note := range cfg.Clamp() {
		logger.Warn("config adjusted", zap.String("change", note))
	}

	var scenario *sim.Scenario
	if cfg.Simulation.Scenario != "" {
		scenario, err = sim.LoadScenario(cfg.Simulation.Scenario)
		if err != nil {
			logger.Error("failed to load scenario", zap.Error(err))
			os.Exit(1)
		}
	}

	t, err := viewer.NewTuner(cfg, scenario, logger.Named("tuner"))
	if err != nil {
		logger.Error("failed to create tuner", zap.Error(err))
		os.Exit(1)
	}
	defer t.Close()

	t.Run()
	logger.Info("tuner closed")
}
