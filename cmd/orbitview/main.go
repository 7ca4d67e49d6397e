// Package main opens an interactive window to fly the orbit camera around a
// scenario scene.
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

	logger.Info("=== orbitcam viewer ===")
	for _, note := range cfg.Clamp() {
		logger.Warn("config adjusted", zap.String("change", note))
	}
	logger.Sugar.Debugf("Config: %+v", cfg)

	var scenario *sim.Scenario
	if cfg.Simulation.Scenario != "" {
		scenario, err = sim.LoadScenario(cfg.Simulation.Scenario)
		if err != nil {
			logger.Error("failed to load scenario", zap.Error(err))
			os.Exit(1)
		}
	}

	v, err := viewer.New(cfg, scenario, logger.Named("viewer"))
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
