// Package main runs a scenario through the orbit camera without a window
// and writes the per-frame trace as YAML.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitcam/internal/config"
	"github.com/Faultbox/orbitcam/internal/logger"
	"github.com/Faultbox/orbitcam/internal/sim"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Trace goes to stdout unless --out is set, so keep the console quiet
	// by default.
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileConfig(cfg), cfg.Simulation.Output != ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func fileConfig(cfg *config.Config) logger.FileConfig {
	if cfg.Logging.LogFile == "" {
		return logger.FileConfig{}
	}
	return logger.DefaultFileConfig(cfg.Logging.LogFile)
}

func run(cfg *config.Config) error {
	for _, note := range cfg.Clamp() {
		logger.Warn("config adjusted", zap.String("change", note))
	}

	if cfg.Simulation.Scenario == "" {
		return fmt.Errorf("no scenario given, use --scenario or %s", config.EnvScenario)
	}
	scenario, err := sim.LoadScenario(cfg.Simulation.Scenario)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}

	runner := sim.NewRunner(scenario, cfg.CameraSettings(), cfg.CameraLens(),
		sim.WithLogger(logger.Named("sim")),
		sim.WithInitialAngles(cfg.InitialAngles()),
	)
	trace, err := runner.Run()
	if err != nil {
		return err
	}

	if err := writeTrace(cfg.Simulation.Output, trace); err != nil {
		return err
	}

	logger.Info("trace written",
		zap.String("scenario", scenario.Name),
		zap.Int("frames", trace.Summary.Frames),
		zap.Int("obstructed", trace.Summary.ObstructedFrames),
	)
	return nil
}

// writeTrace writes the trace to path, or to stdout when path is empty.
func writeTrace(path string, trace *sim.Trace) error {
	if path == "" {
		if err := trace.WriteYAML(os.Stdout); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}
	if err := trace.WriteYAML(f); err != nil {
		f.Close()
		return fmt.Errorf("writing trace: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing trace file: %w", err)
	}
	return nil
}
