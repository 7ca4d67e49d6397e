package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read after the config file.
const (
	EnvLogLevel = "ORBITCAM_LOG_LEVEL"
	EnvLogFile  = "ORBITCAM_LOG_FILE"
	EnvDistance = "ORBITCAM_DISTANCE"
	EnvScenario = "ORBITCAM_SCENARIO"
)

// loadDotEnv loads variables from a .env file if one exists. Variables
// already set in the environment win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return godotenv.Load(path)
}

// applyEnv applies ORBITCAM_* overrides to the config.
func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Logging.LogFile = v
	}
	if v := os.Getenv(EnvScenario); v != "" {
		cfg.Simulation.Scenario = v
	}
	if v := os.Getenv(EnvDistance); v != "" {
		d, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDistance, err)
		}
		cfg.Camera.Distance = float32(d)
	}
	return nil
}
