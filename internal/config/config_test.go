package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/orbitcam/internal/engine/camera"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, float32(5), cfg.Camera.Distance)
	assert.Equal(t, float32(-30), cfg.Camera.MinVerticalAngle)
	assert.Equal(t, float32(60), cfg.Camera.MaxVerticalAngle)
	assert.Equal(t, float32(45), cfg.Camera.InitialPitch)
	assert.Zero(t, cfg.Camera.InitialYaw)
	assert.Equal(t, float32(0.3), cfg.Lens.NearClip)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "orbitcam.yaml")
	writeFile(t, configPath, `
camera:
  distance: 8
  focus_radius: 0.5
  rotation_speed: 120
  min_vertical_angle: -10
  max_vertical_angle: 70
  align_delay: 2.5
  obstruction_layers: [0, 4]

lens:
  near_clip: 0.1
  field_of_view: 75

window:
  width: 1920
  height: 1080

logging:
  level: "debug"
  log_file: "orbitcam.log"
`)

	cfg := Default()
	require.NoError(t, loadFromFile(cfg, configPath))

	assert.Equal(t, float32(8), cfg.Camera.Distance)
	assert.Equal(t, float32(2.5), cfg.Camera.AlignDelay)
	assert.Equal(t, float32(0.5), cfg.Camera.FocusCentering, "unset keys keep defaults")
	assert.Equal(t, float32(75), cfg.Lens.FieldOfView)
	assert.Equal(t, "orbitcam.log", cfg.Logging.LogFile)

	s := cfg.CameraSettings()
	assert.Equal(t, camera.LayerMask(1|1<<4), s.ObstructionMask)
	assert.Equal(t, float32(120), s.RotationSpeed)
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")
	writeFile(t, configPath, `
camera:
  distance: not a number
  invalid syntax here
`)

	assert.Error(t, loadFromFile(Default(), configPath))
}

func TestLoadFromFileMissing(t *testing.T) {
	assert.Error(t, loadFromFile(Default(), "/nonexistent/path/config.yaml"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero distance", func(c *Config) { c.Camera.Distance = 0 }, "camera.distance"},
		{"negative speed", func(c *Config) { c.Camera.RotationSpeed = -1 }, "camera.rotation_speed"},
		{"zero near clip", func(c *Config) { c.Lens.NearClip = 0 }, "lens.near_clip"},
		{"far before near", func(c *Config) { c.Lens.FarClip = 0.1 }, "lens.far_clip"},
		{"fov too wide", func(c *Config) { c.Lens.FieldOfView = 180 }, "lens.field_of_view"},
		{"negative aspect", func(c *Config) { c.Lens.Aspect = -1 }, "lens.aspect"},
		{"bad layer", func(c *Config) { c.Camera.ObstructionLayers = []int{32} }, "obstruction_layers"},
		{"bad screenshot format", func(c *Config) { c.Window.ScreenshotFormat = "gif" }, "screenshot_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClamp(t *testing.T) {
	cfg := Default()
	cfg.Camera.Distance = 50
	cfg.Camera.MinVerticalAngle = 40
	cfg.Camera.MaxVerticalAngle = 10
	cfg.Camera.FocusRadius = -2
	cfg.Camera.InitialPitch = 45

	notes := cfg.Clamp()

	assert.Equal(t, float32(20), cfg.Camera.Distance)
	assert.Equal(t, float32(40), cfg.Camera.MaxVerticalAngle)
	assert.Zero(t, cfg.Camera.FocusRadius)
	assert.Equal(t, float32(40), cfg.Camera.InitialPitch)
	assert.Len(t, notes, 4)

	assert.Empty(t, Default().Clamp(), "defaults need no clamping")
}

func TestClampInitialAngles(t *testing.T) {
	tests := []struct {
		name      string
		pitch     float32
		yaw       float32
		wantPitch float32
		wantYaw   float32
		wantNotes int
	}{
		{"in range", 20, 90, 20, 90, 0},
		{"huge yaw", 20, 1e10, 20, 280, 1},
		{"negative yaw", 20, -90, 20, 270, 1},
		{"infinite yaw", 20, float32(math.Inf(1)), 20, 0, 1},
		{"nan pitch", float32(math.NaN()), 0, 0, 0, 1},
		{"pitch past limit", 85, 0, 60, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Camera.MinVerticalAngle = -30
			cfg.Camera.MaxVerticalAngle = 60
			cfg.Camera.InitialPitch = tt.pitch
			cfg.Camera.InitialYaw = tt.yaw

			notes := cfg.Clamp()

			assert.Equal(t, tt.wantPitch, cfg.Camera.InitialPitch)
			assert.Equal(t, tt.wantYaw, cfg.Camera.InitialYaw)
			assert.Len(t, notes, tt.wantNotes, "notes: %v", notes)
		})
	}
}

func TestCameraLensAspect(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 800
	cfg.Window.Height = 400
	assert.Equal(t, float32(2), cfg.CameraLens().Aspect, "derived from window")

	cfg.Lens.Aspect = 1.5
	assert.Equal(t, float32(1.5), cfg.CameraLens().Aspect)
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	require.NotEmpty(t, dir)
	assert.True(t, filepath.IsAbs(dir), "ConfigDir should be absolute, got %s", dir)
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	require.NoError(t, os.Chdir(tmpDir))
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("HOME", tmpDir)

	assert.Empty(t, findConfigFile())

	writeFile(t, filepath.Join(tmpDir, "orbitcam.yaml"), "camera:\n  distance: 7\n")
	assert.NotEmpty(t, findConfigFile())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvDistance, "12.5")
	t.Setenv(EnvScenario, "corridor.yaml")

	cfg := Default()
	require.NoError(t, applyEnv(cfg))

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, float32(12.5), cfg.Camera.Distance)
	assert.Equal(t, "corridor.yaml", cfg.Simulation.Scenario)

	t.Setenv(EnvDistance, "far")
	assert.Error(t, applyEnv(Default()))
}

func TestLoadDotEnv(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), ".env")
	writeFile(t, envPath, EnvLogFile+"=from-dotenv.log\n")
	t.Setenv(EnvLogFile, "")
	os.Unsetenv(EnvLogFile)

	require.NoError(t, loadDotEnv(envPath))
	assert.Equal(t, "from-dotenv.log", os.Getenv(EnvLogFile))

	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "missing.env")), "missing .env is ignored")
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "distance flag",
			setup: func() { *flagDistance = 9 },
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, float32(9), cfg.Camera.Distance)
			},
			teardown: func() { *flagDistance = 0 },
		},
		{
			name: "scenario and output flags",
			setup: func() {
				*flagScenario = "walk.yaml"
				*flagOutput = "trace.yaml"
			},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "walk.yaml", cfg.Simulation.Scenario)
				assert.Equal(t, "trace.yaml", cfg.Simulation.Output)
			},
			teardown: func() {
				*flagScenario = ""
				*flagOutput = ""
			},
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Window.Fullscreen)
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 2560, cfg.Window.Width)
				assert.Equal(t, 1440, cfg.Window.Height)
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "orbitcam.yaml")
	writeFile(t, configPath, `
camera:
  distance: 6
  rotation_speed: 45
`)

	*flagConfig = configPath
	*flagDistance = 11
	defer func() {
		*flagConfig = ""
		*flagDistance = 0
	}()

	cfg, err := Load()
	require.NoError(t, err)

	// Distance comes from the flag, speed from the file
	assert.Equal(t, float32(11), cfg.Camera.Distance)
	assert.Equal(t, float32(45), cfg.Camera.RotationSpeed)
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "orbitcam.yaml")
	cfg := Default()
	cfg.Camera.Distance = 7.5

	require.NoError(t, cfg.SaveTo(path))

	loaded := Default()
	require.NoError(t, loadFromFile(loaded, path))
	assert.Equal(t, float32(7.5), loaded.Camera.Distance)
}
