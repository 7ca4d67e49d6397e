// Package config handles orbit camera configuration loading and management.
package config

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/orbitcam/internal/engine/camera"
)

// Config holds all application settings.
type Config struct {
	Camera     CameraConfig     `yaml:"camera"`
	Lens       LensConfig       `yaml:"lens"`
	Input      InputConfig      `yaml:"input"`
	Window     WindowConfig     `yaml:"window"`
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// CameraConfig holds the orbit camera tuning.
type CameraConfig struct {
	Distance          float32 `yaml:"distance"`
	FocusRadius       float32 `yaml:"focus_radius"`
	FocusCentering    float32 `yaml:"focus_centering"`
	RotationSpeed     float32 `yaml:"rotation_speed"` // degrees per second
	MinVerticalAngle  float32 `yaml:"min_vertical_angle"`
	MaxVerticalAngle  float32 `yaml:"max_vertical_angle"`
	AlignDelay        float32 `yaml:"align_delay"` // seconds
	AlignSmoothRange  float32 `yaml:"align_smooth_range"`
	ObstructionLayers []int   `yaml:"obstruction_layers"` // Empty means every layer
	InitialPitch      float32 `yaml:"initial_pitch"`
	InitialYaw        float32 `yaml:"initial_yaw"`
}

// LensConfig holds the optics used to size the obstruction probe.
type LensConfig struct {
	NearClip    float32 `yaml:"near_clip"`
	FarClip     float32 `yaml:"far_clip"`
	FieldOfView float32 `yaml:"field_of_view"` // vertical, degrees
	Aspect      float32 `yaml:"aspect"`        // 0 = window width / height
}

// InputConfig holds key bindings for the camera axes, by SDL key name.
type InputConfig struct {
	VerticalPositive   string  `yaml:"vertical_positive"`
	VerticalNegative   string  `yaml:"vertical_negative"`
	HorizontalPositive string  `yaml:"horizontal_positive"`
	HorizontalNegative string  `yaml:"horizontal_negative"`
	Sensitivity        float32 `yaml:"sensitivity"`
	TargetSpeed        float32 `yaml:"target_speed"` // viewer target units per second
}

// WindowConfig holds viewer display settings.
type WindowConfig struct {
	Width            int    `yaml:"width"`
	Height           int    `yaml:"height"`
	Fullscreen       bool   `yaml:"fullscreen"`
	VSync            bool   `yaml:"vsync"`
	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format"` // png or bmp
}

// SimulationConfig holds headless run settings.
type SimulationConfig struct {
	Scenario string `yaml:"scenario"` // Path to a scenario YAML file
	Output   string `yaml:"output"`   // Trace output path, empty = stdout
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	s := camera.DefaultSettings()
	l := camera.DefaultLens()
	a := camera.DefaultOrbitAngles()

	return &Config{
		Camera: CameraConfig{
			Distance:         s.Distance,
			FocusRadius:      s.FocusRadius,
			FocusCentering:   s.FocusCentering,
			RotationSpeed:    s.RotationSpeed,
			MinVerticalAngle: s.MinVerticalAngle,
			MaxVerticalAngle: s.MaxVerticalAngle,
			AlignDelay:       s.AlignDelay,
			AlignSmoothRange: s.AlignSmoothRange,
			InitialPitch:     a.Pitch,
			InitialYaw:       a.Yaw,
		},
		Lens: LensConfig{
			NearClip:    l.NearClip,
			FarClip:     1000,
			FieldOfView: l.FieldOfView,
			Aspect:      0,
		},
		Input: InputConfig{
			VerticalPositive:   "I",
			VerticalNegative:   "K",
			HorizontalPositive: "L",
			HorizontalNegative: "J",
			Sensitivity:        1,
			TargetSpeed:        4,
		},
		Window: WindowConfig{
			Width:            1280,
			Height:           720,
			Fullscreen:       false,
			VSync:            true,
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate rejects values the camera cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Camera.Distance <= 0:
		return fmt.Errorf("camera.distance must be positive, got %v", c.Camera.Distance)
	case c.Camera.RotationSpeed <= 0:
		return fmt.Errorf("camera.rotation_speed must be positive, got %v", c.Camera.RotationSpeed)
	case c.Lens.NearClip <= 0:
		return fmt.Errorf("lens.near_clip must be positive, got %v", c.Lens.NearClip)
	case c.Lens.FarClip <= c.Lens.NearClip:
		return fmt.Errorf("lens.far_clip must exceed near_clip, got %v", c.Lens.FarClip)
	case c.Lens.FieldOfView <= 0 || c.Lens.FieldOfView >= 180:
		return fmt.Errorf("lens.field_of_view must be in (0, 180), got %v", c.Lens.FieldOfView)
	case c.Lens.Aspect < 0:
		return fmt.Errorf("lens.aspect must not be negative, got %v", c.Lens.Aspect)
	case c.Window.ScreenshotFormat != "png" && c.Window.ScreenshotFormat != "bmp":
		return fmt.Errorf("window.screenshot_format must be png or bmp, got %q", c.Window.ScreenshotFormat)
	}
	for _, layer := range c.Camera.ObstructionLayers {
		if layer < 0 || layer > 31 {
			return fmt.Errorf("camera.obstruction_layers: layer %d out of range 0..31", layer)
		}
	}
	return nil
}

// Clamp forces camera values into their supported ranges and describes
// each adjustment made.
func (c *Config) Clamp() []string {
	var notes []string
	clamp := func(name string, v *float32, lo, hi float32) {
		if *v < lo || *v > hi {
			old := *v
			*v = min(max(*v, lo), hi)
			notes = append(notes, fmt.Sprintf("%s %v clamped to %v", name, old, *v))
		}
	}

	cam := &c.Camera
	clamp("distance", &cam.Distance, 1, 20)
	clamp("rotation_speed", &cam.RotationSpeed, 1, 360)
	clamp("focus_centering", &cam.FocusCentering, 0, 1)
	clamp("min_vertical_angle", &cam.MinVerticalAngle, -89, 89)
	clamp("max_vertical_angle", &cam.MaxVerticalAngle, -89, 89)
	clamp("align_smooth_range", &cam.AlignSmoothRange, 0, 90)
	if cam.FocusRadius < 0 {
		notes = append(notes, fmt.Sprintf("focus_radius %v raised to 0", cam.FocusRadius))
		cam.FocusRadius = 0
	}
	if cam.AlignDelay < 0 {
		notes = append(notes, fmt.Sprintf("align_delay %v raised to 0", cam.AlignDelay))
		cam.AlignDelay = 0
	}
	if cam.MaxVerticalAngle < cam.MinVerticalAngle {
		notes = append(notes, fmt.Sprintf("max_vertical_angle %v raised to min %v", cam.MaxVerticalAngle, cam.MinVerticalAngle))
		cam.MaxVerticalAngle = cam.MinVerticalAngle
	}

	finite := func(name string, v *float32) {
		if f := float64(*v); gomath.IsNaN(f) || gomath.IsInf(f, 0) {
			notes = append(notes, fmt.Sprintf("%s %v reset to 0", name, *v))
			*v = 0
		}
	}
	finite("initial_pitch", &cam.InitialPitch)
	finite("initial_yaw", &cam.InitialYaw)
	clamp("initial_pitch", &cam.InitialPitch, cam.MinVerticalAngle, cam.MaxVerticalAngle)
	if cam.InitialYaw < 0 || cam.InitialYaw >= 360 {
		old := cam.InitialYaw
		cam.InitialYaw = float32(gomath.Mod(float64(old), 360))
		if cam.InitialYaw < 0 {
			cam.InitialYaw += 360
		}
		if cam.InitialYaw >= 360 {
			cam.InitialYaw = 0
		}
		notes = append(notes, fmt.Sprintf("initial_yaw %v wrapped to %v", old, cam.InitialYaw))
	}
	return notes
}

// CameraSettings converts the camera section to core settings.
func (c *Config) CameraSettings() camera.Settings {
	mask := camera.AllLayers
	if len(c.Camera.ObstructionLayers) > 0 {
		mask = 0
		for _, layer := range c.Camera.ObstructionLayers {
			mask |= 1 << uint(layer)
		}
	}

	return camera.Settings{
		Distance:         c.Camera.Distance,
		FocusRadius:      c.Camera.FocusRadius,
		FocusCentering:   c.Camera.FocusCentering,
		RotationSpeed:    c.Camera.RotationSpeed,
		MinVerticalAngle: c.Camera.MinVerticalAngle,
		MaxVerticalAngle: c.Camera.MaxVerticalAngle,
		AlignDelay:       c.Camera.AlignDelay,
		AlignSmoothRange: c.Camera.AlignSmoothRange,
		ObstructionMask:  mask,
	}
}

// InitialAngles returns the configured starting orbit angles.
func (c *Config) InitialAngles() camera.OrbitAngles {
	return camera.OrbitAngles{Pitch: c.Camera.InitialPitch, Yaw: c.Camera.InitialYaw}
}

// CameraLens converts the lens section, deriving the aspect ratio from the
// window when it is not set.
func (c *Config) CameraLens() camera.Lens {
	aspect := c.Lens.Aspect
	if aspect == 0 && c.Window.Height > 0 {
		aspect = float32(c.Window.Width) / float32(c.Window.Height)
	}
	if aspect == 0 {
		aspect = camera.DefaultLens().Aspect
	}
	return camera.Lens{
		NearClip:    c.Lens.NearClip,
		FieldOfView: c.Lens.FieldOfView,
		Aspect:      aspect,
	}
}
