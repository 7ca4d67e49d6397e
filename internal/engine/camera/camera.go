// Package camera implements a third-person orbit camera that follows a
// target, blends player and automatic rotation and pulls in to avoid
// clipping through scene geometry.
//
// The camera is driven once per frame from a single goroutine:
//
//	cam := camera.New(player, world, camera.DefaultSettings(), camera.DefaultLens())
//	for running {
//		pose := cam.LateUpdate(clock, input)
//		renderer.SetView(pose.ViewMatrix())
//	}
package camera

import (
	"go.uber.org/zap"

	"github.com/Faultbox/orbitcam/pkg/math"
)

// OrbitCamera orbits a moving target. It is not safe for concurrent use.
type OrbitCamera struct {
	settings Settings
	target   Target
	log      *zap.Logger

	focus    *FocusTracker
	rotation *RotationResolver
	pose     *PoseResolver

	// dirty forces an orientation rebuild on the next frame after an
	// external edit to the angles.
	dirty bool

	last Pose
}

// Option configures an OrbitCamera.
type Option func(*OrbitCamera)

// WithLogger sets the logger used for state transition messages.
func WithLogger(log *zap.Logger) Option {
	return func(c *OrbitCamera) {
		if log != nil {
			c.log = log
		}
	}
}

// WithOrbitAngles sets the initial orbit angles.
func WithOrbitAngles(a OrbitAngles) Option {
	return func(c *OrbitCamera) {
		c.rotation.SetAngles(a)
		c.dirty = true
	}
}

// New creates a camera following target. The focus point starts on the
// target and the orientation on the default orbit angles. visibility may be
// nil to disable obstruction handling.
func New(target Target, visibility Visibility, settings Settings, lens Lens, opts ...Option) *OrbitCamera {
	c := &OrbitCamera{
		target: target,
		log:    zap.NewNop(),
	}
	c.settings, _ = settings.Normalize()

	initial := DefaultOrbitAngles()
	start := target.Position()
	c.focus = NewFocusTracker(&c.settings, start)
	c.rotation = NewRotationResolver(&c.settings, initial)
	c.pose = NewPoseResolver(visibility, lens, &c.settings, initial)

	for _, opt := range opts {
		opt(c)
	}

	c.last = c.pose.Resolve(c.rotation.Angles(), c.dirty, start, start)
	c.dirty = false
	return c
}

// LateUpdate reads the clock and input ports and resolves the frame's pose.
// Call it after the target has moved for the frame.
func (c *OrbitCamera) LateUpdate(clock Clock, input Input) Pose {
	return c.Step(ReadFrame(clock, input))
}

// Step resolves one frame from explicit readings.
func (c *OrbitCamera) Step(f Frame) Pose {
	targetPosition := c.target.Position()
	focus := c.focus.Update(targetPosition, f.DeltaTime)

	angles, mode := c.rotation.Update(
		f.DeltaTime, f.Time,
		f.VerticalAxis, f.HorizontalAxis,
		focus, c.focus.Previous(),
	)

	pose := c.pose.Resolve(angles, mode.Rotated() || c.dirty, focus, targetPosition)
	pose.Mode = mode
	c.dirty = false

	c.logTransitions(pose)
	c.last = pose
	return pose
}

func (c *OrbitCamera) logTransitions(pose Pose) {
	if pose.Mode != c.last.Mode {
		c.log.Debug("rotation mode changed",
			zap.Stringer("from", c.last.Mode),
			zap.Stringer("to", pose.Mode),
			zap.Float32("pitch", pose.Angles.Pitch),
			zap.Float32("yaw", pose.Angles.Yaw),
		)
	}
	if pose.Obstructed != c.last.Obstructed {
		if pose.Obstructed {
			c.log.Debug("view obstructed", zap.Float32("hit_distance", pose.HitDistance))
		} else {
			c.log.Debug("view clear")
		}
	}
}

// Pose returns the most recently resolved pose.
func (c *OrbitCamera) Pose() Pose {
	return c.last
}

// Angles returns the current orbit angles.
func (c *OrbitCamera) Angles() OrbitAngles {
	return c.rotation.Angles()
}

// SetAngles overrides the orbit angles. The change takes effect next frame.
func (c *OrbitCamera) SetAngles(a OrbitAngles) {
	c.rotation.SetAngles(a)
	c.dirty = true
}

// FocusPoint returns the smoothed orbit pivot.
func (c *OrbitCamera) FocusPoint() math.Vec3 {
	return c.focus.Point()
}

// Settings returns a copy of the active settings.
func (c *OrbitCamera) Settings() Settings {
	return c.settings
}

// SetSettings applies an external edit. The vertical limits are
// re-validated and the current angles re-constrained.
func (c *OrbitCamera) SetSettings(s Settings) {
	normalized, clamped := s.Normalize()
	if clamped {
		c.log.Debug("max vertical angle raised to min",
			zap.Float32("min", s.MinVerticalAngle),
			zap.Float32("max", s.MaxVerticalAngle),
		)
	}
	// Components hold a pointer to c.settings.
	c.settings = normalized
	c.rotation.SetAngles(c.rotation.Angles())
	c.dirty = true
}

// SetVerticalLimits edits the pitch limits.
func (c *OrbitCamera) SetVerticalLimits(minAngle, maxAngle float32) {
	s := c.settings
	s.MinVerticalAngle = minAngle
	s.MaxVerticalAngle = maxAngle
	c.SetSettings(s)
}

// SetLens replaces the lens parameters used to size the obstruction probe.
func (c *OrbitCamera) SetLens(lens Lens) {
	c.pose.SetLens(lens)
}
