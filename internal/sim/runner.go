package sim

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitcam/internal/engine/camera"
	"github.com/Faultbox/orbitcam/internal/engine/clock"
)

// Runner drives one camera through a scenario with a fixed step clock.
type Runner struct {
	scenario *Scenario
	settings camera.Settings
	lens     camera.Lens
	angles   *camera.OrbitAngles
	log      *zap.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger for run progress and camera transitions.
func WithLogger(log *zap.Logger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// WithInitialAngles sets the starting orbit angles. A scenario that sets its
// own angles overrides this.
func WithInitialAngles(a camera.OrbitAngles) Option {
	return func(r *Runner) {
		r.angles = &a
	}
}

// NewRunner creates a runner for a validated scenario.
func NewRunner(sc *Scenario, settings camera.Settings, lens camera.Lens, opts ...Option) *Runner {
	r := &Runner{
		scenario: sc,
		settings: settings,
		lens:     lens,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if sc.Angles != nil {
		r.angles = &camera.OrbitAngles{Pitch: sc.Angles.Pitch, Yaw: sc.Angles.Yaw}
	}
	return r
}

// Run executes every frame and returns the trace.
func (r *Runner) Run() (*Trace, error) {
	sc := r.scenario
	world, err := sc.World()
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}

	clk := clock.NewFixed(sc.DeltaTime)
	target := NewScriptedTarget(sc.Waypoints)
	input := NewScriptedInput(sc.Input, clk)

	opts := []camera.Option{camera.WithLogger(r.log.Named("camera"))}
	if r.angles != nil {
		opts = append(opts, camera.WithOrbitAngles(*r.angles))
	}
	cam := camera.New(target, world, r.settings, r.lens, opts...)

	r.log.Info("running scenario",
		zap.String("name", sc.Name),
		zap.Int("frames", sc.Frames),
		zap.Float32("delta_time", sc.DeltaTime),
		zap.Int("colliders", len(world.Colliders())),
	)

	trace := &Trace{Scenario: sc.Name, Records: make([]Record, 0, sc.Frames)}
	for frame := 1; frame <= sc.Frames; frame++ {
		clk.Tick()
		now := clk.UnscaledTime()
		target.MoveTo(now)

		pose := cam.LateUpdate(clk, input)
		trace.add(newRecord(frame, now, target, pose), pose.Position.Distance(pose.Focus))
	}

	s := trace.Summary
	r.log.Info("scenario finished",
		zap.Int("frames", s.Frames),
		zap.Int("manual", s.ManualFrames),
		zap.Int("automatic", s.AutomaticFrames),
		zap.Int("obstructed", s.ObstructedFrames),
		zap.Float32("min_distance", s.MinDistance),
	)
	return trace, nil
}
