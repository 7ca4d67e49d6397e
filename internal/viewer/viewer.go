// Package viewer runs an interactive window around one orbit camera.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/orbitcam/internal/config"
	"github.com/Faultbox/orbitcam/internal/engine/camera"
	"github.com/Faultbox/orbitcam/internal/engine/clock"
	"github.com/Faultbox/orbitcam/internal/engine/collision"
	"github.com/Faultbox/orbitcam/internal/engine/debug"
	"github.com/Faultbox/orbitcam/internal/engine/input"
	"github.com/Faultbox/orbitcam/internal/engine/renderer"
	"github.com/Faultbox/orbitcam/internal/engine/window"
	"github.com/Faultbox/orbitcam/internal/sim"
	"github.com/Faultbox/orbitcam/pkg/math"
)

// maxFrameDelta caps a frame's delta after stalls.
const maxFrameDelta = 0.1

// Viewer owns the window, the scene and the camera.
type Viewer struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	clock    *clock.Realtime
	shots    *debug.ScreenshotCapture

	world  *collision.World
	target *camera.StaticTarget
	camera *camera.OrbitCamera
	lens   camera.Lens

	lines debug.Lines
}

// New opens the window and builds the scene. scenario may be nil for an
// empty ground plane; only its colliders and first waypoint are used.
func New(cfg *config.Config, scenario *sim.Scenario, log *zap.Logger) (*Viewer, error) {
	v := &Viewer{
		cfg:    cfg,
		log:    log,
		target: &camera.StaticTarget{},
		world:  collision.NewWorld(),
		shots:  debug.NewScreenshotCapture(cfg.Window.ScreenshotDir, "orbitcam"),
	}
	if err := v.shots.SetFormat(cfg.Window.ScreenshotFormat); err != nil {
		return nil, err
	}

	if scenario != nil {
		world, err := scenario.World()
		if err != nil {
			return nil, fmt.Errorf("building scene: %w", err)
		}
		v.world = world
		v.target.Set(scenario.Waypoints[0].Position.Vec3())
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "orbitcam",
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := v.window.Size()
	v.renderer, err = renderer.New(renderer.Config{Width: width, Height: height}, log.Named("renderer"))
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New(cfg.Input.Sensitivity)
	bindings := []struct{ axis, pos, neg string }{
		{camera.AxisVertical, cfg.Input.VerticalPositive, cfg.Input.VerticalNegative},
		{camera.AxisHorizontal, cfg.Input.HorizontalPositive, cfg.Input.HorizontalNegative},
	}
	for _, b := range bindings {
		if err := v.input.Bind(b.axis, b.pos, b.neg); err != nil {
			v.Close()
			return nil, fmt.Errorf("binding keys: %w", err)
		}
	}

	v.lens = cfg.CameraLens()
	v.lens.Aspect = v.window.Aspect()
	v.camera = camera.New(v.target, v.world, cfg.CameraSettings(), v.lens,
		camera.WithLogger(log.Named("camera")),
		camera.WithOrbitAngles(cfg.InitialAngles()),
	)
	v.clock = clock.NewRealtime(maxFrameDelta)

	log.Info("viewer initialized", zap.Int("colliders", len(v.world.Colliders())))
	return v, nil
}

// Run loops until the window is closed or Escape is pressed.
func (v *Viewer) Run() error {
	v.running = true
	frames := 0
	fpsTimer := time.Now()

	v.log.Info("starting viewer loop")
	for v.running {
		dt := v.clock.Tick()

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		v.target.Set(v.target.Position().Add(
			targetStep(moveKeys(v.input.Held), v.camera.Angles().Yaw, v.cfg.Input.TargetSpeed, dt),
		))
		pose := v.camera.LateUpdate(v.clock, v.input)

		v.render(pose)
		v.window.SwapBuffers()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps",
				zap.Int("count", frames),
				zap.Float32("pitch", pose.Angles.Pitch),
				zap.Float32("yaw", pose.Angles.Yaw),
				zap.Bool("obstructed", pose.Obstructed),
			)
			frames = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			width, height := v.window.Size()
			v.renderer.Resize(width, height)
			v.lens.Aspect = v.window.Aspect()
			v.camera.SetLens(v.lens)
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_R:
				v.camera.SetAngles(v.cfg.InitialAngles())
			case sdl.SCANCODE_F12:
				v.screenshot()
			}
		}
	}
}

func (v *Viewer) render(pose camera.Pose) {
	v.renderer.SetCamera(pose.ViewMatrix(), projection(v.lens, v.cfg.Lens.FarClip))

	sceneLines(&v.lines, v.world, v.target.Position(), pose, v.camera.Settings())

	v.renderer.Begin()
	v.renderer.DrawLines(&v.lines)
}

// sceneLines rebuilds the frame's wireframe: ground grid, colliders, target
// and the focus region.
func sceneLines(lines *debug.Lines, world *collision.World, target math.Vec3, pose camera.Pose, s camera.Settings) {
	lines.Reset()
	lines.Grid(20, 1, 0, debug.ColorGrid)
	for _, c := range world.Colliders() {
		lines.Collider(c, pose.Focus, debug.ColorCollider)
	}
	lines.Marker(target, 0.5, debug.ColorTarget)
	lines.Marker(pose.Focus, 0.25, debug.ColorFocus)
	if s.FocusRadius > 0 {
		lines.Sphere(pose.Focus, s.FocusRadius, 32, debug.ColorFocus)
	}
}

func projection(lens camera.Lens, far float32) math.Mat4 {
	return math.Perspective(math.Deg2Rad*lens.FieldOfView, lens.Aspect, lens.NearClip, far)
}

func (v *Viewer) screenshot() {
	pixels, width, height := v.renderer.ReadPixels()
	path, err := v.shots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the renderer and window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
