package viewer

import (
	"fmt"
	"path/filepath"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/orbitcam/internal/config"
	"github.com/Faultbox/orbitcam/internal/engine/camera"
	"github.com/Faultbox/orbitcam/internal/engine/clock"
	"github.com/Faultbox/orbitcam/internal/engine/collision"
	"github.com/Faultbox/orbitcam/internal/engine/debug"
	"github.com/Faultbox/orbitcam/internal/engine/renderer"
	"github.com/Faultbox/orbitcam/internal/engine/ui"
	"github.com/Faultbox/orbitcam/internal/sim"
	"github.com/Faultbox/orbitcam/pkg/math"
)

// Tuner is the ImGui variant of the viewer with a live settings panel.
type Tuner struct {
	cfg *config.Config
	log *zap.Logger

	backend  *ui.Backend
	renderer *renderer.Renderer
	panel    *ui.TuningPanel
	input    *ui.KeyInput
	clock    *clock.Realtime
	shots    *debug.ScreenshotCapture

	world  *collision.World
	target *camera.StaticTarget
	camera *camera.OrbitCamera
	lens   camera.Lens
	lines  debug.Lines

	// Written by the file dialog goroutine, read on the main thread.
	pendingScenario chan string

	width, height int
}

// NewTuner opens the ImGui window and builds the camera.
func NewTuner(cfg *config.Config, scenario *sim.Scenario, log *zap.Logger) (*Tuner, error) {
	t := &Tuner{
		cfg:             cfg,
		log:             log,
		panel:           ui.NewTuningPanel(),
		target:          &camera.StaticTarget{},
		world:           collision.NewWorld(),
		shots:           debug.NewScreenshotCapture(cfg.Window.ScreenshotDir, "orbittune"),
		pendingScenario: make(chan string, 1),
	}
	if err := t.shots.SetFormat(cfg.Window.ScreenshotFormat); err != nil {
		return nil, err
	}

	var err error
	t.backend, err = ui.NewBackend("orbittune", cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to create ui backend: %w", err)
	}

	t.width, t.height = cfg.Window.Width, cfg.Window.Height
	t.renderer, err = renderer.New(renderer.Config{Width: t.width, Height: t.height}, log.Named("renderer"))
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	t.input = ui.NewKeyInput(cfg.Input.Sensitivity)
	if err := t.input.Bind(camera.AxisVertical, cfg.Input.VerticalPositive, cfg.Input.VerticalNegative); err != nil {
		return nil, err
	}
	if err := t.input.Bind(camera.AxisHorizontal, cfg.Input.HorizontalPositive, cfg.Input.HorizontalNegative); err != nil {
		return nil, err
	}

	t.lens = cfg.CameraLens()
	t.clock = clock.NewRealtime(maxFrameDelta)
	t.load(scenario, "")
	return t, nil
}

// load replaces the scene and restarts the camera.
func (t *Tuner) load(scenario *sim.Scenario, name string) {
	settings := t.cfg.CameraSettings()
	if t.camera != nil {
		settings = t.camera.Settings()
	}

	t.world = collision.NewWorld()
	t.target.Set(math.Vec3{})
	if scenario != nil {
		world, err := scenario.World()
		if err != nil {
			t.log.Warn("scenario colliders rejected, using empty world", zap.Error(err))
		} else {
			t.world = world
		}
		if len(scenario.Waypoints) > 0 {
			t.target.Set(scenario.Waypoints[0].Position.Vec3())
		}
		if name == "" {
			name = scenario.Name
		}
	}
	t.panel.SetScenario(name)

	t.camera = camera.New(t.target, t.world, settings, t.lens,
		camera.WithLogger(t.log.Named("camera")),
		camera.WithOrbitAngles(t.cfg.InitialAngles()),
	)
	t.log.Info("scene loaded", zap.String("scenario", name), zap.Int("colliders", len(t.world.Colliders())))
}

// Run blocks until the window closes.
func (t *Tuner) Run() {
	t.backend.Run(t.frame)
}

func (t *Tuner) frame() {
	dt := t.clock.Tick()

	select {
	case path := <-t.pendingScenario:
		t.openScenario(path)
	default:
	}

	if w, h := ui.FramebufferSize(); w > 0 && h > 0 && (w != t.width || h != t.height) {
		t.width, t.height = w, h
		t.renderer.Resize(w, h)
		t.lens.Aspect = float32(w) / float32(h)
		t.camera.SetLens(t.lens)
	}

	t.target.Set(t.target.Position().Add(
		targetStep(t.moveKeys(), t.camera.Angles().Yaw, t.cfg.Input.TargetSpeed, dt),
	))
	pose := t.camera.LateUpdate(t.clock, t.input)

	t.renderer.SetCamera(pose.ViewMatrix(), projection(t.lens, t.cfg.Lens.FarClip))
	sceneLines(&t.lines, t.world, t.target.Position(), pose, t.camera.Settings())
	t.renderer.ClearDepth()
	t.renderer.DrawLines(&t.lines)

	if s, changed := t.panel.Render(t.camera.Settings(), pose); changed {
		t.camera.SetSettings(s)
	}
	if t.panel.OpenScenario {
		t.browse()
	}
	if t.panel.Screenshot || ui.IsKeyPressed(imgui.KeyF12) {
		t.screenshot()
	}
}

func (t *Tuner) moveKeys() math.Vec3 {
	var d math.Vec3
	if ui.IsKeyDown(imgui.KeyW) {
		d.Z++
	}
	if ui.IsKeyDown(imgui.KeyS) {
		d.Z--
	}
	if ui.IsKeyDown(imgui.KeyD) {
		d.X++
	}
	if ui.IsKeyDown(imgui.KeyA) {
		d.X--
	}
	if ui.IsKeyDown(imgui.KeySpace) {
		d.Y++
	}
	if ui.IsKeyDown(imgui.KeyLeftShift) {
		d.Y--
	}
	return d
}

// browse shows the native file dialog off the main thread. The chosen path
// is picked up by the next frame.
func (t *Tuner) browse() {
	go func() {
		path, err := dialog.File().
			Filter("Scenarios", "yaml", "yml").
			Filter("All Files", "*").
			Title("Open Scenario").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				t.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case t.pendingScenario <- path:
		default:
		}
	}()
}

func (t *Tuner) openScenario(path string) {
	sc, err := sim.LoadScenario(path)
	if err != nil {
		t.log.Warn("failed to load scenario", zap.String("path", path), zap.Error(err))
		return
	}
	t.load(sc, filepath.Base(path))
	t.backend.SetWindowTitle(fmt.Sprintf("orbittune - %s", filepath.Base(path)))
}

func (t *Tuner) screenshot() {
	pixels, width, height := t.renderer.ReadPixels()
	path, err := t.shots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		t.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	t.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GL resources. The backend tears the window down itself.
func (t *Tuner) Close() {
	if t.renderer != nil {
		t.renderer.Close()
	}
}
