package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/orbitcam/internal/engine/camera"
)

// Range bounds one slider.
type Range struct {
	Min, Max float32
}

// SettingRanges are the slider bounds for each tunable.
var SettingRanges = struct {
	Distance, FocusRadius, FocusCentering, RotationSpeed Range
	VerticalAngle, AlignDelay, AlignSmoothRange          Range
}{
	Distance:         Range{1, 20},
	FocusRadius:      Range{0, 10},
	FocusCentering:   Range{0, 1},
	RotationSpeed:    Range{1, 360},
	VerticalAngle:    Range{-89, 89},
	AlignDelay:       Range{0, 30},
	AlignSmoothRange: Range{0, 90},
}

// TuningPanel edits camera settings and shows the live pose.
type TuningPanel struct {
	Visible bool
	// OpenScenario is set for one frame when the open button is pressed.
	OpenScenario bool
	// Screenshot is set for one frame when the capture button is pressed.
	Screenshot bool

	scenario string
}

// NewTuningPanel creates a visible panel.
func NewTuningPanel() *TuningPanel {
	return &TuningPanel{Visible: true}
}

// SetScenario sets the scenario name shown in the panel.
func (p *TuningPanel) SetScenario(name string) {
	p.scenario = name
}

// Render draws the panel. It returns the edited settings and whether any
// slider moved.
func (p *TuningPanel) Render(s camera.Settings, pose camera.Pose) (camera.Settings, bool) {
	p.OpenScenario = false
	p.Screenshot = false
	if !p.Visible {
		return s, false
	}

	imgui.SetNextWindowPos(imgui.NewVec2(10, 10))
	imgui.SetNextWindowBgAlpha(0.8)
	flags := imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoSavedSettings | imgui.WindowFlagsNoCollapse

	changed := false
	if imgui.BeginV("Orbit Camera", nil, flags) {
		r := SettingRanges
		changed = slider("Distance", &s.Distance, r.Distance, "%.1f") || changed
		changed = slider("Focus Radius", &s.FocusRadius, r.FocusRadius, "%.2f") || changed
		changed = slider("Focus Centering", &s.FocusCentering, r.FocusCentering, "%.2f") || changed
		changed = slider("Rotation Speed", &s.RotationSpeed, r.RotationSpeed, "%.0f deg/s") || changed
		changed = slider("Min Vertical", &s.MinVerticalAngle, r.VerticalAngle, "%.0f deg") || changed
		changed = slider("Max Vertical", &s.MaxVerticalAngle, r.VerticalAngle, "%.0f deg") || changed
		changed = slider("Align Delay", &s.AlignDelay, r.AlignDelay, "%.1f s") || changed
		changed = slider("Align Smooth Range", &s.AlignSmoothRange, r.AlignSmoothRange, "%.0f deg") || changed

		imgui.Separator()
		imgui.Text(fmt.Sprintf("Pitch %.1f  Yaw %.1f  (%s)", pose.Angles.Pitch, pose.Angles.Yaw, pose.Mode))
		imgui.Text(fmt.Sprintf("Position %.2f %.2f %.2f", pose.Position.X, pose.Position.Y, pose.Position.Z))
		if pose.Obstructed {
			imgui.TextColored(imgui.NewVec4(1, 0.3, 0.3, 1), fmt.Sprintf("Obstructed at %.2f", pose.HitDistance))
		} else {
			imgui.TextDisabled("Clear")
		}

		imgui.Separator()
		if p.scenario != "" {
			imgui.Text("Scenario: " + p.scenario)
		}
		if imgui.Button("Open Scenario...") {
			p.OpenScenario = true
		}
		imgui.SameLine()
		if imgui.Button("Screenshot") {
			p.Screenshot = true
		}
	}
	imgui.End()

	return s, changed
}

func slider(label string, v *float32, r Range, format string) bool {
	return imgui.SliderFloatV(label, v, r.Min, r.Max, format, imgui.SliderFlagsNone)
}
