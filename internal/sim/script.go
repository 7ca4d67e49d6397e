package sim

import (
	"github.com/Faultbox/orbitcam/internal/engine/camera"
	"github.com/Faultbox/orbitcam/pkg/math"
)

var (
	_ camera.Target = (*ScriptedTarget)(nil)
	_ camera.Input  = (*ScriptedInput)(nil)
)

// ScriptedTarget moves along waypoints with linear interpolation. Before the
// first waypoint and after the last it holds still.
type ScriptedTarget struct {
	waypoints []Waypoint
	position  math.Vec3
}

// NewScriptedTarget places the target at the first waypoint. waypoints must
// be sorted by time and not empty.
func NewScriptedTarget(waypoints []Waypoint) *ScriptedTarget {
	t := &ScriptedTarget{waypoints: waypoints}
	t.MoveTo(waypoints[0].Time)
	return t
}

// MoveTo sets the position for time t.
func (s *ScriptedTarget) MoveTo(t float32) {
	s.position = s.At(t)
}

// At returns the scripted position at time t.
func (s *ScriptedTarget) At(t float32) math.Vec3 {
	wp := s.waypoints
	if t <= wp[0].Time {
		return wp[0].Position.Vec3()
	}
	for i := 1; i < len(wp); i++ {
		if t < wp[i].Time {
			a, b := wp[i-1], wp[i]
			f := (t - a.Time) / (b.Time - a.Time)
			return a.Position.Vec3().Lerp(b.Position.Vec3(), f)
		}
	}
	return wp[len(wp)-1].Position.Vec3()
}

// Position implements camera.Target.
func (s *ScriptedTarget) Position() math.Vec3 {
	return s.position
}

// ScriptedInput reports axis values from input segments at the clock's
// current time. The first matching segment wins.
type ScriptedInput struct {
	segments []InputSegment
	clock    camera.Clock
}

// NewScriptedInput reads time from clock.
func NewScriptedInput(segments []InputSegment, clock camera.Clock) *ScriptedInput {
	return &ScriptedInput{segments: segments, clock: clock}
}

// Axis implements camera.Input.
func (s *ScriptedInput) Axis(name string) float32 {
	t := s.clock.UnscaledTime()
	for _, seg := range s.segments {
		if t < seg.From || t >= seg.To {
			continue
		}
		switch name {
		case camera.AxisVertical:
			return seg.Vertical
		case camera.AxisHorizontal:
			return seg.Horizontal
		}
		return 0
	}
	return 0
}
