package sim

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/orbitcam/internal/engine/camera"
)

// Record is one frame of a run.
type Record struct {
	Frame       int     `yaml:"frame"`
	Time        float32 `yaml:"time"`
	Target      Point   `yaml:"target,flow"`
	Focus       Point   `yaml:"focus,flow"`
	Position    Point   `yaml:"position,flow"`
	Pitch       float32 `yaml:"pitch"`
	Yaw         float32 `yaml:"yaw"`
	Mode        string  `yaml:"mode"`
	Obstructed  bool    `yaml:"obstructed"`
	HitDistance float32 `yaml:"hit_distance,omitempty"`
}

// Summary aggregates a run.
type Summary struct {
	Frames           int     `yaml:"frames"`
	ManualFrames     int     `yaml:"manual_frames"`
	AutomaticFrames  int     `yaml:"automatic_frames"`
	ObstructedFrames int     `yaml:"obstructed_frames"`
	MinDistance      float32 `yaml:"min_distance"` // camera to focus
	MaxDistance      float32 `yaml:"max_distance"`
}

// Trace is the output of a run.
type Trace struct {
	Scenario string   `yaml:"scenario"`
	Summary  Summary  `yaml:"summary"`
	Records  []Record `yaml:"records"`
}

func newRecord(frame int, t float32, target camera.Target, pose camera.Pose) Record {
	return Record{
		Frame:       frame,
		Time:        t,
		Target:      pointOf(target.Position()),
		Focus:       pointOf(pose.Focus),
		Position:    pointOf(pose.Position),
		Pitch:       pose.Angles.Pitch,
		Yaw:         pose.Angles.Yaw,
		Mode:        pose.Mode.String(),
		Obstructed:  pose.Obstructed,
		HitDistance: pose.HitDistance,
	}
}

func (t *Trace) add(r Record, distance float32) {
	s := &t.Summary
	if s.Frames == 0 || distance < s.MinDistance {
		s.MinDistance = distance
	}
	if distance > s.MaxDistance {
		s.MaxDistance = distance
	}
	s.Frames++
	switch r.Mode {
	case camera.RotationManual.String():
		s.ManualFrames++
	case camera.RotationAutomatic.String():
		s.AutomaticFrames++
	}
	if r.Obstructed {
		s.ObstructedFrames++
	}
	t.Records = append(t.Records, r)
}

// Last returns the final record, or false for an empty trace.
func (t *Trace) Last() (Record, bool) {
	if len(t.Records) == 0 {
		return Record{}, false
	}
	return t.Records[len(t.Records)-1], true
}

// WriteYAML encodes the trace.
func (t *Trace) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return err
	}
	return enc.Close()
}
