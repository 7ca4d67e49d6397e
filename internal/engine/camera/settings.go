package camera

import (
	gomath "math"

	"github.com/Faultbox/orbitcam/pkg/math"
)

// LayerMask selects which collision layers block the camera. Bit n set means
// layer n obstructs.
type LayerMask uint32

// AllLayers is a mask that matches every layer.
const AllLayers LayerMask = ^LayerMask(0)

// Contains reports whether layer is selected by the mask.
func (m LayerMask) Contains(layer int) bool {
	if layer < 0 || layer > 31 {
		return false
	}
	return m&(1<<uint(layer)) != 0
}

// Settings holds the per-session tunables of an orbit camera.
type Settings struct {
	Distance         float32 // Orbit distance from the focus point
	FocusRadius      float32 // Max lag of the focus point behind the target, 0 = rigid
	FocusCentering   float32 // Fraction of the lag removed per second (0..1)
	RotationSpeed    float32 // Degrees per second
	MinVerticalAngle float32 // Degrees
	MaxVerticalAngle float32 // Degrees, never below MinVerticalAngle
	AlignDelay       float32 // Seconds after manual input before auto-align
	AlignSmoothRange float32 // Degrees (0..90) over which auto-align eases
	ObstructionMask  LayerMask
}

// DefaultSettings returns the stock third-person tuning.
func DefaultSettings() Settings {
	return Settings{
		Distance:         5,
		FocusRadius:      1,
		FocusCentering:   0.5,
		RotationSpeed:    90,
		MinVerticalAngle: -30,
		MaxVerticalAngle: 60,
		AlignDelay:       5,
		AlignSmoothRange: 45,
		ObstructionMask:  AllLayers,
	}
}

// Normalize returns a copy with every field forced into its legal range.
// The second result reports whether MaxVerticalAngle had to be raised to
// MinVerticalAngle.
func (s Settings) Normalize() (Settings, bool) {
	if s.FocusRadius < 0 {
		s.FocusRadius = 0
	}
	s.FocusCentering = math.Clamp01(s.FocusCentering)
	if s.AlignDelay < 0 {
		s.AlignDelay = 0
	}
	s.AlignSmoothRange = math.Clamp(s.AlignSmoothRange, 0, 90)

	clamped := false
	if s.MaxVerticalAngle < s.MinVerticalAngle {
		s.MaxVerticalAngle = s.MinVerticalAngle
		clamped = true
	}
	return s, clamped
}

// Lens describes the camera optics needed to size the obstruction probe.
type Lens struct {
	NearClip    float32 // Near plane distance
	FieldOfView float32 // Vertical field of view, degrees
	Aspect      float32 // Width / height
}

// DefaultLens returns a 60° lens with a 0.3 near plane at 16:9.
func DefaultLens() Lens {
	return Lens{
		NearClip:    0.3,
		FieldOfView: 60,
		Aspect:      16.0 / 9.0,
	}
}

// HalfExtents returns the half size of the near-plane rectangle. Z is zero:
// the probe is a flat box.
func (l Lens) HalfExtents() math.Vec3 {
	halfHeight := l.NearClip * float32(gomath.Tan(float64(0.5*math.Deg2Rad*l.FieldOfView)))
	return math.Vec3{
		X: halfHeight * l.Aspect,
		Y: halfHeight,
		Z: 0,
	}
}
