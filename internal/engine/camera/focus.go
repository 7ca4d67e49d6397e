package camera

import (
	gomath "math"

	"github.com/Faultbox/orbitcam/pkg/math"
)

// focusSnapDistance is the lag below which centering stops easing.
const focusSnapDistance = 0.01

// FocusTracker smooths the target position into the orbit pivot.
type FocusTracker struct {
	settings *Settings

	point    math.Vec3
	previous math.Vec3
}

// NewFocusTracker creates a tracker seeded at the target's initial position.
func NewFocusTracker(settings *Settings, initial math.Vec3) *FocusTracker {
	return &FocusTracker{
		settings: settings,
		point:    initial,
		previous: initial,
	}
}

// Update moves the focus point toward target and returns it.
// The value before the update becomes Previous.
func (f *FocusTracker) Update(target math.Vec3, deltaTime float32) math.Vec3 {
	f.previous = f.point

	radius := f.settings.FocusRadius
	if radius <= 0 {
		f.point = target
		return f.point
	}

	distance := target.Distance(f.point)
	t := float32(1)
	if distance > focusSnapDistance && f.settings.FocusCentering > 0 {
		t = float32(gomath.Pow(float64(1-f.settings.FocusCentering), float64(deltaTime)))
	}
	if distance > radius {
		t = min(t, radius/distance)
	}

	// t weights the old point: 1 keeps it, 0 snaps to the target.
	f.point = target.Lerp(f.point, t)
	return f.point
}

// Point returns the current focus point.
func (f *FocusTracker) Point() math.Vec3 {
	return f.point
}

// Previous returns the focus point of the previous frame.
func (f *FocusTracker) Previous() math.Vec3 {
	return f.previous
}
