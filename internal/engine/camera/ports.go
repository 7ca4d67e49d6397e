package camera

import "github.com/Faultbox/orbitcam/pkg/math"

// Axis names read from the Input port.
const (
	AxisVertical   = "Vertical Camera"
	AxisHorizontal = "Horizontal Camera"
)

// Clock supplies frame timing that ignores any game time scale.
type Clock interface {
	// UnscaledDeltaTime returns the seconds elapsed since the previous frame.
	UnscaledDeltaTime() float32
	// UnscaledTime returns monotonic seconds since start.
	UnscaledTime() float32
}

// Input supplies the two camera rotation axes.
type Input interface {
	Axis(name string) float32
}

// Target is the object the camera follows.
type Target interface {
	Position() math.Vec3
}

// Visibility performs a volumetric box sweep against scene geometry.
//
// BoxCast sweeps a box with the given half extents and orientation from
// origin along the unit vector direction, up to maxDistance, considering only
// geometry on layers in mask. It returns the distance travelled before the
// first contact. A miss is a normal outcome.
type Visibility interface {
	BoxCast(origin, halfExtents, direction math.Vec3, orientation math.Quat, maxDistance float32, mask LayerMask) (hitDistance float32, hit bool)
}

// Frame is one frame's worth of port readings.
type Frame struct {
	DeltaTime      float32
	Time           float32
	VerticalAxis   float32
	HorizontalAxis float32
}

// ReadFrame samples the clock and input ports.
func ReadFrame(clock Clock, input Input) Frame {
	f := Frame{
		DeltaTime: clock.UnscaledDeltaTime(),
		Time:      clock.UnscaledTime(),
	}
	if input != nil {
		f.VerticalAxis = input.Axis(AxisVertical)
		f.HorizontalAxis = input.Axis(AxisHorizontal)
	}
	return f
}

// StaticTarget is a Target that never moves unless Set is called.
type StaticTarget struct {
	P math.Vec3
}

// Position implements Target.
func (t *StaticTarget) Position() math.Vec3 {
	return t.P
}

// Set moves the target.
func (t *StaticTarget) Set(p math.Vec3) {
	t.P = p
}
