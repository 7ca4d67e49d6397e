package camera

import (
	gomath "math"

	"github.com/Faultbox/orbitcam/pkg/math"
)

const (
	// manualDeadZone is the axis magnitude below which input is ignored.
	manualDeadZone = 0.001
	// stationarySqr is the squared planar movement below which the focus
	// point counts as standing still.
	stationarySqr = 0.000001
)

// OrbitAngles are the camera angles around the focus point, in degrees.
type OrbitAngles struct {
	Pitch float32 // Vertical, positive looks down
	Yaw   float32 // Horizontal, 0 faces +Z, 90 faces +X
}

// DefaultOrbitAngles returns the initial 45° downward view facing +Z.
func DefaultOrbitAngles() OrbitAngles {
	return OrbitAngles{Pitch: 45, Yaw: 0}
}

// Rotation returns the camera rotation for these angles.
func (a OrbitAngles) Rotation() math.Quat {
	return math.QuatFromEuler(a.Pitch, a.Yaw, 0)
}

// RotationMode tells which rule moved the camera this frame.
type RotationMode int

const (
	RotationHeld RotationMode = iota
	RotationManual
	RotationAutomatic
)

func (m RotationMode) String() string {
	switch m {
	case RotationManual:
		return "manual"
	case RotationAutomatic:
		return "automatic"
	default:
		return "held"
	}
}

// Rotated reports whether the angles changed.
func (m RotationMode) Rotated() bool {
	return m != RotationHeld
}

// RotationResolver arbitrates between manual and automatic rotation.
type RotationResolver struct {
	settings *Settings

	angles                 OrbitAngles
	lastManualRotationTime float32
}

// NewRotationResolver creates a resolver starting at initial.
func NewRotationResolver(settings *Settings, initial OrbitAngles) *RotationResolver {
	return &RotationResolver{
		settings: settings,
		angles:   initial,
	}
}

// Angles returns the current orbit angles.
func (r *RotationResolver) Angles() OrbitAngles {
	return r.angles
}

// LastManualRotationTime returns the time of the latest manual input.
func (r *RotationResolver) LastManualRotationTime() float32 {
	return r.lastManualRotationTime
}

// SetAngles replaces the orbit angles, constrained to the current limits.
func (r *RotationResolver) SetAngles(a OrbitAngles) {
	a.Yaw = wrapYaw(a.Yaw)
	r.angles = a
	r.constrain()
}

// wrapYaw reduces an arbitrary yaw into [0, 360] in one step. Non-finite
// values pass through for constrain to reset.
func wrapYaw(yaw float32) float32 {
	y := gomath.Mod(float64(yaw), 360)
	if y < 0 {
		y += 360
	}
	return float32(y)
}

// Update advances the angles for one frame. Manual input wins over
// automatic alignment; when neither applies the angles are left untouched.
func (r *RotationResolver) Update(deltaTime, now, axisV, axisH float32, focus, previous math.Vec3) (OrbitAngles, RotationMode) {
	mode := RotationHeld
	if r.manualRotation(deltaTime, now, axisV, axisH) {
		mode = RotationManual
	} else if r.automaticRotation(deltaTime, now, focus, previous) {
		mode = RotationAutomatic
	}

	if mode.Rotated() {
		r.constrain()
	}
	return r.angles, mode
}

func (r *RotationResolver) manualRotation(deltaTime, now, axisV, axisH float32) bool {
	if math.Abs(axisV) <= manualDeadZone && math.Abs(axisH) <= manualDeadZone {
		return false
	}

	step := r.settings.RotationSpeed * deltaTime
	r.angles.Pitch += step * axisV
	r.angles.Yaw += step * axisH
	r.lastManualRotationTime = now
	return true
}

func (r *RotationResolver) automaticRotation(deltaTime, now float32, focus, previous math.Vec3) bool {
	if now-r.lastManualRotationTime < r.settings.AlignDelay {
		return false
	}

	movement := focus.XZ().Sub(previous.XZ())
	movementSqr := movement.LengthSquared()
	if movementSqr < stationarySqr {
		return false
	}

	heading := headingAngle(movement.Normalize())
	deltaAbs := math.Abs(math.DeltaAngle(r.angles.Yaw, heading))

	// Slow movement caps the turn rate so tiny moves don't swing the camera.
	change := r.settings.RotationSpeed * min(deltaTime, movementSqr)

	smooth := r.settings.AlignSmoothRange
	if deltaAbs < smooth {
		change *= deltaAbs / smooth
	} else if 180-deltaAbs < smooth {
		change *= (180 - deltaAbs) / smooth
	}

	r.angles.Yaw = math.MoveTowardsAngle(r.angles.Yaw, heading, change)
	return true
}

// constrain clamps pitch to the vertical limits and wraps yaw into [0, 360).
func (r *RotationResolver) constrain() {
	r.angles.Pitch = math.Clamp(r.angles.Pitch, r.settings.MinVerticalAngle, r.settings.MaxVerticalAngle)

	if gomath.IsInf(float64(r.angles.Yaw), 0) || gomath.IsNaN(float64(r.angles.Yaw)) {
		r.angles.Yaw = 0
	}
	for r.angles.Yaw < 0 {
		r.angles.Yaw += 360
	}
	for r.angles.Yaw >= 360 {
		r.angles.Yaw -= 360
	}
}

// headingAngle converts a unit XZ direction (X, Z stored as X, Y) to a yaw in
// degrees: 0 along +Z, 90 along +X.
func headingAngle(direction math.Vec2) float32 {
	angle := float32(gomath.Acos(float64(math.Clamp(direction.Y, -1, 1)))) * math.Rad2Deg
	if direction.X < 0 {
		return 360 - angle
	}
	return angle
}
