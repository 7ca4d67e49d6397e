package camera

import "github.com/Faultbox/orbitcam/pkg/math"

// minCastDistance is the sweep length below which no obstruction is possible.
const minCastDistance = 1e-6

// Pose is the resolved camera placement for one frame.
type Pose struct {
	Position    math.Vec3
	Rotation    math.Quat
	Focus       math.Vec3
	Angles      OrbitAngles
	Mode        RotationMode
	Obstructed  bool
	HitDistance float32 // Sweep distance to the obstruction, valid when Obstructed
}

// Forward returns the look direction.
func (p Pose) Forward() math.Vec3 {
	return p.Rotation.Forward()
}

// ViewMatrix returns an OpenGL view matrix for the pose.
func (p Pose) ViewMatrix() math.Mat4 {
	return math.ViewFromPose(p.Position, p.Rotation)
}

// PoseResolver turns orbit angles into a camera placement and pulls the
// camera in when the view of the target is blocked.
type PoseResolver struct {
	visibility Visibility
	lens       Lens
	settings   *Settings

	// orientation is rebuilt from the angles only when they changed.
	orientation math.Quat
}

// NewPoseResolver creates a resolver with its orientation seeded from initial.
// visibility may be nil, in which case obstruction is never checked.
func NewPoseResolver(visibility Visibility, lens Lens, settings *Settings, initial OrbitAngles) *PoseResolver {
	return &PoseResolver{
		visibility:  visibility,
		lens:        lens,
		settings:    settings,
		orientation: initial.Rotation(),
	}
}

// Orientation returns the cached camera rotation.
func (r *PoseResolver) Orientation() math.Quat {
	return r.orientation
}

// SetLens replaces the lens used to size the probe.
func (r *PoseResolver) SetLens(lens Lens) {
	r.lens = lens
}

// Resolve computes the pose. When dirty is false the previous orientation is
// reused as is. castFrom is the target's true position, the start of the
// visibility sweep.
func (r *PoseResolver) Resolve(angles OrbitAngles, dirty bool, focus, castFrom math.Vec3) Pose {
	if dirty {
		r.orientation = angles.Rotation()
	}

	lookDirection := r.orientation.Forward()
	lookPosition := focus.Sub(lookDirection.Scale(r.settings.Distance))

	pose := Pose{
		Position: lookPosition,
		Rotation: r.orientation,
		Focus:    focus,
		Angles:   angles,
	}

	if r.visibility == nil {
		return pose
	}

	// Probe up to the near plane rather than the lens itself.
	rectOffset := lookDirection.Scale(r.lens.NearClip)
	rectPosition := lookPosition.Add(rectOffset)
	castLine := rectPosition.Sub(castFrom)
	castDistance := castLine.Length()
	if castDistance < minCastDistance {
		return pose
	}
	castDirection := castLine.Scale(1 / castDistance)

	hitDistance, hit := r.visibility.BoxCast(
		castFrom,
		r.lens.HalfExtents(),
		castDirection,
		r.orientation,
		castDistance,
		r.settings.ObstructionMask,
	)
	if hit {
		rectPosition = castFrom.Add(castDirection.Scale(hitDistance))
		pose.Position = rectPosition.Sub(rectOffset)
		pose.Obstructed = true
		pose.HitDistance = hitDistance
	}
	return pose
}
