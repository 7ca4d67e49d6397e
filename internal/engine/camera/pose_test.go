package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/orbitcam/pkg/math"
)

// stubVisibility records the last sweep and answers with a fixed result.
type stubVisibility struct {
	hit      bool
	distance float32

	calls       int
	origin      math.Vec3
	halfExtents math.Vec3
	direction   math.Vec3
	orientation math.Quat
	maxDistance float32
	mask        LayerMask
}

func (s *stubVisibility) BoxCast(origin, halfExtents, direction math.Vec3, orientation math.Quat, maxDistance float32, mask LayerMask) (float32, bool) {
	s.calls++
	s.origin = origin
	s.halfExtents = halfExtents
	s.direction = direction
	s.orientation = orientation
	s.maxDistance = maxDistance
	s.mask = mask
	return s.distance, s.hit
}

func assertVecNear(t *testing.T, want, got math.Vec3, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "X")
	assert.InDelta(t, want.Y, got.Y, delta, "Y")
	assert.InDelta(t, want.Z, got.Z, delta, "Z")
}

func TestLensHalfExtents(t *testing.T) {
	lens := Lens{NearClip: 1, FieldOfView: 90, Aspect: 2}
	assertVecNear(t, math.Vec3{X: 2, Y: 1, Z: 0}, lens.HalfExtents(), 1e-5)
}

func TestPoseWithoutVisibility(t *testing.T) {
	s := DefaultSettings()
	angles := OrbitAngles{Pitch: 0, Yaw: 180}
	r := NewPoseResolver(nil, DefaultLens(), &s, angles)

	focus := math.Vec3{X: 1, Y: 2, Z: 3}
	pose := r.Resolve(angles, true, focus, focus)

	// Facing -Z, the camera sits 5 units toward +Z.
	assertVecNear(t, math.Vec3{X: 1, Y: 2, Z: 8}, pose.Position, 1e-4)
	assert.False(t, pose.Obstructed)
}

func TestPoseNoHitPassesThrough(t *testing.T) {
	s := DefaultSettings()
	s.ObstructionMask = 0b101
	lens := DefaultLens()
	vis := &stubVisibility{}
	angles := OrbitAngles{Pitch: 30, Yaw: 45}
	r := NewPoseResolver(vis, lens, &s, angles)

	focus := math.Vec3{X: 2, Y: 1, Z: -4}
	castFrom := focus.Add(math.Vec3{Y: 0.5})
	pose := r.Resolve(angles, true, focus, castFrom)

	forward := angles.Rotation().Forward()
	want := focus.Sub(forward.Scale(s.Distance))
	assertVecNear(t, want, pose.Position, 1e-4)
	assert.False(t, pose.Obstructed)

	require.Equal(t, 1, vis.calls)
	rect := want.Add(forward.Scale(lens.NearClip))
	assert.Equal(t, castFrom, vis.origin)
	assert.Equal(t, lens.HalfExtents(), vis.halfExtents)
	assert.InDelta(t, rect.Sub(castFrom).Length(), vis.maxDistance, 1e-4)
	assertVecNear(t, rect.Sub(castFrom).Normalize(), vis.direction, 1e-4)
	assert.Equal(t, pose.Rotation, vis.orientation)
	assert.Equal(t, LayerMask(0b101), vis.mask)
}

func TestPoseHitPullsCameraIn(t *testing.T) {
	s := DefaultSettings()
	lens := DefaultLens()
	vis := &stubVisibility{hit: true, distance: 2}
	angles := OrbitAngles{Pitch: 0, Yaw: 180}
	r := NewPoseResolver(vis, lens, &s, angles)

	pose := r.Resolve(angles, true, math.Vec3{}, math.Vec3{})

	// Sweep runs toward +Z; the obstruction point is (0,0,2) and the camera
	// backs off from it by the near-plane offset along its look direction.
	require.True(t, pose.Obstructed)
	assert.Equal(t, float32(2), pose.HitDistance)
	assertVecNear(t, math.Vec3{Z: 2 + lens.NearClip}, pose.Position, 1e-4)
	assert.Equal(t, r.Orientation(), pose.Rotation)
}

func TestPoseZeroLengthSweepSkipsQuery(t *testing.T) {
	s := DefaultSettings()
	lens := DefaultLens()
	s.Distance = lens.NearClip
	vis := &stubVisibility{hit: true, distance: 0}
	angles := OrbitAngles{Pitch: 0, Yaw: 0}
	r := NewPoseResolver(vis, lens, &s, angles)

	pose := r.Resolve(angles, true, math.Vec3{}, math.Vec3{})

	assert.Zero(t, vis.calls)
	assert.False(t, pose.Obstructed)
	assertVecNear(t, math.Vec3{Z: -lens.NearClip}, pose.Position, 1e-5)
}

func TestPoseReusesOrientationWhenClean(t *testing.T) {
	s := DefaultSettings()
	initial := OrbitAngles{Pitch: 10, Yaw: 10}
	r := NewPoseResolver(nil, DefaultLens(), &s, initial)

	pose := r.Resolve(OrbitAngles{Pitch: 50, Yaw: 200}, false, math.Vec3{}, math.Vec3{})
	assert.Equal(t, initial.Rotation(), pose.Rotation)

	pose = r.Resolve(OrbitAngles{Pitch: 50, Yaw: 200}, true, math.Vec3{}, math.Vec3{})
	assert.Equal(t, OrbitAngles{Pitch: 50, Yaw: 200}.Rotation(), pose.Rotation)
}
