package collision_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/orbitcam/internal/engine/camera"
	"github.com/Faultbox/orbitcam/internal/engine/collision"
	"github.com/Faultbox/orbitcam/pkg/math"
)

// Focus at the origin, distance 5, facing -Z: the camera sits on +Z and the
// sweep runs from the target toward it.
func newFacingNegZ(world *collision.World) *camera.OrbitCamera {
	s := camera.DefaultSettings()
	s.Distance = 5
	s.FocusRadius = 0
	return camera.New(&camera.StaticTarget{}, world, s, camera.DefaultLens(),
		camera.WithOrbitAngles(camera.OrbitAngles{Pitch: 0, Yaw: 180}))
}

func TestObstructionPullIn(t *testing.T) {
	world := collision.NewWorld(collision.Collider{
		Name:  "wall",
		Shape: collision.PlaneFromPoint(mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 0, -1}),
	})
	cam := newFacingNegZ(world)

	pose := cam.Step(camera.Frame{DeltaTime: 0.016, Time: 0})

	near := camera.DefaultLens().NearClip
	require.True(t, pose.Obstructed)
	assert.InDelta(t, 2, pose.HitDistance, 1e-3)
	assert.InDelta(t, 2+near, pose.Position.Z, 1e-3)
	assert.InDelta(t, 0, pose.Position.X, 1e-3)
	assert.InDelta(t, 0, pose.Position.Y, 1e-3)
}

func TestNoObstructionPassThrough(t *testing.T) {
	cam := newFacingNegZ(collision.NewWorld())

	pose := cam.Step(camera.Frame{DeltaTime: 0.016, Time: 0})

	want := math.Vec3{}.Sub(pose.Forward().Scale(5))
	assert.False(t, pose.Obstructed)
	assert.InDelta(t, want.X, pose.Position.X, 1e-5)
	assert.InDelta(t, want.Y, pose.Position.Y, 1e-5)
	assert.InDelta(t, want.Z, pose.Position.Z, 1e-5)
	assert.InDelta(t, 5, pose.Position.Z, 1e-4)
}

func TestObstructionBeyondCameraIsIgnored(t *testing.T) {
	world := collision.NewWorld(collision.Collider{
		Shape: collision.PlaneFromPoint(mgl32.Vec3{0, 0, 6}, mgl32.Vec3{0, 0, -1}),
	})
	cam := newFacingNegZ(world)

	pose := cam.Step(camera.Frame{DeltaTime: 0.016, Time: 0})
	assert.False(t, pose.Obstructed)
}
