package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/orbitcam/pkg/math"
)

// moveKeys reads WASD, space and shift into a local direction: X right,
// Y up, Z forward.
func moveKeys(held func(sdl.Scancode) bool) math.Vec3 {
	var d math.Vec3
	if held(sdl.SCANCODE_W) {
		d.Z++
	}
	if held(sdl.SCANCODE_S) {
		d.Z--
	}
	if held(sdl.SCANCODE_D) {
		d.X++
	}
	if held(sdl.SCANCODE_A) {
		d.X--
	}
	if held(sdl.SCANCODE_SPACE) {
		d.Y++
	}
	if held(sdl.SCANCODE_LSHIFT) {
		d.Y--
	}
	return d
}

// targetStep turns a local direction into a world displacement, with
// forward following the camera yaw so W walks away from the camera.
func targetStep(local math.Vec3, yaw, speed, dt float32) math.Vec3 {
	planar := math.Vec3{X: local.X, Z: local.Z}
	if planar.LengthSquared() > 1 {
		planar = planar.Normalize()
	}
	rot := math.QuatFromEuler(0, yaw, 0)
	world := rot.Rotate(planar)
	world.Y = local.Y
	return world.Scale(speed * dt)
}
