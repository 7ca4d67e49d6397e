package collision

import (
	"github.com/go-gl/mathgl/mgl32"
)

// probe is an oriented box being swept along a ray.
type probe struct {
	ray      Ray
	rotation mgl32.Quat
	axes     [3]mgl32.Vec3
	half     mgl32.Vec3
}

func newProbe(origin, direction, half mgl32.Vec3, rotation mgl32.Quat) probe {
	rotation = rotation.Normalize()
	return probe{
		ray:      Ray{Origin: origin, Direction: direction},
		rotation: rotation,
		axes: [3]mgl32.Vec3{
			rotation.Rotate(mgl32.Vec3{1, 0, 0}),
			rotation.Rotate(mgl32.Vec3{0, 1, 0}),
			rotation.Rotate(mgl32.Vec3{0, 0, 1}),
		},
		half: half,
	}
}

// supportRadius is the half length of the probe projected onto n.
func (p probe) supportRadius(n mgl32.Vec3) float32 {
	var r float32
	for i, axis := range p.axes {
		r += mgl32.Abs(n.Dot(axis)) * p.half[i]
	}
	return r
}

// worldExtents is the half size of the probe's world-axis bounding box.
func (p probe) worldExtents() mgl32.Vec3 {
	var e mgl32.Vec3
	for j := 0; j < 3; j++ {
		for i, axis := range p.axes {
			e[j] += mgl32.Abs(axis[j]) * p.half[i]
		}
	}
	return e
}

// Shape is collision geometry that can be hit by a swept probe.
type Shape interface {
	// sweep returns the travel distance at which the probe first touches
	// the shape. Shapes overlapping the probe at the start are not hit.
	sweep(p probe) (float32, bool)
	// Bounds returns a box enclosing the shape, or false if unbounded.
	Bounds() (AABB, bool)
}

// Plane is an infinite plane of points x with Normal·x = Offset.
type Plane struct {
	Normal mgl32.Vec3
	Offset float32
}

// PlaneFromPoint creates the plane through point with the given normal.
func PlaneFromPoint(point, normal mgl32.Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, Offset: n.Dot(point)}
}

func (pl Plane) sweep(p probe) (float32, bool) {
	r := p.supportRadius(pl.Normal)
	s0 := pl.Normal.Dot(p.ray.Origin) - pl.Offset
	sd := pl.Normal.Dot(p.ray.Direction)

	switch {
	case s0 > r:
		if sd >= 0 {
			return 0, false
		}
		return (s0 - r) / -sd, true
	case s0 < -r:
		if sd <= 0 {
			return 0, false
		}
		return (-r - s0) / sd, true
	default:
		return 0, false
	}
}

// Bounds implements Shape. Planes are unbounded.
func (pl Plane) Bounds() (AABB, bool) {
	return AABB{}, false
}

// Box is an axis-aligned solid box.
type Box struct {
	AABB
}

// NewBox creates a box from its center and half size.
func NewBox(center, half mgl32.Vec3) Box {
	return Box{AABB: NewAABB(center.Sub(half), center.Add(half))}
}

// The Minkowski sum of the box and the probe's world bounding box is exact
// for axis-aligned probes and slightly early for rotated ones.
func (b Box) sweep(p probe) (float32, bool) {
	return p.ray.EnterAABB(b.AABB.Expand(p.worldExtents()))
}

// Bounds implements Shape.
func (b Box) Bounds() (AABB, bool) {
	return b.AABB, true
}

// Sphere is a solid sphere.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// The sphere is tested in the probe's frame as a ray against the probe box
// inflated by the radius, which over-reports near the box corners.
func (s Sphere) sweep(p probe) (float32, bool) {
	inv := p.rotation.Conjugate()
	local := Ray{
		Origin:    inv.Rotate(p.ray.Origin.Sub(s.Center)),
		Direction: inv.Rotate(p.ray.Direction),
	}
	r := mgl32.Vec3{s.Radius, s.Radius, s.Radius}
	inflated := AABB{Min: p.half.Mul(-1).Sub(r), Max: p.half.Add(r)}

	// Sweeping the probe past the sphere equals sweeping the sphere center
	// backwards past the inflated probe.
	local.Origin = local.Origin.Mul(-1)
	local.Direction = local.Direction.Mul(-1)
	return local.EnterAABB(inflated)
}

// Bounds implements Shape.
func (s Sphere) Bounds() (AABB, bool) {
	r := mgl32.Vec3{s.Radius, s.Radius, s.Radius}
	return AABB{Min: s.Center.Sub(r), Max: s.Center.Add(r)}, true
}
