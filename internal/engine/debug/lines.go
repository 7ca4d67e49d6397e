// Package debug builds wireframe geometry for inspecting the camera and the
// scene it sweeps against.
package debug

import (
	stdmath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/orbitcam/internal/engine/camera"
	"github.com/Faultbox/orbitcam/internal/engine/collision"
	"github.com/Faultbox/orbitcam/pkg/math"
)

// FloatsPerVertex is the interleaved layout: x, y, z, r, g, b.
const FloatsPerVertex = 6

// BoxVertexCount is the number of vertices in a box wireframe (12 edges x 2).
const BoxVertexCount = 24

// Color is an RGB triple.
type Color [3]float32

// Palette used by the viewer.
var (
	ColorGrid     = Color{0.3, 0.3, 0.35}
	ColorCollider = Color{0.9, 0.6, 0.2}
	ColorTarget   = Color{0.2, 0.9, 0.3}
	ColorFocus    = Color{0.2, 0.6, 1.0}
	ColorProbe    = Color{1.0, 0.2, 0.2}
	ColorClear    = Color{0.9, 0.9, 0.9}
)

// Lines accumulates line-list vertices.
type Lines struct {
	Vertices []float32
}

// Reset empties the buffer and keeps its capacity.
func (l *Lines) Reset() {
	l.Vertices = l.Vertices[:0]
}

// Count returns the number of vertices.
func (l *Lines) Count() int {
	return len(l.Vertices) / FloatsPerVertex
}

// Line adds one segment.
func (l *Lines) Line(a, b math.Vec3, c Color) {
	l.Vertices = append(l.Vertices,
		a.X, a.Y, a.Z, c[0], c[1], c[2],
		b.X, b.Y, b.Z, c[0], c[1], c[2],
	)
}

// Box adds the 12 edges of an axis-aligned box.
func (l *Lines) Box(lo, hi math.Vec3, c Color) {
	corner := func(x, y, z bool) math.Vec3 {
		p := lo
		if x {
			p.X = hi.X
		}
		if y {
			p.Y = hi.Y
		}
		if z {
			p.Z = hi.Z
		}
		return p
	}
	for _, y := range []bool{false, true} {
		l.Line(corner(false, y, false), corner(true, y, false), c)
		l.Line(corner(true, y, false), corner(true, y, true), c)
		l.Line(corner(true, y, true), corner(false, y, true), c)
		l.Line(corner(false, y, true), corner(false, y, false), c)
	}
	for _, x := range []bool{false, true} {
		for _, z := range []bool{false, true} {
			l.Line(corner(x, false, z), corner(x, true, z), c)
		}
	}
}

// Grid adds a square grid on the XZ plane at height y, centered on the origin.
func (l *Lines) Grid(halfSize, step, y float32, c Color) {
	if step <= 0 {
		return
	}
	n := int(halfSize / step)
	for i := -n; i <= n; i++ {
		o := float32(i) * step
		l.Line(math.Vec3{X: o, Y: y, Z: -halfSize}, math.Vec3{X: o, Y: y, Z: halfSize}, c)
		l.Line(math.Vec3{X: -halfSize, Y: y, Z: o}, math.Vec3{X: halfSize, Y: y, Z: o}, c)
	}
}

// Marker adds a three-axis cross centered on p.
func (l *Lines) Marker(p math.Vec3, size float32, c Color) {
	h := size / 2
	l.Line(p.Sub(math.Vec3{X: h}), p.Add(math.Vec3{X: h}), c)
	l.Line(p.Sub(math.Vec3{Y: h}), p.Add(math.Vec3{Y: h}), c)
	l.Line(p.Sub(math.Vec3{Z: h}), p.Add(math.Vec3{Z: h}), c)
}

// Sphere adds three great circles around center.
func (l *Lines) Sphere(center math.Vec3, radius float32, segments int, c Color) {
	if segments < 3 {
		segments = 3
	}
	ring := func(point func(s, co float32) math.Vec3) {
		prev := point(0, 1)
		for i := 1; i <= segments; i++ {
			a := 2 * stdmath.Pi * float64(i) / float64(segments)
			next := point(float32(stdmath.Sin(a)), float32(stdmath.Cos(a)))
			l.Line(prev, next, c)
			prev = next
		}
	}
	ring(func(s, co float32) math.Vec3 { return center.Add(math.Vec3{X: co * radius, Z: s * radius}) })
	ring(func(s, co float32) math.Vec3 { return center.Add(math.Vec3{X: co * radius, Y: s * radius}) })
	ring(func(s, co float32) math.Vec3 { return center.Add(math.Vec3{Y: co * radius, Z: s * radius}) })
}

// PlanePatch adds a square outline and cross of the given half size on the
// plane, centered on the point closest to anchor.
func (l *Lines) PlanePatch(pl collision.Plane, anchor math.Vec3, halfSize float32, c Color) {
	n := math.Vec3{X: pl.Normal[0], Y: pl.Normal[1], Z: pl.Normal[2]}
	center := anchor.Sub(n.Scale(n.Dot(anchor) - pl.Offset))

	ref := math.Vec3Up
	if stdmath.Abs(float64(n.Dot(ref))) > 0.9 {
		ref = math.Vec3Right
	}
	u := n.Cross(ref).Normalize().Scale(halfSize)
	v := n.Cross(u).Normalize().Scale(halfSize)

	a := center.Add(u).Add(v)
	b := center.Add(u).Sub(v)
	d := center.Sub(u).Sub(v)
	e := center.Sub(u).Add(v)
	l.Line(a, b, c)
	l.Line(b, d, c)
	l.Line(d, e, c)
	l.Line(e, a, c)
	l.Line(a, d, c)
	l.Line(b, e, c)
}

// Collider adds the wireframe for a collider. Planes are drawn around anchor.
func (l *Lines) Collider(col collision.Collider, anchor math.Vec3, c Color) {
	switch s := col.Shape.(type) {
	case collision.Box:
		l.Box(fromMgl(s.Min), fromMgl(s.Max), c)
	case collision.Sphere:
		l.Sphere(fromMgl(s.Center), s.Radius, 24, c)
	case collision.Plane:
		l.PlanePatch(s, anchor, 10, c)
	}
}

// ProbeCorners returns the four corners of the near-plane rectangle the
// camera sweeps for the given pose.
func ProbeCorners(pose camera.Pose, lens camera.Lens) [4]math.Vec3 {
	half := lens.HalfExtents()
	center := pose.Position.Add(pose.Forward().Scale(lens.NearClip))
	right := pose.Rotation.Right().Scale(half.X)
	up := pose.Rotation.Up().Scale(half.Y)
	return [4]math.Vec3{
		center.Sub(right).Sub(up),
		center.Add(right).Sub(up),
		center.Add(right).Add(up),
		center.Sub(right).Add(up),
	}
}

// Probe adds the near-plane rectangle and a line from it to the focus.
func (l *Lines) Probe(pose camera.Pose, lens camera.Lens) {
	c := ColorClear
	if pose.Obstructed {
		c = ColorProbe
	}
	q := ProbeCorners(pose, lens)
	for i := range q {
		l.Line(q[i], q[(i+1)%4], c)
	}
	l.Line(pose.Position, pose.Focus, c)
}

func fromMgl(v mgl32.Vec3) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
