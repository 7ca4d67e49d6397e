package collision

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/orbitcam/internal/engine/camera"
	"github.com/Faultbox/orbitcam/pkg/math"
)

// Collider places a shape on a collision layer.
type Collider struct {
	Name  string
	Shape Shape
	Layer int // 0..31
}

// World is a static set of colliders answering box sweeps.
type World struct {
	colliders []Collider
}

var _ camera.Visibility = (*World)(nil)

// NewWorld creates a world holding the given colliders.
func NewWorld(colliders ...Collider) *World {
	return &World{colliders: colliders}
}

// Add inserts a collider.
func (w *World) Add(c Collider) {
	w.colliders = append(w.colliders, c)
}

// Colliders returns the colliders in insertion order.
func (w *World) Colliders() []Collider {
	return w.colliders
}

// BoxCast implements camera.Visibility. The nearest contact within
// maxDistance on a layer selected by mask wins.
func (w *World) BoxCast(origin, halfExtents, direction math.Vec3, orientation math.Quat, maxDistance float32, mask camera.LayerMask) (float32, bool) {
	p := newProbe(
		toMgl(origin),
		toMgl(direction).Normalize(),
		toMgl(halfExtents),
		mgl32.Quat{W: orientation.W, V: mgl32.Vec3{orientation.X, orientation.Y, orientation.Z}},
	)

	best := maxDistance
	found := false
	for _, c := range w.colliders {
		if !mask.Contains(c.Layer) {
			continue
		}
		t, hit := c.Shape.sweep(p)
		if hit && t <= best {
			best = t
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return best, true
}

func toMgl(v math.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}
