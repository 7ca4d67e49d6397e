package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/Faultbox/orbitcam/internal/engine/camera"
	"github.com/Faultbox/orbitcam/internal/engine/collision"
	"github.com/Faultbox/orbitcam/pkg/math"
)

func vertex(l *Lines, i int) math.Vec3 {
	o := i * FloatsPerVertex
	return math.Vec3{X: l.Vertices[o], Y: l.Vertices[o+1], Z: l.Vertices[o+2]}
}

func TestBox(t *testing.T) {
	var l Lines
	l.Box(math.Vec3{X: -1, Y: 0, Z: -2}, math.Vec3{X: 1, Y: 3, Z: 2}, ColorCollider)

	require.Equal(t, BoxVertexCount, l.Count())
	for i := 0; i < l.Count(); i++ {
		v := vertex(&l, i)
		assert.Contains(t, []float32{-1, 1}, v.X)
		assert.Contains(t, []float32{0, 3}, v.Y)
		assert.Contains(t, []float32{-2, 2}, v.Z)
	}

	// Color is carried per vertex
	assert.Equal(t, ColorCollider[0], l.Vertices[3])
}

func TestGrid(t *testing.T) {
	var l Lines
	l.Grid(5, 1, 0, ColorGrid)
	// 11 lines per direction
	assert.Equal(t, 44, l.Count())

	l.Reset()
	l.Grid(5, 0, 0, ColorGrid)
	assert.Zero(t, l.Count())
}

func TestSphereStaysOnRadius(t *testing.T) {
	var l Lines
	center := math.Vec3{X: 2, Y: 1, Z: -3}
	l.Sphere(center, 1.5, 16, ColorCollider)

	assert.Equal(t, 3*16*2, l.Count())
	for i := 0; i < l.Count(); i++ {
		assert.InDelta(t, 1.5, vertex(&l, i).Distance(center), 1e-4)
	}
}

func TestPlanePatchLiesOnPlane(t *testing.T) {
	pl := collision.PlaneFromPoint(mgl32.Vec3{0, 0, -2}, mgl32.Vec3{0, 0, 1})
	var l Lines
	l.PlanePatch(pl, math.Vec3{X: 3, Y: 4, Z: 7}, 2, ColorCollider)

	require.Equal(t, 12, l.Count())
	for i := 0; i < l.Count(); i++ {
		assert.InDelta(t, -2, vertex(&l, i).Z, 1e-5)
	}
}

func TestCollider(t *testing.T) {
	var l Lines
	l.Collider(collision.Collider{Shape: collision.NewBox(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1})}, math.Vec3{}, ColorCollider)
	assert.Equal(t, BoxVertexCount, l.Count())
}

func TestProbeCorners(t *testing.T) {
	lens := camera.DefaultLens()
	pose := camera.Pose{
		Position: math.Vec3{Z: -5},
		Rotation: math.QuatIdentity(),
	}

	q := ProbeCorners(pose, lens)
	half := lens.HalfExtents()
	for _, c := range q {
		assert.InDelta(t, -5+lens.NearClip, c.Z, 1e-5)
		assert.InDelta(t, half.X, math.Abs(c.X), 1e-5)
		assert.InDelta(t, half.Y, math.Abs(c.Y), 1e-5)
	}

	var l Lines
	l.Probe(pose, lens)
	assert.Equal(t, 10, l.Count())
	assert.Equal(t, ColorClear[0], l.Vertices[3])

	l.Reset()
	pose.Obstructed = true
	l.Probe(pose, lens)
	assert.Equal(t, ColorProbe[0], l.Vertices[3])
}

func TestCaptureFromPixels(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "orbit")
	sc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	// 1x2 image: bottom row red, top row blue as OpenGL returns them
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := sc.CaptureFromPixels(pixels, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, sc.Filename(), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r)
	assert.NotZero(t, b)

	_, err = sc.CaptureFromPixels(pixels[:4], 1, 2)
	assert.Error(t, err)
}

func TestCaptureBMP(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "orbit")
	require.NoError(t, sc.SetFormat("BMP"))
	assert.Error(t, sc.SetFormat("gif"))

	path, err := sc.CaptureFromPixels(make([]byte, 2*2*4), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, ".bmp", filepath.Ext(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := bmp.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
}
