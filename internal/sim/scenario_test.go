package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/orbitcam/internal/engine/collision"
)

const corridorYAML = `
name: corridor
frames: 120
delta_time: 0.02
angles:
  pitch: 10
  yaw: 180
waypoints:
  - time: 2
    position: [4, 0, 0]
  - time: 0
    position: [0, 0, 0]
input:
  - from: 0.5
    to: 1
    horizontal: 1
colliders:
  - name: back wall
    type: plane
    point: [0, 0, 3]
    normal: [0, 0, -1]
  - name: pillar
    type: sphere
    point: [2, 0, 2]
    radius: 0.5
    layer: 3
  - name: crate
    type: box
    point: [-2, 0.5, 0]
    half_size: [0.5, 0.5, 0.5]
`

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(corridorYAML))
	require.NoError(t, err)

	assert.Equal(t, "corridor", sc.Name)
	assert.Equal(t, 120, sc.Frames)
	assert.Equal(t, float32(0.02), sc.DeltaTime)
	require.NotNil(t, sc.Angles)
	assert.Equal(t, float32(180), sc.Angles.Yaw)

	// Sorted by time
	require.Len(t, sc.Waypoints, 2)
	assert.Equal(t, float32(0), sc.Waypoints[0].Time)
	assert.Equal(t, Point{4, 0, 0}, sc.Waypoints[1].Position)

	require.Len(t, sc.Input, 1)
	assert.Equal(t, float32(1), sc.Input[0].Horizontal)

	world, err := sc.World()
	require.NoError(t, err)
	cols := world.Colliders()
	require.Len(t, cols, 3)
	assert.IsType(t, collision.Plane{}, cols[0].Shape)
	assert.IsType(t, collision.Sphere{}, cols[1].Shape)
	assert.Equal(t, 3, cols[1].Layer)
	assert.IsType(t, collision.Box{}, cols[2].Shape)
}

func TestParseScenarioDefaultsDeltaTime(t *testing.T) {
	sc, err := ParseScenario([]byte("frames: 10\nwaypoints:\n  - position: [0, 0, 0]\n"))
	require.NoError(t, err)
	assert.InDelta(t, 1.0/60, sc.DeltaTime, 1e-7)
}

func TestScenarioValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no frames", "waypoints:\n  - position: [0, 0, 0]\n"},
		{"no waypoints", "frames: 5\n"},
		{"negative step", "frames: 5\ndelta_time: -1\nwaypoints:\n  - position: [0, 0, 0]\n"},
		{"reversed input", "frames: 5\nwaypoints:\n  - position: [0, 0, 0]\ninput:\n  - from: 2\n    to: 1\n"},
		{"unknown shape", "frames: 5\nwaypoints:\n  - position: [0, 0, 0]\ncolliders:\n  - type: cone\n"},
		{"plane without normal", "frames: 5\nwaypoints:\n  - position: [0, 0, 0]\ncolliders:\n  - type: plane\n"},
		{"flat box", "frames: 5\nwaypoints:\n  - position: [0, 0, 0]\ncolliders:\n  - type: box\n    half_size: [1, 0, 1]\n"},
		{"bad layer", "frames: 5\nwaypoints:\n  - position: [0, 0, 0]\ncolliders:\n  - type: sphere\n    radius: 1\n    layer: 40\n"},
		{"bad yaml", "frames: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corridor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(corridorYAML), 0644))

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "corridor", sc.Name)

	_, err = LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestScriptedTarget(t *testing.T) {
	target := NewScriptedTarget([]Waypoint{
		{Time: 1, Position: Point{0, 0, 0}},
		{Time: 3, Position: Point{4, 2, 0}},
		{Time: 4, Position: Point{4, 2, -2}},
	})

	assert.Equal(t, Point{0, 0, 0}, pointOf(target.Position()))
	assert.Equal(t, Point{0, 0, 0}, pointOf(target.At(0)))
	assert.Equal(t, Point{2, 1, 0}, pointOf(target.At(2)))
	assert.Equal(t, Point{4, 2, -1}, pointOf(target.At(3.5)))
	assert.Equal(t, Point{4, 2, -2}, pointOf(target.At(10)))

	target.MoveTo(2)
	assert.Equal(t, Point{2, 1, 0}, pointOf(target.Position()))
}

func TestBundledScenario(t *testing.T) {
	sc, err := LoadScenario(filepath.Join("..", "..", "scenarios", "corridor.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 600, sc.Frames)
	assert.Len(t, sc.Colliders, 5)

	world, err := sc.World()
	require.NoError(t, err)
	assert.Len(t, world.Colliders(), 5)
}
