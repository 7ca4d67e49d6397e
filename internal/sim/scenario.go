// Package sim runs the orbit camera headlessly against scripted target
// motion, scripted input and a static collision world.
package sim

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/orbitcam/internal/engine/collision"
	"github.com/Faultbox/orbitcam/pkg/math"
)

// Point is a position written as [x, y, z].
type Point [3]float32

// Vec3 converts to the math type.
func (p Point) Vec3() math.Vec3 {
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

func (p Point) mgl() mgl32.Vec3 {
	return mgl32.Vec3(p)
}

func pointOf(v math.Vec3) Point {
	return Point{v.X, v.Y, v.Z}
}

// Scenario is a scripted run loaded from YAML.
type Scenario struct {
	Name      string         `yaml:"name"`
	Frames    int            `yaml:"frames"`
	DeltaTime float32        `yaml:"delta_time"`
	Angles    *AnglesSpec    `yaml:"angles,omitempty"`
	Waypoints []Waypoint     `yaml:"waypoints"`
	Input     []InputSegment `yaml:"input"`
	Colliders []ColliderSpec `yaml:"colliders"`
}

// AnglesSpec overrides the starting orbit angles.
type AnglesSpec struct {
	Pitch float32 `yaml:"pitch"`
	Yaw   float32 `yaml:"yaw"`
}

// Waypoint places the target at Position when the clock reads Time.
type Waypoint struct {
	Time     float32 `yaml:"time"`
	Position Point   `yaml:"position,flow"`
}

// InputSegment holds axis values for From <= t < To.
type InputSegment struct {
	From       float32 `yaml:"from"`
	To         float32 `yaml:"to"`
	Vertical   float32 `yaml:"vertical"`
	Horizontal float32 `yaml:"horizontal"`
}

// Collider types.
const (
	ShapePlane  = "plane"
	ShapeSphere = "sphere"
	ShapeBox    = "box"
)

// ColliderSpec describes one static collider.
type ColliderSpec struct {
	Name     string  `yaml:"name"`
	Type     string  `yaml:"type"`
	Layer    int     `yaml:"layer"`
	Point    Point   `yaml:"point,flow"`     // plane: any point on it; sphere/box: center
	Normal   Point   `yaml:"normal,flow"`    // plane only
	Radius   float32 `yaml:"radius"`         // sphere only
	HalfSize Point   `yaml:"half_size,flow"` // box only
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// ParseScenario decodes and validates scenario YAML. Waypoints are sorted by
// time.
func ParseScenario(data []byte) (*Scenario, error) {
	sc := &Scenario{DeltaTime: 1.0 / 60}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	sort.SliceStable(sc.Waypoints, func(i, j int) bool {
		return sc.Waypoints[i].Time < sc.Waypoints[j].Time
	})
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Validate checks the scenario can be run.
func (s *Scenario) Validate() error {
	if s.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", s.Frames)
	}
	if s.DeltaTime <= 0 {
		return fmt.Errorf("delta_time must be positive, got %v", s.DeltaTime)
	}
	if len(s.Waypoints) == 0 {
		return fmt.Errorf("at least one waypoint is required")
	}
	for i, seg := range s.Input {
		if seg.To < seg.From {
			return fmt.Errorf("input[%d]: to %v before from %v", i, seg.To, seg.From)
		}
	}
	for i, c := range s.Colliders {
		if _, err := c.Collider(); err != nil {
			return fmt.Errorf("colliders[%d]: %w", i, err)
		}
	}
	return nil
}

// Collider builds the collision shape.
func (c ColliderSpec) Collider() (collision.Collider, error) {
	if c.Layer < 0 || c.Layer > 31 {
		return collision.Collider{}, fmt.Errorf("%s: layer %d out of range 0..31", c.Name, c.Layer)
	}

	var shape collision.Shape
	switch c.Type {
	case ShapePlane:
		if c.Normal.mgl().Len() == 0 {
			return collision.Collider{}, fmt.Errorf("%s: plane needs a normal", c.Name)
		}
		shape = collision.PlaneFromPoint(c.Point.mgl(), c.Normal.mgl())
	case ShapeSphere:
		if c.Radius <= 0 {
			return collision.Collider{}, fmt.Errorf("%s: sphere radius must be positive", c.Name)
		}
		shape = collision.Sphere{Center: c.Point.mgl(), Radius: c.Radius}
	case ShapeBox:
		h := c.HalfSize
		if h[0] <= 0 || h[1] <= 0 || h[2] <= 0 {
			return collision.Collider{}, fmt.Errorf("%s: box half_size must be positive", c.Name)
		}
		shape = collision.NewBox(c.Point.mgl(), h.mgl())
	default:
		return collision.Collider{}, fmt.Errorf("%s: unknown collider type %q", c.Name, c.Type)
	}
	return collision.Collider{Name: c.Name, Shape: shape, Layer: c.Layer}, nil
}

// World builds the collision world from the scenario colliders.
func (s *Scenario) World() (*collision.World, error) {
	w := collision.NewWorld()
	for i, cs := range s.Colliders {
		c, err := cs.Collider()
		if err != nil {
			return nil, fmt.Errorf("colliders[%d]: %w", i, err)
		}
		w.Add(c)
	}
	return w, nil
}
