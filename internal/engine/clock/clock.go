// Package clock provides frame timing sources for the orbit camera.
package clock

import (
	"time"

	"github.com/Faultbox/orbitcam/internal/engine/camera"
)

var (
	_ camera.Clock = (*Realtime)(nil)
	_ camera.Clock = (*Fixed)(nil)
)

// Realtime measures wall-clock frame time. Call Tick once at the top of
// every frame.
type Realtime struct {
	now   func() time.Time
	start time.Time
	last  time.Time
	delta float32
	// maxDelta caps one frame's delta after stalls such as window drags.
	maxDelta float32
}

// NewRealtime creates a clock starting now. maxDelta <= 0 disables the cap.
func NewRealtime(maxDelta float32) *Realtime {
	return newRealtime(time.Now, maxDelta)
}

func newRealtime(now func() time.Time, maxDelta float32) *Realtime {
	t := now()
	return &Realtime{now: now, start: t, last: t, maxDelta: maxDelta}
}

// Tick advances the clock and returns the new delta in seconds.
func (c *Realtime) Tick() float32 {
	t := c.now()
	c.delta = float32(t.Sub(c.last).Seconds())
	c.last = t
	if c.maxDelta > 0 && c.delta > c.maxDelta {
		c.delta = c.maxDelta
	}
	return c.delta
}

// UnscaledDeltaTime implements camera.Clock.
func (c *Realtime) UnscaledDeltaTime() float32 {
	return c.delta
}

// UnscaledTime implements camera.Clock.
func (c *Realtime) UnscaledTime() float32 {
	return float32(c.last.Sub(c.start).Seconds())
}

// Fixed advances by a constant step. It drives headless runs and tests.
type Fixed struct {
	step  float32
	frame int
}

// NewFixed creates a clock with the given step in seconds.
func NewFixed(step float32) *Fixed {
	return &Fixed{step: step}
}

// Tick moves to the next frame.
func (c *Fixed) Tick() float32 {
	c.frame++
	return c.step
}

// Frame returns the number of ticks so far.
func (c *Fixed) Frame() int {
	return c.frame
}

// UnscaledDeltaTime implements camera.Clock. It is zero before the first tick.
func (c *Fixed) UnscaledDeltaTime() float32 {
	if c.frame == 0 {
		return 0
	}
	return c.step
}

// UnscaledTime implements camera.Clock. Time is computed from the frame
// count so long runs do not accumulate rounding.
func (c *Fixed) UnscaledTime() float32 {
	return float32(float64(c.frame) * float64(c.step))
}
