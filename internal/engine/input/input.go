// Package input turns SDL2 events into camera axes and held keys.
package input

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/orbitcam/internal/engine/camera"
)

var _ camera.Input = (*Input)(nil)

// EventType classifies the events the viewer reacts to.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
}

// KeyAxis maps a pair of keys to one axis in [-1, 1].
type KeyAxis struct {
	Positive sdl.Scancode
	Negative sdl.Scancode
}

// Input tracks held keys and drag motion between frames.
type Input struct {
	events []Event
	held   map[sdl.Scancode]bool
	axes   map[string]KeyAxis

	sensitivity float32

	// Mouse motion accumulated this frame while the right button is held.
	dragging     bool
	dragX, dragY float32
	dragScale    float32
}

// New creates an input handler with no bindings.
func New(sensitivity float32) *Input {
	if sensitivity <= 0 {
		sensitivity = 1
	}
	return &Input{
		events:      make([]Event, 0, 16),
		held:        make(map[sdl.Scancode]bool),
		axes:        make(map[string]KeyAxis),
		sensitivity: sensitivity,
		dragScale:   0.1,
	}
}

// Bind maps an axis name to two SDL key names such as "I" and "K".
func (i *Input) Bind(axis, positive, negative string) error {
	pos := sdl.GetScancodeFromName(positive)
	if pos == sdl.SCANCODE_UNKNOWN {
		return fmt.Errorf("axis %q: unknown key %q", axis, positive)
	}
	neg := sdl.GetScancodeFromName(negative)
	if neg == sdl.SCANCODE_UNKNOWN {
		return fmt.Errorf("axis %q: unknown key %q", axis, negative)
	}
	i.BindScancodes(axis, KeyAxis{Positive: pos, Negative: neg})
	return nil
}

// BindScancodes maps an axis name to a key pair.
func (i *Input) BindScancodes(axis string, keys KeyAxis) {
	i.axes[axis] = keys
}

// Update polls SDL events. Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.dragX, i.dragY = 0, 0

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.handle(event) {
			quit = true
		}
	}
	return quit
}

// handle applies one event and reports whether it asks to quit.
func (i *Input) handle(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		return true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		}

	case *sdl.KeyboardEvent:
		code := e.Keysym.Scancode
		switch e.Type {
		case sdl.KEYDOWN:
			if e.Repeat == 0 {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: code})
			}
			i.held[code] = true
		case sdl.KEYUP:
			i.events = append(i.events, Event{Type: EventKeyUp, Key: code})
			delete(i.held, code)
		}

	case *sdl.MouseButtonEvent:
		if e.Button == sdl.BUTTON_RIGHT {
			i.dragging = e.Type == sdl.MOUSEBUTTONDOWN
		}

	case *sdl.MouseMotionEvent:
		if i.dragging {
			i.dragX += float32(e.XRel) * i.dragScale
			i.dragY += float32(e.YRel) * i.dragScale
		}
	}
	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Held reports whether a key is currently down.
func (i *Input) Held(code sdl.Scancode) bool {
	return i.held[code]
}

// Pressed reports whether a key went down during the last Update.
func (i *Input) Pressed(code sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == code {
			return true
		}
	}
	return false
}

// Axis implements camera.Input. Bound keys give -1, 0 or 1; right-button
// drag adds to the camera axes.
func (i *Input) Axis(name string) float32 {
	var v float32
	if keys, ok := i.axes[name]; ok {
		if i.held[keys.Positive] {
			v++
		}
		if i.held[keys.Negative] {
			v--
		}
	}
	switch name {
	case camera.AxisVertical:
		v += i.dragY
	case camera.AxisHorizontal:
		v += i.dragX
	}
	return v * i.sensitivity
}
