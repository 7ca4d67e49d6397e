// Package ui provides the ImGui backend and camera tuning widgets.
package ui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/orbitcam/internal/engine/camera"
)

// Backend wraps the ImGui SDL backend, which owns the window and GL context.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
}

// NewBackend creates the window and initializes OpenGL.
func NewBackend(title string, width, height int) (*Backend, error) {
	b := &Backend{}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.15, 1.0))
	b.backend.CreateWindow(title, width, height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	return b, nil
}

// Run starts the render loop. frame is called once per frame.
func (b *Backend) Run(frame func()) {
	b.backend.Run(frame)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// FramebufferSize returns the drawable size in pixels.
func FramebufferSize() (int, int) {
	io := imgui.CurrentIO()
	size := io.DisplaySize()
	scale := io.DisplayFramebufferScale()
	return int(size.X * scale.X), int(size.Y * scale.Y)
}

var namedKeys = map[string]imgui.Key{
	"space":      imgui.KeySpace,
	"left shift": imgui.KeyLeftShift,
	"up":         imgui.KeyUpArrow,
	"down":       imgui.KeyDownArrow,
	"left":       imgui.KeyLeftArrow,
	"right":      imgui.KeyRightArrow,
	"f12":        imgui.KeyF12,
}

// KeyFromName maps an SDL style key name such as "I" or "Left Shift" to an
// ImGui key.
func KeyFromName(name string) (imgui.Key, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if len(n) == 1 && n[0] >= 'a' && n[0] <= 'z' {
		return imgui.KeyA + imgui.Key(n[0]-'a'), true
	}
	k, ok := namedKeys[n]
	return k, ok
}

// KeyInput reads camera axes from keys held in ImGui.
type KeyInput struct {
	axes        map[string][2]imgui.Key
	sensitivity float32
}

var _ camera.Input = (*KeyInput)(nil)

// NewKeyInput creates an input with no bindings.
func NewKeyInput(sensitivity float32) *KeyInput {
	if sensitivity <= 0 {
		sensitivity = 1
	}
	return &KeyInput{axes: make(map[string][2]imgui.Key), sensitivity: sensitivity}
}

// Bind maps an axis to a positive and a negative key name.
func (k *KeyInput) Bind(axis, positive, negative string) error {
	pos, ok := KeyFromName(positive)
	if !ok {
		return fmt.Errorf("axis %q: unknown key %q", axis, positive)
	}
	neg, ok := KeyFromName(negative)
	if !ok {
		return fmt.Errorf("axis %q: unknown key %q", axis, negative)
	}
	k.axes[axis] = [2]imgui.Key{pos, neg}
	return nil
}

// Axis implements camera.Input.
func (k *KeyInput) Axis(name string) float32 {
	keys, ok := k.axes[name]
	if !ok {
		return 0
	}
	var v float32
	if imgui.IsKeyDown(keys[0]) {
		v++
	}
	if imgui.IsKeyDown(keys[1]) {
		v--
	}
	return v * k.sensitivity
}

// IsKeyDown reports whether a key is held.
func IsKeyDown(key imgui.Key) bool {
	return imgui.IsKeyDown(key)
}

// IsKeyPressed reports whether a key went down this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}
