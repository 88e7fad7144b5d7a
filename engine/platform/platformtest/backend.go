// Package platformtest provides a scriptable in-memory windowing backend for tests.
package platformtest

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/onyx/engine/platform"
)

var (
	// ErrInit is a convenience error for failing Init.
	ErrInit = errors.New("platformtest: init failed")
	// ErrCreate is a convenience error for failing CreateWindow.
	ErrCreate = errors.New("platformtest: create window failed")
)

// Window is the fake native window behind a handle.
type Window struct {
	Title       string
	Width       int
	Height      int
	X, Y        int
	ShouldClose bool
	Monitor     *platform.Monitor
	Callbacks   platform.Callbacks
	Swaps       int
	Destroyed   bool
}

// Backend records calls and delivers queued events from PollEvents.
// Framebuffer sizes are the logical size multiplied by Scale.
type Backend struct {
	// Calls holds a readable trace such as "SwapBuffers(1)".
	Calls []string

	InitErr    error
	CreateErr  error
	Monitor    *platform.Monitor
	MonitorErr error
	Scale      int

	InitCalls      int
	TerminateCalls int
	MonitorQueries int
	PollCalls      int
	SwapInterval   int
	Current        platform.Handle

	Windows    map[platform.Handle]*Window
	pending    []func()
	nextHandle platform.Handle
}

func New() *Backend {
	return &Backend{
		Monitor: &platform.Monitor{
			Name: "Fake Monitor",
			Mode: platform.VideoMode{Width: 1920, Height: 1080, RefreshRate: 60},
		},
		Scale:   1,
		Windows: make(map[platform.Handle]*Window),
	}
}

func (b *Backend) record(format string, args ...interface{}) {
	b.Calls = append(b.Calls, fmt.Sprintf(format, args...))
}

func (b *Backend) Init() error {
	b.record("Init()")
	b.InitCalls++
	return b.InitErr
}

func (b *Backend) Terminate() {
	b.record("Terminate()")
	b.TerminateCalls++
}

func (b *Backend) CreateWindow(title string, width, height int) (platform.Handle, error) {
	b.record("CreateWindow(%q, %d, %d)", title, width, height)
	if b.CreateErr != nil {
		return platform.InvalidHandle, b.CreateErr
	}
	b.nextHandle++
	b.Windows[b.nextHandle] = &Window{
		Title:  title,
		Width:  width,
		Height: height,
		X:      100,
		Y:      100,
	}
	return b.nextHandle, nil
}

func (b *Backend) DestroyWindow(h platform.Handle) {
	b.record("DestroyWindow(%d)", h)
	if w, ok := b.Windows[h]; ok {
		w.Destroyed = true
		w.Callbacks = platform.Callbacks{}
		delete(b.Windows, h)
	}
}

func (b *Backend) MakeContextCurrent(h platform.Handle) {
	b.record("MakeContextCurrent(%d)", h)
	b.Current = h
}

func (b *Backend) SetSwapInterval(interval int) {
	b.record("SetSwapInterval(%d)", interval)
	b.SwapInterval = interval
}

func (b *Backend) SetCallbacks(h platform.Handle, callbacks platform.Callbacks) {
	b.record("SetCallbacks(%d)", h)
	if w, ok := b.Windows[h]; ok {
		w.Callbacks = callbacks
	}
}

func (b *Backend) PrimaryMonitor() (*platform.Monitor, error) {
	b.record("PrimaryMonitor()")
	b.MonitorQueries++
	if b.MonitorErr != nil {
		return nil, b.MonitorErr
	}
	return b.Monitor, nil
}

// PollEvents delivers every queued event in order through the callbacks
// installed at the time of delivery.
func (b *Backend) PollEvents() {
	b.record("PollEvents()")
	b.PollCalls++
	pending := b.pending
	b.pending = nil
	for _, deliver := range pending {
		deliver()
	}
}

func (b *Backend) SwapBuffers(h platform.Handle) {
	b.record("SwapBuffers(%d)", h)
	if w, ok := b.Windows[h]; ok {
		w.Swaps++
	}
}

func (b *Backend) ShouldClose(h platform.Handle) bool {
	w, ok := b.Windows[h]
	if !ok {
		return true
	}
	return w.ShouldClose
}

func (b *Backend) SetShouldClose(h platform.Handle, value bool) {
	b.record("SetShouldClose(%d, %t)", h, value)
	if w, ok := b.Windows[h]; ok {
		w.ShouldClose = value
	}
}

func (b *Backend) FramebufferSize(h platform.Handle) (int, int) {
	w, ok := b.Windows[h]
	if !ok {
		return 0, 0
	}
	return w.Width * b.Scale, w.Height * b.Scale
}

func (b *Backend) WindowPos(h platform.Handle) (int, int) {
	w, ok := b.Windows[h]
	if !ok {
		return 0, 0
	}
	return w.X, w.Y
}

func (b *Backend) SetWindowPos(h platform.Handle, x, y int) {
	b.record("SetWindowPos(%d, %d, %d)", h, x, y)
	if w, ok := b.Windows[h]; ok {
		w.X, w.Y = x, y
	}
}

// SetMonitor resizes the fake window and queues the framebuffer event a
// real system would send.
func (b *Backend) SetMonitor(h platform.Handle, monitor *platform.Monitor, x, y, width, height, refreshRate int) {
	name := "<nil>"
	if monitor != nil {
		name = monitor.Name
	}
	b.record("SetMonitor(%d, %s, %d, %d, %d, %d, %d)", h, name, x, y, width, height, refreshRate)
	w, ok := b.Windows[h]
	if !ok {
		return
	}
	w.Monitor = monitor
	w.X, w.Y = x, y
	w.Width, w.Height = width, height
	b.QueueFramebufferSize(h, width*b.Scale, height*b.Scale)
}

// Resize changes the logical size of a window as a user drag would and
// queues the matching framebuffer event.
func (b *Backend) Resize(h platform.Handle, width, height int) {
	if w, ok := b.Windows[h]; ok {
		w.Width, w.Height = width, height
	}
	b.QueueFramebufferSize(h, width*b.Scale, height*b.Scale)
}

func (b *Backend) QueueFramebufferSize(h platform.Handle, width, height int) {
	b.queue(h, func(cb platform.Callbacks) {
		if cb.FramebufferSize != nil {
			cb.FramebufferSize(h, width, height)
		}
	})
}

func (b *Backend) QueueKey(h platform.Handle, key, scancode, action, mods int) {
	b.queue(h, func(cb platform.Callbacks) {
		if cb.Key != nil {
			cb.Key(h, key, scancode, action, mods)
		}
	})
}

func (b *Backend) QueueMouseButton(h platform.Handle, button, action, mods int) {
	b.queue(h, func(cb platform.Callbacks) {
		if cb.MouseButton != nil {
			cb.MouseButton(h, button, action, mods)
		}
	})
}

func (b *Backend) QueueCursorPos(h platform.Handle, x, y float64) {
	b.queue(h, func(cb platform.Callbacks) {
		if cb.CursorPos != nil {
			cb.CursorPos(h, x, y)
		}
	})
}

// RequestClose simulates the user clicking the close button.
func (b *Backend) RequestClose(h platform.Handle) {
	if w, ok := b.Windows[h]; ok {
		w.ShouldClose = true
	}
}

func (b *Backend) queue(h platform.Handle, deliver func(cb platform.Callbacks)) {
	b.pending = append(b.pending, func() {
		if w, ok := b.Windows[h]; ok {
			deliver(w.Callbacks)
		}
	})
}
