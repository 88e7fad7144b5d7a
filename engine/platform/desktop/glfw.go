package desktop

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/onyx/engine/core"
	"github.com/spaghettifunk/onyx/engine/platform"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Backend is the GLFW windowing backend. Every window gets an OpenGL 4.1
// core, forward compatible context.
type Backend struct {
	windows    *core.Registry[platform.Handle, *glfw.Window]
	handles    *core.Registry[*glfw.Window, platform.Handle]
	nextHandle platform.Handle
}

func New() *Backend {
	return &Backend{
		windows:    core.NewRegistry[platform.Handle, *glfw.Window](),
		handles:    core.NewRegistry[*glfw.Window, platform.Handle](),
		nextHandle: 1,
	}
}

func (b *Backend) Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	return nil
}

func (b *Backend) Terminate() {
	glfw.Terminate()
}

func (b *Backend) CreateWindow(title string, width, height int) (platform.Handle, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return platform.InvalidHandle, fmt.Errorf("failed to create window: %w", err)
	}

	h := b.nextHandle
	b.nextHandle++
	if err := b.windows.Register(h, win); err != nil {
		win.Destroy()
		return platform.InvalidHandle, err
	}
	if err := b.handles.Register(win, h); err != nil {
		_ = b.windows.Release(h)
		win.Destroy()
		return platform.InvalidHandle, err
	}
	return h, nil
}

func (b *Backend) DestroyWindow(h platform.Handle) {
	win, ok := b.windows.Lookup(h)
	if !ok {
		return
	}
	_ = b.windows.Release(h)
	_ = b.handles.Release(win)
	win.Destroy()
}

func (b *Backend) MakeContextCurrent(h platform.Handle) {
	if win, ok := b.windows.Lookup(h); ok {
		win.MakeContextCurrent()
	}
}

func (b *Backend) SetSwapInterval(interval int) {
	glfw.SwapInterval(interval)
}

// SetCallbacks installs adapters that translate GLFW's window pointer back
// into the handle the platform knows the window by.
func (b *Backend) SetCallbacks(h platform.Handle, cb platform.Callbacks) {
	win, ok := b.windows.Lookup(h)
	if !ok {
		return
	}

	if cb.FramebufferSize != nil {
		win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
			if h, ok := b.handles.Lookup(w); ok {
				cb.FramebufferSize(h, width, height)
			}
		})
	} else {
		win.SetFramebufferSizeCallback(nil)
	}

	if cb.Key != nil {
		win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
			if h, ok := b.handles.Lookup(w); ok {
				cb.Key(h, int(key), scancode, int(action), int(mods))
			}
		})
	} else {
		win.SetKeyCallback(nil)
	}

	if cb.MouseButton != nil {
		win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
			if h, ok := b.handles.Lookup(w); ok {
				cb.MouseButton(h, int(button), int(action), int(mods))
			}
		})
	} else {
		win.SetMouseButtonCallback(nil)
	}

	if cb.CursorPos != nil {
		win.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
			if h, ok := b.handles.Lookup(w); ok {
				cb.CursorPos(h, xpos, ypos)
			}
		})
	} else {
		win.SetCursorPosCallback(nil)
	}
}

func (b *Backend) PrimaryMonitor() (*platform.Monitor, error) {
	m := glfw.GetPrimaryMonitor()
	if m == nil {
		return nil, core.ErrNoPrimaryMonitor
	}
	mode := m.GetVideoMode()
	if mode == nil {
		return nil, fmt.Errorf("monitor %q has no video mode: %w", m.GetName(), core.ErrNoPrimaryMonitor)
	}
	return &platform.Monitor{
		Name: m.GetName(),
		Mode: platform.VideoMode{
			Width:       mode.Width,
			Height:      mode.Height,
			RefreshRate: mode.RefreshRate,
		},
		Native: m,
	}, nil
}

func (b *Backend) PollEvents() {
	glfw.PollEvents()
}

func (b *Backend) SwapBuffers(h platform.Handle) {
	if win, ok := b.windows.Lookup(h); ok {
		win.SwapBuffers()
	}
}

func (b *Backend) ShouldClose(h platform.Handle) bool {
	win, ok := b.windows.Lookup(h)
	if !ok {
		return true
	}
	return win.ShouldClose()
}

func (b *Backend) SetShouldClose(h platform.Handle, value bool) {
	if win, ok := b.windows.Lookup(h); ok {
		win.SetShouldClose(value)
	}
}

func (b *Backend) FramebufferSize(h platform.Handle) (int, int) {
	win, ok := b.windows.Lookup(h)
	if !ok {
		return 0, 0
	}
	return win.GetFramebufferSize()
}

func (b *Backend) WindowPos(h platform.Handle) (int, int) {
	win, ok := b.windows.Lookup(h)
	if !ok {
		return 0, 0
	}
	return win.GetPos()
}

func (b *Backend) SetWindowPos(h platform.Handle, x, y int) {
	if win, ok := b.windows.Lookup(h); ok {
		win.SetPos(x, y)
	}
}

func (b *Backend) SetMonitor(h platform.Handle, monitor *platform.Monitor, x, y, width, height, refreshRate int) {
	win, ok := b.windows.Lookup(h)
	if !ok {
		return
	}
	var native *glfw.Monitor
	if monitor != nil {
		native, _ = monitor.Native.(*glfw.Monitor)
	}
	if refreshRate <= 0 {
		refreshRate = glfw.DontCare
	}
	win.SetMonitor(native, x, y, width, height, refreshRate)
}
