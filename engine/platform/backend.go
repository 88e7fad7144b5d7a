package platform

// Handle identifies a native window owned by the windowing backend.
type Handle uintptr

// InvalidHandle is the sentinel for "no native window".
const InvalidHandle Handle = 0

type VideoMode struct {
	Width       int
	Height      int
	RefreshRate int
}

type Monitor struct {
	Name string
	Mode VideoMode
	// Native is the backend's own monitor object.
	Native interface{}
}

// Callbacks are the per-window event slots of the backend. Each function
// receives the handle of the window the event belongs to. Key, action, mods
// and button values use the backend's numbering. A nil entry disables the slot.
type Callbacks struct {
	FramebufferSize func(h Handle, width, height int)
	Key             func(h Handle, key, scancode, action, mods int)
	MouseButton     func(h Handle, button, action, mods int)
	CursorPos       func(h Handle, x, y float64)
}

// Backend is the windowing system. All methods must be called from the
// thread that initialized it.
type Backend interface {
	Init() error
	Terminate()

	// CreateWindow opens a window with a graphics context.
	CreateWindow(title string, width, height int) (Handle, error)
	DestroyWindow(h Handle)
	MakeContextCurrent(h Handle)
	SetSwapInterval(interval int)
	SetCallbacks(h Handle, callbacks Callbacks)

	PrimaryMonitor() (*Monitor, error)

	// PollEvents processes pending events, invoking callbacks synchronously.
	PollEvents()
	SwapBuffers(h Handle)

	ShouldClose(h Handle) bool
	SetShouldClose(h Handle, value bool)

	FramebufferSize(h Handle) (int, int)
	WindowPos(h Handle) (int, int)
	SetWindowPos(h Handle, x, y int)
	// SetMonitor makes the window fullscreen on monitor, or windowed at
	// x, y when monitor is nil.
	SetMonitor(h Handle, monitor *Monitor, x, y, width, height, refreshRate int)
}
