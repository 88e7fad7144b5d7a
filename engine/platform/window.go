package platform

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/onyx/engine/core"
	"github.com/spaghettifunk/onyx/engine/math"
	"github.com/spaghettifunk/onyx/engine/renderer"
)

const (
	DefaultWindowTitle  = "Onyx Window"
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
)

// InputRouter receives the input events of a window.
type InputRouter interface {
	OnKey(e core.KeyEvent)
	OnMouseButton(e core.MouseButtonEvent)
	OnCursorPos(e core.CursorEvent)
}

// Camera is the part of a camera a window keeps in sync with its framebuffer.
type Camera interface {
	IsPerspective() bool
	SetAspectRatio(aspect float32)
}

// TextOverlay lays text out in framebuffer pixels and needs to know when they change.
type TextOverlay interface {
	OnBufferResize(width, height int)
}

/**
 * @brief A native window with its graphics context.
 * A window must be created and initialized before any graphics resource
 * is created. The input router, camera and text overlay attached to it are
 * not owned by the window: the caller keeps them alive for as long as they
 * are attached.
 */
type Window struct {
	id       uuid.UUID
	platform *Platform
	handle   Handle

	title         string
	width, height int
	bufferWidth   int
	bufferHeight  int
	windowedX     int
	windowedY     int
	startX        int
	startY        int
	hasStartPos   bool
	background    math.Vec3

	inputHandler InputRouter
	camera       Camera
	textOverlay  TextOverlay
	onResize     func(width, height int)

	fullscreen  bool
	initialized bool
}

// NewWindow creates an uninitialized window. Nothing touches the backend until Init.
func NewWindow(p *Platform, title string, width, height int) *Window {
	return &Window{
		id:       uuid.New(),
		platform: p,
		title:    title,
		width:    width,
		height:   height,
	}
}

// NewDefaultWindow creates an uninitialized 800x600 window titled "Onyx Window".
func NewDefaultWindow(p *Platform) *Window {
	return NewWindow(p, DefaultWindowTitle, DefaultWindowWidth, DefaultWindowHeight)
}

// Init initializes the backends and opens the window. Calling it on an
// initialized window does nothing. A failure is returned as *core.InitError
// and leaves the window uninitialized; InitWithErrorHandler is the gentler
// alternative.
func (w *Window) Init() error {
	if w.initialized {
		return nil
	}
	backend := w.platform.backend

	if err := w.platform.Startup(); err != nil {
		return &core.InitError{Code: core.ErrorCodeBackendInit, Err: err}
	}

	h, err := backend.CreateWindow(w.title, w.width, w.height)
	if err != nil {
		return &core.InitError{Code: core.ErrorCodeWindowCreate, Err: err}
	}
	if w.hasStartPos {
		backend.SetWindowPos(h, w.startX, w.startY)
	}
	backend.MakeContextCurrent(h)

	if err := w.platform.initializeGraphics(); err != nil {
		backend.DestroyWindow(h)
		return &core.InitError{Code: core.ErrorCodeGraphicsInit, Err: err}
	}
	backend.SetSwapInterval(w.platform.swapInterval)

	w.platform.cachePrimaryMonitor()

	if err := w.platform.owners.Register(h, w); err != nil {
		backend.DestroyWindow(h)
		return &core.InitError{Code: core.ErrorCodeWindowCreate, Err: err}
	}
	backend.SetCallbacks(h, w.platform.callbacks())
	w.handle = h
	w.initialized = true

	bw, bh := backend.FramebufferSize(h)
	w.applyBufferSize(bw, bh)

	core.LogInfo("window %s %q initialized (%dx%d, buffer %dx%d)", w.id, w.title, w.width, w.height, bw, bh)
	return nil
}

// InitWithErrorHandler is Init with failures routed to handler instead of
// being returned. Check IsInitialized afterwards. A nil handler logs.
func (w *Window) InitWithErrorHandler(handler core.ErrorHandler) {
	err := w.Init()
	if err == nil {
		return
	}
	if handler == nil {
		handler = core.LogErrorHandler{}
	}
	var initErr *core.InitError
	if errors.As(err, &initErr) {
		handler.HandleError(initErr.Code, initErr.Err.Error())
		return
	}
	handler.HandleError(core.ErrorCodeUnknown, err.Error())
}

// StartRender clears the frame to the background colour and then polls
// events. Polling is the only moment callbacks run, so input, camera and
// overlay updates all happen inside this call.
func (w *Window) StartRender() error {
	if !w.initialized {
		return fmt.Errorf("start render on window %q: %w", w.title, core.ErrNotInitialized)
	}
	g := w.platform.graphics
	w.platform.backend.MakeContextCurrent(w.handle)
	g.SetClearColor(w.background.X, w.background.Y, w.background.Z, 1.0)
	g.Clear(renderer.ClearColor | renderer.ClearDepth)

	w.platform.backend.PollEvents()
	return nil
}

// EndRender presents the frame.
func (w *Window) EndRender() error {
	if !w.initialized {
		return fmt.Errorf("end render on window %q: %w", w.title, core.ErrNotInitialized)
	}
	w.platform.backend.SwapBuffers(w.handle)
	return nil
}

// Close marks the window for closing; IsOpen reports false right away.
func (w *Window) Close() {
	if !w.initialized {
		return
	}
	w.platform.backend.SetShouldClose(w.handle, true)
}

// SetFullscreen moves the window onto the primary monitor using its video mode.
func (w *Window) SetFullscreen() error {
	if !w.initialized {
		return fmt.Errorf("set fullscreen on window %q: %w", w.title, core.ErrNotInitialized)
	}
	if w.fullscreen {
		return nil
	}
	m := w.platform.PrimaryMonitor()
	if m == nil {
		return core.ErrNoPrimaryMonitor
	}
	backend := w.platform.backend
	w.windowedX, w.windowedY = backend.WindowPos(w.handle)
	backend.SetMonitor(w.handle, m, 0, 0, m.Mode.Width, m.Mode.Height, m.Mode.RefreshRate)
	w.fullscreen = true
	core.LogDebug("window %q fullscreen on %q", w.title, m.Name)
	return nil
}

// SetWindowed restores the logical size and the position the window had
// before going fullscreen.
func (w *Window) SetWindowed() error {
	if !w.initialized {
		return fmt.Errorf("set windowed on window %q: %w", w.title, core.ErrNotInitialized)
	}
	if !w.fullscreen {
		return nil
	}
	w.platform.backend.SetMonitor(w.handle, nil, w.windowedX, w.windowedY, w.width, w.height, 0)
	w.fullscreen = false
	core.LogDebug("window %q windowed", w.title)
	return nil
}

// ToggleFullscreen switches between SetFullscreen and SetWindowed.
func (w *Window) ToggleFullscreen() error {
	if w.fullscreen {
		return w.SetWindowed()
	}
	return w.SetFullscreen()
}

// ID uniquely identifies this window in logs.
func (w *Window) ID() uuid.UUID {
	return w.id
}

// Handle gives access to the native window for advanced users.
func (w *Window) Handle() Handle {
	return w.handle
}

func (w *Window) Title() string {
	return w.title
}

func (w *Window) Width() int {
	return w.width
}

func (w *Window) Height() int {
	return w.height
}

// BufferWidth is the drawable width in pixels, which differs from Width
// under display scaling. It only changes through resize events.
func (w *Window) BufferWidth() int {
	return w.bufferWidth
}

func (w *Window) BufferHeight() int {
	return w.bufferHeight
}

func (w *Window) IsInitialized() bool {
	return w.initialized
}

func (w *Window) IsOpen() bool {
	return w.initialized && !w.platform.backend.ShouldClose(w.handle)
}

func (w *Window) IsFullscreen() bool {
	return w.fullscreen
}

func (w *Window) BackgroundColor() math.Vec3 {
	return w.background
}

// SetPosition places the window at x, y in screen coordinates. Before Init
// the position is applied when the window opens; a fullscreen window moves
// there once it returns to windowed mode.
func (w *Window) SetPosition(x, y int) {
	w.startX, w.startY = x, y
	w.hasStartPos = true
	if !w.initialized {
		return
	}
	if w.fullscreen {
		w.windowedX, w.windowedY = x, y
		return
	}
	w.platform.backend.SetWindowPos(w.handle, x, y)
}

// Position returns where the window is, or where it will open before Init.
func (w *Window) Position() (int, int) {
	if !w.initialized {
		return w.startX, w.startY
	}
	if w.fullscreen {
		return w.windowedX, w.windowedY
	}
	return w.platform.backend.WindowPos(w.handle)
}

// SetBackgroundColor sets the colour, components in [0, 1], the next frame clears to.
func (w *Window) SetBackgroundColor(rgb math.Vec3) {
	w.background = rgb
}

// SetInputHandler attaches the router input events are forwarded to. Pass nil to detach.
func (w *Window) SetInputHandler(router InputRouter) {
	w.inputHandler = router
}

func (w *Window) InputHandler() InputRouter {
	return w.inputHandler
}

// SetCamera attaches the camera whose aspect ratio follows the framebuffer,
// when its projection is perspective. Pass nil to detach.
func (w *Window) SetCamera(camera Camera) {
	w.camera = camera
}

func (w *Window) Camera() Camera {
	return w.camera
}

// SetTextOverlay attaches an overlay. On an initialized window it is told
// the current buffer size immediately.
func (w *Window) SetTextOverlay(overlay TextOverlay) {
	w.textOverlay = overlay
	if overlay != nil && w.initialized {
		overlay.OnBufferResize(w.bufferWidth, w.bufferHeight)
	}
}

func (w *Window) TextOverlay() TextOverlay {
	return w.textOverlay
}

// SetResizeHandler registers fn to run after every framebuffer resize.
func (w *Window) SetResizeHandler(fn func(width, height int)) {
	w.onResize = fn
}

// Dispose destroys the native window. It is safe on windows that were never
// initialized and on windows already disposed.
func (w *Window) Dispose() {
	if !w.initialized {
		return
	}
	backend := w.platform.backend
	backend.SetCallbacks(w.handle, Callbacks{})
	if err := w.platform.owners.Release(w.handle); err != nil {
		core.LogWarn("window %q: %s", w.title, err)
	}
	backend.DestroyWindow(w.handle)

	core.LogInfo("window %s %q disposed", w.id, w.title)
	w.handle = InvalidHandle
	w.initialized = false
	w.fullscreen = false
}

func (w *Window) applyBufferSize(width, height int) {
	w.bufferWidth = width
	w.bufferHeight = height
	w.platform.graphics.SetViewport(0, 0, width, height)

	// A minimized window reports 0x0; keep the last usable aspect ratio.
	if w.camera != nil && w.camera.IsPerspective() && height > 0 {
		w.camera.SetAspectRatio(float32(width) / float32(height))
	}
	if w.textOverlay != nil {
		w.textOverlay.OnBufferResize(width, height)
	}
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

func (w *Window) onFramebufferSize(width, height int) {
	core.LogDebug("window %q framebuffer resized to %dx%d", w.title, width, height)
	w.applyBufferSize(width, height)
}

func (w *Window) onKey(e core.KeyEvent) {
	if w.inputHandler != nil {
		w.inputHandler.OnKey(e)
	}
}

func (w *Window) onMouseButton(e core.MouseButtonEvent) {
	if w.inputHandler != nil {
		w.inputHandler.OnMouseButton(e)
	}
}

func (w *Window) onCursorPos(e core.CursorEvent) {
	if w.inputHandler != nil {
		w.inputHandler.OnCursorPos(e)
	}
}
