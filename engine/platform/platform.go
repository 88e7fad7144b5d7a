package platform

import (
	"sync"

	"github.com/spaghettifunk/onyx/engine/core"
	"github.com/spaghettifunk/onyx/engine/renderer"
)

// Platform is the process-wide owner of the windowing and graphics backends.
// It initializes each of them lazily exactly once, caches the primary
// monitor for every window, and maps native handles back to their windows so
// backend callbacks reach the right instance.
type Platform struct {
	backend  Backend
	graphics renderer.RendererBackend

	backendReady  bool
	graphicsReady bool
	swapInterval  int

	monitorMutex   sync.RWMutex
	monitorQueried bool
	primaryMonitor *Monitor

	owners *core.Registry[Handle, *Window]
}

func New(backend Backend, graphics renderer.RendererBackend) *Platform {
	return &Platform{
		backend:      backend,
		graphics:     graphics,
		swapInterval: 1,
		owners:       core.NewRegistry[Handle, *Window](),
	}
}

// SetSwapInterval configures vsync for windows initialized afterwards (0 disables it).
func (p *Platform) SetSwapInterval(interval int) {
	p.swapInterval = interval
}

func (p *Platform) Backend() Backend {
	return p.backend
}

func (p *Platform) Graphics() renderer.RendererBackend {
	return p.graphics
}

// Startup initializes the windowing backend if it is not running yet.
func (p *Platform) Startup() error {
	if p.backendReady {
		return nil
	}
	if err := p.backend.Init(); err != nil {
		return err
	}
	p.backendReady = true
	core.LogInfo("windowing backend initialized")
	return nil
}

// Shutdown disposes windows that are still alive and terminates the
// backend. Safe to call more than once.
func (p *Platform) Shutdown() error {
	for _, w := range p.owners.Owners() {
		core.LogWarn("window %q still alive at shutdown, disposing", w.Title())
		w.Dispose()
	}
	if !p.backendReady {
		return nil
	}
	p.backend.Terminate()
	p.backendReady = false
	p.graphicsReady = false
	core.LogInfo("windowing backend terminated")
	return nil
}

// PrimaryMonitor returns the cached primary monitor, nil until a window has
// initialized successfully or when the system reports none.
func (p *Platform) PrimaryMonitor() *Monitor {
	p.monitorMutex.RLock()
	defer p.monitorMutex.RUnlock()
	return p.primaryMonitor
}

// Window returns the live window owning h.
func (p *Platform) Window(h Handle) (*Window, bool) {
	return p.owners.Lookup(h)
}

// WindowCount is the number of initialized, not yet disposed windows.
func (p *Platform) WindowCount() int {
	return p.owners.Len()
}

func (p *Platform) initializeGraphics() error {
	if p.graphicsReady {
		return nil
	}
	if err := p.graphics.Initialize(); err != nil {
		return err
	}
	p.graphicsReady = true
	return nil
}

func (p *Platform) cachePrimaryMonitor() {
	p.monitorMutex.Lock()
	defer p.monitorMutex.Unlock()
	if p.monitorQueried {
		return
	}
	m, err := p.backend.PrimaryMonitor()
	if err != nil || m == nil {
		core.LogWarn("no primary monitor available, fullscreen disabled: %v", err)
		return
	}
	p.primaryMonitor = m
	p.monitorQueried = true
	core.LogInfo("primary monitor %q %dx%d@%dHz", m.Name, m.Mode.Width, m.Mode.Height, m.Mode.RefreshRate)
}

func (p *Platform) callbacks() Callbacks {
	return Callbacks{
		FramebufferSize: p.framebufferSizeCallback,
		Key:             p.keyCallback,
		MouseButton:     p.mouseButtonCallback,
		CursorPos:       p.cursorPosCallback,
	}
}

func (p *Platform) lookup(h Handle) (*Window, bool) {
	w, ok := p.owners.Lookup(h)
	if !ok {
		core.LogDebug("dropping event for unknown window handle %d", h)
	}
	return w, ok
}

func (p *Platform) framebufferSizeCallback(h Handle, width, height int) {
	if w, ok := p.lookup(h); ok {
		w.onFramebufferSize(width, height)
	}
}

func (p *Platform) keyCallback(h Handle, key, scancode, action, mods int) {
	if w, ok := p.lookup(h); ok {
		w.onKey(core.KeyEvent{
			Key:      core.Key(key),
			Scancode: scancode,
			Action:   core.Action(action),
			Mods:     core.ModifierKey(mods),
		})
	}
}

func (p *Platform) mouseButtonCallback(h Handle, button, action, mods int) {
	if w, ok := p.lookup(h); ok {
		w.onMouseButton(core.MouseButtonEvent{
			Button: core.Button(button),
			Action: core.Action(action),
			Mods:   core.ModifierKey(mods),
		})
	}
}

func (p *Platform) cursorPosCallback(h Handle, x, y float64) {
	if w, ok := p.lookup(h); ok {
		w.onCursorPos(core.CursorEvent{X: x, Y: y})
	}
}
