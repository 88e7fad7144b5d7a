package engine

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/onyx/engine/assets"
	"github.com/spaghettifunk/onyx/engine/config"
	"github.com/spaghettifunk/onyx/engine/core"
	"github.com/spaghettifunk/onyx/engine/math"
	"github.com/spaghettifunk/onyx/engine/platform"
	"github.com/spaghettifunk/onyx/engine/renderer"
	"github.com/spaghettifunk/onyx/engine/renderer/components"
	"github.com/spaghettifunk/onyx/engine/text"
)

const fpsLabel = "fps"

// Engine wires a window, its camera, input and text overlay, the asset
// watcher and a texture cache around a Game. Everything except Quit must be
// called from the thread that created the engine.
type Engine struct {
	currentStage    Stage
	gameInstance    *Game
	gameInitialized bool
	config          *config.ApplicationConfig
	isRunning       atomic.Bool

	platform     *platform.Platform
	window       *platform.Window
	camera       *components.Camera
	input        *core.InputHandler
	events       *core.EventBus
	assetManager *assets.AssetManager
	textures     *renderer.TextureCache
	overlay      *text.Renderer

	clock    *core.Clock
	metrics  *core.FrameMetrics
	lastTime float64
}

func New(g *Game, windowing platform.Backend, graphics renderer.RendererBackend) (*Engine, error) {
	cfg := g.ApplicationConfig
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	events := core.NewEventBus()
	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		config:       cfg,
		platform:     platform.New(windowing, graphics),
		camera:       components.NewCamera(),
		input:        core.NewInputHandler(events),
		events:       events,
		assetManager: am,
		clock:        core.NewClock(),
		metrics:      core.NewFrameMetrics(),
	}, nil
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("engine cannot initialize in stage %s", e.currentStage)
	}
	e.currentStage = EngineStageInitializing
	cfg := e.config
	core.SetLogLevel(cfg.Level())

	// register some events
	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	e.events.Register(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	e.events.Register(core.EVENT_CODE_RESIZED, e, e.onResized)

	e.platform.SetSwapInterval(cfg.SwapInterval())
	e.window = platform.NewWindow(e.platform, cfg.Name, cfg.StartWidth, cfg.StartHeight)
	e.window.SetPosition(cfg.StartPosX, cfg.StartPosY)
	e.window.SetBackgroundColor(math.NewVec3(cfg.Background[0], cfg.Background[1], cfg.Background[2]))
	e.window.SetInputHandler(e.input)
	e.window.SetCamera(e.camera)
	if err := e.window.Init(); err != nil {
		return err
	}
	e.window.SetResizeHandler(e.fireResized)

	if cfg.Fullscreen {
		if err := e.window.SetFullscreen(); err != nil {
			core.LogWarn("starting windowed: %s", err)
		}
	}

	if err := e.initializeAssets(); err != nil {
		return err
	}
	e.textures = renderer.NewTextureCache(e.platform.Graphics(), e.assetManager, true)

	if path := cfg.FontPath(); path != "" {
		font, err := text.LoadFont(e.platform.Graphics(), path)
		if err != nil {
			return err
		}
		e.overlay = text.NewRenderer(font)
		e.overlay.SetLabel(fpsLabel, text.Label{
			Text:   "FPS: --",
			X:      8,
			Y:      8,
			Anchor: text.AnchorTopLeft,
			Color:  math.NewVec3One(),
		})
		e.window.SetTextOverlay(e.overlay)
	}

	if fn := e.gameInstance.FnInitialize; fn != nil {
		if err := fn(e); err != nil {
			return err
		}
	}
	e.gameInitialized = true

	if fn := e.gameInstance.FnOnResize; fn != nil {
		if err := fn(e.window.BufferWidth(), e.window.BufferHeight()); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	core.LogInfo("engine initialized")
	return nil
}

func (e *Engine) initializeAssets() error {
	info, err := os.Stat(e.config.AssetsDir)
	if err != nil || !info.IsDir() {
		core.LogWarn("assets directory %q not found, hot reload disabled", e.config.AssetsDir)
		return nil
	}
	return e.assetManager.Initialize(e.config.AssetsDir)
}

// Run drives frames until the window closes, Quit is called or a game
// callback fails.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine run in stage %s: %w", e.currentStage, core.ErrNotInitialized)
	}
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning.Load() && e.window.IsOpen() {
		if err := e.Frame(); err != nil {
			e.isRunning.Store(false)
			return err
		}
	}
	e.isRunning.Store(false)
	return nil
}

// Frame runs a single iteration of the loop: poll, reload changed assets,
// update, render and present.
func (e *Engine) Frame() error {
	e.clock.Update()
	currentTime := e.clock.Elapsed()
	delta := currentTime - e.lastTime
	frameStartTime := time.Now()

	if err := e.window.StartRender(); err != nil {
		return err
	}
	e.reloadChangedAssets()

	if fn := e.gameInstance.FnUpdate; fn != nil {
		if err := fn(e, delta); err != nil {
			return fmt.Errorf("game update failed: %w", err)
		}
	}
	if fn := e.gameInstance.FnRender; fn != nil {
		if err := fn(e, delta); err != nil {
			return fmt.Errorf("game render failed: %w", err)
		}
	}
	if e.overlay != nil {
		e.overlay.SetText(fpsLabel, fmt.Sprintf("FPS: %.0f (%.2f ms)", e.metrics.FPS(), e.metrics.FrameTime()))
	}

	if err := e.window.EndRender(); err != nil {
		return err
	}

	e.metrics.Update(time.Since(frameStartTime).Seconds())
	e.input.Update()
	e.lastTime = currentTime
	return nil
}

// Quit stops Run after the current frame. Safe to call from any goroutine.
func (e *Engine) Quit() {
	e.isRunning.Store(false)
}

// Shutdown releases everything in reverse order of creation. Safe to call
// after a failed Initialize and more than once.
func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown || e.currentStage == EngineStageShutdown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning.Store(false)

	var errs []error
	if fn := e.gameInstance.FnShutdown; fn != nil && e.gameInitialized {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	if e.overlay != nil {
		e.overlay.Dispose()
	}
	if e.textures != nil {
		e.textures.Dispose()
	}
	if err := e.assetManager.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	if e.window != nil {
		e.window.Dispose()
	}
	if err := e.platform.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	e.events.Shutdown()

	e.currentStage = EngineStageShutdown
	core.LogInfo("engine shut down")
	return errors.Join(errs...)
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Config() *config.ApplicationConfig {
	return e.config
}

func (e *Engine) Window() *platform.Window {
	return e.window
}

func (e *Engine) Camera() *components.Camera {
	return e.camera
}

func (e *Engine) Input() *core.InputHandler {
	return e.input
}

func (e *Engine) Events() *core.EventBus {
	return e.events
}

func (e *Engine) Assets() *assets.AssetManager {
	return e.assetManager
}

func (e *Engine) Textures() *renderer.TextureCache {
	return e.textures
}

// TextOverlay is nil when no font is configured.
func (e *Engine) TextOverlay() *text.Renderer {
	return e.overlay
}

func (e *Engine) Metrics() *core.FrameMetrics {
	return e.metrics
}

func (e *Engine) reloadChangedAssets() {
	for _, path := range e.assetManager.Drain() {
		e.events.Fire(core.EVENT_CODE_ASSET_CHANGED, e, core.EventContext{Data: path})
		if _, err := e.textures.Reload(path); err != nil {
			core.LogError("failed to reload %s: %s", path, err)
		}
	}
}

func (e *Engine) fireResized(width, height int) {
	e.events.Fire(core.EVENT_CODE_RESIZED, e.window, core.EventContext{
		Data: &core.ResizeEvent{Width: width, Height: height},
	})
}

func (e *Engine) onEvent(code core.SystemEventCode, sender interface{}, listener interface{}, context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down")
		e.Quit()
		e.window.Close()
		return true
	}
	return false
}

func (e *Engine) onKey(code core.SystemEventCode, sender interface{}, listener interface{}, context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	switch ke.Key {
	case core.KEY_ESCAPE:
		e.events.Fire(core.EVENT_CODE_APPLICATION_QUIT, e, core.EventContext{})
		return true
	case core.KEY_F11:
		if err := e.window.ToggleFullscreen(); err != nil {
			core.LogWarn("fullscreen toggle failed: %s", err)
		}
		return true
	}
	return false
}

func (e *Engine) onResized(code core.SystemEventCode, sender interface{}, listener interface{}, context core.EventContext) bool {
	re, ok := context.Data.(*core.ResizeEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if fn := e.gameInstance.FnOnResize; fn != nil {
		if err := fn(re.Width, re.Height); err != nil {
			core.LogError("game resize failed: %s", err)
		}
	}
	return false
}
