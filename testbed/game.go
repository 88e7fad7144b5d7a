package testbed

import (
	"github.com/spaghettifunk/onyx/engine"
	"github.com/spaghettifunk/onyx/engine/config"
	"github.com/spaghettifunk/onyx/engine/core"
	"github.com/spaghettifunk/onyx/engine/math"
	"github.com/spaghettifunk/onyx/engine/text"
)

// Texture shown by the testbed, relative to the assets directory.
const logoTexture = "textures/onyx.png"

type TestGame struct {
	*engine.Game
}

var backgrounds = []math.Vec3{
	{X: 0.1, Y: 0.1, Z: 0.12},
	{X: 0.39, Y: 0.58, Z: 0.93},
	{X: 0.0, Y: 0.0, Z: 0.0},
}

type gameState struct {
	engine     *engine.Engine
	background int
	width      int
	height     int
}

func NewTestGame(cfg *config.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: cfg,
			State:             &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) Initialize(e *engine.Engine) error {
	core.LogDebug("TestGame Initialize fn....")
	state := g.State.(*gameState)

	state.engine = e

	e.Camera().SetPosition(math.NewVec3(0, 0, 10))

	// the testbed still runs without its texture
	if _, err := e.Textures().Acquire(logoTexture); err != nil {
		core.LogWarn("failed to load %s: %s", logoTexture, err)
	}

	if overlay := e.TextOverlay(); overlay != nil {
		overlay.SetLabel("help", text.Label{
			Text:   "WASD move, arrows look, B background, R reload, F11 fullscreen, Esc quit",
			X:      8,
			Y:      8,
			Anchor: text.AnchorBottomLeft,
			Color:  math.NewVec3(0.8, 0.8, 0.8),
		})
	}

	e.Events().Register(core.EVENT_CODE_KEY_PRESSED, g, g.gameOnKey)
	return nil
}

var tempMoveSpeed float32 = 50.0

func (g *TestGame) Update(e *engine.Engine, deltaTime float64) error {
	input := e.Input()
	camera := e.Camera()
	dt := float32(deltaTime)

	if input.IsKeyDown(core.KEY_LEFT) {
		camera.Yaw(1.0 * dt)
	}
	if input.IsKeyDown(core.KEY_RIGHT) {
		camera.Yaw(-1.0 * dt)
	}
	if input.IsKeyDown(core.KEY_UP) {
		camera.Pitch(1.0 * dt)
	}
	if input.IsKeyDown(core.KEY_DOWN) {
		camera.Pitch(-1.0 * dt)
	}

	if input.IsKeyDown(core.KEY_W) {
		camera.MoveForward(tempMoveSpeed * dt)
	}
	if input.IsKeyDown(core.KEY_S) {
		camera.MoveBackward(tempMoveSpeed * dt)
	}
	if input.IsKeyDown(core.KEY_A) {
		camera.MoveLeft(tempMoveSpeed * dt)
	}
	if input.IsKeyDown(core.KEY_D) {
		camera.MoveRight(tempMoveSpeed * dt)
	}
	if input.IsKeyDown(core.KEY_SPACE) {
		camera.MoveUp(tempMoveSpeed * dt)
	}
	if input.IsKeyDown(core.KEY_X) {
		camera.MoveDown(tempMoveSpeed * dt)
	}
	return nil
}

func (g *TestGame) Render(e *engine.Engine, deltaTime float64) error {
	if textures := e.Textures(); textures.Contains(logoTexture) {
		logo, err := textures.Acquire(logoTexture)
		if err != nil {
			return err
		}
		logo.Bind()
	}
	if overlay := e.TextOverlay(); overlay != nil {
		overlay.Draw(func(page int, quads []text.Quad) {})
	}
	return nil
}

func (g *TestGame) OnResize(width, height int) error {
	state := g.State.(*gameState)
	state.width = width
	state.height = height
	core.LogDebug("testbed resized to %dx%d", width, height)
	return nil
}

func (g *TestGame) Shutdown() error {
	core.LogInfo("testbed shutting down")
	return nil
}

func (g *TestGame) gameOnKey(code core.SystemEventCode, sender interface{}, listener interface{}, context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		return false
	}
	state := g.State.(*gameState)

	switch ke.Key {
	case core.KEY_B:
		state.background = (state.background + 1) % len(backgrounds)
		state.engine.Window().SetBackgroundColor(backgrounds[state.background])
		return true
	case core.KEY_R:
		if _, err := state.engine.Textures().Reload(logoTexture); err != nil {
			core.LogError("failed to reload %s: %s", logoTexture, err)
		}
		return true
	}
	return false
}
