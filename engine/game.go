package engine

import (
	"github.com/spaghettifunk/onyx/engine/config"
)

// Game is what the engine runs. Every callback is optional.
type Game struct {
	ApplicationConfig *config.ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Initialize func(e *Engine) error
type Update func(e *Engine, deltaTime float64) error
type Render func(e *Engine, deltaTime float64) error
type OnResize func(width, height int) error
type Shutdown func() error
