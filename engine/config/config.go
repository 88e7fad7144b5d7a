package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/onyx/engine/core"
	"gopkg.in/yaml.v3"
)

const (
	DefaultName     = "Onyx Window"
	DefaultWidth    = 800
	DefaultHeight   = 600
	DefaultLogLevel = "info"
)

// ApplicationConfig holds everything needed to start the engine.
type ApplicationConfig struct {
	// Name is the window title.
	Name string `toml:"name" yaml:"name"`
	// StartPosX and StartPosY are the initial window position, when the system allows it.
	StartPosX int `toml:"start_pos_x" yaml:"start_pos_x"`
	StartPosY int `toml:"start_pos_y" yaml:"start_pos_y"`
	// StartWidth and StartHeight are the logical window size.
	StartWidth  int `toml:"start_width" yaml:"start_width"`
	StartHeight int `toml:"start_height" yaml:"start_height"`

	// Background is the clear colour, each component in [0, 1].
	Background [3]float32 `toml:"background" yaml:"background"`
	Fullscreen bool       `toml:"fullscreen" yaml:"fullscreen"`
	VSync      bool       `toml:"vsync" yaml:"vsync"`

	LogLevel string `toml:"log_level" yaml:"log_level"`
	// AssetsDir is watched for changes; textures reload when their file changes.
	AssetsDir string `toml:"assets_dir" yaml:"assets_dir"`
	// Font is a .fnt file relative to AssetsDir. Empty disables the text overlay.
	Font string `toml:"font" yaml:"font"`
}

// Default returns the configuration of the default 800x600 window.
func Default() *ApplicationConfig {
	return &ApplicationConfig{
		Name:        DefaultName,
		StartPosX:   100,
		StartPosY:   100,
		StartWidth:  DefaultWidth,
		StartHeight: DefaultHeight,
		Background:  [3]float32{0.1, 0.1, 0.12},
		VSync:       true,
		LogLevel:    DefaultLogLevel,
		AssetsDir:   "assets",
	}
}

// Load reads a configuration file. The format is chosen by extension:
// .toml, or .yaml/.yml. Keys missing from the file keep their defaults.
func Load(path string) (*ApplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = decodeTOML(data, cfg)
	case ".yaml", ".yml":
		err = decodeYAML(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q for %s", ext, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func decodeTOML(data []byte, cfg *ApplicationConfig) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

func decodeYAML(data []byte, cfg *ApplicationConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the values a window cannot start with.
func (c *ApplicationConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if c.StartWidth <= 0 || c.StartHeight <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.StartWidth, c.StartHeight))
	}
	for i, v := range c.Background {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("background[%d] must be within [0, 1], got %g", i, v))
		}
	}
	if _, err := core.ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level, InfoLevel when it cannot be parsed.
func (c *ApplicationConfig) Level() core.LogLevel {
	lvl, err := core.ParseLogLevel(c.LogLevel)
	if err != nil {
		return core.InfoLevel
	}
	return lvl
}

// SwapInterval maps VSync to the backend's swap interval.
func (c *ApplicationConfig) SwapInterval() int {
	if c.VSync {
		return 1
	}
	return 0
}

// FontPath is the overlay font resolved against AssetsDir, empty when unset.
func (c *ApplicationConfig) FontPath() string {
	if c.Font == "" {
		return ""
	}
	if filepath.IsAbs(c.Font) {
		return c.Font
	}
	return filepath.Join(c.AssetsDir, c.Font)
}
