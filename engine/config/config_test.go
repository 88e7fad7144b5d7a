package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spaghettifunk/onyx/engine/core"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Name != "Onyx Window" {
		t.Fatalf("name=%q, want %q", cfg.Name, "Onyx Window")
	}
	if cfg.StartWidth != 800 || cfg.StartHeight != 600 {
		t.Fatalf("size=%dx%d, want 800x600", cfg.StartWidth, cfg.StartHeight)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.SwapInterval() != 1 {
		t.Fatalf("swap interval=%d, want 1", cfg.SwapInterval())
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "onyx.toml", `
name = "Testbed"
start_width = 1280
start_height = 720
background = [0.2, 0.3, 0.4]
fullscreen = true
vsync = false
log_level = "debug"
font = "fonts/mono.fnt"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "Testbed" || cfg.StartWidth != 1280 || cfg.StartHeight != 720 {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.Background != [3]float32{0.2, 0.3, 0.4} {
		t.Fatalf("background=%v", cfg.Background)
	}
	if !cfg.Fullscreen || cfg.SwapInterval() != 0 {
		t.Fatalf("fullscreen=%t swap=%d", cfg.Fullscreen, cfg.SwapInterval())
	}
	if cfg.Level() != core.DebugLevel {
		t.Fatalf("level=%s, want debug", cfg.Level())
	}
	// untouched keys keep their defaults
	if cfg.AssetsDir != "assets" || cfg.StartPosX != 100 {
		t.Fatalf("defaults lost: assets_dir=%q start_pos_x=%d", cfg.AssetsDir, cfg.StartPosX)
	}
	if got, want := cfg.FontPath(), filepath.Join("assets", "fonts", "mono.fnt"); got != want {
		t.Fatalf("font path=%q, want %q", got, want)
	}
}

func TestLoadYAML(t *testing.T) {
	for _, name := range []string{"onyx.yaml", "onyx.yml"} {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, name, `
name: YAML Window
start_width: 640
start_height: 480
log_level: warn
assets_dir: /tmp/assets
`)
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Name != "YAML Window" || cfg.StartWidth != 640 || cfg.StartHeight != 480 {
				t.Fatalf("cfg=%+v", cfg)
			}
			if cfg.Level() != core.WarnLevel {
				t.Fatalf("level=%s, want warn", cfg.Level())
			}
			if cfg.FontPath() != "" {
				t.Fatalf("font path=%q, want empty", cfg.FontPath())
			}
		})
	}
}

func TestLoadEmptyYAMLKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "empty.yaml", ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *Default() {
		t.Fatalf("cfg=%+v, want defaults", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"extension", "onyx.json", `{}`, "unsupported config format"},
		{"toml syntax", "bad.toml", `name = `, "failed to parse"},
		{"toml unknown key", "unknown.toml", `colour = 1`, "failed to parse"},
		{"yaml unknown key", "unknown.yaml", `colour: 1`, "failed to parse"},
		{"zero width", "zero.toml", `start_width = 0`, "window size must be positive"},
		{"empty name", "name.yaml", `name: "  "`, "name must not be empty"},
		{"background", "bg.toml", `background = [0.0, 2.0, 0.0]`, "background[1]"},
		{"log level", "lvl.yaml", `log_level: loud`, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.content))
			if err == nil {
				t.Fatalf("Load succeeded, want error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error=%q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("error=%v, want not-exist", err)
	}
}
