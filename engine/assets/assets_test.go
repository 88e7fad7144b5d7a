package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDetermineAssetType(t *testing.T) {
	tests := []struct {
		path string
		want AssetType
	}{
		{"a.png", AssetTypeImage},
		{"b/c.jpeg", AssetTypeImage},
		{"d.webp", AssetTypeImage},
		{"font.fnt", AssetTypeBitmapFont},
		{"shader.glsl", AssetTypeNone},
		{"README", AssetTypeNone},
	}
	for _, tt := range tests {
		if got := DetermineAssetType(tt.path); got != tt.want {
			t.Errorf("DetermineAssetType(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func newManager(t *testing.T, dir string) *AssetManager {
	t.Helper()
	am, err := NewAssetManager()
	if err != nil {
		t.Fatalf("NewAssetManager: %v", err)
	}
	t.Cleanup(func() { _ = am.Shutdown() })
	if err := am.Initialize(dir); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return am
}

func TestAssetManagerIndexes(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "textures"), 0o755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(dir, "textures", "logo.png"), 255)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	am := newManager(t, dir)

	if am.Len() != 1 {
		t.Fatalf("Len = %d, want 1", am.Len())
	}
	info, ok := am.Lookup("textures/logo.png")
	if !ok || info.Type != AssetTypeImage {
		t.Fatalf("Lookup = %+v, %v", info, ok)
	}

	img, err := am.LoadImage("textures/logo.png", false)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if img.Width() != 1 || img.Height() != 2 {
		t.Fatalf("image = %dx%d", img.Width(), img.Height())
	}
	if info, _ := am.Lookup("textures/logo.png"); info.LastLoaded.IsZero() {
		t.Fatal("LastLoaded not recorded")
	}

	if _, err := am.LoadImage("missing.png", false); err == nil {
		t.Fatal("LoadImage of an unindexed asset should fail")
	}
}

func TestAssetManagerResolve(t *testing.T) {
	dir := t.TempDir()
	am := newManager(t, dir)

	abs, _ := filepath.Abs(dir)
	if got := am.Resolve("a/b.png"); got != filepath.Join(abs, "a", "b.png") {
		t.Fatalf("Resolve relative = %q", got)
	}
	if got := am.Resolve(filepath.Join(abs, "c.png")); got != filepath.Join(abs, "c.png") {
		t.Fatalf("Resolve absolute = %q", got)
	}
}

func TestAssetManagerDrainReportsChanges(t *testing.T) {
	dir := t.TempDir()
	am := newManager(t, dir)
	abs, _ := filepath.Abs(dir)

	if got := am.Drain(); got != nil {
		t.Fatalf("Drain before changes = %v", got)
	}

	target := filepath.Join(abs, "new.png")
	writePNG(t, target, 255)

	deadline := time.Now().Add(5 * time.Second)
	var changed []string
	for time.Now().Before(deadline) {
		changed = append(changed, am.Drain()...)
		if len(changed) > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if len(changed) == 0 || changed[0] != target {
		t.Fatalf("Drain = %v, want [%s]", changed, target)
	}
	if _, ok := am.Lookup("new.png"); !ok {
		t.Fatal("new file not indexed")
	}
}

func TestAssetManagerShutdown(t *testing.T) {
	am, err := NewAssetManager()
	if err != nil {
		t.Fatalf("NewAssetManager: %v", err)
	}
	// Never initialized.
	if err := am.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := am.Shutdown(); err != nil {
		t.Fatalf("second Shutdown: %v", err)
	}
	if err := am.Initialize(t.TempDir()); err == nil {
		t.Fatal("Initialize after Shutdown should fail")
	}
}

func TestAssetManagerInitializeTwice(t *testing.T) {
	dir := t.TempDir()
	am := newManager(t, dir)

	if err := am.Initialize(t.TempDir()); err == nil {
		t.Fatal("second Initialize should fail")
	}
	abs, _ := filepath.Abs(dir)
	if got := am.Resolve("a.png"); got != filepath.Join(abs, "a.png") {
		t.Fatalf("root changed by the rejected Initialize: %q", got)
	}
	if err := am.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
