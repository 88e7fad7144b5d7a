package assets

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/onyx/engine/core"
)

// writePNG stores a 1x2 image: red on top, blue below.
func writePNG(t *testing.T, path string, alpha uint8) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: alpha})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: alpha})

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadImageChannels(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		alpha    uint8
		channels int
		top      []uint8
	}{
		{"opaque", 255, 3, []uint8{255, 0, 0}},
		{"translucent", 128, 4, []uint8{255, 0, 0, 128}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".png")
			writePNG(t, path, tt.alpha)

			img, err := LoadImage(path, false)
			if err != nil {
				t.Fatalf("LoadImage: %v", err)
			}
			if img.Width() != 1 || img.Height() != 2 || img.Channels() != tt.channels {
				t.Fatalf("image = %dx%d/%d", img.Width(), img.Height(), img.Channels())
			}
			if err := img.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			for i, v := range tt.top {
				if img.Pixels()[i] != v {
					t.Fatalf("top row = %v, want %v", img.Pixels()[:tt.channels], tt.top)
				}
			}
		})
	}
}

func TestLoadImageFlipY(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flip.png")
	writePNG(t, path, 255)

	img, err := LoadImage(path, true)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	// Blue row first once flipped.
	px := img.Pixels()
	if px[0] != 0 || px[2] != 255 || px[3] != 255 || px[5] != 0 {
		t.Fatalf("flipped pixels = %v", px)
	}
}

func TestLoadImageErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadImage(filepath.Join(dir, "missing.png"), false); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file error = %v", err)
	}

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(garbage, false); err == nil {
		t.Fatal("garbage file decoded without error")
	}
}

func TestImageDataValidate(t *testing.T) {
	tests := []struct {
		name string
		img  *ImageData
		ok   bool
	}{
		{"rgb", NewImageData(2, 1, 3, make([]uint8, 6)), true},
		{"rgba", NewImageData(1, 1, 4, make([]uint8, 4)), true},
		{"nil", nil, false},
		{"nil pixels", NewImageData(1, 1, 4, nil), false},
		{"negative height", NewImageData(1, -1, 4, make([]uint8, 4)), false},
		{"one channel", NewImageData(1, 1, 1, make([]uint8, 1)), false},
		{"size mismatch", NewImageData(2, 2, 3, make([]uint8, 6)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.img.Validate()
			if tt.ok && err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if !tt.ok && !errors.Is(err, core.ErrInvalidImageData) {
				t.Fatalf("Validate error = %v, want ErrInvalidImageData", err)
			}
		})
	}
}

func TestImageDataDispose(t *testing.T) {
	img := NewImageData(1, 1, 4, make([]uint8, 4))
	img.Dispose()
	img.Dispose()
	if !img.IsDisposed() || img.Pixels() != nil {
		t.Fatal("pixels kept after Dispose")
	}
	if err := img.Validate(); err == nil {
		t.Fatal("disposed image validated")
	}

	var nilImg *ImageData
	nilImg.Dispose()
}
