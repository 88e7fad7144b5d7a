// Package renderertest provides an in-memory renderer backend for tests.
package renderertest

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/onyx/engine/renderer"
)

// Upload describes one TextureUpload call.
type Upload struct {
	Handle renderer.TextureHandle
	Width  int
	Height int
	Format renderer.PixelFormat
	Pixels []uint8
}

// Backend records every call it receives and tracks live texture handles.
type Backend struct {
	// Calls holds a readable trace such as "BindTexture(1)".
	Calls []string

	InitializeErr error
	Initialized   int
	Live          map[renderer.TextureHandle]bool
	Bound         renderer.TextureHandle
	Params        map[renderer.TextureHandle]map[renderer.TextureParam]renderer.TextureParamValue
	Uploads       []Upload
	Mipmapped     map[renderer.TextureHandle]bool
	Deleted       []renderer.TextureHandle
	ClearColor    [4]float32
	ClearedColors [][4]float32
	Viewport      [4]int
	nextHandle    renderer.TextureHandle
}

func New() *Backend {
	return &Backend{
		Live:      make(map[renderer.TextureHandle]bool),
		Params:    make(map[renderer.TextureHandle]map[renderer.TextureParam]renderer.TextureParamValue),
		Mipmapped: make(map[renderer.TextureHandle]bool),
	}
}

// ErrInit is a convenience error for failing Initialize.
var ErrInit = errors.New("renderertest: initialize failed")

func (b *Backend) record(format string, args ...interface{}) {
	b.Calls = append(b.Calls, fmt.Sprintf(format, args...))
}

func (b *Backend) Initialize() error {
	b.record("Initialize()")
	if b.InitializeErr != nil {
		return b.InitializeErr
	}
	b.Initialized++
	return nil
}

func (b *Backend) CreateTexture() renderer.TextureHandle {
	b.nextHandle++
	b.Live[b.nextHandle] = true
	b.record("CreateTexture() = %d", b.nextHandle)
	return b.nextHandle
}

func (b *Backend) DestroyTexture(handle renderer.TextureHandle) {
	b.record("DestroyTexture(%d)", handle)
	delete(b.Live, handle)
	b.Deleted = append(b.Deleted, handle)
}

func (b *Backend) BindTexture(handle renderer.TextureHandle) {
	b.record("BindTexture(%d)", handle)
	b.Bound = handle
}

func (b *Backend) TextureParameter(param renderer.TextureParam, value renderer.TextureParamValue) {
	b.record("TextureParameter(%d, %d)", param, value)
	if b.Params[b.Bound] == nil {
		b.Params[b.Bound] = make(map[renderer.TextureParam]renderer.TextureParamValue)
	}
	b.Params[b.Bound][param] = value
}

func (b *Backend) TextureUpload(width, height int, format renderer.PixelFormat, pixels []uint8) {
	b.record("TextureUpload(%d, %d, %s)", width, height, format)
	b.Uploads = append(b.Uploads, Upload{
		Handle: b.Bound,
		Width:  width,
		Height: height,
		Format: format,
		Pixels: append([]uint8(nil), pixels...),
	})
}

func (b *Backend) GenerateMipmaps() {
	b.record("GenerateMipmaps()")
	b.Mipmapped[b.Bound] = true
}

func (b *Backend) SetClearColor(r, g, bl, a float32) {
	b.record("SetClearColor(%g, %g, %g, %g)", r, g, bl, a)
	b.ClearColor = [4]float32{r, g, bl, a}
}

func (b *Backend) Clear(mask renderer.ClearMask) {
	b.record("Clear(%d)", mask)
	if mask&renderer.ClearColor != 0 {
		b.ClearedColors = append(b.ClearedColors, b.ClearColor)
	}
}

func (b *Backend) SetViewport(x, y, width, height int) {
	b.record("SetViewport(%d, %d, %d, %d)", x, y, width, height)
	b.Viewport = [4]int{x, y, width, height}
}

// LastClearColor returns the colour of the most recent colour clear.
func (b *Backend) LastClearColor() ([4]float32, bool) {
	if len(b.ClearedColors) == 0 {
		return [4]float32{}, false
	}
	return b.ClearedColors[len(b.ClearedColors)-1], true
}
