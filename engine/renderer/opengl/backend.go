// Package opengl implements the renderer backend on top of OpenGL 4.1 core.
package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/spaghettifunk/onyx/engine/core"
	"github.com/spaghettifunk/onyx/engine/renderer"
)

type Backend struct{}

func New() *Backend {
	return &Backend{}
}

func (b *Backend) Initialize() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to load OpenGL functions: %w", err)
	}
	core.LogInfo("OpenGL %s, GLSL %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))

	gl.Enable(gl.DEPTH_TEST)
	return nil
}

func (b *Backend) CreateTexture() renderer.TextureHandle {
	var id uint32
	gl.GenTextures(1, &id)
	return renderer.TextureHandle(id)
}

func (b *Backend) DestroyTexture(handle renderer.TextureHandle) {
	id := uint32(handle)
	gl.DeleteTextures(1, &id)
}

func (b *Backend) BindTexture(handle renderer.TextureHandle) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(handle))
}

func (b *Backend) TextureParameter(param renderer.TextureParam, value renderer.TextureParamValue) {
	gl.TexParameteri(gl.TEXTURE_2D, textureParam(param), textureParamValue(value))
}

func (b *Backend) TextureUpload(width, height int, format renderer.PixelFormat, pixels []uint8) {
	f := pixelFormat(format)
	// RGB rows are not 4-byte aligned unless the width happens to line up.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(f), int32(width), int32(height), 0, f, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
}

func (b *Backend) GenerateMipmaps() {
	gl.GenerateMipmap(gl.TEXTURE_2D)
}

func (b *Backend) SetClearColor(r, g, bl, a float32) {
	gl.ClearColor(r, g, bl, a)
}

func (b *Backend) Clear(mask renderer.ClearMask) {
	var bits uint32
	if mask&renderer.ClearColor != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&renderer.ClearDepth != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if mask&renderer.ClearStencil != 0 {
		bits |= gl.STENCIL_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (b *Backend) SetViewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func pixelFormat(format renderer.PixelFormat) uint32 {
	if format == renderer.PixelFormatRGBA {
		return gl.RGBA
	}
	return gl.RGB
}

func textureParam(param renderer.TextureParam) uint32 {
	switch param {
	case renderer.TextureParamWrapS:
		return gl.TEXTURE_WRAP_S
	case renderer.TextureParamWrapT:
		return gl.TEXTURE_WRAP_T
	case renderer.TextureParamMinFilter:
		return gl.TEXTURE_MIN_FILTER
	default:
		return gl.TEXTURE_MAG_FILTER
	}
}

func textureParamValue(value renderer.TextureParamValue) int32 {
	switch value {
	case renderer.TextureRepeat:
		return gl.REPEAT
	case renderer.TextureMirroredRepeat:
		return gl.MIRRORED_REPEAT
	case renderer.TextureClampToEdge:
		return gl.CLAMP_TO_EDGE
	case renderer.TextureFilterNearest:
		return gl.NEAREST
	default:
		return gl.LINEAR
	}
}
