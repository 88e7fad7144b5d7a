package renderer

import (
	"github.com/spaghettifunk/onyx/engine/assets"
	"github.com/spaghettifunk/onyx/engine/core"
)

/**
 * @brief An immutable 2D texture living on the GPU. The pixels are uploaded
 * once at construction; to change them build a new texture and dispose
 * this one. The zero value is an unallocated texture.
 */
type Texture struct {
	backend  RendererBackend
	handle   TextureHandle
	width    int
	height   int
	channels int
}

// NewTexture uploads img and always disposes it afterwards.
func NewTexture(backend RendererBackend, img *assets.ImageData) (*Texture, error) {
	return NewTextureFromImage(backend, img, true)
}

// NewTextureFromImage uploads img. When disposeSource is false the caller
// keeps ownership of img and may upload it again.
func NewTextureFromImage(backend RendererBackend, img *assets.ImageData, disposeSource bool) (*Texture, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}

	t := &Texture{
		backend:  backend,
		width:    img.Width(),
		height:   img.Height(),
		channels: img.Channels(),
	}
	t.handle = backend.CreateTexture()
	backend.BindTexture(t.handle)

	backend.TextureParameter(TextureParamWrapS, TextureMirroredRepeat)
	backend.TextureParameter(TextureParamWrapT, TextureMirroredRepeat)
	backend.TextureParameter(TextureParamMinFilter, TextureFilterNearest)
	backend.TextureParameter(TextureParamMagFilter, TextureFilterLinear)

	backend.TextureUpload(t.width, t.height, PixelFormatForChannels(t.channels), img.Pixels())
	backend.GenerateMipmaps()

	backend.BindTexture(InvalidTextureHandle)

	if disposeSource {
		img.Dispose()
	}
	core.LogDebug("texture %d created (%dx%d %s)", t.handle, t.width, t.height, PixelFormatForChannels(t.channels))
	return t, nil
}

// Bind makes this texture the active 2D texture. Must not be called after Dispose.
func (t *Texture) Bind() {
	t.backend.BindTexture(t.handle)
}

// Handle returns the backend identifier, InvalidTextureHandle when unallocated.
func (t *Texture) Handle() TextureHandle {
	if t == nil {
		return InvalidTextureHandle
	}
	return t.handle
}

func (t *Texture) Width() int {
	return t.width
}

func (t *Texture) Height() int {
	return t.height
}

func (t *Texture) Channels() int {
	return t.channels
}

// Dispose deletes the backend texture. Later calls are no-ops.
func (t *Texture) Dispose() {
	if t == nil || t.handle == InvalidTextureHandle {
		return
	}
	t.backend.DestroyTexture(t.handle)
	core.LogDebug("texture %d destroyed", t.handle)
	t.handle = InvalidTextureHandle
}
