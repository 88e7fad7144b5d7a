package renderer

// TextureHandle identifies a texture owned by the graphics backend.
type TextureHandle uint32

// InvalidTextureHandle is the sentinel for "not allocated or disposed".
const InvalidTextureHandle TextureHandle = 0

type PixelFormat uint8

const (
	PixelFormatRGB PixelFormat = iota
	PixelFormatRGBA
)

func (f PixelFormat) String() string {
	if f == PixelFormatRGBA {
		return "RGBA"
	}
	return "RGB"
}

// PixelFormatForChannels maps a channel count to the upload format: 4
// channels are RGBA, anything else RGB.
func PixelFormatForChannels(channels int) PixelFormat {
	if channels == 4 {
		return PixelFormatRGBA
	}
	return PixelFormatRGB
}

type TextureParam uint8

const (
	TextureParamWrapS TextureParam = iota
	TextureParamWrapT
	TextureParamMinFilter
	TextureParamMagFilter
)

type TextureParamValue uint8

const (
	TextureRepeat TextureParamValue = iota
	TextureMirroredRepeat
	TextureClampToEdge
	TextureFilterNearest
	TextureFilterLinear
)

type ClearMask uint8

const (
	ClearColor ClearMask = 1 << iota
	ClearDepth
	ClearStencil
)

// RendererBackend is the slice of the graphics API the engine relies on.
// Every method must be called on the thread that owns the current context.
type RendererBackend interface {
	// Initialize loads the API entry points for the current context.
	Initialize() error
	CreateTexture() TextureHandle
	DestroyTexture(handle TextureHandle)
	// BindTexture makes handle the active 2D texture; InvalidTextureHandle unbinds.
	BindTexture(handle TextureHandle)
	TextureParameter(param TextureParam, value TextureParamValue)
	TextureUpload(width, height int, format PixelFormat, pixels []uint8)
	GenerateMipmaps()
	SetClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	SetViewport(x, y, width, height int)
}
