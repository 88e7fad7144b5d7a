package assets

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/onyx/engine/core"
)

/**
 * @brief CPU side pixel data, tightly packed rows of 8 bit channels,
 * top row first. Textures are built from it.
 */
type ImageData struct {
	width    int
	height   int
	channels int
	pixels   []uint8
}

// NewImageData wraps an already decoded pixel buffer. The buffer is not copied.
func NewImageData(width, height, channels int, pixels []uint8) *ImageData {
	return &ImageData{
		width:    width,
		height:   height,
		channels: channels,
		pixels:   pixels,
	}
}

// LoadImage decodes png, jpeg, gif, bmp, tiff and webp files. Opaque
// images are returned with 3 channels, everything else with 4.
func LoadImage(path string, flipY bool) (*ImageData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	data := FromImage(img, flipY)
	core.LogDebug("loaded %s image %s (%dx%d, %d channels)", format, path, data.width, data.height, data.channels)
	return data, nil
}

// FromImage converts any image.Image into packed RGB or RGBA pixels.
func FromImage(img image.Image, flipY bool) *ImageData {
	bounds := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)

	channels := 4
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		channels = 3
	}

	width, height := nrgba.Rect.Dx(), nrgba.Rect.Dy()
	pixels := make([]uint8, width*height*channels)
	for y := 0; y < height; y++ {
		srcY := y
		if flipY {
			srcY = height - 1 - y
		}
		src := nrgba.Pix[srcY*nrgba.Stride : srcY*nrgba.Stride+width*4]
		dst := pixels[y*width*channels : (y+1)*width*channels]
		if channels == 4 {
			copy(dst, src)
			continue
		}
		for x := 0; x < width; x++ {
			dst[x*3+0] = src[x*4+0]
			dst[x*3+1] = src[x*4+1]
			dst[x*3+2] = src[x*4+2]
		}
	}
	return NewImageData(width, height, channels, pixels)
}

func (i *ImageData) Width() int {
	return i.width
}

func (i *ImageData) Height() int {
	return i.height
}

func (i *ImageData) Channels() int {
	return i.channels
}

// Pixels returns the raw buffer, nil once disposed.
func (i *ImageData) Pixels() []uint8 {
	return i.pixels
}

// Validate reports whether the image can be uploaded as a texture.
func (i *ImageData) Validate() error {
	switch {
	case i == nil || i.pixels == nil:
		return fmt.Errorf("%w: no pixel data", core.ErrInvalidImageData)
	case i.width <= 0 || i.height <= 0:
		return fmt.Errorf("%w: dimensions %dx%d", core.ErrInvalidImageData, i.width, i.height)
	case i.channels != 3 && i.channels != 4:
		return fmt.Errorf("%w: %d channels", core.ErrInvalidImageData, i.channels)
	case len(i.pixels) != i.width*i.height*i.channels:
		return fmt.Errorf("%w: buffer holds %d bytes, want %d", core.ErrInvalidImageData, len(i.pixels), i.width*i.height*i.channels)
	}
	return nil
}

func (i *ImageData) IsDisposed() bool {
	return i.pixels == nil
}

// Dispose releases the pixel buffer. Safe to call more than once.
func (i *ImageData) Dispose() {
	if i == nil {
		return
	}
	i.pixels = nil
}
