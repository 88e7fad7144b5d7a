package text

import (
	"errors"
	"fmt"

	"github.com/fzipp/bmfont"
	"github.com/spaghettifunk/onyx/engine/assets"
	"github.com/spaghettifunk/onyx/engine/renderer"
)

// ErrInvalidFont is returned for font files whose metrics cannot be laid out.
var ErrInvalidFont = errors.New("invalid bitmap font")

/** @brief A single glyph of a bitmap font atlas, in atlas pixels. */
type Glyph struct {
	Codepoint rune
	X         int
	Y         int
	Width     int
	Height    int
	XOffset   int
	YOffset   int
	XAdvance  int
	Page      int
}

/** @brief An ordered pair of codepoints with a kerning amount. */
type KerningPair struct {
	First  rune
	Second rune
}

/**
 * @brief A bitmap font: glyph metrics plus one texture per atlas page.
 * The font owns its page textures.
 */
type Font struct {
	Face       string
	Size       int
	LineHeight int
	Baseline   int
	AtlasSizeX int
	AtlasSizeY int
	Glyphs     map[rune]Glyph
	Kernings   map[KerningPair]int

	pages map[int]*renderer.Texture
}

// LoadFont reads an AngelCode .fnt file and uploads its page sheets.
func LoadFont(backend renderer.RendererBackend, path string) (*Font, error) {
	bf, err := bmfont.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load bitmap font %s: %w", path, err)
	}
	// Texture coordinates are divided by the atlas size.
	if c := bf.Descriptor.Common; c.ScaleW <= 0 || c.ScaleH <= 0 {
		return nil, fmt.Errorf("%w: %s has atlas size %dx%d", ErrInvalidFont, path, c.ScaleW, c.ScaleH)
	}

	font := newFont(bf.Descriptor)
	for id, sheet := range bf.PageSheets {
		t, err := renderer.NewTexture(backend, assets.FromImage(sheet, false))
		if err != nil {
			font.Dispose()
			return nil, fmt.Errorf("failed to upload page %d of %s: %w", id, path, err)
		}
		font.pages[id] = t
	}
	return font, nil
}

func newFont(d *bmfont.Descriptor) *Font {
	font := &Font{
		Face:       d.Info.Face,
		Size:       d.Info.Size,
		LineHeight: d.Common.LineHeight,
		Baseline:   d.Common.Base,
		AtlasSizeX: d.Common.ScaleW,
		AtlasSizeY: d.Common.ScaleH,
		Glyphs:     make(map[rune]Glyph, len(d.Chars)),
		Kernings:   make(map[KerningPair]int, len(d.Kerning)),
		pages:      make(map[int]*renderer.Texture),
	}
	for _, c := range d.Chars {
		font.Glyphs[c.ID] = Glyph{
			Codepoint: c.ID,
			X:         c.X,
			Y:         c.Y,
			Width:     c.Width,
			Height:    c.Height,
			XOffset:   c.XOffset,
			YOffset:   c.YOffset,
			XAdvance:  c.XAdvance,
			Page:      c.Page,
		}
	}
	for pair, k := range d.Kerning {
		font.Kernings[KerningPair{First: pair.First, Second: pair.Second}] = k.Amount
	}
	return font
}

// Page returns the texture of an atlas page, nil when the font has none.
func (f *Font) Page(id int) *renderer.Texture {
	return f.pages[id]
}

func (f *Font) PageCount() int {
	return len(f.pages)
}

// Kerning returns the horizontal adjustment between two consecutive codepoints.
func (f *Font) Kerning(first, second rune) int {
	return f.Kernings[KerningPair{First: first, Second: second}]
}

// Measure returns the pixel size of text laid out from the origin.
func (f *Font) Measure(text string) (width, height int) {
	lines := 1
	x := 0
	var prev rune
	for _, r := range text {
		if r == '\n' {
			lines++
			x = 0
			prev = 0
			continue
		}
		g, ok := f.Glyphs[r]
		if !ok {
			prev = 0
			continue
		}
		if prev != 0 {
			x += f.Kerning(prev, r)
		}
		x += g.XAdvance
		if x > width {
			width = x
		}
		prev = r
	}
	return width, lines * f.LineHeight
}

// Dispose deletes the page textures. Safe to call more than once.
func (f *Font) Dispose() {
	for id, t := range f.pages {
		t.Dispose()
		delete(f.pages, id)
	}
}
