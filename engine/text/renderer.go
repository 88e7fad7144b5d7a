package text

import (
	"sort"

	"github.com/spaghettifunk/onyx/engine/core"
	"github.com/spaghettifunk/onyx/engine/math"
)

// Anchor selects the buffer corner a label's offset is measured from.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
	AnchorCenter
)

// Label is a piece of text placed on the overlay.
type Label struct {
	Text   string
	X, Y   float32
	Anchor Anchor
	Color  math.Vec3
}

/**
 * @brief A textured quad for a single glyph. Positions are buffer pixels
 * with the origin at the top left; texture coordinates are normalized
 * to the glyph's atlas page.
 */
type Quad struct {
	Page           int
	X0, Y0, X1, Y1 float32
	U0, V0, U1, V1 float32
	Color          math.Vec3
}

/**
 * @brief Lays text out over a window's framebuffer. Attach it to a window
 * with SetTextOverlay so layout follows the buffer size.
 */
type Renderer struct {
	font         *Font
	labels       map[string]*Label
	bufferWidth  int
	bufferHeight int
	projection   math.Mat4
	quads        []Quad
	dirty        bool
}

// NewRenderer creates an overlay drawing with font. The renderer takes
// ownership of the font.
func NewRenderer(font *Font) *Renderer {
	return &Renderer{
		font:       font,
		labels:     make(map[string]*Label),
		projection: math.NewMat4Identity(),
	}
}

func (r *Renderer) Font() *Font {
	return r.font
}

// SetLabel creates or replaces the label with the given id.
func (r *Renderer) SetLabel(id string, label Label) {
	l := label
	r.labels[id] = &l
	r.dirty = true
}

// SetText changes the text of an existing label. Unknown ids are ignored.
func (r *Renderer) SetText(id, text string) {
	l, ok := r.labels[id]
	if !ok || l.Text == text {
		return
	}
	l.Text = text
	r.dirty = true
}

func (r *Renderer) Label(id string) (Label, bool) {
	l, ok := r.labels[id]
	if !ok {
		return Label{}, false
	}
	return *l, true
}

func (r *Renderer) RemoveLabel(id string) {
	if _, ok := r.labels[id]; ok {
		delete(r.labels, id)
		r.dirty = true
	}
}

// OnBufferResize rebuilds the pixel projection and lays every label out again.
func (r *Renderer) OnBufferResize(width, height int) {
	r.bufferWidth = width
	r.bufferHeight = height
	r.projection = math.NewMat4Orthographic(0, float32(width), float32(height), 0, -1, 1)
	r.dirty = true
	core.LogDebug("text overlay resized to %dx%d", width, height)
}

func (r *Renderer) BufferSize() (int, int) {
	return r.bufferWidth, r.bufferHeight
}

// Projection maps buffer pixels, origin top left, to clip space.
func (r *Renderer) Projection() math.Mat4 {
	return r.projection
}

// Quads returns the glyph quads of every label, ordered by label id.
func (r *Renderer) Quads() []Quad {
	if r.dirty {
		r.layout()
	}
	return r.quads
}

// Draw binds each atlas page once and hands the quads using it to draw.
func (r *Renderer) Draw(draw func(page int, quads []Quad)) {
	quads := r.Quads()
	byPage := make(map[int][]Quad)
	var pages []int
	for _, q := range quads {
		if _, ok := byPage[q.Page]; !ok {
			pages = append(pages, q.Page)
		}
		byPage[q.Page] = append(byPage[q.Page], q)
	}
	sort.Ints(pages)
	for _, page := range pages {
		if t := r.font.Page(page); t != nil {
			t.Bind()
		}
		draw(page, byPage[page])
	}
}

// Dispose releases the font textures. Safe to call more than once.
func (r *Renderer) Dispose() {
	if r.font != nil {
		r.font.Dispose()
	}
	r.labels = make(map[string]*Label)
	r.quads = nil
	r.dirty = false
}

func (r *Renderer) layout() {
	r.quads = nil
	ids := make([]string, 0, len(r.labels))
	for id := range r.labels {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		l := r.labels[id]
		x, y := r.origin(l)
		r.quads = r.layoutText(r.quads, l, x, y)
	}
	r.dirty = false
}

func (r *Renderer) origin(l *Label) (float32, float32) {
	w, h := r.font.Measure(l.Text)
	bw, bh := float32(r.bufferWidth), float32(r.bufferHeight)
	tw, th := float32(w), float32(h)

	switch l.Anchor {
	case AnchorTopRight:
		return bw - tw - l.X, l.Y
	case AnchorBottomLeft:
		return l.X, bh - th - l.Y
	case AnchorBottomRight:
		return bw - tw - l.X, bh - th - l.Y
	case AnchorCenter:
		return (bw-tw)/2 + l.X, (bh-th)/2 + l.Y
	}
	return l.X, l.Y
}

func (r *Renderer) layoutText(quads []Quad, l *Label, originX, originY float32) []Quad {
	f := r.font
	atlasW, atlasH := float32(f.AtlasSizeX), float32(f.AtlasSizeY)
	x, y := originX, originY
	var prev rune

	for _, c := range l.Text {
		if c == '\n' {
			x = originX
			y += float32(f.LineHeight)
			prev = 0
			continue
		}
		g, ok := f.Glyphs[c]
		if !ok {
			prev = 0
			continue
		}
		if prev != 0 {
			x += float32(f.Kerning(prev, c))
		}
		if g.Width > 0 && g.Height > 0 {
			x0 := x + float32(g.XOffset)
			y0 := y + float32(g.YOffset)
			quads = append(quads, Quad{
				Page:  g.Page,
				X0:    x0,
				Y0:    y0,
				X1:    x0 + float32(g.Width),
				Y1:    y0 + float32(g.Height),
				U0:    float32(g.X) / atlasW,
				V0:    float32(g.Y) / atlasH,
				U1:    float32(g.X+g.Width) / atlasW,
				V1:    float32(g.Y+g.Height) / atlasH,
				Color: l.Color,
			})
		}
		x += float32(g.XAdvance)
		prev = c
	}
	return quads
}
