package gui

import "github.com/phanxgames/bramble"

// Visual is a render strategy owned by a Control: a single tile (Sprite),
// a three-slice (ThreeSlice), a nine-slice (NineSlice) or text (Text).
// Visuals own their tile handles; nothing else touches them.
type Visual interface {
	Attach(batch bramble.TileBatch, layer int)
	Release()
	SetPosition(x, y float64)
	SetVisible(visible bool)

	visual()
}

// Sprite is a single stretched tile.
type Sprite struct {
	batch  bramble.TileBatch
	layer  int
	handle bramble.TileHandle

	x, y    float64
	dx, dy  float64
	w, h    float64
	region  bramble.RegionID
	color   bramble.Color
	visible bool
}

// NewSprite creates a visible sprite of the given size.
func NewSprite(region bramble.RegionID, w, h float64) *Sprite {
	return &Sprite{region: region, w: w, h: h, color: bramble.ColorWhite, visible: true}
}

func (s *Sprite) visual() {}

// Handle returns the tile handle, or 0 when detached.
func (s *Sprite) Handle() bramble.TileHandle { return s.handle }

// Region returns the drawn region.
func (s *Sprite) Region() bramble.RegionID { return s.region }

// Bounds returns the tile rectangle.
func (s *Sprite) Bounds() bramble.Rect {
	return bramble.Rect{X: s.x + s.dx, Y: s.y + s.dy, Width: s.w, Height: s.h}
}

// Attach adds the tile to batch.
func (s *Sprite) Attach(batch bramble.TileBatch, layer int) {
	if s.handle != 0 || batch == nil {
		return
	}
	s.batch, s.layer = batch, layer
	r := s.Bounds()
	s.handle = batch.AddTile(r.X, r.Y, r.Width, r.Height, s.region)
	if s.handle == 0 {
		return
	}
	batch.UpdateTile(s.handle, func(t *bramble.Tile) {
		t.Color = s.color
		t.Visible = s.visible
		t.Layer = layer
	})
}

// Release removes the tile.
func (s *Sprite) Release() {
	if s.handle == 0 {
		return
	}
	s.batch.RemoveTile(s.handle)
	s.handle = 0
}

// SetPosition moves the sprite's origin.
func (s *Sprite) SetPosition(x, y float64) {
	s.x, s.y = x, y
	s.push()
}

// SetOffset places the tile relative to the origin.
func (s *Sprite) SetOffset(dx, dy float64) {
	s.dx, s.dy = dx, dy
	s.push()
}

// SetSize resizes the tile.
func (s *Sprite) SetSize(w, h float64) {
	s.w, s.h = w, h
	s.push()
}

func (s *Sprite) push() {
	if s.handle == 0 {
		return
	}
	r := s.Bounds()
	s.batch.UpdateTile(s.handle, func(t *bramble.Tile) {
		t.X, t.Y, t.W, t.H = r.X, r.Y, r.Width, r.Height
	})
}

// SetRegion changes the drawn region.
func (s *Sprite) SetRegion(region bramble.RegionID) {
	s.region = region
	if s.handle != 0 {
		s.batch.UpdateTile(s.handle, func(t *bramble.Tile) { t.Region = region })
	}
}

// SetColor sets the tint.
func (s *Sprite) SetColor(c bramble.Color) {
	s.color = c
	if s.handle != 0 {
		s.batch.UpdateTile(s.handle, func(t *bramble.Tile) { t.Color = c })
	}
}

// SetVisible shows or hides the tile.
func (s *Sprite) SetVisible(visible bool) {
	s.visible = visible
	if s.handle != 0 {
		s.batch.UpdateTile(s.handle, func(t *bramble.Tile) { t.Visible = visible })
	}
}

// Text is a run of bitmap-font glyphs, one tile each. Within its box the
// text is aligned horizontally by its TextAlign and centered vertically.
type Text struct {
	font  *bramble.BitmapFont
	text  string
	align bramble.TextAlign

	boxW, boxH    float64
	width, height float64
	x, y          float64
	color         bramble.Color
	visible       bool

	batch   bramble.TileBatch
	layer   int
	glyphs  []bramble.GlyphPlacement
	handles []bramble.TileHandle
}

// NewText creates visible text. font may be nil, in which case nothing is
// drawn.
func NewText(font *bramble.BitmapFont, text string) *Text {
	t := &Text{font: font, text: text, color: bramble.ColorWhite, visible: true}
	t.layout()
	return t
}

func (t *Text) visual() {}

// Text returns the string.
func (t *Text) Text() string { return t.text }

// Size returns the laid-out text size.
func (t *Text) Size() (w, h float64) { return t.width, t.height }

// Glyphs returns the number of glyph tiles.
func (t *Text) Glyphs() int { return len(t.glyphs) }

// SetText replaces the string.
func (t *Text) SetText(s string) {
	if s == t.text {
		return
	}
	t.text = s
	t.rebuild()
}

// SetAlign sets the horizontal alignment within the box.
func (t *Text) SetAlign(a bramble.TextAlign) {
	t.align = a
	t.rebuild()
}

// SetBox sets the area the text is aligned in. A zero width disables
// wrapping and alignment; a zero height disables vertical centering.
func (t *Text) SetBox(w, h float64) {
	t.boxW, t.boxH = w, h
	t.rebuild()
}

// SetColor tints every glyph.
func (t *Text) SetColor(c bramble.Color) {
	t.color = c
	for _, h := range t.handles {
		t.batch.UpdateTile(h, func(tl *bramble.Tile) { tl.Color = c })
	}
}

func (t *Text) layout() {
	t.glyphs = t.glyphs[:0]
	t.width, t.height = 0, 0
	if t.font == nil || t.text == "" {
		return
	}
	t.glyphs = t.font.Layout(t.text, t.align, t.boxW)
	t.width, t.height = t.font.MeasureWrapped(t.text, t.boxW)
}

func (t *Text) rebuild() {
	batch := t.batch
	t.Release()
	t.layout()
	if batch != nil {
		t.Attach(batch, t.layer)
	}
}

func (t *Text) yOffset() float64 {
	if t.boxH > 0 {
		return (t.boxH - t.height) / 2
	}
	return 0
}

// Attach adds one tile per glyph to batch.
func (t *Text) Attach(batch bramble.TileBatch, layer int) {
	if len(t.handles) > 0 || batch == nil {
		return
	}
	t.batch, t.layer = batch, layer
	oy := t.yOffset()
	for _, g := range t.glyphs {
		h := batch.AddTile(t.x+g.X, t.y+oy+g.Y, g.W, g.H, g.Region)
		if h == 0 {
			break
		}
		batch.UpdateTile(h, func(tl *bramble.Tile) {
			tl.Color = t.color
			tl.Visible = t.visible
			tl.Layer = layer
		})
		t.handles = append(t.handles, h)
	}
}

// Release removes every glyph tile.
func (t *Text) Release() {
	for _, h := range t.handles {
		t.batch.RemoveTile(h)
	}
	t.handles = t.handles[:0]
	t.batch = nil
}

// SetPosition moves the text box origin.
func (t *Text) SetPosition(x, y float64) {
	t.x, t.y = x, y
	oy := t.yOffset()
	for i, h := range t.handles {
		g := t.glyphs[i]
		t.batch.UpdateTile(h, func(tl *bramble.Tile) {
			tl.X, tl.Y = x+g.X, y+oy+g.Y
		})
	}
}

// SetVisible shows or hides every glyph.
func (t *Text) SetVisible(visible bool) {
	t.visible = visible
	for _, h := range t.handles {
		t.batch.UpdateTile(h, func(tl *bramble.Tile) { tl.Visible = visible })
	}
}
