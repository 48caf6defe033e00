package gui

import "github.com/phanxgames/bramble"

// Label is a control showing a line (or a wrapped block) of text.
// A label created with zero width and height sizes itself to its text.
type Label struct {
	Control
	text     *Text
	autoSize bool
}

// NewLabel creates a label. Pass zero width and height to size to the text.
func NewLabel(name string, x, y, width, height float64, font *bramble.BitmapFont, text string) *Label {
	l := &Label{}
	l.init(name, x, y, width, height, font, text)
	return l
}

func (l *Label) init(name string, x, y, width, height float64, font *bramble.BitmapFont, text string) {
	l.setup(name, x, y, width, height)
	l.text = NewText(font, text)
	l.autoSize = width == 0 && height == 0
	if l.autoSize {
		l.width, l.height = l.text.Size()
	} else {
		l.text.SetBox(width, height)
	}
	l.AddVisual(l.text)
	l.watchResize(func() {
		if !l.autoSize {
			l.text.SetBox(l.width, l.height)
		}
	})
}

// Text returns the label string.
func (l *Label) Text() string { return l.text.Text() }

// TextVisual returns the text visual.
func (l *Label) TextVisual() *Text { return l.text }

// SetText replaces the label string and fires EventChange.
func (l *Label) SetText(s string) {
	if s == l.text.Text() {
		return
	}
	l.text.SetText(s)
	if l.autoSize {
		l.width, l.height = l.text.Size()
	}
	l.emit(EventChange)
}

// SetAlign sets the horizontal alignment within the label.
func (l *Label) SetAlign(a bramble.TextAlign) {
	l.text.SetAlign(a)
}

// SetColor tints the text.
func (l *Label) SetColor(c bramble.Color) {
	l.text.SetColor(c)
}

// Stamp is a control drawn as a single tile covering its bounds, such as
// an icon or a solid fill.
type Stamp struct {
	Control
	sprite *Sprite
}

// NewStamp creates a stamp drawing region.
func NewStamp(name string, x, y, width, height float64, region bramble.RegionID) *Stamp {
	s := &Stamp{}
	s.setup(name, x, y, width, height)
	s.sprite = NewSprite(region, width, height)
	s.AddVisual(s.sprite)
	s.watchResize(func() { s.sprite.SetSize(s.width, s.height) })
	return s
}

// Sprite returns the tile visual.
func (s *Stamp) Sprite() *Sprite { return s.sprite }

// SetRegion changes the drawn region.
func (s *Stamp) SetRegion(region bramble.RegionID) { s.sprite.SetRegion(region) }

// SetColor tints the tile.
func (s *Stamp) SetColor(c bramble.Color) { s.sprite.SetColor(c) }
