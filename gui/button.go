package gui

import "github.com/phanxgames/bramble"

// ButtonSkin holds the three-slice regions for each button state.
type ButtonSkin struct {
	Normal, Hover, Pressed [3]bramble.RegionID
	LeftWidth, RightWidth  float64
}

var disabledTint = bramble.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}

// Button is a clickable control with a three-slice skin and a centered
// caption.
type Button struct {
	Control
	skin    ButtonSkin
	frame   *ThreeSlice
	caption *Text
	enabled bool
	down    bool
}

// NewButton creates an enabled button. font may be nil for an icon-less,
// caption-less button.
func NewButton(name string, x, y, width, height float64, skin ButtonSkin, font *bramble.BitmapFont, caption string) *Button {
	b := &Button{skin: skin, enabled: true}
	b.setup(name, x, y, width, height)

	b.frame = NewThreeSlice(skin.Normal, skin.LeftWidth, skin.RightWidth, height)
	b.frame.SetWidth(width)
	b.AddVisual(b.frame)

	b.caption = NewText(font, caption)
	b.caption.SetAlign(bramble.TextAlignCenter)
	b.caption.SetBox(width, height)
	b.AddVisual(b.caption)

	b.watchResize(func() {
		b.frame.SetWidth(b.width)
		b.frame.SetHeight(b.height)
		b.caption.SetBox(b.width, b.height)
	})
	b.On(EventMouseEnter, func(Event) { b.refresh() })
	b.On(EventMouseLeave, func(Event) {
		b.down = false
		b.refresh()
	})
	b.On(EventMouseDown, func(Event) {
		b.down = true
		b.refresh()
	})
	b.On(EventMouseLeftClick, func(Event) {
		b.down = false
		b.refresh()
	})
	return b
}

// OnClick registers fn to run on a left click while the button is enabled.
func (b *Button) OnClick(fn func()) Handle {
	return b.On(EventMouseLeftClick, func(Event) {
		if b.enabled {
			fn()
		}
	})
}

// Enabled reports whether clicks run OnClick callbacks.
func (b *Button) Enabled() bool { return b.enabled }

// SetEnabled turns the button on or off. A disabled button is greyed out.
func (b *Button) SetEnabled(enabled bool) {
	b.enabled = enabled
	if enabled {
		b.frame.SetColor(bramble.ColorWhite)
		b.caption.SetColor(bramble.ColorWhite)
	} else {
		b.frame.SetColor(disabledTint)
		b.caption.SetColor(disabledTint)
	}
	b.refresh()
}

// Caption returns the caption text.
func (b *Button) Caption() string { return b.caption.Text() }

// SetCaption replaces the caption text.
func (b *Button) SetCaption(s string) { b.caption.SetText(s) }

// Frame returns the three-slice skin.
func (b *Button) Frame() *ThreeSlice { return b.frame }

func (b *Button) refresh() {
	switch {
	case !b.enabled || !b.hover:
		b.frame.SetRegions(b.skin.Normal)
	case b.down:
		b.frame.SetRegions(b.skin.Pressed)
	default:
		b.frame.SetRegions(b.skin.Hover)
	}
}
