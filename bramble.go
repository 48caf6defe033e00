package bramble

import "github.com/hajimehoshi/ebiten/v2"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// The low edges are excluded and the high edges included, so two rectangles
// sharing an edge never both claim a point on it.
func (r Rect) Contains(x, y float64) bool {
	return x > r.X && x <= r.X+r.Width &&
		y > r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
	mouseButtonCount
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Key is a keyboard key code. Values match ebiten.Key so the ebiten input
// backend converts without a lookup table.
type Key int

// Commonly used keys. Any ebiten.Key value converts with Key(k).
const (
	KeyA         = Key(ebiten.KeyA)
	KeyD         = Key(ebiten.KeyD)
	KeyS         = Key(ebiten.KeyS)
	KeyW         = Key(ebiten.KeyW)
	KeyEnter     = Key(ebiten.KeyEnter)
	KeyEscape    = Key(ebiten.KeyEscape)
	KeySpace     = Key(ebiten.KeySpace)
	KeyTab       = Key(ebiten.KeyTab)
	KeyBackspace = Key(ebiten.KeyBackspace)
	KeyLeft      = Key(ebiten.KeyArrowLeft)
	KeyRight     = Key(ebiten.KeyArrowRight)
	KeyUp        = Key(ebiten.KeyArrowUp)
	KeyDown      = Key(ebiten.KeyArrowDown)
	KeyShift     = Key(ebiten.KeyShift)
)

// TextAlign controls horizontal text alignment.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // align text to the left edge (default)
	TextAlignCenter                  // center text horizontally
	TextAlignRight                   // align text to the right edge
)
