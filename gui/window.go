package gui

import (
	"github.com/phanxgames/bramble"
	"github.com/tanema/gween/ease"
)

// WindowSkin describes a window: a nine-slice frame, a three-slice title
// bar and a close button.
type WindowSkin struct {
	Frame  [9]bramble.RegionID
	Corner float64

	Title       [3]bramble.RegionID
	TitleLeft   float64
	TitleRight  float64
	TitleHeight float64

	Close     ButtonSkin
	CloseSize float64
}

// Window is a panel with a title bar. Dragging the title bar moves the
// window; the close button hides it.
type Window struct {
	Panel
	titleBar *Strip
	caption  *Label
	closeBtn *Button

	closeSize float64
	dragging  bool
	grabX     float64
	grabY     float64

	slide          *bramble.TweenGroup
	slideX, slideY float64

	onClose func()
	closer  func()
}

// NewWindow creates a visible window.
func NewWindow(name string, x, y, width, height float64, skin WindowSkin, font *bramble.BitmapFont, title string) *Window {
	w := &Window{}
	w.init(name, x, y, width, height, skin, font, title)
	w.closer = w.Close
	return w
}

func (w *Window) init(name string, x, y, width, height float64, skin WindowSkin, font *bramble.BitmapFont, title string) {
	w.Panel.init(name, x, y, width, height, skin.Frame, skin.Corner)
	w.closeSize = skin.CloseSize

	th := skin.TitleHeight
	w.titleBar = NewStrip(name+".title", 0, 0, width, th, skin.Title, skin.TitleLeft, skin.TitleRight)
	w.closeBtn = NewButton(name+".close", width-w.closeSize, (th-w.closeSize)/2, w.closeSize, w.closeSize, skin.Close, nil, "")
	w.caption = NewLabel(name+".caption", 0, 0, max(0, width-w.closeSize), th, font, title)
	w.caption.SetAlign(bramble.TextAlignCenter)

	// Close button first so it wins the shared edge with the caption.
	w.titleBar.AddControl(w.closeBtn)
	w.titleBar.AddControl(w.caption)
	w.AddControl(w.titleBar)

	w.closeBtn.OnClick(func() { w.closer() })
	w.titleBar.On(EventMouseDown, w.startDrag)
	w.caption.On(EventMouseDown, w.startDrag)

	w.watchResize(func() {
		w.titleBar.SetWidth(w.width)
		w.caption.SetWidth(max(0, w.width-w.closeSize))
		w.closeBtn.SetX(w.width - w.closeSize)
	})
}

// Title returns the caption text.
func (w *Window) Title() string { return w.caption.Text() }

// SetTitle replaces the caption text.
func (w *Window) SetTitle(s string) { w.caption.SetText(s) }

// TitleBar returns the title strip.
func (w *Window) TitleBar() *Strip { return w.titleBar }

// CloseButton returns the close button.
func (w *Window) CloseButton() *Button { return w.closeBtn }

// Dragging reports whether the title bar is being dragged.
func (w *Window) Dragging() bool { return w.dragging }

// OnClose sets the function run after the window closes.
func (w *Window) OnClose(fn func()) { w.onClose = fn }

// Close hides the window.
func (w *Window) Close() {
	w.SetVisible(false)
	w.closed()
}

func (w *Window) closed() {
	w.dragging = false
	if w.onClose != nil {
		w.onClose()
	}
}

func (w *Window) startDrag(Event) {
	cv := w.canvas
	if cv == nil || w.dragging {
		return
	}
	mx, my := cv.Mouse()
	w.dragging = true
	w.grabX, w.grabY = mx-w.x, my-w.y
	cv.AddTicker(func(float64) bool {
		if !w.active || !w.dragging || !cv.MouseDown() {
			w.dragging = false
			return false
		}
		mx, my := cv.Mouse()
		w.SetPosition(mx-w.grabX, my-w.grabY)
		return true
	})
}

// SlideIn moves the window from (fromX, fromY) to its current position
// over duration seconds. The animation starts once the window is on a
// canvas.
func (w *Window) SlideIn(fromX, fromY float64, duration float32, fn ease.TweenFunc) {
	toX, toY := w.x, w.y
	w.slideX, w.slideY = fromX, fromY
	w.SetPosition(fromX, fromY)
	w.slide = bramble.NewTween([]*float64{&w.slideX, &w.slideY}, []float64{toX, toY}, duration, fn)
	slide := w.slide
	tick := func(dt float64) bool {
		if !w.active || w.slide != slide {
			return false
		}
		slide.Update(float32(dt))
		w.SetPosition(w.slideX, w.slideY)
		return !slide.Done
	}
	if w.active {
		w.canvas.AddTicker(tick)
		return
	}
	var h Handle
	h = w.On(EventInit, func(Event) {
		h.Remove()
		w.canvas.AddTicker(tick)
	})
}

// Sliding reports whether a slide-in is running.
func (w *Window) Sliding() bool {
	return w.slide != nil && !w.slide.Done
}
