package gui

import (
	"github.com/phanxgames/bramble"
	"github.com/phanxgames/bramble/ecs"
)

// Widget is anything that can live in a Container. Every widget is built
// around a Control returned by Base.
type Widget interface {
	Base() *Control
	Update()
	HitTest() bool
}

// Control is the positionable, hit-testable, event-dispatching core of
// every widget. Its screen position is (OffsetX+X, OffsetY+Y), where the
// offset is inherited from the parent container and kept in sync eagerly.
//
// A Control is Uninitialized until its container (or the Canvas) attaches
// it, Active until Release, and Released forever after.
type Control struct {
	name             string
	x, y             float64
	offsetX, offsetY float64
	width, height    float64

	visible  bool
	active   bool
	released bool
	focused  bool
	hover    bool

	canvas *Canvas
	parent *Control
	owner  Widget

	events  registry
	visuals []Visual

	// Internal hooks. Visuals and containers subscribe to these instead of
	// overriding position or visibility setters.
	moved     []func()
	shown     []func(visible bool)
	resized   []func()
	onInit    []func()
	onRelease []func()
	leave     func()
	children  func() []*Control
}

var _ Widget = (*Control)(nil)

// NewControl creates a bare visible control.
func NewControl(name string, x, y, width, height float64) *Control {
	c := &Control{}
	c.setup(name, x, y, width, height)
	return c
}

func (c *Control) setup(name string, x, y, width, height float64) {
	c.name = name
	c.x, c.y = x, y
	c.width, c.height = width, height
	c.visible = true
}

// Base returns c.
func (c *Control) Base() *Control { return c }

// Widget returns the widget that owns c, or c itself.
func (c *Control) Widget() Widget {
	if c.owner != nil {
		return c.owner
	}
	return c
}

func (c *Control) Name() string      { return c.name }
func (c *Control) X() float64        { return c.x }
func (c *Control) Y() float64        { return c.y }
func (c *Control) OffsetX() float64  { return c.offsetX }
func (c *Control) OffsetY() float64  { return c.offsetY }
func (c *Control) ScreenX() float64  { return c.offsetX + c.x }
func (c *Control) ScreenY() float64  { return c.offsetY + c.y }
func (c *Control) Width() float64    { return c.width }
func (c *Control) Height() float64   { return c.height }
func (c *Control) Visible() bool     { return c.visible }
func (c *Control) Active() bool      { return c.active }
func (c *Control) Released() bool    { return c.released }
func (c *Control) Focused() bool     { return c.focused }
func (c *Control) Hovered() bool     { return c.hover }
func (c *Control) Canvas() *Canvas   { return c.canvas }
func (c *Control) Parent() *Control  { return c.parent }
func (c *Control) Visuals() []Visual { return c.visuals }

// Bounds returns the screen rectangle.
func (c *Control) Bounds() bramble.Rect {
	return bramble.Rect{X: c.ScreenX(), Y: c.ScreenY(), Width: c.width, Height: c.height}
}

// SetX moves the control horizontally within its parent.
func (c *Control) SetX(x float64) {
	c.x = x
	c.notifyMoved()
}

// SetY moves the control vertically within its parent.
func (c *Control) SetY(y float64) {
	c.y = y
	c.notifyMoved()
}

// SetPosition moves the control within its parent.
func (c *Control) SetPosition(x, y float64) {
	c.x, c.y = x, y
	c.notifyMoved()
}

// SetWidth resizes the control horizontally.
func (c *Control) SetWidth(w float64) {
	c.width = w
	c.notifyResized()
}

// SetHeight resizes the control vertically.
func (c *Control) SetHeight(h float64) {
	c.height = h
	c.notifyResized()
}

// SetSize resizes the control.
func (c *Control) SetSize(w, h float64) {
	c.width, c.height = w, h
	c.notifyResized()
}

// SetVisible shows or hides the control. Containers push the value to
// every descendant.
func (c *Control) SetVisible(visible bool) {
	c.visible = visible
	for _, fn := range c.shown {
		fn(visible)
	}
}

// setOffset is called by the parent container when its screen position
// changes.
func (c *Control) setOffset(x, y float64) {
	c.offsetX, c.offsetY = x, y
	c.notifyMoved()
}

func (c *Control) notifyMoved() {
	for _, fn := range c.moved {
		fn()
	}
}

func (c *Control) notifyResized() {
	for _, fn := range c.resized {
		fn()
	}
}

func (c *Control) watchMove(fn func())                { c.moved = append(c.moved, fn) }
func (c *Control) watchVisible(fn func(visible bool)) { c.shown = append(c.shown, fn) }
func (c *Control) watchResize(fn func())              { c.resized = append(c.resized, fn) }

// AddVisual makes v follow the control's screen position and visibility.
// It is drawn once the control is active.
func (c *Control) AddVisual(v Visual) {
	c.visuals = append(c.visuals, v)
	if len(c.visuals) == 1 {
		c.watchMove(c.placeVisuals)
		c.watchVisible(c.showVisuals)
	}
	v.SetPosition(c.ScreenX(), c.ScreenY())
	v.SetVisible(c.visible)
	if c.active {
		v.Attach(c.canvas.batch, c.canvas.layer)
	}
}

func (c *Control) placeVisuals() {
	x, y := c.ScreenX(), c.ScreenY()
	for _, v := range c.visuals {
		v.SetPosition(x, y)
	}
}

func (c *Control) showVisuals(visible bool) {
	for _, v := range c.visuals {
		v.SetVisible(visible)
	}
}

// On registers fn for events of type t. An unknown type or nil fn is
// ignored and yields a zero Handle.
func (c *Control) On(t EventType, fn func(Event)) Handle {
	return c.events.add(t, fn)
}

func (c *Control) emit(t EventType) {
	c.emitKey(t, 0)
}

func (c *Control) emitKey(t EventType, key bramble.Key) {
	if t >= eventTypeCount {
		return
	}
	ev := Event{Type: t, Control: c, Key: key}
	if c.canvas != nil {
		ev.X, ev.Y = c.canvas.mouseX, c.canvas.mouseY
		ev.Mods = c.canvas.mods
		if c.canvas.store != nil && t.forwarded() {
			c.canvas.store.EmitInteraction(ecs.Interaction{
				Type: t.String(), Control: c.name, X: ev.X, Y: ev.Y, Key: key,
			})
		}
	}
	for _, h := range c.events.handlers[t] {
		h.fn(ev)
	}
}

// initialize moves the control from Uninitialized to Active. Only
// containers and the canvas call it.
func (c *Control) initialize(canvas *Canvas) {
	if c.active || c.released || canvas == nil {
		return
	}
	c.canvas = canvas
	for _, v := range c.visuals {
		v.Attach(canvas.batch, canvas.layer)
	}
	c.active = true
	c.notifyMoved()
	c.showVisuals(c.visible)
	for _, fn := range c.onInit {
		fn()
	}
	c.emit(EventInit)
}

// Release detaches the control's visuals, releases its children and drops
// every listener. A released control never becomes active again.
func (c *Control) Release() {
	if c.released {
		return
	}
	for _, fn := range c.onRelease {
		fn()
	}
	if c.active {
		c.emit(EventRelease)
	}
	for _, v := range c.visuals {
		v.Release()
	}
	if c.canvas != nil {
		c.canvas.forget(c)
	}
	c.active = false
	c.released = true
	c.hover = false
	c.focused = false
	c.events.clear()
}

// HitTest reports whether the cursor is inside the control. The left and
// top edges are outside, the right and bottom edges inside, so adjacent
// controls never both claim a boundary pixel. The bottom-right corner
// itself is inside: a 20x20 control at (10,10) claims (30,30).
func (c *Control) HitTest() bool {
	if !c.visible || c.canvas == nil {
		return false
	}
	return c.Bounds().Contains(c.canvas.mouseX, c.canvas.mouseY)
}

// Update runs the control's per-frame pointer logic. Containers call it
// only for the control under the cursor.
func (c *Control) Update() {
	if !c.active {
		return
	}
	if c.hover {
		c.emit(EventMouseHover)
	} else {
		c.hover = true
		c.emit(EventMouseEnter)
	}
	c.canvas.marked = c
	if c.canvas.pressed {
		c.emit(EventMouseDown)
	}
	if c.canvas.clicked {
		c.emit(EventMouseLeftClick)
		if !c.focused {
			c.canvas.focusRequest = c
		}
	}
}

// mouseLeave clears hover on c and its hovered descendants.
func (c *Control) mouseLeave() {
	if c.leave != nil {
		c.leave()
	}
	if c.hover {
		c.hover = false
		c.emit(EventMouseLeave)
	}
}

// isWithin reports whether c is ancestor or one of its descendants.
func (c *Control) isWithin(ancestor *Control) bool {
	for p := c; p != nil; p = p.parent {
		if p == ancestor {
			return true
		}
	}
	return false
}
