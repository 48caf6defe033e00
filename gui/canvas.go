package gui

import (
	"slices"

	"github.com/phanxgames/bramble"
	"github.com/phanxgames/bramble/ecs"
	"go.uber.org/zap"
)

// DefaultLayer is the tile layer GUI visuals draw on unless the canvas is
// told otherwise. It sits above typical game layers.
const DefaultLayer = 1 << 20

// Ticker runs once per canvas frame until it returns false.
type Ticker func(dt float64) bool

// Canvas is the GUI root. It owns the root container, tracks the marked
// (hovered) and focused controls and feeds input into the tree once per
// frame. Both marked and focused default to the root and are never nil.
type Canvas struct {
	batch bramble.TileBatch
	input bramble.Input
	layer int

	root    *Container[Widget]
	marked  *Control
	focused *Control
	dialog  *Dialog

	focusRequest *Control

	mouseX, mouseY float64
	clicked        bool
	pressed        bool
	down           bool
	mods           bramble.KeyModifiers
	dt             float64

	tickers []Ticker
	keyBuf  []bramble.Key

	entity *ecs.Entity
	store  ecs.EventStore
}

var _ ecs.RenderSystem = (*Canvas)(nil)

// NewCanvas creates a canvas drawing into batch and reading input, with a
// root container covering width×height.
func NewCanvas(batch bramble.TileBatch, input bramble.Input, width, height float64) *Canvas {
	cv := &Canvas{
		batch:  batch,
		input:  input,
		layer:  DefaultLayer,
		entity: ecs.NewEntity("canvas"),
	}
	cv.root = NewContainer[Widget]("root", 0, 0, width, height)
	cv.root.owner = cv.root
	cv.root.initialize(cv)
	cv.marked = &cv.root.Control
	cv.focused = &cv.root.Control
	cv.root.focused = true
	cv.entity.SetRender(canvasRender{cv})
	return cv
}

// canvasRender ties the control tree to the canvas entity, so cleaning up
// the entity releases every control and its tiles.
type canvasRender struct{ cv *Canvas }

func (r canvasRender) RenderActive() bool           { return !r.cv.root.released }
func (r canvasRender) InitRender(bramble.TileBatch) {}
func (r canvasRender) ReleaseRender()               { r.cv.Release() }

// Release frees every control and its tiles. The canvas does nothing
// afterwards.
func (cv *Canvas) Release() {
	cv.dialog = nil
	cv.root.Release()
}

// Root returns the root container.
func (cv *Canvas) Root() *Container[Widget] { return cv.root }

// Entity returns the entity that represents the canvas in a State.
func (cv *Canvas) Entity() *ecs.Entity { return cv.entity }

// Batch returns the tile batch visuals draw into.
func (cv *Canvas) Batch() bramble.TileBatch { return cv.batch }

// Input returns the input source.
func (cv *Canvas) Input() bramble.Input { return cv.input }

// SetLayer sets the tile layer for visuals attached from now on.
func (cv *Canvas) SetLayer(layer int) { cv.layer = layer }

// SetEventStore forwards clicks, focus changes and key events to store.
func (cv *Canvas) SetEventStore(store ecs.EventStore) { cv.store = store }

// Attach adds the canvas entity and render system to state and forwards
// interactions to the state's event store.
func (cv *Canvas) Attach(state *ecs.State) {
	state.AddEntity(cv.entity)
	state.AddRenderSystem(cv)
	cv.store = state.Store()
}

// Detach undoes Attach. The control tree is kept, so the canvas can be
// attached again.
func (cv *Canvas) Detach(state *ecs.State) {
	state.RemoveRenderSystem(cv)
	state.RemoveEntity(cv.entity)
	if cv.store == state.Store() {
		cv.store = nil
	}
}

// Render runs one GUI frame.
func (cv *Canvas) Render(dt float64) {
	cv.dt = dt
	cv.Update()
}

// AddControl adds w to the root container.
func (cv *Canvas) AddControl(w Widget) Widget { return cv.root.AddControl(w) }

// RemoveControl removes w from the root container.
func (cv *Canvas) RemoveControl(w Widget) bool { return cv.root.RemoveControl(w) }

// Marked returns the control under the cursor as of the last Update.
func (cv *Canvas) Marked() *Control { return cv.marked }

// Focused returns the focused control.
func (cv *Canvas) Focused() *Control { return cv.focused }

// Dialog returns the open modal dialog, or nil.
func (cv *Canvas) Dialog() *Dialog { return cv.dialog }

// Mouse returns the cursor position sampled this frame.
func (cv *Canvas) Mouse() (x, y float64) { return cv.mouseX, cv.mouseY }

// Clicked reports whether the left button was released this frame.
func (cv *Canvas) Clicked() bool { return cv.clicked }

// MouseDown reports whether the left button is held.
func (cv *Canvas) MouseDown() bool { return cv.down }

// AddTicker runs fn at the start of every frame until it returns false.
func (cv *Canvas) AddTicker(fn Ticker) { cv.tickers = append(cv.tickers, fn) }

// Resize changes the root container size.
func (cv *Canvas) Resize(width, height float64) { cv.root.SetSize(width, height) }

// Update samples input once and walks the control tree. With a modal
// dialog open only the dialog subtree sees input. Focus moves after the
// walk, and key events then go to the focused control.
func (cv *Canvas) Update() {
	if cv.root.released {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			bramble.Log().Error("canvas panic recovered", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()

	cv.sample()
	cv.runTickers()

	cv.marked = &cv.root.Control
	cv.focusRequest = nil

	if d := cv.dialog; d != nil {
		db := d.Base()
		if d.HitTest() {
			d.Update()
		} else {
			db.mouseLeave()
			cv.marked = db
		}
	} else if cv.root.HitTest() {
		cv.root.Update()
	} else {
		cv.root.mouseLeave()
	}

	if to := cv.focusRequest; to != nil && to != cv.focused && to.active && to.visible {
		cv.transferFocus(to)
	}
	cv.focusRequest = nil

	cv.dispatchKeys()
}

func (cv *Canvas) sample() {
	if cv.input == nil {
		cv.clicked, cv.pressed, cv.down = false, false, false
		return
	}
	cv.mouseX, cv.mouseY = cv.input.CursorPosition()
	cv.clicked = cv.input.MouseReleased(bramble.MouseButtonLeft)
	cv.pressed = cv.input.MousePressed(bramble.MouseButtonLeft)
	cv.down = cv.input.MouseDown(bramble.MouseButtonLeft)
	cv.mods = cv.input.Modifiers()
}

func (cv *Canvas) runTickers() {
	if len(cv.tickers) == 0 {
		return
	}
	// Tickers may add tickers; those start next frame.
	n := len(cv.tickers)
	for i := 0; i < n; i++ {
		if !cv.tickers[i](cv.dt) {
			cv.tickers[i] = nil
		}
	}
	cv.tickers = slices.DeleteFunc(cv.tickers, func(t Ticker) bool { return t == nil })
}

func (cv *Canvas) transferFocus(to *Control) {
	old := cv.focused
	old.focused = false
	old.emit(EventFocusLost)
	cv.focused = to
	to.focused = true
	to.emit(EventFocusGain)
}

// Focus moves focus to w immediately. It returns false if w is not active.
func (cv *Canvas) Focus(w Widget) bool {
	b := w.Base()
	if !b.active || b.canvas != cv {
		return false
	}
	if b != cv.focused {
		cv.transferFocus(b)
	}
	return true
}

// keyTarget returns the control keyboard input goes to. A modal dialog
// captures it unless focus is already inside the dialog.
func (cv *Canvas) keyTarget() *Control {
	if d := cv.dialog; d != nil && !cv.focused.isWithin(d.Base()) {
		return d.Base()
	}
	return cv.focused
}

func (cv *Canvas) dispatchKeys() {
	if cv.input == nil {
		return
	}
	cv.keyBuf = cv.input.AppendPressedKeys(cv.keyBuf[:0])
	for _, k := range cv.keyBuf {
		if k == bramble.KeyTab {
			cv.cycleFocus(cv.mods&bramble.ModShift != 0)
			continue
		}
		cv.keyTarget().emitKey(EventKeyDown, k)
	}
	cv.keyBuf = cv.input.AppendReleasedKeys(cv.keyBuf[:0])
	for _, k := range cv.keyBuf {
		if k == bramble.KeyTab {
			continue
		}
		cv.keyTarget().emitKey(EventKeyUp, k)
	}
}

// cycleFocus moves focus to the next (or previous) active, visible sibling
// of the focused control. A focused container with no focusable siblings
// hands focus to its first child.
func (cv *Canvas) cycleFocus(backward bool) {
	cur := cv.keyTarget()
	var ring []*Control
	if cur.parent != nil && cur.parent.children != nil {
		ring = cur.parent.children()
	}
	if cv.dialog != nil && cur == cv.dialog.Base() {
		ring = nil
	}
	if len(ring) <= 1 && cur.children != nil {
		if kids := focusable(cur.children()); len(kids) > 0 {
			cv.transferFocus(kids[0])
			return
		}
	}
	ring = focusable(ring)
	if len(ring) == 0 {
		return
	}
	i := slices.Index(ring, cur)
	switch {
	case i < 0:
		i = 0
	case backward:
		i = (i - 1 + len(ring)) % len(ring)
	default:
		i = (i + 1) % len(ring)
	}
	if ring[i] != cv.focused {
		cv.transferFocus(ring[i])
	}
}

func focusable(cs []*Control) []*Control {
	return slices.DeleteFunc(cs, func(c *Control) bool { return !c.active || !c.visible })
}

// ShowDialog opens d modally. It is added to the root container if needed,
// made visible and focused. Any open dialog is closed first.
func (cv *Canvas) ShowDialog(d *Dialog) {
	if cv.dialog != nil && cv.dialog != d {
		cv.CloseDialog()
	}
	if !d.Base().active {
		cv.root.AddControlAt(d, 0)
	}
	cv.root.leaveHovered()
	d.SetVisible(true)
	cv.dialog = d
	cv.Focus(d)
}

// CloseDialog hides the open dialog and returns focus to the root.
func (cv *Canvas) CloseDialog() {
	d := cv.dialog
	if d == nil {
		return
	}
	cv.dialog = nil
	db := d.Base()
	db.mouseLeave()
	d.SetVisible(false)
	if cv.focused.isWithin(db) {
		cv.transferFocus(&cv.root.Control)
	}
}

// forget drops references to a control being released.
func (cv *Canvas) forget(c *Control) {
	if cv.focusRequest == c {
		cv.focusRequest = nil
	}
	if cv.marked == c {
		cv.marked = &cv.root.Control
	}
	if cv.dialog != nil && cv.dialog.Base() == c {
		cv.dialog = nil
	}
	if cv.focused == c && c != &cv.root.Control {
		cv.transferFocus(&cv.root.Control)
	}
}
