package gui

import (
	"slices"

	"github.com/phanxgames/bramble"
	"go.uber.org/zap"
)

// Container is a Control holding an ordered list of child widgets.
//
// List order is input priority: Update gives the frame to the first child
// under the cursor and stops, so earlier children occlude later ones. To
// make a later-drawn control win input, insert it earlier (AddControlAt).
//
// Moving or hiding a container pushes the new offset or visibility to every
// descendant immediately.
type Container[T Widget] struct {
	Control
	items   []T
	hovered *Control
}

// NewContainer creates an empty container.
func NewContainer[T Widget](name string, x, y, width, height float64) *Container[T] {
	c := &Container[T]{}
	c.setup(name, x, y, width, height)
	return c
}

func (c *Container[T]) setup(name string, x, y, width, height float64) {
	c.Control.setup(name, x, y, width, height)
	c.watchMove(c.propagateOffset)
	c.watchVisible(c.propagateVisible)
	c.onInit = append(c.onInit, c.initChildren)
	c.onRelease = append(c.onRelease, c.releaseChildren)
	c.leave = c.leaveHovered
	c.children = c.childControls
}

// AddControl appends w. If the container is active, w is initialised
// first with the container's canvas, offset and visibility. An already
// active w is returned untouched.
func (c *Container[T]) AddControl(w T) T {
	return c.AddControlAt(w, len(c.items))
}

// AddControlAt inserts w at index i, clamped to the list bounds.
func (c *Container[T]) AddControlAt(w T, i int) T {
	b := w.Base()
	if b.active {
		return w
	}
	if b.released {
		bramble.Log().Warn("add of released control",
			zap.String("control", b.name), zap.String("container", c.name))
		return w
	}
	b.parent = &c.Control
	b.owner = w
	b.setOffset(c.ScreenX(), c.ScreenY())
	if c.active {
		b.SetVisible(b.visible && c.visible)
		b.initialize(c.canvas)
	}
	i = max(0, min(i, len(c.items)))
	c.items = slices.Insert(c.items, i, w)
	b.emit(EventAdded)
	return w
}

// RemoveControl fires EventRemoved on w, releases it and drops it from the
// list. It returns false if w is not a child.
func (c *Container[T]) RemoveControl(w T) bool {
	i := c.IndexOf(w)
	if i < 0 {
		bramble.Log().Warn("remove of unknown control",
			zap.String("control", w.Base().name), zap.String("container", c.name))
		return false
	}
	b := w.Base()
	b.emit(EventRemoved)
	b.Release()
	c.items = slices.Delete(c.items, i, i+1)
	if c.hovered == b {
		c.hovered = nil
	}
	b.parent = nil
	return true
}

// IndexOf returns w's position, or -1.
func (c *Container[T]) IndexOf(w T) int {
	b := w.Base()
	for i, item := range c.items {
		if item.Base() == b {
			return i
		}
	}
	return -1
}

// Controls returns the children in priority order. The slice must not be
// modified.
func (c *Container[T]) Controls() []T { return c.items }

// Len returns the number of children.
func (c *Container[T]) Len() int { return len(c.items) }

// At returns child i.
func (c *Container[T]) At(i int) T { return c.items[i] }

// Update gives the frame to the first child under the cursor. If the hit
// child differs from last frame's, the previous one and its hovered
// descendants get EventMouseLeave. With no child hit, the container
// updates as a plain control.
func (c *Container[T]) Update() {
	if !c.active {
		return
	}
	for _, w := range c.items {
		b := w.Base()
		if !b.active || !w.HitTest() {
			continue
		}
		if c.hovered != nil && c.hovered != b {
			c.hovered.mouseLeave()
		}
		c.hovered = b
		w.Update()
		return
	}
	c.leaveHovered()
	c.Control.Update()
}

func (c *Container[T]) leaveHovered() {
	if c.hovered != nil {
		h := c.hovered
		c.hovered = nil
		h.mouseLeave()
	}
}

func (c *Container[T]) propagateOffset() {
	x, y := c.ScreenX(), c.ScreenY()
	for _, w := range c.items {
		w.Base().setOffset(x, y)
	}
}

func (c *Container[T]) propagateVisible(visible bool) {
	for _, w := range c.items {
		w.Base().SetVisible(visible)
	}
}

func (c *Container[T]) initChildren() {
	for _, w := range c.items {
		b := w.Base()
		if b.active || b.released {
			continue
		}
		b.setOffset(c.ScreenX(), c.ScreenY())
		b.SetVisible(b.visible && c.visible)
		b.initialize(c.canvas)
	}
}

func (c *Container[T]) releaseChildren() {
	for _, w := range c.items {
		w.Base().Release()
	}
	clear(c.items)
	c.items = c.items[:0]
	c.hovered = nil
}

func (c *Container[T]) childControls() []*Control {
	out := make([]*Control, len(c.items))
	for i, w := range c.items {
		out[i] = w.Base()
	}
	return out
}
