package gui

import "github.com/phanxgames/bramble"

// EventType identifies a control event.
type EventType uint8

const (
	EventInit EventType = iota
	EventRelease
	EventAdded
	EventRemoved
	EventMouseEnter
	EventMouseLeave
	EventMouseHover
	EventMouseLeftClick
	EventMouseDown
	EventFocusGain
	EventFocusLost
	EventKeyDown
	EventKeyUp
	EventChange
	eventTypeCount
)

var eventNames = [eventTypeCount]string{
	EventInit:           "init",
	EventRelease:        "release",
	EventAdded:          "added",
	EventRemoved:        "removed",
	EventMouseEnter:     "mouseenter",
	EventMouseLeave:     "mouseleave",
	EventMouseHover:     "mousehover",
	EventMouseLeftClick: "click",
	EventMouseDown:      "mousedown",
	EventFocusGain:      "focusgain",
	EventFocusLost:      "focuslost",
	EventKeyDown:        "keydown",
	EventKeyUp:          "keyup",
	EventChange:         "change",
}

func (t EventType) String() string {
	if t < eventTypeCount {
		return eventNames[t]
	}
	return "unknown"
}

// forwarded reports whether events of this type are published to the
// canvas event store. Hover traffic stays local.
func (t EventType) forwarded() bool {
	switch t {
	case EventMouseLeftClick, EventFocusGain, EventFocusLost, EventKeyDown, EventKeyUp, EventChange:
		return true
	}
	return false
}

// Event is passed to control listeners.
type Event struct {
	Type    EventType
	Control *Control
	X, Y    float64 // cursor position when the event fired
	Key     bramble.Key
	Mods    bramble.KeyModifiers
}

type handler struct {
	id uint32
	fn func(Event)
}

type registry struct {
	handlers [eventTypeCount][]handler
	nextID   uint32
}

func (r *registry) add(t EventType, fn func(Event)) Handle {
	if t >= eventTypeCount || fn == nil {
		return Handle{}
	}
	r.nextID++
	r.handlers[t] = append(r.handlers[t], handler{id: r.nextID, fn: fn})
	return Handle{id: r.nextID, reg: r, event: t}
}

func (r *registry) has(t EventType) bool {
	return len(r.handlers[t]) > 0
}

func (r *registry) clear() {
	for i := range r.handlers {
		r.handlers[i] = nil
	}
}

// Handle allows removing a registered listener.
type Handle struct {
	id    uint32
	reg   *registry
	event EventType
}

// Remove unregisters this listener so it no longer fires.
func (h Handle) Remove() {
	if h.reg == nil || h.event >= eventTypeCount {
		return
	}
	s := h.reg.handlers[h.event]
	for i := range s {
		if s[i].id == h.id {
			h.reg.handlers[h.event] = append(s[:i:i], s[i+1:]...)
			return
		}
	}
}
