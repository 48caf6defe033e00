package components

import (
	"github.com/phanxgames/bramble"
	"github.com/phanxgames/bramble/ecs"
	"github.com/tanema/gween/ease"
)

// TweenKey is the component key of Tween.
var TweenKey = ecs.KeyOf("tween")

// Tween moves the entity's Transform to a target position over time.
type Tween struct {
	ecs.BaseComponent

	toX, toY float64
	duration float32
	ease     ease.TweenFunc
	group    *bramble.TweenGroup
	fired    bool

	// OnDone runs once when the target is reached.
	OnDone func()
}

// NewTween creates a Tween to (toX, toY). The start point is the Transform
// position on the first Update.
func NewTween(toX, toY float64, duration float32, fn ease.TweenFunc) *Tween {
	return &Tween{toX: toX, toY: toY, duration: duration, ease: fn}
}

// Key returns TweenKey.
func (t *Tween) Key() ecs.ComponentKey { return TweenKey }

// Done reports whether the target has been reached.
func (t *Tween) Done() bool {
	return t.group != nil && t.group.Done
}

// Retarget starts a new tween from the current position.
func (t *Tween) Retarget(toX, toY float64, duration float32) {
	t.toX, t.toY, t.duration = toX, toY, duration
	t.group = nil
	t.fired = false
}

// Update advances the tween.
func (t *Tween) Update(dt float64) {
	tr := TransformOf(t.Entity())
	if tr == nil {
		return
	}
	if t.group == nil {
		t.group = bramble.NewTween([]*float64{&tr.X, &tr.Y}, []float64{t.toX, t.toY}, t.duration, t.ease)
	}
	t.group.Update(float32(dt))
	if t.group.Done && !t.fired {
		t.fired = true
		if t.OnDone != nil {
			t.OnDone()
		}
	}
}
