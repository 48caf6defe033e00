package bramble

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const maxTweenFields = 4

// TweenGroup animates up to 4 float64 fields simultaneously. Create one with
// NewTween or TweenValue and call Update(dt) each frame; the group writes
// the eased values straight into the fields.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [maxTweenFields]*gween.Tween
	count  int
	fields [maxTweenFields]*float64
	Done   bool
}

// NewTween animates each field from its current value to the matching
// target over duration seconds. Extra fields or targets beyond the shorter
// slice, or beyond four, are ignored.
func NewTween(fields []*float64, targets []float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	n := min(len(fields), len(targets), maxTweenFields)
	g := &TweenGroup{count: n}
	for i := 0; i < n; i++ {
		g.tweens[i] = gween.New(float32(*fields[i]), float32(targets[i]), duration, fn)
		g.fields[i] = fields[i]
	}
	g.Done = n == 0
	return g
}

// TweenValue animates a single field.
func TweenValue(field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return NewTween([]*float64{field}, []float64{to}, duration, fn)
}

// Update advances all tweens by dt seconds and writes values to the fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Stop ends the group where it is.
func (g *TweenGroup) Stop() {
	g.Done = true
}
