package components

import "github.com/phanxgames/bramble/ecs"

// TransformKey is the component key of Transform.
var TransformKey = ecs.KeyOf("transform")

// Transform is an entity's position, scale and rotation.
type Transform struct {
	ecs.BaseComponent
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64 // radians
}

// NewTransform creates a Transform at (x, y) with unit scale.
func NewTransform(x, y float64) *Transform {
	return &Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}
}

// Key returns TransformKey.
func (t *Transform) Key() ecs.ComponentKey { return TransformKey }

// SetPosition moves the transform to (x, y).
func (t *Transform) SetPosition(x, y float64) {
	t.X, t.Y = x, y
}

// Translate moves the transform by (dx, dy).
func (t *Transform) Translate(dx, dy float64) {
	t.X += dx
	t.Y += dy
}

// TransformOf returns e's Transform, or nil.
func TransformOf(e *ecs.Entity) *Transform {
	if e == nil {
		return nil
	}
	t, _ := ecs.Get[*Transform](e, TransformKey)
	return t
}
