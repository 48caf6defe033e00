package components

import "github.com/phanxgames/bramble/ecs"

// FollowKey is the component key of Follow.
var FollowKey = ecs.KeyOf("follow")

// Follow keeps the entity's Transform at a fixed offset from a target
// entity. It runs in LateUpdate so it sees the target's position from the
// same frame.
type Follow struct {
	ecs.BaseComponent
	Target           *ecs.Entity
	OffsetX, OffsetY float64
}

// NewFollow creates a Follow tracking target.
func NewFollow(target *ecs.Entity, offsetX, offsetY float64) *Follow {
	return &Follow{Target: target, OffsetX: offsetX, OffsetY: offsetY}
}

// Key returns FollowKey.
func (f *Follow) Key() ecs.ComponentKey { return FollowKey }

// LateUpdate copies the target position.
func (f *Follow) LateUpdate(dt float64) {
	own := TransformOf(f.Entity())
	target := TransformOf(f.Target)
	if own == nil || target == nil {
		return
	}
	own.X = target.X + f.OffsetX
	own.Y = target.Y + f.OffsetY
}
