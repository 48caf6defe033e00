package ecs

import (
	"github.com/phanxgames/bramble"
	"go.uber.org/zap"
)

// EntityPool recycles a fixed set of entities. Spawned entities are kept in
// a bramble.List, so despawn is a swap-remove.
type EntityPool struct {
	state  *State
	active *bramble.List[*Entity]
	parked []*Entity
}

// NewEntityPool pre-creates capacity entities with factory and parks them.
func NewEntityPool(state *State, capacity int, factory func() *Entity) *EntityPool {
	p := &EntityPool{
		state:  state,
		active: bramble.NewList[*Entity](capacity),
		parked: make([]*Entity, 0, capacity),
	}
	for range capacity {
		e := factory()
		e.Release()
		p.parked = append(p.parked, e)
	}
	return p
}

// Spawn activates a parked entity and adds it to the state. It returns nil
// when the pool is exhausted.
func (p *EntityPool) Spawn() *Entity {
	if len(p.parked) == 0 {
		bramble.Log().Warn("entity pool exhausted",
			zap.String("state", p.state.id), zap.Int("capacity", p.active.Cap()))
		return nil
	}
	e := p.parked[len(p.parked)-1]
	if !p.active.Add(e) {
		return nil
	}
	p.parked[len(p.parked)-1] = nil
	p.parked = p.parked[:len(p.parked)-1]
	p.state.AddEntity(e)
	return e
}

// Despawn releases e's render attachment, removes e from the state and
// parks it. Spawn initializes the attachment again. It returns false if e
// was not spawned by this pool.
func (p *EntityPool) Despawn(e *Entity) bool {
	i := e.ListIndex()
	if i < 0 || i >= p.active.Len() || p.active.At(i) != e {
		return false
	}
	p.active.RemoveAt(i)
	if e.render != nil && e.render.RenderActive() {
		e.render.ReleaseRender()
	}
	p.state.RemoveEntity(e)
	p.parked = append(p.parked, e)
	return true
}

// Len returns the number of spawned entities.
func (p *EntityPool) Len() int {
	return p.active.Len()
}

// Each calls fn for every spawned entity until fn returns false.
func (p *EntityPool) Each(fn func(e *Entity) bool) {
	p.active.ForEach(fn)
}
