package ecs

import (
	"slices"

	"github.com/google/uuid"
	"github.com/phanxgames/bramble"
	"go.uber.org/zap"
)

// Behavior carries entity-level custom logic. State.Update runs it for
// every active entity after the component engine has stepped.
type Behavior interface {
	Update(e *Entity, dt float64)
	LateUpdate(e *Entity, dt float64)
}

// BehaviorFuncs adapts plain functions to Behavior. Nil fields are skipped.
type BehaviorFuncs struct {
	UpdateFunc     func(e *Entity, dt float64)
	LateUpdateFunc func(e *Entity, dt float64)
}

// Update calls UpdateFunc.
func (f BehaviorFuncs) Update(e *Entity, dt float64) {
	if f.UpdateFunc != nil {
		f.UpdateFunc(e, dt)
	}
}

// LateUpdate calls LateUpdateFunc.
func (f BehaviorFuncs) LateUpdate(e *Entity, dt float64) {
	if f.LateUpdateFunc != nil {
		f.LateUpdateFunc(e, dt)
	}
}

// RenderAttachment is an entity's owned renderer-side resources, such as
// the tiles of a sprite.
type RenderAttachment interface {
	RenderActive() bool
	InitRender(batch bramble.TileBatch)
	ReleaseRender()
}

// Entity owns a keyed set of components and at most one render attachment.
type Entity struct {
	bramble.ListSlot

	id     string
	uid    uuid.UUID
	active bool

	components []Component
	byKey      map[ComponentKey]Component

	behavior Behavior
	render   RenderAttachment
	state    *State
}

var _ bramble.Member = (*Entity)(nil)

// NewEntity creates an active, detached entity. id may be empty; a non-empty
// id is used for State.Entity lookup.
func NewEntity(id string) *Entity {
	return &Entity{
		id:     id,
		uid:    uuid.New(),
		active: true,
		byKey:  make(map[ComponentKey]Component),
	}
}

// ID returns the lookup id.
func (e *Entity) ID() string { return e.id }

// UID returns the unique instance id.
func (e *Entity) UID() uuid.UUID { return e.uid }

// State returns the state the entity belongs to, or nil.
func (e *Entity) State() *State { return e.state }

// Active reports whether the entity receives updates.
func (e *Entity) Active() bool { return e.active }

// SetActive turns updates for the entity and its components on or off.
func (e *Entity) SetActive(active bool) { e.active = active }

// IsActive, Init and Release let entities live in a bramble.List.
func (e *Entity) IsActive() bool { return e.active }

// Init activates a pooled entity.
func (e *Entity) Init() { e.active = true }

// Release parks a pooled entity.
func (e *Entity) Release() { e.active = false }

func (e *Entity) logFields() []zap.Field {
	return []zap.Field{zap.String("entity", e.id), zap.Stringer("uid", e.uid)}
}

// AddComponent attaches c, calls its Init and, when the entity is in a
// State, registers it with the state's engine. A second component with the
// same key is rejected with ErrDuplicateComponent.
func (e *Entity) AddComponent(c Component) error {
	if c == nil {
		return ErrNilComponent
	}
	b := c.base()
	if b.entity != nil {
		return ErrComponentAttached
	}
	key := c.Key()
	if _, dup := e.byKey[key]; dup {
		bramble.Log().Warn("duplicate component rejected",
			append(e.logFields(), zap.Uint64("component", uint64(key)))...)
		return ErrDuplicateComponent
	}
	b.entity = e
	e.components = append(e.components, c)
	e.byKey[key] = c
	c.Init()
	if e.state != nil {
		e.state.engine.Register(c)
	}
	return nil
}

// RemoveComponent detaches the component with key, calling OnRemoved then
// Cleanup first. It returns false if there is none.
func (e *Entity) RemoveComponent(key ComponentKey) bool {
	c, ok := e.byKey[key]
	if !ok {
		return false
	}
	e.detach(c)
	delete(e.byKey, key)
	e.components = slices.DeleteFunc(e.components, func(x Component) bool { return x == c })
	return true
}

func (e *Entity) detach(c Component) {
	c.OnRemoved()
	c.Cleanup()
	if e.state != nil {
		e.state.engine.Unregister(c)
	}
	c.base().entity = nil
}

// Component returns the component with key, or nil.
func (e *Entity) Component(key ComponentKey) Component {
	return e.byKey[key]
}

// Has reports whether a component with key is attached.
func (e *Entity) Has(key ComponentKey) bool {
	_, ok := e.byKey[key]
	return ok
}

// Components returns the attached components in registration order. The
// slice must not be modified.
func (e *Entity) Components() []Component {
	return e.components
}

// Get returns e's component with key as a T.
func Get[T Component](e *Entity, key ComponentKey) (T, bool) {
	c, ok := e.byKey[key].(T)
	return c, ok
}

// SetBehavior sets the entity-level logic. Nil clears it.
func (e *Entity) SetBehavior(b Behavior) { e.behavior = b }

// Behavior returns the entity-level logic, or nil.
func (e *Entity) Behavior() Behavior { return e.behavior }

// SetRender replaces the render attachment. The previous one is released.
// If the entity is already in a State, the new one is initialised against
// the state's batch.
func (e *Entity) SetRender(r RenderAttachment) {
	if e.render != nil && e.render != r && e.render.RenderActive() {
		e.render.ReleaseRender()
	}
	e.render = r
	if e.state != nil {
		e.state.initRender(e)
	}
}

// Render returns the render attachment, or nil.
func (e *Entity) Render() RenderAttachment { return e.render }

// Update dispatches one standalone frame: Update on every enabled
// component then the behavior, followed by LateUpdate on every enabled
// component then the behavior. Entities inside a State are driven by
// State.Update instead.
func (e *Entity) Update(dt float64) {
	if !e.active {
		return
	}
	for _, c := range e.components {
		if c != nil && c.Entity() == e && c.Enabled() {
			c.Update(dt)
		}
	}
	if e.behavior != nil {
		e.behavior.Update(e, dt)
	}
	for _, c := range e.components {
		if c != nil && c.Entity() == e && c.Enabled() {
			c.LateUpdate(dt)
		}
	}
	if e.behavior != nil {
		e.behavior.LateUpdate(e, dt)
	}
}

// Cleanup releases the render attachment, removes every component and
// detaches the entity from its State.
func (e *Entity) Cleanup() {
	if e.render != nil && e.render.RenderActive() {
		e.render.ReleaseRender()
	}
	for _, c := range e.components {
		e.detach(c)
	}
	clear(e.components)
	e.components = e.components[:0]
	clear(e.byKey)
	if e.state != nil {
		e.state.RemoveEntity(e)
	}
}
