package ecs

import (
	"errors"

	"github.com/cespare/xxhash/v2"
)

// Errors returned by Entity.AddComponent.
var (
	ErrNilComponent       = errors.New("ecs: nil component")
	ErrDuplicateComponent = errors.New("ecs: duplicate component key")
	ErrComponentAttached  = errors.New("ecs: component already attached to an entity")
)

// ComponentKey identifies a component capability. An entity holds at most
// one component per key.
type ComponentKey uint64

// KeyOf returns the key for a capability name.
func KeyOf(name string) ComponentKey {
	return ComponentKey(xxhash.Sum64String(name))
}

// Component is a unit of behavior attached to exactly one Entity.
// Implementations embed BaseComponent and provide Key.
type Component interface {
	Key() ComponentKey
	Entity() *Entity
	Enabled() bool
	Init()
	Update(dt float64)
	LateUpdate(dt float64)
	OnRemoved()
	Cleanup()

	base() *BaseComponent
}

// BaseComponent supplies the entity back-reference, the enabled flag and
// no-op lifecycle hooks. Embed it in every component.
type BaseComponent struct {
	entity   *Entity
	disabled bool

	engine *Engine
	slot   int
}

// Entity returns the owning entity, or nil when detached.
func (b *BaseComponent) Entity() *Entity { return b.entity }

// Enabled reports whether the component receives updates.
func (b *BaseComponent) Enabled() bool { return !b.disabled }

// SetEnabled turns updates on or off.
func (b *BaseComponent) SetEnabled(enabled bool) { b.disabled = !enabled }

// Init is called once when the component is added to an entity.
func (b *BaseComponent) Init() {}

// Update is called once per frame in the first pass.
func (b *BaseComponent) Update(dt float64) {}

// LateUpdate is called once per frame after every Update.
func (b *BaseComponent) LateUpdate(dt float64) {}

// OnRemoved is called when the component is removed from its entity.
func (b *BaseComponent) OnRemoved() {}

// Cleanup releases resources held by the component.
func (b *BaseComponent) Cleanup() {}

func (b *BaseComponent) base() *BaseComponent { return b }
