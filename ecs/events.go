package ecs

import (
	"github.com/google/uuid"
	"github.com/phanxgames/bramble"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EntityEventKind says what happened to an entity.
type EntityEventKind uint8

const (
	EntityAdded EntityEventKind = iota
	EntityRemoved
)

func (k EntityEventKind) String() string {
	switch k {
	case EntityAdded:
		return "added"
	case EntityRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// EntityEvent reports an entity joining or leaving a State.
type EntityEvent struct {
	Kind     EntityEventKind
	State    string
	EntityID string
	UID      uuid.UUID
}

// Interaction is a GUI input event, such as a click on a named control.
type Interaction struct {
	Type    string
	Control string
	X, Y    float64
	Key     bramble.Key
}

// EntityEventType is the Donburi event type for entity lifecycle events.
var EntityEventType = events.NewEventType[EntityEvent]()

// InteractionEventType is the Donburi event type for GUI interactions.
// Subscribe to this in your ECS systems to receive clicks, focus changes
// and key presses.
var InteractionEventType = events.NewEventType[Interaction]()

// EventStore receives events produced by the engine.
type EventStore interface {
	EmitEntityEvent(event EntityEvent)
	EmitInteraction(event Interaction)
}

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world. Events
// are queued and delivered by events.ProcessAllEvents, which State.Update
// calls at the end of every frame.
func NewDonburiStore(world donburi.World) EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEntityEvent(event EntityEvent) {
	EntityEventType.Publish(s.world, event)
}

func (s *donburiStore) EmitInteraction(event Interaction) {
	InteractionEventType.Publish(s.world, event)
}
