package ecs

import (
	"slices"

	"github.com/phanxgames/bramble"
	"go.uber.org/zap"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// RenderSystem is stepped by State.Render once per frame.
type RenderSystem interface {
	Render(dt float64)
}

// State is a simulation scope: an ordered set of entities, the engine that
// steps their components and the render systems that draw them.
type State struct {
	id     string
	batch  bramble.TileBatch
	engine *Engine

	entities []*Entity
	byID     map[string]*Entity
	iterBuf  []*Entity

	systems []RenderSystem

	world donburi.World
	store EventStore

	// OnEnter and OnExit run when the host loads or leaves the state.
	OnEnter func(s *State)
	OnExit  func(s *State)
}

// NewState creates an empty state drawing through batch. batch may be nil
// for headless states.
func NewState(id string, batch bramble.TileBatch) *State {
	world := donburi.NewWorld()
	return &State{
		id:     id,
		batch:  batch,
		engine: NewEngine(),
		byID:   make(map[string]*Entity),
		world:  world,
		store:  NewDonburiStore(world),
	}
}

// ID returns the state id.
func (s *State) ID() string { return s.id }

// Batch returns the tile batch render attachments draw into.
func (s *State) Batch() bramble.TileBatch { return s.batch }

// Engine returns the component scheduler.
func (s *State) Engine() *Engine { return s.engine }

// Events returns the Donburi world events are published to.
func (s *State) Events() donburi.World { return s.world }

// Store returns the event store.
func (s *State) Store() EventStore { return s.store }

// AddEntity appends e, registers its components and initialises a
// not-yet-active render attachment. It returns false if e is nil or
// already in a State.
func (s *State) AddEntity(e *Entity) bool {
	if e == nil {
		bramble.Log().Warn("add of nil entity", zap.String("state", s.id))
		return false
	}
	if e.state != nil {
		bramble.Log().Warn("entity already in a state",
			append(e.logFields(), zap.String("state", e.state.id))...)
		return false
	}
	e.state = s
	s.entities = append(s.entities, e)
	if e.id != "" {
		if _, dup := s.byID[e.id]; dup {
			bramble.Log().Warn("duplicate entity id, lookup returns the newest",
				append(e.logFields(), zap.String("state", s.id))...)
		}
		s.byID[e.id] = e
	}
	for _, c := range e.components {
		s.engine.Register(c)
	}
	s.initRender(e)
	s.store.EmitEntityEvent(EntityEvent{Kind: EntityAdded, State: s.id, EntityID: e.id, UID: e.uid})
	return true
}

func (s *State) initRender(e *Entity) {
	if e.render != nil && !e.render.RenderActive() && s.batch != nil {
		e.render.InitRender(s.batch)
	}
}

// RemoveEntity unregisters e's components and drops it from the state. It
// returns false if e is not in this state.
func (s *State) RemoveEntity(e *Entity) bool {
	if e == nil || e.state != s {
		return false
	}
	i := slices.Index(s.entities, e)
	if i < 0 {
		return false
	}
	for _, c := range e.components {
		s.engine.Unregister(c)
	}
	s.entities = slices.Delete(s.entities, i, i+1)
	if e.id != "" && s.byID[e.id] == e {
		delete(s.byID, e.id)
	}
	e.state = nil
	s.store.EmitEntityEvent(EntityEvent{Kind: EntityRemoved, State: s.id, EntityID: e.id, UID: e.uid})
	return true
}

// Entity returns the entity with id, or nil.
func (s *State) Entity(id string) *Entity {
	return s.byID[id]
}

// Entities returns the entities in update order. The slice must not be
// modified.
func (s *State) Entities() []*Entity {
	return s.entities
}

// Len returns the number of entities.
func (s *State) Len() int {
	return len(s.entities)
}

// ClearEntities cleans up every entity and empties the state.
func (s *State) ClearEntities() {
	for _, e := range slices.Clone(s.entities) {
		e.Cleanup()
	}
	clear(s.entities)
	s.entities = s.entities[:0]
	clear(s.byID)
}

// AddRenderSystem appends r to the render systems.
func (s *State) AddRenderSystem(r RenderSystem) {
	s.systems = append(s.systems, r)
}

// RemoveRenderSystem removes r. It returns false if r was not added.
func (s *State) RemoveRenderSystem(r RenderSystem) bool {
	i := slices.Index(s.systems, r)
	if i < 0 {
		return false
	}
	s.systems = slices.Delete(s.systems, i, i+1)
	return true
}

// Update steps the component engine, then runs every active entity's
// behavior Update, then every active entity's behavior LateUpdate, then
// delivers queued events. A panic is logged and ends the frame early.
func (s *State) Update(dt float64) {
	defer s.recoverFrame("update")

	s.engine.Step(dt)

	s.iterBuf = append(s.iterBuf[:0], s.entities...)
	for _, e := range s.iterBuf {
		if e.active && e.state == s && e.behavior != nil {
			e.behavior.Update(e, dt)
		}
	}
	for _, e := range s.iterBuf {
		if e.active && e.state == s && e.behavior != nil {
			e.behavior.LateUpdate(e, dt)
		}
	}
	clear(s.iterBuf)

	events.ProcessAllEvents(s.world)
}

// Render runs every render system in order. A panic is logged and ends the
// frame early.
func (s *State) Render(dt float64) {
	defer s.recoverFrame("render")
	for _, r := range s.systems {
		r.Render(dt)
	}
}

// Enter runs OnEnter.
func (s *State) Enter() {
	if s.OnEnter != nil {
		s.OnEnter(s)
	}
}

// Exit runs OnExit, clears every entity and delivers the final events.
func (s *State) Exit() {
	if s.OnExit != nil {
		s.OnExit(s)
	}
	s.ClearEntities()
	s.systems = nil
	events.ProcessAllEvents(s.world)
}

func (s *State) recoverFrame(phase string) {
	if r := recover(); r != nil {
		bramble.Log().Error("frame panic recovered",
			zap.String("state", s.id),
			zap.String("phase", phase),
			zap.Any("panic", r),
			zap.Stack("stack"),
		)
	}
}
