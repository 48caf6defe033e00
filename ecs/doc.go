// Package ecs is bramble's entity/component runtime.
//
// A [State] owns an ordered set of [Entity] values, an [Engine] that steps
// every registered [Component], and a list of [RenderSystem] values. One
// frame is State.Update followed by State.Render:
//
//	state := ecs.NewState("level1", batch)
//	player := ecs.NewEntity("player")
//	_ = player.AddComponent(components.NewTransform(10, 20))
//	state.AddEntity(player)
//
//	state.Update(dt) // engine Update pass, engine LateUpdate pass, behaviors, events
//	state.Render(dt) // render systems in order
//
// Components are keyed by a [ComponentKey]; an entity holds at most one
// component per key. Entity lifecycle and GUI interaction events are
// published into a per-State [Donburi] world through [EventStore].
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
