// Package host drives bramble from the outside. An [Engine] owns the atlas,
// font, tile batch, input device and asset loader, and runs the current
// [ecs.State] one frame at a time:
//
//	eng := host.New(cfg)
//	eng.RegisterState("menu", newMenu)
//	if err := eng.Init(); err != nil { ... }
//	_ = eng.LoadState("menu")
//
//	eng.Update(dt) // loader poll, script step, input refresh, state update
//	eng.Render(dt) // state render systems, input frame end
//	eng.Draw(screen)
//
// [Run] does the same inside the ebiten game loop.
package host
