// Package bramble is a small real-time 2D game engine for [Ebitengine].
//
// Bramble pairs an entity/component runtime (package ecs) with a
// retained-mode GUI control tree (package gui). Both draw through a single
// shared tile batch, so every sprite, panel slice and text glyph is one
// tile identified by a stable handle.
//
// # Quick start
//
// The host package owns the frame loop:
//
//	engine := host.New(bramble.DefaultConfig())
//	engine.RegisterState("menu", newMenuState)
//	if err := host.Run(engine); err != nil {
//		log.Fatal(err)
//	}
//
// One frame is one Update followed by one Render: input is sampled, the
// current State steps its component engine and entity behaviours, render
// systems (including any gui.Canvas) run, and finally the tile batch is drawn.
//
// # Tiles
//
// [TileBatch] is the renderer seen by the rest of the engine:
//
//	h := batch.AddTile(10, 10, 32, 32, atlas.Region("hero"))
//	batch.UpdateTile(h, func(t *bramble.Tile) { t.X += 4 })
//	batch.RemoveTile(h)
//
// Region 0 is a solid white pixel tinted by the tile color; unknown atlas
// names resolve to it with a warning.
//
// # Assets
//
// [LoadAtlas] reads TexturePacker JSON, [LoadBitmapFont] reads BMFont-style
// JSON, and [DecodeTGA] decodes Truevision TGA images. [Loader] reads files
// off the frame thread and resolves its futures from [Loader.Poll], which the
// host calls between frames.
//
// [Ebitengine]: https://ebitengine.org
package bramble
