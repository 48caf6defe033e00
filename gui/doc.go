// Package gui is a retained-mode control tree drawn through a
// [bramble.TileBatch].
//
// A [Canvas] owns the root [Container] and runs one GUI frame per Render.
// Input is sampled once per frame, the tree is walked front to back and at
// most one control per container takes the hit. Focus then moves to the
// marked control and key events go to the focused one. A [Dialog] shown with
// [Canvas.ShowDialog] captures all input until it closes.
//
//	cv := gui.NewCanvas(batch, input, 800, 600)
//	ok := gui.NewButton("ok", 10, 10, 80, 24, skin, font, "OK")
//	ok.OnClick(func() { ... })
//	cv.AddControl(ok)
//	cv.Attach(state) // render with the state and forward clicks to its events
package gui
