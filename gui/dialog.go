package gui

import "github.com/phanxgames/bramble"

// Dialog is a window shown modally with Canvas.ShowDialog. While it is
// open, only the dialog receives mouse and keyboard input.
type Dialog struct {
	Window
}

// NewDialog creates a hidden dialog.
func NewDialog(name string, x, y, width, height float64, skin WindowSkin, font *bramble.BitmapFont, title string) *Dialog {
	d := &Dialog{}
	d.init(name, x, y, width, height, skin, font, title)
	d.closer = d.Close
	d.visible = false
	return d
}

// Open reports whether d is the canvas' modal dialog.
func (d *Dialog) Open() bool {
	return d.canvas != nil && d.canvas.dialog == d
}

// Close hides the dialog and gives input back to the rest of the canvas.
func (d *Dialog) Close() {
	if d.Open() {
		d.canvas.CloseDialog()
	} else {
		d.SetVisible(false)
	}
	d.closed()
}
