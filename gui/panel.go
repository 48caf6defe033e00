package gui

import "github.com/phanxgames/bramble"

// Panel is a container with a nine-slice background sized to the panel.
type Panel struct {
	Container[Widget]
	background *NineSlice
}

// NewPanel creates a panel skinned with frame (see NewNineSlice).
func NewPanel(name string, x, y, width, height float64, frame [9]bramble.RegionID, corner float64) *Panel {
	p := &Panel{}
	p.init(name, x, y, width, height, frame, corner)
	return p
}

func (p *Panel) init(name string, x, y, width, height float64, frame [9]bramble.RegionID, corner float64) {
	p.setup(name, x, y, width, height)
	p.background = NewNineSlice(frame, corner)
	p.background.SetBounds(0, 0, width, height)
	p.AddVisual(p.background)
	p.watchResize(func() { p.background.SetBounds(p.ScreenX(), p.ScreenY(), p.width, p.height) })
}

// Background returns the nine-slice background.
func (p *Panel) Background() *NineSlice { return p.background }

// Strip is a container with a three-slice background, such as a title bar
// or toolbar.
type Strip struct {
	Container[Widget]
	background *ThreeSlice
}

// NewStrip creates a strip skinned with (left, center, right) regions.
func NewStrip(name string, x, y, width, height float64, regions [3]bramble.RegionID, leftWidth, rightWidth float64) *Strip {
	s := &Strip{}
	s.setup(name, x, y, width, height)
	s.background = NewThreeSlice(regions, leftWidth, rightWidth, height)
	s.background.SetWidth(width)
	s.AddVisual(s.background)
	s.watchResize(func() {
		s.background.SetWidth(s.width)
		s.background.SetHeight(s.height)
	})
	return s
}

// Background returns the three-slice background.
func (s *Strip) Background() *ThreeSlice { return s.background }
