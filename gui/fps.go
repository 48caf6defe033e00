package gui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/bramble"
)

const fpsRefresh = 0.5

// FPSLabel is a label showing a frame rate, refreshed about every half
// second.
type FPSLabel struct {
	Label
	rate    func() float64
	elapsed float64
}

// NewFPSLabel creates a label reading ebiten.ActualFPS.
func NewFPSLabel(name string, x, y float64, font *bramble.BitmapFont) *FPSLabel {
	f := &FPSLabel{rate: ebiten.ActualFPS}
	f.init(name, x, y, 0, 0, font, "FPS: 0.0")
	f.On(EventInit, func(Event) { f.canvas.AddTicker(f.tick) })
	return f
}

// SetRateSource replaces the rate function.
func (f *FPSLabel) SetRateSource(fn func() float64) { f.rate = fn }

func (f *FPSLabel) tick(dt float64) bool {
	if !f.active {
		return false
	}
	f.elapsed += dt
	if f.elapsed < fpsRefresh {
		return true
	}
	f.elapsed = 0
	f.SetText(fmt.Sprintf("FPS: %.1f", f.rate()))
	return true
}
