package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/phanxgames/bramble"
	"github.com/phanxgames/bramble/components"
	"github.com/phanxgames/bramble/ecs"
	"github.com/phanxgames/bramble/gui"
	"github.com/phanxgames/bramble/host"
	"github.com/tanema/gween/ease"
)

var (
	colorPanel  = bramble.Color{R: 0.16, G: 0.15, B: 0.22, A: 1}
	colorAccent = bramble.Color{R: 0.3, G: 0.7, B: 0.9, A: 1}
)

// wanderScript walks right and wraps at the window edge.
const wanderScript = `
function update(dt) {
	move(dt * 80, 0);
}
function lateUpdate(dt) {
	if (x() > 800) {
		setPosition(-16, y());
	}
}
`

func registerStates(eng *host.Engine) {
	eng.RegisterState("menu", newMenuState)
	eng.RegisterState("sprites", newSpriteState)
}

func windowSkin() gui.WindowSkin {
	return gui.WindowSkin{
		Corner:      6,
		TitleLeft:   6,
		TitleRight:  6,
		TitleHeight: 24,
		CloseSize:   18,
	}
}

// newCanvas creates a canvas sized to the window and keeps it sized while s
// is loaded.
func newCanvas(eng *host.Engine, s *ecs.State) *gui.Canvas {
	w, h := eng.WindowSize()
	cv := gui.NewCanvas(eng.Batch(), eng.Input(), float64(w), float64(h))
	stop := eng.OnResize(func(w, h int) { cv.Resize(float64(w), float64(h)) })
	s.OnExit = func(*ecs.State) { stop() }
	cv.Attach(s)
	return cv
}

func newMenuState(eng *host.Engine) (*ecs.State, error) {
	s := ecs.NewState("menu", eng.Batch())
	cv := newCanvas(eng, s)
	font := eng.Font()

	win := gui.NewWindow("menu", 260, 160, 280, 220, windowSkin(), font, "Bramble")
	win.Background().SetColor(colorPanel)
	win.OnClose(eng.Shutdown)
	cv.AddControl(win)
	win.SlideIn(260, -220, 0.6, ease.OutCubic)

	sprites := gui.NewButton("sprites", 40, 50, 200, 32, gui.ButtonSkin{}, font, "Sprites")
	sprites.OnClick(func() { eng.QueueState("sprites") })
	win.AddControl(sprites)

	about := gui.NewDialog("about", 250, 220, 300, 120, windowSkin(), font, "About")
	about.Background().SetColor(colorPanel)
	about.AddControl(gui.NewLabel("text", 10, 40, 280, 60, font, "A tile-batched GUI and entity runtime."))

	info := gui.NewButton("about", 40, 95, 200, 32, gui.ButtonSkin{}, font, "About")
	info.OnClick(func() { cv.ShowDialog(about) })
	win.AddControl(info)

	quit := gui.NewButton("quit", 40, 140, 200, 32, gui.ButtonSkin{}, font, "Quit")
	quit.OnClick(eng.Shutdown)
	win.AddControl(quit)

	cv.AddControl(gui.NewFPSLabel("fps", 8, 8, font))
	return s, nil
}

func newSpriteState(eng *host.Engine) (*ecs.State, error) {
	s := ecs.NewState("sprites", eng.Batch())
	w, h := eng.WindowSize()

	leader := ecs.NewEntity("leader")
	if err := leader.AddComponent(components.NewTransform(40, 40)); err != nil {
		return nil, err
	}
	if err := components.AttachSprite(leader, tintedSprite(colorAccent, 24)); err != nil {
		return nil, err
	}
	tw := components.NewTween(float64(w-64), float64(h-64), 2, ease.InOutQuad)
	tw.OnDone = func() {
		tw.Retarget(rand.Float64()*float64(w-24), rand.Float64()*float64(h-24), 2)
	}
	if err := leader.AddComponent(tw); err != nil {
		return nil, err
	}
	s.AddEntity(leader)

	for i := range 4 {
		trail := ecs.NewEntity(fmt.Sprintf("trail%d", i))
		if err := trail.AddComponent(components.NewTransform(40, 40)); err != nil {
			return nil, err
		}
		c := colorAccent
		c.A = 0.8 - float64(i)*0.15
		if err := components.AttachSprite(trail, tintedSprite(c, 16)); err != nil {
			return nil, err
		}
		off := float64(i+1) * -20
		if err := trail.AddComponent(components.NewFollow(leader, off, off)); err != nil {
			return nil, err
		}
		s.AddEntity(trail)
	}

	for i := range 6 {
		walker := ecs.NewEntity(fmt.Sprintf("walker%d", i))
		if err := walker.AddComponent(components.NewTransform(float64(i)*120, 120+float64(i)*60)); err != nil {
			return nil, err
		}
		sc, err := components.NewScript(walker.ID(), wanderScript)
		if err != nil {
			return nil, err
		}
		if err := walker.AddComponent(sc); err != nil {
			return nil, err
		}
		if err := components.AttachSprite(walker, tintedSprite(bramble.ColorWhite, 16)); err != nil {
			return nil, err
		}
		s.AddEntity(walker)
	}

	cv := newCanvas(eng, s)
	cv.SetLayer(10)
	back := gui.NewButton("back", float64(w-128), 8, 120, 28, gui.ButtonSkin{}, eng.Font(), "Back")
	back.OnClick(func() { eng.QueueState("menu") })
	cv.AddControl(back)
	cv.AddControl(gui.NewFPSLabel("fps", 8, 8, eng.Font()))
	return s, nil
}

func tintedSprite(c bramble.Color, size float64) *components.Sprite {
	sp := components.NewSprite(0, size, size)
	sp.SetColor(c)
	return sp
}
