package gui

import (
	"testing"

	"github.com/phanxgames/bramble"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testButtonSkin = ButtonSkin{
	Normal:     [3]bramble.RegionID{1, 2, 3},
	Hover:      [3]bramble.RegionID{4, 5, 6},
	Pressed:    [3]bramble.RegionID{7, 8, 9},
	LeftWidth:  4,
	RightWidth: 4,
}

func TestButtonStates(t *testing.T) {
	h := newHarness(t)
	b := NewButton("ok", 10, 10, 80, 20, testButtonSkin, testFont(t), "AB")
	h.cv.AddControl(b)
	var clicks int
	b.OnClick(func() { clicks++ })

	region := func() bramble.RegionID { return b.Frame().Segment(0).Region }
	assert.Equal(t, bramble.RegionID(1), region())

	h.move(20, 20)
	assert.Equal(t, bramble.RegionID(4), region())

	h.press(20, 20)
	assert.Equal(t, bramble.RegionID(7), region())

	h.release()
	assert.Equal(t, bramble.RegionID(4), region())
	assert.Equal(t, 1, clicks)

	h.move(200, 200)
	assert.Equal(t, bramble.RegionID(1), region())
}

func TestButtonDisabled(t *testing.T) {
	h := newHarness(t)
	b := NewButton("ok", 10, 10, 80, 20, testButtonSkin, nil, "")
	h.cv.AddControl(b)
	var clicks int
	b.OnClick(func() { clicks++ })

	b.SetEnabled(false)
	h.click(20, 20)
	assert.Zero(t, clicks)
	assert.Equal(t, bramble.RegionID(1), b.Frame().Segment(0).Region)
	tl, ok := h.batch.Tile(b.Frame().Segment(1).Handle())
	require.True(t, ok)
	assert.Equal(t, 0.5, tl.Color.R)

	b.SetEnabled(true)
	h.click(20, 20)
	assert.Equal(t, 1, clicks)
}

func TestButtonResize(t *testing.T) {
	b := NewButton("ok", 0, 0, 80, 20, testButtonSkin, nil, "")
	b.SetWidth(100)
	assert.Equal(t, 92.0, b.Frame().CenterWidth())
	b.SetCaption("go")
	assert.Equal(t, "go", b.Caption())
}

func TestLabelAutoSize(t *testing.T) {
	h := newHarness(t)
	l := NewLabel("l", 5, 5, 0, 0, testFont(t), "AB")
	assert.Equal(t, 20.0, l.Width())
	assert.Equal(t, 12.0, l.Height())

	h.cv.AddControl(l)
	assert.Equal(t, 2, h.batch.Len())

	var changes int
	l.On(EventChange, func(Event) { changes++ })
	l.SetText("ABAB")
	l.SetText("ABAB")
	assert.Equal(t, 1, changes)
	assert.Equal(t, 40.0, l.Width())
	assert.Equal(t, 4, l.TextVisual().Glyphs())
	assert.Equal(t, 4, h.batch.Len())
}

func TestLabelWrapsInBox(t *testing.T) {
	l := NewLabel("l", 0, 0, 25, 24, testFont(t), "AB AB")
	w, hgt := l.TextVisual().Size()
	assert.Equal(t, 20.0, w)
	assert.Equal(t, 24.0, hgt)
	assert.Equal(t, 4, l.TextVisual().Glyphs())
	assert.Equal(t, 25.0, l.Width())
}

func TestLabelNilFont(t *testing.T) {
	h := newHarness(t)
	l := NewLabel("l", 0, 0, 0, 0, nil, "hidden")
	h.cv.AddControl(l)
	assert.Equal(t, 0, h.batch.Len())
	assert.Equal(t, "hidden", l.Text())
}

func TestStamp(t *testing.T) {
	h := newHarness(t)
	s := NewStamp("icon", 10, 10, 16, 16, 3)
	h.cv.AddControl(s)
	s.SetRegion(5)
	s.SetSize(32, 8)
	tl, ok := h.batch.Tile(s.Sprite().Handle())
	require.True(t, ok)
	assert.Equal(t, bramble.RegionID(5), tl.Region)
	assert.Equal(t, 32.0, tl.W)
	assert.Equal(t, 8.0, tl.H)
	assert.Equal(t, DefaultLayer, tl.Layer)
}

func TestPanelAndStripResize(t *testing.T) {
	p := NewPanel("p", 0, 0, 50, 50, [9]bramble.RegionID{}, 4)
	p.SetSize(100, 60)
	assert.Equal(t, 100.0, p.Background().Width())
	assert.Equal(t, 60.0, p.Background().Height())

	s := NewStrip("s", 0, 0, 50, 10, [3]bramble.RegionID{}, 2, 2)
	s.SetWidth(120)
	assert.Equal(t, 120.0, s.Background().Width())
	assert.Equal(t, 116.0, s.Background().CenterWidth())
}

func TestWindowDrag(t *testing.T) {
	h := newHarness(t)
	w := NewWindow("win", 100, 100, 200, 150, testWindowSkin(), nil, "Title")
	h.cv.AddControl(w)

	h.press(150, 110)
	assert.True(t, w.Dragging())

	h.in.Move(200, 160)
	h.frame()
	assert.Equal(t, 150.0, w.X())
	assert.Equal(t, 150.0, w.Y())
	assert.Equal(t, 150.0, w.TitleBar().ScreenX())
	assert.Equal(t, 150.0+184, w.CloseButton().ScreenX())

	h.release()
	assert.False(t, w.Dragging())
	h.in.Move(250, 250)
	h.frame()
	assert.Equal(t, 150.0, w.X())
}

func TestWindowBodyDoesNotDrag(t *testing.T) {
	h := newHarness(t)
	w := NewWindow("win", 100, 100, 200, 150, testWindowSkin(), nil, "Title")
	h.cv.AddControl(w)
	h.press(150, 200)
	assert.False(t, w.Dragging())
}

func TestWindowCloseButton(t *testing.T) {
	h := newHarness(t)
	w := NewWindow("win", 100, 100, 200, 150, testWindowSkin(), nil, "Title")
	h.cv.AddControl(w)
	var closed bool
	w.OnClose(func() { closed = true })

	h.click(292, 110)
	assert.True(t, closed)
	assert.False(t, w.Visible())
	assert.False(t, w.CloseButton().Visible())
	assert.Same(t, &h.cv.Root().Control, h.cv.Focused())
}

func TestWindowResizeAndTitle(t *testing.T) {
	w := NewWindow("win", 0, 0, 200, 150, testWindowSkin(), testFont(t), "AB")
	w.SetWidth(300)
	assert.Equal(t, 300.0, w.TitleBar().Width())
	assert.Equal(t, 284.0, w.CloseButton().X())
	assert.Equal(t, 300.0, w.Background().Width())

	w.SetTitle("BA")
	assert.Equal(t, "BA", w.Title())
}

func TestWindowSlideIn(t *testing.T) {
	h := newHarness(t)
	w := NewWindow("win", 100, 80, 200, 150, testWindowSkin(), nil, "")
	w.SlideIn(0, 0, 1, nil)
	assert.Equal(t, 0.0, w.X())
	assert.True(t, w.Sliding())

	h.cv.AddControl(w)
	h.cv.Render(0.5)
	assert.InDelta(t, 50, w.X(), 1e-3)
	assert.InDelta(t, 40, w.Y(), 1e-3)

	h.cv.Render(0.5)
	assert.InDelta(t, 100, w.X(), 1e-3)
	assert.InDelta(t, 80, w.Y(), 1e-3)
	assert.False(t, w.Sliding())
}

func TestDialogCapturesInput(t *testing.T) {
	h := newHarness(t)
	under := NewControl("under", 0, 0, 400, 400)
	h.cv.AddControl(under)
	d := NewDialog("dlg", 100, 100, 200, 100, testWindowSkin(), nil, "Confirm")
	assert.False(t, d.Visible())

	var log eventLog
	log.watch(under, EventMouseLeftClick, EventKeyDown)
	log.watch(&d.Control, EventKeyDown)

	h.cv.ShowDialog(d)
	require.True(t, d.Open())
	assert.Same(t, d, h.cv.Dialog())
	assert.True(t, d.TitleBar().Visible())
	assert.Equal(t, 0, h.cv.Root().IndexOf(d))
	assert.Same(t, d.Base(), h.cv.Focused())

	h.click(50, 50)
	assert.Empty(t, log.entries)
	assert.Same(t, d.Base(), h.cv.Marked())

	h.cv.Focus(under)
	h.key(bramble.KeyA)
	assert.Equal(t, []string{"dlg:keydown"}, log.entries)

	var closed int
	d.OnClose(func() { closed++ })
	d.Close()
	assert.False(t, d.Open())
	assert.Nil(t, h.cv.Dialog())
	assert.False(t, d.Visible())
	assert.Equal(t, 1, closed)

	log.reset()
	h.click(50, 50)
	assert.Equal(t, []string{"under:click"}, log.entries)
}

func TestDialogCloseButton(t *testing.T) {
	h := newHarness(t)
	d := NewDialog("dlg", 100, 100, 200, 100, testWindowSkin(), nil, "Confirm")
	h.cv.ShowDialog(d)

	h.click(292, 110)
	assert.Nil(t, h.cv.Dialog())
	assert.False(t, d.Visible())
	assert.Same(t, &h.cv.Root().Control, h.cv.Focused())
}

func TestShowDialogReplacesOpenDialog(t *testing.T) {
	h := newHarness(t)
	first := NewDialog("first", 0, 0, 100, 100, testWindowSkin(), nil, "")
	second := NewDialog("second", 0, 0, 100, 100, testWindowSkin(), nil, "")
	h.cv.ShowDialog(first)
	h.cv.ShowDialog(second)
	assert.False(t, first.Visible())
	assert.Same(t, second, h.cv.Dialog())
}

func TestFPSLabel(t *testing.T) {
	h := newHarness(t)
	f := NewFPSLabel("fps", 0, 0, nil)
	f.SetRateSource(func() float64 { return 60 })
	h.cv.AddControl(f)

	h.cv.Render(0.25)
	assert.Equal(t, "FPS: 0.0", f.Text())
	h.cv.Render(0.25)
	assert.Equal(t, "FPS: 60.0", f.Text())
}
