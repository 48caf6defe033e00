package gui

import (
	"testing"

	"github.com/phanxgames/bramble"
	"github.com/phanxgames/bramble/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func TestNewCanvasDefaults(t *testing.T) {
	h := newHarness(t)
	root := &h.cv.Root().Control
	assert.Same(t, root, h.cv.Marked())
	assert.Same(t, root, h.cv.Focused())
	assert.True(t, root.Focused())
	assert.True(t, root.Active())
	assert.Equal(t, 800.0, root.Width())
	assert.Nil(t, h.cv.Dialog())
}

func TestFocusTransferOrder(t *testing.T) {
	h := newHarness(t)
	a := NewControl("a", 10, 10, 20, 20)
	h.cv.AddControl(a)

	var log eventLog
	log.watch(&h.cv.Root().Control, EventFocusGain, EventFocusLost)
	log.watch(a, EventFocusGain, EventFocusLost)

	h.click(15, 15)
	assert.Equal(t, []string{"root:focuslost", "a:focusgain"}, log.entries)
	assert.Same(t, a, h.cv.Focused())
	assert.True(t, a.Focused())
	assert.False(t, h.cv.Root().Focused())

	log.reset()
	h.click(15, 15)
	assert.Empty(t, log.entries)
}

func TestFocusSwitchesBetweenControls(t *testing.T) {
	h := newHarness(t)
	a := NewControl("a", 0, 0, 20, 20)
	b := NewControl("b", 40, 0, 20, 20)
	h.cv.AddControl(a)
	h.cv.AddControl(b)
	h.click(5, 5)

	var log eventLog
	log.watch(a, EventFocusGain, EventFocusLost)
	log.watch(b, EventFocusGain, EventFocusLost)
	h.click(45, 5)
	assert.Equal(t, []string{"a:focuslost", "b:focusgain"}, log.entries)
}

func TestFocusReturnsToRootOnRemove(t *testing.T) {
	h := newHarness(t)
	a := NewControl("a", 0, 0, 20, 20)
	h.cv.AddControl(a)
	require.True(t, h.cv.Focus(a))

	var log eventLog
	log.watch(a, EventFocusLost)
	log.watch(&h.cv.Root().Control, EventFocusGain)
	h.cv.RemoveControl(a)
	assert.Same(t, &h.cv.Root().Control, h.cv.Focused())
	assert.False(t, a.Focused())
	assert.Equal(t, []string{"a:focuslost", "root:focusgain"}, log.entries)
}

func TestFocusRejectsInactive(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.cv.Focus(NewControl("loose", 0, 0, 1, 1)))
}

func TestKeysGoToFocused(t *testing.T) {
	h := newHarness(t)
	a := NewControl("a", 0, 0, 20, 20)
	h.cv.AddControl(a)
	h.cv.Focus(a)

	var keys []bramble.Key
	var log eventLog
	a.On(EventKeyDown, func(ev Event) { keys = append(keys, ev.Key) })
	log.watch(a, EventKeyDown, EventKeyUp)
	h.key(bramble.KeyEnter)
	assert.Equal(t, []string{"a:keydown", "a:keyup"}, log.entries)
	assert.Equal(t, []bramble.Key{bramble.KeyEnter}, keys)
}

func TestTabCyclesFocus(t *testing.T) {
	h := newHarness(t)
	a := NewControl("a", 0, 0, 10, 10)
	b := NewControl("b", 20, 0, 10, 10)
	hidden := NewControl("hidden", 40, 0, 10, 10)
	c := NewControl("c", 60, 0, 10, 10)
	for _, w := range []*Control{a, b, hidden, c} {
		h.cv.AddControl(w)
	}
	hidden.SetVisible(false)

	h.key(bramble.KeyTab)
	assert.Same(t, a, h.cv.Focused())
	h.key(bramble.KeyTab)
	assert.Same(t, b, h.cv.Focused())
	h.key(bramble.KeyTab)
	assert.Same(t, c, h.cv.Focused())
	h.key(bramble.KeyTab)
	assert.Same(t, a, h.cv.Focused())

	h.in.SetModifiers(bramble.ModShift)
	h.key(bramble.KeyTab)
	assert.Same(t, c, h.cv.Focused())
}

func TestTabIsNotDelivered(t *testing.T) {
	h := newHarness(t)
	a := NewControl("a", 0, 0, 10, 10)
	h.cv.AddControl(a)
	h.cv.Focus(a)
	var n int
	a.On(EventKeyDown, func(Event) { n++ })
	h.key(bramble.KeyTab)
	assert.Zero(t, n)
}

func TestInteractionsForwarded(t *testing.T) {
	h := newHarness(t)
	store := &storeRecorder{}
	h.cv.SetEventStore(store)
	a := NewControl("a", 10, 10, 20, 20)
	h.cv.AddControl(a)

	h.move(15, 15)
	assert.Empty(t, store.interactions)

	h.click(15, 15)
	assert.Equal(t, []string{"click", "focuslost", "focusgain"}, store.types())
	first := store.interactions[0]
	assert.Equal(t, "a", first.Control)
	assert.Equal(t, 15.0, first.X)
	assert.Equal(t, 15.0, first.Y)
	assert.Equal(t, "root", store.interactions[1].Control)
}

func TestCanvasAttachToState(t *testing.T) {
	h := newHarness(t)
	state := ecs.NewState("menu", h.batch)
	h.cv.Attach(state)
	assert.Same(t, h.cv.Entity(), state.Entity("canvas"))

	var got []ecs.Interaction
	ecs.InteractionEventType.Subscribe(state.Events(), func(_ donburi.World, ev ecs.Interaction) {
		got = append(got, ev)
	})

	a := NewControl("play", 10, 10, 20, 20)
	h.cv.AddControl(a)

	h.in.Move(15, 15)
	h.in.PressMouse(bramble.MouseButtonLeft)
	state.Update(1.0 / 60)
	state.Render(1.0 / 60)
	h.in.PostUpdate()
	h.in.ReleaseMouse(bramble.MouseButtonLeft)
	state.Update(1.0 / 60)
	state.Render(1.0 / 60)
	h.in.PostUpdate()
	assert.Empty(t, got)

	state.Update(1.0 / 60)
	require.NotEmpty(t, got)
	assert.Equal(t, "click", got[0].Type)
	assert.Equal(t, "play", got[0].Control)

	h.cv.Detach(state)
	assert.Nil(t, state.Entity("canvas"))
}

func TestCanvasReleasedWithState(t *testing.T) {
	h := newHarness(t)
	state := ecs.NewState("menu", h.batch)
	h.cv.Attach(state)
	stamp := NewStamp("stamp", 0, 0, 10, 10, 0)
	h.cv.AddControl(stamp)
	require.Equal(t, 1, h.batch.Len())

	state.Exit()
	assert.Equal(t, 0, h.batch.Len())
	assert.True(t, stamp.Released())
	assert.True(t, h.cv.Root().Released())

	h.cv.Render(1.0 / 60)
	assert.Equal(t, 0, h.batch.Len())
}

func TestCanvasDetachKeepsTree(t *testing.T) {
	h := newHarness(t)
	state := ecs.NewState("menu", h.batch)
	h.cv.Attach(state)
	h.cv.AddControl(NewStamp("stamp", 0, 0, 10, 10, 0))
	h.cv.Detach(state)

	state.Exit()
	assert.Equal(t, 1, h.batch.Len())
	assert.False(t, h.cv.Root().Released())
}

func TestTickers(t *testing.T) {
	h := newHarness(t)
	var runs int
	h.cv.AddTicker(func(dt float64) bool {
		runs++
		assert.Equal(t, 0.25, dt)
		return runs < 2
	})
	for range 4 {
		h.cv.Render(0.25)
	}
	assert.Equal(t, 2, runs)
}

func TestCanvasRecoversPanics(t *testing.T) {
	h := newHarness(t)
	logs := observeLogs(t)
	a := NewControl("a", 0, 0, 20, 20)
	h.cv.AddControl(a)
	a.On(EventMouseEnter, func(Event) { panic("boom") })

	assert.NotPanics(t, func() { h.move(5, 5) })
	assert.Equal(t, 1, logs.FilterMessage("canvas panic recovered").Len())
}

func TestResize(t *testing.T) {
	h := newHarness(t)
	h.cv.Resize(320, 240)
	assert.Equal(t, 320.0, h.cv.Root().Width())
	h.move(400, 100)
	assert.False(t, h.cv.Root().HitTest())
}
