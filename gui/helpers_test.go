package gui

import (
	"testing"

	"github.com/phanxgames/bramble"
	"github.com/phanxgames/bramble/ecs"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// harness drives a canvas frame by frame with a virtual mouse and keyboard.
type harness struct {
	in    *bramble.VirtualInput
	batch *bramble.Batch
	cv    *Canvas
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	in := bramble.NewVirtualInput()
	batch := bramble.NewBatch(nil, 1024)
	return &harness{in: in, batch: batch, cv: NewCanvas(batch, in, 800, 600)}
}

func (h *harness) frame() {
	h.cv.Update()
	h.in.PostUpdate()
}

func (h *harness) move(x, y float64) {
	h.in.Move(x, y)
	h.frame()
}

func (h *harness) press(x, y float64) {
	h.in.Move(x, y)
	h.in.PressMouse(bramble.MouseButtonLeft)
	h.frame()
}

func (h *harness) release() {
	h.in.ReleaseMouse(bramble.MouseButtonLeft)
	h.frame()
}

// click takes two frames; the click fires on the release frame.
func (h *harness) click(x, y float64) {
	h.press(x, y)
	h.release()
}

func (h *harness) key(k bramble.Key) {
	h.in.PressKey(k)
	h.frame()
	h.in.ReleaseKey(k)
	h.frame()
}

// eventLog collects "name:event" entries from any number of controls.
type eventLog struct {
	entries []string
}

func (l *eventLog) watch(c *Control, types ...EventType) {
	for _, t := range types {
		c.On(t, func(ev Event) {
			l.entries = append(l.entries, ev.Control.Name()+":"+ev.Type.String())
		})
	}
}

func (l *eventLog) reset() { l.entries = nil }

type storeRecorder struct {
	interactions []ecs.Interaction
}

func (s *storeRecorder) EmitEntityEvent(ecs.EntityEvent) {}

func (s *storeRecorder) EmitInteraction(ev ecs.Interaction) {
	s.interactions = append(s.interactions, ev)
}

func (s *storeRecorder) types() []string {
	out := make([]string, len(s.interactions))
	for i, ev := range s.interactions {
		out[i] = ev.Type
	}
	return out
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.WarnLevel)
	bramble.SetLogger(zap.New(core))
	t.Cleanup(func() { bramble.SetLogger(nil) })
	return logs
}

const testFontJSON = `{
  "lineHeight": 12,
  "base": 10,
  "chars": [
    {"id": 32, "width": 0, "height": 0, "xadvance": 4},
    {"id": 65, "x": 0, "y": 0, "width": 8, "height": 10, "xadvance": 10},
    {"id": 66, "x": 8, "y": 0, "width": 8, "height": 10, "xadvance": 10}
  ]
}`

func testFont(t *testing.T) *bramble.BitmapFont {
	t.Helper()
	f, err := bramble.LoadBitmapFont([]byte(testFontJSON), bramble.NewAtlas(), 0)
	require.NoError(t, err)
	return f
}

func testWindowSkin() WindowSkin {
	return WindowSkin{
		Corner:      4,
		TitleLeft:   4,
		TitleRight:  4,
		TitleHeight: 20,
		CloseSize:   16,
	}
}
