package components

import (
	"testing"

	"github.com/phanxgames/bramble"
	"github.com/phanxgames/bramble/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	bramble.SetLogger(zap.New(core))
	t.Cleanup(func() { bramble.SetLogger(nil) })
	return logs
}

func newActor(t *testing.T, id string, x, y float64) *ecs.Entity {
	t.Helper()
	e := ecs.NewEntity(id)
	require.NoError(t, e.AddComponent(NewTransform(x, y)))
	return e
}

// mover shifts its entity's Transform every Update.
type mover struct {
	ecs.BaseComponent
	dx float64
}

func (m *mover) Key() ecs.ComponentKey { return ecs.KeyOf("mover") }

func (m *mover) Update(dt float64) {
	TransformOf(m.Entity()).Translate(m.dx, 0)
}

func TestTransform(t *testing.T) {
	tr := NewTransform(3, 4)
	assert.Equal(t, 1.0, tr.ScaleX)
	assert.Equal(t, 1.0, tr.ScaleY)
	tr.Translate(1, -1)
	assert.Equal(t, 4.0, tr.X)
	assert.Equal(t, 3.0, tr.Y)

	assert.Nil(t, TransformOf(nil))
	assert.Nil(t, TransformOf(ecs.NewEntity("bare")))
}

func TestSprite_Lifecycle(t *testing.T) {
	batch := bramble.NewBatch(nil, 8)
	s := ecs.NewState("s", batch)
	e := newActor(t, "hero", 10, 20)
	sp := NewSprite(bramble.FallbackRegion, 16, 8)
	sp.SetOffset(2, 3)
	require.NoError(t, AttachSprite(e, sp))
	assert.False(t, sp.RenderActive())

	require.True(t, s.AddEntity(e))
	require.True(t, sp.RenderActive())
	tile, ok := batch.Tile(sp.Handle())
	require.True(t, ok)
	assert.Equal(t, 12.0, tile.X)
	assert.Equal(t, 23.0, tile.Y)
	assert.Equal(t, 16.0, tile.W)

	TransformOf(e).SetPosition(100, 200)
	TransformOf(e).ScaleX = 2
	s.Update(0.1)
	tile, _ = batch.Tile(sp.Handle())
	assert.Equal(t, 102.0, tile.X)
	assert.Equal(t, 203.0, tile.Y)
	assert.Equal(t, 32.0, tile.W)

	sp.SetVisible(false)
	sp.SetLayer(3)
	tile, _ = batch.Tile(sp.Handle())
	assert.False(t, tile.Visible)
	assert.Equal(t, 3, tile.Layer)

	s.ClearEntities()
	assert.False(t, sp.RenderActive())
	assert.Equal(t, 0, batch.Len())
}

func TestSprite_RemoveComponentReleasesTile(t *testing.T) {
	batch := bramble.NewBatch(nil, 8)
	s := ecs.NewState("s", batch)
	e := newActor(t, "hero", 0, 0)
	sp := NewSprite(bramble.FallbackRegion, 4, 4)
	require.NoError(t, AttachSprite(e, sp))
	s.AddEntity(e)
	require.Equal(t, 1, batch.Len())

	e.RemoveComponent(SpriteKey)
	assert.Equal(t, 0, batch.Len())
}

func TestFollow_SeesSameFramePosition(t *testing.T) {
	s := ecs.NewState("s", nil)
	leader := newActor(t, "leader", 0, 0)
	require.NoError(t, leader.AddComponent(&mover{dx: 5}))
	follower := newActor(t, "follower", 0, 0)
	require.NoError(t, follower.AddComponent(NewFollow(leader, -10, 2)))

	// Follower first, so it would see a stale position without the
	// separate LateUpdate pass.
	s.AddEntity(follower)
	s.AddEntity(leader)

	s.Update(0.1)
	assert.Equal(t, -5.0, TransformOf(follower).X)
	assert.Equal(t, 2.0, TransformOf(follower).Y)

	s.Update(0.1)
	assert.Equal(t, 0.0, TransformOf(follower).X)
}

func TestTween_ReachesTarget(t *testing.T) {
	e := newActor(t, "e", 0, 0)
	tw := NewTween(100, 50, 1, ease.Linear)
	var done int
	tw.OnDone = func() { done++ }
	require.NoError(t, e.AddComponent(tw))

	e.Update(0.5)
	assert.False(t, tw.Done())
	assert.InDelta(t, 50, TransformOf(e).X, 0.01)

	e.Update(0.5)
	e.Update(0.5)
	assert.True(t, tw.Done())
	assert.InDelta(t, 100, TransformOf(e).X, 0.01)
	assert.InDelta(t, 50, TransformOf(e).Y, 0.01)
	assert.Equal(t, 1, done)

	tw.Retarget(0, 0, 1)
	assert.False(t, tw.Done())
}

func TestScript(t *testing.T) {
	logs := observeLogs(t)
	e := newActor(t, "e", 1, 2)
	sc, err := NewScript("walker", `
		var frames = 0;
		function update(dt) {
			frames++;
			move(dt * 10, 0);
		}
		function lateUpdate(dt) {
			if (x() > 5) {
				setPosition(0, y());
				log("wrapped");
			}
		}
	`)
	require.NoError(t, err)
	require.NoError(t, e.AddComponent(sc))

	e.Update(0.25)
	assert.InDelta(t, 3.5, TransformOf(e).X, 1e-9)

	e.Update(0.25)
	assert.Equal(t, 0.0, TransformOf(e).X)
	assert.Equal(t, 2.0, TransformOf(e).Y)
	assert.Equal(t, 1, logs.FilterMessage("wrapped").Len())
}

func TestScript_Errors(t *testing.T) {
	t.Run("syntax", func(t *testing.T) {
		_, err := NewScript("bad", "function update(dt) {")
		assert.Error(t, err)
	})
	t.Run("no update", func(t *testing.T) {
		_, err := NewScript("empty", "var a = 1;")
		assert.ErrorContains(t, err, "no update function")
	})
	t.Run("runtime error disables", func(t *testing.T) {
		logs := observeLogs(t)
		e := newActor(t, "e", 0, 0)
		sc, err := NewScript("thrower", `function update(dt) { throw new Error("nope"); }`)
		require.NoError(t, err)
		require.NoError(t, e.AddComponent(sc))

		e.Update(0.1)
		assert.False(t, sc.Enabled())
		assert.Equal(t, 1, logs.FilterMessage("script error, disabling").Len())
	})
}
