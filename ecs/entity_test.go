package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyOf(t *testing.T) {
	assert.Equal(t, KeyOf("transform"), KeyOf("transform"))
	assert.NotEqual(t, KeyOf("transform"), KeyOf("sprite"))
}

func TestNewEntity(t *testing.T) {
	a := NewEntity("a")
	b := NewEntity("a")
	assert.Equal(t, "a", a.ID())
	assert.True(t, a.Active())
	assert.NotEqual(t, a.UID(), b.UID())
	assert.Nil(t, a.State())
	assert.Equal(t, -1, a.ListIndex())
}

func TestEntity_AddComponent(t *testing.T) {
	var log []string
	e := NewEntity("e")
	p := newTracker("p", &log)

	require.NoError(t, e.AddComponent(p))
	assert.Equal(t, 1, p.inits)
	assert.Same(t, e, p.Entity())
	assert.True(t, e.Has(p.Key()))
	assert.Equal(t, []Component{p}, e.Components())
}

func TestEntity_AddComponentErrors(t *testing.T) {
	logs := observeLogs(t)
	var log []string
	e := NewEntity("e")
	first := newTracker("p", &log)
	require.NoError(t, e.AddComponent(first))

	t.Run("duplicate key rejected", func(t *testing.T) {
		dup := newTracker("p", &log)
		assert.ErrorIs(t, e.AddComponent(dup), ErrDuplicateComponent)
		assert.Same(t, first, e.Component(first.Key()))
		assert.Nil(t, dup.Entity())
		assert.Equal(t, 0, dup.inits)
		assert.Equal(t, 1, logs.FilterMessage("duplicate component rejected").Len())
	})

	t.Run("nil", func(t *testing.T) {
		assert.ErrorIs(t, e.AddComponent(nil), ErrNilComponent)
	})

	t.Run("attached elsewhere", func(t *testing.T) {
		other := NewEntity("other")
		assert.ErrorIs(t, other.AddComponent(first), ErrComponentAttached)
		assert.Same(t, e, first.Entity())
	})
}

func TestEntity_RemoveComponent(t *testing.T) {
	var log []string
	e := NewEntity("e")
	p := newTracker("p", &log)
	require.NoError(t, e.AddComponent(p))

	assert.True(t, e.RemoveComponent(p.Key()))
	assert.Equal(t, []string{"p.removed", "p.cleanup"}, log)
	assert.Nil(t, p.Entity())
	assert.Nil(t, e.Component(p.Key()))
	assert.Empty(t, e.Components())
	assert.False(t, e.RemoveComponent(p.Key()))

	// A detached component can join another entity.
	require.NoError(t, NewEntity("other").AddComponent(p))
}

func TestGet(t *testing.T) {
	var log []string
	e := NewEntity("e")
	p := newTracker("p", &log)
	require.NoError(t, e.AddComponent(p))

	got, ok := Get[*tracker](e, p.Key())
	require.True(t, ok)
	assert.Same(t, p, got)

	_, ok = Get[*tracker](e, KeyOf("missing"))
	assert.False(t, ok)
}

func TestEntity_UpdateTwoPasses(t *testing.T) {
	var log []string
	e := NewEntity("e")
	require.NoError(t, e.AddComponent(newTracker("a", &log)))
	require.NoError(t, e.AddComponent(newTracker("b", &log)))
	e.SetBehavior(recordingBehavior("e", &log))

	e.Update(1.0 / 60)

	assert.Equal(t, []string{
		"a.update", "b.update", "e.behavior",
		"a.late", "b.late", "e.lateBehavior",
	}, log)
}

func TestEntity_UpdateSkipsDisabledAndInactive(t *testing.T) {
	var log []string
	e := NewEntity("e")
	a := newTracker("a", &log)
	b := newTracker("b", &log)
	require.NoError(t, e.AddComponent(a))
	require.NoError(t, e.AddComponent(b))

	a.SetEnabled(false)
	e.Update(0.1)
	assert.Equal(t, []string{"b.update", "b.late"}, log)

	log = nil
	e.SetActive(false)
	e.Update(0.1)
	assert.Empty(t, log)
}

func TestEntity_Cleanup(t *testing.T) {
	var log []string
	s := NewState("s", nil)
	e := NewEntity("e")
	r := &fakeRender{active: true}
	e.SetRender(r)
	require.NoError(t, e.AddComponent(newTracker("a", &log)))
	require.True(t, s.AddEntity(e))

	e.Cleanup()

	assert.Equal(t, 1, r.releases)
	assert.Equal(t, []string{"a.removed", "a.cleanup"}, log)
	assert.Empty(t, e.Components())
	assert.Nil(t, e.State())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.Engine().Count())
}

func TestBehaviorFuncs_NilFields(t *testing.T) {
	e := NewEntity("e")
	e.SetBehavior(BehaviorFuncs{})
	assert.NotPanics(t, func() { e.Update(0.1) })
}
