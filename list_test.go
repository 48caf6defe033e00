package bramble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ListSlot
	name     string
	active   bool
	inits    int
	releases int
}

func (it *item) IsActive() bool { return it.active }
func (it *item) Init()          { it.active = true; it.inits++ }
func (it *item) Release()       { it.active = false; it.releases++ }

func checkBackIndex(t *testing.T, l *List[*item]) {
	t.Helper()
	for i := 0; i < l.Len(); i++ {
		assert.Equal(t, i, l.At(i).ListIndex(), "item %q", l.At(i).name)
	}
}

func TestList_AddRemove(t *testing.T) {
	l := NewList[*item](4)
	a, b, c := &item{name: "a"}, &item{name: "b"}, &item{name: "c"}
	for _, it := range []*item{a, b, c} {
		require.True(t, l.Add(it), "Add(%s)", it.name)
	}
	require.Equal(t, 3, l.Len())
	require.True(t, a.active)
	require.Equal(t, 1, a.inits)
	checkBackIndex(t, l)

	// Removing the first member swaps the last into its slot.
	require.True(t, l.Remove(a))
	assert.Same(t, c, l.At(0))
	assert.Equal(t, -1, a.ListIndex())
	assert.False(t, a.active)
	assert.Equal(t, 1, a.releases)
	checkBackIndex(t, l)

	assert.False(t, l.Remove(a), "second Remove(a)")
}

func TestList_AddActiveRejected(t *testing.T) {
	logs := observeLogs(t)

	l := NewList[*item](4)
	a := &item{name: "a"}
	l.Add(a)
	assert.False(t, l.Add(a), "re-adding an active member")
	assert.Equal(t, 1, a.inits)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 1, logs.FilterMessage("list add of active member").Len())
}

func TestList_Capacity(t *testing.T) {
	logs := observeLogs(t)

	l := NewList[*item](2)
	l.Add(&item{name: "a"})
	l.Add(&item{name: "b"})
	c := &item{name: "c"}
	assert.False(t, l.Add(c), "Add beyond capacity")
	assert.False(t, c.active)
	assert.Zero(t, c.inits, "rejected member was initialised")
	assert.Equal(t, 1, logs.FilterMessage("list capacity exceeded").Len())
	assert.Equal(t, 0, NewList[*item](-3).Cap(), "negative capacity not clamped")
}

func TestList_RemoveFromOtherList(t *testing.T) {
	l1, l2 := NewList[*item](2), NewList[*item](2)
	a, b := &item{name: "a"}, &item{name: "b"}
	l1.Add(a)
	l2.Add(b)
	assert.False(t, l1.Remove(b), "Remove of a member of another list")
	assert.Equal(t, 1, l2.Len())
	assert.True(t, b.active)
}

func TestList_PopAndClear(t *testing.T) {
	l := NewList[*item](4)
	a, b, c := &item{name: "a"}, &item{name: "b"}, &item{name: "c"}
	l.Add(a)
	l.Add(b)
	l.Add(c)

	got, ok := l.Pop()
	require.True(t, ok)
	assert.Same(t, c, got)
	assert.False(t, c.active)

	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.False(t, a.active)
	assert.False(t, b.active)
	_, ok = l.Pop()
	assert.False(t, ok, "Pop on empty list")
	l.RemoveAt(5)
	l.RemoveAt(-1)
}

func TestList_ForEachStops(t *testing.T) {
	l := NewList[*item](4)
	for _, n := range []string{"a", "b", "c"} {
		l.Add(&item{name: n})
	}
	var seen []string
	l.ForEach(func(it *item) bool {
		seen = append(seen, it.name)
		return len(seen) < 2
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestList_BackIndexUnderChurn(t *testing.T) {
	l := NewList[*item](16)
	items := make([]*item, 16)
	for i := range items {
		items[i] = &item{name: string(rune('a' + i))}
		l.Add(items[i])
	}
	for _, i := range []int{3, 0, 15, 7, 8, 1} {
		require.True(t, l.Remove(items[i]), "Remove(%d)", i)
		checkBackIndex(t, l)
	}
	assert.Equal(t, 10, l.Len())
}
