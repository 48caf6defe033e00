package bramble

import "go.uber.org/zap"

// Member is an object that can live in a List. Types satisfy it by embedding
// ListSlot, which carries the back-index the list stamps on add and remove.
type Member interface {
	IsActive() bool
	Init()
	Release()
	ListIndex() int
	setListIndex(i int)
}

// ListSlot stores a member's position in its List. The zero value means
// "not listed".
type ListSlot struct {
	index int // position + 1; 0 when not in a list
}

// ListIndex returns the member's position in its List, or -1 if it is not
// currently listed.
func (s *ListSlot) ListIndex() int {
	return s.index - 1
}

func (s *ListSlot) setListIndex(i int) {
	s.index = i + 1
}

// List is a capacity-bounded pool of active members. Removal swaps the last
// member into the freed slot, so order is not preserved but every operation
// except iteration is O(1).
type List[T Member] struct {
	items []T
	cap   int
}

// NewList creates a list that holds at most capacity members.
func NewList[T Member](capacity int) *List[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &List[T]{items: make([]T, 0, capacity), cap: capacity}
}

// Len returns the number of members.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Cap returns the maximum number of members.
func (l *List[T]) Cap() int {
	return l.cap
}

// At returns the member at index i. It panics if i is out of range.
func (l *List[T]) At(i int) T {
	return l.items[i]
}

// Add initializes obj and appends it. It returns false without touching obj
// when obj is already active or the list is full.
func (l *List[T]) Add(obj T) bool {
	if obj.IsActive() {
		logger.Warn("list add of active member", zap.Int("index", obj.ListIndex()))
		return false
	}
	if len(l.items) >= l.cap {
		logger.Warn("list capacity exceeded", zap.Int("capacity", l.cap))
		return false
	}
	obj.Init()
	obj.setListIndex(len(l.items))
	l.items = append(l.items, obj)
	return true
}

// Remove releases obj and removes it. It returns false if obj is not a
// member of this list.
func (l *List[T]) Remove(obj T) bool {
	i := obj.ListIndex()
	if i < 0 || i >= len(l.items) || any(l.items[i]) != any(obj) {
		return false
	}
	l.RemoveAt(i)
	return true
}

// RemoveAt releases and removes the member at index i. Out-of-range indexes,
// including -1 from an already released member, are ignored.
func (l *List[T]) RemoveAt(i int) {
	if i < 0 || i >= len(l.items) {
		return
	}
	obj := l.items[i]
	obj.Release()
	obj.setListIndex(-1)

	last := len(l.items) - 1
	if i != last {
		moved := l.items[last]
		l.items[i] = moved
		moved.setListIndex(i)
	}
	var zero T
	l.items[last] = zero
	l.items = l.items[:last]
}

// Pop removes and returns the last member.
func (l *List[T]) Pop() (T, bool) {
	var zero T
	if len(l.items) == 0 {
		return zero, false
	}
	obj := l.items[len(l.items)-1]
	l.RemoveAt(len(l.items) - 1)
	return obj, true
}

// ForEach calls fn for every member until fn returns false. Members must not
// be added or removed from within fn.
func (l *List[T]) ForEach(fn func(T) bool) {
	var zero T
	for _, obj := range l.items {
		if any(obj) == any(zero) {
			continue
		}
		if !fn(obj) {
			return
		}
	}
}

// Clear releases and removes every member.
func (l *List[T]) Clear() {
	for len(l.items) > 0 {
		l.RemoveAt(len(l.items) - 1)
	}
}
