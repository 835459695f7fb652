// Package history provides an observable undo stack.
//
// Stack is an insertion-ordered, most-recent-last log. Subscribers are
// notified synchronously, in subscription order, after every push, pop and
// clear. The stack is not safe for concurrent use; callers serialize access.
package history

// EventType names a stack mutation
type EventType string

const (
	Pushed  EventType = "pushed"
	Popped  EventType = "popped"
	Cleared EventType = "cleared"
)

// Event describes a mutation. Value is the pushed or popped item; Len is the
// stack length after the mutation.
type Event[T any] struct {
	Type  EventType
	Value T
	Len   int
}

type subscription[T any] struct {
	id int
	fn func(Event[T])
}

// Stack is a generic observable stack
type Stack[T any] struct {
	items  []T
	subs   []subscription[T]
	nextID int
}

// New creates an empty stack
func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push appends v to the top of the stack
func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
	s.notify(Event[T]{Type: Pushed, Value: v, Len: len(s.items)})
}

// Pop removes and returns the most recent item. ok is false when the stack is
// empty, in which case nothing happens and no subscriber is notified.
func (s *Stack[T]) Pop() (v T, ok bool) {
	if len(s.items) == 0 {
		return v, false
	}
	last := len(s.items) - 1
	v = s.items[last]
	var zero T
	s.items[last] = zero
	s.items = s.items[:last]
	s.notify(Event[T]{Type: Popped, Value: v, Len: len(s.items)})
	return v, true
}

// Peek returns the most recent item without removing it
func (s *Stack[T]) Peek() (v T, ok bool) {
	if len(s.items) == 0 {
		return v, false
	}
	return s.items[len(s.items)-1], true
}

// Len returns the number of items
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Items returns a copy of the items, oldest first
func (s *Stack[T]) Items() []T {
	return append([]T(nil), s.items...)
}

// Clear removes every item
func (s *Stack[T]) Clear() {
	s.items = nil
	var zero T
	s.notify(Event[T]{Type: Cleared, Value: zero, Len: 0})
}

// Subscribe registers fn for future mutations and returns a function that
// removes the subscription
func (s *Stack[T]) Subscribe(fn func(Event[T])) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription[T]{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Stack[T]) notify(ev Event[T]) {
	// Copy so subscribers may unsubscribe while being notified
	subs := append([]subscription[T](nil), s.subs...)
	for _, sub := range subs {
		sub.fn(ev)
	}
}
