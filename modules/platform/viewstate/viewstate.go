package viewstate

import (
	"sync"
)

// Listener receives every value held by a ViewState
type Listener[T any] func(value T)

// ViewState is a single-slot reactive cell with replay-latest semantics.
// Updates are delivered synchronously, in subscription order, and never
// interleave: a listener must not call Update on the cell it listens to.
type ViewState[T any] struct {
	// notifyMu serializes Update/Reset/Subscribe so that no listener can
	// observe two values out of order
	notifyMu sync.Mutex

	mu        sync.RWMutex
	current   T
	initial   T
	listeners []*Subscription[T]
	nextID    uint64
}

// Subscription is a handle returned by Subscribe
type Subscription[T any] struct {
	id       uint64
	cell     *ViewState[T]
	listener Listener[T]
}

// New creates a cell holding initial, which is also the value Reset restores
func New[T any](initial T) *ViewState[T] {
	return &ViewState[T]{
		current: initial,
		initial: initial,
	}
}

// Update replaces the held value and notifies every listener
func (s *ViewState[T]) Update(value T) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.current = value
	listeners := make([]*Subscription[T], len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, sub := range listeners {
		sub.listener(value)
	}
}

// Snapshot returns the held value
func (s *ViewState[T]) Snapshot() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Reset restores the value captured by New and notifies like Update
func (s *ViewState[T]) Reset() {
	s.mu.RLock()
	initial := s.initial
	s.mu.RUnlock()
	s.Update(initial)
}

// Subscribe registers a listener. The listener is called immediately with
// the current value, then with every subsequent update.
func (s *ViewState[T]) Subscribe(listener Listener[T]) *Subscription[T] {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.nextID++
	sub := &Subscription[T]{
		id:       s.nextID,
		cell:     s,
		listener: listener,
	}
	s.listeners = append(s.listeners, sub)
	current := s.current
	s.mu.Unlock()

	listener(current)
	return sub
}

// SubscriberCount returns the number of attached listeners
func (s *ViewState[T]) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listeners)
}

// Close detaches every listener. The held value is kept.
func (s *ViewState[T]) Close() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.listeners = nil
	s.mu.Unlock()
}

// Unsubscribe detaches the listener from updates issued after it returns.
// Calling it more than once is a no-op.
func (sub *Subscription[T]) Unsubscribe() {
	if sub == nil || sub.cell == nil {
		return
	}
	s := sub.cell

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listeners {
		if l.id == sub.id {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}
