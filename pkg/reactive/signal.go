package reactive

import (
	"reflect"
	"sync"
)

// source is the type-erased subscriber list shared by every Signal[T].
type source struct {
	id uint64

	mu   sync.RWMutex
	subs []Listener
}

func (s *source) subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := l.ID()
	for _, existing := range s.subs {
		if existing.ID() == id {
			return
		}
	}
	s.subs = append(s.subs, l)
}

func (s *source) unsubscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := l.ID()
	for i, existing := range s.subs {
		if existing.ID() == id {
			s.subs[i] = s.subs[len(s.subs)-1]
			s.subs = s.subs[:len(s.subs)-1]
			return
		}
	}
}

// notify marks every subscriber dirty, or queues them while a batch is open.
// Subscribers are copied first so MarkDirty never runs under the lock.
func (s *source) notify() {
	s.mu.RLock()
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	if tc := lookupTracking(); tc != nil && tc.batchDepth > 0 {
		tc.pending = append(tc.pending, subs...)
		return
	}
	for _, l := range subs {
		l.MarkDirty()
	}
}

// track subscribes the current listener, if any, to s.
func (s *source) track() {
	l := currentListener()
	if l == nil {
		return
	}
	s.subscribe(l)
	if e, ok := l.(*Effect); ok {
		e.addSource(s)
	}
}

// Signal is a reactive value container. Get inside an effect subscribes the
// effect; Set notifies subscribers when the value actually changed.
type Signal[T any] struct {
	src source

	mu    sync.RWMutex
	value T

	equal func(a, b T) bool
}

// NewSignal creates a signal holding initial.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		src:   source{id: nextID()},
		value: initial,
	}
}

// Get returns the current value and subscribes the current listener.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	v := s.value
	s.mu.RUnlock()

	s.src.track()
	return v
}

// Peek returns the current value without subscribing.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies subscribers if it changed.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	changed := !s.equals(s.value, v)
	if changed {
		s.value = v
	}
	s.mu.Unlock()

	if changed {
		s.src.notify()
	}
}

// Update replaces the value with fn(current).
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	next := fn(s.value)
	changed := !s.equals(s.value, next)
	if changed {
		s.value = next
	}
	s.mu.Unlock()

	if changed {
		s.src.notify()
	}
}

// WithEquals sets the equality used to decide whether Set is a change.
func (s *Signal[T]) WithEquals(fn func(a, b T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the signal's identifier.
func (s *Signal[T]) ID() uint64 {
	return s.src.id
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return reflect.DeepEqual(a, b)
}
