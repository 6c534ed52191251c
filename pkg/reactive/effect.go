package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect is a side effect that re-runs when a signal it read changes.
// The Cleanup returned by the previous run is called before every re-run and
// when the effect is disposed.
type Effect struct {
	id uint64

	fn      func() Cleanup
	cleanup Cleanup

	sourcesMu sync.Mutex
	sources   []*source

	owner *Owner

	pending  atomic.Bool
	disposed atomic.Bool
}

// CreateEffect creates an effect owned by the current owner and runs it
// immediately.
func CreateEffect(fn func() Cleanup) *Effect {
	owner := CurrentOwner()

	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: owner,
	}
	if owner != nil {
		owner.registerEffect(e)
	}

	e.run()
	return e
}

// OnCleanup registers fn on the current owner. It is a no-op without one.
func OnCleanup(fn func()) {
	if owner := CurrentOwner(); owner != nil {
		owner.OnCleanup(fn)
	}
}

// ID implements Listener.
func (e *Effect) ID() uint64 {
	return e.id
}

// MarkDirty implements Listener. The effect is queued on its owner at most
// once until it runs again. Effects without an owner re-run synchronously.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}
	if !e.pending.CompareAndSwap(false, true) {
		return
	}
	if e.owner == nil {
		e.run()
		return
	}
	e.owner.scheduleEffect(e)
}

// Dispose runs the last cleanup and unsubscribes the effect.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	e.dropSources()
}

func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}
	e.pending.Store(false)

	if e.cleanup != nil {
		c := e.cleanup
		e.cleanup = nil
		c()
	}
	e.dropSources()

	prevListener := setCurrentListener(e)
	prevOwner := setCurrentOwner(e.owner)
	defer func() {
		setCurrentOwner(prevOwner)
		setCurrentListener(prevListener)
	}()

	e.cleanup = e.fn()
}

func (e *Effect) addSource(s *source) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, existing := range e.sources {
		if existing == s {
			return
		}
	}
	e.sources = append(e.sources, s)
}

func (e *Effect) dropSources() {
	e.sourcesMu.Lock()
	sources := e.sources
	e.sources = nil
	e.sourcesMu.Unlock()

	for _, s := range sources {
		s.unsubscribe(e)
	}
}
