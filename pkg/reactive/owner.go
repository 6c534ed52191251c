package reactive

import (
	"sync"
	"sync/atomic"
)

// maxFlushPasses bounds Flush so that effects which keep re-scheduling each
// other cannot spin forever.
const maxFlushPasses = 100

// Owner is a component scope. Disposing it disposes every child owner,
// effect and cleanup it holds.
type Owner struct {
	id     uint64
	parent *Owner

	childrenMu sync.Mutex
	children   []*Owner

	effectsMu sync.Mutex
	effects   []*Effect

	cleanupsMu sync.Mutex
	cleanups   []func()

	pendingMu sync.Mutex
	pending   []*Effect

	valuesMu sync.RWMutex
	values   map[any]any

	disposed atomic.Bool
}

// NewOwner creates an owner under parent. A nil parent creates a root.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
	}
	if parent != nil {
		parent.childrenMu.Lock()
		parent.children = append(parent.children, o)
		parent.childrenMu.Unlock()
	}
	return o
}

// ID returns the owner's identifier.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent owner, or nil for a root.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed reports whether Dispose has been called.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

// OnCleanup registers fn to run when the owner is disposed. Cleanups run in
// reverse registration order. If the owner is already disposed fn runs now.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		fn()
		return
	}
	o.cleanupsMu.Lock()
	defer o.cleanupsMu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

// SetValue stores a scoped value visible to this owner and its descendants.
func (o *Owner) SetValue(key, value any) {
	o.valuesMu.Lock()
	defer o.valuesMu.Unlock()
	if o.values == nil {
		o.values = make(map[any]any)
	}
	o.values[key] = value
}

// Value looks key up on this owner, then on each ancestor. It returns nil
// when no owner in the chain holds it.
func (o *Owner) Value(key any) any {
	for cur := o; cur != nil; cur = cur.parent {
		cur.valuesMu.RLock()
		v, ok := cur.values[key]
		cur.valuesMu.RUnlock()
		if ok {
			return v
		}
	}
	return nil
}

func (o *Owner) registerEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}
	o.effectsMu.Lock()
	defer o.effectsMu.Unlock()
	o.effects = append(o.effects, e)
}

func (o *Owner) scheduleEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}
	o.pendingMu.Lock()
	defer o.pendingMu.Unlock()
	o.pending = append(o.pending, e)
}

func (o *Owner) childList() []*Owner {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	return children
}

// RunPendingEffects runs the effects scheduled on this owner, then recurses
// into its children.
func (o *Owner) RunPendingEffects() {
	if o.disposed.Load() {
		return
	}

	o.pendingMu.Lock()
	effects := o.pending
	o.pending = nil
	o.pendingMu.Unlock()

	for _, e := range effects {
		if e.pending.Load() {
			e.run()
		}
	}

	for _, child := range o.childList() {
		child.RunPendingEffects()
	}
}

// HasPendingEffects reports whether this owner or a descendant has effects
// waiting to run.
func (o *Owner) HasPendingEffects() bool {
	if o.disposed.Load() {
		return false
	}

	o.pendingMu.Lock()
	n := len(o.pending)
	o.pendingMu.Unlock()
	if n > 0 {
		return true
	}

	for _, child := range o.childList() {
		if child.HasPendingEffects() {
			return true
		}
	}
	return false
}

// Flush runs pending effects until the tree settles. It returns false if
// the tree was still dirty after the pass limit.
func (o *Owner) Flush() bool {
	for i := 0; i < maxFlushPasses; i++ {
		if !o.HasPendingEffects() {
			return true
		}
		o.RunPendingEffects()
	}
	return !o.HasPendingEffects()
}

// Dispose tears the scope down: children last-created first, then effects,
// then cleanups in reverse order.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	if o.parent != nil {
		o.parent.removeChild(o)
	}

	o.childrenMu.Lock()
	children := o.children
	o.children = nil
	o.childrenMu.Unlock()
	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	o.effectsMu.Lock()
	effects := o.effects
	o.effects = nil
	o.effectsMu.Unlock()
	for _, e := range effects {
		e.Dispose()
	}

	o.cleanupsMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupsMu.Unlock()
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	o.pendingMu.Lock()
	o.pending = nil
	o.pendingMu.Unlock()
}

func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}
