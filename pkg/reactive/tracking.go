package reactive

import (
	"runtime"
	"sync"
)

// trackingContext is the per-goroutine reactive state.
type trackingContext struct {
	gid uint64

	// owner receives effects created on this goroutine.
	owner *Owner

	// listener is subscribed to every signal read on this goroutine.
	// nil disables tracking.
	listener Listener

	// batchDepth counts nested Batch calls.
	batchDepth int

	// pending collects listeners to notify when the outermost batch ends.
	pending []Listener
}

var trackingContexts sync.Map

// goroutineID parses the current goroutine id out of the stack header
// ("goroutine 42 [running]:").
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// tracking returns this goroutine's context, creating it on first use.
// Only writers call it; readers use lookupTracking so that plain signal
// reads never allocate an entry.
func tracking() *trackingContext {
	gid := goroutineID()
	if tc, ok := trackingContexts.Load(gid); ok {
		return tc.(*trackingContext)
	}
	tc := &trackingContext{gid: gid}
	trackingContexts.Store(gid, tc)
	return tc
}

func lookupTracking() *trackingContext {
	if tc, ok := trackingContexts.Load(goroutineID()); ok {
		return tc.(*trackingContext)
	}
	return nil
}

// release drops tc once nothing is in flight on its goroutine, so a
// goroutine that stops using the runtime leaves no entry behind.
func release(tc *trackingContext) {
	if tc.owner == nil && tc.listener == nil && tc.batchDepth == 0 && len(tc.pending) == 0 {
		trackingContexts.Delete(tc.gid)
	}
}

func currentListener() Listener {
	if tc := lookupTracking(); tc != nil {
		return tc.listener
	}
	return nil
}

func setCurrentListener(l Listener) Listener {
	tc := tracking()
	old := tc.listener
	tc.listener = l
	release(tc)
	return old
}

// CurrentOwner returns the owner effects are attached to on this goroutine.
func CurrentOwner() *Owner {
	if tc := lookupTracking(); tc != nil {
		return tc.owner
	}
	return nil
}

func setCurrentOwner(o *Owner) *Owner {
	tc := tracking()
	old := tc.owner
	tc.owner = o
	release(tc)
	return old
}

// WithOwner runs fn with owner as the current owner. Effects created inside
// fn belong to owner and are disposed with it.
func WithOwner(owner *Owner, fn func()) {
	old := setCurrentOwner(owner)
	defer setCurrentOwner(old)
	fn()
}

// Untracked runs fn without subscribing the current listener to any signal
// read inside it.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}
