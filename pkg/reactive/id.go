package reactive

import "sync/atomic"

var idCounter uint64

// nextID returns a process-unique identifier for a signal, effect or owner.
func nextID() uint64 {
	return atomic.AddUint64(&idCounter, 1)
}
