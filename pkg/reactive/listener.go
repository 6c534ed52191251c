package reactive

// Listener is notified when a signal it read has changed.
type Listener interface {
	// MarkDirty schedules the listener to re-run.
	MarkDirty()

	// ID identifies the listener for subscription deduplication.
	ID() uint64
}

// Cleanup is returned by an effect and runs before the effect re-runs and
// when the effect is disposed.
type Cleanup func()
