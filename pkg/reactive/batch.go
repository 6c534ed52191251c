package reactive

// Batch groups signal writes so that each affected listener is notified
// once, when the outermost batch returns.
//
//	reactive.Batch(func() {
//	    title.Set("Orders")
//	    subtitle.Set("Last 30 days")
//	})
func Batch(fn func()) {
	tc := tracking()
	tc.batchDepth++

	defer func() {
		tc.batchDepth--
		if tc.batchDepth == 0 {
			flushBatch(tc)
			release(tc)
		}
	}()

	fn()
}

func flushBatch(tc *trackingContext) {
	pending := tc.pending
	tc.pending = nil
	if len(pending) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(pending))
	for _, l := range pending {
		if seen[l.ID()] {
			continue
		}
		seen[l.ID()] = true
		l.MarkDirty()
	}
}
