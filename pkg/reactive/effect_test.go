package reactive

import "testing"

func TestEffectRunsOnCreate(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	ran := false
	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			ran = true
			return nil
		})
	})

	if !ran {
		t.Error("effect should run immediately on creation")
	}
}

func TestEffectRerunsAfterFlush(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	count := NewSignal(0)
	var seen []int
	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			seen = append(seen, count.Get())
			return nil
		})
	})

	count.Set(1)
	count.Set(2)
	if len(seen) != 1 {
		t.Fatalf("effect re-ran before flush: %v", seen)
	}

	owner.RunPendingEffects()
	if len(seen) != 2 || seen[1] != 2 {
		t.Errorf("seen = %v, want [0 2]", seen)
	}
}

func TestEffectCleanupOrder(t *testing.T) {
	owner := NewOwner(nil)

	count := NewSignal(0)
	var log []string
	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			n := count.Get()
			log = append(log, "run")
			return func() {
				log = append(log, "cleanup")
				_ = n
			}
		})
	})

	count.Set(1)
	owner.Flush()
	owner.Dispose()

	want := []string{"run", "cleanup", "run", "cleanup"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestEffectDisposedStopsTracking(t *testing.T) {
	owner := NewOwner(nil)
	count := NewSignal(0)
	runs := 0

	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			_ = count.Get()
			runs++
			return nil
		})
	})
	owner.Dispose()

	count.Set(1)
	owner.Flush()
	if runs != 1 {
		t.Errorf("disposed effect ran again: runs = %d", runs)
	}
}

func TestEffectWithoutOwnerRunsSynchronously(t *testing.T) {
	count := NewSignal(0)
	var last int

	e := CreateEffect(func() Cleanup {
		last = count.Get()
		return nil
	})
	defer e.Dispose()

	count.Set(3)
	if last != 3 {
		t.Errorf("last = %d, want 3", last)
	}
}

func TestEffectTracksOnlyLatestSources(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	useA := NewSignal(true)
	a := NewSignal(0)
	b := NewSignal(0)
	runs := 0

	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			runs++
			if useA.Get() {
				_ = a.Get()
			} else {
				_ = b.Get()
			}
			return nil
		})
	})

	useA.Set(false)
	owner.Flush()

	a.Set(1)
	if owner.HasPendingEffects() {
		t.Error("effect still subscribed to a stale source")
	}
	b.Set(1)
	owner.Flush()
	if runs != 3 {
		t.Errorf("runs = %d, want 3", runs)
	}
}
