// Package reactive provides the signal, effect and owner primitives that the
// region runtime is built on.
//
// Reading a Signal inside an Effect subscribes the effect to that signal.
// Writing the signal marks the effect dirty and schedules it on the Owner
// that created it; the host flushes scheduled effects with
// Owner.RunPendingEffects (once per UI tick or per request).
//
//	owner := reactive.NewOwner(nil)
//	count := reactive.NewSignal(0)
//
//	reactive.WithOwner(owner, func() {
//	    reactive.CreateEffect(func() reactive.Cleanup {
//	        fmt.Println("count:", count.Get())
//	        return func() { fmt.Println("before next run") }
//	    })
//	})
//
//	count.Set(1)
//	owner.RunPendingEffects()
//
// # Owners
//
// Owners form a tree that mirrors the component tree. Disposing an owner
// disposes its children, its effects (running their cleanups) and any
// function registered with OnCleanup. Owners also carry scoped values
// (SetValue/Value) that descendants can look up without a global.
package reactive
