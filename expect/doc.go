// Package expect is an in-process assertion engine for log and trace events.
//
// Test code declares expectations ("a line matching X will eventually be
// emitted") against a Layer, the event pipeline offers every emitted payload
// to the layer, and the test evaluates the expectations whenever it likes --
// without re-scanning historical output. Each expectation is a one-shot
// latch: it flips true on the first matching delivery and stays true until
// explicitly reset.
//
// # Usage
//
// Declare expectations, deliver events, assert:
//
//	layer := expect.NewLayer()
//	a := layer.Matches("cache warmed")
//	b := layer.Matches("server listening")
//
//	layer.Deliver("cache warmed")
//	layer.Deliver("server listening")
//
//	expect.And(a, b).Assert(t)
//
// Expectations compose into boolean expression trees with And, Or and Not.
// A failed Assert reports the whole expression with each leaf colored by its
// current truth, so the unmet expectations are identifiable from the failure
// message alone.
//
// # Lifecycle
//
// Reset clears a tree's leaves back to unmatched and re-enrolls them for
// future matching; leaves shared between trees (via combinators) are reset in
// both. Repeat produces a structurally identical tree with brand-new leaves
// that share no state with the original.
//
// # Concurrency
//
// The engine is purely reactive: all work happens on whichever goroutine
// calls Deliver, Value, Assert, Reset or Repeat. Deliver may be called
// concurrently from any number of goroutines while test code evaluates or
// resets from another; each leaf's false->true transition happens exactly
// once per reset generation.
//
// # Ordering caveat
//
// An expectation only observes events delivered after its own declaration,
// and the engine tracks "has matched at least once since last reset", never
// the order of matches across leaves.
package expect
