package expect

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// leafRecord is one declared expectation: an atomic one-shot latch plus the
// immutable specification it waits on. Records live in the registry arena and
// are shared by every assertion tree that references the leaf's ID.
type leafRecord struct {
	id    string
	latch atomic.Bool
	spec  Spec
}

// registry owns the shared mutable state of the engine: the arena of every
// leaf ever declared, the pending list of leaf IDs still eligible for
// matching, and the global override switch.
//
// Invariant: an ID appears in pending iff its record's latch is false.
// deliver is the only path that flips a latch false->true, and it removes the
// ID in the same critical section; resetLeaf re-inserts on a true->false swap.
type registry struct {
	overrideAll atomic.Bool

	// arena maps leaf ID -> *leafRecord. Append-only: records are never
	// removed or replaced, so evaluation can read it without taking mu.
	arena sync.Map

	mu      sync.Mutex
	pending []string
}

func newRegistry() *registry {
	return &registry{}
}

// declare allocates a fresh leaf for spec and enrolls it for matching.
// Returns the new leaf's ID.
func (r *registry) declare(spec Spec) string {
	rec := &leafRecord{
		id:   uuid.Must(uuid.NewV7()).String(),
		spec: spec,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.arena.Store(rec.id, rec)
	r.pending = append(r.pending, rec.id)
	return rec.id
}

// record looks up a leaf in the arena. A miss means a tree references a leaf
// the registry never declared, which indicates state corruption; that is not
// recoverable and panics.
func (r *registry) record(id string) *leafRecord {
	v, ok := r.arena.Load(id)
	if !ok {
		panic(fmt.Sprintf("expect: unknown leaf %s in assertion tree", id))
	}
	return v.(*leafRecord)
}

// deliver offers payload to every pending leaf. A matching leaf's latch flips
// true and its ID leaves pending in the same critical section, so no leaf can
// be matched twice or missed under concurrent delivery.
//
// The whole scan runs under mu. Matching is a string comparison or a
// compiled-regexp probe; splitting the scan into a snapshot phase would
// reopen a window where a match from before a concurrent Reset could
// re-satisfy the freshly cleared leaf.
func (r *registry) deliver(payload string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.pending[:0]
	for _, id := range r.pending {
		rec := r.record(id)
		if rec.spec.Match(payload) && rec.latch.CompareAndSwap(false, true) {
			continue // matched: drop from pending
		}
		kept = append(kept, id)
	}
	r.pending = kept
}

// value reads the current truth of a leaf, honoring the global override.
// Lock-free: an atomic flag load plus an atomic latch load.
func (r *registry) value(id string) bool {
	if r.overrideAll.Load() {
		return true
	}
	return r.record(id).latch.Load()
}

// resetLeaf clears a leaf's latch and, when the latch was set, re-enrolls the
// leaf for matching. The swap and the re-insert happen under mu so a
// concurrent deliver cannot observe a cleared latch missing from pending, and
// a still-false leaf is never enrolled twice.
func (r *registry) resetLeaf(id string) {
	rec := r.record(id)

	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.latch.Swap(false) {
		r.pending = append(r.pending, id)
	}
}
