package expect

import "testing"

type nodeKind int

const (
	leafNode nodeKind = iota
	andNode
	orNode
	notNode
)

// Assertion is an immutable boolean expression over leaf expectations.
// Combinators allocate new parent nodes and alias operand leaves; no truth is
// cached above leaf level, so Value is always a pure function of the current
// latch states (or the layer's override switch).
//
// Leaf nodes identify their expectation by stable ID plus a handle to the
// owning registry, never by a raw pointer into another tree.
type Assertion struct {
	kind  nodeKind
	reg   *registry // leaf nodes only
	leaf  string    // leaf nodes only: ID in the registry arena
	left  *Assertion
	right *Assertion // and/or only
}

func leafAssertion(reg *registry, id string) *Assertion {
	return &Assertion{kind: leafNode, reg: reg, leaf: id}
}

// And returns the conjunction of a and b. Leaves are shared, not copied:
// resetting the result resets the operands' leaves too.
func And(a, b *Assertion) *Assertion {
	return &Assertion{kind: andNode, left: a, right: b}
}

// Or returns the disjunction of a and b. Leaves are shared, as with And.
func Or(a, b *Assertion) *Assertion {
	return &Assertion{kind: orNode, left: a, right: b}
}

// Not returns the negation of a.
func Not(a *Assertion) *Assertion {
	return &Assertion{kind: notNode, left: a}
}

// And is the method form of the And combinator.
func (a *Assertion) And(b *Assertion) *Assertion { return And(a, b) }

// Or is the method form of the Or combinator.
func (a *Assertion) Or(b *Assertion) *Assertion { return Or(a, b) }

// Not is the method form of the Not combinator.
func (a *Assertion) Not() *Assertion { return Not(a) }

// Value reports the current truth of the expression. Both operands of a
// conjunction or disjunction are always evaluated; leaves are side-effect-free
// reads, so short-circuiting would change nothing observable.
func (a *Assertion) Value() bool {
	switch a.kind {
	case leafNode:
		return a.reg.value(a.leaf)
	case andNode:
		l, r := a.left.Value(), a.right.Value()
		return l && r
	case orNode:
		l, r := a.left.Value(), a.right.Value()
		return l || r
	default: // notNode
		return !a.left.Value()
	}
}

// Err returns nil when the expression currently evaluates true, otherwise an
// *AssertionError carrying the rendered state of the whole expression at the
// moment of the call.
func (a *Assertion) Err() error {
	if a.Value() {
		return nil
	}
	return &AssertionError{
		Expr:     a.exprString(),
		Rendered: a.Render(),
	}
}

// Assert fails the test when the expression evaluates false, reporting the
// rendered expression with each leaf colored by its truth.
func (a *Assertion) Assert(t testing.TB) {
	t.Helper()
	if err := a.Err(); err != nil {
		t.Fatal(err)
	}
}

// Reset clears every leaf reachable from the expression back to unmatched and
// re-enrolls previously satisfied leaves for future matching. Leaves shared
// with other trees are reset there too; that aliasing is intentional.
func (a *Assertion) Reset() {
	switch a.kind {
	case leafNode:
		a.reg.resetLeaf(a.leaf)
	case notNode:
		a.left.Reset()
	default:
		a.left.Reset()
		a.right.Reset()
	}
}

// Repeat returns a structurally identical expression whose leaves are brand
// new: same specifications, fresh latches, freshly enrolled for matching.
// The result shares no state with the receiver, so evaluating, delivering to,
// or resetting one never affects the other.
func (a *Assertion) Repeat() *Assertion {
	switch a.kind {
	case leafNode:
		rec := a.reg.record(a.leaf)
		return leafAssertion(a.reg, a.reg.declare(rec.spec))
	case andNode:
		return And(a.left.Repeat(), a.right.Repeat())
	case orNode:
		return Or(a.left.Repeat(), a.right.Repeat())
	default:
		return Not(a.left.Repeat())
	}
}
