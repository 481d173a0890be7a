package expect

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeT records a fatal report instead of failing the real test, so the
// failure path of Assert can itself be asserted on.
type fakeT struct {
	testing.TB
	failed bool
	msg    string
}

func (f *fakeT) Helper() {}

func (f *fakeT) Fatal(args ...any) {
	f.failed = true
	f.msg = fmt.Sprint(args...)
}

func TestAnd_RequiresBothOperands(t *testing.T) {
	layer := NewLayer()
	one := layer.Matches("one")
	two := layer.Matches("two")
	both := And(one, two)

	layer.Deliver("one")
	assert.False(t, both.Value())

	layer.Deliver("two")
	assert.True(t, both.Value())
	both.Assert(t)

	// A fresh declaration of the same literal starts unmatched again.
	again := layer.Matches("two")
	assert.False(t, again.Value())
}

func TestOr_RequiresEitherOperand(t *testing.T) {
	layer := NewLayer()
	either := Or(layer.Matches("one"), layer.Matches("two"))

	assert.False(t, either.Value())
	layer.Deliver("two")
	assert.True(t, either.Value())
}

func TestCombinators_MethodFormsMatchFunctions(t *testing.T) {
	layer := NewLayer()
	a := layer.Matches("a")
	b := layer.Matches("b")
	layer.Deliver("a")

	assert.Equal(t, And(a, b).Value(), a.And(b).Value())
	assert.Equal(t, Or(a, b).Value(), a.Or(b).Value())
	assert.Equal(t, Not(a).Value(), a.Not().Value())
}

func TestEvaluation_BooleanAlgebraLaws(t *testing.T) {
	tests := []struct {
		name             string
		deliverX, deliverY bool
	}{
		{"neither", false, false},
		{"x only", true, false},
		{"y only", false, true},
		{"both", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layer := NewLayer()
			x := layer.Matches("x")
			y := layer.Matches("y")
			if tt.deliverX {
				layer.Deliver("x")
			}
			if tt.deliverY {
				layer.Deliver("y")
			}

			assert.Equal(t, x.Value(), Not(Not(x)).Value(), "double negation")
			assert.Equal(t, x.Value() && y.Value(), And(x, y).Value(), "conjunction")
			assert.Equal(t, x.Value() || y.Value(), Or(x, y).Value(), "disjunction")
			assert.Equal(t, !x.Value(), Not(x).Value(), "negation")
		})
	}
}

func TestReset_MakesLeavesEligibleAgain(t *testing.T) {
	layer := NewLayer()
	a := layer.Matches("x")

	layer.Deliver("x")
	require.True(t, a.Value())

	a.Reset()
	assert.False(t, a.Value())
	Not(a).Assert(t)

	// Non-matching delivery keeps it false; matching delivery latches again.
	layer.Deliver("y")
	assert.False(t, a.Value())
	layer.Deliver("x")
	assert.True(t, a.Value())
	requirePendingInvariant(t, layer)
}

func TestReset_OnUnmatchedLeafIsANoop(t *testing.T) {
	layer := NewLayer()
	a := layer.Matches("x")

	a.Reset()
	a.Reset()
	assert.False(t, a.Value())
	requirePendingInvariant(t, layer)

	layer.Deliver("x")
	assert.True(t, a.Value())
}

func TestReset_SharedLeavesResetInEveryTree(t *testing.T) {
	layer := NewLayer()
	a := layer.Matches("a")
	b := layer.Matches("b")

	// Both composite trees alias leaf a.
	first := And(a, b)
	second := Or(a, Not(b))

	layer.Deliver("a")
	layer.Deliver("b")
	require.True(t, first.Value())
	require.True(t, second.Value())

	// Resetting through one tree clears the shared leaves in the other.
	first.Reset()
	assert.False(t, a.Value())
	assert.False(t, b.Value())
	assert.False(t, first.Value())
	assert.True(t, second.Value(), "Or(false, Not(false)) is true")
	requirePendingInvariant(t, layer)
}

func TestRepeat_ProducesAnIndependentTree(t *testing.T) {
	layer := NewLayer()
	orig := And(layer.Matches("one"), layer.Matches("two"))

	layer.Deliver("one")
	layer.Deliver("two")
	require.True(t, orig.Value())

	repeated := orig.Repeat()
	assert.False(t, repeated.Value(), "repeated tree starts unmatched")
	assert.True(t, orig.Value(), "repeat must not disturb the original")

	// Later deliveries satisfy the repeated leaves without touching the
	// original, and resetting the repeat leaves the original alone.
	layer.Deliver("one")
	layer.Deliver("two")
	assert.True(t, repeated.Value())

	repeated.Reset()
	assert.False(t, repeated.Value())
	assert.True(t, orig.Value())
	requirePendingInvariant(t, layer)
}

func TestRepeat_PreservesStructureAndSpecs(t *testing.T) {
	layer := NewLayer()
	p, err := layer.MatchesPattern(`retry \d+`)
	require.NoError(t, err)
	tree := Or(Not(layer.Matches("fatal")), p)

	repeated := tree.Repeat()
	assert.Equal(t, tree.exprString(), repeated.exprString())

	layer.Deliver("retry 3")
	assert.True(t, repeated.Value(), "repeated pattern leaf must still match by regexp")
}

func TestErr_NilWhenSatisfied(t *testing.T) {
	layer := NewLayer()
	a := layer.Matches("done")
	layer.Deliver("done")

	assert.NoError(t, a.Err())
}

func TestErr_CarriesRenderedExpression(t *testing.T) {
	layer := NewLayer()
	a := layer.Matches("alpha")
	b := layer.Matches("beta")
	layer.Deliver("alpha")

	err := And(a, b).Err()
	require.Error(t, err)
	assert.True(t, IsAssertionError(err))

	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, `("alpha" && "beta")`, ae.Expr)
	assert.Contains(t, ae.Rendered, "alpha")
	assert.Contains(t, ae.Rendered, "beta")
	assert.Contains(t, err.Error(), "assertion failed")
}

func TestAssert_FailsWithDiagnosticReport(t *testing.T) {
	layer := NewLayer()
	a := layer.Matches("alpha")
	b := layer.Matches("beta")
	layer.Deliver("beta")

	ft := &fakeT{TB: t}
	And(a, b).Assert(ft)

	require.True(t, ft.failed)
	assert.Contains(t, ft.msg, "assertion failed")
	assert.Contains(t, ft.msg, "alpha")
}

func TestAssert_PassesSilentlyWhenSatisfied(t *testing.T) {
	layer := NewLayer()
	a := layer.Matches("alpha")
	layer.Deliver("alpha")

	ft := &fakeT{TB: t}
	a.Assert(ft)
	assert.False(t, ft.failed)
}
