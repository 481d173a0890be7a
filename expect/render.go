package expect

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleSatisfied   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleUnsatisfied = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Render returns the colorized infix form of the expression with each leaf
// painted by its current truth: satisfied leaves green, unsatisfied red.
// Conjunction and disjunction render as parenthesized && / ||, negation as a
// prefix !. This is the body of every assertion failure.
func (a *Assertion) Render() string {
	var b strings.Builder
	a.walk(&b, func(lit string, ok bool) string {
		if ok {
			return styleSatisfied.Render(lit)
		}
		return styleUnsatisfied.Render(lit)
	})
	return b.String()
}

// String returns the uncolored infix form with each leaf's current truth
// appended, e.g. ("one":true && "two":false). Suitable for plain logs and
// golden comparison.
func (a *Assertion) String() string {
	var b strings.Builder
	a.walk(&b, func(lit string, ok bool) string {
		return fmt.Sprintf("%s:%t", lit, ok)
	})
	return b.String()
}

// exprString returns the bare structure of the expression without truth
// markers.
func (a *Assertion) exprString() string {
	var b strings.Builder
	a.walk(&b, func(lit string, _ bool) string {
		return lit
	})
	return b.String()
}

// walk renders the tree into b, delegating leaf formatting to leaf, which
// receives the quoted spec source and the leaf's current truth.
func (a *Assertion) walk(b *strings.Builder, leaf func(lit string, ok bool) string) {
	switch a.kind {
	case leafNode:
		lit := fmt.Sprintf("%q", a.reg.record(a.leaf).spec.String())
		b.WriteString(leaf(lit, a.reg.value(a.leaf)))
	case andNode:
		b.WriteByte('(')
		a.left.walk(b, leaf)
		b.WriteString(" && ")
		a.right.walk(b, leaf)
		b.WriteByte(')')
	case orNode:
		b.WriteByte('(')
		a.left.walk(b, leaf)
		b.WriteString(" || ")
		a.right.walk(b, leaf)
		b.WriteByte(')')
	default: // notNode
		b.WriteByte('!')
		a.left.walk(b, leaf)
	}
}
