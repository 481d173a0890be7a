package expect

import (
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// Spec is an immutable match specification attached to a leaf expectation.
type Spec interface {
	// Match reports whether payload satisfies the specification.
	Match(payload string) bool

	// String returns the literal or pattern source, used for diagnostic
	// rendering.
	String() string
}

// literalSpec matches by string equality. Both sides are NFC-normalized so
// that visually identical payloads compare equal regardless of how the
// producer composed its code points.
type literalSpec struct {
	text string
}

func newLiteralSpec(s string) literalSpec {
	return literalSpec{text: norm.NFC.String(s)}
}

func (l literalSpec) Match(payload string) bool {
	return l.text == norm.NFC.String(payload)
}

func (l literalSpec) String() string {
	return l.text
}

// patternSpec matches payloads against a compiled regular expression.
type patternSpec struct {
	re *regexp.Regexp
}

// newPatternSpec compiles expr eagerly. A malformed pattern is reported here
// as a *PatternError, never downgraded to a literal comparison.
func newPatternSpec(expr string) (patternSpec, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return patternSpec{}, &PatternError{Pattern: expr, Err: err}
	}
	return patternSpec{re: re}, nil
}

func (p patternSpec) Match(payload string) bool {
	return p.re.MatchString(payload)
}

func (p patternSpec) String() string {
	return p.re.String()
}
