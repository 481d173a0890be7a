package expect

import (
	"errors"
	"fmt"
)

// AssertionError reports an expression that evaluated false at assert time.
// It always carries the full rendered state of the expression, never a bare
// boolean, so the unmet leaves are identifiable from the failure alone.
type AssertionError struct {
	// Expr is the structure of the expression without truth markers.
	Expr string

	// Rendered is the expression at the moment of failure, each leaf
	// painted by its truth.
	Rendered string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion failed: %s", e.Rendered)
}

// IsAssertionError reports whether err is an unsatisfied-assertion failure.
// Uses errors.As to handle wrapped errors.
func IsAssertionError(err error) bool {
	var ae *AssertionError
	return errors.As(err, &ae)
}

// PatternError reports a malformed regular expression passed to
// MatchesPattern.
type PatternError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying regexp compile error.
func (e *PatternError) Unwrap() error {
	return e.Err
}
