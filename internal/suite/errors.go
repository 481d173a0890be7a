package suite

import "fmt"

// ValidationError reports a suite-level rule violation with the offending
// field path.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SchemaError reports a document that does not satisfy the suite schema.
// Details carries the schema checker's full diagnostic output.
type SchemaError struct {
	Details string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("suite does not match schema:\n%s", e.Details)
}

// ExprError reports an assert expression that could not be compiled or that
// uses constructs outside the boolean subset.
type ExprError struct {
	Expr string
	Err  error
}

// Error implements the error interface.
func (e *ExprError) Error() string {
	return fmt.Sprintf("invalid assert expression %q: %v", e.Expr, e.Err)
}

// Unwrap returns the underlying compile or lowering error.
func (e *ExprError) Unwrap() error {
	return e.Err
}
