package suite

import (
	"fmt"

	"github.com/google/cel-go/cel"
	celast "github.com/google/cel-go/common/ast"
	"github.com/google/cel-go/common/operators"

	"github.com/roach88/logexpect/expect"
)

// lower compiles the assert expression with CEL, using one bool variable per
// declared expectation, and lowers the checked AST onto the engine's
// combinator tree. Only boolean structure is accepted: expectation names,
// &&, ||, ! and parentheses. Anything else CEL would happily evaluate
// (comparisons, literals, ternaries) is rejected so a suite cannot express
// assertions the engine's rendering cannot explain.
func lower(src string, leaves map[string]*expect.Assertion) (*expect.Assertion, error) {
	opts := make([]cel.EnvOption, 0, len(leaves))
	for name := range leaves {
		opts = append(opts, cel.Variable(name, cel.BoolType))
	}
	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("build expression environment: %w", err)
	}

	ast, iss := env.Compile(src)
	if iss != nil && iss.Err() != nil {
		return nil, &ExprError{Expr: src, Err: iss.Err()}
	}
	return lowerNode(ast.NativeRep().Expr(), src, leaves)
}

func lowerNode(e celast.Expr, src string, leaves map[string]*expect.Assertion) (*expect.Assertion, error) {
	switch e.Kind() {
	case celast.IdentKind:
		name := e.AsIdent()
		leaf, ok := leaves[name]
		if !ok {
			// Compile already rejects undeclared variables; this
			// guards against names shadowed by CEL builtins.
			return nil, &ExprError{Expr: src, Err: fmt.Errorf("unknown expectation %q", name)}
		}
		return leaf, nil

	case celast.CallKind:
		call := e.AsCall()
		args := call.Args()
		switch call.FunctionName() {
		case operators.LogicalAnd:
			return lowerBinary(expect.And, args, src, leaves)
		case operators.LogicalOr:
			return lowerBinary(expect.Or, args, src, leaves)
		case operators.LogicalNot:
			child, err := lowerNode(args[0], src, leaves)
			if err != nil {
				return nil, err
			}
			return expect.Not(child), nil
		}
		return nil, &ExprError{
			Expr: src,
			Err:  fmt.Errorf("operator %q is not allowed; only &&, || and ! are supported", call.FunctionName()),
		}

	default:
		return nil, &ExprError{
			Expr: src,
			Err:  fmt.Errorf("only expectation names combined with &&, || and ! are allowed"),
		}
	}
}

func lowerBinary(combine func(a, b *expect.Assertion) *expect.Assertion, args []celast.Expr, src string, leaves map[string]*expect.Assertion) (*expect.Assertion, error) {
	if len(args) != 2 {
		return nil, &ExprError{Expr: src, Err: fmt.Errorf("malformed binary operator with %d operands", len(args))}
	}
	left, err := lowerNode(args[0], src, leaves)
	if err != nil {
		return nil, err
	}
	right, err := lowerNode(args[1], src, leaves)
	if err != nil {
		return nil, err
	}
	return combine(left, right), nil
}
