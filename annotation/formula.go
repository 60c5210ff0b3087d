package annotation

import (
	"fmt"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ============================================================================
// FORMULA EVALUATION
// ============================================================================
// A formula layer's expression is evaluated once per x value with the
// variable x bound to the numeric form of that value (epoch millis for
// temporal axes, the value itself for numeric axes, the ordinal index
// for category axes).
// ============================================================================

// Formula is a compiled annotation expression.
type Formula struct {
	program *vm.Program
}

// CompileFormula compiles an expression with x as its sole variable.
func CompileFormula(expression string) (*Formula, error) {
	program, err := expr.Compile(expression,
		expr.Env(map[string]any{"x": float64(0)}),
		expr.AsFloat64(),
	)
	if err != nil {
		return nil, fmt.Errorf("compile formula %q: %w", expression, err)
	}
	return &Formula{program: program}, nil
}

// Eval computes the formula at one x value.
func (f *Formula) Eval(x float64) (float64, error) {
	out, err := expr.Run(f.program, map[string]any{"x": x})
	if err != nil {
		return 0, err
	}
	v, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("formula returned %T, want float64", out)
	}
	return v, nil
}

// NumericX maps an x-domain value to the number the formula sees.
func NumericX(x any, ordinal int) float64 {
	switch v := x.(type) {
	case time.Time:
		return float64(v.UnixMilli())
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return float64(ordinal)
	}
}
