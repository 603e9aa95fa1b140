package builtins

import (
	"math"
	"strconv"

	"go-parser/pkg/ast"

	"hexput/value"
)

// dispatchNumber implements the Number row of spec.md §4.D.
func dispatchNumber(n float64, method string, args []value.Value, loc ast.SourceLocation) (value.Value, bool, error) {
	switch method {
	case "toString":
		return value.CanonicalString(n), true, nil

	case "toFixed":
		if len(args) < 1 {
			return nil, true, argError(loc, "toFixed requires 1 argument")
		}
		digits, err := argNumber(args[0], loc, "toFixed")
		if err != nil {
			return nil, true, err
		}
		return strconv.FormatFloat(n, 'f', int(digits), 64), true, nil

	case "isInteger":
		return n == math.Trunc(n) && !math.IsInf(n, 0) && !math.IsNaN(n), true, nil

	case "abs":
		return math.Abs(n), true, nil

	default:
		return nil, false, nil
	}
}

// dispatchBool implements the Bool row of spec.md §4.D.
func dispatchBool(b bool, method string, args []value.Value, loc ast.SourceLocation) (value.Value, bool, error) {
	switch method {
	case "toString":
		return value.CanonicalString(b), true, nil
	default:
		return nil, false, nil
	}
}

// dispatchNull implements the Null row of spec.md §4.D: the only method a
// null receiver answers is toString, returning the literal "null".
func dispatchNull(method string, args []value.Value, loc ast.SourceLocation) (value.Value, bool, error) {
	switch method {
	case "toString":
		return "null", true, nil
	default:
		return nil, false, nil
	}
}
