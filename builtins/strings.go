package builtins

import (
	"fmt"
	"strings"

	"go-parser/pkg/ast"

	"hexput/value"
)

// dispatchString implements the String row of spec.md §4.D's method
// table. Indices operate on code points (runes), per §9 Open Question a.
func dispatchString(s string, method string, args []value.Value, loc ast.SourceLocation) (value.Value, bool, error) {
	runes := []rune(s)

	switch method {
	case "len", "length":
		return float64(len(runes)), true, nil

	case "isEmpty":
		return len(runes) == 0, true, nil

	case "substring":
		if len(args) < 1 {
			return nil, true, argError(loc, "substring requires at least 1 argument")
		}
		start, err := argNumber(args[0], loc, "substring")
		if err != nil {
			return nil, true, err
		}
		end := float64(len(runes))
		if len(args) > 1 {
			end, err = argNumber(args[1], loc, "substring")
			if err != nil {
				return nil, true, err
			}
		}
		si, ei, err := clampRange(start, end, len(runes), loc)
		if err != nil {
			return nil, true, err
		}
		return string(runes[si:ei]), true, nil

	case "toLowerCase":
		return strings.ToLower(s), true, nil

	case "toUpperCase":
		return strings.ToUpper(s), true, nil

	case "trim":
		return strings.TrimSpace(s), true, nil

	case "contains", "includes":
		needle, err := argString(args, 0, loc, "contains")
		if err != nil {
			return nil, true, err
		}
		return strings.Contains(s, needle), true, nil

	case "startsWith":
		needle, err := argString(args, 0, loc, "startsWith")
		if err != nil {
			return nil, true, err
		}
		return strings.HasPrefix(s, needle), true, nil

	case "endsWith":
		needle, err := argString(args, 0, loc, "endsWith")
		if err != nil {
			return nil, true, err
		}
		return strings.HasSuffix(s, needle), true, nil

	case "indexOf":
		needle, err := argString(args, 0, loc, "indexOf")
		if err != nil {
			return nil, true, err
		}
		byteIdx := strings.Index(s, needle)
		if byteIdx < 0 {
			return float64(-1), true, nil
		}
		return float64(len([]rune(s[:byteIdx]))), true, nil

	case "split":
		sep, err := argString(args, 0, loc, "split")
		if err != nil {
			return nil, true, err
		}
		parts := strings.Split(s, sep)
		out := make(value.Array, len(parts))
		for i, p := range parts {
			out[i] = p
		}
		return out, true, nil

	case "replace":
		if len(args) < 2 {
			return nil, true, argError(loc, "replace requires 2 arguments")
		}
		from, ok := args[0].(string)
		if !ok {
			return nil, true, argError(loc, "replace: argument 1 must be a string")
		}
		to, ok := args[1].(string)
		if !ok {
			return nil, true, argError(loc, "replace: argument 2 must be a string")
		}
		return strings.ReplaceAll(s, from, to), true, nil

	default:
		return nil, false, nil
	}
}

func argNumber(v value.Value, loc ast.SourceLocation, method string) (float64, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, argError(loc, fmt.Sprintf("%s: expected a number argument", method))
	}
	return f, nil
}

func argString(args []value.Value, idx int, loc ast.SourceLocation, method string) (string, error) {
	if idx >= len(args) {
		return "", argError(loc, fmt.Sprintf("%s requires %d argument(s)", method, idx+1))
	}
	s, ok := args[idx].(string)
	if !ok {
		return "", argError(loc, fmt.Sprintf("%s: argument %d must be a string", method, idx+1))
	}
	return s, nil
}

// clampRange converts a [start,end) code-point range to valid Go slice
// indices: a start below zero or past n is rejected, end is clamped to n,
// and an end below start is raised to start (an empty range).
func clampRange(start, end float64, n int, loc ast.SourceLocation) (int, int, error) {
	si := int(start)
	ei := int(end)
	if si < 0 || si > n {
		return 0, 0, argError(loc, "substring: start index out of range")
	}
	if ei > n {
		ei = n
	}
	if ei < si {
		ei = si
	}
	return si, ei, nil
}
