package builtins

import (
	"strings"

	"go-parser/pkg/ast"

	"hexput/value"
)

var higherOrderOps = map[string]bool{
	"map": true, "filter": true, "forEach": true, "reduce": true,
	"find": true, "findIndex": true, "some": true, "every": true,
}

// dispatchArray implements the Array row of spec.md §4.D. Higher-order
// methods (map/filter/forEach/reduce/find/findIndex/some/every) do not run
// here: the builtin dispatcher is synchronous and cannot itself invoke a
// callback that might touch the host, so it returns a deferred descriptor
// object instead, which the interpreter iterates (spec.md §4.E, §9).
func dispatchArray(arr value.Array, method string, args []value.Value, loc ast.SourceLocation) (value.Value, bool, error) {
	if higherOrderOps[method] {
		return buildAsyncDescriptor(arr, method, args, loc)
	}

	switch method {
	case "length", "len":
		return float64(len(arr)), true, nil

	case "isEmpty":
		return len(arr) == 0, true, nil

	case "first":
		if len(arr) == 0 {
			return nil, true, nil
		}
		return arr[0], true, nil

	case "last":
		if len(arr) == 0 {
			return nil, true, nil
		}
		return arr[len(arr)-1], true, nil

	case "includes", "contains":
		if len(args) < 1 {
			return nil, true, argError(loc, "includes requires 1 argument")
		}
		for _, el := range arr {
			if value.Equal(el, args[0]) {
				return true, true, nil
			}
		}
		return false, true, nil

	case "join":
		sep, err := argString(args, 0, loc, "join")
		if err != nil {
			return nil, true, err
		}
		parts := make([]string, len(arr))
		for i, el := range arr {
			parts[i] = value.CanonicalString(el)
		}
		return strings.Join(parts, sep), true, nil

	case "slice":
		start := float64(0)
		end := float64(len(arr))
		var err error
		if len(args) > 0 {
			start, err = argNumber(args[0], loc, "slice")
			if err != nil {
				return nil, true, err
			}
		}
		if len(args) > 1 {
			end, err = argNumber(args[1], loc, "slice")
			if err != nil {
				return nil, true, err
			}
		}
		si, ei, err := clampRange(start, end, len(arr), loc)
		if err != nil {
			return nil, true, err
		}
		out := make(value.Array, ei-si)
		copy(out, arr[si:ei])
		return out, true, nil

	default:
		return nil, false, nil
	}
}

// buildAsyncDescriptor validates the callback argument (must be a
// CallbackReference, spec.md §4.D) and returns the __builtin_async_op
// object the interpreter recognizes (spec.md §4.E).
func buildAsyncDescriptor(arr value.Array, method string, args []value.Value, loc ast.SourceLocation) (value.Value, bool, error) {
	if len(args) < 1 {
		return nil, true, argError(loc, method+" requires a callback argument")
	}
	name, ok := CallbackNameFromReference(args[0])
	if !ok {
		return nil, true, argError(loc, method+": argument must be a callback reference")
	}

	desc := value.NewObject()
	desc.Set(AsyncOpKey, method)
	desc.Set("callback_name", name)
	desc.Set("array", arr)

	if method == "reduce" {
		if len(args) > 1 {
			desc.Set("initial_value", args[1])
			desc.Set("has_initial", true)
		} else {
			desc.Set("has_initial", false)
		}
	}
	return desc, true, nil
}
