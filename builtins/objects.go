package builtins

import (
	"go-parser/pkg/ast"

	"hexput/value"
)

// dispatchObject implements the Object row of spec.md §4.D. Dispatch exempts
// only the five enumeration methods below from its forbidden-key guard (by
// method name, not by receiver type — any other method name on a tainted
// Object is blocked before reaching here), so each of these does its own
// filtering instead: keys/values/entries skip the forbidden key, isEmpty
// counts only non-forbidden keys, and has reports false for it.
// `{a:1, secret_data:2}.keys()` succeeds, returning only `a`.
func dispatchObject(obj *value.Object, method string, args []value.Value, loc ast.SourceLocation, forbiddenKey string) (value.Value, bool, error) {
	switch method {
	case "keys":
		out := value.Array{}
		for _, k := range obj.Keys() {
			if k == forbiddenKey {
				continue
			}
			out = append(out, k)
		}
		return out, true, nil

	case "values":
		out := value.Array{}
		for _, k := range obj.Keys() {
			if k == forbiddenKey {
				continue
			}
			v, _ := obj.Get(k)
			out = append(out, v)
		}
		return out, true, nil

	case "entries":
		out := value.Array{}
		for _, k := range obj.Keys() {
			if k == forbiddenKey {
				continue
			}
			v, _ := obj.Get(k)
			out = append(out, value.Array{k, v})
		}
		return out, true, nil

	case "isEmpty":
		count := 0
		for _, k := range obj.Keys() {
			if k != forbiddenKey {
				count++
			}
		}
		return count == 0, true, nil

	case "has":
		key, err := argString(args, 0, loc, "has")
		if err != nil {
			return nil, true, err
		}
		if key == forbiddenKey {
			return false, true, nil
		}
		return obj.Has(key), true, nil

	default:
		return nil, false, nil
	}
}
