// Package builtins implements hexput's pure, host-free methods on JSON
// values (spec.md §4.D): Dispatch tries a receiver/method pair and reports
// whether it was handled at all, so the interpreter knows whether to fall
// through to a host call.
package builtins

import (
	"go-parser/pkg/ast"

	herrors "hexput/errors"
	"hexput/value"
)

func forbiddenKeyErr(loc ast.SourceLocation) error {
	return herrors.ForbiddenKeyAt(loc)
}

func argError(loc ast.SourceLocation, msg string) error {
	return herrors.ExecutionAt(msg, loc)
}

// CallbackRefType is the "type" discriminator on the wire shape produced
// for a CallbackReference value (spec.md §4.E, §9): kept on the wire for
// host compatibility, but treated as an opaque token everywhere inside
// this module.
const CallbackRefType = "callback_reference"

// CallbackRefHash is the fixed, constant "hash" field of that shape.
const CallbackRefHash = "__callback_ref_constant"

// AsyncOpKey is the reserved key naming a deferred higher-order-method
// descriptor (spec.md §4.D, §9).
const AsyncOpKey = "__builtin_async_op"

// NewCallbackReference builds the wire shape for a named callback
// reference.
func NewCallbackReference(name string) *value.Object {
	o := value.NewObject()
	o.Set("type", CallbackRefType)
	o.Set("name", name)
	o.Set("hash", CallbackRefHash)
	return o
}

// AsyncDescriptor reports whether v is a deferred higher-order-method
// descriptor and, if so, returns the underlying *value.Object so the
// interpreter can read its fields (spec.md §4.D, §4.E).
func AsyncDescriptor(v value.Value) (*value.Object, bool) {
	obj, ok := v.(*value.Object)
	if !ok {
		return nil, false
	}
	if _, has := obj.Get(AsyncOpKey); !has {
		return nil, false
	}
	return obj, true
}

// objectEnumerationMethods are the only Object methods Open Question (f)
// exempts from the blanket forbidden-key guard — each does its own
// per-key filtering in dispatchObject instead of failing outright.
var objectEnumerationMethods = map[string]bool{
	"keys":    true,
	"values":  true,
	"entries": true,
	"isEmpty": true,
	"has":     true,
}

// CallbackNameFromReference extracts the callback name from a value only
// if it has the exact CallbackReference wire shape (spec.md §9: "only
// shapes with the matching type are accepted").
func CallbackNameFromReference(v value.Value) (string, bool) {
	obj, ok := v.(*value.Object)
	if !ok {
		return "", false
	}
	typ, ok := obj.Get("type")
	if !ok || typ != CallbackRefType {
		return "", false
	}
	name, ok := obj.Get("name")
	if !ok {
		return "", false
	}
	s, ok := name.(string)
	return s, ok
}

// Dispatch tries to run method on recv with args. It returns (result, true,
// nil) on success, (nil, false, nil) when the receiver/method pair is not a
// built-in at all (the caller should then try the host), or (nil, true,
// err) when it is a built-in but failed (wrong arity, wrong type, index out
// of range, forbidden-key access, ...).
//
// The forbidden-key guard (spec.md §4.D, §9) runs before any dispatch except
// for the five Object enumeration methods named in objectEnumerationMethods:
// if recv's transitive structure contains forbiddenKey, every other method
// call on it fails, regardless of receiver type. Those five methods are
// exempted by name, not by receiver type, because spec.md §3 requires them
// specifically to silently filter the forbidden key rather than fail
// outright (dispatchObject applies that filtering directly); any other,
// unrecognized method name on a tainted Object must still be blocked here
// before Dispatch reports it unhandled and the interpreter falls through to
// the host with the tainted receiver as an argument.
func Dispatch(recv value.Value, method string, args []value.Value, loc ast.SourceLocation, forbiddenKey string) (value.Value, bool, error) {
	_, isObject := recv.(*value.Object)
	exempt := isObject && objectEnumerationMethods[method]
	if !exempt && value.ContainsForbiddenKey(recv, forbiddenKey) {
		return nil, true, forbiddenKeyErr(loc)
	}

	switch r := recv.(type) {
	case string:
		return dispatchString(r, method, args, loc)
	case value.Array:
		return dispatchArray(r, method, args, loc)
	case *value.Object:
		return dispatchObject(r, method, args, loc, forbiddenKey)
	case float64:
		return dispatchNumber(r, method, args, loc)
	case bool:
		return dispatchBool(r, method, args, loc)
	case nil:
		return dispatchNull(method, args, loc)
	default:
		return nil, false, nil
	}
}
