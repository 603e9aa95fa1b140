package interpreter

import (
	"context"

	"go-parser/pkg/ast"

	"hexput/builtins"
	herrors "hexput/errors"
	"hexput/value"
)

// evalCall implements spec.md §4.E's Call row: a local callback wins over
// a host call.
func (rs *runState) evalCall(ctx context.Context, e *ast.CallExpression, ec *ExecutionContext) (value.Value, error) {
	args, err := rs.evalArgs(ctx, e.Args, ec)
	if err != nil {
		return nil, err
	}
	if cb, ok := ec.GetCallback(e.Callee); ok {
		return rs.callCallback(ctx, cb, args, ec)
	}
	return rs.callHost(ctx, e.Callee, args, e.Loc)
}

// evalMemberCall implements spec.md §4.E's MemberCall row: try a built-in
// first, then fall through to the host with the receiver prepended to args.
func (rs *runState) evalMemberCall(ctx context.Context, e *ast.MemberCallExpression, ec *ExecutionContext) (value.Value, error) {
	obj, err := rs.evalExpr(ctx, e.Object, ec)
	if err != nil {
		return nil, err
	}
	method, err := rs.resolveStringKey(ctx, e.Computed, e.PropertyName, e.PropertyExpr, ec, e.Loc)
	if err != nil {
		return nil, err
	}
	args, err := rs.evalArgs(ctx, e.Args, ec)
	if err != nil {
		return nil, err
	}

	result, handled, err := builtins.Dispatch(obj, method, args, e.Loc, rs.interp.ForbiddenKey)
	if handled {
		if err != nil {
			return nil, err
		}
		if desc, ok := builtins.AsyncDescriptor(result); ok {
			return rs.runAsyncDescriptor(ctx, desc, ec, e.Loc)
		}
		return result, nil
	}

	hostArgs := make([]value.Value, 0, len(args)+1)
	hostArgs = append(hostArgs, obj)
	hostArgs = append(hostArgs, args...)
	return rs.callHost(ctx, method, hostArgs, e.Loc)
}

func (rs *runState) evalArgs(ctx context.Context, exprs []ast.Expression, ec *ExecutionContext) ([]value.Value, error) {
	out := make([]value.Value, 0, len(exprs))
	for _, a := range exprs {
		v, err := rs.evalExpr(ctx, a, ec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// callHost performs the existence probe and, if the host reports the
// function exists, the full call (spec.md §4.E, §4.F).
func (rs *runState) callHost(ctx context.Context, name string, args []value.Value, loc ast.SourceLocation) (value.Value, error) {
	existsCtx, cancel := context.WithTimeout(ctx, rs.interp.ExistsTimeout)
	exists, err := rs.interp.Host.FunctionExists(existsCtx, name)
	cancel()
	if existsCtx.Err() != nil {
		exists = false
	} else if err != nil {
		return nil, herrors.ExecutionAt(err.Error(), loc)
	}
	if !exists {
		return nil, herrors.FunctionNotFound(name, loc)
	}

	callCtx, cancel := context.WithTimeout(ctx, rs.interp.CallTimeout)
	result, err := rs.interp.Host.CallFunction(callCtx, name, args, rs.secretContext)
	cancel()
	if callCtx.Err() != nil {
		return nil, herrors.Timeout(name, loc)
	}
	if err != nil {
		return nil, herrors.FunctionCallFailed(name, err.Error(), loc)
	}
	return result, nil
}

// callCallback implements spec.md §4.E's callback execution rule: a child
// context rooted at the *caller's* active frame (dynamic scoping, per
// `original_source/hexput-runtime/src/handler.rs`'s `parent_context`
// threading — not the callback's declaration-time frame), missing
// arguments error, extra arguments are ignored, and a surfacing `return`
// unwraps to its value while every other signal (or running off the end)
// yields Null.
func (rs *runState) callCallback(ctx context.Context, cb *Callback, args []value.Value, callerCtx *ExecutionContext) (value.Value, error) {
	if len(args) < len(cb.Params) {
		return nil, herrors.Execution("callback called with too few arguments")
	}
	child := NewChildContext(callerCtx)
	for i, p := range cb.Params {
		child.SetVariable(p, args[i])
	}
	outcome, err := rs.execBlock(ctx, cb.Body, child)
	if err != nil {
		return nil, err
	}
	if outcome.Signal == SignalReturn {
		return outcome.Value, nil
	}
	return nil, nil
}

// runAsyncDescriptor performs the higher-order iteration pattern locally,
// resolving the named callback through local callback execution — never
// through the host (spec.md §4.E).
func (rs *runState) runAsyncDescriptor(ctx context.Context, desc *value.Object, ec *ExecutionContext, loc ast.SourceLocation) (value.Value, error) {
	op, _ := desc.Get(builtins.AsyncOpKey)
	opName, _ := op.(string)
	cbNameV, _ := desc.Get("callback_name")
	cbName, _ := cbNameV.(string)
	arrV, _ := desc.Get("array")
	arr, _ := arrV.(value.Array)

	// The callback name was captured from a CallbackReference built at the
	// call site, so it resolves the same way a bare Call would: by lookup
	// from the ExecutionContext active at that call site, and each
	// invocation below threads that same context in as the callee's dynamic
	// parent frame.
	cb, ok := ec.GetCallback(cbName)
	if !ok {
		return nil, herrors.ExecutionAt("callback reference does not resolve to a declared callback", loc)
	}

	switch opName {
	case "map":
		out := make(value.Array, len(arr))
		for i, el := range arr {
			v, err := rs.callCallback(ctx, cb, []value.Value{el, float64(i)}, ec)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case "filter":
		out := value.Array{}
		for i, el := range arr {
			v, err := rs.callCallback(ctx, cb, []value.Value{el, float64(i)}, ec)
			if err != nil {
				return nil, err
			}
			if value.Truthy(v) {
				out = append(out, el)
			}
		}
		return out, nil

	case "forEach":
		for i, el := range arr {
			if _, err := rs.callCallback(ctx, cb, []value.Value{el, float64(i)}, ec); err != nil {
				return nil, err
			}
		}
		return nil, nil

	case "reduce":
		var acc value.Value
		start := 0
		if hasInit, _ := desc.Get("has_initial"); hasInit == true {
			acc, _ = desc.Get("initial_value")
		} else {
			if len(arr) == 0 {
				return nil, herrors.ExecutionAt("reduce of empty array with no initial value", loc)
			}
			acc = arr[0]
			start = 1
		}
		for i := start; i < len(arr); i++ {
			v, err := rs.callCallback(ctx, cb, []value.Value{acc, arr[i], float64(i)}, ec)
			if err != nil {
				return nil, err
			}
			acc = v
		}
		return acc, nil

	case "find":
		for i, el := range arr {
			v, err := rs.callCallback(ctx, cb, []value.Value{el, float64(i)}, ec)
			if err != nil {
				return nil, err
			}
			if value.Truthy(v) {
				return el, nil
			}
		}
		return nil, nil

	case "findIndex":
		for i, el := range arr {
			v, err := rs.callCallback(ctx, cb, []value.Value{el, float64(i)}, ec)
			if err != nil {
				return nil, err
			}
			if value.Truthy(v) {
				return float64(i), nil
			}
		}
		return float64(-1), nil

	case "some":
		for i, el := range arr {
			v, err := rs.callCallback(ctx, cb, []value.Value{el, float64(i)}, ec)
			if err != nil {
				return nil, err
			}
			if value.Truthy(v) {
				return true, nil
			}
		}
		return false, nil

	case "every":
		for i, el := range arr {
			v, err := rs.callCallback(ctx, cb, []value.Value{el, float64(i)}, ec)
			if err != nil {
				return nil, err
			}
			if !value.Truthy(v) {
				return false, nil
			}
		}
		return true, nil

	default:
		return nil, herrors.ExecutionAt("unknown deferred operation "+opName, loc)
	}
}
