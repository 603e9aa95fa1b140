package interpreter

import (
	"context"
	"fmt"

	"go-parser/pkg/ast"

	"hexput/builtins"
	herrors "hexput/errors"
	"hexput/value"
)

func (rs *runState) evalExpr(ctx context.Context, expr ast.Expression, ec *ExecutionContext) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		return e.Value, nil
	case *ast.NumberLiteral:
		return e.Value, nil
	case *ast.BooleanLiteral:
		return e.Value, nil
	case *ast.NullLiteral:
		return nil, nil

	case *ast.Identifier:
		v, ok := ec.GetVariable(e.Name)
		if !ok {
			return nil, herrors.ExecutionAt(fmt.Sprintf("undefined variable %q", e.Name), e.Loc)
		}
		return v, nil

	case *ast.BinaryExpression:
		return rs.evalBinary(ctx, e, ec)

	case *ast.UnaryExpression:
		v, err := rs.evalExpr(ctx, e.Operand, ec)
		if err != nil {
			return nil, err
		}
		return !value.Truthy(v), nil

	case *ast.MemberExpression:
		return rs.evalMember(ctx, e, ec)

	case *ast.ArrayExpression:
		out := make(value.Array, 0, len(e.Elements))
		for _, el := range e.Elements {
			v, err := rs.evalExpr(ctx, el, ec)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case *ast.ObjectExpression:
		obj := value.NewObject()
		for _, p := range e.Properties {
			v, err := rs.evalExpr(ctx, p.Value, ec)
			if err != nil {
				return nil, err
			}
			obj.Set(p.Key, v)
		}
		return obj, nil

	case *ast.KeysOfExpression:
		v, err := rs.evalExpr(ctx, e.Object, ec)
		if err != nil {
			return nil, err
		}
		obj, ok := v.(*value.Object)
		if !ok {
			return nil, herrors.ExecutionAt("keysof requires an object", e.Loc)
		}
		out := value.Array{}
		for _, k := range obj.Keys() {
			if k == rs.interp.ForbiddenKey {
				continue
			}
			out = append(out, k)
		}
		return out, nil

	case *ast.AssignmentExpression:
		v, err := rs.evalExpr(ctx, e.Value, ec)
		if err != nil {
			return nil, err
		}
		ec.SetVariable(e.Target, v)
		return v, nil

	case *ast.MemberAssignmentExpression:
		return rs.evalMemberAssignment(ctx, e, ec)

	case *ast.CallExpression:
		return rs.evalCall(ctx, e, ec)

	case *ast.MemberCallExpression:
		return rs.evalMemberCall(ctx, e, ec)

	case *ast.CallbackReference:
		return builtins.NewCallbackReference(e.Name), nil

	case *ast.InlineCallbackExpression:
		ec.SetCallback(e.Name, &Callback{Params: e.Params, Body: e.Body})
		return builtins.NewCallbackReference(e.Name), nil

	default:
		return nil, herrors.ExecutionAt(fmt.Sprintf("unsupported expression %T", expr), expr.Location())
	}
}

// evalBinary implements spec.md §4.E's Binary row: And/Or short-circuit on
// truthiness and always yield Bool; arithmetic is Number-only except Plus,
// which also concatenates when either side is a String; comparisons are
// defined only on (Number,Number) and (String,String); Equal/NotEqual
// follow value.Equal (mismatched types are simply unequal, never an error).
func (rs *runState) evalBinary(ctx context.Context, e *ast.BinaryExpression, ec *ExecutionContext) (value.Value, error) {
	if e.Op == ast.OpAnd || e.Op == ast.OpOr {
		left, err := rs.evalExpr(ctx, e.Left, ec)
		if err != nil {
			return nil, err
		}
		leftTruthy := value.Truthy(left)
		if e.Op == ast.OpAnd && !leftTruthy {
			return false, nil
		}
		if e.Op == ast.OpOr && leftTruthy {
			return true, nil
		}
		right, err := rs.evalExpr(ctx, e.Right, ec)
		if err != nil {
			return nil, err
		}
		return value.Truthy(right), nil
	}

	left, err := rs.evalExpr(ctx, e.Left, ec)
	if err != nil {
		return nil, err
	}
	right, err := rs.evalExpr(ctx, e.Right, ec)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case ast.OpEqual:
		return value.Equal(left, right), nil
	case ast.OpNotEqual:
		return !value.Equal(left, right), nil

	case ast.OpPlus:
		lf, lok := left.(float64)
		rf, rok := right.(float64)
		if lok && rok {
			return lf + rf, nil
		}
		_, lIsStr := left.(string)
		_, rIsStr := right.(string)
		if lIsStr || rIsStr {
			return value.CanonicalString(left) + value.CanonicalString(right), nil
		}
		return nil, herrors.ExecutionAt("+ requires two numbers or a string operand", e.Loc)

	case ast.OpMinus, ast.OpMultiply, ast.OpDivide:
		lf, lok := left.(float64)
		rf, rok := right.(float64)
		if !lok || !rok {
			return nil, herrors.ExecutionAt(fmt.Sprintf("%s requires two numbers", e.Op), e.Loc)
		}
		switch e.Op {
		case ast.OpMinus:
			return lf - rf, nil
		case ast.OpMultiply:
			return lf * rf, nil
		default: // OpDivide
			if rf == 0 {
				return nil, herrors.ExecutionAt("division by zero", e.Loc)
			}
			return lf / rf, nil
		}

	case ast.OpLess, ast.OpGreater, ast.OpLessEqual, ast.OpGreaterEqual:
		if lf, lok := left.(float64); lok {
			rf, rok := right.(float64)
			if !rok {
				return nil, herrors.ExecutionAt("comparison requires operands of the same type", e.Loc)
			}
			return compareNumbers(e.Op, lf, rf), nil
		}
		if ls, lok := left.(string); lok {
			rs2, rok := right.(string)
			if !rok {
				return nil, herrors.ExecutionAt("comparison requires operands of the same type", e.Loc)
			}
			return compareStrings(e.Op, ls, rs2), nil
		}
		return nil, herrors.ExecutionAt("comparison is only defined on numbers or strings", e.Loc)

	default:
		return nil, herrors.ExecutionAt(fmt.Sprintf("unsupported operator %s", e.Op), e.Loc)
	}
}

func compareNumbers(op ast.Operator, l, r float64) bool {
	switch op {
	case ast.OpLess:
		return l < r
	case ast.OpGreater:
		return l > r
	case ast.OpLessEqual:
		return l <= r
	default: // OpGreaterEqual
		return l >= r
	}
}

func compareStrings(op ast.Operator, l, r string) bool {
	switch op {
	case ast.OpLess:
		return l < r
	case ast.OpGreater:
		return l > r
	case ast.OpLessEqual:
		return l <= r
	default: // OpGreaterEqual
		return l >= r
	}
}

// evalMember implements spec.md §4.E's Member row for a read: Object
// fetches by string key (missing → Null), Array indexes by a non-negative
// finite numeric key (out of bounds → Null), any other receiver errors.
// The forbidden key is rejected in any form before the fetch runs.
func (rs *runState) evalMember(ctx context.Context, e *ast.MemberExpression, ec *ExecutionContext) (value.Value, error) {
	obj, err := rs.evalExpr(ctx, e.Object, ec)
	if err != nil {
		return nil, err
	}
	key, numericKey, isNumeric, err := rs.resolvePropertyKey(ctx, e.Computed, e.PropertyName, e.PropertyExpr, ec, e.Loc)
	if err != nil {
		return nil, err
	}
	if !isNumeric && key == rs.interp.ForbiddenKey {
		return nil, herrors.ForbiddenKeyAt(e.Loc)
	}

	switch o := obj.(type) {
	case *value.Object:
		if isNumeric {
			key = value.CanonicalString(numericKey)
		}
		if key == rs.interp.ForbiddenKey {
			return nil, herrors.ForbiddenKeyAt(e.Loc)
		}
		v, ok := o.Get(key)
		if !ok {
			return nil, nil
		}
		return v, nil

	case value.Array:
		idx, ok := arrayIndex(key, numericKey, isNumeric)
		if !ok {
			return nil, herrors.ExecutionAt("array index must be a non-negative finite number", e.Loc)
		}
		if idx < 0 || idx >= len(o) {
			return nil, nil
		}
		return o[idx], nil

	default:
		return nil, herrors.ExecutionAt("member access requires an object or array", e.Loc)
	}
}

// resolvePropertyKey evaluates a static-or-computed property, returning
// either a string key or (for a numeric computed property, used to index
// arrays) the raw number.
func (rs *runState) resolvePropertyKey(ctx context.Context, computed bool, name string, expr ast.Expression, ec *ExecutionContext, loc ast.SourceLocation) (key string, numeric float64, isNumeric bool, err error) {
	if !computed {
		return name, 0, false, nil
	}
	v, err := rs.evalExpr(ctx, expr, ec)
	if err != nil {
		return "", 0, false, err
	}
	switch t := v.(type) {
	case string:
		return t, 0, false, nil
	case float64:
		return "", t, true, nil
	default:
		return "", 0, false, herrors.ExecutionAt("computed property must be a string or number", loc)
	}
}

func arrayIndex(key string, numeric float64, isNumeric bool) (int, bool) {
	if isNumeric {
		if mathIsNonNegFinite(numeric) {
			return int(numeric), true
		}
		return 0, false
	}
	return parseNonNegInt(key)
}
