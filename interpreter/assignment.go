package interpreter

import (
	"context"
	"math"
	"strconv"

	"go-parser/pkg/ast"

	herrors "hexput/errors"
	"hexput/value"
)

// resolveStringKey evaluates a static-or-computed property into the string
// key MemberAssignment writes (spec.md §4.E: "determine the final property
// name (static or evaluated)").
func (rs *runState) resolveStringKey(ctx context.Context, computed bool, name string, expr ast.Expression, ec *ExecutionContext, loc ast.SourceLocation) (string, error) {
	if !computed {
		return name, nil
	}
	v, err := rs.evalExpr(ctx, expr, ec)
	if err != nil {
		return "", err
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return value.CanonicalString(t), nil
	default:
		return "", herrors.ExecutionAt("computed property must be a string or number", loc)
	}
}

// collectPath walks a chain of MemberExpressions down to a root Identifier,
// accumulating the string key at each level. ok is false when expr is not
// ultimately rooted at a bare Identifier (spec.md §4.E's third
// MemberAssignment case: "any other LHS object expression").
func (rs *runState) collectPath(ctx context.Context, expr ast.Expression, ec *ExecutionContext) (root string, path []string, ok bool, err error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Name, nil, true, nil
	case *ast.MemberExpression:
		root, parentPath, ok, err := rs.collectPath(ctx, e.Object, ec)
		if !ok || err != nil {
			return "", nil, ok, err
		}
		key, err := rs.resolveStringKey(ctx, e.Computed, e.PropertyName, e.PropertyExpr, ec, e.Loc)
		if err != nil {
			return "", nil, true, err
		}
		return root, append(parentPath, key), true, nil
	default:
		return "", nil, false, nil
	}
}

// evalMemberAssignment implements spec.md §4.E's MemberAssignment row.
func (rs *runState) evalMemberAssignment(ctx context.Context, e *ast.MemberAssignmentExpression, ec *ExecutionContext) (value.Value, error) {
	finalKey, err := rs.resolveStringKey(ctx, e.Computed, e.PropertyName, e.PropertyExpr, ec, e.Loc)
	if err != nil {
		return nil, err
	}
	if finalKey == rs.interp.ForbiddenKey {
		return nil, herrors.ForbiddenKeyAt(e.Loc)
	}
	val, err := rs.evalExpr(ctx, e.Value, ec)
	if err != nil {
		return nil, err
	}

	root, path, rooted, err := rs.collectPath(ctx, e.Object, ec)
	if err != nil {
		return nil, err
	}

	if rooted {
		fullPath := append(path, finalKey)
		cur, _ := ec.GetVariable(root)
		updated, err := setPath(cur, fullPath, val, e.Loc)
		if err != nil {
			return nil, err
		}
		ec.AssignExisting(root, updated)
		return val, nil
	}

	// Any other LHS object expression: mutate a local copy, visible only
	// through the returned value (no write-back).
	base, err := rs.evalExpr(ctx, e.Object, ec)
	if err != nil {
		return nil, err
	}
	clone, err := cloneForAssignment(base, e.Loc)
	if err != nil {
		return nil, err
	}
	return setOneLevel(clone, finalKey, val, e.Loc)
}

func cloneForAssignment(v value.Value, loc ast.SourceLocation) (value.Value, error) {
	switch t := v.(type) {
	case *value.Object:
		return t.Clone(), nil
	case value.Array:
		c := make(value.Array, len(t))
		copy(c, t)
		return c, nil
	case nil:
		return nil, nil
	default:
		return nil, herrors.ExecutionAt("member assignment requires an object or array", loc)
	}
}

// setPath writes val at path inside cur, rebuilding bottom-up and
// returning the (possibly new) root value — required since Go slices
// cannot be extended in place and remain visible through the parent
// (spec.md §4.E's autovivification rule).
func setPath(cur value.Value, path []string, val value.Value, loc ast.SourceLocation) (value.Value, error) {
	if len(path) == 0 {
		return val, nil
	}
	key := path[0]
	if len(path) == 1 {
		return setOneLevel(cur, key, val, loc)
	}
	child := getChild(cur, key)
	newChild, err := setPath(child, path[1:], val, loc)
	if err != nil {
		return nil, err
	}
	return setOneLevel(cur, key, newChild, loc)
}

// setOneLevel writes val under key into cur, autovivifying a missing node
// as an Array when key parses as a non-negative integer and as an Object
// otherwise (spec.md §4.E). Arrays are padded with Null up to the
// required index.
func setOneLevel(cur value.Value, key string, val value.Value, loc ast.SourceLocation) (value.Value, error) {
	switch c := cur.(type) {
	case *value.Object:
		nc := c.Clone()
		nc.Set(key, val)
		return nc, nil

	case value.Array:
		idx, ok := parseNonNegInt(key)
		if !ok {
			return nil, herrors.ExecutionAt("array index must be a non-negative integer", loc)
		}
		na := make(value.Array, len(c))
		copy(na, c)
		if idx >= len(na) {
			for len(na) <= idx {
				na = append(na, nil)
			}
		}
		na[idx] = val
		return na, nil

	case nil:
		if idx, ok := parseNonNegInt(key); ok {
			na := make(value.Array, idx+1)
			na[idx] = val
			return na, nil
		}
		o := value.NewObject()
		o.Set(key, val)
		return o, nil

	default:
		return nil, herrors.ExecutionAt("cannot set a property on a non-object/array value", loc)
	}
}

func getChild(cur value.Value, key string) value.Value {
	switch c := cur.(type) {
	case *value.Object:
		v, _ := c.Get(key)
		return v
	case value.Array:
		if idx, ok := parseNonNegInt(key); ok && idx < len(c) {
			return c[idx]
		}
		return nil
	default:
		return nil
	}
}

func parseNonNegInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func mathIsNonNegFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
}
