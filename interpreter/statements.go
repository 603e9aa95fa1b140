package interpreter

import (
	"context"
	"fmt"

	"go-parser/pkg/ast"

	herrors "hexput/errors"
	"hexput/value"
)

// execBlock runs a Block's statements in source order against ec (no new
// frame is created — spec.md §4.E: "Block: sequence of statements;
// propagate any control-flow signal upward"), stopping at the first
// non-SignalNone outcome or error.
func (rs *runState) execBlock(ctx context.Context, b *ast.Block, ec *ExecutionContext) (Outcome, error) {
	for _, stmt := range b.Statements {
		outcome, err := rs.execStatement(ctx, stmt, ec)
		if err != nil {
			return Outcome{}, herrors.WrapAt(err, stmt.Location())
		}
		if outcome.Signal != SignalNone {
			return outcome, nil
		}
	}
	return none, nil
}

func (rs *runState) execStatement(ctx context.Context, stmt ast.Statement, ec *ExecutionContext) (Outcome, error) {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		v, err := rs.evalExpr(ctx, s.Value, ec)
		if err != nil {
			return Outcome{}, err
		}
		ec.SetVariable(s.Name, v)
		return none, nil

	case *ast.ExpressionStatement:
		_, err := rs.evalExpr(ctx, s.Expr, ec)
		return none, err

	case *ast.IfStatement:
		return rs.execIf(ctx, s, ec)

	case *ast.LoopStatement:
		return rs.execLoop(ctx, s, ec)

	case *ast.CallbackDeclaration:
		ec.SetCallback(s.Name, &Callback{Params: s.Params, Body: s.Body})
		return none, nil

	case *ast.ReturnStatement:
		var v value.Value
		if s.Value != nil {
			var err error
			v, err = rs.evalExpr(ctx, s.Value, ec)
			if err != nil {
				return Outcome{}, err
			}
		}
		return Outcome{Signal: SignalReturn, Value: v}, nil

	case *ast.EndStatement:
		return Outcome{Signal: SignalEnd}, nil

	case *ast.ContinueStatement:
		return Outcome{Signal: SignalContinue}, nil

	default:
		return Outcome{}, herrors.ExecutionAt(fmt.Sprintf("unsupported statement %T", stmt), stmt.Location())
	}
}

func (rs *runState) execIf(ctx context.Context, s *ast.IfStatement, ec *ExecutionContext) (Outcome, error) {
	cond, err := rs.evalExpr(ctx, s.Condition, ec)
	if err != nil {
		return Outcome{}, err
	}
	if value.Truthy(cond) {
		return rs.execBlock(ctx, s.Then, ec)
	}
	if s.Else != nil {
		return rs.execBlock(ctx, s.Else, ec)
	}
	return none, nil
}

// execLoop implements spec.md §4.E's Loop row and the control-flow table's
// Loop-iteration/Loop-overall columns: iterate an Array in order or a
// String by code point, binding Binding fresh each iteration in ec.
func (rs *runState) execLoop(ctx context.Context, s *ast.LoopStatement, ec *ExecutionContext) (Outcome, error) {
	iterable, err := rs.evalExpr(ctx, s.Iterable, ec)
	if err != nil {
		return Outcome{}, err
	}

	var elements []value.Value
	switch it := iterable.(type) {
	case value.Array:
		elements = it
	case string:
		for _, r := range it {
			elements = append(elements, string(r))
		}
	default:
		return Outcome{}, herrors.ExecutionAt("loop iterable must be an array or a string", s.Iterable.Location())
	}

	for _, el := range elements {
		ec.SetVariable(s.Binding, el)
		outcome, err := rs.execBlock(ctx, s.Body, ec)
		if err != nil {
			return Outcome{}, err
		}
		switch outcome.Signal {
		case SignalContinue:
			continue
		case SignalEnd:
			return none, nil
		case SignalReturn:
			return outcome, nil
		}
	}
	return none, nil
}
