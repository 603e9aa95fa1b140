// Package optimizer rewrites a parsed hexput Program into a simplified,
// semantically equivalent form (spec.md §4.C): dead-block elimination,
// singleton-block unwrapping, block flattening, and empty-body pruning.
// Every pass is pure and location-preserving; running the optimizer twice
// produces the same tree (idempotence), and no arithmetic is folded since
// operands may carry host-call side effects.
package optimizer

import "go-parser/pkg/ast"

// Optimize returns a new Program with the four structural passes applied.
// The input Program is not mutated.
func Optimize(prog *ast.Program) *ast.Program {
	return &ast.Program{Body: optimizeBlock(prog.Body), Loc: prog.Loc}
}

func optimizeBlock(b *ast.Block) *ast.Block {
	stmts := make([]ast.Statement, 0, len(b.Statements))
	for _, s := range b.Statements {
		opt := optimizeStatement(s)
		if opt == nil {
			continue
		}
		if inner, ok := opt.(*ast.Block); ok {
			// Block flattening: splice a Block statement's own statements
			// into the enclosing list in place.
			stmts = append(stmts, inner.Statements...)
			continue
		}
		stmts = append(stmts, opt)
	}
	return &ast.Block{Statements: stmts, Loc: b.Loc}
}

// optimizeStatement optimizes one statement and applies dead-block
// elimination / singleton-block unwrapping to it. Returns nil if the
// statement should be dropped entirely.
func optimizeStatement(s ast.Statement) ast.Statement {
	switch n := s.(type) {
	case *ast.Block:
		opt := optimizeBlock(n)
		if len(opt.Statements) == 0 {
			return nil
		}
		if len(opt.Statements) == 1 {
			if _, isBlock := opt.Statements[0].(*ast.Block); !isBlock {
				return opt.Statements[0]
			}
		}
		return opt

	case *ast.IfStatement:
		then := optimizeBlock(n.Then)
		var elseBlock *ast.Block
		if n.Else != nil {
			elseBlock = optimizeBlock(n.Else)
			if len(elseBlock.Statements) == 0 {
				elseBlock = nil
			}
		}
		if len(then.Statements) == 0 && elseBlock == nil {
			return nil
		}
		return &ast.IfStatement{
			Condition: optimizeExpression(n.Condition),
			Then:      then,
			Else:      elseBlock,
			Loc:       n.Loc,
		}

	case *ast.LoopStatement:
		body := optimizeBlock(n.Body)
		if len(body.Statements) == 0 {
			return nil
		}
		return &ast.LoopStatement{
			Binding:  n.Binding,
			Iterable: optimizeExpression(n.Iterable),
			Body:     body,
			Loc:      n.Loc,
		}

	case *ast.CallbackDeclaration:
		return &ast.CallbackDeclaration{
			Name:   n.Name,
			Params: n.Params,
			Body:   optimizeBlock(n.Body),
			Loc:    n.Loc,
		}

	case *ast.VariableDeclaration:
		return &ast.VariableDeclaration{Name: n.Name, Value: optimizeExpression(n.Value), Loc: n.Loc}

	case *ast.ExpressionStatement:
		return &ast.ExpressionStatement{Expr: optimizeExpression(n.Expr), Loc: n.Loc}

	case *ast.ReturnStatement:
		if n.Value == nil {
			return n
		}
		return &ast.ReturnStatement{Value: optimizeExpression(n.Value), Loc: n.Loc}

	default:
		// EndStatement, ContinueStatement carry no children.
		return s
	}
}

// optimizeExpression recurses into expression children without rewriting
// their structure (spec.md §4.C point 5): only statement-level Block
// structure is simplified.
func optimizeExpression(e ast.Expression) ast.Expression {
	switch n := e.(type) {
	case *ast.BinaryExpression:
		return &ast.BinaryExpression{Left: optimizeExpression(n.Left), Op: n.Op, Right: optimizeExpression(n.Right), Loc: n.Loc}
	case *ast.UnaryExpression:
		return &ast.UnaryExpression{Op: n.Op, Operand: optimizeExpression(n.Operand), Loc: n.Loc}
	case *ast.AssignmentExpression:
		return &ast.AssignmentExpression{Target: n.Target, Value: optimizeExpression(n.Value), Loc: n.Loc}
	case *ast.MemberExpression:
		m := *n
		m.Object = optimizeExpression(n.Object)
		if n.Computed {
			m.PropertyExpr = optimizeExpression(n.PropertyExpr)
		}
		return &m
	case *ast.MemberAssignmentExpression:
		m := *n
		m.Object = optimizeExpression(n.Object)
		if n.Computed {
			m.PropertyExpr = optimizeExpression(n.PropertyExpr)
		}
		m.Value = optimizeExpression(n.Value)
		return &m
	case *ast.CallExpression:
		return &ast.CallExpression{Callee: n.Callee, Args: optimizeExprList(n.Args), Loc: n.Loc}
	case *ast.MemberCallExpression:
		m := *n
		m.Object = optimizeExpression(n.Object)
		if n.Computed {
			m.PropertyExpr = optimizeExpression(n.PropertyExpr)
		}
		m.Args = optimizeExprList(n.Args)
		return &m
	case *ast.ArrayExpression:
		return &ast.ArrayExpression{Elements: optimizeExprList(n.Elements), Loc: n.Loc}
	case *ast.ObjectExpression:
		props := make([]ast.ObjectProperty, len(n.Properties))
		for i, p := range n.Properties {
			props[i] = ast.ObjectProperty{Key: p.Key, Value: optimizeExpression(p.Value), Loc: p.Loc}
		}
		return &ast.ObjectExpression{Properties: props, Loc: n.Loc}
	case *ast.KeysOfExpression:
		return &ast.KeysOfExpression{Object: optimizeExpression(n.Object), Loc: n.Loc}
	case *ast.InlineCallbackExpression:
		return &ast.InlineCallbackExpression{Name: n.Name, Params: n.Params, Body: optimizeBlock(n.Body), Loc: n.Loc}
	default:
		// StringLiteral, NumberLiteral, BooleanLiteral, NullLiteral,
		// Identifier, CallbackReference: leaves, nothing to recurse into.
		return e
	}
}

func optimizeExprList(exprs []ast.Expression) []ast.Expression {
	if exprs == nil {
		return nil
	}
	out := make([]ast.Expression, len(exprs))
	for i, e := range exprs {
		out[i] = optimizeExpression(e)
	}
	return out
}
