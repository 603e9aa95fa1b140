package optimizer

import (
	"testing"

	"go-parser/pkg/ast"
	"go-parser/pkg/config"
	"go-parser/pkg/parser"

	"github.com/stretchr/testify/require"
)

func parseProg(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.Parse(src, config.AllEnabled())
	require.NoError(t, err)
	return prog
}

func TestDeadBlockEliminationRemovesEmptyBlock(t *testing.T) {
	prog := parseProg(t, "vl x = 1; { } vl y = 2;")
	opt := Optimize(prog)
	require.Len(t, opt.Body.Statements, 2)
}

func TestSingletonBlockUnwrapping(t *testing.T) {
	prog := parseProg(t, "{ vl x = 1; }")
	opt := Optimize(prog)
	require.Len(t, opt.Body.Statements, 1)
	require.IsType(t, &ast.VariableDeclaration{}, opt.Body.Statements[0])
}

func TestBlockFlatteningSplicesMultiStatementNestedBlock(t *testing.T) {
	prog := parseProg(t, "{ vl x = 1; vl y = 2; }")
	opt := Optimize(prog)
	require.Len(t, opt.Body.Statements, 2)
	require.IsType(t, &ast.VariableDeclaration{}, opt.Body.Statements[0])
	require.IsType(t, &ast.VariableDeclaration{}, opt.Body.Statements[1])
}

func TestEmptyBodyPruningRemovesIfWithNoBranches(t *testing.T) {
	prog := parseProg(t, "if true { }")
	opt := Optimize(prog)
	require.Empty(t, opt.Body.Statements)
}

func TestEmptyBodyPruningRemovesEmptyLoop(t *testing.T) {
	prog := parseProg(t, "loop i in arr { }")
	opt := Optimize(prog)
	require.Empty(t, opt.Body.Statements)
}

func TestOptimizerIdempotence(t *testing.T) {
	prog := parseProg(t, "{ vl x = 1; { vl y = 2; } } if true { } loop i in arr { end; }")
	once := Optimize(prog)
	twice := Optimize(once)
	require.Equal(t, once.Body.ToMap(false), twice.Body.ToMap(false))
}

func TestOptimizerDoesNotFoldArithmetic(t *testing.T) {
	prog := parseProg(t, "vl x = 2 + 3;")
	opt := Optimize(prog)
	decl := opt.Body.Statements[0].(*ast.VariableDeclaration)
	require.IsType(t, &ast.BinaryExpression{}, decl.Value)
}

func TestOptimizerPreservesNonEmptyIfElse(t *testing.T) {
	prog := parseProg(t, "if true { vl x = 1; } else { vl y = 2; }")
	opt := Optimize(prog)
	require.Len(t, opt.Body.Statements, 1)
	ifs := opt.Body.Statements[0].(*ast.IfStatement)
	require.NotNil(t, ifs.Else)
}
