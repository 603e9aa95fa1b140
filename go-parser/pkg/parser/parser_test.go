package parser

import (
	"testing"

	"go-parser/pkg/ast"
	"go-parser/pkg/config"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse(src, config.AllEnabled())
	require.NoError(t, err)
	return prog
}

func TestParseArithmeticPrecedence(t *testing.T) {
	prog := mustParse(t, "vl x = 2 + 3 * 4;")
	decl := prog.Body.Statements[0].(*ast.VariableDeclaration)
	bin := decl.Value.(*ast.BinaryExpression)
	require.Equal(t, ast.OpPlus, bin.Op)
	require.IsType(t, &ast.NumberLiteral{}, bin.Left)
	mul := bin.Right.(*ast.BinaryExpression)
	require.Equal(t, ast.OpMultiply, mul.Op)
}

func TestParseMinusFoldsIntoNegativeNumberOnlyAtPrimary(t *testing.T) {
	prog := mustParse(t, "vl x = 3-2;")
	decl := prog.Body.Statements[0].(*ast.VariableDeclaration)
	bin := decl.Value.(*ast.BinaryExpression)
	require.Equal(t, ast.OpMinus, bin.Op)
	require.Equal(t, float64(3), bin.Left.(*ast.NumberLiteral).Value)
	require.Equal(t, float64(2), bin.Right.(*ast.NumberLiteral).Value)
}

func TestParseLeadingNegativeLiteral(t *testing.T) {
	prog := mustParse(t, "vl x = -5;")
	decl := prog.Body.Statements[0].(*ast.VariableDeclaration)
	num := decl.Value.(*ast.NumberLiteral)
	require.Equal(t, float64(-5), num.Value)
}

func TestParseObjectLiteralInExpressionPosition(t *testing.T) {
	prog := mustParse(t, "vl a = {x: 1, y: 2};")
	decl := prog.Body.Statements[0].(*ast.VariableDeclaration)
	obj := decl.Value.(*ast.ObjectExpression)
	require.Len(t, obj.Properties, 2)
	require.Equal(t, "x", obj.Properties[0].Key)
}

func TestParseBraceAfterIfConditionIsBlock(t *testing.T) {
	prog := mustParse(t, "if true { vl x = 1; }")
	ifs := prog.Body.Statements[0].(*ast.IfStatement)
	require.Len(t, ifs.Then.Statements, 1)
}

func TestParseElseIfChain(t *testing.T) {
	prog := mustParse(t, "if true { end; } else if false { end; } else { end; }")
	ifs := prog.Body.Statements[0].(*ast.IfStatement)
	require.NotNil(t, ifs.Else)
	nested := ifs.Else.Statements[0].(*ast.IfStatement)
	require.NotNil(t, nested.Else)
}

func TestParseMemberAssignment(t *testing.T) {
	prog := mustParse(t, "a.b = 1;")
	stmt := prog.Body.Statements[0].(*ast.ExpressionStatement)
	ma := stmt.Expr.(*ast.MemberAssignmentExpression)
	require.False(t, ma.Computed)
	require.Equal(t, "b", ma.PropertyName)
}

func TestParseComputedMemberAssignment(t *testing.T) {
	prog := mustParse(t, `a[2] = "k";`)
	stmt := prog.Body.Statements[0].(*ast.ExpressionStatement)
	ma := stmt.Expr.(*ast.MemberAssignmentExpression)
	require.True(t, ma.Computed)
}

func TestParseInvalidAssignmentTargetErrors(t *testing.T) {
	_, err := Parse("1 + 1 = 2;", config.AllEnabled())
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, KindUnexpectedToken, pe.Kind)
}

func TestParseCallExpression(t *testing.T) {
	prog := mustParse(t, "foo(1, 2);")
	stmt := prog.Body.Statements[0].(*ast.ExpressionStatement)
	call := stmt.Expr.(*ast.CallExpression)
	require.Equal(t, "foo", call.Callee)
	require.Len(t, call.Args, 2)
}

func TestParseMemberCallExpression(t *testing.T) {
	prog := mustParse(t, `"Hello".substring(1,4);`)
	stmt := prog.Body.Statements[0].(*ast.ExpressionStatement)
	call := stmt.Expr.(*ast.MemberCallExpression)
	require.Equal(t, "substring", call.PropertyName)
	require.Len(t, call.Args, 2)
}

func TestParseHigherOrderWithInlineCallback(t *testing.T) {
	prog := mustParse(t, "arr.map(cb f(x){res x+1;});")
	stmt := prog.Body.Statements[0].(*ast.ExpressionStatement)
	call := stmt.Expr.(*ast.MemberCallExpression)
	require.Len(t, call.Args, 1)
	cb := call.Args[0].(*ast.InlineCallbackExpression)
	require.Equal(t, "f", cb.Name)
	require.Equal(t, []string{"x"}, cb.Params)
}

func TestParseLoopStatement(t *testing.T) {
	prog := mustParse(t, "loop i in arr { end; }")
	loop := prog.Body.Statements[0].(*ast.LoopStatement)
	require.Equal(t, "i", loop.Binding)
	require.IsType(t, &ast.Identifier{}, loop.Iterable)
}

func TestParseKeysOfWithChainedMemberAccess(t *testing.T) {
	prog := mustParse(t, "keysof a.b;")
	stmt := prog.Body.Statements[0].(*ast.ExpressionStatement)
	ko := stmt.Expr.(*ast.KeysOfExpression)
	require.IsType(t, &ast.MemberExpression{}, ko.Object)
}

func TestFeatureDisabledRejectsVariableDeclaration(t *testing.T) {
	flags := config.AllEnabled()
	flags.AllowVariableDeclaration = false
	_, err := Parse("vl x = 1;", flags)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, KindFeatureDisabled, pe.Kind)
	require.Equal(t, "allow_variable_declaration", pe.Feature)
	require.Equal(t, 1, pe.Location.StartLine)
	require.Equal(t, 1, pe.Location.StartColumn)
}

func TestFeatureGatingRoundTripsWithDefaults(t *testing.T) {
	src := "vl x = 1; if x { end; } loop i in x { continue; }"
	defaultsProg, err := Parse(src, config.FeatureFlags{
		AllowVariableDeclaration: true, AllowConditionals: true, AllowLoops: true,
		AllowCallbacks: true, AllowReturnStatements: true, AllowLoopControl: true,
		AllowAssignments: true, AllowObjectNavigation: true, AllowArrayConstructions: true,
		AllowObjectConstructions: true, AllowObjectKeys: true,
	})
	require.NoError(t, err)
	allEnabledProg, err := Parse(src, config.AllEnabled())
	require.NoError(t, err)
	require.Equal(t, len(defaultsProg.Body.Statements), len(allEnabledProg.Body.Statements))
}

func TestExpressionsOnlyPresetRejectsLoop(t *testing.T) {
	_, err := Parse("loop i in x { end; }", config.ExpressionsOnly())
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, KindFeatureDisabled, pe.Kind)
}

func TestParseArrayLiteralEmpty(t *testing.T) {
	prog := mustParse(t, "vl a = [];")
	decl := prog.Body.Statements[0].(*ast.VariableDeclaration)
	arr := decl.Value.(*ast.ArrayExpression)
	require.Empty(t, arr.Elements)
}

func TestLocationCoversChildren(t *testing.T) {
	prog := mustParse(t, "vl x = 1 + 2;")
	decl := prog.Body.Statements[0].(*ast.VariableDeclaration)
	require.True(t, decl.Loc.Contains(decl.Value.Location()))
}

func TestEndOfInputErrorOnUnterminatedBlock(t *testing.T) {
	_, err := Parse("if true { vl x = 1;", config.AllEnabled())
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, KindEndOfInput, pe.Kind)
}

func TestParseReturnStatementRequiresExpression(t *testing.T) {
	prog := mustParse(t, "cb f() { res 1; }")
	decl := prog.Body.Statements[0].(*ast.CallbackDeclaration)
	ret := decl.Body.Statements[0].(*ast.ReturnStatement)
	require.Equal(t, float64(1), ret.Value.(*ast.NumberLiteral).Value)

	_, err := Parse("cb f() { res; }", config.AllEnabled())
	require.Error(t, err, "bare `res;` with no expression must be rejected")
}
