package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func loc(a, b, c, d int) SourceLocation {
	return SourceLocation{StartLine: a, StartColumn: b, EndLine: c, EndColumn: d}
}

func TestSourceLocationContains(t *testing.T) {
	parent := loc(1, 1, 1, 20)
	child := loc(1, 5, 1, 10)
	require.True(t, parent.Contains(child))
	require.False(t, child.Contains(parent))
}

func TestSourceLocationContainsAcrossLines(t *testing.T) {
	parent := loc(1, 1, 5, 1)
	child := loc(2, 1, 3, 1)
	require.True(t, parent.Contains(child))
}

func TestSpanCombinesStartAndEnd(t *testing.T) {
	a := loc(1, 1, 1, 5)
	b := loc(2, 1, 2, 10)
	got := Span(a, b)
	require.Equal(t, loc(1, 1, 2, 10), got)
}

func TestNumberLiteralToMap(t *testing.T) {
	n := &NumberLiteral{Value: 3.5, Loc: loc(1, 1, 1, 4)}
	m := n.ToMap(true)
	require.Equal(t, "NUMBER_LITERAL", m["type"])
	require.Equal(t, 3.5, m["value"])
	require.NotNil(t, m["location"])
}

func TestToMapOmitsLocationWhenNotIncluded(t *testing.T) {
	n := &Identifier{Name: "x", Loc: loc(1, 1, 1, 2)}
	m := n.ToMap(false)
	_, hasLoc := m["location"]
	require.False(t, hasLoc)
}

func TestMemberExpressionComputedVsStatic(t *testing.T) {
	obj := &Identifier{Name: "x", Loc: loc(1, 1, 1, 2)}
	static := &MemberExpression{Object: obj, Computed: false, PropertyName: "y", Loc: loc(1, 1, 1, 4)}
	m := static.ToMap(false)
	require.Equal(t, "y", m["property"])

	idx := &NumberLiteral{Value: 0, Loc: loc(1, 3, 1, 4)}
	computed := &MemberExpression{Object: obj, Computed: true, PropertyExpr: idx, Loc: loc(1, 1, 1, 5)}
	m2 := computed.ToMap(false)
	require.Equal(t, map[string]interface{}{"type": "NUMBER_LITERAL", "value": float64(0)}, m2["property"])
}

func TestObjectExpressionPropertiesCarryOwnLocation(t *testing.T) {
	prop := ObjectProperty{Key: "a", Value: &NumberLiteral{Value: 1, Loc: loc(1, 5, 1, 6)}, Loc: loc(1, 2, 1, 6)}
	obj := &ObjectExpression{Properties: []ObjectProperty{prop}, Loc: loc(1, 1, 1, 7)}
	m := obj.ToMap(true)
	props := m["properties"].([]map[string]interface{})
	require.Len(t, props, 1)
	require.Equal(t, "PROPERTY", props[0]["type"])
	require.NotNil(t, props[0]["location"])
}

func TestBlockToMapNestsStatements(t *testing.T) {
	decl := &VariableDeclaration{Name: "x", Value: &NumberLiteral{Value: 1, Loc: loc(1, 9, 1, 10)}, Loc: loc(1, 1, 1, 10)}
	block := &Block{Statements: []Statement{decl}, Loc: loc(1, 1, 1, 10)}
	m := block.ToMap(false)
	require.Equal(t, "BLOCK", m["type"])
	stmts := m["statements"].([]map[string]interface{})
	require.Len(t, stmts, 1)
	require.Equal(t, "VARIABLE_DECLARATION", stmts[0]["type"])
}

func TestIfStatementNilElseSerializesAsNull(t *testing.T) {
	ifs := &IfStatement{
		Condition: &BooleanLiteral{Value: true, Loc: loc(1, 4, 1, 8)},
		Then:      &Block{Loc: loc(1, 9, 1, 11)},
		Loc:       loc(1, 1, 1, 11),
	}
	m := ifs.ToMap(false)
	require.Nil(t, m["else"])
}

func TestInlineCallbackExpressionShapesParamsAndBody(t *testing.T) {
	cb := &InlineCallbackExpression{
		Name:   "__anon0",
		Params: []string{"a", "b"},
		Body:   &Block{Loc: loc(1, 10, 1, 12)},
		Loc:    loc(1, 1, 1, 12),
	}
	m := cb.ToMap(false)
	require.Equal(t, "INLINE_CALLBACK_EXPRESSION", m["type"])
	require.Equal(t, []interface{}{"a", "b"}, m["params"])
}

func TestProgramWrapsBody(t *testing.T) {
	body := &Block{Loc: loc(1, 1, 1, 1)}
	p := &Program{Body: body, Loc: loc(1, 1, 1, 1)}
	m := p.ToMap(true)
	require.Equal(t, "PROGRAM", m["type"])
	require.NotNil(t, m["body"])
}

func TestCallbackReferenceDiscriminator(t *testing.T) {
	ref := &CallbackReference{Name: "f", Loc: loc(1, 1, 1, 2)}
	m := ref.ToMap(false)
	require.Equal(t, "CALLBACK_REFERENCE", m["type"])
	require.Equal(t, "f", m["name"])
}
