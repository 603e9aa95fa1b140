// Package ast defines the hexput abstract syntax tree: a tagged-union node
// set where every node carries a SourceLocation, plus the JSON shape used
// at the host interface boundary (spec.md §6).
package ast

// SourceLocation is a 1-based line/column span derived from byte offsets by
// counting newlines over the original source.
type SourceLocation struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Contains reports whether other lies entirely within loc, comparing
// line/column pairs lexicographically. Used to check the location-coverage
// invariant (spec.md §8.1): every node's location must contain every
// child's location.
func (loc SourceLocation) Contains(other SourceLocation) bool {
	startOK := before(loc.StartLine, loc.StartColumn, other.StartLine, other.StartColumn) ||
		(loc.StartLine == other.StartLine && loc.StartColumn == other.StartColumn)
	endOK := before(other.EndLine, other.EndColumn, loc.EndLine, loc.EndColumn) ||
		(loc.EndLine == other.EndLine && loc.EndColumn == other.EndColumn)
	return startOK && endOK
}

func before(l1, c1, l2, c2 int) bool {
	if l1 != l2 {
		return l1 < l2
	}
	return c1 < c2
}

// Span combines the start of a and the end of b, used to build a parent
// node's location out of its first and last children.
func Span(a, b SourceLocation) SourceLocation {
	return SourceLocation{
		StartLine:   a.StartLine,
		StartColumn: a.StartColumn,
		EndLine:     b.EndLine,
		EndColumn:   b.EndColumn,
	}
}

// Node is the base interface every AST node implements.
type Node interface {
	Location() SourceLocation
	// ToMap renders the node's wire JSON shape (spec.md §6). When
	// includeLocation is false, the "location" field is omitted from this
	// node and every descendant.
	ToMap(includeLocation bool) map[string]interface{}
}

// Statement is a statement-position node.
type Statement interface {
	Node
	statementNode()
}

// Expression is an expression-position node.
type Expression interface {
	Node
	expressionNode()
}

func locationMap(loc SourceLocation) map[string]interface{} {
	return map[string]interface{}{
		"start_line":   loc.StartLine,
		"start_column": loc.StartColumn,
		"end_line":     loc.EndLine,
		"end_column":   loc.EndColumn,
	}
}

// base composes a node's common wire fields: its discriminator and,
// optionally, its location.
func base(typ string, loc SourceLocation, includeLocation bool) map[string]interface{} {
	m := map[string]interface{}{"type": typ}
	if includeLocation {
		m["location"] = locationMap(loc)
	}
	return m
}

// Operator enumerates the binary/unary operators of spec.md §3.
type Operator string

const (
	OpPlus         Operator = "Plus"
	OpMinus        Operator = "Minus"
	OpMultiply     Operator = "Multiply"
	OpDivide       Operator = "Divide"
	OpEqual        Operator = "Equal"
	OpNotEqual     Operator = "NotEqual"
	OpLess         Operator = "Less"
	OpGreater      Operator = "Greater"
	OpLessEqual    Operator = "LessEqual"
	OpGreaterEqual Operator = "GreaterEqual"
	OpAnd          Operator = "And"
	OpOr           Operator = "Or"
	OpNot          Operator = "Not"
)
