package ast

type StringLiteral struct {
	Value string
	Loc   SourceLocation
}

func (n *StringLiteral) Location() SourceLocation { return n.Loc }
func (n *StringLiteral) expressionNode()          {}
func (n *StringLiteral) ToMap(includeLoc bool) map[string]interface{} {
	m := base("STRING_LITERAL", n.Loc, includeLoc)
	m["value"] = n.Value
	return m
}

type NumberLiteral struct {
	Value float64
	Loc   SourceLocation
}

func (n *NumberLiteral) Location() SourceLocation { return n.Loc }
func (n *NumberLiteral) expressionNode()          {}
func (n *NumberLiteral) ToMap(includeLoc bool) map[string]interface{} {
	m := base("NUMBER_LITERAL", n.Loc, includeLoc)
	m["value"] = n.Value
	return m
}

type BooleanLiteral struct {
	Value bool
	Loc   SourceLocation
}

func (n *BooleanLiteral) Location() SourceLocation { return n.Loc }
func (n *BooleanLiteral) expressionNode()          {}
func (n *BooleanLiteral) ToMap(includeLoc bool) map[string]interface{} {
	m := base("BOOLEAN_LITERAL", n.Loc, includeLoc)
	m["value"] = n.Value
	return m
}

type NullLiteral struct {
	Loc SourceLocation
}

func (n *NullLiteral) Location() SourceLocation { return n.Loc }
func (n *NullLiteral) expressionNode()          {}
func (n *NullLiteral) ToMap(includeLoc bool) map[string]interface{} {
	return base("NULL_LITERAL", n.Loc, includeLoc)
}

type Identifier struct {
	Name string
	Loc  SourceLocation
}

func (n *Identifier) Location() SourceLocation { return n.Loc }
func (n *Identifier) expressionNode()          {}
func (n *Identifier) ToMap(includeLoc bool) map[string]interface{} {
	m := base("IDENTIFIER", n.Loc, includeLoc)
	m["name"] = n.Name
	return m
}

// CallbackReference identifies an already-declared callback by name. The
// parser never constructs one directly from surface syntax (the only
// surface-level way to pass a callback as a value is an InlineCallbackExpression
// in argument position, see parser.parseInlineCallback) — it exists in the data model so the
// interpreter and any embedder building an AST programmatically can still
// reference a named callback as a first-class value.
type CallbackReference struct {
	Name string
	Loc  SourceLocation
}

func (n *CallbackReference) Location() SourceLocation { return n.Loc }
func (n *CallbackReference) expressionNode()          {}
func (n *CallbackReference) ToMap(includeLoc bool) map[string]interface{} {
	m := base("CALLBACK_REFERENCE", n.Loc, includeLoc)
	m["name"] = n.Name
	return m
}
