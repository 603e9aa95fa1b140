package ast

type BinaryExpression struct {
	Left, Right Expression
	Op          Operator
	Loc         SourceLocation
}

func (n *BinaryExpression) Location() SourceLocation { return n.Loc }
func (n *BinaryExpression) expressionNode()          {}
func (n *BinaryExpression) ToMap(inc bool) map[string]interface{} {
	m := base("BINARY_EXPRESSION", n.Loc, inc)
	m["operator"] = string(n.Op)
	m["left"] = n.Left.ToMap(inc)
	m["right"] = n.Right.ToMap(inc)
	return m
}

// UnaryExpression: the only operator hexput supports here is Not (`!`).
type UnaryExpression struct {
	Op      Operator
	Operand Expression
	Loc     SourceLocation
}

func (n *UnaryExpression) Location() SourceLocation { return n.Loc }
func (n *UnaryExpression) expressionNode()          {}
func (n *UnaryExpression) ToMap(inc bool) map[string]interface{} {
	m := base("UNARY_EXPRESSION", n.Loc, inc)
	m["operator"] = string(n.Op)
	m["operand"] = n.Operand.ToMap(inc)
	return m
}

type AssignmentExpression struct {
	Target string
	Value  Expression
	Loc    SourceLocation
}

func (n *AssignmentExpression) Location() SourceLocation { return n.Loc }
func (n *AssignmentExpression) expressionNode()          {}
func (n *AssignmentExpression) ToMap(inc bool) map[string]interface{} {
	m := base("ASSIGNMENT_EXPRESSION", n.Loc, inc)
	m["target"] = n.Target
	m["value"] = n.Value.ToMap(inc)
	return m
}

// MemberExpression reads a property, either statically named (Computed
// false, PropertyName set) or computed from an expression (Computed true,
// PropertyExpr set) — exactly one of the two is populated (spec.md §3 invariant).
type MemberExpression struct {
	Object       Expression
	Computed     bool
	PropertyName string
	PropertyExpr Expression
	Loc          SourceLocation
}

func (n *MemberExpression) Location() SourceLocation { return n.Loc }
func (n *MemberExpression) expressionNode()          {}
func (n *MemberExpression) ToMap(inc bool) map[string]interface{} {
	m := base("MEMBER_EXPRESSION", n.Loc, inc)
	m["object"] = n.Object.ToMap(inc)
	m["computed"] = n.Computed
	if n.Computed {
		m["property"] = n.PropertyExpr.ToMap(inc)
	} else {
		m["property"] = n.PropertyName
	}
	return m
}

type MemberAssignmentExpression struct {
	Object       Expression
	Computed     bool
	PropertyName string
	PropertyExpr Expression
	Value        Expression
	Loc          SourceLocation
}

func (n *MemberAssignmentExpression) Location() SourceLocation { return n.Loc }
func (n *MemberAssignmentExpression) expressionNode()          {}
func (n *MemberAssignmentExpression) ToMap(inc bool) map[string]interface{} {
	m := base("MEMBER_ASSIGNMENT_EXPRESSION", n.Loc, inc)
	m["object"] = n.Object.ToMap(inc)
	m["computed"] = n.Computed
	if n.Computed {
		m["property"] = n.PropertyExpr.ToMap(inc)
	} else {
		m["property"] = n.PropertyName
	}
	m["value"] = n.Value.ToMap(inc)
	return m
}

// CallExpression is a bare-identifier call: a local callback invocation or,
// failing that, a host function call (spec.md §4.E).
type CallExpression struct {
	Callee string
	Args   []Expression
	Loc    SourceLocation
}

func (n *CallExpression) Location() SourceLocation { return n.Loc }
func (n *CallExpression) expressionNode()          {}
func (n *CallExpression) ToMap(inc bool) map[string]interface{} {
	m := base("CALL_EXPRESSION", n.Loc, inc)
	m["callee"] = n.Callee
	m["arguments"] = exprList(n.Args, inc)
	return m
}

// MemberCallExpression is `object.method(...)` or `object[expr](...)`: tried
// first against built-in methods, then against the host (spec.md §4.E).
type MemberCallExpression struct {
	Object       Expression
	Computed     bool
	PropertyName string
	PropertyExpr Expression
	Args         []Expression
	Loc          SourceLocation
}

func (n *MemberCallExpression) Location() SourceLocation { return n.Loc }
func (n *MemberCallExpression) expressionNode()          {}
func (n *MemberCallExpression) ToMap(inc bool) map[string]interface{} {
	m := base("MEMBER_CALL_EXPRESSION", n.Loc, inc)
	m["object"] = n.Object.ToMap(inc)
	m["computed"] = n.Computed
	if n.Computed {
		m["property"] = n.PropertyExpr.ToMap(inc)
	} else {
		m["property"] = n.PropertyName
	}
	m["arguments"] = exprList(n.Args, inc)
	return m
}

type ArrayExpression struct {
	Elements []Expression
	Loc      SourceLocation
}

func (n *ArrayExpression) Location() SourceLocation { return n.Loc }
func (n *ArrayExpression) expressionNode()          {}
func (n *ArrayExpression) ToMap(inc bool) map[string]interface{} {
	m := base("ARRAY_EXPRESSION", n.Loc, inc)
	m["elements"] = exprList(n.Elements, inc)
	return m
}

// ObjectProperty is one `key: value` pair of an ObjectExpression. It carries
// its own location and PROPERTY discriminator per spec.md §6.
type ObjectProperty struct {
	Key   string
	Value Expression
	Loc   SourceLocation
}

func (p ObjectProperty) ToMap(inc bool) map[string]interface{} {
	m := base("PROPERTY", p.Loc, inc)
	m["key"] = p.Key
	m["value"] = p.Value.ToMap(inc)
	return m
}

type ObjectExpression struct {
	Properties []ObjectProperty
	Loc        SourceLocation
}

func (n *ObjectExpression) Location() SourceLocation { return n.Loc }
func (n *ObjectExpression) expressionNode()          {}
func (n *ObjectExpression) ToMap(inc bool) map[string]interface{} {
	m := base("OBJECT_EXPRESSION", n.Loc, inc)
	props := make([]map[string]interface{}, 0, len(n.Properties))
	for _, p := range n.Properties {
		props = append(props, p.ToMap(inc))
	}
	m["properties"] = props
	return m
}

type KeysOfExpression struct {
	Object Expression
	Loc    SourceLocation
}

func (n *KeysOfExpression) Location() SourceLocation { return n.Loc }
func (n *KeysOfExpression) expressionNode()          {}
func (n *KeysOfExpression) ToMap(inc bool) map[string]interface{} {
	m := base("KEYS_OF_EXPRESSION", n.Loc, inc)
	m["object"] = n.Object.ToMap(inc)
	return m
}

// InlineCallbackExpression declares a transient callback and, when
// evaluated, yields a CallbackReference to it (spec.md §4.E). It is only
// valid directly in call-argument position (spec.md §4.B).
type InlineCallbackExpression struct {
	Name   string
	Params []string
	Body   *Block
	Loc    SourceLocation
}

func (n *InlineCallbackExpression) Location() SourceLocation { return n.Loc }
func (n *InlineCallbackExpression) expressionNode()          {}
func (n *InlineCallbackExpression) ToMap(inc bool) map[string]interface{} {
	m := base("INLINE_CALLBACK_EXPRESSION", n.Loc, inc)
	m["name"] = n.Name
	m["params"] = stringList(n.Params)
	m["body"] = n.Body.ToMap(inc)
	return m
}

func exprList(exprs []Expression, inc bool) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, e.ToMap(inc))
	}
	return out
}

func stringList(ss []string) []interface{} {
	out := make([]interface{}, 0, len(ss))
	for _, s := range ss {
		out = append(out, s)
	}
	return out
}
