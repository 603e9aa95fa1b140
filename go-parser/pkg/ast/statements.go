package ast

// VariableDeclaration introduces a new binding in the current scope
// (`vl name = value;`, spec.md §3).
type VariableDeclaration struct {
	Name  string
	Value Expression
	Loc   SourceLocation
}

func (n *VariableDeclaration) Location() SourceLocation { return n.Loc }
func (n *VariableDeclaration) statementNode()           {}
func (n *VariableDeclaration) ToMap(inc bool) map[string]interface{} {
	m := base("VARIABLE_DECLARATION", n.Loc, inc)
	m["name"] = n.Name
	m["value"] = n.Value.ToMap(inc)
	return m
}

// ExpressionStatement wraps an expression evaluated for its side effects;
// its value is discarded.
type ExpressionStatement struct {
	Expr Expression
	Loc  SourceLocation
}

func (n *ExpressionStatement) Location() SourceLocation { return n.Loc }
func (n *ExpressionStatement) statementNode()           {}
func (n *ExpressionStatement) ToMap(inc bool) map[string]interface{} {
	m := base("EXPRESSION_STATEMENT", n.Loc, inc)
	m["expression"] = n.Expr.ToMap(inc)
	return m
}

// Block is an ordered sequence of statements. It serves both as the body of
// an if/loop/callback and as a statement in its own right (a bare `{ ... }`
// in statement position), so it implements Statement.
type Block struct {
	Statements []Statement
	Loc        SourceLocation
}

func (n *Block) Location() SourceLocation { return n.Loc }
func (n *Block) statementNode()           {}
func (n *Block) ToMap(inc bool) map[string]interface{} {
	m := base("BLOCK", n.Loc, inc)
	stmts := make([]map[string]interface{}, 0, len(n.Statements))
	for _, s := range n.Statements {
		stmts = append(stmts, s.ToMap(inc))
	}
	m["statements"] = stmts
	return m
}

// IfStatement supports an optional else branch, which may itself be another
// IfStatement wrapped in a single-statement Block (`else if`, spec.md §4.B).
type IfStatement struct {
	Condition Expression
	Then      *Block
	Else      *Block
	Loc       SourceLocation
}

func (n *IfStatement) Location() SourceLocation { return n.Loc }
func (n *IfStatement) statementNode()           {}
func (n *IfStatement) ToMap(inc bool) map[string]interface{} {
	m := base("IF_STATEMENT", n.Loc, inc)
	m["condition"] = n.Condition.ToMap(inc)
	m["then"] = n.Then.ToMap(inc)
	if n.Else != nil {
		m["else"] = n.Else.ToMap(inc)
	} else {
		m["else"] = nil
	}
	return m
}

// CallbackDeclaration binds a named, reusable callback (`cb name(params) {...}`,
// spec.md §3) in the enclosing scope, distinct from the transient callback
// produced inline by InlineCallbackExpression.
type CallbackDeclaration struct {
	Name   string
	Params []string
	Body   *Block
	Loc    SourceLocation
}

func (n *CallbackDeclaration) Location() SourceLocation { return n.Loc }
func (n *CallbackDeclaration) statementNode()           {}
func (n *CallbackDeclaration) ToMap(inc bool) map[string]interface{} {
	m := base("CALLBACK_DECLARATION", n.Loc, inc)
	m["name"] = n.Name
	m["params"] = stringList(n.Params)
	m["body"] = n.Body.ToMap(inc)
	return m
}

// ReturnStatement (`res value;`) exits the current callback, carrying the
// mandatory expression's value (spec.md §4.B grammar, §4.E control-flow
// table).
type ReturnStatement struct {
	Value Expression
	Loc   SourceLocation
}

func (n *ReturnStatement) Location() SourceLocation { return n.Loc }
func (n *ReturnStatement) statementNode()           {}
func (n *ReturnStatement) ToMap(inc bool) map[string]interface{} {
	m := base("RETURN_STATEMENT", n.Loc, inc)
	if n.Value != nil {
		m["value"] = n.Value.ToMap(inc)
	} else {
		m["value"] = nil
	}
	return m
}

// LoopStatement (`loop name in iterable { ... }`) binds each element of
// iterable to name for one iteration of Body.
type LoopStatement struct {
	Binding  string
	Iterable Expression
	Body     *Block
	Loc      SourceLocation
}

func (n *LoopStatement) Location() SourceLocation { return n.Loc }
func (n *LoopStatement) statementNode()           {}
func (n *LoopStatement) ToMap(inc bool) map[string]interface{} {
	m := base("LOOP_STATEMENT", n.Loc, inc)
	m["binding"] = n.Binding
	m["iterable"] = n.Iterable.ToMap(inc)
	m["body"] = n.Body.ToMap(inc)
	return m
}

// EndStatement (`end;`) breaks out of the nearest enclosing loop.
type EndStatement struct {
	Loc SourceLocation
}

func (n *EndStatement) Location() SourceLocation { return n.Loc }
func (n *EndStatement) statementNode()           {}
func (n *EndStatement) ToMap(inc bool) map[string]interface{} {
	return base("END_STATEMENT", n.Loc, inc)
}

// ContinueStatement (`continue;`) skips to the next iteration of the nearest
// enclosing loop.
type ContinueStatement struct {
	Loc SourceLocation
}

func (n *ContinueStatement) Location() SourceLocation { return n.Loc }
func (n *ContinueStatement) statementNode()           {}
func (n *ContinueStatement) ToMap(inc bool) map[string]interface{} {
	return base("CONTINUE_STATEMENT", n.Loc, inc)
}
