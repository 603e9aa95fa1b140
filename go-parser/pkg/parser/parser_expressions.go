package parser

import (
	"fmt"

	"go-parser/pkg/ast"
	"go-parser/pkg/lexer"
)

// parseExpression enters at the lowest-precedence layer: assignment.
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

// parseAssignment parses a logical-or expression and, if `=` follows,
// validates the LHS shape (spec.md §4.B "Assignment target") and builds
// the matching Assignment/MemberAssignment node. The RHS recurses into
// parseAssignment so chained assignment is accepted.
func (p *Parser) parseAssignment() (ast.Expression, error) {
	left, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != lexer.TokenAssign {
		return left, nil
	}
	if err := gate(p.flags.AllowAssignments, "allow_assignments", left.Location()); err != nil {
		return nil, err
	}
	p.advance() // '='
	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	switch lhs := left.(type) {
	case *ast.Identifier:
		return &ast.AssignmentExpression{
			Target: lhs.Name,
			Value:  value,
			Loc:    ast.Span(lhs.Loc, value.Location()),
		}, nil
	case *ast.MemberExpression:
		return &ast.MemberAssignmentExpression{
			Object:       lhs.Object,
			Computed:     lhs.Computed,
			PropertyName: lhs.PropertyName,
			PropertyExpr: lhs.PropertyExpr,
			Value:        value,
			Loc:          ast.Span(lhs.Loc, value.Location()),
		}, nil
	default:
		return nil, unexpectedToken(left.Location(), "invalid assignment target")
	}
}

func (p *Parser) parseLogicalOr() (ast.Expression, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == lexer.TokenOr {
		p.advance()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Left: left, Op: ast.OpOr, Right: right, Loc: ast.Span(left.Location(), right.Location())}
	}
	return left, nil
}

func (p *Parser) parseLogicalAnd() (ast.Expression, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == lexer.TokenAnd {
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Left: left, Op: ast.OpAnd, Right: right, Loc: ast.Span(left.Location(), right.Location())}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.Operator
		switch p.peek().Type {
		case lexer.TokenEqual:
			op = ast.OpEqual
		case lexer.TokenNotEqual:
			op = ast.OpNotEqual
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Left: left, Op: op, Right: right, Loc: ast.Span(left.Location(), right.Location())}
	}
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.Operator
		switch p.peek().Type {
		case lexer.TokenLess:
			op = ast.OpLess
		case lexer.TokenGreater:
			op = ast.OpGreater
		case lexer.TokenLessEqual:
			op = ast.OpLessEqual
		case lexer.TokenGreaterEqual:
			op = ast.OpGreaterEqual
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Left: left, Op: op, Right: right, Loc: ast.Span(left.Location(), right.Location())}
	}
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.Operator
		switch p.peek().Type {
		case lexer.TokenPlus:
			op = ast.OpPlus
		case lexer.TokenMinus:
			op = ast.OpMinus
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Left: left, Op: op, Right: right, Loc: ast.Span(left.Location(), right.Location())}
	}
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.Operator
		switch p.peek().Type {
		case lexer.TokenStar:
			op = ast.OpMultiply
		case lexer.TokenSlash:
			op = ast.OpDivide
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Left: left, Op: op, Right: right, Loc: ast.Span(left.Location(), right.Location())}
	}
}

// parseUnary handles the sole unary operator (`!`); everything else falls
// through to a primary expression with member-access/call suffixes applied.
func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.peek().Type == lexer.TokenNot {
		start := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Op: ast.OpNot, Operand: operand, Loc: ast.Span(p.locOf(start.Span), operand.Location())}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression and then applies any chain of
// `.ident`, `[expr]`, and trailing `(args)` suffixes (spec.md §4.B "Property
// access" / "Call" / "MemberCall").
func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Type {
		case lexer.TokenDot:
			if err := gate(p.flags.AllowObjectNavigation, "allow_object_navigation", p.currentLoc()); err != nil {
				return nil, err
			}
			p.advance()
			name, err := p.expect(lexer.TokenIdentifier, "identifier")
			if err != nil {
				return nil, err
			}
			if p.peek().Type == lexer.TokenLParen {
				args, argsEndLoc, err := p.parseArgList()
				if err != nil {
					return nil, err
				}
				expr = &ast.MemberCallExpression{
					Object: expr, Computed: false, PropertyName: name.Text, Args: args,
					Loc: ast.Span(expr.Location(), argsEndLoc),
				}
			} else {
				expr = &ast.MemberExpression{
					Object: expr, Computed: false, PropertyName: name.Text,
					Loc: ast.Span(expr.Location(), p.locOf(name.Span)),
				}
			}
		case lexer.TokenLBracket:
			if err := gate(p.flags.AllowObjectNavigation, "allow_object_navigation", p.currentLoc()); err != nil {
				return nil, err
			}
			p.advance()
			propExpr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			closeTok, err := p.expect(lexer.TokenRBracket, "']'")
			if err != nil {
				return nil, err
			}
			if p.peek().Type == lexer.TokenLParen {
				args, argsEndLoc, err := p.parseArgList()
				if err != nil {
					return nil, err
				}
				expr = &ast.MemberCallExpression{
					Object: expr, Computed: true, PropertyExpr: propExpr, Args: args,
					Loc: ast.Span(expr.Location(), argsEndLoc),
				}
			} else {
				expr = &ast.MemberExpression{
					Object: expr, Computed: true, PropertyExpr: propExpr,
					Loc: ast.Span(expr.Location(), p.locOf(closeTok.Span)),
				}
			}
		default:
			return expr, nil
		}
	}
}

// parseArgList parses `(args)` and returns the arguments plus the location
// of the closing paren. A trailing inline-callback argument (`cb ...`)
// after a comma is accepted the same way as any other argument expression
// (spec.md §9, Open Question c), since InlineCallbackExpression is just
// another primary.
func (p *Parser) parseArgList() ([]ast.Expression, ast.SourceLocation, error) {
	p.advance() // '('
	var args []ast.Expression
	for p.peek().Type != lexer.TokenRParen {
		if len(args) > 0 {
			if _, err := p.expect(lexer.TokenComma, "','"); err != nil {
				return nil, ast.SourceLocation{}, err
			}
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, ast.SourceLocation{}, err
		}
		args = append(args, arg)
	}
	closeTok, err := p.expect(lexer.TokenRParen, "')'")
	if err != nil {
		return nil, ast.SourceLocation{}, err
	}
	return args, p.locOf(closeTok.Span), nil
}

// parsePrimary parses the innermost expression forms. `{` always means an
// object literal here — object-expression mode is only ever entered from
// this function (spec.md §9).
func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()
	loc := p.currentLoc()

	switch tok.Type {
	case lexer.TokenMinus:
		// A leading Minus folds into a negative NumberLiteral only when
		// immediately followed by a Number token; this is the one place
		// the grammar allows a signed numeric literal (see lexer.lexNumber).
		if p.peekAt(1).Type == lexer.TokenNumber {
			minusTok := p.advance()
			numTok := p.advance()
			return &ast.NumberLiteral{Value: -numTok.Num, Loc: ast.Span(p.locOf(minusTok.Span), p.locOf(numTok.Span))}, nil
		}
		return nil, unexpectedToken(loc, "unexpected '-'")

	case lexer.TokenNumber:
		p.advance()
		return &ast.NumberLiteral{Value: tok.Num, Loc: loc}, nil

	case lexer.TokenString:
		p.advance()
		return &ast.StringLiteral{Value: tok.Str, Loc: loc}, nil

	case lexer.TokenTrue:
		p.advance()
		return &ast.BooleanLiteral{Value: true, Loc: loc}, nil

	case lexer.TokenFalse:
		p.advance()
		return &ast.BooleanLiteral{Value: false, Loc: loc}, nil

	case lexer.TokenNull:
		p.advance()
		return &ast.NullLiteral{Loc: loc}, nil

	case lexer.TokenIdentifier:
		p.advance()
		if p.peek().Type == lexer.TokenLParen {
			args, endLoc, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			return &ast.CallExpression{Callee: tok.Text, Args: args, Loc: ast.Span(loc, endLoc)}, nil
		}
		return &ast.Identifier{Name: tok.Text, Loc: loc}, nil

	case lexer.TokenLParen:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil

	case lexer.TokenLBracket:
		return p.parseArrayLiteral()

	case lexer.TokenLBrace:
		return p.parseObjectLiteral()

	case lexer.TokenKeysof:
		return p.parseKeysOf()

	case lexer.TokenCb:
		return p.parseInlineCallback()

	case lexer.TokenEOF:
		return nil, endOfInput(loc)

	default:
		return nil, unexpectedToken(loc, fmt.Sprintf("unexpected token %q", tok.Text))
	}
}

func (p *Parser) parseArrayLiteral() (ast.Expression, error) {
	if err := gate(p.flags.AllowArrayConstructions, "allow_array_constructions", p.currentLoc()); err != nil {
		return nil, err
	}
	open := p.advance() // '['
	var elems []ast.Expression
	for p.peek().Type != lexer.TokenRBracket {
		if len(elems) > 0 {
			if _, err := p.expect(lexer.TokenComma, "','"); err != nil {
				return nil, err
			}
		}
		el, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, el)
	}
	close, err := p.expect(lexer.TokenRBracket, "']'")
	if err != nil {
		return nil, err
	}
	return &ast.ArrayExpression{Elements: elems, Loc: ast.Span(p.locOf(open.Span), p.locOf(close.Span))}, nil
}

func (p *Parser) parseObjectLiteral() (ast.Expression, error) {
	if err := gate(p.flags.AllowObjectConstructions, "allow_object_constructions", p.currentLoc()); err != nil {
		return nil, err
	}
	open := p.advance() // '{'
	var props []ast.ObjectProperty
	for p.peek().Type != lexer.TokenRBrace {
		if len(props) > 0 {
			if _, err := p.expect(lexer.TokenComma, "','"); err != nil {
				return nil, err
			}
		}
		keyLoc := p.currentLoc()
		var key string
		switch p.peek().Type {
		case lexer.TokenIdentifier:
			key = p.advance().Text
		case lexer.TokenString:
			key = p.advance().Str
		default:
			return nil, expectedToken(keyLoc, "property key")
		}
		if _, err := p.expect(lexer.TokenColon, "':'"); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		props = append(props, ast.ObjectProperty{Key: key, Value: value, Loc: ast.Span(keyLoc, value.Location())})
	}
	close, err := p.expect(lexer.TokenRBrace, "'}'")
	if err != nil {
		return nil, err
	}
	return &ast.ObjectExpression{Properties: props, Loc: ast.Span(p.locOf(open.Span), p.locOf(close.Span))}, nil
}

// parseKeysOf parses `keysof primary`, allowing member access to chain onto
// the operand before the KeysOfExpression is built (spec.md §4.B).
func (p *Parser) parseKeysOf() (ast.Expression, error) {
	if err := gate(p.flags.AllowObjectKeys, "allow_object_keys", p.currentLoc()); err != nil {
		return nil, err
	}
	start := p.advance() // keysof
	operand, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	return &ast.KeysOfExpression{Object: operand, Loc: ast.Span(p.locOf(start.Span), operand.Location())}, nil
}

// parseInlineCallback parses the same `cb NAME? (params) { body }` shape as
// a CallbackDeclaration, but in expression position: it declares a
// transient callback and evaluates to a reference to it (spec.md §4.E). The
// grammar is identical whether or not the caller supplies a name, so we
// generate one when absent — usage as a host-visible call argument is what
// gives the parameters their identity, not the declared name.
func (p *Parser) parseInlineCallback() (ast.Expression, error) {
	if err := gate(p.flags.AllowCallbacks, "allow_callbacks", p.currentLoc()); err != nil {
		return nil, err
	}
	start := p.advance() // cb
	name := fmt.Sprintf("__inline_callback_%d", p.inlineCounter)
	p.inlineCounter++
	if p.peek().Type == lexer.TokenIdentifier {
		name = p.advance().Text
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.InlineCallbackExpression{
		Name:   name,
		Params: params,
		Body:   body,
		Loc:    ast.Span(p.locOf(start.Span), body.Loc),
	}, nil
}
