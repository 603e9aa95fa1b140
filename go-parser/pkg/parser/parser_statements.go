package parser

import (
	"go-parser/pkg/ast"
	"go-parser/pkg/lexer"
)

// parseStatement dispatches on the leading token. Every gated construct is
// checked for its feature flag before any further parsing happens, so a
// disabled construct fails with FeatureDisabled even when the remaining
// tokens would otherwise parse cleanly (spec.md §4.B).
func (p *Parser) parseStatement() (ast.Statement, error) {
	tok := p.peek()
	loc := p.currentLoc()

	switch tok.Type {
	case lexer.TokenVl:
		if err := gate(p.flags.AllowVariableDeclaration, "allow_variable_declaration", loc); err != nil {
			return nil, err
		}
		return p.parseVariableDeclaration()
	case lexer.TokenIf:
		if err := gate(p.flags.AllowConditionals, "allow_conditionals", loc); err != nil {
			return nil, err
		}
		return p.parseIfStatement()
	case lexer.TokenLoop:
		if err := gate(p.flags.AllowLoops, "allow_loops", loc); err != nil {
			return nil, err
		}
		return p.parseLoopStatement()
	case lexer.TokenCb:
		if err := gate(p.flags.AllowCallbacks, "allow_callbacks", loc); err != nil {
			return nil, err
		}
		return p.parseCallbackDeclaration()
	case lexer.TokenRes:
		if err := gate(p.flags.AllowReturnStatements, "allow_return_statements", loc); err != nil {
			return nil, err
		}
		return p.parseReturnStatement()
	case lexer.TokenEnd:
		if err := gate(p.flags.AllowLoopControl, "allow_loop_control", loc); err != nil {
			return nil, err
		}
		return p.parseEndStatement()
	case lexer.TokenContinue:
		if err := gate(p.flags.AllowLoopControl, "allow_loop_control", loc); err != nil {
			return nil, err
		}
		return p.parseContinueStatement()
	case lexer.TokenLBrace:
		return p.parseBlock()
	case lexer.TokenEOF:
		return nil, endOfInput(loc)
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseVariableDeclaration() (ast.Statement, error) {
	start := p.advance() // vl
	name, err := p.expect(lexer.TokenIdentifier, "identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenAssign, "'='"); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	semi, err := p.expect(lexer.TokenSemi, "';'")
	if err != nil {
		return nil, err
	}
	return &ast.VariableDeclaration{
		Name:  name.Text,
		Value: value,
		Loc:   ast.Span(p.locOf(start.Span), p.locOf(semi.Span)),
	}, nil
}

func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	semi, err := p.expect(lexer.TokenSemi, "';'")
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{
		Expr: expr,
		Loc:  ast.Span(expr.Location(), p.locOf(semi.Span)),
	}, nil
}

// parseBlock also serves as the statement-position `{`: in statement
// position `{` is always a block, never an object literal (spec.md §4.B,
// §9 "Parser ambiguity of `{`"); object-expression mode is only entered
// from parsePrimary.
func (p *Parser) parseBlock() (*ast.Block, error) {
	open, err := p.expect(lexer.TokenLBrace, "'{'")
	if err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for p.peek().Type != lexer.TokenRBrace {
		if p.peek().Type == lexer.TokenEOF {
			return nil, endOfInput(p.currentLoc())
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	close, err := p.expect(lexer.TokenRBrace, "'}'")
	if err != nil {
		return nil, err
	}
	return &ast.Block{Statements: stmts, Loc: ast.Span(p.locOf(open.Span), p.locOf(close.Span))}, nil
}

func (p *Parser) parseIfStatement() (ast.Statement, error) {
	start := p.advance() // if
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	endLoc := then.Loc
	var elseBlock *ast.Block
	if p.peek().Type == lexer.TokenElse {
		p.advance()
		if p.peek().Type == lexer.TokenIf {
			nested, err := p.parseIfStatement()
			if err != nil {
				return nil, err
			}
			elseBlock = &ast.Block{Statements: []ast.Statement{nested}, Loc: nested.Location()}
		} else {
			elseBlock, err = p.parseBlock()
			if err != nil {
				return nil, err
			}
		}
		endLoc = elseBlock.Loc
	}
	return &ast.IfStatement{
		Condition: cond,
		Then:      then,
		Else:      elseBlock,
		Loc:       ast.Span(p.locOf(start.Span), endLoc),
	}, nil
}

func (p *Parser) parseLoopStatement() (ast.Statement, error) {
	start := p.advance() // loop
	binding, err := p.expect(lexer.TokenIdentifier, "identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenIn, "'in'"); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.LoopStatement{
		Binding:  binding.Text,
		Iterable: iterable,
		Body:     body,
		Loc:      ast.Span(p.locOf(start.Span), body.Loc),
	}, nil
}

func (p *Parser) parseCallbackDeclaration() (ast.Statement, error) {
	start := p.advance() // cb
	name, err := p.expect(lexer.TokenIdentifier, "identifier")
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.CallbackDeclaration{
		Name:   name.Text,
		Params: params,
		Body:   body,
		Loc:    ast.Span(p.locOf(start.Span), body.Loc),
	}, nil
}

func (p *Parser) parseParamList() ([]string, error) {
	if _, err := p.expect(lexer.TokenLParen, "'('"); err != nil {
		return nil, err
	}
	var params []string
	for p.peek().Type != lexer.TokenRParen {
		if len(params) > 0 {
			if _, err := p.expect(lexer.TokenComma, "','"); err != nil {
				return nil, err
			}
		}
		name, err := p.expect(lexer.TokenIdentifier, "identifier")
		if err != nil {
			return nil, err
		}
		params = append(params, name.Text)
	}
	if _, err := p.expect(lexer.TokenRParen, "')'"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseReturnStatement() (ast.Statement, error) {
	start := p.advance() // res
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	semi, err := p.expect(lexer.TokenSemi, "';'")
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Value: value, Loc: ast.Span(p.locOf(start.Span), p.locOf(semi.Span))}, nil
}

func (p *Parser) parseEndStatement() (ast.Statement, error) {
	start := p.advance() // end
	semi, err := p.expect(lexer.TokenSemi, "';'")
	if err != nil {
		return nil, err
	}
	return &ast.EndStatement{Loc: ast.Span(p.locOf(start.Span), p.locOf(semi.Span))}, nil
}

func (p *Parser) parseContinueStatement() (ast.Statement, error) {
	start := p.advance() // continue
	semi, err := p.expect(lexer.TokenSemi, "';'")
	if err != nil {
		return nil, err
	}
	return &ast.ContinueStatement{Loc: ast.Span(p.locOf(start.Span), p.locOf(semi.Span))}, nil
}
