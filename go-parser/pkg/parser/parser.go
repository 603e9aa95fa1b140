// Package parser implements hexput's recursive-descent, precedence-climbing
// parser (spec.md §4.B): token stream to AST, gated by a FeatureFlags value
// so an embedder can reject whole syntactic categories before they ever
// reach the interpreter.
package parser

import (
	"sort"

	"go-parser/pkg/ast"
	"go-parser/pkg/config"
	"go-parser/pkg/lexer"
)

// Parser consumes a pre-lexed token stream. Byte spans on each token are
// converted to line/column SourceLocations against the original source text
// lazily, via a precomputed table of line-start offsets.
type Parser struct {
	toks          []lexer.Token
	pos           int
	lineStarts    []int
	flags         config.FeatureFlags
	inlineCounter int
}

// New constructs a Parser over src, gated by flags.
func New(src string, flags config.FeatureFlags) *Parser {
	return &Parser{
		toks:       lexer.Tokenize(src),
		lineStarts: computeLineStarts(src),
		flags:      flags,
	}
}

// Parse consumes the full token stream and returns the resulting Program,
// or the first ParseError encountered.
func Parse(src string, flags config.FeatureFlags) (*ast.Program, error) {
	return New(src, flags).Parse()
}

// Parse runs the parser to completion.
func (p *Parser) Parse() (*ast.Program, error) {
	var stmts []ast.Statement
	for !p.atEOF() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	var loc ast.SourceLocation
	if len(stmts) > 0 {
		loc = ast.Span(stmts[0].Location(), stmts[len(stmts)-1].Location())
	}
	body := &ast.Block{Statements: stmts, Loc: loc}
	return &ast.Program{Body: body, Loc: loc}, nil
}

func computeLineStarts(src string) []int {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// posToLineCol converts a byte offset into a 1-based (line, column) pair.
func (p *Parser) posToLineCol(offset int) (int, int) {
	idx := sort.Search(len(p.lineStarts), func(i int) bool { return p.lineStarts[i] > offset }) - 1
	if idx < 0 {
		idx = 0
	}
	line := idx + 1
	col := offset - p.lineStarts[idx] + 1
	return line, col
}

// locOf converts a token's byte span into a SourceLocation.
func (p *Parser) locOf(span lexer.Span) ast.SourceLocation {
	sl, sc := p.posToLineCol(span.Start)
	el, ec := p.posToLineCol(span.End)
	return ast.SourceLocation{StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec}
}

func (p *Parser) peek() lexer.Token {
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) lexer.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) atEOF() bool {
	return p.peek().Type == lexer.TokenEOF
}

func (p *Parser) advance() lexer.Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches typ, or fails with
// ExpectedToken / EndOfInput depending on whether the stream is exhausted.
func (p *Parser) expect(typ lexer.TokenType, what string) (lexer.Token, error) {
	tok := p.peek()
	if tok.Type == lexer.TokenEOF {
		return lexer.Token{}, endOfInput(p.locOf(tok.Span))
	}
	if tok.Type != typ {
		return lexer.Token{}, expectedToken(p.locOf(tok.Span), what)
	}
	return p.advance(), nil
}

func (p *Parser) currentLoc() ast.SourceLocation {
	return p.locOf(p.peek().Span)
}

// gate fails with FeatureDisabled at loc if enabled is false.
func gate(enabled bool, feature string, loc ast.SourceLocation) error {
	if !enabled {
		return featureDisabled(feature, loc)
	}
	return nil
}
