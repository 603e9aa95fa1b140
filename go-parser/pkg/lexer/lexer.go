package lexer

import (
	"strings"
)

// Lexer scans hexput source text into a token stream. It is a single-pass,
// hand-rolled scanner: whitespace and `//` line comments are skipped inline,
// invalid bytes are silently dropped (spec.md §4.A) rather than raised here —
// a parser asking for a token past a run of garbage simply sees whatever
// valid token follows, or EOF.
type Lexer struct {
	src []byte
	pos int
}

// New creates a Lexer over src.
func New(src string) *Lexer {
	return &Lexer{src: []byte(src)}
}

// Tokenize scans the entire source and returns the resulting token stream,
// always terminated by a single TokenEOF.
func Tokenize(src string) []Token {
	l := New(src)
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return toks
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) skipTrivia() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case ' ', '\t', '\n', '\f', '\r':
			l.pos++
			continue
		}
		if c == '/' && l.peekByteAt(1) == '/' {
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		break
	}
}

// Next scans and returns the next token, advancing the cursor. Returns a
// TokenEOF token (with a zero-length span at end of input) once exhausted.
func (l *Lexer) Next() Token {
	for {
		l.skipTrivia()
		if l.pos >= len(l.src) {
			return Token{Type: TokenEOF, Span: Span{Start: l.pos, End: l.pos}}
		}

		start := l.pos
		c := l.src[l.pos]

		switch {
		case isIdentStart(c):
			return l.lexIdentifier(start)
		case c == '"':
			return l.lexString(start)
		case isDigit(c):
			if tok, ok := l.lexNumber(start); ok {
				return tok
			}
		}

		if tok, ok := l.lexOperator(start); ok {
			return tok
		}

		// Unrecognised byte: drop it and keep scanning (spec.md §4.A).
		l.pos++
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (l *Lexer) lexIdentifier(start int) Token {
	l.pos++
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	text := string(l.src[start:l.pos])
	typ := TokenIdentifier
	if kw, ok := Keywords[text]; ok {
		typ = kw
	}
	return Token{Type: typ, Text: text, Span: Span{Start: start, End: l.pos}}
}

// lexNumber scans an unsigned decimal literal `[0-9]+(\.[0-9]+)?`. A leading
// minus sign is not part of the number token: it always lexes as TokenMinus
// so that `a-b` tokenizes identically to `a - b`. The parser folds a Minus
// immediately followed by a Number into a negative NumberLiteral when it is
// parsing a fresh operand (see parser.parsePrimary), which is the only place
// spec.md's grammar allows a numeric literal to carry a sign — there is no
// general unary-minus expression (§3: UnaryExpression's op is Not only).
func (l *Lexer) lexNumber(start int) (Token, bool) {
	p := start
	digitsStart := p
	for p < len(l.src) && isDigit(l.src[p]) {
		p++
	}
	if p == digitsStart {
		return Token{}, false
	}
	if p < len(l.src) && l.src[p] == '.' && p+1 < len(l.src) && isDigit(l.src[p+1]) {
		p++
		for p < len(l.src) && isDigit(l.src[p]) {
			p++
		}
	}
	text := string(l.src[start:p])
	var num float64
	num = parseFloat(text)
	l.pos = p
	return Token{Type: TokenNumber, Text: text, Num: num, Span: Span{Start: start, End: p}}, true
}

// parseFloat avoids pulling in strconv's error machinery at call sites;
// the lexer has already validated the grammar of text (unsigned digits with
// an optional fractional part).
func parseFloat(text string) float64 {
	intPart := text
	fracPart := ""
	if i := strings.IndexByte(text, '.'); i >= 0 {
		intPart = text[:i]
		fracPart = text[i+1:]
	}
	var v float64
	for i := 0; i < len(intPart); i++ {
		v = v*10 + float64(intPart[i]-'0')
	}
	scale := 1.0
	for i := 0; i < len(fracPart); i++ {
		scale *= 10
		v += float64(fracPart[i]-'0') / scale
	}
	return v
}

func (l *Lexer) lexString(start int) Token {
	l.pos++ // skip opening quote
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '"' {
			l.pos++
			break
		}
		if c == '\\' && l.pos+1 < len(l.src) {
			next := l.src[l.pos+1]
			switch next {
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte('\\')
				b.WriteByte(next)
			}
			l.pos += 2
			continue
		}
		b.WriteByte(c)
		l.pos++
	}
	return Token{Type: TokenString, Str: b.String(), Span: Span{Start: start, End: l.pos}}
}

// lexOperator consumes punctuation/operator tokens at the cursor, preferring
// the longest match (e.g. `==` over `=`, `&&` before falling back to nothing
// for a lone `&`, which hexput has no single-`&` operator for).
func (l *Lexer) lexOperator(start int) (Token, bool) {
	two := func(a, b byte, typ TokenType) (Token, bool) {
		if l.peekByte() == a && l.peekByteAt(1) == b {
			l.pos += 2
			return Token{Type: typ, Text: string(a) + string(b), Span: Span{Start: start, End: l.pos}}, true
		}
		return Token{}, false
	}

	if tok, ok := two('=', '=', TokenEqual); ok {
		return tok, true
	}
	if tok, ok := two('!', '=', TokenNotEqual); ok {
		return tok, true
	}
	if tok, ok := two('&', '&', TokenAnd); ok {
		return tok, true
	}
	if tok, ok := two('|', '|', TokenOr); ok {
		return tok, true
	}
	if tok, ok := two('>', '=', TokenGreaterEqual); ok {
		return tok, true
	}
	if tok, ok := two('<', '=', TokenLessEqual); ok {
		return tok, true
	}

	single := map[byte]TokenType{
		'!': TokenNot,
		'=': TokenAssign,
		'+': TokenPlus,
		'-': TokenMinus,
		'*': TokenStar,
		'/': TokenSlash,
		'>': TokenGreater,
		'<': TokenLess,
		'{': TokenLBrace,
		'}': TokenRBrace,
		'(': TokenLParen,
		')': TokenRParen,
		',': TokenComma,
		';': TokenSemi,
		'[': TokenLBracket,
		']': TokenRBracket,
		':': TokenColon,
		'.': TokenDot,
	}
	if typ, ok := single[l.peekByte()]; ok {
		l.pos++
		return Token{Type: typ, Text: string(l.src[start:l.pos]), Span: Span{Start: start, End: l.pos}}, true
	}
	return Token{}, false
}
