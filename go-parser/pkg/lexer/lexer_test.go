package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func typesOf(toks []Token) []TokenType {
	out := make([]TokenType, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Type)
	}
	return out
}

func TestTokenizeBasicExpression(t *testing.T) {
	toks := Tokenize("vl x = 2 + 3 * 4;")
	require.Equal(t, []TokenType{
		TokenVl, TokenIdentifier, TokenAssign, TokenNumber, TokenPlus,
		TokenNumber, TokenStar, TokenNumber, TokenSemi, TokenEOF,
	}, typesOf(toks))
}

func TestTokenizeSkipsLineComments(t *testing.T) {
	toks := Tokenize("vl x = 1; // trailing comment\nvl y = 2;")
	require.Equal(t, []TokenType{
		TokenVl, TokenIdentifier, TokenAssign, TokenNumber, TokenSemi,
		TokenVl, TokenIdentifier, TokenAssign, TokenNumber, TokenSemi, TokenEOF,
	}, typesOf(toks))
}

func TestSlashIsNotEatenByCommentRule(t *testing.T) {
	toks := Tokenize("10 / 2")
	require.Equal(t, []TokenType{TokenNumber, TokenSlash, TokenNumber, TokenEOF}, typesOf(toks))
}

func TestMinusAlwaysLexesAsOperator(t *testing.T) {
	toks := Tokenize("3-2")
	require.Equal(t, []TokenType{TokenNumber, TokenMinus, TokenNumber, TokenEOF}, typesOf(toks))
	require.Equal(t, float64(3), toks[0].Num)
	require.Equal(t, float64(2), toks[2].Num)
}

func TestStringEscapes(t *testing.T) {
	toks := Tokenize(`"a\nb\tc\\d\"e\qf"`)
	require.Len(t, toks, 2)
	require.Equal(t, "a\nb\tc\\d\"e\\qf", toks[0].Str)
}

func TestKeywordsTakePriorityOverIdentifiers(t *testing.T) {
	toks := Tokenize("loop i in arr { end; }")
	require.Equal(t, []TokenType{
		TokenLoop, TokenIdentifier, TokenIn, TokenIdentifier, TokenLBrace,
		TokenEnd, TokenSemi, TokenRBrace, TokenEOF,
	}, typesOf(toks))
}

func TestByteSpans(t *testing.T) {
	toks := Tokenize("vl x")
	require.Equal(t, Span{Start: 0, End: 2}, toks[0].Span)
	require.Equal(t, Span{Start: 3, End: 4}, toks[1].Span)
}

func TestInvalidByteIsDropped(t *testing.T) {
	toks := Tokenize("1 @ 2")
	require.Equal(t, []TokenType{TokenNumber, TokenNumber, TokenEOF}, typesOf(toks))
}
