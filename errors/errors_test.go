package errors

import (
	stderrors "errors"
	"testing"

	"go-parser/pkg/ast"

	"github.com/stretchr/testify/require"
)

func TestExecutionAtCarriesLocation(t *testing.T) {
	loc := ast.SourceLocation{StartLine: 2, StartColumn: 3}
	e := ExecutionAt("bad thing", loc)
	require.Equal(t, KindExecutionErrorWithLocation, e.Kind)
	require.Equal(t, 2, e.Location.StartLine)
}

func TestWithLocationUpgradesBareExecutionError(t *testing.T) {
	e := Execution("oops")
	require.Nil(t, e.Location)
	loc := ast.SourceLocation{StartLine: 5, StartColumn: 1}
	wrapped := e.WithLocation(loc)
	require.Equal(t, KindExecutionErrorWithLocation, wrapped.Kind)
	require.Equal(t, 5, wrapped.Location.StartLine)
}

func TestWithLocationDoesNotOverwriteExisting(t *testing.T) {
	first := ast.SourceLocation{StartLine: 1, StartColumn: 1}
	second := ast.SourceLocation{StartLine: 9, StartColumn: 9}
	e := ExecutionAt("already located", first)
	wrapped := e.WithLocation(second)
	require.Equal(t, 1, wrapped.Location.StartLine)
}

func TestForbiddenKeyAtUsesFixedMessage(t *testing.T) {
	loc := ast.SourceLocation{StartLine: 1, StartColumn: 1}
	e := ForbiddenKeyAt(loc)
	require.Equal(t, ForbiddenKeyMessage, e.Message)
}

func TestAsRuntimeErrorMatchesOnlyOurType(t *testing.T) {
	e := Execution("x")
	re, ok := AsRuntimeError(e)
	require.True(t, ok)
	require.Equal(t, e, re)

	_, ok = AsRuntimeError(stderrors.New("plain"))
	require.False(t, ok)
}

func TestMessageParsingFailedPreservesCause(t *testing.T) {
	cause := stderrors.New("unexpected end of JSON input")
	e := MessageParsingFailed(cause)
	require.Equal(t, KindMessageParsingError, e.Kind)
	require.ErrorIs(t, e.Unwrap(), cause)
}
