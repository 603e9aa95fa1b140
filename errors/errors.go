// Package errors defines hexput's RuntimeError kinds (spec.md §7): the
// shapes that can surface from parsing, evaluation, and the host protocol,
// carrying enough structure for a session response's `error` field.
package errors

import (
	"fmt"
	"time"

	"go-parser/pkg/ast"
)

// Kind enumerates the runtime/protocol error shapes of spec.md §7.
type Kind string

const (
	KindExecutionError             Kind = "EXECUTION_ERROR"
	KindExecutionErrorWithLocation Kind = "EXECUTION_ERROR_WITH_LOCATION"
	KindFunctionNotFound           Kind = "FUNCTION_NOT_FOUND"
	KindFunctionCallError          Kind = "FUNCTION_CALL_ERROR"
	KindTimeout                    Kind = "TIMEOUT"
	KindInvalidRequestFormat       Kind = "INVALID_REQUEST_FORMAT"
	KindMissingField               Kind = "MISSING_FIELD"
	KindMessageParsingError        Kind = "MESSAGE_PARSING_ERROR"
)

// ForbiddenKeyMessage is the fixed message used for every forbidden-key
// rejection (spec.md §7), independent of the configured key name or the
// access path that tripped it.
const ForbiddenKeyMessage = "access to this key is restricted"

// RuntimeError is the error type produced anywhere in the interpreter,
// builtins, or host protocol layers. A nil Location means the error is
// unlocated; callers one level up wrap it with their own statement's
// location (spec.md §7 "the caller wraps it with the current statement's
// location").
type RuntimeError struct {
	Kind      Kind
	Message   string
	Location  *ast.SourceLocation
	Function  string // populated for FunctionNotFound / FunctionCallError
	Timestamp time.Time
	Cause     error
}

func (e *RuntimeError) Error() string {
	if e.Location != nil {
		return fmt.Sprintf("[%s] %s (line %d col %d)", e.Kind, e.Message, e.Location.StartLine, e.Location.StartColumn)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *RuntimeError) Unwrap() error {
	return e.Cause
}

// WithLocation returns a copy of e tagged with loc, upgrading a bare
// ExecutionError to ExecutionErrorWithLocation if it did not already carry
// one — the wrap-at-the-caller discipline from spec.md §7.
func (e *RuntimeError) WithLocation(loc ast.SourceLocation) *RuntimeError {
	if e.Location != nil {
		return e
	}
	kind := e.Kind
	if kind == KindExecutionError {
		kind = KindExecutionErrorWithLocation
	}
	cp := *e
	cp.Kind = kind
	cp.Location = &loc
	return &cp
}

func newError(kind Kind, msg string) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: msg, Timestamp: time.Now()}
}

// Execution builds an unlocated ExecutionError.
func Execution(msg string) *RuntimeError {
	return newError(KindExecutionError, msg)
}

// ExecutionAt builds an ExecutionErrorWithLocation directly.
func ExecutionAt(msg string, loc ast.SourceLocation) *RuntimeError {
	e := newError(KindExecutionErrorWithLocation, msg)
	e.Location = &loc
	return e
}

// ForbiddenKeyAt builds the fixed forbidden-key rejection at loc
// (spec.md §7).
func ForbiddenKeyAt(loc ast.SourceLocation) *RuntimeError {
	return ExecutionAt(ForbiddenKeyMessage, loc)
}

// FunctionNotFound builds a FunctionNotFoundError: the host's existence
// probe returned false, or timed out, for name.
func FunctionNotFound(name string, loc ast.SourceLocation) *RuntimeError {
	e := newError(KindFunctionNotFound, fmt.Sprintf("function %q not found", name))
	e.Function = name
	e.Location = &loc
	return e
}

// FunctionCallFailed builds a FunctionCallError from the host's reported
// error field.
func FunctionCallFailed(name, hostErr string, loc ast.SourceLocation) *RuntimeError {
	e := newError(KindFunctionCallError, hostErr)
	e.Function = name
	e.Location = &loc
	return e
}

// Timeout builds a TimeoutError for a correlated call that never replied
// within its deadline.
func Timeout(name string, loc ast.SourceLocation) *RuntimeError {
	e := newError(KindTimeout, fmt.Sprintf("timed out waiting for %q", name))
	e.Function = name
	e.Location = &loc
	return e
}

// InvalidRequestFormat builds a protocol-level rejection for a frame that
// does not match any known shape.
func InvalidRequestFormat(msg string) *RuntimeError {
	return newError(KindInvalidRequestFormat, msg)
}

// MissingField builds a protocol-level rejection for a frame missing a
// required field.
func MissingField(field string) *RuntimeError {
	return newError(KindMissingField, fmt.Sprintf("missing required field %q", field))
}

// MessageParsingFailed wraps a JSON decode failure on an inbound frame.
func MessageParsingFailed(cause error) *RuntimeError {
	e := newError(KindMessageParsingError, cause.Error())
	e.Cause = cause
	return e
}

// AsRuntimeError unwraps err to a *RuntimeError if it is one.
func AsRuntimeError(err error) (*RuntimeError, bool) {
	re, ok := err.(*RuntimeError)
	return re, ok
}

// WrapAt applies the caller-wraps-with-current-statement's-location
// discipline (spec.md §7) to any error: a *RuntimeError is upgraded via
// WithLocation (a no-op if it already carries a location); any other error
// becomes a new located ExecutionError wrapping it as Cause.
func WrapAt(err error, loc ast.SourceLocation) error {
	if err == nil {
		return nil
	}
	if re, ok := AsRuntimeError(err); ok {
		return re.WithLocation(loc)
	}
	e := ExecutionAt(err.Error(), loc)
	e.Cause = err
	return e
}
