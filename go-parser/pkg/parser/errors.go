package parser

import (
	"fmt"

	"go-parser/pkg/ast"
)

// ErrorKind enumerates the four non-recoverable parse failure shapes
// (spec.md §4.B / §7). Every ParseError carries a SourceLocation pointing
// to the first offending byte.
type ErrorKind string

const (
	KindUnexpectedToken ErrorKind = "UnexpectedToken"
	KindExpectedToken   ErrorKind = "ExpectedToken"
	KindEndOfInput      ErrorKind = "EndOfInput"
	KindFeatureDisabled ErrorKind = "FeatureDisabled"
)

// ParseError aborts the parse; there is no recovery or partial AST.
type ParseError struct {
	Kind     ErrorKind
	Message  string
	Feature  string // populated only for KindFeatureDisabled
	Location ast.SourceLocation
}

func (e *ParseError) Error() string {
	if e.Kind == KindFeatureDisabled {
		return fmt.Sprintf("%s: %s at %d:%d", e.Kind, e.Feature, e.Location.StartLine, e.Location.StartColumn)
	}
	return fmt.Sprintf("%s: %s at %d:%d", e.Kind, e.Message, e.Location.StartLine, e.Location.StartColumn)
}

func unexpectedToken(loc ast.SourceLocation, msg string) error {
	return &ParseError{Kind: KindUnexpectedToken, Message: msg, Location: loc}
}

func expectedToken(loc ast.SourceLocation, what string) error {
	return &ParseError{Kind: KindExpectedToken, Message: what, Location: loc}
}

func endOfInput(loc ast.SourceLocation) error {
	return &ParseError{Kind: KindEndOfInput, Message: "unexpected end of input", Location: loc}
}

func featureDisabled(feature string, loc ast.SourceLocation) error {
	return &ParseError{Kind: KindFeatureDisabled, Feature: feature, Location: loc}
}
