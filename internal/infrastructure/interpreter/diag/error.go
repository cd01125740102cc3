// Package diag holds the error type shared by every interpreter stage.
package diag

import (
	"errors"
	"fmt"
)

// Kind names the stage that rejected the program
type Kind string

// Error kinds
const (
	KindLex      Kind = "Lex"
	KindParse    Kind = "Parse"
	KindSemantic Kind = "Semantic"
	KindRuntime  Kind = "Runtime"
	KindStack    Kind = "Stack"
)

// Error is a located interpreter failure.
type Error struct {
	Kind Kind
	Line int
	Msg  string
	// Near is the offending input for lexing failures.
	Near string
}

func (e *Error) Error() string {
	if e.Kind == KindLex {
		return fmt.Sprintf("%s at line %d: '%s'", e.Msg, e.Line, e.Near)
	}
	return fmt.Sprintf("%s error on line %d: %s", e.Kind, e.Line, e.Msg)
}

// Lexf creates a lexing error for the input near the failure
func Lexf(line int, near string, format string, args ...interface{}) *Error {
	return &Error{Kind: KindLex, Line: line, Near: near, Msg: fmt.Sprintf(format, args...)}
}

// Parsef creates a parse error
func Parsef(line int, format string, args ...interface{}) *Error {
	return &Error{Kind: KindParse, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Semanticf creates a semantic error
func Semanticf(line int, format string, args ...interface{}) *Error {
	return &Error{Kind: KindSemantic, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Runtimef creates a runtime error
func Runtimef(line int, format string, args ...interface{}) *Error {
	return &Error{Kind: KindRuntime, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Stackf creates a call stack error
func Stackf(line int, format string, args ...interface{}) *Error {
	return &Error{Kind: KindStack, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of err if it wraps an *Error
func KindOf(err error) (Kind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}
