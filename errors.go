package logicexpr

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying the failure kind. Use errors.Is against them.
var (
	// ErrLex is matched by every *LexError.
	ErrLex = errors.New("logicexpr: lexical error")

	// ErrParse is matched by every *ParseError, including lexical failures reported by Parse.
	ErrParse = errors.New("logicexpr: parse error")

	// ErrUndefinedVariable is returned when an identifier is missing from the context.
	ErrUndefinedVariable = errors.New("logicexpr: undefined variable")

	// ErrTypeMismatch is returned when an operator is applied to types it does not support.
	ErrTypeMismatch = errors.New("logicexpr: type mismatch")

	// ErrInvalidPattern is returned when the right side of =~ is not a valid regular expression.
	ErrInvalidPattern = errors.New("logicexpr: invalid pattern")

	// ErrExpectedBoolean is returned when an identifier used as a condition is not a boolean.
	ErrExpectedBoolean = errors.New("logicexpr: expected boolean")

	// ErrInvalidExpression is returned for a nil expression or a tree with missing nodes.
	ErrInvalidExpression = errors.New("logicexpr: invalid expression")

	// ErrUnknownField is returned by Schema.Validate for identifiers missing from the schema.
	ErrUnknownField = errors.New("logicexpr: unknown field")
)

// LexError reports input that cannot begin a valid token.
type LexError struct {
	Pos int
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at position %d: %s", e.Pos, e.Msg)
}

// Is reports whether target is ErrLex.
func (e *LexError) Is(target error) bool {
	return target == ErrLex
}

// ParseError reports a token sequence that does not match the grammar.
type ParseError struct {
	Pos   int
	Token Token
	Msg   string
	// Err is the lexer error when tokenization failed.
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %v", e.Err)
	}
	return fmt.Sprintf("parse error at position %d: %s", e.Pos, e.Msg)
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Unwrap returns the underlying lexer error, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// EvalError reports a failure while evaluating a parsed expression.
type EvalError struct {
	// Err is one of ErrUndefinedVariable, ErrTypeMismatch, ErrInvalidPattern or ErrExpectedBoolean.
	Err error

	Name     string    // identifier, for undefined variables and non-boolean conditions
	Operator TokenType // comparison operator, for type mismatches
	Left     Type
	Right    Type
	Pattern  string // offending pattern, for invalid patterns
	Cause    error  // regexp compile error, for invalid patterns
}

func (e *EvalError) Error() string {
	switch e.Err {
	case ErrUndefinedVariable:
		return fmt.Sprintf("%v: %s", e.Err, e.Name)
	case ErrExpectedBoolean:
		return fmt.Sprintf("%v: %s is %s", e.Err, e.Name, e.Left)
	case ErrTypeMismatch:
		return fmt.Sprintf("%v: operator %s is not defined for %s and %s", e.Err, e.Operator, e.Left, e.Right)
	case ErrInvalidPattern:
		return fmt.Sprintf("%v: %q: %v", e.Err, e.Pattern, e.Cause)
	}
	return fmt.Sprintf("evaluation error: %v", e.Err)
}

// Unwrap returns the error kind and, for invalid patterns, the regexp error.
func (e *EvalError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

func undefinedVariable(name string) error {
	return &EvalError{Err: ErrUndefinedVariable, Name: name}
}

func typeMismatch(op TokenType, left, right Value) error {
	return &EvalError{Err: ErrTypeMismatch, Operator: op, Left: left.Type(), Right: right.Type()}
}
