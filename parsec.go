/*
Package parsec is a parser-combinator library.

Consists of subpackages:
  - cmd/parsec: console utility checking grammar descriptions, parsing files with them,
    generating Go source files containing grammar definitions, and serving grammar diagnostics over LSP;
  - langdef: compiles grammar description (written in EBNF-like language) to a table of named rules;
  - parser: combinators, parse results, and the rule table;
  - parsecgen: converts a table of named rules to Go source, JSON, or EBNF;
  - source: defines named source text with line/column lookup;
  - tree: functions to traverse, filter, and serialize parse results.

Typical usage is:

1. Describe grammar in EBNF-like language, or build it directly with parser.Builder.

2. Compile grammar description using either langdef subpackage "on the fly"
or parsec utility to generate Go file.

3. Parse source text with the root rule and walk the result tree.
*/
package parsec

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	GrammarErrors   = 1   // used by langdef
	SyntaxErrors    = 101 // used by parser
	GeneratorErrors = 201 // used by parsecgen
)

// Error is the error type used by parsec subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos implements this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// line and col will be added to error message if provided (non-zero), name is added if not empty.
func NewError(code int, msg, name string, line, col int) *Error {
	if line != 0 && col != 0 {
		if name == "" {
			msg += fmt.Sprintf(" at line %d col %d", line, col)
		} else {
			msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
		}
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}
