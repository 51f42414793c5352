package parser

import (
	"strings"

	"github.com/ava12/parsec"
)

// ErrorType classifies failed attempts.
type ErrorType int

const (
	NoError ErrorType = iota
	// SubParserError means that the attempt failed because one of its children failed.
	SubParserError
	// ExpectedTokenError means that a terminal did not match.
	ExpectedTokenError
	// InvalidGrammarError means that left recursion was detected.
	InvalidGrammarError
	// NullParserError means that a never-matching combinator was reached.
	NullParserError
)

var errorTypeNames = [...]string{"None", "SubParser", "ExpectedToken", "InvalidGrammar", "NullParser"}

func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "Unknown"
	}
	return errorTypeNames[t]
}

// Error codes returned by Result.Err:
const (
	UnexpectedInputError = iota + parsec.SyntaxErrors
	UnexpectedEoiError
	LeftRecursionError
	NoMatchError
)

func (r *Result) errorCode(leaf *Result) int {
	switch leaf.errorType {
	case InvalidGrammarError:
		return LeftRecursionError
	case NullParserError:
		return NoMatchError
	}
	if leaf.errorIndex >= len(r.ctx.text) {
		return UnexpectedEoiError
	}
	return UnexpectedInputError
}

// expectedList joins descriptions as "A", "A or B", "A, B, or C".
func expectedList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	}

	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
			if i == len(items)-1 {
				sb.WriteString("or ")
			}
		}
		sb.WriteString(item)
	}
	return sb.String()
}

func errorMessage(errs []*Result) string {
	if len(errs) == 0 {
		return ""
	}

	for _, e := range errs {
		if e.errorType != ExpectedTokenError && e.errorType != SubParserError {
			return e.errorText
		}
	}

	seen := make(map[string]bool, len(errs))
	items := make([]string, 0, len(errs))
	for _, e := range errs {
		x := e.Expected()
		if !seen[x] {
			seen[x] = true
			items = append(items, x)
		}
	}
	return "Expected " + expectedList(items)
}
