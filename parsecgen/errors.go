package parsecgen

import (
	"github.com/ava12/parsec"
	"github.com/ava12/parsec/parser"
)

const (
	EmptyGrammarError = iota + parsec.GeneratorErrors
	UnresolvedRuleError
	UnknownRootError
	InvalidNameError
	NameConflictError
	UnsupportedParserError
	VerificationError
)

func emptyGrammarError() *parsec.Error {
	return parsec.FormatError(EmptyGrammarError, "grammar defines no rules")
}

func unresolvedRuleError(names []string) *parsec.Error {
	return parsec.FormatError(UnresolvedRuleError, "unresolved rules: %v", names)
}

func unknownRootError(name string) *parsec.Error {
	return parsec.FormatError(UnknownRootError, "unknown root rule %q", name)
}

func invalidNameError(kind, name string) *parsec.Error {
	return parsec.FormatError(InvalidNameError, "invalid %s name: %q", kind, name)
}

func nameConflictError(a, b, ident string) *parsec.Error {
	return parsec.FormatError(NameConflictError, "rules %s and %s have the same identifier %s", a, b, ident)
}

func unsupportedParserError(p parser.Parser) *parsec.Error {
	return parsec.FormatError(UnsupportedParserError, "unsupported combinator %T (%s)", p, p.String())
}

func verificationError(e error) *parsec.Error {
	return parsec.FormatError(VerificationError, "%s", e.Error())
}
