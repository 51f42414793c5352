package langdef

import (
	"strings"

	"github.com/ava12/parsec"
	"github.com/ava12/parsec/parser"
)

const (
	SyntaxError = iota + parsec.GrammarErrors
	WrongRegexError
	WrongEscapeError
	UndefinedRuleError
	EmptyGrammarError
)

func syntaxError(r *parser.Result) *parsec.Error {
	return parsec.FormatErrorPos(r.ErrorPos(), SyntaxError, "%s", r.ErrorMessage())
}

func regexError(n *parser.Result, e error) *parsec.Error {
	return parsec.FormatErrorPos(n.Pos(), WrongRegexError, "incorrect regex %s (%s)", n.Value(), e.Error())
}

func escapeError(n *parser.Result, seq string) *parsec.Error {
	return parsec.FormatErrorPos(n.Pos(), WrongEscapeError, "unknown escape sequence %q in string %s", seq, n.Value())
}

func undefinedRuleError(pos parsec.SourcePos, names []string) *parsec.Error {
	return parsec.FormatErrorPos(pos, UndefinedRuleError, "undefined rules: %s", strings.Join(names, ", "))
}

func emptyGrammarError(name string) *parsec.Error {
	return parsec.NewError(EmptyGrammarError, "grammar defines no rules", name, 0, 0)
}
