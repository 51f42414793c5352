package langdef

import (
	"github.com/ava12/parsec/parser"
)

// grammarParser holds rules of the grammar description language.
type grammarParser struct {
	Whitespace        *parser.NamedParser
	SingleLineComment *parser.NamedParser
	MultiLineComment  *parser.NamedParser
	Ignore            *parser.NamedParser
	NonTerminal       *parser.NamedParser
	String            *parser.NamedParser
	Regex             *parser.NamedParser

	Grammar        *parser.NamedParser
	StatementBlock *parser.NamedParser
	Definition     *parser.NamedParser
	Block          *parser.NamedParser
	SpecialBlock   *parser.NamedParser
	SpecialItem    *parser.NamedParser
	Branch         *parser.NamedParser
	Concat         *parser.NamedParser
	Modifier       *parser.NamedParser
	Term           *parser.NamedParser
}

func newGrammarParser() *grammarParser {
	b := parser.NewBuilder()
	g := &grammarParser{
		Whitespace:        b.Named("Whitespace"),
		SingleLineComment: b.Named("SingleLineComment"),
		MultiLineComment:  b.Named("MultiLineComment"),
		Ignore:            b.Named("Ignore"),
		NonTerminal:       b.Named("NonTerminal"),
		String:            b.Named("String"),
		Regex:             b.Named("Regex"),
		Grammar:           b.Named("Grammar"),
		StatementBlock:    b.Named("StatementBlock"),
		Definition:        b.Named("Definition"),
		Block:             b.Named("Block"),
		SpecialBlock:      b.Named("SpecialBlock"),
		SpecialItem:       b.Named("SpecialItem"),
		Branch:            b.Named("Branch"),
		Concat:            b.Named("Concat"),
		Modifier:          b.Named("Modifier"),
		Term:              b.Named("Term"),
	}

	b.Define(g.Whitespace, b.Regex(`\s+`))
	b.Define(g.SingleLineComment, b.Regex(`//[^\n]*`))
	b.Define(g.MultiLineComment, b.Regex(`/\*(?:[^*]|\*+[^*/])*\*+/`))
	b.Define(g.Ignore, b.Either(b.Ref(g.Whitespace), b.Ref(g.SingleLineComment), b.Ref(g.MultiLineComment)))
	b.Define(g.NonTerminal, b.RegexIgnoreCase(`[a-z_][a-z0-9_]*(?:\.[a-z_][a-z0-9_]*)*`))
	b.Define(g.String, b.Either(
		b.Seq(b.Literal(`"`), b.Regex(`(?:[^"\\]|\\.)*`), b.Literal(`"`)),
		b.Seq(b.Literal(`'`), b.Regex(`(?:[^'\\]|\\.)*`), b.Literal(`'`)),
	))
	b.Define(g.Regex, b.Seq(b.Literal("/"), b.Regex(`(?:[^/\\]|\\.)+`), b.Literal("/"), b.Regex(`(?:i\b)?`)))

	scope := b.AllowWhitespace(g.Ignore)
	defer scope.Release()

	b.Define(g.Grammar, b.Seq(b.Ref(g.StatementBlock), b.Regex(`$`)))
	b.Define(g.StatementBlock, b.ZeroOrMore(b.Either(b.Ref(g.Definition), b.Ref(g.SpecialBlock))))
	b.Define(g.Definition, b.Seq(
		b.Ref(g.NonTerminal),
		b.Literal("="),
		b.Either(b.Seq(b.Ref(g.Branch), b.Optional(b.Ref(g.Block))), b.Ref(g.Block)),
		b.Literal(";"),
	))
	b.Define(g.Block, b.Seq(b.Literal("{"), b.Ref(g.StatementBlock), b.Literal("}")))
	b.Define(g.SpecialBlock, b.Seq(b.Repeated(b.Ref(g.SpecialItem)), b.Ref(g.Block)))
	b.Define(g.SpecialItem, b.Either(
		b.Seq(b.Literal("ignore"), b.Ref(g.Branch), b.ZeroOrMore(b.Seq(b.Literal(","), b.Ref(g.Branch)))),
		b.Literal("noignore"),
		b.Literal("collapse"),
	))
	b.Define(g.Branch, b.Seq(b.Ref(g.Concat), b.ZeroOrMore(b.Seq(b.Literal("|"), b.Ref(g.Concat)))))
	b.Define(g.Concat, b.Repeated(b.Ref(g.Modifier)))
	b.Define(g.Modifier, b.Seq(b.Ref(g.Term), b.Optional(b.Regex(`[?*+]`))))
	b.Define(g.Term, b.Either(
		b.Ref(g.String),
		b.Ref(g.Regex),
		b.Ref(g.NonTerminal),
		b.Seq(b.Literal("("), b.Ref(g.Branch), b.Literal(")")),
	))

	return g
}

var bootstrap = newGrammarParser()

// Grammar returns the root rule of the grammar description language.
func Grammar() *parser.NamedParser {
	return bootstrap.Grammar
}
