package parsecgen

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/exp/ebnf"

	"github.com/ava12/parsec/parser"
)

type ebnfGen struct {
	names map[string]string
	ws    []parser.Parser
	seen  map[parser.Parser]bool
}

// EBNF returns rule table in the notation of golang.org/x/exp/ebnf.
//
// Production names are rule names converted to camel case. Regular expressions, lookaheads,
// and never-matching combinators are written as tokens containing their grammar notation.
// The first production is the start one: it matches the root rule followed with
// whitespace used by the grammar, so rules used only as whitespace are reachable.
func EBNF(rules *parser.Rules, root string) ([]byte, error) {
	text, _, e := ebnfText(rules, root)
	return text, e
}

// Verify checks EBNF form of rule table with ebnf.Verify: every rule must be reachable
// from the root one.
func Verify(rules *parser.Rules, root string) error {
	text, start, e := ebnfText(rules, root)
	if e != nil {
		return e
	}

	grammar, e := ebnf.Parse("grammar.ebnf", bytes.NewReader(text))
	if e == nil {
		e = ebnf.Verify(grammar, start)
	}
	if e != nil {
		return verificationError(e)
	}
	return nil
}

func ebnfText(rules *parser.Rules, root string) ([]byte, string, error) {
	if e := checkRules(rules); e != nil {
		return nil, "", e
	}
	root, e := rootName(rules, root)
	if e != nil {
		return nil, "", e
	}
	names, e := identifiers(rules)
	if e != nil {
		return nil, "", e
	}

	start := "Start"
	for isIdentifierUsed(names, start) {
		start += "_"
	}

	g := &ebnfGen{names: names, seen: make(map[parser.Parser]bool)}
	var body strings.Builder
	for _, name := range rules.Names() {
		n := rules.Rule(name)
		g.addWhitespace(n.Whitespace())
		expr, e := g.expr(n.Definition())
		if e != nil {
			return nil, "", e
		}
		body.WriteString(names[name] + " = " + expr + " .\n")
	}

	var buf bytes.Buffer
	buf.WriteString(start + " = " + names[root])
	if len(g.ws) > 0 {
		items := make([]string, len(g.ws))
		for i, ws := range g.ws {
			expr, e := g.expr(ws)
			if e != nil {
				return nil, "", e
			}
			items[i] = expr
		}
		buf.WriteString(" { " + strings.Join(items, " | ") + " }")
	}
	buf.WriteString(" .\n\n")
	buf.WriteString(body.String())
	return buf.Bytes(), start, nil
}

func isIdentifierUsed(names map[string]string, ident string) bool {
	for _, n := range names {
		if n == ident {
			return true
		}
	}
	return false
}

func (g *ebnfGen) addWhitespace(ws parser.Parser) {
	if ws != nil && !g.seen[ws] {
		g.seen[ws] = true
		g.ws = append(g.ws, ws)
	}
}

func (g *ebnfGen) expr(p parser.Parser) (string, error) {
	g.addWhitespace(p.Whitespace())
	if parser.IsEmpty(p) {
		return `""`, nil
	}

	switch x := p.(type) {
	case *parser.NamedParser:
		ident, found := g.names[x.Name()]
		if !found {
			return "", unresolvedRuleError([]string{x.Name()})
		}
		return ident, nil

	case *parser.LiteralParser:
		return strconv.Quote(x.Text()), nil

	case *parser.RegexParser, *parser.NotParser:
		return strconv.Quote(p.String()), nil

	case *parser.SequenceParser:
		items := make([]string, len(x.Inner()))
		for i, ip := range x.Inner() {
			item, e := g.term(ip)
			if e != nil {
				return "", e
			}
			items[i] = item
		}
		return strings.Join(items, " "), nil

	case *parser.BranchParser:
		if rest, ok := optionalOf(x); ok {
			if rp, ok := rest[0].(*parser.RepeatedParser); ok && len(rest) == 1 {
				inner, e := g.expr(rp.Inner())
				return "{ " + inner + " }", e
			}
			inner, e := g.alternatives(rest)
			return "[ " + inner + " ]", e
		}
		return g.alternatives(x.Inner())

	case *parser.RepeatedParser:
		first, e := g.term(x.Inner())
		if e != nil {
			return "", e
		}
		inner, e := g.expr(x.Inner())
		return first + " { " + inner + " }", e

	case *parser.StrictParser:
		return g.expr(x.Inner())
	}

	if parser.IsNever(p) {
		return strconv.Quote(p.String()), nil
	}
	return "", unsupportedParserError(p)
}

// term returns expression usable as sequence element.
func (g *ebnfGen) term(p parser.Parser) (string, error) {
	res, e := g.expr(p)
	if e != nil {
		return "", e
	}

	switch x := p.(type) {
	case *parser.BranchParser:
		if _, ok := optionalOf(x); !ok {
			res = "( " + res + " )"
		}
	case *parser.StrictParser:
		return g.term(x.Inner())
	}
	return res, nil
}

func (g *ebnfGen) alternatives(ps []parser.Parser) (string, error) {
	items := make([]string, len(ps))
	for i, p := range ps {
		item, e := g.expr(p)
		if e != nil {
			return "", e
		}
		items[i] = item
	}
	return strings.Join(items, " | "), nil
}
