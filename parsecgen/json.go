package parsecgen

import (
	"encoding/json"

	"github.com/ava12/parsec/parser"
)

// JSONGrammar is the JSON description of a rule table.
type JSONGrammar struct {
	Root string `json:"root"`
	// Whitespace lists whitespace combinators, nodes refer to them by 1-based index.
	Whitespace []*JSONNode `json:"whitespace,omitempty"`
	Rules      []JSONRule  `json:"rules"`
}

// JSONRule describes a named rule.
type JSONRule struct {
	Name       string    `json:"name"`
	Whitespace int       `json:"ws,omitempty"`
	Collapse   bool      `json:"collapse,omitempty"`
	Definition *JSONNode `json:"definition"`
}

// JSONNode describes a combinator.
// Type is one of literal, regex, sequence, branch, repeated, strict, not, rule, empty, never.
type JSONNode struct {
	Type       string      `json:"type"`
	Text       string      `json:"text,omitempty"`
	Pattern    string      `json:"pattern,omitempty"`
	IgnoreCase bool        `json:"ignoreCase,omitempty"`
	Rule       string      `json:"rule,omitempty"`
	Whitespace int         `json:"ws,omitempty"`
	Items      []*JSONNode `json:"items,omitempty"`
}

type jsonGen struct {
	grammar *JSONGrammar
	ws      map[parser.Parser]int
}

// Describe converts rule table to JSON-ready structure.
func Describe(rules *parser.Rules, root string) (*JSONGrammar, error) {
	if e := checkRules(rules); e != nil {
		return nil, e
	}
	root, e := rootName(rules, root)
	if e != nil {
		return nil, e
	}

	g := &jsonGen{
		grammar: &JSONGrammar{Root: root, Rules: make([]JSONRule, 0, rules.Len())},
		ws:      make(map[parser.Parser]int),
	}
	for _, name := range rules.Names() {
		n := rules.Rule(name)
		def, e := g.node(n.Definition())
		if e != nil {
			return nil, e
		}

		ws, e := g.whitespace(n.Whitespace())
		if e != nil {
			return nil, e
		}
		g.grammar.Rules = append(g.grammar.Rules, JSONRule{
			Name:       name,
			Whitespace: ws,
			Collapse:   n.Collapses(),
			Definition: def,
		})
	}
	return g.grammar, nil
}

// JSON returns indented JSON description of rule table.
func JSON(rules *parser.Rules, root string) ([]byte, error) {
	g, e := Describe(rules, root)
	if e != nil {
		return nil, e
	}
	return json.MarshalIndent(g, "", "  ")
}

func (g *jsonGen) whitespace(ws parser.Parser) (int, error) {
	if ws == nil {
		return 0, nil
	}
	if i, found := g.ws[ws]; found {
		return i, nil
	}

	n, e := g.node(ws)
	if e != nil {
		return 0, e
	}
	g.grammar.Whitespace = append(g.grammar.Whitespace, n)
	g.ws[ws] = len(g.grammar.Whitespace)
	return len(g.grammar.Whitespace), nil
}

func (g *jsonGen) node(p parser.Parser) (*JSONNode, error) {
	switch {
	case parser.IsEmpty(p):
		return &JSONNode{Type: "empty"}, nil
	case parser.IsNever(p):
		return &JSONNode{Type: "never"}, nil
	}

	ws, e := g.whitespace(p.Whitespace())
	if e != nil {
		return nil, e
	}

	res := &JSONNode{Whitespace: ws}
	var inner []parser.Parser
	switch x := p.(type) {
	case *parser.NamedParser:
		res.Type = "rule"
		res.Rule = x.Name()
	case *parser.LiteralParser:
		res.Type = "literal"
		res.Text = x.Text()
	case *parser.RegexParser:
		res.Type = "regex"
		res.Pattern = x.Pattern()
		res.IgnoreCase = x.IgnoreCase()
	case *parser.SequenceParser:
		res.Type = "sequence"
		inner = x.Inner()
	case *parser.BranchParser:
		res.Type = "branch"
		inner = x.Inner()
	case *parser.RepeatedParser:
		res.Type = "repeated"
		inner = []parser.Parser{x.Inner()}
	case *parser.StrictParser:
		res.Type = "strict"
		inner = []parser.Parser{x.Inner()}
	case *parser.NotParser:
		res.Type = "not"
		inner = []parser.Parser{x.Inner()}
	default:
		return nil, unsupportedParserError(p)
	}

	for _, ip := range inner {
		n, e := g.node(ip)
		if e != nil {
			return nil, e
		}
		res.Items = append(res.Items, n)
	}
	return res, nil
}
