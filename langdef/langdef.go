package langdef

import (
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/ava12/parsec/parser"
	"github.com/ava12/parsec/source"
)

func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// ParseString compiles grammar description contained in a string.
func ParseString(name, content string) (*parser.Rules, error) {
	return Parse(source.FromString(name, content))
}

// ParseBytes compiles grammar description contained in a byte slice.
func ParseBytes(name string, content []byte) (*parser.Rules, error) {
	return Parse(source.New(name, content))
}

// Parse compiles grammar description to a table of named rules.
// Every rule reference in the description must resolve.
func Parse(s *source.Source) (*parser.Rules, error) {
	r := parser.ParseSource(bootstrap.Grammar, s)
	defer r.Release()

	if !r.Success() {
		return nil, syntaxError(r)
	}

	c := &compiler{
		rules:  parser.NewRules(parser.NewBuilder()),
		refPos: make(map[string]source.Pos),
	}
	if e := c.statementBlock(r.At(0)); e != nil {
		return nil, e
	}

	if c.rules.Len() == 0 {
		return nil, emptyGrammarError(s.Name())
	}

	if names := c.rules.Unresolved(); len(names) > 0 {
		return nil, undefinedRuleError(c.refPos[names[0]], names)
	}

	tracer().Debugf("grammar %q: %d rules", s.Name(), c.rules.Len())
	return c.rules, nil
}

// Root returns the first rule defined at top level or nil.
func Root(rules *parser.Rules) *parser.NamedParser {
	for _, name := range rules.Names() {
		if !strings.ContainsRune(name, '.') {
			return rules.Rule(name)
		}
	}
	return nil
}

type compiler struct {
	rules  *parser.Rules
	refPos map[string]source.Pos
}

func (c *compiler) statementBlock(n *parser.Result) error {
	for _, s := range n.Children() {
		var e error
		switch s.Name() {
		case "Definition":
			e = c.definition(s)
		case "SpecialBlock":
			e = c.specialBlock(s)
		}
		if e != nil {
			return e
		}
	}
	return nil
}

// definition reads nested rules first, they live in the namespace named after the rule.
func (c *compiler) definition(n *parser.Result) error {
	name := n.At(0).Value()
	var branch, block *parser.Result
	for _, x := range n.Children()[1:] {
		switch x.Name() {
		case "Branch":
			branch = x
		case "Block":
			block = x
		}
	}

	c.rules.PushNamespace(name)
	tracer().Debugf("namespace %s", c.rules.Namespace())
	var def parser.Parser
	var e error
	if block != nil {
		e = c.statementBlock(block.At(0))
	}
	if e == nil && branch != nil {
		def, e = c.branch(branch)
	}
	c.rules.PopNamespace()

	if e != nil {
		return e
	}
	if def != nil {
		c.rules.Add(name, def)
	}
	return nil
}

func (c *compiler) specialBlock(n *parser.Result) error {
	var scopes []*parser.Scope
	defer func() {
		for i := len(scopes) - 1; i >= 0; i-- {
			scopes[i].Release()
		}
	}()

	b := c.rules.Builder()
	for _, item := range n.Children() {
		if item.Name() == "Block" {
			return c.statementBlock(item.At(0))
		}

		if item.Len() == 0 {
			switch item.Value() {
			case "noignore":
				scopes = append(scopes, b.ForbidWhitespace())
			case "collapse":
				scopes = append(scopes, b.EnableCollapse())
			}
			continue
		}

		for _, x := range item.Children() {
			ws, e := c.branch(x)
			if e != nil {
				return e
			}
			scopes = append(scopes, b.AllowWhitespace(ws))
		}
	}
	return nil
}

func (c *compiler) branch(n *parser.Result) (parser.Parser, error) {
	items := make([]parser.Parser, n.Len())
	for i, x := range n.Children() {
		p, e := c.concat(x)
		if e != nil {
			return nil, e
		}
		items[i] = p
	}

	if len(items) == 1 {
		return items[0], nil
	}
	return c.rules.Builder().Either(items...), nil
}

func (c *compiler) concat(n *parser.Result) (parser.Parser, error) {
	items := make([]parser.Parser, n.Len())
	for i, x := range n.Children() {
		p, e := c.modifier(x)
		if e != nil {
			return nil, e
		}
		items[i] = p
	}

	if len(items) == 1 {
		return items[0], nil
	}
	return c.rules.Builder().Seq(items...), nil
}

func (c *compiler) modifier(n *parser.Result) (parser.Parser, error) {
	term := n.At(0)
	p, e := c.term(term)
	if e != nil {
		return nil, e
	}

	if n.TrimmedIndex()+n.TrimmedLength() == term.TrimmedIndex()+term.TrimmedLength() {
		return p, nil
	}

	b := c.rules.Builder()
	v := n.Value()
	switch v[len(v)-1] {
	case '?':
		return b.Optional(p), nil
	case '+':
		return b.Repeated(p), nil
	case '*':
		return b.ZeroOrMore(p), nil
	}
	return p, nil
}

func (c *compiler) term(n *parser.Result) (parser.Parser, error) {
	x := n.At(0)
	switch x.Name() {
	case "String":
		return c.stringTerm(x)
	case "Regex":
		return c.regexTerm(x)
	case "NonTerminal":
		return c.reference(x), nil
	}
	return c.branch(x)
}

func (c *compiler) reference(n *parser.Result) parser.Parser {
	name := n.Value()
	if _, found := c.refPos[name]; !found {
		c.refPos[name] = n.Pos()
	}
	return c.rules.Get(name)
}

func (c *compiler) stringTerm(n *parser.Result) (parser.Parser, error) {
	v := n.Value()
	text, e := unescape(n, v[1:len(v)-1])
	if e != nil {
		return nil, e
	}
	return c.rules.Builder().Literal(text), nil
}

func unescape(n *parser.Result, s string) (string, error) {
	if strings.IndexByte(s, '\\') < 0 {
		return s, nil
	}

	var sb strings.Builder
	escaped := false
	for _, r := range s {
		if !escaped {
			if r == '\\' {
				escaped = true
			} else {
				sb.WriteRune(r)
			}
			continue
		}

		escaped = false
		switch r {
		case '\\', '\'', '"':
			sb.WriteRune(r)
		case 'r':
			sb.WriteByte('\r')
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		default:
			return "", escapeError(n, "\\"+string(r))
		}
	}
	return sb.String(), nil
}

func (c *compiler) regexTerm(n *parser.Result) (parser.Parser, error) {
	v := n.Value()
	last := strings.LastIndexByte(v, '/')
	p, e := c.rules.Builder().CompileRegex(unescapeSlashes(v[1:last]), v[last+1:] == "i")
	if e != nil {
		return nil, regexError(n, e)
	}
	return p, nil
}

func unescapeSlashes(pattern string) string {
	if !strings.Contains(pattern, `\/`) {
		return pattern
	}

	var sb strings.Builder
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			escaped = false
			if r != '/' {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
		case r == '\\':
			escaped = true
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
