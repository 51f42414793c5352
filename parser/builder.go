package parser

import (
	"github.com/emirpasic/gods/stacks/arraystack"
)

type scopeKind int

const (
	whitespaceScope scopeKind = iota
	collapseScope
)

// Scope is a handle of a construction-time setting, Release restores the previous one.
// Scopes must be released in reverse order.
type Scope struct {
	b        *Builder
	kind     scopeKind
	released bool
}

// Release restores setting active before the scope was opened.
func (s *Scope) Release() {
	if s.released {
		panic("parser: scope released twice")
	}
	top, _ := s.b.scopes.Peek()
	if top != s {
		panic("parser: scopes released out of order")
	}

	s.b.scopes.Pop()
	switch s.kind {
	case whitespaceScope:
		s.b.ws.Pop()
	case collapseScope:
		s.b.collapse.Pop()
	}
	s.released = true
}

// Builder creates combinators. Every combinator captures the whitespace combinator
// active at creation time, every rule defined with Define captures collapsing setting.
// A Builder is not safe for concurrent use, combinators it creates are.
type Builder struct {
	ws       *arraystack.Stack
	collapse *arraystack.Stack
	scopes   *arraystack.Stack
}

func NewBuilder() *Builder {
	return &Builder{
		ws:       arraystack.New(),
		collapse: arraystack.New(),
		scopes:   arraystack.New(),
	}
}

func (b *Builder) open(kind scopeKind) *Scope {
	s := &Scope{b: b, kind: kind}
	b.scopes.Push(s)
	return s
}

// CurrentWhitespace returns whitespace combinator captured by new combinators or nil.
func (b *Builder) CurrentWhitespace() Parser {
	if ws, ok := b.ws.Peek(); ok && ws != nil {
		return ws.(Parser)
	}
	return nil
}

// CollapseEnabled reports whether new rules collapse into their single named child.
func (b *Builder) CollapseEnabled() bool {
	c, ok := b.collapse.Peek()
	return ok && c.(bool)
}

// AllowWhitespace makes ws skippable around new combinators and between sequence elements.
// Nested scopes combine whitespace combinators as alternatives.
func (b *Builder) AllowWhitespace(ws Parser) *Scope {
	if current := b.CurrentWhitespace(); current != nil {
		ws = newBranch([]Parser{current, ws}, nil)
	}
	b.ws.Push(ws)
	return b.open(whitespaceScope)
}

// ForbidWhitespace disables whitespace skipping for new combinators.
func (b *Builder) ForbidWhitespace() *Scope {
	b.ws.Push(nil)
	return b.open(whitespaceScope)
}

// EnableCollapse makes new rules collapse into their single named child.
func (b *Builder) EnableCollapse() *Scope {
	b.collapse.Push(true)
	return b.open(collapseScope)
}

// DisableCollapse stops new rules from collapsing.
func (b *Builder) DisableCollapse() *Scope {
	b.collapse.Push(false)
	return b.open(collapseScope)
}

// Literal creates exact text matcher, empty text gives Empty.
func (b *Builder) Literal(text string) Parser {
	return newLiteral(text, b.CurrentWhitespace())
}

// Regex creates regular expression matcher, panics if pattern is invalid.
// Assertions treat the current position as the start of text, see package-level Regex.
func (b *Builder) Regex(pattern string) *RegexParser {
	return mustRegex(b.CompileRegex(pattern, false))
}

// RegexIgnoreCase creates case-insensitive regular expression matcher, panics if pattern is invalid.
func (b *Builder) RegexIgnoreCase(pattern string) *RegexParser {
	return mustRegex(b.CompileRegex(pattern, true))
}

// CompileRegex creates regular expression matcher or returns compilation error.
func (b *Builder) CompileRegex(pattern string, ignoreCase bool) (*RegexParser, error) {
	return newRegex(pattern, ignoreCase, b.CurrentWhitespace())
}

func mustRegex(rp *RegexParser, e error) *RegexParser {
	if e != nil {
		panic("parser: " + e.Error())
	}
	return rp
}

// Seq creates sequence, nested sequences with the same whitespace are flattened.
// Empty list gives Empty, single element is returned as is.
func (b *Builder) Seq(ps ...Parser) Parser {
	ws := b.CurrentWhitespace()
	inner := make([]Parser, 0, len(ps))
	for _, p := range ps {
		if s, ok := p.(*SequenceParser); ok && s.ws == ws {
			inner = append(inner, s.inner...)
		} else {
			inner = append(inner, p)
		}
	}

	switch len(inner) {
	case 0:
		return empty
	case 1:
		return inner[0]
	}
	return &SequenceParser{base{FlattenHierarchy, ws}, inner}
}

// Either creates alternation, nested alternations with the same whitespace are flattened.
// Single alternative is returned as is, empty list gives alternation that never matches.
func (b *Builder) Either(ps ...Parser) Parser {
	ws := b.CurrentWhitespace()
	inner := make([]Parser, 0, len(ps))
	for _, p := range ps {
		if br, ok := p.(*BranchParser); ok && br.ws == ws {
			inner = append(inner, br.inner...)
		} else {
			inner = append(inner, p)
		}
	}

	if len(inner) == 1 {
		return inner[0]
	}
	return newBranch(inner, ws)
}

func newBranch(inner []Parser, ws Parser) *BranchParser {
	return &BranchParser{base{FlattenHierarchy, ws}, inner}
}

// Repeated matches p one or more times.
func (b *Builder) Repeated(p Parser) Parser {
	return &RepeatedParser{base{FlattenHierarchy, b.CurrentWhitespace()}, p}
}

// Optional matches p or nothing.
func (b *Builder) Optional(p Parser) Parser {
	return b.Either(p, empty)
}

// ZeroOrMore matches p any number of times.
func (b *Builder) ZeroOrMore(p Parser) Parser {
	return b.Either(b.Repeated(p), empty)
}

// Strict matches p, its failure stops enclosing alternation from trying other alternatives.
func (b *Builder) Strict(p Parser) Parser {
	return &StrictParser{base{FlattenHierarchy, b.CurrentWhitespace()}, p}
}

// Not succeeds without consuming input if p fails at the current position.
func (b *Builder) Not(p Parser) Parser {
	return &NotParser{base{OmitFromResult, nil}, p}
}

// Empty always succeeds and consumes nothing.
func (b *Builder) Empty() Parser {
	return empty
}

// Never always fails.
func (b *Builder) Never() Parser {
	return never
}

// Named creates a rule placeholder that may be used in other combinators before it is defined.
func (b *Builder) Named(name string) *NamedParser {
	return newNamed(name, nil)
}

// Define sets rule definition, capturing current whitespace and collapsing settings.
// Defining a rule twice panics.
func (b *Builder) Define(n *NamedParser, def Parser) *NamedParser {
	if !n.IsDefined() {
		panic("parser: cannot define reference " + n.name)
	}
	if n.def != nil {
		panic("parser: rule " + n.name + " is already defined")
	}

	n.def = def
	n.ws = b.CurrentWhitespace()
	if b.CollapseEnabled() {
		n.flags |= CollapseIfSingle
	}
	return n
}

// Ref creates a reference to the rule, capturing current whitespace.
func (b *Builder) Ref(n *NamedParser) *NamedParser {
	ref := newReference(n.name, "", nil, b.CurrentWhitespace())
	ref.target = n
	return ref
}

var plain = NewBuilder()

// Literal creates exact text matcher without whitespace skipping.
func Literal(text string) Parser {
	return plain.Literal(text)
}

// Regex creates regular expression matcher without whitespace skipping, panics if pattern is invalid.
// The pattern is matched against the rest of input, so ^, \b, and \B see the current
// position as the start of text: /\bfoo/ matches after "x" in "xfoo".
func Regex(pattern string) *RegexParser {
	return plain.Regex(pattern)
}

// NewRegex creates regular expression matcher without whitespace skipping.
func NewRegex(pattern string, ignoreCase bool) (*RegexParser, error) {
	return plain.CompileRegex(pattern, ignoreCase)
}

func Seq(ps ...Parser) Parser {
	return plain.Seq(ps...)
}

func Either(ps ...Parser) Parser {
	return plain.Either(ps...)
}

func Repeated(p Parser) Parser {
	return plain.Repeated(p)
}

func Optional(p Parser) Parser {
	return plain.Optional(p)
}

func ZeroOrMore(p Parser) Parser {
	return plain.ZeroOrMore(p)
}

func Strict(p Parser) Parser {
	return plain.Strict(p)
}

func Not(p Parser) Parser {
	return plain.Not(p)
}

func Empty() Parser {
	return empty
}

func Never() Parser {
	return never
}
