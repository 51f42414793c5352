/*
Package parser defines parser combinators, parse results, and named rule tables.

A combinator (Parser) is an immutable description of what may be matched at some position.
Combinators are created with a Builder, which captures the whitespace-skipping and
single-child collapsing settings active at construction time, or with package-level
functions that use no whitespace and no collapsing.

Parse runs a combinator over a source text. The first (fast) pass only decides success
and drops failed attempts as soon as possible. If it fails, the text is parsed once more
with the diagnostic pass that keeps failed attempts, so the returned Result can describe
what was expected at the furthest position reached.

Combinators are safe to share between goroutines, every Parse call owns its results.
*/
package parser

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/ava12/parsec/source"
)

func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// Flags are fixed combinator traits.
type Flags int

const (
	// FlattenHierarchy means that children of the attempt are moved to the parent attempt.
	FlattenHierarchy Flags = 1 << iota
	// OmitFromResult means that successful attempt is not added to the result tree.
	OmitFromResult
	// CollapseIfSingle means that named rule attempt with exactly one named child is replaced with the child.
	CollapseIfSingle
)

// Parser is a combinator.
// Implementations must be comparable (pointer types), they are compared
// when detecting left recursion.
type Parser interface {
	// Match runs combinator-specific logic on the attempt r.
	// Leading and trailing whitespace is skipped by the caller.
	Match(r *Result, errorPass bool) bool
	Flags() Flags
	// Whitespace returns whitespace combinator captured at construction time or nil.
	Whitespace() Parser
	String() string
}

type base struct {
	flags Flags
	ws    Parser
}

func (b *base) Flags() Flags {
	return b.flags
}

func (b *base) Whitespace() Parser {
	return b.ws
}

const leftRecursionMessage = "grammar contains left recursion"

// run is the protocol every attempt goes through.
func run(p Parser, r *Result, errorPass bool) bool {
	ws := p.Whitespace()
	if ws != nil && !r.inWhitespace {
		r.skipWhitespace(ws, errorPass)
	}

	if r.isLeftRecursive() {
		return r.Fail(InvalidGrammarError, leftRecursionMessage)
	}

	if !p.Match(r, errorPass) {
		if r.errorType == NoError {
			r.errorType = ExpectedTokenError
		}
		r.success = false
		return false
	}

	if ws != nil && !r.inWhitespace {
		r.skipWhitespace(ws, errorPass)
	}
	return r.success
}

func (r *Result) skipWhitespace(ws Parser, errorPass bool) {
	for {
		w := r.peek(ws, errorPass, true)
		if !w.success || w.length == 0 {
			w.Release()
			return
		}

		r.Skip(w)
	}
}

// Parse parses text with p.
// Returned result may match only a prefix of text, see Result.Complete.
func Parse(p Parser, text string) *Result {
	return ParseSource(p, source.FromString("", text))
}

// ParseSource parses named source with p.
func ParseSource(p Parser, src *source.Source) *Result {
	ctx := newParseContext(src)
	r := ctx.parse(p, false)
	if r.success {
		tracer().Debugf("parse %q: %s matched %d of %d bytes", src.Name(), p, r.length, src.Len())
		return r
	}

	tracer().Debugf("parse %q: fast pass failed, running diagnostic pass", src.Name())
	r.Release()
	ctx.errorPass = true
	r = ctx.parse(p, true)
	tracer().Debugf("parse %q: %s, pool has %d active attempts", src.Name(), r.ErrorMessage(), ctx.pool.active())
	return r
}

type parseContext struct {
	src       *source.Source
	text      string
	pool      *attemptPool
	errorPass bool
}

func newParseContext(src *source.Source) *parseContext {
	return &parseContext{
		src:  src,
		text: src.Text(),
		pool: newAttemptPool(),
	}
}

func (ctx *parseContext) parse(p Parser, errorPass bool) *Result {
	r := ctx.pool.get()
	r.init(ctx, p, nil, 0)
	run(p, r, errorPass)
	return r
}
