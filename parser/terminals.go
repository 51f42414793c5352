package parser

import (
	"regexp"
	"strings"
)

type expecter interface {
	expected() string
}

// LiteralParser matches exact case-sensitive text.
type LiteralParser struct {
	base
	text string
}

func newLiteral(text string, ws Parser) Parser {
	if text == "" {
		return empty
	}
	return &LiteralParser{base{OmitFromResult, ws}, text}
}

func (l *LiteralParser) Text() string {
	return l.text
}

func (l *LiteralParser) Match(r *Result, errorPass bool) bool {
	if strings.HasPrefix(r.ctx.text[r.readPos():], l.text) {
		r.consume(len(l.text))
		return true
	}

	return r.Fail(ExpectedTokenError, "")
}

func (l *LiteralParser) String() string {
	return QuoteString(l.text)
}

func (l *LiteralParser) expected() string {
	return "'" + l.text + "'"
}

// QuoteString returns text as double-quoted grammar string literal.
func QuoteString(text string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range text {
		switch c {
		case '\\', '"':
			sb.WriteByte('\\')
			sb.WriteRune(c)
		case '\r':
			sb.WriteString(`\r`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// RegexParser matches regular expression anchored at the read position.
type RegexParser struct {
	base
	pattern    string
	ignoreCase bool
	re         *regexp.Regexp
}

func newRegex(pattern string, ignoreCase bool, ws Parser) (*RegexParser, error) {
	prefix := "^(?:"
	if ignoreCase {
		prefix = "(?i)" + prefix
	}
	re, e := regexp.Compile(prefix + pattern + ")")
	if e != nil {
		return nil, e
	}

	return &RegexParser{base{OmitFromResult, ws}, pattern, ignoreCase, re}, nil
}

func (rp *RegexParser) Pattern() string {
	return rp.pattern
}

func (rp *RegexParser) IgnoreCase() bool {
	return rp.ignoreCase
}

func (rp *RegexParser) Match(r *Result, errorPass bool) bool {
	loc := rp.re.FindStringIndex(r.ctx.text[r.readPos():])
	if loc == nil {
		return r.Fail(ExpectedTokenError, "")
	}

	r.consume(loc[1])
	return true
}

func (rp *RegexParser) String() string {
	res := "/" + strings.ReplaceAll(rp.pattern, "/", `\/`) + "/"
	if rp.ignoreCase {
		res += "i"
	}
	return res
}

func (rp *RegexParser) expected() string {
	return rp.String()
}

type emptyParser struct {
	base
}

var empty = &emptyParser{base{OmitFromResult, nil}}

func (*emptyParser) Match(r *Result, errorPass bool) bool {
	return true
}

func (*emptyParser) String() string {
	return `""`
}

type neverParser struct {
	base
}

var never = &neverParser{}

const neverMessage = "parser never matches"

func (*neverParser) Match(r *Result, errorPass bool) bool {
	return r.Fail(NullParserError, neverMessage)
}

func (*neverParser) String() string {
	return "<never>"
}

// IsEmpty reports whether p is the combinator that always succeeds and consumes nothing.
func IsEmpty(p Parser) bool {
	return p == Parser(empty)
}

// IsNever reports whether p is the combinator that always fails.
func IsNever(p Parser) bool {
	return p == Parser(never)
}
