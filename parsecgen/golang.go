/*
Package parsecgen converts a table of named rules to Go source, JSON, or EBNF.

Generated Go source contains a struct type with one *parser.NamedParser field per rule
and a constructor that rebuilds every rule with parser.Builder. Rules sharing whitespace
and collapsing settings are defined with the same builder.
*/
package parsecgen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/ava12/parsec/parser"
)

func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// DefaultType is the name of generated struct type used when Options.Type is empty.
const DefaultType = "Grammar"

const rootMethod = "RootRule"

// Options control generated Go source.
type Options struct {
	// Package is the name of generated package, required.
	Package string
	// Type is the name of generated struct type, DefaultType if empty.
	Type string
	// Root is the full name of the rule returned by generated RootRule method,
	// the first top-level rule if empty.
	Root string
}

type builderKey struct {
	ws       parser.Parser
	collapse bool
}

type builderDecl struct {
	name   string
	key    builderKey
	wsExpr string
	defs   []string
}

type goGen struct {
	fields   map[string]string
	builders *linkedhashmap.Map
}

// Go returns gofmt'ed Go source reconstructing rules.
func Go(rules *parser.Rules, opts Options) ([]byte, error) {
	if e := checkRules(rules); e != nil {
		return nil, e
	}
	if !token.IsIdentifier(opts.Package) {
		return nil, invalidNameError("package", opts.Package)
	}
	if opts.Type == "" {
		opts.Type = DefaultType
	}
	if !token.IsIdentifier(opts.Type) || opts.Type == "parser" {
		return nil, invalidNameError("type", opts.Type)
	}

	root, e := rootName(rules, opts.Root)
	if e != nil {
		return nil, e
	}
	fields, e := identifiers(rules, rootMethod)
	if e != nil {
		return nil, e
	}

	g := &goGen{fields: fields, builders: linkedhashmap.New()}
	g.builders.Put(builderKey{}, &builderDecl{name: "b"})
	for _, name := range rules.Names() {
		n := rules.Rule(name)
		def, e := g.expr(n.Definition())
		if e != nil {
			return nil, e
		}

		decl, e := g.decl(builderKey{n.Whitespace(), n.Collapses()})
		if e != nil {
			return nil, e
		}
		decl.defs = append(decl.defs, fmt.Sprintf("%s.Define(g.%s, %s)", decl.name, fields[name], def))
	}

	var buf bytes.Buffer
	buf.WriteString("// Code generated with parsecgen. DO NOT EDIT.\n\n")
	buf.WriteString("package " + opts.Package + "\n\n")
	buf.WriteString("import \"github.com/ava12/parsec/parser\"\n\n")

	fmt.Fprintf(&buf, "// %s holds rules of the grammar.\ntype %s struct {\n", opts.Type, opts.Type)
	for _, name := range rules.Names() {
		fmt.Fprintf(&buf, "\t%s *parser.NamedParser\n", fields[name])
	}
	buf.WriteString("}\n\n")

	fmt.Fprintf(&buf, "// New%s builds the grammar.\nfunc New%s() *%s {\n", opts.Type, opts.Type, opts.Type)
	buf.WriteString("\tb := parser.NewBuilder()\n")
	fmt.Fprintf(&buf, "\tg := &%s{\n", opts.Type)
	for _, name := range rules.Names() {
		fmt.Fprintf(&buf, "\t\t%s: b.Named(%s),\n", fields[name], strconv.Quote(name))
	}
	buf.WriteString("\t}\n")

	it := g.builders.Iterator()
	for it.Next() {
		decl := it.Value().(*builderDecl)
		if decl.name == "b" {
			continue
		}
		fmt.Fprintf(&buf, "\n\t%s := parser.NewBuilder()\n", decl.name)
		if decl.wsExpr != "" {
			fmt.Fprintf(&buf, "\t%s.AllowWhitespace(%s)\n", decl.name, decl.wsExpr)
		}
		if decl.key.collapse {
			fmt.Fprintf(&buf, "\t%s.EnableCollapse()\n", decl.name)
		}
	}

	it = g.builders.Iterator()
	for it.Next() {
		decl := it.Value().(*builderDecl)
		if len(decl.defs) == 0 {
			continue
		}
		tracer().Debugf("builder %s: %d rules", decl.name, len(decl.defs))
		buf.WriteString("\n")
		for _, def := range decl.defs {
			buf.WriteString("\t" + def + "\n")
		}
	}

	buf.WriteString("\n\treturn g\n}\n\n")
	fmt.Fprintf(&buf, "// %s returns the root rule of the grammar.\n", rootMethod)
	fmt.Fprintf(&buf, "func (g *%s) %s() *parser.NamedParser {\n\treturn g.%s\n}\n", opts.Type, rootMethod, fields[root])

	return format.Source(buf.Bytes())
}

// decl returns declaration of the builder with given settings, adding it if needed.
// Whitespace expression is built first, so builders it uses are declared earlier.
func (g *goGen) decl(key builderKey) (*builderDecl, error) {
	if d, found := g.builders.Get(key); found {
		return d.(*builderDecl), nil
	}

	decl := &builderDecl{key: key}
	if key.ws != nil {
		ws, e := g.expr(key.ws)
		if e != nil {
			return nil, e
		}
		decl.wsExpr = ws
	}

	decl.name = "b" + strconv.Itoa(g.builders.Size())
	g.builders.Put(key, decl)
	return decl, nil
}

func (g *goGen) expr(p parser.Parser) (string, error) {
	switch {
	case parser.IsEmpty(p):
		return "b.Empty()", nil
	case parser.IsNever(p):
		return "b.Never()", nil
	}

	decl, e := g.decl(builderKey{ws: p.Whitespace()})
	if e != nil {
		return "", e
	}

	b := decl.name
	switch x := p.(type) {
	case *parser.NamedParser:
		ident, found := g.fields[x.Name()]
		if !found {
			return "", unresolvedRuleError([]string{x.Name()})
		}

		field := "g." + ident
		if x.IsDefined() {
			return field, nil
		}
		return b + ".Ref(" + field + ")", nil

	case *parser.LiteralParser:
		return b + ".Literal(" + strconv.Quote(x.Text()) + ")", nil

	case *parser.RegexParser:
		method := ".Regex("
		if x.IgnoreCase() {
			method = ".RegexIgnoreCase("
		}
		return b + method + quotePattern(x.Pattern()) + ")", nil

	case *parser.SequenceParser:
		items, e := g.list(x.Inner())
		return b + ".Seq(" + items + ")", e

	case *parser.BranchParser:
		if rest, ok := optionalOf(x); ok && len(rest) == 1 {
			if rp, ok := rest[0].(*parser.RepeatedParser); ok && rp.Whitespace() == x.Whitespace() {
				inner, e := g.expr(rp.Inner())
				return b + ".ZeroOrMore(" + inner + ")", e
			}
			inner, e := g.expr(rest[0])
			return b + ".Optional(" + inner + ")", e
		}
		items, e := g.list(x.Inner())
		return b + ".Either(" + items + ")", e

	case *parser.RepeatedParser:
		inner, e := g.expr(x.Inner())
		return b + ".Repeated(" + inner + ")", e

	case *parser.StrictParser:
		inner, e := g.expr(x.Inner())
		return b + ".Strict(" + inner + ")", e

	case *parser.NotParser:
		inner, e := g.expr(x.Inner())
		return b + ".Not(" + inner + ")", e
	}

	return "", unsupportedParserError(p)
}

func (g *goGen) list(ps []parser.Parser) (string, error) {
	items := make([]string, len(ps))
	for i, p := range ps {
		item, e := g.expr(p)
		if e != nil {
			return "", e
		}
		items[i] = item
	}
	return strings.Join(items, ", "), nil
}

func quotePattern(pattern string) string {
	if strconv.CanBackquote(pattern) {
		return "`" + pattern + "`"
	}
	return strconv.Quote(pattern)
}
