package main

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ava12/parsec/tree"
)

const (
	maxLineLength  = 78
	maxValueLength = 20
	indentSize     = 2
)

// printNode writes compact view of the tree: chains of single-child nodes are joined
// with colons, leaves are written with their matched text.
func printNode(n tree.Node, p *printer) {
	label := tree.ElementName(n)
	children := tree.Children(n)
	for len(children) == 1 && children[0].Len() > 0 {
		n = children[0]
		children = tree.Children(n)
		label = label + ":" + tree.ElementName(n)
	}

	if len(children) == 0 {
		printLeaf(label, n, p)
		return
	}

	p.Print(label).Print("{").Newline().Indent()
	for _, child := range children {
		printNode(child, p)
	}
	p.Newline().Dedent().Print("}")
}

func printLeaf(label string, n tree.Node, p *printer) {
	value := n.Value()
	if utf8.RuneCountInString(value) <= maxValueLength {
		p.Print(fmt.Sprintf("%s(%q)", label, value))
		return
	}

	tailPos := 0
	for i := maxValueLength - 3; i > 0; i-- {
		_, size := utf8.DecodeRuneInString(value[tailPos:])
		tailPos += size
	}
	p.Print(fmt.Sprintf("%s(%q...)", label, value[:tailPos]))
}

type printer struct {
	w                        io.Writer
	indentSize, maxCol       int
	indentLevel, col         int
	indent, indentTpl, space string
	printed                  bool
}

func newPrinter(w io.Writer, indentSize, maxLineLength int) *printer {
	return &printer{
		w:          w,
		indentSize: indentSize,
		maxCol:     maxLineLength - 1,
		indentTpl:  "        ",
	}
}

func (p *printer) Print(s string) *printer {
	strlen := utf8.RuneCountInString(s)
	if strlen+p.col+1 > p.maxCol {
		p.Newline()
	}
	fmt.Fprintf(p.w, "%s%s", p.space, s)
	p.col += len(p.space) + strlen
	p.space = " "
	p.printed = true
	return p
}

func (p *printer) Newline() *printer {
	if !p.printed {
		return p
	}

	fmt.Fprintln(p.w)
	p.space = p.indent
	p.printed = false
	p.col = len(p.space)
	return p
}

func (p *printer) Indent() *printer {
	p.indentLevel++
	size := p.indentLevel * p.indentSize
	for len(p.indentTpl) < size {
		p.indentTpl = p.indentTpl + p.indentTpl
	}
	p.indent = p.indentTpl[0:size]
	if !p.printed {
		p.space = p.indent
	}
	return p
}

func (p *printer) Dedent() *printer {
	p.indentLevel--
	p.indent = p.indentTpl[0 : p.indentLevel*p.indentSize]
	if !p.printed {
		p.space = p.indent
	}
	return p
}
