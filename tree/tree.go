// Package tree contains functions to traverse, filter, and serialize parse result trees.
//
// A result tree consists of *parser.Result nodes. Successful trees contain named rule
// attempts only, failed trees may also contain leaf attempts of terminals that did not match.
package tree

import (
	"slices"

	"github.com/ava12/parsec/parser"
)

// Node is a parse result tree node.
type Node = *parser.Result

func Ancestor(n Node, level int) Node {
	for n != nil && level >= 0 {
		n = n.Parent()
		level--
	}
	return n
}

// NodeLevel returns the depth of n, 0 for the root.
func NodeLevel(n Node) int {
	l := -1
	for ; n != nil; n = n.Parent() {
		l++
	}
	return max(l, 0)
}

// SiblingIndex returns index of n in the child list of its parent.
func SiblingIndex(n Node) int {
	if n == nil || n.Parent() == nil {
		return 0
	}

	return max(slices.Index(n.Parent().Children(), n), 0)
}

// NthChild returns i-th child of n, negative index counts from the last child (-1).
func NthChild(n Node, i int) Node {
	if n == nil {
		return nil
	}

	if i < 0 {
		i += n.Len()
	}
	if i < 0 || i >= n.Len() {
		return nil
	}
	return n.At(i)
}

// NthSibling returns sibling of n at offset i, 0 means n itself.
func NthSibling(n Node, i int) Node {
	if n == nil {
		return nil
	}
	if i == 0 {
		return n
	}

	p := n.Parent()
	if p == nil {
		return nil
	}
	return NthChild(p, SiblingIndex(n)+i)
}

func Prev(n Node) Node {
	return NthSibling(n, -1)
}

func Next(n Node) Node {
	return NthSibling(n, 1)
}

const AllLevels = -1

func NumOfChildren(parent Node, levels int) int {
	if parent == nil {
		return 0
	}

	i := 0
	for _, c := range parent.Children() {
		i++
		if levels != 0 {
			i += NumOfChildren(c, levels-1)
		}
	}
	return i
}

// Leaves returns nodes having no children, left to right.
func Leaves(n Node) []Node {
	var res []Node
	visitNode(n, func(nn Node) (bool, bool) {
		if nn.Len() == 0 {
			res = append(res, nn)
		}
		return true, true
	}, false)
	return res
}

type NodeVisitor func(n Node) (walkChildren, walkSiblings bool)

type WalkMode int

const (
	WalkLtr WalkMode = 0
	WalkRtl WalkMode = 1
)

func Walk(n Node, mode WalkMode, visitor NodeVisitor) {
	if n != nil {
		visitNode(n, visitor, (mode&WalkRtl) != 0)
	}
}

func visitNode(n Node, v NodeVisitor, rtl bool) (visitSiblings bool) {
	vc, vs := v(n)
	if !vc {
		return vs
	}

	l := n.Len()
	for i := 0; i < l && vc; i++ {
		if rtl {
			vc = visitNode(n.At(l-i-1), v, true)
		} else {
			vc = visitNode(n.At(i), v, false)
		}
	}

	return vs
}

type NodeFilter func(n Node) bool
type NodeExtractor func(n Node) []Node

type NodeSelector func(n Node) []Node

// Selector is a chain of node selectors applied one after another.
type Selector struct {
	selectors []NodeSelector
}

func NewSelector() *Selector {
	return &Selector{}
}

// Apply returns nodes selected from input nodes, without duplicates.
func (s *Selector) Apply(input ...Node) []Node {
	res := make([]Node, 0)
	index := make(map[Node]bool)
	hasTransformers := (len(s.selectors) > 0)

	for i, n := range input {
		if n == nil {
			continue
		}

		var ns []Node
		if hasTransformers {
			ns = selectNodes(input[i:i+1], s.selectors)
		} else {
			ns = input[i : i+1]
		}

		for _, tn := range ns {
			if !index[tn] {
				index[tn] = true
				res = append(res, tn)
			}
		}
	}

	return res
}

func selectNodes(ns []Node, nss []NodeSelector) []Node {
	res := make([]Node, 0)
	s := nss[0]
	nss = nss[1:]
	goDeeper := (len(nss) > 0)
	for _, n := range ns {
		if goDeeper {
			res = append(res, selectNodes(s(n), nss)...)
		} else {
			res = append(res, s(n)...)
		}
	}
	return res
}

func (s *Selector) Use(ns NodeSelector) *Selector {
	if ns != nil {
		s.selectors = append(s.selectors, ns)
	}
	return s
}

func (s *Selector) Filter(nf NodeFilter) *Selector {
	return s.Use(func(n Node) []Node {
		if nf(n) {
			return []Node{n}
		}
		return nil
	})
}

func (s *Selector) Extract(ne NodeExtractor) *Selector {
	return s.Use(func(n Node) []Node {
		return ne(n)
	})
}

// Search selects descendants of a node (including the node itself) passing the filter.
// Descendants of matching nodes are searched only if deepSearch is set.
func (s *Selector) Search(nf NodeFilter, deepSearch bool) *Selector {
	return s.Use(func(n Node) []Node {
		res := make([]Node, 0)
		visitNode(n, func(nn Node) (vc, vs bool) {
			if nf(nn) {
				res = append(res, nn)
				return deepSearch, true
			}
			return true, true
		}, false)
		return res
	})
}

// Select returns all nodes of the tree rooted at n having one of the given rule names.
func Select(n Node, names ...string) []Node {
	return NewSelector().Search(IsA(names...), true).Apply(n)
}

func IsNot(f NodeFilter) NodeFilter {
	return func(n Node) bool {
		return !f(n)
	}
}

func IsAny(fs ...NodeFilter) NodeFilter {
	return func(n Node) bool {
		return slices.ContainsFunc(fs, func(f NodeFilter) bool { return f(n) })
	}
}

func IsAll(fs ...NodeFilter) NodeFilter {
	return func(n Node) bool {
		return !slices.ContainsFunc(fs, func(f NodeFilter) bool { return !f(n) })
	}
}

// IsA matches named rule results by full rule name.
func IsA(names ...string) NodeFilter {
	return func(n Node) bool {
		return n.Name() != "" && slices.Contains(names, n.Name())
	}
}

// IsAValue matches successful nodes by matched text.
func IsAValue(texts ...string) NodeFilter {
	return func(n Node) bool {
		return n.Success() && slices.Contains(texts, n.Value())
	}
}

// IsFailed matches failed attempts.
func IsFailed(n Node) bool {
	return !n.Success()
}

func Any(nss ...NodeExtractor) NodeExtractor {
	return func(n Node) (res []Node) {
		for _, ns := range nss {
			res = ns(n)
			if len(res) > 0 {
				break
			}
		}
		return
	}
}

func All(nss ...NodeExtractor) NodeExtractor {
	return func(n Node) (res []Node) {
		for _, ns := range nss {
			res = append(res, ns(n)...)
		}
		return
	}
}

func Ancestors(levels ...int) NodeExtractor {
	return pick(levels, Ancestor)
}

func NthChildren(indexes ...int) NodeExtractor {
	return pick(indexes, NthChild)
}

func NthSiblings(indexes ...int) NodeExtractor {
	return pick(indexes, NthSibling)
}

func pick(indexes []int, f func(Node, int) Node) NodeExtractor {
	return func(n Node) []Node {
		res := make([]Node, 0, len(indexes))
		for _, i := range indexes {
			if nn := f(n, i); nn != nil {
				res = append(res, nn)
			}
		}
		return res
	}
}

// Children extracts all children of a node.
func Children(n Node) []Node {
	if n == nil {
		return nil
	}
	return n.Children()
}
