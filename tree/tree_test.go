package tree

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/testconfig"

	"github.com/ava12/parsec/internal/test"
	"github.com/ava12/parsec/parser"
)

func pairGrammar() (list, pair parser.Parser) {
	b := parser.NewBuilder()
	defer b.AllowWhitespace(parser.Regex(`\s+`)).Release()

	l, p := b.Named("List"), b.Named("Pair")
	key, value := b.Named("Key"), b.Named("Value")
	b.Define(key, b.Regex("[a-z]+"))
	b.Define(value, b.Regex(`\d+`))
	b.Define(p, b.Seq(b.Ref(key), b.Literal("="), b.Ref(value)))
	b.Define(l, b.Seq(b.Ref(p), b.ZeroOrMore(b.Seq(b.Literal(","), b.Ref(p)))))
	return l, p
}

func parseList(t *testing.T, src string) Node {
	list, _ := pairGrammar()
	r := parser.Parse(list, src)
	test.Assert(t, r.Complete(), "cannot parse %q: %s", src, r)
	return r
}

func names(ns []Node) string {
	res := make([]string, len(ns))
	for i, n := range ns {
		res[i] = ElementName(n)
	}
	return strings.Join(res, " ")
}

func TestNavigation(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()

	root := parseList(t, "a=1, b=2")
	defer root.Release()

	test.ExpectInt(t, 2, root.Len())
	first, second := root.At(0), root.At(1)
	key := first.At(0)

	test.Assert(t, NthChild(root, -1) == second, "NthChild(-1) must return the last child")
	test.Assert(t, NthChild(root, 2) == nil, "NthChild out of range must return nil")
	test.Assert(t, NthSibling(first, 1) == second, "wrong NthSibling")
	test.Assert(t, NthSibling(first, 0) == first, "NthSibling(0) must return the node itself")
	test.Assert(t, Prev(second) == first, "wrong Prev")
	test.Assert(t, Next(second) == nil, "Next of the last node must be nil")
	test.Assert(t, Next(root) == nil, "root has no siblings")
	test.ExpectInt(t, 1, SiblingIndex(second))
	test.ExpectInt(t, 2, NodeLevel(key))
	test.Assert(t, Ancestor(key, 0) == first, "wrong parent")
	test.Assert(t, Ancestor(key, 1) == root, "wrong grandparent")
	test.Assert(t, Ancestor(key, 2) == nil, "root has no parent")
	test.ExpectInt(t, 2, NumOfChildren(root, 0))
	test.ExpectInt(t, 6, NumOfChildren(root, AllLevels))
	test.ExpectString(t, "Key Value Key Value", names(Leaves(root)))
	test.ExpectInt(t, 0, len(Children(nil)))
}

func TestWalk(t *testing.T) {
	root := parseList(t, "a=1, b=2")
	defer root.Release()

	var visited []Node
	visitor := func(n Node) (bool, bool) {
		visited = append(visited, n)
		return true, true
	}

	Walk(root, WalkLtr, visitor)
	test.ExpectString(t, "List Pair Key Value Pair Key Value", names(visited))

	visited = nil
	Walk(root, WalkRtl, visitor)
	test.ExpectString(t, "List Pair Value Key Pair Value Key", names(visited))

	visited = nil
	Walk(root, WalkLtr, func(n Node) (bool, bool) {
		visited = append(visited, n)
		return n.Name() != "Pair", true
	})
	test.ExpectString(t, "List Pair Pair", names(visited))

	visited = nil
	Walk(root, WalkLtr, func(n Node) (bool, bool) {
		visited = append(visited, n)
		return n.Name() != "Pair", n.Name() != "Key"
	})
	test.ExpectString(t, "List Pair Pair", names(visited))

	visited = nil
	Walk(root, WalkLtr, func(n Node) (bool, bool) {
		visited = append(visited, n)
		return true, n.Name() != "Key"
	})
	test.ExpectString(t, "List Pair Key Pair Key", names(visited))
}

func TestSelector(t *testing.T) {
	root := parseList(t, "a=1, b=2, c=2")
	defer root.Release()

	keys := Select(root, "Key")
	test.ExpectInt(t, 3, len(keys))
	test.ExpectString(t, "a", keys[0].Value())
	test.ExpectString(t, "c", keys[2].Value())

	values := NewSelector().
		Search(IsA("Pair"), false).
		Extract(NthChildren(1)).
		Filter(IsAValue("2")).
		Apply(root)
	test.ExpectInt(t, 2, len(values))
	test.ExpectString(t, "Value", values[0].Name())

	parents := NewSelector().Extract(Ancestors(0)).Apply(keys...)
	test.ExpectInt(t, 3, len(parents))

	ns := NewSelector().Search(IsAll(IsA("Key", "Value"), IsNot(IsAValue("a", "1"))), true).Apply(root)
	test.ExpectInt(t, 4, len(ns))

	ns = NewSelector().Search(IsAny(IsA("Pair"), IsAValue("2")), false).Apply(root)
	test.ExpectInt(t, 3, len(ns))

	ns = NewSelector().Extract(All(NthChildren(0), NthChildren(-1))).Apply(root)
	test.ExpectInt(t, 2, len(ns))

	ns = NewSelector().Extract(Any(NthChildren(5), NthChildren(1))).Apply(root)
	test.ExpectInt(t, 1, len(ns))
	test.Assert(t, ns[0] == root.At(1), "Any must return the first non-empty extraction")

	ns = NewSelector().Extract(NthSiblings(-1, 1)).Apply(root.At(1))
	test.ExpectString(t, "Pair Pair", names(ns))
}

func TestXML(t *testing.T) {
	_, pair := pairGrammar()

	r := parser.Parse(pair, "a=1")
	expected := `<Pair index="0" length="3">
  <Key index="0" length="1">a</Key>
  <Value index="2" length="1">1</Value>
</Pair>`
	test.ExpectString(t, expected, XML(r))
	r.Release()

	r = parser.Parse(pair, "a=x")
	expected = `<Pair index="0" length="2">
  <Key index="0" length="1">a</Key>
  <Value index="2" length="0">
    <ParseError>Expected Value</ParseError>
  </Value>
</Pair>`
	test.ExpectString(t, expected, XML(r))
	test.ExpectInt(t, 1, len(NewSelector().Search(IsFailed, false).Extract(NthChildren(-1)).Apply(r)))
	r.Release()

	r = parser.Parse(pair, "a:1")
	test.ExpectContains(t, XML(r), `<Literal index="1" length="0">`, "<ParseError>Expected &#39;=&#39;</ParseError>")
	r.Release()
}
