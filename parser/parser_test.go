package parser

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"

	"github.com/ava12/parsec/internal/test"
)

type matchSample struct {
	src     string
	success bool
	length  int
}

func testMatchSamples(t *testing.T, name string, p Parser, samples []matchSample) {
	t.Helper()
	for i, s := range samples {
		r := Parse(p, s.src)
		if r.Success() != s.success {
			t.Errorf("%s, sample #%d (%q): expecting success=%v, got %v (%s)", name, i, s.src, s.success, r.Success(), r)
		} else if s.success && r.Length() != s.length {
			t.Errorf("%s, sample #%d (%q): expecting length %d, got %d", name, i, s.src, s.length, r.Length())
		}
		r.Release()
	}
}

// dump renders named part of the result tree as "(Name child child)".
func dump(r *Result) string {
	var sb strings.Builder
	var walk func(r *Result)
	walk = func(r *Result) {
		sb.WriteByte('(')
		sb.WriteString(r.Name())
		for _, c := range r.Children() {
			sb.WriteByte(' ')
			walk(c)
		}
		sb.WriteByte(')')
	}
	walk(r)
	return sb.String()
}

func TestTerminals(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()

	testMatchSamples(t, "literal", Literal("foo"), []matchSample{
		{"foo", true, 3},
		{"foobar", true, 3},
		{"fo", false, 0},
		{"Foo", false, 0},
		{"", false, 0},
	})

	testMatchSamples(t, "regex", Regex(`[a-z]+\d*`), []matchSample{
		{"abc12", true, 5},
		{"abc 12", true, 3},
		{"1abc", false, 0},
	})

	icase, e := NewRegex("abc", true)
	test.Assert(t, e == nil, "unexpected error: %v", e)
	testMatchSamples(t, "ignore case regex", icase, []matchSample{
		{"ABC", true, 3},
		{"aBc", true, 3},
		{"abd", false, 0},
	})

	testMatchSamples(t, "empty", Empty(), []matchSample{
		{"", true, 0},
		{"abc", true, 0},
	})

	testMatchSamples(t, "empty literal", Literal(""), []matchSample{
		{"x", true, 0},
	})

	_, e = NewRegex("(", false)
	test.Assert(t, e != nil, "expecting regex compilation error")
	test.ExpectPanic(t, func() { Regex("[") })
}

func TestRegexAnchoring(t *testing.T) {
	r := Parse(Seq(Literal("a"), Regex("b+")), "abbc")
	test.ExpectBool(t, true, r.Success())
	test.ExpectInt(t, 3, r.Length())
	test.ExpectBool(t, false, r.Complete())
	r.Release()

	r = Parse(Regex("b"), "ab")
	test.ExpectBool(t, false, r.Success())
	r.Release()

	testMatchSamples(t, "assertions at cursor", Seq(Literal("x"), Regex(`\bfoo`), Regex(`^\d`)), []matchSample{
		{"xfoo1", true, 5},
		{"xfo1", false, 0},
	})
}

func TestWhitespace(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()

	b := NewBuilder()
	scope := b.AllowWhitespace(Literal(" "))
	p := b.Seq(b.Literal("A"), b.Literal("A"))
	scope.Release()

	samples := []struct {
		src     string
		success bool
	}{
		{"AA", true},
		{"A A", true},
		{" AA", true},
		{"AA ", true},
		{"A  A", true},
		{"   A    A          ", true},
		{"   A    B  ", false},
		{"A\tA", false},
	}
	for i, s := range samples {
		r := Parse(p, s.src)
		if r.Complete() != s.success {
			t.Errorf("sample #%d (%q): expecting complete=%v, got %v", i, s.src, s.success, r.Complete())
		}
		r.Release()
	}

	r := Parse(p, "   A    A          ")
	test.ExpectString(t, "A    A", r.Value())
	test.ExpectInt(t, 3, r.TrimmedIndex())
	test.ExpectInt(t, 6, r.TrimmedLength())
	r.Release()

	test.Assert(t, b.CurrentWhitespace() == nil, "whitespace scope is not released")
}

func TestForbidWhitespace(t *testing.T) {
	b := NewBuilder()
	allow := b.AllowWhitespace(Regex(`\s+`))
	forbid := b.ForbidWhitespace()
	word := b.Seq(b.Literal("a"), b.Literal("b"))
	forbid.Release()
	p := b.Seq(word, word)
	allow.Release()

	testMatchSamples(t, "forbid whitespace", p, []matchSample{
		{"ab ab", true, 5},
		{"abab", true, 4},
		{"a b ab", false, 0},
	})
}

func TestAlternation(t *testing.T) {
	testMatchSamples(t, "longest", Either(Literal("a"), Seq(Literal("a"), Literal("b"))), []matchSample{
		{"ab", true, 2},
		{"ac", true, 1},
		{"c", false, 0},
	})

	// the first of equally long alternatives wins
	b := NewBuilder()
	x, y := b.Named("X"), b.Named("Y")
	b.Define(x, Regex("[a-z]+"))
	b.Define(y, Regex("[a-z0-9]+"))
	r := Parse(Either(x, y), "abc")
	test.ExpectInt(t, 1, r.Len())
	test.ExpectString(t, "X", r.At(0).Name())
	r.Release()

	r = Parse(Either(x, y), "abc1")
	test.ExpectString(t, "Y", r.At(0).Name())
	r.Release()
}

func TestAlternationTie(t *testing.T) {
	b := NewBuilder()
	x, y := b.Named("X"), b.Named("Y")
	b.Define(x, Seq(Literal("a"), Literal("b")))
	b.Define(y, Seq(Literal("a"), Literal("c")))

	r := Parse(Either(x, y), "ad")
	test.ExpectBool(t, false, r.Success())
	test.ExpectString(t, "Expected 'b' or 'c'", r.ErrorMessage())
	test.ExpectInt(t, 2, len(r.Errors()))
	test.ExpectInt(t, 1, r.ErrorPos().Line())
	test.ExpectInt(t, 2, r.ErrorPos().Col())
	test.ExpectErrorCode(t, UnexpectedInputError, r.Err())
	r.Release()
}

func TestRepeated(t *testing.T) {
	testMatchSamples(t, "repeated", Repeated(Literal("a")), []matchSample{
		{"a", true, 1},
		{"aaa", true, 3},
		{"aab", true, 2},
		{"b", false, 0},
	})

	testMatchSamples(t, "nullable repeated", Repeated(Optional(Literal("a"))), []matchSample{
		{"aab", true, 2},
		{"b", true, 0},
	})

	testMatchSamples(t, "zero or more", Seq(ZeroOrMore(Literal("a")), Literal("b")), []matchSample{
		{"b", true, 1},
		{"aaab", true, 4},
		{"aaa", false, 0},
	})

	testMatchSamples(t, "optional", Seq(Optional(Literal("-")), Regex(`\d+`)), []matchSample{
		{"-12", true, 3},
		{"12", true, 2},
		{"--12", false, 0},
	})
}

func TestLeftRecursion(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)

	rs := NewRules(NewBuilder())
	rs.Add("A", Either(rs.Get("A"), Literal("x")))

	r := Parse(rs.Rule("A"), "x")
	test.ExpectBool(t, false, r.Success())
	errs := r.Errors()
	test.Assert(t, len(errs) > 0, "expecting error leaves")
	test.Expect(t, errs[0].ErrorType() == InvalidGrammarError, InvalidGrammarError, errs[0].ErrorType())
	test.ExpectString(t, leftRecursionMessage, r.ErrorMessage())
	test.ExpectErrorCode(t, LeftRecursionError, r.Err())
	r.Release()

	rs = NewRules(NewBuilder())
	rs.Add("B", Seq(rs.Get("B"), Literal("x")))
	r = Parse(rs.Rule("B"), "xx")
	test.ExpectErrorCode(t, LeftRecursionError, r.Err())
	r.Release()
}

func TestRightRecursion(t *testing.T) {
	rs := NewRules(NewBuilder())
	rs.Add("List", Seq(Literal("a"), Optional(rs.Get("List"))))

	r := Parse(rs.Rule("List"), "aaa")
	test.ExpectBool(t, true, r.Complete())
	// same rule results are merged into the outer one
	test.ExpectString(t, "(List)", dump(r))
	r.Release()
}

func TestCollapse(t *testing.T) {
	build := func(collapse bool) Parser {
		b := NewBuilder()
		if collapse {
			defer b.EnableCollapse().Release()
		}
		expr, sum, term := b.Named("Expr"), b.Named("Sum"), b.Named("Term")
		b.Define(term, b.Regex(`\d+`))
		b.Define(sum, b.Ref(term))
		b.Define(expr, b.Ref(sum))
		return expr
	}

	r := Parse(build(false), "12")
	test.ExpectString(t, "(Expr (Sum (Term)))", dump(r))
	r.Release()

	r = Parse(build(true), "12")
	test.ExpectString(t, "(Expr (Term))", dump(r))
	test.ExpectString(t, "12", r.At(0).Value())
	r.Release()
}

func TestStrict(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()

	b := NewBuilder()
	cond := b.Define(b.Named("Cond"), Regex(`\([a-z]+\)`))
	ident := Regex("[a-z]+")

	loose := Either(Seq(Literal("if"), cond), ident)
	r := Parse(loose, "if")
	test.ExpectBool(t, true, r.Success())
	test.ExpectInt(t, 2, r.Length())
	r.Release()

	strict := Either(Seq(Literal("if"), Strict(cond)), ident)
	r = Parse(strict, "if")
	test.ExpectBool(t, false, r.Success())
	test.ExpectString(t, "Expected Cond", r.ErrorMessage())
	test.ExpectErrorCode(t, UnexpectedEoiError, r.Err())
	r.Release()

	r = Parse(strict, "if(x)")
	test.ExpectBool(t, true, r.Complete())
	r.Release()

	// commitment does not leak out of the alternation that contains it
	stmt := b.Define(b.Named("Stmt"), strict)
	r = Parse(Either(stmt, Literal("if")), "if")
	test.ExpectBool(t, true, r.Success())
	r.Release()
}

func TestStrictRepeated(t *testing.T) {
	item := Seq(Literal("a"), Strict(Literal("b")))
	testMatchSamples(t, "strict repeated", Repeated(item), []matchSample{
		{"abab", true, 4},
		{"ababc", true, 4},
		{"abac", false, 0},
	})
}

func TestNot(t *testing.T) {
	p := Seq(Not(Literal("x")), Regex("[a-z]"))
	testMatchSamples(t, "not", p, []matchSample{
		{"a", true, 1},
		{"x", false, 0},
	})

	r := Parse(p, "x")
	test.ExpectString(t, "Expected anything but 'x'", r.ErrorMessage())
	r.Release()

	r = Parse(Not(Literal("x")), "a")
	test.ExpectInt(t, 0, r.Length())
	r.Release()
}

func TestNever(t *testing.T) {
	r := Parse(Never(), "a")
	test.ExpectBool(t, false, r.Success())
	test.ExpectString(t, neverMessage, r.ErrorMessage())
	test.ExpectErrorCode(t, NoMatchError, r.Err())
	r.Release()

	r = Parse(Either(Never(), Literal("a")), "b")
	test.ExpectString(t, "Expected 'a'", r.ErrorMessage())
	r.Release()

	r = Parse(Either(), "a")
	test.ExpectErrorCode(t, NoMatchError, r.Err())
	r.Release()
}

func TestErrorMessages(t *testing.T) {
	samples := []struct {
		p       Parser
		src     string
		message string
		col     int
	}{
		{Literal("a"), "b", "Expected 'a'", 1},
		{Either(Literal("a"), Literal("b"), Literal("c")), "d", "Expected 'a', 'b', or 'c'", 1},
		{Either(Seq(Literal("a"), Literal("x")), Seq(Literal("a"), Literal("x"))), "ay", "Expected 'x'", 2},
		{Either(Seq(Literal("a"), Literal("b")), Literal("c")), "ax", "Expected 'b'", 2},
		{Regex(`\d+`), "x", `Expected /\d+/`, 1},
	}

	for i, s := range samples {
		r := Parse(s.p, s.src)
		if r.ErrorMessage() != s.message || r.ErrorPos().Col() != s.col {
			t.Errorf("sample #%d: expecting %q at col %d, got %q at col %d", i, s.message, s.col, r.ErrorMessage(), r.ErrorPos().Col())
		}
		r.Release()
	}
}

func TestErrorPosition(t *testing.T) {
	b := NewBuilder()
	defer b.AllowWhitespace(Regex(`\s+`)).Release()
	p := b.Repeated(b.Seq(b.Regex("[a-z]+"), b.Literal(";")))

	r := Parse(p, "foo;\nbar;\nbaz")
	test.ExpectBool(t, true, r.Success())
	test.ExpectBool(t, false, r.Complete())
	r.Release()

	eoi := b.Regex("$")
	r = Parse(b.Seq(p, eoi), "foo;\nbar;\nbaz")
	test.ExpectBool(t, false, r.Success())
	e := r.Err()
	test.ExpectErrorCode(t, UnexpectedInputError, e)
	test.ExpectContains(t, e.Error(), "Expected /$/", "line 3 col 1")
	r.Release()

	strict := b.Repeated(b.Seq(b.Regex("[a-z]+"), b.Strict(b.Literal(";"))))
	r = Parse(b.Seq(strict, eoi), "foo;\nbar;\nbaz")
	e = r.Err()
	test.ExpectErrorCode(t, UnexpectedEoiError, e)
	test.ExpectContains(t, e.Error(), "Expected ';'", "line 3 col 4")
	r.Release()
}

func TestDeterminism(t *testing.T) {
	rs := NewRules(NewBuilder())
	rs.Add("S", Repeated(Either(rs.Get("P"), rs.Get("Q"))))
	rs.Add("P", Seq(Literal("p"), Optional(Literal("!"))))
	rs.Add("Q", Seq(Literal("q"), Strict(Literal("?"))))

	for _, src := range []string{"pp!q?", "pq!"} {
		r1 := Parse(rs.Rule("S"), src)
		r2 := Parse(rs.Rule("S"), src)
		test.ExpectString(t, dump(r1), dump(r2))
		test.ExpectString(t, r1.String(), r2.String())
		test.ExpectBool(t, r1.Success(), r2.Success())
		r1.Release()
		r2.Release()
	}
}

func TestPool(t *testing.T) {
	rs := NewRules(NewBuilder())
	rs.Add("S", Repeated(Either(rs.Get("P"), rs.Get("Q"))))
	rs.Add("P", Seq(Literal("p"), Optional(Literal("!"))))
	rs.Add("Q", Seq(Literal("q"), Literal("?")))

	for _, src := range []string{"pp!q?", "pq!", ""} {
		r := Parse(rs.Rule("S"), src)
		ctx := r.ctx
		r.Release()
		test.ExpectInt(t, 0, ctx.pool.active())
	}

	r := Parse(rs.Rule("S"), "pq?")
	test.Assert(t, r.Len() > 0, "expecting children")
	child := r.At(0)
	test.ExpectPanic(t, child.Release)
	r.Release()
	test.ExpectPanic(t, r.Release)
}

func TestScopes(t *testing.T) {
	b := NewBuilder()
	s1 := b.AllowWhitespace(Literal(" "))
	s2 := b.EnableCollapse()
	test.ExpectPanic(t, s1.Release)
	test.ExpectBool(t, true, b.CollapseEnabled())
	s2.Release()
	test.ExpectBool(t, false, b.CollapseEnabled())
	s1.Release()
	test.ExpectPanic(t, s1.Release)

	outer := b.AllowWhitespace(Literal(" "))
	inner := b.AllowWhitespace(Literal("\t"))
	p := b.Seq(b.Literal("a"), b.Literal("b"))
	inner.Release()
	outer.Release()
	testMatchSamples(t, "nested whitespace", p, []matchSample{
		{"a \t b", true, 5},
		{"ab", true, 2},
	})
}

func TestRuleNamespaces(t *testing.T) {
	rs := NewRules(NewBuilder())
	rs.PushNamespace("Value")
	rs.Add("Integer", Regex(`\d+`))
	rs.Add("Float", Regex(`\d+\.\d+`))
	def := Either(rs.Get("Float"), rs.Get("Integer"))
	rs.PopNamespace()
	rs.Add("Value", def)

	test.ExpectString(t, "Value.Integer Value.Float Value", strings.Join(rs.Names(), " "))
	test.ExpectInt(t, 3, rs.Len())

	r := Parse(rs.Rule("Value"), "12.5")
	test.ExpectBool(t, true, r.Complete())
	test.ExpectInt(t, 1, r.Len())
	test.ExpectString(t, "Value.Float", r.At(0).Name())
	r.Release()

	r = Parse(rs.Rule("Value"), "12")
	test.ExpectString(t, "Value.Integer", r.At(0).Name())
	r.Release()

	test.ExpectPanic(t, rs.PopNamespace)
}

func TestRuleResolution(t *testing.T) {
	rs := NewRules(NewBuilder())
	rs.PushNamespace("Outer")
	rs.PushNamespace("Inner")
	test.ExpectString(t, "Outer.Inner", rs.Namespace())
	top := rs.Get("Top")
	shadowed := rs.Get("Item")
	rs.PopNamespace()
	rs.Add("Item", Literal("inner"))
	rs.PopNamespace()
	rs.Add("Top", Literal("t"))
	rs.Add("Item", Literal("outer"))

	test.ExpectString(t, "Top", top.Rule().Name())
	test.ExpectString(t, "Outer.Item", shadowed.Rule().Name())
	test.ExpectInt(t, 0, len(rs.Unresolved()))
}

func TestRuleMerge(t *testing.T) {
	rs := NewRules(NewBuilder())
	rs.Add("X", Literal("a"))
	rs.Add("X", Literal("b"))
	test.ExpectInt(t, 1, rs.Len())
	test.ExpectString(t, "X = \"a\" | \"b\";\n", rs.String())
	testMatchSamples(t, "merged", rs.Rule("X"), []matchSample{
		{"a", true, 1},
		{"b", true, 1},
		{"c", false, 0},
	})
}

func TestUnresolved(t *testing.T) {
	rs := NewRules(NewBuilder())
	rs.Add("A", Seq(rs.Get("Missing"), rs.Get("Missing"), rs.Get("A")))
	test.ExpectString(t, "Missing", strings.Join(rs.Unresolved(), ","))

	rs.Add("B", Seq(rs.Get("Zed"), rs.Get("Alpha"), rs.Get("Missing")))
	test.ExpectString(t, "Alpha,Missing,Zed", strings.Join(rs.Unresolved(), ","))
	test.ExpectPanic(t, func() { Parse(rs.Rule("A"), "x") })
}

func TestBuilderDefine(t *testing.T) {
	b := NewBuilder()
	n := b.Named("N")
	b.Define(n, Literal("n"))
	test.ExpectPanic(t, func() { b.Define(n, Literal("m")) })
	test.ExpectPanic(t, func() { b.Define(b.Ref(n), Literal("m")) })
	test.ExpectBool(t, true, n.IsDefined())
	test.ExpectBool(t, false, b.Ref(n).IsDefined())
	test.Assert(t, b.Ref(n).Rule() == n, "reference must point to its rule")
}

func TestDescriptions(t *testing.T) {
	samples := []struct {
		p    Parser
		text string
	}{
		{Literal(`a"b`), `"a\"b"`},
		{Regex("a/b"), `/a\/b/`},
		{Seq(Literal("a"), Either(Literal("b"), Literal("c"))), `"a" ("b" | "c")`},
		{Optional(Literal("a")), `"a"?`},
		{ZeroOrMore(Literal("a")), `"a"*`},
		{Repeated(Seq(Literal("a"), Literal("b"))), `("a" "b")+`},
		{Optional(Either(Literal("a"), Literal("b"))), `("a" | "b")?`},
		{Strict(Literal("a")), `$"a"`},
		{Not(Literal("a")), `!"a"`},
		{Empty(), `""`},
	}

	for i, s := range samples {
		if s.p.String() != s.text {
			t.Errorf("sample #%d: expecting %s, got %s", i, s.text, s.p.String())
		}
	}
}
