package parsec_test

import (
	"fmt"

	"github.com/ava12/parsec/langdef"
	"github.com/ava12/parsec/parser"
	"github.com/ava12/parsec/tree"
)

func Example() {
	input := `
foo = hello
bar = world
[sec]
baz =
[sec.subsec]
qux = !
`
	grammar := `
ignore /[ \t\r]+/ {
	Config = (Section | Value | Nl)*;
	Section = "[" SecName "]" Nl;
	Value = Name "=" Text? Nl;
}
Nl = /\n/;
SecName = /[a-z]+(?:\.[a-z]+)*/;
Name = /[a-z]+/;
Text = /[^\n]+/;
`
	rules, e := langdef.ParseString("example grammar", grammar)
	if e != nil {
		fmt.Println(e)
		return
	}

	r := parser.Parse(langdef.Root(rules), input)
	defer r.Release()
	if !r.Complete() {
		fmt.Println(r.Err())
		return
	}

	result := make(map[string]string)
	prefix := ""
	for _, n := range tree.Children(r) {
		switch n.Name() {
		case "Section":
			prefix = tree.Select(n, "SecName")[0].Value() + "."
		case "Value":
			name := prefix + tree.Select(n, "Name")[0].Value()
			result[name] = ""
			if text := tree.Select(n, "Text"); len(text) > 0 {
				result[name] = text[0].Value()
			}
		}
	}
	fmt.Println(result)
	// Output:
	// map[bar:world foo:hello sec.baz: sec.subsec.qux:!]
}
