package parsecgen

import (
	"go/token"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/ava12/parsec/parser"
)

// identifier converts full rule name to exported identifier: Value.integer_part gives ValueIntegerPart.
func identifier(name string) string {
	return strcase.ToCamel(name)
}

// identifiers maps full rule names to identifiers, reserved identifiers may not be used.
func identifiers(rules *parser.Rules, reserved ...string) (map[string]string, error) {
	owners := make(map[string]string, rules.Len())
	for _, r := range reserved {
		owners[r] = ""
	}

	res := make(map[string]string, rules.Len())
	for _, name := range rules.Names() {
		ident := identifier(name)
		if !token.IsIdentifier(ident) || !token.IsExported(ident) {
			return nil, invalidNameError("rule", name)
		}
		if owner, found := owners[ident]; found {
			if owner == "" {
				owner = "generated code"
			}
			return nil, nameConflictError(owner, name, ident)
		}

		owners[ident] = name
		res[name] = ident
	}
	return res, nil
}

// rootName returns name of the root rule, the first top-level one by default.
func rootName(rules *parser.Rules, name string) (string, error) {
	if name != "" {
		if rules.Rule(name) == nil {
			return "", unknownRootError(name)
		}
		return name, nil
	}

	for _, n := range rules.Names() {
		if !strings.ContainsRune(n, '.') {
			return n, nil
		}
	}
	return "", unknownRootError(name)
}

func checkRules(rules *parser.Rules) error {
	if rules.Len() == 0 {
		return emptyGrammarError()
	}
	if names := rules.Unresolved(); len(names) > 0 {
		return unresolvedRuleError(names)
	}
	return nil
}

// optionalOf splits alternation ending with empty alternative.
func optionalOf(b *parser.BranchParser) ([]parser.Parser, bool) {
	inner := b.Inner()
	n := len(inner)
	if n < 2 || !parser.IsEmpty(inner[n-1]) {
		return nil, false
	}
	return inner[:n-1], true
}
