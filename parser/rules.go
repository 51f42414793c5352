package parser

import (
	"sort"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// Rules is a table of named rules with nested namespaces.
// Rule names are dot-separated paths, a reference is resolved by looking up its name
// in the namespace where it was created, then in every enclosing namespace.
type Rules struct {
	builder    *Builder
	rules      *linkedhashmap.Map
	namespaces *arraystack.Stack
	refs       []*NamedParser
}

// NewRules creates empty table, rules are defined with b.
func NewRules(b *Builder) *Rules {
	return &Rules{
		builder:    b,
		rules:      linkedhashmap.New(),
		namespaces: arraystack.New(),
	}
}

func (rs *Rules) Builder() *Builder {
	return rs.builder
}

// Namespace returns current namespace or empty string.
func (rs *Rules) Namespace() string {
	if ns, ok := rs.namespaces.Peek(); ok {
		return ns.(string)
	}
	return ""
}

// PushNamespace enters nested namespace.
func (rs *Rules) PushNamespace(name string) {
	rs.namespaces.Push(rs.fullName(name))
}

// PopNamespace leaves current namespace.
func (rs *Rules) PopNamespace() {
	if _, ok := rs.namespaces.Pop(); !ok {
		panic("parser: namespace stack is empty")
	}
}

func (rs *Rules) fullName(name string) string {
	if ns := rs.Namespace(); ns != "" {
		return ns + "." + name
	}
	return name
}

// Add defines rule in current namespace. Definition of existing rule is added
// as an alternative to the previous one.
func (rs *Rules) Add(name string, def Parser) *NamedParser {
	fullName := rs.fullName(name)
	if n := rs.Rule(fullName); n != nil {
		n.def = Either(n.def, def)
		tracer().Debugf("rule %s extended", fullName)
		return n
	}

	n := rs.builder.Define(rs.builder.Named(fullName), def)
	rs.rules.Put(fullName, n)
	tracer().Debugf("rule %s defined", fullName)
	return n
}

// Get returns reference to a rule visible from current namespace.
// The rule may be defined later.
func (rs *Rules) Get(name string) *NamedParser {
	ref := newReference(name, rs.Namespace(), rs, rs.builder.CurrentWhitespace())
	rs.refs = append(rs.refs, ref)
	return ref
}

// Rule returns defined rule by full name or nil.
func (rs *Rules) Rule(fullName string) *NamedParser {
	if n, ok := rs.rules.Get(fullName); ok {
		return n.(*NamedParser)
	}
	return nil
}

// Names returns full names of defined rules in definition order.
func (rs *Rules) Names() []string {
	keys := rs.rules.Keys()
	res := make([]string, len(keys))
	for i, k := range keys {
		res[i] = k.(string)
	}
	return res
}

func (rs *Rules) Len() int {
	return rs.rules.Size()
}

// Resolve implements Resolver.
func (rs *Rules) Resolve(ref *NamedParser) *NamedParser {
	ns := ref.namespace
	for {
		name := ref.name
		if ns != "" {
			name = ns + "." + ref.name
		}
		if n := rs.Rule(name); n != nil {
			return n
		}
		if ns == "" {
			return nil
		}

		i := strings.LastIndexByte(ns, '.')
		if i < 0 {
			ns = ""
		} else {
			ns = ns[:i]
		}
	}
}

// Unresolved returns sorted names of references that cannot be resolved, without duplicates.
func (rs *Rules) Unresolved() []string {
	var res []string
	seen := make(map[string]bool)
	for _, ref := range rs.refs {
		if ref.lookup() == nil && !seen[ref.name] {
			seen[ref.name] = true
			res = append(res, ref.name)
		}
	}
	sort.Strings(res)
	return res
}

// References returns all references created with Get.
func (rs *Rules) References() []*NamedParser {
	return rs.refs
}

// String returns rule definitions in grammar notation.
func (rs *Rules) String() string {
	var sb strings.Builder
	it := rs.rules.Iterator()
	for it.Next() {
		n := it.Value().(*NamedParser)
		sb.WriteString(n.name)
		sb.WriteString(" = ")
		sb.WriteString(n.def.String())
		sb.WriteString(";\n")
	}
	return sb.String()
}
