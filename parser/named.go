package parser

import (
	"fmt"
	"sync"
)

// Resolver finds the defined rule a reference points to.
type Resolver interface {
	// Resolve returns defined rule or nil.
	Resolve(ref *NamedParser) *NamedParser
}

// NamedParser is either a defined rule or a reference to a rule.
//
// Defined rules are created with Builder.Named and get their definition with Builder.Define,
// so rules may reference each other before they are defined.
// References are created by a Resolver-backed table (see Rules) and find their rule on first use.
// A rule and all references to it are the same rule: results of any of them compare equal
// when detecting left recursion or flattening recursive results.
type NamedParser struct {
	base
	name      string
	namespace string
	resolver  Resolver
	once      sync.Once
	target    *NamedParser
	def       Parser
}

func newNamed(name string, ws Parser) *NamedParser {
	n := &NamedParser{name: name}
	n.ws = ws
	n.target = n
	return n
}

func newReference(name, namespace string, resolver Resolver, ws Parser) *NamedParser {
	n := &NamedParser{name: name, namespace: namespace, resolver: resolver}
	n.ws = ws
	return n
}

// rule returns the defined rule, panics if it cannot be resolved.
func (n *NamedParser) rule() *NamedParser {
	n.once.Do(func() {
		if n.target == nil && n.resolver != nil {
			n.target = n.resolver.Resolve(n)
		}
	})
	if n.target == nil || n.target.def == nil {
		panic(fmt.Sprintf("parser: cannot resolve rule %q", n.name))
	}
	return n.target
}

func (n *NamedParser) lookup() *NamedParser {
	if n.target != nil {
		return n.target
	}
	if n.resolver == nil {
		return nil
	}
	return n.resolver.Resolve(n)
}

// Name returns full name of the rule.
func (n *NamedParser) Name() string {
	return n.rule().name
}

// RefName returns name as it was written in the reference.
func (n *NamedParser) RefName() string {
	return n.name
}

// Namespace returns namespace where the reference was created.
func (n *NamedParser) Namespace() string {
	return n.namespace
}

// IsDefined reports whether n is a defined rule and not a reference.
func (n *NamedParser) IsDefined() bool {
	return n.target == n
}

// Rule returns the defined rule n refers to.
func (n *NamedParser) Rule() *NamedParser {
	return n.rule()
}

// Definition returns combinator the rule is defined with.
func (n *NamedParser) Definition() Parser {
	return n.rule().def
}

func (n *NamedParser) Flags() Flags {
	return n.rule().flags
}

// Collapses reports whether the rule collapses into its single named child.
func (n *NamedParser) Collapses() bool {
	return n.rule().flags&CollapseIfSingle != 0
}

func (n *NamedParser) Match(r *Result, errorPass bool) bool {
	def := n.rule().def
	if _, alias := def.(*NamedParser); alias {
		return r.Read(def, errorPass)
	}
	return run(def, r, errorPass)
}

func (n *NamedParser) String() string {
	return n.name
}

func sameParser(a, b Parser) bool {
	if a == b {
		return true
	}

	na, ok := a.(*NamedParser)
	if !ok {
		return false
	}
	nb, ok := b.(*NamedParser)
	return ok && na.rule() == nb.rule()
}
