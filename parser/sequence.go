package parser

import (
	"strings"
)

// SequenceParser matches its elements one after another.
// Whitespace is skipped between elements.
type SequenceParser struct {
	base
	inner []Parser
}

func (s *SequenceParser) Inner() []Parser {
	return s.inner
}

func (s *SequenceParser) Match(r *Result, errorPass bool) bool {
	for i, p := range s.inner {
		if i > 0 && s.ws != nil && !r.inWhitespace {
			r.skipWhitespace(s.ws, errorPass)
		}
		if !r.Read(p, errorPass) {
			return false
		}
	}

	return true
}

func (s *SequenceParser) String() string {
	parts := make([]string, len(s.inner))
	for i, p := range s.inner {
		parts[i] = group(p, false)
	}
	return strings.Join(parts, " ")
}

// group wraps compound combinator description in parentheses.
func group(p Parser, sequences bool) string {
	switch x := p.(type) {
	case *BranchParser:
		if _, ok := optionalOf(x); !ok {
			return "(" + p.String() + ")"
		}
	case *SequenceParser:
		if sequences {
			return "(" + p.String() + ")"
		}
	}
	return p.String()
}
