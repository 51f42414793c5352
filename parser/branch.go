package parser

import (
	"strings"
)

// BranchParser tries every alternative from the same position and keeps the one
// that went furthest. Ties prefer success over failure and the earlier alternative.
// Failure is reported for all alternatives that failed at the furthest position.
type BranchParser struct {
	base
	inner []Parser
}

func (b *BranchParser) Inner() []Parser {
	return b.inner
}

func (b *BranchParser) Match(r *Result, errorPass bool) bool {
	if len(b.inner) == 0 {
		return r.Fail(NullParserError, neverMessage)
	}

	var best *Result
	var ties []*Result
	for _, p := range b.inner {
		a := r.Peek(p, errorPass)
		if a.invalid || (a.committed && !a.success && !(best != nil && best.success && best.readPos() >= a.readPos())) {
			releaseAttempts(best, ties)
			// commit is scoped to the innermost alternation
			a.committed = false
			return r.Error(a)
		}

		switch {
		case a.isBetterThan(best):
			releaseAttempts(best, ties)
			best, ties = a, ties[:0]
		case errorPass && a.tiesWith(best):
			ties = append(ties, a)
		default:
			a.Release()
		}
	}

	if best.success {
		releaseAttempts(nil, ties)
		r.Apply(best)
		return true
	}

	r.Error(best)
	for _, t := range ties {
		r.Error(t)
	}
	return false
}

func releaseAttempts(best *Result, ties []*Result) {
	if best != nil {
		best.Release()
	}
	for _, t := range ties {
		t.Release()
	}
}

func (r *Result) isBetterThan(o *Result) bool {
	if o == nil {
		return true
	}

	rp, op := r.readPos(), o.readPos()
	return r.errorType != NullParserError && (rp > op || rp == op && r.success && !o.success) ||
		o.errorType == NullParserError
}

func (r *Result) tiesWith(o *Result) bool {
	return o != nil && !r.success && !o.success &&
		r.errorType != NullParserError && o.errorType != NullParserError &&
		r.readPos() == o.readPos()
}

func (b *BranchParser) String() string {
	if rest, ok := optionalOf(b); ok {
		if len(rest) == 1 {
			if rp, ok := rest[0].(*RepeatedParser); ok {
				return group(rp.inner, true) + "*"
			}
			return group(rest[0], true) + "?"
		}
		return "(" + joinAlternatives(rest) + ")?"
	}

	return joinAlternatives(b.inner)
}

func joinAlternatives(ps []Parser) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = group(p, false)
	}
	return strings.Join(parts, " | ")
}

// optionalOf returns alternatives preceding the trailing empty alternative.
func optionalOf(b *BranchParser) ([]Parser, bool) {
	n := len(b.inner)
	if n < 2 || b.inner[n-1] != Parser(empty) {
		return nil, false
	}
	return b.inner[:n-1], true
}
