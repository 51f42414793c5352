package parser

// RepeatedParser matches its inner combinator one or more times.
// Repetition stops when the inner combinator fails or matches nothing.
type RepeatedParser struct {
	base
	inner Parser
}

func (rp *RepeatedParser) Inner() Parser {
	return rp.inner
}

func (rp *RepeatedParser) Match(r *Result, errorPass bool) bool {
	if !r.Read(rp.inner, errorPass) {
		return false
	}

	for {
		c := r.Peek(rp.inner, errorPass)
		switch {
		case c.success && c.length > 0:
			r.Apply(c)
		case !c.success && (c.committed || c.invalid):
			return r.Error(c)
		default:
			c.Release()
			return true
		}
	}
}

func (rp *RepeatedParser) String() string {
	return group(rp.inner, true) + "+"
}

// StrictParser matches its inner combinator; failure commits enclosing alternation
// to the current alternative.
type StrictParser struct {
	base
	inner Parser
}

func (s *StrictParser) Inner() Parser {
	return s.inner
}

func (s *StrictParser) Match(r *Result, errorPass bool) bool {
	c := r.Peek(s.inner, errorPass)
	if c.success {
		r.Apply(c)
		return true
	}

	c.committed = true
	return r.Error(c)
}

func (s *StrictParser) String() string {
	return "$" + group(s.inner, true)
}

// NotParser succeeds if its inner combinator fails. It never consumes input.
type NotParser struct {
	base
	inner Parser
}

func (n *NotParser) Inner() Parser {
	return n.inner
}

func (n *NotParser) Match(r *Result, errorPass bool) bool {
	c := r.Peek(n.inner, errorPass)
	matched, invalid := c.success, c.invalid
	c.Release()

	switch {
	case invalid:
		return r.Fail(InvalidGrammarError, leftRecursionMessage)
	case matched:
		return r.Fail(ExpectedTokenError, "")
	}
	return true
}

func (n *NotParser) String() string {
	return "!" + group(n.inner, true)
}

func (n *NotParser) expected() string {
	if e, ok := n.inner.(expecter); ok {
		return "anything but " + e.expected()
	}
	return "anything but " + n.inner.String()
}
