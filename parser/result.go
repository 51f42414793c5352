package parser

import (
	"github.com/ava12/parsec"
	"github.com/ava12/parsec/source"
)

// Result is an attempt of a combinator to match a span of the source text.
//
// Attempts are pooled. An attempt returned by Peek must be either applied (Apply, Skip),
// recorded as an error (Error), or released (Release). An applied attempt belongs to
// its parent and is released together with it.
type Result struct {
	ctx    *parseContext
	parser Parser
	parent *Result

	index, length               int
	trimmedIndex, trimmedLength int
	errorIndex                  int

	success   bool
	committed bool
	invalid   bool
	errorType ErrorType
	errorText string

	inner        []*Result
	linked       bool
	released     bool
	inWhitespace bool

	errors []*Result
}

func (r *Result) init(ctx *parseContext, p Parser, parent *Result, index int) {
	inner := r.inner[:0]
	*r = Result{
		ctx:          ctx,
		parser:       p,
		parent:       parent,
		index:        index,
		trimmedIndex: index,
		errorIndex:   -1,
		success:      true,
		inner:        inner,
	}
}

func (r *Result) readPos() int {
	return r.index + r.length
}

func (r *Result) checkAlive() {
	if r.released {
		panic("parser: using released result")
	}
}

func (r *Result) checkPending(c *Result) {
	r.checkAlive()
	if c.parent != r || c.linked || c.released {
		panic("parser: attempt is not a pending child of this result")
	}
}

// Peek creates a child attempt at the read position and runs p on it.
// The attempt is not added to r.
func (r *Result) Peek(p Parser, errorPass bool) *Result {
	return r.peek(p, errorPass, r.inWhitespace)
}

func (r *Result) peek(p Parser, errorPass, inWhitespace bool) *Result {
	r.checkAlive()
	c := r.ctx.pool.get()
	c.init(r.ctx, p, r, r.readPos())
	c.inWhitespace = inWhitespace
	run(p, c, errorPass)
	return c
}

// Read peeks p and either applies the attempt or records it as an error.
func (r *Result) Read(p Parser, errorPass bool) bool {
	c := r.Peek(p, errorPass)
	if c.success {
		r.Apply(c)
		return true
	}

	r.Error(c)
	return false
}

// Apply adds successful child attempt to r.
func (r *Result) Apply(c *Result) {
	r.checkPending(c)
	if c.index != r.readPos() {
		panic("parser: applied attempt does not start at the read position")
	}

	r.addInner(c)
}

// Skip consumes the span of the child attempt without adding it to the result tree.
func (r *Result) Skip(c *Result) {
	r.checkPending(c)
	if c.index != r.readPos() {
		panic("parser: skipped attempt does not start at the read position")
	}

	r.length = c.readPos() - r.index
	if r.trimmedLength == 0 {
		r.trimmedIndex = r.readPos()
	}
	c.release()
}

// Error marks r as failed because of the child attempt c.
// The child is kept only in the diagnostic pass.
func (r *Result) Error(c *Result) bool {
	r.checkPending(c)
	r.success = false
	if r.errorType == NoError {
		r.errorType = SubParserError
	}
	r.committed = r.committed || c.committed
	r.invalid = r.invalid || c.invalid

	if r.ctx.errorPass {
		r.addInner(c)
	} else {
		r.extend(c)
		c.release()
	}
	return false
}

// Fail marks r as a failed leaf attempt.
func (r *Result) Fail(t ErrorType, message string) bool {
	r.success = false
	r.errorType = t
	r.errorText = message
	r.errorIndex = r.readPos()
	if t == InvalidGrammarError {
		r.invalid = true
	}
	return false
}

// consume advances the read position over n bytes of matched text.
func (r *Result) consume(n int) {
	start := r.readPos()
	if r.trimmedLength == 0 {
		r.trimmedIndex = start
	}
	r.length += n
	if n > 0 {
		r.trimmedLength = start + n - r.trimmedIndex
	}
}

func (r *Result) extend(c *Result) {
	if l := c.readPos() - r.index; l > r.length {
		r.length = l
	}
	if c.trimmedLength > 0 {
		if r.trimmedLength == 0 {
			r.trimmedIndex = c.trimmedIndex
		}
		if l := c.trimmedIndex + c.trimmedLength - r.trimmedIndex; l > r.trimmedLength {
			r.trimmedLength = l
		}
	}
}

func (r *Result) addInner(c *Result) {
	r.extend(c)
	if !c.success {
		r.success = false
	}

	if r.shouldFlatten(c) {
		inner := c.inner
		c.inner = nil
		for _, g := range inner {
			g.linked = false
			g.parent = r
			r.addInner(g)
		}
		c.release()
		return
	}

	if c.success && c.parser.Flags()&OmitFromResult != 0 {
		c.release()
		return
	}

	c.parent = r
	c.linked = true
	r.inner = append(r.inner, c)
}

func (r *Result) shouldFlatten(c *Result) bool {
	if !c.success && c.errorType != SubParserError {
		return false
	}

	flags := c.parser.Flags()
	if flags&FlattenHierarchy != 0 {
		return true
	}

	if sameParser(c.parser, r.parser) {
		return true
	}

	return flags&CollapseIfSingle != 0 && c.isTrivial()
}

func (r *Result) isTrivial() bool {
	switch len(r.inner) {
	case 0:
		return r.length == 0
	case 1:
		_, named := r.inner[0].parser.(*NamedParser)
		return named
	}
	return false
}

func (r *Result) isLeftRecursive() bool {
	for a := r.parent; a != nil; a = a.parent {
		if a.index == r.index && a.length == r.length && sameParser(a.parser, r.parser) {
			return true
		}
	}
	return false
}

// Release returns the attempt and all its children to the pool.
// Releasing an attempt twice or releasing an attempt owned by a parent panics.
func (r *Result) Release() {
	if r.released {
		panic("parser: result released twice")
	}
	if r.linked {
		panic("parser: releasing a result still owned by its parent")
	}

	r.release()
}

func (r *Result) release() {
	for _, c := range r.inner {
		c.linked = false
		c.release()
	}
	for i := range r.inner {
		r.inner[i] = nil
	}
	r.inner = r.inner[:0]
	r.errors = nil
	r.parent = nil
	r.released = true
	r.ctx.pool.put(r)
}

func (r *Result) Success() bool {
	return r.success
}

// Complete reports whether r is a successful match of the whole source text.
func (r *Result) Complete() bool {
	return r.success && r.readPos() == len(r.ctx.text)
}

func (r *Result) Index() int {
	return r.index
}

func (r *Result) Length() int {
	return r.length
}

// TrimmedIndex returns start of the matched text excluding skipped whitespace.
func (r *Result) TrimmedIndex() int {
	return r.trimmedIndex
}

// TrimmedLength returns length of the matched text excluding skipped whitespace.
func (r *Result) TrimmedLength() int {
	return r.trimmedLength
}

// Value returns matched text excluding leading and trailing skipped whitespace.
func (r *Result) Value() string {
	return r.ctx.text[r.trimmedIndex : r.trimmedIndex+r.trimmedLength]
}

func (r *Result) Parser() Parser {
	return r.parser
}

// Name returns rule name for named rule attempts or empty string.
func (r *Result) Name() string {
	if n, ok := r.parser.(*NamedParser); ok {
		return n.Name()
	}
	return ""
}

func (r *Result) Source() *source.Source {
	return r.ctx.src
}

// Parent returns the attempt that owns r or nil.
func (r *Result) Parent() *Result {
	return r.parent
}

// Pos returns source position of the matched text.
func (r *Result) Pos() source.Pos {
	return r.ctx.src.At(r.trimmedIndex)
}

func (r *Result) Len() int {
	return len(r.inner)
}

func (r *Result) At(i int) *Result {
	return r.inner[i]
}

// Children returns a copy of child attempt list.
func (r *Result) Children() []*Result {
	res := make([]*Result, len(r.inner))
	copy(res, r.inner)
	return res
}

func (r *Result) ErrorType() ErrorType {
	return r.errorType
}

// ErrorIndex returns position where a leaf attempt failed or -1.
func (r *Result) ErrorIndex() int {
	return r.errorIndex
}

// Expected describes what a leaf attempt expected to match.
func (r *Result) Expected() string {
	if n, ok := r.parser.(*NamedParser); ok && len(r.inner) == 0 {
		return n.Name()
	}
	if r.errorText != "" {
		return r.errorText
	}
	if e, ok := r.parser.(expecter); ok {
		return e.expected()
	}
	return r.parser.String()
}

// Errors returns leaf error attempts that failed at the furthest position.
func (r *Result) Errors() []*Result {
	if r.errors == nil && r.errorType != NoError {
		r.errors = r.collectErrors(nil)
	}
	return r.errors
}

func (r *Result) collectErrors(dst []*Result) []*Result {
	if r.errorType == NoError {
		return dst
	}

	if r.errorType == SubParserError && len(r.inner) > 0 {
		for _, c := range r.inner {
			dst = c.collectErrors(dst)
		}
		return dst
	}

	index := r.errorIndex
	if index < 0 {
		index = r.readPos()
	}
	if len(dst) > 0 {
		top := dst[0].MaxErrorIndex()
		if top > index {
			return dst
		}
		if top < index {
			dst = dst[:0]
		}
	}
	return append(dst, r)
}

// MaxErrorIndex returns the furthest position where a leaf attempt failed or -1.
func (r *Result) MaxErrorIndex() int {
	switch {
	case r.errorType == NoError:
		return -1
	case r.errorType == SubParserError && len(r.inner) > 0:
		res := -1
		for _, c := range r.inner {
			if i := c.MaxErrorIndex(); i > res {
				res = i
			}
		}
		return res
	case r.errorIndex < 0:
		return r.readPos()
	}
	return r.errorIndex
}

// ErrorMessage returns human-readable description of the failure or empty string.
func (r *Result) ErrorMessage() string {
	return errorMessage(r.Errors())
}

// ErrorPos returns source position of the first furthest failure.
func (r *Result) ErrorPos() source.Pos {
	errs := r.Errors()
	if len(errs) == 0 {
		return r.ctx.src.At(r.readPos())
	}
	return r.ctx.src.At(errs[0].MaxErrorIndex())
}

// Err returns nil for successful attempt or *parsec.Error describing the failure.
func (r *Result) Err() error {
	if r.success {
		return nil
	}

	errs := r.Errors()
	if len(errs) == 0 {
		return parsec.FormatErrorPos(r.ctx.src.At(r.readPos()), UnexpectedInputError, "parse failed")
	}
	return parsec.FormatErrorPos(r.ErrorPos(), r.errorCode(errs[0]), "%s", r.ErrorMessage())
}

// String returns matched value for successful attempt or error message.
func (r *Result) String() string {
	if r.success {
		return r.Value()
	}
	return r.ErrorMessage()
}
