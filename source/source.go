// Package source defines named source text shared by parse results, with line/column lookup.
package source

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Source is an immutable named text.
// Line starts are computed once, so a Source may be shared between goroutines.
type Source struct {
	name       string
	text       string
	lineStarts []int
}

// New creates a source from byte content.
func New(name string, content []byte) *Source {
	return FromString(name, string(content))
}

// FromString creates a source from text.
func FromString(name, text string) *Source {
	s := &Source{name: name, text: text}
	lineCnt := strings.Count(text, "\n") + 1
	s.lineStarts = make([]int, lineCnt)
	j := 1
	for i := 0; i < len(text) && j < lineCnt; i++ {
		if text[i] == '\n' {
			s.lineStarts[j] = i + 1
			j++
		}
	}

	return s
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Text() string {
	return s.text
}

func (s *Source) Len() int {
	return len(s.text)
}

// LineCol returns 1-based line and column (in runes) for a byte offset.
// Offsets out of range are clamped.
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.text) {
		pos = len(s.text)
	}

	lineIndex := s.findLineIndex(pos)
	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCountInString(s.text[lineStart:pos]) + 1
}

// Pos returns byte offset for 1-based line and column (in runes), the inverse of LineCol.
// Columns past the end of line continue into the following text.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	if line > len(s.lineStarts) {
		return len(s.text)
	}

	res := s.lineStarts[line-1]
	for ; col > 1 && res < len(s.text); col-- {
		_, size := utf8.DecodeRuneInString(s.text[res:])
		res += size
	}
	return res
}

// Line returns text of 1-based line without line terminator.
func (s *Source) Line(line int) string {
	if line <= 0 || line > len(s.lineStarts) {
		return ""
	}

	start := s.lineStarts[line-1]
	end := len(s.text)
	if line < len(s.lineStarts) {
		end = s.lineStarts[line] - 1
	}
	return strings.TrimSuffix(s.text[start:end], "\r")
}

// At returns source position for a byte offset.
func (s *Source) At(pos int) Pos {
	line, col := s.LineCol(pos)
	return Pos{s, pos, line, col}
}

func (s *Source) findLineIndex(pos int) int {
	return sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > pos
	}) - 1
}

// Pos is a position in source, it implements parsec.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
