package source

import (
	"testing"
	"unicode/utf8"

	"github.com/ava12/parsec/internal/test"
)

type lineColSample struct {
	text      string
	pos       int
	line, col int
}

func TestLineCol(t *testing.T) {
	samples := []lineColSample{
		{"", 0, 1, 1},
		{"", 100, 1, 1},
		{"", -5, 1, 1},
		{"\n", 1, 2, 1},
		{"\n", 100, 2, 1},
		{"a\nbc\n\ndefgh\n", 3, 2, 2},
		{"a\nbc\n\ndefgh\n", 5, 3, 1},
		{"a\nbc\n\ndefgh\n", 6, 4, 1},
		{"a\nbc\n\ndefgh\n", 10, 4, 5},
		{"a\nbc\n\ndefgh\n", 12, 5, 1},
		{"ж\nжжx", 2, 1, 2},
		{"ж\nжжx", 3, 2, 1},
		{"ж\nжжx", 7, 2, 3},
		{"ж\nжжx", 8, 2, 4},
	}

	for i, s := range samples {
		line, col := FromString("", s.text).LineCol(s.pos)
		test.Assert(t, line == s.line && col == s.col,
			"sample #%d (%q at %d): expected %d:%d, got %d:%d", i, s.text, s.pos, s.line, s.col, line, col)
	}
}

func TestPos(t *testing.T) {
	samples := []lineColSample{
		{"", 0, 0, 1},
		{"", 0, 1, 0},
		{"", 0, 2, 1},
		{"\n", 1, 1, 2},
		{"\n", 1, 3, 1},
		{"one\ntwo\n", 4, 2, 1},
		{"one\ntwo\n", 6, 2, 3},
		{"one\ntwo\n", 8, 2, 20},
		{"one\ntwo\n", 8, 3, 1},
		{"ж\nжжx", 2, 1, 2},
		{"ж\nжжx", 5, 2, 2},
		{"ж\nжжx", 7, 2, 3},
		{"ж\nжжx", 8, 2, 9},
	}

	for i, s := range samples {
		pos := New("", []byte(s.text)).Pos(s.line, s.col)
		test.Assert(t, pos == s.pos, "sample #%d (%q at %d:%d): expected %d, got %d", i, s.text, s.line, s.col, s.pos, pos)
	}
}

func TestPosRoundTrip(t *testing.T) {
	s := FromString("", "жи\nши\n\tпиши ши\n")
	for pos := 0; pos <= s.Len(); pos++ {
		if pos < s.Len() && !utf8.RuneStart(s.Text()[pos]) {
			continue
		}
		line, col := s.LineCol(pos)
		test.ExpectInt(t, pos, s.Pos(line, col))
	}
}

func TestLine(t *testing.T) {
	s := FromString("lines", "first\r\nsecond\n\nlast")
	for i, expected := range []string{"", "first", "second", "", "last", ""} {
		test.ExpectString(t, expected, s.Line(i))
	}
}

func TestAt(t *testing.T) {
	s := FromString("at", "ab\ncd")
	p := s.At(4)
	test.ExpectString(t, "at", p.SourceName())
	test.ExpectInt(t, 4, p.Pos())
	test.ExpectInt(t, 2, p.Line())
	test.ExpectInt(t, 2, p.Col())
	test.Assert(t, p.Source() == s, "wrong source")
	test.ExpectString(t, "", Pos{}.SourceName())
}
