package main

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/ava12/parsec/source"
)

const maxFileSize = 1 << 20

type lineEntry struct {
	firstPos, lastPos int
}

func loadSource(name string) ([]byte, error) {
	content, e := os.ReadFile(name)
	if e != nil {
		return nil, fmt.Errorf("read input: %w", e)
	}
	if len(content) > maxFileSize {
		return nil, fmt.Errorf("read input: %s is longer than %d bytes", name, maxFileSize)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("read input: %s is not a valid UTF-8 encoded text", name)
	}
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")), nil
}

// makeSources splits content into samples if it starts with separator or multiSample is set.
// The first line of multi-sample content is a separator line: every line starting with
// the same non-space prefix starts the next sample. The line feed preceding a separator
// line does not belong to the sample.
func makeSources(name string, content []byte, multiSample bool, separator []byte) []*source.Source {
	if len(separator) != 0 && bytes.HasPrefix(content, separator) {
		multiSample = true
	}

	if !multiSample {
		return []*source.Source{source.New(name, content)}
	}

	lines := contentLines(content)
	if len(lines) == 0 {
		return nil
	}

	var result []*source.Source

	separator = linePrefix(content[lines[0].firstPos:lines[0].lastPos])
	sampleIndex := 1
	lineIndex := 1
	for lineIndex < len(lines) {
		sample, lineCnt := sourceSample(content, lines[lineIndex:], separator)
		sourceName := fmt.Sprintf("### %s, sample #%d, (lines %d-%d)",
			name, sampleIndex, lineIndex+1, lineIndex+lineCnt)
		result = append(result, source.New(sourceName, sample))
		sampleIndex++
		lineIndex += lineCnt + 1
	}

	return result
}

func contentLines(content []byte) []lineEntry {
	var result []lineEntry
	pos := 0
	for pos < len(content) {
		newPos := bytes.IndexByte(content[pos:], '\n')
		if newPos < 0 {
			result = append(result, lineEntry{pos, len(content)})
			break
		}

		result = append(result, lineEntry{pos, pos + newPos})
		pos += newPos + 1
	}
	return result
}

func linePrefix(line []byte) []byte {
	for i, b := range line {
		if b <= ' ' {
			return line[:i]
		}
	}

	return line
}

func sourceSample(content []byte, lines []lineEntry, separator []byte) ([]byte, int) {
	if len(lines) == 0 {
		return nil, 0
	}

	for i, entry := range lines {
		if bytes.HasPrefix(content[entry.firstPos:entry.lastPos], separator) {
			return bytes.TrimSuffix(content[lines[0].firstPos:entry.firstPos], []byte("\n")), i
		}
	}

	return content[lines[0].firstPos:], len(lines)
}
