package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ava12/parsec/langdef"
	"github.com/ava12/parsec/parser"
)

func loadGrammar(fileName string) (*parser.Rules, error) {
	src, e := os.ReadFile(fileName)
	if e != nil {
		return nil, fmt.Errorf("read grammar: %w", e)
	}
	return langdef.ParseBytes(fileName, src)
}

// outputName returns the name of input file with extension replaced by ext.
func outputName(inFileName, ext string) string {
	return inFileName[:len(inFileName)-len(filepath.Ext(inFileName))] + ext
}

// packageName returns the name of the directory containing the file.
func packageName(fileName string) (string, error) {
	path, e := filepath.Abs(fileName)
	if e != nil {
		return "", e
	}
	return filepath.Base(filepath.Dir(path)), nil
}
