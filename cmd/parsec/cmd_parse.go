package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ava12/parsec/langdef"
	"github.com/ava12/parsec/parser"
	"github.com/ava12/parsec/source"
	"github.com/ava12/parsec/tree"
)

type parseOptions struct {
	rootName    string
	xmlTree     bool
	partial     bool
	expectError bool
	multiSample bool
	separator   string
	lineWidth   int
}

func newParseCmd() *cobra.Command {
	var opts parseOptions

	cmd := &cobra.Command{
		Use:   "parse <grammar> <file>",
		Short: "Parse a file with the grammar and print the result tree",
		Long: "Parse a file with the grammar and print the result tree.\n" +
			"A file may contain multiple samples: the first line is the separator,\n" +
			"every line starting with the same non-space prefix starts the next sample.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, e := loadGrammar(args[0])
			if e != nil {
				return e
			}

			root := langdef.Root(rules)
			if opts.rootName != "" {
				root = rules.Rule(opts.rootName)
				if root == nil {
					return fmt.Errorf("unknown root rule %s", opts.rootName)
				}
			}

			content, e := loadSource(args[1])
			if e != nil {
				return e
			}

			failed := 0
			srcs := makeSources(args[1], content, opts.multiSample, []byte(opts.separator))
			for _, src := range srcs {
				if len(srcs) > 1 {
					fmt.Fprintln(cmd.OutOrStdout(), src.Name())
				}
				if !parseSample(cmd.OutOrStdout(), root, src, &opts) {
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d samples failed", failed, len(srcs))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.rootName, "root", "r", "", "root rule name, default is the first top-level rule")
	flags.BoolVarP(&opts.xmlTree, "xml", "x", false, "print result tree as XML")
	flags.BoolVar(&opts.partial, "partial", false, "accept match of input prefix")
	flags.BoolVarP(&opts.expectError, "expect-error", "e", false, "source file contains syntax errors")
	flags.BoolVarP(&opts.multiSample, "multi", "m", false, "source file contains multiple samples, first line is the separator")
	flags.StringVarP(&opts.separator, "separator", "s", "", "treat source file as multiple samples if starts with this string")
	flags.IntVarP(&opts.lineWidth, "width", "w", maxLineLength, "maximum output line width, runes")
	return cmd
}

// parseSample parses a single sample and prints either the tree or the error.
// Returns false if the outcome does not match expectations.
func parseSample(w io.Writer, root parser.Parser, src *source.Source, opts *parseOptions) bool {
	r := parser.ParseSource(root, src)
	defer r.Release()

	var e error
	switch {
	case !r.Success():
		e = r.Err()
	case !opts.partial && !r.Complete():
		pos := src.At(r.Index() + r.Length())
		e = fmt.Errorf("unparsed input in %s at line %d col %d", src.Name(), pos.Line(), pos.Col())
	}

	if e != nil {
		fmt.Fprintln(w, "  *** error:", e.Error())
		return opts.expectError
	}

	if opts.expectError {
		fmt.Fprintln(w, "  *** expecting error, got success")
		return false
	}

	if opts.xmlTree {
		if e := tree.WriteXML(w, r); e != nil {
			fmt.Fprintln(w, "  *** error:", e.Error())
			return false
		}
		fmt.Fprintln(w)
		return true
	}

	p := newPrinter(w, indentSize, opts.lineWidth).Indent()
	printNode(r, p)
	p.Newline()
	return true
}
