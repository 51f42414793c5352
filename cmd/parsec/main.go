/*
parsec is a console utility working with grammar descriptions.
Usage is

	parsec [-v] <command> [flags] <args>

Commands are

	check <grammar>...           compile grammar descriptions and report errors;
	parse <grammar> <file>       parse file with the root rule of the grammar;
	gen <grammar>                generate Go source or JSON description of the grammar;
	ebnf <grammar>               print EBNF form of the grammar, optionally verifying it;
	lsp                          serve grammar diagnostics over stdio.

Grammar descriptions are parsable by langdef.Parse().
*/
package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	if e := newRootCmd().Execute(); e != nil {
		fmt.Fprintln(os.Stderr, e.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "parsec",
		Short:         "Grammar description tools",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				gtrace.CoreTracer = gologadapter.New()
				gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "write debug trace to stderr")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newGenCmd())
	rootCmd.AddCommand(newEbnfCmd())
	rootCmd.AddCommand(newLSPCmd(&verbose))
	return rootCmd
}
