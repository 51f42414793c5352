package main

import (
	"github.com/spf13/cobra"

	"github.com/ava12/parsec/internal/lsp"
)

func newLSPCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server for grammar files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbosity := 0
			if *verbose {
				verbosity = 2
			}
			return lsp.NewServer(version, verbosity).RunStdio()
		},
	}
}
