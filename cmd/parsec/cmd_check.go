package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <grammar>...",
		Short: "Compile grammar descriptions and report errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, name := range args {
				rules, e := loadGrammar(name)
				if e != nil {
					fmt.Fprintln(cmd.OutOrStdout(), e.Error())
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules\n", name, rules.Len())
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d grammars failed", failed, len(args))
			}
			return nil
		},
	}
}
