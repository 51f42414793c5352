package main

import (
	"github.com/spf13/cobra"

	"github.com/ava12/parsec/parsecgen"
)

func newEbnfCmd() *cobra.Command {
	var rootName string
	var verify bool

	cmd := &cobra.Command{
		Use:   "ebnf <grammar>",
		Short: "Print the grammar in EBNF notation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, e := loadGrammar(args[0])
			if e != nil {
				return e
			}

			if verify {
				if e := parsecgen.Verify(rules, rootName); e != nil {
					return e
				}
			}

			text, e := parsecgen.EBNF(rules, rootName)
			if e != nil {
				return e
			}
			_, e = cmd.OutOrStdout().Write(text)
			return e
		},
	}

	cmd.Flags().StringVarP(&rootName, "root", "r", "", "root rule name, default is the first top-level rule")
	cmd.Flags().BoolVar(&verify, "verify", false, "check that every rule is reachable from the root one")
	return cmd
}
