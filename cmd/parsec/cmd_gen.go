package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ava12/parsec/parsecgen"
)

func newGenCmd() *cobra.Command {
	var outFileName string
	var opts parsecgen.Options
	var generateJSON bool

	cmd := &cobra.Command{
		Use:   "gen <grammar>",
		Short: "Generate Go source or JSON description of the grammar",
		Long: "Generate Go source or JSON description of the grammar.\n" +
			"Default output file name is the name of grammar file with .go or .json suffix,\n" +
			"default package name is the directory name of output file.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, e := loadGrammar(args[0])
			if e != nil {
				return e
			}

			if outFileName == "" {
				ext := ".go"
				if generateJSON {
					ext = ".json"
				}
				outFileName = outputName(args[0], ext)
			}

			var content []byte
			if generateJSON {
				content, e = parsecgen.JSON(rules, opts.Root)
			} else {
				if opts.Package == "" {
					opts.Package, e = packageName(outFileName)
					if e != nil {
						return e
					}
				}
				content, e = parsecgen.Go(rules, opts)
			}
			if e != nil {
				return e
			}

			if e := os.WriteFile(outFileName, content, 0o666); e != nil {
				return fmt.Errorf("write output: %w", e)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFileName, "out", "o", "", "output file name")
	cmd.Flags().StringVarP(&opts.Package, "package", "p", "", "Go package name")
	cmd.Flags().StringVarP(&opts.Type, "type", "t", parsecgen.DefaultType, "generated Go type name")
	cmd.Flags().StringVarP(&opts.Root, "root", "r", "", "root rule name, default is the first top-level rule")
	cmd.Flags().BoolVarP(&generateJSON, "json", "j", false, "output JSON instead of Go")
	return cmd
}
