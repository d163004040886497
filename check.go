package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/phobologic/treepath/internal/kind"
	"github.com/phobologic/treepath/internal/query"
)

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check EXPR",
		Short: "Validate an expression and show how it compiles",
		Long: `Check parses EXPR without searching and prints one line per step: its
position, kind, discriminator and value. Keywords outside the vocabulary are
flagged because they compile to steps that never match.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := query.Parse(args[0])
			if err != nil {
				return fmt.Errorf("%q: %w", args[0], err)
			}
			if len(expr) == 0 {
				fmt.Fprintln(a.stdout, "empty expression: matches nothing in a file")
				return nil
			}

			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			for i, s := range expr {
				kw, _ := kind.Lookup(s.Kind())
				value := ""
				switch s.Discriminator() {
				case query.ByIndexDiscriminator:
					value = fmt.Sprint(s.Index())
				case query.ByAttributeDiscriminator, query.ByNameDiscriminator, query.ByReturnTypeDiscriminator:
					value = s.Text()
				}
				note := ""
				if s.Kind() == kind.Unknown {
					note = "unknown keyword, never matches"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i, kw, s.Discriminator(), value, note)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "canonical: %s\n", expr)
			return nil
		},
	}
}
