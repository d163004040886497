package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/phobologic/treepath/internal/kind"
)

func (a *app) keywordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keywords",
		Short: "List the kind keywords accepted in expressions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			for _, k := range kind.All() {
				if k == kind.Unknown {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", kind.Keyword(k), k, strings.Join(kind.Aliases(k), ", "))
			}
			return tw.Flush()
		},
	}
}
