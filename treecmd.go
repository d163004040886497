package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phobologic/treepath/internal/lang"
	"github.com/phobologic/treepath/internal/parse"
	"github.com/phobologic/treepath/internal/report"
)

func (a *app) treeCmd() *cobra.Command {
	var (
		trivia  bool
		format  string
		named   bool
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "tree FILE",
		Short: "Print the annotated syntax tree of a file",
		Long: `Tree parses FILE and prints every node the path language can address,
one per line, with its kind keyword, name, line span and canonical path.
Use the printed paths as a starting point for find expressions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			l, err := lang.ForFile(path)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Format
			}
			if !cmd.Flags().Changed("named") {
				named = a.cfg.NamedPaths
			}

			f, err := parse.File(cmd.Context(), l, nil, path, a.cfg.MaxFileSize)
			if err != nil {
				return err
			}
			a.logger.Debug("Parsed file", zap.String("file", path), zap.Int("nodes", f.Count()))

			return report.Tree(a.stdout, path, f, report.Options{
				Format:     format,
				NamedPaths: named,
				Color:      a.useColor(noColor),
				Trivia:     trivia,
			})
		},
	}
	fl := cmd.Flags()
	fl.BoolVar(&trivia, "trivia", false, "include comments and directives")
	fl.StringVar(&format, "format", "", "output format: text, toon or json")
	fl.BoolVar(&named, "named", false, "print name-guarded paths")
	fl.BoolVar(&noColor, "no-color", false, "disable colored output")
	return cmd
}
