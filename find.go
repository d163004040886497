package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phobologic/treepath/internal/config"
	"github.com/phobologic/treepath/internal/discover"
	"github.com/phobologic/treepath/internal/lang"
	"github.com/phobologic/treepath/internal/model"
	"github.com/phobologic/treepath/internal/query"
	"github.com/phobologic/treepath/internal/ranking"
	"github.com/phobologic/treepath/internal/report"
	"github.com/phobologic/treepath/internal/search"
)

type findFlags struct {
	deep, all   bool
	maxFiles    int
	maxFileSize int64
	concurrency int
	format      string
	named       bool
	languages   []string
	exclude     []string
	noColor     bool
	skipTests   bool
	fileFilter  string
	nameFilter  string
	sortMatches bool
	top         int
}

func (a *app) findCmd() *cobra.Command {
	var f findFlags
	cmd := &cobra.Command{
		Use:   "find EXPR [PATH...]",
		Short: "Find the nodes an expression selects in files or directories",
		Long: `Find evaluates a path expression such as ns/cls[@Obsolete]/method[#int]
against every C# file under the given paths (default: the current directory).

By default the expression is resolved from each file's top level and the first
match is reported. --all keeps every match at the last step; --deep tries the
expression from every depth of the tree.

Exits with status 1 when nothing matched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFind(cmd, f, args[0], args[1:])
		},
	}

	fl := cmd.Flags()
	fl.BoolVar(&f.deep, "deep", false, "match the expression starting at any depth")
	fl.BoolVar(&f.all, "all", false, "report every match at the last step")
	fl.IntVarP(&f.maxFiles, "max-files", "n", 0, "stop after scanning about this many files")
	fl.Int64Var(&f.maxFileSize, "max-file-size", 0, "skip files larger than this many bytes")
	fl.IntVarP(&f.concurrency, "concurrency", "j", 0, "number of files parsed in parallel")
	fl.StringVar(&f.format, "format", "", "output format: text, toon or json")
	fl.BoolVar(&f.named, "named", false, "print name-guarded paths")
	fl.StringSliceVarP(&f.languages, "languages", "l", nil, "languages to search (default from config)")
	fl.StringSliceVar(&f.exclude, "exclude", nil, "glob of paths to skip (repeatable)")
	fl.BoolVar(&f.noColor, "no-color", false, "disable colored output")
	fl.BoolVar(&f.skipTests, "skip-tests", false, "leave test files out")
	fl.StringVar(&f.fileFilter, "file", "", "only report files whose path contains this")
	fl.StringVar(&f.nameFilter, "name", "", "only report matches whose name contains this")
	fl.BoolVar(&f.sortMatches, "sort", false, "order files by match count")
	fl.IntVar(&f.top, "top", 0, "only report the first N files")
	cmd.MarkFlagsMutuallyExclusive("deep", "all")
	return cmd
}

// apply returns cfg with the flags that were given on the command line
// laid over it. Exclude globs are added to the configured ones.
func (f findFlags) apply(cfg config.Config, changed func(name string) bool) config.Config {
	if changed("languages") {
		cfg.Languages = f.languages
	}
	if changed("max-files") {
		cfg.MaxFiles = f.maxFiles
	}
	if changed("max-file-size") {
		cfg.MaxFileSize = f.maxFileSize
	}
	if changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}
	if changed("format") {
		cfg.Format = f.format
	}
	if changed("named") {
		cfg.NamedPaths = f.named
	}
	if changed("skip-tests") {
		cfg.SkipTests = f.skipTests
	}
	cfg.Exclude = append(slices.Clone(cfg.Exclude), f.exclude...)
	return cfg
}

func (a *app) runFind(cmd *cobra.Command, f findFlags, text string, paths []string) error {
	expr, err := query.Parse(text)
	if err != nil {
		return fmt.Errorf("%q: %w", text, err)
	}

	cfg := f.apply(a.cfg, cmd.Flags().Changed)
	if err := cfg.Validate(); err != nil {
		return err
	}

	mode := model.Root
	switch {
	case f.deep:
		mode = model.Deep
	case f.all:
		mode = model.All
	}

	if len(paths) == 0 {
		paths = []string{"."}
	}
	root, files, err := a.collect(cfg, paths)
	if err != nil {
		return err
	}
	a.logger.Debug("Discovered files", zap.Int("count", len(files)), zap.Strings("paths", paths))
	if len(files) == 0 {
		return fmt.Errorf("no parseable files found")
	}

	r, err := search.Run(cmd.Context(), root, files, expr, search.Options{
		Mode:        mode,
		Concurrency: cfg.Concurrency,
		MaxFileSize: cfg.MaxFileSize,
		Logger:      a.logger,
	})
	if err != nil {
		return err
	}

	if f.fileFilter != "" {
		r = ranking.FilterByFile(r, f.fileFilter)
	}
	if f.nameFilter != "" {
		r = ranking.FilterByName(r, f.nameFilter)
	}
	if f.sortMatches {
		r = ranking.SortByMatches(r)
	}
	r = ranking.SelectFiles(r, f.top)

	if err := report.Write(a.stdout, r, report.Options{
		Format:     cfg.Format,
		NamedPaths: cfg.NamedPaths,
		Color:      a.useColor(f.noColor),
	}); err != nil {
		return err
	}
	if r.MatchCount() == 0 {
		return errNoMatches
	}
	return nil
}

// collect turns the path arguments into discovered files. A single
// directory becomes the search root; otherwise files are named relative to
// the working directory.
func (a *app) collect(cfg config.Config, paths []string) (string, []discover.FileEntry, error) {
	opts := discover.Options{
		Languages: cfg.Languages,
		Exclude:   cfg.Exclude,
		MaxFiles:  cfg.MaxFiles,
		SkipTests: cfg.SkipTests,
	}

	if len(paths) == 1 {
		if info, err := os.Stat(paths[0]); err == nil && info.IsDir() {
			files, err := discover.Files(paths[0], opts)
			if err != nil {
				return "", nil, fmt.Errorf("discovering files: %w", err)
			}
			return paths[0], files, nil
		}
	}

	var files []discover.FileEntry
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return "", nil, fmt.Errorf("path: %w", err)
		}
		if !info.IsDir() {
			l, err := lang.ForFile(p)
			if err != nil {
				return "", nil, err
			}
			files = append(files, discover.FileEntry{Path: filepath.Clean(p), Language: l.Name})
			continue
		}
		found, err := discover.Files(p, opts)
		if err != nil {
			return "", nil, fmt.Errorf("discovering files: %w", err)
		}
		for _, fe := range found {
			fe.Path = filepath.Join(p, fe.Path)
			files = append(files, fe)
		}
	}
	return "", files, nil
}
