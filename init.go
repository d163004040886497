package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phobologic/treepath/internal/config"
)

const (
	sentinelStart = "<!-- treepath:start -->"
	sentinelEnd   = "<!-- treepath:end -->"
)

// errConfigExists is returned by init when the target config is already
// present and --force was not given.
var errConfigExists = errors.New("config already exists")

func (a *app) initCmd() *cobra.Command {
	var (
		dryRun bool
		force  bool
		guide  string
	)
	cmd := &cobra.Command{
		Use:   "init [DIR]",
		Short: "Write a default " + config.DefaultPath + " and optional usage notes",
		Long: `Init writes the default configuration to DIR/` + config.DefaultPath + ` (DIR defaults to
the current directory). With --guide it also writes a treepath usage section
to a markdown file. The section is wrapped in sentinel comments so later runs
update it in place without touching surrounding content.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			data, err := config.Default().Marshal()
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Fprint(a.stdout, string(data))
				if guide != "" {
					existing, _ := os.ReadFile(guide)
					fmt.Fprint(a.stdout, applySection(string(existing), generateSection()))
				}
				return nil
			}

			path := filepath.Join(dir, config.DefaultPath)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%w: %s (use --force to overwrite)", errConfigExists, path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err := config.Default().Write(path); err != nil {
				return err
			}
			fmt.Fprintf(a.stderr, "wrote %s\n", path)

			if guide == "" {
				return nil
			}
			existing, err := os.ReadFile(guide)
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("reading %s: %w", guide, err)
			}
			updated := applySection(string(existing), generateSection())
			if err := os.WriteFile(guide, []byte(updated), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", guide, err)
			}
			fmt.Fprintf(a.stderr, "wrote treepath section to %s\n", guide)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.BoolVar(&dryRun, "dry-run", false, "print what would be written without modifying files")
	fl.BoolVar(&force, "force", false, "overwrite an existing config")
	fl.StringVar(&guide, "guide", "", "markdown file to receive a usage section (e.g. CLAUDE.md)")
	return cmd
}

// generateSection returns the sentinel-wrapped usage block.
func generateSection() string {
	body := `## treepath: C# syntax queries

Use ` + "`treepath find`" + ` instead of text search when the question is structural
("which methods return Task", "which classes carry [Obsolete]").

` + "```" + `bash
treepath keywords                              # kind keywords and aliases
treepath tree src/Widget.cs                    # every addressable node with its path
treepath find 'ns/cls[@Obsolete]' src          # first match per file
treepath find --all 'ns/cls/method[#Task]' .   # every match at the last step
treepath find --deep 'if/else' .               # start at any depth
treepath check 'cls[Widget]/method[2]'         # validate without searching
` + "```" + `

Steps are ` + "`kind`" + `, ` + "`kind[N]`" + ` (index among same-kind siblings),
` + "`kind[Name]`" + `, ` + "`kind[@Attribute]`" + ` and ` + "`kind[#ReturnType]`" + `; ` + "`*`" + ` matches any
kind. Paths printed by ` + "`tree`" + ` and ` + "`find --named`" + ` can be pasted back
as expressions.

Exit status is 1 when nothing matched.`

	return sentinelStart + "\n" + body + "\n" + sentinelEnd
}

// applySection inserts section into content, replacing an existing sentinel
// block if present or appending if not.
func applySection(content, section string) string {
	start := strings.Index(content, sentinelStart)
	end := strings.Index(content, sentinelEnd)

	if start >= 0 && end > start {
		return content[:start] + section + content[end+len(sentinelEnd):]
	}

	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if content == "" {
		return section + "\n"
	}
	return content + "\n" + section + "\n"
}
