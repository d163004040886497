// Package report renders search results and annotated forests.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/phobologic/treepath/internal/config"
	"github.com/phobologic/treepath/internal/model"
	"github.com/phobologic/treepath/internal/toon"
)

// ErrUnknownFormat is returned for a format other than text, toon or json.
var ErrUnknownFormat = errors.New("unknown output format")

// Options controls rendering.
type Options struct {
	// Format is one of the config.Format* values; empty means text.
	Format string
	// NamedPaths prints name-guarded paths instead of canonical ones.
	NamedPaths bool
	// Color enables ANSI styling in text output.
	Color bool
	// Trivia includes comments and directives in tree dumps.
	Trivia bool
}

type palette struct {
	file, line, kind, name, path, dim *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		file: color.New(color.FgCyan, color.Bold),
		line: color.New(color.FgHiBlue, color.Bold),
		kind: color.New(color.FgYellow, color.Bold),
		name: color.New(color.FgGreen, color.Bold),
		path: color.New(color.FgWhite),
		dim:  color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{p.file, p.line, p.kind, p.name, p.path, p.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Write renders r in the format opts selects.
func Write(w io.Writer, r *model.Report, opts Options) error {
	switch opts.Format {
	case "", config.FormatText:
		return Text(w, r, opts)
	case config.FormatTOON:
		_, err := fmt.Fprintln(w, toon.Encode(r))
		return err
	case config.FormatJSON:
		return JSON(w, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}

// JSON writes r as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Text writes one block per file: a header line, then one line per match
// with its line number, kind, name, path and the first line of its source.
func Text(w io.Writer, r *model.Report, opts Options) error {
	p := newPalette(opts.Color)
	var b strings.Builder

	for i := range r.Files {
		fr := &r.Files[i]
		fmt.Fprintf(&b, "%s\n", p.file.Sprint(fr.Path))

		width := 1
		for _, m := range fr.Matches {
			width = max(width, len(fmt.Sprint(m.StartLine)))
		}
		for _, m := range fr.Matches {
			path := m.Path
			if opts.NamedPaths {
				path = m.NamedPath
			}
			fmt.Fprintf(&b, "  %s  %s", p.line.Sprintf("%*d", width, m.StartLine), p.kind.Sprint(m.Keyword))
			if m.Name != "" {
				fmt.Fprintf(&b, " %s", p.name.Sprint(m.Name))
			}
			fmt.Fprintf(&b, "  %s", p.path.Sprint(path))
			if m.Snippet != "" {
				fmt.Fprintf(&b, "  %s", p.dim.Sprint(m.Snippet))
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "%d %s in %d %s (%d scanned, %d skipped)\n",
		r.MatchCount(), plural(r.MatchCount(), "match", "matches"),
		len(r.Files), plural(len(r.Files), "file", "files"),
		r.Scanned, r.Skipped)

	_, err := io.WriteString(w, b.String())
	return err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
