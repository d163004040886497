package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/phobologic/treepath/internal/config"
	"github.com/phobologic/treepath/internal/model"
	"github.com/phobologic/treepath/internal/search"
	"github.com/phobologic/treepath/internal/toon"
	"github.com/phobologic/treepath/internal/tree"
)

// Nodes lists every node of f in pre-order as matches of file.
func Nodes(file string, f *tree.Forest) []model.Match {
	var out []model.Match
	f.Walk(func(n *tree.Node) bool {
		out = append(out, search.Describe(file, n))
		return true
	})
	return out
}

// Tree writes the annotated forest of file in the format opts selects.
// The text form is an indented outline.
func Tree(w io.Writer, file string, f *tree.Forest, opts Options) error {
	switch opts.Format {
	case "", config.FormatText:
		return outline(w, f, opts)
	case config.FormatTOON:
		_, err := fmt.Fprintln(w, toon.EncodeNodes(file, Nodes(file, f)))
		return err
	case config.FormatJSON:
		return JSON(w, Nodes(file, f))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}

func outline(w io.Writer, f *tree.Forest, opts Options) error {
	p := newPalette(opts.Color)
	var b strings.Builder

	var visit func(n *tree.Node, depth int)
	visit = func(n *tree.Node, depth int) {
		indent := strings.Repeat("  ", depth)
		if opts.Trivia {
			for _, t := range n.LeadingTrivia() {
				fmt.Fprintf(&b, "%s%s\n", indent, p.dim.Sprint(t.String()))
			}
		}

		b.WriteString(indent)
		b.WriteString(p.kind.Sprint(n.Keyword()))
		if n.Name() != "" {
			fmt.Fprintf(&b, " %s", p.name.Sprint(n.Name()))
		}
		if rt := n.ReturnTypeName(); rt != "" {
			fmt.Fprintf(&b, " : %s", rt)
		}
		if op, _ := n.Operator(); op != "" {
			fmt.Fprintf(&b, " (%s)", op)
		}
		if attrs := n.AttributesString(); attrs != "" {
			fmt.Fprintf(&b, " [%s]", attrs)
		}
		start, end := n.Lines()
		fmt.Fprintf(&b, "  %s", p.line.Sprintf("%d-%d", start, end))
		path := n.Path()
		if opts.NamedPaths {
			path = n.NamedPath()
		}
		fmt.Fprintf(&b, "  %s\n", p.path.Sprint(path))

		for _, c := range n.Children() {
			visit(c, depth+1)
		}
		if opts.Trivia {
			for _, t := range n.TrailingTrivia() {
				fmt.Fprintf(&b, "%s%s\n", indent, p.dim.Sprint(t.String()))
			}
		}
	}
	for _, n := range f.Children() {
		visit(n, 0)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
