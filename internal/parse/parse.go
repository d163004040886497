// Package parse builds annotated forests from source files using tree-sitter.
package parse

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"go.opentelemetry.io/otel/codes"

	"github.com/phobologic/treepath/internal/kind"
	"github.com/phobologic/treepath/internal/lang"
	"github.com/phobologic/treepath/internal/tree"
)

// DefaultMaxFileSize is the size above which File refuses to read a file.
const DefaultMaxFileSize = 1_000_000

var (
	// ErrFileTooLarge is returned by File for files above the size limit.
	ErrFileTooLarge = errors.New("file too large")
	// ErrInvalidContent is returned for source that is not valid UTF-8.
	ErrInvalidContent = errors.New("invalid content")
	// ErrParseFailed is returned when tree-sitter produces no usable tree.
	ErrParseFailed = errors.New("parse failed")
)

// File reads path and builds its forest. Files larger than maxSize bytes
// are rejected with ErrFileTooLarge; maxSize <= 0 disables the check.
func File(ctx context.Context, l *lang.Language, parser *sitter.Parser, path string, maxSize int64) (*tree.Forest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, path, info.Size())
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Forest(ctx, l, parser, source, path)
}

// Forest parses source and converts the children of the grammar's root
// into an annotated forest. path is used for tracing only.
// The parser must be created for l; nil creates a fresh one.
func Forest(ctx context.Context, l *lang.Language, parser *sitter.Parser, source []byte, path string) (f *tree.Forest, err error) {
	start := time.Now()
	ctx, span := startParseSpan(ctx, l.Name, path, len(source))
	defer func() {
		nodes := 0
		if f != nil {
			nodes = f.Count()
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		recordParseMetrics(ctx, l.Name, time.Since(start), nodes, err == nil)
		span.End()
	}()

	if !utf8.Valid(source) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidContent, path)
	}
	if parser == nil {
		parser = l.NewParser()
		defer parser.Close()
	}

	st, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParseFailed, path, err)
	}
	if st == nil {
		return nil, fmt.Errorf("%w: %s", ErrParseFailed, path)
	}
	defer st.Close()

	root := st.RootNode()
	if root.Type() != l.Root {
		return nil, fmt.Errorf("%w: %s: unexpected root %q", ErrParseFailed, path, root.Type())
	}

	c := converter{lang: l, source: source}
	lv := &level{}
	c.collect(lv, root, root.Type())
	lv.flush()

	f = tree.Build(lv.out)
	setParseSpanResult(span, f.Count(), root.HasError())
	return f, nil
}

type converter struct {
	lang   *lang.Language
	source []byte
}

// level gathers the kept children of one syntax node. Comment trivia waits
// in pending until the next kept sibling arrives.
type level struct {
	parent  *tree.Syntax
	out     []*tree.Syntax
	pending []tree.Trivia
}

func (lv *level) add(s *tree.Syntax) {
	if len(lv.pending) > 0 {
		s.Leading = append(lv.pending, s.Leading...)
		lv.pending = nil
	}
	lv.out = append(lv.out, s)
}

// flush hands trivia with no following sibling to the previous sibling,
// or to the parent when there is none.
func (lv *level) flush() {
	if len(lv.pending) == 0 {
		return
	}
	switch {
	case len(lv.out) > 0:
		last := lv.out[len(lv.out)-1]
		last.Trailing = append(last.Trailing, lv.pending...)
	case lv.parent != nil:
		lv.parent.Trailing = append(lv.parent.Trailing, lv.pending...)
	}
	lv.pending = nil
}

// collect classifies the named children of n into lv. Spliced children
// are collected into the same level.
func (c *converter) collect(lv *level, n *sitter.Node, parentType string) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		field := n.FieldNameForChild(i)
		ctx := lang.Context{
			ParentType: parentType,
			Field:      field,
			Named:      lv.parent != nil && lv.parent.Identifier != "",
		}

		d := c.lang.Classify(child, ctx, c.source)
		switch d.Action {
		case lang.Skip:
		case lang.Splice:
			c.collect(lv, child, child.Type())
		case lang.Name:
			if lv.parent != nil {
				lv.parent.Identifier = lang.NodeText(child, c.source)
			}
		case lang.Comment:
			lv.pending = append(lv.pending, tree.Trivia{
				Kind: d.Trivia,
				Text: strings.TrimSpace(lang.NodeText(child, c.source)),
			})
		case lang.Keep:
			s := c.node(child, d)
			if k, ok := c.lang.Wrap[parentType][field]; ok && s.Kind != k {
				s = c.wrap(n, i, s, k)
			}
			lv.add(s)
		}
	}
}

func (c *converter) node(n *sitter.Node, d lang.Disposition) *tree.Syntax {
	s := &tree.Syntax{
		Kind:      d.Kind,
		Text:      lang.NodeText(n, c.source),
		Start:     int(n.StartByte()),
		End:       int(n.EndByte()),
		StartLine: int(n.StartPoint().Row) + 1,
		EndLine:   int(n.EndPoint().Row) + 1,
	}
	if c.lang.Operator != nil {
		s.Operator, s.OperatorKind = c.lang.Operator(n, c.source)
	}
	if !d.Leaf {
		lv := &level{parent: s}
		c.collect(lv, n, n.Type())
		lv.flush()
		s.Children = lv.out
	}
	return s
}

// wrap encloses s in a synthetic node of kind k. The synthetic node starts
// at the anonymous token before s, such as the else keyword.
func (c *converter) wrap(parent *sitter.Node, i int, s *tree.Syntax, k kind.Kind) *tree.Syntax {
	start, line := s.Start, s.StartLine
	if i > 0 {
		if tok := parent.Child(i - 1); tok != nil && !tok.IsNamed() {
			start = int(tok.StartByte())
			line = int(tok.StartPoint().Row) + 1
		}
	}
	return &tree.Syntax{
		Kind:      k,
		Text:      string(c.source[start:s.End]),
		Start:     start,
		End:       s.End,
		StartLine: line,
		EndLine:   s.EndLine,
		Children:  []*tree.Syntax{s},
	}
}
