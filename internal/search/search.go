// Package search evaluates a path expression across the source files of a
// directory.
package search

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/phobologic/treepath/internal/discover"
	"github.com/phobologic/treepath/internal/lang"
	"github.com/phobologic/treepath/internal/model"
	"github.com/phobologic/treepath/internal/parse"
	"github.com/phobologic/treepath/internal/query"
	"github.com/phobologic/treepath/internal/tree"
)

// ErrUnknownMode is returned for a mode other than root, all or deep.
var ErrUnknownMode = errors.New("unknown search mode")

// Options configures Run.
type Options struct {
	// Mode defaults to model.Root.
	Mode model.Mode
	// Concurrency bounds the number of files parsed at once. Zero means
	// GOMAXPROCS.
	Concurrency int
	// MaxFileSize is passed to parse.File. Zero means no limit.
	MaxFileSize int64
	// Logger receives per-file failures. Nil discards them.
	Logger *zap.Logger
}

// ParseMode converts a mode name into a model.Mode.
func ParseMode(s string) (model.Mode, error) {
	switch m := model.Mode(strings.ToLower(s)); m {
	case model.Root, model.All, model.Deep:
		return m, nil
	case "":
		return model.Root, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Evaluate applies expr to a single forest in the given mode.
func Evaluate(f *tree.Forest, expr query.Expr, mode model.Mode) ([]*tree.Node, error) {
	switch mode {
	case model.Root, "":
		n, err := query.First(f, expr)
		if err != nil || n == nil {
			return nil, err
		}
		return []*tree.Node{n}, nil
	case model.All:
		return query.All(f, expr)
	case model.Deep:
		return query.Deep(f, expr)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// maxSnippet bounds Match.Snippet, in runes.
const maxSnippet = 80

// Describe converts a node of file into a Match. The snippet is the node's
// source on one line, cut after maxSnippet runes.
func Describe(file string, n *tree.Node) model.Match {
	start, end := n.Lines()
	return model.Match{
		File:       file,
		Path:       n.Path(),
		NamedPath:  n.NamedPath(),
		Keyword:    n.Keyword(),
		Name:       n.Name(),
		ReturnType: n.ReturnTypeName(),
		Attributes: n.Attributes(),
		StartLine:  start,
		EndLine:    end,
		Snippet:    snippet(n.Text()),
	}
}

func snippet(text string) string {
	s := lang.CollapseWhitespace(text)
	if utf8.RuneCountInString(s) <= maxSnippet {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:maxSnippet])) + "..."
}

// Run parses files (relative to root) concurrently and evaluates expr
// against each. Files without matches are left out of the report; files
// that cannot be read or parsed are logged, counted as skipped and left
// out. Results keep the order of files.
func Run(ctx context.Context, root string, files []discover.FileEntry, expr query.Expr, opts Options) (*model.Report, error) {
	if err := expr.Validate(); err != nil {
		return nil, err
	}
	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Concurrency
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := startSearchSpan(ctx, root, expr.String(), mode, len(files))
	defer span.End()

	results := make([]*model.FileResult, len(files))
	failed := make([]bool, len(files))
	jobs := make(chan int)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := range files {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})
	for range workers {
		g.Go(func() error {
			// tree-sitter parsers are not safe for concurrent use
			parsers := map[string]*sitter.Parser{}
			defer func() {
				for _, p := range parsers {
					p.Close()
				}
			}()

			for i := range jobs {
				fe := files[i]
				fr, err := searchFile(gctx, root, fe, expr, mode, parsers, opts.MaxFileSize)
				if err != nil {
					if ctxErr := gctx.Err(); ctxErr != nil {
						return ctxErr
					}
					logger.Warn("Skipping file", zap.String("file", fe.Path), zap.Error(err))
					failed[i] = true
					continue
				}
				logger.Debug("Searched file", zap.String("file", fe.Path), zap.Int("matches", len(fr.Matches)))
				results[i] = fr
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	report := &model.Report{
		Root:  root,
		Expr:  expr.String(),
		Mode:  mode,
		Files: []model.FileResult{},
	}
	for i, fr := range results {
		if failed[i] {
			report.Skipped++
			continue
		}
		report.Scanned++
		if fr != nil && len(fr.Matches) > 0 {
			report.Files = append(report.Files, *fr)
		}
	}

	count := report.MatchCount()
	span.SetAttributes(
		attribute.Int("search.matches", count),
		attribute.Int("search.skipped", report.Skipped),
	)
	recordMatches(ctx, mode, count)
	return report, nil
}

func searchFile(ctx context.Context, root string, fe discover.FileEntry, expr query.Expr, mode model.Mode, parsers map[string]*sitter.Parser, maxSize int64) (*model.FileResult, error) {
	l, err := lang.Lookup(fe.Language)
	if err != nil {
		return nil, err
	}
	p, ok := parsers[l.Name]
	if !ok {
		p = l.NewParser()
		parsers[l.Name] = p
	}

	f, err := parse.File(ctx, l, p, filepath.Join(root, fe.Path), maxSize)
	if err != nil {
		return nil, err
	}
	nodes, err := Evaluate(f, expr, mode)
	if err != nil {
		return nil, err
	}

	fr := &model.FileResult{Path: fe.Path, Language: fe.Language}
	for _, n := range nodes {
		fr.Matches = append(fr.Matches, Describe(fe.Path, n))
	}
	return fr, nil
}
