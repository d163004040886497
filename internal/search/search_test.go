package search

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/phobologic/treepath/internal/discover"
	"github.com/phobologic/treepath/internal/kind"
	"github.com/phobologic/treepath/internal/model"
	"github.com/phobologic/treepath/internal/query"
	"github.com/phobologic/treepath/internal/tree"
	"github.com/phobologic/treepath/internal/tree/treetest"
)

const widgetSource = `using System;

namespace Demo
{
    [Obsolete]
    class Widget
    {
        public int Size() { return 1; }
        public int Count() { return 2; }
    }

    class Gadget
    {
        void Run() { }
    }
}
`

const helperSource = `namespace Demo.Util
{
    static class Helper
    {
        static string Name() { return "h"; }
    }
}
`

func setupRepo(t *testing.T) (string, []discover.FileEntry) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "src/Widget.cs", widgetSource)
	writeFile(t, dir, "src/Helper.cs", helperSource)
	writeFile(t, dir, "src/Empty.cs", "// nothing here\n")

	files, err := discover.Files(dir, discover.Options{})
	require.NoError(t, err)
	require.Len(t, files, 3)
	return dir, files
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func paths(r *model.Report) []string {
	var out []string
	for _, fr := range r.Files {
		for _, m := range fr.Matches {
			out = append(out, fr.Path+":"+m.Path)
		}
	}
	return out
}

func TestRunRootMode(t *testing.T) {
	t.Parallel()
	dir, files := setupRepo(t)

	r, err := Run(context.Background(), dir, files, query.MustParse("ns/cls"), Options{Concurrency: 2})
	require.NoError(t, err)

	assert.Equal(t, model.Root, r.Mode)
	assert.Equal(t, "ns/cls", r.Expr)
	assert.Equal(t, 3, r.Scanned)
	assert.Zero(t, r.Skipped)
	assert.Equal(t, []string{
		filepath.Join("src", "Helper.cs") + ":ns/cls",
		filepath.Join("src", "Widget.cs") + ":ns/cls",
	}, paths(r))

	w := r.Files[1].Matches[0]
	assert.Equal(t, "Widget", w.Name)
	assert.Equal(t, "cls", w.Keyword)
	assert.Equal(t, []string{"Obsolete"}, w.Attributes)
	assert.Equal(t, "ns[Demo]/cls[Widget]", w.NamedPath)
	assert.Equal(t, 5, w.StartLine)
	assert.True(t, strings.HasPrefix(w.Snippet, "[Obsolete] class Widget { public int Size() { return 1; }"), w.Snippet)
	assert.True(t, strings.HasSuffix(w.Snippet, "..."), w.Snippet)
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	f := tree.Build([]*tree.Syntax{
		treetest.Decl(kind.Method, "Size", "public int\n    Size()\n    {\n        return 1;\n    }",
			treetest.N(kind.PredefinedType, "int")),
	})
	m := Describe("A.cs", f.Children()[0])
	assert.Equal(t, "A.cs", m.File)
	assert.Equal(t, "method", m.Keyword)
	assert.Equal(t, "Size", m.Name)
	assert.Equal(t, "int", m.ReturnType)
	assert.Equal(t, "method[Size]", m.NamedPath)
	assert.Equal(t, "public int Size() { return 1; }", m.Snippet)

	long := strings.Repeat("x ", 100)
	assert.Equal(t, strings.TrimSpace(long[:maxSnippet])+"...", snippet(long))
	assert.Equal(t, "", snippet(" \n\t"))
}

func TestRunAllMode(t *testing.T) {
	t.Parallel()
	dir, files := setupRepo(t)

	r, err := Run(context.Background(), dir, files, query.MustParse("ns/cls/method[#int]"), Options{Mode: model.All})
	require.NoError(t, err)

	require.Len(t, r.Files, 1)
	var names []string
	for _, m := range r.Files[0].Matches {
		names = append(names, m.Name)
		assert.Equal(t, "int", m.ReturnType)
	}
	assert.Equal(t, []string{"Size", "Count"}, names)
}

func TestRunDeepMode(t *testing.T) {
	t.Parallel()
	dir, files := setupRepo(t)

	r, err := Run(context.Background(), dir, files, query.MustParse("method"), Options{Mode: model.Deep})
	require.NoError(t, err)

	// each class yields its first method only
	assert.Equal(t, 3, r.MatchCount())
	require.Len(t, r.Files, 2)
	assert.Equal(t, filepath.Join("src", "Helper.cs"), r.Files[0].Path)
	assert.Equal(t, []string{"Name"}, names(r.Files[0]))
	assert.Equal(t, "string", r.Files[0].Matches[0].ReturnType)
	assert.Equal(t, filepath.Join("src", "Widget.cs"), r.Files[1].Path)
	assert.Equal(t, []string{"Size", "Run"}, names(r.Files[1]))
	assert.Equal(t, []string{"ns/cls/method", "ns/cls[1]/method"},
		[]string{r.Files[1].Matches[0].Path, r.Files[1].Matches[1].Path})

	r, err = Run(context.Background(), dir, files, query.MustParse("ns/cls/method"), Options{Mode: model.All})
	require.NoError(t, err)
	require.Len(t, r.Files, 2)
	assert.Equal(t, []string{"Size", "Count"}, names(r.Files[1]))
}

func names(fr model.FileResult) []string {
	var out []string
	for _, m := range fr.Matches {
		out = append(out, m.Name)
	}
	return out
}

func TestRunSkipsBadFiles(t *testing.T) {
	t.Parallel()
	dir, files := setupRepo(t)
	writeFile(t, dir, "src/Bad.cs", "class \xff\xfe { }")
	files = append(files, discover.FileEntry{Path: filepath.Join("src", "Bad.cs"), Language: "csharp"})
	files = append(files, discover.FileEntry{Path: filepath.Join("src", "Gone.cs"), Language: "csharp"})

	core, logs := observer.New(zapcore.WarnLevel)
	r, err := Run(context.Background(), dir, files, query.MustParse("ns/cls"), Options{Logger: zap.New(core)})
	require.NoError(t, err)

	assert.Equal(t, 3, r.Scanned)
	assert.Equal(t, 2, r.Skipped)
	assert.Len(t, r.Files, 2)

	entries := logs.FilterMessage("Skipping file").All()
	require.Len(t, entries, 2)
	var skipped []string
	for _, e := range entries {
		skipped = append(skipped, e.ContextMap()["file"].(string))
	}
	assert.ElementsMatch(t, []string{filepath.Join("src", "Bad.cs"), filepath.Join("src", "Gone.cs")}, skipped)
}

func TestRunMaxFileSize(t *testing.T) {
	t.Parallel()
	dir, files := setupRepo(t)

	r, err := Run(context.Background(), dir, files, query.MustParse("ns"), Options{MaxFileSize: 150})
	require.NoError(t, err)

	// only Helper.cs and Empty.cs fit
	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, []string{filepath.Join("src", "Helper.cs") + ":ns"}, paths(r))
}

func TestRunErrors(t *testing.T) {
	t.Parallel()
	dir, files := setupRepo(t)

	_, err := Run(context.Background(), dir, files, query.Expr{{}}, Options{})
	assert.ErrorIs(t, err, query.ErrInvalidStep)

	_, err = Run(context.Background(), dir, files, query.MustParse("ns"), Options{Mode: "sideways"})
	assert.ErrorIs(t, err, ErrUnknownMode)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, dir, files, query.MustParse("ns"), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunKeepsFileOrder(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		writeFile(t, dir, name+".cs", "class "+name+" { }\n")
	}
	files, err := discover.Files(dir, discover.Options{})
	require.NoError(t, err)

	r, err := Run(context.Background(), dir, files, query.MustParse("cls"), Options{Concurrency: 4})
	require.NoError(t, err)

	var names []string
	for _, fr := range r.Files {
		names = append(names, fr.Matches[0].Name)
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G", "H"}, names)
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]model.Mode{
		"":     model.Root,
		"root": model.Root,
		"ALL":  model.All,
		"deep": model.Deep,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseMode("wide")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestEvaluateEmptyExpression(t *testing.T) {
	t.Parallel()
	dir, files := setupRepo(t)

	r, err := Run(context.Background(), dir, files, query.Expr{}, Options{Mode: model.Deep})
	require.NoError(t, err)
	assert.Empty(t, r.Files)
	assert.Equal(t, 3, r.Scanned)
}
