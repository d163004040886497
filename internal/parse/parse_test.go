package parse

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/phobologic/treepath/internal/kind"
	"github.com/phobologic/treepath/internal/lang"
	"github.com/phobologic/treepath/internal/query"
	"github.com/phobologic/treepath/internal/tree"
)

const widgetSource = `using System;
using System.Collections.Generic;

namespace Demo
{
    [Obsolete]
    class Widget
    {
        int count;
        public List<string> Items { get; set; }

        [Test]
        public int Size() { return count; }
    }
}
`

func csharp(t *testing.T) *lang.Language {
	t.Helper()
	l, err := lang.Lookup("csharp")
	require.NoError(t, err)
	return l
}

func build(t *testing.T, source string) *tree.Forest {
	t.Helper()
	f, err := Forest(context.Background(), csharp(t), nil, []byte(source), "test.cs")
	require.NoError(t, err)
	return f
}

func find(t *testing.T, target query.Target, text string) *tree.Node {
	t.Helper()
	n, err := query.Find(target, text)
	require.NoError(t, err)
	return n
}

func TestForestUsingsAndClass(t *testing.T) {
	t.Parallel()
	f := build(t, widgetSource)

	first := find(t, f, "usingdirective[0]")
	require.NotNil(t, first)
	assert.Equal(t, "using System;", first.Text())
	assert.Equal(t, "System", first.Name())

	second := find(t, f, "usingdirective[1]")
	require.NotNil(t, second)
	assert.Equal(t, "using System.Collections.Generic;", second.Text())
	assert.Equal(t, "System.Collections.Generic", second.Name())

	ns := find(t, f, "ns")
	require.NotNil(t, ns)
	assert.Equal(t, "Demo", ns.Name())

	cls := find(t, f, "ns/cls")
	require.NotNil(t, cls)
	assert.Equal(t, "Widget", cls.Name())
	assert.Equal(t, []string{"Obsolete"}, cls.Attributes())
	assert.Same(t, cls, find(t, f, "ns/cls[@Obsolete]"))
	assert.Same(t, cls, find(t, f, "ns/cls[Widget]"))
	startLine, endLine := cls.Lines()
	assert.Equal(t, 6, startLine)
	assert.Equal(t, 14, endLine)

	deep, err := query.DeepSearch(f, "cls")
	require.NoError(t, err)
	require.Len(t, deep, 1)
	assert.Same(t, cls, deep[0])
}

func TestForestMembers(t *testing.T) {
	t.Parallel()
	f := build(t, widgetSource)

	field := find(t, f, "ns/cls/field")
	require.NotNil(t, field)
	assert.Equal(t, "count", field.Name())
	assert.Equal(t, "int count;", field.Text())

	prop := find(t, f, "ns/cls/property[Items]")
	require.NotNil(t, prop)
	assert.Equal(t, "List<string>", prop.ReturnTypeName())
	assert.Same(t, prop, find(t, f, "ns/cls/property[#List<string>]"))

	size := find(t, f, "ns/cls/method[#int]")
	require.NotNil(t, size)
	assert.Equal(t, "Size", size.Name())
	assert.True(t, size.HasAttribute("Test"))
	assert.Same(t, size, find(t, f, "ns/cls/method[@Test]"))

	ret := find(t, size, "block/return/id")
	require.NotNil(t, ret)
	assert.Equal(t, "count", ret.Name())
}

func TestForestModifiersAreDropped(t *testing.T) {
	t.Parallel()
	f := build(t, widgetSource)

	f.Walk(func(n *tree.Node) bool {
		assert.NotEqual(t, "public", n.Text(), "modifier kept at %s", n.Path())
		return true
	})
}

func TestForestRoundTrip(t *testing.T) {
	t.Parallel()
	f := build(t, widgetSource)

	f.Walk(func(n *tree.Node) bool {
		assert.Same(t, n, find(t, f, n.Path()), "path %q", n.Path())
		return true
	})
}

func TestForestNamedPathRoundTrip(t *testing.T) {
	t.Parallel()
	f := build(t, "namespace A.\n    B\n{\n    class C { }\n    class D { }\n}\n")

	ns := f.Children()[0]
	require.Equal(t, kind.Namespace, ns.Kind())
	assert.Equal(t, "A.\n    B", ns.Name())
	for _, n := range append([]*tree.Node{ns}, ns.Children()...) {
		if n.Name() == "" {
			continue
		}
		assert.Same(t, n, find(t, f, n.NamedPath()), "named path %q", n.NamedPath())
	}
	assert.Same(t, ns.Children()[len(ns.Children())-1], find(t, f, "ns[A.\n    B]/cls[D]"))
}

func TestForestOperators(t *testing.T) {
	t.Parallel()
	f := build(t, "class A { void M() { x = a + b; i++; } }\n")

	bin, err := query.DeepSearch(f, "binaryexpression")
	require.NoError(t, err)
	require.Len(t, bin, 1)
	op, opKind := bin[0].Operator()
	assert.Equal(t, "+", op)
	assert.Equal(t, tree.BinaryOperator, opKind)
	assert.Equal(t, "a + b", bin[0].Text())

	post, err := query.DeepSearch(f, "unaryexpression")
	require.NoError(t, err)
	require.Len(t, post, 1)
	op, opKind = post[0].Operator()
	assert.Equal(t, "++", op)
	assert.Equal(t, tree.PostfixOperator, opKind)
}

func TestForestElseClause(t *testing.T) {
	t.Parallel()
	f := build(t, "class A { void M() { if (a) x(); else y(); } }\n")

	got, err := query.DeepSearch(f, "if/else")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "else y();", got[0].Text())
	require.Len(t, got[0].Children(), 1)
	assert.Equal(t, kind.ExpressionStatement, got[0].Children()[0].Kind())
}

func TestForestTrivia(t *testing.T) {
	t.Parallel()
	f := build(t, "/// <summary>Widget</summary>\nclass A\n{\n    int x; // tail\n}\n")

	cls := find(t, f, "cls")
	require.NotNil(t, cls)
	require.Len(t, cls.LeadingTrivia(), 1)
	assert.Equal(t, tree.DocumentationComment, cls.LeadingTrivia()[0].Kind)
	assert.Equal(t, "/// <summary>Widget</summary>", cls.LeadingTrivia()[0].Text)

	field := find(t, cls, "field")
	require.NotNil(t, field)
	require.Len(t, field.TrailingTrivia(), 1)
	assert.Equal(t, tree.SingleLineComment, field.TrailingTrivia()[0].Kind)
	assert.Equal(t, "// tail", field.TrailingTrivia()[0].Text)
}

func TestForestConditionalCode(t *testing.T) {
	t.Parallel()
	f := build(t, "class A\n{\n#if DEBUG\n    void M() { }\n#endif\n}\n")

	m := find(t, f, "cls/method")
	require.NotNil(t, m)
	assert.Equal(t, "M", m.Name())
}

func TestForestUnknownConstructs(t *testing.T) {
	t.Parallel()
	f := build(t, "class A { void M() { var f = (int x) => x * 2; } }\n")

	f.Walk(func(n *tree.Node) bool {
		assert.NotEqual(t, kind.Unknown, n.Kind())
		return true
	})
	bogus, err := query.DeepSearch(f, "bogus")
	require.NoError(t, err)
	assert.Empty(t, bogus)
}

func TestForestEmpty(t *testing.T) {
	t.Parallel()
	f := build(t, "")
	assert.Empty(t, f.Children())
}

func TestForestInvalidContent(t *testing.T) {
	t.Parallel()
	_, err := Forest(context.Background(), csharp(t), nil, []byte{'c', 0xff, 0xfe}, "bad.cs")
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestFile(t *testing.T) {
	t.Parallel()
	l := csharp(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "Widget.cs")
	require.NoError(t, os.WriteFile(path, []byte(widgetSource), 0o644))

	p := l.NewParser()
	defer p.Close()

	f, err := File(context.Background(), l, p, path, DefaultMaxFileSize)
	require.NoError(t, err)
	assert.Equal(t, "Widget", find(t, f, "ns/cls").Name())

	_, err = File(context.Background(), l, p, path, 10)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = File(context.Background(), l, p, filepath.Join(dir, "missing.cs"), 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// TestForestSpan is not parallel: it installs the global tracer provider.
func TestForestSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())
	otel.SetTracerProvider(tp)

	_, err := Forest(context.Background(), csharp(t), nil, []byte(widgetSource), "span.cs")
	require.NoError(t, err)

	var found bool
	for _, s := range recorder.Ended() {
		if s.Name() != "Parser.Parse" {
			continue
		}
		attrs := map[string]any{}
		for _, kv := range s.Attributes() {
			attrs[string(kv.Key)] = kv.Value.AsInterface()
		}
		if attrs["ast.file"] != "span.cs" {
			continue
		}
		found = true
		assert.Equal(t, "csharp", attrs["ast.language"])
		assert.Equal(t, int64(len(widgetSource)), attrs["ast.content_size"])
		assert.Equal(t, false, attrs["ast.has_error"])
		assert.Positive(t, attrs["ast.node_count"])
	}
	assert.True(t, found, "no Parser.Parse span for span.cs")
}
