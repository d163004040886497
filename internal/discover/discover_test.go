package discover

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/phobologic/treepath/internal/lang"
)

func TestDiscoverCSharpFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFile(t, dir, "Program.cs", "class Program { }")
	writeFile(t, dir, "Lib/Util.cs", "class Util { }")
	// Non-C# file should be ignored
	writeFile(t, dir, "readme.txt", "hello")
	// Hidden file should be ignored
	writeFile(t, dir, ".hidden.cs", "class Secret { }")

	entries, err := Files(dir, Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(entries), paths)
	}

	// Should be sorted
	if entries[0].Path != filepath.Join("Lib", "Util.cs") {
		t.Errorf("entry 0: got %q", entries[0].Path)
	}
	if entries[1].Path != "Program.cs" {
		t.Errorf("entry 1: got %q", entries[1].Path)
	}

	for _, e := range entries {
		if e.Language != "csharp" {
			t.Errorf("entry %q: language = %q, want csharp", e.Path, e.Language)
		}
	}
}

func TestDiscoverSkipDirs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFile(t, dir, "Program.cs", "class P { }")
	writeFile(t, dir, "bin/Debug/Gen.cs", "class G { }")
	writeFile(t, dir, "obj/Debug/AssemblyInfo.cs", "class A { }")
	writeFile(t, dir, "node_modules/pkg.cs", "class N { }")
	writeFile(t, dir, ".hidden/Secret.cs", "class S { }")

	entries, err := Files(dir, Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Path != "Program.cs" {
		t.Errorf("expected Program.cs, got %q", entries[0].Path)
	}
}

func TestDiscoverLanguageFilter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFile(t, dir, "A.cs", "class A { }")
	writeFile(t, dir, "B.cs", "class B { }")

	entries, err := Files(dir, Options{Languages: []string{"csharp"}})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries for csharp filter, got %d", len(entries))
	}

	_, err = Files(dir, Options{Languages: []string{"cobol"}})
	if !errors.Is(err, lang.ErrUnsupportedLanguage) {
		t.Fatalf("cobol filter err = %v, want ErrUnsupportedLanguage", err)
	}
}

func TestDiscoverExclude(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFile(t, dir, "Form.cs", "class Form { }")
	writeFile(t, dir, "Form.Designer.cs", "partial class Form { }")
	writeFile(t, dir, "Generated/Api.cs", "class Api { }")
	writeFile(t, dir, "Src/Generated/Client.cs", "class Client { }")

	entries, err := Files(dir, Options{Exclude: []string{"**/*.Designer.cs", "**/Generated/**"}})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "Form.cs" {
		t.Fatalf("entries = %v, want only Form.cs", entries)
	}

	_, err = Files(dir, Options{Exclude: []string{"[unclosed"}})
	if !errors.Is(err, doublestar.ErrBadPattern) {
		t.Fatalf("bad pattern err = %v, want ErrBadPattern", err)
	}
}

func TestDiscoverMaxFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"A.cs", "B.cs", "C.cs", "D.cs"} {
		writeFile(t, dir, name, "class X { }")
	}

	entries, err := Files(dir, Options{MaxFiles: 2})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Path != "A.cs" || entries[1].Path != "B.cs" {
		t.Errorf("entries = %v", entries)
	}
}

func TestDiscoverSkipTests(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "Widget.cs", "class Widget { }")
	writeFile(t, dir, "WidgetTests.cs", "class WidgetTests { }")
	writeFile(t, dir, "App.Tests/Helper.cs", "class Helper { }")

	entries, err := Files(dir, Options{SkipTests: true})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "Widget.cs" {
		t.Fatalf("entries = %v, want only Widget.cs", entries)
	}

	entries, err = Files(dir, Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries without SkipTests, got %d", len(entries))
	}
}

func TestDiscoverGitignore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "Legacy/\n")
	writeFile(t, dir, "Keep.cs", "class Keep { }")
	writeFile(t, dir, "Legacy/Old.cs", "class Old { }")

	entries, err := Files(dir, Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "Keep.cs" {
		t.Fatalf("entries = %v, want only Keep.cs", entries)
	}
}

func TestDiscoverSymlinksSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "Real.cs", "class Real { }")

	// Create symlink
	err := os.Symlink(filepath.Join(dir, "Real.cs"), filepath.Join(dir, "Link.cs"))
	if err != nil {
		t.Skip("symlinks not supported")
	}

	entries, err := Files(dir, Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry (no symlink), got %d", len(entries))
	}
	if entries[0].Path != "Real.cs" {
		t.Errorf("expected Real.cs, got %q", entries[0].Path)
	}
}

func TestIsTestFile(t *testing.T) {
	t.Parallel()
	cases := []struct {
		path string
		want bool
	}{
		// Test directory components
		{"tests/WidgetFixture.cs", true},
		{"test/Helpers.cs", true},
		{"src/App.Tests/Setup.cs", true},
		{"src/App.UnitTests/Setup.cs", true},
		// Filename patterns
		{"src/WidgetTests.cs", true},
		{"WidgetTest.cs", true},
		// Production files
		{"src/Widget.cs", false},
		{"src/Testing/Harness.cs", false},
		{"src/Contest.cs", false},
		{"src/Attestation.cs", false},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()
			got := IsTestFile(tc.path)
			if got != tc.want {
				t.Errorf("IsTestFile(%q) = %v, want %v", tc.path, got, tc.want)
			}
		})
	}
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
