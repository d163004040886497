package ranking

import (
	"testing"

	"github.com/phobologic/treepath/internal/model"
)

func makeReport() *model.Report {
	return &model.Report{
		Root: "test",
		Expr: "ns/cls",
		Mode: model.Deep,
		Files: []model.FileResult{
			{Path: "src/A.cs", Language: "csharp", Matches: []model.Match{{Name: "Alpha"}}},
			{Path: "src/B.cs", Language: "csharp", Matches: []model.Match{{Name: "Beta"}, {Name: "BetaHelper"}}},
			{Path: "tests/C.cs", Language: "csharp", Matches: []model.Match{{Name: "Gamma"}}},
		},
		Scanned: 5,
		Skipped: 1,
	}
}

func TestSortByMatches(t *testing.T) {
	t.Parallel()

	r := makeReport()
	got := SortByMatches(r)

	want := []string{"src/B.cs", "src/A.cs", "tests/C.cs"}
	for i, p := range want {
		if got.Files[i].Path != p {
			t.Errorf("file %d: got %q, want %q", i, got.Files[i].Path, p)
		}
	}
	if r.Files[0].Path != "src/A.cs" {
		t.Error("SortByMatches modified the original report")
	}
	if got.Scanned != 5 || got.Skipped != 1 || got.Expr != "ns/cls" {
		t.Errorf("header not carried over: %+v", got)
	}
}

func TestSelectFilesAll(t *testing.T) {
	t.Parallel()

	r := makeReport()
	if got := SelectFiles(r, 0); got != r {
		t.Error("maxFiles=0 should return original")
	}
	if got := SelectFiles(r, 5); got != r {
		t.Error("maxFiles > len should return original")
	}
	if got := SelectFiles(r, 3); got != r {
		t.Error("maxFiles == len should return original")
	}
}

func TestSelectFilesSubset(t *testing.T) {
	t.Parallel()

	r := makeReport()
	got := SelectFiles(r, 2)

	if len(got.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(got.Files))
	}
	if got.Files[0].Path != "src/A.cs" || got.Files[1].Path != "src/B.cs" {
		t.Errorf("expected A.cs, B.cs; got %s, %s", got.Files[0].Path, got.Files[1].Path)
	}
	if got.MatchCount() != 3 {
		t.Errorf("MatchCount = %d, want 3", got.MatchCount())
	}
}

func TestFilterByFile(t *testing.T) {
	t.Parallel()

	got := FilterByFile(makeReport(), "SRC/")
	if len(got.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(got.Files))
	}

	got = FilterByFile(makeReport(), "nothing")
	if len(got.Files) != 0 {
		t.Errorf("expected no files, got %d", len(got.Files))
	}
}

func TestFilterByName(t *testing.T) {
	t.Parallel()

	got := FilterByName(makeReport(), "beta")
	if len(got.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(got.Files))
	}
	if len(got.Files[0].Matches) != 2 {
		t.Errorf("expected 2 matches, got %d", len(got.Files[0].Matches))
	}

	got = FilterByName(makeReport(), "helper")
	if got.MatchCount() != 1 || got.Files[0].Matches[0].Name != "BetaHelper" {
		t.Errorf("unexpected result: %+v", got.Files)
	}
}
