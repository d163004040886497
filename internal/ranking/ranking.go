// Package ranking orders and narrows search reports.
package ranking

import (
	"sort"
	"strings"

	"github.com/phobologic/treepath/internal/model"
)

// SortByMatches returns a new Report whose files are ordered by match count,
// most first, with ties broken by path.
func SortByMatches(r *model.Report) *model.Report {
	files := make([]model.FileResult, len(r.Files))
	copy(files, r.Files)
	sort.SliceStable(files, func(i, j int) bool {
		if len(files[i].Matches) != len(files[j].Matches) {
			return len(files[i].Matches) > len(files[j].Matches)
		}
		return files[i].Path < files[j].Path
	})
	return withFiles(r, files)
}

// SelectFiles returns a new Report with only the first maxFiles files.
// If maxFiles is <= 0 or >= len(files), the report is returned unchanged.
func SelectFiles(r *model.Report, maxFiles int) *model.Report {
	if maxFiles <= 0 || maxFiles >= len(r.Files) {
		return r
	}
	return withFiles(r, r.Files[:maxFiles])
}

// FilterByFile returns a new Report containing only files whose path
// contains substr (case-insensitive).
func FilterByFile(r *model.Report, substr string) *model.Report {
	lower := strings.ToLower(substr)

	var files []model.FileResult
	for i := range r.Files {
		if strings.Contains(strings.ToLower(r.Files[i].Path), lower) {
			files = append(files, r.Files[i])
		}
	}
	return withFiles(r, files)
}

// FilterByName returns a new Report keeping only matches whose name
// contains substr (case-insensitive). Files left without matches are dropped.
func FilterByName(r *model.Report, substr string) *model.Report {
	lower := strings.ToLower(substr)

	var files []model.FileResult
	for i := range r.Files {
		fr := r.Files[i]
		var matches []model.Match
		for j := range fr.Matches {
			if strings.Contains(strings.ToLower(fr.Matches[j].Name), lower) {
				matches = append(matches, fr.Matches[j])
			}
		}
		if len(matches) > 0 {
			fr.Matches = matches
			files = append(files, fr)
		}
	}
	return withFiles(r, files)
}

func withFiles(r *model.Report, files []model.FileResult) *model.Report {
	return &model.Report{
		Root:    r.Root,
		Expr:    r.Expr,
		Mode:    r.Mode,
		Files:   files,
		Scanned: r.Scanned,
		Skipped: r.Skipped,
	}
}
