// Package model defines the result structures shared by search and the
// output encoders.
package model

// Mode selects how an expression is evaluated against each file's forest.
type Mode string

const (
	// Root resolves the expression from the forest root, first match only.
	Root Mode = "root"
	// All resolves from the forest root and keeps every match at the last step.
	All Mode = "all"
	// Deep resolves the expression from every depth.
	Deep Mode = "deep"
)

// Match is one node selected by an expression.
type Match struct {
	File       string   `json:"file"`
	Path       string   `json:"path"`
	NamedPath  string   `json:"named_path"`
	Keyword    string   `json:"kind"`
	Name       string   `json:"name,omitempty"`
	ReturnType string   `json:"return_type,omitempty"`
	Attributes []string `json:"attributes,omitempty"`
	StartLine  int      `json:"start_line"`
	EndLine    int      `json:"end_line"`
	// Snippet is the first line of the node's source text.
	Snippet string `json:"snippet"`
}

// FileResult holds the matches found in one source file.
type FileResult struct {
	Path     string  `json:"path"`
	Language string  `json:"language"`
	Matches  []Match `json:"matches"`
}

// Report is the complete outcome of one search, ready for serialization.
type Report struct {
	Root  string       `json:"root"`
	Expr  string       `json:"expr"`
	Mode  Mode         `json:"mode"`
	Files []FileResult `json:"files"`
	// Scanned counts files parsed; Skipped counts files that could not be.
	Scanned int `json:"scanned"`
	Skipped int `json:"skipped"`
}

// MatchCount returns the number of matches across all files.
func (r *Report) MatchCount() int {
	n := 0
	for i := range r.Files {
		n += len(r.Files[i].Matches)
	}
	return n
}
