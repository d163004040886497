// Package toon implements TOON (Token-Oriented Object Notation) encoding.
package toon

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/phobologic/treepath/internal/model"
)

var (
	needsQuoting = regexp.MustCompile(`[,:"\\{}\[\]]`)
	looksNumeric = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?$`)
	keywords     = map[string]struct{}{
		"true":  {},
		"false": {},
		"null":  {},
	}
)

// Encode converts a search Report into TOON format.
func Encode(r *model.Report) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("expr: %s", encodeValue(r.Expr)))
	parts = append(parts, fmt.Sprintf("mode: %s", encodeValue(string(r.Mode))))
	parts = append(parts, fmt.Sprintf("root: %s", encodeValue(r.Root)))
	parts = append(parts, fmt.Sprintf("scanned: %d", r.Scanned))
	parts = append(parts, fmt.Sprintf("skipped: %d", r.Skipped))

	var fileRows [][]string
	for i := range r.Files {
		fr := &r.Files[i]
		fileRows = append(fileRows, []string{
			fr.Path,
			fr.Language,
			fmt.Sprintf("%d", len(fr.Matches)),
		})
	}
	parts = append(parts, formatTabular("files", []string{"path", "language", "matches"}, fileRows))

	var matchRows [][]string
	for i := range r.Files {
		for j := range r.Files[i].Matches {
			m := &r.Files[i].Matches[j]
			matchRows = append(matchRows, []string{
				m.File,
				fmt.Sprintf("%d", m.StartLine),
				m.Keyword,
				m.Name,
				m.Path,
			})
		}
	}
	parts = append(parts, formatTabular("matches", []string{"file", "line", "kind", "name", "path"}, matchRows))

	return strings.Join(parts, "\n")
}

// EncodeNodes converts the nodes of one file into a TOON table, with the
// return type and attributes columns included.
func EncodeNodes(file string, nodes []model.Match) string {
	var rows [][]string
	for i := range nodes {
		n := &nodes[i]
		rows = append(rows, []string{
			fmt.Sprintf("%d", n.StartLine),
			n.Keyword,
			n.Name,
			n.ReturnType,
			strings.Join(n.Attributes, " "),
			n.Path,
		})
	}
	return fmt.Sprintf("file: %s\n", encodeValue(file)) +
		formatTabular("nodes", []string{"line", "kind", "name", "type", "attributes", "path"}, rows)
}

func formatTabular(name string, columns []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{%s}:", name, len(rows), strings.Join(columns, ","))
	for _, row := range rows {
		encoded := make([]string, len(row))
		for i, cell := range row {
			encoded[i] = encodeValue(cell)
		}
		fmt.Fprintf(&b, "\n  %s", strings.Join(encoded, ","))
	}
	return b.String()
}

func encodeValue(value string) string {
	if value == "" {
		return `""`
	}

	if value != strings.TrimSpace(value) {
		return quote(value)
	}

	if strings.ContainsAny(value, "\n\r\t") {
		return quote(value)
	}

	if _, ok := keywords[strings.ToLower(value)]; ok {
		return quote(value)
	}

	if looksNumeric.MatchString(value) {
		return value
	}

	if needsQuoting.MatchString(value) {
		return quote(value)
	}

	if strings.HasPrefix(value, "-") {
		return quote(value)
	}

	return value
}

func quote(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\r", `\r`)
	escaped = strings.ReplaceAll(escaped, "\t", `\t`)
	return `"` + escaped + `"`
}
