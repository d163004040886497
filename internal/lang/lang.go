// Package lang provides a language registry mapping file extensions to
// tree-sitter grammars and the rules that translate their nodes into
// syntax kinds.
package lang

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/treepath/internal/kind"
	"github.com/phobologic/treepath/internal/tree"
)

// ErrUnsupportedLanguage is returned for language names or extensions that
// have no registered grammar.
var ErrUnsupportedLanguage = errors.New("unsupported language")

var whitespaceRe = regexp.MustCompile(`\s+`)

// Action says what happens to a named grammar node during translation.
type Action uint8

const (
	// Keep turns the node into a syntax node of Disposition.Kind.
	Keep Action = iota
	// Splice drops the node but promotes its children into the parent.
	Splice
	// Skip drops the node and everything below it.
	Skip
	// Name drops the node and records its text as the parent's declared
	// identifier.
	Name
	// Comment turns the node into trivia of Disposition.Trivia.
	Comment
)

// Disposition is the outcome of classifying one grammar node.
type Disposition struct {
	Action Action
	Kind   kind.Kind
	Trivia tree.TriviaKind
	// Leaf keeps the node but ignores its children.
	Leaf bool
}

// Context describes where a grammar node sits.
type Context struct {
	// ParentType is the grammar type of the closest kept or spliced parent.
	ParentType string
	// Field is the field name the node occupies in its parent, or "".
	Field string
	// Named reports whether the parent already received a declared name.
	Named bool
}

// Language holds tree-sitter configuration for a supported language.
type Language struct {
	Name       string
	Extensions []string
	lang       *sitter.Language

	// Classify decides how a named grammar node is translated. Types the
	// language does not recognise must yield Keep with kind.Other.
	Classify func(node *sitter.Node, ctx Context, source []byte) Disposition

	// Operator returns the operator token of operator-bearing expressions.
	Operator func(node *sitter.Node, source []byte) (string, tree.OperatorKind)

	// Wrap lists grammar fields whose node is wrapped in a synthetic node of
	// the given kind, keyed by parent type and field name. It covers
	// constructs some grammars flatten away, such as an else clause.
	Wrap map[string]map[string]kind.Kind

	// Root is the grammar type whose children become the forest roots.
	Root string
}

// GetLanguage returns the tree-sitter Language pointer.
func (l *Language) GetLanguage() *sitter.Language {
	return l.lang
}

// NewParser creates a fresh tree-sitter parser for this language.
// Each goroutine must use its own parser (not thread-safe).
func (l *Language) NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(l.GetLanguage())
	return p
}

// Languages maps language names to their configuration.
// Populated by init() functions in per-language files.
var Languages = map[string]*Language{}

// extensionMap is built lazily after all init() functions have run.
var extensionMap map[string]string
var extensionOnce sync.Once

func getExtensionMap() map[string]string {
	extensionOnce.Do(func() {
		extensionMap = make(map[string]string)
		for _, l := range Languages {
			for _, ext := range l.Extensions {
				extensionMap[ext] = l.Name
			}
		}
	})
	return extensionMap
}

// ForExtension returns the language name for a file extension, or "" if unsupported.
func ForExtension(ext string) string {
	return getExtensionMap()[strings.ToLower(ext)]
}

// Lookup returns the registered language with the given name.
func Lookup(name string) (*Language, error) {
	l, ok := Languages[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, name)
	}
	return l, nil
}

// ForFile returns the language registered for the extension of path.
func ForFile(path string) (*Language, error) {
	ext := path
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		ext = path[i:]
	}
	name := ForExtension(ext)
	if name == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, path)
	}
	return Languages[name], nil
}

// Names returns the registered language names, sorted.
func Names() []string {
	names := make([]string, 0, len(Languages))
	for n := range Languages {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NodeText returns the source text of a tree-sitter node.
func NodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// CollapseWhitespace replaces runs of whitespace with a single space and trims.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

func (a Action) String() string {
	switch a {
	case Keep:
		return "keep"
	case Splice:
		return "splice"
	case Skip:
		return "skip"
	case Name:
		return "name"
	case Comment:
		return "comment"
	default:
		return "unknown"
	}
}
