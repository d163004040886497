package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/phobologic/treepath/internal/kind"
)

// Segment forms, tried in this order. Bracket text may span lines: a
// declared name such as a qualified namespace keeps the source's line breaks.
var (
	kindOnlyRe  = regexp.MustCompile(`^(\*|[a-z]+)$`)
	indexRe     = regexp.MustCompile(`^(\*|[a-z]+)\[([0-9]+)\]$`)
	attributeRe = regexp.MustCompile(`^(\*|[a-z]+)\[@(?s:(.+))\]$`)
	typeRe      = regexp.MustCompile(`^(\*|[a-z]+)\[#(?s:(.+))\]$`)
	nameRe      = regexp.MustCompile(`^(\*|[a-z]+)\[(?s:(.+))\]$`)
)

// Parse compiles a path expression. The text is trimmed and split on "/";
// empty text yields an empty Expr. Unrecognised keywords compile to
// kind.Unknown steps, which never match. Any malformed segment yields
// ErrSyntax.
func Parse(text string) (Expr, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Expr{}, nil
	}
	parts := strings.Split(text, "/")
	expr := make(Expr, 0, len(parts))
	for _, part := range parts {
		s, err := parseSegment(part)
		if err != nil {
			return nil, err
		}
		expr = append(expr, s)
	}
	return expr, nil
}

// TryParse is Parse for callers validating user input: it reports success
// instead of returning an error.
func TryParse(text string) (Expr, bool) {
	e, err := Parse(text)
	if err != nil {
		return nil, false
	}
	return e, true
}

// MustParse is like Parse but panics on error. It is meant for expressions
// fixed at compile time.
func MustParse(text string) Expr {
	e, err := Parse(text)
	if err != nil {
		panic("query: Parse(" + strconv.Quote(text) + "): " + err.Error())
	}
	return e
}

func parseSegment(part string) (Step, error) {
	if m := kindOnlyRe.FindStringSubmatch(part); m != nil {
		return ByKind(kind.Parse(m[1])), nil
	}
	if m := indexRe.FindStringSubmatch(part); m != nil {
		i, err := strconv.Atoi(m[2])
		if err != nil {
			return Step{}, ErrSyntax
		}
		return ByIndex(kind.Parse(m[1]), i), nil
	}
	if m := attributeRe.FindStringSubmatch(part); m != nil {
		return textStep(ByAttribute, m)
	}
	if m := typeRe.FindStringSubmatch(part); m != nil {
		return textStep(ByReturnType, m)
	}
	if m := nameRe.FindStringSubmatch(part); m != nil {
		return textStep(ByName, m)
	}
	return Step{}, ErrSyntax
}

func textStep(mk func(kind.Kind, string) Step, m []string) (Step, error) {
	v := strings.TrimSpace(m[2])
	if v == "" {
		return Step{}, ErrSyntax
	}
	return mk(kind.Parse(m[1]), v), nil
}
