package tree

import "github.com/phobologic/treepath/internal/kind"

// Syntax is one node as delivered by a language boundary, before annotation.
// Children must be in source order.
type Syntax struct {
	Kind kind.Kind
	Text string

	// Start and End are byte offsets into the source; StartLine and EndLine
	// are 1-based.
	Start, End         int
	StartLine, EndLine int

	// Identifier is the declared name token of the construct, if it has one
	// (class, method, property, declarator, parameter, ...). It is consulted
	// by the name pass and is otherwise not exposed.
	Identifier string

	Operator     string
	OperatorKind OperatorKind

	Leading  []Trivia
	Trailing []Trivia
	Children []*Syntax
}

// OperatorKind classifies operator-bearing expressions.
type OperatorKind uint8

const (
	NoOperator OperatorKind = iota
	BinaryOperator
	PrefixOperator
	PostfixOperator
)

func (k OperatorKind) String() string {
	switch k {
	case BinaryOperator:
		return "binary"
	case PrefixOperator:
		return "prefix"
	case PostfixOperator:
		return "postfix"
	default:
		return "none"
	}
}

// TriviaKind classifies a comment or directive fragment.
type TriviaKind uint8

const (
	UnknownTrivia TriviaKind = iota
	RegionDirective
	EndRegionDirective
	SingleLineComment
	MultiLineComment
	DocumentationComment
	IfDirective
	ElseDirective
	EndIfDirective
	DisabledText
	PragmaDirective
	LineDirective
)

var triviaNames = [...]string{
	UnknownTrivia:        "unknown",
	RegionDirective:      "region",
	EndRegionDirective:   "endregion",
	SingleLineComment:    "comment",
	MultiLineComment:     "multiline-comment",
	DocumentationComment: "doc-comment",
	IfDirective:          "if",
	ElseDirective:        "else",
	EndIfDirective:       "endif",
	DisabledText:         "disabled",
	PragmaDirective:      "pragma",
	LineDirective:        "line",
}

func (k TriviaKind) String() string {
	if int(k) < len(triviaNames) {
		return triviaNames[k]
	}
	return triviaNames[UnknownTrivia]
}

// Trivia is a non-semantic source fragment attached to a node edge.
type Trivia struct {
	Kind TriviaKind
	Text string
}

func (t Trivia) String() string {
	return t.Kind.String() + ": " + t.Text
}
