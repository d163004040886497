// Package query parses path expressions and evaluates them against a
// syntax forest.
package query

import (
	"strconv"
	"strings"

	"github.com/phobologic/treepath/internal/kind"
)

// Discriminator names the extra filter a step applies after matching kind.
type Discriminator uint8

const (
	NoDiscriminator Discriminator = iota
	ByIndexDiscriminator
	ByAttributeDiscriminator
	ByNameDiscriminator
	ByReturnTypeDiscriminator
)

// Step is one compiled path segment: a kind plus at most one discriminator.
// The zero Step is invalid.
type Step struct {
	kind  kind.Kind
	disc  Discriminator
	index int
	text  string
}

// ByKind matches every node of kind k.
func ByKind(k kind.Kind) Step { return Step{kind: k} }

// ByIndex matches the index-th node of kind k among its siblings.
func ByIndex(k kind.Kind, index int) Step {
	return Step{kind: k, disc: ByIndexDiscriminator, index: index}
}

// ByAttribute matches nodes of kind k carrying the named attribute.
func ByAttribute(k kind.Kind, attribute string) Step {
	return Step{kind: k, disc: ByAttributeDiscriminator, text: attribute}
}

// ByName matches nodes of kind k whose resolved name equals name.
func ByName(k kind.Kind, name string) Step {
	return Step{kind: k, disc: ByNameDiscriminator, text: name}
}

// ByReturnType matches nodes of kind k whose return type name equals typ.
func ByReturnType(k kind.Kind, typ string) Step {
	return Step{kind: k, disc: ByReturnTypeDiscriminator, text: typ}
}

func (s Step) Kind() kind.Kind { return s.kind }
func (s Step) Discriminator() Discriminator { return s.disc }

// Index is the sibling ordinal of an index step.
func (s Step) Index() int { return s.index }

// Text is the attribute, name or return type of a text step.
func (s Step) Text() string { return s.text }

func (s Step) valid() bool {
	return s.kind != kind.None || s.disc != NoDiscriminator
}

// String renders the step in path syntax.
func (s Step) String() string {
	kw, ok := kind.Lookup(s.kind)
	if !ok {
		kw = "?"
	}
	switch s.disc {
	case ByIndexDiscriminator:
		return kw + "[" + strconv.Itoa(s.index) + "]"
	case ByAttributeDiscriminator:
		return kw + "[@" + s.text + "]"
	case ByNameDiscriminator:
		return kw + "[" + s.text + "]"
	case ByReturnTypeDiscriminator:
		return kw + "[#" + s.text + "]"
	default:
		return kw
	}
}

// Expr is a parsed path expression. The empty Expr selects the target itself.
type Expr []Step

func (e Expr) String() string {
	segs := make([]string, len(e))
	for i, s := range e {
		segs[i] = s.String()
	}
	return strings.Join(segs, "/")
}

// Validate reports ErrInvalidStep if any step has neither kind nor
// discriminator.
func (e Expr) Validate() error {
	for i, s := range e {
		if !s.valid() {
			return &StepError{Pos: i}
		}
	}
	return nil
}

func (d Discriminator) String() string {
	switch d {
	case ByIndexDiscriminator:
		return "index"
	case ByAttributeDiscriminator:
		return "attribute"
	case ByNameDiscriminator:
		return "name"
	case ByReturnTypeDiscriminator:
		return "return-type"
	default:
		return "none"
	}
}
