// Package tree holds the annotated syntax forest that path expressions are
// evaluated against.
package tree

import (
	"strings"

	"github.com/phobologic/treepath/internal/kind"
)

// Owner is the single back-reference of a node: either the node that
// contains it or, for a top-level node, the forest itself.
type Owner interface {
	siblings() []*Node
}

// ParentNode owns a nested node.
type ParentNode struct{ Node *Node }

// RootCollection owns a top-level node.
type RootCollection struct{ Forest *Forest }

func (p ParentNode) siblings() []*Node { return p.Node.children }
func (r RootCollection) siblings() []*Node { return r.Forest.roots }

// Node is one syntactic construct. Nodes are created by Build and are
// read-only afterwards.
type Node struct {
	kind       kind.Kind
	name       string
	ident      string
	returnType string
	attributes []string

	operator     string
	operatorKind OperatorKind

	text               string
	start, end         int
	startLine, endLine int

	leading  []Trivia
	trailing []Trivia

	children []*Node
	owner    Owner
}

func (n *Node) Kind() kind.Kind { return n.kind }

// Keyword is the canonical path keyword of the node's kind.
func (n *Node) Keyword() string { return kind.Keyword(n.kind) }

// Name is the resolved identifier, or "" if the kind has none.
func (n *Node) Name() string { return n.name }

// ReturnTypeName is the last type reference found among the node's direct
// children, or "".
func (n *Node) ReturnTypeName() string { return n.returnType }

// Attributes returns the attribute names attached to a class, method or
// property, in source order.
func (n *Node) Attributes() []string { return n.attributes }

// HasAttribute reports whether name is among the node's attributes.
func (n *Node) HasAttribute(name string) bool {
	for _, a := range n.attributes {
		if a == name {
			return true
		}
	}
	return false
}

// AttributesString joins the attribute names with ", ".
func (n *Node) AttributesString() string { return strings.Join(n.attributes, ", ") }

// Operator returns the operator token and its kind for operator-bearing
// expressions.
func (n *Node) Operator() (string, OperatorKind) { return n.operator, n.operatorKind }

// Text is the verbatim source of the node.
func (n *Node) Text() string { return n.text }

func (n *Node) Start() int { return n.start }
func (n *Node) End() int { return n.end }
func (n *Node) Len() int { return n.end - n.start }

// Lines returns the 1-based first and last line of the node.
func (n *Node) Lines() (int, int) { return n.startLine, n.endLine }

func (n *Node) LeadingTrivia() []Trivia { return n.leading }
func (n *Node) TrailingTrivia() []Trivia { return n.trailing }

func (n *Node) LeadingTriviaString() string { return joinTrivia(n.leading) }
func (n *Node) TrailingTriviaString() string { return joinTrivia(n.trailing) }

func joinTrivia(ts []Trivia) string {
	var b strings.Builder
	for _, t := range ts {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Children returns the owned child nodes in source order. Callers must not
// modify the returned slice.
func (n *Node) Children() []*Node { return n.children }

func (n *Node) Owner() Owner { return n.owner }

// Parent returns the containing node, or nil for a top-level node.
func (n *Node) Parent() *Node {
	if p, ok := n.owner.(ParentNode); ok {
		return p.Node
	}
	return nil
}

// Forest returns the forest the node belongs to.
func (n *Node) Forest() *Forest {
	cur := n
	for {
		switch o := cur.owner.(type) {
		case ParentNode:
			cur = o.Node
		case RootCollection:
			return o.Forest
		default:
			return nil
		}
	}
}

// ChildrenOfKind returns the direct children whose kind is one of kinds.
func (n *Node) ChildrenOfKind(kinds ...kind.Kind) []*Node {
	return ofKinds(n.children, kinds)
}

// ChildOfKind returns the first direct child whose kind is one of kinds.
func (n *Node) ChildOfKind(kinds ...kind.Kind) *Node {
	for _, c := range n.children {
		if anyKind(c.kind, kinds) {
			return c
		}
	}
	return nil
}

func ofKinds(nodes []*Node, kinds []kind.Kind) []*Node {
	var out []*Node
	for _, c := range nodes {
		if anyKind(c.kind, kinds) {
			out = append(out, c)
		}
	}
	return out
}

func anyKind(k kind.Kind, kinds []kind.Kind) bool {
	for _, want := range kinds {
		if want.Matches(k) {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// stops the walk; Walk reports whether it ran to completion.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

func (n *Node) String() string {
	if n.name == "" {
		return n.Keyword()
	}
	return n.Keyword() + "[" + n.name + "]"
}

func (n *Node) siblings() []*Node {
	if n.owner == nil {
		return []*Node{n}
	}
	return n.owner.siblings()
}

// Index is the absolute position of the node among its siblings.
func (n *Node) Index() int {
	for i, s := range n.siblings() {
		if s == n {
			return i
		}
	}
	return -1
}

// SiblingIndex is the position of the node among siblings of the same kind.
func (n *Node) SiblingIndex() int {
	i := 0
	for _, s := range n.siblings() {
		if s == n {
			return i
		}
		if s.kind == n.kind {
			i++
		}
	}
	return -1
}

// SameKindSiblings returns every sibling of the node's kind, the node
// included.
func (n *Node) SameKindSiblings() []*Node {
	return ofKinds(n.siblings(), []kind.Kind{n.kind})
}

func (n *Node) NextSibling() *Node {
	s := n.siblings()
	if i := n.Index(); i >= 0 && i < len(s)-1 {
		return s[i+1]
	}
	return nil
}

func (n *Node) PreviousSibling() *Node {
	s := n.siblings()
	if i := n.Index(); i >= 1 {
		return s[i-1]
	}
	return nil
}

func (n *Node) FirstSibling() *Node { return n.siblings()[0] }

func (n *Node) LastSibling() *Node {
	s := n.siblings()
	return s[len(s)-1]
}
