package query

import (
	"github.com/phobologic/treepath/internal/tree"
)

// Target is anything whose children an expression can be resolved against:
// a *tree.Forest or a *tree.Node.
type Target interface {
	Children() []*tree.Node
}

// Filter returns the nodes that match s, in their original order. Kind is
// checked first; an index step then keeps only the node at that ordinal
// among the kind matches, and yields nothing when out of range.
func Filter(nodes []*tree.Node, s Step) ([]*tree.Node, error) {
	if !s.valid() {
		return nil, ErrInvalidStep
	}
	return filter(nodes, s), nil
}

func filter(nodes []*tree.Node, s Step) []*tree.Node {
	if s.disc == ByIndexDiscriminator {
		ordinal := 0
		for _, n := range nodes {
			if !s.kind.Matches(n.Kind()) {
				continue
			}
			if ordinal == s.index {
				return []*tree.Node{n}
			}
			ordinal++
		}
		return nil
	}
	var out []*tree.Node
	for _, n := range nodes {
		if matches(n, s) {
			out = append(out, n)
		}
	}
	return out
}

// matches applies every discriminator except index, which depends on the
// node's position rather than the node.
func matches(n *tree.Node, s Step) bool {
	if !s.kind.Matches(n.Kind()) {
		return false
	}
	switch s.disc {
	case ByAttributeDiscriminator:
		return n.HasAttribute(s.text)
	case ByNameDiscriminator:
		return n.Name() == s.text
	case ByReturnTypeDiscriminator:
		return n.ReturnTypeName() == s.text
	default:
		return true
	}
}

func firstMatch(nodes []*tree.Node, s Step) *tree.Node {
	if s.disc == ByIndexDiscriminator {
		if m := filter(nodes, s); len(m) > 0 {
			return m[0]
		}
		return nil
	}
	for _, n := range nodes {
		if matches(n, s) {
			return n
		}
	}
	return nil
}

// resolve follows expr from nodes, taking the first match at every level.
// An empty expr resolves to nothing.
func resolve(nodes []*tree.Node, expr Expr) *tree.Node {
	var cur *tree.Node
	for i, s := range expr {
		if i > 0 {
			nodes = cur.Children()
		}
		cur = firstMatch(nodes, s)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// First resolves expr against target and returns the node it selects, or
// nil. Every step takes the first match in source order. An empty expr
// selects target itself when it is a node and nothing when it is a forest.
func First(target Target, expr Expr) (*tree.Node, error) {
	if err := expr.Validate(); err != nil {
		return nil, err
	}
	if len(expr) == 0 {
		if n, ok := target.(*tree.Node); ok {
			return n, nil
		}
		return nil, nil
	}
	return resolve(target.Children(), expr), nil
}

// All is First, except that the last step returns every match instead of
// only the first.
func All(target Target, expr Expr) ([]*tree.Node, error) {
	if err := expr.Validate(); err != nil {
		return nil, err
	}
	if len(expr) == 0 {
		if n, ok := target.(*tree.Node); ok {
			return []*tree.Node{n}, nil
		}
		return nil, nil
	}
	nodes := target.Children()
	if head := expr[:len(expr)-1]; len(head) > 0 {
		parent := resolve(nodes, head)
		if parent == nil {
			return nil, nil
		}
		nodes = parent.Children()
	}
	return filter(nodes, expr[len(expr)-1]), nil
}

// Find parses text and resolves it with First.
func Find(target Target, text string) (*tree.Node, error) {
	expr, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return First(target, expr)
}

// FindAll parses text and resolves it with All.
func FindAll(target Target, text string) ([]*tree.Node, error) {
	expr, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return All(target, expr)
}

// Deep returns every location in f where expr resolves, using the forest
// and the children of every node as independent starting points. Results
// are ordered: the forest-level match, then matches from each top-level
// node, then matches found while descending. A context yields at most one
// node; the same node is not suppressed if several contexts reach it.
func Deep(f *tree.Forest, expr Expr) ([]*tree.Node, error) {
	if err := expr.Validate(); err != nil {
		return nil, err
	}
	var out []*tree.Node
	if n := resolve(f.Children(), expr); n != nil {
		out = append(out, n)
	}
	for _, r := range f.Children() {
		if n := resolve(r.Children(), expr); n != nil {
			out = append(out, n)
		}
	}
	for _, r := range f.Children() {
		out = deepChildren(r, expr, out)
	}
	return out, nil
}

func deepChildren(n *tree.Node, expr Expr, out []*tree.Node) []*tree.Node {
	for _, c := range n.Children() {
		if m := resolve(c.Children(), expr); m != nil {
			out = append(out, m)
		}
	}
	for _, c := range n.Children() {
		out = deepChildren(c, expr, out)
	}
	return out
}

// DeepSearch parses text and runs Deep.
func DeepSearch(f *tree.Forest, text string) ([]*tree.Node, error) {
	expr, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return Deep(f, expr)
}
