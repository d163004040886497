package tree

import (
	"strings"

	"github.com/phobologic/treepath/internal/kind"
)

// Forest is the ordered set of top-level nodes of one parsed source. It is
// a query target in its own right.
type Forest struct {
	roots []*Node
}

// Children returns the top-level nodes in source order.
func (f *Forest) Children() []*Node { return f.roots }

// Len is the number of top-level nodes.
func (f *Forest) Len() int { return len(f.roots) }

// Walk visits every node in pre-order until fn returns false.
func (f *Forest) Walk(fn func(*Node) bool) bool {
	for _, r := range f.roots {
		if !r.Walk(fn) {
			return false
		}
	}
	return true
}

// OfKind returns the top-level nodes of kind k or, when recursive is set,
// every such node in the forest. Top-level matches come first, followed by
// the matches below each root in root order.
func (f *Forest) OfKind(k kind.Kind, recursive bool) []*Node {
	return ofKindLevel(f.roots, k, recursive)
}

func ofKindLevel(nodes []*Node, k kind.Kind, recursive bool) []*Node {
	out := ofKinds(nodes, []kind.Kind{k})
	if !recursive {
		return out
	}
	for _, n := range nodes {
		out = append(out, ofKindLevel(n.children, k, true)...)
	}
	return out
}

// Select returns every node satisfying pred, in pre-order.
func (f *Forest) Select(pred func(*Node) bool) []*Node {
	var out []*Node
	f.Walk(func(n *Node) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Contains reports whether n belongs to this forest.
func (f *Forest) Contains(n *Node) bool {
	return n != nil && n.Forest() == f
}

// Count is the total number of nodes in the forest.
func (f *Forest) Count() int {
	c := 0
	f.Walk(func(*Node) bool {
		c++
		return true
	})
	return c
}

func (f *Forest) String() string {
	var b strings.Builder
	for _, r := range f.roots {
		b.WriteString(r.text)
	}
	return b.String()
}
