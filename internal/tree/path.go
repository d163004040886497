package tree

import (
	"strconv"
	"strings"
)

// Path returns the canonical path expression that locates n from the root
// of its forest: one keyword per level, with a [ordinal] guard whenever the
// node is not the first sibling of its kind.
func (n *Node) Path() string {
	return n.path(false)
}

// NamedPath is like Path but guards every named level with [name] instead
// of its ordinal. Unnamed levels fall back to the canonical form.
func (n *Node) NamedPath() string {
	return n.path(true)
}

func (n *Node) path(named bool) string {
	var segs []string
	for cur := n; cur != nil; cur = cur.Parent() {
		segs = append(segs, cur.segment(named))
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return strings.Join(segs, "/")
}

func (n *Node) segment(named bool) string {
	kw := n.Keyword()
	if named && n.name != "" {
		return kw + "[" + n.name + "]"
	}
	if i := n.SiblingIndex(); i > 0 {
		return kw + "[" + strconv.Itoa(i) + "]"
	}
	return kw
}
