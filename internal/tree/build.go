package tree

import (
	"strings"

	"github.com/phobologic/treepath/internal/kind"
)

// identifierKinds take their name from the declared identifier token.
var identifierKinds = map[kind.Kind]bool{
	kind.Class:              true,
	kind.Struct:             true,
	kind.Interface:          true,
	kind.Enum:               true,
	kind.EnumMember:         true,
	kind.Method:             true,
	kind.Constructor:        true,
	kind.Property:           true,
	kind.VariableDeclarator: true,
	kind.Parameter:          true,
	kind.TypeParameter:      true,
}

var nameKinds = []kind.Kind{
	kind.QualifiedName,
	kind.IdentifierName,
	kind.GenericName,
	kind.AliasQualifiedName,
}

// attributeOwners are the only kinds whose attributes are collected.
var attributeOwners = map[kind.Kind]bool{
	kind.Class:    true,
	kind.Method:   true,
	kind.Property: true,
}

// Build links the syntax roots into a forest and annotates it. Annotation
// runs three passes, each over the whole forest before the next starts:
// names and operators, then return types, then attributes.
//
// Syntax kinds that cannot appear on a real node (None, Unknown, Any) are
// stored as kind.Other.
func Build(roots []*Syntax) *Forest {
	f := &Forest{roots: make([]*Node, 0, len(roots))}
	for _, s := range roots {
		f.roots = append(f.roots, newNode(s, RootCollection{Forest: f}))
	}

	f.Walk(func(n *Node) bool {
		n.resolveName()
		return true
	})
	f.Walk(func(n *Node) bool {
		n.resolveReturnType()
		return true
	})
	f.Walk(func(n *Node) bool {
		n.resolveAttributes()
		return true
	})
	return f
}

func newNode(s *Syntax, owner Owner) *Node {
	k := s.Kind
	switch k {
	case kind.None, kind.Unknown, kind.Any:
		k = kind.Other
	}
	n := &Node{
		kind:         k,
		ident:        s.Identifier,
		operator:     s.Operator,
		operatorKind: s.OperatorKind,
		text:         s.Text,
		start:        s.Start,
		end:          s.End,
		startLine:    s.StartLine,
		endLine:      s.EndLine,
		leading:      s.Leading,
		trailing:     s.Trailing,
		owner:        owner,
	}
	if len(s.Children) > 0 {
		n.children = make([]*Node, 0, len(s.Children))
		for _, c := range s.Children {
			n.children = append(n.children, newNode(c, ParentNode{Node: n}))
		}
	}
	return n
}

func (n *Node) resolveName() {
	var name string
	switch {
	case identifierKinds[n.kind]:
		name = n.ident
	case n.kind == kind.Namespace:
		if c := n.ChildOfKind(nameKinds...); c != nil {
			name = c.text
		}
	case n.kind == kind.Field:
		if d := n.ChildOfKind(kind.VariableDeclaration); d != nil {
			if v := d.ChildOfKind(kind.VariableDeclarator); v != nil {
				name = v.ident
			}
		}
	case n.kind == kind.VariableDeclaration:
		if v := n.ChildOfKind(kind.VariableDeclarator); v != nil {
			name = v.ident
		}
	case n.kind == kind.IdentifierName:
		name = n.text
	case n.kind == kind.UsingDirective:
		if c := n.ChildOfKind(kind.QualifiedName); c != nil {
			name = c.text
		} else if c := n.ChildOfKind(kind.IdentifierName); c != nil {
			name = c.text
		}
	case n.kind == kind.Attribute:
		if c := n.ChildOfKind(nameKinds...); c != nil {
			name = c.text
		}
	}
	if strings.TrimSpace(name) == "" {
		name = ""
	}
	n.name = name
}

// resolveReturnType writes a type reference's text onto its parent; the
// last such child wins.
func (n *Node) resolveReturnType() {
	switch n.kind {
	case kind.GenericName, kind.PredefinedType, kind.IdentifierName:
		if p := n.Parent(); p != nil {
			p.returnType = n.text
		}
	}
}

func (n *Node) resolveAttributes() {
	if !attributeOwners[n.kind] {
		return
	}
	for _, list := range n.ChildrenOfKind(kind.AttributeList) {
		for _, a := range list.ChildrenOfKind(kind.Attribute) {
			if a.name != "" && !n.HasAttribute(a.name) {
				n.attributes = append(n.attributes, a.name)
			}
		}
	}
}
