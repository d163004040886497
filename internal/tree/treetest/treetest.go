// Package treetest builds small syntax forests for tests without going
// through a real parser.
package treetest

import (
	"github.com/phobologic/treepath/internal/kind"
	"github.com/phobologic/treepath/internal/tree"
)

// N returns an unnamed syntax node.
func N(k kind.Kind, text string, children ...*tree.Syntax) *tree.Syntax {
	return &tree.Syntax{Kind: k, Text: text, Children: children}
}

// Decl returns a syntax node carrying a declared identifier.
func Decl(k kind.Kind, ident, text string, children ...*tree.Syntax) *tree.Syntax {
	s := N(k, text, children...)
	s.Identifier = ident
	return s
}

// Op returns an operator-bearing expression node.
func Op(k kind.Kind, op string, opKind tree.OperatorKind, text string, children ...*tree.Syntax) *tree.Syntax {
	s := N(k, text, children...)
	s.Operator = op
	s.OperatorKind = opKind
	return s
}

// Sample mirrors this source:
//
//	using System;
//	using System.Collections.Generic;
//	namespace Demo
//	{
//	    [Obsolete]
//	    class Widget
//	    {
//	        int count;
//	        string label;
//	        public List<string> Items { get; }
//	        [Test, Serializable]
//	        void Run(int times) { count = count + times; }
//	        int Size() { return count; }
//	    }
//	    class Gadget { }
//	}
func Sample() *tree.Forest {
	return tree.Build(SampleSyntax())
}

// SampleSyntax returns the unannotated roots behind Sample.
func SampleSyntax() []*tree.Syntax {
	field := func(typ, name string) *tree.Syntax {
		return N(kind.Field, typ+" "+name+";",
			N(kind.VariableDeclaration, typ+" "+name,
				N(kind.PredefinedType, typ),
				Decl(kind.VariableDeclarator, name, name)))
	}

	run := Decl(kind.Method, "Run", "[Test, Serializable] void Run(int times) { count = count + times; }",
		N(kind.AttributeList, "[Test, Serializable]",
			N(kind.Attribute, "Test", N(kind.IdentifierName, "Test")),
			N(kind.Attribute, "Serializable", N(kind.IdentifierName, "Serializable"))),
		N(kind.PredefinedType, "void"),
		N(kind.ParameterList, "(int times)",
			Decl(kind.Parameter, "times", "int times", N(kind.PredefinedType, "int"))),
		N(kind.Block, "{ count = count + times; }",
			N(kind.ExpressionStatement, "count = count + times;",
				N(kind.Assignment, "count = count + times",
					N(kind.IdentifierName, "count"),
					Op(kind.Binary, "+", tree.BinaryOperator, "count + times",
						N(kind.IdentifierName, "count"),
						N(kind.IdentifierName, "times"))))))

	size := Decl(kind.Method, "Size", "int Size() { return count; }",
		N(kind.PredefinedType, "int"),
		N(kind.ParameterList, "()"),
		N(kind.Block, "{ return count; }",
			N(kind.ReturnStatement, "return count;",
				N(kind.IdentifierName, "count"))))

	items := Decl(kind.Property, "Items", "public List<string> Items { get; }",
		N(kind.GenericName, "List<string>",
			N(kind.TypeArgumentList, "<string>", N(kind.PredefinedType, "string"))),
		N(kind.AccessorList, "{ get; }", N(kind.AccessorDeclaration, "get;")))

	widget := Decl(kind.Class, "Widget", "[Obsolete] class Widget { ... }",
		N(kind.AttributeList, "[Obsolete]",
			N(kind.Attribute, "Obsolete", N(kind.IdentifierName, "Obsolete"))),
		field("int", "count"),
		field("string", "label"),
		items,
		run,
		size)

	gadget := Decl(kind.Class, "Gadget", "class Gadget { }")

	return []*tree.Syntax{
		N(kind.UsingDirective, "using System;", N(kind.IdentifierName, "System")),
		N(kind.UsingDirective, "using System.Collections.Generic;",
			N(kind.QualifiedName, "System.Collections.Generic",
				N(kind.QualifiedName, "System.Collections",
					N(kind.IdentifierName, "System"),
					N(kind.IdentifierName, "Collections")),
				N(kind.IdentifierName, "Generic"))),
		N(kind.Namespace, "namespace Demo { ... }",
			N(kind.IdentifierName, "Demo"),
			widget,
			gadget),
	}
}
