// Package kind defines the closed set of syntax node kinds and the keywords
// that name them in path expressions.
package kind

import "fmt"

// Kind identifies one distinguishable syntactic construct.
type Kind uint8

// None is the zero value and is reserved: it names no construct and has no
// keyword. Unknown is what unrecognised keywords parse to; no built node
// ever carries it, so such steps never match. Other is assigned to nodes
// the language boundary cannot classify. Any matches every kind.
const (
	None Kind = iota
	Unknown
	Any
	Other

	UsingDirective
	Namespace
	Class
	Struct
	Interface
	Enum
	EnumMember
	IdentifierName
	QualifiedName
	GenericName
	AliasQualifiedName
	PredefinedType
	ArrayType
	ArrayRank
	OmittedArraySize
	Field
	VariableDeclaration
	VariableDeclarator
	EqualsValue
	Property
	AccessorList
	AccessorDeclaration
	AttributeList
	Attribute
	AttributeArgumentList
	AttributeArgument
	AttributeTarget
	Block
	ReturnStatement
	Method
	Constructor
	ConstructorInitializer
	ParameterList
	Parameter
	TypeParameterList
	TypeParameter
	TypeArgumentList
	BaseList
	SimpleBaseType
	ExplicitInterfaceSpecifier
	ArrowExpression
	ExpressionStatement
	LocalDeclaration
	LabeledStatement
	EmptyStatement
	If
	Else
	Switch
	SwitchSection
	CaseLabel
	DefaultLabel
	While
	Do
	For
	ForEach
	Break
	Continue
	Goto
	UsingStatement
	Lock
	Try
	Catch
	CatchDeclaration
	Finally
	Throw
	Invocation
	ArgumentList
	Argument
	BracketedArgumentList
	Assignment
	MemberAccess
	MemberBinding
	ConditionalAccess
	ElementAccess
	Literal
	InterpolatedString
	Interpolation
	InterpolatedText
	PrefixUnary
	PostfixUnary
	Binary
	Parenthesized
	Conditional
	ObjectCreation
	AnonymousObjectCreation
	AnonymousObjectMember
	ArrayCreation
	Initializer
	TypeOf
	DefaultExpression
	Cast
	This
	Base
	Lambda
	Await
	QueryExpression
	QueryBody
	From
	Where
	Select
	NameEquals

	sentinel
)

type entry struct {
	kind    Kind
	name    string
	keyword string
	aliases []string
}

// table is the single translation point between kinds and keywords. The
// first keyword of each entry is canonical and is what Keyword returns.
var table = []entry{
	{Unknown, "Unknown", "unknown", nil},
	{Any, "Any", "*", nil},
	{Other, "Other", "other", nil},
	{UsingDirective, "UsingDirective", "usingdirective", nil},
	{Namespace, "Namespace", "ns", []string{"namespace"}},
	{Class, "Class", "cls", []string{"class"}},
	{Struct, "Struct", "struct", nil},
	{Interface, "Interface", "interface", nil},
	{Enum, "Enum", "enum", nil},
	{EnumMember, "EnumMember", "enummember", nil},
	{IdentifierName, "IdentifierName", "id", []string{"identifier"}},
	{QualifiedName, "QualifiedName", "name", nil},
	{GenericName, "GenericName", "genericname", nil},
	{AliasQualifiedName, "AliasQualifiedName", "alias", nil},
	{PredefinedType, "PredefinedType", "predeftype", []string{"predefinedtype"}},
	{ArrayType, "ArrayType", "arraytype", nil},
	{ArrayRank, "ArrayRank", "arrayrank", nil},
	{OmittedArraySize, "OmittedArraySize", "ommittedarraysize", []string{"omittedarraysize"}},
	{Field, "Field", "field", nil},
	{VariableDeclaration, "VariableDeclaration", "vardeclaration", []string{"variabledeclaration"}},
	{VariableDeclarator, "VariableDeclarator", "vardeclarator", []string{"variabledeclarator"}},
	{EqualsValue, "EqualsValue", "equalsvalue", nil},
	{Property, "Property", "property", nil},
	{AccessorList, "AccessorList", "accessorlist", nil},
	{AccessorDeclaration, "AccessorDeclaration", "accessordeclaration", nil},
	{AttributeList, "AttributeList", "attlist", []string{"attributelist"}},
	{Attribute, "Attribute", "attribute", nil},
	{AttributeArgumentList, "AttributeArgumentList", "attarglist", []string{"attributeargumentlist"}},
	{AttributeArgument, "AttributeArgument", "attarg", []string{"attributeargument"}},
	{AttributeTarget, "AttributeTarget", "atttarget", []string{"attributetarget"}},
	{Block, "Block", "block", nil},
	{ReturnStatement, "ReturnStatement", "return", nil},
	{Method, "Method", "method", nil},
	{Constructor, "Constructor", "constructor", nil},
	{ConstructorInitializer, "ConstructorInitializer", "constructorinit", []string{"constructorinitializer"}},
	{ParameterList, "ParameterList", "paramlist", []string{"parameterlist"}},
	{Parameter, "Parameter", "param", []string{"parameter"}},
	{TypeParameterList, "TypeParameterList", "typeparamlist", []string{"typeparameterlist"}},
	{TypeParameter, "TypeParameter", "typeparam", []string{"typeparameter"}},
	{TypeArgumentList, "TypeArgumentList", "typearg", []string{"typeargument"}},
	{BaseList, "BaseList", "baselist", nil},
	{SimpleBaseType, "SimpleBaseType", "basetype", nil},
	{ExplicitInterfaceSpecifier, "ExplicitInterfaceSpecifier", "explicitinterfacespecifier", nil},
	{ArrowExpression, "ArrowExpression", "arrow", []string{"arrowexpression"}},
	{ExpressionStatement, "ExpressionStatement", "expression", nil},
	{LocalDeclaration, "LocalDeclaration", "localdeclaration", nil},
	{LabeledStatement, "LabeledStatement", "labeledstatement", nil},
	{EmptyStatement, "EmptyStatement", "empty", nil},
	{If, "If", "if", nil},
	{Else, "Else", "else", nil},
	{Switch, "Switch", "switch", nil},
	{SwitchSection, "SwitchSection", "switchselection", []string{"switchsection"}},
	{CaseLabel, "CaseLabel", "case", nil},
	{DefaultLabel, "DefaultLabel", "default", nil},
	{While, "While", "while", nil},
	{Do, "Do", "do", nil},
	{For, "For", "for", nil},
	{ForEach, "ForEach", "foreach", nil},
	{Break, "Break", "break", nil},
	{Continue, "Continue", "continue", nil},
	{Goto, "Goto", "goto", nil},
	{UsingStatement, "UsingStatement", "using", nil},
	{Lock, "Lock", "lock", nil},
	{Try, "Try", "try", nil},
	{Catch, "Catch", "catch", nil},
	{CatchDeclaration, "CatchDeclaration", "catchdeclaration", nil},
	{Finally, "Finally", "finally", nil},
	{Throw, "Throw", "throw", nil},
	{Invocation, "Invocation", "invocation", nil},
	{ArgumentList, "ArgumentList", "arglist", []string{"argumentlist"}},
	{Argument, "Argument", "arg", []string{"argument"}},
	{BracketedArgumentList, "BracketedArgumentList", "brackedarglist", []string{"brackedargumentlist", "bracketedarglist", "bracketedargumentlist"}},
	{Assignment, "Assignment", "assign", []string{"assignment"}},
	{MemberAccess, "MemberAccess", "memberaccess", []string{"membershipaccess"}},
	{MemberBinding, "MemberBinding", "memberbinding", nil},
	{ConditionalAccess, "ConditionalAccess", "conditionalaccess", nil},
	{ElementAccess, "ElementAccess", "elementaccess", nil},
	{Literal, "Literal", "literal", nil},
	{InterpolatedString, "InterpolatedString", "interpolatedstring", nil},
	{Interpolation, "Interpolation", "interpolation", nil},
	{InterpolatedText, "InterpolatedText", "interpolatedtext", nil},
	{PrefixUnary, "PrefixUnary", "prefix", nil},
	{PostfixUnary, "PostfixUnary", "unaryexpression", []string{"postfix"}},
	{Binary, "Binary", "binaryexpression", nil},
	{Parenthesized, "Parenthesized", "parenthesizedexpression", nil},
	{Conditional, "Conditional", "conditionalexpression", nil},
	{ObjectCreation, "ObjectCreation", "new", nil},
	{AnonymousObjectCreation, "AnonymousObjectCreation", "anonymousobjectcreation", nil},
	{AnonymousObjectMember, "AnonymousObjectMember", "anonymousobjectmemberdeclarator", nil},
	{ArrayCreation, "ArrayCreation", "arraycreation", nil},
	{Initializer, "Initializer", "initexp", nil},
	{TypeOf, "TypeOf", "typeof", nil},
	{DefaultExpression, "DefaultExpression", "defaultexpression", nil},
	{Cast, "Cast", "cast", nil},
	{This, "This", "this", nil},
	{Base, "Base", "base", nil},
	{Lambda, "Lambda", "lambda", nil},
	{Await, "Await", "await", nil},
	{QueryExpression, "QueryExpression", "query", nil},
	{QueryBody, "QueryBody", "querybody", nil},
	{From, "From", "from", nil},
	{Where, "Where", "where", nil},
	{Select, "Select", "select", nil},
	{NameEquals, "NameEquals", "nameequals", nil},
}

var (
	byKeyword = map[string]Kind{}
	byKind    = map[Kind]*entry{}
)

func init() {
	for i := range table {
		e := &table[i]
		if _, dup := byKind[e.kind]; dup {
			panic(fmt.Sprintf("kind: duplicate table entry for %d", e.kind))
		}
		byKind[e.kind] = e
		for _, kw := range append([]string{e.keyword}, e.aliases...) {
			if other, dup := byKeyword[kw]; dup {
				panic(fmt.Sprintf("kind: keyword %q maps to both %s and %s", kw, byKind[other].name, e.name))
			}
			byKeyword[kw] = e.kind
		}
	}
}

// Parse maps a path keyword to its kind. Matching is case-sensitive; any
// keyword outside the vocabulary yields Unknown rather than an error.
func Parse(keyword string) Kind {
	if k, ok := byKeyword[keyword]; ok {
		return k
	}
	return Unknown
}

// Keyword returns the canonical keyword of k. It panics for None and for
// values outside the enumeration: those indicate a taxonomy bug.
func Keyword(k Kind) string {
	kw, ok := Lookup(k)
	if !ok {
		panic(fmt.Sprintf("kind: no keyword defined for kind %d", uint8(k)))
	}
	return kw
}

// Lookup is the non-panicking form of Keyword.
func Lookup(k Kind) (string, bool) {
	e, ok := byKind[k]
	if !ok {
		return "", false
	}
	return e.keyword, true
}

// Aliases returns the alternative keywords accepted for k, excluding the
// canonical one.
func Aliases(k Kind) []string {
	e, ok := byKind[k]
	if !ok {
		return nil
	}
	out := make([]string, len(e.aliases))
	copy(out, e.aliases)
	return out
}

// All returns every defined kind except None, in declaration order.
func All() []Kind {
	out := make([]Kind, 0, len(table))
	for k := Unknown; k < sentinel; k++ {
		if _, ok := byKind[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// Valid reports whether k is a defined kind.
func (k Kind) Valid() bool {
	_, ok := byKind[k]
	return ok
}

// Matches reports whether a node of kind other satisfies a filter of kind k.
func (k Kind) Matches(other Kind) bool {
	return k == Any || k == other
}

func (k Kind) String() string {
	if e, ok := byKind[k]; ok {
		return e.name
	}
	if k == None {
		return "None"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}
