package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"github.com/phobologic/treepath/internal/kind"
	"github.com/phobologic/treepath/internal/tree"
)

func init() {
	Languages["csharp"] = &Language{
		Name:       "csharp",
		Extensions: []string{".cs"},
		lang:       csharp.GetLanguage(),
		Classify:   csharpClassify,
		Operator:   csharpOperator,
		Wrap: map[string]map[string]kind.Kind{
			"if_statement": {"alternative": kind.Else},
		},
		Root: "compilation_unit",
	}
}

// csharpKinds maps grammar node types to kinds. Several grammar revisions
// are covered, hence the occasional pair of spellings.
var csharpKinds = map[string]kind.Kind{
	"using_directive":                      kind.UsingDirective,
	"namespace_declaration":                kind.Namespace,
	"file_scoped_namespace_declaration":    kind.Namespace,
	"class_declaration":                    kind.Class,
	"record_declaration":                   kind.Class,
	"struct_declaration":                   kind.Struct,
	"record_struct_declaration":            kind.Struct,
	"interface_declaration":                kind.Interface,
	"enum_declaration":                     kind.Enum,
	"enum_member_declaration":              kind.EnumMember,
	"identifier":                           kind.IdentifierName,
	"identifier_name":                      kind.IdentifierName,
	"qualified_name":                       kind.QualifiedName,
	"generic_name":                         kind.GenericName,
	"alias_qualified_name":                 kind.AliasQualifiedName,
	"predefined_type":                      kind.PredefinedType,
	"array_type":                           kind.ArrayType,
	"array_rank_specifier":                 kind.ArrayRank,
	"omitted_array_size_expression":        kind.OmittedArraySize,
	"field_declaration":                    kind.Field,
	"event_field_declaration":              kind.Field,
	"variable_declaration":                 kind.VariableDeclaration,
	"variable_declarator":                  kind.VariableDeclarator,
	"equals_value_clause":                  kind.EqualsValue,
	"property_declaration":                 kind.Property,
	"accessor_list":                        kind.AccessorList,
	"accessor_declaration":                 kind.AccessorDeclaration,
	"attribute_list":                       kind.AttributeList,
	"attribute":                            kind.Attribute,
	"attribute_argument_list":              kind.AttributeArgumentList,
	"attribute_argument":                   kind.AttributeArgument,
	"attribute_target_specifier":           kind.AttributeTarget,
	"block":                                kind.Block,
	"return_statement":                     kind.ReturnStatement,
	"method_declaration":                   kind.Method,
	"constructor_declaration":              kind.Constructor,
	"constructor_initializer":              kind.ConstructorInitializer,
	"parameter_list":                       kind.ParameterList,
	"parameter":                            kind.Parameter,
	"type_parameter_list":                  kind.TypeParameterList,
	"type_parameter":                       kind.TypeParameter,
	"type_argument_list":                   kind.TypeArgumentList,
	"base_list":                            kind.BaseList,
	"simple_base_type":                     kind.SimpleBaseType,
	"explicit_interface_specifier":         kind.ExplicitInterfaceSpecifier,
	"arrow_expression_clause":              kind.ArrowExpression,
	"expression_statement":                 kind.ExpressionStatement,
	"local_declaration_statement":          kind.LocalDeclaration,
	"labeled_statement":                    kind.LabeledStatement,
	"empty_statement":                      kind.EmptyStatement,
	"if_statement":                         kind.If,
	"else_clause":                          kind.Else,
	"switch_statement":                     kind.Switch,
	"switch_section":                       kind.SwitchSection,
	"case_switch_label":                    kind.CaseLabel,
	"case_pattern_switch_label":            kind.CaseLabel,
	"default_switch_label":                 kind.DefaultLabel,
	"while_statement":                      kind.While,
	"do_statement":                         kind.Do,
	"for_statement":                        kind.For,
	"for_each_statement":                   kind.ForEach,
	"foreach_statement":                    kind.ForEach,
	"break_statement":                      kind.Break,
	"continue_statement":                   kind.Continue,
	"goto_statement":                       kind.Goto,
	"using_statement":                      kind.UsingStatement,
	"lock_statement":                       kind.Lock,
	"try_statement":                        kind.Try,
	"catch_clause":                         kind.Catch,
	"catch_declaration":                    kind.CatchDeclaration,
	"finally_clause":                       kind.Finally,
	"throw_statement":                      kind.Throw,
	"throw_expression":                     kind.Throw,
	"invocation_expression":                kind.Invocation,
	"argument_list":                        kind.ArgumentList,
	"argument":                             kind.Argument,
	"bracketed_argument_list":              kind.BracketedArgumentList,
	"assignment_expression":                kind.Assignment,
	"member_access_expression":             kind.MemberAccess,
	"member_binding_expression":            kind.MemberBinding,
	"conditional_access_expression":        kind.ConditionalAccess,
	"element_access_expression":            kind.ElementAccess,
	"integer_literal":                      kind.Literal,
	"real_literal":                         kind.Literal,
	"string_literal":                       kind.Literal,
	"verbatim_string_literal":              kind.Literal,
	"raw_string_literal":                   kind.Literal,
	"character_literal":                    kind.Literal,
	"boolean_literal":                      kind.Literal,
	"null_literal":                         kind.Literal,
	"interpolated_string_expression":       kind.InterpolatedString,
	"interpolation":                        kind.Interpolation,
	"interpolated_string_text":             kind.InterpolatedText,
	"string_content":                       kind.InterpolatedText,
	"prefix_unary_expression":              kind.PrefixUnary,
	"postfix_unary_expression":             kind.PostfixUnary,
	"binary_expression":                    kind.Binary,
	"parenthesized_expression":             kind.Parenthesized,
	"conditional_expression":               kind.Conditional,
	"object_creation_expression":           kind.ObjectCreation,
	"implicit_object_creation_expression":  kind.ObjectCreation,
	"anonymous_object_creation_expression": kind.AnonymousObjectCreation,
	"anonymous_object_member_declarator":   kind.AnonymousObjectMember,
	"array_creation_expression":            kind.ArrayCreation,
	"implicit_array_creation_expression":   kind.ArrayCreation,
	"initializer_expression":               kind.Initializer,
	"typeof_expression":                    kind.TypeOf,
	"default_expression":                   kind.DefaultExpression,
	"cast_expression":                      kind.Cast,
	"this_expression":                      kind.This,
	"this":                                 kind.This,
	"base_expression":                      kind.Base,
	"base":                                 kind.Base,
	"lambda_expression":                    kind.Lambda,
	"anonymous_method_expression":          kind.Lambda,
	"await_expression":                     kind.Await,
	"query_expression":                     kind.QueryExpression,
	"query_body":                           kind.QueryBody,
	"from_clause":                          kind.From,
	"where_clause":                         kind.Where,
	"select_clause":                        kind.Select,
	"name_equals":                          kind.NameEquals,
}

// csharpSplice are grammar wrappers with no counterpart in the kind set.
var csharpSplice = map[string]bool{
	"declaration_list":             true,
	"enum_member_declaration_list": true,
	"switch_body":                  true,
	"global_statement":             true,
	"preproc_if":                   true,
	"preproc_elif":                 true,
	"preproc_else":                 true,
	"ERROR":                        true,
}

var csharpSkip = map[string]bool{
	"modifier":  true,
	"modifiers": true,
}

// csharpLeaves keep their text but not their inner tokens.
var csharpLeaves = map[kind.Kind]bool{
	kind.Literal:        true,
	kind.PredefinedType: true,
}

// csharpDeclarations own a declared identifier, found in the "name" field
// or, for grammars without fields, as the first direct identifier.
var csharpDeclarations = map[string]bool{
	"class_declaration":         true,
	"record_declaration":        true,
	"struct_declaration":        true,
	"record_struct_declaration": true,
	"interface_declaration":     true,
	"enum_declaration":          true,
	"enum_member_declaration":   true,
	"method_declaration":        true,
	"constructor_declaration":   true,
	"destructor_declaration":    true,
	"property_declaration":      true,
	"event_declaration":         true,
	"delegate_declaration":      true,
	"local_function_statement":  true,
	"variable_declarator":       true,
	"parameter":                 true,
	"type_parameter":            true,
	"catch_declaration":         true,
	"labeled_statement":         true,
	"for_each_statement":        true,
	"foreach_statement":         true,
	"from_clause":               true,
}

// csharpPositional are declarations whose first identifier is the name
// even when the grammar has no name field.
var csharpPositional = map[string]bool{
	"variable_declarator":     true,
	"enum_member_declaration": true,
	"type_parameter":          true,
	"labeled_statement":       true,
}

var csharpDirectives = map[string]tree.TriviaKind{
	"preproc_region":      tree.RegionDirective,
	"region_directive":    tree.RegionDirective,
	"preproc_endregion":   tree.EndRegionDirective,
	"endregion_directive": tree.EndRegionDirective,
	"if_directive":        tree.IfDirective,
	"elif_directive":      tree.ElseDirective,
	"else_directive":      tree.ElseDirective,
	"endif_directive":     tree.EndIfDirective,
	"preproc_pragma":      tree.PragmaDirective,
	"pragma_directive":    tree.PragmaDirective,
	"preproc_line":        tree.LineDirective,
	"line_directive":      tree.LineDirective,
	"disabled_text":       tree.DisabledText,
}

func csharpClassify(node *sitter.Node, ctx Context, source []byte) Disposition {
	typ := node.Type()

	if typ == "comment" {
		return Disposition{Action: Comment, Trivia: commentKind(NodeText(node, source))}
	}
	if tk, ok := csharpDirectives[typ]; ok {
		return Disposition{Action: Comment, Trivia: tk}
	}
	if isDirective(typ) {
		return Disposition{Action: Comment, Trivia: tree.UnknownTrivia}
	}
	if ctx.Field == "condition" && strings.HasPrefix(ctx.ParentType, "preproc_") {
		return Disposition{Action: Skip}
	}
	if csharpSkip[typ] {
		return Disposition{Action: Skip}
	}
	if csharpSplice[typ] {
		return Disposition{Action: Splice}
	}
	if typ == "identifier" && csharpDeclarations[ctx.ParentType] && !ctx.Named {
		if ctx.Field == "name" || (ctx.Field == "" && csharpPositional[ctx.ParentType]) {
			return Disposition{Action: Name}
		}
	}

	k, ok := csharpKinds[typ]
	if !ok {
		return Disposition{Action: Keep, Kind: kind.Other}
	}
	return Disposition{Action: Keep, Kind: k, Leaf: csharpLeaves[k]}
}

// isDirective reports preprocessor lines the directive table does not name.
func isDirective(typ string) bool {
	if strings.HasPrefix(typ, "preproc_") {
		return !csharpSplice[typ]
	}
	return strings.HasSuffix(typ, "_directive") && typ != "using_directive"
}

func commentKind(text string) tree.TriviaKind {
	switch {
	case strings.HasPrefix(text, "///"), strings.HasPrefix(text, "/**"):
		return tree.DocumentationComment
	case strings.HasPrefix(text, "//"):
		return tree.SingleLineComment
	case strings.HasPrefix(text, "/*"):
		return tree.MultiLineComment
	default:
		return tree.UnknownTrivia
	}
}

// csharpOperator reads the operator token of binary, prefix and postfix
// expressions.
func csharpOperator(node *sitter.Node, source []byte) (string, tree.OperatorKind) {
	switch node.Type() {
	case "binary_expression":
		if op := node.ChildByFieldName("operator"); op != nil {
			return NodeText(op, source), tree.BinaryOperator
		}
		for i := 1; i < int(node.ChildCount())-1; i++ {
			if c := node.Child(i); !c.IsNamed() {
				return NodeText(c, source), tree.BinaryOperator
			}
		}
	case "prefix_unary_expression":
		for i := 0; i < int(node.ChildCount()); i++ {
			if c := node.Child(i); !c.IsNamed() {
				return NodeText(c, source), tree.PrefixOperator
			}
		}
	case "postfix_unary_expression":
		for i := int(node.ChildCount()) - 1; i >= 0; i-- {
			if c := node.Child(i); !c.IsNamed() {
				return NodeText(c, source), tree.PostfixOperator
			}
		}
	}
	return "", tree.NoOperator
}
