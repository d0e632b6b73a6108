package jsast

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// ErrParseDegraded indicates the source could not be parsed cleanly. Callers
// treat it as "no functions found".
var ErrParseDegraded = errors.New("parse degraded")

// Grammar names the tree-sitter grammar used for a file.
type Grammar string

const (
	GrammarTypeScript Grammar = "typescript"
	GrammarTSX        Grammar = "tsx"
)

// GrammarFor picks the grammar from the filename extension. Plain TypeScript
// files use the TypeScript grammar so that "<T>(x) => x" generics parse; every
// other ECMAScript file uses TSX, which also accepts JSX.
func GrammarFor(filename string) Grammar {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ts", ".mts", ".cts":
		return GrammarTypeScript
	default:
		return GrammarTSX
	}
}

func (g Grammar) language() *sitter.Language {
	if g == GrammarTypeScript {
		return sitter.NewLanguage(typescript.LanguageTypescript())
	}
	return sitter.NewLanguage(typescript.LanguageTSX())
}

// Parse parses source and returns the lowered program node. Any syntax error
// or missing token in the tree yields ErrParseDegraded.
func Parse(source []byte, filename string) (*Node, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	grammar := GrammarFor(filename)
	if err := parser.SetLanguage(grammar.language()); err != nil {
		return nil, fmt.Errorf("failed to load %s grammar: %w", grammar, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("%w: %s: parser returned no tree", ErrParseDegraded, filename)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%w: %s: syntax errors", ErrParseDegraded, filename)
	}

	l := &lowerer{source: source}
	return l.lower(root), nil
}

// lowerer converts tree-sitter nodes into Nodes. It borrows the source bytes
// for the duration of one Parse call.
type lowerer struct {
	source []byte
}

func (l *lowerer) lower(n *sitter.Node) *Node {
	if n == nil {
		return nil
	}

	out := &Node{
		Type: n.Kind(),
		Span: Span{Start: int(n.StartByte()), End: int(n.EndByte())},
	}

	switch n.Kind() {
	case "program":
		out.Kind = KindProgram
		out.Children = l.namedChildren(n)

	case "function_declaration", "generator_function_declaration":
		out.Kind = KindFunctionDeclaration
		out.Name = l.text(n.ChildByFieldName("name"))
		l.lowerCallable(n, out)

	case "function_expression", "function", "generator_function":
		out.Kind = KindFunctionExpression
		out.Name = l.text(n.ChildByFieldName("name"))
		l.lowerCallable(n, out)

	case "arrow_function":
		out.Kind = KindArrowFunction
		if p := n.ChildByFieldName("parameter"); p != nil {
			out.Params = []*Node{l.lower(p)}
		}
		l.lowerCallable(n, out)

	case "method_definition":
		out.Kind = KindMethodDefinition
		out.Name = l.keyName(n.ChildByFieldName("name"))
		l.lowerCallable(n, out)

	case "public_field_definition", "field_definition":
		out.Kind = KindClassProperty
		key := n.ChildByFieldName("name")
		if key == nil {
			key = n.ChildByFieldName("property")
		}
		out.Name = l.keyName(key)
		out.Value = l.lower(n.ChildByFieldName("value"))

	case "pair":
		out.Kind = KindObjectProperty
		out.Name = l.keyName(n.ChildByFieldName("key"))
		out.Value = l.lower(n.ChildByFieldName("value"))

	case "lexical_declaration", "variable_declaration":
		out.Kind = KindVariableDeclaration
		out.Children = l.namedChildren(n)

	case "variable_declarator":
		out.Kind = KindVariableDeclarator
		if name := n.ChildByFieldName("name"); name != nil {
			if name.Kind() == "identifier" {
				out.Name = l.text(name)
			} else {
				out.Children = []*Node{l.lower(name)}
			}
		}
		out.Value = l.lower(n.ChildByFieldName("value"))

	case "statement_block":
		out.Kind = KindBlock
		out.Children = l.namedChildren(n)

	default:
		out.Kind = KindOther
		out.Children = l.namedChildren(n)
	}

	return out
}

// lowerCallable fills the parameter list and body of a function-like node.
func (l *lowerer) lowerCallable(n *sitter.Node, out *Node) {
	if params := n.ChildByFieldName("parameters"); params != nil {
		out.Params = append(out.Params, l.namedChildren(params)...)
	}
	out.Body = l.lower(n.ChildByFieldName("body"))
}

func (l *lowerer) namedChildren(n *sitter.Node) []*Node {
	count := n.NamedChildCount()
	if count == 0 {
		return nil
	}
	children := make([]*Node, 0, count)
	for i := uint(0); i < count; i++ {
		if child := l.lower(n.NamedChild(i)); child != nil {
			children = append(children, child)
		}
	}
	return children
}

// keyName returns the name of a method/property key. String keys are
// unquoted, private names lose their '#', and computed keys resolve only
// when they wrap an identifier or a string literal.
func (l *lowerer) keyName(key *sitter.Node) string {
	if key == nil {
		return ""
	}

	switch key.Kind() {
	case "property_identifier", "identifier", "number":
		return l.text(key)
	case "private_property_identifier":
		return strings.TrimPrefix(l.text(key), "#")
	case "string":
		return unquote(l.text(key))
	case "computed_property_name":
		if key.NamedChildCount() != 1 {
			return ""
		}
		inner := key.NamedChild(0)
		switch inner.Kind() {
		case "identifier", "string":
			return l.keyName(inner)
		}
	}
	return ""
}

func (l *lowerer) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(l.source[n.StartByte():n.EndByte()])
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'' || first == '`') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return s
}
