// Package jsast lowers a tree-sitter TypeScript/TSX syntax tree into a small
// typed AST and walks it through a fixed set of child slots.
//
// Only the constructs needed to find function bodies get their own kinds;
// every other syntax node becomes KindOther and keeps its named children, so
// nested functions stay reachable.
package jsast

// Kind tags a Node.
type Kind int

const (
	KindOther Kind = iota
	KindProgram
	KindFunctionDeclaration
	KindFunctionExpression
	KindArrowFunction
	KindMethodDefinition
	KindClassProperty
	KindObjectProperty
	KindVariableDeclaration
	KindVariableDeclarator
	KindBlock
)

var kindNames = map[Kind]string{
	KindOther:               "other",
	KindProgram:             "program",
	KindFunctionDeclaration: "function_declaration",
	KindFunctionExpression:  "function_expression",
	KindArrowFunction:       "arrow_function",
	KindMethodDefinition:    "method_definition",
	KindClassProperty:       "class_property",
	KindObjectProperty:      "object_property",
	KindVariableDeclaration: "variable_declaration",
	KindVariableDeclarator:  "variable_declarator",
	KindBlock:               "block",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsFunction reports whether k is a function-valued expression or declaration.
func (k Kind) IsFunction() bool {
	switch k {
	case KindFunctionDeclaration, KindFunctionExpression, KindArrowFunction, KindMethodDefinition:
		return true
	}
	return false
}

// Span is a half-open byte range [Start, End) into the parsed source.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether o lies entirely within s.
func (s Span) Contains(o Span) bool {
	return o.Start >= s.Start && o.End <= s.End
}

// Node is one element of the lowered tree.
//
// Slot usage per kind:
//
//	FunctionDeclaration  Name, Params, Body
//	FunctionExpression   Name (optional), Params, Body
//	ArrowFunction        Params, Body (block or expression)
//	MethodDefinition     Name (key), Params, Body
//	ClassProperty        Name (key), Value
//	ObjectProperty       Name (key), Value
//	VariableDeclaration  Children (declarators)
//	VariableDeclarator   Name (identifier binding), Value, Children (destructuring pattern)
//	Block, Program       Children (statements)
//	Other                Children (named syntax children)
type Node struct {
	Kind Kind
	// Type is the tree-sitter node type the node was lowered from.
	Type string
	Span Span
	Name string

	Params   []*Node
	Body     *Node
	Value    *Node
	Children []*Node
}

// HasBlockBody reports whether n is a function whose body is a statement block.
func (n *Node) HasBlockBody() bool {
	return n != nil && n.Kind.IsFunction() && n.Body != nil && n.Body.Kind == KindBlock
}
