package ast

// Position is a location in a source file. Line and Column are 1-based;
// Byte is the 0-based byte offset into the file.
type Position struct {
	Line   int
	Column int
	Byte   int
}

// Range is a half-open span of source text.
type Range struct {
	Start Position
	End   Position
}

// Contains reports whether the byte offset falls inside the range.
func (r Range) Contains(byteOffset int) bool {
	return byteOffset >= r.Start.Byte && byteOffset < r.End.Byte
}

// NodeKind identifies the concrete type of a Node.
type NodeKind int

const (
	KindModule NodeKind = iota
	KindClassDef
	KindFunctionDef
	KindParameter
	KindAssign
	KindName
	KindAttribute
	KindCall
	KindSubscript
	KindString
	KindNumber
	KindImport
	KindImportFrom
	KindImportedName
	KindModulePath
	KindExprStmt
	KindReturn
)

// Node is the interface implemented by every node in the parse tree.
// The tree is immutable after parsing; analysis passes attach information
// in side tables keyed by node identity, never on the nodes themselves.
type Node interface {
	Kind() NodeKind
	Range() Range
	Parent() Node
	// SetParent wires the parent link. Only the parser calls this while
	// building the tree.
	SetParent(Node)
}

// NodeBase carries the range and parent link shared by all nodes.
// The parser wires Up when it builds the tree.
type NodeBase struct {
	Rng Range
	Up  Node
}

func (b *NodeBase) Range() Range     { return b.Rng }
func (b *NodeBase) Parent() Node     { return b.Up }
func (b *NodeBase) SetParent(p Node) { b.Up = p }

// ModuleNode is the root of every parsed file.
type ModuleNode struct {
	NodeBase
	Path      string // workspace-relative file path
	Body      []Node
	DocString string
}

func (n *ModuleNode) Kind() NodeKind { return KindModule }

// ClassDefNode represents a class definition.
type ClassDefNode struct {
	NodeBase
	Name       *NameNode
	Bases      []Node
	Decorators []Node
	Body       []Node
	DocString  string
}

func (n *ClassDefNode) Kind() NodeKind { return KindClassDef }

// FunctionDefNode represents a function or method definition.
type FunctionDefNode struct {
	NodeBase
	Name             *NameNode
	Params           []*ParameterNode
	ReturnAnnotation Node
	Decorators       []Node
	Body             []Node
	DocString        string
	IsAsync          bool
	IsGenerator      bool // body contains a yield expression
}

func (n *FunctionDefNode) Kind() NodeKind { return KindFunctionDef }

// ParameterNode is a single formal parameter.
type ParameterNode struct {
	NodeBase
	Name       *NameNode
	Annotation Node // optional
	Default    Node // optional
}

func (n *ParameterNode) Kind() NodeKind { return KindParameter }

// AssignNode covers plain and annotated assignments with a single target.
type AssignNode struct {
	NodeBase
	Target     Node
	Annotation Node // optional
	Value      Node // optional (bare annotation statements have none)
}

func (n *AssignNode) Kind() NodeKind { return KindAssign }

// NameNode is a single identifier occurrence.
type NameNode struct {
	NodeBase
	Value string
}

func (n *NameNode) Kind() NodeKind { return KindName }

// AttributeNode is a member access expression (base.attr).
type AttributeNode struct {
	NodeBase
	Base Node
	Attr *NameNode
}

func (n *AttributeNode) Kind() NodeKind { return KindAttribute }

// CallNode is a call expression.
type CallNode struct {
	NodeBase
	Func Node
	Args []Node
}

func (n *CallNode) Kind() NodeKind { return KindCall }

// SubscriptNode is an index expression (base[index]), which in annotation
// position denotes a generic type application.
type SubscriptNode struct {
	NodeBase
	Base  Node
	Index []Node
}

func (n *SubscriptNode) Kind() NodeKind { return KindSubscript }

// StringNode is a string literal. When the literal appears in annotation
// position it may wrap a forward-referenced type expression; the parser
// re-parses the contents and attaches it as TypeAnnotation.
type StringNode struct {
	NodeBase
	Value          string
	TypeAnnotation Node // optional, one level of forward-reference wrapping
}

func (n *StringNode) Kind() NodeKind { return KindString }

// NumberNode is a numeric literal.
type NumberNode struct {
	NodeBase
	Literal string
	IsFloat bool
}

func (n *NumberNode) Kind() NodeKind { return KindNumber }

// ImportNode represents one dotted name of an import statement.
// "import a.b, c" produces two ImportNodes.
type ImportNode struct {
	NodeBase
	Module *ModulePathNode
	Alias  *NameNode // optional ("import a.b as ab")
}

func (n *ImportNode) Kind() NodeKind { return KindImport }

// ImportFromNode represents a from-import statement.
type ImportFromNode struct {
	NodeBase
	Module   *ModulePathNode // nil for purely relative "from . import x"
	Dots     int             // leading dots for relative imports
	Names    []*ImportedName
	Wildcard bool
}

func (n *ImportFromNode) Kind() NodeKind { return KindImportFrom }

// ImportedName is one imported symbol within a from-import.
type ImportedName struct {
	NodeBase
	Name  *NameNode
	Alias *NameNode // optional
}

func (n *ImportedName) Kind() NodeKind { return KindImportedName }

// ModulePathNode is a dotted module path such as "pkg.sub".
type ModulePathNode struct {
	NodeBase
	Segments []*NameNode
}

func (n *ModulePathNode) Kind() NodeKind { return KindModulePath }

// Dotted returns the path joined with dots.
func (n *ModulePathNode) Dotted() string {
	out := ""
	for i, seg := range n.Segments {
		if i > 0 {
			out += "."
		}
		out += seg.Value
	}
	return out
}

// ExprStmtNode is an expression used as a statement (docstrings, bare calls).
type ExprStmtNode struct {
	NodeBase
	Expr Node
}

func (n *ExprStmtNode) Kind() NodeKind { return KindExprStmt }

// ReturnNode is a return statement.
type ReturnNode struct {
	NodeBase
	Value Node // optional
}

func (n *ReturnNode) Kind() NodeKind { return KindReturn }
