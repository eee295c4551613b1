package symbols

import (
	"github.com/pynav/pynav/internal/ast"
	"github.com/pynav/pynav/internal/typesystem"
)

// DeclKind identifies the concrete kind of a Declaration.
type DeclKind int

const (
	DeclBuiltIn DeclKind = iota
	DeclClass
	DeclFunction
	DeclMethod
	DeclParameter
	DeclVariable
	DeclAlias
)

func (k DeclKind) String() string {
	switch k {
	case DeclBuiltIn:
		return "builtin"
	case DeclClass:
		return "class"
	case DeclFunction:
		return "function"
	case DeclMethod:
		return "method"
	case DeclParameter:
		return "parameter"
	case DeclVariable:
		return "variable"
	case DeclAlias:
		return "alias"
	}
	return "unknown"
}

// Declaration is a binding-site record for a name. Every declaration
// borrows its node from the immutable parse tree and is identified by
// origin: kind, declaring file path, and start position (see Same).
// The set of implementations is closed.
type Declaration interface {
	Kind() DeclKind
	// Path is the workspace-relative path of the declaring file. Empty for
	// synthetic built-ins.
	Path() string
	Range() ast.Range
	// Node returns the defining syntax node, nil for built-ins.
	Node() ast.Node
	// HasExplicitType reports whether the declaration carries a declared
	// (annotated) type, without computing it.
	HasExplicitType() bool
}

// Same reports whether two declarations denote the same binding site.
// Declarations are identical by origin, never by content: kind, path, and
// start position only.
func Same(a, b Declaration) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Kind() == b.Kind() && a.Path() == b.Path() && a.Range().Start == b.Range().Start
}

// BuiltIn is a synthetic declaration with no source node.
type BuiltIn struct {
	Name         string
	DeclaredType typesystem.Type
}

func (d *BuiltIn) Kind() DeclKind        { return DeclBuiltIn }
func (d *BuiltIn) Path() string          { return "" }
func (d *BuiltIn) Range() ast.Range      { return ast.Range{} }
func (d *BuiltIn) Node() ast.Node        { return nil }
func (d *BuiltIn) HasExplicitType() bool { return true }

// Class declares a class; the node is the defining name node.
type Class struct {
	ModulePath string
	NameNode   *ast.NameNode
}

func (d *Class) Kind() DeclKind        { return DeclClass }
func (d *Class) Path() string          { return d.ModulePath }
func (d *Class) Range() ast.Range      { return d.NameNode.Range() }
func (d *Class) Node() ast.Node        { return d.NameNode }
func (d *Class) HasExplicitType() bool { return true }

// Function declares a module-level function.
type Function struct {
	ModulePath string
	NameNode   *ast.NameNode
}

func (d *Function) Kind() DeclKind        { return DeclFunction }
func (d *Function) Path() string          { return d.ModulePath }
func (d *Function) Range() ast.Range      { return d.NameNode.Range() }
func (d *Function) Node() ast.Node        { return d.NameNode }
func (d *Function) HasExplicitType() bool { return true }

// Method declares a function defined inside a class body.
type Method struct {
	ModulePath string
	NameNode   *ast.NameNode
}

func (d *Method) Kind() DeclKind        { return DeclMethod }
func (d *Method) Path() string          { return d.ModulePath }
func (d *Method) Range() ast.Range      { return d.NameNode.Range() }
func (d *Method) Node() ast.Node        { return d.NameNode }
func (d *Method) HasExplicitType() bool { return true }

// Parameter declares a formal parameter. The parameter node carries the
// optional annotation expression.
type Parameter struct {
	ModulePath string
	ParamNode  *ast.ParameterNode
}

func (d *Parameter) Kind() DeclKind   { return DeclParameter }
func (d *Parameter) Path() string     { return d.ModulePath }
func (d *Parameter) Range() ast.Range { return d.ParamNode.Range() }
func (d *Parameter) Node() ast.Node   { return d.ParamNode }
func (d *Parameter) HasExplicitType() bool {
	return d.ParamNode != nil && d.ParamNode.Annotation != nil
}

// Variable declares a variable binding. The annotation node is tracked
// separately from the binding name node.
type Variable struct {
	ModulePath     string
	NameNode       *ast.NameNode
	TypeAnnotation ast.Node // optional
	IsConstant     bool
}

func (d *Variable) Kind() DeclKind        { return DeclVariable }
func (d *Variable) Path() string          { return d.ModulePath }
func (d *Variable) Range() ast.Range      { return d.NameNode.Range() }
func (d *Variable) Node() ast.Node        { return d.NameNode }
func (d *Variable) HasExplicitType() bool { return d.TypeAnnotation != nil }

// Alias declares an import binding that must be followed to find the
// actual definition.
//
// TargetPath identifies the target module file. SymbolName is the symbol
// within it; empty means the alias denotes the module itself.
// SubmoduleFallback is tried when SymbolName cannot be found in the target
// module, modeling imports that see either a symbol or a submodule.
// ImplicitImports lists submodules transitively exposed by a package
// import.
type Alias struct {
	ModulePath        string // declaring file
	TargetPath        string
	SymbolName        string
	SubmoduleFallback *Alias
	ImplicitImports   map[string]*LoaderActions
	Rng               ast.Range
}

func (d *Alias) Kind() DeclKind        { return DeclAlias }
func (d *Alias) Path() string          { return d.ModulePath }
func (d *Alias) Range() ast.Range      { return d.Rng }
func (d *Alias) Node() ast.Node        { return nil }
func (d *Alias) HasExplicitType() bool { return false }

// LoaderActions describes which submodules a package import implicitly
// exposes: an optional module path plus nested actions per submodule name.
type LoaderActions struct {
	Path            string
	ImplicitImports map[string]*LoaderActions
}
