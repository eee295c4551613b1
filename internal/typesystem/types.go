package typesystem

import (
	"strings"

	"github.com/pynav/pynav/internal/ast"
)

// Type is the interface for all types in our system. The set of
// implementations is closed; consumers switch exhaustively over them.
type Type interface {
	String() string
	typeNode()
}

// Member is a named entry of a class or module symbol table. It is
// implemented by symbols.Symbol; declared as an interface here to avoid a
// circular import with the symbols package.
type Member interface {
	MemberName() string
}

// TUnknown is the absence of usable type information. Analysis of loosely
// typed source is routinely partial, so Unknown flows through every
// consumer rather than being an error.
type TUnknown struct{}

func (TUnknown) String() string { return "Unknown" }
func (TUnknown) typeNode()      {}

// Unknown is the shared Unknown instance.
var Unknown = TUnknown{}

// TClass is the type of a class object itself (not of its instances).
type TClass struct {
	Name           string
	Node           ast.Node // defining name node, borrowed from the parse tree
	Bases          []*TClass
	Fields         map[string]Member // class-scope members
	InstanceFields map[string]Member // instance variables assigned via self
	DocString      string

	// IsEnum marks classes deriving from one of the enum base classes.
	// IsEnumBase marks the base classes themselves, whose own body
	// assignments must not be reinterpreted as enum members.
	IsEnum     bool
	IsEnumBase bool
}

func (t *TClass) String() string { return "type[" + t.Name + "]" }
func (t *TClass) typeNode()      {}

// NewClass creates an empty class type.
func NewClass(name string, node ast.Node) *TClass {
	return &TClass{
		Name:           name,
		Node:           node,
		Fields:         make(map[string]Member),
		InstanceFields: make(map[string]Member),
	}
}

// Mro returns the method-resolution order: the class itself followed by its
// bases depth-first, without duplicates. A simple linearization is enough
// for member lookup ordering.
func (t *TClass) Mro() []*TClass {
	seen := make(map[*TClass]bool)
	var out []*TClass
	var walk func(c *TClass)
	walk = func(c *TClass) {
		if c == nil || seen[c] {
			return
		}
		seen[c] = true
		out = append(out, c)
		for _, base := range c.Bases {
			walk(base)
		}
	}
	walk(t)
	return out
}

// DerivesFrom reports whether t is cls or transitively derives from it.
func (t *TClass) DerivesFrom(cls *TClass) bool {
	for _, c := range t.Mro() {
		if c == cls {
			return true
		}
	}
	return false
}

// TObject is the type of an instance of a class.
type TObject struct {
	Class *TClass
}

func (t *TObject) String() string {
	if t.Class == nil {
		return Unknown.String()
	}
	return t.Class.Name
}
func (t *TObject) typeNode() {}

// ToInstance returns the instance type of a class. Type annotations denote
// instance types, not the class object.
func (t *TClass) ToInstance() *TObject { return &TObject{Class: t} }

// Param is a single formal parameter of a function type.
type Param struct {
	Name       string
	Type       Type // nil when unannotated
	HasDefault bool
}

// TFunc is the type of a function or method.
type TFunc struct {
	Name   string
	Node   ast.Node // defining name node
	Params []Param

	// DeclaredReturn is the annotated return type, nil when unannotated.
	// DeclaredYield is the annotated yield type for generators; generators
	// and plain functions keep their declared-return shapes separate.
	DeclaredReturn Type
	DeclaredYield  Type

	IsAsync       bool
	IsGenerator   bool
	IsAbstract    bool
	IsOverload    bool
	IsProperty    bool
	IsStaticMeth  bool
	IsClassMethod bool
	DocString     string
}

func (t *TFunc) String() string {
	var b strings.Builder
	b.WriteString("(")
	for i, p := range t.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		if p.Type != nil {
			b.WriteString(": ")
			b.WriteString(p.Type.String())
		}
	}
	b.WriteString(") -> ")
	if t.DeclaredReturn != nil {
		b.WriteString(t.DeclaredReturn.String())
	} else {
		b.WriteString(Unknown.String())
	}
	return b.String()
}
func (t *TFunc) typeNode() {}

// TOverloaded groups the overload variants of one function name.
type TOverloaded struct {
	Overloads []*TFunc
}

func (t *TOverloaded) String() string {
	parts := make([]string, 0, len(t.Overloads))
	for _, o := range t.Overloads {
		parts = append(parts, o.String())
	}
	return "Overload[" + strings.Join(parts, " | ") + "]"
}
func (t *TOverloaded) typeNode() {}

// TModule is a module-shaped type. Fields holds the module's direct
// exports; LoaderFields holds submodules implicitly exposed by package
// imports, kept separate so they never merge ambiguously with genuine
// exports. A TModule is mutated only while it is being materialized and is
// treated as immutable once returned.
type TModule struct {
	Name         string
	Fields       map[string]Member
	LoaderFields map[string]Member
	DocString    string
}

func (t *TModule) String() string { return "Module(\"" + t.Name + "\")" }
func (t *TModule) typeNode()      {}

// NewModule creates an empty module type ready for materialization.
func NewModule(name string) *TModule {
	return &TModule{
		Name:         name,
		Fields:       make(map[string]Member),
		LoaderFields: make(map[string]Member),
	}
}

// Field returns a direct export, falling back to loader fields.
func (t *TModule) Field(name string) (Member, bool) {
	if m, ok := t.Fields[name]; ok {
		return m, true
	}
	m, ok := t.LoaderFields[name]
	return m, ok
}

// TUnion is a union of alternative types.
type TUnion struct {
	Variants []Type
}

func (t *TUnion) String() string {
	parts := make([]string, 0, len(t.Variants))
	for _, v := range t.Variants {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, " | ")
}
func (t *TUnion) typeNode() {}

// Subtypes returns the constituent subtypes of t: the union variants, or
// t itself for non-union types.
func Subtypes(t Type) []Type {
	if u, ok := t.(*TUnion); ok {
		return u.Variants
	}
	return []Type{t}
}
