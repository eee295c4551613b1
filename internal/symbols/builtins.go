package symbols

import "github.com/pynav/pynav/internal/typesystem"

// Shared class types for the built-in scalar and container classes.
// Singletons so that every module's analysis agrees on identity.
var (
	ObjectClass = typesystem.NewClass("object", nil)
	TypeClass   = typesystem.NewClass("type", nil)
	IntClass    = typesystem.NewClass("int", nil)
	FloatClass  = typesystem.NewClass("float", nil)
	StrClass    = typesystem.NewClass("str", nil)
	BoolClass   = typesystem.NewClass("bool", nil)
	BytesClass  = typesystem.NewClass("bytes", nil)
	ListClass   = typesystem.NewClass("list", nil)
	DictClass   = typesystem.NewClass("dict", nil)
	SetClass    = typesystem.NewClass("set", nil)
	TupleClass  = typesystem.NewClass("tuple", nil)
	NoneClass   = typesystem.NewClass("None", nil)
)

func init() {
	for _, cls := range []*typesystem.TClass{
		TypeClass, IntClass, FloatClass, StrClass, BoolClass, BytesClass,
		ListClass, DictClass, SetClass, TupleClass, NoneClass,
	} {
		cls.Bases = []*typesystem.TClass{ObjectClass}
	}
	BoolClass.Bases = []*typesystem.TClass{IntClass}
}

// NewBuiltinsScope builds the synthetic outermost scope holding built-in
// classes and a small set of built-in functions. Every module scope is
// enclosed by one of these.
func NewBuiltinsScope() *Scope {
	scope := NewScope(nil, ScopeBuiltins, nil)

	for _, cls := range []*typesystem.TClass{
		ObjectClass, TypeClass, IntClass, FloatClass, StrClass, BoolClass,
		BytesClass, ListClass, DictClass, SetClass, TupleClass, NoneClass,
	} {
		sym := NewSymbol(cls.Name)
		sym.AddDeclaration(&BuiltIn{Name: cls.Name, DeclaredType: cls})
		scope.Insert(cls.Name, sym)
	}

	builtinFuncs := []*typesystem.TFunc{
		{Name: "len", Params: []typesystem.Param{{Name: "obj"}}, DeclaredReturn: IntClass.ToInstance()},
		{Name: "print", Params: []typesystem.Param{{Name: "values"}}, DeclaredReturn: NoneClass.ToInstance()},
		{Name: "repr", Params: []typesystem.Param{{Name: "obj"}}, DeclaredReturn: StrClass.ToInstance()},
		{Name: "isinstance", Params: []typesystem.Param{{Name: "obj"}, {Name: "class_or_tuple"}}, DeclaredReturn: BoolClass.ToInstance()},
		{Name: "id", Params: []typesystem.Param{{Name: "obj"}}, DeclaredReturn: IntClass.ToInstance()},
	}
	for _, fn := range builtinFuncs {
		sym := NewSymbol(fn.Name)
		sym.AddDeclaration(&BuiltIn{Name: fn.Name, DeclaredType: fn})
		scope.Insert(fn.Name, sym)
	}

	return scope
}
