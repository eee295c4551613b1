package symbols

import "github.com/pynav/pynav/internal/typesystem"

// Symbol owns the ordered sequence of declarations for one binding name
// within one scope. Declarations are stored in source order; redefinitions
// append, so the last element is the most current one.
type Symbol struct {
	name  string
	decls []Declaration

	// synthType is set for symbols fabricated during module
	// materialization, which wrap a type rather than source declarations.
	synthType typesystem.Type
}

// NewSymbol creates an empty symbol for the given binding name.
func NewSymbol(name string) *Symbol {
	return &Symbol{name: name}
}

// NewSymbolWithType creates a symbol wrapping a synthesized type. Used for
// implicitly imported submodules, which have no source declaration of
// their own.
func NewSymbolWithType(name string, t typesystem.Type) *Symbol {
	return &Symbol{name: name, synthType: t}
}

// Name returns the binding name.
func (s *Symbol) Name() string { return s.name }

// MemberName implements typesystem.Member.
func (s *Symbol) MemberName() string { return s.name }

// AddDeclaration appends a declaration, keeping source order.
func (s *Symbol) AddDeclaration(d Declaration) {
	if d == nil {
		return
	}
	s.decls = append(s.decls, d)
}

// Declarations returns all declarations in source order. Callers must
// check length: an empty list is a valid state.
func (s *Symbol) Declarations() []Declaration { return s.decls }

// TypedDeclarations returns the subsequence of declarations that carry an
// explicit declared type.
func (s *Symbol) TypedDeclarations() []Declaration {
	var out []Declaration
	for _, d := range s.decls {
		if d.HasExplicitType() {
			out = append(out, d)
		}
	}
	return out
}

// SynthesizedType returns the wrapped type for materialized symbols.
func (s *Symbol) SynthesizedType() (typesystem.Type, bool) {
	return s.synthType, s.synthType != nil
}
