package symbols

import "github.com/pynav/pynav/internal/ast"

// ScopeKind classifies a lexical scope.
type ScopeKind int

const (
	ScopeBuiltins ScopeKind = iota // synthetic outermost scope
	ScopeModule
	ScopeClass
	ScopeFunction
)

// Scope is one level of the lexical-scope chain. Lookups widen outward
// through the outer link, ending at the builtins scope.
type Scope struct {
	store map[string]*Symbol
	outer *Scope
	kind  ScopeKind
	node  ast.Node // scope-introducing node, nil for builtins
}

// NewScope creates a scope enclosed by outer.
func NewScope(outer *Scope, kind ScopeKind, node ast.Node) *Scope {
	return &Scope{
		store: make(map[string]*Symbol),
		outer: outer,
		kind:  kind,
		node:  node,
	}
}

func (s *Scope) Kind() ScopeKind { return s.kind }
func (s *Scope) Outer() *Scope   { return s.outer }
func (s *Scope) Node() ast.Node  { return s.node }

// Define returns the symbol for name in this scope, creating it if needed.
func (s *Scope) Define(name string) *Symbol {
	if sym, ok := s.store[name]; ok {
		return sym
	}
	sym := NewSymbol(name)
	s.store[name] = sym
	return sym
}

// Insert registers an existing symbol under name, replacing any previous
// entry.
func (s *Scope) Insert(name string, sym *Symbol) {
	s.store[name] = sym
}

// Lookup searches this scope only.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	sym, ok := s.store[name]
	return sym, ok
}

// LookupRecursive searches this scope, then each enclosing scope outward.
func (s *Scope) LookupRecursive(name string) (*Symbol, bool) {
	for cur := s; cur != nil; cur = cur.outer {
		if sym, ok := cur.store[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// Symbols returns the scope's symbol table. The map is shared, not copied;
// callers treat it as read-only.
func (s *Scope) Symbols() map[string]*Symbol { return s.store }

// Names returns the defined names, unordered.
func (s *Scope) Names() []string {
	out := make([]string, 0, len(s.store))
	for name := range s.store {
		out = append(out, name)
	}
	return out
}
