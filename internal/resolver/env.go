// Package resolver is the declaration-resolution and type-derivation core:
// it maps a name reference to the binding sites it may denote, follows
// import/alias indirection to the canonical declaration, and computes the
// effective type of the result. It consumes the parse tree and the side
// tables produced by earlier passes; it never writes to them and never
// caches across calls.
package resolver

import (
	"github.com/pynav/pynav/internal/ast"
	"github.com/pynav/pynav/internal/symbols"
	"github.com/pynav/pynav/internal/typesystem"
)

// Env gives the resolver read access to the results of prior analysis:
// the node-to-type side table, the lexical scope of a node, and resolved
// paths for import-path segments. Implemented by binder.Env.
type Env interface {
	// TypeOf returns the type already attached to a node, if any.
	TypeOf(n ast.Node) (typesystem.Type, bool)
	// ScopeOf returns the innermost lexical scope enclosing a node.
	ScopeOf(n ast.Node) (*symbols.Scope, bool)
	// SegmentPath returns the resolved module file path for one segment
	// of a dotted import path.
	SegmentPath(seg *ast.NameNode) (string, bool)
}

// ImportLookupResult is the external collaborator's answer for "what does
// the module at this path export". An empty symbol table is a valid result
// (empty module); absence of a result means the module was not found or
// not analyzable.
type ImportLookupResult struct {
	SymbolTable map[string]*symbols.Symbol
	DocString   string
}

// ImportLookup resolves a module file path to its exports. The resolver
// treats it as an opaque synchronous call; memoization and invalidation
// are the caller's responsibility.
type ImportLookup func(path string) (*ImportLookupResult, bool)
