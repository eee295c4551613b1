package resolver

import "github.com/pynav/pynav/internal/symbols"

// ResolveAlias follows alias/import indirection to a canonical non-alias
// declaration, or to a terminal module reference (an alias without a
// symbol name, which callers route to module materialization).
//
// The alias graph can contain genuine cycles from circular imports, so
// termination rests on the visited set: when a declaration is about to be
// visited twice the chase is abandoned and the ORIGINAL input declaration
// is returned unchanged. Downstream consumers rely on this degradation
// producing a present result rather than an error.
func ResolveAlias(decl symbols.Declaration, lookup ImportLookup) (symbols.Declaration, bool) {
	cur := decl
	var visited []symbols.Declaration
	for {
		for _, seen := range visited {
			if symbols.Same(seen, cur) {
				return decl, true
			}
		}
		visited = append(visited, cur)

		alias, ok := cur.(*symbols.Alias)
		if !ok {
			return cur, true
		}
		if alias.SymbolName == "" {
			// Denotes the module itself; terminal.
			return alias, true
		}
		if alias.TargetPath == "" {
			return nil, false
		}

		result, ok := lookup(alias.TargetPath)
		if !ok {
			// Module not found or not analyzable. Terminal, not retried.
			return nil, false
		}

		sym, ok := result.SymbolTable[alias.SymbolName]
		if !ok {
			if alias.SubmoduleFallback != nil {
				// The imported name may denote a submodule rather than a
				// symbol of the package.
				return ResolveAlias(alias.SubmoduleFallback, lookup)
			}
			return nil, false
		}

		decls := sym.TypedDeclarations()
		if len(decls) == 0 {
			decls = sym.Declarations()
		}
		if len(decls) == 0 {
			return nil, false
		}
		// Declarations are stored in source order; the last one is the
		// most current.
		cur = decls[len(decls)-1]
	}
}
