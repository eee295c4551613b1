package resolver

import (
	"github.com/pynav/pynav/internal/symbols"
	"github.com/pynav/pynav/internal/typesystem"
	"github.com/pynav/pynav/internal/utils"
)

// InferredTypeOf is the top-level entry point combining alias resolution,
// type derivation, and module materialization. When the resolved
// declaration still denotes a module, a module-shaped type is built
// lazily by applying loader actions through the import-lookup capability.
func InferredTypeOf(env Env, decl symbols.Declaration, lookup ImportLookup) (typesystem.Type, bool) {
	resolved, ok := ResolveAlias(decl, lookup)
	if !ok {
		return nil, false
	}

	if alias, isAlias := resolved.(*symbols.Alias); isAlias {
		root := alias
		if alias.SymbolName != "" && alias.SubmoduleFallback != nil {
			// The named symbol pointed nowhere resolvable; materialize
			// the submodule instead.
			root = alias.SubmoduleFallback
		}
		mod := typesystem.NewModule(utils.ModuleName(root.TargetPath))
		return applyLoaderActions(mod, actionsFor(root), lookup), true
	}

	if t, ok := TypeOf(env, resolved); ok {
		return t, true
	}

	// Graceful degradation: an unannotated declaration may still have a
	// type inferred and attached to its node upstream.
	if node := resolved.Node(); node != nil {
		if t, ok := env.TypeOf(node); ok {
			return t, true
		}
	}
	return nil, false
}

// actionsFor views an alias declaration as the root of a loader-action
// tree.
func actionsFor(alias *symbols.Alias) *symbols.LoaderActions {
	return &symbols.LoaderActions{
		Path:            alias.TargetPath,
		ImplicitImports: alias.ImplicitImports,
	}
}

// applyLoaderActions populates a module type by looking up the module's
// own exports and recursively materializing implicitly imported
// submodules. A failed lookup invalidates the whole subtree being built:
// the module degrades to Unknown, not to a partially filled module.
// Implicit submodules are registered in the separate loader-fields map so
// they never shadow or merge with genuine exports.
func applyLoaderActions(mod *typesystem.TModule, actions *symbols.LoaderActions, lookup ImportLookup) typesystem.Type {
	if actions == nil {
		return mod
	}

	if actions.Path != "" {
		result, ok := lookup(actions.Path)
		if !ok {
			return typesystem.Unknown
		}
		for name, sym := range result.SymbolTable {
			mod.Fields[name] = sym
		}
		mod.DocString = result.DocString
	}

	for name, nested := range actions.ImplicitImports {
		sub := typesystem.NewModule(name)
		subType := applyLoaderActions(sub, nested, lookup)
		sym := symbols.NewSymbolWithType(name, subType)
		if nested.Path != "" {
			// A synthetic alias lets navigation reach the submodule.
			sym.AddDeclaration(&symbols.Alias{TargetPath: nested.Path})
		}
		mod.LoaderFields[name] = sym
	}
	return mod
}
