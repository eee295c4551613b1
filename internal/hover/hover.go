// Package hover answers position queries over analyzed modules: what a
// name means, what type it has, and where it is declared.
package hover

import (
	"github.com/pynav/pynav/internal/ast"
	"github.com/pynav/pynav/internal/binder"
	"github.com/pynav/pynav/internal/resolver"
	"github.com/pynav/pynav/internal/symbols"
	"github.com/pynav/pynav/internal/typesystem"
)

// Result is the answer to a hover query.
type Result struct {
	// Name is the hovered identifier.
	Name string
	// Decl is the canonical declaration after alias resolution.
	Decl symbols.Declaration
	// Type is the effective type, nil when none could be derived.
	Type typesystem.Type
	// DocString is the documentation of the hovered entity, when any.
	DocString string
}

// Location is a source position of a declaration.
type Location struct {
	Path  string
	Range ast.Range
}

// At resolves the name at a byte offset of a module. env is the module's
// own environment, project the cross-module view, lookup the import
// resolver. The second result is false when the position carries no
// resolvable name.
func At(root *ast.ModuleNode, env *binder.Env, project resolver.Env, lookup resolver.ImportLookup, byteOffset int) (*Result, bool) {
	name := ast.FindNameAt(root, byteOffset)
	if name == nil {
		return nil, false
	}
	decls, ok := resolver.Resolve(env, name)
	if !ok || len(decls) == 0 {
		return nil, false
	}
	decl := decls[len(decls)-1]

	resolved, resolvedOK := resolver.ResolveAlias(decl, lookup)
	if !resolvedOK {
		resolved = decl
	}

	res := &Result{Name: name.Value, Decl: resolved}
	if t, ok := resolver.InferredTypeOf(project, decl, lookup); ok {
		res.Type = t
	}
	res.DocString = docStringFor(resolved, res.Type)
	return res, true
}

// Definition resolves the name at a byte offset to the location of its
// canonical declaration. Built-ins and module references have no source
// location and report false.
func Definition(root *ast.ModuleNode, env *binder.Env, lookup resolver.ImportLookup, byteOffset int) (Location, bool) {
	name := ast.FindNameAt(root, byteOffset)
	if name == nil {
		return Location{}, false
	}
	decls, ok := resolver.Resolve(env, name)
	if !ok || len(decls) == 0 {
		return Location{}, false
	}
	decl := decls[len(decls)-1]

	resolved, ok := resolver.ResolveAlias(decl, lookup)
	if !ok {
		return Location{}, false
	}
	if alias, isAlias := resolved.(*symbols.Alias); isAlias {
		// A module reference jumps to the top of the module file.
		if alias.TargetPath == "" {
			return Location{}, false
		}
		return Location{Path: alias.TargetPath}, true
	}
	if resolved.Path() == "" && resolved.Node() == nil {
		return Location{}, false
	}
	return Location{Path: resolved.Path(), Range: resolved.Range()}, true
}

func docStringFor(decl symbols.Declaration, t typesystem.Type) string {
	switch tt := t.(type) {
	case *typesystem.TClass:
		return tt.DocString
	case *typesystem.TObject:
		if tt.Class != nil {
			return tt.Class.DocString
		}
	case *typesystem.TFunc:
		return tt.DocString
	case *typesystem.TOverloaded:
		if len(tt.Overloads) > 0 {
			return tt.Overloads[len(tt.Overloads)-1].DocString
		}
	case *typesystem.TModule:
		return tt.DocString
	}
	return ""
}
