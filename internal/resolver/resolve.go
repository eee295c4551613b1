package resolver

import (
	"github.com/pynav/pynav/internal/ast"
	"github.com/pynav/pynav/internal/symbols"
	"github.com/pynav/pynav/internal/typesystem"
)

// Resolve maps a name reference node to the declarations it may denote.
//
// The second result distinguishes "not applicable" (false: the position is
// structurally not a binding reference, e.g. the un-aliased source name in
// an "import X as Y" clause) from "resolvable but zero declarations"
// (true with an empty slice). Branches are evaluated in this precedence:
// import-alias source name, member access, module-path segment, plain
// identifier.
func Resolve(env Env, node *ast.NameNode) ([]symbols.Declaration, bool) {
	if node == nil {
		return nil, false
	}

	if isAliasSourceName(node) {
		return nil, false
	}

	if attr, ok := node.Parent().(*ast.AttributeNode); ok && attr.Attr == node {
		return resolveMemberAccess(env, attr, node.Value), true
	}

	if path, ok := moduleSegmentPath(env, node); ok {
		// Synthetic view used only for navigation, never registered in
		// any symbol.
		alias := &symbols.Alias{
			ModulePath: containingFile(node),
			TargetPath: path,
		}
		return []symbols.Declaration{alias}, true
	}

	scope, ok := env.ScopeOf(node)
	if !ok {
		return nil, false
	}
	sym, ok := scope.LookupRecursive(node.Value)
	if !ok {
		return nil, false
	}
	return sym.Declarations(), true
}

// isAliasSourceName reports whether the node is the source name of an
// aliased import ("import X as Y" or "from m import X as Y" with the node
// on X). That position is never a binding occurrence.
func isAliasSourceName(node *ast.NameNode) bool {
	switch parent := node.Parent().(type) {
	case *ast.ImportedName:
		return parent.Alias != nil && parent.Name == node
	case *ast.ModulePathNode:
		if imp, ok := parent.Parent().(*ast.ImportNode); ok {
			return imp.Alias != nil
		}
	}
	return false
}

// moduleSegmentPath returns the resolved file path when node is a segment
// of a dotted import path the import pass could resolve.
func moduleSegmentPath(env Env, node *ast.NameNode) (string, bool) {
	if _, ok := node.Parent().(*ast.ModulePathNode); !ok {
		return "", false
	}
	return env.SegmentPath(node)
}

// resolveMemberAccess resolves node as a member of the base expression's
// type. The base type must already be attached by upstream inference; each
// constituent of a union base can contribute declarations.
func resolveMemberAccess(env Env, attr *ast.AttributeNode, name string) []symbols.Declaration {
	baseType, ok := env.TypeOf(attr.Base)
	if !ok {
		return nil
	}

	var out []symbols.Declaration
	for _, sub := range typesystem.Subtypes(baseType) {
		var sym *symbols.Symbol
		switch t := sub.(type) {
		case *typesystem.TClass:
			sym = lookUpClassMember(t, name, false)
		case *typesystem.TObject:
			sym = lookUpInstanceMember(t.Class, name)
		case *typesystem.TModule:
			if m, ok := t.Field(name); ok {
				sym, _ = m.(*symbols.Symbol)
			}
		}
		if sym == nil {
			continue
		}
		if typed := sym.TypedDeclarations(); len(typed) > 0 {
			out = append(out, typed...)
		} else {
			out = append(out, sym.Declarations()...)
		}
	}
	return out
}

// lookUpClassMember searches the class and its bases in method-resolution
// order. When instance is set, instance variables are searched ahead of
// class-scope members of each class. The two-pass typed/unrestricted
// preference is applied per class: a member without declared type does not
// stop the walk while a typed one may still be found further along.
func lookUpClassMember(cls *typesystem.TClass, name string, instance bool) *symbols.Symbol {
	if cls == nil {
		return nil
	}
	var untyped *symbols.Symbol
	for _, c := range cls.Mro() {
		candidates := []map[string]typesystem.Member{c.Fields}
		if instance {
			candidates = []map[string]typesystem.Member{c.InstanceFields, c.Fields}
		}
		for _, fields := range candidates {
			m, ok := fields[name]
			if !ok {
				continue
			}
			sym, ok := m.(*symbols.Symbol)
			if !ok {
				continue
			}
			if len(sym.TypedDeclarations()) > 0 {
				return sym
			}
			if untyped == nil {
				untyped = sym
			}
		}
	}
	return untyped
}

// lookUpInstanceMember searches through the instance member-resolution
// order.
func lookUpInstanceMember(cls *typesystem.TClass, name string) *symbols.Symbol {
	return lookUpClassMember(cls, name, true)
}

// containingFile walks to the module root to find the declaring file path.
func containingFile(n ast.Node) string {
	for cur := ast.Node(n); cur != nil; cur = cur.Parent() {
		if mod, ok := cur.(*ast.ModuleNode); ok {
			return mod.Path
		}
	}
	return ""
}
