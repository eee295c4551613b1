package resolver

import (
	"testing"

	"github.com/pynav/pynav/internal/ast"
	"github.com/pynav/pynav/internal/symbols"
	"github.com/pynav/pynav/internal/typesystem"
)

func mkAttribute(baseName, attrName string) (*ast.AttributeNode, *ast.NameNode) {
	base := mkName(baseName, 0)
	attr := mkName(attrName, len(baseName)+1)
	node := &ast.AttributeNode{Base: base, Attr: attr}
	base.Up = node
	attr.Up = node
	return node, attr
}

func classWithMember(className, member string, decls ...symbols.Declaration) *typesystem.TClass {
	cls := typesystem.NewClass(className, nil)
	cls.Fields[member] = symbolWith(member, decls...)
	return cls
}

func TestResolveAliasSourceNameNotApplicable(t *testing.T) {
	// import pkg as p: the un-aliased source name is never resolvable.
	seg := mkName("pkg", 7)
	path := &ast.ModulePathNode{Segments: []*ast.NameNode{seg}}
	seg.Up = path
	imp := &ast.ImportNode{Module: path, Alias: mkName("p", 14)}
	path.Up = imp
	imp.Alias.Up = imp

	env := newFakeEnv()
	env.segs[seg] = "pkg/__init__.py" // present, but branch 1 wins

	if decls, ok := Resolve(env, seg); ok {
		t.Errorf("Resolve = %v, %v; want not-applicable for an import-alias source name", decls, ok)
	}

	// from m import x as y: same rule for the source symbol name.
	name := mkName("x", 20)
	imported := &ast.ImportedName{Name: name, Alias: mkName("y", 25)}
	name.Up = imported
	imported.Alias.Up = imported
	if decls, ok := Resolve(env, name); ok {
		t.Errorf("Resolve = %v, %v; want not-applicable for an aliased from-import source", decls, ok)
	}
}

func TestResolveMemberAccessOnClass(t *testing.T) {
	attrNode, attr := mkAttribute("C", "value")
	typed := mkVariable("m.py", "value", 3, mkName("int", 33))
	cls := classWithMember("C", "value", mkVariable("m.py", "value", 2, nil), typed)

	env := newFakeEnv()
	env.types[attrNode.Base] = cls

	decls, ok := Resolve(env, attr)
	if !ok {
		t.Fatal("Resolve returned not-applicable for a member access")
	}
	if len(decls) != 1 || decls[0] != symbols.Declaration(typed) {
		t.Errorf("Resolve = %v, want only the typed declaration", decls)
	}
}

func TestResolveMemberAccessFallsBackToUntyped(t *testing.T) {
	attrNode, attr := mkAttribute("C", "value")
	untyped := mkVariable("m.py", "value", 2, nil)
	cls := classWithMember("C", "value", untyped)

	env := newFakeEnv()
	env.types[attrNode.Base] = cls

	decls, ok := Resolve(env, attr)
	if !ok || len(decls) != 1 || decls[0] != symbols.Declaration(untyped) {
		t.Errorf("Resolve = %v, %v; want the full declaration list when no typed ones exist", decls, ok)
	}
}

func TestResolveMemberAccessOnUnionBase(t *testing.T) {
	attrNode, attr := mkAttribute("u", "value")
	declA := mkVariable("a.py", "value", 1, mkName("int", 41))
	declB := mkVariable("b.py", "value", 2, mkName("str", 51))
	clsA := classWithMember("A", "value", declA)
	clsB := classWithMember("B", "value", declB)
	clsC := typesystem.NewClass("C", nil) // no matching member

	env := newFakeEnv()
	env.types[attrNode.Base] = &typesystem.TUnion{Variants: []typesystem.Type{
		clsA.ToInstance(), clsC.ToInstance(), clsB.ToInstance(),
	}}

	decls, ok := Resolve(env, attr)
	if !ok {
		t.Fatal("Resolve returned not-applicable")
	}
	want := []symbols.Declaration{declA, declB}
	if len(decls) != len(want) {
		t.Fatalf("Resolve = %v, want declarations from both union variants in variant order", decls)
	}
	for i := range want {
		if decls[i] != want[i] {
			t.Errorf("decls[%d] = %v, want %v", i, decls[i], want[i])
		}
	}
}

func TestResolveMemberAccessThroughBases(t *testing.T) {
	attrNode, attr := mkAttribute("d", "value")
	inherited := mkVariable("base.py", "value", 1, mkName("int", 61))
	base := classWithMember("Base", "value", inherited)
	derived := typesystem.NewClass("Derived", nil)
	derived.Bases = []*typesystem.TClass{base}

	env := newFakeEnv()
	env.types[attrNode.Base] = derived.ToInstance()

	decls, ok := Resolve(env, attr)
	if !ok || len(decls) != 1 || decls[0] != symbols.Declaration(inherited) {
		t.Errorf("Resolve = %v, %v; want the member inherited through the resolution order", decls, ok)
	}
}

func TestResolveMemberAccessOnModule(t *testing.T) {
	attrNode, attr := mkAttribute("mod", "helper")
	helper := mkVariable("pkg/sub.py", "helper", 1, nil)
	mod := typesystem.NewModule("sub")
	mod.Fields["helper"] = symbolWith("helper", helper)

	env := newFakeEnv()
	env.types[attrNode.Base] = mod

	decls, ok := Resolve(env, attr)
	if !ok || len(decls) != 1 || decls[0] != symbols.Declaration(helper) {
		t.Errorf("Resolve = %v, %v; want the module field's declaration", decls, ok)
	}
}

func TestResolveMemberAccessMissingMemberIsEmptyNotNA(t *testing.T) {
	attrNode, attr := mkAttribute("c", "missing")
	env := newFakeEnv()
	env.types[attrNode.Base] = typesystem.NewClass("C", nil).ToInstance()

	decls, ok := Resolve(env, attr)
	if !ok {
		t.Fatal("member access is a resolvable position even when nothing matches")
	}
	if len(decls) != 0 {
		t.Errorf("Resolve = %v, want zero declarations", decls)
	}
}

func TestResolveModulePathSegment(t *testing.T) {
	seg := mkName("sub", 11)
	path := &ast.ModulePathNode{Segments: []*ast.NameNode{mkName("pkg", 7), seg}}
	seg.Up = path
	imp := &ast.ImportNode{Module: path}
	path.Up = imp

	env := newFakeEnv()
	env.segs[seg] = "pkg/sub.py"

	decls, ok := Resolve(env, seg)
	if !ok || len(decls) != 1 {
		t.Fatalf("Resolve = %v, %v; want one synthesized alias", decls, ok)
	}
	alias, isAlias := decls[0].(*symbols.Alias)
	if !isAlias {
		t.Fatalf("Resolve produced %T, want a synthesized alias declaration", decls[0])
	}
	if alias.TargetPath != "pkg/sub.py" {
		t.Errorf("alias target = %q, want the resolved segment path", alias.TargetPath)
	}
	if alias.SymbolName != "" || len(alias.ImplicitImports) != 0 {
		t.Errorf("synthesized alias must be a bare module view, got %+v", alias)
	}
}

func TestResolvePlainIdentifier(t *testing.T) {
	scope := symbols.NewScope(symbols.NewBuiltinsScope(), symbols.ScopeModule, nil)
	decl := mkVariable("m.py", "count", 1, nil)
	scope.Define("count").AddDeclaration(decl)

	env := newFakeEnv()
	env.scope = symbols.NewScope(scope, symbols.ScopeFunction, nil) // lookup widens outward

	node := mkName("count", 90)
	decls, ok := Resolve(env, node)
	if !ok || len(decls) != 1 || decls[0] != symbols.Declaration(decl) {
		t.Errorf("Resolve = %v, %v; want the scope-chain declaration", decls, ok)
	}

	if decls, ok := Resolve(env, mkName("nonexistent", 95)); ok {
		t.Errorf("Resolve = %v, %v; want not-applicable when no symbol is found", decls, ok)
	}
}

func TestDeclarationIdentity(t *testing.T) {
	a := mkVariable("m.py", "x", 10, mkName("int", 30))
	b := mkVariable("m.py", "x", 10, nil) // same origin, different content
	b.IsConstant = true
	if !symbols.Same(a, b) {
		t.Error("declarations with equal kind, path, and start must compare equal")
	}

	c := mkVariable("m.py", "x", 11, nil)
	if symbols.Same(a, c) {
		t.Error("different start positions must not compare equal")
	}
	if symbols.Same(a, &symbols.Class{ModulePath: "m.py", NameNode: mkName("x", 10)}) {
		t.Error("different kinds must not compare equal")
	}
	if symbols.Same(a, mkVariable("n.py", "x", 10, nil)) {
		t.Error("different paths must not compare equal")
	}
}
