package binder

import (
	"strings"

	"github.com/pynav/pynav/internal/ast"
	"github.com/pynav/pynav/internal/symbols"
)

// Bind builds the scope graph for a parsed module. builtins becomes the
// outermost scope of the chain; locator resolves import paths and may be
// nil when imports need no resolution (isolated analysis).
func Bind(module *ast.ModuleNode, path string, builtins *symbols.Scope, locator Locator) *Env {
	env := newEnv(module, path)
	env.DocString = module.DocString
	env.ModuleScope = symbols.NewScope(builtins, symbols.ScopeModule, module)
	env.scopes[module] = env.ModuleScope

	b := &binder{env: env, locator: locator}
	b.bindBlock(module.Body, env.ModuleScope)
	return env
}

type binder struct {
	env     *Env
	locator Locator
}

func (b *binder) bindBlock(stmts []ast.Node, scope *symbols.Scope) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.ClassDefNode:
			b.bindClass(s, scope)
		case *ast.FunctionDefNode:
			b.bindFunction(s, scope)
		case *ast.AssignNode:
			b.bindAssign(s, scope)
		case *ast.ImportNode:
			b.bindImport(s, scope)
		case *ast.ImportFromNode:
			b.bindImportFrom(s, scope)
		}
	}
}

func (b *binder) bindClass(cls *ast.ClassDefNode, scope *symbols.Scope) {
	if cls.Name.Value != "" {
		sym := scope.Define(cls.Name.Value)
		sym.AddDeclaration(&symbols.Class{ModulePath: b.env.Path, NameNode: cls.Name})
	}
	clsScope := symbols.NewScope(scope, symbols.ScopeClass, cls)
	b.env.scopes[cls] = clsScope
	b.bindBlock(cls.Body, clsScope)
}

func (b *binder) bindFunction(fn *ast.FunctionDefNode, scope *symbols.Scope) {
	if fn.Name.Value != "" {
		sym := scope.Define(fn.Name.Value)
		if scope.Kind() == symbols.ScopeClass {
			sym.AddDeclaration(&symbols.Method{ModulePath: b.env.Path, NameNode: fn.Name})
		} else {
			sym.AddDeclaration(&symbols.Function{ModulePath: b.env.Path, NameNode: fn.Name})
		}
	}

	fnScope := symbols.NewScope(scope, symbols.ScopeFunction, fn)
	b.env.scopes[fn] = fnScope
	for _, param := range fn.Params {
		if param.Name == nil || param.Name.Value == "" {
			continue
		}
		sym := fnScope.Define(param.Name.Value)
		sym.AddDeclaration(&symbols.Parameter{ModulePath: b.env.Path, ParamNode: param})
	}
	b.bindBlock(fn.Body, fnScope)

	if scope.Kind() == symbols.ScopeClass {
		b.collectInstanceAttrs(fn, scope)
	}
}

// collectInstanceAttrs records "self.attr = ..." assignments of a method
// as instance attributes of the enclosing class.
func (b *binder) collectInstanceAttrs(fn *ast.FunctionDefNode, classScope *symbols.Scope) {
	cls, ok := classScope.Node().(*ast.ClassDefNode)
	if !ok {
		return
	}
	if len(fn.Params) == 0 || fn.Params[0].Name == nil || fn.Params[0].Name.Value != "self" {
		return
	}

	for _, stmt := range fn.Body {
		assign, ok := stmt.(*ast.AssignNode)
		if !ok {
			continue
		}
		attr, ok := assign.Target.(*ast.AttributeNode)
		if !ok || attr.Attr == nil {
			continue
		}
		base, ok := attr.Base.(*ast.NameNode)
		if !ok || base.Value != "self" {
			continue
		}

		attrs := b.env.instanceAttrs[cls]
		if attrs == nil {
			attrs = make(map[string]*symbols.Symbol)
			b.env.instanceAttrs[cls] = attrs
		}
		sym := attrs[attr.Attr.Value]
		if sym == nil {
			sym = symbols.NewSymbol(attr.Attr.Value)
			attrs[attr.Attr.Value] = sym
		}
		sym.AddDeclaration(&symbols.Variable{
			ModulePath:     b.env.Path,
			NameNode:       attr.Attr,
			TypeAnnotation: assign.Annotation,
		})
	}
}

func (b *binder) bindAssign(assign *ast.AssignNode, scope *symbols.Scope) {
	target, ok := assign.Target.(*ast.NameNode)
	if !ok || target.Value == "" {
		return // attribute and subscript targets are not binding sites here
	}
	sym := scope.Define(target.Value)
	sym.AddDeclaration(&symbols.Variable{
		ModulePath:     b.env.Path,
		NameNode:       target,
		TypeAnnotation: assign.Annotation,
		IsConstant:     isConstantBinding(target.Value, assign.Annotation),
	})
}

// isConstantBinding follows the naming convention plus explicit Final
// annotations.
func isConstantBinding(name string, annotation ast.Node) bool {
	if annotationIsFinal(annotation) {
		return true
	}
	hasLetter := false
	for _, r := range name {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

func annotationIsFinal(annotation ast.Node) bool {
	switch a := annotation.(type) {
	case *ast.NameNode:
		return a.Value == "Final"
	case *ast.SubscriptNode:
		if base, ok := a.Base.(*ast.NameNode); ok {
			return base.Value == "Final"
		}
	case *ast.AttributeNode:
		return a.Attr != nil && a.Attr.Value == "Final"
	}
	return false
}

// locate is a nil-tolerant wrapper over the locator. Empty segments are
// valid for relative references, which may target the containing package
// itself.
func (b *binder) locate(dots int, segments []string) (string, bool) {
	if b.locator == nil || (dots == 0 && len(segments) == 0) {
		return "", false
	}
	return b.locator.Locate(b.env.Path, dots, segments)
}

// bindImport handles "import a.b [as c]". Without an alias the statement
// binds the first path segment, and deeper segments become implicit
// loader actions; with an alias it binds the alias directly to the full
// target.
func (b *binder) bindImport(imp *ast.ImportNode, scope *symbols.Scope) {
	if imp.Module == nil || len(imp.Module.Segments) == 0 {
		return
	}
	segments := imp.Module.Segments
	names := make([]string, len(segments))
	paths := make([]string, len(segments))
	for i, seg := range segments {
		names[i] = seg.Value
		if p, ok := b.locate(0, names[:i+1]); ok {
			paths[i] = p
			b.env.segPaths[seg] = p
		}
	}

	if imp.Alias != nil {
		sym := scope.Define(imp.Alias.Value)
		sym.AddDeclaration(&symbols.Alias{
			ModulePath: b.env.Path,
			TargetPath: paths[len(paths)-1],
			Rng:        imp.Rng,
		})
		return
	}

	// Nest loader actions inward: import a.b.c exposes b under a and c
	// under b.
	var implicit map[string]*symbols.LoaderActions
	for i := len(segments) - 1; i >= 1; i-- {
		implicit = map[string]*symbols.LoaderActions{
			segments[i].Value: {Path: paths[i], ImplicitImports: implicit},
		}
	}
	sym := scope.Define(segments[0].Value)
	sym.AddDeclaration(&symbols.Alias{
		ModulePath:      b.env.Path,
		TargetPath:      paths[0],
		ImplicitImports: implicit,
		Rng:             imp.Rng,
	})
}

// bindImportFrom handles "from [.]pkg import x [as y]". Each imported
// name aliases a symbol of the target module, with a submodule fallback
// when pkg/x is itself a module.
func (b *binder) bindImportFrom(stmt *ast.ImportFromNode, scope *symbols.Scope) {
	var segments []string
	if stmt.Module != nil {
		for i, seg := range stmt.Module.Segments {
			segments = append(segments, seg.Value)
			if p, ok := b.locate(stmt.Dots, segments[:i+1]); ok {
				b.env.segPaths[seg] = p
			}
		}
	}
	basePath, _ := b.locate(stmt.Dots, segments)

	if stmt.Wildcard {
		return // star imports are not modeled as declarations
	}

	for _, imported := range stmt.Names {
		if imported.Name == nil || imported.Name.Value == "" {
			continue
		}
		bound := imported.Name.Value
		if imported.Alias != nil && imported.Alias.Value != "" {
			bound = imported.Alias.Value
		}

		var fallback *symbols.Alias
		if p, ok := b.locate(stmt.Dots, append(append([]string{}, segments...), imported.Name.Value)); ok {
			fallback = &symbols.Alias{
				ModulePath: b.env.Path,
				TargetPath: p,
				Rng:        imported.Range(),
			}
		}
		sym := scope.Define(bound)
		sym.AddDeclaration(&symbols.Alias{
			ModulePath:        b.env.Path,
			TargetPath:        basePath,
			SymbolName:        imported.Name.Value,
			SubmoduleFallback: fallback,
			Rng:               imported.Range(),
		})
	}
}

// Exports returns the module's exported symbol table: every module-scope
// symbol whose name is not underscore-private. Dunder names stay visible.
func Exports(env *Env) map[string]*symbols.Symbol {
	out := make(map[string]*symbols.Symbol)
	for name, sym := range env.ModuleScope.Symbols() {
		if strings.HasPrefix(name, "_") && !strings.HasPrefix(name, "__") {
			continue
		}
		out[name] = sym
	}
	return out
}
