// Package binder builds the lexical-scope graph for one parsed module:
// scopes, symbols, and declarations, including the alias declarations
// that model import bindings. The resulting Env carries the side tables
// later passes consume; the parse tree itself is never mutated.
package binder

import (
	"github.com/pynav/pynav/internal/ast"
	"github.com/pynav/pynav/internal/symbols"
	"github.com/pynav/pynav/internal/typesystem"
)

// Locator resolves a module path reference to a module file path. The
// module loader implements it; tests substitute fixed tables.
type Locator interface {
	// Locate maps dotted-path segments (with leading relative dots) seen
	// in fromFile to a workspace-relative module file path.
	Locate(fromFile string, dots int, segments []string) (string, bool)
}

// Env is the analysis context of one module: its scope tree plus the side
// tables keyed by node identity. It implements resolver.Env for
// single-module use; cross-module routing is layered on by the loader.
type Env struct {
	Module      *ast.ModuleNode
	Path        string
	ModuleScope *symbols.Scope
	DocString   string

	scopes        map[ast.Node]*symbols.Scope
	types         map[ast.Node]typesystem.Type
	segPaths      map[*ast.NameNode]string
	instanceAttrs map[*ast.ClassDefNode]map[string]*symbols.Symbol
}

func newEnv(module *ast.ModuleNode, path string) *Env {
	return &Env{
		Module:        module,
		Path:          path,
		DocString:     module.DocString,
		scopes:        make(map[ast.Node]*symbols.Scope),
		types:         make(map[ast.Node]typesystem.Type),
		segPaths:      make(map[*ast.NameNode]string),
		instanceAttrs: make(map[*ast.ClassDefNode]map[string]*symbols.Symbol),
	}
}

// TypeOf returns the type attached to a node by the checker.
func (e *Env) TypeOf(n ast.Node) (typesystem.Type, bool) {
	t, ok := e.types[n]
	return t, ok
}

// SetType attaches a type to a node. Only the checker writes here.
func (e *Env) SetType(n ast.Node, t typesystem.Type) {
	if n == nil || t == nil {
		return
	}
	e.types[n] = t
}

// ScopeOf returns the innermost lexical scope enclosing n, found by
// walking parent links to the nearest scope-introducing node.
func (e *Env) ScopeOf(n ast.Node) (*symbols.Scope, bool) {
	for cur := n; cur != nil; cur = cur.Parent() {
		if scope, ok := e.scopes[cur]; ok {
			return scope, true
		}
	}
	return nil, false
}

// SegmentPath returns the resolved file path recorded for a module-path
// segment during binding.
func (e *Env) SegmentPath(seg *ast.NameNode) (string, bool) {
	p, ok := e.segPaths[seg]
	return p, ok && p != ""
}

// InstanceAttrs returns the instance attributes collected from self
// assignments in the class's methods.
func (e *Env) InstanceAttrs(cls *ast.ClassDefNode) map[string]*symbols.Symbol {
	return e.instanceAttrs[cls]
}

// Classes returns all class definitions of the module in source order,
// including nested ones.
func (e *Env) Classes() []*ast.ClassDefNode {
	var out []*ast.ClassDefNode
	ast.Walk(e.Module, func(n ast.Node) bool {
		if cls, ok := n.(*ast.ClassDefNode); ok {
			out = append(out, cls)
		}
		return true
	})
	return out
}

// Functions returns all function definitions of the module in source
// order, including methods and nested functions.
func (e *Env) Functions() []*ast.FunctionDefNode {
	var out []*ast.FunctionDefNode
	ast.Walk(e.Module, func(n ast.Node) bool {
		if fn, ok := n.(*ast.FunctionDefNode); ok {
			out = append(out, fn)
		}
		return true
	})
	return out
}
