package resolver

import (
	"github.com/pynav/pynav/internal/ast"
	"github.com/pynav/pynav/internal/symbols"
	"github.com/pynav/pynav/internal/typesystem"
)

// fakeEnv is a hand-filled stand-in for the binder's analysis context.
type fakeEnv struct {
	types  map[ast.Node]typesystem.Type
	scopes map[ast.Node]*symbols.Scope
	segs   map[*ast.NameNode]string
	scope  *symbols.Scope // fallback scope for every node
}

func newFakeEnv() *fakeEnv {
	return &fakeEnv{
		types:  make(map[ast.Node]typesystem.Type),
		scopes: make(map[ast.Node]*symbols.Scope),
		segs:   make(map[*ast.NameNode]string),
	}
}

func (e *fakeEnv) TypeOf(n ast.Node) (typesystem.Type, bool) {
	t, ok := e.types[n]
	return t, ok
}

func (e *fakeEnv) ScopeOf(n ast.Node) (*symbols.Scope, bool) {
	if s, ok := e.scopes[n]; ok {
		return s, true
	}
	return e.scope, e.scope != nil
}

func (e *fakeEnv) SegmentPath(seg *ast.NameNode) (string, bool) {
	p, ok := e.segs[seg]
	return p, ok
}

func mkName(value string, start int) *ast.NameNode {
	n := &ast.NameNode{Value: value}
	n.Rng = ast.Range{
		Start: ast.Position{Byte: start},
		End:   ast.Position{Byte: start + len(value)},
	}
	return n
}

func mkVariable(path string, name string, start int, annotation ast.Node) *symbols.Variable {
	return &symbols.Variable{
		ModulePath:     path,
		NameNode:       mkName(name, start),
		TypeAnnotation: annotation,
	}
}

func mkAlias(path, target, symbol string, start int) *symbols.Alias {
	return &symbols.Alias{
		ModulePath: path,
		TargetPath: target,
		SymbolName: symbol,
		Rng: ast.Range{
			Start: ast.Position{Byte: start},
			End:   ast.Position{Byte: start + 1},
		},
	}
}

// tableLookup builds an ImportLookup over fixed per-path symbol tables and
// counts invocations.
type tableLookup struct {
	tables map[string]map[string]*symbols.Symbol
	docs   map[string]string
	calls  int
}

func (l *tableLookup) lookup(path string) (*ImportLookupResult, bool) {
	l.calls++
	table, ok := l.tables[path]
	if !ok {
		return nil, false
	}
	return &ImportLookupResult{SymbolTable: table, DocString: l.docs[path]}, true
}

func symbolWith(name string, decls ...symbols.Declaration) *symbols.Symbol {
	sym := symbols.NewSymbol(name)
	for _, d := range decls {
		sym.AddDeclaration(d)
	}
	return sym
}
