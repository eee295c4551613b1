package modules

import (
	"github.com/pynav/pynav/internal/ast"
	"github.com/pynav/pynav/internal/symbols"
	"github.com/pynav/pynav/internal/typesystem"
)

// Project is the cross-module analysis view: it satisfies resolver.Env by
// routing each query to the environment of the module whose parse tree the
// node belongs to. Declarations routinely point into other modules' trees,
// so per-module environments alone cannot answer them.
type Project struct {
	loader *Loader
}

// Project returns the loader's cross-module view.
func (l *Loader) Project() *Project { return &Project{loader: l} }

func (p *Project) envOf(n ast.Node) (envLike, bool) {
	for cur := n; cur != nil; cur = cur.Parent() {
		if mod, ok := cur.(*ast.ModuleNode); ok {
			loaded, ok := p.loader.Module(mod.Path)
			if !ok {
				return nil, false
			}
			return loaded.Env, true
		}
	}
	return nil, false
}

// envLike is the per-module slice of resolver.Env.
type envLike interface {
	TypeOf(n ast.Node) (typesystem.Type, bool)
	ScopeOf(n ast.Node) (*symbols.Scope, bool)
	SegmentPath(seg *ast.NameNode) (string, bool)
}

func (p *Project) TypeOf(n ast.Node) (typesystem.Type, bool) {
	env, ok := p.envOf(n)
	if !ok {
		return nil, false
	}
	return env.TypeOf(n)
}

func (p *Project) ScopeOf(n ast.Node) (*symbols.Scope, bool) {
	env, ok := p.envOf(n)
	if !ok {
		return nil, false
	}
	return env.ScopeOf(n)
}

func (p *Project) SegmentPath(seg *ast.NameNode) (string, bool) {
	env, ok := p.envOf(seg)
	if !ok {
		return "", false
	}
	return env.SegmentPath(seg)
}
