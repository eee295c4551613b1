// Package pipeline chains the per-module analysis stages. Each stage
// reads and extends a shared context; stages run unconditionally so a
// later stage can still contribute diagnostics after an earlier failure.
package pipeline

import (
	"github.com/pynav/pynav/internal/ast"
	"github.com/pynav/pynav/internal/binder"
	"github.com/pynav/pynav/internal/checker"
	"github.com/pynav/pynav/internal/parser"
	"github.com/pynav/pynav/internal/resolver"
	"github.com/pynav/pynav/internal/symbols"
)

// Context carries one module through the stages.
type Context struct {
	Path   string
	Source []byte

	Root *ast.ModuleNode
	Env  *binder.Env

	Errors []error
}

// NewContext creates a context for one source file.
func NewContext(path string, source []byte) *Context {
	return &Context{Path: path, Source: source}
}

// Processor is one analysis stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline is a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors to collect diagnostics from all stages.
	}
	return ctx
}

// Func adapts a plain function to a stage.
type Func func(ctx *Context) *Context

func (f Func) Process(ctx *Context) *Context { return f(ctx) }

// Parse turns the source text into a parse tree.
type Parse struct{}

func (Parse) Process(ctx *Context) *Context {
	root, err := parser.Parse(ctx.Path, ctx.Source)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Root = root
	return ctx
}

// Bind builds the scope graph and declarations.
type Bind struct {
	Builtins *symbols.Scope
	Locator  binder.Locator
}

func (b Bind) Process(ctx *Context) *Context {
	if ctx.Root == nil {
		return ctx
	}
	builtins := b.Builtins
	if builtins == nil {
		builtins = symbols.NewBuiltinsScope()
	}
	ctx.Env = binder.Bind(ctx.Root, ctx.Path, builtins, b.Locator)
	return ctx
}

// Check computes and attaches types.
type Check struct {
	Project resolver.Env
	Lookup  resolver.ImportLookup
}

func (c Check) Process(ctx *Context) *Context {
	if ctx.Env == nil {
		return ctx
	}
	checker.Check(ctx.Env, c.Project, c.Lookup)
	return ctx
}
