// Package modules loads, binds, and checks source files on demand and
// resolves import paths within a workspace. It is the owner of all
// cross-module state; the analysis packages below it stay per-module.
package modules

import (
	"github.com/pynav/pynav/internal/ast"
	"github.com/pynav/pynav/internal/binder"
)

// Module is one loaded source file together with its analysis results.
type Module struct {
	// Path is the workspace-relative slash path identifying the module.
	Path string
	// AbsPath is the absolute filesystem path of the source file.
	AbsPath string
	AST     *ast.ModuleNode
	Env     *binder.Env

	// Checked is false while the module is still being type-checked;
	// import cycles observe such partially analyzed modules.
	Checked bool
}
