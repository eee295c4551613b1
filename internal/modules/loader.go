package modules

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pynav/pynav/internal/binder"
	"github.com/pynav/pynav/internal/config"
	"github.com/pynav/pynav/internal/pipeline"
	"github.com/pynav/pynav/internal/resolver"
	"github.com/pynav/pynav/internal/symbols"
)

// Loader loads modules and their dependencies within one workspace root.
// Modules are identified by workspace-relative slash paths. Loading is
// recursive through imports; a module becomes visible to importers as soon
// as it is bound, so import cycles see partially checked modules instead
// of deadlocking.
type Loader struct {
	Root string
	Cfg  *config.Config

	builtins   *symbols.Scope
	loaded     map[string]*Module
	processing map[string]bool
	index      *PathIndex
}

// NewLoader creates a loader for the workspace rooted at root.
func NewLoader(root string, cfg *config.Config) *Loader {
	if cfg == nil {
		cfg = &config.Config{
			SearchPaths: []string{"."},
			Extensions:  config.SourceFileExtensions,
		}
	}
	return &Loader{
		Root:       root,
		Cfg:        cfg,
		builtins:   symbols.NewBuiltinsScope(),
		loaded:     make(map[string]*Module),
		processing: make(map[string]bool),
	}
}

// SetIndex attaches a persistent module-path index. Optional; without it
// every Locate call probes the filesystem.
func (l *Loader) SetIndex(idx *PathIndex) { l.index = idx }

// Load loads, binds, and checks the module at the given workspace-relative
// path, returning the cached module on repeat calls. During an import
// cycle the returned module may not be fully checked yet.
func (l *Loader) Load(rel string) (*Module, error) {
	rel = path.Clean(filepath.ToSlash(rel))
	if mod, ok := l.loaded[rel]; ok {
		return mod, nil
	}
	if l.processing[rel] {
		return nil, fmt.Errorf("circular dependency loading module %s", rel)
	}
	l.processing[rel] = true
	defer delete(l.processing, rel)

	abs := filepath.Join(l.Root, filepath.FromSlash(rel))
	source, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read module %s: %w", rel, err)
	}

	mod := &Module{Path: rel, AbsPath: abs}
	pipe := pipeline.New(
		pipeline.Parse{},
		pipeline.Bind{Builtins: l.builtins, Locator: l},
		// Register before checking so that cyclic imports resolve against
		// the bound (if partial) state instead of recursing forever.
		pipeline.Func(func(ctx *pipeline.Context) *pipeline.Context {
			if ctx.Env != nil {
				mod.AST = ctx.Root
				mod.Env = ctx.Env
				l.loaded[rel] = mod
			}
			return ctx
		}),
		pipeline.Check{Project: l.Project(), Lookup: l.Lookup},
	)
	ctx := pipe.Run(pipeline.NewContext(rel, source))
	if mod.Env == nil {
		if len(ctx.Errors) > 0 {
			return nil, fmt.Errorf("load module %s: %w", rel, ctx.Errors[0])
		}
		return nil, fmt.Errorf("load module %s: no analysis produced", rel)
	}
	mod.Checked = true
	return mod, nil
}

// LoadAbs loads the module at an absolute filesystem path inside the
// workspace root.
func (l *Loader) LoadAbs(abs string) (*Module, error) {
	rel, err := filepath.Rel(l.Root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, fmt.Errorf("path %s is outside workspace %s", abs, l.Root)
	}
	return l.Load(rel)
}

// Module returns an already-loaded module by workspace-relative path.
func (l *Loader) Module(rel string) (*Module, bool) {
	mod, ok := l.loaded[path.Clean(filepath.ToSlash(rel))]
	return mod, ok
}

// Modules returns the loaded modules sorted by path.
func (l *Loader) Modules() []*Module {
	out := make([]*Module, 0, len(l.loaded))
	for _, mod := range l.loaded {
		out = append(out, mod)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Lookup resolves a module path to its exports, loading the module on
// demand. It satisfies resolver.ImportLookup.
func (l *Loader) Lookup(modulePath string) (*resolver.ImportLookupResult, bool) {
	mod, err := l.Load(modulePath)
	if err != nil {
		return nil, false
	}
	return &resolver.ImportLookupResult{
		SymbolTable: binder.Exports(mod.Env),
		DocString:   mod.Env.DocString,
	}, true
}

// Locate resolves an import reference to a module file path. It satisfies
// binder.Locator. dots counts leading dots of relative imports; segments
// are the dotted-path components, possibly empty for "from . import x".
func (l *Loader) Locate(fromFile string, dots int, segments []string) (string, bool) {
	if l.index != nil {
		if p, ok := l.index.Get(fromFile, dots, segments); ok {
			if l.exists(p) {
				return p, true
			}
		}
	}
	p, ok := l.locate(fromFile, dots, segments)
	if ok && l.index != nil {
		l.index.Put(fromFile, dots, segments, p)
	}
	return p, ok
}

func (l *Loader) locate(fromFile string, dots int, segments []string) (string, bool) {
	if dots > 0 {
		// One dot means the containing package, which is the importing
		// file's directory; each further dot ascends one level.
		base := path.Dir(filepath.ToSlash(fromFile))
		for i := 1; i < dots; i++ {
			base = path.Dir(base)
		}
		return l.probe(path.Join(append([]string{base}, segments...)...))
	}

	for _, root := range l.Cfg.SearchPaths {
		candidate := path.Join(append([]string{filepath.ToSlash(root)}, segments...)...)
		if p, ok := l.probe(candidate); ok {
			return p, true
		}
	}
	return "", false
}

// probe checks whether a dotted-path prefix denotes a package directory or
// a module file. Packages win over same-named modules.
func (l *Loader) probe(stem string) (string, bool) {
	stem = path.Clean(stem)
	for _, ext := range l.Cfg.Extensions {
		p := path.Join(stem, config.InitFileName+ext)
		if l.exists(p) {
			return p, true
		}
	}
	for _, ext := range l.Cfg.Extensions {
		p := stem + ext
		if l.exists(p) {
			return p, true
		}
	}
	return "", false
}

func (l *Loader) exists(rel string) bool {
	info, err := os.Stat(filepath.Join(l.Root, filepath.FromSlash(rel)))
	return err == nil && !info.IsDir()
}
