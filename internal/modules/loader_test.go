package modules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pynav/pynav/internal/typesystem"
)

func writeWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0644))
	}
	return root
}

func TestLoadSingleModule(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"main.py": "\"\"\"Entry point.\"\"\"\n\nx = 1\n",
	})
	loader := NewLoader(root, nil)

	mod, err := loader.Load("main.py")
	require.NoError(t, err)
	require.NotNil(t, mod.Env)
	assert.True(t, mod.Checked)
	assert.Equal(t, "main.py", mod.Path)
	assert.Equal(t, "Entry point.", mod.Env.DocString)

	again, err := loader.Load("./main.py")
	require.NoError(t, err)
	assert.Same(t, mod, again, "paths normalize to one cache entry")
}

func TestLoadPullsInImports(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"helper.py": "class Thing:\n    pass\n",
		"main.py":   "from helper import Thing\n\nt: Thing = Thing()\n",
	})
	loader := NewLoader(root, nil)

	_, err := loader.Load("main.py")
	require.NoError(t, err)

	helper, ok := loader.Module("helper.py")
	require.True(t, ok, "annotation use of an import loads the target module")
	assert.True(t, helper.Checked)

	paths := make([]string, 0, 2)
	for _, mod := range loader.Modules() {
		paths = append(paths, mod.Path)
	}
	assert.Equal(t, []string{"helper.py", "main.py"}, paths)
}

func TestLocatePackagesWinOverModules(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"pkg/__init__.py": "",
		"pkg.py":          "",
		"plain.py":        "",
	})
	loader := NewLoader(root, nil)

	p, ok := loader.Locate("main.py", 0, []string{"pkg"})
	require.True(t, ok)
	assert.Equal(t, "pkg/__init__.py", p)

	p, ok = loader.Locate("main.py", 0, []string{"plain"})
	require.True(t, ok)
	assert.Equal(t, "plain.py", p)

	_, ok = loader.Locate("main.py", 0, []string{"missing"})
	assert.False(t, ok)
}

func TestLocateRelativeImports(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"pkg/__init__.py":     "",
		"pkg/mod.py":          "",
		"pkg/sib.py":          "",
		"pkg/sub/__init__.py": "",
		"pkg/sub/deep.py":     "",
		"top.py":              "",
	})
	loader := NewLoader(root, nil)

	p, ok := loader.Locate("pkg/mod.py", 1, []string{"sib"})
	require.True(t, ok)
	assert.Equal(t, "pkg/sib.py", p)

	// "from . import x" has no segments; the reference is the package itself.
	p, ok = loader.Locate("pkg/sub/deep.py", 1, nil)
	require.True(t, ok)
	assert.Equal(t, "pkg/sub/__init__.py", p)

	p, ok = loader.Locate("pkg/sub/deep.py", 2, []string{"sib"})
	require.True(t, ok)
	assert.Equal(t, "pkg/sib.py", p)

	p, ok = loader.Locate("pkg/mod.py", 2, []string{"top"})
	require.True(t, ok)
	assert.Equal(t, "top.py", p)
}

func TestLookupExports(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"util.py": "\"\"\"Utilities.\"\"\"\n\ndef shout(s: str) -> str:\n    return s\n\ndef _hidden():\n    pass\n",
	})
	loader := NewLoader(root, nil)

	result, ok := loader.Lookup("util.py")
	require.True(t, ok)
	assert.Equal(t, "Utilities.", result.DocString)
	assert.Contains(t, result.SymbolTable, "shout")
	assert.NotContains(t, result.SymbolTable, "_hidden")

	_, ok = loader.Lookup("nope.py")
	assert.False(t, ok)
}

func TestLoadImportCycle(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"a.py": "from b import B\n\nclass A:\n    pass\n\nvalue: B = B()\n",
		"b.py": "from a import A\n\nclass B:\n    pass\n\nother: A = A()\n",
	})
	loader := NewLoader(root, nil)

	mod, err := loader.Load("a.py")
	require.NoError(t, err, "cycles resolve against partially checked modules")
	assert.True(t, mod.Checked)

	b, ok := loader.Module("b.py")
	require.True(t, ok)
	assert.True(t, b.Checked)
}

func TestLoadAbsRejectsOutsideRoot(t *testing.T) {
	root := writeWorkspace(t, map[string]string{"main.py": "x = 1\n"})
	loader := NewLoader(root, nil)

	_, err := loader.LoadAbs(filepath.Join(root, "main.py"))
	require.NoError(t, err)

	_, err = loader.LoadAbs(filepath.Join(root, "..", "escape.py"))
	assert.Error(t, err)
}

func TestProjectRoutesAcrossModules(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"lib.py":  "class Widget:\n    def spin(self) -> int:\n        return 1\n",
		"main.py": "from lib import Widget\n\nw: Widget = Widget()\n",
	})
	loader := NewLoader(root, nil)

	_, err := loader.Load("main.py")
	require.NoError(t, err)

	lib, ok := loader.Module("lib.py")
	require.True(t, ok)

	project := loader.Project()
	for _, cls := range lib.Env.Classes() {
		typ, ok := project.TypeOf(cls.Name)
		require.True(t, ok, "project routes nodes to their owning module")
		_, isClass := typ.(*typesystem.TClass)
		assert.True(t, isClass)
	}
}
