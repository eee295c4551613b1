package hover

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pynav/pynav/internal/modules"
)

// offsetOf finds the byte offset of the nth occurrence of needle.
func offsetOf(t *testing.T, source, needle string, nth int) int {
	t.Helper()
	offset := -1
	for i := 0; i <= nth; i++ {
		next := strings.Index(source[offset+1:], needle)
		require.GreaterOrEqual(t, next, 0, "occurrence %d of %q not found", i, needle)
		offset += next + 1
	}
	return offset
}

func loadWorkspace(t *testing.T, files map[string]string, entry string) (*modules.Loader, *modules.Module) {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0644))
	}
	loader := modules.NewLoader(root, nil)
	mod, err := loader.Load(entry)
	require.NoError(t, err)
	return loader, mod
}

func hoverAt(t *testing.T, loader *modules.Loader, mod *modules.Module, offset int) *Result {
	t.Helper()
	res, ok := At(mod.AST, mod.Env, loader.Project(), loader.Lookup, offset)
	require.True(t, ok, "no hover result at offset %d", offset)
	return res
}

func TestHoverClass(t *testing.T) {
	source := `class Greeter:
    """Says hello."""

g: Greeter = Greeter()
`
	loader, mod := loadWorkspace(t, map[string]string{"main.py": source}, "main.py")

	res := hoverAt(t, loader, mod, offsetOf(t, source, "Greeter", 1))
	assert.Equal(t, "class Greeter", res.Label())
	assert.Equal(t, "Says hello.", res.DocString)
	assert.Contains(t, res.Markdown(), "```python\nclass Greeter\n```")
	assert.Contains(t, res.Markdown(), "Says hello.")
}

func TestHoverFunction(t *testing.T) {
	source := `def greet(name: str, loud: bool = False) -> str:
    """Builds a greeting."""
    return name

out = greet("x")
`
	loader, mod := loadWorkspace(t, map[string]string{"main.py": source}, "main.py")

	res := hoverAt(t, loader, mod, offsetOf(t, source, "greet", 1))
	label := res.Label()
	assert.True(t, strings.HasPrefix(label, "def greet("), "label = %q", label)
	assert.Contains(t, label, "name: str")
	assert.Contains(t, label, "-> str")
	assert.Equal(t, "Builds a greeting.", res.DocString)
}

func TestHoverVariableAndConstant(t *testing.T) {
	source := `count = 1
MAX_SIZE = 100

use = count
limit = MAX_SIZE
`
	loader, mod := loadWorkspace(t, map[string]string{"main.py": source}, "main.py")

	res := hoverAt(t, loader, mod, offsetOf(t, source, "count", 1))
	assert.Equal(t, "(variable) count: int", res.Label())

	res = hoverAt(t, loader, mod, offsetOf(t, source, "MAX_SIZE", 1))
	assert.Equal(t, "(constant) MAX_SIZE: int", res.Label())
}

func TestHoverParameter(t *testing.T) {
	source := `def f(flag: bool):
    return flag
`
	loader, mod := loadWorkspace(t, map[string]string{"main.py": source}, "main.py")

	res := hoverAt(t, loader, mod, offsetOf(t, source, "flag", 1))
	assert.Equal(t, "(parameter) flag: bool", res.Label())
}

func TestHoverBuiltin(t *testing.T) {
	source := `n = len("abc")
`
	loader, mod := loadWorkspace(t, map[string]string{"main.py": source}, "main.py")

	res := hoverAt(t, loader, mod, offsetOf(t, source, "len", 0))
	assert.True(t, strings.HasPrefix(res.Label(), "def len("), "label = %q", res.Label())
}

func TestHoverImportedModule(t *testing.T) {
	files := map[string]string{
		"helper.py": "\"\"\"Helper things.\"\"\"\n\ndef aid():\n    pass\n",
		"main.py":   "import helper\n\nhelper.aid()\n",
	}
	loader, mod := loadWorkspace(t, files, "main.py")
	source := files["main.py"]

	res := hoverAt(t, loader, mod, offsetOf(t, source, "helper", 1))
	assert.Equal(t, "(module) helper", res.Label())
	assert.Equal(t, "Helper things.", res.DocString)
}

func TestHoverImportedName(t *testing.T) {
	files := map[string]string{
		"lib.py":  "class Widget:\n    \"\"\"A widget.\"\"\"\n",
		"main.py": "from lib import Widget\n\nw: Widget = Widget()\n",
	}
	loader, mod := loadWorkspace(t, files, "main.py")
	source := files["main.py"]

	res := hoverAt(t, loader, mod, offsetOf(t, source, "Widget", 1))
	assert.Equal(t, "A widget.", res.DocString)
}

func TestDefinitionLocal(t *testing.T) {
	source := `class Target:
    pass

t: Target = Target()
`
	loader, mod := loadWorkspace(t, map[string]string{"main.py": source}, "main.py")

	loc, ok := Definition(mod.AST, mod.Env, loader.Lookup, offsetOf(t, source, "Target", 1))
	require.True(t, ok)
	assert.Equal(t, "main.py", loc.Path)
	assert.Equal(t, offsetOf(t, source, "Target", 0), loc.Range.Start.Byte)
}

func TestDefinitionAcrossModules(t *testing.T) {
	files := map[string]string{
		"lib.py":  "class Widget:\n    pass\n",
		"main.py": "from lib import Widget\n\nw: Widget = Widget()\n",
	}
	loader, mod := loadWorkspace(t, files, "main.py")
	source := files["main.py"]

	loc, ok := Definition(mod.AST, mod.Env, loader.Lookup, offsetOf(t, source, "Widget", 1))
	require.True(t, ok)
	assert.Equal(t, "lib.py", loc.Path)
}

func TestDefinitionBuiltinReportsNone(t *testing.T) {
	source := `n = len("abc")
`
	loader, mod := loadWorkspace(t, map[string]string{"main.py": source}, "main.py")

	_, ok := Definition(mod.AST, mod.Env, loader.Lookup, offsetOf(t, source, "len", 0))
	assert.False(t, ok)
}
