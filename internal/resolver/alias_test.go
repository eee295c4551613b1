package resolver

import (
	"testing"

	"github.com/pynav/pynav/internal/symbols"
)

func TestResolveAliasNonAliasPassthrough(t *testing.T) {
	v := mkVariable("m.py", "x", 10, nil)
	lk := &tableLookup{}

	got, ok := ResolveAlias(v, lk.lookup)
	if !ok || got != v {
		t.Fatalf("ResolveAlias(variable) = %v, %v; want the declaration itself", got, ok)
	}
	if lk.calls != 0 {
		t.Errorf("lookup called %d times for a non-alias declaration", lk.calls)
	}
}

func TestResolveAliasModuleReferenceIsTerminal(t *testing.T) {
	a := mkAlias("m.py", "pkg/__init__.py", "", 0)
	lk := &tableLookup{}

	got, ok := ResolveAlias(a, lk.lookup)
	if !ok || got != symbols.Declaration(a) {
		t.Fatalf("ResolveAlias(module alias) = %v, %v; want the alias unchanged", got, ok)
	}
	if lk.calls != 0 {
		t.Errorf("module-reference alias should not trigger a lookup, got %d calls", lk.calls)
	}
}

func TestResolveAliasFollowsChain(t *testing.T) {
	target := mkVariable("b.py", "x", 5, mkName("int", 50))
	lk := &tableLookup{
		tables: map[string]map[string]*symbols.Symbol{
			"a.py": {"x": symbolWith("x", mkAlias("a.py", "b.py", "x", 0))},
			"b.py": {"x": symbolWith("x", target)},
		},
	}

	start := mkAlias("entry.py", "a.py", "x", 0)
	got, ok := ResolveAlias(start, lk.lookup)
	if !ok {
		t.Fatal("ResolveAlias returned absent for a resolvable chain")
	}
	if got != symbols.Declaration(target) {
		t.Errorf("ResolveAlias = %v, want the terminal variable declaration", got)
	}
}

func TestResolveAliasCycleReturnsOriginal(t *testing.T) {
	// a imports x from b, b imports x from a: a genuine two-cycle.
	aliasInA := mkAlias("a.py", "b.py", "x", 0)
	aliasInB := mkAlias("b.py", "a.py", "x", 0)
	lk := &tableLookup{
		tables: map[string]map[string]*symbols.Symbol{
			"a.py": {"x": symbolWith("x", aliasInA)},
			"b.py": {"x": symbolWith("x", aliasInB)},
		},
	}

	start := mkAlias("entry.py", "a.py", "x", 7)
	got, ok := ResolveAlias(start, lk.lookup)
	if !ok {
		t.Fatal("cycle must degrade to the original declaration, not to absent")
	}
	if got != symbols.Declaration(start) {
		t.Errorf("ResolveAlias on a cycle = %v, want the original input declaration", got)
	}
	// Cycle of length k terminates after no more than k+1 visits.
	if lk.calls > 3 {
		t.Errorf("lookup called %d times for a 2-cycle, want <= 3", lk.calls)
	}
}

func TestResolveAliasTypedOverInferred(t *testing.T) {
	untyped := mkVariable("m.py", "x", 1, nil)
	typed := mkVariable("m.py", "x", 2, mkName("int", 60))
	later := mkVariable("m.py", "x", 3, nil)
	lk := &tableLookup{
		tables: map[string]map[string]*symbols.Symbol{
			"m.py": {"x": symbolWith("x", untyped, typed, later)},
		},
	}

	got, ok := ResolveAlias(mkAlias("entry.py", "m.py", "x", 0), lk.lookup)
	if !ok {
		t.Fatal("ResolveAlias returned absent")
	}
	if got != symbols.Declaration(typed) {
		t.Errorf("ResolveAlias = %v, want the typed declaration even when a later untyped one exists", got)
	}
}

func TestResolveAliasLastDeclarationTieBreak(t *testing.T) {
	d1 := mkVariable("m.py", "x", 1, mkName("int", 60))
	d2 := mkVariable("m.py", "x", 2, mkName("int", 70))
	d3 := mkVariable("m.py", "x", 3, mkName("int", 80))
	lk := &tableLookup{
		tables: map[string]map[string]*symbols.Symbol{
			"m.py": {"x": symbolWith("x", d1, d2, d3)},
		},
	}

	got, ok := ResolveAlias(mkAlias("entry.py", "m.py", "x", 0), lk.lookup)
	if !ok {
		t.Fatal("ResolveAlias returned absent")
	}
	if got != symbols.Declaration(d3) {
		t.Errorf("ResolveAlias = %v, want the last declaration d3", got)
	}
}

func TestResolveAliasSubmoduleFallback(t *testing.T) {
	start := mkAlias("entry.py", "pkg/__init__.py", "sub", 0)
	start.SubmoduleFallback = mkAlias("entry.py", "pkg/sub.py", "", 1)
	lk := &tableLookup{
		tables: map[string]map[string]*symbols.Symbol{
			"pkg/__init__.py": {}, // the package exports nothing named sub
		},
	}

	got, ok := ResolveAlias(start, lk.lookup)
	if !ok {
		t.Fatal("ResolveAlias returned absent, want the submodule fallback")
	}
	if got != symbols.Declaration(start.SubmoduleFallback) {
		t.Errorf("ResolveAlias = %v, want the fallback alias", got)
	}
}

func TestResolveAliasLookupFailureIsTerminal(t *testing.T) {
	lk := &tableLookup{}
	if got, ok := ResolveAlias(mkAlias("entry.py", "gone.py", "x", 0), lk.lookup); ok {
		t.Errorf("ResolveAlias = %v, want absent for an unresolvable module", got)
	}
	if lk.calls != 1 {
		t.Errorf("lookup failure must not be retried, got %d calls", lk.calls)
	}
}

func TestResolveAliasEmptySymbolIsAbsent(t *testing.T) {
	lk := &tableLookup{
		tables: map[string]map[string]*symbols.Symbol{
			"m.py": {"x": symbols.NewSymbol("x")},
		},
	}
	if got, ok := ResolveAlias(mkAlias("entry.py", "m.py", "x", 0), lk.lookup); ok {
		t.Errorf("ResolveAlias = %v, want absent for a symbol with no declarations", got)
	}
}
