package typesystem

import (
	"reflect"
	"testing"
)

func TestMroLinearization(t *testing.T) {
	object := NewClass("object", nil)
	a := NewClass("A", nil)
	b := NewClass("B", nil)
	c := NewClass("C", nil)
	a.Bases = []*TClass{object}
	b.Bases = []*TClass{object}
	c.Bases = []*TClass{a, b}

	mro := c.Mro()
	want := []*TClass{c, a, object, b}
	if !reflect.DeepEqual(mro, want) {
		names := make([]string, len(mro))
		for i, cls := range mro {
			names[i] = cls.Name
		}
		t.Errorf("mro = %v", names)
	}
}

func TestMroCyclicBasesTerminate(t *testing.T) {
	a := NewClass("A", nil)
	b := NewClass("B", nil)
	a.Bases = []*TClass{b}
	b.Bases = []*TClass{a}

	if got := len(a.Mro()); got != 2 {
		t.Errorf("mro length = %d, want 2", got)
	}
}

func TestDerivesFrom(t *testing.T) {
	object := NewClass("object", nil)
	base := NewClass("Base", nil)
	base.Bases = []*TClass{object}
	derived := NewClass("Derived", nil)
	derived.Bases = []*TClass{base}
	other := NewClass("Other", nil)

	if !derived.DerivesFrom(derived) {
		t.Error("class does not derive from itself")
	}
	if !derived.DerivesFrom(object) {
		t.Error("transitive base not found")
	}
	if derived.DerivesFrom(other) {
		t.Error("unrelated class reported as base")
	}
}

func TestModuleFieldPrecedence(t *testing.T) {
	mod := NewModule("pkg")
	export := member("export")
	submodule := member("submodule")
	mod.LoaderFields["name"] = submodule

	m, ok := mod.Field("name")
	if !ok || m != submodule {
		t.Fatal("loader field not found")
	}

	mod.Fields["name"] = export
	m, ok = mod.Field("name")
	if !ok || m != export {
		t.Error("direct export does not shadow the loader field")
	}
}

func TestStringRendering(t *testing.T) {
	str := NewClass("str", nil)
	intCls := NewClass("int", nil)
	fn := &TFunc{
		Name:           "f",
		Params:         []Param{{Name: "a", Type: intCls.ToInstance()}, {Name: "b"}},
		DeclaredReturn: str.ToInstance(),
	}

	cases := []struct {
		typ  Type
		want string
	}{
		{Unknown, "Unknown"},
		{str, "type[str]"},
		{str.ToInstance(), "str"},
		{fn, "(a: int, b) -> str"},
		{&TUnion{Variants: []Type{intCls.ToInstance(), str.ToInstance()}}, "int | str"},
		{&TModule{Name: "os"}, "Module(\"os\")"},
	}
	for _, tc := range cases {
		if got := tc.typ.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestSubtypes(t *testing.T) {
	intCls := NewClass("int", nil)
	str := NewClass("str", nil)

	union := &TUnion{Variants: []Type{intCls, str}}
	if got := Subtypes(union); len(got) != 2 {
		t.Errorf("union subtypes = %d", len(got))
	}
	if got := Subtypes(intCls); len(got) != 1 || got[0] != Type(intCls) {
		t.Errorf("non-union subtypes = %v", got)
	}
}

type fakeMember string

func (m fakeMember) MemberName() string { return string(m) }

func member(name string) Member { return fakeMember(name) }
