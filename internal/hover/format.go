package hover

import (
	"fmt"
	"strings"

	"github.com/pynav/pynav/internal/symbols"
	"github.com/pynav/pynav/internal/typesystem"
)

// Label renders the one-line description shown for a hover result,
// matching the declaration kind the way editors label Python entities.
func (r *Result) Label() string {
	switch d := r.Decl.(type) {
	case *symbols.Class:
		return "class " + r.Name
	case *symbols.Function, *symbols.Method:
		return funcLabel(r.Name, r.Type)
	case *symbols.Parameter:
		return "(parameter) " + r.Name + typeSuffix(r.Type)
	case *symbols.Variable:
		if d.IsConstant {
			return "(constant) " + r.Name + typeSuffix(r.Type)
		}
		return "(variable) " + r.Name + typeSuffix(r.Type)
	case *symbols.Alias:
		if mod, ok := r.Type.(*typesystem.TModule); ok {
			return "(module) " + mod.Name
		}
		return "(module) " + r.Name
	case *symbols.BuiltIn:
		switch r.Type.(type) {
		case *typesystem.TClass:
			return "class " + r.Name
		case *typesystem.TFunc, *typesystem.TOverloaded:
			return funcLabel(r.Name, r.Type)
		}
		return r.Name + typeSuffix(r.Type)
	}
	return r.Name + typeSuffix(r.Type)
}

// Markdown renders the hover contents as a fenced code block plus the
// docstring, the shape language clients display directly.
func (r *Result) Markdown() string {
	var b strings.Builder
	b.WriteString("```python\n")
	b.WriteString(r.Label())
	b.WriteString("\n```")
	if r.DocString != "" {
		b.WriteString("\n\n")
		b.WriteString(r.DocString)
	}
	return b.String()
}

func funcLabel(name string, t typesystem.Type) string {
	var fn *typesystem.TFunc
	switch tt := t.(type) {
	case *typesystem.TFunc:
		fn = tt
	case *typesystem.TOverloaded:
		if len(tt.Overloads) > 0 {
			fn = tt.Overloads[len(tt.Overloads)-1]
		}
	}
	if fn == nil {
		return "def " + name + "(...)"
	}
	if fn.IsProperty {
		ret := "Unknown"
		if fn.DeclaredReturn != nil {
			ret = fn.DeclaredReturn.String()
		}
		return "(property) " + name + ": " + ret
	}
	label := "def " + name + fn.String()
	if fn.IsAsync {
		label = "async " + label
	}
	return label
}

func typeSuffix(t typesystem.Type) string {
	if t == nil {
		return ": " + typesystem.Unknown.String()
	}
	return fmt.Sprintf(": %s", t)
}
