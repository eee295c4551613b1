package resolver

import (
	"github.com/pynav/pynav/internal/ast"
	"github.com/pynav/pynav/internal/symbols"
	"github.com/pynav/pynav/internal/typesystem"
)

// TypeOf computes the type implied by a resolved (non-alias) declaration.
// It only retrieves information already attached to nodes by prior
// analysis; a missing attachment yields absent, because upstream inference
// may legitimately be partial.
func TypeOf(env Env, decl symbols.Declaration) (typesystem.Type, bool) {
	switch d := decl.(type) {
	case *symbols.BuiltIn:
		return d.DeclaredType, d.DeclaredType != nil
	case *symbols.Class:
		return env.TypeOf(d.NameNode)
	case *symbols.Function:
		return env.TypeOf(d.NameNode)
	case *symbols.Method:
		return env.TypeOf(d.NameNode)
	case *symbols.Parameter:
		if d.ParamNode == nil || d.ParamNode.Annotation == nil {
			return nil, false
		}
		ann := unwrapForwardRef(d.ParamNode.Annotation)
		t, ok := env.TypeOf(ann)
		if !ok {
			return nil, false
		}
		return convertToInstance(t), true
	case *symbols.Variable:
		if d.TypeAnnotation == nil {
			return nil, false
		}
		ann := unwrapForwardRef(d.TypeAnnotation)
		t, ok := env.TypeOf(ann)
		if !ok {
			return nil, false
		}
		t = TransformTypeForEnumMember(env, ann, t)
		return convertToInstance(t), true
	case *symbols.Alias:
		// Aliases have no derivable type at this layer; callers must
		// resolve them first.
		return nil, false
	}
	return nil, false
}

// HasType mirrors TypeOf structurally without computing the type.
func HasType(decl symbols.Declaration) bool {
	if decl == nil {
		return false
	}
	return decl.HasExplicitType()
}

// unwrapForwardRef unwraps one level of string-literal forward-reference
// wrapping: the annotation "Foo" carries the re-parsed inner expression.
func unwrapForwardRef(ann ast.Node) ast.Node {
	if s, ok := ann.(*ast.StringNode); ok && s.TypeAnnotation != nil {
		return s.TypeAnnotation
	}
	return ann
}

// convertToInstance converts a class-type annotation to its instance
// type. Annotations denote instance types, not the class object.
func convertToInstance(t typesystem.Type) typesystem.Type {
	switch tt := t.(type) {
	case *typesystem.TClass:
		return tt.ToInstance()
	case *typesystem.TUnion:
		variants := make([]typesystem.Type, 0, len(tt.Variants))
		for _, v := range tt.Variants {
			variants = append(variants, convertToInstance(v))
		}
		return &typesystem.TUnion{Variants: variants}
	}
	return t
}

// TransformTypeForEnumMember reinterprets a class-body assignment inside
// an enum class: NAME = value produces an enum member of the enclosing
// class, not a value of the literal's own type. The check is purely
// lexical (nearest enclosing class definition) and excludes the enum base
// classes themselves, whose body assignments keep their literal types.
func TransformTypeForEnumMember(env Env, node ast.Node, t typesystem.Type) typesystem.Type {
	cls := ast.EnclosingClass(node)
	if cls == nil {
		return t
	}
	attached, ok := env.TypeOf(cls.Name)
	if !ok {
		return t
	}
	classType, ok := attached.(*typesystem.TClass)
	if !ok {
		// The enclosing class's attached type should be class-shaped;
		// anything else is an upstream inconsistency we degrade over.
		return t
	}
	if classType.IsEnum && !classType.IsEnumBase {
		return classType.ToInstance()
	}
	return t
}

// DeclaredReturnType retrieves the declared return type attached to a
// function definition. Abstract functions assert no return type.
// Generators expose their declared yield type through a distinct accessor;
// the two shapes are never conflated.
func DeclaredReturnType(env Env, fn *ast.FunctionDefNode) (typesystem.Type, bool) {
	if fn == nil {
		return nil, false
	}
	attached, ok := env.TypeOf(fn.Name)
	if !ok {
		return nil, false
	}
	var fnType *typesystem.TFunc
	switch t := attached.(type) {
	case *typesystem.TFunc:
		fnType = t
	case *typesystem.TOverloaded:
		if len(t.Overloads) == 0 {
			return nil, false
		}
		fnType = t.Overloads[len(t.Overloads)-1]
	default:
		return nil, false
	}
	if fnType.IsAbstract {
		return nil, false
	}
	if fnType.IsGenerator {
		return fnType.DeclaredYield, fnType.DeclaredYield != nil
	}
	return fnType.DeclaredReturn, fnType.DeclaredReturn != nil
}
