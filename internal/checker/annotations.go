package checker

import (
	"github.com/pynav/pynav/internal/ast"
	"github.com/pynav/pynav/internal/resolver"
	"github.com/pynav/pynav/internal/symbols"
	"github.com/pynav/pynav/internal/typesystem"
)

// evalAnnotation evaluates a type-annotation expression to the class-level
// type it denotes (the class object, not the instance) and attaches the
// result to the annotation node. Consumers convert to instance types at
// their own boundary.
func (c *checker) evalAnnotation(ann ast.Node) (typesystem.Type, bool) {
	if ann == nil {
		return nil, false
	}
	if t, ok := c.env.TypeOf(ann); ok {
		return t, true
	}

	var result typesystem.Type
	switch a := ann.(type) {
	case *ast.NameNode:
		result = c.evalAnnotationName(a)
	case *ast.AttributeNode:
		result = c.evalAnnotationAttr(a)
	case *ast.SubscriptNode:
		result = c.evalAnnotationSubscript(a)
	case *ast.StringNode:
		if a.TypeAnnotation != nil {
			if t, ok := c.evalAnnotation(a.TypeAnnotation); ok {
				result = t
			}
		}
	}
	if result == nil {
		return nil, false
	}
	c.env.SetType(ann, result)
	return result, true
}

func (c *checker) evalAnnotationName(name *ast.NameNode) typesystem.Type {
	if name.Value == "None" {
		return symbols.NoneClass
	}
	scope, ok := c.env.ScopeOf(name)
	if !ok {
		return nil
	}
	sym, ok := scope.LookupRecursive(name.Value)
	if !ok {
		return nil
	}
	return c.symbolType(sym)
}

func (c *checker) evalAnnotationAttr(attr *ast.AttributeNode) typesystem.Type {
	if attr.Attr == nil {
		return nil
	}
	if _, ok := c.env.TypeOf(attr.Base); !ok {
		if t, ok := c.exprType(attr.Base); ok {
			c.env.SetType(attr.Base, t)
		}
	}
	decls, ok := resolver.Resolve(c.env, attr.Attr)
	if !ok || len(decls) == 0 {
		return nil
	}
	if t, ok := c.declType(decls[len(decls)-1]); ok {
		return t
	}
	return nil
}

func (c *checker) evalAnnotationSubscript(sub *ast.SubscriptNode) typesystem.Type {
	switch baseExprName(sub.Base) {
	case "Union":
		var variants []typesystem.Type
		for _, index := range sub.Index {
			if t, ok := c.evalAnnotation(index); ok {
				variants = append(variants, t)
			} else {
				variants = append(variants, typesystem.Unknown)
			}
		}
		if len(variants) == 0 {
			return nil
		}
		return &typesystem.TUnion{Variants: variants}
	case "Optional":
		if len(sub.Index) == 0 {
			return nil
		}
		inner, ok := c.evalAnnotation(sub.Index[0])
		if !ok {
			inner = typesystem.Unknown
		}
		return &typesystem.TUnion{Variants: []typesystem.Type{inner, symbols.NoneClass}}
	case "Literal", "Annotated", "Callable":
		// Not modeled beyond their existence.
		return nil
	}
	// Generic application erases to the base class: list[int] hovers as
	// list.
	if t, ok := c.evalAnnotation(sub.Base); ok {
		return t
	}
	return nil
}

// symbolType derives a type from a symbol's declarations, preferring
// explicitly typed declarations and the latest one among equals.
func (c *checker) symbolType(sym *symbols.Symbol) typesystem.Type {
	if t, ok := sym.SynthesizedType(); ok {
		return t
	}
	decls := sym.TypedDeclarations()
	if len(decls) == 0 {
		decls = sym.Declarations()
	}
	for i := len(decls) - 1; i >= 0; i-- {
		if t, ok := c.declType(decls[i]); ok {
			return t
		}
	}
	return nil
}

// declType computes the type a declaration contributes in annotation or
// expression position.
func (c *checker) declType(decl symbols.Declaration) (typesystem.Type, bool) {
	if c.inflight[decl] {
		return nil, false
	}
	c.inflight[decl] = true
	defer delete(c.inflight, decl)

	switch d := decl.(type) {
	case *symbols.BuiltIn:
		return d.DeclaredType, d.DeclaredType != nil
	case *symbols.Class, *symbols.Function, *symbols.Method:
		return c.project.TypeOf(decl.Node())
	case *symbols.Alias:
		return resolver.InferredTypeOf(c.project, decl, c.lookup)
	case *symbols.Parameter:
		if t, ok := resolver.TypeOf(c.project, decl); ok {
			return t, true
		}
		return c.project.TypeOf(decl.Node())
	case *symbols.Variable:
		if d.TypeAnnotation != nil {
			return resolver.TypeOf(c.project, decl)
		}
		if t, ok := c.project.TypeOf(d.NameNode); ok {
			return t, true
		}
		// Lazy inference for assignment aliases the main inference pass
		// has not reached yet, such as "MyList = list" referenced above
		// its own definition order.
		if assign, ok := d.NameNode.Parent().(*ast.AssignNode); ok && assign.Value != nil {
			return c.exprType(assign.Value)
		}
	}
	return nil, false
}
