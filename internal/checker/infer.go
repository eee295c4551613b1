package checker

import (
	"github.com/pynav/pynav/internal/ast"
	"github.com/pynav/pynav/internal/resolver"
	"github.com/pynav/pynav/internal/symbols"
	"github.com/pynav/pynav/internal/typesystem"
)

// exprType infers the type of a value expression. Inference is shallow:
// literals, names, attribute chains, and constructor calls; anything else
// stays untyped rather than guessing.
func (c *checker) exprType(expr ast.Node) (typesystem.Type, bool) {
	switch e := expr.(type) {
	case *ast.NumberNode:
		if e.IsFloat {
			return symbols.FloatClass.ToInstance(), true
		}
		return symbols.IntClass.ToInstance(), true
	case *ast.StringNode:
		return symbols.StrClass.ToInstance(), true
	case *ast.NameNode:
		return c.nameExprType(e)
	case *ast.AttributeNode:
		return c.attrExprType(e)
	case *ast.CallNode:
		return c.callExprType(e)
	}
	return nil, false
}

func (c *checker) nameExprType(name *ast.NameNode) (typesystem.Type, bool) {
	switch name.Value {
	case "True", "False":
		return symbols.BoolClass.ToInstance(), true
	case "None":
		return symbols.NoneClass.ToInstance(), true
	}
	decls, ok := resolver.Resolve(c.env, name)
	if !ok || len(decls) == 0 {
		return nil, false
	}
	return c.declType(decls[len(decls)-1])
}

func (c *checker) attrExprType(attr *ast.AttributeNode) (typesystem.Type, bool) {
	if attr.Attr == nil {
		return nil, false
	}
	if _, ok := c.env.TypeOf(attr.Base); !ok {
		if t, ok := c.exprType(attr.Base); ok {
			c.env.SetType(attr.Base, t)
		}
	}
	decls, ok := resolver.Resolve(c.env, attr.Attr)
	if !ok || len(decls) == 0 {
		return nil, false
	}
	return c.declType(decls[len(decls)-1])
}

// callExprType types a call by its callee: calling a class constructs an
// instance, calling a function yields its declared return type.
func (c *checker) callExprType(call *ast.CallNode) (typesystem.Type, bool) {
	callee, ok := c.exprType(call.Func)
	if !ok {
		return nil, false
	}
	switch t := callee.(type) {
	case *typesystem.TClass:
		return t.ToInstance(), true
	case *typesystem.TFunc:
		return t.DeclaredReturn, t.DeclaredReturn != nil
	case *typesystem.TOverloaded:
		if len(t.Overloads) == 0 {
			return nil, false
		}
		last := t.Overloads[len(t.Overloads)-1]
		return last.DeclaredReturn, last.DeclaredReturn != nil
	}
	return nil, false
}

// unwrapAnnotation unwraps one level of string-literal forward-reference
// wrapping.
func unwrapAnnotation(ann ast.Node) ast.Node {
	if s, ok := ann.(*ast.StringNode); ok && s.TypeAnnotation != nil {
		return s.TypeAnnotation
	}
	return ann
}
