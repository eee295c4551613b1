// Package checker computes types for a bound module and attaches them to
// parse-tree nodes through the module's side tables. It runs once per
// module after binding; resolution queries later read the attachments and
// never trigger re-checking.
package checker

import (
	"github.com/pynav/pynav/internal/ast"
	"github.com/pynav/pynav/internal/binder"
	"github.com/pynav/pynav/internal/resolver"
	"github.com/pynav/pynav/internal/symbols"
	"github.com/pynav/pynav/internal/typesystem"
	"github.com/pynav/pynav/internal/utils"
)

// enumBaseNames are the class names whose subclasses get enum-member
// semantics for their class-body assignments.
var enumBaseNames = map[string]bool{
	"Enum":     true,
	"IntEnum":  true,
	"StrEnum":  true,
	"Flag":     true,
	"IntFlag":  true,
	"ReprEnum": true,
}

// Check types a bound module. project is the cross-module view used to
// read types attached by other modules' checks; when nil the module's own
// env is used. lookup resolves module paths to exports for import-heavy
// expressions; nil disables import following.
func Check(env *binder.Env, project resolver.Env, lookup resolver.ImportLookup) {
	if project == nil {
		project = env
	}
	if lookup == nil {
		lookup = func(string) (*resolver.ImportLookupResult, bool) { return nil, false }
	}
	c := &checker{env: env, project: project, lookup: lookup, inflight: make(map[symbols.Declaration]bool)}

	classes := env.Classes()
	c.createClassTypes(classes)
	c.resolveBases(classes)
	c.populateClassMembers(classes)
	c.checkFunctions(env.Functions())
	c.evalVariableAnnotations()
	c.attachReceiverTypes(classes)
	c.inferAssignments()
	c.typeAttributeBases()
}

type checker struct {
	env     *binder.Env
	project resolver.Env
	lookup  resolver.ImportLookup

	// inflight guards lazy declaration typing against self-referential
	// assignments.
	inflight map[symbols.Declaration]bool
}

func (c *checker) createClassTypes(classes []*ast.ClassDefNode) {
	for _, cls := range classes {
		if cls.Name == nil {
			continue
		}
		ct := typesystem.NewClass(cls.Name.Value, cls.Name)
		ct.DocString = cls.DocString
		c.env.SetType(cls.Name, ct)
	}
}

// resolveBases wires base-class links and derives the enum flags. A base
// that names an enum class marks the subclass even when the base itself
// cannot be resolved to a class type.
func (c *checker) resolveBases(classes []*ast.ClassDefNode) {
	isEnumModule := utils.ModuleName(c.env.Path) == "enum"

	for _, cls := range classes {
		ct := c.classType(cls)
		if ct == nil {
			continue
		}
		if isEnumModule && enumBaseNames[ct.Name] {
			ct.IsEnumBase = true
			ct.IsEnum = true
		}

		for _, base := range cls.Bases {
			if t, ok := c.evalAnnotation(base); ok {
				if baseClass, ok := t.(*typesystem.TClass); ok {
					ct.Bases = append(ct.Bases, baseClass)
					if baseClass.IsEnum || baseClass.IsEnumBase {
						ct.IsEnum = true
					}
					continue
				}
			}
			if enumBaseNames[baseExprName(base)] {
				ct.IsEnum = true
			}
		}
		if len(ct.Bases) == 0 && ct != symbols.ObjectClass {
			ct.Bases = append(ct.Bases, symbols.ObjectClass)
		}
	}
}

func (c *checker) populateClassMembers(classes []*ast.ClassDefNode) {
	for _, cls := range classes {
		ct := c.classType(cls)
		if ct == nil {
			continue
		}
		if scope, ok := c.env.ScopeOf(cls); ok {
			for name, sym := range scope.Symbols() {
				ct.Fields[name] = sym
			}
		}
		for name, sym := range c.env.InstanceAttrs(cls) {
			ct.InstanceFields[name] = sym
		}
	}
}

func (c *checker) checkFunctions(funcs []*ast.FunctionDefNode) {
	for _, fn := range funcs {
		if fn.Name == nil {
			continue
		}
		c.env.SetType(fn.Name, c.buildFuncType(fn))
	}
	c.groupOverloads(funcs)
}

func (c *checker) buildFuncType(fn *ast.FunctionDefNode) *typesystem.TFunc {
	ft := &typesystem.TFunc{
		Name:        fn.Name.Value,
		Node:        fn.Name,
		IsAsync:     fn.IsAsync,
		IsGenerator: fn.IsGenerator,
		DocString:   fn.DocString,
	}

	for _, dec := range fn.Decorators {
		switch decoratorName(dec) {
		case "abstractmethod":
			ft.IsAbstract = true
		case "overload":
			ft.IsOverload = true
		case "property", "cached_property":
			ft.IsProperty = true
		case "staticmethod":
			ft.IsStaticMeth = true
		case "classmethod":
			ft.IsClassMethod = true
		}
	}

	for _, param := range fn.Params {
		p := typesystem.Param{HasDefault: param.Default != nil}
		if param.Name != nil {
			p.Name = param.Name.Value
		}
		if param.Annotation != nil {
			if t, ok := c.evalAnnotation(param.Annotation); ok {
				p.Type = instanceType(t)
			}
		}
		ft.Params = append(ft.Params, p)
	}

	if fn.ReturnAnnotation != nil {
		if t, ok := c.evalAnnotation(fn.ReturnAnnotation); ok {
			ft.DeclaredReturn = instanceType(t)
		}
		if fn.IsGenerator {
			ft.DeclaredYield = c.declaredYield(fn.ReturnAnnotation)
		}
	}
	return ft
}

// declaredYield extracts the yield type from a generator return
// annotation such as Generator[int, None, None] or Iterator[str].
func (c *checker) declaredYield(ann ast.Node) typesystem.Type {
	sub, ok := unwrapAnnotation(ann).(*ast.SubscriptNode)
	if !ok || len(sub.Index) == 0 {
		return nil
	}
	switch baseExprName(sub.Base) {
	case "Generator", "Iterator", "Iterable", "AsyncGenerator", "AsyncIterator", "AsyncIterable":
	default:
		return nil
	}
	if t, ok := c.evalAnnotation(sub.Index[0]); ok {
		return instanceType(t)
	}
	return nil
}

// groupOverloads collapses a run of @overload-decorated definitions plus
// their implementation into one overloaded type attached to the final
// definition's name.
func (c *checker) groupOverloads(funcs []*ast.FunctionDefNode) {
	type groupKey struct {
		parent ast.Node
		name   string
	}
	groups := make(map[groupKey][]*ast.FunctionDefNode)
	var order []groupKey
	for _, fn := range funcs {
		if fn.Name == nil {
			continue
		}
		key := groupKey{parent: fn.Parent(), name: fn.Name.Value}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], fn)
	}

	for _, key := range order {
		group := groups[key]
		if len(group) < 2 {
			continue
		}
		overloaded := false
		var variants []*typesystem.TFunc
		for _, fn := range group {
			t, ok := c.env.TypeOf(fn.Name)
			if !ok {
				continue
			}
			ft, ok := t.(*typesystem.TFunc)
			if !ok {
				continue
			}
			variants = append(variants, ft)
			if ft.IsOverload {
				overloaded = true
			}
		}
		if !overloaded || len(variants) < 2 {
			continue
		}
		last := group[len(group)-1]
		c.env.SetType(last.Name, &typesystem.TOverloaded{Overloads: variants})
	}
}

func (c *checker) evalVariableAnnotations() {
	ast.Walk(c.env.Module, func(n ast.Node) bool {
		if assign, ok := n.(*ast.AssignNode); ok && assign.Annotation != nil {
			c.evalAnnotation(assign.Annotation)
		}
		return true
	})
}

// attachReceiverTypes gives the conventional self and cls parameters
// their implied types when left unannotated.
func (c *checker) attachReceiverTypes(classes []*ast.ClassDefNode) {
	for _, cls := range classes {
		ct := c.classType(cls)
		if ct == nil {
			continue
		}
		for _, stmt := range cls.Body {
			fn, ok := stmt.(*ast.FunctionDefNode)
			if !ok || len(fn.Params) == 0 {
				continue
			}
			first := fn.Params[0]
			if first.Name == nil || first.Annotation != nil {
				continue
			}
			switch first.Name.Value {
			case "self":
				c.env.SetType(first, ct.ToInstance())
			case "cls":
				c.env.SetType(first, ct)
			}
		}
	}
}

// inferAssignments attaches inferred types to unannotated assignment
// targets. Inside an enum class the inferred literal type is replaced by
// the member type of the enclosing class.
func (c *checker) inferAssignments() {
	ast.Walk(c.env.Module, func(n ast.Node) bool {
		assign, ok := n.(*ast.AssignNode)
		if !ok || assign.Annotation != nil || assign.Value == nil {
			return true
		}
		target, ok := assign.Target.(*ast.NameNode)
		if !ok {
			return true
		}
		if t, ok := c.exprType(assign.Value); ok {
			t = resolver.TransformTypeForEnumMember(c.env, target, t)
			c.env.SetType(target, t)
		}
		return true
	})
}

// typeAttributeBases attaches types to attribute-access base expressions
// so that member resolution can run at query time without re-checking.
func (c *checker) typeAttributeBases() {
	ast.Walk(c.env.Module, func(n ast.Node) bool {
		attr, ok := n.(*ast.AttributeNode)
		if !ok {
			return true
		}
		if _, ok := c.env.TypeOf(attr.Base); ok {
			return true
		}
		if t, ok := c.exprType(attr.Base); ok {
			c.env.SetType(attr.Base, t)
		}
		return true
	})
}

func (c *checker) classType(cls *ast.ClassDefNode) *typesystem.TClass {
	if cls.Name == nil {
		return nil
	}
	t, ok := c.env.TypeOf(cls.Name)
	if !ok {
		return nil
	}
	ct, _ := t.(*typesystem.TClass)
	return ct
}

// decoratorName extracts the trailing identifier of a decorator
// expression, so that both @overload and @typing.overload match.
func decoratorName(dec ast.Node) string {
	switch d := dec.(type) {
	case *ast.NameNode:
		return d.Value
	case *ast.AttributeNode:
		if d.Attr != nil {
			return d.Attr.Value
		}
	case *ast.CallNode:
		return decoratorName(d.Func)
	}
	return ""
}

// baseExprName is decoratorName for base-class and generic-base
// expressions.
func baseExprName(base ast.Node) string {
	switch b := base.(type) {
	case *ast.NameNode:
		return b.Value
	case *ast.AttributeNode:
		if b.Attr != nil {
			return b.Attr.Value
		}
	case *ast.SubscriptNode:
		return baseExprName(b.Base)
	}
	return ""
}

// instanceType converts class-shaped annotation results to instance
// types, elementwise through unions.
func instanceType(t typesystem.Type) typesystem.Type {
	switch tt := t.(type) {
	case *typesystem.TClass:
		return tt.ToInstance()
	case *typesystem.TUnion:
		variants := make([]typesystem.Type, 0, len(tt.Variants))
		for _, v := range tt.Variants {
			variants = append(variants, instanceType(v))
		}
		return &typesystem.TUnion{Variants: variants}
	}
	return t
}
