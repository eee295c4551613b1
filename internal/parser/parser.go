// Package parser turns Python source into the analyzer's own parse tree.
// tree-sitter does the heavy lifting; the converter then builds an owned
// immutable ast tree with parent links and source ranges, so nothing
// downstream retains tree-sitter memory.
package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/pynav/pynav/internal/ast"
)

// Parse parses one Python source file. The returned module is the root of
// an immutable tree; path is recorded on it verbatim.
func Parse(path string, source []byte) (*ast.ModuleNode, error) {
	p := sitter.NewParser()
	defer p.Close()

	lang := sitter.NewLanguage(tree_sitter_python.Language())
	if err := p.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("set python grammar: %w", err)
	}

	tree := p.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse %s: tree-sitter returned no tree", path)
	}
	defer tree.Close()

	c := &converter{source: source, path: path}
	return c.module(tree.RootNode()), nil
}

type converter struct {
	source []byte
	path   string
}

func (c *converter) text(n *sitter.Node) string {
	return string(c.source[n.StartByte():n.EndByte()])
}

func (c *converter) rng(n *sitter.Node) ast.Range {
	start, end := n.StartPosition(), n.EndPosition()
	return ast.Range{
		Start: ast.Position{
			Line:   int(start.Row) + 1,
			Column: int(start.Column) + 1,
			Byte:   int(n.StartByte()),
		},
		End: ast.Position{
			Line:   int(end.Row) + 1,
			Column: int(end.Column) + 1,
			Byte:   int(n.EndByte()),
		},
	}
}

func (c *converter) module(root *sitter.Node) *ast.ModuleNode {
	mod := &ast.ModuleNode{Path: c.path}
	mod.Rng = c.rng(root)
	body, doc := c.body(root, mod)
	mod.Body = body
	mod.DocString = doc
	return mod
}

// body converts the statements of a block-bearing node, flattening nested
// control-flow blocks into one source-ordered list. A leading string
// expression becomes the docstring instead of a statement.
func (c *converter) body(block *sitter.Node, parent ast.Node) ([]ast.Node, string) {
	var out []ast.Node
	doc := ""
	first := true
	c.collectStatements(block, parent, &out, &doc, &first)
	return out, doc
}

func (c *converter) collectStatements(node *sitter.Node, parent ast.Node, out *[]ast.Node, doc *string, first *bool) {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "import_statement":
			*first = false
			c.importStatement(child, parent, out)
		case "import_from_statement":
			*first = false
			if stmt := c.importFromStatement(child, parent); stmt != nil {
				*out = append(*out, stmt)
			}
		case "future_import_statement":
			*first = false
		case "function_definition":
			*first = false
			*out = append(*out, c.functionDef(child, parent, nil))
		case "class_definition":
			*first = false
			*out = append(*out, c.classDef(child, parent, nil))
		case "decorated_definition":
			*first = false
			if stmt := c.decoratedDef(child, parent); stmt != nil {
				*out = append(*out, stmt)
			}
		case "expression_statement":
			c.expressionStatement(child, parent, out, doc, first)
		case "return_statement":
			*first = false
			ret := &ast.ReturnNode{}
			ret.Rng = c.rng(child)
			ret.SetParent(parent)
			if child.NamedChildCount() > 0 {
				ret.Value = c.expression(child.NamedChild(0), ret)
			}
			*out = append(*out, ret)
		case "if_statement", "elif_clause", "else_clause", "while_statement",
			"for_statement", "with_statement", "try_statement",
			"except_clause", "finally_clause", "match_statement", "case_clause", "block":
			// Control flow does not introduce scopes in Python; hoist the
			// nested statements into the enclosing body in source order.
			*first = false
			c.collectStatements(child, parent, out, doc, first)
		default:
			*first = false
		}
	}
}

func (c *converter) expressionStatement(node *sitter.Node, parent ast.Node, out *[]ast.Node, doc *string, first *bool) {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "assignment", "augmented_assignment":
			*first = false
			if assign := c.assignment(child, parent); assign != nil {
				*out = append(*out, assign)
			}
		case "string":
			if *first && doc != nil {
				*doc = c.stringContent(child)
				*first = false
				continue
			}
			*first = false
			stmt := &ast.ExprStmtNode{}
			stmt.Rng = c.rng(node)
			stmt.SetParent(parent)
			stmt.Expr = c.expression(child, stmt)
			*out = append(*out, stmt)
		default:
			*first = false
			stmt := &ast.ExprStmtNode{}
			stmt.Rng = c.rng(node)
			stmt.SetParent(parent)
			stmt.Expr = c.expression(child, stmt)
			if stmt.Expr != nil {
				*out = append(*out, stmt)
			}
		}
	}
}

func (c *converter) assignment(node *sitter.Node, parent ast.Node) *ast.AssignNode {
	left := node.ChildByFieldName("left")
	if left == nil {
		return nil
	}
	assign := &ast.AssignNode{}
	assign.Rng = c.rng(node)
	assign.SetParent(parent)
	assign.Target = c.expression(left, assign)
	if assign.Target == nil {
		return nil
	}
	if annotation := node.ChildByFieldName("type"); annotation != nil {
		assign.Annotation = c.annotation(annotation, assign)
	}
	if right := node.ChildByFieldName("right"); right != nil {
		assign.Value = c.expression(right, assign)
	}
	return assign
}

func (c *converter) decoratedDef(node *sitter.Node, parent ast.Node) ast.Node {
	var decorators []*sitter.Node
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "decorator":
			decorators = append(decorators, child)
		case "function_definition":
			return c.functionDef(child, parent, decorators)
		case "class_definition":
			return c.classDef(child, parent, decorators)
		}
	}
	return nil
}

func (c *converter) decoratorExprs(decorators []*sitter.Node, parent ast.Node) []ast.Node {
	var out []ast.Node
	for _, dec := range decorators {
		// The decorator node wraps one expression after "@".
		if dec.NamedChildCount() == 0 {
			continue
		}
		if expr := c.expression(dec.NamedChild(0), parent); expr != nil {
			out = append(out, expr)
		}
	}
	return out
}

func (c *converter) functionDef(node *sitter.Node, parent ast.Node, decorators []*sitter.Node) *ast.FunctionDefNode {
	fn := &ast.FunctionDefNode{}
	fn.Rng = c.rng(node)
	fn.SetParent(parent)
	fn.Decorators = c.decoratorExprs(decorators, fn)

	if name := node.ChildByFieldName("name"); name != nil {
		fn.Name = c.name(name, fn)
	}
	if fn.Name == nil {
		fn.Name = &ast.NameNode{}
		fn.Name.SetParent(fn)
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if node.Child(i).Kind() == "async" {
			fn.IsAsync = true
			break
		}
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		fn.Params = c.parameters(params, fn)
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		fn.ReturnAnnotation = c.annotation(ret, fn)
	}
	if body := node.ChildByFieldName("body"); body != nil {
		fn.IsGenerator = containsYield(body)
		fn.Body, fn.DocString = c.body(body, fn)
	}
	return fn
}

// containsYield reports whether the block has a yield that belongs to this
// function rather than to a nested one.
func containsYield(body *sitter.Node) bool {
	for i := uint(0); i < body.NamedChildCount(); i++ {
		child := body.NamedChild(i)
		switch child.Kind() {
		case "function_definition", "class_definition", "decorated_definition":
			continue
		case "yield":
			return true
		}
		if containsYield(child) {
			return true
		}
	}
	return false
}

func (c *converter) parameters(params *sitter.Node, fn *ast.FunctionDefNode) []*ast.ParameterNode {
	var out []*ast.ParameterNode
	for i := uint(0); i < params.NamedChildCount(); i++ {
		child := params.NamedChild(i)
		param := &ast.ParameterNode{}
		param.Rng = c.rng(child)
		param.SetParent(fn)

		switch child.Kind() {
		case "identifier":
			param.Name = c.name(child, param)
		case "typed_parameter":
			if child.NamedChildCount() > 0 {
				if inner := child.NamedChild(0); inner.Kind() == "identifier" {
					param.Name = c.name(inner, param)
				}
			}
			if annotation := child.ChildByFieldName("type"); annotation != nil {
				param.Annotation = c.annotation(annotation, param)
			}
		case "default_parameter", "typed_default_parameter":
			if name := child.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
				param.Name = c.name(name, param)
			}
			if annotation := child.ChildByFieldName("type"); annotation != nil {
				param.Annotation = c.annotation(annotation, param)
			}
			if value := child.ChildByFieldName("value"); value != nil {
				param.Default = c.expression(value, param)
			}
		case "list_splat_pattern", "dictionary_splat_pattern":
			if child.NamedChildCount() > 0 {
				if inner := child.NamedChild(0); inner.Kind() == "identifier" {
					param.Name = c.name(inner, param)
				}
			}
		default:
			continue
		}
		if param.Name == nil {
			continue
		}
		out = append(out, param)
	}
	return out
}

func (c *converter) classDef(node *sitter.Node, parent ast.Node, decorators []*sitter.Node) *ast.ClassDefNode {
	cls := &ast.ClassDefNode{}
	cls.Rng = c.rng(node)
	cls.SetParent(parent)
	cls.Decorators = c.decoratorExprs(decorators, cls)

	if name := node.ChildByFieldName("name"); name != nil {
		cls.Name = c.name(name, cls)
	}
	if cls.Name == nil {
		cls.Name = &ast.NameNode{}
		cls.Name.SetParent(cls)
	}
	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		for i := uint(0); i < supers.NamedChildCount(); i++ {
			arg := supers.NamedChild(i)
			if arg.Kind() == "keyword_argument" {
				continue // metaclass= and friends
			}
			if base := c.expression(arg, cls); base != nil {
				cls.Bases = append(cls.Bases, base)
			}
		}
	}
	if body := node.ChildByFieldName("body"); body != nil {
		cls.Body, cls.DocString = c.body(body, cls)
	}
	return cls
}

func (c *converter) name(n *sitter.Node, parent ast.Node) *ast.NameNode {
	name := &ast.NameNode{Value: c.text(n)}
	name.Rng = c.rng(n)
	name.SetParent(parent)
	return name
}
