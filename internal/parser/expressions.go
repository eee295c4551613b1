package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/pynav/pynav/internal/ast"
)

// expression converts the subset of Python expressions the analyzer
// models. Anything else converts to nil and simply does not resolve.
func (c *converter) expression(n *sitter.Node, parent ast.Node) ast.Node {
	switch n.Kind() {
	case "identifier":
		return c.name(n, parent)
	case "none":
		name := &ast.NameNode{Value: "None"}
		name.Rng = c.rng(n)
		name.SetParent(parent)
		return name
	case "attribute":
		attr := &ast.AttributeNode{}
		attr.Rng = c.rng(n)
		attr.SetParent(parent)
		if base := n.ChildByFieldName("object"); base != nil {
			attr.Base = c.expression(base, attr)
		}
		if member := n.ChildByFieldName("attribute"); member != nil {
			attr.Attr = c.name(member, attr)
		}
		if attr.Base == nil || attr.Attr == nil {
			return nil
		}
		return attr
	case "call":
		call := &ast.CallNode{}
		call.Rng = c.rng(n)
		call.SetParent(parent)
		if fn := n.ChildByFieldName("function"); fn != nil {
			call.Func = c.expression(fn, call)
		}
		if call.Func == nil {
			return nil
		}
		if args := n.ChildByFieldName("arguments"); args != nil {
			for i := uint(0); i < args.NamedChildCount(); i++ {
				if arg := c.expression(args.NamedChild(i), call); arg != nil {
					call.Args = append(call.Args, arg)
				}
			}
		}
		return call
	case "subscript":
		sub := &ast.SubscriptNode{}
		sub.Rng = c.rng(n)
		sub.SetParent(parent)
		value := n.ChildByFieldName("value")
		if value == nil {
			return nil
		}
		sub.Base = c.expression(value, sub)
		if sub.Base == nil {
			return nil
		}
		for i := uint(0); i < n.NamedChildCount(); i++ {
			child := n.NamedChild(i)
			if child.StartByte() == value.StartByte() {
				continue
			}
			if idx := c.expression(child, sub); idx != nil {
				sub.Index = append(sub.Index, idx)
			}
		}
		return sub
	case "string", "concatenated_string":
		str := &ast.StringNode{Value: c.stringContent(n)}
		str.Rng = c.rng(n)
		str.SetParent(parent)
		return str
	case "integer", "float":
		num := &ast.NumberNode{Literal: c.text(n), IsFloat: n.Kind() == "float"}
		num.Rng = c.rng(n)
		num.SetParent(parent)
		return num
	case "true", "false":
		name := &ast.NameNode{Value: c.text(n)}
		name.Rng = c.rng(n)
		name.SetParent(parent)
		return name
	case "parenthesized_expression":
		if n.NamedChildCount() > 0 {
			return c.expression(n.NamedChild(0), parent)
		}
		return nil
	case "binary_operator":
		return c.maybeUnion(n, parent)
	case "await":
		if n.NamedChildCount() > 0 {
			return c.expression(n.NamedChild(0), parent)
		}
		return nil
	default:
		return nil
	}
}

// maybeUnion views a PEP 604 union (X | Y) as a Union subscript, which is
// how the checker understands unions. Other binary operators are not
// modeled.
func (c *converter) maybeUnion(n *sitter.Node, parent ast.Node) ast.Node {
	op := n.ChildByFieldName("operator")
	if op == nil || c.text(op) != "|" {
		return nil
	}
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	if left == nil || right == nil {
		return nil
	}

	sub := &ast.SubscriptNode{}
	sub.Rng = c.rng(n)
	sub.SetParent(parent)
	union := &ast.NameNode{Value: "Union"}
	union.Rng = ast.Range{Start: sub.Rng.Start, End: sub.Rng.Start}
	union.SetParent(sub)
	sub.Base = union

	appendSide := func(side *sitter.Node) {
		if conv := c.expression(side, sub); conv != nil {
			if nested, ok := conv.(*ast.SubscriptNode); ok {
				if base, isName := nested.Base.(*ast.NameNode); isName && base.Value == "Union" {
					sub.Index = append(sub.Index, nested.Index...)
					return
				}
			}
			sub.Index = append(sub.Index, conv)
		}
	}
	appendSide(left)
	appendSide(right)
	if len(sub.Index) == 0 {
		return nil
	}
	return sub
}

// annotation converts a type-annotation expression. String literals in
// annotation position wrap a forward reference: the dotted name inside is
// re-parsed and attached to the string node, one level deep.
func (c *converter) annotation(n *sitter.Node, parent ast.Node) ast.Node {
	// The grammar wraps return annotations in a "type" node.
	if n.Kind() == "type" && n.NamedChildCount() > 0 {
		n = n.NamedChild(0)
	}
	expr := c.expression(n, parent)
	if str, ok := expr.(*ast.StringNode); ok {
		str.TypeAnnotation = parseForwardRef(str)
	}
	return expr
}

// parseForwardRef parses the contents of a string-literal annotation as a
// dotted name. More elaborate forward references (subscripts, unions) are
// left unwrapped and resolve to nothing.
func parseForwardRef(str *ast.StringNode) ast.Node {
	contents := strings.TrimSpace(str.Value)
	if contents == "" {
		return nil
	}
	parts := strings.Split(contents, ".")
	for _, part := range parts {
		if !isIdentifier(part) {
			return nil
		}
	}

	// Positions are approximated as the string node's own range; the
	// inner expression has no exact source span of its own.
	inner := ast.Node(nil)
	for i, part := range parts {
		name := &ast.NameNode{Value: part}
		name.Rng = str.Rng
		if i == 0 {
			name.SetParent(str)
			inner = name
			continue
		}
		attr := &ast.AttributeNode{Base: inner, Attr: name}
		attr.Rng = str.Rng
		attr.SetParent(str)
		inner.SetParent(attr)
		name.SetParent(attr)
		inner = attr
	}
	return inner
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		letter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		digit := r >= '0' && r <= '9'
		if !letter && (i == 0 || !digit) {
			return false
		}
	}
	return true
}

// stringContent extracts the unquoted contents of a string literal.
func (c *converter) stringContent(n *sitter.Node) string {
	var parts []string
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		for i := uint(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(i)
			if child.Kind() == "string_content" {
				parts = append(parts, c.text(child))
				continue
			}
			walk(child)
		}
	}
	walk(n)
	return strings.Join(parts, "")
}
