package ast

// Children returns the direct child nodes of n in source order.
func Children(n Node) []Node {
	switch t := n.(type) {
	case *ModuleNode:
		return t.Body
	case *ClassDefNode:
		out := make([]Node, 0, len(t.Decorators)+1+len(t.Bases)+len(t.Body))
		out = append(out, t.Decorators...)
		out = appendNode(out, t.Name)
		out = append(out, t.Bases...)
		out = append(out, t.Body...)
		return out
	case *FunctionDefNode:
		out := make([]Node, 0, len(t.Decorators)+2+len(t.Params)+len(t.Body))
		out = append(out, t.Decorators...)
		out = appendNode(out, t.Name)
		for _, p := range t.Params {
			out = append(out, p)
		}
		out = appendNode(out, t.ReturnAnnotation)
		out = append(out, t.Body...)
		return out
	case *ParameterNode:
		out := appendNode(nil, t.Name)
		out = appendNode(out, t.Annotation)
		return appendNode(out, t.Default)
	case *AssignNode:
		out := appendNode(nil, t.Target)
		out = appendNode(out, t.Annotation)
		return appendNode(out, t.Value)
	case *AttributeNode:
		out := appendNode(nil, t.Base)
		return appendNode(out, t.Attr)
	case *CallNode:
		out := appendNode(nil, t.Func)
		return append(out, t.Args...)
	case *SubscriptNode:
		out := appendNode(nil, t.Base)
		return append(out, t.Index...)
	case *StringNode:
		return appendNode(nil, t.TypeAnnotation)
	case *ImportNode:
		out := appendNode(nil, t.Module)
		return appendNode(out, t.Alias)
	case *ImportFromNode:
		out := appendNode(nil, t.Module)
		for _, name := range t.Names {
			out = append(out, name)
		}
		return out
	case *ImportedName:
		out := appendNode(nil, t.Name)
		return appendNode(out, t.Alias)
	case *ModulePathNode:
		out := make([]Node, 0, len(t.Segments))
		for _, seg := range t.Segments {
			out = append(out, seg)
		}
		return out
	case *ExprStmtNode:
		return appendNode(nil, t.Expr)
	case *ReturnNode:
		return appendNode(nil, t.Value)
	default:
		return nil
	}
}

func appendNode(out []Node, n Node) []Node {
	if n == nil || isNilPointer(n) {
		return out
	}
	return append(out, n)
}

// isNilPointer guards against typed-nil interface values produced by
// optional fields like (*NameNode)(nil).
func isNilPointer(n Node) bool {
	switch t := n.(type) {
	case *NameNode:
		return t == nil
	case *ModulePathNode:
		return t == nil
	default:
		return false
	}
}

// Walk visits n and its descendants in depth-first source order. The visit
// function returns false to skip a node's children.
func Walk(n Node, visit func(Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, child := range Children(n) {
		Walk(child, visit)
	}
}

// FindNodeAt returns the innermost node whose range contains the byte
// offset, or nil.
func FindNodeAt(root Node, byteOffset int) Node {
	var found Node
	Walk(root, func(n Node) bool {
		if !n.Range().Contains(byteOffset) {
			return n.Kind() == KindModule // module range can be empty on synthetic trees
		}
		found = n
		return true
	})
	return found
}

// FindNameAt returns the innermost NameNode containing the byte offset.
func FindNameAt(root Node, byteOffset int) *NameNode {
	var found *NameNode
	Walk(root, func(n Node) bool {
		if name, ok := n.(*NameNode); ok && name.Range().Contains(byteOffset) {
			found = name
		}
		return true
	})
	return found
}

// EnclosingClass returns the nearest ClassDefNode strictly enclosing n, or
// nil if n is not lexically inside a class body.
func EnclosingClass(n Node) *ClassDefNode {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if cls, ok := cur.(*ClassDefNode); ok {
			return cls
		}
	}
	return nil
}

// EnclosingFunction returns the nearest FunctionDefNode strictly enclosing n.
func EnclosingFunction(n Node) *FunctionDefNode {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if fn, ok := cur.(*FunctionDefNode); ok {
			return fn
		}
	}
	return nil
}
