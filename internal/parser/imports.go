package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/pynav/pynav/internal/ast"
)

// importStatement converts "import a.b, c as d" into one ImportNode per
// imported dotted name.
func (c *converter) importStatement(node *sitter.Node, parent ast.Node, out *[]ast.Node) {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "dotted_name", "identifier":
			imp := &ast.ImportNode{}
			imp.Rng = c.rng(child)
			imp.SetParent(parent)
			imp.Module = c.modulePath(child, imp)
			*out = append(*out, imp)
		case "aliased_import":
			imp := &ast.ImportNode{}
			imp.Rng = c.rng(child)
			imp.SetParent(parent)
			for j := uint(0); j < child.NamedChildCount(); j++ {
				sub := child.NamedChild(j)
				switch sub.Kind() {
				case "dotted_name":
					imp.Module = c.modulePath(sub, imp)
				case "identifier":
					if imp.Module == nil {
						imp.Module = c.modulePath(sub, imp)
					} else {
						imp.Alias = c.name(sub, imp)
					}
				}
			}
			if imp.Module != nil {
				*out = append(*out, imp)
			}
		}
	}
}

// importFromStatement converts "from [.]pkg import x as y, z".
func (c *converter) importFromStatement(node *sitter.Node, parent ast.Node) ast.Node {
	stmt := &ast.ImportFromNode{}
	stmt.Rng = c.rng(node)
	stmt.SetParent(parent)

	sawModule := false
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "relative_import":
			sawModule = true
			for j := uint(0); j < child.NamedChildCount(); j++ {
				sub := child.NamedChild(j)
				switch sub.Kind() {
				case "import_prefix":
					stmt.Dots = len(c.text(sub))
				case "dotted_name", "identifier":
					stmt.Module = c.modulePath(sub, stmt)
				}
			}
		case "dotted_name", "identifier":
			if !sawModule {
				sawModule = true
				stmt.Module = c.modulePath(child, stmt)
				continue
			}
			name := &ast.ImportedName{}
			name.Rng = c.rng(child)
			name.SetParent(stmt)
			name.Name = c.importedNameNode(child, name)
			if name.Name != nil {
				stmt.Names = append(stmt.Names, name)
			}
		case "aliased_import":
			name := &ast.ImportedName{}
			name.Rng = c.rng(child)
			name.SetParent(stmt)
			for j := uint(0); j < child.NamedChildCount(); j++ {
				sub := child.NamedChild(j)
				switch sub.Kind() {
				case "dotted_name", "identifier":
					if name.Name == nil {
						name.Name = c.importedNameNode(sub, name)
					} else {
						name.Alias = c.name(sub, name)
					}
				}
			}
			if name.Name != nil {
				stmt.Names = append(stmt.Names, name)
			}
		case "wildcard_import":
			stmt.Wildcard = true
		}
	}
	if stmt.Module == nil && stmt.Dots == 0 && !stmt.Wildcard && len(stmt.Names) == 0 {
		return nil
	}
	return stmt
}

// importedNameNode reads an imported symbol name, which the grammar may
// present as a single-segment dotted name.
func (c *converter) importedNameNode(n *sitter.Node, parent ast.Node) *ast.NameNode {
	if n.Kind() == "dotted_name" {
		if n.NamedChildCount() == 0 {
			return nil
		}
		n = n.NamedChild(0)
	}
	if n.Kind() != "identifier" {
		return nil
	}
	return c.name(n, parent)
}

// modulePath converts a dotted name into a path node with one NameNode
// per segment.
func (c *converter) modulePath(n *sitter.Node, parent ast.Node) *ast.ModulePathNode {
	path := &ast.ModulePathNode{}
	path.Rng = c.rng(n)
	path.SetParent(parent)
	if n.Kind() == "identifier" {
		path.Segments = []*ast.NameNode{c.name(n, path)}
		return path
	}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child.Kind() == "identifier" {
			path.Segments = append(path.Segments, c.name(child, path))
		}
	}
	return path
}
