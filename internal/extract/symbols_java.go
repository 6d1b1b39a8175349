package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codepathfinder/depgraph/internal/graphmodel"
)

// javaDeclarationTypes are the Java grammar node types visited by the
// identifier extractor, one per declaration form the tree-sitter Java
// grammar recognizes.
var javaDeclarationTypes = []string{
	"class_declaration", "interface_declaration", "enum_declaration",
	"method_declaration", "constructor_declaration", "field_declaration",
}

func javaSymbolKind(n *sitter.Node, content []byte) graphmodel.NodeKind {
	switch n.Type() {
	case "class_declaration":
		return graphmodel.NodeClass
	case "interface_declaration":
		return graphmodel.NodeInterface
	case "enum_declaration":
		return graphmodel.NodeEnum
	case "method_declaration":
		return graphmodel.NodeMethod
	case "constructor_declaration":
		return graphmodel.NodeConstructor
	case "field_declaration":
		return graphmodel.NodeField
	}
	return ""
}

func javaSymbolName(n *sitter.Node, content []byte) string {
	if nameChild := n.ChildByFieldName("name"); nameChild != nil {
		return nameChild.Content(content)
	}
	// field_declaration names its declarator, not itself.
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == "variable_declarator" {
			if id := c.ChildByFieldName("name"); id != nil {
				return id.Content(content)
			}
		}
	}
	return ""
}
