package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codepathfinder/depgraph/internal/graphmodel"
)

// jsDeclarationTypes covers both the JavaScript and TypeScript
// grammars; TypeScript adds interface_declaration on top of the
// shared JS node set.
var jsDeclarationTypes = []string{
	"class_declaration", "function_declaration", "method_definition", "interface_declaration",
}

func jsSymbolKind(n *sitter.Node, content []byte) graphmodel.NodeKind {
	switch n.Type() {
	case "class_declaration":
		return graphmodel.NodeClass
	case "interface_declaration":
		return graphmodel.NodeInterface
	case "function_declaration":
		return graphmodel.NodeFunction
	case "method_definition":
		return graphmodel.NodeMethod
	}
	return ""
}

func jsSymbolName(n *sitter.Node, content []byte) string {
	if nameChild := n.ChildByFieldName("name"); nameChild != nil {
		return nameChild.Content(content)
	}
	return ""
}
