package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codepathfinder/depgraph/internal/graphmodel"
)

// goDeclarationTypes are the Go grammar node types the identifier
// extractor visits when walking a Go file.
var goDeclarationTypes = []string{
	"function_declaration", "method_declaration", "type_spec", "const_spec", "var_spec",
}

// goSymbolKind resolves a Go declaration node to its graph node kind.
// type_spec needs its child inspected: struct_type/interface_type
// declarations both use the same wrapper grammar rule.
func goSymbolKind(n *sitter.Node, content []byte) graphmodel.NodeKind {
	switch n.Type() {
	case "function_declaration":
		return graphmodel.NodeFunction
	case "method_declaration":
		return graphmodel.NodeMethod
	case "const_spec":
		return graphmodel.NodeConstant
	case "var_spec":
		return graphmodel.NodeVariable
	case "type_spec":
		if typeChild := n.ChildByFieldName("type"); typeChild != nil {
			switch typeChild.Type() {
			case "interface_type":
				return graphmodel.NodeInterface
			case "struct_type":
				return graphmodel.NodeClass
			}
		}
		return graphmodel.NodeType
	}
	return ""
}

// goSymbolName resolves the declared name of a Go declaration node.
func goSymbolName(n *sitter.Node, content []byte) string {
	if nameChild := n.ChildByFieldName("name"); nameChild != nil {
		return nameChild.Content(content)
	}
	return ""
}
