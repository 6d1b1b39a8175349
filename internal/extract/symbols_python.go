package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codepathfinder/depgraph/internal/graphmodel"
)

// pythonDeclarationTypes are the Python grammar node types the
// identifier extractor visits, generalized from graph/parser.go's
// Python-specific arms.
var pythonDeclarationTypes = []string{"class_definition", "function_definition"}

// pythonSymbolKind resolves a Python declaration node. A
// function_definition nested directly under a class body is a method,
// not a function — method-vs-function is an ancestry decision made by
// the caller (resolveDeclarations), not by this lookup alone.
func pythonSymbolKind(n *sitter.Node, content []byte) graphmodel.NodeKind {
	switch n.Type() {
	case "class_definition":
		return graphmodel.NodeClass
	case "function_definition":
		return graphmodel.NodeFunction
	}
	return ""
}

func pythonSymbolName(n *sitter.Node, content []byte) string {
	if nameChild := n.ChildByFieldName("name"); nameChild != nil {
		return nameChild.Content(content)
	}
	return ""
}
