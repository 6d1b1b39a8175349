package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codepathfinder/depgraph/internal/graphmodel"
	"github.com/codepathfinder/depgraph/internal/lang"
	"github.com/codepathfinder/depgraph/internal/rdfaddr"
)

// resolvedDecl is one declaration walked out of a file, qualified
// against its enclosing container and resolved to its RDF identifier.
// Shared by the identifier extractor (which turns these into nodes)
// and the call-site extractor's direct-call resolution stage (which
// only needs the name-to-identifier mapping), so the two extractors
// can never disagree about what a given declaration's address is.
type resolvedDecl struct {
	node                *sitter.Node
	kind                graphmodel.NodeKind
	name                string
	qualified           string
	identifier          string
	containerIdentifier string // empty for top-level declarations
}

// resolveDeclarations walks tree's declarations, qualifying each one
// against its enclosing container: Go method receivers resolve via
// goReceiverTypeName, every other language's nested members resolve
// via the nearest containerTypes ancestor.
func resolveDeclarations(tree Tree) []resolvedDecl {
	root, ok := rootNode(tree)
	if !ok {
		return nil
	}
	spec := specFor(tree.Language)
	if spec == nil {
		return nil
	}
	declTypeSet := set(spec.declTypes...)
	nameByNode := make(map[*sitter.Node]string)
	identifierByNode := make(map[*sitter.Node]string)
	receiverMap := map[string]*sitter.Node{}
	var out []resolvedDecl

	walkWithAncestors(root, nil, func(n *sitter.Node, ancestors []*sitter.Node) {
		if !declTypeSet[n.Type()] {
			return
		}
		kind := spec.kindOf(n, tree.Content)
		name := spec.nameOf(n, tree.Content)
		if kind == "" || name == "" {
			return
		}

		var containerNode *sitter.Node
		if tree.Language == lang.Go && n.Type() == "method_declaration" {
			if recv := goReceiverTypeName(n, tree.Content); recv != "" {
				containerNode = receiverMap[recv]
			}
		} else {
			for i := len(ancestors) - 1; i >= 0; i-- {
				if spec.containerTypes[ancestors[i].Type()] {
					containerNode = ancestors[i]
					break
				}
			}
		}

		// A Python def whose nearest enclosing scope is a class body is a
		// method; a def nested inside another def stays a function.
		if tree.Language == lang.Python && kind == graphmodel.NodeFunction && containerNode != nil {
			kind = graphmodel.NodeMethod
			for i := len(ancestors) - 1; i >= 0 && ancestors[i] != containerNode; i-- {
				if ancestors[i].Type() == "function_definition" {
					kind = graphmodel.NodeFunction
					break
				}
			}
		}

		qualified := name
		var containerIdentifier string
		if containerNode != nil {
			if cname, ok := nameByNode[containerNode]; ok {
				qualified = cname + "." + name
			}
			containerIdentifier = identifierByNode[containerNode]
		}

		addr := rdfaddr.Address{Project: tree.Project, File: tree.Path, Kind: kind, SymbolPath: qualified}
		identifier := addr.String()

		nameByNode[n] = name
		identifierByNode[n] = identifier
		if tree.Language == lang.Go && n.Type() == "type_spec" {
			receiverMap[name] = n
		}

		out = append(out, resolvedDecl{
			node: n, kind: kind, name: name, qualified: qualified,
			identifier: identifier, containerIdentifier: containerIdentifier,
		})
	})

	return out
}
