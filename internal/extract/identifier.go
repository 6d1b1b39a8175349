package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codepathfinder/depgraph/internal/graphmodel"
	"github.com/codepathfinder/depgraph/internal/lang"
	"github.com/codepathfinder/depgraph/internal/rdfaddr"
	"github.com/google/uuid"
)

// IdentifierExtractor builds a file node plus one node per declared
// symbol (class/function/method/...), linked to their enclosing scope
// by "declares" (file to top-level symbol) or "contains" (container
// to nested symbol) edges. Built from a single per-construct walk
// generalized across languages with a per-language declaration table
// instead of one file per grammar.
type IdentifierExtractor struct{}

// NewIdentifierExtractor builds the identifier extractor.
func NewIdentifierExtractor() *IdentifierExtractor { return &IdentifierExtractor{} }

func (e *IdentifierExtractor) Name() string    { return "identifier" }
func (e *IdentifierExtractor) Version() string { return "1.0.0" }

func (e *IdentifierExtractor) Supports(l lang.Language) bool {
	switch l {
	case lang.Go, lang.Java, lang.Python, lang.JavaScript, lang.TypeScript:
		return true
	}
	return false
}

// langSymbolSpec describes how to walk one language's declaration nodes.
type langSymbolSpec struct {
	declTypes      []string
	kindOf         func(n *sitter.Node, content []byte) graphmodel.NodeKind
	nameOf         func(n *sitter.Node, content []byte) string
	containerTypes map[string]bool
}

func specFor(l lang.Language) *langSymbolSpec {
	switch l {
	case lang.Go:
		return &langSymbolSpec{declTypes: goDeclarationTypes, kindOf: goSymbolKind, nameOf: goSymbolName}
	case lang.Java:
		return &langSymbolSpec{
			declTypes: javaDeclarationTypes, kindOf: javaSymbolKind, nameOf: javaSymbolName,
			containerTypes: set("class_declaration", "interface_declaration", "enum_declaration"),
		}
	case lang.Python:
		return &langSymbolSpec{
			declTypes: pythonDeclarationTypes, kindOf: pythonSymbolKind, nameOf: pythonSymbolName,
			containerTypes: set("class_definition"),
		}
	case lang.JavaScript, lang.TypeScript:
		return &langSymbolSpec{
			declTypes: jsDeclarationTypes, kindOf: jsSymbolKind, nameOf: jsSymbolName,
			containerTypes: set("class_declaration"),
		}
	}
	return nil
}

func set(vals ...string) map[string]bool {
	m := make(map[string]bool, len(vals))
	for _, v := range vals {
		m[v] = true
	}
	return m
}

func (e *IdentifierExtractor) Extract(tree Tree) (Result, error) {
	decls := resolveDeclarations(tree)
	if decls == nil {
		return Result{}, nil
	}

	fileAddr := rdfaddr.Address{Project: tree.Project, File: tree.Path, Kind: graphmodel.NodeFile}
	fileNode := &graphmodel.Node{
		ID:         uuid.NewString(),
		Identifier: fileAddr.String(),
		Kind:       graphmodel.NodeFile,
		Name:       tree.Path,
		SourceFile: tree.Path,
		Language:   string(tree.Language),
	}

	result := Result{Nodes: []*graphmodel.Node{fileNode}}
	for _, d := range decls {
		symNode := &graphmodel.Node{
			ID:         uuid.NewString(),
			Identifier: d.identifier,
			Kind:       d.kind,
			Name:       d.name,
			SourceFile: tree.Path,
			Language:   string(tree.Language),
			Location:   buildLocation(d.node),
		}
		result.Nodes = append(result.Nodes, symNode)

		edgeKind := graphmodel.EdgeKind("declares")
		from := fileNode.Identifier
		if d.containerIdentifier != "" {
			edgeKind = "contains"
			from = d.containerIdentifier
		}
		result.Edges = append(result.Edges, &graphmodel.Edge{
			ID:   uuid.NewString(),
			From: from,
			To:   symNode.Identifier,
			Kind: edgeKind,
		})
	}

	return result, nil
}

func goReceiverTypeName(n *sitter.Node, content []byte) string {
	recv := n.ChildByFieldName("receiver")
	if recv == nil {
		return ""
	}
	var typeName string
	walk(recv, func(cur *sitter.Node) {
		if typeName != "" {
			return
		}
		if cur.Type() == "type_identifier" {
			typeName = cur.Content(content)
		}
	})
	return typeName
}

func buildLocation(n *sitter.Node) *graphmodel.Location {
	line, col, endLine, endCol := location(n)
	return &graphmodel.Location{Line: line, Column: col, EndLine: endLine, EndColumn: endCol}
}

func (e *IdentifierExtractor) Validate(r Result) (errs []string, warnings []string) {
	seen := make(map[string]bool, len(r.Nodes))
	for _, n := range r.Nodes {
		if strings.TrimSpace(n.Identifier) == "" {
			errs = append(errs, "identifier: node with empty Identifier")
			continue
		}
		if seen[n.Identifier] {
			errs = append(errs, "identifier: duplicate node identifier "+n.Identifier)
		}
		seen[n.Identifier] = true
	}
	return errs, warnings
}
