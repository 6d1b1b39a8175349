package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/codepathfinder/depgraph/internal/graphmodel"
	"github.com/codepathfinder/depgraph/internal/lang"
	"github.com/codepathfinder/depgraph/internal/rdfaddr"
	"github.com/google/uuid"
)

// MarkdownLinkExtractor applies the same extractor shape (a pure
// function over a parsed tree) to the documentation domain: links,
// images, anchors, hashtags, and headings become the md-* family of
// edges and their target nodes. Wiki-style links are not recognized.
type MarkdownLinkExtractor struct{}

// NewMarkdownLinkExtractor builds the markdown extractor.
func NewMarkdownLinkExtractor() *MarkdownLinkExtractor { return &MarkdownLinkExtractor{} }

func (e *MarkdownLinkExtractor) Name() string    { return "markdown-link" }
func (e *MarkdownLinkExtractor) Version() string { return "1.0.0" }

func (e *MarkdownLinkExtractor) Supports(l lang.Language) bool { return l == lang.Markdown }

var hashtagPattern = regexp.MustCompile(`(^|\s)#([A-Za-z][A-Za-z0-9_-]*)`)

func (e *MarkdownLinkExtractor) Extract(tree Tree) (Result, error) {
	doc, ok := tree.Root.(ast.Node)
	if !ok || doc == nil {
		return Result{}, nil
	}

	fileAddr := rdfaddr.Address{Project: tree.Project, File: tree.Path, Kind: graphmodel.NodeFile}
	fileIdentifier := fileAddr.String()

	var result Result
	headingCount := 0

	lang.WalkHeadings(doc, tree.Content, func(level int, text string, n ast.Node) {
		headingCount++
		addr := rdfaddr.Address{
			Project: tree.Project, File: tree.Path, Kind: graphmodel.NodeHeadingSymbol,
			SymbolPath: sanitizeSymbolPath(fmt.Sprintf("h%d_%d", level, headingCount)),
		}
		node := &graphmodel.Node{
			ID:         uuid.NewString(),
			Identifier: addr.String(),
			Kind:       graphmodel.NodeHeadingSymbol,
			Name:       text,
			SourceFile: tree.Path,
			Language:   string(lang.Markdown),
			Metadata:   map[string]any{"level": level},
		}
		result.Nodes = append(result.Nodes, node)
		result.Edges = append(result.Edges, &graphmodel.Edge{
			ID: uuid.NewString(), From: fileIdentifier, To: node.Identifier, Kind: "md-contains-heading",
		})
	})

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Link:
			e.addLinkEdge(&result, fileIdentifier, tree, string(v.Destination), linkKind(string(v.Destination)))
		case *ast.Image:
			e.addLinkEdge(&result, fileIdentifier, tree, string(v.Destination), "md-image")
		case *ast.AutoLink:
			e.addLinkEdge(&result, fileIdentifier, tree, string(v.URL(tree.Content)), "md-link")
		case *ast.Text:
			e.addHashtagEdges(&result, fileIdentifier, tree, v, tree.Content)
		}
		return ast.WalkContinue, nil
	})

	return result, nil
}

func linkKind(destination string) graphmodel.EdgeKind {
	switch {
	case strings.HasPrefix(destination, "#"):
		return "md-anchor"
	case strings.Contains(destination, "://"):
		return "md-link"
	default:
		return "md-link"
	}
}

func (e *MarkdownLinkExtractor) addLinkEdge(result *Result, fileIdentifier string, tree Tree, destination string, kind graphmodel.EdgeKind) {
	if destination == "" {
		return
	}
	addr := rdfaddr.Address{
		Project: tree.Project, File: tree.Path, Kind: graphmodel.NodeExternal,
		SymbolPath: sanitizeSymbolPath(destination),
	}
	node := &graphmodel.Node{
		ID:         uuid.NewString(),
		Identifier: addr.String(),
		Kind:       graphmodel.NodeExternal,
		Name:       destination,
		SourceFile: tree.Path,
		Language:   string(lang.Markdown),
	}
	result.Nodes = append(result.Nodes, node)
	result.Edges = append(result.Edges, &graphmodel.Edge{
		ID: uuid.NewString(), From: fileIdentifier, To: node.Identifier, Kind: kind,
	})
}

func (e *MarkdownLinkExtractor) addHashtagEdges(result *Result, fileIdentifier string, tree Tree, textNode *ast.Text, source []byte) {
	segment := textNode.Segment
	raw := string(segment.Value(source))
	for _, m := range hashtagPattern.FindAllStringSubmatch(raw, -1) {
		tag := m[2]
		addr := rdfaddr.Address{
			Project: tree.Project, File: tree.Path, Kind: graphmodel.NodeExternal,
			SymbolPath: sanitizeSymbolPath("tag." + tag),
		}
		node := &graphmodel.Node{
			ID:         uuid.NewString(),
			Identifier: addr.String(),
			Kind:       graphmodel.NodeExternal,
			Name:       "#" + tag,
			SourceFile: tree.Path,
			Language:   string(lang.Markdown),
		}
		result.Nodes = append(result.Nodes, node)
		// md-hashtag is intentionally non-transitive (see the registry's
		// Open Question resolution): a hashtag is a flat label, not a
		// chain that should propagate through intermediate documents.
		result.Edges = append(result.Edges, &graphmodel.Edge{
			ID: uuid.NewString(), From: fileIdentifier, To: node.Identifier, Kind: "md-hashtag",
		})
	}
}

func (e *MarkdownLinkExtractor) Validate(r Result) (errs []string, warnings []string) {
	for _, n := range r.Nodes {
		if n.Identifier == "" {
			errs = append(errs, "markdown-link: node with empty Identifier")
		}
	}
	return errs, warnings
}
