package extract

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codepathfinder/depgraph/internal/graphmodel"
	"github.com/codepathfinder/depgraph/internal/lang"
	"github.com/codepathfinder/depgraph/internal/rdfaddr"
	"github.com/google/uuid"
)

// ResolutionKind classifies how an import target was spelled, mirroring
// model/import.go's ImportType but carrying the extra "how was this
// written" dimension the Path Resolver interpreter later consumes.
type ResolutionKind string

const (
	ResolutionRelative ResolutionKind = "relative"
	ResolutionAlias    ResolutionKind = "alias"
	ResolutionPackage  ResolutionKind = "package"
	ResolutionBuiltin  ResolutionKind = "builtin"
	ResolutionUnknown  ResolutionKind = "unknown"
)

// DependencyExtractor builds "imports" edges from each import/require
// statement to an unresolved external node. Resolving that node to an
// in-project file is the Path Resolver interpreter's job
// (internal/interpret), not the extractor's: record the written import
// text as-is and leave resolution to a later pass.
type DependencyExtractor struct{}

// NewDependencyExtractor builds the dependency extractor.
func NewDependencyExtractor() *DependencyExtractor { return &DependencyExtractor{} }

func (e *DependencyExtractor) Name() string    { return "dependency" }
func (e *DependencyExtractor) Version() string { return "1.0.0" }

func (e *DependencyExtractor) Supports(l lang.Language) bool {
	switch l {
	case lang.Go, lang.Java, lang.Python, lang.JavaScript, lang.TypeScript:
		return true
	}
	return false
}

type importRef struct {
	raw        string
	resolution ResolutionKind
}

func (e *DependencyExtractor) Extract(tree Tree) (Result, error) {
	root, ok := rootNode(tree)
	if !ok {
		return Result{}, nil
	}

	var refs []importRef
	switch tree.Language {
	case lang.Go:
		refs = goImports(root, tree.Content)
	case lang.Java:
		refs = javaImports(root, tree.Content)
	case lang.Python:
		refs = pythonImports(root, tree.Content)
	case lang.JavaScript, lang.TypeScript:
		refs = jsImports(root, tree.Content)
	}
	if len(refs) == 0 {
		return Result{}, nil
	}

	fileAddr := rdfaddr.Address{Project: tree.Project, File: tree.Path, Kind: graphmodel.NodeFile}
	fileIdentifier := fileAddr.String()

	var result Result
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if seen[ref.raw] {
			continue
		}
		seen[ref.raw] = true

		addr := rdfaddr.Address{
			Project:    tree.Project,
			File:       tree.Path,
			Kind:       graphmodel.NodeExternal,
			SymbolPath: sanitizeSymbolPath(ref.raw),
		}
		node := &graphmodel.Node{
			ID:         uuid.NewString(),
			Identifier: addr.String(),
			Kind:       graphmodel.NodeExternal,
			Name:       ref.raw,
			SourceFile: tree.Path,
			Language:   string(tree.Language),
			Metadata:   map[string]any{"resolution": string(ref.resolution)},
		}
		result.Nodes = append(result.Nodes, node)
		result.Edges = append(result.Edges, &graphmodel.Edge{
			ID:   uuid.NewString(),
			From: fileIdentifier,
			To:   node.Identifier,
			Kind: "imports",
		})
	}
	return result, nil
}

func (e *DependencyExtractor) Validate(r Result) (errs []string, warnings []string) {
	for _, edge := range r.Edges {
		if edge.Kind != "imports" {
			errs = append(errs, "dependency: unexpected edge kind "+string(edge.Kind))
		}
	}
	return errs, warnings
}

var nonIdentChar = regexp.MustCompile(`[^A-Za-z0-9_.]+`)

// sanitizeSymbolPath maps an arbitrary import spelling (scoped npm
// packages, dotted Python modules, slash-separated Go paths) onto the
// identifier-segment grammar rdfaddr requires.
func sanitizeSymbolPath(raw string) string {
	cleaned := nonIdentChar.ReplaceAllString(raw, "_")
	cleaned = strings.ReplaceAll(cleaned, "/", ".")
	segs := strings.Split(cleaned, ".")
	for i, s := range segs {
		if s == "" {
			segs[i] = "_"
			continue
		}
		if s[0] >= '0' && s[0] <= '9' {
			segs[i] = "_" + s
		}
	}
	return strings.Join(segs, ".")
}

func goImports(root *sitter.Node, content []byte) []importRef {
	var refs []importRef
	for _, spec := range nodesOfType(root, "import_spec") {
		pathNode := spec.ChildByFieldName("path")
		if pathNode == nil {
			continue
		}
		raw := strings.Trim(pathNode.Content(content), "\"")
		refs = append(refs, importRef{raw: raw, resolution: goResolutionKind(raw)})
	}
	return refs
}

func goResolutionKind(path string) ResolutionKind {
	if !strings.Contains(path, ".") {
		return ResolutionBuiltin // stdlib import paths are unqualified ("fmt", "net/http")
	}
	return ResolutionPackage
}

func javaImports(root *sitter.Node, content []byte) []importRef {
	var refs []importRef
	for _, decl := range nodesOfType(root, "import_declaration") {
		var raw string
		walk(decl, func(n *sitter.Node) {
			if n.Type() == "scoped_identifier" || n.Type() == "identifier" {
				if c := n.Content(content); len(c) > len(raw) {
					raw = c
				}
			}
		})
		if raw == "" {
			continue
		}
		kind := ResolutionPackage
		if strings.HasPrefix(raw, "java.") || strings.HasPrefix(raw, "javax.") {
			kind = ResolutionBuiltin
		}
		refs = append(refs, importRef{raw: raw, resolution: kind})
	}
	return refs
}

func pythonImports(root *sitter.Node, content []byte) []importRef {
	var refs []importRef
	for _, n := range nodesOfType(root, "import_statement", "import_from_statement") {
		moduleNode := n.ChildByFieldName("module_name")
		if moduleNode == nil {
			// plain "import x[, y]" has no module_name field; take dotted_name children.
			for i := 0; i < int(n.NamedChildCount()); i++ {
				c := n.NamedChild(i)
				if c.Type() == "dotted_name" || c.Type() == "aliased_import" {
					refs = append(refs, importRef{raw: c.Content(content), resolution: pythonResolutionKind(c.Content(content))})
				}
			}
			continue
		}
		raw := moduleNode.Content(content)
		refs = append(refs, importRef{raw: raw, resolution: pythonResolutionKind(raw)})
	}
	return refs
}

func pythonResolutionKind(raw string) ResolutionKind {
	if strings.HasPrefix(raw, ".") {
		return ResolutionRelative
	}
	return ResolutionPackage
}

func jsImports(root *sitter.Node, content []byte) []importRef {
	var refs []importRef
	for _, n := range nodesOfType(root, "import_statement", "call_expression") {
		var raw string
		if n.Type() == "import_statement" {
			sourceNode := n.ChildByFieldName("source")
			if sourceNode == nil {
				continue
			}
			raw = strings.Trim(sourceNode.Content(content), "\"'`")
		} else {
			fn := n.ChildByFieldName("function")
			if fn == nil || fn.Content(content) != "require" {
				continue
			}
			args := n.ChildByFieldName("arguments")
			if args == nil || args.NamedChildCount() == 0 {
				continue
			}
			raw = strings.Trim(args.NamedChild(0).Content(content), "\"'`")
		}
		refs = append(refs, importRef{raw: raw, resolution: jsResolutionKind(raw)})
	}
	return refs
}

func jsResolutionKind(raw string) ResolutionKind {
	switch {
	case strings.HasPrefix(raw, "."):
		return ResolutionRelative
	case strings.HasPrefix(raw, "node:"):
		return ResolutionBuiltin
	default:
		return ResolutionPackage
	}
}
