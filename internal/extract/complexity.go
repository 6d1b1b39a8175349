package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codepathfinder/depgraph/internal/graphmodel"
	"github.com/codepathfinder/depgraph/internal/lang"
	"github.com/google/uuid"
)

// branchNodeTypes are the per-language grammar node types that add one
// to cyclomatic complexity, generalizing the if_statement/
// while_statement/for_statement/do_statement arms that classic
// cyclomatic-complexity counting switches on, generalized to every
// supported language's equivalents.
// Short-circuit boolean operators (&&, ||) are counted separately by
// booleanOperatorNodeTypes since they share the generic
// binary_expression grammar rule with every other arithmetic operator.
var branchNodeTypes = map[lang.Language][]string{
	lang.Go: {
		"if_statement", "for_statement", "expression_case", "default_case",
		"communication_case",
	},
	lang.Java: {
		"if_statement", "for_statement", "while_statement", "do_statement",
		"switch_label", "catch_clause", "ternary_expression",
	},
	lang.Python: {
		"if_statement", "for_statement", "while_statement", "except_clause",
		"conditional_expression",
	},
	lang.JavaScript: {
		"if_statement", "for_statement", "for_in_statement", "while_statement",
		"do_statement", "switch_case", "catch_clause", "ternary_expression",
	},
	lang.TypeScript: {
		"if_statement", "for_statement", "for_in_statement", "while_statement",
		"do_statement", "switch_case", "catch_clause", "ternary_expression",
	},
}

// ComplexityExtractor annotates each function/method node the
// identifier extractor would also find with a cyclomatic complexity
// score: 1 (straight-line baseline) plus one per branch/loop/case
// node in its subtree.
type ComplexityExtractor struct{}

// NewComplexityExtractor builds the complexity extractor.
func NewComplexityExtractor() *ComplexityExtractor { return &ComplexityExtractor{} }

func (e *ComplexityExtractor) Name() string    { return "complexity" }
func (e *ComplexityExtractor) Version() string { return "1.0.0" }

func (e *ComplexityExtractor) Supports(l lang.Language) bool {
	_, ok := branchNodeTypes[l]
	return ok
}

var functionNodeTypes = map[lang.Language][]string{
	lang.Go:         {"function_declaration", "method_declaration"},
	lang.Java:       {"method_declaration", "constructor_declaration"},
	lang.Python:     {"function_definition"},
	lang.JavaScript: {"function_declaration", "method_definition"},
	lang.TypeScript: {"function_declaration", "method_definition"},
}

// Extract emits one node per function or method that the declaration
// table (resolveDeclarations) also lists, carrying that declaration's
// Identifier and Kind plus a "cyclomaticComplexity" metadata entry, and
// no edges. The graph store's upsert merges each such node with the
// identifier extractor's node of the same Identifier. Functions the
// declaration table does not list (anonymous ones) get no score.
func (e *ComplexityExtractor) Extract(tree Tree) (Result, error) {
	root, ok := rootNode(tree)
	if !ok {
		return Result{}, nil
	}
	branchTypes := branchNodeTypes[tree.Language]
	funcTypes := functionNodeTypes[tree.Language]
	if len(funcTypes) == 0 {
		return Result{}, nil
	}

	declByNode := make(map[*sitter.Node]resolvedDecl)
	for _, d := range resolveDeclarations(tree) {
		declByNode[d.node] = d
	}

	var result Result
	for _, fn := range nodesOfType(root, funcTypes...) {
		decl, ok := declByNode[fn]
		if !ok {
			continue
		}
		score := 1 + len(nodesOfType(fn, branchTypes...)) + countShortCircuitOperators(fn, tree.Content, tree.Language)
		nameField := fn.ChildByFieldName("name")
		name := ""
		if nameField != nil {
			name = nameField.Content(tree.Content)
		}
		result.Nodes = append(result.Nodes, &graphmodel.Node{
			ID:         uuid.NewString(),
			Identifier: decl.identifier,
			Kind:       decl.kind,
			Name:       name,
			SourceFile: tree.Path,
			Language:   string(tree.Language),
			Metadata:   map[string]any{"cyclomaticComplexity": score},
		})
	}
	return result, nil
}

// countShortCircuitOperators counts && / || decision points. These
// share the generic binary_expression grammar rule with every
// arithmetic/comparison operator in Go/Java/JS/TS, so it filters by
// operator text rather than node type; Python gives boolean "and"/"or"
// their own dedicated boolean_operator rule, so every match counts.
func countShortCircuitOperators(fn *sitter.Node, content []byte, l lang.Language) int {
	count := 0
	switch l {
	case lang.Python:
		walk(fn, func(n *sitter.Node) {
			if n.Type() == "boolean_operator" {
				count++
			}
		})
	default:
		walk(fn, func(n *sitter.Node) {
			if n.Type() != "binary_expression" {
				return
			}
			op := n.ChildByFieldName("operator")
			if op == nil {
				return
			}
			switch op.Content(content) {
			case "&&", "||":
				count++
			}
		})
	}
	return count
}

func (e *ComplexityExtractor) Validate(r Result) (errs []string, warnings []string) {
	for _, n := range r.Nodes {
		if score, ok := n.Metadata["cyclomaticComplexity"].(int); ok && score < 1 {
			errs = append(errs, "complexity: non-positive score for "+n.Name)
		}
	}
	return errs, warnings
}
