package lang

import (
	"context"
	"time"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// TreeSitterAdapter wraps a single smacker/go-tree-sitter grammar,
// following the standard sitter.NewParser / SetLanguage / ParseCtx /
// tree.RootNode parse pattern.
type TreeSitterAdapter struct {
	language Language
	sitterLang *sitter.Language
}

// NewTreeSitterAdapter builds an adapter for one supported language.
func NewTreeSitterAdapter(l Language) *TreeSitterAdapter {
	return &TreeSitterAdapter{language: l, sitterLang: grammarFor(l)}
}

func grammarFor(l Language) *sitter.Language {
	switch l {
	case Go:
		return golang.GetLanguage()
	case Java:
		return java.GetLanguage()
	case Python:
		return python.GetLanguage()
	case JavaScript:
		return javascript.GetLanguage()
	case TypeScript:
		return typescript.GetLanguage()
	default:
		return nil
	}
}

func (a *TreeSitterAdapter) Supports(l Language) bool {
	return l == a.language
}

func (a *TreeSitterAdapter) DetectLanguage(path string, content []byte) Language {
	return DetectLanguage(path, content)
}

func (a *TreeSitterAdapter) Parse(ctx context.Context, path string, content []byte) ParseResult {
	start := time.Now()
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(a.sitterLang)

	tree, err := parser.ParseCtx(ctx, nil, content)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		return ParseResult{
			Language:  a.language,
			ParseTime: elapsed,
			Errors: []SyntaxError{{
				Type:    "ParseError",
				Message: err.Error(),
			}},
		}
	}

	root := tree.RootNode()
	return ParseResult{
		Tree:      tree,
		Language:  a.language,
		ParseTime: elapsed,
		Errors:    collectSyntaxErrors(root),
	}
}

// collectSyntaxErrors walks the tree for ERROR/MISSING nodes,
// surfacing them as a result field rather than failing the whole parse.
func collectSyntaxErrors(node *sitter.Node) []SyntaxError {
	var errs []SyntaxError
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if n.IsError() || n.IsMissing() {
			start := n.StartPoint()
			end := n.EndPoint()
			errs = append(errs, SyntaxError{
				Type:      "ParseError",
				Message:   "unexpected syntax near " + n.Type(),
				Line:      int(start.Row) + 1,
				Column:    int(start.Column) + 1,
				EndLine:   int(end.Row) + 1,
				EndColumn: int(end.Column) + 1,
			})
			return // don't descend into an already-flagged error subtree
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(node)
	return errs
}

func (a *TreeSitterAdapter) ValidateSyntax(content []byte) SyntaxResult {
	result := a.Parse(context.Background(), "", content)
	return SyntaxResult{Valid: len(result.Errors) == 0, Errors: result.Errors}
}

// TSXAdapter is the TSX-flavored TypeScript grammar, used only for
// .tsx input (detected by extension in detect.go, which maps both .ts
// and .tsx to TypeScript — Registry.Parse routes .tsx files to this
// adapter by extension).
type TSXAdapter struct {
	TreeSitterAdapter
}

// NewTSXAdapter builds the .tsx-specific grammar adapter.
func NewTSXAdapter() *TSXAdapter {
	return &TSXAdapter{TreeSitterAdapter{language: TypeScript, sitterLang: tsx.GetLanguage()}}
}
