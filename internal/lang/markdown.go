package lang

import (
	"bytes"
	"context"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownAdapter parses Markdown documents with goldmark. No
// tree-sitter grammar ships a Markdown parser, so the Markdown
// extractor's heading and link nodes are built from goldmark's AST
// instead of a sitter.Tree.
type MarkdownAdapter struct {
	md goldmark.Markdown
}

// NewMarkdownAdapter builds the Markdown adapter.
func NewMarkdownAdapter() *MarkdownAdapter {
	return &MarkdownAdapter{md: goldmark.New()}
}

func (a *MarkdownAdapter) Supports(l Language) bool {
	return l == Markdown
}

func (a *MarkdownAdapter) DetectLanguage(path string, content []byte) Language {
	return DetectLanguage(path, content)
}

func (a *MarkdownAdapter) Parse(ctx context.Context, path string, content []byte) ParseResult {
	start := time.Now()
	reader := text.NewReader(content)
	root := a.md.Parser().Parse(reader)
	return ParseResult{
		Tree:      root,
		Language:  Markdown,
		ParseTime: time.Since(start).Milliseconds(),
		Errors:    nil, // goldmark's block parser is total and never fails a well-formed byte stream
	}
}

// ValidateSyntax is always clean for Markdown: goldmark recovers from
// any malformed input rather than rejecting it, so there is nothing to
// surface as a syntax error.
func (a *MarkdownAdapter) ValidateSyntax(content []byte) SyntaxResult {
	return SyntaxResult{Valid: true}
}

// WalkHeadings visits every ast.Heading node in document order, giving
// extractors a stable hook for the md-contains-heading edge kind
// without each one re-implementing the goldmark walk.
func WalkHeadings(doc ast.Node, source []byte, visit func(level int, text string, n ast.Node)) {
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		var buf bytes.Buffer
		for c := h.FirstChild(); c != nil; c = c.NextSibling() {
			if lines := c.Lines(); lines.Len() > 0 {
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					buf.Write(seg.Value(source))
				}
			}
		}
		visit(h.Level, buf.String(), n)
		return ast.WalkContinue, nil
	})
}
