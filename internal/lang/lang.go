// Package lang implements the language-parser adapters: one adapter
// per supported language, dispatched by the analysis engine through a
// small registry.
package lang

import "context"

// Language is one of the supported (or synthetic) language tags.
type Language string

const (
	TypeScript Language = "typescript"
	JavaScript Language = "javascript"
	Java       Language = "java"
	Python     Language = "python"
	Go         Language = "go"
	Markdown   Language = "markdown"
	External   Language = "external"
	Unknown    Language = "unknown"
)

// SyntaxError is a single parse or syntax failure: its kind, message, and location.
type SyntaxError struct {
	Type      string
	Message   string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// ParseResult is what Parse returns: a tree plus parse metadata.
type ParseResult struct {
	Tree      any // opaque; concrete type is adapter-specific (*sitter.Tree, ast.Node, ...)
	Language  Language
	ParseTime int64 // milliseconds
	CacheHit  bool
	Errors    []SyntaxError
}

// SyntaxResult is validateSyntax's return shape.
type SyntaxResult struct {
	Valid  bool
	Errors []SyntaxError
}

// Adapter is the per-language parser contract. Parse MUST be total:
// on any failure it returns a result with an empty or partial tree
// plus an error list, never an error return.
type Adapter interface {
	Supports(l Language) bool
	DetectLanguage(path string, content []byte) Language
	Parse(ctx context.Context, path string, content []byte) ParseResult
	ValidateSyntax(content []byte) SyntaxResult
}
