package lang

import "context"

// ExternalAdapter is the synthetic adapter for addresses outside the
// analyzed project (the external-resource node kind). It never
// parses real content: external nodes are created directly by
// extractors when a dependency target can't be resolved to a project
// file, and DetectLanguage never returns External on its own.
type ExternalAdapter struct{}

func (ExternalAdapter) Supports(l Language) bool { return l == External }

func (ExternalAdapter) DetectLanguage(path string, content []byte) Language { return Unknown }

func (ExternalAdapter) Parse(ctx context.Context, path string, content []byte) ParseResult {
	return ParseResult{Language: External}
}

func (ExternalAdapter) ValidateSyntax(content []byte) SyntaxResult {
	return SyntaxResult{Valid: true}
}

// UnknownAdapter handles files DetectLanguage could not classify. Parse
// returns an empty tree rather than an error, preserving the total-parse
// contract for files of a recognized-but-unsupported or unrecognized type.
type UnknownAdapter struct{}

func (UnknownAdapter) Supports(l Language) bool { return l == Unknown }

func (UnknownAdapter) DetectLanguage(path string, content []byte) Language {
	return DetectLanguage(path, content)
}

func (UnknownAdapter) Parse(ctx context.Context, path string, content []byte) ParseResult {
	return ParseResult{
		Language: Unknown,
		Errors: []SyntaxError{{
			Type:    "UnsupportedLanguage",
			Message: "no adapter is registered for this file",
		}},
	}
}

func (UnknownAdapter) ValidateSyntax(content []byte) SyntaxResult {
	return SyntaxResult{Valid: true}
}
