package lang

import (
	"bytes"
	"path/filepath"
	"strings"
)

// extensionTable is the extension-first detection table.
var extensionTable = map[string]Language{
	".ts":       TypeScript,
	".tsx":      TypeScript,
	".js":       JavaScript,
	".jsx":      JavaScript,
	".java":     Java,
	".py":       Python,
	".pyi":      Python,
	".go":       Go,
	".md":       Markdown,
	".markdown": Markdown,
	".mdx":      Markdown,
}

// DetectLanguage implements the extension-first-with-content-sniff-
// fallback rule. It is shared by every tree-sitter-backed adapter;
// the Markdown and Unknown adapters use it directly too, while the
// External adapter always reports Unknown.
func DetectLanguage(path string, content []byte) Language {
	ext := strings.ToLower(filepath.Ext(path))
	if l, ok := extensionTable[ext]; ok {
		return l
	}
	return sniffContent(content)
}

// sniffContent is a byte-prefix sniff for extension-less input. After
// skipping a UTF-8 byte-order mark and leading whitespace it recognizes
// python and node shebang lines, and Go source that opens with a
// package clause and contains an import line.
func sniffContent(content []byte) Language {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(content, []byte("\xef\xbb\xbf")), " \t\r\n")
	switch {
	case bytes.HasPrefix(trimmed, []byte("#!")):
		switch {
		case bytes.Contains(trimmed[:min(64, len(trimmed))], []byte("python")):
			return Python
		case bytes.Contains(trimmed[:min(64, len(trimmed))], []byte("node")):
			return JavaScript
		}
	case bytes.HasPrefix(trimmed, []byte("package ")) && bytes.Contains(trimmed, []byte("\nimport ")):
		return Go
	}
	return Unknown
}
