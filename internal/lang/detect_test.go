package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage_ByExtension(t *testing.T) {
	cases := map[string]Language{
		"foo.go":         Go,
		"foo.java":       Java,
		"foo.py":         Python,
		"foo.ts":         TypeScript,
		"foo.tsx":        TypeScript,
		"foo.js":         JavaScript,
		"foo.jsx":        JavaScript,
		"README.md":      Markdown,
		"notes.markdown": Markdown,
		"doc.mdx":        Markdown,
	}
	for path, want := range cases {
		assert.Equal(t, want, DetectLanguage(path, nil), path)
	}
}

func TestDetectLanguage_ShebangFallback(t *testing.T) {
	assert.Equal(t, Python, DetectLanguage("script", []byte("#!/usr/bin/env python\nprint(1)")))
	assert.Equal(t, JavaScript, DetectLanguage("script", []byte("#!/usr/bin/env node\nconsole.log(1)")))
}

func TestDetectLanguage_GoContentSniff(t *testing.T) {
	src := "package main\nimport \"fmt\"\n"
	assert.Equal(t, Go, DetectLanguage("noext", []byte(src)))
}

func TestDetectLanguage_UnknownWhenUnrecognized(t *testing.T) {
	assert.Equal(t, Unknown, DetectLanguage("noext", []byte("just some text")))
}
