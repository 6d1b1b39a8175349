package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codepathfinder/depgraph/internal/engine"
)

func TestWriteSARIF_EncodesDiagnosticsAsResults(t *testing.T) {
	results := []*engine.AnalysisResult{
		{
			Path:        "a.go",
			ParseErrors: []engine.ParseError{{Type: "syntax", Message: "unexpected token", Line: 3, Column: 5}},
		},
		{
			Path:            "b.py",
			ExtractorErrors: []engine.ExtractorError{{Extractor: "dependency", Message: "boom"}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeSARIF(&buf, results))

	out := buf.String()
	assert.Contains(t, out, "2.1.0")
	assert.Contains(t, out, "a.go")
	assert.Contains(t, out, "unexpected token")
	assert.Contains(t, out, "b.py")
	assert.Contains(t, out, "dependency: boom")
}
