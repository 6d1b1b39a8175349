package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codepathfinder/depgraph/internal/extract"
	"github.com/codepathfinder/depgraph/internal/interpret"
	"github.com/codepathfinder/depgraph/internal/lang"
)

const sampleGoSource = `package sample

import (
	"fmt"
	"strings"
)

func Greet(name string) string {
	return fmt.Sprintf("hello %s", strings.ToUpper(name))
}
`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAnalyzeFile_RunsFullPipeline(t *testing.T) {
	e := New()
	path := writeTempFile(t, "sample.go", sampleGoSource)

	result := e.AnalyzeFile(context.Background(), path, Config{Project: "demo"})

	assert.Equal(t, lang.Go, result.Language)
	assert.False(t, result.CacheHit)
	assert.NotEmpty(t, result.Nodes)
	assert.NotEmpty(t, result.Edges)
	assert.Empty(t, result.ParseErrors)
	assert.Empty(t, result.ExtractorErrors)
	assert.Contains(t, result.Interpretations, "dependency-summary")
	summary := result.Interpretations["dependency-summary"].(interpret.DependencySummaryResult)
	assert.Equal(t, 2, summary.Total, "fmt and strings")
	assert.Positive(t, result.Timings.Total)
}

func TestAnalyzeFile_BuildsCallsEdgesAndSummary(t *testing.T) {
	e := New()
	path := writeTempFile(t, "sample.go", sampleGoSource)

	result := e.AnalyzeFile(context.Background(), path, Config{Project: "demo"})

	var sawCalls bool
	for _, edge := range result.Edges {
		if edge.Kind == "calls" {
			sawCalls = true
		}
	}
	assert.True(t, sawCalls, "Sprintf/ToUpper calls should produce calls edges")

	assert.Contains(t, result.Interpretations, "call-summary")
	summary := result.Interpretations["call-summary"].(interpret.CallSummaryResult)
	assert.Positive(t, summary.Total)
}

func TestAnalyzeFile_SecondCallHitsCache(t *testing.T) {
	e := New()
	path := writeTempFile(t, "sample.go", sampleGoSource)

	first := e.AnalyzeFile(context.Background(), path, Config{Project: "demo"})
	require.False(t, first.CacheHit)

	second := e.AnalyzeFile(context.Background(), path, Config{Project: "demo"})
	assert.True(t, second.CacheHit)

	stats := e.GetCacheStats()
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, float64(1)/2, stats.HitRate)
}

func TestAnalyzeFile_MissingFileYieldsIOParseError(t *testing.T) {
	e := New()

	result := e.AnalyzeFile(context.Background(), filepath.Join(t.TempDir(), "missing.go"), Config{})
	require.Len(t, result.ParseErrors, 1)
	assert.Equal(t, "io", result.ParseErrors[0].Type)
	assert.Empty(t, result.Nodes)
}

type failingExtractor struct{}

func (failingExtractor) Name() string                    { return "failing" }
func (failingExtractor) Version() string                  { return "1.0.0" }
func (failingExtractor) Supports(l lang.Language) bool    { return l == lang.Go }
func (failingExtractor) Validate(extract.Result) ([]string, []string) { return nil, nil }
func (failingExtractor) Extract(extract.Tree) (extract.Result, error) {
	return extract.Result{}, assert.AnError
}

func TestAnalyzeFile_ExtractorFailureIsRecordedNotFatal(t *testing.T) {
	e := New()
	e.RegisterExtractor(failingExtractor{})
	path := writeTempFile(t, "sample.go", sampleGoSource)

	result := e.AnalyzeFile(context.Background(), path, Config{Project: "demo"})
	require.NotEmpty(t, result.ExtractorErrors)
	found := false
	for _, ee := range result.ExtractorErrors {
		if ee.Extractor == "failing" {
			found = true
		}
	}
	assert.True(t, found)
	assert.NotEmpty(t, result.Nodes, "other extractors still ran")
}

func TestAnalyzeBatch_PreservesInputOrderAndIsolatesFailures(t *testing.T) {
	e := New()
	good1 := writeTempFile(t, "a.go", sampleGoSource)
	bad := filepath.Join(t.TempDir(), "missing.go")
	good2 := writeTempFile(t, "b.go", sampleGoSource)

	results := e.AnalyzeBatch(context.Background(), []string{good1, bad, good2}, Config{Project: "demo"}, 2)

	require.Len(t, results, 3)
	assert.Equal(t, good1, results[0].Path)
	assert.Equal(t, bad, results[1].Path)
	assert.Equal(t, good2, results[2].Path)
	assert.NotEmpty(t, results[0].Nodes)
	assert.NotEmpty(t, results[1].ParseErrors)
	assert.NotEmpty(t, results[2].Nodes)
}

func TestAnalyzeFile_TimeoutIsRecordedAsParseError(t *testing.T) {
	e := New()
	path := writeTempFile(t, "sample.go", sampleGoSource)

	result := e.AnalyzeFile(context.Background(), path, Config{Project: "demo", Timeout: 1 * time.Nanosecond})
	require.Len(t, result.ParseErrors, 1)
	assert.Equal(t, "timeout", result.ParseErrors[0].Type)
}

func TestClearCache_ResetsStats(t *testing.T) {
	e := New()
	path := writeTempFile(t, "sample.go", sampleGoSource)
	e.AnalyzeFile(context.Background(), path, Config{Project: "demo"})
	require.Equal(t, 1, e.GetCacheStats().Size)

	e.ClearCache()
	stats := e.GetCacheStats()
	assert.Equal(t, 0, stats.Size)
	assert.Equal(t, float64(0), stats.HitRate)
}

type countingInterpreter struct{ seen int }

func (c *countingInterpreter) Name() string    { return "counting" }
func (c *countingInterpreter) Version() string { return "1.0.0" }
func (c *countingInterpreter) Supports(dataType string) bool { return dataType == "identifier-nodes" }
func (c *countingInterpreter) Interpret(input any, _ interpret.Context) (any, error) {
	c.seen++
	return c.seen, nil
}

func TestRegisterInterpreter_RunsAlongsideBuiltins(t *testing.T) {
	e := New()
	custom := &countingInterpreter{}
	e.RegisterInterpreter(custom)
	path := writeTempFile(t, "sample.go", sampleGoSource)

	result := e.AnalyzeFile(context.Background(), path, Config{Project: "demo"})
	assert.Contains(t, result.Interpretations, "identifier-analysis", "builtin interpreter still runs")
	assert.Contains(t, result.Interpretations, "counting", "newly registered interpreter also runs")
	assert.Equal(t, 1, custom.seen)
}
