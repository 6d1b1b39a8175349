package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/codepathfinder/depgraph/internal/astcache"
	"github.com/codepathfinder/depgraph/internal/errs"
	"github.com/codepathfinder/depgraph/internal/extract"
	"github.com/codepathfinder/depgraph/internal/graphmodel"
	"github.com/codepathfinder/depgraph/internal/interpret"
	"github.com/codepathfinder/depgraph/internal/lang"
)

// timeoutCause maps a context error to the error-taxonomy sentinel it
// represents: the engine's own per-file deadline firing is ErrTimeout,
// an external cancellation (caller-driven) is ErrCancelled.
func timeoutCause(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", errs.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %s", errs.ErrCancelled, err)
}

// Config parameterizes a single AnalyzeFile/AnalyzeBatch call: the
// owning project (for RDF addresses) and the resolution context the
// Path Resolver interpreter needs.
type Config struct {
	Project  string
	Aliases  map[string]string
	Packages map[string]bool
	Timeout  time.Duration
}

// ParseError is a recoverable parse failure attached to a result
// rather than returned as an error.
type ParseError = lang.SyntaxError

// ExtractorError is a recoverable extractor failure, keyed by the
// extractor's name.
type ExtractorError struct {
	Extractor string
	Message   string
}

// InterpreterError is a recoverable interpreter failure, keyed by the
// interpreter's name.
type InterpreterError struct {
	Interpreter string
	Message     string
}

// StageTimings is the per-stage duration breakdown of one AnalyzeFile call.
type StageTimings struct {
	Parse     time.Duration
	Extract   time.Duration
	Interpret time.Duration
	Total     time.Duration
}

// AnalysisResult is everything one AnalyzeFile call produces for one file.
type AnalysisResult struct {
	Path              string
	Language          lang.Language
	Nodes             []*graphmodel.Node
	Edges             []*graphmodel.Edge
	ParseErrors       []ParseError
	ExtractorErrors   []ExtractorError
	InterpreterErrors []InterpreterError
	// Interpretations holds each interpreter's bulk output keyed by
	// interpreter name (e.g. "dependency-summary" ->
	// interpret.DependencySummaryResult). Per-item interpretations
	// (Path Resolver's one-result-per-import) feed back into the
	// dependency summary instead of being exposed directly.
	Interpretations map[string]any
	Timings         StageTimings
	CacheHit        bool
}

// extractorDataTypes maps an extractor's name to the interpreter data
// types its output feeds. "dependency" feeds both "import-path" (the
// Path Resolver runs once per external node, keyed by its raw import
// text) and "dependency-nodes" (the Dependency Summary runs once over
// the whole node slice, consulting the Path Resolver's per-import
// results via ctx.Options["resolved"]). "identifier" feeds
// "identifier-nodes" in bulk the same way.
var extractorDataTypes = map[string][]string{
	"dependency": {"import-path", "dependency-nodes"},
	"identifier": {"identifier-nodes"},
	"callsite":   {"call-target", "call-edges"},
}

// AnalyzeFile runs the full pipeline against path: language detect,
// cache lookup (parsing on miss), extraction, then interpretation of
// each extractor's output. It never returns an error — every failure
// mode (I/O, parse, extractor, interpreter, timeout) is recorded on
// the returned result instead.
func (e *Engine) AnalyzeFile(ctx context.Context, path string, cfg Config) *AnalysisResult {
	start := time.Now()
	result := &AnalysisResult{Path: path, Interpretations: make(map[string]any)}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = e.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	content, err := os.ReadFile(path)
	if err != nil {
		result.ParseErrors = append(result.ParseErrors, ParseError{Type: "io", Message: err.Error()})
		result.Timings.Total = time.Since(start)
		return result
	}

	language := e.langs.Detect(path, content)
	result.Language = language

	tree, cacheHit := e.parseOrCache(ctx, path, content, language, result)
	if err := ctx.Err(); err != nil {
		result.ParseErrors = append(result.ParseErrors, ParseError{Type: "timeout", Message: timeoutCause(err).Error()})
		result.Timings.Total = time.Since(start)
		return result
	}
	result.CacheHit = cacheHit

	type extractorOutput struct {
		name string
		out  extract.Result
	}
	extractStart := time.Now()
	extractorTree := extract.Tree{Path: path, Project: cfg.Project, Language: language, Content: content, Root: tree}
	var outputs []extractorOutput
	for _, ex := range e.extractors.For(language) {
		if ctx.Err() != nil {
			break
		}
		out, err := ex.Extract(extractorTree)
		if err != nil {
			result.ExtractorErrors = append(result.ExtractorErrors, ExtractorError{Extractor: ex.Name(), Message: err.Error()})
			continue
		}
		result.Nodes = append(result.Nodes, out.Nodes...)
		result.Edges = append(result.Edges, out.Edges...)
		outputs = append(outputs, extractorOutput{name: ex.Name(), out: out})
	}
	result.Timings.Extract = time.Since(extractStart)

	interpretStart := time.Now()
	interpCtx := interpret.Context{
		FilePath:    path,
		Language:    string(language),
		ProjectRoot: cfg.Project,
		Aliases:     cfg.Aliases,
		Packages:    cfg.Packages,
		Options:     make(map[string]any),
	}
	for _, eo := range outputs {
		for _, dataType := range extractorDataTypes[eo.name] {
			switch dataType {
			case "import-path":
				e.resolveImports(eo.out.Nodes, interpCtx, result)
			case "call-target":
				e.resolveCalls(eo.out.Nodes, interpCtx, result)
			case "call-edges":
				e.summarizeCalls(eo.out.Edges, interpCtx, result)
			default:
				for _, interp := range e.interpreters.For(dataType) {
					out, err := interp.Interpret(eo.out.Nodes, interpCtx)
					if err != nil {
						result.InterpreterErrors = append(result.InterpreterErrors, InterpreterError{Interpreter: interp.Name(), Message: err.Error()})
						continue
					}
					result.Interpretations[interp.Name()] = out
				}
			}
		}
	}
	result.Timings.Interpret = time.Since(interpretStart)
	result.Timings.Total = time.Since(start)
	return result
}

// parseOrCache returns the opaque parse tree for content, consulting
// the AST cache first and filling it on a miss.
func (e *Engine) parseOrCache(ctx context.Context, path string, content []byte, language lang.Language, result *AnalysisResult) (any, bool) {
	now := time.Now()
	hash := sha256.Sum256(content)
	key := astcache.Key{Path: path, ContentHash: hex.EncodeToString(hash[:])}

	parseStart := time.Now()
	if entry, ok := e.cache.Get(key, now); ok {
		result.ParseErrors = append(result.ParseErrors, toSyntaxErrors(entry.Errors)...)
		result.Timings.Parse = time.Since(parseStart)
		return entry.Tree, true
	}

	parsed := e.langs.Parse(ctx, path, content)
	if ctx.Err() != nil {
		// A parse cut short by the deadline or a cancellation is neither
		// cached nor reported; AnalyzeFile records the timeout itself.
		return parsed.Tree, false
	}
	result.ParseErrors = append(result.ParseErrors, parsed.Errors...)
	result.Timings.Parse = time.Since(parseStart)
	e.cache.Put(key, &astcache.Entry{
		Tree:      parsed.Tree,
		Language:  string(parsed.Language),
		ParseTime: time.Duration(parsed.ParseTime) * time.Millisecond,
		Errors:    toParseErrors(parsed.Errors),
	}, now)
	return parsed.Tree, false
}

// resolveImports runs the Path Resolver over every external node's
// raw import text and folds the results into ctx.Options["resolved"]
// so a later Dependency Summary call sees resolution kinds even when
// the extractor's own recorded "resolution" metadata was a guess.
func (e *Engine) resolveImports(nodes []*graphmodel.Node, interpCtx interpret.Context, result *AnalysisResult) {
	resolved := make(map[string]interpret.ResolvedImport, len(nodes))
	for _, n := range nodes {
		for _, interp := range e.interpreters.For("import-path") {
			out, err := interp.Interpret(n.Name, interpCtx)
			if err != nil {
				result.InterpreterErrors = append(result.InterpreterErrors, InterpreterError{Interpreter: interp.Name(), Message: err.Error()})
				continue
			}
			if ri, ok := out.(interpret.ResolvedImport); ok {
				resolved[n.Name] = ri
			}
		}
	}
	if len(resolved) > 0 {
		interpCtx.Options["resolved"] = resolved
	}
}

// resolveCalls runs the Call Resolver over every call-site placeholder
// node the callsite extractor left unresolved and folds the results
// into ctx.Options["resolvedCalls"], so the subsequent call-edges
// summary sees alias/framework-known stages beyond the direct matches
// the extractor already resolved itself.
func (e *Engine) resolveCalls(nodes []*graphmodel.Node, interpCtx interpret.Context, result *AnalysisResult) {
	resolved := make(map[string]interpret.ResolvedCall, len(nodes))
	for _, n := range nodes {
		if n.Kind != graphmodel.NodeExternal {
			continue
		}
		if kind, _ := n.Metadata["kind"].(string); kind != "call-target" {
			continue
		}
		for _, interp := range e.interpreters.For("call-target") {
			out, err := interp.Interpret(n.Name, interpCtx)
			if err != nil {
				result.InterpreterErrors = append(result.InterpreterErrors, InterpreterError{Interpreter: interp.Name(), Message: err.Error()})
				continue
			}
			if rc, ok := out.(interpret.ResolvedCall); ok {
				resolved[n.Name] = rc
			}
		}
	}
	if len(resolved) > 0 {
		interpCtx.Options["resolvedCalls"] = resolved
	}
}

// summarizeCalls runs the Call Summary interpreter over a file's
// "calls" edges, reading ctx.Options["resolvedCalls"] (populated by
// resolveCalls, which always runs first per extractorDataTypes'
// ordering for the callsite extractor) to classify edges the
// extractor left unresolved.
func (e *Engine) summarizeCalls(edges []*graphmodel.Edge, interpCtx interpret.Context, result *AnalysisResult) {
	for _, interp := range e.interpreters.For("call-edges") {
		out, err := interp.Interpret(edges, interpCtx)
		if err != nil {
			result.InterpreterErrors = append(result.InterpreterErrors, InterpreterError{Interpreter: interp.Name(), Message: err.Error()})
			continue
		}
		result.Interpretations[interp.Name()] = out
	}
}

func toParseErrors(se []lang.SyntaxError) []astcache.ParseError {
	out := make([]astcache.ParseError, len(se))
	for i, s := range se {
		out[i] = astcache.ParseError{Type: s.Type, Message: s.Message, Line: s.Line, Column: s.Column}
	}
	return out
}

func toSyntaxErrors(pe []astcache.ParseError) []lang.SyntaxError {
	out := make([]lang.SyntaxError, len(pe))
	for i, p := range pe {
		out[i] = lang.SyntaxError{Type: p.Type, Message: p.Message, Line: p.Line, Column: p.Column}
	}
	return out
}
