package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// AnalyzeBatch runs AnalyzeFile over paths with parallelism bounded by
// maxParallelism (DefaultParallelism if non-positive). Results are
// returned in input order regardless of completion order; an error on
// one file never prevents the others from completing, since
// AnalyzeFile records failures on its result instead of returning an
// error. Between items it sweeps the AST cache's expired entries
// instead of running that sweep on a dedicated background timer.
func (e *Engine) AnalyzeBatch(ctx context.Context, paths []string, cfg Config, maxParallelism int) []*AnalysisResult {
	if maxParallelism <= 0 {
		maxParallelism = DefaultParallelism
	}
	results := make([]*AnalysisResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelism)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = e.AnalyzeFile(gctx, path, cfg)
			e.cache.Tick(time.Now())
			return nil
		})
	}
	_ = g.Wait()
	return results
}
