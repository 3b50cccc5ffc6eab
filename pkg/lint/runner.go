// Package lint wires the analysis pipeline: extract → analyze → evaluate.
//
// A Runner lints files against a merged rule configuration. Per file, every
// diagram is extracted, measured, and evaluated independently; across
// files, work runs in parallel because no state is shared between
// evaluations. Results are always assembled in input order regardless of
// completion order, so output is deterministic.
package lint

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/flowlint/flowlint/pkg/cache"
	"github.com/flowlint/flowlint/pkg/errors"
	"github.com/flowlint/flowlint/pkg/extract"
	"github.com/flowlint/flowlint/pkg/metrics"
	"github.com/flowlint/flowlint/pkg/report"
	"github.com/flowlint/flowlint/pkg/rules"
)

// DefaultWorkers bounds the number of files linted concurrently.
const DefaultWorkers = 8

// DefaultCacheTTL is how long a cached file result stays valid. Entries are
// keyed by content and config hashes, so the TTL exists only to bound cache
// growth, not for correctness.
const DefaultCacheTTL = 30 * 24 * time.Hour

// Runner lints files with a fixed configuration and optional result cache.
type Runner struct {
	cache      cache.Cache
	cfg        rules.Config
	configHash string
	logger     *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil logger
// falls back to the default logger.
func NewRunner(c cache.Cache, cfg rules.Config, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	if cfg == nil {
		cfg = rules.Defaults()
	}
	cfgJSON, _ := json.Marshal(cfg)
	return &Runner{
		cache:      c,
		cfg:        cfg,
		configHash: cache.Hash(cfgJSON),
		logger:     logger,
	}
}

// LintSource lints in-memory diagram source attributed to path. Each
// extracted diagram gets fresh metrics; nothing is shared or cached across
// diagrams.
func (r *Runner) LintSource(ctx context.Context, path string, source []byte) report.FileReport {
	diagrams := extract.Extract(path, source)
	fr := report.FileReport{Path: path, Diagrams: len(diagrams)}
	for i := range diagrams {
		d := &diagrams[i]
		m := metrics.Analyze(d)
		fr.Issues = append(fr.Issues, rules.EvaluateContext(ctx, d, m, r.cfg)...)
	}
	return fr
}

// LintFile reads and lints one file, consulting the result cache first.
// Cache keys combine the content hash with the config hash, so any change
// to either recomputes the result.
func (r *Runner) LintFile(ctx context.Context, path string) (report.FileReport, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return report.FileReport{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}

	key := cache.Key("lint", cache.Hash(source), r.configHash)
	if data, hit, err := r.cache.Get(ctx, key); err == nil && hit {
		var cached report.FileReport
		if json.Unmarshal(data, &cached) == nil && cached.Path == path {
			r.logger.Debugf("cache hit for %s", path)
			return cached, nil
		}
	}

	fr := r.LintSource(ctx, path, source)

	if data, err := json.Marshal(fr); err == nil {
		if err := r.cache.Set(ctx, key, data, DefaultCacheTTL); err != nil {
			r.logger.Debugf("cache store failed for %s: %v", path, err)
		}
	}
	return fr, nil
}

// Run lints all paths with up to workers files in flight and returns the
// aggregated report. File order in the report matches the input order. The
// first file error cancels the remaining work.
func (r *Runner) Run(ctx context.Context, paths []string, workers int) (report.Report, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]report.FileReport, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			fr, err := r.LintFile(gctx, path)
			if err != nil {
				return err
			}
			results[i] = fr
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report.Report{}, err
	}
	return report.New(results), nil
}
