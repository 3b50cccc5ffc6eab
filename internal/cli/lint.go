package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowlint/flowlint/pkg/config"
	"github.com/flowlint/flowlint/pkg/lint"
	"github.com/flowlint/flowlint/pkg/report"
	"github.com/flowlint/flowlint/pkg/rules"
)

// Output formats for the lint command.
const (
	formatPretty = "pretty"
	formatText   = "text"
	formatJSON   = "json"
)

// lintOpts holds the command-line flags for the lint command.
type lintOpts struct {
	format      string // output format: pretty, text, json
	configPath  string // explicit config file (skips discovery)
	noCache     bool   // disable the result cache
	redisURL    string // use a redis cache backend instead of the file cache
	workers     int    // max files linted concurrently
	maxWarnings int    // fail when warnings exceed this count (-1 disables)
}

// newLintCmd creates the lint command, the main workhorse of the CLI.
func newLintCmd() *cobra.Command {
	opts := lintOpts{format: formatPretty, workers: lint.DefaultWorkers, maxWarnings: -1}

	cmd := &cobra.Command{
		Use:   "lint <path|glob> [...]",
		Short: "Lint diagram files against readability heuristics",
		Long: `Lint diagram files against research-backed readability heuristics.

Accepts files, directories, and glob patterns. Directories are walked for
.mmd, .mermaid, .md, and .markdown files; Markdown files are scanned for
fenced mermaid blocks.

Configuration is discovered by searching upward from the working directory
for .flowlintrc.json, .flowlintrc.yaml, or flowlint.toml. A missing or
malformed file falls back to the built-in defaults with a warning.

The exit code is 1 when any error-severity issue is found (or when warnings
exceed --max-warnings), 0 otherwise.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd.Context(), opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: pretty, text, json")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (overrides discovery)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().StringVar(&opts.redisURL, "cache-redis", "", "redis URL for a shared result cache")
	cmd.Flags().IntVar(&opts.workers, "workers", opts.workers, "max files linted concurrently")
	cmd.Flags().IntVar(&opts.maxWarnings, "max-warnings", opts.maxWarnings, "fail when warnings exceed this count (-1 to disable)")

	return cmd
}

func runLint(ctx context.Context, opts lintOpts, args []string) error {
	logger := loggerFromContext(ctx)

	paths, err := discoverPaths(args)
	if err != nil {
		return err
	}
	logger.Debugf("linting %d file(s)", len(paths))

	cfg, err := resolveConfig(ctx, opts.configPath)
	if err != nil {
		return err
	}

	store, err := newCache(ctx, opts.noCache, opts.redisURL)
	if err != nil {
		return fmt.Errorf("cache backend: %w", err)
	}
	defer store.Close()

	prog := newProgress(logger)
	runner := lint.NewRunner(store, cfg, logger)
	rep, err := runner.Run(ctx, paths, opts.workers)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Linted %d file(s), %d diagram(s)", rep.Summary.Files, rep.Summary.Diagrams))

	if err := writeReport(rep, opts.format); err != nil {
		return err
	}
	return exitPolicy(rep, opts.maxWarnings)
}

// resolveConfig loads the effective rule configuration. An explicit
// --config path must load cleanly; discovered configs degrade to defaults
// with a warning, per the non-fatal loading contract.
func resolveConfig(ctx context.Context, explicit string) (rules.Config, error) {
	logger := loggerFromContext(ctx)

	if explicit != "" {
		overrides, err := config.Load(explicit)
		if err != nil {
			return nil, err
		}
		logger.Debugf("using config %s", explicit)
		return rules.Merge(rules.Defaults(), overrides), nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return rules.Defaults(), nil
	}
	cfg, path, warning := config.LoadForDir(wd)
	if warning != "" {
		logger.Warnf("%s", warning)
	} else if path != "" {
		logger.Debugf("using config %s", path)
	}
	return cfg, nil
}

func writeReport(rep report.Report, format string) error {
	switch format {
	case formatPretty:
		printReport(rep)
		return nil
	case formatText:
		return rep.WriteText(os.Stdout)
	case formatJSON:
		return rep.WriteJSON(os.Stdout)
	}
	return fmt.Errorf("invalid format: %q (must be one of: pretty, text, json)", format)
}

// exitPolicy turns the report's severity counts into the command result:
// error issues always fail; warnings fail only past --max-warnings.
func exitPolicy(rep report.Report, maxWarnings int) error {
	if n := rep.Count(rules.SeverityError); n > 0 {
		return fmt.Errorf("%d error-severity issue(s) found", n)
	}
	if maxWarnings >= 0 {
		if n := rep.Count(rules.SeverityWarning); n > maxWarnings {
			return fmt.Errorf("%d warning(s) exceed --max-warnings=%d", n, maxWarnings)
		}
	}
	return nil
}
