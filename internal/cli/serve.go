package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/flowlint/flowlint/pkg/cache"
	"github.com/flowlint/flowlint/pkg/lint"
	"github.com/flowlint/flowlint/pkg/rules"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	noCache  bool
	redisURL string
}

// newServeCmd creates the serve command, exposing the linter over HTTP.
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the linter as an HTTP service",
		Long: `Run the linter as an HTTP service.

Endpoints:
  POST /lint   {"path": "...", "source": "...", "rules": {...}} → issue list
  GET  /rules  registered rules with defaults
  GET  /healthz

Per-request rule overrides are merged onto the defaults the same way a
configuration file would be.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().StringVar(&opts.redisURL, "cache-redis", "", "redis URL for a shared result cache")

	return cmd
}

func runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	store, err := newCache(ctx, opts.noCache, opts.redisURL)
	if err != nil {
		return fmt.Errorf("cache backend: %w", err)
	}
	defer store.Close()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Post("/lint", handleLint(store, logger))
	r.Get("/rules", handleRules)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Infof("listening on %s", opts.addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLogger logs one line per request at debug level.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, req)
			logger.Debugf("%s %s (%s)", req.Method, req.URL.Path, time.Since(start).Round(time.Millisecond))
		})
	}
}

// lintRequest is the POST /lint payload. Rules carries the same per-rule
// override shape as a configuration file.
type lintRequest struct {
	Path   string          `json:"path"`
	Source string          `json:"source"`
	Rules  rules.Overrides `json:"rules,omitempty"`
}

func handleLint(store cache.Cache, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body lintRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.Source == "" {
			writeError(w, http.StatusBadRequest, "source is required")
			return
		}
		path := body.Path
		if path == "" {
			path = "request.mmd"
		}

		cfg := rules.Merge(rules.Defaults(), body.Rules)
		runner := lint.NewRunner(store, cfg, logger)
		fr := runner.LintSource(req.Context(), path, []byte(body.Source))

		writeJSON(w, http.StatusOK, fr)
	}
}

func handleRules(w http.ResponseWriter, _ *http.Request) {
	type ruleInfo struct {
		ID          string           `json:"id"`
		Description string           `json:"description"`
		Citation    string           `json:"citation,omitempty"`
		Defaults    rules.RuleConfig `json:"defaults"`
	}
	var out []ruleInfo
	for _, r := range rules.Registry() {
		out = append(out, ruleInfo{ID: r.ID, Description: r.Description, Citation: r.Citation, Defaults: r.Defaults})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
