package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/7robots/conway-game-of-life/internal/config"
	"github.com/7robots/conway-game-of-life/internal/logging"
	"github.com/7robots/conway-game-of-life/internal/metrics"
	"github.com/7robots/conway-game-of-life/internal/pattern"
	"github.com/7robots/conway-game-of-life/internal/store"
	"github.com/7robots/conway-game-of-life/patterns"
)

var version = "0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lifescan",
		Short: "Game of Life pattern recognition",
		Long: `lifescan simulates Conway's Game of Life and recognises known patterns
(still lifes, oscillators, spaceships) as they appear on the board,
in any rotation or reflection.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/conway-game-of-life/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("patterns-dir", "", "Pattern corpus directory (default: bundled corpus)")
	rootCmd.PersistentFlags().String("db", "", "Run database path")
	rootCmd.PersistentFlags().String("metrics-addr", "", "Serve Prometheus metrics on this address during run and sweep")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newCatalogCmd(),
		newSweepCmd(),
		newRunsCmd(),
		newStatsCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"version": version})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "lifescan version %s\n", version)
			return nil
		},
	}
}

// env carries the resolved configuration and logger for one command.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Logging.Level = v
	}
	if v, _ := cmd.Flags().GetString("metrics-addr"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v, _ := cmd.Flags().GetString("patterns-dir"); v != "" {
		cfg.Patterns.Dir = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.Store.Path = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &env{cfg: cfg, logger: logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())}, nil
}

func (e *env) catalog(ctx context.Context) (*pattern.Catalog, error) {
	opts := []pattern.Option{
		pattern.WithMaxBBox(e.cfg.Patterns.MaxBBox),
		pattern.WithLogger(e.logger),
	}
	var (
		cat *pattern.Catalog
		err error
	)
	if e.cfg.Patterns.Dir == "" {
		cat, err = pattern.LoadFS(ctx, patterns.FS, ".", opts...)
	} else {
		cat, err = pattern.Load(ctx, e.cfg.Patterns.Dir, opts...)
	}
	if err != nil {
		return nil, err
	}
	e.metrics.SetCatalog(metrics.CatalogStats{
		Patterns:   cat.Len(),
		Entries:    cat.Entries(),
		Rejected:   len(cat.Rejected()),
		Collisions: len(cat.Collisions()),
	})
	return cat, nil
}

func (e *env) openStore() (*store.Store, error) {
	return store.Open(e.cfg.Store.Path, store.WithLogger(e.logger))
}

// serveMetrics starts the Prometheus endpoint when an address is
// configured. The returned stop function shuts it down.
func (e *env) serveMetrics(ctx context.Context) (func(), error) {
	addr := e.cfg.Metrics.Addr
	if addr == "" {
		return func() {}, nil
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	e.metrics = metrics.New(reg)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.logger.Error("metrics server failed", "error", err)
		}
	}()
	e.logger.Info("serving metrics", "addr", ln.Addr().String())
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}, nil
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
