package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/dshills/scenepick/internal/config"
	"github.com/dshills/scenepick/internal/logging"
	"github.com/dshills/scenepick/internal/metrics"
	"github.com/dshills/scenepick/internal/scene"
	"github.com/dshills/scenepick/internal/viewport"
)

// app carries the state every subcommand shares after flag parsing.
type app struct {
	configPath string
	logLevel   string
	logFile    string

	cfg      config.Config
	log      *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	closers  []io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "scenepick",
		Short: "Pick, cycle and rectangle-select objects in a scene viewport",
		Long: `scenepick drives the viewport picking rules over a scene described in YAML:
click-cycling through overlapping objects, rectangle selection and the
piercing menu. Scenes can be explored in the terminal, replayed from
scripted input or scripted in Lua.`,
		Version:           fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.teardown() },
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "path to configuration file (default ./"+config.DefaultFileName+" if present)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config file")
	flags.StringVar(&a.logFile, "log-file", "", "write logs to this file instead of stderr")

	root.AddCommand(
		newViewCmd(a),
		newReplayCmd(a),
		newScriptCmd(a),
		newOverlapCmd(a),
	)
	return root
}

// setup loads configuration and builds the logger and metrics.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path := a.configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultFileName); err == nil {
			path = config.DefaultFileName
		}
	} else if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	a.configPath = path

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		if !logging.ValidLevel(a.logLevel) {
			return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", a.logLevel)
		}
		cfg.Logging.Level = a.logLevel
	}
	a.cfg = cfg

	lc := cfg.LoggingOptions()
	lc.Output = cmd.ErrOrStderr()
	if a.logFile != "" {
		f, err := os.OpenFile(a.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		a.closers = append(a.closers, f)
		lc.Output = f
	}
	a.log = logging.New(lc)

	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		a.metrics = metrics.New(a.registry)
	}
	a.log.Debug("configuration loaded", "path", path, "level", cfg.Logging.Level)
	return nil
}

func (a *app) teardown() {
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
}

// controllerOptions maps configuration onto viewport options.
func (a *app) controllerOptions(cfg config.Config) []viewport.Option {
	return []viewport.Option{
		viewport.WithDragThreshold(cfg.Picking.DragThreshold),
		viewport.WithActionModifier(cfg.Action()),
		viewport.WithLogger(a.log),
		viewport.WithMetrics(a.metrics),
	}
}

// serveMetrics starts the /metrics endpoint when configured. The returned
// server is nil when nothing was started.
func (a *app) serveMetrics() *http.Server {
	if a.registry == nil || a.cfg.Metrics.Addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: a.cfg.Metrics.Addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics server failed", "addr", srv.Addr, "error", err)
		}
	}()
	a.log.Info("serving metrics", "addr", srv.Addr)
	return srv
}

func (a *app) loadScene(path string) (*scene.Scene, error) {
	sc, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	a.log.Debug("scene loaded", "path", path, "objects", sc.Len())
	return sc, nil
}
