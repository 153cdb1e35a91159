package main

import (
	"context"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/scenepick/internal/config"
	"github.com/dshills/scenepick/internal/logging"
	"github.com/dshills/scenepick/internal/script"
	"github.com/dshills/scenepick/internal/selection"
	"github.com/dshills/scenepick/internal/tui"
)

func newViewCmd(a *app) *cobra.Command {
	var startup string

	cmd := &cobra.Command{
		Use:   "view <scene.yaml>",
		Short: "Explore a scene in the terminal",
		Long: `Draws the scene in the terminal. Left click cycles through overlapping
objects, left drag selects by rectangle, right click opens the piercing
menu. Shift adds and the action modifier subtracts. Press q to quit.

The configuration file is watched and picking settings are applied live.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.logFile == "" {
				// stderr belongs to the terminal UI.
				a.log = logging.Nop()
			}

			sc, err := a.loadScene(args[0])
			if err != nil {
				return err
			}
			store := selection.NewStore(
				selection.WithStoreLogger(a.log),
				selection.WithStoreMetrics(a.metrics),
			)

			if startup != "" {
				rt := script.New(sc, store, script.WithOutput(io.Discard), script.WithLogger(a.log))
				err := rt.DoFile(cmd.Context(), startup)
				_ = rt.Close()
				if err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if srv := a.serveMetrics(); srv != nil {
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
			}

			screen, err := tui.NewScreen()
			if err != nil {
				return err
			}
			defer screen.Fini()

			view := tui.New(screen, sc, store,
				tui.WithLogger(a.log),
				tui.WithControllerOptions(a.controllerOptions(a.cfg)...),
			)
			defer view.Close()

			if a.configPath != "" {
				w, err := a.watchConfig(view)
				if err != nil {
					a.log.Warn("config watch disabled", "error", err)
				} else {
					defer w.Close()
					go func() { _ = w.Run(ctx) }()
				}
			}

			return view.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&startup, "script", "", "Lua script to run against the scene before the view opens")
	return cmd
}

// watchConfig reapplies picking settings to view whenever the config file
// changes. Logging and metrics settings need a restart.
func (a *app) watchConfig(view *tui.View) (*config.Watcher, error) {
	w, err := config.NewWatcher(a.configPath, config.WithWatcherLogger(a.log))
	if err != nil {
		return nil, err
	}
	w.OnReload(func(cfg config.Config, err error) {
		if err != nil {
			a.log.Warn("config reload rejected", "error", err)
			return
		}
		opts := a.controllerOptions(cfg)
		if err := view.Post(func() { view.Reconfigure(opts...) }); err != nil {
			a.log.Warn("config reload dropped", "error", err)
		}
	})
	return w, nil
}
