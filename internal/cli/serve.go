package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"navmenu/internal/config"
	"navmenu/internal/menu"
	"navmenu/internal/metric"
	"navmenu/internal/server"
	"navmenu/internal/source"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the menu as JSON over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", server.DefaultPort, "Port to listen on")
	return cmd
}

// runServe serves the menu until ctx is canceled. The menu source feeds a
// shared MenuState; every request replays its own client state on top.
func runServe(ctx context.Context, cfg *config.Config) error {
	log, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	state := server.NewMenuState()
	reg := prometheus.NewRegistry()
	recorder := metric.NewEngineRecorder(reg)

	srv := server.New(
		server.WithPort(cfg.Server.Port),
		server.WithLogger(log),
		server.WithRegistry(reg),
		server.WithSimpleHealth(),
		server.WithReadiness(state),
		server.WithPrometheusMetrics(),
		server.WithHandler("GET /api/menu", server.MenuHandler(state, log,
			menu.WithLogger(log), menu.WithRecorder(recorder))),
	)

	var watcher *source.Watcher
	if !cfg.HasMenuCommand() {
		watcher, err = source.NewWatcher(cfg.MenuFile, source.WithLogger(log))
		if err != nil {
			return err
		}
		if err := watcher.Start(); err != nil {
			return err
		}
		defer watcher.Stop()
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Serve(gCtx)
	})

	g.Go(func() error {
		if watcher == nil {
			state.Update(loadCommand(gCtx, cfg.MenuCommand, log))
			return nil
		}
		for {
			select {
			case <-gCtx.Done():
				return nil
			case ev := <-watcher.Events():
				state.Update(ev)
			}
		}
	})

	return g.Wait()
}

// loadCommand runs the menu command once and wraps the outcome as an event.
func loadCommand(ctx context.Context, command []string, log *zap.Logger) source.Event {
	tree, err := source.FromCommand(ctx, command)
	if err != nil {
		log.Error("menu command failed", zap.Strings("command", command), zap.Error(err))
		return source.Event{State: menu.SourceState{Err: err}}
	}
	log.Info("menu loaded", zap.Strings("command", command), zap.Int("nodes", menu.Count(tree)))
	if dups := source.DuplicateCodes(tree); len(dups) > 0 {
		log.Warn("duplicate menu codes", zap.Strings("codes", dups))
	}
	return source.Event{Tree: tree}
}
