package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vdomkit/internal/demo"
	"github.com/vango-dev/vdomkit/internal/devserver"
)

func serveCmd(g *globals) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve [app]",
		Short: "Start the development server",
		Long: `Serve a demo app. Events posted by the page are dispatched to the
app and the resulting patches are streamed to the browser over WebSocket.

Examples:
  vdomkit serve counter
  vdomkit serve todo --port=8080
  vdomkit serve echo --host=0.0.0.0`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}

			// Apply command-line overrides
			if port > 0 {
				cfg.Dev.Port = port
			}
			if host != "" {
				cfg.Dev.Host = host
			}

			name := "counter"
			if len(args) > 0 {
				name = args[0]
			}
			app, ok := demo.Lookup(name)
			if !ok {
				return fmt.Errorf("unknown app %q (available: %v)", name, demo.Names())
			}

			logger := newLogger(cfg.Log, cmd.ErrOrStderr())
			reg := prometheus.NewRegistry()
			srv, err := devserver.New(devserver.Options{
				Config:     cfg,
				App:        app,
				Logger:     logger,
				Middleware: cycleMiddleware(cfg, logger, reg),
				Gatherer:   reg,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			success(out, "Serving %s at %s", app.Name, cfg.URL())
			if cfg.Metrics.Enabled {
				info(out, "Metrics at %s%s", cfg.URL(), cfg.Metrics.Path)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")

	return cmd
}
