package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vreconcile/pkg/reconcile"
	"github.com/vango-dev/vreconcile/pkg/server"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port  int
		host  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve scenario reports over HTTP and WebSocket",
		Long: `Serve scenario reports over HTTP and WebSocket.

Routes:
  GET /scenarios               list scenarios
  GET /scenarios/{name}        JSON report
  GET /scenarios/{name}/html   HTML after a step (?step=N)
  GET /scenarios/{name}/ws     one message per step
  GET /events                  scenario file changes (with --watch)
  GET /metrics                 Prometheus metrics

Examples:
  vreconcile serve
  vreconcile serve --port=9000 --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			logger := newLogger(cfg, cmd.ErrOrStderr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			source, err := newSource(ctx, cfg)
			if err != nil {
				return err
			}

			srvCfg := server.DefaultServerConfig().
				WithAddress(cfg.Address()).
				WithMetricsNamespace(cfg.Metrics.Namespace)
			srv := server.New(source, srvCfg,
				server.WithLogger(logger),
				server.WithEngineOptions(reconcile.WithMaxDeferred(cfg.Engine.MaxDeferred)),
			)

			if watch {
				if cfg.UseS3() {
					logger.Warn("--watch ignored for S3 scenarios", "bucket", cfg.Scenarios.Bucket)
				} else {
					go func() {
						if err := srv.Watch(ctx, cfg.ScenariosPath()); err != nil && ctx.Err() == nil {
							logger.Error("watcher stopped", "error", err)
						}
					}()
				}
			}

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from vreconcile.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from vreconcile.json)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Announce scenario file changes on /events")

	return cmd
}
