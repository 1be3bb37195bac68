package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/boxoffice/pkg/api"
	"github.com/Sumatoshi-tech/boxoffice/pkg/observability"
)

// shutdownGrace bounds how long in-flight requests may finish after the
// serve context ends.
const shutdownGrace = 10 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(global *GlobalOptions) *cobra.Command {
	var (
		live bool
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve analyses over HTTP",
		Long: `Serve exposes the analyses as a JSON API:

  GET /healthz
  GET /api/v1/analyses/{variant}?week=&reference=&family=&sort=&top=
  GET /api/v1/report?variants=&format=text|json|yaml|html
  GET /metrics`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(global, observability.ModeServe)
			if err != nil {
				return err
			}
			defer a.close()

			source, err := a.source(live, "")
			if err != nil {
				return err
			}

			family, sortKey := a.defaults()

			srv := api.NewServer(
				a.service(source),
				api.Defaults{Family: family, SortKey: sortKey, TopN: a.cfg.Analysis.TopN},
				api.WithLogger(a.logger()),
				api.WithTracer(a.providers.Tracer),
				api.WithREDMetrics(a.red),
				api.WithMetricsHandler(a.providers.MetricsHandler),
			)

			if addr == "" {
				addr = a.cfg.Server.Addr()
			}

			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           srv.Router(),
				ReadTimeout:       a.cfg.Server.ReadTimeout,
				ReadHeaderTimeout: a.cfg.Server.ReadTimeout,
				WriteTimeout:      a.cfg.Server.WriteTimeout,
			}

			return listenAndServe(cmd.Context(), httpSrv, a)
		},
	}

	cmd.Flags().BoolVar(&live, "live", false, "fetch weeks from KOBIS instead of the snapshot store")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.host:server.port)")

	return cmd
}

// listenAndServe runs httpSrv until ctx ends, then shuts it down gracefully.
func listenAndServe(ctx context.Context, httpSrv *http.Server, a *app) error {
	listener, err := net.Listen("tcp", httpSrv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", httpSrv.Addr, err)
	}

	a.logger().InfoContext(ctx, "serving", "addr", listener.Addr().String())

	serveErr := make(chan error, 1)

	go func() {
		serveErr <- httpSrv.Serve(listener)
	}()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownGrace)
	defer cancel()

	a.logger().InfoContext(shutdownCtx, "shutting down")

	shutdownErr := httpSrv.Shutdown(shutdownCtx)
	if shutdownErr != nil {
		return fmt.Errorf("shutdown: %w", shutdownErr)
	}

	return nil
}
