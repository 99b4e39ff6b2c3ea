package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	config "github.com/tigerroll/flclient/pkg/flclient/core/config"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

// RegisterMetricsServer serves the router on flclient.metrics.listen_address
// for the lifetime of the application. An empty address disables it.
func RegisterMetricsServer(lc fx.Lifecycle, cfg *config.Config, gatherer prometheus.Gatherer) {
	addr := cfg.FLClient.Metrics.ListenAddress
	if addr == "" {
		logger.Debugf("Metrics listen address not configured. /metrics is disabled.")
		return
	}
	srv := &http.Server{Addr: addr, Handler: NewRouter(gatherer)}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			logger.Infof("Serving /metrics on %s.", ln.Addr())
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Errorf("Metrics server error: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

// Module starts the metrics HTTP server.
var Module = fx.Options(
	fx.Invoke(RegisterMetricsServer),
)
