package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	config "github.com/tigerroll/flclient/pkg/flclient/core/config"
	metrics "github.com/tigerroll/flclient/pkg/flclient/core/metrics"
	logger "github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

// ResultRecorderParams are the dependencies of NewResultRecorder.
type ResultRecorderParams struct {
	fx.In
	Lifecycle  fx.Lifecycle
	Config     *config.Config
	Prometheus *PrometheusRecorder
}

// NewResultRecorder exposes the PrometheusRecorder as a metrics.ResultRecorder.
// When OTLP metrics are enabled, results are also recorded through an
// OpenTelemetry meter provider that is shut down with the application.
func NewResultRecorder(p ResultRecorderParams) (metrics.ResultRecorder, error) {
	otlpCfg := p.Config.FLClient.Metrics.OTLP
	if !otlpCfg.Enabled {
		return p.Prometheus, nil
	}

	provider, err := NewMeterProvider(context.Background(), otlpCfg, p.Config.FLClient.Tracing.ServiceName)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Debugf("Shutting down the OTLP meter provider.")
			return provider.Shutdown(ctx)
		},
	})

	otelRecorder, err := NewOTelRecorder(provider.Meter(MeterName))
	if err != nil {
		return nil, err
	}
	return NewMultiResultRecorder(p.Prometheus, otelRecorder), nil
}

// NewGatherer exposes the recorder's registry for the /metrics handler.
func NewGatherer(r *PrometheusRecorder) prometheus.Gatherer {
	return r.GetRegistry()
}

// Module is an Fx module that provides the PrometheusRecorder and, when
// configured, the OpenTelemetry metrics pipeline.
var Module = fx.Options(
	fx.Provide(NewPrometheusRecorder),
	fx.Provide(NewResultRecorder),
	fx.Provide(NewGatherer),
)
