package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"

	config "github.com/tigerroll/flclient/pkg/flclient/core/config"
	model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
	metrics "github.com/tigerroll/flclient/pkg/flclient/core/metrics"
	logger "github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

// MeterName is the instrumentation scope of the OTel recorder.
const MeterName = "github.com/tigerroll/flclient"

// OTelRecorder records job results as OpenTelemetry metrics.
type OTelRecorder struct {
	iterationFinished metric.Int64Counter
	iterationSeq      metric.Int64Gauge
	jobFinished       metric.Int64Counter
	jobIterations     metric.Int64Gauge
}

// NewOTelRecorder creates the instruments on the given meter.
func NewOTelRecorder(meter metric.Meter) (*OTelRecorder, error) {
	iterationFinished, err := meter.Int64Counter("flclient.iteration.finished",
		metric.WithDescription("Number of finished iterations by model and result code."))
	if err != nil {
		return nil, fmt.Errorf("failed to create iteration counter: %w", err)
	}
	iterationSeq, err := meter.Int64Gauge("flclient.iteration.seq",
		metric.WithDescription("Sequence number of the most recently finished iteration."))
	if err != nil {
		return nil, fmt.Errorf("failed to create iteration gauge: %w", err)
	}
	jobFinished, err := meter.Int64Counter("flclient.job.finished",
		metric.WithDescription("Number of finished jobs by model and result code."))
	if err != nil {
		return nil, fmt.Errorf("failed to create job counter: %w", err)
	}
	jobIterations, err := meter.Int64Gauge("flclient.job.iteration_count",
		metric.WithDescription("Iteration count reported by the most recently finished job."))
	if err != nil {
		return nil, fmt.Errorf("failed to create job gauge: %w", err)
	}
	return &OTelRecorder{
		iterationFinished: iterationFinished,
		iterationSeq:      iterationSeq,
		jobFinished:       jobFinished,
		jobIterations:     jobIterations,
	}, nil
}

// RecordIterationFinished records a finished iteration.
func (r *OTelRecorder) RecordIterationFinished(ctx context.Context, result *model.IterationResult) {
	if result == nil {
		return
	}
	modelAttr := attribute.String("model_name", result.ModelName)
	r.iterationFinished.Add(ctx, 1, metric.WithAttributes(modelAttr, attribute.Int("result_code", result.ResultCode)))
	r.iterationSeq.Record(ctx, int64(result.IterationSeq), metric.WithAttributes(modelAttr))
}

// RecordJobFinished records a finished job.
func (r *OTelRecorder) RecordJobFinished(ctx context.Context, result *model.JobResult) {
	if result == nil {
		return
	}
	modelAttr := attribute.String("model_name", result.ModelName)
	r.jobFinished.Add(ctx, 1, metric.WithAttributes(modelAttr, attribute.Int("result_code", result.ResultCode)))
	r.jobIterations.Record(ctx, int64(result.IterationCount), metric.WithAttributes(modelAttr))
}

var _ metrics.ResultRecorder = (*OTelRecorder)(nil)

// NewMetricExporter creates the OTLP metric exporter for the configured protocol.
// Anything other than "grpc" selects OTLP/HTTP.
func NewMetricExporter(ctx context.Context, cfg config.OTLPMetricsConfig) (sdkmetric.Exporter, error) {
	if cfg.Protocol == "grpc" {
		return otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	}
	return otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
		otlpmetrichttp.WithInsecure(),
	)
}

// NewMeterProvider creates a meter provider that pushes to the OTLP endpoint
// every IntervalSeconds.
func NewMeterProvider(ctx context.Context, cfg config.OTLPMetricsConfig, serviceName string) (*sdkmetric.MeterProvider, error) {
	exporter, err := NewMetricExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(attribute.String("service.name", serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	interval := time.Duration(cfg.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
	)
	logger.Infof("OTLP metrics enabled. Exporting to %s over %s every %s.", cfg.Endpoint, cfg.Protocol, interval)
	return provider, nil
}
