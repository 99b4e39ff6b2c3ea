package metrics

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
	metrics "github.com/tigerroll/flclient/pkg/flclient/core/metrics"
	logger "github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

// PrometheusRecorder is a Prometheus implementation of the metrics.ResultRecorder interface.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	// Iteration Metrics
	iterationFinishedCounter *prometheus.CounterVec
	iterationSeq             *prometheus.GaugeVec

	// Job Metrics
	jobFinishedCounter *prometheus.CounterVec
	jobIterationCount  *prometheus.GaugeVec
}

// NewPrometheusRecorder creates a new instance of PrometheusRecorder with its own registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()

	// Register Go standard metrics and process/OS metrics.
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &PrometheusRecorder{
		registry: registry,
		iterationFinishedCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flclient_iteration_finished_total",
			Help: "Total number of finished iterations by model and result code.",
		}, []string{"model_name", "result_code"}),
		iterationSeq: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "flclient_iteration_seq",
			Help: "Sequence number of the most recently finished iteration.",
		}, []string{"model_name"}),
		jobFinishedCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flclient_job_finished_total",
			Help: "Total number of finished jobs by model and result code.",
		}, []string{"model_name", "result_code"}),
		jobIterationCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "flclient_job_iteration_count",
			Help: "Iteration count reported by the most recently finished job.",
		}, []string{"model_name"}),
	}

	registry.MustRegister(r.iterationFinishedCounter)
	registry.MustRegister(r.iterationSeq)
	registry.MustRegister(r.jobFinishedCounter)
	registry.MustRegister(r.jobIterationCount)

	return r
}

// GetRegistry returns the Prometheus registry.
func (r *PrometheusRecorder) GetRegistry() *prometheus.Registry {
	return r.registry
}

// RecordIterationFinished records a finished iteration.
func (r *PrometheusRecorder) RecordIterationFinished(ctx context.Context, result *model.IterationResult) {
	if result == nil {
		return
	}
	r.iterationFinishedCounter.WithLabelValues(result.ModelName, strconv.Itoa(result.ResultCode)).Inc()
	r.iterationSeq.WithLabelValues(result.ModelName).Set(float64(result.IterationSeq))
	logger.Debugf("Metrics: Iteration %d of model '%s' finished.", result.IterationSeq, result.ModelName)
}

// RecordJobFinished records a finished job.
func (r *PrometheusRecorder) RecordJobFinished(ctx context.Context, result *model.JobResult) {
	if result == nil {
		return
	}
	r.jobFinishedCounter.WithLabelValues(result.ModelName, strconv.Itoa(result.ResultCode)).Inc()
	r.jobIterationCount.WithLabelValues(result.ModelName).Set(float64(result.IterationCount))
	logger.Debugf("Metrics: Job of model '%s' finished after %d iterations.", result.ModelName, result.IterationCount)
}

var _ metrics.ResultRecorder = (*PrometheusRecorder)(nil)
