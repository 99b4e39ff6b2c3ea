// Package tracing provides a JobResultCallback that records each notification
// as an OpenTelemetry span.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	port "github.com/tigerroll/flclient/pkg/flclient/core/application/port"
)

// Span names.
const (
	// IterationFinishedSpan is the name of the span emitted by OnIterationFinished.
	IterationFinishedSpan = "flclient.iteration_finished"
	// JobFinishedSpan is the name of the span emitted by OnJobFinished.
	JobFinishedSpan = "flclient.job_finished"
)

// Span attribute keys.
const (
	// AttrModelName carries the model name on both span kinds.
	AttrModelName = attribute.Key("flclient.model_name")
	// AttrIterationSeq carries the iteration sequence on iteration spans.
	AttrIterationSeq = attribute.Key("flclient.iteration_seq")
	// AttrIterationCount carries the number of completed iterations on job spans.
	AttrIterationCount = attribute.Key("flclient.iteration_count")
	// AttrResultCode carries the result code on both span kinds.
	AttrResultCode = attribute.Key("flclient.result_code")
)

// TracingJobResultCallback emits one span per notification.
// A span whose result code is not a success code gets an error status.
type TracingJobResultCallback struct {
	tracer       trace.Tracer
	successCodes map[int]struct{}
}

// NewTracingJobResultCallback creates a TracingJobResultCallback.
// A nil tracer selects the global tracer. An empty successCodes treats only 0 as success.
func NewTracingJobResultCallback(tracer trace.Tracer, successCodes []int) *TracingJobResultCallback {
	if tracer == nil {
		tracer = otel.Tracer("flclient")
	}
	if len(successCodes) == 0 {
		successCodes = []int{0}
	}
	codeSet := make(map[int]struct{}, len(successCodes))
	for _, c := range successCodes {
		codeSet[c] = struct{}{}
	}
	return &TracingJobResultCallback{tracer: tracer, successCodes: codeSet}
}

// OnIterationFinished records a span for the finished iteration.
func (c *TracingJobResultCallback) OnIterationFinished(modelName string, iterationSeq int, resultCode int) {
	c.emit(IterationFinishedSpan, resultCode,
		AttrModelName.String(modelName),
		AttrIterationSeq.Int(iterationSeq),
		AttrResultCode.Int(resultCode),
	)
}

// OnJobFinished records a span for the finished job.
func (c *TracingJobResultCallback) OnJobFinished(modelName string, iterationCount int, resultCode int) {
	c.emit(JobFinishedSpan, resultCode,
		AttrModelName.String(modelName),
		AttrIterationCount.Int(iterationCount),
		AttrResultCode.Int(resultCode),
	)
}

func (c *TracingJobResultCallback) emit(name string, resultCode int, attrs ...attribute.KeyValue) {
	_, span := c.tracer.Start(context.Background(), name, trace.WithAttributes(attrs...))
	defer span.End()
	if _, ok := c.successCodes[resultCode]; !ok {
		span.SetStatus(codes.Error, fmt.Sprintf("result code %d", resultCode))
	}
}

var _ port.JobResultCallback = (*TracingJobResultCallback)(nil)
