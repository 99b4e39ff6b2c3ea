package metrics

import (
	"context"

	model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
)

// ResultRecorder is an abstract interface for recording metrics about job results.
//
// This facilitates integration with different metrics backends (e.g., Prometheus, OpenTelemetry Metrics).
type ResultRecorder interface {
	// RecordIterationFinished records a finished iteration.
	//
	// ctx: The context for the operation.
	// result: The reported iteration result.
	RecordIterationFinished(ctx context.Context, result *model.IterationResult)

	// RecordJobFinished records a finished job.
	//
	// ctx: The context for the operation.
	// result: The reported job result.
	RecordJobFinished(ctx context.Context, result *model.JobResult)
}
