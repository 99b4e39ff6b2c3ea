package metrics

import (
	"context"

	model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
)

// NoOpResultRecorder is an implementation of ResultRecorder that does nothing.
// It is used when metrics are disabled or during testing.
type NoOpResultRecorder struct{}

// NewNoOpResultRecorder creates a new instance of NoOpResultRecorder.
func NewNoOpResultRecorder() ResultRecorder {
	return &NoOpResultRecorder{}
}

// RecordIterationFinished does nothing.
func (r *NoOpResultRecorder) RecordIterationFinished(ctx context.Context, result *model.IterationResult) {
}

// RecordJobFinished does nothing.
func (r *NoOpResultRecorder) RecordJobFinished(ctx context.Context, result *model.JobResult) {}

var _ ResultRecorder = (*NoOpResultRecorder)(nil)
