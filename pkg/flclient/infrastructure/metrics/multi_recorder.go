package metrics

import (
	"context"

	model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
	metrics "github.com/tigerroll/flclient/pkg/flclient/core/metrics"
)

// MultiResultRecorder forwards every result to each of its recorders in order.
type MultiResultRecorder struct {
	recorders []metrics.ResultRecorder
}

// NewMultiResultRecorder creates a MultiResultRecorder. Nil recorders are skipped.
func NewMultiResultRecorder(recorders ...metrics.ResultRecorder) *MultiResultRecorder {
	m := &MultiResultRecorder{}
	for _, r := range recorders {
		if r != nil {
			m.recorders = append(m.recorders, r)
		}
	}
	return m
}

// RecordIterationFinished forwards to every recorder.
func (m *MultiResultRecorder) RecordIterationFinished(ctx context.Context, result *model.IterationResult) {
	for _, r := range m.recorders {
		r.RecordIterationFinished(ctx, result)
	}
}

// RecordJobFinished forwards to every recorder.
func (m *MultiResultRecorder) RecordJobFinished(ctx context.Context, result *model.JobResult) {
	for _, r := range m.recorders {
		r.RecordJobFinished(ctx, result)
	}
}

var _ metrics.ResultRecorder = (*MultiResultRecorder)(nil)
