// Package metrics provides a JobResultCallback that forwards notifications to a
// metrics.ResultRecorder.
package metrics

import (
	"context"

	port "github.com/tigerroll/flclient/pkg/flclient/core/application/port"
	model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
	metrics "github.com/tigerroll/flclient/pkg/flclient/core/metrics"
)

// MetricsJobResultCallback records every notification through a ResultRecorder.
type MetricsJobResultCallback struct {
	recorder metrics.ResultRecorder
}

// NewMetricsJobResultCallback creates a MetricsJobResultCallback. A nil recorder records nothing.
func NewMetricsJobResultCallback(recorder metrics.ResultRecorder) *MetricsJobResultCallback {
	if recorder == nil {
		recorder = metrics.NewNoOpResultRecorder()
	}
	return &MetricsJobResultCallback{recorder: recorder}
}

// OnIterationFinished records the finished iteration.
func (c *MetricsJobResultCallback) OnIterationFinished(modelName string, iterationSeq int, resultCode int) {
	c.recorder.RecordIterationFinished(context.Background(), &model.IterationResult{
		ModelName:    modelName,
		IterationSeq: iterationSeq,
		ResultCode:   resultCode,
	})
}

// OnJobFinished records the finished job.
func (c *MetricsJobResultCallback) OnJobFinished(modelName string, iterationCount int, resultCode int) {
	c.recorder.RecordJobFinished(context.Background(), &model.JobResult{
		ModelName:      modelName,
		IterationCount: iterationCount,
		ResultCode:     resultCode,
	})
}

var _ port.JobResultCallback = (*MetricsJobResultCallback)(nil)
