// Package history persists every notification as a ResultRecord.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	port "github.com/tigerroll/flclient/pkg/flclient/core/application/port"
	model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
	repository "github.com/tigerroll/flclient/pkg/flclient/core/domain/repository"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

// RecordingJobResultCallback saves a ResultRecord for each notification.
// Save failures are logged and dropped; the caller is never affected.
type RecordingJobResultCallback struct {
	repo  repository.ResultRepository
	now   func() time.Time
	newID func() string
}

// Option customizes a RecordingJobResultCallback.
type Option func(*RecordingJobResultCallback)

// WithLocation stamps RecordedAt in loc instead of the local time zone.
func WithLocation(loc *time.Location) Option {
	return func(c *RecordingJobResultCallback) {
		if loc == nil {
			return
		}
		c.now = func() time.Time { return time.Now().In(loc) }
	}
}

// NewRecordingJobResultCallback creates a RecordingJobResultCallback writing to repo.
func NewRecordingJobResultCallback(repo repository.ResultRepository, opts ...Option) *RecordingJobResultCallback {
	c := &RecordingJobResultCallback{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnIterationFinished records the finished iteration.
func (c *RecordingJobResultCallback) OnIterationFinished(modelName string, iterationSeq int, resultCode int) {
	c.save(model.NewIterationRecord(c.newID(), model.IterationResult{
		ModelName:    modelName,
		IterationSeq: iterationSeq,
		ResultCode:   resultCode,
	}, c.now()))
}

// OnJobFinished records the finished job.
func (c *RecordingJobResultCallback) OnJobFinished(modelName string, iterationCount int, resultCode int) {
	c.save(model.NewJobRecord(c.newID(), model.JobResult{
		ModelName:      modelName,
		IterationCount: iterationCount,
		ResultCode:     resultCode,
	}, c.now()))
}

func (c *RecordingJobResultCallback) save(record *model.ResultRecord) {
	if err := c.repo.SaveResult(context.Background(), record); err != nil {
		logger.Warnf("History: failed to save %s record for model '%s': %v", record.Kind, record.ModelName, err)
	}
}

var _ port.JobResultCallback = (*RecordingJobResultCallback)(nil)
