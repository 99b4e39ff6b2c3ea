// Package logging provides the reference JobResultCallback, which writes one
// tagged informational log record per lifecycle event.
package logging

import (
	"fmt"

	port "github.com/tigerroll/flclient/pkg/flclient/core/application/port"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

const (
	// IterationFinishedTag marks iteration-finished records.
	IterationFinishedTag = "onFlJobIterationFinished"
	// JobFinishedTag marks job-finished records.
	JobFinishedTag = "onFlJobFinished"
)

// LoggingJobResultCallback writes each notification to a LogSink.
// It holds no mutable state and is safe for concurrent use when its sink is.
type LoggingJobResultCallback struct {
	sink   port.LogSink
	tagger port.Tagger
}

// NewLoggingJobResultCallback creates a LoggingJobResultCallback.
// A nil sink selects logger.NewSink(); a nil tagger selects logger.AddTag.
func NewLoggingJobResultCallback(sink port.LogSink, tagger port.Tagger) *LoggingJobResultCallback {
	if sink == nil {
		sink = logger.NewSink()
	}
	if tagger == nil {
		tagger = logger.AddTag
	}
	return &LoggingJobResultCallback{sink: sink, tagger: tagger}
}

// OnIterationFinished writes one record for a finished iteration.
func (c *LoggingJobResultCallback) OnIterationFinished(modelName string, iterationSeq int, resultCode int) {
	c.sink.Info(c.tagger(FormatIterationFinished(modelName, iterationSeq, resultCode)))
}

// OnJobFinished writes one record for a finished job.
func (c *LoggingJobResultCallback) OnJobFinished(modelName string, iterationCount int, resultCode int) {
	c.sink.Info(c.tagger(FormatJobFinished(modelName, iterationCount, resultCode)))
}

// FormatIterationFinished renders the untagged iteration record.
func FormatIterationFinished(modelName string, iterationSeq int, resultCode int) string {
	return fmt.Sprintf("[%s] modelName: %s iterationSeq: %d resultCode: %d", IterationFinishedTag, modelName, iterationSeq, resultCode)
}

// FormatJobFinished renders the untagged job record.
func FormatJobFinished(modelName string, iterationCount int, resultCode int) string {
	return fmt.Sprintf("[%s] modelName: %s iterationCount: %d resultCode: %d", JobFinishedTag, modelName, iterationCount, resultCode)
}

var _ port.JobResultCallback = (*LoggingJobResultCallback)(nil)
