package listener

import (
	"sync"

	port "github.com/tigerroll/flclient/pkg/flclient/core/application/port"
	model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
)

// JobCompletionSignaler lets a caller wait for the job-finished notification.
// Iteration notifications are ignored. Only the first OnJobFinished is kept.
type JobCompletionSignaler struct {
	done   chan struct{}
	once   sync.Once
	result model.JobResult
}

// NewJobCompletionSignaler creates a JobCompletionSignaler.
func NewJobCompletionSignaler() *JobCompletionSignaler {
	return &JobCompletionSignaler{done: make(chan struct{})}
}

// OnIterationFinished does nothing.
func (s *JobCompletionSignaler) OnIterationFinished(string, int, int) {}

// OnJobFinished records the result and releases every waiter.
func (s *JobCompletionSignaler) OnJobFinished(modelName string, iterationCount int, resultCode int) {
	s.once.Do(func() {
		s.result = model.JobResult{ModelName: modelName, IterationCount: iterationCount, ResultCode: resultCode}
		close(s.done)
	})
}

// Done returns a channel that is closed once the job has finished.
func (s *JobCompletionSignaler) Done() <-chan struct{} {
	return s.done
}

// Result returns the recorded job result. ok is false until the job has finished.
func (s *JobCompletionSignaler) Result() (result model.JobResult, ok bool) {
	select {
	case <-s.done:
		return s.result, true
	default:
		return model.JobResult{}, false
	}
}

var _ port.JobResultCallback = (*JobCompletionSignaler)(nil)
