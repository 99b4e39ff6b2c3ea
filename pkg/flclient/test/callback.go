package test

import (
	"sync"

	"github.com/stretchr/testify/mock"

	model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
)

// MockJobResultCallback is a mock implementation of the port.JobResultCallback interface.
type MockJobResultCallback struct {
	mock.Mock
}

// OnIterationFinished mocks the OnIterationFinished method.
func (m *MockJobResultCallback) OnIterationFinished(modelName string, iterationSeq int, resultCode int) {
	m.Called(modelName, iterationSeq, resultCode)
}

// OnJobFinished mocks the OnJobFinished method.
func (m *MockJobResultCallback) OnJobFinished(modelName string, iterationCount int, resultCode int) {
	m.Called(modelName, iterationCount, resultCode)
}

// RecordingCallback is a port.JobResultCallback that remembers every notification.
// It is safe for concurrent use.
type RecordingCallback struct {
	mu         sync.Mutex
	iterations []model.IterationResult
	jobs       []model.JobResult
}

// OnIterationFinished records the iteration.
func (c *RecordingCallback) OnIterationFinished(modelName string, iterationSeq int, resultCode int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.iterations = append(c.iterations, model.IterationResult{ModelName: modelName, IterationSeq: iterationSeq, ResultCode: resultCode})
}

// OnJobFinished records the job.
func (c *RecordingCallback) OnJobFinished(modelName string, iterationCount int, resultCode int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobs = append(c.jobs, model.JobResult{ModelName: modelName, IterationCount: iterationCount, ResultCode: resultCode})
}

// Iterations returns a copy of the recorded iterations.
func (c *RecordingCallback) Iterations() []model.IterationResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.IterationResult(nil), c.iterations...)
}

// Jobs returns a copy of the recorded jobs.
func (c *RecordingCallback) Jobs() []model.JobResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.JobResult(nil), c.jobs...)
}

// PanickingCallback panics on every notification.
type PanickingCallback struct{}

// OnIterationFinished panics.
func (PanickingCallback) OnIterationFinished(string, int, int) { panic("iteration callback failure") }

// OnJobFinished panics.
func (PanickingCallback) OnJobFinished(string, int, int) { panic("job callback failure") }

// ClosingCallback counts Close calls and returns Err from each.
type ClosingCallback struct {
	RecordingCallback
	Err    error
	closed int
	mu     sync.Mutex
}

// Close records the call.
func (c *ClosingCallback) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	return c.Err
}

// Closed returns how many times Close was called.
func (c *ClosingCallback) Closed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
