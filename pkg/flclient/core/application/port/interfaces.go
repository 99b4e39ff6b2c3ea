// Package port defines the capability interfaces between a job orchestrator
// and the components that observe it.
package port

// JobResultCallback receives lifecycle notifications from a federated-learning
// job orchestrator.
//
// Implementations must not panic or block for any input values, including an
// empty model name, negative counts or any result code. Both methods may be
// called concurrently; no ordering between them is guaranteed or enforced.
type JobResultCallback interface {
	// OnIterationFinished is called once per finished training iteration.
	OnIterationFinished(modelName string, iterationSeq int, resultCode int)
	// OnJobFinished is called once when the whole job terminates.
	// iterationCount is the number of iterations completed.
	OnJobFinished(modelName string, iterationCount int, resultCode int)
}

// LogSink writes informational records.
type LogSink interface {
	// Info writes msg as one informational record.
	Info(msg string)
}

// Tagger adds the component-wide prefix tag to a message.
type Tagger func(msg string) string

// NoOpJobResultCallback ignores every notification.
type NoOpJobResultCallback struct{}

// OnIterationFinished does nothing.
func (NoOpJobResultCallback) OnIterationFinished(string, int, int) {}

// OnJobFinished does nothing.
func (NoOpJobResultCallback) OnJobFinished(string, int, int) {}

var _ JobResultCallback = NoOpJobResultCallback{}
