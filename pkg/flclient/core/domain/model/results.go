// Package model defines the values exchanged between a federated-learning job
// orchestrator and its result callbacks.
package model

import "time"

// EventKind identifies which lifecycle event a value describes.
type EventKind string

const (
	// EventKindIterationFinished is reported once per training iteration.
	EventKindIterationFinished EventKind = "iteration_finished"
	// EventKindJobFinished is reported once when the job terminates.
	EventKindJobFinished EventKind = "job_finished"
)

// String returns the string form of the kind.
func (k EventKind) String() string {
	return string(k)
}

// IterationResult is the outcome of one iteration of a job.
// ResultCode is opaque to callbacks and is passed through unchanged.
type IterationResult struct {
	ModelName    string
	IterationSeq int
	ResultCode   int
}

// JobResult is the outcome of a whole job.
type JobResult struct {
	ModelName      string
	IterationCount int
	ResultCode     int
}

// ResultRecord is the persisted form of either event, used by the history callback.
// Count holds the iteration sequence for iteration events and the iteration
// count for job events.
type ResultRecord struct {
	ID         string
	Kind       EventKind
	ModelName  string
	Count      int
	ResultCode int
	RecordedAt time.Time
}

// NewIterationRecord builds a ResultRecord from an iteration result.
func NewIterationRecord(id string, r IterationResult, at time.Time) *ResultRecord {
	return &ResultRecord{
		ID:         id,
		Kind:       EventKindIterationFinished,
		ModelName:  r.ModelName,
		Count:      r.IterationSeq,
		ResultCode: r.ResultCode,
		RecordedAt: at,
	}
}

// NewJobRecord builds a ResultRecord from a job result.
func NewJobRecord(id string, r JobResult, at time.Time) *ResultRecord {
	return &ResultRecord{
		ID:         id,
		Kind:       EventKindJobFinished,
		ModelName:  r.ModelName,
		Count:      r.IterationCount,
		ResultCode: r.ResultCode,
		RecordedAt: at,
	}
}
