package metrics

import (
	"context"
	"sync"

	"go.uber.org/fx"

	config "github.com/tigerroll/flclient/pkg/flclient/core/config"
	model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
	metrics "github.com/tigerroll/flclient/pkg/flclient/core/metrics"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

const defaultAsyncBufferSize = 100

// ResultEvent represents a result to be recorded asynchronously.
// Exactly one of Iteration and Job is set, according to Kind.
type ResultEvent struct {
	Kind      model.EventKind
	Iteration *model.IterationResult
	Job       *model.JobResult
}

// AsyncResultRecorder asynchronously records results by pushing events to a channel
// and processing them in a separate goroutine. Events are dropped when the queue is full,
// so callers never block.
type AsyncResultRecorder struct {
	eventQueue   chan ResultEvent
	stopCh       chan struct{}
	stopOnce     sync.Once
	wg           sync.WaitGroup
	syncRecorder metrics.ResultRecorder
}

// NewAsyncResultRecorder creates a new asynchronous result recorder and starts its worker.
// bufferSize: The buffer size for the event queue. If 0 or less, a default value is used.
// syncRec: The synchronous recorder that performs the actual recording.
func NewAsyncResultRecorder(bufferSize int, syncRec metrics.ResultRecorder) *AsyncResultRecorder {
	if bufferSize <= 0 {
		bufferSize = defaultAsyncBufferSize
	}
	r := &AsyncResultRecorder{
		eventQueue:   make(chan ResultEvent, bufferSize),
		stopCh:       make(chan struct{}),
		syncRecorder: syncRec,
	}
	r.wg.Add(1)
	go r.run()
	logger.Debugf("AsyncResultRecorder: Worker goroutine started (buffer size: %d).", bufferSize)
	return r
}

func (r *AsyncResultRecorder) run() {
	defer r.wg.Done()
	for {
		select {
		case event := <-r.eventQueue:
			r.processEvent(event)
		case <-r.stopCh:
			// Drain what is already queued before exiting.
			remaining := len(r.eventQueue)
			for i := 0; i < remaining; i++ {
				r.processEvent(<-r.eventQueue)
			}
			logger.Debugf("AsyncResultRecorder: Worker goroutine stopped. Processed %d remaining events.", remaining)
			return
		}
	}
}

func (r *AsyncResultRecorder) processEvent(event ResultEvent) {
	ctx := context.Background()
	switch event.Kind {
	case model.EventKindIterationFinished:
		r.syncRecorder.RecordIterationFinished(ctx, event.Iteration)
	case model.EventKindJobFinished:
		r.syncRecorder.RecordJobFinished(ctx, event.Job)
	default:
		logger.Warnf("AsyncResultRecorder: Unknown result event kind: %s", event.Kind)
	}
}

// Close stops the worker after the queued events have been recorded. It is safe to call more than once.
func (r *AsyncResultRecorder) Close() {
	r.stopOnce.Do(func() {
		logger.Debugf("AsyncResultRecorder: Sending shutdown signal...")
		close(r.stopCh)
		r.wg.Wait()
		logger.Debugf("AsyncResultRecorder: Shutdown complete.")
	})
}

func (r *AsyncResultRecorder) sendEvent(event ResultEvent, modelName string) {
	select {
	case r.eventQueue <- event:
	default:
		logger.Warnf("AsyncResultRecorder: Event queue is full (kind: %s, model: %s). Event discarded.", event.Kind, modelName)
	}
}

// RecordIterationFinished queues a finished iteration.
func (r *AsyncResultRecorder) RecordIterationFinished(ctx context.Context, result *model.IterationResult) {
	if result == nil {
		return
	}
	r.sendEvent(ResultEvent{Kind: model.EventKindIterationFinished, Iteration: result}, result.ModelName)
}

// RecordJobFinished queues a finished job.
func (r *AsyncResultRecorder) RecordJobFinished(ctx context.Context, result *model.JobResult) {
	if result == nil {
		return
	}
	r.sendEvent(ResultEvent{Kind: model.EventKindJobFinished, Job: result}, result.ModelName)
}

var _ metrics.ResultRecorder = (*AsyncResultRecorder)(nil)

// NewAsyncResultRecorderWrapper is a helper function for use with fx.Decorate.
// It wraps syncRecorder and closes the wrapper on shutdown.
func NewAsyncResultRecorderWrapper(lc fx.Lifecycle, cfg *config.Config, syncRecorder metrics.ResultRecorder) metrics.ResultRecorder {
	asyncRecorder := NewAsyncResultRecorder(cfg.FLClient.Metrics.AsyncBufferSize, syncRecorder)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			asyncRecorder.Close()
			return nil
		},
	})
	logger.Debugf("ResultRecorder decorated with asynchronous wrapper.")
	return asyncRecorder
}
