package orchestrator_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/tigerroll/flclient/example/fl-demo/internal/orchestrator"
	"github.com/tigerroll/flclient/pkg/flclient/listener"
	testutil "github.com/tigerroll/flclient/pkg/flclient/test"
)

type recordingShutdowner struct {
	mu    sync.Mutex
	calls [][]fx.ShutdownOption
}

func (s *recordingShutdowner) Shutdown(opts ...fx.ShutdownOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, opts)
	return nil
}

func (s *recordingShutdowner) Calls() [][]fx.ShutdownOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]fx.ShutdownOption(nil), s.calls...)
}

// slowJobCallback takes a while to handle the job-finished event.
type slowJobCallback struct {
	testutil.RecordingCallback
	finished atomic.Bool
}

func (c *slowJobCallback) OnJobFinished(modelName string, iterationCount int, resultCode int) {
	time.Sleep(100 * time.Millisecond)
	c.RecordingCallback.OnJobFinished(modelName, iterationCount, resultCode)
	c.finished.Store(true)
}

func startParams(lc fx.Lifecycle, shutdowner fx.Shutdowner, cfg orchestrator.DemoConfig, cb *slowJobCallback) (orchestrator.StartParams, *listener.JobCompletionSignaler) {
	signaler := listener.NewJobCompletionSignaler()
	composite := listener.NewCompositeJobResultCallback(cb, signaler)
	return orchestrator.StartParams{
		Lifecycle:  lc,
		Shutdowner: shutdowner,
		Job:        orchestrator.NewSimulatedJob(cfg, composite),
		Signaler:   signaler,
		AppCtx:     context.Background(),
	}, signaler
}

func TestStopWaitsForCancelledJobToReport(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	cb := &slowJobCallback{}
	params, _ := startParams(lc, &recordingShutdowner{}, orchestrator.DemoConfig{
		ModelName:           "lenet",
		Iterations:          100,
		IterationIntervalMs: 1000,
	}, cb)

	orchestrator.StartSimulatedJob(params)
	lc.RequireStart()
	lc.RequireStop()

	assert.True(t, cb.finished.Load(), "job result must be reported before stop returns")
	jobs := cb.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, orchestrator.ResultCodeCancelled, jobs[0].ResultCode)
}

func TestCompletedJobRequestsShutdown(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	shutdowner := &recordingShutdowner{}
	cb := &slowJobCallback{}
	params, signaler := startParams(lc, shutdowner, orchestrator.DemoConfig{ModelName: "lenet", Iterations: 2}, cb)

	orchestrator.StartSimulatedJob(params)
	lc.RequireStart()

	select {
	case <-signaler.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("job did not finish")
	}
	require.Eventually(t, func() bool { return len(shutdowner.Calls()) == 1 }, 5*time.Second, 10*time.Millisecond)
	assert.Empty(t, shutdowner.Calls()[0], "successful jobs exit with the default code")

	lc.RequireStop()
	assert.Len(t, cb.Jobs(), 1)
}

func TestFailedJobRequestsNonZeroExit(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	shutdowner := &recordingShutdowner{}
	params, _ := startParams(lc, shutdowner, orchestrator.DemoConfig{ModelName: "lenet", Iterations: 3, FailingIteration: 1}, &slowJobCallback{})

	orchestrator.StartSimulatedJob(params)
	lc.RequireStart()

	require.Eventually(t, func() bool { return len(shutdowner.Calls()) == 1 }, 5*time.Second, 10*time.Millisecond)
	assert.Len(t, shutdowner.Calls()[0], 1)

	lc.RequireStop()
}
