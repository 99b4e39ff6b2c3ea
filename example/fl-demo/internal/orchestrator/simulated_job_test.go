package orchestrator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/flclient/example/fl-demo/internal/orchestrator"
	config "github.com/tigerroll/flclient/pkg/flclient/core/config"
	model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
	"github.com/tigerroll/flclient/pkg/flclient/listener"
	testutil "github.com/tigerroll/flclient/pkg/flclient/test"
)

func TestSimulatedJobReportsEveryIteration(t *testing.T) {
	cb := &testutil.RecordingCallback{}
	job := orchestrator.NewSimulatedJob(orchestrator.DemoConfig{ModelName: "lenet", Iterations: 3}, cb)

	result := job.Run(context.Background())

	assert.Equal(t, model.JobResult{ModelName: "lenet", IterationCount: 3, ResultCode: 0}, result)
	assert.Equal(t, []model.IterationResult{
		{ModelName: "lenet", IterationSeq: 1, ResultCode: 0},
		{ModelName: "lenet", IterationSeq: 2, ResultCode: 0},
		{ModelName: "lenet", IterationSeq: 3, ResultCode: 0},
	}, cb.Iterations())
	assert.Equal(t, []model.JobResult{result}, cb.Jobs())
}

func TestSimulatedJobStopsAtFailingIteration(t *testing.T) {
	cb := &testutil.RecordingCallback{}
	job := orchestrator.NewSimulatedJob(orchestrator.DemoConfig{ModelName: "lenet", Iterations: 5, FailingIteration: 2}, cb)

	result := job.Run(context.Background())

	assert.Equal(t, orchestrator.ResultCodeIterationFailed, result.ResultCode)
	assert.Equal(t, 2, result.IterationCount)
	require.Len(t, cb.Iterations(), 2)
	assert.Equal(t, orchestrator.ResultCodeIterationFailed, cb.Iterations()[1].ResultCode)
	assert.Len(t, cb.Jobs(), 1)
}

func TestSimulatedJobCancelled(t *testing.T) {
	cb := &testutil.RecordingCallback{}
	job := orchestrator.NewSimulatedJob(orchestrator.DemoConfig{ModelName: "lenet", Iterations: 10, IterationIntervalMs: 1000}, cb)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := job.Run(ctx)

	assert.Equal(t, model.JobResult{ModelName: "lenet", IterationCount: 0, ResultCode: orchestrator.ResultCodeCancelled}, result)
	assert.Empty(t, cb.Iterations())
	assert.Equal(t, []model.JobResult{result}, cb.Jobs())
}

func TestSimulatedJobZeroIterations(t *testing.T) {
	cb := &testutil.RecordingCallback{}
	result := orchestrator.NewSimulatedJob(orchestrator.DemoConfig{ModelName: "lenet"}, cb).Run(context.Background())

	assert.Equal(t, 0, result.IterationCount)
	assert.Equal(t, 0, result.ResultCode)
	assert.Len(t, cb.Jobs(), 1)
}

func TestSimulatedJobReleasesSignaler(t *testing.T) {
	signaler := listener.NewJobCompletionSignaler()
	composite := listener.NewCompositeJobResultCallback(&testutil.RecordingCallback{}, signaler)

	orchestrator.NewSimulatedJob(orchestrator.DemoConfig{ModelName: "lenet", Iterations: 2}, composite).Run(context.Background())

	select {
	case <-signaler.Done():
	default:
		t.Fatal("signaler was not released")
	}
	result, ok := signaler.Result()
	require.True(t, ok)
	assert.Equal(t, 2, result.IterationCount)
}

func TestLoadDemoConfig(t *testing.T) {
	cfg, err := orchestrator.LoadDemoConfig(config.EmbeddedConfig(`
demo:
  model_name: resnet
  iterations: 7
  failing_iteration: 4
`))
	require.NoError(t, err)
	assert.Equal(t, "resnet", cfg.ModelName)
	assert.Equal(t, 7, cfg.Iterations)
	assert.Equal(t, 4, cfg.FailingIteration)
	assert.Equal(t, 200, cfg.IterationIntervalMs)

	defaults, err := orchestrator.LoadDemoConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, orchestrator.NewDefaultDemoConfig(), defaults)

	_, err = orchestrator.LoadDemoConfig(config.EmbeddedConfig("demo:\n  iterations: -1\n"))
	assert.Error(t, err)

	_, err = orchestrator.LoadDemoConfig(config.EmbeddedConfig("demo: [\n"))
	assert.Error(t, err)
}
