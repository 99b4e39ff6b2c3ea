package orchestrator

import (
	"context"
	"time"

	port "github.com/tigerroll/flclient/pkg/flclient/core/application/port"
	model "github.com/tigerroll/flclient/pkg/flclient/core/domain/model"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

const (
	// ResultCodeSuccess is reported for completed iterations and jobs.
	ResultCodeSuccess = 0
	// ResultCodeCancelled is reported when the job is stopped before completion.
	ResultCodeCancelled = -1
	// ResultCodeIterationFailed is reported for the configured failing iteration.
	ResultCodeIterationFailed = 1
)

// SimulatedJob reports iteration and job results for a fake training run.
// It does not train anything.
type SimulatedJob struct {
	cfg      DemoConfig
	callback port.JobResultCallback
}

// NewSimulatedJob creates a SimulatedJob reporting to callback.
func NewSimulatedJob(cfg DemoConfig, callback port.JobResultCallback) *SimulatedJob {
	return &SimulatedJob{cfg: cfg, callback: callback}
}

// Run reports each iteration and then the job result, which it returns.
// OnJobFinished is reported exactly once, including when ctx is cancelled.
func (j *SimulatedJob) Run(ctx context.Context) model.JobResult {
	interval := time.Duration(j.cfg.IterationIntervalMs) * time.Millisecond
	logger.Infof("Starting simulated job for model '%s' with %d iterations.", j.cfg.ModelName, j.cfg.Iterations)

	completed := 0
	for seq := 1; seq <= j.cfg.Iterations; seq++ {
		if err := wait(ctx, interval); err != nil {
			logger.Warnf("Simulated job for model '%s' cancelled after %d iterations.", j.cfg.ModelName, completed)
			return j.finish(completed, ResultCodeCancelled)
		}

		code := ResultCodeSuccess
		if seq == j.cfg.FailingIteration {
			code = ResultCodeIterationFailed
		}
		j.callback.OnIterationFinished(j.cfg.ModelName, seq, code)
		completed = seq

		if code != ResultCodeSuccess {
			return j.finish(completed, code)
		}
	}
	return j.finish(completed, ResultCodeSuccess)
}

func (j *SimulatedJob) finish(iterationCount, resultCode int) model.JobResult {
	j.callback.OnJobFinished(j.cfg.ModelName, iterationCount, resultCode)
	return model.JobResult{
		ModelName:      j.cfg.ModelName,
		IterationCount: iterationCount,
		ResultCode:     resultCode,
	}
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
