package orchestrator

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	config "github.com/tigerroll/flclient/pkg/flclient/core/config"
	"github.com/tigerroll/flclient/pkg/flclient/listener"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

// NewDemoConfigProvider loads DemoConfig from the embedded application YAML.
func NewDemoConfigProvider(embedded config.EmbeddedConfig) (DemoConfig, error) {
	return LoadDemoConfig(embedded)
}

// StartParams are the dependencies of StartSimulatedJob.
type StartParams struct {
	fx.In
	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Job        *SimulatedJob
	Signaler   *listener.JobCompletionSignaler
	AppCtx     context.Context `name:"appCtx"`
}

// StartSimulatedJob runs the job in the background once the application has
// started and shuts the application down when the job has finished.
// On stop the job is cancelled and the hook returns only after the job has
// reported its final result, so the hooks that close listeners run afterwards.
func StartSimulatedJob(p StartParams) {
	lc := p.Lifecycle
	jobCtx, cancel := context.WithCancel(p.AppCtx)
	jobDone := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer close(jobDone)
				defer func() {
					if r := recover(); r != nil {
						logger.Errorf("Panic recovered in simulated job: %v", r)
					}
				}()
				p.Job.Run(jobCtx)
			}()
			go awaitCompletion(p.Signaler, p.Shutdowner)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			logger.Infof("Application is shutting down. Waiting for the job to report its result.")
			select {
			case <-jobDone:
				return nil
			case <-ctx.Done():
				return fmt.Errorf("simulated job did not finish before shutdown timeout: %w", ctx.Err())
			}
		},
	})
}

// awaitCompletion blocks until the signaler fires and requests shutdown,
// exiting non-zero when the job failed.
func awaitCompletion(signaler *listener.JobCompletionSignaler, shutdowner fx.Shutdowner) {
	<-signaler.Done()
	result, _ := signaler.Result()
	logger.Infof("Job for model '%s' finished after %d iterations with result code %d. Requesting shutdown.",
		result.ModelName, result.IterationCount, result.ResultCode)

	var opts []fx.ShutdownOption
	if result.ResultCode != ResultCodeSuccess {
		opts = append(opts, fx.ExitCode(1))
	}
	if err := shutdowner.Shutdown(opts...); err != nil {
		logger.Errorf("Failed to shutdown application: %v", err)
	}
}

// Module provides the simulated job and starts it with the application.
var Module = fx.Options(
	fx.Provide(NewDemoConfigProvider),
	fx.Provide(NewSimulatedJob),
	fx.Invoke(StartSimulatedJob),
)
