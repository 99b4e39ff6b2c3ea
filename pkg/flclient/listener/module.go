package listener

import (
	"context"

	"go.uber.org/fx"

	port "github.com/tigerroll/flclient/pkg/flclient/core/application/port"
	config "github.com/tigerroll/flclient/pkg/flclient/core/config"
	support "github.com/tigerroll/flclient/pkg/flclient/core/config/support"
	"github.com/tigerroll/flclient/pkg/flclient/listener/logging"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

// JobResultCallbackParams defines the dependencies for NewJobResultCallback.
type JobResultCallbackParams struct {
	fx.In
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Factory   *support.CallbackFactory
	Sink      port.LogSink
	Signaler  *JobCompletionSignaler
}

// NewJobResultCallback builds the callback handed to the orchestrator.
// The configured listeners are built by the CallbackFactory; with none configured
// the logging callback is used. The JobCompletionSignaler is always notified last.
func NewJobResultCallback(p JobResultCallbackParams) (port.JobResultCallback, error) {
	callbacks, err := p.Factory.CreateCallbacks(p.Config)
	if err != nil {
		return nil, err
	}
	if len(callbacks) == 0 {
		logger.Infof("No callback listeners configured. Using '%s'.", logging.BuilderName)
		callbacks = append(callbacks, logging.NewLoggingJobResultCallback(p.Sink, logger.NewTagger(p.Config.FLClient.Callback.Tag)))
	}
	callbacks = append(callbacks, p.Signaler)

	composite := NewCompositeJobResultCallback(callbacks...)
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Debugf("Closing %d job result callbacks.", composite.Len())
			return composite.Close()
		},
	})
	logger.Infof("JobResultCallback built with %d listeners.", composite.Len())
	return composite, nil
}

// Module provides the CallbackFactory, the logging callback, the completion signaler
// and the composite port.JobResultCallback.
//
// Listener modules (metrics, tracing, notification, history) register their builders
// through fx.Invoke, so they must be added to the application before the first
// invoke that requests port.JobResultCallback.
var Module = fx.Options(
	support.Module,
	logging.Module,
	fx.Provide(NewJobCompletionSignaler),
	fx.Provide(NewJobResultCallback),
)
