package logging

import (
	"go.uber.org/fx"

	port "github.com/tigerroll/flclient/pkg/flclient/core/application/port"
	config "github.com/tigerroll/flclient/pkg/flclient/core/config"
	support "github.com/tigerroll/flclient/pkg/flclient/core/config/support"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/configbinder"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/exception"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

// BuilderName is the listener ref of LoggingJobResultCallback.
const BuilderName = "loggingJobResultCallback"

// LoggingCallbackProperties are the listener properties accepted by the builder.
type LoggingCallbackProperties struct {
	// Tag overrides flclient.callback.tag for this listener.
	Tag string `yaml:"tag"`
}

// NewLoggingCallbackBuilder creates a CallbackBuilder for LoggingJobResultCallback.
// The callback writes through sink.
func NewLoggingCallbackBuilder(sink port.LogSink) support.CallbackBuilder {
	return func(cfg *config.Config, properties map[string]string) (port.JobResultCallback, error) {
		props := LoggingCallbackProperties{Tag: cfg.FLClient.Callback.Tag}
		if err := configbinder.BindProperties(properties, &props); err != nil {
			return nil, exception.NewCallbackError(BuilderName, "failed to bind properties", err)
		}
		return NewLoggingJobResultCallback(sink, logger.NewTagger(props.Tag)), nil
	}
}

// NewDefaultLogSink provides the package-level logger as the port.LogSink.
func NewDefaultLogSink() port.LogSink {
	return logger.NewSink()
}

// RegisterLoggingCallback registers the builder with the CallbackFactory.
func RegisterLoggingCallback(f *support.CallbackFactory, builder support.CallbackBuilder) {
	f.RegisterCallbackBuilder(BuilderName, builder)
	logger.Debugf("Logging callback registered with CallbackFactory.")
}

// Module provides the default log sink and registers the logging callback builder.
var Module = fx.Options(
	fx.Provide(NewDefaultLogSink),
	fx.Provide(fx.Annotate(NewLoggingCallbackBuilder, fx.ResultTags(`name:"loggingJobResultCallback"`))),
	fx.Invoke(fx.Annotate(RegisterLoggingCallback, fx.ParamTags(``, `name:"loggingJobResultCallback"`))),
)
