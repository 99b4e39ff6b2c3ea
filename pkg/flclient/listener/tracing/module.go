package tracing

import (
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"

	port "github.com/tigerroll/flclient/pkg/flclient/core/application/port"
	config "github.com/tigerroll/flclient/pkg/flclient/core/config"
	support "github.com/tigerroll/flclient/pkg/flclient/core/config/support"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

// BuilderName is the listener ref of TracingJobResultCallback.
const BuilderName = "tracingJobResultCallback"

// NewTracingCallbackBuilder creates a CallbackBuilder for TracingJobResultCallback.
func NewTracingCallbackBuilder(tracer trace.Tracer) support.CallbackBuilder {
	return func(cfg *config.Config, _ map[string]string) (port.JobResultCallback, error) {
		return NewTracingJobResultCallback(tracer, cfg.FLClient.Callback.SuccessCodes), nil
	}
}

// RegisterTracingCallback registers the builder with the CallbackFactory.
func RegisterTracingCallback(f *support.CallbackFactory, builder support.CallbackBuilder) {
	f.RegisterCallbackBuilder(BuilderName, builder)
	logger.Debugf("Tracing callback registered with CallbackFactory.")
}

// Module registers the tracing callback builder. trace.Tracer is provided by infrastructure/tracing.
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewTracingCallbackBuilder, fx.ResultTags(`name:"tracingJobResultCallback"`))),
	fx.Invoke(fx.Annotate(RegisterTracingCallback, fx.ParamTags(``, `name:"tracingJobResultCallback"`))),
)
