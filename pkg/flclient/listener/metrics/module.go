package metrics

import (
	"go.uber.org/fx"

	port "github.com/tigerroll/flclient/pkg/flclient/core/application/port"
	config "github.com/tigerroll/flclient/pkg/flclient/core/config"
	support "github.com/tigerroll/flclient/pkg/flclient/core/config/support"
	"github.com/tigerroll/flclient/pkg/flclient/core/metrics"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

// BuilderName is the listener ref of MetricsJobResultCallback.
const BuilderName = "metricsJobResultCallback"

// NewMetricsCallbackBuilder creates a CallbackBuilder for MetricsJobResultCallback.
func NewMetricsCallbackBuilder(recorder metrics.ResultRecorder) support.CallbackBuilder {
	return func(
		_ *config.Config,
		_ map[string]string,
	) (port.JobResultCallback, error) {
		return NewMetricsJobResultCallback(recorder), nil
	}
}

// RegisterMetricsCallback registers the builder with the CallbackFactory.
func RegisterMetricsCallback(f *support.CallbackFactory, builder support.CallbackBuilder) {
	f.RegisterCallbackBuilder(BuilderName, builder)
	logger.Debugf("Metrics callback registered with CallbackFactory.")
}

// Module registers the metrics callback builder.
// The ResultRecorder is provided elsewhere (infrastructure/metrics or core/metrics)
// and is decorated here to be asynchronous.
var Module = fx.Options(
	fx.Decorate(NewAsyncResultRecorderWrapper),
	fx.Provide(fx.Annotate(NewMetricsCallbackBuilder, fx.ResultTags(`name:"metricsJobResultCallback"`))),
	fx.Invoke(fx.Annotate(RegisterMetricsCallback, fx.ParamTags(``, `name:"metricsJobResultCallback"`))),
)
