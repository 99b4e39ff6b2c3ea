package metrics

import (
	"go.uber.org/fx"
)

// Module provides NoOpResultRecorder as the ResultRecorder.
// Applications that export metrics use infrastructure/metrics.Module instead; the two must not be combined.
var Module = fx.Options(
	fx.Provide(NewNoOpResultRecorder),
)
