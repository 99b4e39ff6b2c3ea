package tracing

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"

	config "github.com/tigerroll/flclient/pkg/flclient/core/config"
)

// NewProvider initializes the Provider and shuts it down with the application.
func NewProvider(lc fx.Lifecycle, cfg *config.TracingConfig) (*Provider, error) {
	p, err := Init(context.Background(), *cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return p.Shutdown(ctx)
		},
	})
	return p, nil
}

// NewTracer exposes the Provider's tracer.
func NewTracer(p *Provider) trace.Tracer {
	return p.Tracer()
}

// Module provides the Provider and its trace.Tracer.
var Module = fx.Options(
	fx.Provide(NewProvider),
	fx.Provide(NewTracer),
)
