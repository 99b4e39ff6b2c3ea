package main

import (
	"context"

	"go.uber.org/fx"

	orchestrator "github.com/tigerroll/flclient/example/fl-demo/internal/orchestrator"
	server "github.com/tigerroll/flclient/example/fl-demo/internal/server"
	config "github.com/tigerroll/flclient/pkg/flclient/core/config"
	inframetrics "github.com/tigerroll/flclient/pkg/flclient/infrastructure/metrics"
	infratracing "github.com/tigerroll/flclient/pkg/flclient/infrastructure/tracing"
	listener "github.com/tigerroll/flclient/pkg/flclient/listener"
	historylistener "github.com/tigerroll/flclient/pkg/flclient/listener/history"
	metricslistener "github.com/tigerroll/flclient/pkg/flclient/listener/metrics"
	notificationlistener "github.com/tigerroll/flclient/pkg/flclient/listener/notification"
	tracinglistener "github.com/tigerroll/flclient/pkg/flclient/listener/tracing"
	logger "github.com/tigerroll/flclient/pkg/flclient/support/util/logger"
)

// GetApplicationOptions builds the fx options of the demo application.
// Listener modules register their builders through fx.Invoke, so they come
// before orchestrator.Module, whose invoke requests the callback chain.
func GetApplicationOptions(appCtx context.Context, envFilePath string, embeddedConfig config.EmbeddedConfig) []fx.Option {
	var options []fx.Option

	options = append(options, fx.Supply(
		embeddedConfig,
		fx.Annotate(envFilePath, fx.ResultTags(`name:"envFilePath"`)),
		fx.Annotate(appCtx, fx.As(new(context.Context)), fx.ResultTags(`name:"appCtx"`)),
	))
	options = append(options, logger.Module)
	options = append(options, fx.Provide(config.NewConfigProvider))
	options = append(options, config.Module)
	options = append(options, inframetrics.Module)
	options = append(options, infratracing.Module)
	options = append(options, listener.Module)
	options = append(options, metricslistener.Module)
	options = append(options, tracinglistener.Module)
	options = append(options, notificationlistener.Module)
	options = append(options, historylistener.Module)
	options = append(options, server.Module)
	options = append(options, orchestrator.Module)

	return options
}
