// Package config provides core configuration structures and utilities.
// This module defines Fx providers for configuration-related components.
package config

import "go.uber.org/fx"

// NewLoggingConfigProvider extracts and provides *LoggingConfig from *Config.
func NewLoggingConfigProvider(cfg *Config) *LoggingConfig {
	return &cfg.FLClient.System.Logging
}

// NewTracingConfigProvider extracts and provides *TracingConfig from *Config.
func NewTracingConfigProvider(cfg *Config) *TracingConfig {
	return &cfg.FLClient.Tracing
}

// Module provides configuration-related components to Fx.
// *Config itself is supplied by the application, either through fx.Supply or NewConfigProvider.
var Module = fx.Options(
	fx.Provide(NewLoggingConfigProvider),
	fx.Provide(NewTracingConfigProvider),
)
