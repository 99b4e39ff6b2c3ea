// Package config provides structures and utilities for managing application configuration.
package config

import "time"

// EmbeddedConfig holds the content of the configuration file, typically passed from main.go.
type EmbeddedConfig []byte

// LogLevel defines the logging level for the application.
type LogLevel string

const (
	LogLevelDebug  LogLevel = "DEBUG"
	LogLevelInfo   LogLevel = "INFO"
	LogLevelWarn   LogLevel = "WARN"
	LogLevelError  LogLevel = "ERROR"
	LogLevelFatal  LogLevel = "FATAL"
	LogLevelSilent LogLevel = "SILENT"
)

// ListenerConfig references one registered callback builder.
type ListenerConfig struct {
	// Ref is the name the builder was registered under (e.g., "loggingJobResultCallback").
	Ref string `yaml:"ref"`
	// Properties are passed to the builder and bound with configbinder.
	Properties map[string]string `yaml:"properties"`
}

// CallbackConfig holds the settings of the job-result callback chain.
type CallbackConfig struct {
	// Tag is the prefix added to every callback log line.
	Tag string `yaml:"tag"`
	// Listeners is the ordered list of callbacks the orchestrator notifies.
	Listeners []ListenerConfig `yaml:"listeners"`
	// SuccessCodes lists the result codes the notifier treats as success.
	SuccessCodes []int `yaml:"success_codes"`
}

// MetricsConfig holds metric recording settings.
type MetricsConfig struct {
	// AsyncBufferSize is the buffer size for asynchronous metric recording.
	AsyncBufferSize int `yaml:"async_buffer_size"`
	// ListenAddress is where the demo application serves /metrics. Empty disables it.
	ListenAddress string `yaml:"listen_address"`
	// OTLP configures pushing the same results as OpenTelemetry metrics.
	OTLP OTLPMetricsConfig `yaml:"otlp"`
}

// OTLPMetricsConfig holds OpenTelemetry metric export settings.
type OTLPMetricsConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Endpoint        string `yaml:"endpoint"`
	Protocol        string `yaml:"protocol"` // "http" or "grpc"
	IntervalSeconds int    `yaml:"interval_seconds"`
}

// TracingConfig holds OpenTelemetry tracing settings.
type TracingConfig struct {
	Enabled        bool    `yaml:"enabled"`
	ServiceName    string  `yaml:"service_name"`
	ServiceVersion string  `yaml:"service_version"`
	Environment    string  `yaml:"environment"`
	Endpoint       string  `yaml:"endpoint"`      // OTLP endpoint (e.g., "localhost:4318").
	Protocol       string  `yaml:"protocol"`      // "http" or "grpc"
	SamplingRate   float64 `yaml:"sampling_rate"` // 0.0 to 1.0
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the logging level (e.g., "INFO", "DEBUG").
	Level string `yaml:"level"`
}

// SystemConfig holds system-wide settings.
type SystemConfig struct {
	// Timezone is the application timezone (e.g., "UTC", "Asia/Tokyo").
	Timezone string `yaml:"timezone"`
	// Logging is the logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// Location resolves Timezone. An empty Timezone selects UTC.
func (s SystemConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.Timezone)
}

// InfrastructureConfig holds logical dependency settings for infrastructure components.
type InfrastructureConfig struct {
	// HistoryDBRef is the name of the database entry used by the history repository.
	// Empty selects the in-memory repository.
	HistoryDBRef string `yaml:"history_db_ref"`
	// HistoryExport configures writing the recorded history to a Parquet file on shutdown.
	HistoryExport HistoryExportConfig `yaml:"history_export"`
}

// HistoryExportConfig holds Parquet export settings.
type HistoryExportConfig struct {
	// Path is the output file. Empty disables the export.
	// With StorageRef set it is the object name within the storage connection.
	Path string `yaml:"path"`
	// StorageRef names the flclient.storage entry the export is uploaded to.
	// Empty writes Path on the local file system.
	StorageRef string `yaml:"storage_ref"`
	// CompressionType is "SNAPPY", "GZIP" or "NONE".
	CompressionType string `yaml:"compression_type"`
}

// FLClientConfig holds all configuration under the "flclient" top-level key.
type FLClientConfig struct {
	System         SystemConfig         `yaml:"system"`
	Callback       CallbackConfig       `yaml:"callback"`
	Metrics        MetricsConfig        `yaml:"metrics"`
	Tracing        TracingConfig        `yaml:"tracing"`
	Infrastructure InfrastructureConfig `yaml:"infrastructure"`
	// AdapterConfigs holds database connection settings keyed by name.
	AdapterConfigs map[string]interface{} `yaml:"database"`
	// StorageConfigs holds object storage settings keyed by name.
	StorageConfigs map[string]interface{} `yaml:"storage"`
}

// Config is the root structure for the entire application configuration.
type Config struct {
	FLClient       FLClientConfig `yaml:"flclient"`
	EmbeddedConfig EmbeddedConfig `yaml:"-"`
}

// NewConfig returns a new instance of Config with default values.
func NewConfig() *Config {
	cfg := &Config{
		FLClient: FLClientConfig{
			System: SystemConfig{
				Timezone: "UTC",
				Logging:  LoggingConfig{Level: "INFO"},
			},
			Callback: CallbackConfig{
				Tag:          "<FLClient> ",
				SuccessCodes: []int{0},
			},
			Metrics: MetricsConfig{
				AsyncBufferSize: 100,
				OTLP: OTLPMetricsConfig{
					Enabled:         false,
					Endpoint:        "localhost:4318",
					Protocol:        "http",
					IntervalSeconds: 60,
				},
			},
			Tracing: TracingConfig{
				Enabled:        false,
				ServiceName:    "flclient",
				ServiceVersion: "1.0.0",
				Environment:    "development",
				Endpoint:       "localhost:4318",
				Protocol:       "http",
				SamplingRate:   1.0,
			},
			Infrastructure: InfrastructureConfig{
				HistoryExport: HistoryExportConfig{CompressionType: "SNAPPY"},
			},
		},
	}
	cfg.FLClient.AdapterConfigs = map[string]interface{}{}
	cfg.FLClient.StorageConfigs = map[string]interface{}{}
	return cfg
}
