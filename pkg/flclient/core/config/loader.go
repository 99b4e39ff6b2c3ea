package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tigerroll/flclient/pkg/flclient/support/util/exception"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/logger"

	"go.uber.org/fx"
)

const moduleName = "config"

// ConfigParams defines the dependencies for NewConfigProvider.
type ConfigParams struct {
	fx.In
	EmbeddedConfig EmbeddedConfig
	EnvFilePath    string `name:"envFilePath" optional:"true"`
}

// LoadConfig loads configuration from the embedded YAML, a .env file and environment variables.
// Precedence, lowest first: NewConfig defaults, YAML, environment.
//
// Parameters:
//
//	envFilePath: The path to the .env file. Empty tries ./.env.
//	embeddedConfig: The embedded configuration bytes.
func LoadConfig(envFilePath string, embeddedConfig EmbeddedConfig) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			logger.Warnf(".env file (%s) not found or could not be loaded: %v", envFilePath, err)
		}
	} else {
		if err := godotenv.Load(); err != nil {
			logger.Debugf(".env file not found or could not be loaded: %v", err)
		}
	}

	// Keys absent from the YAML keep their defaults; present keys win, including zero values.
	cfg := NewConfig()
	if err := yaml.Unmarshal(embeddedConfig, cfg); err != nil {
		return nil, exception.NewCallbackError(moduleName, "failed to unmarshal embedded config", err)
	}

	if err := loadStructFromEnv(reflect.ValueOf(cfg).Elem(), ""); err != nil {
		return nil, exception.NewCallbackError(moduleName, "failed to load config from environment variables", err)
	}

	if err := validate(cfg); err != nil {
		return nil, exception.NewCallbackError(moduleName, "invalid configuration", err)
	}
	cfg.EmbeddedConfig = embeddedConfig
	return cfg, nil
}

// NewConfigProvider is an Fx provider that loads *Config and applies the configured log level.
func NewConfigProvider(params ConfigParams) (*Config, error) {
	cfg, err := LoadConfig(params.EnvFilePath, params.EmbeddedConfig)
	if err != nil {
		return nil, err
	}

	logger.SetLogLevel(cfg.FLClient.System.Logging.Level)
	logger.Infof("Log level set to: %s", cfg.FLClient.System.Logging.Level)
	return cfg, nil
}

func validate(cfg *Config) error {
	t := cfg.FLClient.Tracing
	if t.SamplingRate < 0 || t.SamplingRate > 1 {
		return fmt.Errorf("tracing.sampling_rate must be within [0, 1], got %v", t.SamplingRate)
	}
	if !isOTLPProtocol(t.Protocol) {
		return fmt.Errorf("tracing.protocol must be \"http\" or \"grpc\", got %q", t.Protocol)
	}
	if !isOTLPProtocol(cfg.FLClient.Metrics.OTLP.Protocol) {
		return fmt.Errorf("metrics.otlp.protocol must be \"http\" or \"grpc\", got %q", cfg.FLClient.Metrics.OTLP.Protocol)
	}
	if cfg.FLClient.Metrics.AsyncBufferSize < 0 {
		return fmt.Errorf("metrics.async_buffer_size must not be negative, got %d", cfg.FLClient.Metrics.AsyncBufferSize)
	}
	for i, l := range cfg.FLClient.Callback.Listeners {
		if l.Ref == "" {
			return fmt.Errorf("callback.listeners[%d] has an empty ref", i)
		}
	}
	if ref := cfg.FLClient.Infrastructure.HistoryDBRef; ref != "" {
		if _, ok := cfg.FLClient.AdapterConfigs[ref]; !ok {
			return fmt.Errorf("infrastructure.history_db_ref '%s' has no database entry", ref)
		}
	}
	if export := cfg.FLClient.Infrastructure.HistoryExport; export.StorageRef != "" {
		if _, ok := cfg.FLClient.StorageConfigs[export.StorageRef]; !ok {
			return fmt.Errorf("infrastructure.history_export.storage_ref '%s' has no storage entry", export.StorageRef)
		}
		if export.Path == "" {
			return fmt.Errorf("infrastructure.history_export.path is required with storage_ref '%s'", export.StorageRef)
		}
	}
	if _, err := cfg.FLClient.System.Location(); err != nil {
		return fmt.Errorf("system.timezone: %w", err)
	}
	return nil
}

func isOTLPProtocol(p string) bool {
	return p == "http" || p == "grpc"
}

// loadStructFromEnv recursively loads configuration values into a struct from environment variables.
// The variable name is the upper-cased chain of yaml tags joined by "_",
// e.g. FLCLIENT_SYSTEM_LOGGING_LEVEL. Maps and slices are not overridable.
func loadStructFromEnv(val reflect.Value, prefix string) error {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)
		yamlTag := strings.Split(fieldType.Tag.Get("yaml"), ",")[0]
		if yamlTag == "" || yamlTag == "-" {
			continue
		}
		envVarName := strings.ToUpper(prefix + yamlTag)

		switch field.Kind() {
		case reflect.Struct:
			if err := loadStructFromEnv(field, envVarName+"_"); err != nil {
				return err
			}
			continue
		case reflect.Map, reflect.Slice:
			continue
		}

		envValue, exists := os.LookupEnv(envVarName)
		if !exists {
			continue
		}
		if err := setField(field, envValue); err != nil {
			return fmt.Errorf("failed to set field '%s' from env var '%s': %w", fieldType.Name, envVarName, err)
		}
	}
	return nil
}

// setField sets the value of a reflect.Value field based on its kind.
// It handles string, int, float, and bool types.
func setField(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(intValue)
	case reflect.Float64, reflect.Float32:
		floatValue, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(floatValue)
	case reflect.Bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(boolValue)
	}
	return nil
}
