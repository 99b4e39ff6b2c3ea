// Package orchestrator drives a simulated federated-learning job so the
// callback chain can be exercised end to end.
package orchestrator

import (
	"fmt"

	"gopkg.in/yaml.v3"

	config "github.com/tigerroll/flclient/pkg/flclient/core/config"
)

// DemoConfig holds the settings under the top-level "demo" key.
type DemoConfig struct {
	ModelName           string `yaml:"model_name"`
	Iterations          int    `yaml:"iterations"`
	IterationIntervalMs int    `yaml:"iteration_interval_ms"`
	// FailingIteration ends the job with a non-zero code at that iteration. 0 disables it.
	FailingIteration int `yaml:"failing_iteration"`
}

type demoFile struct {
	Demo DemoConfig `yaml:"demo"`
}

// NewDefaultDemoConfig returns the defaults used when the YAML omits a value.
func NewDefaultDemoConfig() DemoConfig {
	return DemoConfig{
		ModelName:           "lenet",
		Iterations:          5,
		IterationIntervalMs: 200,
	}
}

// LoadDemoConfig reads the "demo" section from the embedded application YAML.
func LoadDemoConfig(embedded config.EmbeddedConfig) (DemoConfig, error) {
	file := demoFile{Demo: NewDefaultDemoConfig()}
	if len(embedded) > 0 {
		if err := yaml.Unmarshal(embedded, &file); err != nil {
			return DemoConfig{}, fmt.Errorf("failed to parse demo configuration: %w", err)
		}
	}
	cfg := file.Demo
	if cfg.ModelName == "" {
		return DemoConfig{}, fmt.Errorf("demo.model_name must not be empty")
	}
	if cfg.Iterations < 0 {
		return DemoConfig{}, fmt.Errorf("demo.iterations must be non-negative, got %d", cfg.Iterations)
	}
	return cfg, nil
}
