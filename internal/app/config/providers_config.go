package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProvidersConfig selects and configures the transcription provider.
type ProvidersConfig struct {
	DefaultProvider string                    `yaml:"default_provider"`
	Providers       map[string]ProviderConfig `yaml:"providers"`
}

// ProviderConfig represents configuration for a single provider
type ProviderConfig struct {
	Model      string `yaml:"model,omitempty"`
	BaseURL    string `yaml:"base_url,omitempty"`
	TimeoutSec int    `yaml:"timeout_sec,omitempty"`
}

// DefaultProvidersConfig returns the configuration used when no file exists:
// Mistral voxtral, the provider the widget was built around.
func DefaultProvidersConfig() *ProvidersConfig {
	return &ProvidersConfig{
		DefaultProvider: "voxtral",
		Providers: map[string]ProviderConfig{
			"voxtral": {Model: "voxtral-mini-latest"},
			"openai":  {Model: "whisper-1"},
		},
	}
}

// LoadProvidersConfig loads provider configuration from a YAML file. A missing
// file is not an error; defaults apply.
func LoadProvidersConfig(configPath string) (*ProvidersConfig, error) {
	configPath = os.ExpandEnv(configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultProvidersConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultProvidersConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if config.DefaultProvider == "" {
		config.DefaultProvider = "voxtral"
	}
	return config, nil
}

// Provider returns the settings for the named provider.
func (c *ProvidersConfig) Provider(name string) ProviderConfig {
	if c.Providers == nil {
		return ProviderConfig{}
	}
	return c.Providers[name]
}
