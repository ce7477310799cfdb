// Package config loads the service configuration from a YAML file,
// applying defaults for everything left unset. Secrets (API keys) are
// never stored in the file; the file names the environment variable to
// read them from.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root service configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	Captions CaptionsConfig `yaml:"captions"`
	Punct    PunctConfig    `yaml:"punct"`
	Storage  StorageConfig  `yaml:"storage"`
}

// CaptionsConfig configures the caption fetch stage.
type CaptionsConfig struct {
	// Provider is the caption provider name (e.g. "youtube").
	Provider string `yaml:"provider"`

	// Language is the default caption language; requests may override it.
	Language string `yaml:"language"`

	// MaxTries bounds fetch attempts, including the first one.
	MaxTries int `yaml:"max_tries"`

	// InitialBackoff is the delay before the first retry.
	InitialBackoff Duration `yaml:"initial_backoff"`

	// MaxBackoff caps the delay between retries.
	MaxBackoff Duration `yaml:"max_backoff"`
}

// PunctConfig configures the punctuation-restoration stage.
type PunctConfig struct {
	// Provider is the punctuation provider name ("openai", "fullstop").
	// Empty disables the stage; requests asking for punctuation then
	// degrade to raw text with a notice.
	Provider string `yaml:"provider"`

	// Model overrides the provider's default model identifier.
	Model string `yaml:"model"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `yaml:"base_url"`

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `yaml:"api_key_env"`

	// MaxChunkLen is the per-chunk rune budget for model calls.
	MaxChunkLen int `yaml:"max_chunk_len"`
}

// StorageConfig configures the ephemeral artifact store.
type StorageConfig struct {
	// Root is the storage root directory. Empty allocates a temporary
	// directory for the lifetime of the process.
	Root string `yaml:"root"`

	// Retention is how long artifacts stay available for download.
	Retention Duration `yaml:"retention"`

	// SweepInterval is how often the janitor runs.
	SweepInterval Duration `yaml:"sweep_interval"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Listen: ":8080",
		Captions: CaptionsConfig{
			Provider:       "youtube",
			Language:       "en",
			MaxTries:       3,
			InitialBackoff: Duration(1 * time.Second),
			MaxBackoff:     Duration(10 * time.Second),
		},
		Punct: PunctConfig{
			Provider:  "fullstop",
			APIKeyEnv: "HF_API_TOKEN",
		},
		Storage: StorageConfig{
			Retention:     Duration(30 * time.Minute),
			SweepInterval: Duration(5 * time.Minute),
		},
	}
}

// Load reads the configuration from path, layered over Default. An
// empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config parse: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// APIKey resolves the punctuation API key from the configured
// environment variable. Returns "" when unset, which providers accept
// where the endpoint allows anonymous access.
func (c *Config) APIKey() string {
	if c.Punct.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Punct.APIKeyEnv)
}

func (c *Config) validate() error {
	if c.Listen == "" {
		return fmt.Errorf("config: listen address must not be empty")
	}
	if c.Captions.Provider == "" {
		return fmt.Errorf("config: captions.provider must not be empty")
	}
	if c.Captions.MaxTries < 1 {
		return fmt.Errorf("config: captions.max_tries must be at least 1")
	}
	if c.Punct.MaxChunkLen < 0 {
		return fmt.Errorf("config: punct.max_chunk_len must be non-negative")
	}
	return nil
}

// Duration wraps time.Duration with YAML support for strings like
// "30s" or "5m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration '%s': %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
