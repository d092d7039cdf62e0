// Package config handles configuration loading for the sbdhcheck tool.
//
// Configuration is loaded from a YAML file with support for environment
// variable expansion (${VAR} or $VAR syntax), so paths can differ between
// deployments without editing the file.
//
// # Configuration Sections
//
//   - flavor: envelope flavor (generic, peppol, delivery-profile or xhe)
//   - concurrency: number of files checked in parallel
//   - validation: creation time checks
//   - logging: slog level and handler format
//   - metrics: Prometheus textfile output
//   - codelist: override of the embedded identifier scheme tables
//
// # Example Configuration
//
//	flavor: peppol
//	concurrency: 8
//
//	validation:
//	  maxClockSkew: 5m
//
//	logging:
//	  level: info
//	  format: json
//
//	metrics:
//	  file: ${TEXTFILE_DIR}/sbdhcheck.prom
//
//	codelist:
//	  file: /etc/sbdh/schemes.yaml
//
// See [Load] for loading configuration from a file.
package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// Flavors accepted in the flavor setting
var Flavors = []string{"generic", "peppol", "delivery-profile", "xhe"}

// Config is the root configuration structure
type Config struct {
	Flavor      string           `yaml:"flavor"`
	Concurrency int              `yaml:"concurrency"`
	Validation  ValidationConfig `yaml:"validation"`
	Logging     LoggingConfig    `yaml:"logging"`
	Metrics     MetricsConfig    `yaml:"metrics"`
	Codelist    CodelistConfig   `yaml:"codelist"`
}

// ValidationConfig holds reader hook settings
type ValidationConfig struct {
	// MaxClockSkew rejects creation timestamps later than now plus the skew.
	// Zero accepts any timestamp.
	MaxClockSkew time.Duration `yaml:"maxClockSkew"`
}

// LoggingConfig holds slog settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// MetricsConfig holds Prometheus textfile settings
type MetricsConfig struct {
	// File receives the metrics in text exposition format after a run.
	// Empty disables metrics output.
	File string `yaml:"file"`
}

// CodelistConfig holds identifier scheme table settings
type CodelistConfig struct {
	// File replaces the embedded tables when set
	File string `yaml:"file"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Flavor == "" {
		c.Flavor = "peppol"
	}
	if c.Concurrency == 0 {
		c.Concurrency = runtime.GOMAXPROCS(0)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate checks the configuration after flags have been applied
func (c *Config) Validate() error {
	known := false
	for _, f := range Flavors {
		if c.Flavor == f {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("flavor must be one of %v, got '%s'", Flavors, c.Flavor)
	}

	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}

	if c.Validation.MaxClockSkew < 0 {
		return fmt.Errorf("validation.maxClockSkew must not be negative")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid levels
	default:
		return fmt.Errorf("logging.level must be 'debug', 'info', 'warn', or 'error', got '%s'", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
		// Valid formats
	default:
		return fmt.Errorf("logging.format must be 'text' or 'json', got '%s'", c.Logging.Format)
	}

	return nil
}
