package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360/ringbuf/errors"
)

// Config drives the ringbuf demo command.
type Config struct {
	// Capacity is the fixed buffer capacity; must be positive.
	Capacity int `json:"capacity" yaml:"capacity"`

	// Inserts is the number of sequential values written (1..Inserts).
	Inserts int `json:"inserts" yaml:"inserts"`

	// Removes is the number of reads performed after the inserts.
	Removes int `json:"removes" yaml:"removes"`

	Log     LogConfig     `json:"log" yaml:"log"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`
}

// LogConfig selects slog level and handler format.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // json, text
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Port    int    `json:"port" yaml:"port"`
	Path    string `json:"path" yaml:"path"`
}

// Default returns the configuration of the reference run: a capacity-10
// buffer receiving four values, two of which are read back.
func Default() *Config {
	return &Config{
		Capacity: 10,
		Inserts:  4,
		Removes:  2,
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration. Failures wrap errors.ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Capacity <= 0 {
		return invalid("capacity must be positive, got %d", c.Capacity)
	}
	if c.Inserts < 0 {
		return invalid("inserts must not be negative, got %d", c.Inserts)
	}
	if c.Removes < 0 {
		return invalid("removes must not be negative, got %d", c.Removes)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return invalid("invalid log level: %q", c.Log.Level)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return invalid("invalid log format: %q", c.Log.Format)
	}

	if c.Metrics.Enabled {
		if c.Metrics.Port <= 0 || c.Metrics.Port > 65535 {
			return invalid("invalid metrics port: %d", c.Metrics.Port)
		}
		if !strings.HasPrefix(c.Metrics.Path, "/") {
			return invalid("metrics path must start with '/': %q", c.Metrics.Path)
		}
	}

	return nil
}

func invalid(format string, args ...any) error {
	return errors.WrapInvalid(fmt.Errorf("%w: "+format, append([]any{errors.ErrInvalidConfig}, args...)...),
		"Config", "Validate", "validate configuration")
}

// Load reads a JSON or YAML file (chosen by extension) on top of Default and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := safeReadFile(path)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Config", "Load", "read config file")
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := validateJSONDepth(data); err != nil {
			return nil, errors.WrapInvalid(err, "Config", "Load", "check JSON structure")
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapInvalid(err, "Config", "Load", "parse JSON config")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapInvalid(err, "Config", "Load", "parse YAML config")
		}
	default:
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Load",
			fmt.Sprintf("detect format of %s", path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
