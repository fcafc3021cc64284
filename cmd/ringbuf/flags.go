package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/c360/ringbuf/config"
	"github.com/c360/ringbuf/errors"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	Capacity    int
	Inserts     int
	Removes     int
	LogLevel    string
	LogFormat   string
	MetricsPort int
	ShowVersion bool

	// set records flags given explicitly or through the environment
	set map[string]bool
}

// envNames maps flag names to their environment fallbacks.
var envNames = map[string]string{
	"config":       "RINGBUF_CONFIG",
	"capacity":     "RINGBUF_CAPACITY",
	"inserts":      "RINGBUF_INSERTS",
	"removes":      "RINGBUF_REMOVES",
	"log-level":    "RINGBUF_LOG_LEVEL",
	"log-format":   "RINGBUF_LOG_FORMAT",
	"metrics-port": "RINGBUF_METRICS_PORT",
}

func parseFlags(args []string, stderr io.Writer) (*CLIConfig, error) {
	defaults := config.Default()
	cfg := &CLIConfig{set: make(map[string]bool)}

	capacity, err := cfg.envInt("capacity", defaults.Capacity)
	if err != nil {
		return nil, err
	}
	inserts, err := cfg.envInt("inserts", defaults.Inserts)
	if err != nil {
		return nil, err
	}
	removes, err := cfg.envInt("removes", defaults.Removes)
	if err != nil {
		return nil, err
	}
	metricsPort, err := cfg.envInt("metrics-port", 0)
	if err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.ConfigPath, "config", cfg.envString("config", ""),
		"Path to a JSON or YAML configuration file (env: RINGBUF_CONFIG)")
	fs.IntVar(&cfg.Capacity, "capacity", capacity,
		"Buffer capacity (env: RINGBUF_CAPACITY)")
	fs.IntVar(&cfg.Inserts, "inserts", inserts,
		"Number of values to insert (env: RINGBUF_INSERTS)")
	fs.IntVar(&cfg.Removes, "removes", removes,
		"Number of values to remove afterwards (env: RINGBUF_REMOVES)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.envString("log-level", defaults.Log.Level),
		"Log level: debug, info, warn, error (env: RINGBUF_LOG_LEVEL)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.envString("log-format", defaults.Log.Format),
		"Log format: json, text (env: RINGBUF_LOG_FORMAT)")
	fs.IntVar(&cfg.MetricsPort, "metrics-port", metricsPort,
		"Serve Prometheus metrics on this port until interrupted, 0 to disable (env: RINGBUF_METRICS_PORT)")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "%s - fixed-capacity ring buffer demo\n\nUsage: %s [options]\n\nOptions:\n",
			appName, appName)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		cfg.set[f.Name] = true
	})

	return cfg, nil
}

// resolveConfig layers defaults, the optional config file, then explicit
// flags and environment variables.
func resolveConfig(cli *CLIConfig) (*config.Config, error) {
	cfg := config.Default()
	if cli.ConfigPath != "" {
		loaded, err := config.Load(cli.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cli.set["capacity"] {
		cfg.Capacity = cli.Capacity
	}
	if cli.set["inserts"] {
		cfg.Inserts = cli.Inserts
	}
	if cli.set["removes"] {
		cfg.Removes = cli.Removes
	}
	if cli.set["log-level"] {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.set["log-format"] {
		cfg.Log.Format = cli.LogFormat
	}
	if cli.set["metrics-port"] {
		cfg.Metrics.Enabled = cli.MetricsPort > 0
		if cli.MetricsPort > 0 {
			cfg.Metrics.Port = cli.MetricsPort
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envString returns the environment value for the named flag, or
// defaultValue when the variable is unset or empty. Only a value actually
// taken from the environment marks the flag as set.
func (c *CLIConfig) envString(name, defaultValue string) string {
	if value := os.Getenv(envNames[name]); value != "" {
		c.set[name] = true
		return value
	}
	return defaultValue
}

// envInt is envString for integer flags. A non-empty value that is not an
// integer is a configuration error rather than a silent fallback.
func (c *CLIConfig) envInt(name string, defaultValue int) (int, error) {
	key := envNames[name]
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.WrapInvalid(fmt.Errorf("%w: %s=%q is not an integer", errors.ErrInvalidConfig, key, value),
			"CLI", "parseFlags", "read environment")
	}
	c.set[name] = true
	return parsed, nil
}
