// Package config provides configuration types, defaults, and persistence for registrar.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"registrar/internal/log"
	"registrar/internal/tracing"
)

// Config holds all registrar configuration.
type Config struct {
	// DataDir is the directory holding the enrollment data files.
	// Empty means the current directory.
	DataDir string `mapstructure:"data_dir"`

	// Store selects the persistence backend: "csv" or "sqlite".
	Store string `mapstructure:"store"`

	// AutoRefresh reloads the registry when the data files change on disk.
	AutoRefresh bool `mapstructure:"auto_refresh"`

	// Output controls how command results are printed.
	Output OutputConfig `mapstructure:"output"`

	Logging LoggingConfig  `mapstructure:"logging"`
	Tracing tracing.Config `mapstructure:"tracing"`

	// Flags are feature flags; unknown flags are ignored and default off.
	Flags map[string]bool `mapstructure:"flags"`
}

// OutputConfig controls result formatting on stdout.
type OutputConfig struct {
	// Format is "table" or "json".
	Format string `mapstructure:"format"`
}

// LoggingConfig controls the diagnostic log file.
type LoggingConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Level is the minimum level written: "debug", "info", "warn", or "error".
	Level string `mapstructure:"level"`

	// FilePath is the log file location. Empty derives a path under the
	// user config directory.
	FilePath string `mapstructure:"file_path"`
}

// MinLevel maps the configured level string to a log.Level.
// Unknown values fall back to info.
func (l LoggingConfig) MinLevel() log.Level {
	switch l.Level {
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/registrar/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "registrar", "traces", "traces.jsonl")
}

// DefaultLogFilePath returns the default path for the diagnostic log.
// Returns ~/.config/registrar/registrar.log or empty string if home dir unavailable.
func DefaultLogFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "registrar", "registrar.log")
}

// Defaults returns the configuration used when no config file is present.
func Defaults() Config {
	return Config{
		DataDir:     "",
		Store:       "csv",
		AutoRefresh: true,
		Output: OutputConfig{
			Format: "table",
		},
		Logging: LoggingConfig{
			Enabled:  false,
			Level:    "info",
			FilePath: "", // Derived from config dir at runtime
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// Validate checks the full configuration for invalid values.
func Validate(cfg Config) error {
	if err := ValidateStore(cfg.Store); err != nil {
		return err
	}
	if err := ValidateOutput(cfg.Output); err != nil {
		return err
	}
	if err := ValidateLogging(cfg.Logging); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateStore checks the persistence backend selection.
func ValidateStore(store string) error {
	switch store {
	case "", "csv", "sqlite":
		return nil
	default:
		return fmt.Errorf("store must be \"csv\" or \"sqlite\", got %q", store)
	}
}

// ValidateOutput checks the output format selection.
func ValidateOutput(output OutputConfig) error {
	switch output.Format {
	case "", "table", "json":
		return nil
	default:
		return fmt.Errorf("output.format must be \"table\" or \"json\", got %q", output.Format)
	}
}

// ValidateLogging checks the logging level.
func ValidateLogging(logging LoggingConfig) error {
	switch logging.Level {
	case "", "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be \"debug\", \"info\", \"warn\", or \"error\", got %q", logging.Level)
	}
}

func ValidateTracing(cfg tracing.Config) error {
	if cfg.SampleRate < 0.0 || cfg.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", cfg.SampleRate)
	}

	if cfg.Exporter != "" {
		switch cfg.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", cfg.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if cfg.Enabled {
		if cfg.Exporter == "file" && cfg.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if cfg.Exporter == "otlp" && cfg.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Registrar Configuration

# Directory holding the enrollment data files (default: current directory)
# data_dir: /path/to/data

# Persistence backend: "csv" (default) or "sqlite"
store: csv

# Reload the registry when the data files change on disk
auto_refresh: true

# Output settings
output:
  format: table      # Result format: "table" (default) or "json"

# Diagnostic logging (written to a file, never to the terminal)
logging:
  enabled: false
  level: info        # Minimum level: "debug", "info", "warn", or "error"
  # file_path: /path/to/registrar.log

# OpenTelemetry tracing for registry operations
tracing:
  enabled: false
  exporter: file     # "none", "file", "stdout", or "otlp"
  # file_path: ~/.config/registrar/traces/traces.jsonl
  # otlp_endpoint: localhost:4317
  sample_rate: 1.0

# Feature flags (unknown flags are ignored and default off)
# flags:
#   strict-load: true        # Abort when data files have skipped rows
#   no-schedule-cache: true  # Re-render schedules on every lookup
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// The parent directory is created if it does not exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
