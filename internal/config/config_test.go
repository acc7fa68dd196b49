package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar/internal/log"
	"registrar/internal/tracing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, "csv", cfg.Store)
	assert.True(t, cfg.AutoRefresh)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.False(t, cfg.Logging.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "file", cfg.Tracing.Exporter)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRate)
}

func TestValidate_Defaults(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestValidateStore(t *testing.T) {
	require.NoError(t, ValidateStore(""))
	require.NoError(t, ValidateStore("csv"))
	require.NoError(t, ValidateStore("sqlite"))

	err := ValidateStore("postgres")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")
}

func TestValidateOutput(t *testing.T) {
	require.NoError(t, ValidateOutput(OutputConfig{Format: "json"}))

	err := ValidateOutput(OutputConfig{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.format")
}

func TestValidateLogging(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		require.NoError(t, ValidateLogging(LoggingConfig{Level: level}))
	}

	err := ValidateLogging(LoggingConfig{Level: "verbose"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestValidateTracing_SampleRateRange(t *testing.T) {
	cfg := tracing.DefaultConfig()
	cfg.SampleRate = 1.5

	err := ValidateTracing(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample_rate")
}

func TestValidateTracing_FileExporterNeedsPath(t *testing.T) {
	cfg := tracing.DefaultConfig()
	cfg.Enabled = true
	cfg.Exporter = "file"
	cfg.FilePath = ""

	err := ValidateTracing(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file_path")
}

func TestValidateTracing_DisabledSkipsPathChecks(t *testing.T) {
	cfg := tracing.DefaultConfig()
	cfg.Enabled = false
	cfg.Exporter = "file"
	cfg.FilePath = ""

	require.NoError(t, ValidateTracing(cfg))
}

func TestLoggingConfig_MinLevel(t *testing.T) {
	assert.Equal(t, log.LevelDebug, LoggingConfig{Level: "debug"}.MinLevel())
	assert.Equal(t, log.LevelWarn, LoggingConfig{Level: "warn"}.MinLevel())
	assert.Equal(t, log.LevelError, LoggingConfig{Level: "error"}.MinLevel())
	assert.Equal(t, log.LevelInfo, LoggingConfig{Level: ""}.MinLevel())
	assert.Equal(t, log.LevelInfo, LoggingConfig{Level: "bogus"}.MinLevel())
}

func TestWriteDefaultConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nested", "config.yaml")

	err := WriteDefaultConfig(configPath)
	require.NoError(t, err)

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	assert.Equal(t, "csv", cfg.Store)
	assert.True(t, cfg.AutoRefresh)
	assert.Equal(t, "table", cfg.Output.Format)
}

func TestDefaultConfigTemplate_ParsesAsDefaults(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(DefaultConfigTemplate())))

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	// Fields absent from the template keep zero values, so compare the
	// settings the template spells out.
	defaults := Defaults()
	assert.Equal(t, defaults.Store, cfg.Store)
	assert.Equal(t, defaults.AutoRefresh, cfg.AutoRefresh)
	assert.Equal(t, defaults.Output.Format, cfg.Output.Format)
	assert.Equal(t, defaults.Logging.Enabled, cfg.Logging.Enabled)
	assert.Equal(t, defaults.Logging.Level, cfg.Logging.Level)
	assert.Equal(t, defaults.Tracing.Enabled, cfg.Tracing.Enabled)
	assert.Equal(t, defaults.Tracing.SampleRate, cfg.Tracing.SampleRate)
}
