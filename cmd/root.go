// Package cmd implements the registrar command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"registrar/internal/config"
	"registrar/internal/domain/enrollment"
	"registrar/internal/flags"
	"registrar/internal/infrastructure/csvstore"
	"registrar/internal/infrastructure/sqlite"
	"registrar/internal/log"
	"registrar/internal/paths"
	"registrar/internal/registry"
	"registrar/internal/tracing"
)

var (
	version  = "dev"
	cfgFile  string
	dataFlag string
	jsonOut  bool
	cfg      config.Config
)

var rootCmd = &cobra.Command{
	Use:   "registrar",
	Short: "Student course enrollment from the command line",
	Long: `Manage a course catalog and student enrollments from the command line.

Data lives in a flat-file directory (CSV by default, SQLite optionally) and
every mutating command rewrites it in full. Run with no arguments to see a
summary of the current catalog.`,
	Version: version,
	RunE:    runStatus,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/registrar/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dataFlag, "data", "d", "",
		"path to the enrollment data directory")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false,
		"print results as JSON")

	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("store", defaults.Store)
	viper.SetDefault("auto_refresh", defaults.AutoRefresh)
	viper.SetDefault("output.format", defaults.Output.Format)
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .registrar/config.yaml (current directory)
		// 2. ~/.config/registrar/config.yaml (user config)
		if _, err := os.Stat(".registrar/config.yaml"); err == nil {
			viper.SetConfigFile(".registrar/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "registrar"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .registrar/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".registrar/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// dataDir resolves the data directory from the flag, config, or cwd.
func dataDir() string {
	return paths.ResolveDataDir(cfg.DataDir)
}

// configFilePath returns the loaded config file path, defaulting to the
// local config location when none was loaded.
func configFilePath() string {
	if path := viper.ConfigFileUsed(); path != "" {
		return path
	}
	return ".registrar/config.yaml"
}

// useJSON reports whether results should be printed as JSON.
func useJSON() bool {
	return jsonOut || cfg.Output.Format == "json"
}

// newStore builds the configured persistence backend rooted at dir.
func newStore(dir string) (enrollment.Store, error) {
	switch cfg.Store {
	case "sqlite":
		return sqlite.New(filepath.Join(dir, "registrar.db"))
	case "", "csv":
		return csvstore.New(dir)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}

// openRegistry validates the config, starts logging and tracing, opens the
// configured store, and loads the registry. The returned cleanup closes all
// of it in reverse order.
func openRegistry(ctx context.Context) (*registry.Registry, func(), error) {
	if err := config.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cleanups := make([]func(), 0, 3)
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	if cfg.Logging.Enabled {
		logPath := cfg.Logging.FilePath
		if logPath == "" {
			logPath = config.DefaultLogFilePath()
		}
		if closeLog, err := log.Init(logPath); err == nil {
			log.SetMinLevel(cfg.Logging.MinLevel())
			cleanups = append(cleanups, closeLog)
		}
	}

	traceCfg := cfg.Tracing
	if traceCfg.Enabled && traceCfg.Exporter == "file" && traceCfg.FilePath == "" {
		traceCfg.FilePath = config.DefaultTracesFilePath()
	}
	provider, err := tracing.NewProvider(traceCfg)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("starting tracing: %w", err)
	}
	cleanups = append(cleanups, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = provider.Shutdown(shutdownCtx)
	})

	store, err := newStore(dataDir())
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}

	featureFlags := flags.New(cfg.Flags)
	regOpts := []registry.Option{registry.WithTracer(provider.Tracer())}
	if featureFlags.Enabled(flags.FlagNoScheduleCache) {
		regOpts = append(regOpts, registry.WithoutScheduleCache())
	}

	reg, err := registry.Open(ctx, store, regOpts...)
	if err != nil {
		_ = store.Close()
		cleanup()
		return nil, nil, fmt.Errorf("loading registry: %w", err)
	}
	cleanups = append(cleanups, func() { _ = reg.Close() })

	report := reg.LoadReport()
	if featureFlags.Enabled(flags.FlagStrictLoad) && !report.Clean() {
		cleanup()
		return nil, nil, fmt.Errorf("data files have problems: %d skipped rows, %d file errors",
			len(report.Skipped), len(report.FileErrors))
	}
	reportLoadProblems(report)
	return reg, cleanup, nil
}

// reportLoadProblems prints skipped rows and file errors to stderr so data
// problems are visible without failing the command.
func reportLoadProblems(report *enrollment.LoadReport) {
	if report == nil || report.Clean() {
		return
	}
	for _, row := range report.Skipped {
		fmt.Fprintf(os.Stderr, "warning: %s line %d skipped: %s\n", row.File, row.Line, row.Reason)
	}
	for _, fileErr := range report.FileErrors {
		fmt.Fprintf(os.Stderr, "warning: %s\n", fileErr)
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	reg, cleanup, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	students := reg.Students()
	courses := reg.Courses()

	if useJSON() {
		return formatResult(map[string]any{
			"data_dir": dataDir(),
			"store":    cfg.Store,
			"students": len(students),
			"courses":  len(courses),
		})
	}

	fmt.Printf("Data directory: %s (%s)\n", dataDir(), storeLabel())
	fmt.Printf("Courses:  %d\n", len(courses))
	fmt.Printf("Students: %d\n", len(students))
	return nil
}

func storeLabel() string {
	if cfg.Store == "" {
		return "csv"
	}
	return cfg.Store
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
