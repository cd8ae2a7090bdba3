package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/williampepple1/cricket-scorecard-scraper/internal/config"
	"github.com/williampepple1/cricket-scorecard-scraper/internal/logging"
)

var (
	configFile string
	envFile    string

	appConfig *config.AppConfig
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "scraper",
	Short:         "scraper polls live cricket scores and forwards them to the ingestion service.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configFile, envFile)
		if err != nil {
			return err
		}
		l, err := logging.New(cfg.Logging, os.Stderr)
		if err != nil {
			return fmt.Errorf("configure logging: %w", err)
		}

		appConfig = cfg
		logger = l
		slog.SetDefault(l)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to configuration file (YAML)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before the configuration")
}

func loadConfig(path, envPath string) (*config.AppConfig, error) {
	if err := config.LoadDotEnv(envPath); err != nil {
		return nil, err
	}

	cfg := config.Default()
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load configuration: %w", err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
