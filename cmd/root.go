// Package cmd implements the tokenledger CLI commands.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tokenledger/internal/config"
	"github.com/theirongolddev/tokenledger/internal/logger"
)

var (
	flagConfig   string
	flagRootDir  string
	flagDataPath string
	flagLogLevel string
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "tokenledger",
	Short: "Daily token usage and cost ledger",
	Long: "Collect per-model token usage and cost from OpenAI and Moonshot, " +
		"keep a daily JSON series, compare days, notify and serve a dashboard.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default "+config.Path()+")")
	rootCmd.PersistentFlags().StringVarP(&flagRootDir, "root", "r", "", "Workspace root holding data/, config/ and credentials/")
	rootCmd.PersistentFlags().StringVarP(&flagDataPath, "data", "d", "", "Store file path (overrides TOKEN_DATA_PATH)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadConfig resolves configuration once per command: file, .env and
// environment, then flags on top. It also configures the logger.
func loadConfig() (config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return cfg, err
	}

	if flagRootDir != "" {
		cfg.General.RootDir = flagRootDir
	}
	if flagDataPath != "" {
		cfg.General.DataPath = flagDataPath
	}
	if flagLogLevel != "" {
		cfg.General.LogLevel = flagLogLevel
	}

	level := cfg.General.LogLevel
	if flagQuiet {
		level = "warn"
	}
	logger.Setup(os.Stderr, level)
	return cfg, nil
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.Path()
}
