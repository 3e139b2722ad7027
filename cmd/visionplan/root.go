package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/visionplan/internal/config"
	"github.com/ShayCichocki/visionplan/internal/logging"
)

var (
	configPath string
	logLevel   string
	noColor    bool
)

// cfg and logger are set up by the root command before any subcommand runs.
var (
	cfg    *config.Config
	logger = logging.NopLogger()
)

var rootCmd = &cobra.Command{
	Use:   "visionplan",
	Short: "Turn a product vision into a sprint plan",
	Long: `visionplan asks Claude for an outline of epics and user stories that
realize a product vision, breaks every story into setup, implementation and
validation tasks, and schedules the tasks into two-week sprints.

Plans are saved as JSON or YAML and can be browsed in the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: user and project config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and opens the logger.
func setup() error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logger, err = logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	return nil
}
