package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"sigandsys.dev/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var flagConfig []string

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "SigAndSys site server",
	Long:          "server serves the SigAndSys articles, tools, ad rotation and newsletter signup endpoints.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&flagConfig, "config", nil, "config files to read (default ./config.hcl, ./config.local.hcl)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateKeyCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "server %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(flagConfig...)
	if err != nil {
		logger := newLogger("development", "info")
		logger.Error().Err(err).Msg("loading config")
		return nil, logger, err
	}
	return cfg, newLogger(cfg.Environment, cfg.LogLevel), nil
}

// newLogger writes human-readable lines in development and JSON elsewhere
func newLogger(environment, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if environment == "production" {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return logger.Level(lvl).With().Timestamp().Logger()
}
