package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"shardbench/internal/console"
	"shardbench/internal/logging"
)

var rootVerbose bool

var rootCmd = &cobra.Command{
	Use:   "shardbench",
	Short: "Sharded-ledger benchmark analysis toolkit",
	Long:  "shardbench parses benchmark run logs, aggregates repeated runs, and plots the results.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		console.NewWriter(os.Stderr).Errorf("%v", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if rootVerbose {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(aggregateCmd)
	rootCmd.AddCommand(plotCmd)
}
