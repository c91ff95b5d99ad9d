package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// Overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "racetracker",
	Short: "Extract structured race results from chart PDFs",
	Long: `racetracker turns horse-racing result chart PDFs into structured
per-horse tables.

Each extracted row carries the race date, race number, surface, distance,
jockey, trainer, and win/place/show flags derived from finish order. The
serve command runs an HTTP API with background workers; extract converts a
single PDF offline.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.racetracker/config.yaml)",
	)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(versionCmd)
}

func newLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}
