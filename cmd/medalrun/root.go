package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/medalrun/medalrun/internal/report"
)

var (
	cfgFile  string
	logLevel string
	noColor  bool
)

var rootCmd = &cobra.Command{
	Use:   "medalrun",
	Short: "Orchestration harness for the retail orders data pipeline",
	Long:  "Medalrun runs the bronze-silver-gold retail orders pipeline and reports the outcome. The ETL job itself is an external executable; medalrun invokes it, reads its result, and handles reporting, scheduling, and notifications.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")
}

func setupLogger() *slog.Logger {
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func colorEnabled() bool {
	if noColor {
		return false
	}
	return report.DetectColor(os.Stdout)
}
