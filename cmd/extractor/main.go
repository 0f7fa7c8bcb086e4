// Package main implements the extractor CLI for one-shot report
// extraction from a mailbox or from raw email text.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"eod-extractor/config"
	"eod-extractor/internal/model"
	"eod-extractor/internal/report/export"
	"eod-extractor/pkg/log"
)

var (
	// persistent flags
	cfgFile string
	verbose bool

	// version information
	version = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "extractor",
	Short: "Extract end-of-day task reports from email",
	Long: `extractor pulls end-of-day report sections out of email and renders
them as text, JSON, or CSV. It reads the same config.yaml as the API
server, so a mailbox configured once works from both.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: config.yaml on the search path)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(parseCmd)
}

// loadConfig loads the --config file when one was named, the default
// search path otherwise.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFile(cfgFile)
	}
	return config.Load()
}

// newLogger builds the CLI logger. Logs go to stderr so results on
// stdout stay pipeable. --verbose forces debug level.
func newLogger(cfg *config.Config) log.Logger {
	level := cfg.Logger.Level
	if verbose {
		level = "debug"
	}
	return log.Init(log.ZapConfig{
		Level:        level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
}

// resolveFormat applies flag > config > json precedence.
func resolveFormat(flagValue string, cfg *config.Config) (export.Format, error) {
	name := flagValue
	if name == "" {
		name = cfg.Output.DefaultFormat
	}
	if name == "" {
		name = "json"
	}
	return export.ParseFormat(name)
}

// writeResults renders extractions to the output file or stdout. An
// empty result prints the notice to stdout and never touches the file.
func writeResults(extractions []model.Extraction, format export.Format, outputPath string) error {
	if outputPath == "" || len(extractions) == 0 {
		return export.Write(os.Stdout, extractions, format)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outputPath, err)
	}
	defer f.Close()

	if err := export.Write(f, extractions, format); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Results written to %s\n", outputPath)
	return nil
}
