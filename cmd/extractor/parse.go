package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"eod-extractor/internal/model"
	"eod-extractor/internal/report"
	"eod-extractor/internal/report/usecase"
	"eod-extractor/pkg/eod"
)

var (
	// parse command flags
	parseSubjectFlag string
	parseFormatFlag  string
	parseOutputFlag  string
)

func init() {
	parseCmd.Flags().StringVar(&parseSubjectFlag, "subject", "", "subject to attach to the result")
	parseCmd.Flags().StringVarP(&parseFormatFlag, "format", "f", "", "output format: text, json or csv (default: json)")
	parseCmd.Flags().StringVarP(&parseOutputFlag, "output", "o", "", "output file path (default: print to stdout)")
}

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse one email body from a file or stdin",
	Long: `Parse runs extraction over a single raw email body without touching
any mailbox. The body is read from the named file, or from stdin when
no file (or "-") is given.

Examples:
  # Parse a saved email body
  extractor parse email.txt

  # Parse from stdin
  cat email.txt | extractor parse -

  # Text output with a subject attached
  extractor parse email.txt --subject "Daily Report" --format text`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(cfg)
	ctx := cmd.Context()

	var content []byte
	emailID := "stdin"
	if len(args) == 0 || args[0] == "-" {
		content, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read from stdin: %w", err)
		}
	} else {
		content, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		emailID = filepath.Base(args[0])
	}

	format, err := resolveFormat(parseFormatFlag, cfg)
	if err != nil {
		return err
	}

	extractor, err := eod.NewExtractor(eod.Config{
		Keywords:     cfg.Parsing.Keywords,
		TimePatterns: cfg.Parsing.TimePatterns,
		Terminators:  cfg.Parsing.Terminators,
	})
	if err != nil {
		return fmt.Errorf("invalid parsing configuration: %w", err)
	}

	uc := usecase.New(nil, extractor, logger, cfg.Parsing.CacheSize, cfg.Parsing.CacheTTL)

	out, err := uc.ExtractText(ctx, report.ExtractTextInput{
		EmailID: emailID,
		Subject: parseSubjectFlag,
		Date:    time.Now(),
		Body:    string(content),
	})
	if err != nil {
		return err
	}
	if !out.Found {
		fmt.Println("No EOD section found.")
		return nil
	}

	return writeResults([]model.Extraction{out.Extraction}, format, parseOutputFlag)
}
