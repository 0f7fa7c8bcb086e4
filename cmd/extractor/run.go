package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"eod-extractor/config"
	"eod-extractor/internal/report"
	"eod-extractor/internal/report/repository"
	gmailRepo "eod-extractor/internal/report/repository/gmail"
	imapRepo "eod-extractor/internal/report/repository/imap"
	"eod-extractor/internal/report/usecase"
	"eod-extractor/pkg/datemath"
	"eod-extractor/pkg/eod"
	"eod-extractor/pkg/log"
)

var (
	// run command flags
	runStart  string
	runEnd    string
	runFormat string
	runOutput string
)

func init() {
	runCmd.Flags().StringVar(&runStart, "start", "", `start date, inclusive (e.g. "2024-01-01", "last week")`)
	runCmd.Flags().StringVar(&runEnd, "end", "", `end date, exclusive (e.g. "2024-02-01", "today")`)
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "", "output format: text, json or csv (default: json)")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "output file path (default: print to stdout)")
	_ = runCmd.MarkFlagRequired("start")
	_ = runCmd.MarkFlagRequired("end")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract reports from the configured mailbox",
	Long: `Run fetches mail in a date range from the mailbox configured in
config.yaml and extracts every end-of-day report section found.

The start date is inclusive and the end date is exclusive. Dates may
be absolute ("2024-01-31") or relative ("last week", "3 days ago",
"today"), resolved in the configured timezone.

Examples:
  # Extract January as JSON
  extractor run --start 2024-01-01 --end 2024-02-01

  # Last week as CSV, into a file
  extractor run --start "last week" --end "today" --format csv --output results.csv

  # Human-readable text
  extractor run --start yesterday --end today --format text`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(cfg)
	ctx := cmd.Context()

	// Resolve the date window.
	parser, err := datemath.NewParser(cfg.Timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Timezone, err)
		parser, _ = datemath.NewParser("UTC")
	}
	now := time.Now()
	since, err := parser.Parse(runStart, now)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	before, err := parser.Parse(runEnd, now)
	if err != nil {
		return fmt.Errorf("invalid --end: %w", err)
	}
	if !since.Before(before) {
		return fmt.Errorf("start date must be before end date")
	}

	format, err := resolveFormat(runFormat, cfg)
	if err != nil {
		return err
	}

	// Build the pipeline.
	extractor, err := eod.NewExtractor(eod.Config{
		Keywords:     cfg.Parsing.Keywords,
		TimePatterns: cfg.Parsing.TimePatterns,
		Terminators:  cfg.Parsing.Terminators,
	})
	if err != nil {
		return fmt.Errorf("invalid parsing configuration: %w", err)
	}

	mailRepo, err := newMailRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}

	uc := usecase.New(mailRepo, extractor, logger, cfg.Parsing.CacheSize, cfg.Parsing.CacheTTL)

	logger.Infof(ctx, "Extracting EOD sections from %s to %s",
		since.Format("2006-01-02"), before.Format("2006-01-02"))

	out, err := uc.ExtractRange(ctx, report.ExtractRangeInput{Since: since, Before: before})
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	return writeResults(out.Extractions, format, runOutput)
}

// newMailRepository builds the mail source named by email.provider.
// Unlike the API server, the CLI cannot do anything useful without
// one, so a missing or broken source is an error here.
func newMailRepository(ctx context.Context, cfg *config.Config, logger log.Logger) (repository.MailRepository, error) {
	switch cfg.Mail.Provider {
	case "imap":
		repo, err := imapRepo.New(imapRepo.Config{
			Server:   cfg.Mail.Server,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			UseSSL:   cfg.Mail.UseSSL,
			Folder:   cfg.Mail.Folder,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("imap source: %w", err)
		}
		return repo, nil
	case "gmail":
		repo, err := gmailRepo.New(ctx, gmailRepo.Config{
			CredentialsPath: cfg.Gmail.CredentialsPath,
			User:            cfg.Gmail.User,
			RatePerMinute:   cfg.Gmail.RatePerMinute,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("gmail source: %w", err)
		}
		return repo, nil
	}
	return nil, fmt.Errorf("no mail source configured: set email.provider to imap or gmail")
}
