package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"eod-extractor/config"
	_ "eod-extractor/docs" // Swagger docs
	"eod-extractor/internal/httpserver"
	reportHTTP "eod-extractor/internal/report/delivery/http"
	"eod-extractor/internal/report/repository"
	gmailRepo "eod-extractor/internal/report/repository/gmail"
	imapRepo "eod-extractor/internal/report/repository/imap"
	"eod-extractor/internal/report/usecase"
	"eod-extractor/pkg/eod"
	"eod-extractor/pkg/log"
)

// @title       EOD Extractor API
// @description Extracts end-of-day task reports from email over IMAP or the Gmail API.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting EOD Extractor...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Extraction pipeline
	extractor, err := eod.NewExtractor(eod.Config{
		Keywords:     cfg.Parsing.Keywords,
		TimePatterns: cfg.Parsing.TimePatterns,
		Terminators:  cfg.Parsing.Terminators,
	})
	if err != nil {
		logger.Error(ctx, "Invalid parsing configuration: ", err)
		return
	}

	// 4. Mail source (optional: without one the API still serves ad-hoc parsing)
	var mailRepo repository.MailRepository
	switch cfg.Mail.Provider {
	case "imap":
		repo, repoErr := imapRepo.New(imapRepo.Config{
			Server:   cfg.Mail.Server,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			UseSSL:   cfg.Mail.UseSSL,
			Folder:   cfg.Mail.Folder,
		}, logger)
		if repoErr != nil {
			logger.Warnf(ctx, "IMAP source not available: %v", repoErr)
		} else {
			mailRepo = repo
			logger.Infof(ctx, "✅ IMAP source configured for %s", cfg.Mail.Server)
		}
	case "gmail":
		repo, repoErr := gmailRepo.New(ctx, gmailRepo.Config{
			CredentialsPath: cfg.Gmail.CredentialsPath,
			User:            cfg.Gmail.User,
			RatePerMinute:   cfg.Gmail.RatePerMinute,
		}, logger)
		if repoErr != nil {
			logger.Warnf(ctx, "Gmail source not available: %v", repoErr)
			logger.Warn(ctx, "→ Run `go run scripts/gmail-auth/main.go` to generate token.json")
		} else {
			mailRepo = repo
			logger.Info(ctx, "✅ Gmail source initialized")
		}
	default:
		logger.Warnf(ctx, "Unknown mail provider %q, mailbox extraction disabled", cfg.Mail.Provider)
	}
	if mailRepo == nil {
		logger.Warn(ctx, "No mail source available: /run responds 503, /parse still works")
	}

	// 5. Report domain
	reportUC := usecase.New(mailRepo, extractor, logger, cfg.Parsing.CacheSize, cfg.Parsing.CacheTTL)
	reportHandler := reportHTTP.New(logger, reportUC)

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ReportHandler:   reportHandler,
		AuthToken:       cfg.API.AuthToken,
		RateLimitPerMin: cfg.API.RateLimitPerMin,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
