package imap

import (
	"errors"
	"fmt"

	"eod-extractor/internal/report/repository"
	"eod-extractor/pkg/log"
)

// Config holds the connection parameters for an IMAP mailbox.
type Config struct {
	Server   string
	Port     int
	Username string
	Password string
	UseSSL   bool
	Folder   string
}

type implRepository struct {
	cfg Config
	l   log.Logger
}

// New creates an IMAP-backed MailRepository.
func New(cfg Config, l log.Logger) (repository.MailRepository, error) {
	if cfg.Server == "" {
		return nil, errors.New("imap: server is required")
	}
	if cfg.Username == "" {
		return nil, errors.New("imap: username is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 993
	}
	if cfg.Folder == "" {
		cfg.Folder = "INBOX"
	}
	return &implRepository{cfg: cfg, l: l}, nil
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("report/repository/imap.%s", method)
}
