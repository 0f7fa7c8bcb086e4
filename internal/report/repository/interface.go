package repository

import (
	"context"

	"eod-extractor/internal/model"
)

// MailRepository defines the read access the extraction pipeline needs
// from a mailbox provider.
type MailRepository interface {
	FetchRange(ctx context.Context, opt FetchRangeOptions) ([]model.MailMessage, error)
}
