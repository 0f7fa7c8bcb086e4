package usecase

import (
	"context"

	"github.com/google/uuid"

	"eod-extractor/internal/model"
	"eod-extractor/internal/report"
	"eod-extractor/internal/report/repository"
)

// ExtractRange fetches every message in the window and runs the
// extraction over each body. Outcomes are cached per message uid so
// overlapping windows do not re-parse unchanged mail.
func (uc *implUseCase) ExtractRange(ctx context.Context, input report.ExtractRangeInput) (report.ExtractRangeOutput, error) {
	if uc.mail == nil {
		return report.ExtractRangeOutput{}, report.ErrNoMailSource
	}
	if input.Since.IsZero() || input.Before.IsZero() || !input.Since.Before(input.Before) {
		return report.ExtractRangeOutput{}, report.ErrInvalidRange
	}

	messages, err := uc.mail.FetchRange(ctx, repository.FetchRangeOptions{
		Since:  input.Since,
		Before: input.Before,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.ExtractRange FetchRange: %v", err)
		return report.ExtractRangeOutput{}, err
	}

	extractions := make([]model.Extraction, 0)
	for _, msg := range messages {
		entry, ok := uc.cache.Get(msg.UID)
		if !ok {
			entry = uc.extractMessage(msg)
			if msg.UID != "" {
				uc.cache.Add(msg.UID, entry)
			}
		}
		if entry.found {
			extractions = append(extractions, entry.extraction)
		}
	}

	runID := uuid.NewString()
	uc.l.Infof(ctx, "uc.ExtractRange run %s: scanned %d messages, found %d report sections",
		runID, len(messages), len(extractions))

	return report.ExtractRangeOutput{
		RunID:       runID,
		Scanned:     len(messages),
		Extractions: extractions,
	}, nil
}

func (uc *implUseCase) extractMessage(msg model.MailMessage) cacheEntry {
	section, found := uc.extractor.Extract(msg.Body)
	if !found {
		return cacheEntry{}
	}
	return cacheEntry{
		found: true,
		extraction: model.Extraction{
			EmailID: msg.UID,
			Subject: msg.Subject,
			Date:    msg.Date,
			Section: section,
		},
	}
}
