package usecase

import (
	"context"
	"strings"

	"eod-extractor/internal/model"
	"eod-extractor/internal/report"
)

// ExtractText runs the extraction over a single already-fetched body.
// A body without a report section is not an error, Found is false.
func (uc *implUseCase) ExtractText(ctx context.Context, input report.ExtractTextInput) (report.ExtractTextOutput, error) {
	if strings.TrimSpace(input.Body) == "" {
		return report.ExtractTextOutput{}, report.ErrEmptyBody
	}

	section, found := uc.extractor.Extract(input.Body)
	if !found {
		uc.l.Debugf(ctx, "uc.ExtractText: no report section in %q", input.Subject)
		return report.ExtractTextOutput{}, nil
	}

	return report.ExtractTextOutput{
		Found: true,
		Extraction: model.Extraction{
			EmailID: input.EmailID,
			Subject: input.Subject,
			Date:    input.Date,
			Section: section,
		},
	}, nil
}
