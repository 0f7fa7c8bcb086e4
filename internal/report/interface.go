package report

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// ExtractRange fetches mail in a date range and extracts every
	// end-of-day section found.
	ExtractRange(ctx context.Context, input ExtractRangeInput) (ExtractRangeOutput, error)
	// ExtractText runs the extraction over an already-fetched body.
	ExtractText(ctx context.Context, input ExtractTextInput) (ExtractTextOutput, error)
}
