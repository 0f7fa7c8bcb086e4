package report

import (
	"time"

	"eod-extractor/internal/model"
)

// --- UseCase Inputs ---

type ExtractRangeInput struct {
	Since  time.Time
	Before time.Time
}

type ExtractTextInput struct {
	EmailID string
	Subject string
	Date    time.Time
	Body    string
}

// --- UseCase Outputs ---

type ExtractRangeOutput struct {
	RunID       string
	Scanned     int
	Extractions []model.Extraction
}

type ExtractTextOutput struct {
	Found      bool
	Extraction model.Extraction
}
