package model

import (
	"time"

	"eod-extractor/pkg/eod"
)

// Extraction is an end-of-day section found in one email, joined with
// the email's identifying metadata.
type Extraction struct {
	EmailID string      `json:"email_id"`
	Subject string      `json:"subject"`
	Date    time.Time   `json:"date"`
	Section eod.Section `json:"eod_section"`
}
