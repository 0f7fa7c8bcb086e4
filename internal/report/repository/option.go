package repository

import "time"

// FetchRangeOptions holds the date window for fetching mail.
// Since is inclusive, Before is exclusive.
type FetchRangeOptions struct {
	Since  time.Time
	Before time.Time
}
