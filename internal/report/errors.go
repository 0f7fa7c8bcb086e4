package report

import "errors"

var (
	ErrEmptyBody    = errors.New("email body is empty")
	ErrInvalidRange = errors.New("start date must be before end date")
	ErrNoMailSource = errors.New("no mail source configured")
)
