package model

import "time"

// MailMessage is a single fetched email, reduced to the fields the
// extraction pipeline reads.
type MailMessage struct {
	UID       string    // Provider-specific identifier (IMAP sequence number or Gmail message ID)
	MessageID string    // RFC 5322 Message-ID header, when present
	Subject   string    // Decoded subject line
	From      string    // Sender address
	Date      time.Time // Message date from the envelope
	Body      string    // Plain-text body, decoded
}
