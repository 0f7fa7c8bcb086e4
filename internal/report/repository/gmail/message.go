package gmail

import (
	"encoding/base64"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"

	"eod-extractor/internal/model"
)

// toMailMessage flattens a full-format Gmail message into the domain type.
func toMailMessage(msg *gmail.Message) model.MailMessage {
	m := model.MailMessage{UID: msg.Id}
	if msg.InternalDate > 0 {
		m.Date = time.UnixMilli(msg.InternalDate)
	}
	if msg.Payload == nil {
		return m
	}

	for _, h := range msg.Payload.Headers {
		switch strings.ToLower(h.Name) {
		case "subject":
			m.Subject = h.Value
		case "from":
			m.From = h.Value
		case "message-id":
			m.MessageID = h.Value
		}
	}

	if plain := collectParts(msg.Payload, "text/plain"); len(plain) > 0 {
		m.Body = strings.Join(plain, "")
	} else if html := collectParts(msg.Payload, "text/html"); len(html) > 0 {
		m.Body = html[0]
	}
	return m
}

// collectParts walks the part tree depth-first and returns the decoded
// bodies of every part with the given MIME type, in tree order.
func collectParts(part *gmail.MessagePart, mimeType string) []string {
	if part == nil {
		return nil
	}
	var bodies []string
	if part.MimeType == mimeType && part.Body != nil && part.Body.Data != "" {
		if decoded, err := decodeBody(part.Body.Data); err == nil {
			bodies = append(bodies, decoded)
		}
	}
	for _, child := range part.Parts {
		bodies = append(bodies, collectParts(child, mimeType)...)
	}
	return bodies
}

// decodeBody decodes the URL-safe base64 Gmail uses for part bodies.
// Padding is inconsistent across responses, strip it and use the raw
// alphabet.
func decodeBody(data string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
