package imap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	message "github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"

	"eod-extractor/internal/model"
)

// toMailMessage converts a raw fetch result into the domain message.
func (r *implRepository) toMailMessage(buf *imapclient.FetchMessageBuffer) (model.MailMessage, error) {
	raw := buf.FindBodySection(&imap.FetchItemBodySection{})
	if raw == nil {
		return model.MailMessage{}, fmt.Errorf("message %d has no body section", buf.SeqNum)
	}

	body, err := extractPlainText(raw)
	if err != nil {
		return model.MailMessage{}, err
	}

	msg := model.MailMessage{
		UID:  strconv.FormatUint(uint64(buf.UID), 10),
		Body: body,
	}
	if env := buf.Envelope; env != nil {
		msg.MessageID = env.MessageID
		msg.Subject = env.Subject
		msg.Date = env.Date
		if len(env.From) > 0 {
			msg.From = env.From[0].Addr()
		}
	}
	return msg, nil
}

// extractPlainText returns the inline text/plain parts of an RFC 822
// message, decoded and concatenated in message order. When the message
// carries no plain part the first text/html part is returned as-is,
// untouched. Attachments are ignored.
func extractPlainText(raw []byte) (string, error) {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		return "", fmt.Errorf("parse message: %w", err)
	}

	var plain strings.Builder
	var htmlFallback string
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read part: %w", err)
		}

		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, err := header.ContentType()
		if err != nil {
			continue
		}

		switch contentType {
		case "text/plain":
			b, err := io.ReadAll(part.Body)
			if err != nil {
				return "", fmt.Errorf("read text part: %w", err)
			}
			plain.Write(b)
		case "text/html":
			if htmlFallback != "" {
				continue
			}
			b, err := io.ReadAll(part.Body)
			if err != nil {
				return "", fmt.Errorf("read html part: %w", err)
			}
			htmlFallback = string(b)
		}
	}
	if plain.Len() > 0 {
		return plain.String(), nil
	}
	return htmlFallback, nil
}
