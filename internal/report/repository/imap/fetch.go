package imap

import (
	"context"
	"fmt"
	"mime"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-message/charset"

	"eod-extractor/internal/model"
	"eod-extractor/internal/report/repository"
)

const (
	maxDialRetries = 3
	dialBackoff    = 2 * time.Second
)

// FetchRange opens a session, searches the configured folder for
// messages in the date window and returns them with decoded bodies.
// Messages whose body cannot be parsed are skipped, not fatal.
func (r *implRepository) FetchRange(ctx context.Context, opt repository.FetchRangeOptions) ([]model.MailMessage, error) {
	client, err := r.dial(ctx)
	if err != nil {
		r.l.Errorf(ctx, "%s: dial: %v", r.dsn("FetchRange"), err)
		return nil, repository.ErrConnect
	}
	defer client.Close()

	if err := client.Login(r.cfg.Username, r.cfg.Password).Wait(); err != nil {
		r.l.Errorf(ctx, "%s: login as %s: %v", r.dsn("FetchRange"), r.cfg.Username, err)
		return nil, repository.ErrConnect
	}

	if _, err := client.Select(r.cfg.Folder, nil).Wait(); err != nil {
		r.l.Errorf(ctx, "%s: select %s: %v", r.dsn("FetchRange"), r.cfg.Folder, err)
		return nil, repository.ErrFetch
	}

	criteria := &imap.SearchCriteria{
		Since:  opt.Since,
		Before: opt.Before,
	}
	searchData, err := client.Search(criteria, nil).Wait()
	if err != nil {
		r.l.Errorf(ctx, "%s: search: %v", r.dsn("FetchRange"), err)
		return nil, repository.ErrFetch
	}

	seqNums := searchData.AllSeqNums()
	r.l.Infof(ctx, "imap: %d messages in %s between %s and %s",
		len(seqNums), r.cfg.Folder, opt.Since.Format("2006-01-02"), opt.Before.Format("2006-01-02"))
	if len(seqNums) == 0 {
		return nil, nil
	}

	fetchOptions := &imap.FetchOptions{
		UID:         true,
		Envelope:    true,
		BodySection: []*imap.FetchItemBodySection{{}},
	}
	buffers, err := client.Fetch(imap.SeqSetNum(seqNums...), fetchOptions).Collect()
	if err != nil {
		r.l.Errorf(ctx, "%s: fetch: %v", r.dsn("FetchRange"), err)
		return nil, repository.ErrFetch
	}

	messages := make([]model.MailMessage, 0, len(buffers))
	for _, buf := range buffers {
		msg, err := r.toMailMessage(buf)
		if err != nil {
			r.l.Warnf(ctx, "imap: skipping message %d: %v", buf.SeqNum, err)
			continue
		}
		messages = append(messages, msg)
	}

	if err := client.Logout().Wait(); err != nil {
		r.l.Warnf(ctx, "imap: logout: %v", err)
	}
	return messages, nil
}

// dial connects with exponential backoff. Transient network errors are
// common against consumer IMAP endpoints, a flat fail on first refusal
// makes scheduled runs too fragile.
func (r *implRepository) dial(ctx context.Context) (*imapclient.Client, error) {
	addr := fmt.Sprintf("%s:%d", r.cfg.Server, r.cfg.Port)
	options := &imapclient.Options{
		WordDecoder: &mime.WordDecoder{CharsetReader: charset.Reader},
	}

	backoff := dialBackoff
	var lastErr error
	for i := 0; i < maxDialRetries; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var (
			client *imapclient.Client
			err    error
		)
		if r.cfg.UseSSL {
			client, err = imapclient.DialTLS(addr, options)
		} else {
			client, err = imapclient.DialInsecure(addr, options)
		}
		if err == nil {
			return client, nil
		}

		lastErr = err
		r.l.Warnf(ctx, "imap: dial %s failed (retry %d/%d): %v", addr, i+1, maxDialRetries, err)
		time.Sleep(backoff)
		backoff *= 2
	}
	return nil, lastErr
}
