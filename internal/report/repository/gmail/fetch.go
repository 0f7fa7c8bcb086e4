package gmail

import (
	"context"
	"fmt"

	"eod-extractor/internal/model"
	"eod-extractor/internal/report/repository"
)

const listPageSize = 100

// FetchRange lists message ids matching the date window, then downloads
// each message in full format. Gmail's after:/before: operators work on
// whole days, so only the date part of the window is used.
func (r *implRepository) FetchRange(ctx context.Context, opt repository.FetchRangeOptions) ([]model.MailMessage, error) {
	query := fmt.Sprintf("after:%s before:%s",
		opt.Since.Format("2006/01/02"), opt.Before.Format("2006/01/02"))

	var ids []string
	pageToken := ""
	for {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := r.service.Users.Messages.List(r.user).Q(query).MaxResults(listPageSize).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			r.l.Errorf(ctx, "%s: list %q: %v", r.dsn("FetchRange"), query, err)
			return nil, repository.ErrFetch
		}

		for _, m := range resp.Messages {
			ids = append(ids, m.Id)
		}
		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	r.l.Infof(ctx, "gmail: %d messages match %q", len(ids), query)

	messages := make([]model.MailMessage, 0, len(ids))
	for _, id := range ids {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		full, err := r.service.Users.Messages.Get(r.user, id).Format("full").Context(ctx).Do()
		if err != nil {
			r.l.Warnf(ctx, "gmail: skipping message %s: %v", id, err)
			continue
		}
		messages = append(messages, toMailMessage(full))
	}
	return messages, nil
}
