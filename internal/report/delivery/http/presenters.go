package http

import (
	"fmt"
	"time"

	"eod-extractor/internal/model"
	"eod-extractor/internal/report"
	"eod-extractor/pkg/response"
)

// --- Request DTOs ---

type parseReq struct {
	EmailID string    `json:"email_id" binding:"max=255"`
	Subject string    `json:"subject"  binding:"max=1000"`
	Date    time.Time `json:"date"`
	Body    string    `json:"body"     binding:"required"`
}

func (r parseReq) validate() error { return nil }

func (r parseReq) toInput() report.ExtractTextInput {
	id := r.EmailID
	if id == "" {
		id = "manual"
	}
	date := r.Date
	if date.IsZero() {
		date = time.Now()
	}
	return report.ExtractTextInput{
		EmailID: id,
		Subject: r.Subject,
		Date:    date,
		Body:    r.Body,
	}
}

// ---

type runReq struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date"   binding:"required"`

	since  time.Time
	before time.Time
}

func (r *runReq) validate() error {
	var err error
	if r.since, err = parseDateField(r.StartDate); err != nil {
		return err
	}
	if r.before, err = parseDateField(r.EndDate); err != nil {
		return err
	}
	return nil
}

func (r runReq) toInput() report.ExtractRangeInput {
	return report.ExtractRangeInput{
		Since:  r.since,
		Before: r.before,
	}
}

func parseDateField(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD or RFC3339", s)
}

// --- Response DTOs ---

type taskResp struct {
	Description string `json:"description"`
	TimeSpent   string `json:"time_spent,omitempty"`
	RawLine     string `json:"raw_line"`
}

type sectionResp struct {
	Header     string     `json:"section_header"`
	Tasks      []taskResp `json:"tasks"`
	RawContent string     `json:"raw_content"`
}

type extractionResp struct {
	EmailID string            `json:"email_id"`
	Subject string            `json:"subject"`
	Date    response.DateTime `json:"date"`
	Section sectionResp       `json:"eod_section"`
}

func newExtractionResp(ext model.Extraction) extractionResp {
	tasks := make([]taskResp, len(ext.Section.Tasks))
	for i, t := range ext.Section.Tasks {
		tasks[i] = taskResp{
			Description: t.Description,
			TimeSpent:   t.TimeSpent,
			RawLine:     t.RawLine,
		}
	}
	return extractionResp{
		EmailID: ext.EmailID,
		Subject: ext.Subject,
		Date:    response.DateTime(ext.Date),
		Section: sectionResp{
			Header:     ext.Section.Header,
			Tasks:      tasks,
			RawContent: ext.Section.RawContent,
		},
	}
}

type parseResp struct {
	Found      bool            `json:"found"`
	Extraction *extractionResp `json:"extraction,omitempty"`
}

func (h *handler) newParseResp(out report.ExtractTextOutput) parseResp {
	if !out.Found {
		return parseResp{}
	}
	ext := newExtractionResp(out.Extraction)
	return parseResp{Found: true, Extraction: &ext}
}

type runResp struct {
	RunID       string           `json:"run_id"`
	Scanned     int              `json:"scanned"`
	Found       int              `json:"found"`
	Extractions []extractionResp `json:"extractions"`
}

func (h *handler) newRunResp(out report.ExtractRangeOutput) runResp {
	extractions := make([]extractionResp, len(out.Extractions))
	for i, ext := range out.Extractions {
		extractions[i] = newExtractionResp(ext)
	}
	return runResp{
		RunID:       out.RunID,
		Scanned:     out.Scanned,
		Found:       len(out.Extractions),
		Extractions: extractions,
	}
}
