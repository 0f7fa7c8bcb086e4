// Package eod extracts end-of-day report sections from email text and
// parses them into structured task records.
//
// Extraction is a pure text computation: the same input text and
// config always produce the same result, and absence of a report is a
// normal outcome, not an error.
package eod

import (
	"fmt"
	"regexp"
	"strings"
)

// Extractor holds the compiled matchers for one parsing configuration.
// It is immutable after construction and safe for concurrent use.
type Extractor struct {
	headerRe *regexp.Regexp
	timeRe   *regexp.Regexp
	endRe    *regexp.Regexp
}

// NewExtractor compiles the matchers for cfg. Empty config fields use
// the package defaults. An invalid time pattern fails construction;
// the extractor never degrades to partial matching.
func NewExtractor(cfg Config) (*Extractor, error) {
	keywords := cfg.Keywords
	if len(keywords) == 0 {
		keywords = DefaultKeywords()
	}
	timePatterns := cfg.TimePatterns
	if len(timePatterns) == 0 {
		timePatterns = DefaultTimePatterns()
	}
	terminators := cfg.Terminators
	if len(terminators) == 0 {
		terminators = DefaultTerminators()
	}

	// Keyword and colon must share a line: `.` does not cross
	// newlines, and the lazy run stops at the nearest colon.
	headerRe, err := regexp.Compile(`(?i)(` + joinLiteral(keywords) + `).*?:`)
	if err != nil {
		return nil, fmt.Errorf("compile header pattern: %w", err)
	}

	grouped := make([]string, len(timePatterns))
	for i, p := range timePatterns {
		grouped[i] = "(" + p + ")"
	}
	timeRe, err := regexp.Compile(`(?i)` + strings.Join(grouped, "|"))
	if err != nil {
		return nil, fmt.Errorf("compile time patterns: %w", err)
	}

	endRe, err := regexp.Compile(`(?i)(` + joinLiteral(terminators) + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile terminator pattern: %w", err)
	}

	return &Extractor{
		headerRe: headerRe,
		timeRe:   timeRe,
		endRe:    endRe,
	}, nil
}

// joinLiteral builds an alternation of regex-escaped literals.
func joinLiteral(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = regexp.QuoteMeta(item)
	}
	return strings.Join(quoted, "|")
}

// Locate finds the first report header in text. header is the full
// matched span including the colon run (e.g. "EOD:"). body is
// everything after the span, truncated at the earliest terminator
// match; the terminator text itself is excluded. ok is false when no
// keyword matches.
func (e *Extractor) Locate(text string) (header, body string, ok bool) {
	loc := e.headerRe.FindStringIndex(text)
	if loc == nil {
		return "", "", false
	}

	header = text[loc[0]:loc[1]]
	body = text[loc[1]:]

	if end := e.endRe.FindStringIndex(body); end != nil {
		body = body[:end[0]]
	}

	return header, body, true
}

// Extract runs the full pipeline over one message text: locate the
// section, parse its task lines. ok is false when no section was
// found or the located section yields zero task records.
func (e *Extractor) Extract(text string) (Section, bool) {
	header, body, ok := e.Locate(text)
	if !ok {
		return Section{}, false
	}

	tasks := e.ParseTasks(body)
	if len(tasks) == 0 {
		return Section{}, false
	}

	return Section{
		Header:     header,
		Tasks:      tasks,
		RawContent: strings.TrimSpace(body),
	}, true
}
