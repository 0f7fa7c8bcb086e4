// Package export encodes extraction results for terminals, files and
// downstream tooling.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"eod-extractor/internal/model"
)

// Format selects the output encoding for extraction results.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unsupported output format %q", s)
}

// Write encodes extractions to w in the given format. An empty result
// set writes a human-readable notice instead of empty structures.
func Write(w io.Writer, extractions []model.Extraction, f Format) error {
	if len(extractions) == 0 {
		_, err := fmt.Fprintln(w, "No EOD sections found in the specified date range.")
		return err
	}

	switch f {
	case FormatJSON:
		return writeJSON(w, extractions)
	case FormatCSV:
		return writeCSV(w, extractions)
	case FormatText:
		return writeText(w, extractions)
	}
	return fmt.Errorf("unsupported output format %q", f)
}

func writeJSON(w io.Writer, extractions []model.Extraction) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(extractions)
}

func writeCSV(w io.Writer, extractions []model.Extraction) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write([]string{"Date", "Subject", "Task Description", "Time Spent", "Email ID"}); err != nil {
		return err
	}
	for _, ext := range extractions {
		for _, task := range ext.Section.Tasks {
			record := []string{
				ext.Date.Format(time.RFC3339),
				ext.Subject,
				task.Description,
				task.TimeSpent,
				ext.EmailID,
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeText(w io.Writer, extractions []model.Extraction) error {
	var b strings.Builder
	for _, ext := range extractions {
		fmt.Fprintf(&b, "Date: %s\n", ext.Date.Format(time.RFC3339))
		fmt.Fprintf(&b, "Subject: %s\n", ext.Subject)
		b.WriteString("EOD Section:\n")

		for _, task := range ext.Section.Tasks {
			b.WriteString("  • " + task.Description)
			if task.TimeSpent != "" {
				b.WriteString(" - " + task.TimeSpent)
			}
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}
