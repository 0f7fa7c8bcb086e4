package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parser converts the date expressions accepted by range flags into
// absolute time.Time values.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "Europe/Berlin"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

var agoRe = regexp.MustCompile(`^(\d+) (day|days|week|weeks|month|months) ago$`)

// Parse converts a date expression to an absolute time.Time. Accepted
// forms: "2006-01-02" (start of that day), RFC3339 (honored as given),
// and the relative phrases "today", "tomorrow", "yesterday",
// "last week", "last month", and "N days/weeks/months ago", all
// resolved against baseTime (usually time.Now()) to the start of the
// day they name. Anything else is an error.
func (p *Parser) Parse(expr string, baseTime time.Time) (time.Time, error) {
	raw := strings.TrimSpace(expr)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date expression")
	}

	if t, err := time.ParseInLocation("2006-01-02", raw, p.location); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(p.location), nil
	}

	phrase := strings.ToLower(raw)
	switch phrase {
	case "today":
		return p.startOfDay(baseTime), nil
	case "tomorrow":
		return p.startOfDay(baseTime.AddDate(0, 0, 1)), nil
	case "yesterday":
		return p.startOfDay(baseTime.AddDate(0, 0, -1)), nil
	case "last week":
		return p.startOfDay(baseTime.AddDate(0, 0, -7)), nil
	case "last month":
		return p.startOfDay(baseTime.AddDate(0, -1, 0)), nil
	}

	if m := agoRe.FindStringSubmatch(phrase); m != nil {
		amount, _ := strconv.Atoi(m[1])
		switch {
		case strings.HasPrefix(m[2], "day"):
			return p.startOfDay(baseTime.AddDate(0, 0, -amount)), nil
		case strings.HasPrefix(m[2], "week"):
			return p.startOfDay(baseTime.AddDate(0, 0, -amount*7)), nil
		case strings.HasPrefix(m[2], "month"):
			return p.startOfDay(baseTime.AddDate(0, -amount, 0)), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date expression %q", expr)
}

// startOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// EndOfDay returns 23:59:59 at the end of the given start-of-day time.
func (p *Parser) EndOfDay(startOfDay time.Time) time.Time {
	return startOfDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}
