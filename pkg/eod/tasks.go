package eod

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lines shorter than this, in runes, are never task lines.
const minTaskLineLen = 5

// List markers stripped from the front of a line before the
// description is read.
const bulletCutset = "-•*"

var ordinalRe = regexp.MustCompile(`^\d+\.`)

// ParseTasks parses a located section body into task records, one per
// admitted line, in line order. It never fails; a body with no
// parseable lines yields an empty slice.
func (e *Extractor) ParseTasks(body string) []Task {
	var tasks []Task

	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		if utf8.RuneCountInString(line) < minTaskLineLen {
			continue
		}
		if !looksLikeTask(line) {
			continue
		}

		clean := strings.TrimSpace(strings.TrimLeft(line, bulletCutset))
		if strings.HasPrefix(clean, ".") {
			clean = strings.TrimSpace(clean[1:])
		}

		desc, spent := e.splitDuration(clean)
		if desc == "" {
			// A bare bullet or a line that is nothing but a duration.
			continue
		}

		tasks = append(tasks, Task{
			Description: desc,
			TimeSpent:   spent,
			RawLine:     line,
		})
	}

	return tasks
}

// looksLikeTask reports whether a trimmed line is admitted as a task
// line: a list bullet, an ordinal like "3.", or any letter or digit
// within the first ten characters.
func looksLikeTask(line string) bool {
	if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") || strings.HasPrefix(line, "*") {
		return true
	}
	if ordinalRe.MatchString(line) {
		return true
	}

	n := 0
	for _, r := range line {
		if n >= 10 {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
		n++
	}
	return false
}

// splitDuration splits a cleaned line at the leftmost duration match.
// The description is the text before the match with its trailing "-"
// and ":" separators stripped; internal dashes stay untouched. Without
// a match the whole line is the description and spent is empty.
func (e *Extractor) splitDuration(clean string) (desc, spent string) {
	loc := e.timeRe.FindStringIndex(clean)
	if loc == nil {
		return clean, ""
	}

	spent = clean[loc[0]:loc[1]]
	desc = strings.TrimSpace(clean[:loc[0]])
	desc = strings.TrimSpace(strings.TrimRight(desc, "-:"))
	return desc, spent
}
