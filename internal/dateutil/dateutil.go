// Package dateutil provides date parsing and natural-language datetime utilities.
package dateutil

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
)

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

var (
	inMinutes = regexp.MustCompile(`in\s+(\d+)\s+minute`)
	inHours   = regexp.MustCompile(`in\s+(\d+)\s+hour`)
	clockTime = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm)`)
	isoLike   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

// ParseNatural parses a natural-language time expression relative to now.
//
// Supported forms:
//   - ISO instants and YYYY-MM-DD dates
//   - "in N minutes" / "in N hours"
//   - "tomorrow" (09:00 next day)
//   - "today evening" (18:00 today)
//   - clock times like "3pm", "6:30 pm" (today)
//
// Unparseable input returns ok=false; callers treat that as "no desired time".
func ParseNatural(text string, now time.Time) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	t := strings.ToLower(text)

	if isoLike.MatchString(text) {
		for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"} {
			if at, err := time.ParseInLocation(layout, text, now.Location()); err == nil {
				return at, true
			}
		}
	}

	if m := inMinutes.FindStringSubmatch(t); m != nil {
		n, _ := strconv.Atoi(m[1])
		return now.Add(time.Duration(n) * time.Minute), true
	}

	if m := inHours.FindStringSubmatch(t); m != nil {
		n, _ := strconv.Atoi(m[1])
		return now.Add(time.Duration(n) * time.Hour), true
	}

	if strings.Contains(t, "tomorrow") {
		d := now.AddDate(0, 0, 1)
		return time.Date(d.Year(), d.Month(), d.Day(), 9, 0, 0, 0, now.Location()), true
	}

	if strings.Contains(t, "today") && strings.Contains(t, "evening") {
		return time.Date(now.Year(), now.Month(), now.Day(), 18, 0, 0, 0, now.Location()), true
	}

	if m := clockTime.FindStringSubmatch(t); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour > 12 {
			return time.Time{}, false
		}
		if m[3] == "pm" && hour < 12 {
			hour += 12
		}
		if m[3] == "am" && hour == 12 {
			hour = 0
		}
		return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location()), true
	}

	return time.Time{}, false
}
