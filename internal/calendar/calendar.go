// Package calendar defines calendar entries and the busy intervals derived from them.
package calendar

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Duration bounds for the (<N>m) label tag, in minutes.
const (
	MinDurationMinutes     = 5
	MaxDurationMinutes     = 240
	DefaultDurationMinutes = 30
)

// TimeLayout is the wire format for entry start times: ISO-8601 without offset,
// matching what the stores persist.
const TimeLayout = "2006-01-02T15:04:05"

// Unscheduled is the sentinel value for a task with no scheduled time.
const Unscheduled = "unscheduled"

// Entry is a persisted calendar record. TaskID links an entry to its owning
// task (0 for manually created entries) and DurationMinutes is the structured
// slot length; the label renders both for display but is never parsed for
// task-linked entries.
type Entry struct {
	ID              int64
	TaskID          int64 // 0 for manual entries
	Label           string
	StartTime       string // ISO-8601 instant
	DurationMinutes int
	CreatedAt       time.Time
}

// BusyInterval is a committed half-open span [Start, End).
type BusyInterval struct {
	Start time.Time
	End   time.Time
	Label string
}

// Repository defines the storage interface for calendar entries.
type Repository interface {
	// CreateEntry persists a new entry and fills in its ID.
	CreateEntry(ctx context.Context, e *Entry) error

	// UpdateEntry rewrites an entry's label, start time and duration in place.
	UpdateEntry(ctx context.Context, id int64, label, startTime string, durationMinutes int) error

	// DeleteEntry removes an entry by ID.
	DeleteEntry(ctx context.Context, id int64) error

	// ListRecentEntries returns the most recently created entries, newest first.
	ListRecentEntries(ctx context.Context, limit int) ([]Entry, error)

	// FindEntryByTaskID returns the entry owned by a task, or nil when the
	// task has none. The store enforces at most one entry per task.
	FindEntryByTaskID(ctx context.Context, taskID int64) (*Entry, error)
}

var durationTag = regexp.MustCompile(`(?i)\((\d+)\s*m\)`)

// DecodeDuration extracts the (<N>m) duration tag from a label and clamps the
// result to [MinDurationMinutes, MaxDurationMinutes]. Malformed or absent tags
// degrade to defaultMinutes; this never fails.
func DecodeDuration(label string, defaultMinutes int) int {
	m := durationTag.FindStringSubmatch(label)
	if m == nil {
		return defaultMinutes
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return defaultMinutes
	}
	return ClampDuration(v)
}

// ClampDuration bounds a duration to [MinDurationMinutes, MaxDurationMinutes].
func ClampDuration(minutes int) int {
	if minutes < MinDurationMinutes {
		return MinDurationMinutes
	}
	if minutes > MaxDurationMinutes {
		return MaxDurationMinutes
	}
	return minutes
}

var whitespace = regexp.MustCompile(`\s+`)

// EntryLabel renders the display label for a task-linked entry:
// "Task#<id> (<dur>m): <title>". The title is whitespace-collapsed and capped
// at 140 characters. Display only; linkage and duration live in the entry's
// TaskID and DurationMinutes fields.
func EntryLabel(taskID int64, title string, durationMinutes int) string {
	safe := whitespace.ReplaceAllString(strings.TrimSpace(title), " ")
	if len(safe) > 140 {
		safe = safe[:140]
	}
	return fmt.Sprintf("Task#%d (%dm): %s", taskID, durationMinutes, safe)
}

// ParseTime parses an entry or task time string. It accepts the local ISO
// layout, RFC3339, and date-only values. The Unscheduled sentinel and
// unparseable input return ok=false.
func ParseTime(s string) (time.Time, bool) {
	if s == "" || s == Unscheduled {
		return time.Time{}, false
	}
	for _, layout := range []string{TimeLayout, time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTime renders a time in the wire layout with seconds zeroed.
func FormatTime(t time.Time) string {
	return t.Truncate(time.Minute).Format(TimeLayout)
}

// ToBusyInterval derives the busy span for an entry. Returns ok=false when the
// start time cannot be parsed. The structured duration wins; manual entries
// without one fall back to the label's (<N>m) tag, then the default.
func ToBusyInterval(e Entry) (BusyInterval, bool) {
	start, ok := ParseTime(e.StartTime)
	if !ok {
		return BusyInterval{}, false
	}
	dur := e.DurationMinutes
	if dur <= 0 {
		dur = DecodeDuration(e.Label, DefaultDurationMinutes)
	} else {
		dur = ClampDuration(dur)
	}
	return BusyInterval{
		Start: start,
		End:   start.Add(time.Duration(dur) * time.Minute),
		Label: e.Label,
	}, true
}

// Busy converts entries to busy intervals sorted ascending by start. The sort
// is stable and recomputed per call; the set is bounded by the store's recent
// entry window, so no index is kept.
func Busy(entries []Entry) []BusyInterval {
	intervals := make([]BusyInterval, 0, len(entries))
	for _, e := range entries {
		if iv, ok := ToBusyInterval(e); ok {
			intervals = append(intervals, iv)
		}
	}
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})
	return intervals
}

// Overlaps reports whether two half-open intervals intersect.
// Back-to-back intervals do not collide.
func Overlaps(a, b BusyInterval) bool {
	return a.End.After(b.Start) && a.Start.Before(b.End)
}

// meetingHints is the fixed vocabulary for meeting detection in entry labels.
var meetingHints = []string{
	"meeting", "call", "sync", "standup", "interview", "demo", "appointment", "review",
}

// IsMeetingLabel reports whether an entry label looks like a meeting,
// matched case-insensitively against a fixed keyword set.
func IsMeetingLabel(label string) bool {
	l := strings.ToLower(label)
	for _, w := range meetingHints {
		if strings.Contains(l, w) {
			return true
		}
	}
	return false
}
