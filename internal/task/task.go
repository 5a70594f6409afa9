// Package task defines the core domain types for moodplan.
package task

import (
	"errors"
	"strings"
	"time"

	"github.com/rvalencia/moodplan/internal/calendar"
)

// Validation errors.
var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrInvalidPriority = errors.New("priority must be 'low', 'medium' or 'high'")
)

// Domain errors.
var (
	ErrTaskNotFound = errors.New("task not found")
)

// Status represents the state of a task.
type Status string

const (
	StatusPlanned Status = "planned"
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
)

// Priority represents a task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid returns true if the priority is a valid value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Default modes. Mode is free-form; these are the ones the CLI offers.
const (
	ModeWork     = "work"
	ModePersonal = "personal"
)

// Task represents a work item on the shared timeline.
//
// ScheduledTime is either an ISO-8601 instant or the "unscheduled" sentinel.
// When scheduled, exactly one calendar entry carries the task's label prefix;
// the synchronizer restores that invariant on every mutation.
type Task struct {
	ID                int64
	Title             string
	Mode              string
	UserPriority      Priority // baseline set by the user
	EffectivePriority Priority // baseline adjusted by the latest mood signal
	ScheduledTime     string
	Status            Status
	CreatedAt         time.Time
}

// New creates a new Task with validation. scheduledTime may be empty, the
// "unscheduled" sentinel, or an ISO-8601 instant.
func New(title, mode string, priority Priority, scheduledTime string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if mode == "" {
		mode = ModeWork
	}
	if scheduledTime == "" {
		scheduledTime = calendar.Unscheduled
	}

	return &Task{
		Title:             title,
		Mode:              mode,
		UserPriority:      priority,
		EffectivePriority: priority,
		ScheduledTime:     scheduledTime,
		Status:            StatusPlanned,
		CreatedAt:         time.Now(),
	}, nil
}

// IsScheduled returns true if the task has a parseable scheduled time.
func (t *Task) IsScheduled() bool {
	_, ok := calendar.ParseTime(t.ScheduledTime)
	return ok
}

// ScheduledAt returns the task's scheduled time, or ok=false when
// unscheduled or unparseable.
func (t *Task) ScheduledAt() (time.Time, bool) {
	return calendar.ParseTime(t.ScheduledTime)
}

// IsDone returns true if the task has been completed.
func (t *Task) IsDone() bool {
	return t.Status == StatusDone
}

// restHints is the fixed vocabulary for low-intensity activity detection,
// matched against task titles (not entry labels).
var restHints = []string{"nap", "power nap", "sleep", "rest"}

// IsRest reports whether the task is a low-intensity activity that should
// keep clear of meeting buffers when scheduled.
func (t *Task) IsRest() bool {
	return IsRestTitle(t.Title)
}

// IsRestTitle reports whether a title names a low-intensity activity.
func IsRestTitle(title string) bool {
	l := strings.ToLower(title)
	for _, w := range restHints {
		if strings.Contains(l, w) {
			return true
		}
	}
	return false
}

// ParsePriority parses a priority string, defaulting empty input to medium.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return "", ErrInvalidPriority
	}
}
