// Package summary aggregates backlog and calendar state for reporting.
package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/rvalencia/moodplan/internal/calendar"
	"github.com/rvalencia/moodplan/internal/task"
)

// Summary holds aggregated backlog and calendar counts.
type Summary struct {
	Planned     int
	Done        int
	Skipped     int
	Scheduled   int // planned tasks with a calendar slot
	Unscheduled int // planned tasks still waiting for a slot
	ByPriority  map[task.Priority]int // planned tasks by effective priority
	MoodShifted int // planned tasks whose effective priority differs from baseline

	NextTask  *task.Task // soonest upcoming scheduled task, nil when none
	BusyToday int        // minutes of calendar committed today
}

// Of aggregates tasks and calendar entries relative to now.
func Of(tasks []*task.Task, entries []calendar.Entry, now time.Time) *Summary {
	s := &Summary{ByPriority: make(map[task.Priority]int)}

	var nextAt time.Time
	for _, t := range tasks {
		switch t.Status {
		case task.StatusDone:
			s.Done++
			continue
		case task.StatusSkipped:
			s.Skipped++
			continue
		}

		s.Planned++
		s.ByPriority[t.EffectivePriority]++
		if t.EffectivePriority != t.UserPriority {
			s.MoodShifted++
		}

		at, ok := t.ScheduledAt()
		if !ok {
			s.Unscheduled++
			continue
		}
		s.Scheduled++
		if at.After(now) && (nextAt.IsZero() || at.Before(nextAt)) {
			nextAt = at
			s.NextTask = t
		}
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	for _, iv := range calendar.Busy(entries) {
		if iv.End.After(dayStart) && iv.Start.Before(dayEnd) {
			s.BusyToday += int(iv.End.Sub(iv.Start).Minutes())
		}
	}

	return s
}

// Build loads the backlog and the recent calendar window and aggregates them.
func Build(ctx context.Context, tasks task.Repository, entries calendar.Repository, window int) (*Summary, error) {
	all, err := tasks.ListTasks(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}

	recent, err := entries.ListRecentEntries(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("reading calendar: %w", err)
	}

	return Of(all, recent, time.Now()), nil
}
