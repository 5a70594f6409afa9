package summary

import (
	"testing"
	"time"

	"github.com/rvalencia/moodplan/internal/calendar"
	"github.com/rvalencia/moodplan/internal/task"
)

var now = time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local)

func planned(title, scheduled string, user, effective task.Priority) *task.Task {
	if scheduled == "" {
		scheduled = calendar.Unscheduled
	}
	return &task.Task{
		Title:             title,
		UserPriority:      user,
		EffectivePriority: effective,
		ScheduledTime:     scheduled,
		Status:            task.StatusPlanned,
	}
}

func TestOf_Counts(t *testing.T) {
	tasks := []*task.Task{
		planned("write report", "2025-03-10T14:00:00", task.PriorityMedium, task.PriorityLow),
		planned("review budget", "", task.PriorityHigh, task.PriorityHigh),
		{Title: "old thing", Status: task.StatusDone},
		{Title: "abandoned", Status: task.StatusSkipped},
	}

	s := Of(tasks, nil, now)

	if s.Planned != 2 || s.Done != 1 || s.Skipped != 1 {
		t.Errorf("counts planned=%d done=%d skipped=%d", s.Planned, s.Done, s.Skipped)
	}
	if s.Scheduled != 1 || s.Unscheduled != 1 {
		t.Errorf("scheduled=%d unscheduled=%d", s.Scheduled, s.Unscheduled)
	}
	if s.MoodShifted != 1 {
		t.Errorf("mood-shifted = %d, want 1", s.MoodShifted)
	}
	if s.ByPriority[task.PriorityLow] != 1 || s.ByPriority[task.PriorityHigh] != 1 {
		t.Errorf("priority counts %v", s.ByPriority)
	}
}

func TestOf_NextTaskIsSoonestUpcoming(t *testing.T) {
	tasks := []*task.Task{
		planned("later", "2025-03-10T16:00:00", task.PriorityMedium, task.PriorityMedium),
		planned("sooner", "2025-03-10T11:00:00", task.PriorityMedium, task.PriorityMedium),
		planned("already past", "2025-03-10T08:00:00", task.PriorityMedium, task.PriorityMedium),
	}

	s := Of(tasks, nil, now)
	if s.NextTask == nil || s.NextTask.Title != "sooner" {
		t.Fatalf("expected 'sooner' as next task, got %+v", s.NextTask)
	}
}

func TestOf_BusyTodayOnlyCountsToday(t *testing.T) {
	entries := []calendar.Entry{
		{Label: "Team meeting (60m)", StartTime: "2025-03-10T09:00:00"},
		{Label: "Task#1 (30m): write report", StartTime: "2025-03-10T14:00:00"},
		{Label: "Tomorrow sync (45m)", StartTime: "2025-03-11T09:00:00"},
	}

	s := Of(nil, entries, now)
	if s.BusyToday != 90 {
		t.Errorf("busy today = %dm, want 90m", s.BusyToday)
	}
}

func TestOf_Empty(t *testing.T) {
	s := Of(nil, nil, now)
	if s.Planned != 0 || s.NextTask != nil || s.BusyToday != 0 {
		t.Errorf("empty summary not zero-valued: %+v", s)
	}
}
