package planner

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rvalencia/moodplan/internal/calendar"
	"github.com/rvalencia/moodplan/internal/config"
	"github.com/rvalencia/moodplan/internal/db"
	"github.com/rvalencia/moodplan/internal/task"
)

// testNow is the fixed clock for every planner test: a Monday morning.
var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

func newTestPlanner(t *testing.T) (*Planner, *db.SQLite) {
	t.Helper()

	store, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := config.Default()
	p := New(store, nil, cfg)
	p.now = func() time.Time { return testNow }
	return p, store
}

func mustCreateTask(t *testing.T, store *db.SQLite, title string) *task.Task {
	t.Helper()
	tk, err := task.New(title, task.ModeWork, task.PriorityMedium, "")
	if err != nil {
		t.Fatalf("building task: %v", err)
	}
	if err := store.CreateTask(context.Background(), tk); err != nil {
		t.Fatalf("creating task: %v", err)
	}
	return tk
}

func mustCreateEntry(t *testing.T, store *db.SQLite, label string, start time.Time) *calendar.Entry {
	t.Helper()
	e := &calendar.Entry{Label: label, StartTime: calendar.FormatTime(start)}
	if err := store.CreateEntry(context.Background(), e); err != nil {
		t.Fatalf("creating entry: %v", err)
	}
	return e
}

func TestResolveSchedule_NoDesiredTime(t *testing.T) {
	p, store := newTestPlanner(t)
	ctx := context.Background()

	tk := mustCreateTask(t, store, "write report")

	res, err := p.ResolveSchedule(ctx, tk.ID, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2025, 3, 10, 9, 15, 0, 0, time.Local)
	if !res.Start.Equal(want) {
		t.Errorf("expected first slot %v, got %v", want, res.Start)
	}
	if !res.Changed {
		t.Error("nil desired time should always report Changed")
	}
	if res.Task.ScheduledTime != calendar.FormatTime(want) {
		t.Errorf("scheduled time not persisted: %q", res.Task.ScheduledTime)
	}
	if res.Op.Kind != OpCreated {
		t.Errorf("expected entry creation, got %q", res.Op.Kind)
	}
}

func TestResolveSchedule_DesiredTimeFree(t *testing.T) {
	p, store := newTestPlanner(t)
	ctx := context.Background()

	tk := mustCreateTask(t, store, "write report")
	desired := time.Date(2025, 3, 10, 14, 0, 0, 0, time.Local)

	res, err := p.ResolveSchedule(ctx, tk.ID, &desired, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Changed {
		t.Error("free desired time should not move")
	}
	if !res.Start.Equal(desired) {
		t.Errorf("expected %v, got %v", desired, res.Start)
	}
}

func TestResolveSchedule_CollisionShiftsForward(t *testing.T) {
	p, store := newTestPlanner(t)
	ctx := context.Background()

	busyStart := time.Date(2025, 3, 10, 14, 0, 0, 0, time.Local)
	mustCreateEntry(t, store, "Team meeting (60m)", busyStart)

	tk := mustCreateTask(t, store, "write report")
	res, err := p.ResolveSchedule(ctx, tk.ID, &busyStart, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Changed {
		t.Error("collision should report Changed")
	}
	if !res.Start.After(busyStart) {
		t.Errorf("resolution must move forward from the request, got %v", res.Start)
	}
}

func TestResolveSchedule_IdempotentOnOwnEntry(t *testing.T) {
	p, store := newTestPlanner(t)
	ctx := context.Background()

	tk := mustCreateTask(t, store, "write report")
	desired := time.Date(2025, 3, 10, 14, 0, 0, 0, time.Local)

	first, err := p.ResolveSchedule(ctx, tk.ID, &desired, 30)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}

	// Re-resolving the same request must not collide with the task's own
	// reservation.
	second, err := p.ResolveSchedule(ctx, tk.ID, &desired, 30)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if !second.Start.Equal(first.Start) {
		t.Errorf("re-resolve moved the task: %v then %v", first.Start, second.Start)
	}
	if second.Changed {
		t.Error("re-resolve of a held slot should be unchanged")
	}
	if second.Op.Kind != OpNone {
		t.Errorf("expected no-op sync, got %q", second.Op.Kind)
	}
}

func TestResolveSchedule_RestAvoidsMeetings(t *testing.T) {
	p, store := newTestPlanner(t)
	ctx := context.Background()

	meetingStart := time.Date(2025, 3, 10, 9, 30, 0, 0, time.Local)
	mustCreateEntry(t, store, "Standup call (30m)", meetingStart)

	tk := mustCreateTask(t, store, "power nap")
	res, err := p.ResolveSchedule(ctx, tk.ID, nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Buffer of 20 minutes around the 09:30-10:00 meeting pushes the nap
	// past 10:20.
	clear := meetingStart.Add(30 * time.Minute).Add(20 * time.Minute)
	if res.Start.Before(clear) {
		t.Errorf("rest task landed inside the meeting buffer: %v", res.Start)
	}
}

func TestResolveSchedule_TaskNotFound(t *testing.T) {
	p, _ := newTestPlanner(t)

	_, err := p.ResolveSchedule(context.Background(), 999, nil, 0)
	if err == nil {
		t.Fatal("expected error for missing task")
	}
}

func TestSuggestSlots_Deduplicates(t *testing.T) {
	p, _ := newTestPlanner(t)

	// Offsets landing in the same free block collapse to one candidate.
	slots, err := p.SuggestSlots(context.Background(), testNow, []int{0, 5, 60}, 30, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 distinct slots, got %d: %v", len(slots), slots)
	}
	if !slots[0].Equal(time.Date(2025, 3, 10, 9, 15, 0, 0, time.Local)) {
		t.Errorf("unexpected first slot %v", slots[0])
	}
}

func TestSuggestSlots_DefaultOffsets(t *testing.T) {
	p, _ := newTestPlanner(t)

	slots, err := p.SuggestSlots(context.Background(), testNow, nil, 0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected at least one suggestion with default offsets")
	}
}

func TestApplyMoodToBacklog(t *testing.T) {
	p, store := newTestPlanner(t)
	ctx := context.Background()

	a := mustCreateTask(t, store, "write report")
	b := mustCreateTask(t, store, "review budget")

	res, err := p.ApplyMoodToBacklog(ctx, "I'm exhausted and can't think")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Signal.Label != "tired" {
		t.Errorf("expected tired signal, got %q", res.Signal.Label)
	}
	if len(res.Changed) != 2 {
		t.Fatalf("expected both tasks recolored, got %d", len(res.Changed))
	}

	for _, id := range []int64{a.ID, b.ID} {
		got, err := store.GetTask(ctx, id)
		if err != nil {
			t.Fatalf("reading task: %v", err)
		}
		if got.EffectivePriority != task.PriorityLow {
			t.Errorf("task %d: expected low effective priority, got %q", id, got.EffectivePriority)
		}
		if got.UserPriority != task.PriorityMedium {
			t.Errorf("task %d: baseline priority must not move, got %q", id, got.UserPriority)
		}
	}

	// Same signal again is a no-op.
	again, err := p.ApplyMoodToBacklog(ctx, "still so tired")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(again.Changed) != 0 {
		t.Errorf("idempotent sweep changed %d tasks", len(again.Changed))
	}

	// Neutral reading restores baselines.
	neutral, err := p.ApplyMoodToBacklog(ctx, "just checking in")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(neutral.Changed) != 2 {
		t.Errorf("neutral signal should restore both baselines, got %d", len(neutral.Changed))
	}
}

func TestApplyMoodToBacklog_SkipsDoneTasks(t *testing.T) {
	p, store := newTestPlanner(t)
	ctx := context.Background()

	tk := mustCreateTask(t, store, "write report")
	done := task.StatusDone
	if _, err := store.UpdateTask(ctx, tk.ID, task.Update{Status: &done}); err != nil {
		t.Fatalf("marking done: %v", err)
	}

	res, err := p.ApplyMoodToBacklog(ctx, "I'm exhausted")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Changed) != 0 {
		t.Errorf("done tasks must be left alone, changed %d", len(res.Changed))
	}
}

func TestBusyExcluding(t *testing.T) {
	entries := []calendar.Entry{
		{ID: 1, TaskID: 1, Label: "Task#1 (30m): write report", StartTime: "2025-03-10T10:00:00", DurationMinutes: 30},
		{ID: 2, TaskID: 10, Label: "Task#10 (30m): review budget", StartTime: "2025-03-10T11:00:00", DurationMinutes: 30},
		{ID: 3, Label: "Team meeting (30m)", StartTime: "2025-03-10T12:00:00"},
	}

	busy := busyExcluding(entries, 1)
	if len(busy) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(busy))
	}
	for _, b := range busy {
		if b.Label == "Task#1 (30m): write report" {
			t.Error("own entry not excluded")
		}
	}

	if got := busyExcluding(entries, 0); len(got) != 3 {
		t.Errorf("zero task ID should exclude nothing, got %d", len(got))
	}
}
