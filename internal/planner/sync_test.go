package planner

import (
	"context"
	"testing"

	"github.com/rvalencia/moodplan/internal/calendar"
	"github.com/rvalencia/moodplan/internal/task"
)

func TestSyncTaskCalendar_CreatesForScheduledTask(t *testing.T) {
	p, store := newTestPlanner(t)
	ctx := context.Background()

	tk := mustCreateTask(t, store, "write report")
	scheduled := "2025-03-10T14:00:00"
	tk, err := store.UpdateTask(ctx, tk.ID, task.Update{ScheduledTime: &scheduled})
	if err != nil {
		t.Fatalf("scheduling: %v", err)
	}

	op, err := p.SyncTaskCalendar(ctx, tk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Kind != OpCreated {
		t.Fatalf("expected created, got %q", op.Kind)
	}

	e, err := store.FindEntryByTaskID(ctx, tk.ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if e == nil {
		t.Fatal("entry not created")
	}
	if e.TaskID != tk.ID {
		t.Errorf("entry task id %d, want %d", e.TaskID, tk.ID)
	}
	if e.StartTime != scheduled {
		t.Errorf("entry start %q, want %q", e.StartTime, scheduled)
	}
}

func TestSyncTaskCalendar_NoOpWhenInSync(t *testing.T) {
	p, store := newTestPlanner(t)
	ctx := context.Background()

	tk := mustCreateTask(t, store, "write report")
	scheduled := "2025-03-10T14:00:00"
	tk, _ = store.UpdateTask(ctx, tk.ID, task.Update{ScheduledTime: &scheduled})

	if _, err := p.SyncTaskCalendar(ctx, tk); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	op, err := p.SyncTaskCalendar(ctx, tk)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if op.Kind != OpNone {
		t.Errorf("expected no-op on repeat sync, got %q", op.Kind)
	}
}

func TestSyncTaskCalendar_UpdatesOnRetitleAndMove(t *testing.T) {
	p, store := newTestPlanner(t)
	ctx := context.Background()

	tk := mustCreateTask(t, store, "write report")
	scheduled := "2025-03-10T14:00:00"
	tk, _ = store.UpdateTask(ctx, tk.ID, task.Update{ScheduledTime: &scheduled})
	if _, err := p.SyncTaskCalendar(ctx, tk); err != nil {
		t.Fatalf("initial sync: %v", err)
	}

	title := "write quarterly report"
	moved := "2025-03-10T16:00:00"
	tk, err := store.UpdateTask(ctx, tk.ID, task.Update{Title: &title, ScheduledTime: &moved})
	if err != nil {
		t.Fatalf("updating task: %v", err)
	}

	op, err := p.SyncTaskCalendar(ctx, tk)
	if err != nil {
		t.Fatalf("sync after move: %v", err)
	}
	if op.Kind != OpUpdated {
		t.Fatalf("expected update, got %q", op.Kind)
	}

	e, _ := store.FindEntryByTaskID(ctx, tk.ID)
	if e == nil {
		t.Fatal("entry lost after update")
	}
	if e.StartTime != moved {
		t.Errorf("entry start %q, want %q", e.StartTime, moved)
	}
	if e.Label != calendar.EntryLabel(tk.ID, title, 30) {
		t.Errorf("entry label %q not rewritten", e.Label)
	}
}

func TestSyncTaskCalendar_PreservesDurationOnUpdate(t *testing.T) {
	p, store := newTestPlanner(t)
	ctx := context.Background()

	tk := mustCreateTask(t, store, "power nap")
	scheduled := "2025-03-10T14:00:00"
	tk, _ = store.UpdateTask(ctx, tk.ID, task.Update{ScheduledTime: &scheduled})
	if _, err := p.syncWithDuration(ctx, tk, 10); err != nil {
		t.Fatalf("initial sync: %v", err)
	}

	moved := "2025-03-10T15:00:00"
	tk, _ = store.UpdateTask(ctx, tk.ID, task.Update{ScheduledTime: &moved})
	if _, err := p.SyncTaskCalendar(ctx, tk); err != nil {
		t.Fatalf("second sync: %v", err)
	}

	e, _ := store.FindEntryByTaskID(ctx, tk.ID)
	if e == nil {
		t.Fatal("entry missing")
	}
	if e.DurationMinutes != 10 {
		t.Errorf("duration lost on update: got %dm", e.DurationMinutes)
	}
}

func TestSyncTaskCalendar_DeletesWhenDone(t *testing.T) {
	p, store := newTestPlanner(t)
	ctx := context.Background()

	tk := mustCreateTask(t, store, "write report")
	scheduled := "2025-03-10T14:00:00"
	tk, _ = store.UpdateTask(ctx, tk.ID, task.Update{ScheduledTime: &scheduled})
	if _, err := p.SyncTaskCalendar(ctx, tk); err != nil {
		t.Fatalf("initial sync: %v", err)
	}

	done := task.StatusDone
	tk, err := store.UpdateTask(ctx, tk.ID, task.Update{Status: &done})
	if err != nil {
		t.Fatalf("marking done: %v", err)
	}

	op, err := p.SyncTaskCalendar(ctx, tk)
	if err != nil {
		t.Fatalf("sync after done: %v", err)
	}
	if op.Kind != OpDeleted {
		t.Fatalf("expected delete, got %q", op.Kind)
	}

	e, _ := store.FindEntryByTaskID(ctx, tk.ID)
	if e != nil {
		t.Error("entry should be gone after completion")
	}
}

func TestSyncTaskCalendar_SkipsDeleteWhenEntryAbsent(t *testing.T) {
	p, store := newTestPlanner(t)
	ctx := context.Background()

	// Unscheduled task with no entry: nothing to restore.
	tk := mustCreateTask(t, store, "write report")
	op, err := p.SyncTaskCalendar(ctx, tk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Kind != OpNone {
		t.Errorf("expected no-op for unscheduled task, got %q", op.Kind)
	}
}

func TestSyncTaskCalendar_LeavesUnrelatedEntriesAlone(t *testing.T) {
	p, store := newTestPlanner(t)
	ctx := context.Background()

	other := mustCreateEntry(t, store, "Dentist appointment (30m)", testNow)

	tk := mustCreateTask(t, store, "write report")
	scheduled := "2025-03-10T14:00:00"
	tk, _ = store.UpdateTask(ctx, tk.ID, task.Update{ScheduledTime: &scheduled})
	if _, err := p.SyncTaskCalendar(ctx, tk); err != nil {
		t.Fatalf("sync: %v", err)
	}

	entries, err := store.ListRecentEntries(ctx, 10)
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	found := false
	for _, e := range entries {
		if e.ID == other.ID && e.Label == "Dentist appointment (30m)" {
			found = true
		}
	}
	if !found {
		t.Error("manual entry was touched by the synchronizer")
	}
}
