package planner

import (
	"context"
	"fmt"

	"github.com/rvalencia/moodplan/internal/calendar"
	"github.com/rvalencia/moodplan/internal/task"
)

// OpKind names what the synchronizer did to a task's calendar entry.
type OpKind string

const (
	OpCreated OpKind = "created"
	OpUpdated OpKind = "updated"
	OpDeleted OpKind = "deleted"
	OpNone    OpKind = "none"
)

// CalendarOp is the record of one synchronizer decision, returned so callers
// can report what happened.
type CalendarOp struct {
	Kind      OpKind
	TaskID    int64
	EntryID   int64
	Label     string
	StartTime string
}

// SyncTaskCalendar restores the invariant that a scheduled, planned task owns
// exactly one calendar entry linked by task id, and an unscheduled or finished
// task owns none. The entry's existing duration is preserved on update;
// missing entries are created when needed and silently skipped when a delete
// finds nothing.
func (p *Planner) SyncTaskCalendar(ctx context.Context, t *task.Task) (CalendarOp, error) {
	dur := p.cfg.Schedule.DefaultDurationMinutes

	existing, err := p.store.FindEntryByTaskID(ctx, t.ID)
	if err != nil {
		return CalendarOp{}, fmt.Errorf("looking up entry for task %d: %w", t.ID, err)
	}
	if existing != nil && existing.DurationMinutes > 0 {
		dur = existing.DurationMinutes
	}

	return p.syncExisting(ctx, t, existing, dur)
}

// syncWithDuration is SyncTaskCalendar with an explicit duration, used right
// after a placement where the caller knows the slot length.
func (p *Planner) syncWithDuration(ctx context.Context, t *task.Task, durationMinutes int) (CalendarOp, error) {
	existing, err := p.store.FindEntryByTaskID(ctx, t.ID)
	if err != nil {
		return CalendarOp{}, fmt.Errorf("looking up entry for task %d: %w", t.ID, err)
	}
	return p.syncExisting(ctx, t, existing, durationMinutes)
}

func (p *Planner) syncExisting(ctx context.Context, t *task.Task, existing *calendar.Entry, durationMinutes int) (CalendarOp, error) {
	wantEntry := t.Status == task.StatusPlanned && t.IsScheduled()

	switch {
	case wantEntry && existing == nil:
		e := &calendar.Entry{
			TaskID:          t.ID,
			Label:           calendar.EntryLabel(t.ID, t.Title, durationMinutes),
			StartTime:       t.ScheduledTime,
			DurationMinutes: durationMinutes,
		}
		if err := p.store.CreateEntry(ctx, e); err != nil {
			return CalendarOp{}, fmt.Errorf("creating entry for task %d: %w", t.ID, err)
		}
		return CalendarOp{Kind: OpCreated, TaskID: t.ID, EntryID: e.ID, Label: e.Label, StartTime: e.StartTime}, nil

	case wantEntry && existing != nil:
		label := calendar.EntryLabel(t.ID, t.Title, durationMinutes)
		if existing.Label == label && existing.StartTime == t.ScheduledTime && existing.DurationMinutes == durationMinutes {
			return CalendarOp{Kind: OpNone, TaskID: t.ID, EntryID: existing.ID, Label: existing.Label, StartTime: existing.StartTime}, nil
		}
		if err := p.store.UpdateEntry(ctx, existing.ID, label, t.ScheduledTime, durationMinutes); err != nil {
			return CalendarOp{}, fmt.Errorf("updating entry for task %d: %w", t.ID, err)
		}
		return CalendarOp{Kind: OpUpdated, TaskID: t.ID, EntryID: existing.ID, Label: label, StartTime: t.ScheduledTime}, nil

	case !wantEntry && existing != nil:
		if err := p.store.DeleteEntry(ctx, existing.ID); err != nil {
			return CalendarOp{}, fmt.Errorf("deleting entry for task %d: %w", t.ID, err)
		}
		return CalendarOp{Kind: OpDeleted, TaskID: t.ID, EntryID: existing.ID, Label: existing.Label, StartTime: existing.StartTime}, nil

	default:
		return CalendarOp{Kind: OpNone, TaskID: t.ID}, nil
	}
}
