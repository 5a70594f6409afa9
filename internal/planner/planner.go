// Package planner coordinates tasks, calendar entries, mood signals and the
// slot search into the operations the CLI exposes.
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/rvalencia/moodplan/internal/calendar"
	"github.com/rvalencia/moodplan/internal/config"
	"github.com/rvalencia/moodplan/internal/llm"
	"github.com/rvalencia/moodplan/internal/mood"
	"github.com/rvalencia/moodplan/internal/scheduler"
	"github.com/rvalencia/moodplan/internal/task"
)

// Store is the persistence surface the planner needs. The sqlite repository
// implements both halves.
type Store interface {
	task.Repository
	calendar.Repository
}

// Planner owns the scheduling, synchronization and mood operations.
type Planner struct {
	store Store
	coach llm.Client // nil disables coaching
	cfg   *config.Config
	now   func() time.Time
}

// New creates a planner. coach may be nil when no LLM provider is configured.
func New(store Store, coach llm.Client, cfg *config.Config) *Planner {
	return &Planner{
		store: store,
		coach: coach,
		cfg:   cfg,
		now:   time.Now,
	}
}

// SetClock overrides the planner's clock. Tests pin time with it.
func (p *Planner) SetClock(now func() time.Time) {
	p.now = now
}

// searchOptions builds scheduler options from config for one placement.
func (p *Planner) searchOptions(durationMinutes int, avoidMeetings bool) scheduler.Options {
	return scheduler.Options{
		BlockMinutes:         p.cfg.Schedule.BlockMinutes,
		DurationMinutes:      durationMinutes,
		MeetingBufferMinutes: p.cfg.Schedule.MeetingBufferMinutes,
		HorizonHours:         p.cfg.Schedule.HorizonHours,
		AvoidMeetings:        avoidMeetings,
	}
}

// busySnapshot reads the recent entry window once. Callers reuse the returned
// entries for the whole request and append newly placed intervals themselves,
// so a batch never collides with its own placements.
func (p *Planner) busySnapshot(ctx context.Context) ([]calendar.Entry, error) {
	entries, err := p.store.ListRecentEntries(ctx, p.cfg.Schedule.EventWindow)
	if err != nil {
		return nil, fmt.Errorf("reading calendar window: %w", err)
	}
	return entries, nil
}

// busyExcluding converts entries to sorted busy intervals, dropping the entry
// owned by excludeTaskID. Re-resolving a task against its own reservation
// would otherwise always collide.
func busyExcluding(entries []calendar.Entry, excludeTaskID int64) []calendar.BusyInterval {
	if excludeTaskID == 0 {
		return calendar.Busy(entries)
	}
	kept := make([]calendar.Entry, 0, len(entries))
	for _, e := range entries {
		if e.TaskID == excludeTaskID {
			continue
		}
		kept = append(kept, e)
	}
	return calendar.Busy(kept)
}

// ScheduleResult is the outcome of resolving a task's time.
type ScheduleResult struct {
	Task     *task.Task
	Start    time.Time
	Changed  bool // final time differs from the request
	Degraded bool // horizon-exhausted fallback, may still conflict
	Op       CalendarOp
}

// ResolveSchedule places a task on the timeline. A nil desired time means
// "next free slot from now"; otherwise the desired time is confirmed or
// shifted forward past collisions. The resolved time is persisted and the
// task's calendar entry is brought in line. durationMinutes <= 0 falls back
// to the configured default.
func (p *Planner) ResolveSchedule(ctx context.Context, taskID int64, desired *time.Time, durationMinutes int) (*ScheduleResult, error) {
	t, err := p.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if durationMinutes <= 0 {
		durationMinutes = p.cfg.Schedule.DefaultDurationMinutes
	}
	durationMinutes = calendar.ClampDuration(durationMinutes)

	entries, err := p.busySnapshot(ctx)
	if err != nil {
		return nil, err
	}
	busy := busyExcluding(entries, taskID)

	opts := p.searchOptions(durationMinutes, t.IsRest())
	res := scheduler.Resolve(busy, desired, p.now(), opts)

	scheduled := calendar.FormatTime(res.Start)
	t, err = p.store.UpdateTask(ctx, taskID, task.Update{ScheduledTime: &scheduled})
	if err != nil {
		return nil, fmt.Errorf("persisting schedule: %w", err)
	}

	op, err := p.syncWithDuration(ctx, t, durationMinutes)
	if err != nil {
		return nil, err
	}

	return &ScheduleResult{
		Task:     t,
		Start:    res.Start,
		Changed:  res.Changed,
		Degraded: res.Degraded,
		Op:       op,
	}, nil
}

// SuggestSlots returns up to five free alternatives at the given minute
// offsets from base, each searched independently against the current busy set.
func (p *Planner) SuggestSlots(ctx context.Context, base time.Time, offsetsMinutes []int, durationMinutes int, avoidMeetings bool) ([]time.Time, error) {
	if durationMinutes <= 0 {
		durationMinutes = p.cfg.Schedule.DefaultDurationMinutes
	}
	if len(offsetsMinutes) == 0 {
		offsetsMinutes = llm.DefaultTimeOffsets
	}

	entries, err := p.busySnapshot(ctx)
	if err != nil {
		return nil, err
	}

	opts := p.searchOptions(durationMinutes, avoidMeetings)
	return scheduler.Staggered(calendar.Busy(entries), base, offsetsMinutes, opts), nil
}

// MoodResult reports one reprioritization pass.
type MoodResult struct {
	Signal  mood.Signal
	Changed []*task.Task // tasks whose effective priority moved
}

// ApplyMoodToBacklog reads one mood signal from free text and recolors the
// effective priority of every planned task. Idempotent per signal; a neutral
// reading restores baselines.
func (p *Planner) ApplyMoodToBacklog(ctx context.Context, text string) (*MoodResult, error) {
	sig := mood.Analyze(text)
	changed, err := p.sweepBacklog(ctx, sig)
	if err != nil {
		return nil, err
	}
	return &MoodResult{Signal: sig, Changed: changed}, nil
}

// sweepBacklog applies a signal to all planned tasks and persists the moves.
func (p *Planner) sweepBacklog(ctx context.Context, sig mood.Signal) ([]*task.Task, error) {
	all, err := p.store.ListTasks(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("listing backlog: %w", err)
	}

	planned := make([]*task.Task, 0, len(all))
	for _, t := range all {
		if t.Status == task.StatusPlanned {
			planned = append(planned, t)
		}
	}

	changed := mood.ApplyToBacklog(planned, sig)
	for _, t := range changed {
		if err := p.store.SetEffectivePriority(ctx, t.ID, t.EffectivePriority); err != nil {
			return nil, fmt.Errorf("persisting priority for task %d: %w", t.ID, err)
		}
	}
	return changed, nil
}
