package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/rvalencia/moodplan/internal/calendar"
	"github.com/rvalencia/moodplan/internal/dateutil"
	"github.com/rvalencia/moodplan/internal/llm"
	"github.com/rvalencia/moodplan/internal/mood"
	"github.com/rvalencia/moodplan/internal/nlp"
	"github.com/rvalencia/moodplan/internal/scheduler"
	"github.com/rvalencia/moodplan/internal/task"
)

// Chat flow constants.
const (
	// chunkStaggerMinutes spaces sibling tasks extracted from one message.
	chunkStaggerMinutes = 15

	// napMinutes is the slot length for rest tasks created in chat.
	napMinutes = 10
)

// ChatResult is everything one chat turn produced.
type ChatResult struct {
	Reply         string
	Intent        nlp.Intent
	Mood          mood.Signal
	Created       []*task.Task  // tasks extracted from the message
	Ops           []CalendarOp  // synchronizer records for placements
	Reprioritized []*task.Task  // backlog moves from the mood sweep
	Suggestions   []llm.Suggestion
	AutoAdded     []*task.Task  // coach suggestions that made it onto the calendar
	Degraded      bool          // at least one placement fell back to the horizon
}

// Chat runs one conversational turn: extract tasks from the message and place
// them, sweep the backlog with the detected mood, then ask the coach for
// suggestions and auto-add the confident restorative ones. The calendar is
// read once up front; every placement appends to the in-memory busy set so a
// single message never collides with itself.
func (p *Planner) Chat(ctx context.Context, text string) (*ChatResult, error) {
	now := p.now()

	result := &ChatResult{
		Intent: nlp.DetectIntent(text),
		Mood:   mood.Analyze(text),
	}

	entries, err := p.busySnapshot(ctx)
	if err != nil {
		return nil, err
	}
	busy := calendar.Busy(entries)

	if result.Intent != nlp.IntentChat && p.cfg.Chat.AutoAdd {
		busy, err = p.extractAndPlace(ctx, text, now, busy, result)
		if err != nil {
			return nil, err
		}
	}

	result.Reprioritized, err = p.sweepBacklog(ctx, result.Mood)
	if err != nil {
		return nil, err
	}

	if err := p.coachTurn(ctx, text, now, busy, result); err != nil {
		return nil, err
	}

	if result.Reply == "" {
		result.Reply = defaultReply(result)
	}

	return result, nil
}

// extractAndPlace splits the message into task chunks, creates the confident
// ones, and schedules each against the shared busy set. Returns the busy set
// grown by the new placements.
func (p *Planner) extractAndPlace(ctx context.Context, text string, now time.Time, busy []calendar.BusyInterval, result *ChatResult) ([]calendar.BusyInterval, error) {
	defaultPriority, err := task.ParsePriority(p.cfg.Chat.DefaultPriority)
	if err != nil {
		defaultPriority = task.PriorityMedium
	}

	placed := 0
	for _, chunk := range nlp.SplitTasks(text) {
		if nlp.Confidence(chunk) < nlp.AutoAddThreshold {
			continue
		}

		t, err := task.New(chunk, p.cfg.Chat.DefaultMode, defaultPriority, "")
		if err != nil {
			continue
		}
		if err := p.store.CreateTask(ctx, t); err != nil {
			return busy, fmt.Errorf("creating task %q: %w", chunk, err)
		}
		result.Created = append(result.Created, t)

		if !p.cfg.Chat.AutoSchedule {
			continue
		}

		// Explicit times anchor the search; everything else staggers
		// forward from now so siblings do not pile onto one slot.
		var desired *time.Time
		anchor := now.Add(time.Duration(placed*chunkStaggerMinutes) * time.Minute)
		if at, ok := dateutil.ParseNatural(chunk, now); ok {
			desired = &at
		}

		duration := p.cfg.Schedule.DefaultDurationMinutes
		if t.IsRest() {
			duration = napMinutes
		}

		opts := p.searchOptions(duration, t.IsRest())
		res := scheduler.Resolve(busy, desired, anchor, opts)
		result.Degraded = result.Degraded || res.Degraded

		scheduled := calendar.FormatTime(res.Start)
		t, err = p.store.UpdateTask(ctx, t.ID, task.Update{ScheduledTime: &scheduled})
		if err != nil {
			return busy, fmt.Errorf("scheduling task %d: %w", t.ID, err)
		}
		result.Created[len(result.Created)-1] = t

		op, err := p.syncWithDuration(ctx, t, duration)
		if err != nil {
			return busy, err
		}
		result.Ops = append(result.Ops, op)

		busy = appendBusy(busy, res.Start, duration, op.Label)
		placed++
	}

	return busy, nil
}

// coachTurn asks the model for suggestions and auto-adds the confident
// restorative ones, placing each at the best of its candidate offsets.
func (p *Planner) coachTurn(ctx context.Context, text string, now time.Time, busy []calendar.BusyInterval, result *ChatResult) error {
	backlog, err := p.store.ListTasks(ctx, "")
	if err != nil {
		return fmt.Errorf("listing backlog: %w", err)
	}
	var open []string
	for _, t := range backlog {
		if t.Status == task.StatusPlanned {
			open = append(open, t.Title)
		}
	}

	reply, err := llm.GenerateSuggestions(ctx, p.coach, text, string(result.Mood.Label), open)
	if err != nil {
		// Coaching is best-effort; the fallback reply still came back.
		result.Reply = reply.Message
		return nil
	}
	result.Reply = reply.Message
	result.Suggestions = reply.Suggestions

	if !p.cfg.Chat.AutoAdd {
		return nil
	}

	for _, s := range reply.Suggestions {
		if !s.AutoAdd || s.Confidence < llm.SuggestionConfidenceGate {
			continue
		}

		t, err := task.New(s.Title, task.ModePersonal, task.PriorityLow, "")
		if err != nil {
			continue
		}
		if err := p.store.CreateTask(ctx, t); err != nil {
			return fmt.Errorf("creating suggested task %q: %w", s.Title, err)
		}
		result.AutoAdded = append(result.AutoAdded, t)

		if !p.cfg.Chat.AutoSchedule {
			continue
		}

		rest := t.IsRest() || s.TaskType == "break" || s.TaskType == "rest"
		opts := p.searchOptions(s.DurationMin, rest)
		slots := scheduler.Staggered(busy, now, s.TimeOffsetsMin, opts)
		if len(slots) == 0 {
			continue
		}
		start := slots[0]

		scheduled := calendar.FormatTime(start)
		t, err = p.store.UpdateTask(ctx, t.ID, task.Update{ScheduledTime: &scheduled})
		if err != nil {
			return fmt.Errorf("scheduling suggested task %d: %w", t.ID, err)
		}
		result.AutoAdded[len(result.AutoAdded)-1] = t

		op, err := p.syncWithDuration(ctx, t, s.DurationMin)
		if err != nil {
			return err
		}
		result.Ops = append(result.Ops, op)

		busy = appendBusy(busy, start, s.DurationMin, op.Label)
	}

	return nil
}

func appendBusy(busy []calendar.BusyInterval, start time.Time, durationMinutes int, label string) []calendar.BusyInterval {
	return append(busy, calendar.BusyInterval{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
		Label: label,
	})
}

func defaultReply(result *ChatResult) string {
	switch {
	case len(result.Created) > 0:
		return fmt.Sprintf("Added %d task(s) to your plan.", len(result.Created))
	case result.Mood.Label != mood.Neutral:
		return fmt.Sprintf("Noted how you're feeling (%s) and adjusted your backlog.", result.Mood.Label)
	default:
		return "I'm listening. Tell me what's on your plate or how you feel."
	}
}
