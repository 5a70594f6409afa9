package ui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rvalencia/moodplan/internal/calendar"
	"github.com/rvalencia/moodplan/internal/dateutil"
)

func (a *App) eventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage manual calendar entries",
		Long: `Manage calendar entries that are not backed by a task: meetings,
appointments, anything the scheduler should plan around.`,
	}

	cmd.AddCommand(a.eventAddCmd())
	cmd.AddCommand(a.eventDeleteCmd())

	return cmd
}

func (a *App) eventAddCmd() *cobra.Command {
	var (
		at       string
		duration int
	)

	cmd := &cobra.Command{
		Use:   "add [label]",
		Short: "Add a calendar entry",
		Long: `Add a manual calendar entry at the given time.

The entry becomes a busy span the scheduler plans around. Labels with
meeting words ("standup", "call", ...) additionally repel rest tasks.`,
		Example: `  moodplan event add "Team standup" --at=9:30 --duration=15
  moodplan event add "Dentist appointment" --at=tomorrow`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			start, ok := dateutil.ParseNatural(at, time.Now())
			if !ok {
				return fmt.Errorf("cannot understand time %q", at)
			}

			e := manualEntry(args[0], start, duration)
			if err := a.store.CreateEntry(context.Background(), e); err != nil {
				return fmt.Errorf("creating entry: %w", err)
			}

			iv, _ := calendar.ToBusyInterval(*e)
			fmt.Printf("Created entry #%d: %s\n", e.ID, e.Label)
			fmt.Printf("  %s %s-%s\n", formatOK("Blocked:"),
				iv.Start.Format("Mon 02 Jan 15:04"), iv.End.Format("15:04"))

			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Start time (natural language or ISO)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Span length in minutes (default: 30)")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func (a *App) eventDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [entry-id]",
		Short: "Delete a calendar entry",
		Long:  "Delete a calendar entry by ID, freeing its span for the scheduler.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry ID %q", args[0])
			}

			if err := a.store.DeleteEntry(context.Background(), id); err != nil {
				return fmt.Errorf("deleting entry %d: %w", id, err)
			}

			fmt.Printf("Deleted entry #%d\n", id)
			return nil
		},
	}
}

// manualEntry builds an unlinked calendar entry. A zero duration is stored as
// is; the busy-set derivation falls back to the label tag or the default.
func manualEntry(label string, start time.Time, durationMinutes int) *calendar.Entry {
	if durationMinutes <= 0 {
		durationMinutes = 0
	} else {
		durationMinutes = calendar.ClampDuration(durationMinutes)
	}
	return &calendar.Entry{
		Label:           label,
		StartTime:       calendar.FormatTime(start),
		DurationMinutes: durationMinutes,
	}
}
