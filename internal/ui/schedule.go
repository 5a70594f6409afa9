package ui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rvalencia/moodplan/internal/dateutil"
)

func (a *App) scheduleCmd() *cobra.Command {
	var (
		at       string
		duration int
	)

	cmd := &cobra.Command{
		Use:   "schedule [task-id]",
		Short: "Place or move a task on the calendar",
		Long: `Resolve a task's scheduled time against the calendar.

Without --at the task moves to the next free slot from now. With --at
the requested time is confirmed if free, or shifted forward past
whatever it collides with. Rest tasks keep clear of meeting buffers.`,
		Example: `  moodplan schedule 3
  moodplan schedule 3 --at=tomorrow
  moodplan schedule 3 --at="2025-03-12T14:00" --duration=45`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task ID %q", args[0])
			}

			var desired *time.Time
			if at != "" {
				parsed, ok := dateutil.ParseNatural(at, time.Now())
				if !ok {
					return fmt.Errorf("cannot understand time %q", at)
				}
				desired = &parsed
			}

			res, err := a.planner.ResolveSchedule(context.Background(), id, desired, duration)
			if err != nil {
				return fmt.Errorf("scheduling task %d: %w", id, err)
			}

			fmt.Printf("Task #%d: %s\n", res.Task.ID, res.Task.Title)
			fmt.Printf("  %s %s\n", formatOK("Scheduled:"), res.Start.Format("Mon 02 Jan 15:04"))
			if res.Changed && desired != nil {
				fmt.Println(formatMuted("  Requested time was busy; moved to the next opening."))
			}
			if res.Degraded {
				fmt.Println(formatWarn("  Calendar is packed: this slot may still conflict."))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Desired time (natural language or ISO)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Slot length in minutes (default: config)")

	return cmd
}
