package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rvalencia/moodplan/internal/summary"
	"github.com/rvalencia/moodplan/internal/task"
)

func (a *App) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show backlog and calendar summary",
		Long: `Summarize your backlog: task counts by status and priority, how much
of today is already committed, and what's coming up next.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := summary.Build(context.Background(), a.store, a.store, a.config.Schedule.EventWindow)
			if err != nil {
				return fmt.Errorf("building summary: %w", err)
			}

			fmt.Println(formatHeader("Backlog"))
			fmt.Printf("  Planned: %d (%d scheduled, %d waiting)\n", s.Planned, s.Scheduled, s.Unscheduled)
			fmt.Printf("  Done: %d  |  Skipped: %d\n", s.Done, s.Skipped)
			fmt.Printf("  Priority: %s %d  %s %d  %s %d\n",
				formatHigh("high"), s.ByPriority[task.PriorityHigh],
				"medium", s.ByPriority[task.PriorityMedium],
				formatLow("low"), s.ByPriority[task.PriorityLow],
			)
			if s.MoodShifted > 0 {
				fmt.Printf("  %s\n", formatMuted(fmt.Sprintf("%d task(s) adjusted by mood", s.MoodShifted)))
			}

			fmt.Println()
			fmt.Println(formatHeader("Today"))
			fmt.Printf("  Committed: %s\n", FormatDuration(s.BusyToday))
			if s.NextTask != nil {
				at, _ := s.NextTask.ScheduledAt()
				fmt.Printf("  Up next: %s at %s\n", s.NextTask.Title, at.Format("15:04"))
			}

			return nil
		},
	}
}
