package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rvalencia/moodplan/internal/dateutil"
	"github.com/rvalencia/moodplan/internal/task"
)

func (a *App) addCmd() *cobra.Command {
	var (
		mode     string
		priority string
		at       string
		duration int
		noPlace  bool
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Long: `Add a new task and place it on the calendar.

Without --at the task lands in the next free slot. --at accepts natural
expressions ("3pm", "tomorrow", "in 2 hours") as well as ISO instants;
a busy requested time is shifted forward to the next opening.`,
		Example: `  moodplan add "Write documentation"
  moodplan add "Call the dentist" --at=3pm --duration=15
  moodplan add "Power nap" --priority=low`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			prio, err := task.ParsePriority(priority)
			if err != nil {
				return err
			}
			if mode == "" {
				mode = a.config.Chat.DefaultMode
			}

			t, err := task.New(args[0], mode, prio, "")
			if err != nil {
				return err
			}

			ctx := context.Background()
			if err := a.store.CreateTask(ctx, t); err != nil {
				return fmt.Errorf("creating task: %w", err)
			}

			if noPlace {
				fmt.Printf("Created task #%d: %s (unscheduled)\n", t.ID, t.Title)
				return nil
			}

			var desired *time.Time
			if at != "" {
				parsed, ok := dateutil.ParseNatural(at, time.Now())
				if !ok {
					return fmt.Errorf("cannot understand time %q", at)
				}
				desired = &parsed
			}

			res, err := a.planner.ResolveSchedule(ctx, t.ID, desired, duration)
			if err != nil {
				return fmt.Errorf("placing task: %w", err)
			}

			fmt.Printf("Created task #%d: %s\n", t.ID, t.Title)
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

	cmd.Flags().StringVar(&mode, "mode", "", "Mode: work or personal (default: config)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority: low, medium or high (default: medium)")
	cmd.Flags().StringVar(&at, "at", "", "Desired time (natural language or ISO)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Slot length in minutes (default: config)")
	cmd.Flags().BoolVar(&noPlace, "no-schedule", false, "Create without placing on the calendar")

	return cmd
}
