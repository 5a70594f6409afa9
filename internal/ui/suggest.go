package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func (a *App) suggestCmd() *cobra.Command {
	var (
		duration int
		offsets  []int
		rest     bool
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest free slots",
		Long: `Show up to five free calendar slots starting from now.

Each offset is searched independently against your calendar, so the
results are alternatives rather than a sequence. --rest keeps slots
clear of meeting buffers.`,
		Example: `  moodplan suggest
  moodplan suggest --duration=60
  moodplan suggest --rest --offsets=0,30,90`,
		RunE: func(_ *cobra.Command, _ []string) error {
			slots, err := a.planner.SuggestSlots(context.Background(), time.Now(), offsets, duration, rest)
			if err != nil {
				return fmt.Errorf("finding slots: %w", err)
			}

			if len(slots) == 0 {
				fmt.Println("No free slots within the planning horizon.")
				return nil
			}

			fmt.Println(formatHeader("Free slots:"))
			for i, s := range slots {
				fmt.Printf("  %d. %s\n", i+1, s.Format("Mon 02 Jan 15:04"))
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&duration, "duration", 0, "Slot length in minutes (default: config)")
	cmd.Flags().IntSliceVar(&offsets, "offsets", nil, "Minute offsets from now to try (default: 0,30,90,180)")
	cmd.Flags().BoolVar(&rest, "rest", false, "Keep clear of meeting buffers")

	return cmd
}
