package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rvalencia/moodplan/internal/calendar"
)

func (a *App) agendaCmd() *cobra.Command {
	var (
		all   bool
		limit int
	)

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Show the calendar",
		Long: `Show calendar entries as busy spans, soonest first.

By default only upcoming entries are shown; --all includes past ones.`,
		Example: `  moodplan agenda
  moodplan agenda --all`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if limit <= 0 {
				limit = a.config.Schedule.EventWindow
			}

			entries, err := a.store.ListRecentEntries(context.Background(), limit)
			if err != nil {
				return fmt.Errorf("reading calendar: %w", err)
			}

			now := time.Now()
			shown := 0
			for _, iv := range calendar.Busy(entries) {
				if !all && iv.End.Before(now) {
					continue
				}
				fmt.Printf("  %s-%s  %s\n",
					iv.Start.Format("Mon 02 Jan 15:04"),
					iv.End.Format("15:04"),
					iv.Label,
				)
				shown++
			}

			if shown == 0 {
				fmt.Println("Nothing on the calendar.")
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include past entries")
	cmd.Flags().IntVar(&limit, "limit", 0, "Entries to consult (default: config event window)")

	return cmd
}
