package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to your planner",
		Long: `Tell the planner what's on your plate or how you feel.

Actionable statements become scheduled tasks; emotional ones adjust
your backlog's priorities and may earn you a break on the calendar.`,
		Example: `  moodplan chat "I need to call the dentist and then review the budget"
  moodplan chat "feeling completely drained today"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			res, err := a.planner.Chat(context.Background(), strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("chat turn: %w", err)
			}

			width := termWidth()
			if width > 100 {
				width = 100
			}
			printCoachWrapped(res.Reply, width)

			if len(res.Created) > 0 {
				fmt.Println()
				fmt.Println(formatHeader("Added to your plan:"))
				for _, t := range res.Created {
					printTaskRow(t)
				}
			}

			if len(res.AutoAdded) > 0 {
				fmt.Println()
				fmt.Println(formatHeader("Coach added:"))
				for _, t := range res.AutoAdded {
					printTaskRow(t)
				}
			}

			if len(res.Reprioritized) > 0 {
				fmt.Println()
				fmt.Printf("%s\n", formatMuted(fmt.Sprintf(
					"Mood (%s) adjusted %d task(s).", res.Mood.Label, len(res.Reprioritized))))
			}

			if res.Degraded {
				fmt.Println()
				fmt.Println(formatWarn("Calendar is packed: some placements may still conflict."))
			}

			return nil
		},
	}

	return cmd
}
