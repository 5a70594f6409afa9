package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) moodCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mood [how you feel]",
		Short: "Tell the planner how you feel",
		Long: `Read a mood signal from free text and recolor your backlog.

Tired, anxious or overwhelmed lowers effective priorities; focused or
motivated raises them. Your baseline priorities are never touched, and
a neutral check-in restores them.`,
		Example: `  moodplan mood "completely drained after that meeting"
  moodplan mood "feeling sharp, let's go"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			res, err := a.planner.ApplyMoodToBacklog(context.Background(), strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("applying mood: %w", err)
			}

			fmt.Printf("Mood: %s\n", formatHeader(string(res.Signal.Label)))

			if len(res.Changed) == 0 {
				fmt.Println(formatMuted("No priority changes."))
				return nil
			}

			fmt.Printf("Adjusted %d task(s):\n", len(res.Changed))
			for _, t := range res.Changed {
				printTaskRow(t)
			}
			return nil
		},
	}
}
