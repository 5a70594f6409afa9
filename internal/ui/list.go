package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rvalencia/moodplan/internal/task"
)

func (a *App) listCmd() *cobra.Command {
	var (
		mode string
		all  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks, newest first.

By default only planned tasks are shown; --all includes done and
skipped ones. A ~ after the priority badge marks a task whose
priority was adjusted by your mood.`,
		Example: `  moodplan list
  moodplan list --mode=personal
  moodplan list --all`,
		RunE: func(_ *cobra.Command, _ []string) error {
			tasks, err := a.store.ListTasks(context.Background(), mode)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}

			shown := 0
			for _, t := range tasks {
				if !all && t.Status != task.StatusPlanned {
					continue
				}
				printTaskRow(t)
				shown++
			}

			if shown == 0 {
				fmt.Println("No tasks. Add one with `moodplan add` or just chat.")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Filter by mode (work or personal)")
	cmd.Flags().BoolVar(&all, "all", false, "Include done and skipped tasks")

	return cmd
}
