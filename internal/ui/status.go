package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rvalencia/moodplan/internal/planner"
	"github.com/rvalencia/moodplan/internal/task"
)

func (a *App) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done [task-id]",
		Short: "Mark a task as done",
		Long:  "Mark a task as done. Its calendar entry is removed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.setStatus(args[0], task.StatusDone, "Done")
		},
	}
}

func (a *App) skipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skip [task-id]",
		Short: "Skip a task",
		Long:  "Mark a task as skipped. Its calendar entry is removed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.setStatus(args[0], task.StatusSkipped, "Skipped")
		},
	}
}

func (a *App) setStatus(rawID string, status task.Status, verb string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid task ID %q", rawID)
	}

	ctx := context.Background()
	t, err := a.store.UpdateTask(ctx, id, task.Update{Status: &status})
	if err != nil {
		return fmt.Errorf("updating task %d: %w", id, err)
	}

	op, err := a.planner.SyncTaskCalendar(ctx, t)
	if err != nil {
		return fmt.Errorf("syncing calendar: %w", err)
	}

	fmt.Printf("%s task #%d: %s\n", verb, t.ID, t.Title)
	if op.Kind == planner.OpDeleted {
		fmt.Println(formatMuted("  Calendar entry removed."))
	}
	return nil
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [task-id]",
		Short: "Delete a task",
		Long:  "Delete a task and its calendar entry, if any.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task ID %q", args[0])
			}

			ctx := context.Background()

			// Drop the entry first; a missing one is fine.
			e, err := a.store.FindEntryByTaskID(ctx, id)
			if err != nil {
				return fmt.Errorf("looking up calendar entry: %w", err)
			}
			if e != nil {
				if err := a.store.DeleteEntry(ctx, e.ID); err != nil {
					return fmt.Errorf("deleting calendar entry: %w", err)
				}
			}

			if err := a.store.DeleteTask(ctx, id); err != nil {
				return fmt.Errorf("deleting task %d: %w", id, err)
			}

			fmt.Printf("Deleted task #%d\n", id)
			return nil
		},
	}
}
