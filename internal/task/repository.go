package task

import (
	"context"
)

// Update describes a partial task mutation. Nil fields are left unchanged.
type Update struct {
	Title         *string
	UserPriority  *Priority
	ScheduledTime *string
	Status        *Status
}

// Repository defines the storage interface for tasks.
type Repository interface {
	// CreateTask adds a new task and fills in its ID.
	CreateTask(ctx context.Context, t *Task) error

	// GetTask retrieves a task by ID. Returns ErrTaskNotFound if absent.
	GetTask(ctx context.Context, id int64) (*Task, error)

	// UpdateTask applies a partial mutation to a task.
	// A UserPriority change also resets EffectivePriority to the new baseline.
	UpdateTask(ctx context.Context, id int64, u Update) (*Task, error)

	// SetEffectivePriority updates only the mood-derived priority.
	SetEffectivePriority(ctx context.Context, id int64, p Priority) error

	// ListTasks returns tasks newest first, optionally filtered by mode.
	ListTasks(ctx context.Context, mode string) ([]*Task, error)

	// DeleteTask removes a task by ID. Returns ErrTaskNotFound if absent.
	DeleteTask(ctx context.Context, id int64) error

	// Close releases any resources held by the repository.
	Close() error
}
