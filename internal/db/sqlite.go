// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/rvalencia/moodplan/internal/calendar"
	"github.com/rvalencia/moodplan/internal/task"
)

// SQLite implements task.Repository and calendar.Repository.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite store and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// CreateTask adds a new task and fills in its ID.
func (s *SQLite) CreateTask(ctx context.Context, t *task.Task) error {
	query := `
		INSERT INTO tasks (
			title, mode, user_priority, effective_priority, scheduled_time, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		t.Title,
		t.Mode,
		t.UserPriority,
		t.EffectivePriority,
		t.ScheduledTime,
		t.Status,
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	t.ID = id

	return nil
}

// GetTask retrieves a task by ID.
func (s *SQLite) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	query := `
		SELECT id, title, mode, user_priority, effective_priority, scheduled_time, status, created_at
		FROM tasks
		WHERE id = ?
	`

	t, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task %d: %w", id, task.ErrTaskNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying task: %w", err)
	}
	return t, nil
}

// UpdateTask applies a partial mutation to a task and returns the result.
// A UserPriority change also resets EffectivePriority to the new baseline.
func (s *SQLite) UpdateTask(ctx context.Context, id int64, u task.Update) (*task.Task, error) {
	t, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		if title == "" {
			return nil, task.ErrEmptyTitle
		}
		t.Title = title
	}
	if u.UserPriority != nil {
		if !u.UserPriority.Valid() {
			return nil, task.ErrInvalidPriority
		}
		t.UserPriority = *u.UserPriority
		t.EffectivePriority = *u.UserPriority
	}
	if u.ScheduledTime != nil {
		t.ScheduledTime = *u.ScheduledTime
	}
	if u.Status != nil {
		t.Status = *u.Status
	}

	query := `
		UPDATE tasks
		SET title = ?, user_priority = ?, effective_priority = ?, scheduled_time = ?, status = ?
		WHERE id = ?
	`
	if _, err := s.db.ExecContext(ctx, query,
		t.Title, t.UserPriority, t.EffectivePriority, t.ScheduledTime, t.Status, id,
	); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}

	return t, nil
}

// SetEffectivePriority updates only the mood-derived priority.
func (s *SQLite) SetEffectivePriority(ctx context.Context, id int64, p task.Priority) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET effective_priority = ? WHERE id = ?`, p, id)
	if err != nil {
		return fmt.Errorf("setting effective priority: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %d: %w", id, task.ErrTaskNotFound)
	}
	return nil
}

// ListTasks returns tasks newest first, optionally filtered by mode.
func (s *SQLite) ListTasks(ctx context.Context, mode string) ([]*task.Task, error) {
	query := `
		SELECT id, title, mode, user_priority, effective_priority, scheduled_time, status, created_at
		FROM tasks
	`
	var args []any
	if mode != "" {
		query += ` WHERE mode = ?`
		args = append(args, mode)
	}
	query += ` ORDER BY id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	return tasks, nil
}

// DeleteTask removes a task by ID.
func (s *SQLite) DeleteTask(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %d: %w", id, task.ErrTaskNotFound)
	}
	return nil
}

// CreateEntry persists a new calendar entry and fills in its ID.
func (s *SQLite) CreateEntry(ctx context.Context, e *calendar.Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO events (task_id, label, start_time, duration_minutes, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.TaskID, e.Label, e.StartTime, e.DurationMinutes, e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	e.ID = id

	return nil
}

// UpdateEntry rewrites an entry's label, start time and duration in place.
func (s *SQLite) UpdateEntry(ctx context.Context, id int64, label, startTime string, durationMinutes int) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE events SET label = ?, start_time = ?, duration_minutes = ? WHERE id = ?`,
		label, startTime, durationMinutes, id,
	)
	if err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("entry %d not found", id)
	}
	return nil
}

// DeleteEntry removes an entry by ID.
func (s *SQLite) DeleteEntry(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("entry %d not found", id)
	}
	return nil
}

// ListRecentEntries returns the most recently created entries, newest first.
// This bounded window is what the scheduler derives its busy set from.
func (s *SQLite) ListRecentEntries(ctx context.Context, limit int) ([]calendar.Entry, error) {
	if limit <= 0 {
		limit = 80
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, task_id, label, start_time, duration_minutes, created_at FROM events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []calendar.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}

	return entries, nil
}

// FindEntryByTaskID returns the entry mirroring the given task, or nil if the
// task has none. The unique index on task_id guarantees at most one row.
func (s *SQLite) FindEntryByTaskID(ctx context.Context, taskID int64) (*calendar.Entry, error) {
	query := `
		SELECT id, task_id, label, start_time, duration_minutes, created_at
		FROM events
		WHERE task_id = ?
	`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, taskID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying entry by task: %w", err)
	}
	return &e, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*task.Task, error) {
	var (
		t         task.Task
		createdAt string
	)
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Mode,
		&t.UserPriority,
		&t.EffectivePriority,
		&t.ScheduledTime,
		&t.Status,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	t.CreatedAt = parseTimestamp(createdAt)
	return &t, nil
}

func scanEntry(row scanner) (calendar.Entry, error) {
	var (
		e         calendar.Entry
		createdAt string
	)
	err := row.Scan(&e.ID, &e.TaskID, &e.Label, &e.StartTime, &e.DurationMinutes, &createdAt)
	if err != nil {
		return calendar.Entry{}, err
	}
	e.CreatedAt = parseTimestamp(createdAt)
	return e, nil
}

// parseTimestamp parses the formats SQLite may return for created_at.
// Unparseable values degrade to the zero time rather than failing the scan.
func parseTimestamp(s string) time.Time {
	for _, f := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(f, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
