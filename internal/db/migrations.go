package db

import "fmt"

// migrate runs database migrations.
//
// Task-mirrored events link back via task_id (0 for manual entries) and
// carry their duration as a column; the label is display-only. The partial
// unique index enforces at most one mirrored event per task.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS tasks (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			title              TEXT NOT NULL,
			mode               TEXT DEFAULT 'work',
			user_priority      TEXT DEFAULT 'medium' CHECK(user_priority IN ('low', 'medium', 'high')),
			effective_priority TEXT DEFAULT 'medium' CHECK(effective_priority IN ('low', 'medium', 'high')),
			scheduled_time     TEXT DEFAULT 'unscheduled',
			status             TEXT DEFAULT 'planned' CHECK(status IN ('planned', 'done', 'skipped')),
			created_at         DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS events (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			task_id          INTEGER NOT NULL DEFAULT 0,
			label            TEXT NOT NULL,
			start_time       TEXT NOT NULL,
			duration_minutes INTEGER NOT NULL DEFAULT 0,
			created_at       DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_events_task ON events(task_id) WHERE task_id != 0;
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
