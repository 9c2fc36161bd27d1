package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS plan (
			id          INTEGER PRIMARY KEY CHECK(id = 1),
			range_start REAL NOT NULL,
			range_end   REAL NOT NULL,
			updated_at  DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS blocks (
			position  INTEGER PRIMARY KEY,
			start_at  REAL NOT NULL,
			end_at    REAL NOT NULL,
			category  TEXT NOT NULL,
			color     TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS tasks (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			text        TEXT NOT NULL,
			completed   INTEGER NOT NULL DEFAULT 0,
			category    TEXT NOT NULL,
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks(category);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
