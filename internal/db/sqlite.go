// Package db provides SQLite storage for the day plan and tasks.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/daybar/internal/partition"
	"github.com/javiermolinar/daybar/internal/task"
)

// SQLite implements task.Repository and plan storage using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return open(db)
}

// open pings and migrates db. db is closed if either step fails.
func open(db *sql.DB) (*SQLite, error) {
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// LoadPlan returns the stored plan. found is false when nothing has been
// saved yet. A stored plan that does not tile its range is reported as
// partition.ErrInvalidPlan.
func (s *SQLite) LoadPlan(ctx context.Context) (p partition.Plan, found bool, err error) {
	err = s.db.QueryRowContext(ctx, `SELECT range_start, range_end FROM plan WHERE id = 1`).
		Scan(&p.Range.Start, &p.Range.End)
	if errors.Is(err, sql.ErrNoRows) {
		return partition.Plan{}, false, nil
	}
	if err != nil {
		return partition.Plan{}, false, fmt.Errorf("querying plan: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT start_at, end_at, category, color
		FROM blocks
		ORDER BY position
	`)
	if err != nil {
		return partition.Plan{}, false, fmt.Errorf("querying blocks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			b     partition.Block
			color string
		)
		if err := rows.Scan(&b.Start, &b.End, &b.Category, &color); err != nil {
			return partition.Plan{}, false, fmt.Errorf("scanning block: %w", err)
		}
		b.Color = partition.Color(color)
		p.Blocks = append(p.Blocks, b)
	}
	if err := rows.Err(); err != nil {
		return partition.Plan{}, false, fmt.Errorf("iterating blocks: %w", err)
	}

	if err := partition.Validate(p); err != nil {
		return partition.Plan{}, true, fmt.Errorf("stored plan: %w", err)
	}
	return p, true, nil
}

// SavePlan replaces the stored plan with p in a single transaction.
// Plans that do not tile their range are refused.
func (s *SQLite) SavePlan(ctx context.Context, p partition.Plan) error {
	if err := partition.Validate(p); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO plan (id, range_start, range_end, updated_at) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			range_start = excluded.range_start,
			range_end = excluded.range_end,
			updated_at = excluded.updated_at
	`, p.Range.Start, p.Range.End, time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving range: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM blocks`); err != nil {
		return fmt.Errorf("clearing blocks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO blocks (position, start_at, end_at, category, color) VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, b := range p.Blocks {
		if _, err := stmt.ExecContext(ctx, i, b.Start, b.End, b.Category, string(b.Color)); err != nil {
			return fmt.Errorf("inserting block %q: %w", b.Category, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// CreateTask adds a new task to the repository.
func (s *SQLite) CreateTask(ctx context.Context, t *task.Task) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (text, completed, category, created_at) VALUES (?, ?, ?, ?)
	`, t.Text, t.Completed, t.Category, t.CreatedAt.Format(time.RFC3339))
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
	row := s.db.QueryRowContext(ctx, `
		SELECT id, text, completed, category, created_at
		FROM tasks
		WHERE id = ?
	`, id)

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: #%d", task.ErrTaskNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying task: %w", err)
	}
	return t, nil
}

// ListTasks returns all tasks in creation order.
func (s *SQLite) ListTasks(ctx context.Context) ([]*task.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, completed, category, created_at
		FROM tasks
		ORDER BY id
	`)
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

// SetCompleted marks a task as done or not done.
func (s *SQLite) SetCompleted(ctx context.Context, id int64, completed bool) error {
	result, err := s.db.ExecContext(ctx, `UPDATE tasks SET completed = ? WHERE id = ?`, completed, id)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: #%d", task.ErrTaskNotFound, id)
	}

	return nil
}

// DeleteTask removes a task.
func (s *SQLite) DeleteTask(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: #%d", task.ErrTaskNotFound, id)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*task.Task, error) {
	var (
		t         task.Task
		createdAt string
	)
	if err := row.Scan(&t.ID, &t.Text, &t.Completed, &t.Category, &createdAt); err != nil {
		return nil, err
	}

	var err error
	t.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	return &t, nil
}

// parseTimestamp parses a timestamp in the formats SQLite might return.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", s)
}
