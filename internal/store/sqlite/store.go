// Package sqlite stores lists and tasks for the local stand-in API.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"todolist/internal/service"
)

// ErrNotFound is returned when a list or task does not exist.
var ErrNotFound = errors.New("not found")

// Store is a SQLite-backed list/task store. IDs are assigned by SQLite and
// exposed as decimal strings, like the hosted mock API does.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path. Use ":memory:" for
// a throwaway store.
func Open(ctx context.Context, path string) (*Store, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases coherent and
	// serializes writers.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS lists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			list_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			due_date TEXT NOT NULL,
			priority TEXT NOT NULL,
			completed INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_list ON tasks(list_id, id);`,
	}
	for _, st := range stmts {
		if _, err := s.db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// Lists returns all lists ordered by id.
func (s *Store) Lists(ctx context.Context) ([]service.List, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title FROM lists ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []service.List{}
	for rows.Next() {
		var id int64
		var l service.List
		if err := rows.Scan(&id, &l.Title); err != nil {
			return nil, err
		}
		l.ID = formatID(id)
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

// List returns one list.
func (s *Store) List(ctx context.Context, listID string) (service.List, error) {
	id, ok := parseID(listID)
	if !ok {
		return service.List{}, ErrNotFound
	}
	l := service.List{ID: formatID(id)}
	err := s.db.QueryRowContext(ctx, `SELECT title FROM lists WHERE id = ?`, id).Scan(&l.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return service.List{}, ErrNotFound
	}
	if err != nil {
		return service.List{}, err
	}
	return l, nil
}

// CreateList inserts a list and returns it with its new id.
func (s *Store) CreateList(ctx context.Context, title string) (service.List, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO lists(title) VALUES (?)`, title)
	if err != nil {
		return service.List{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return service.List{}, err
	}
	return service.List{ID: formatID(id), Title: title}, nil
}

// UpdateList renames a list.
func (s *Store) UpdateList(ctx context.Context, listID, title string) (service.List, error) {
	id, ok := parseID(listID)
	if !ok {
		return service.List{}, ErrNotFound
	}
	res, err := s.db.ExecContext(ctx, `UPDATE lists SET title = ? WHERE id = ?`, title, id)
	if err != nil {
		return service.List{}, err
	}
	if err := requireAffected(res); err != nil {
		return service.List{}, err
	}
	return service.List{ID: formatID(id), Title: title}, nil
}

// DeleteList removes a list and returns the removed record. Tasks of the
// list are left in place.
func (s *Store) DeleteList(ctx context.Context, listID string) (service.List, error) {
	l, err := s.List(ctx, listID)
	if err != nil {
		return service.List{}, err
	}
	id, _ := parseID(l.ID)
	if _, err := s.db.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id); err != nil {
		return service.List{}, err
	}
	return l, nil
}

// Tasks returns the tasks of a list ordered by id.
func (s *Store) Tasks(ctx context.Context, listID string) ([]service.Task, error) {
	id, ok := parseID(listID)
	if !ok {
		return nil, ErrNotFound
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, list_id, title, description, due_date, priority, completed
		FROM tasks WHERE list_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []service.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Task returns one task of a list.
func (s *Store) Task(ctx context.Context, listID, taskID string) (service.Task, error) {
	lid, ok := parseID(listID)
	if !ok {
		return service.Task{}, ErrNotFound
	}
	tid, ok := parseID(taskID)
	if !ok {
		return service.Task{}, ErrNotFound
	}
	row := s.db.QueryRowContext(ctx, `SELECT id, list_id, title, description, due_date, priority, completed
		FROM tasks WHERE list_id = ? AND id = ?`, lid, tid)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return service.Task{}, ErrNotFound
	}
	return t, err
}

// CreateTask inserts a task into an existing list.
func (s *Store) CreateTask(ctx context.Context, listID string, in service.TaskInput) (service.Task, error) {
	l, err := s.List(ctx, listID)
	if err != nil {
		return service.Task{}, err
	}
	lid, _ := parseID(l.ID)
	res, err := s.db.ExecContext(ctx, `INSERT INTO tasks(list_id, title, description, due_date, priority, completed)
		VALUES (?, ?, ?, ?, ?, ?)`,
		lid, in.Title, in.Description, formatTime(in.DueDate), string(in.Priority), boolToInt(in.Completed))
	if err != nil {
		return service.Task{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return service.Task{}, err
	}
	return service.Task{
		ID:          formatID(id),
		ListID:      l.ID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate.UTC(),
		Priority:    in.Priority,
		Completed:   in.Completed,
	}, nil
}

// UpdateTask replaces the mutable fields of a task. The id and list id in
// t are ignored.
func (s *Store) UpdateTask(ctx context.Context, listID, taskID string, t service.Task) (service.Task, error) {
	lid, ok := parseID(listID)
	if !ok {
		return service.Task{}, ErrNotFound
	}
	tid, ok := parseID(taskID)
	if !ok {
		return service.Task{}, ErrNotFound
	}
	res, err := s.db.ExecContext(ctx, `UPDATE tasks
		SET title = ?, description = ?, due_date = ?, priority = ?, completed = ?
		WHERE list_id = ? AND id = ?`,
		t.Title, t.Description, formatTime(t.DueDate), string(t.Priority), boolToInt(t.Completed), lid, tid)
	if err != nil {
		return service.Task{}, err
	}
	if err := requireAffected(res); err != nil {
		return service.Task{}, err
	}
	return s.Task(ctx, listID, taskID)
}

// DeleteTask removes a task and returns the removed record.
func (s *Store) DeleteTask(ctx context.Context, listID, taskID string) (service.Task, error) {
	t, err := s.Task(ctx, listID, taskID)
	if err != nil {
		return service.Task{}, err
	}
	lid, _ := parseID(t.ListID)
	tid, _ := parseID(t.ID)
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE list_id = ? AND id = ?`, lid, tid); err != nil {
		return service.Task{}, err
	}
	return t, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (service.Task, error) {
	var (
		id, listID int64
		due        string
		priority   string
		completed  int
		t          service.Task
	)
	if err := row.Scan(&id, &listID, &t.Title, &t.Description, &due, &priority, &completed); err != nil {
		return service.Task{}, err
	}
	t.ID = formatID(id)
	t.ListID = formatID(listID)
	t.Priority = service.Priority(priority)
	t.Completed = completed != 0
	if due != "" {
		parsed, err := time.Parse(time.RFC3339Nano, due)
		if err != nil {
			return service.Task{}, fmt.Errorf("task %d: bad due date %q: %w", id, due, err)
		}
		t.DueDate = parsed
	}
	return t, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
