// Package service defines the backend-agnostic interface for list and task operations.
package service

import (
	"context"
	"errors"
)

// ErrNotFound is returned (wrapped) when the remote store answers 404.
// For a list's task collection it means the list has no tasks yet.
var ErrNotFound = errors.New("not found")

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Service defines the interface for the remote list/task store.
// All HTTP calls go through this interface; callers never build URLs.
type Service interface {
	// ListLists returns all lists in API order.
	ListLists(ctx context.Context) ([]List, error)

	// GetList returns a single list by ID.
	GetList(ctx context.Context, listID string) (List, error)

	// CreateList creates a new list and returns the stored record.
	CreateList(ctx context.Context, title string) (List, error)

	// DeleteList deletes a list by ID. Its tasks are not touched.
	DeleteList(ctx context.Context, listID string) error

	// ListTasks returns the tasks of a list in API order.
	// Returns an error wrapping ErrNotFound when the list has no tasks.
	ListTasks(ctx context.Context, listID string) ([]Task, error)

	// GetTask returns a single task.
	GetTask(ctx context.Context, listID, taskID string) (Task, error)

	// CreateTask creates a task and returns the server's record.
	CreateTask(ctx context.Context, listID string, in TaskInput) (Task, error)

	// UpdateTask replaces a task with the given full record and returns the server's record.
	UpdateTask(ctx context.Context, listID, taskID string, task Task) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, listID, taskID string) error
}
