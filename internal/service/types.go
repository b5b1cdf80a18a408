// Package service defines the backend-agnostic interface for list and task operations.
package service

import (
	"strings"
	"time"
)

// Priority is the task priority. The zero value means unset.
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists the selectable priorities in display order, starting with unset.
var Priorities = []Priority{PriorityNone, PriorityHigh, PriorityMedium, PriorityLow}

// ParsePriority parses a priority name case-insensitively.
// Empty input and "none" yield PriorityNone.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return PriorityNone, true
	case "high", "h":
		return PriorityHigh, true
	case "medium", "med", "m":
		return PriorityMedium, true
	case "low", "l":
		return PriorityLow, true
	}
	return PriorityNone, false
}

// List represents a named container of tasks.
type List struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Task represents a single to-do item scoped to one list.
type Task struct {
	ID          string    `json:"id,omitempty"`
	ListID      string    `json:"listId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
}

// TaskInput is the payload for creating a task.
type TaskInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
}
