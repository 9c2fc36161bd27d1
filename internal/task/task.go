// Package task defines the tasks tracked against day plan categories.
package task

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrEmptyText     = errors.New("task text cannot be empty")
	ErrEmptyCategory = errors.New("task category cannot be empty")
)

// Domain errors.
var (
	ErrTaskNotFound = errors.New("task not found")
)

// Task is a to-do item filed under a category.
// Category refers to a block label by value only; removing or renaming the
// block does not touch the task.
type Task struct {
	ID        int64
	Text      string
	Completed bool
	Category  string
	CreatedAt time.Time
}

// New creates a new Task with validation.
// text and category are trimmed and must be non-empty.
func New(text, category string) (*Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, ErrEmptyCategory
	}

	return &Task{
		Text:      text,
		Category:  category,
		CreatedAt: time.Now(),
	}, nil
}

// IsOrphan returns true if the task's category names none of the given
// categories.
func (t *Task) IsOrphan(categories []string) bool {
	for _, c := range categories {
		if c == t.Category {
			return false
		}
	}
	return true
}
