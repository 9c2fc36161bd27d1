package task

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownCategory is returned when a task is filed under a category that
// no block currently carries.
var ErrUnknownCategory = errors.New("unknown category")

// Registry manages tasks on top of a Repository.
type Registry struct {
	repo Repository
}

// NewRegistry creates a Registry backed by repo.
func NewRegistry(repo Repository) *Registry {
	return &Registry{repo: repo}
}

// Add creates a task under category. categories is the set of names the
// caller currently offers (usually partition.Categories of the plan); a nil
// slice skips the check.
func (r *Registry) Add(ctx context.Context, text, category string, categories []string) (*Task, error) {
	t, err := New(text, category)
	if err != nil {
		return nil, err
	}
	if categories != nil && t.IsOrphan(categories) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, t.Category)
	}
	if err := r.repo.CreateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return t, nil
}

// Toggle flips the completion state of a task and returns the updated task.
func (r *Registry) Toggle(ctx context.Context, id int64) (*Task, error) {
	t, err := r.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Completed = !t.Completed
	if err := r.repo.SetCompleted(ctx, id, t.Completed); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	return t, nil
}

// Delete removes a task.
func (r *Registry) Delete(ctx context.Context, id int64) error {
	return r.repo.DeleteTask(ctx, id)
}

// List returns all tasks.
func (r *Registry) List(ctx context.Context) ([]*Task, error) {
	return r.repo.ListTasks(ctx)
}

// Orphans returns the tasks whose category no longer names a block.
func Orphans(tasks []*Task, categories []string) []*Task {
	var out []*Task
	for _, t := range tasks {
		if t.IsOrphan(categories) {
			out = append(out, t)
		}
	}
	return out
}
