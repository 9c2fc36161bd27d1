package task

import (
	"context"
	"fmt"
	"slices"
)

// memoryRepo is an in-process Repository for registry tests.
type memoryRepo struct {
	tasks  []*Task
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1}
}

// CreateTask stores a copy of t and sets its ID.
func (m *memoryRepo) CreateTask(_ context.Context, t *Task) error {
	t.ID = m.nextID
	m.nextID++
	stored := *t
	m.tasks = append(m.tasks, &stored)
	return nil
}

// GetTask returns a copy of the task with the given ID.
func (m *memoryRepo) GetTask(_ context.Context, id int64) (*Task, error) {
	i := m.index(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: #%d", ErrTaskNotFound, id)
	}
	t := *m.tasks[i]
	return &t, nil
}

// ListTasks returns copies of all tasks in creation order.
func (m *memoryRepo) ListTasks(_ context.Context) ([]*Task, error) {
	out := make([]*Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		c := *t
		out = append(out, &c)
	}
	return out, nil
}

// SetCompleted updates the completion flag of a task.
func (m *memoryRepo) SetCompleted(_ context.Context, id int64, completed bool) error {
	i := m.index(id)
	if i < 0 {
		return fmt.Errorf("%w: #%d", ErrTaskNotFound, id)
	}
	m.tasks[i].Completed = completed
	return nil
}

// DeleteTask removes a task.
func (m *memoryRepo) DeleteTask(_ context.Context, id int64) error {
	i := m.index(id)
	if i < 0 {
		return fmt.Errorf("%w: #%d", ErrTaskNotFound, id)
	}
	m.tasks = slices.Delete(m.tasks, i, i+1)
	return nil
}

func (m *memoryRepo) index(id int64) int {
	return slices.IndexFunc(m.tasks, func(t *Task) bool { return t.ID == id })
}
