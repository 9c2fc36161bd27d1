package task

import "context"

// Repository defines the storage interface for tasks.
type Repository interface {
	// CreateTask adds a new task to the repository and sets its ID.
	CreateTask(ctx context.Context, task *Task) error

	// GetTask retrieves a task by ID. Returns ErrTaskNotFound if it does not exist.
	GetTask(ctx context.Context, id int64) (*Task, error)

	// ListTasks returns all tasks in creation order.
	ListTasks(ctx context.Context) ([]*Task, error)

	// SetCompleted marks a task as done or not done.
	SetCompleted(ctx context.Context, id int64, completed bool) error

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id int64) error
}
