package task

import "context"

// Repository provides persistence for tasks.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	Get(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context) ([]Task, error)
	ListByProject(ctx context.Context, projectID string) ([]Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id string) error
	// MaxPosition returns the highest position in the (project, status)
	// column, or 0 when the column is empty.
	MaxPosition(ctx context.Context, projectID string, status Status) (int, error)
}

// Views invalidates cached list views after mutations.
type Views interface {
	Invalidate(ctx context.Context, keys ...string) error
}
