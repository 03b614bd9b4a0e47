package project

import "context"

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, p *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]Summary, error)
	ListByClient(ctx context.Context, clientID string) ([]Project, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id string) error
}

// Views invalidates cached list views after mutations.
type Views interface {
	Invalidate(ctx context.Context, keys ...string) error
}
