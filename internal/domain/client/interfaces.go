package client

import (
	"context"

	"github.com/atelierhq/atelier/internal/domain/user"
)

// Repository provides persistence for clients.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	Get(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context) ([]Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id string) error
}

// UserSyncer bootstraps the calling user before writes that reference it.
type UserSyncer interface {
	Sync(ctx context.Context) (*user.User, error)
}

// Views invalidates cached list views after mutations.
type Views interface {
	Invalidate(ctx context.Context, keys ...string) error
}
