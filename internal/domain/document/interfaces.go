package document

import (
	"context"

	"github.com/atelierhq/atelier/internal/domain/user"
)

// Repository provides persistence for documents.
type Repository interface {
	Create(ctx context.Context, d *Document) error
	Get(ctx context.Context, id string) (*Document, error)
	ListByProject(ctx context.Context, projectID string) ([]Document, error)
	UpdateContent(ctx context.Context, id, content string) (*Document, error)
	Delete(ctx context.Context, id string) error
}

// Store is the key-addressed object store holding the raw file bytes.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
}

// Extractor derives plain text from uploaded bytes. A nil result means the
// file type carries no extractable text.
type Extractor interface {
	Extract(mimeType string, data []byte) *string
}

// UserSyncer bootstraps the calling user before writes that reference it.
type UserSyncer interface {
	Sync(ctx context.Context) (*user.User, error)
}

// Views invalidates cached list views after mutations.
type Views interface {
	Invalidate(ctx context.Context, keys ...string) error
}
