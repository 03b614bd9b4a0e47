package assistant

import (
	"context"

	"github.com/atelierhq/atelier/internal/domain/client"
	"github.com/atelierhq/atelier/internal/domain/document"
	"github.com/atelierhq/atelier/internal/domain/project"
)

// ProjectRepository loads the project being asked about.
type ProjectRepository interface {
	Get(ctx context.Context, id string) (*project.Project, error)
}

// ClientRepository loads the project's owning client.
type ClientRepository interface {
	Get(ctx context.Context, id string) (*client.Client, error)
}

// DocumentRepository loads the project's documents for context.
type DocumentRepository interface {
	ListByProject(ctx context.Context, projectID string) ([]document.Document, error)
}

// Model is the external generative-text service: one prompt in, one
// completion out.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// History is the external per-project chat history store.
type History interface {
	Append(ctx context.Context, projectID string, ex Exchange) error
	List(ctx context.Context, projectID string) ([]Exchange, error)
}
