package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atelierhq/atelier/internal/identity"
	"github.com/atelierhq/atelier/internal/repository"
)

// Service assembles project context and forwards questions to the
// generative-text service. It is stateless per call; history lives in an
// external store.
type Service struct {
	projects  ProjectRepository
	clients   ClientRepository
	documents DocumentRepository
	model     Model
	history   History
	logger    *slog.Logger
}

// NewService creates a new assistant service. history may be nil.
func NewService(
	projects ProjectRepository,
	clients ClientRepository,
	documents DocumentRepository,
	model Model,
	history History,
	logger *slog.Logger,
) *Service {
	return &Service{
		projects:  projects,
		clients:   clients,
		documents: documents,
		model:     model,
		history:   history,
		logger:    logger,
	}
}

// Ask answers a free-text question about a project. The project and its
// client are loaded before any model call; a missing project fails fast.
func (s *Service) Ask(ctx context.Context, projectID, question string) (*Answer, error) {
	if _, err := identity.Require(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(question) == "" {
		return nil, ErrInvalidInput
	}

	proj, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	cl, err := s.clients.Get(ctx, proj.ClientID)
	if err != nil {
		return nil, fmt.Errorf("loading client: %w", err)
	}

	docs, err := s.documents.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}

	prompt := buildPrompt(buildContext(proj, cl, docs), question)

	answer, err := s.model.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelFailure, err)
	}

	if s.history != nil {
		ex := Exchange{Question: question, Answer: answer, AskedAt: time.Now()}
		if err := s.history.Append(ctx, projectID, ex); err != nil {
			s.logger.Warn("recording assistant history failed", "project_id", projectID, "error", err)
		}
	}

	return &Answer{Answer: answer, ProjectName: proj.Name}, nil
}

// History returns the stored exchanges for a project, oldest first.
func (s *Service) History(ctx context.Context, projectID string) ([]Exchange, error) {
	if _, err := identity.Require(ctx); err != nil {
		return nil, err
	}
	if s.history == nil {
		return nil, nil
	}
	return s.history.List(ctx, projectID)
}
