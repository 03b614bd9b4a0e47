package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atelierhq/atelier/internal/identity"
	"github.com/atelierhq/atelier/internal/repository"
	"github.com/google/uuid"
)

// Service handles project operations.
type Service struct {
	repo   Repository
	views  Views
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, views Views, logger *slog.Logger) *Service {
	return &Service{repo: repo, views: views, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	ClientID    string
	Name        string
	Description string
	Status      Status
	Priority    Priority
	Config      *Config
	Metadata    *Metadata
	StartDate   *time.Time
	EndDate     *time.Time
}

// UpdateRequest defines a partial project update. Nil fields are untouched.
type UpdateRequest struct {
	Name        *string
	Description *string
	Status      *Status
	Priority    *Priority
	Config      *Config
	Metadata    *Metadata
	StartDate   *time.Time
	EndDate     *time.Time
}

// Create creates a new project under a client.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	id, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.ClientID) == "" {
		return nil, ErrInvalidInput
	}

	status := req.Status
	if status == "" {
		status = StatusPlanning
	}
	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !ValidStatus(status) || !ValidPriority(priority) {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	p := &Project{
		ID:          uuid.NewString(),
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		Config:      req.Config,
		Metadata:    req.Metadata,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedBy:   id.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.invalidate(ctx, "projects", "clients/"+req.ClientID)
	return p, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	if _, err := identity.Require(ctx); err != nil {
		return nil, err
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return p, nil
}

// List returns project summaries, newest first.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	if _, err := identity.Require(ctx); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// ListByClient returns a client's projects, newest first.
func (s *Service) ListByClient(ctx context.Context, clientID string) ([]Project, error) {
	if _, err := identity.Require(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListByClient(ctx, clientID)
}

// Update applies a partial update to a project.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Project, error) {
	if _, err := identity.Require(ctx); err != nil {
		return nil, err
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	updated := *current
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrInvalidInput
		}
		updated.Name = *req.Name
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return nil, ErrInvalidInput
		}
		updated.Status = *req.Status
	}
	if req.Priority != nil {
		if !ValidPriority(*req.Priority) {
			return nil, ErrInvalidInput
		}
		updated.Priority = *req.Priority
	}
	if req.Config != nil {
		updated.Config = req.Config
	}
	if req.Metadata != nil {
		updated.Metadata = req.Metadata
	}
	if req.StartDate != nil {
		updated.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		updated.EndDate = req.EndDate
	}
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	s.invalidate(ctx, "projects", "projects/"+id, "clients/"+updated.ClientID)
	return &updated, nil
}

// Delete removes a project. Its tasks and documents go with it.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := identity.Require(ctx); err != nil {
		return err
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("loading project: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	s.invalidate(ctx, "projects", "clients/"+current.ClientID)
	return nil
}

func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if s.views == nil {
		return
	}
	if err := s.views.Invalidate(ctx, keys...); err != nil {
		s.logger.Warn("view invalidation failed", "keys", keys, "error", err)
	}
}
