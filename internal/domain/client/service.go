package client

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

// Service handles client operations.
type Service struct {
	repo   Repository
	users  UserSyncer
	views  Views
	logger *slog.Logger
}

// NewService creates a new client service.
func NewService(repo Repository, users UserSyncer, views Views, logger *slog.Logger) *Service {
	return &Service{repo: repo, users: users, views: views, logger: logger}
}

// CreateRequest defines client creation inputs.
type CreateRequest struct {
	Name      string
	Email     string
	Phone     string
	Company   string
	Website   string
	AvatarURL string
	Status    Status
	Metadata  *Metadata
	Settings  *Settings
}

// UpdateRequest defines a partial client update. Nil fields are untouched.
type UpdateRequest struct {
	Name      *string
	Email     *string
	Phone     *string
	Company   *string
	Website   *string
	AvatarURL *string
	Status    *Status
	Metadata  *Metadata
	Settings  *Settings
}

// Create creates a new client owned by the caller.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Client, error) {
	id, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}
	if !ValidStatus(status) {
		return nil, ErrInvalidInput
	}

	// The user row must exist before the created_by reference is written.
	if _, err := s.users.Sync(ctx); err != nil {
		return nil, fmt.Errorf("syncing user: %w", err)
	}

	now := time.Now()
	c := &Client{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Website:   req.Website,
		AvatarURL: req.AvatarURL,
		Status:    status,
		Metadata:  req.Metadata,
		Settings:  req.Settings,
		CreatedBy: id.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	s.invalidate(ctx, "clients")
	return c, nil
}

// Get fetches a client by ID.
func (s *Service) Get(ctx context.Context, id string) (*Client, error) {
	if _, err := identity.Require(ctx); err != nil {
		return nil, err
	}

	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("getting client: %w", err)
	}
	return c, nil
}

// List returns all clients, newest first.
func (s *Service) List(ctx context.Context) ([]Client, error) {
	if _, err := identity.Require(ctx); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// Update applies a partial update to a client.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Client, error) {
	if _, err := identity.Require(ctx); err != nil {
		return nil, err
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("loading client: %w", err)
	}

	updated := *current
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrInvalidInput
		}
		updated.Name = *req.Name
	}
	if req.Email != nil {
		updated.Email = *req.Email
	}
	if req.Phone != nil {
		updated.Phone = *req.Phone
	}
	if req.Company != nil {
		updated.Company = *req.Company
	}
	if req.Website != nil {
		updated.Website = *req.Website
	}
	if req.AvatarURL != nil {
		updated.AvatarURL = *req.AvatarURL
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return nil, ErrInvalidInput
		}
		updated.Status = *req.Status
	}
	if req.Metadata != nil {
		updated.Metadata = req.Metadata
	}
	if req.Settings != nil {
		updated.Settings = req.Settings
	}
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating client: %w", err)
	}

	s.invalidate(ctx, "clients", "clients/"+id)
	return &updated, nil
}

// Delete removes a client. Its projects, tasks, and documents go with it.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := identity.Require(ctx); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("deleting client: %w", err)
	}

	s.invalidate(ctx, "clients")
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
