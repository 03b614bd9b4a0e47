package user

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

// Service handles user bootstrap and lookup.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Sync ensures the calling identity has a user row, creating one on first
// authenticated access. The first user in the database becomes the owner.
func (s *Service) Sync(ctx context.Context) (*User, error) {
	id, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, id.UserID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}
	role := RoleMember
	if count == 0 {
		role = RoleOwner
	}

	name := strings.TrimSpace(id.Name)
	if name == "" {
		name = "User"
	}

	now := time.Now()
	u := &User{
		ID:        id.UserID,
		Email:     id.Email,
		Name:      name,
		AvatarURL: id.AvatarURL,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return u, nil
}

// Get fetches a user by ID.
func (s *Service) Get(ctx context.Context, userID string) (*User, error) {
	if _, err := identity.Require(ctx); err != nil {
		return nil, err
	}

	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}
