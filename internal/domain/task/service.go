package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atelierhq/atelier/internal/domain/project"
	"github.com/atelierhq/atelier/internal/identity"
	"github.com/atelierhq/atelier/internal/repository"
	"github.com/google/uuid"
)

// Service handles task operations.
type Service struct {
	repo   Repository
	views  Views
	logger *slog.Logger
}

// NewService creates a new task service.
func NewService(repo Repository, views Views, logger *slog.Logger) *Service {
	return &Service{repo: repo, views: views, logger: logger}
}

// CreateRequest defines task creation inputs.
type CreateRequest struct {
	ProjectID    string
	Title        string
	Description  string
	Content      *Content
	Status       Status
	Priority     project.Priority
	Category     string
	Tags         []string
	AssigneeID   *string
	TimeEstimate int
	DueDate      *time.Time
}

// UpdateRequest defines a partial task update. Nil fields are untouched.
type UpdateRequest struct {
	Title        *string
	Description  *string
	Content      *Content
	Status       *Status
	Priority     *project.Priority
	Category     *string
	Tags         []string
	AssigneeID   *string
	TimeEstimate *int
	TimeTracked  *int
	DueDate      *time.Time
	CompletedAt  *time.Time
}

// MoveRequest moves a task to a new column. The caller supplies the
// position; siblings are not re-indexed.
type MoveRequest struct {
	ID       string
	Status   Status
	Position int
}

// Create creates a new task at the end of its column.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Task, error) {
	id, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.ProjectID) == "" {
		return nil, ErrInvalidInput
	}

	status := req.Status
	if status == "" {
		status = StatusTodo
	}
	priority := req.Priority
	if priority == "" {
		priority = project.PriorityMedium
	}
	if !ValidStatus(status) || !project.ValidPriority(priority) {
		return nil, ErrInvalidInput
	}

	maxPos, err := s.repo.MaxPosition(ctx, req.ProjectID, status)
	if err != nil {
		return nil, fmt.Errorf("finding column position: %w", err)
	}

	reporterID := id.UserID
	now := time.Now()
	t := &Task{
		ID:           uuid.NewString(),
		ProjectID:    req.ProjectID,
		Title:        req.Title,
		Description:  req.Description,
		Content:      req.Content,
		Status:       status,
		Priority:     priority,
		Category:     req.Category,
		Tags:         req.Tags,
		AssigneeID:   req.AssigneeID,
		ReporterID:   &reporterID,
		TimeEstimate: req.TimeEstimate,
		Position:     maxPos + 1,
		DueDate:      req.DueDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("creating task: %w", err)
	}

	s.invalidate(ctx, "tasks", "projects/"+req.ProjectID)
	return t, nil
}

// Get fetches a task by ID.
func (s *Service) Get(ctx context.Context, id string) (*Task, error) {
	if _, err := identity.Require(ctx); err != nil {
		return nil, err
	}

	t, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return t, nil
}

// List returns all tasks, newest first.
func (s *Service) List(ctx context.Context) ([]Task, error) {
	if _, err := identity.Require(ctx); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// ListByProject returns a project's tasks ordered by position.
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]Task, error) {
	if _, err := identity.Require(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListByProject(ctx, projectID)
}

// Update applies a partial update to a task.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Task, error) {
	if _, err := identity.Require(ctx); err != nil {
		return nil, err
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("loading task: %w", err)
	}

	updated := *current
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrInvalidInput
		}
		updated.Title = *req.Title
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Content != nil {
		updated.Content = req.Content
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return nil, ErrInvalidInput
		}
		updated.Status = *req.Status
	}
	if req.Priority != nil {
		if !project.ValidPriority(*req.Priority) {
			return nil, ErrInvalidInput
		}
		updated.Priority = *req.Priority
	}
	if req.Category != nil {
		updated.Category = *req.Category
	}
	if req.Tags != nil {
		updated.Tags = req.Tags
	}
	if req.AssigneeID != nil {
		updated.AssigneeID = req.AssigneeID
	}
	if req.TimeEstimate != nil {
		updated.TimeEstimate = *req.TimeEstimate
	}
	if req.TimeTracked != nil {
		updated.TimeTracked = *req.TimeTracked
	}
	if req.DueDate != nil {
		updated.DueDate = req.DueDate
	}
	if req.CompletedAt != nil {
		updated.CompletedAt = req.CompletedAt
	}
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}

	s.invalidate(ctx, "tasks", "projects/"+updated.ProjectID)
	return &updated, nil
}

// Move places a task in a new column at an explicit position. Concurrent
// moves of the same task are last-write-wins.
func (s *Service) Move(ctx context.Context, req MoveRequest) (*Task, error) {
	if _, err := identity.Require(ctx); err != nil {
		return nil, err
	}
	if !ValidStatus(req.Status) {
		return nil, ErrInvalidInput
	}

	current, err := s.repo.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("loading task: %w", err)
	}

	updated := *current
	updated.Status = req.Status
	updated.Position = req.Position
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("moving task: %w", err)
	}

	s.invalidate(ctx, "tasks", "projects/"+updated.ProjectID)
	return &updated, nil
}

// Delete removes a task. Column positions are not compacted; ordering is
// relative, so gaps are harmless.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := identity.Require(ctx); err != nil {
		return err
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("loading task: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	s.invalidate(ctx, "tasks", "projects/"+current.ProjectID)
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
