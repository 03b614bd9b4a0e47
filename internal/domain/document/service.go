package document

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

// Service handles document ingestion and lookup.
type Service struct {
	repo      Repository
	store     Store
	extractor Extractor
	users     UserSyncer
	views     Views
	logger    *slog.Logger
}

// NewService creates a new document service.
func NewService(repo Repository, store Store, extractor Extractor, users UserSyncer, views Views, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		store:     store,
		extractor: extractor,
		users:     users,
		views:     views,
		logger:    logger,
	}
}

// UploadRequest carries one uploaded file.
type UploadRequest struct {
	ProjectID string
	Name      string
	Type      string // MIME type as declared by the uploader
	Data      []byte
}

// Upload stores the file bytes, extracts text content where possible, and
// persists the document row. The blob write and the row insert are two
// sequential steps with no transactional link.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (*Document, error) {
	id, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.ProjectID) == "" || len(req.Data) == 0 {
		return nil, ErrInvalidInput
	}

	if _, err := s.users.Sync(ctx); err != nil {
		return nil, fmt.Errorf("syncing user: %w", err)
	}

	content := s.extractor.Extract(req.Type, req.Data)

	key := fmt.Sprintf("%s/%d-%s", id.UserID, time.Now().UnixMilli(), req.Name)
	url, err := s.store.Put(ctx, key, req.Data, req.Type)
	if err != nil {
		return nil, fmt.Errorf("storing file: %w", err)
	}

	now := time.Now()
	d := &Document{
		ID:         uuid.NewString(),
		ProjectID:  req.ProjectID,
		Name:       req.Name,
		Type:       req.Type,
		Size:       int64(len(req.Data)),
		URL:        url,
		Key:        key,
		Content:    content,
		UploadedBy: id.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("creating document: %w", err)
	}

	s.invalidate(ctx, "projects/"+req.ProjectID)
	return d, nil
}

// Get fetches a document by ID.
func (s *Service) Get(ctx context.Context, id string) (*Document, error) {
	if _, err := identity.Require(ctx); err != nil {
		return nil, err
	}

	d, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("getting document: %w", err)
	}
	return d, nil
}

// ListByProject returns a project's documents, newest first.
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]Document, error) {
	if _, err := identity.Require(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListByProject(ctx, projectID)
}

// UpdateContent replaces a document's extracted text content.
func (s *Service) UpdateContent(ctx context.Context, id, content string) (*Document, error) {
	if _, err := identity.Require(ctx); err != nil {
		return nil, err
	}

	d, err := s.repo.UpdateContent(ctx, id, content)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("updating document content: %w", err)
	}

	s.invalidate(ctx, "projects/"+d.ProjectID)
	return d, nil
}

// Delete removes a document row and best-effort removes the stored blob.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := identity.Require(ctx); err != nil {
		return err
	}

	d, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("loading document: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	if d.Key != "" {
		if err := s.store.Remove(ctx, d.Key); err != nil {
			s.logger.Warn("orphaned blob left in object store", "key", d.Key, "error", err)
		}
	}

	s.invalidate(ctx, "projects/"+d.ProjectID)
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
