package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/atelierhq/atelier/internal/domain/document"
	"github.com/atelierhq/atelier/internal/repository"
)

// DocumentRepository implements document.Repository for SQLite
type DocumentRepository struct {
	db *DB
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts a new document row
func (r *DocumentRepository) Create(ctx context.Context, d *document.Document) error {
	query := `
		INSERT INTO documents (
			id, project_id, name, type, size, url, key, content,
			uploaded_by, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.ProjectID,
		d.Name,
		d.Type,
		d.Size,
		d.URL,
		d.Key,
		d.Content,
		d.UploadedBy,
		d.CreatedAt,
		d.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

// Get retrieves a document by ID
func (r *DocumentRepository) Get(ctx context.Context, id string) (*document.Document, error) {
	row := r.db.QueryRowContext(ctx, selectDocument+` WHERE id = ?`, id)
	d, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return d, nil
}

// ListByProject returns a project's documents, newest first
func (r *DocumentRepository) ListByProject(ctx context.Context, projectID string) ([]document.Document, error) {
	query := selectDocument + ` WHERE project_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var documents []document.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, *d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}

	return documents, nil
}

// UpdateContent replaces a document's extracted text and returns the
// updated row.
func (r *DocumentRepository) UpdateContent(ctx context.Context, id, content string) (*document.Document, error) {
	query := `UPDATE documents SET content = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, content, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update document content: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, repository.ErrNotFound
	}

	return r.Get(ctx, id)
}

// Delete removes a document row. The object-store blob is the caller's
// problem.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

const selectDocument = `
	SELECT id, project_id, name, type, size, url, key, content,
	       uploaded_by, created_at, updated_at
	FROM documents`

func scanDocument(row rowScanner) (*document.Document, error) {
	var d document.Document
	var content sql.NullString
	err := row.Scan(
		&d.ID,
		&d.ProjectID,
		&d.Name,
		&d.Type,
		&d.Size,
		&d.URL,
		&d.Key,
		&content,
		&d.UploadedBy,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if content.Valid {
		s := content.String
		d.Content = &s
	}

	return &d, nil
}
