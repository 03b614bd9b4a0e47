package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atelierhq/atelier/internal/domain/project"
	"github.com/atelierhq/atelier/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project row
func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	config, err := marshalJSON(p.Config)
	if err != nil {
		return err
	}
	metadata, err := marshalJSON(p.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO projects (
			id, client_id, name, description, status, priority,
			config, metadata, start_date, end_date, created_by, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.ClientID,
		p.Name,
		nullString(p.Description),
		p.Status,
		p.Priority,
		config,
		metadata,
		p.StartDate,
		p.EndDate,
		p.CreatedBy,
		p.CreatedAt,
		p.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `
		SELECT id, client_id, name, description, status, priority,
		       config, metadata, start_date, end_date, created_by, created_at, updated_at
		FROM projects
		WHERE id = ?
	`

	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// List returns all projects with client names and task/document counts,
// newest first
func (r *ProjectRepository) List(ctx context.Context) ([]project.Summary, error) {
	query := `
		SELECT
			p.id,
			p.client_id,
			c.name,
			p.name,
			p.description,
			p.status,
			p.priority,
			p.created_at,
			COUNT(DISTINCT t.id) as task_count,
			COUNT(DISTINCT CASE WHEN t.status != 'done' THEN t.id END) as open_task_count,
			COUNT(DISTINCT d.id) as document_count
		FROM projects p
		JOIN clients c ON c.id = p.client_id
		LEFT JOIN tasks t ON t.project_id = p.id
		LEFT JOIN documents d ON d.project_id = p.id
		GROUP BY p.id, p.client_id, c.name, p.name, p.description, p.status, p.priority, p.created_at
		ORDER BY p.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var summaries []project.Summary
	for rows.Next() {
		var s project.Summary
		var description sql.NullString
		err := rows.Scan(
			&s.ID,
			&s.ClientID,
			&s.ClientName,
			&s.Name,
			&description,
			&s.Status,
			&s.Priority,
			&s.CreatedAt,
			&s.TaskCount,
			&s.OpenTaskCount,
			&s.DocumentCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project summary: %w", err)
		}
		s.Description = fromNullString(description)
		summaries = append(summaries, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return summaries, nil
}

// ListByClient returns a client's projects, newest first
func (r *ProjectRepository) ListByClient(ctx context.Context, clientID string) ([]project.Project, error) {
	query := `
		SELECT id, client_id, name, description, status, priority,
		       config, metadata, start_date, end_date, created_by, created_at, updated_at
		FROM projects
		WHERE client_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list client projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

// Update rewrites a project row
func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	config, err := marshalJSON(p.Config)
	if err != nil {
		return err
	}
	metadata, err := marshalJSON(p.Metadata)
	if err != nil {
		return err
	}

	query := `
		UPDATE projects
		SET name = ?, description = ?, status = ?, priority = ?,
		    config = ?, metadata = ?, start_date = ?, end_date = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		p.Name,
		nullString(p.Description),
		p.Status,
		p.Priority,
		config,
		metadata,
		p.StartDate,
		p.EndDate,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
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

// Delete removes a project; tasks and documents cascade
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
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

func scanProject(row rowScanner) (*project.Project, error) {
	var p project.Project
	var description, config, metadata sql.NullString
	var startDate, endDate sql.NullTime
	err := row.Scan(
		&p.ID,
		&p.ClientID,
		&p.Name,
		&description,
		&p.Status,
		&p.Priority,
		&config,
		&metadata,
		&startDate,
		&endDate,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Description = fromNullString(description)
	if err := unmarshalJSON(config, &p.Config); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(metadata, &p.Metadata); err != nil {
		return nil, err
	}
	if startDate.Valid {
		t := startDate.Time
		p.StartDate = &t
	}
	if endDate.Valid {
		t := endDate.Time
		p.EndDate = &t
	}

	return &p, nil
}
