package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atelierhq/atelier/internal/domain/client"
	"github.com/atelierhq/atelier/internal/repository"
)

// ClientRepository implements client.Repository for SQLite
type ClientRepository struct {
	db *DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create inserts a new client row
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	metadata, err := marshalJSON(c.Metadata)
	if err != nil {
		return err
	}
	settings, err := marshalJSON(c.Settings)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO clients (
			id, name, email, phone, company, website, avatar_url,
			status, metadata, settings, created_by, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		nullString(c.Email),
		nullString(c.Phone),
		nullString(c.Company),
		nullString(c.Website),
		nullString(c.AvatarURL),
		c.Status,
		metadata,
		settings,
		c.CreatedBy,
		c.CreatedAt,
		c.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

// Get retrieves a client by ID
func (r *ClientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	query := `
		SELECT id, name, email, phone, company, website, avatar_url,
		       status, metadata, settings, created_by, created_at, updated_at
		FROM clients
		WHERE id = ?
	`

	row := r.db.QueryRowContext(ctx, query, id)
	c, err := scanClient(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return c, nil
}

// List returns all clients, newest first
func (r *ClientRepository) List(ctx context.Context) ([]client.Client, error) {
	query := `
		SELECT id, name, email, phone, company, website, avatar_url,
		       status, metadata, settings, created_by, created_at, updated_at
		FROM clients
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []client.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, *c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}

	return clients, nil
}

// Update rewrites a client row
func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	metadata, err := marshalJSON(c.Metadata)
	if err != nil {
		return err
	}
	settings, err := marshalJSON(c.Settings)
	if err != nil {
		return err
	}

	query := `
		UPDATE clients
		SET name = ?, email = ?, phone = ?, company = ?, website = ?,
		    avatar_url = ?, status = ?, metadata = ?, settings = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		c.Name,
		nullString(c.Email),
		nullString(c.Phone),
		nullString(c.Company),
		nullString(c.Website),
		nullString(c.AvatarURL),
		c.Status,
		metadata,
		settings,
		c.UpdatedAt,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
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

// Delete removes a client; projects, tasks, and documents cascade
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*client.Client, error) {
	var c client.Client
	var email, phone, company, website, avatarURL, metadata, settings sql.NullString
	err := row.Scan(
		&c.ID,
		&c.Name,
		&email,
		&phone,
		&company,
		&website,
		&avatarURL,
		&c.Status,
		&metadata,
		&settings,
		&c.CreatedBy,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Email = fromNullString(email)
	c.Phone = fromNullString(phone)
	c.Company = fromNullString(company)
	c.Website = fromNullString(website)
	c.AvatarURL = fromNullString(avatarURL)
	if err := unmarshalJSON(metadata, &c.Metadata); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(settings, &c.Settings); err != nil {
		return nil, err
	}

	return &c, nil
}
