package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atelierhq/atelier/internal/domain/user"
	"github.com/atelierhq/atelier/internal/repository"
)

// UserRepository implements user.Repository for SQLite
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user row
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	permissions, err := marshalJSON(u.Permissions)
	if err != nil {
		return err
	}
	preferences, err := marshalJSON(u.Preferences)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (id, email, name, avatar_url, role, permissions, preferences, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		u.ID,
		u.Email,
		nullString(u.Name),
		nullString(u.AvatarURL),
		u.Role,
		permissions,
		preferences,
		u.CreatedAt,
		u.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	query := `
		SELECT id, email, name, avatar_url, role, permissions, preferences, created_at, updated_at
		FROM users
		WHERE id = ?
	`

	var u user.User
	var name, avatarURL, permissions, preferences sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID,
		&u.Email,
		&name,
		&avatarURL,
		&u.Role,
		&permissions,
		&preferences,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u.Name = fromNullString(name)
	u.AvatarURL = fromNullString(avatarURL)
	if err := unmarshalJSON(permissions, &u.Permissions); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(preferences, &u.Preferences); err != nil {
		return nil, err
	}

	return &u, nil
}

// Count returns the total number of users
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
