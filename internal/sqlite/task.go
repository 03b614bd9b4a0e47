package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atelierhq/atelier/internal/domain/task"
	"github.com/atelierhq/atelier/internal/repository"
)

// TaskRepository implements task.Repository for SQLite
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new task row
func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	content, err := marshalJSON(t.Content)
	if err != nil {
		return err
	}
	tags, err := marshalJSON(t.Tags)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tasks (
			id, project_id, title, description, content, status, priority,
			category, tags, assignee_id, reporter_id, time_estimate, time_tracked,
			position, due_date, completed_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		t.Title,
		nullString(t.Description),
		content,
		t.Status,
		t.Priority,
		nullString(t.Category),
		tags,
		t.AssigneeID,
		t.ReporterID,
		t.TimeEstimate,
		t.TimeTracked,
		t.Position,
		t.DueDate,
		t.CompletedAt,
		t.CreatedAt,
		t.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// Get retrieves a task by ID
func (r *TaskRepository) Get(ctx context.Context, id string) (*task.Task, error) {
	row := r.db.QueryRowContext(ctx, selectTask+` WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

// List returns all tasks, newest first
func (r *TaskRepository) List(ctx context.Context) ([]task.Task, error) {
	return r.queryTasks(ctx, selectTask+` ORDER BY created_at DESC`)
}

// ListByProject returns a project's tasks in board order
func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]task.Task, error) {
	return r.queryTasks(ctx, selectTask+` WHERE project_id = ? ORDER BY position ASC, created_at ASC`, projectID)
}

// MaxPosition returns the highest position within a (project, status)
// column, or 0 when the column is empty.
func (r *TaskRepository) MaxPosition(ctx context.Context, projectID string, status task.Status) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(position), 0) FROM tasks WHERE project_id = ? AND status = ?`
	err := r.db.QueryRowContext(ctx, query, projectID, status).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to get max position: %w", err)
	}
	return max, nil
}

// Update rewrites a task row
func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	content, err := marshalJSON(t.Content)
	if err != nil {
		return err
	}
	tags, err := marshalJSON(t.Tags)
	if err != nil {
		return err
	}

	query := `
		UPDATE tasks
		SET title = ?, description = ?, content = ?, status = ?, priority = ?,
		    category = ?, tags = ?, assignee_id = ?, time_estimate = ?,
		    time_tracked = ?, position = ?, due_date = ?, completed_at = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		t.Title,
		nullString(t.Description),
		content,
		t.Status,
		t.Priority,
		nullString(t.Category),
		tags,
		t.AssigneeID,
		t.TimeEstimate,
		t.TimeTracked,
		t.Position,
		t.DueDate,
		t.CompletedAt,
		t.UpdatedAt,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
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

// Delete removes a task. Positions of remaining tasks are left untouched,
// gaps in a column's ordering are harmless.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
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

const selectTask = `
	SELECT id, project_id, title, description, content, status, priority,
	       category, tags, assignee_id, reporter_id, time_estimate, time_tracked,
	       position, due_date, completed_at, created_at, updated_at
	FROM tasks`

func (r *TaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]task.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

func scanTask(row rowScanner) (*task.Task, error) {
	var t task.Task
	var description, content, category, tags sql.NullString
	var assigneeID, reporterID sql.NullString
	var timeEstimate sql.NullInt64
	var dueDate, completedAt sql.NullTime
	err := row.Scan(
		&t.ID,
		&t.ProjectID,
		&t.Title,
		&description,
		&content,
		&t.Status,
		&t.Priority,
		&category,
		&tags,
		&assigneeID,
		&reporterID,
		&timeEstimate,
		&t.TimeTracked,
		&t.Position,
		&dueDate,
		&completedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Description = fromNullString(description)
	t.Category = fromNullString(category)
	if err := unmarshalJSON(content, &t.Content); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(tags, &t.Tags); err != nil {
		return nil, err
	}
	if assigneeID.Valid {
		s := assigneeID.String
		t.AssigneeID = &s
	}
	if reporterID.Valid {
		s := reporterID.String
		t.ReporterID = &s
	}
	if timeEstimate.Valid {
		t.TimeEstimate = int(timeEstimate.Int64)
	}
	if dueDate.Valid {
		d := dueDate.Time
		t.DueDate = &d
	}
	if completedAt.Valid {
		c := completedAt.Time
		t.CompletedAt = &c
	}

	return &t, nil
}
