package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/internal/domain/project"
	"github.com/atelierhq/atelier/internal/domain/task"
	"github.com/atelierhq/atelier/internal/repository"
)

func TestProjectRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1")
	insertClient(t, db, "c1", "u1")

	repo := NewProjectRepository(db)
	now := time.Now()
	start := now.Add(24 * time.Hour)
	p := &project.Project{
		ID:          "p1",
		ClientID:    "c1",
		Name:        "Website Redesign",
		Description: "Full rebrand and relaunch",
		Status:      project.StatusPlanning,
		Priority:    project.PriorityHigh,
		Config: &project.Config{
			Budget: &project.Budget{Amount: 12000, Currency: "EUR", Type: "fixed"},
			Deliverables: []project.Deliverable{
				{Name: "Design system", Status: "pending"},
			},
		},
		StartDate: &start,
		CreatedBy: "u1",
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := repo.Create(ctx, p)
	require.NoError(t, err)

	loaded, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, p.Name, loaded.Name)
	require.Equal(t, p.Description, loaded.Description)
	require.Equal(t, project.PriorityHigh, loaded.Priority)
	require.NotNil(t, loaded.Config)
	require.NotNil(t, loaded.Config.Budget)
	require.Equal(t, 12000.0, loaded.Config.Budget.Amount)
	require.Len(t, loaded.Config.Deliverables, 1)
	require.NotNil(t, loaded.StartDate)
	require.Nil(t, loaded.EndDate)
}

func TestProjectRepository_CreateUnknownClient(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1")

	repo := NewProjectRepository(db)
	now := time.Now()
	err := repo.Create(ctx, &project.Project{
		ID:        "p1",
		ClientID:  "missing",
		Name:      "Orphaned",
		Status:    project.StatusPlanning,
		Priority:  project.PriorityMedium,
		CreatedBy: "u1",
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.Equal(t, repository.ErrForeignKeyViolation, err)
}

func TestProjectRepository_ListCounts(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1")
	insertClient(t, db, "c1", "u1")
	insertProject(t, db, "p1", "c1", "u1")

	taskRepo := NewTaskRepository(db)
	now := time.Now()
	tasks := []*task.Task{
		{ID: "t1", ProjectID: "p1", Title: "T1", Status: task.StatusTodo, Priority: project.PriorityMedium, Position: 1, CreatedAt: now, UpdatedAt: now},
		{ID: "t2", ProjectID: "p1", Title: "T2", Status: task.StatusDone, Priority: project.PriorityMedium, Position: 1, CreatedAt: now, UpdatedAt: now},
		{ID: "t3", ProjectID: "p1", Title: "T3", Status: task.StatusInProgress, Priority: project.PriorityMedium, Position: 1, CreatedAt: now, UpdatedAt: now},
	}
	for _, tk := range tasks {
		require.NoError(t, taskRepo.Create(ctx, tk))
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO documents (id, project_id, name, type, size, url, uploaded_by) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"d1", "p1", "brief.txt", "text/plain", 10, "http://example.com/brief.txt", "u1")
	require.NoError(t, err)

	summaries, err := NewProjectRepository(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	s := summaries[0]
	require.Equal(t, "p1", s.ID)
	require.Equal(t, "Acme Corp", s.ClientName)
	require.Equal(t, 3, s.TaskCount)
	require.Equal(t, 2, s.OpenTaskCount)
	require.Equal(t, 1, s.DocumentCount)
}

func TestProjectRepository_ListByClient(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1")
	insertClient(t, db, "c1", "u1")
	insertClient(t, db, "c2", "u1")
	insertProject(t, db, "p1", "c1", "u1")
	insertProject(t, db, "p2", "c2", "u1")

	repo := NewProjectRepository(db)
	projects, err := repo.ListByClient(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, "p1", projects[0].ID)
}

func TestProjectRepository_Update(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1")
	insertClient(t, db, "c1", "u1")
	insertProject(t, db, "p1", "c1", "u1")

	repo := NewProjectRepository(db)
	p, err := repo.Get(ctx, "p1")
	require.NoError(t, err)

	p.Status = project.StatusCompleted
	p.UpdatedAt = time.Now()
	require.NoError(t, repo.Update(ctx, p))

	loaded, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, project.StatusCompleted, loaded.Status)

	p.ID = "missing"
	err = repo.Update(ctx, p)
	require.Equal(t, repository.ErrNotFound, err)
}

func TestProjectRepository_DeleteCascades(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1")
	insertClient(t, db, "c1", "u1")
	insertProject(t, db, "p1", "c1", "u1")

	taskRepo := NewTaskRepository(db)
	now := time.Now()
	require.NoError(t, taskRepo.Create(ctx, &task.Task{
		ID: "t1", ProjectID: "p1", Title: "T1", Status: task.StatusTodo,
		Priority: project.PriorityMedium, Position: 1, CreatedAt: now, UpdatedAt: now,
	}))

	repo := NewProjectRepository(db)
	require.NoError(t, repo.Delete(ctx, "p1"))

	_, err := taskRepo.Get(ctx, "t1")
	require.Equal(t, repository.ErrNotFound, err)

	err = repo.Delete(ctx, "p1")
	require.Equal(t, repository.ErrNotFound, err)
}
