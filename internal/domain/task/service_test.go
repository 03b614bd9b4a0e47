package task_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/internal/domain/project"
	"github.com/atelierhq/atelier/internal/domain/task"
	"github.com/atelierhq/atelier/internal/identity"
	"github.com/atelierhq/atelier/internal/repository"
	"github.com/atelierhq/atelier/internal/repository/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func authedCtx(userID string) context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{
		UserID: userID,
		Email:  userID + "@example.com",
	})
}

func TestTaskService_CreateFirstInColumn(t *testing.T) {
	ctx := authedCtx("u1")

	repo := &mocks.TaskRepository{}
	repo.On("MaxPosition", ctx, "p1", task.StatusTodo).Return(0, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := task.NewService(repo, nil, testLogger())
	created, err := svc.Create(ctx, task.CreateRequest{ProjectID: "p1", Title: "First"})
	require.NoError(t, err)
	require.Equal(t, 1, created.Position)
	require.Equal(t, task.StatusTodo, created.Status)
	require.Equal(t, project.PriorityMedium, created.Priority)
	require.NotNil(t, created.ReporterID)
	require.Equal(t, "u1", *created.ReporterID)
	require.NotEmpty(t, created.ID)
}

func TestTaskService_CreateAppendsToColumn(t *testing.T) {
	ctx := authedCtx("u1")

	repo := &mocks.TaskRepository{}
	repo.On("MaxPosition", ctx, "p1", task.StatusInProgress).Return(4, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := task.NewService(repo, nil, testLogger())
	created, err := svc.Create(ctx, task.CreateRequest{
		ProjectID: "p1",
		Title:     "Next",
		Status:    task.StatusInProgress,
		Priority:  project.PriorityHigh,
	})
	require.NoError(t, err)
	require.Equal(t, 5, created.Position)
	require.Equal(t, task.StatusInProgress, created.Status)
}

func TestTaskService_CreateValidation(t *testing.T) {
	ctx := authedCtx("u1")
	svc := task.NewService(&mocks.TaskRepository{}, nil, testLogger())

	_, err := svc.Create(ctx, task.CreateRequest{ProjectID: "p1", Title: "  "})
	require.ErrorIs(t, err, task.ErrInvalidInput)

	_, err = svc.Create(ctx, task.CreateRequest{ProjectID: "", Title: "Valid"})
	require.ErrorIs(t, err, task.ErrInvalidInput)

	_, err = svc.Create(ctx, task.CreateRequest{ProjectID: "p1", Title: "Valid", Status: "shipped"})
	require.ErrorIs(t, err, task.ErrInvalidInput)
}

func TestTaskService_CreateUnknownProject(t *testing.T) {
	ctx := authedCtx("u1")

	repo := &mocks.TaskRepository{}
	repo.On("MaxPosition", ctx, "missing", task.StatusTodo).Return(0, nil)
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrForeignKeyViolation)

	svc := task.NewService(repo, nil, testLogger())
	_, err := svc.Create(ctx, task.CreateRequest{ProjectID: "missing", Title: "Orphan"})
	require.ErrorIs(t, err, task.ErrProjectNotFound)
}

func TestTaskService_RequiresIdentity(t *testing.T) {
	svc := task.NewService(&mocks.TaskRepository{}, nil, testLogger())

	_, err := svc.Create(context.Background(), task.CreateRequest{ProjectID: "p1", Title: "T"})
	require.ErrorIs(t, err, identity.ErrUnauthorized)

	_, err = svc.Move(context.Background(), task.MoveRequest{ID: "t1", Status: task.StatusDone, Position: 1})
	require.ErrorIs(t, err, identity.ErrUnauthorized)
}

func TestTaskService_Move(t *testing.T) {
	ctx := authedCtx("u1")

	current := &task.Task{ID: "t1", ProjectID: "p1", Title: "T", Status: task.StatusTodo, Position: 2}

	repo := &mocks.TaskRepository{}
	repo.On("Get", ctx, "t1").Return(current, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(updated *task.Task) bool {
		return updated.Status == task.StatusInReview && updated.Position == 1
	})).Return(nil)

	svc := task.NewService(repo, nil, testLogger())
	moved, err := svc.Move(ctx, task.MoveRequest{ID: "t1", Status: task.StatusInReview, Position: 1})
	require.NoError(t, err)
	require.Equal(t, task.StatusInReview, moved.Status)
	require.Equal(t, 1, moved.Position)
	repo.AssertExpectations(t)
}

func TestTaskService_MoveMissingTask(t *testing.T) {
	ctx := authedCtx("u1")

	repo := &mocks.TaskRepository{}
	repo.On("Get", ctx, "missing").Return((*task.Task)(nil), repository.ErrNotFound)

	svc := task.NewService(repo, nil, testLogger())
	_, err := svc.Move(ctx, task.MoveRequest{ID: "missing", Status: task.StatusDone, Position: 1})
	require.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestTaskService_MoveInvalidStatus(t *testing.T) {
	ctx := authedCtx("u1")

	svc := task.NewService(&mocks.TaskRepository{}, nil, testLogger())
	_, err := svc.Move(ctx, task.MoveRequest{ID: "t1", Status: "archived", Position: 1})
	require.ErrorIs(t, err, task.ErrInvalidInput)
}

func TestTaskService_UpdatePartial(t *testing.T) {
	ctx := authedCtx("u1")

	current := &task.Task{ID: "t1", ProjectID: "p1", Title: "Old", Description: "keep me", Status: task.StatusTodo, Position: 3}

	repo := &mocks.TaskRepository{}
	repo.On("Get", ctx, "t1").Return(current, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	title := "New"
	svc := task.NewService(repo, nil, testLogger())
	updated, err := svc.Update(ctx, "t1", task.UpdateRequest{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "New", updated.Title)
	require.Equal(t, "keep me", updated.Description)
	require.Equal(t, 3, updated.Position)
}

func TestTaskService_DeleteLeavesGap(t *testing.T) {
	ctx := authedCtx("u1")

	current := &task.Task{ID: "t1", ProjectID: "p1", Title: "T", Status: task.StatusTodo, Position: 1}

	repo := &mocks.TaskRepository{}
	repo.On("Get", ctx, "t1").Return(current, nil)
	repo.On("Delete", ctx, "t1").Return(nil)

	svc := task.NewService(repo, nil, testLogger())
	require.NoError(t, svc.Delete(ctx, "t1"))

	// No sibling re-indexing happens on delete
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}
