package project_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/internal/domain/project"
	"github.com/atelierhq/atelier/internal/identity"
	"github.com/atelierhq/atelier/internal/repository"
	"github.com/atelierhq/atelier/internal/repository/mocks"
)

type fakeViews struct {
	keys []string
}

func (f *fakeViews) Invalidate(ctx context.Context, keys ...string) error {
	f.keys = append(f.keys, keys...)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func authedCtx() context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{UserID: "u1"})
}

func TestProjectService_CreateDefaults(t *testing.T) {
	repo := &mocks.ProjectRepository{}
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	views := &fakeViews{}
	svc := project.NewService(repo, views, testLogger())

	created, err := svc.Create(authedCtx(), project.CreateRequest{ClientID: "c1", Name: "Website"})
	require.NoError(t, err)
	require.Equal(t, project.StatusPlanning, created.Status)
	require.Equal(t, project.PriorityMedium, created.Priority)
	require.Equal(t, "u1", created.CreatedBy)
	require.NotEmpty(t, created.ID)
	require.Equal(t, []string{"projects", "clients/c1"}, views.keys)
}

func TestProjectService_CreateUnknownClient(t *testing.T) {
	repo := &mocks.ProjectRepository{}
	repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrForeignKeyViolation)

	svc := project.NewService(repo, nil, testLogger())
	_, err := svc.Create(authedCtx(), project.CreateRequest{ClientID: "missing", Name: "Ghost"})
	require.ErrorIs(t, err, project.ErrClientNotFound)
}

func TestProjectService_CreateValidation(t *testing.T) {
	svc := project.NewService(&mocks.ProjectRepository{}, nil, testLogger())

	_, err := svc.Create(authedCtx(), project.CreateRequest{ClientID: "c1", Name: ""})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = svc.Create(authedCtx(), project.CreateRequest{ClientID: "", Name: "Website"})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = svc.Create(authedCtx(), project.CreateRequest{ClientID: "c1", Name: "Website", Priority: "mild"})
	require.ErrorIs(t, err, project.ErrInvalidInput)
}

func TestProjectService_RequiresIdentity(t *testing.T) {
	svc := project.NewService(&mocks.ProjectRepository{}, nil, testLogger())

	_, err := svc.Create(context.Background(), project.CreateRequest{ClientID: "c1", Name: "Website"})
	require.ErrorIs(t, err, identity.ErrUnauthorized)

	_, err = svc.List(context.Background())
	require.ErrorIs(t, err, identity.ErrUnauthorized)
}

func TestProjectService_UpdatePartial(t *testing.T) {
	current := &project.Project{ID: "p1", ClientID: "c1", Name: "Website", Status: project.StatusPlanning, Priority: project.PriorityMedium}

	repo := &mocks.ProjectRepository{}
	repo.On("Get", mock.Anything, "p1").Return(current, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	views := &fakeViews{}
	svc := project.NewService(repo, views, testLogger())

	status := project.StatusActive
	updated, err := svc.Update(authedCtx(), "p1", project.UpdateRequest{Status: &status})
	require.NoError(t, err)
	require.Equal(t, project.StatusActive, updated.Status)
	require.Equal(t, "Website", updated.Name)
	require.Equal(t, []string{"projects", "projects/p1", "clients/c1"}, views.keys)
}

func TestProjectService_DeleteInvalidatesClientViews(t *testing.T) {
	current := &project.Project{ID: "p1", ClientID: "c1", Name: "Website"}

	repo := &mocks.ProjectRepository{}
	repo.On("Get", mock.Anything, "p1").Return(current, nil)
	repo.On("Delete", mock.Anything, "p1").Return(nil)

	views := &fakeViews{}
	svc := project.NewService(repo, views, testLogger())

	require.NoError(t, svc.Delete(authedCtx(), "p1"))
	require.Contains(t, views.keys, "projects")
	require.Contains(t, views.keys, "clients/c1")
}

func TestProjectService_DeleteNotFound(t *testing.T) {
	repo := &mocks.ProjectRepository{}
	repo.On("Get", mock.Anything, "missing").Return((*project.Project)(nil), repository.ErrNotFound)

	svc := project.NewService(repo, nil, testLogger())
	require.ErrorIs(t, svc.Delete(authedCtx(), "missing"), project.ErrProjectNotFound)
}
