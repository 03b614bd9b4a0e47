package mocks

import (
	"context"

	"github.com/atelierhq/atelier/internal/domain/client"
	"github.com/atelierhq/atelier/internal/domain/document"
	"github.com/atelierhq/atelier/internal/domain/project"
	"github.com/atelierhq/atelier/internal/domain/task"
	"github.com/atelierhq/atelier/internal/domain/user"
	"github.com/stretchr/testify/mock"
)

// UserRepository is a testify mock satisfying user.Repository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// ClientRepository is a testify mock satisfying client.Repository.
type ClientRepository struct {
	mock.Mock
}

func (m *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ClientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*client.Client); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) List(ctx context.Context) ([]client.Client, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]client.Client); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ClientRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ProjectRepository is a testify mock satisfying project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*project.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Summary, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) ListByClient(ctx context.Context, clientID string) ([]project.Project, error) {
	args := m.Called(ctx, clientID)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TaskRepository is a testify mock satisfying task.Repository.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TaskRepository) Get(ctx context.Context, id string) (*task.Task, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) List(ctx context.Context) ([]task.Task, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]task.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]task.Task, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]task.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TaskRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TaskRepository) MaxPosition(ctx context.Context, projectID string, status task.Status) (int, error) {
	args := m.Called(ctx, projectID, status)
	return args.Int(0), args.Error(1)
}

// DocumentRepository is a testify mock satisfying document.Repository.
type DocumentRepository struct {
	mock.Mock
}

func (m *DocumentRepository) Create(ctx context.Context, d *document.Document) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *DocumentRepository) Get(ctx context.Context, id string) (*document.Document, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*document.Document); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DocumentRepository) ListByProject(ctx context.Context, projectID string) ([]document.Document, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]document.Document); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DocumentRepository) UpdateContent(ctx context.Context, id, content string) (*document.Document, error) {
	args := m.Called(ctx, id, content)
	if d, ok := args.Get(0).(*document.Document); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DocumentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
