package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/internal/domain/document"
	"github.com/atelierhq/atelier/internal/repository"
)

func newDocument(id, projectID string, content *string) *document.Document {
	now := time.Now()
	return &document.Document{
		ID:         id,
		ProjectID:  projectID,
		Name:       "brief.txt",
		Type:       "text/plain",
		Size:       42,
		URL:        "http://storage.example.com/docs/" + id,
		Key:        "u1/1724800000000-brief.txt",
		Content:    content,
		UploadedBy: "u1",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestDocumentRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1")
	insertClient(t, db, "c1", "u1")
	insertProject(t, db, "p1", "c1", "u1")

	repo := NewDocumentRepository(db)
	content := "Project requirements go here"
	d := newDocument("d1", "p1", &content)
	require.NoError(t, repo.Create(ctx, d))

	loaded, err := repo.Get(ctx, "d1")
	require.NoError(t, err)
	require.Equal(t, d.Name, loaded.Name)
	require.Equal(t, d.URL, loaded.URL)
	require.Equal(t, d.Key, loaded.Key)
	require.NotNil(t, loaded.Content)
	require.Equal(t, content, *loaded.Content)
}

func TestDocumentRepository_NoExtractedContent(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1")
	insertClient(t, db, "c1", "u1")
	insertProject(t, db, "p1", "c1", "u1")

	repo := NewDocumentRepository(db)
	require.NoError(t, repo.Create(ctx, newDocument("d1", "p1", nil)))

	loaded, err := repo.Get(ctx, "d1")
	require.NoError(t, err)
	require.Nil(t, loaded.Content)
}

func TestDocumentRepository_CreateUnknownProject(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1")

	repo := NewDocumentRepository(db)
	err := repo.Create(ctx, newDocument("d1", "missing", nil))
	require.Equal(t, repository.ErrForeignKeyViolation, err)
}

func TestDocumentRepository_ListByProject(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1")
	insertClient(t, db, "c1", "u1")
	insertProject(t, db, "p1", "c1", "u1")
	insertProject(t, db, "p2", "c1", "u1")

	repo := NewDocumentRepository(db)
	require.NoError(t, repo.Create(ctx, newDocument("d1", "p1", nil)))
	require.NoError(t, repo.Create(ctx, newDocument("d2", "p1", nil)))
	require.NoError(t, repo.Create(ctx, newDocument("d3", "p2", nil)))

	docs, err := repo.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
}

func TestDocumentRepository_UpdateContent(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1")
	insertClient(t, db, "c1", "u1")
	insertProject(t, db, "p1", "c1", "u1")

	repo := NewDocumentRepository(db)
	require.NoError(t, repo.Create(ctx, newDocument("d1", "p1", nil)))

	updated, err := repo.UpdateContent(ctx, "d1", "Edited summary text")
	require.NoError(t, err)
	require.NotNil(t, updated.Content)
	require.Equal(t, "Edited summary text", *updated.Content)

	_, err = repo.UpdateContent(ctx, "missing", "nope")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestDocumentRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1")
	insertClient(t, db, "c1", "u1")
	insertProject(t, db, "p1", "c1", "u1")

	repo := NewDocumentRepository(db)
	require.NoError(t, repo.Create(ctx, newDocument("d1", "p1", nil)))
	require.NoError(t, repo.Delete(ctx, "d1"))

	_, err := repo.Get(ctx, "d1")
	require.Equal(t, repository.ErrNotFound, err)

	err = repo.Delete(ctx, "d1")
	require.Equal(t, repository.ErrNotFound, err)
}
