package document_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/internal/domain/document"
	"github.com/atelierhq/atelier/internal/domain/user"
	"github.com/atelierhq/atelier/internal/identity"
	"github.com/atelierhq/atelier/internal/repository"
	"github.com/atelierhq/atelier/internal/repository/mocks"
)

// fakeStore records puts and removes in memory
type fakeStore struct {
	puts    map[string][]byte
	removes []string
	putErr  error
	rmErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{puts: map[string][]byte{}}
}

func (f *fakeStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	f.puts[key] = data
	return "http://storage.test/docs/" + key, nil
}

func (f *fakeStore) Remove(ctx context.Context, key string) error {
	f.removes = append(f.removes, key)
	return f.rmErr
}

// passthroughExtractor treats everything as plain text
type passthroughExtractor struct{}

func (passthroughExtractor) Extract(mimeType string, data []byte) *string {
	if !strings.HasPrefix(mimeType, "text/") {
		return nil
	}
	s := string(data)
	return &s
}

type fakeSyncer struct{}

func (fakeSyncer) Sync(ctx context.Context) (*user.User, error) {
	return &user.User{ID: "u1"}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func authedCtx() context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{UserID: "u1"})
}

func newService(repo *mocks.DocumentRepository, store *fakeStore) *document.Service {
	return document.NewService(repo, store, passthroughExtractor{}, fakeSyncer{}, nil, testLogger())
}

func TestUpload_TextFile(t *testing.T) {
	repo := &mocks.DocumentRepository{}
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	store := newFakeStore()
	svc := newService(repo, store)

	content := strings.Repeat("x", 5000)
	d, err := svc.Upload(authedCtx(), document.UploadRequest{
		ProjectID: "p1",
		Name:      "notes.txt",
		Type:      "text/plain",
		Data:      []byte(content),
	})
	require.NoError(t, err)

	// Extracted text is stored whole; truncation is the assistant's concern
	require.NotNil(t, d.Content)
	require.Len(t, *d.Content, 5000)
	require.Equal(t, int64(5000), d.Size)
	require.Equal(t, "u1", d.UploadedBy)

	// Keys are namespaced by uploader and carry the original name
	require.True(t, strings.HasPrefix(d.Key, "u1/"))
	require.True(t, strings.HasSuffix(d.Key, "-notes.txt"))
	require.Contains(t, store.puts, d.Key)
	require.Equal(t, "http://storage.test/docs/"+d.Key, d.URL)
}

func TestUpload_BinaryFileHasNoContent(t *testing.T) {
	repo := &mocks.DocumentRepository{}
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newService(repo, newFakeStore())
	d, err := svc.Upload(authedCtx(), document.UploadRequest{
		ProjectID: "p1",
		Name:      "logo.png",
		Type:      "image/png",
		Data:      []byte{0x89, 0x50},
	})
	require.NoError(t, err)
	require.Nil(t, d.Content)
}

func TestUpload_Validation(t *testing.T) {
	svc := newService(&mocks.DocumentRepository{}, newFakeStore())

	_, err := svc.Upload(authedCtx(), document.UploadRequest{ProjectID: "p1", Name: "", Type: "text/plain", Data: []byte("x")})
	require.ErrorIs(t, err, document.ErrInvalidInput)

	_, err = svc.Upload(authedCtx(), document.UploadRequest{ProjectID: "p1", Name: "a.txt", Type: "text/plain", Data: nil})
	require.ErrorIs(t, err, document.ErrInvalidInput)
}

func TestUpload_UnknownProject(t *testing.T) {
	repo := &mocks.DocumentRepository{}
	repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrForeignKeyViolation)

	svc := newService(repo, newFakeStore())
	_, err := svc.Upload(authedCtx(), document.UploadRequest{
		ProjectID: "missing", Name: "a.txt", Type: "text/plain", Data: []byte("x"),
	})
	require.ErrorIs(t, err, document.ErrProjectNotFound)
}

func TestUpload_StoreFailure(t *testing.T) {
	store := newFakeStore()
	store.putErr = errors.New("bucket unreachable")

	repo := &mocks.DocumentRepository{}
	svc := newService(repo, store)

	_, err := svc.Upload(authedCtx(), document.UploadRequest{
		ProjectID: "p1", Name: "a.txt", Type: "text/plain", Data: []byte("x"),
	})
	require.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpload_RequiresIdentity(t *testing.T) {
	svc := newService(&mocks.DocumentRepository{}, newFakeStore())

	_, err := svc.Upload(context.Background(), document.UploadRequest{
		ProjectID: "p1", Name: "a.txt", Type: "text/plain", Data: []byte("x"),
	})
	require.ErrorIs(t, err, identity.ErrUnauthorized)
}

func TestDelete_RemovesBlob(t *testing.T) {
	d := &document.Document{ID: "d1", ProjectID: "p1", Key: "u1/123-a.txt"}

	repo := &mocks.DocumentRepository{}
	repo.On("Get", mock.Anything, "d1").Return(d, nil)
	repo.On("Delete", mock.Anything, "d1").Return(nil)

	store := newFakeStore()
	svc := newService(repo, store)

	require.NoError(t, svc.Delete(authedCtx(), "d1"))
	require.Equal(t, []string{"u1/123-a.txt"}, store.removes)
}

func TestDelete_BlobFailureIsNonFatal(t *testing.T) {
	d := &document.Document{ID: "d1", ProjectID: "p1", Key: "u1/123-a.txt"}

	repo := &mocks.DocumentRepository{}
	repo.On("Get", mock.Anything, "d1").Return(d, nil)
	repo.On("Delete", mock.Anything, "d1").Return(nil)

	store := newFakeStore()
	store.rmErr = errors.New("object gone")
	svc := newService(repo, store)

	// The row delete wins; the blob is merely logged as orphaned
	require.NoError(t, svc.Delete(authedCtx(), "d1"))
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mocks.DocumentRepository{}
	repo.On("Get", mock.Anything, "missing").Return((*document.Document)(nil), repository.ErrNotFound)

	svc := newService(repo, newFakeStore())
	require.ErrorIs(t, svc.Delete(authedCtx(), "missing"), document.ErrDocumentNotFound)
}

func TestUpdateContent(t *testing.T) {
	updated := &document.Document{ID: "d1", ProjectID: "p1"}

	repo := &mocks.DocumentRepository{}
	repo.On("UpdateContent", mock.Anything, "d1", "new text").Return(updated, nil)

	svc := newService(repo, newFakeStore())
	got, err := svc.UpdateContent(authedCtx(), "d1", "new text")
	require.NoError(t, err)
	require.Equal(t, updated, got)
}
