package services

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/apperrors"
)

type memoryFileStore struct {
	files map[string][]byte
}

func newMemoryFileStore() *memoryFileStore {
	return &memoryFileStore{files: map[string][]byte{}}
}

func (m *memoryFileStore) Save(storedName string, content io.Reader) (int64, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return 0, err
	}
	m.files[storedName] = data
	return int64(len(data)), nil
}

func (m *memoryFileStore) Open(storedName string) (io.ReadCloser, error) {
	data, ok := m.files[storedName]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryFileStore) Remove(storedName string) error {
	delete(m.files, storedName)
	return nil
}

type fakeDocumentRepo struct {
	documents map[models.DocumentID]*models.Document
	nextID    models.DocumentID
	failNext  bool
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{documents: map[models.DocumentID]*models.Document{}, nextID: 1}
}

func (f *fakeDocumentRepo) Create(ctx context.Context, document *models.Document) error {
	if f.failNext {
		f.failNext = false
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "document target does not exist")
	}
	document.ID = f.nextID
	f.nextID++
	f.documents[document.ID] = document
	return nil
}

func (f *fakeDocumentRepo) GetByID(ctx context.Context, id models.DocumentID) (*models.Document, error) {
	document, ok := f.documents[id]
	if !ok {
		return nil, apperrors.ErrDocumentNotFound
	}
	return document, nil
}

func (f *fakeDocumentRepo) GetByEntity(ctx context.Context, ref models.EntityRef) ([]*models.Document, error) {
	var out []*models.Document
	for _, document := range f.documents {
		if document.Entity == ref {
			out = append(out, document)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) Delete(ctx context.Context, id models.DocumentID) error {
	if _, ok := f.documents[id]; !ok {
		return apperrors.ErrDocumentNotFound
	}
	delete(f.documents, id)
	return nil
}

func TestUploadStoresFileAndMetadata(t *testing.T) {
	ctx := context.Background()
	repo := newFakeDocumentRepo()
	store := newMemoryFileStore()
	service := NewDocumentService(repo, store)

	document := &models.Document{
		Entity:       models.InternRef(1),
		UploadedByID: 1,
		Kind:         models.DocRapport,
		FileName:     "rapport.pdf",
		ContentType:  "application/pdf",
	}
	require.NoError(t, service.Upload(ctx, document, bytes.NewReader([]byte("pdf bytes"))))

	assert.NotZero(t, document.ID)
	assert.NotEmpty(t, document.StoredName)
	assert.NotEqual(t, "rapport.pdf", document.StoredName)
	assert.Equal(t, int64(len("pdf bytes")), document.SizeBytes)
	assert.Contains(t, store.files, document.StoredName)
}

func TestUploadRemovesFileWhenMetadataFails(t *testing.T) {
	ctx := context.Background()
	repo := newFakeDocumentRepo()
	repo.failNext = true
	store := newMemoryFileStore()
	service := NewDocumentService(repo, store)

	document := &models.Document{
		Entity:       models.TaskRef(4),
		UploadedByID: 1,
		Kind:         models.DocAutre,
		FileName:     "notes.txt",
	}
	err := service.Upload(ctx, document, bytes.NewReader([]byte("text")))
	require.Error(t, err)
	assert.Empty(t, store.files)
}

func TestUploadRequiresTarget(t *testing.T) {
	ctx := context.Background()
	service := NewDocumentService(newFakeDocumentRepo(), newMemoryFileStore())

	document := &models.Document{
		UploadedByID: 1,
		Kind:         models.DocCV,
		FileName:     "cv.pdf",
	}
	err := service.Upload(ctx, document, bytes.NewReader(nil))
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDeleteRemovesStoredFile(t *testing.T) {
	ctx := context.Background()
	repo := newFakeDocumentRepo()
	store := newMemoryFileStore()
	service := NewDocumentService(repo, store)

	document := &models.Document{
		Entity:       models.ProjectRef(2),
		UploadedByID: 1,
		Kind:         models.DocConvention,
		FileName:     "convention.pdf",
	}
	require.NoError(t, service.Upload(ctx, document, bytes.NewReader([]byte("x"))))
	require.NoError(t, service.Delete(ctx, document.ID))

	assert.Empty(t, store.files)
	_, err := repo.GetByID(ctx, document.ID)
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
}
