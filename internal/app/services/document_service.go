package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/apperrors"
	"github.com/willy903/backintern/internal/pkg/filestorage"
	"github.com/willy903/backintern/internal/pkg/logger"
)

// DocumentRepository is the data access surface the document service needs.
type DocumentRepository interface {
	Create(ctx context.Context, document *models.Document) error
	GetByID(ctx context.Context, id models.DocumentID) (*models.Document, error)
	GetByEntity(ctx context.Context, ref models.EntityRef) ([]*models.Document, error)
	Delete(ctx context.Context, id models.DocumentID) error
}

// FileStore abstracts where document bytes live.
type FileStore interface {
	Save(storedName string, content io.Reader) (int64, error)
	Open(storedName string) (io.ReadCloser, error)
	Remove(storedName string) error
}

// DocumentService defines the interface for document attachment operations
type DocumentService interface {
	Upload(ctx context.Context, document *models.Document, content io.Reader) error
	GetByID(ctx context.Context, id models.DocumentID) (*models.Document, error)
	GetByEntity(ctx context.Context, ref models.EntityRef) ([]*models.Document, error)
	Download(ctx context.Context, id models.DocumentID) (*models.Document, io.ReadCloser, error)
	Delete(ctx context.Context, id models.DocumentID) error
}

type documentServiceImpl struct {
	documentRepo DocumentRepository
	store        FileStore
}

// NewDocumentService creates a new document service instance
func NewDocumentService(documentRepo DocumentRepository, store FileStore) DocumentService {
	return &documentServiceImpl{
		documentRepo: documentRepo,
		store:        store,
	}
}

// Upload stores the file bytes first, then the metadata row. When the row
// insert fails the stored file is removed again.
func (s *documentServiceImpl) Upload(ctx context.Context, document *models.Document, content io.Reader) error {
	document.FileName = strings.TrimSpace(document.FileName)
	if document.FileName == "" {
		return fmt.Errorf("%w: file name is required", apperrors.ErrValidationFailed)
	}
	if document.Entity.IsZero() {
		return fmt.Errorf("%w: document target is required", apperrors.ErrValidationFailed)
	}

	document.StoredName = filestorage.GenerateStoredName(document.FileName)
	written, err := s.store.Save(document.StoredName, content)
	if err != nil {
		return err
	}
	document.SizeBytes = written

	if err := s.documentRepo.Create(ctx, document); err != nil {
		if removeErr := s.store.Remove(document.StoredName); removeErr != nil {
			logger.Error().Err(removeErr).Str("storedName", document.StoredName).
				Msg("Failed to remove orphaned stored file")
		}
		return err
	}

	return nil
}

func (s *documentServiceImpl) GetByID(ctx context.Context, id models.DocumentID) (*models.Document, error) {
	return s.documentRepo.GetByID(ctx, id)
}

func (s *documentServiceImpl) GetByEntity(ctx context.Context, ref models.EntityRef) ([]*models.Document, error) {
	return s.documentRepo.GetByEntity(ctx, ref)
}

// Download returns the document metadata and an open reader on its bytes.
// The caller owns the reader.
func (s *documentServiceImpl) Download(ctx context.Context, id models.DocumentID) (*models.Document, io.ReadCloser, error) {
	document, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	content, err := s.store.Open(document.StoredName)
	if err != nil {
		return nil, nil, err
	}

	return document, content, nil
}

// Delete removes the metadata row, then the stored file. A file that fails to
// delete is logged and left behind; the row is already gone.
func (s *documentServiceImpl) Delete(ctx context.Context, id models.DocumentID) error {
	document, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.store.Remove(document.StoredName); err != nil {
		logger.Error().Err(err).Str("storedName", document.StoredName).
			Msg("Failed to remove stored file for deleted document")
	}
	return nil
}
