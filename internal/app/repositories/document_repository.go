package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/apperrors"
	"github.com/willy903/backintern/internal/pkg/dberrors"
)

// DocumentRepository handles database operations for document attachments.
// The polymorphic target is stored as (entity_type, entity_id) but only ever
// crosses the repository boundary as a models.EntityRef.
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{
		db: db,
	}
}

// referentTable maps an entity kind to the table an existence check hits.
func referentTable(kind models.EntityType) (string, error) {
	switch kind {
	case models.EntityIntern:
		return "interns", nil
	case models.EntityProject:
		return "projects", nil
	case models.EntityTask:
		return "tasks", nil
	default:
		return "", fmt.Errorf("%w: entity type %q", apperrors.ErrInvalidEnumValue, kind)
	}
}

// checkReferentExists validates the polymorphic target row. The schema cannot
// express this foreign key, so it is enforced here before every insert.
func (r *DocumentRepository) checkReferentExists(ctx context.Context, ref models.EntityRef) error {
	table, err := referentTable(ref.Kind())
	if err != nil {
		return err
	}

	var exists bool
	err = r.db.QueryRow(ctx,
		fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)`, table),
		ref.RawID()).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking referent existence: %w", err)
	}

	if !exists {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("document target %s does not exist", ref))
	}

	return nil
}

// Create inserts a document row after validating its target.
func (r *DocumentRepository) Create(ctx context.Context, document *models.Document) error {
	if document.Entity.IsZero() {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "document target is required")
	}
	if !document.Kind.Valid() {
		return fmt.Errorf("%w: document kind %q", apperrors.ErrInvalidEnumValue, document.Kind)
	}
	if err := r.checkReferentExists(ctx, document.Entity); err != nil {
		return err
	}

	query := `
		INSERT INTO documents (entity_type, entity_id, uploaded_by_id, kind, file_name,
			stored_name, content_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, uploaded_at
	`

	err := r.db.QueryRow(ctx, query,
		document.Entity.Kind(), document.Entity.RawID(), document.UploadedByID, document.Kind,
		document.FileName, document.StoredName, document.ContentType, document.SizeBytes).
		Scan(&document.ID, &document.UploadedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating document: %w", err)
	}

	return nil
}

func scanDocument(row pgx.Row) (*models.Document, error) {
	var (
		document models.Document
		kind     models.EntityType
		rawID    int64
	)
	err := row.Scan(
		&document.ID,
		&kind,
		&rawID,
		&document.UploadedByID,
		&document.Kind,
		&document.FileName,
		&document.StoredName,
		&document.ContentType,
		&document.SizeBytes,
		&document.UploadedAt,
	)
	if err != nil {
		return nil, err
	}

	ref, err := models.ParseEntityRef(kind, rawID)
	if err != nil {
		return nil, fmt.Errorf("corrupt document reference: %w", err)
	}
	document.Entity = ref

	return &document, nil
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id models.DocumentID) (*models.Document, error) {
	document, err := scanDocument(r.db.QueryRow(ctx, `
		SELECT id, entity_type, entity_id, uploaded_by_id, kind, file_name,
			stored_name, content_type, size_bytes, uploaded_at
		FROM documents
		WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("error retrieving document: %w", err)
	}

	return document, nil
}

// GetByEntity retrieves all documents attached to an entity.
func (r *DocumentRepository) GetByEntity(ctx context.Context, ref models.EntityRef) ([]*models.Document, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, entity_type, entity_id, uploaded_by_id, kind, file_name,
			stored_name, content_type, size_bytes, uploaded_at
		FROM documents
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY uploaded_at DESC`, ref.Kind(), ref.RawID())
	if err != nil {
		return nil, fmt.Errorf("error querying documents: %w", err)
	}
	defer rows.Close()

	var documents []*models.Document
	for rows.Next() {
		document, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning document: %w", err)
		}
		documents = append(documents, document)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return documents, nil
}

// Delete deletes a document by ID
func (r *DocumentRepository) Delete(ctx context.Context, id models.DocumentID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting document: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}

	return nil
}
