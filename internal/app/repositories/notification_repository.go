package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/apperrors"
	"github.com/willy903/backintern/internal/pkg/dberrors"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
	}
}

// Create inserts a notification addressed to one user.
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if !notification.Type.Valid() {
		return fmt.Errorf("%w: notification type %q", apperrors.ErrInvalidEnumValue, notification.Type)
	}

	var refType *models.EntityType
	var refID *int64
	if notification.Reference != nil && !notification.Reference.IsZero() {
		kind := notification.Reference.Kind()
		id := notification.Reference.RawID()
		refType, refID = &kind, &id
	}

	query := `
		INSERT INTO notifications (user_id, type, title, message, reference_type, reference_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_read, created_at
	`

	err := r.db.QueryRow(ctx, query,
		notification.UserID, notification.Type, notification.Title, notification.Message,
		refType, refID).
		Scan(&notification.ID, &notification.IsRead, &notification.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating notification: %w", err)
	}

	return nil
}

func scanNotification(row pgx.Row) (*models.Notification, error) {
	var (
		notification models.Notification
		refType      *models.EntityType
		refID        *int64
	)
	err := row.Scan(
		&notification.ID,
		&notification.UserID,
		&notification.Type,
		&notification.Title,
		&notification.Message,
		&refType,
		&refID,
		&notification.IsRead,
		&notification.ReadAt,
		&notification.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if refType != nil && refID != nil {
		ref, err := models.ParseEntityRef(*refType, *refID)
		if err != nil {
			return nil, fmt.Errorf("corrupt notification reference: %w", err)
		}
		notification.Reference = &ref
	}

	return &notification, nil
}

// GetByUserID retrieves a user's notifications, optionally only unread ones.
func (r *NotificationRepository) GetByUserID(ctx context.Context, userID models.UserID, unreadOnly bool) ([]*models.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, reference_type, reference_id,
			is_read, read_at, created_at
		FROM notifications
		WHERE user_id = $1`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning notification: %w", err)
		}
		notifications = append(notifications, notification)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}

// MarkRead marks a notification as read and stamps read_at. Already-read
// notifications keep their original timestamp.
func (r *NotificationRepository) MarkRead(ctx context.Context, id models.NotificationID) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE, read_at = COALESCE(read_at, CURRENT_TIMESTAMP)
		WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead marks all of a user's notifications as read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID models.UserID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE, read_at = COALESCE(read_at, CURRENT_TIMESTAMP)
		WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return fmt.Errorf("error marking notifications read: %w", err)
	}
	return nil
}

// Delete deletes a notification by ID
func (r *NotificationRepository) Delete(ctx context.Context, id models.NotificationID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting notification: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}

	return nil
}
