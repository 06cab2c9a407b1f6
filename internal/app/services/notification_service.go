package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/apperrors"
)

// NotificationRepository is the data access surface the notification service needs.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByUserID(ctx context.Context, userID models.UserID, unreadOnly bool) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id models.NotificationID) error
	MarkAllRead(ctx context.Context, userID models.UserID) error
	Delete(ctx context.Context, id models.NotificationID) error
}

// NotificationService defines the interface for notification operations
type NotificationService interface {
	Send(ctx context.Context, notification *models.Notification) error
	GetByUser(ctx context.Context, userID models.UserID, unreadOnly bool) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id models.NotificationID) error
	MarkAllRead(ctx context.Context, userID models.UserID) error
	Delete(ctx context.Context, id models.NotificationID) error
}

type notificationServiceImpl struct {
	notificationRepo NotificationRepository
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(notificationRepo NotificationRepository) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
	}
}

func (s *notificationServiceImpl) Send(ctx context.Context, notification *models.Notification) error {
	notification.Title = strings.TrimSpace(notification.Title)
	if notification.Title == "" {
		return fmt.Errorf("%w: notification title is required", apperrors.ErrValidationFailed)
	}
	if notification.Type == "" {
		notification.Type = models.NotifSystem
	}
	if !notification.Type.Valid() {
		return fmt.Errorf("%w: notification type %q", apperrors.ErrInvalidEnumValue, notification.Type)
	}
	return s.notificationRepo.Create(ctx, notification)
}

func (s *notificationServiceImpl) GetByUser(ctx context.Context, userID models.UserID, unreadOnly bool) ([]*models.Notification, error) {
	return s.notificationRepo.GetByUserID(ctx, userID, unreadOnly)
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, id models.NotificationID) error {
	return s.notificationRepo.MarkRead(ctx, id)
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID models.UserID) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

func (s *notificationServiceImpl) Delete(ctx context.Context, id models.NotificationID) error {
	return s.notificationRepo.Delete(ctx, id)
}
