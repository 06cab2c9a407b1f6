package models

import "time"

// Notification defines a message addressed to one user, optionally pointing
// at another entity through a typed reference.
type Notification struct {
	ID        NotificationID   `json:"id" db:"id"`
	UserID    UserID           `json:"userId" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Reference *EntityRef       `json:"reference,omitempty"`
	IsRead    bool             `json:"isRead" db:"is_read"`
	ReadAt    *time.Time       `json:"readAt,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}
