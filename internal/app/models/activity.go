package models

import "time"

// ActivityEntry defines an append-only audit record. Rows are only ever
// inserted; the repository exposes no update or delete.
type ActivityEntry struct {
	ID          int64      `json:"id" db:"id"`
	ActorID     UserID     `json:"actorId" db:"actor_id"`
	Action      ActionKind `json:"action" db:"action"`
	EntityType  string     `json:"entityType" db:"entity_type"`
	EntityID    int64      `json:"entityId" db:"entity_id"`
	Description string     `json:"description" db:"description"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}
