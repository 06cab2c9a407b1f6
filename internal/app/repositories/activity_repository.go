package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/apperrors"
	"github.com/willy903/backintern/internal/pkg/dberrors"
)

// ActivityRepository handles the append-only activity history. There is no
// update or delete: once written, an entry stays as it is.
type ActivityRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create appends an activity entry.
func (r *ActivityRepository) Create(ctx context.Context, entry *models.ActivityEntry) error {
	query := `
		INSERT INTO activity_history (actor_id, action, entity_type, entity_id, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		entry.ActorID, entry.Action, entry.EntityType, entry.EntityID, entry.Description).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating activity entry: %w", err)
	}

	return nil
}

// List retrieves the newest entries, optionally filtered by actor, newest
// first, capped at limit.
func (r *ActivityRepository) List(ctx context.Context, actorID *models.UserID, limit int) ([]*models.ActivityEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	builder := r.sb.Select("id", "actor_id", "action", "entity_type", "entity_id", "description", "created_at").
		From("activity_history").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))
	if actorID != nil {
		builder = builder.Where(squirrel.Eq{"actor_id": *actorID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list activity query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying activity history: %w", err)
	}
	defer rows.Close()

	var entries []*models.ActivityEntry
	for rows.Next() {
		var entry models.ActivityEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.ActorID,
			&entry.Action,
			&entry.EntityType,
			&entry.EntityID,
			&entry.Description,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning activity entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity history: %w", err)
	}

	return entries, nil
}
