package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/db"
	"github.com/willy903/backintern/internal/pkg/apperrors"
	"github.com/willy903/backintern/internal/pkg/dberrors"
	"github.com/willy903/backintern/internal/pkg/logger"
)

const userColumns = "id, email, password, first_name, last_name, phone, role, account_status, created_at, updated_at"

// UserRepository handles database operations for identity records
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row, user *models.User) error {
	return row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.Role,
		&user.AccountStatus,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

// Create inserts a new user. The role is fixed at creation; accounts start
// PENDING until a password is set.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if !user.Role.Valid() {
		return fmt.Errorf("%w: role %q", apperrors.ErrInvalidEnumValue, user.Role)
	}

	sql, args, err := r.sb.Insert("users").
		Columns("email", "first_name", "last_name", "phone", "role", "account_status").
		Values(user.Email, user.FirstName, user.LastName, user.Phone, user.Role, models.AccountPending).
		Suffix("RETURNING id, account_status, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).
		Scan(&user.ID, &user.AccountStatus, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return fmt.Errorf("error creating user: %w", err)
	}

	logger.Info().Int64("userID", int64(user.ID)).Str("role", string(user.Role)).Msg("User created")
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id models.UserID) (*models.User, error) {
	var user models.User
	err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id), &user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email), &user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// GetAll retrieves users, optionally filtered by role.
func (r *UserRepository) GetAll(ctx context.Context, role *models.RoleType) ([]*models.User, error) {
	builder := r.sb.Select(userColumns).From("users").OrderBy("last_name", "first_name")
	if role != nil {
		builder = builder.Where(squirrel.Eq{"role": *role})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// UpdateProfile updates the mutable identity fields (not role, not status).
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Update("users").
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("phone", user.Phone).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update user query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// SetPasswordAndActivate stores the hashed password and moves the account
// from PENDING to ACTIVE in one statement.
func (r *UserRepository) SetPasswordAndActivate(ctx context.Context, id models.UserID, hashedPassword string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE users
		SET password = $1, account_status = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND account_status = $4`,
		hashedPassword, models.AccountActive, id, models.AccountPending)
	if err != nil {
		return fmt.Errorf("error activating user: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Either the user does not exist or the account is past PENDING.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return apperrors.ErrAccountNotPending
	}

	logger.Info().Int64("userID", int64(id)).Msg("User activated")
	return nil
}

// UpdateAccountStatus sets the account status.
func (r *UserRepository) UpdateAccountStatus(ctx context.Context, id models.UserID, status models.AccountStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: account status %q", apperrors.ErrInvalidEnumValue, status)
	}

	cmdTag, err := r.db.Exec(ctx, `
		UPDATE users SET account_status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("error updating account status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// Delete removes a user. Profile rows cascade with the user, so when the
// purged user carries an assigned intern profile the encadreur's slot is
// released first, inside the same transaction. Restrict-on-delete
// relationships (task creator, document uploader, activity actor) block the
// purge.
func (r *UserRepository) Delete(ctx context.Context, id models.UserID) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := releaseEncadreurSlotByUser(ctx, tx, id); err != nil {
			return err
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrReferenceInUse
			}
			return fmt.Errorf("error deleting user: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrUserNotFound
		}

		return nil
	})
}
