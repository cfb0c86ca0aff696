package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"

	"github.com/mpetrenko/shroud/internal/logger"
	"github.com/mpetrenko/shroud/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It owns the "users" table: account identity, credential hashes, mode
// fields, push token, and unlock counters.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions, and route their
// statements through DB.q so they join an open transaction when one is
// carried in the context.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// scanUser copies one users row into a models.User.
func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.UserID, &u.Email, &u.Name, &u.PasswordHash,
		&u.CurrentMode, &u.AlertActive, &u.ModeActivatedAt,
		&u.PushToken, &u.NormalPinHash, &u.SecurityPinHash,
		&u.Phone, &u.PhoneVerified,
		&u.Stats.TotalUnlocks, &u.Stats.NormalUnlocks, &u.Stats.SecurityUnlocks,
		&u.Stats.FailedAttempts, &u.Stats.LastUnlock,
		&u.CreatedAt,
	)
	return u, err
}

// CreateUser persists a new account and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt, default mode
// fields).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.q(ctx).QueryRowContext(ctx, createUser, user.Email, user.Name, user.PasswordHash)

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindUserByEmail retrieves the account whose email matches.
//
// Error handling:
//   - sql.ErrNoRows → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.q(ctx).QueryRowContext(ctx, findUserByEmail, email)

	found, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error finding user by email")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// GetUser retrieves the account with the given internal id.
func (r *userRepository) GetUser(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.q(ctx).QueryRowContext(ctx, getUser, userID)

	found, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.GetUser").Int64("user_id", userID).Msg("error getting user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// SavePinHashes replaces both PIN digests in one statement.
func (r *userRepository) SavePinHashes(ctx context.Context, userID int64, normalHash, securityHash string) error {
	return r.execOnUser(ctx, "*userRepository.SavePinHashes", savePinHashes, userID, normalHash, securityHash)
}

// SetMode updates the mode triple in one statement.
func (r *userRepository) SetMode(ctx context.Context, userID int64, mode models.Mode, alertActive bool, activatedAt *time.Time) error {
	return r.execOnUser(ctx, "*userRepository.SetMode", setMode, userID, mode, alertActive, activatedAt)
}

// SetPushToken stores or clears the device delivery token.
func (r *userRepository) SetPushToken(ctx context.Context, userID int64, token *string) error {
	return r.execOnUser(ctx, "*userRepository.SetPushToken", setPushToken, userID, token)
}

// SetVerifiedPhone marks the phone number as verified.
func (r *userRepository) SetVerifiedPhone(ctx context.Context, userID int64, phone string) error {
	return r.execOnUser(ctx, "*userRepository.SetVerifiedPhone", setVerifiedPhone, userID, phone)
}

// DeleteUser removes the account row; dependent records go with it via
// ON DELETE CASCADE.
func (r *userRepository) DeleteUser(ctx context.Context, userID int64) error {
	return r.execOnUser(ctx, "*userRepository.DeleteUser", deleteUser, userID)
}

// BumpUnlockStats increments the counters matching the event kind. A
// successful unlock bumps total plus the per-mode counter and refreshes
// last_unlock; a failed attempt bumps failed_attempts only.
func (r *userRepository) BumpUnlockStats(ctx context.Context, userID int64, kind models.EventKind, mode models.Mode, at time.Time) error {
	if kind == models.EventFailedAttempt {
		return r.execOnUser(ctx, "*userRepository.BumpUnlockStats", bumpStatsFailed, userID)
	}
	return r.execOnUser(ctx, "*userRepository.BumpUnlockStats", bumpStatsUnlock, userID, string(mode), at)
}

// execOnUser runs a single-user DML statement and converts "zero rows
// affected" into [ErrNoUserWasFound].
func (r *userRepository) execOnUser(ctx context.Context, fn, query string, userID int64, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := r.db.q(ctx).ExecContext(ctx, query, append([]any{userID}, args...)...)
	if err != nil {
		log.Err(err).Str("func", fn).Int64("user_id", userID).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", fn).Int64("user_id", userID).Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}
