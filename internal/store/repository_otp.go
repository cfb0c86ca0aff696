package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mpetrenko/shroud/internal/logger"
	"github.com/mpetrenko/shroud/models"
)

// otpRepository is the PostgreSQL-backed implementation of [OTPRepository].
// The otp_challenges table keys on user_id, which enforces the
// one-challenge-per-user rule at the schema level: issuing a new code is an
// upsert that replaces the old one.
type otpRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewOTPRepository constructs an [OTPRepository] backed by the provided
// database connection and logger.
func NewOTPRepository(db *DB, logger *logger.Logger) OTPRepository {
	logger.Debug().Msg("creating otp repository")
	return &otpRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert stores the challenge, replacing any prior one for the same user.
func (r *otpRepository) Upsert(ctx context.Context, challenge models.OTPChallenge) error {
	log := logger.FromContext(ctx)

	_, err := r.db.q(ctx).ExecContext(ctx, upsertOTPChallenge,
		challenge.UserID, challenge.Code, challenge.PhoneNumber,
		challenge.CreatedAt, challenge.ExpiresAt, challenge.Attempts,
	)
	if err != nil {
		log.Err(err).Str("func", "*otpRepository.Upsert").Msg("error upserting otp challenge")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Get returns the user's current challenge.
//
// Error handling:
//   - sql.ErrNoRows → [ErrNoChallengeWasFound].
func (r *otpRepository) Get(ctx context.Context, userID int64) (models.OTPChallenge, error) {
	log := logger.FromContext(ctx)

	var c models.OTPChallenge
	row := r.db.q(ctx).QueryRowContext(ctx, getOTPChallenge, userID)
	err := row.Scan(&c.UserID, &c.Code, &c.PhoneNumber, &c.CreatedAt, &c.ExpiresAt, &c.Attempts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.OTPChallenge{}, ErrNoChallengeWasFound
		}
		log.Err(err).Str("func", "*otpRepository.Get").Msg("error getting otp challenge")
		return models.OTPChallenge{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return c, nil
}

// IncrementAttempts bumps the failed-attempt counter and returns the new
// value.
func (r *otpRepository) IncrementAttempts(ctx context.Context, userID int64) (int, error) {
	log := logger.FromContext(ctx)

	var attempts int
	row := r.db.q(ctx).QueryRowContext(ctx, incrementOTPAttempts, userID)
	if err := row.Scan(&attempts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNoChallengeWasFound
		}
		log.Err(err).Str("func", "*otpRepository.IncrementAttempts").Msg("error incrementing otp attempts")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return attempts, nil
}

// Delete consumes the challenge. Deleting an already-absent challenge is not
// an error: the row may have been replaced concurrently.
func (r *otpRepository) Delete(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	_, err := r.db.q(ctx).ExecContext(ctx, deleteOTPChallenge, userID)
	if err != nil {
		log.Err(err).Str("func", "*otpRepository.Delete").Msg("error deleting otp challenge")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
