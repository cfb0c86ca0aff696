package store

import (
	"context"
	"time"

	"github.com/mpetrenko/shroud/models"
)

// Transactor runs a function within a single database transaction. Repository
// calls made with the context passed to fn join that transaction, so a pair
// of writes (e.g. alert creation + user mode switch) commits or rolls back
// together.
//
// The guarantee is per call only: two concurrent WithinTransaction calls for
// the same user are not serialized against each other. The mode service
// documents the resulting last-writer-wins semantics.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository is the data-access interface for the per-account user
// record described in the data model: identity, mode fields, credentials,
// push token, and unlock statistics.
type UserRepository interface {
	// CreateUser persists a new account with the default mode fields
	// (normal mode, no active alert) and returns the stored record with
	// server-assigned fields populated.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail looks an account up by its unique email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// GetUser looks an account up by its internal id.
	GetUser(ctx context.Context, userID int64) (models.User, error)

	// SavePinHashes stores the two PIN digests atomically; both are always
	// replaced together.
	SavePinHashes(ctx context.Context, userID int64, normalHash, securityHash string) error

	// SetMode updates the mode triple (current mode, alert-active flag,
	// activation timestamp) in a single statement.
	SetMode(ctx context.Context, userID int64, mode models.Mode, alertActive bool, activatedAt *time.Time) error

	// SetPushToken stores the device delivery token; a nil token clears it
	// (self-healing after the provider reports it unregistered).
	SetPushToken(ctx context.Context, userID int64, token *string) error

	// BumpUnlockStats increments the counters matching the event kind and
	// mode and updates last_unlock for successful unlocks.
	BumpUnlockStats(ctx context.Context, userID int64, kind models.EventKind, mode models.Mode, at time.Time) error

	// SetVerifiedPhone marks the user's phone number as verified.
	SetVerifiedPhone(ctx context.Context, userID int64, phone string) error

	// DeleteUser removes the account row. Sub-records are removed by
	// ON DELETE CASCADE; leftover orphans are acceptable (account-lifecycle
	// hook is best-effort).
	DeleteUser(ctx context.Context, userID int64) error
}

// AlertRepository is the append-only security-alert store. Alerts are
// created, read, and patched; never physically deleted by this subsystem.
type AlertRepository interface {
	// Create persists a new alert and returns it with server-assigned
	// fields populated.
	Create(ctx context.Context, alert models.SecurityAlert) (models.SecurityAlert, error)

	// Get fetches one alert scoped to its owning user.
	Get(ctx context.Context, userID int64, alertID string) (models.SecurityAlert, error)

	// ListUnresolved returns the user's active alerts ordered by recency,
	// bounded by limit.
	ListUnresolved(ctx context.Context, userID int64, limit int) ([]models.SecurityAlert, error)

	// Update applies a partial patch (resolution fields, command audit map)
	// to one alert.
	Update(ctx context.Context, userID int64, alertID string, patch models.AlertPatch) error
}

// OTPRepository stores at most one phone-verification challenge per user.
type OTPRepository interface {
	// Upsert stores the challenge, replacing any prior one for the user.
	Upsert(ctx context.Context, challenge models.OTPChallenge) error

	// Get returns the user's current challenge or ErrNoChallengeWasFound.
	Get(ctx context.Context, userID int64) (models.OTPChallenge, error)

	// IncrementAttempts bumps the failed-attempt counter and returns the
	// new value.
	IncrementAttempts(ctx context.Context, userID int64) (int, error)

	// Delete consumes the challenge (single-use on success).
	Delete(ctx context.Context, userID int64) error
}

// EventRepository is the append-only unlock-history store backing the
// activity feed.
type EventRepository interface {
	Append(ctx context.Context, event models.UnlockEvent) error

	// ListRecent returns the newest events first, bounded by limit.
	ListRecent(ctx context.Context, userID int64, limit int) ([]models.UnlockEvent, error)
}

// AppRepository stores the user's disguise-mode protected-app list.
type AppRepository interface {
	// Replace swaps the user's whole list for the given one and returns the
	// number of entries stored.
	Replace(ctx context.Context, userID int64, apps []models.ProtectedApp) (int, error)

	List(ctx context.Context, userID int64) ([]models.ProtectedApp, error)
}
