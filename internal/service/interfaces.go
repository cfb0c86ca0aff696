package service

import (
	"context"

	"github.com/mpetrenko/shroud/models"
)

// AuthService handles account registration, login, and JWT token lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// DeleteAccount removes the user record and its sub-records
	// (account-lifecycle hook, best-effort orphan cleanup).
	DeleteAccount(ctx context.Context, userID int64) error
}

// CredentialService is the PIN verifier plus the read/write glue that hangs
// off it (protected apps, activity feed).
type CredentialService interface {
	// SavePins validates and provisions the PIN pair. Policy: both
	// required, 4–6 digits, digits only, distinct.
	SavePins(ctx context.Context, userID int64, req models.SavePinsRequest) error

	// VerifyPin classifies the submitted PIN against the two stored
	// hashes, normal first. Side effects per outcome: unlock event +
	// counters, security-mode activation, or failed-attempt event.
	VerifyPin(ctx context.Context, userID int64, pin string) (models.VerifyPinResponse, error)

	SaveProtectedApps(ctx context.Context, userID int64, apps []models.ProtectedApp) (int, error)

	ActivityFeed(ctx context.Context, userID int64) ([]models.UnlockEvent, error)
}

// ModeService is the normal ⇄ security state machine. Activate and
// Deactivate each pair an alert write with a user write inside one
// transaction; they provide no isolation against a concurrent call for the
// same user (documented last-writer-wins).
type ModeService interface {
	// Activate is the single entry point for every security-mode trigger.
	// Returns the id of the alert it created.
	Activate(ctx context.Context, userID int64, alertType models.AlertType, details models.AlertDetails) (string, error)

	// Deactivate resolves the named alert and returns the user to normal
	// mode. The alert id is required.
	Deactivate(ctx context.Context, userID int64, alertID string, resolution models.ResolutionType) error

	// UnresolvedAlerts lists the user's active alerts, newest first,
	// bounded.
	UnresolvedAlerts(ctx context.Context, userID int64) ([]models.SecurityAlert, error)
}

// DispatchService sends device-directed commands and notifications through
// the push channel.
type DispatchService interface {
	// SendCommand dispatches a silent remote command. For lock/wipe it
	// writes the pending audit entry onto the alert before the network
	// call. An absent push token yields {Success: false}, not an error.
	SendCommand(ctx context.Context, userID int64, alertID string, command models.DeviceCommand, payload map[string]any) (models.CommandResult, error)

	// SendPushNotification delivers a visible notification, best-effort:
	// the result reports failure but callers never fail their primary
	// operation over it.
	SendPushNotification(ctx context.Context, userID int64, title, body string, data map[string]any) models.CommandResult

	// UpdatePushToken registers the device's delivery token.
	UpdatePushToken(ctx context.Context, userID int64, token string) error
}

// OTPService issues and verifies phone-number verification codes.
type OTPService interface {
	// Issue generates a fresh 6-digit code, replaces any prior challenge,
	// hands the code to the SMS gateway best-effort, and returns it.
	Issue(ctx context.Context, userID int64, phoneNumber string) (string, error)

	// Verify checks the submitted code. Failure reasons, in evaluation
	// order: store.ErrNoChallengeWasFound, ErrChallengeExpired,
	// ErrChallengeLocked, ErrCodeMismatch. Success marks the phone
	// verified and consumes the challenge.
	Verify(ctx context.Context, userID int64, code string) error
}
