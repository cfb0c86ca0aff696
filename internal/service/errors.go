package service

import "errors"

// Validation-tier errors: detected before any mutation, returned immediately
// with no side effects.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWeakPassword        = errors.New("password must be at least 8 characters long")
	ErrAlertIDRequired     = errors.New("alert id is required")
	ErrNoProtectedApps     = errors.New("protected app list must not be empty")
	ErrTokenRequired       = errors.New("push token is required")
)

// Authentication errors.
var (
	ErrWrongPassword  = errors.New("wrong password")
	ErrTokenIsExpired = errors.New("token is expired")
)

// Credential-verifier errors.
var (
	// ErrPinsNotConfigured is returned by PIN verification when the account
	// has no provisioned PIN pair yet (config-not-found condition).
	ErrPinsNotConfigured = errors.New("pin configuration was not found")
)

// OTP-verifier errors. Not-found surfaces as store.ErrNoChallengeWasFound.
var (
	ErrChallengeExpired = errors.New("verification code has expired")
	ErrChallengeLocked  = errors.New("verification locked after too many attempts")
	ErrCodeMismatch     = errors.New("verification code does not match")
)

// ErrPushUnavailable wraps a delivery failure of a critical command
// (lock/wipe). Unlike best-effort notifications it must propagate to the
// caller, who needs to know the command may never reach the device.
var ErrPushUnavailable = errors.New("push delivery unavailable")
