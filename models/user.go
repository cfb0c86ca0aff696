package models

import "time"

// Mode is the user-visible operating state of the protected device.
type Mode string

const (
	// ModeNormal is the regular operating state: the device behaves as usual.
	ModeNormal Mode = "normal"

	// ModeSecurity is the disguise/lockdown state entered after a security
	// trigger (security PIN, motion sensor, panic button, web console).
	ModeSecurity Mode = "security"
)

// User is the per-account record shared by every component of the system.
// It carries the current operating mode, the two PIN hashes, the push
// delivery token and the unlock statistics.
//
// Credential fields hold bcrypt digests only; plaintext PINs and passwords
// never reach the persistence layer.
type User struct {
	// UserID is the internal unique identifier of the user.
	// Not exposed via JSON; used only at the persistence layer.
	UserID int64 `json:"-"`

	// Email is the unique account login identifier.
	Email string `json:"email"`

	// Name is the optional display name of the user.
	Name string `json:"name,omitempty"`

	// PasswordHash is the bcrypt digest of the account password.
	PasswordHash string `json:"-"`

	// CurrentMode is the device operating mode, ModeNormal or ModeSecurity.
	CurrentMode Mode `json:"current_mode"`

	// AlertActive reports whether a security alert is currently driving the
	// mode. Intended invariant: true iff at least one of the user's alerts
	// has StatusActive. Concurrent activations can violate it; see the
	// mode service documentation.
	AlertActive bool `json:"alert_active"`

	// ModeActivatedAt is the time security mode was last entered.
	// Nil while the user is in normal mode.
	ModeActivatedAt *time.Time `json:"mode_activated_at,omitempty"`

	// PushToken is the opaque delivery-channel identifier of the user's
	// registered device. Nil when no device is registered or after the
	// push provider reported the token unregistered.
	PushToken *string `json:"-"`

	// NormalPinHash and SecurityPinHash are the bcrypt digests of the two
	// PINs. The verifier compares the normal hash first; if the two PINs
	// were ever equal the security hash would be unreachable, which is why
	// distinctness is enforced when PINs are saved.
	NormalPinHash   string `json:"-"`
	SecurityPinHash string `json:"-"`

	// Phone is the verified phone number, set by the OTP verifier.
	Phone string `json:"phone,omitempty"`

	// PhoneVerified reports whether Phone passed OTP verification.
	PhoneVerified bool `json:"phone_verified"`

	// Stats holds the unlock counters maintained by the credential verifier.
	Stats UnlockStats `json:"stats"`

	// CreatedAt is the account creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// UnlockStats aggregates unlock activity counters. They are side-channel
// data: failures to update them never block the primary operation.
type UnlockStats struct {
	TotalUnlocks    int64      `json:"total_unlocks"`
	NormalUnlocks   int64      `json:"normal_unlocks"`
	SecurityUnlocks int64      `json:"security_unlocks"`
	FailedAttempts  int64      `json:"failed_attempts"`
	LastUnlock      *time.Time `json:"last_unlock,omitempty"`
}

// HasPins reports whether both PIN hashes have been provisioned.
func (u User) HasPins() bool {
	return u.NormalPinHash != "" && u.SecurityPinHash != ""
}

// TableName returns the name of the database table backing the User model.
func (u User) TableName() string {
	return "users"
}
