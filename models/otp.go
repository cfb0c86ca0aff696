package models

import "time"

// OTPChallengeTTL is how long an issued verification code stays valid.
const OTPChallengeTTL = 10 * time.Minute

// OTPMaxAttempts is the number of failed verification attempts after which
// a challenge locks. A locked challenge is never unlocked; the caller must
// issue a fresh one.
const OTPMaxAttempts = 5

// OTPChallenge is a short-lived, attempt-limited numeric code used to verify
// phone-number ownership. At most one challenge exists per user; issuing a
// new one replaces the previous. Challenges are single-use and deleted on
// successful verification.
type OTPChallenge struct {
	UserID      int64     `json:"-"`
	Code        string    `json:"-"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Attempts    int       `json:"attempts"`
}

// Expired reports whether the challenge is past its expiry at the given time.
func (c OTPChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Locked reports whether the challenge has exhausted its attempt budget.
func (c OTPChallenge) Locked() bool {
	return c.Attempts >= OTPMaxAttempts
}

// TableName returns the name of the database table backing OTPChallenge.
func (c OTPChallenge) TableName() string {
	return "otp_challenges"
}
