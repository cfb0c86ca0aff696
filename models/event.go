package models

import "time"

// EventKind classifies an unlock-history entry.
type EventKind string

const (
	// EventUnlock records a successful PIN verification; Mode tells which
	// of the two PINs matched.
	EventUnlock EventKind = "unlock"

	// EventFailedAttempt records a PIN submission matching neither hash.
	EventFailedAttempt EventKind = "failed_attempt"
)

// UnlockEvent is one row of the activity feed: a successful unlock or a
// failed attempt. Events are side-channel data written best-effort by the
// credential verifier.
type UnlockEvent struct {
	ID        int64     `json:"-"`
	UserID    int64     `json:"-"`
	Kind      EventKind `json:"kind"`
	Mode      Mode      `json:"mode,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// TableName returns the name of the database table backing UnlockEvent.
func (e UnlockEvent) TableName() string {
	return "unlock_events"
}
