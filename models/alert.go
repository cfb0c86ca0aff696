package models

import "time"

// AlertType identifies the trigger that created a security alert.
type AlertType string

const (
	AlertPinSecurityUsed AlertType = "pin_security_used"
	AlertAbruptMovement  AlertType = "abrupt_movement"
	AlertSuspiciousSpeed AlertType = "suspicious_speed"
	AlertPanicButton     AlertType = "panic_button"
	AlertWebConsole      AlertType = "web_console"
)

// AlertStatus is the lifecycle state of a security alert.
type AlertStatus string

const (
	AlertStatusActive   AlertStatus = "active"
	AlertStatusResolved AlertStatus = "resolved"
)

// ResolutionType records why an alert was closed.
type ResolutionType string

const (
	ResolutionFalseAlarm           ResolutionType = "false_alarm"
	ResolutionUnlockedSuccessfully ResolutionType = "unlocked_successfully"
)

// CommandStatus is the audit state of a remote command issued against an
// alert. Commands are recorded as pending before the push call is made and
// never transition afterwards: the entry is an audit of intent, not of
// execution, because the dispatcher has no delivery-confirmation channel.
type CommandStatus string

const (
	CommandStatusPending CommandStatus = "pending"
)

// CommandAudit is a per-alert record noting that a remote command was
// requested against the device.
type CommandAudit struct {
	RequestedAt time.Time     `json:"requested_at"`
	Status      CommandStatus `json:"status"`
}

// SecurityAlert is the persisted record of an event that switched (or could
// switch) the owning user into security mode. Alerts are append-only: they
// are resolved, never physically deleted.
//
// Resolved mirrors Status and the two must stay consistent; both exist
// because the mobile client reads the boolean while the console filters on
// the status string.
type SecurityAlert struct {
	// ID is the server-assigned alert identifier (UUID).
	ID string `json:"id"`

	// UserID is the owning user. Not exposed via JSON.
	UserID int64 `json:"-"`

	// Type names the trigger that created the alert.
	Type AlertType `json:"type"`

	// Timestamp is the moment the trigger fired.
	Timestamp time.Time `json:"timestamp"`

	Status   AlertStatus `json:"status"`
	Resolved bool        `json:"resolved"`

	// ResolutionType and ResolvedAt are set when the alert is resolved,
	// nil while it is active.
	ResolutionType *ResolutionType `json:"resolution_type,omitempty"`
	ResolvedAt     *time.Time      `json:"resolved_at,omitempty"`

	// Details is the trigger-specific payload, stored as an open key-value
	// bag. Typed trigger payloads implement [AlertDetails] and are
	// flattened into this bag on creation.
	Details map[string]any `json:"details,omitempty"`

	// Commands is the audit trail of remote commands issued against this
	// alert, keyed by command name.
	Commands map[string]CommandAudit `json:"commands,omitempty"`
}

// TableName returns the name of the database table backing SecurityAlert.
func (a SecurityAlert) TableName() string {
	return "security_alerts"
}

// AlertDetails is the open extension point for trigger payloads. A trigger
// supplies a typed details value; the mode service flattens it via Bag before
// persisting so arbitrary metadata can still travel with an alert.
type AlertDetails interface {
	// Bag returns the payload as an open key-value map suitable for
	// JSON persistence.
	Bag() map[string]any
}

// PinTriggerDetails is the payload of a pin_security_used alert. Only the
// length of the submitted PIN is recorded; the PIN value itself is never
// persisted.
type PinTriggerDetails struct {
	PinLength int
}

func (d PinTriggerDetails) Bag() map[string]any {
	return map[string]any{"pin_length": d.PinLength}
}

// MovementDetails is the payload of motion-sensor alerts (abrupt_movement,
// suspicious_speed).
type MovementDetails struct {
	Latitude  float64
	Longitude float64
	SpeedKmh  float64
}

func (d MovementDetails) Bag() map[string]any {
	return map[string]any{
		"latitude":  d.Latitude,
		"longitude": d.Longitude,
		"speed_kmh": d.SpeedKmh,
	}
}

// PanicDetails is the payload of a panic_button or web_console alert.
type PanicDetails struct {
	Source string
}

func (d PanicDetails) Bag() map[string]any {
	return map[string]any{"source": d.Source}
}

// GenericDetails adapts an arbitrary key-value map to [AlertDetails] for
// triggers without a dedicated payload type.
type GenericDetails map[string]any

func (d GenericDetails) Bag() map[string]any {
	return map[string]any(d)
}

// AlertPatch is a partial update applied to a stored alert. Nil fields are
// left untouched. Used by the mode service to resolve alerts and by the
// command dispatcher to append audit entries.
type AlertPatch struct {
	Status         *AlertStatus
	Resolved       *bool
	ResolutionType *ResolutionType
	ResolvedAt     *time.Time

	// Commands, when non-nil, replaces the alert's command audit map.
	Commands map[string]CommandAudit
}
