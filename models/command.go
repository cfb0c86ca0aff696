package models

import "time"

// DeviceCommand names a remote action the backend can request from the
// registered device.
type DeviceCommand string

const (
	CommandLockDevice   DeviceCommand = "lock_device"
	CommandWipeData     DeviceCommand = "wipe_data"
	CommandExitSecurity DeviceCommand = "deactivate_security_mode"
)

// Audited reports whether a pending audit entry must be written onto the
// triggering alert before the command is dispatched. Lock and wipe are
// irreversible or disruptive enough that a trace must exist even when
// delivery later fails.
func (c DeviceCommand) Audited() bool {
	return c == CommandLockDevice || c == CommandWipeData
}

// WipeWarning is the irreversibility notice carried in every wipe_data
// payload for the caller/UI layer to surface. The dispatcher itself performs
// no additional confirmation gate.
const WipeWarning = "this action permanently erases all data on the device and cannot be undone"

// CommandResult is the outcome of a dispatch attempt. Success means the push
// provider accepted the message; whether the device executed the command is
// unknowable at this layer.
type CommandResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// CommandEnvelope is the silent data-only push payload delivered to the
// device for a remote command.
type CommandEnvelope struct {
	Command   DeviceCommand  `json:"command"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
